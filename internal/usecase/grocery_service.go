package usecase

import (
	"context"
	"log"

	"github.com/matkassen/backend/internal/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// searchFailures counts searches that failed upstream but were returned to
// the caller as empty lists. The empty-list contract is kept for caller
// compatibility; the counter is the diagnostic channel that keeps those
// failures observable.
var searchFailures = promauto.NewCounter(prometheus.CounterOpts{
	Name: "grocery_search_failures_total",
	Help: "Product searches that failed upstream and were collapsed to empty result lists.",
})

// GroceryService exposes the five tool operations over the retailer client
// and the recipe catalog
type GroceryService struct {
	search  domain.SearchClient
	basket  domain.BasketClient
	fetcher domain.RecipeFetcher
	catalog []domain.RecipeRef
}

// NewGroceryService creates a grocery service. The catalog is loaded once at
// startup and treated as immutable for the process lifetime.
func NewGroceryService(
	search domain.SearchClient,
	basket domain.BasketClient,
	fetcher domain.RecipeFetcher,
	catalog []domain.RecipeRef,
) *GroceryService {
	return &GroceryService{
		search:  search,
		basket:  basket,
		fetcher: fetcher,
		catalog: catalog,
	}
}

// SearchIngredients searches the retailer's catalog. Limit semantics belong
// to the client: the API variant truncates to limit (empty for non-positive
// limits), the embedded-scraping variant ignores it in favor of its fixed
// cap. Any upstream failure collapses to an empty list: callers cannot
// distinguish zero matches from failure, so the failure is logged and counted
// here instead.
func (s *GroceryService) SearchIngredients(ctx context.Context, query string, limit int) []domain.Product {
	products, err := s.search.Search(ctx, query, limit)
	if err != nil {
		log.Printf("[SEARCH] query %q failed: %v", query, err)
		searchFailures.Inc()
		return []domain.Product{}
	}

	if products == nil {
		products = []domain.Product{}
	}
	return products
}

// GetBasket returns the current basket contents or a failure record
func (s *GroceryService) GetBasket(ctx context.Context) domain.BasketResult {
	return s.basket.GetBasket(ctx)
}

// AddToBasket adds quantity units of a product to the basket
func (s *GroceryService) AddToBasket(ctx context.Context, productID int64, quantity int) domain.AddResult {
	return s.basket.AddToBasket(ctx, productID, quantity)
}

// ListRecipes returns the static recipe catalog
func (s *GroceryService) ListRecipes() []domain.RecipeRef {
	return s.catalog
}

// GetRecipeByIndex fetches structured recipe data for the i-th catalog entry.
// Out-of-range indices yield an empty map, never an error.
func (s *GroceryService) GetRecipeByIndex(ctx context.Context, i int) map[string]any {
	if i < 0 || i >= len(s.catalog) {
		return map[string]any{}
	}
	return s.fetcher.Fetch(ctx, s.catalog[i].URL)
}
