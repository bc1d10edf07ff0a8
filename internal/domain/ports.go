package domain

import "context"

// CredentialSource provides the session credential for authenticated retailer
// calls. Load is called fresh on every call that needs it; an empty string
// means unauthenticated.
type CredentialSource interface {
	Load() string
}

// SearchClient defines the interface for querying the retailer's product
// search. limit caps the result count; the embedded-scraping implementation
// ignores it in favor of its fixed cap.
type SearchClient interface {
	Search(ctx context.Context, query string, limit int) ([]Product, error)
}

// BasketClient defines the interface for reading and writing the retailer basket.
// Both operations report failures inside the result record, never as a Go error.
type BasketClient interface {
	GetBasket(ctx context.Context) BasketResult
	AddToBasket(ctx context.Context, productID int64, quantity int) AddResult
}

// RecipeFetcher retrieves structured recipe metadata embedded in a page,
// returning an empty map when none is found
type RecipeFetcher interface {
	Fetch(ctx context.Context, url string) map[string]any
}
