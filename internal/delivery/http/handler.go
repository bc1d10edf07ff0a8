package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/matkassen/backend/internal/usecase"
)

const defaultSearchLimit = 10

// Handler holds dependencies for HTTP handlers
type Handler struct {
	grocery *usecase.GroceryService
}

// NewHandler creates a new HTTP handler
func NewHandler(grocery *usecase.GroceryService) *Handler {
	return &Handler{grocery: grocery}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "matkassen-backend",
		"version": "0.2.0",
	})
}

// SearchIngredients handles GET /ingredients/search?q=<query>&limit=<n>.
// The response is always a JSON array; upstream failures surface as an empty
// array by contract.
func (h *Handler) SearchIngredients(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query parameter 'q' is required"})
		return
	}

	limit := defaultSearchLimit
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be an integer"})
			return
		}
		limit = parsed
	}

	c.JSON(http.StatusOK, h.grocery.SearchIngredients(c.Request.Context(), query, limit))
}

// GetBasket handles GET /basket. Retailer-side failures are part of the
// result record, so the HTTP status stays 200.
func (h *Handler) GetBasket(c *gin.Context) {
	c.JSON(http.StatusOK, h.grocery.GetBasket(c.Request.Context()))
}

// addToBasketRequest is the basket write body
type addToBasketRequest struct {
	ProductID int64 `json:"product_id" binding:"required"`
	Quantity  int   `json:"quantity"`
}

// AddToBasket handles POST /basket/items. With ?simple=true only the success
// flag is returned, for callers that want the boolean projection.
func (h *Handler) AddToBasket(c *gin.Context) {
	var req addToBasketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "product_id is required"})
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	result := h.grocery.AddToBasket(c.Request.Context(), req.ProductID, req.Quantity)

	if c.Query("simple") == "true" {
		c.JSON(http.StatusOK, gin.H{"success": result.Success})
		return
	}
	c.JSON(http.StatusOK, result)
}

// ListRecipes handles GET /recipes
func (h *Handler) ListRecipes(c *gin.Context) {
	c.JSON(http.StatusOK, h.grocery.ListRecipes())
}

// GetRecipeByIndex handles GET /recipes/:index. Out-of-range indices return
// an empty object, matching the catalog's sentinel behavior; a non-numeric
// index is a caller error.
func (h *Handler) GetRecipeByIndex(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "index must be an integer"})
		return
	}

	c.JSON(http.StatusOK, h.grocery.GetRecipeByIndex(c.Request.Context(), index))
}
