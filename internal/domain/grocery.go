package domain

// Product represents a normalized product record from the retailer's search
type Product struct {
	ID          int64    `json:"id,omitempty"` // retailer may omit the id
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Brand       string   `json:"brand"`
	Price       string   `json:"price"`      // formatted, e.g. "49.00 SEK"
	UnitPrice   string   `json:"unit_price"` // formatted, e.g. "108.89 SEK /kg"
	Labels      []string `json:"labels,omitempty"`
	Offer       string   `json:"offer,omitempty"` // comma-joined promotion titles
}

// BasketSummary holds the basket totals derived once per basket fetch
type BasketSummary struct {
	TotalItems  int    `json:"total_items"`
	TotalAmount string `json:"total_amount"`
	Subtotal    string `json:"subtotal"`
}

// Discount carries the pre-discount price and the retailer's short description
type Discount struct {
	OriginalPrice string `json:"original_price"`
	Description   string `json:"description"`
}

// BasketItem is a product as it appears inside a basket group, flattened
// with its enclosing group's title as the category
type BasketItem struct {
	ID           int64     `json:"id,omitempty"`
	Name         string    `json:"name"`
	FullName     string    `json:"full_name"`
	Brand        string    `json:"brand"`
	Description  string    `json:"description"`
	Category     string    `json:"category"`
	Quantity     int       `json:"quantity"`
	Price        string    `json:"price"`
	UnitPrice    string    `json:"unit_price"`
	TotalPrice   string    `json:"total_price"`
	Availability string    `json:"availability"`
	Discount     *Discount `json:"discount,omitempty"` // only when the retailer marks the item discounted
	Labels       []string  `json:"labels,omitempty"`
}

// BasketResult is the discriminated outcome of a basket read. Exactly one
// variant is populated: Summary/Items on success, Error/Message on failure.
type BasketResult struct {
	Success bool           `json:"success"`
	Summary *BasketSummary `json:"summary,omitempty"`
	Items   []BasketItem   `json:"items,omitempty"`
	Error   string         `json:"error,omitempty"`
	Message string         `json:"message,omitempty"`
}

// AddResult is the outcome of a basket write. ProductID and Quantity always
// echo the caller's input so results can be correlated.
type AddResult struct {
	Success    bool           `json:"success"`
	StatusCode int            `json:"status_code,omitempty"`
	Response   map[string]any `json:"response,omitempty"`
	ProductID  int64          `json:"product_id"`
	Quantity   int            `json:"quantity"`
	Error      string         `json:"error,omitempty"`
	Message    string         `json:"message,omitempty"`
}

// RecipeRef points at a recipe page; loaded once at startup, read-only after
type RecipeRef struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	URL   string `json:"url"`
}
