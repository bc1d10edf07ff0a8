package mathem

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/matkassen/backend/internal/domain"
	"github.com/matkassen/backend/internal/infrastructure/credential"
)

// cartResponse is the basket endpoint's top-level payload
type cartResponse struct {
	ProductQuantityCount int         `json:"product_quantity_count"`
	TotalGrossAmount     flexString  `json:"total_gross_amount"`
	DisplayPrice         flexString  `json:"display_price"`
	Currency             string      `json:"currency"`
	Groups               []cartGroup `json:"groups"`
}

// cartGroup clusters basket items; its title becomes the item category
type cartGroup struct {
	Title string     `json:"title"`
	Items []cartItem `json:"items"`
}

type cartItem struct {
	Quantity          int         `json:"quantity"`
	DisplayPriceTotal flexString  `json:"display_price_total"`
	Product           cartProduct `json:"product"`
}

type cartProduct struct {
	ID                int64      `json:"id"`
	Name              string     `json:"name"`
	FullName          string     `json:"full_name"`
	Brand             string     `json:"brand"`
	NameExtra         string     `json:"name_extra"`
	GrossPrice        flexString `json:"gross_price"`
	GrossUnitPrice    flexString `json:"gross_unit_price"`
	Currency          string     `json:"currency"`
	UnitAbbreviation  string     `json:"unit_price_quantity_abbreviation"`
	Availability      struct {
		Code string `json:"code"`
	} `json:"availability"`
	Discount *struct {
		IsDiscounted           bool       `json:"is_discounted"`
		UndiscountedGrossPrice flexString `json:"undiscounted_gross_price"`
		DescriptionShort       string     `json:"description_short"`
	} `json:"discount"`
	ClientClassifiers []classifier `json:"client_classifiers"`
}

// GetBasket fetches the current basket and flattens the group/item nesting
// into a summary plus one record per item. Failures are reported inside the
// result, never raised: HTTP errors carry the status and body, everything
// else a generic tag and the error text.
func (c *Client) GetBasket(ctx context.Context) domain.BasketResult {
	req, err := c.newRequest(ctx, http.MethodGet, cartPath, nil)
	if err != nil {
		return basketFailure(err)
	}

	req.Header.Set("User-Agent", c.browserUserAgent)
	req.Header.Set("Origin", c.origin)
	req.Header.Set("Referer", c.origin+"/")
	// An absent credential still attempts the request; the retailer answers
	// with an anonymous cart or an auth error.
	if cookie := c.creds.Load(); cookie != "" {
		req.Header.Set("Cookie", cookie)
	}

	resp, err := c.doRequest(req)
	if err != nil {
		return basketFailure(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := readLimitedBody(resp.Body, maxErrorBody)
		return domain.BasketResult{
			Success: false,
			Error:   fmt.Sprintf("HTTP %d", resp.StatusCode),
			Message: string(body),
		}
	}

	var cart cartResponse
	if err := json.NewDecoder(resp.Body).Decode(&cart); err != nil {
		return basketFailure(fmt.Errorf("%w: %v", domain.ErrDecodeFailed, err))
	}

	summary := &domain.BasketSummary{
		TotalItems:  cart.ProductQuantityCount,
		TotalAmount: formatPrice(orZero(cart.TotalGrossAmount), cart.Currency),
		Subtotal:    formatPrice(orZero(cart.DisplayPrice), cart.Currency),
	}

	items := make([]domain.BasketItem, 0)
	for _, group := range cart.Groups {
		category := group.Title
		if category == "" {
			category = "Unknown"
		}
		for i := range group.Items {
			items = append(items, mapBasketItem(&group.Items[i], category))
		}
	}

	return domain.BasketResult{
		Success: true,
		Summary: summary,
		Items:   items,
	}
}

// mapBasketItem flattens one group item into a basket record
func mapBasketItem(item *cartItem, category string) domain.BasketItem {
	p := &item.Product

	availability := p.Availability.Code
	if availability == "" {
		availability = "unknown"
	}

	record := domain.BasketItem{
		ID:           p.ID,
		Name:         p.Name,
		FullName:     p.FullName,
		Brand:        p.Brand,
		Description:  p.NameExtra,
		Category:     category,
		Quantity:     item.Quantity,
		Price:        formatPrice(string(p.GrossPrice), p.Currency),
		UnitPrice:    formatUnitPrice(string(p.GrossUnitPrice), p.Currency, p.UnitAbbreviation),
		TotalPrice:   formatPrice(string(item.DisplayPriceTotal), p.Currency),
		Availability: availability,
		Labels:       classifierNames(p.ClientClassifiers),
	}

	if p.Discount != nil && p.Discount.IsDiscounted {
		record.Discount = &domain.Discount{
			OriginalPrice: formatPrice(string(p.Discount.UndiscountedGrossPrice), p.Currency),
			Description:   p.Discount.DescriptionShort,
		}
	}

	return record
}

func basketFailure(err error) domain.BasketResult {
	return domain.BasketResult{
		Success: false,
		Error:   "Request failed",
		Message: err.Error(),
	}
}

// addPayload is the basket write body: items grouped by recipe
type addPayload struct {
	Items []addItem `json:"items"`
}

type addItem struct {
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}

// AddToBasket submits a quantity adjustment for a product. The result always
// echoes productID and quantity so callers can correlate outcomes.
func (c *Client) AddToBasket(ctx context.Context, productID int64, quantity int) domain.AddResult {
	payload, err := json.Marshal(addPayload{
		Items: []addItem{{ProductID: productID, Quantity: quantity}},
	})
	if err != nil {
		return addFailure(productID, quantity, err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, cartItemsPath+"?group_by=recipes", bytes.NewReader(payload))
	if err != nil {
		return addFailure(productID, quantity, err)
	}

	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Origin", c.origin)
	req.Header.Set("Referer", c.origin+"/se/")
	req.Header.Set("x-client-app", "tienda-web")
	req.Header.Set("x-country", c.country)
	req.Header.Set("x-language", c.language)

	if cookie := c.creds.Load(); cookie != "" {
		req.Header.Set("Cookie", cookie)
		// CSRF double-submit: the retailer requires the token from the
		// session cookie as a header on state-changing calls.
		if token := credential.CSRFToken(cookie); token != "" {
			req.Header.Set("X-CSRFToken", token)
		}
	}

	resp, err := c.doRequest(req)
	if err != nil {
		return addFailure(productID, quantity, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := readLimitedBody(resp.Body, maxErrorBody)
		return domain.AddResult{
			Success:   false,
			Error:     fmt.Sprintf("HTTP %d", resp.StatusCode),
			Message:   string(body),
			ProductID: productID,
			Quantity:  quantity,
		}
	}

	body, err := readLimitedBody(resp.Body, 1<<20)
	if err != nil {
		return addFailure(productID, quantity, fmt.Errorf("%w: %v", domain.ErrRetailerUnavailable, err))
	}

	response := map[string]any{}
	if len(bytes.TrimSpace(body)) > 0 {
		if err := json.Unmarshal(body, &response); err != nil {
			return addFailure(productID, quantity, fmt.Errorf("%w: %v", domain.ErrDecodeFailed, err))
		}
	}

	return domain.AddResult{
		Success:    true,
		StatusCode: resp.StatusCode,
		Response:   response,
		ProductID:  productID,
		Quantity:   quantity,
	}
}

func addFailure(productID int64, quantity int, err error) domain.AddResult {
	return domain.AddResult{
		Success:   false,
		Error:     "Request failed",
		Message:   err.Error(),
		ProductID: productID,
		Quantity:  quantity,
	}
}
