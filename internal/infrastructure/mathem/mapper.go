package mathem

import (
	"encoding/json"
	"strings"
)

// defaultCurrency is used when the retailer omits the currency field
const defaultCurrency = "SEK"

// flexString decodes a JSON value the retailer serves sometimes as a string
// and sometimes as a bare number ("49.00" vs 49.0)
type flexString string

func (f *flexString) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = flexString(s)
		return nil
	}
	if string(b) == "null" {
		*f = ""
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*f = flexString(n.String())
	return nil
}

// orZero substitutes "0" for an absent amount, matching what the retailer's
// own clients display for an empty cart
func orZero(amount flexString) string {
	if amount == "" {
		return "0"
	}
	return string(amount)
}

// formatPrice renders "<amount> <currency>"
func formatPrice(amount, currency string) string {
	if currency == "" {
		currency = defaultCurrency
	}
	return amount + " " + currency
}

// formatUnitPrice renders "<amount> <currency> /<unit>"
func formatUnitPrice(amount, currency, unit string) string {
	if currency == "" {
		currency = defaultCurrency
	}
	return amount + " " + currency + " /" + unit
}

// classifier is a retailer-assigned label on a product (e.g. organic,
// allergen-free)
type classifier struct {
	Name string `json:"name"`
}

// promotion is an active offer attached to a product
type promotion struct {
	Title string `json:"title"`
}

// classifierNames collects the non-empty classifier names, preserving order.
// Returns nil when nothing remains so the labels key is omitted from output.
func classifierNames(classifiers []classifier) []string {
	var names []string
	for _, c := range classifiers {
		if c.Name != "" {
			names = append(names, c.Name)
		}
	}
	return names
}

// joinPromotions joins the non-empty promotion titles with ", ".
// Returns "" when nothing remains so the offer key is omitted from output.
func joinPromotions(promotions []promotion) string {
	var titles []string
	for _, p := range promotions {
		if p.Title != "" {
			titles = append(titles, p.Title)
		}
	}
	return strings.Join(titles, ", ")
}
