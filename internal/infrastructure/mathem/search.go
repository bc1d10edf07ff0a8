package mathem

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/matkassen/backend/internal/domain"
)

const (
	// embeddedStateMarker identifies the script tag holding the serialized
	// page state on server-rendered pages
	embeddedStateMarker = `<script id="__NEXT_DATA__"`

	// searchQueryMarker selects the dehydrated query carrying search results
	searchQueryMarker = "searchProducts"
)

// Search queries the retailer for products matching query. The parsing
// strategy is selected by configuration: the stable JSON API, or the
// page-state JSON embedded in the search page HTML. The API variant caps
// results at limit; the embedded variant keeps its fixed cap and ignores
// limit, as the scraped page carries only the first page of results anyway.
// Parse and transport errors are returned to the caller; the usecase layer
// owns the empty-list-on-failure contract.
func (c *Client) Search(ctx context.Context, query string, limit int) ([]domain.Product, error) {
	if c.variant == "embedded" {
		return c.searchEmbedded(ctx, query)
	}
	return c.searchAPI(ctx, query, limit)
}

// searchResponse is the JSON API's top-level search payload
type searchResponse struct {
	Products []searchProduct `json:"products"`
}

// searchProduct carries the snake_case fields of the JSON API shape
type searchProduct struct {
	ID                int64        `json:"id"`
	Name              string       `json:"name"`
	NameExtra         string       `json:"name_extra"`
	Brand             string       `json:"brand"`
	GrossPrice        flexString   `json:"gross_price"`
	Currency          string       `json:"currency"`
	GrossUnitPrice    flexString   `json:"gross_unit_price"`
	UnitAbbreviation  string       `json:"unit_price_quantity_abbreviation"`
	ClientClassifiers []classifier `json:"client_classifiers"`
	Promotions        []promotion  `json:"promotions"`
}

// toDomain normalizes one search result. ok is false when the record should
// be dropped (empty name).
func (p *searchProduct) toDomain() (domain.Product, bool) {
	if p.Name == "" {
		return domain.Product{}, false
	}
	return domain.Product{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.NameExtra,
		Brand:       p.Brand,
		Price:       formatPrice(string(p.GrossPrice), p.Currency),
		UnitPrice:   formatUnitPrice(string(p.GrossUnitPrice), p.Currency, p.UnitAbbreviation),
		Labels:      classifierNames(p.ClientClassifiers),
		Offer:       joinPromotions(p.Promotions),
	}, true
}

// searchAPI queries the direct JSON search endpoint
func (c *Client) searchAPI(ctx context.Context, query string, limit int) ([]domain.Product, error) {
	if limit <= 0 {
		return []domain.Product{}, nil
	}

	req, err := c.newRequest(ctx, http.MethodGet, searchPath+"?q="+url.QueryEscape(query), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.doRequest(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: status %d", domain.ErrUnexpectedStatus, resp.StatusCode)
	}

	var searchResp searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&searchResp); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrDecodeFailed, err)
	}

	// The limit truncates the raw result list before empty-name filtering,
	// so a blank record inside the first limit entries consumes a slot.
	raw := searchResp.Products
	if limit < len(raw) {
		raw = raw[:limit]
	}

	products := make([]domain.Product, 0, len(raw))
	for i := range raw {
		if p, ok := raw[i].toDomain(); ok {
			products = append(products, p)
		}
	}
	return products, nil
}

// pageState mirrors the fixed path through the embedded page-state JSON:
// props.pageProps.dehydratedState.queries[].state.data.items[]
type pageState struct {
	Props struct {
		PageProps struct {
			DehydratedState struct {
				Queries []stateQuery `json:"queries"`
			} `json:"dehydratedState"`
		} `json:"pageProps"`
	} `json:"props"`
}

type stateQuery struct {
	QueryKey json.RawMessage `json:"queryKey"`
	State    struct {
		Data struct {
			Items []stateItem `json:"items"`
		} `json:"data"`
	} `json:"state"`
}

// stateItem is one entry of the dehydrated result list; only entries with
// type "product" carry product attributes
type stateItem struct {
	Type       string          `json:"type"`
	Attributes stateAttributes `json:"attributes"`
}

// stateAttributes carries the camelCase twins of the JSON API's snake_case
// fields
type stateAttributes struct {
	ID                int64        `json:"id"`
	Name              string       `json:"name"`
	NameExtra         string       `json:"nameExtra"`
	Brand             string       `json:"brand"`
	GrossPrice        flexString   `json:"grossPrice"`
	Currency          string       `json:"currency"`
	GrossUnitPrice    flexString   `json:"grossUnitPrice"`
	UnitAbbreviation  string       `json:"unitPriceQuantityAbbreviation"`
	ClientClassifiers []classifier `json:"clientClassifiers"`
	Promotions        []promotion  `json:"promotions"`
}

func (a *stateAttributes) toDomain() (domain.Product, bool) {
	p := searchProduct{
		ID:                a.ID,
		Name:              a.Name,
		NameExtra:         a.NameExtra,
		Brand:             a.Brand,
		GrossPrice:        a.GrossPrice,
		Currency:          a.Currency,
		GrossUnitPrice:    a.GrossUnitPrice,
		UnitAbbreviation:  a.UnitAbbreviation,
		ClientClassifiers: a.ClientClassifiers,
		Promotions:        a.Promotions,
	}
	return p.toDomain()
}

// searchEmbedded scrapes the search page and parses the embedded page-state
// JSON. The result count is capped at the configured fixed cap regardless of
// what the caller asked for, matching the pre-migration behavior.
func (c *Client) searchEmbedded(ctx context.Context, query string) ([]domain.Product, error) {
	req, err := c.newRequest(ctx, http.MethodGet, searchPagePath+"?q="+url.QueryEscape(query), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.browserUserAgent)

	resp, err := c.doRequest(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: status %d", domain.ErrUnexpectedStatus, resp.StatusCode)
	}

	page, err := readLimitedBody(resp.Body, 8<<20)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrRetailerUnavailable, err)
	}

	stateJSON, err := extractEmbeddedState(string(page))
	if err != nil {
		return nil, err
	}

	// The dehydrated state is a large blob; sonic keeps the decode cheap.
	var state pageState
	if err := sonic.Unmarshal(stateJSON, &state); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrDecodeFailed, err)
	}

	products := make([]domain.Product, 0, c.embeddedCap)
	for _, q := range state.Props.PageProps.DehydratedState.Queries {
		if !strings.Contains(string(q.QueryKey), searchQueryMarker) {
			continue
		}
		for i := range q.State.Data.Items {
			item := &q.State.Data.Items[i]
			if item.Type != "product" {
				continue
			}
			if p, ok := item.Attributes.toDomain(); ok {
				products = append(products, p)
				if len(products) >= c.embeddedCap {
					return products, nil
				}
			}
		}
	}
	return products, nil
}

// extractEmbeddedState cuts the page-state JSON out of the single known
// script tag in the page HTML
func extractEmbeddedState(page string) ([]byte, error) {
	start := strings.Index(page, embeddedStateMarker)
	if start < 0 {
		return nil, domain.ErrNoEmbeddedState
	}
	rest := page[start:]

	open := strings.Index(rest, ">")
	if open < 0 {
		return nil, domain.ErrNoEmbeddedState
	}
	rest = rest[open+1:]

	end := strings.Index(rest, "</script>")
	if end < 0 {
		return nil, domain.ErrNoEmbeddedState
	}

	return []byte(strings.TrimSpace(rest[:end])), nil
}
