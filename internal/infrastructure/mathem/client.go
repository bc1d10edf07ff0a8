// Package mathem implements the retailer-facing client: product search,
// basket reads, and basket writes against the tienda-web API, normalized
// into the flat domain records the tool surface serves.
package mathem

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/matkassen/backend/internal/domain"
	"golang.org/x/time/rate"
)

const (
	searchPath     = "/tienda-web-api/v1/search/"
	searchPagePath = "/se/sok"
	cartPath       = "/tienda-web-api/v1/cart/"
	cartItemsPath  = "/tienda-web-api/v1/cart/items/"

	requestTimeout = 30 * time.Second

	// maxErrorBody caps how much of an error response body is carried into
	// failure records
	maxErrorBody = 4096
)

// Options configures the retailer client
type Options struct {
	BaseURL          string
	Origin           string
	Country          string
	Language         string
	UserAgent        string
	BrowserUserAgent string
	Variant          string // "api" or "embedded"
	EmbeddedCap      int    // fixed result cap for the embedded variant
	RPS              float64
	Burst            int
}

// Client handles communication with the retailer's web API
type Client struct {
	httpClient       *http.Client
	baseURL          string
	origin           string
	country          string
	language         string
	userAgent        string
	browserUserAgent string
	variant          string
	embeddedCap      int
	limiter          *rate.Limiter
	creds            domain.CredentialSource
}

// NewClient creates a new retailer client. creds supplies the session
// credential, re-read on every basket call.
func NewClient(opts Options, creds domain.CredentialSource) *Client {
	rps := opts.RPS
	if rps <= 0 {
		rps = 2.0
	}
	burst := opts.Burst
	if burst <= 0 {
		burst = 5
	}
	embeddedCap := opts.EmbeddedCap
	if embeddedCap <= 0 {
		embeddedCap = 7
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: requestTimeout,
		},
		baseURL:          opts.BaseURL,
		origin:           opts.Origin,
		country:          opts.Country,
		language:         opts.Language,
		userAgent:        opts.UserAgent,
		browserUserAgent: opts.BrowserUserAgent,
		variant:          opts.Variant,
		embeddedCap:      embeddedCap,
		limiter:          rate.NewLimiter(rate.Limit(rps), burst),
		creds:            creds,
	}
}

// doRequest waits for the rate limiter and executes a single HTTP request.
// No retries: every failure is terminal for the call.
func (c *Client) doRequest(req *http.Request) (*http.Response, error) {
	if err := c.limiter.Wait(req.Context()); err != nil {
		return nil, fmt.Errorf("rate limiter error: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrRetailerUnavailable, err)
	}

	return resp, nil
}

// newRequest builds a request against the retailer's base URL
func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	return req, nil
}

// readLimitedBody reads at most limit bytes from a response body
func readLimitedBody(r io.Reader, limit int64) ([]byte, error) {
	return io.ReadAll(io.LimitReader(r, limit))
}
