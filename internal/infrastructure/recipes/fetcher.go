package recipes

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"
)

const ldScriptMarker = "application/ld+json"

// Fetcher retrieves a recipe page and extracts the schema.org Recipe object
// embedded as JSON-LD. Pages are fetched fresh on every call.
type Fetcher struct {
	httpClient *http.Client
	userAgent  string
}

// NewFetcher creates a recipe fetcher
func NewFetcher(userAgent string) *Fetcher {
	return &Fetcher{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		userAgent: userAgent,
	}
}

// Fetch returns the first Recipe object found in the page's JSON-LD blocks
// as a generic map, or an empty map when the page has none or the request
// fails. Missing data is a sentinel, never an error.
func (f *Fetcher) Fetch(ctx context.Context, url string) map[string]any {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return map[string]any{}
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return map[string]any{}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return map[string]any{}
	}

	// Recipe pages are HTML documents, not media; 8 MiB is plenty.
	page, err := io.ReadAll(io.LimitReader(resp.Body, 8<<20))
	if err != nil {
		return map[string]any{}
	}

	return extractRecipe(string(page))
}

// extractRecipe scans the page for JSON-LD script blocks and returns the
// first object typed as a Recipe
func extractRecipe(page string) map[string]any {
	rest := page
	for {
		idx := strings.Index(rest, ldScriptMarker)
		if idx < 0 {
			return map[string]any{}
		}
		rest = rest[idx+len(ldScriptMarker):]

		open := strings.Index(rest, ">")
		if open < 0 {
			return map[string]any{}
		}
		end := strings.Index(rest[open+1:], "</script>")
		if end < 0 {
			return map[string]any{}
		}
		block := rest[open+1 : open+1+end]

		var decoded any
		if err := json.Unmarshal([]byte(strings.TrimSpace(block)), &decoded); err != nil {
			continue // malformed block, keep scanning
		}
		if recipe := findRecipe(decoded); recipe != nil {
			return recipe
		}
	}
}

// findRecipe walks a decoded JSON-LD value looking for an object whose @type
// is (or contains) "Recipe", descending into arrays and @graph wrappers
func findRecipe(v any) map[string]any {
	switch value := v.(type) {
	case map[string]any:
		if isRecipeType(value["@type"]) {
			return value
		}
		if graph, ok := value["@graph"]; ok {
			return findRecipe(graph)
		}
	case []any:
		for _, entry := range value {
			if recipe := findRecipe(entry); recipe != nil {
				return recipe
			}
		}
	}
	return nil
}

func isRecipeType(t any) bool {
	switch typed := t.(type) {
	case string:
		return typed == "Recipe"
	case []any:
		for _, entry := range typed {
			if s, ok := entry.(string); ok && s == "Recipe" {
				return true
			}
		}
	}
	return false
}
