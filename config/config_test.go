package config

import (
	"os"
	"testing"
)

func TestLoad(t *testing.T) {
	// Clean up environment before tests
	cleanupEnv := func() {
		os.Unsetenv("MATHEM_SERVER_PORT")
		os.Unsetenv("MATHEM_SERVER_ENVIRONMENT")
		os.Unsetenv("MATHEM_RETAILER_BASE_URL")
		os.Unsetenv("MATHEM_RETAILER_ORIGIN")
		os.Unsetenv("MATHEM_RETAILER_COUNTRY")
		os.Unsetenv("MATHEM_RETAILER_LANGUAGE")
		os.Unsetenv("MATHEM_RETAILER_USER_AGENT")
		os.Unsetenv("MATHEM_AUTH_COOKIE_FILE")
		os.Unsetenv("MATHEM_RECIPES_FILE")
		os.Unsetenv("MATHEM_SEARCH_VARIANT")
		os.Unsetenv("MATHEM_SEARCH_EMBEDDED_CAP")
		os.Unsetenv("MATHEM_RATELIMIT_RPS")
		os.Unsetenv("MATHEM_RATELIMIT_BURST")
	}

	t.Run("loads with defaults when no env vars set", func(t *testing.T) {
		cleanupEnv()
		defer cleanupEnv()

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() error = %v, want nil", err)
		}

		// Check defaults
		if cfg.Server.Port != "8080" {
			t.Errorf("Server.Port = %s, want 8080", cfg.Server.Port)
		}
		if cfg.Server.Environment != "development" {
			t.Errorf("Server.Environment = %s, want development", cfg.Server.Environment)
		}
		if cfg.Retailer.BaseURL != "https://www.mathem.se" {
			t.Errorf("Retailer.BaseURL = %s, want https://www.mathem.se", cfg.Retailer.BaseURL)
		}
		if cfg.Retailer.Country != "se" {
			t.Errorf("Retailer.Country = %s, want se", cfg.Retailer.Country)
		}
		if cfg.Retailer.Language != "sv" {
			t.Errorf("Retailer.Language = %s, want sv", cfg.Retailer.Language)
		}
		if cfg.Retailer.UserAgent != "MatMCP/0.2.0" {
			t.Errorf("Retailer.UserAgent = %s, want MatMCP/0.2.0", cfg.Retailer.UserAgent)
		}
		if cfg.Auth.CookieFile != "cookie.txt" {
			t.Errorf("Auth.CookieFile = %s, want cookie.txt", cfg.Auth.CookieFile)
		}
		if cfg.Recipes.File != "recipes.csv" {
			t.Errorf("Recipes.File = %s, want recipes.csv", cfg.Recipes.File)
		}
		if cfg.Search.Variant != SearchVariantAPI {
			t.Errorf("Search.Variant = %s, want %s", cfg.Search.Variant, SearchVariantAPI)
		}
		if cfg.Search.EmbeddedCap != 7 {
			t.Errorf("Search.EmbeddedCap = %d, want 7", cfg.Search.EmbeddedCap)
		}
		if cfg.RateLimit.RPS != 2.0 {
			t.Errorf("RateLimit.RPS = %v, want 2.0", cfg.RateLimit.RPS)
		}
		if cfg.RateLimit.Burst != 5 {
			t.Errorf("RateLimit.Burst = %d, want 5", cfg.RateLimit.Burst)
		}
	})

	t.Run("loads custom values from environment variables", func(t *testing.T) {
		cleanupEnv()
		os.Setenv("MATHEM_SERVER_PORT", "9090")
		os.Setenv("MATHEM_SERVER_ENVIRONMENT", "production")
		os.Setenv("MATHEM_RETAILER_BASE_URL", "https://retailer.example.com")
		os.Setenv("MATHEM_RETAILER_COUNTRY", "no")
		os.Setenv("MATHEM_RETAILER_LANGUAGE", "nb")
		os.Setenv("MATHEM_RETAILER_USER_AGENT", "CustomAgent/1.0")
		os.Setenv("MATHEM_AUTH_COOKIE_FILE", "/var/lib/session/cookie.txt")
		os.Setenv("MATHEM_SEARCH_VARIANT", "embedded")
		os.Setenv("MATHEM_SEARCH_EMBEDDED_CAP", "5")
		defer cleanupEnv()

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() error = %v, want nil", err)
		}

		if cfg.Server.Port != "9090" {
			t.Errorf("Server.Port = %s, want 9090", cfg.Server.Port)
		}
		if cfg.Server.Environment != "production" {
			t.Errorf("Server.Environment = %s, want production", cfg.Server.Environment)
		}
		if cfg.Retailer.BaseURL != "https://retailer.example.com" {
			t.Errorf("Retailer.BaseURL = %s, want https://retailer.example.com", cfg.Retailer.BaseURL)
		}
		if cfg.Retailer.Country != "no" {
			t.Errorf("Retailer.Country = %s, want no", cfg.Retailer.Country)
		}
		if cfg.Retailer.Language != "nb" {
			t.Errorf("Retailer.Language = %s, want nb", cfg.Retailer.Language)
		}
		if cfg.Retailer.UserAgent != "CustomAgent/1.0" {
			t.Errorf("Retailer.UserAgent = %s, want CustomAgent/1.0", cfg.Retailer.UserAgent)
		}
		if cfg.Auth.CookieFile != "/var/lib/session/cookie.txt" {
			t.Errorf("Auth.CookieFile = %s, want /var/lib/session/cookie.txt", cfg.Auth.CookieFile)
		}
		if cfg.Search.Variant != SearchVariantEmbedded {
			t.Errorf("Search.Variant = %s, want embedded", cfg.Search.Variant)
		}
		if cfg.Search.EmbeddedCap != 5 {
			t.Errorf("Search.EmbeddedCap = %d, want 5", cfg.Search.EmbeddedCap)
		}
	})

	t.Run("fails validation for unknown search variant", func(t *testing.T) {
		cleanupEnv()
		os.Setenv("MATHEM_SEARCH_VARIANT", "soap")
		defer cleanupEnv()

		_, err := Load()
		if err == nil {
			t.Error("Load() error = nil, want error for unknown search variant")
		}
	})

	t.Run("fails validation for non-positive embedded cap", func(t *testing.T) {
		cleanupEnv()
		os.Setenv("MATHEM_SEARCH_EMBEDDED_CAP", "0")
		defer cleanupEnv()

		_, err := Load()
		if err == nil {
			t.Error("Load() error = nil, want error for zero embedded cap")
		}
	})
}
