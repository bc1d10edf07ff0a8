package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Search variants supported by the retailer client. "api" decodes the stable
// JSON search API; "embedded" scrapes the page-state JSON out of the search
// page HTML (the pre-migration behavior, kept selectable for when the API
// shifts under us again).
const (
	SearchVariantAPI      = "api"
	SearchVariantEmbedded = "embedded"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig
	Retailer  RetailerConfig
	Auth      AuthConfig
	Recipes   RecipesConfig
	Search    SearchConfig
	RateLimit RateLimitConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// RetailerConfig holds retailer endpoint and identification configuration
type RetailerConfig struct {
	BaseURL          string `mapstructure:"base_url"`
	Origin           string `mapstructure:"origin"`
	Country          string `mapstructure:"country"`
	Language         string `mapstructure:"language"`
	UserAgent        string `mapstructure:"user_agent"`
	BrowserUserAgent string `mapstructure:"browser_user_agent"`
}

// AuthConfig holds session credential configuration
type AuthConfig struct {
	CookieFile string `mapstructure:"cookie_file"`
}

// RecipesConfig holds the recipe catalog configuration
type RecipesConfig struct {
	File string `mapstructure:"file"`
}

// SearchConfig selects the search parsing strategy
type SearchConfig struct {
	Variant     string `mapstructure:"variant"`
	EmbeddedCap int    `mapstructure:"embedded_cap"`
}

// RateLimitConfig holds outbound rate limiting configuration
type RateLimitConfig struct {
	RPS   float64 `mapstructure:"rps"`
	Burst int     `mapstructure:"burst"`
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	v := viper.New()

	// Set config name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/matkassen/")

	// Environment variable settings
	v.SetEnvPrefix("MATHEM")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Set default values
	setDefaults(v)

	// Read config file (optional - will use env vars if file doesn't exist)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found; using environment variables and defaults
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	// Validate configuration
	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:3000"})

	// Retailer defaults
	v.SetDefault("retailer.base_url", "https://www.mathem.se")
	v.SetDefault("retailer.origin", "https://www.mathem.se")
	v.SetDefault("retailer.country", "se")
	v.SetDefault("retailer.language", "sv")
	v.SetDefault("retailer.user_agent", "MatMCP/0.2.0")
	v.SetDefault("retailer.browser_user_agent", "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36")

	// Auth defaults
	v.SetDefault("auth.cookie_file", "cookie.txt")

	// Recipe catalog defaults
	v.SetDefault("recipes.file", "recipes.csv")

	// Search defaults
	v.SetDefault("search.variant", SearchVariantAPI)
	v.SetDefault("search.embedded_cap", 7)

	// Rate limit defaults (requests per second against the retailer)
	v.SetDefault("ratelimit.rps", 2.0)
	v.SetDefault("ratelimit.burst", 5)
}

// validate validates the configuration
func validate(config *Config) error {
	if config.Retailer.BaseURL == "" {
		return fmt.Errorf("retailer base URL is required (set MATHEM_RETAILER_BASE_URL)")
	}

	if config.Search.Variant != SearchVariantAPI && config.Search.Variant != SearchVariantEmbedded {
		return fmt.Errorf("search variant must be %q or %q, got: %s", SearchVariantAPI, SearchVariantEmbedded, config.Search.Variant)
	}

	if config.Search.EmbeddedCap <= 0 {
		return fmt.Errorf("search embedded cap must be positive, got: %d", config.Search.EmbeddedCap)
	}

	return nil
}
