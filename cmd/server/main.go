package main

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/matkassen/backend/config"
	httpDelivery "github.com/matkassen/backend/internal/delivery/http"
	"github.com/matkassen/backend/internal/infrastructure/credential"
	"github.com/matkassen/backend/internal/infrastructure/mathem"
	"github.com/matkassen/backend/internal/infrastructure/recipes"
	"github.com/matkassen/backend/internal/usecase"
)

func main() {
	// .env is optional; deployed environments set variables directly
	if err := godotenv.Load(); err == nil {
		log.Printf("Loaded environment from .env")
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Printf("Starting Matkassen Backend v0.2.0")
	log.Printf("Environment: %s", cfg.Server.Environment)
	log.Printf("Port: %s", cfg.Server.Port)
	log.Printf("Retailer: %s (search variant: %s)", cfg.Retailer.BaseURL, cfg.Search.Variant)

	// Initialize infrastructure dependencies
	creds := credential.NewFileSource(cfg.Auth.CookieFile)
	if creds.Load() == "" {
		log.Printf("WARNING: no session credential at %s - basket calls will be unauthenticated", cfg.Auth.CookieFile)
	}

	client := mathem.NewClient(mathem.Options{
		BaseURL:          cfg.Retailer.BaseURL,
		Origin:           cfg.Retailer.Origin,
		Country:          cfg.Retailer.Country,
		Language:         cfg.Retailer.Language,
		UserAgent:        cfg.Retailer.UserAgent,
		BrowserUserAgent: cfg.Retailer.BrowserUserAgent,
		Variant:          cfg.Search.Variant,
		EmbeddedCap:      cfg.Search.EmbeddedCap,
		RPS:              cfg.RateLimit.RPS,
		Burst:            cfg.RateLimit.Burst,
	}, creds)

	fetcher := recipes.NewFetcher(cfg.Retailer.BrowserUserAgent)

	// The catalog is loaded once here and injected; it stays immutable for
	// the process lifetime.
	catalog := recipes.LoadCatalog(cfg.Recipes.File)

	// Initialize usecase layer
	grocery := usecase.NewGroceryService(client, client, fetcher, catalog)

	// Create HTTP handler with dependencies
	handler := httpDelivery.NewHandler(grocery)

	// Setup router
	router := httpDelivery.SetupRouter(cfg, handler)

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("Server listening on %s", addr)

	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func init() {
	// Set log flags for better debugging
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.SetOutput(os.Stdout)
}
