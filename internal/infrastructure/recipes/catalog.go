// Package recipes loads the static recipe catalog and extracts structured
// recipe metadata from third-party recipe pages.
package recipes

import (
	"encoding/csv"
	"io"
	"log"
	"os"

	"github.com/matkassen/backend/internal/domain"
)

// LoadCatalog reads the recipe list from a CSV file with header row
// "id,title,url". A missing or malformed file yields an empty catalog, never
// an error: the rest of the tool surface works without recipes.
func LoadCatalog(path string) []domain.RecipeRef {
	f, err := os.Open(path)
	if err != nil {
		log.Printf("[RECIPES] No catalog loaded from %s: %v", path, err)
		return []domain.RecipeRef{}
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = 3

	// Skip the header row
	if _, err := reader.Read(); err != nil {
		log.Printf("[RECIPES] Catalog %s is empty or malformed: %v", path, err)
		return []domain.RecipeRef{}
	}

	catalog := []domain.RecipeRef{}
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			log.Printf("[RECIPES] Catalog %s is malformed: %v", path, err)
			return []domain.RecipeRef{}
		}
		catalog = append(catalog, domain.RecipeRef{
			ID:    record[0],
			Title: record[1],
			URL:   record[2],
		})
	}

	log.Printf("[RECIPES] Loaded %d recipes from %s", len(catalog), path)
	return catalog
}
