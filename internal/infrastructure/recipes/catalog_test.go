package recipes

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCatalogFile(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "recipes.csv")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestLoadCatalog(t *testing.T) {
	t.Run("loads records in file order", func(t *testing.T) {
		path := writeCatalogFile(t, "id,title,url\n"+
			"1,Köttbullar med potatismos,https://recipes.example.com/kottbullar\n"+
			"2,Pannkakor,https://recipes.example.com/pannkakor\n")

		catalog := LoadCatalog(path)
		require.Len(t, catalog, 2)
		assert.Equal(t, "1", catalog[0].ID)
		assert.Equal(t, "Köttbullar med potatismos", catalog[0].Title)
		assert.Equal(t, "https://recipes.example.com/kottbullar", catalog[0].URL)
		assert.Equal(t, "Pannkakor", catalog[1].Title)
	})

	t.Run("missing file yields empty catalog", func(t *testing.T) {
		catalog := LoadCatalog(filepath.Join(t.TempDir(), "nope.csv"))
		assert.NotNil(t, catalog)
		assert.Empty(t, catalog)
	})

	t.Run("empty file yields empty catalog", func(t *testing.T) {
		catalog := LoadCatalog(writeCatalogFile(t, ""))
		assert.Empty(t, catalog)
	})

	t.Run("header-only file yields empty catalog", func(t *testing.T) {
		catalog := LoadCatalog(writeCatalogFile(t, "id,title,url\n"))
		assert.Empty(t, catalog)
	})

	t.Run("malformed row yields empty catalog", func(t *testing.T) {
		catalog := LoadCatalog(writeCatalogFile(t, "id,title,url\n1,only-two-fields\n"))
		assert.Empty(t, catalog)
	})
}
