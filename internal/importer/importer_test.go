package importer

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/example/wordvault/internal/database"
	"github.com/example/wordvault/internal/ingest"
)

func newTestImporter(t *testing.T) (*Importer, *database.Store) {
	t.Helper()
	store, err := database.Open(database.Config{Driver: "sqlite", DSN: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return New(ingest.NewPipeline(store)), store
}

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "vocab.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestImportCSV(t *testing.T) {
	im, store := newTestImporter(t)

	path := writeCSV(t, "source,target,source_lang,target_lang\n"+
		"dog,perro,en,es\n"+
		"cat,gato,en,es\n"+
		",missing,en,es\n"+
		"bread,pan\n")

	cfg := DefaultImportConfig()
	cfg.FilePath = path
	cfg.SourceLang = "en"
	cfg.TargetLang = "es"

	result, err := im.ImportFile(context.Background(), cfg)
	require.NoError(t, err)
	assert.Equal(t, 4, result.TotalProcessed)
	assert.Equal(t, 3, result.Created, "rows without language columns use the fallback")
	assert.Equal(t, 1, result.Skipped)
	assert.Empty(t, result.Errors)

	var count int
	require.NoError(t, store.DB().Get(&count, "SELECT COUNT(*) FROM learning_records"))
	assert.Equal(t, 3, count)

	// Fallback languages applied to the short row.
	var lang string
	require.NoError(t, store.DB().Get(&lang,
		"SELECT language FROM lexemes WHERE text = $1", "pan"))
	assert.Equal(t, "es", lang)
}

func TestImportCSVIdempotent(t *testing.T) {
	im, store := newTestImporter(t)

	path := writeCSV(t, "source,target\n"+"dog,perro\n")
	cfg := DefaultImportConfig()
	cfg.FilePath = path

	_, err := im.ImportFile(context.Background(), cfg)
	require.NoError(t, err)
	_, err = im.ImportFile(context.Background(), cfg)
	require.NoError(t, err)

	var count int
	require.NoError(t, store.DB().Get(&count, "SELECT COUNT(*) FROM learning_records"))
	assert.Equal(t, 1, count, "re-import resolves to existing rows")
}

func writeXLSX(t *testing.T, rows [][]string) string {
	t.Helper()
	f := excelize.NewFile()
	for i, row := range rows {
		for j, val := range row {
			col, err := excelize.ColumnNumberToName(j + 1)
			require.NoError(t, err)
			require.NoError(t, f.SetCellValue("Sheet1", fmt.Sprintf("%s%d", col, i+1), val))
		}
	}
	path := filepath.Join(t.TempDir(), "vocab.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestImportExcel(t *testing.T) {
	im, store := newTestImporter(t)

	path := writeXLSX(t, [][]string{
		{"source", "target", "source_lang", "target_lang"},
		{"dog", "perro", "en", "es"},
		{"chien", "dog", "fr", "en"},
		{"", "missing"},
	})

	cfg := DefaultImportConfig()
	cfg.FilePath = path
	cfg.SourceLang = "en"
	cfg.TargetLang = "es"

	result, err := im.ImportFile(context.Background(), cfg)
	require.NoError(t, err)
	assert.Equal(t, 3, result.TotalProcessed)
	assert.Equal(t, 2, result.Created)
	assert.Equal(t, 1, result.Skipped)
	assert.Empty(t, result.Errors)

	// Per-row language columns override the fallbacks.
	var lang string
	require.NoError(t, store.DB().Get(&lang,
		"SELECT language FROM lexemes WHERE text = $1", "chien"))
	assert.Equal(t, "fr", lang)
}

func TestImportExcelMissingSheet(t *testing.T) {
	im, _ := newTestImporter(t)

	path := writeXLSX(t, [][]string{{"dog", "perro"}})
	cfg := DefaultImportConfig()
	cfg.FilePath = path
	cfg.SheetName = "NoSuchSheet"

	_, err := im.ImportFile(context.Background(), cfg)
	assert.Error(t, err)
}

func TestImportMissingFile(t *testing.T) {
	im, _ := newTestImporter(t)

	cfg := DefaultImportConfig()
	cfg.FilePath = filepath.Join(t.TempDir(), "nope.csv")
	_, err := im.ImportFile(context.Background(), cfg)
	assert.Error(t, err)
}

func TestColumnIndex(t *testing.T) {
	idx, err := columnIndex("A")
	require.NoError(t, err)
	assert.Equal(t, 0, idx)

	idx, err = columnIndex("D")
	require.NoError(t, err)
	assert.Equal(t, 3, idx)

	_, err = columnIndex("")
	assert.Error(t, err)
}
