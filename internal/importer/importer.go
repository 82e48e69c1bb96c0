package importer

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/example/wordvault/internal/ingest"
)

// ImportConfig defines the import configuration.
type ImportConfig struct {
	FilePath         string // Path to the Excel or CSV file
	SourceColumn     string // Column with the source-language text
	TargetColumn     string // Column with the translation
	SourceLangColumn string // Column with the source language code (optional)
	TargetLangColumn string // Column with the target language code (optional)
	SourceLang       string // Fallback source language when the column is empty
	TargetLang       string // Fallback target language when the column is empty
	SheetName        string // Name of the sheet to import
	StartRow         int    // The row to start importing from (1-based index)
}

// DefaultImportConfig returns the default import configuration.
func DefaultImportConfig() ImportConfig {
	return ImportConfig{
		SourceColumn:     "A",
		TargetColumn:     "B",
		SourceLangColumn: "C",
		TargetLangColumn: "D",
		SourceLang:       "en",
		TargetLang:       "es",
		SheetName:        "Sheet1",
		StartRow:         2, // By default, start from the second row (skip header)
	}
}

// ImportResult holds the result of an import operation.
type ImportResult struct {
	TotalProcessed int
	Created        int
	Skipped        int
	Errors         []string
}

// Importer feeds spreadsheet rows into the ingestion pipeline.
type Importer struct {
	pipeline *ingest.Pipeline
}

// New creates an importer on top of the given pipeline.
func New(pipeline *ingest.Pipeline) *Importer {
	return &Importer{pipeline: pipeline}
}

// ImportFile imports vocabulary pairs from an Excel or CSV file.
func (im *Importer) ImportFile(ctx context.Context, config ImportConfig) (*ImportResult, error) {
	ext := strings.ToLower(filepath.Ext(config.FilePath))
	if ext == ".csv" {
		return im.importFromCSV(ctx, config)
	}
	return im.importFromExcel(ctx, config)
}

func (im *Importer) importFromExcel(ctx context.Context, config ImportConfig) (*ImportResult, error) {
	f, err := excelize.OpenFile(config.FilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(config.SheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %v", config.SheetName, err)
	}

	srcIdx, err := columnIndex(config.SourceColumn)
	if err != nil {
		return nil, err
	}
	tgtIdx, err := columnIndex(config.TargetColumn)
	if err != nil {
		return nil, err
	}
	srcLangIdx := -1
	if config.SourceLangColumn != "" {
		if srcLangIdx, err = columnIndex(config.SourceLangColumn); err != nil {
			return nil, err
		}
	}
	tgtLangIdx := -1
	if config.TargetLangColumn != "" {
		if tgtLangIdx, err = columnIndex(config.TargetLangColumn); err != nil {
			return nil, err
		}
	}

	result := &ImportResult{}
	for i, row := range rows {
		if i+1 < config.StartRow {
			continue
		}
		result.TotalProcessed++
		in := ingest.CaptureInput{
			SourceText: cell(row, srcIdx),
			TargetText: cell(row, tgtIdx),
			SourceLang: config.SourceLang,
			TargetLang: config.TargetLang,
		}
		if lang := cell(row, srcLangIdx); lang != "" {
			in.SourceLang = lang
		}
		if lang := cell(row, tgtLangIdx); lang != "" {
			in.TargetLang = lang
		}
		im.captureRow(ctx, i+1, in, result)
	}
	return result, nil
}

func (im *Importer) importFromCSV(ctx context.Context, config ImportConfig) (*ImportResult, error) {
	f, err := os.Open(config.FilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %v", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	result := &ImportResult{}
	rowNum := 0
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: %v", rowNum+1, err))
			continue
		}
		rowNum++
		if rowNum < config.StartRow {
			continue
		}
		result.TotalProcessed++
		// CSV layout is positional: source, target, [source lang], [target lang].
		in := ingest.CaptureInput{
			SourceText: cell(row, 0),
			TargetText: cell(row, 1),
			SourceLang: config.SourceLang,
			TargetLang: config.TargetLang,
		}
		if lang := cell(row, 2); lang != "" {
			in.SourceLang = lang
		}
		if lang := cell(row, 3); lang != "" {
			in.TargetLang = lang
		}
		im.captureRow(ctx, rowNum, in, result)
	}
	return result, nil
}

func (im *Importer) captureRow(ctx context.Context, rowNum int, in ingest.CaptureInput, result *ImportResult) {
	if strings.TrimSpace(in.SourceText) == "" || strings.TrimSpace(in.TargetText) == "" {
		result.Skipped++
		return
	}
	if _, err := im.pipeline.Capture(ctx, in); err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("row %d: %v", rowNum, err))
		return
	}
	result.Created++
}

func columnIndex(name string) (int, error) {
	n, err := excelize.ColumnNameToNumber(name)
	if err != nil {
		return 0, fmt.Errorf("invalid column %q: %v", name, err)
	}
	return n - 1, nil
}

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}
