// Package excel imports vocabulary word lists from spreadsheet files into
// the shared word bank.
package excel

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/henryli127-lang/volca/internal/domain"
)

// ImportConfig defines the import configuration.
type ImportConfig struct {
	FilePath   string // Path to the Excel file
	SheetName  string // Name of the sheet to import
	Language   string // Language of the imported words
	SkipHeader bool   // Skip the first row
}

// DefaultImportConfig returns the default import configuration. Columns are
// fixed: A word, B translation, C definition, D phonetic, E example.
func DefaultImportConfig(filePath string) ImportConfig {
	return ImportConfig{
		FilePath:   filePath,
		SheetName:  "Sheet1",
		Language:   "en",
		SkipHeader: true,
	}
}

// ImportResult holds the result of an import operation.
type ImportResult struct {
	TotalProcessed int
	Imported       int
	Skipped        int
	Errors         []string
}

// ImportWords reads the configured sheet and upserts each row into the word
// bank. Rows without a word are skipped; per-row failures are collected, not
// fatal.
func ImportWords(ctx context.Context, words domain.WordRepository, config ImportConfig) (*ImportResult, error) {
	f, err := excelize.OpenFile(config.FilePath)
	if err != nil {
		return nil, fmt.Errorf("open spreadsheet: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(config.SheetName)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", config.SheetName, err)
	}

	result := &ImportResult{}
	for i, row := range rows {
		if i == 0 && config.SkipHeader {
			continue
		}
		result.TotalProcessed++

		entry := rowToEntry(row)
		if entry.Text == "" {
			result.Skipped++
			continue
		}

		if _, err := words.Upsert(ctx, entry, config.Language); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("row %d (%s): %v", i+1, entry.Text, err))
			slog.Warn("Word import failed", "row", i+1, "word", entry.Text, "error", err)
			continue
		}
		result.Imported++
	}

	return result, nil
}

func rowToEntry(row []string) domain.WordEntry {
	cell := func(idx int) string {
		if idx < len(row) {
			return strings.TrimSpace(row[idx])
		}
		return ""
	}

	return domain.WordEntry{
		Text:        strings.ToLower(cell(0)),
		Translation: cell(1),
		Definition:  cell(2),
		Phonetic:    cell(3),
		Example:     cell(4),
	}
}
