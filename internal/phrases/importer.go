package phrases

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Adder stores one phrase; SQLStore satisfies it.
type Adder interface {
	Add(ctx context.Context, text string, phonemes []string, category Category) (Phrase, error)
}

// ImportConfig defines which columns hold each phrase field.
type ImportConfig struct {
	FilePath        string   // .xlsx or .csv
	SheetName       string   // empty uses the first sheet
	TextColumn      string   // column with the display text
	PhonemesColumn  string   // column with the space-separated transcription
	CategoryColumn  string   // column with the category; empty uses DefaultCategory
	DefaultCategory Category // used when the category cell is blank
	StartRow        int      // first data row (1-based)
}

// DefaultImportConfig returns the default import configuration: text in
// A, transcription in B, category in C, header on row 1.
func DefaultImportConfig() ImportConfig {
	return ImportConfig{
		TextColumn:      "A",
		PhonemesColumn:  "B",
		CategoryColumn:  "C",
		DefaultCategory: CategoryUserAdded,
		StartRow:        2,
	}
}

// ImportResult holds the result of an import operation.
type ImportResult struct {
	Processed int
	Created   int
	Skipped   int
	Errors    []string
}

// Import reads phrases from an Excel or CSV file and adds them to dst.
// Rows that fail are recorded in the result and skipped.
func Import(ctx context.Context, dst Adder, cfg ImportConfig) (*ImportResult, error) {
	var (
		rows [][]string
		err  error
	)
	if strings.EqualFold(filepath.Ext(cfg.FilePath), ".csv") {
		rows, err = readCSV(cfg.FilePath)
	} else {
		rows, err = readXLSX(cfg.FilePath, cfg.SheetName)
	}
	if err != nil {
		return nil, err
	}

	textIdx, err := columnIndex(cfg.TextColumn)
	if err != nil {
		return nil, err
	}
	phonemesIdx, err := columnIndex(cfg.PhonemesColumn)
	if err != nil {
		return nil, err
	}
	categoryIdx := -1
	if cfg.CategoryColumn != "" {
		if categoryIdx, err = columnIndex(cfg.CategoryColumn); err != nil {
			return nil, err
		}
	}
	defaultCategory := cfg.DefaultCategory
	if defaultCategory == "" {
		defaultCategory = CategoryUserAdded
	}
	start := max(cfg.StartRow, 1)

	result := &ImportResult{}
	for i := start - 1; i < len(rows); i++ {
		row := rows[i]
		rowNum := i + 1

		text := cell(row, textIdx)
		if text == "" {
			continue
		}
		result.Processed++

		category := defaultCategory
		if raw := cell(row, categoryIdx); raw != "" {
			c, err := ParseCategory(raw)
			if err != nil {
				result.Skipped++
				result.Errors = append(result.Errors, fmt.Sprintf("row %d: %v", rowNum, err))
				continue
			}
			category = c
		}

		_, err := dst.Add(ctx, text, SplitTranscription(cell(row, phonemesIdx)), category)
		switch {
		case errors.Is(err, ErrDuplicatePhrase):
			result.Skipped++
		case err != nil:
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: %v", rowNum, err))
		default:
			result.Created++
		}
	}
	return result, nil
}

func readXLSX(path, sheet string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open Excel file: %w", err)
	}
	defer f.Close()

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("workbook %s has no sheets", path)
		}
		sheet = sheets[0]
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	return rows, nil
}

func readCSV(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open CSV file: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	var rows [][]string
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read CSV: %w", err)
		}
		rows = append(rows, rec)
	}
	return rows, nil
}

// columnIndex converts a column letter such as "C" to a 0-based index.
func columnIndex(col string) (int, error) {
	n, err := excelize.ColumnNameToNumber(col)
	if err != nil {
		return 0, fmt.Errorf("invalid column %q: %w", col, err)
	}
	return n - 1, nil
}

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}
