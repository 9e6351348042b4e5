// Package importer converts spreadsheet word lists (xlsx or csv) into
// vocabulary sets, so existing material can be brought in without
// hand-writing the JSON documents.
package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"github.com/example/vocabtrain/pkg/models"
)

// Config defines the import configuration. Columns are spreadsheet
// letters; the same letters index csv fields (A = first field).
type Config struct {
	FilePath              string // Path to the xlsx or csv file
	TargetColumn          string // Column with the word being learned
	NativeColumn          string // Column with the translation
	ExamplesColumn        string // Column with example sentences, ";"-separated
	TagsColumn            string // Column with tags, ","-separated
	TransliterationColumn string // Column with the transliteration
	SheetName             string // Sheet to import (xlsx only)
	StartRow              int    // First data row, 1-based

	SetID    string // Set id; generated when empty
	SetName  string // Display name; file name when empty
	Language string // Language code of the target words
}

// DefaultConfig returns the default import configuration.
func DefaultConfig(filePath string) Config {
	return Config{
		FilePath:              filePath,
		TargetColumn:          "A",
		NativeColumn:          "B",
		ExamplesColumn:        "C",
		TagsColumn:            "D",
		TransliterationColumn: "E",
		SheetName:             "Sheet1",
		StartRow:              2, // По умолчанию первая строка - заголовок
	}
}

// Result holds the outcome of an import operation.
type Result struct {
	TotalProcessed int
	Imported       int
	Skipped        int
	Errors         []string
}

// Import reads the configured file and builds a vocabulary set.
func Import(config Config) (*models.VocabularySet, *Result, error) {
	var rows [][]string
	var err error
	if strings.EqualFold(filepath.Ext(config.FilePath), ".csv") {
		rows, err = readCSV(config.FilePath)
	} else {
		rows, err = readExcel(config.FilePath, config.SheetName)
	}
	if err != nil {
		return nil, nil, err
	}

	set := &models.VocabularySet{
		ID:        config.SetID,
		Name:      config.SetName,
		Language:  config.Language,
		CreatedAt: time.Now(),
	}
	if set.ID == "" {
		set.ID = uuid.NewString()
	}
	if set.Name == "" {
		name := filepath.Base(config.FilePath)
		set.Name = strings.TrimSuffix(name, filepath.Ext(name))
	}

	result := &Result{Errors: make([]string, 0)}
	now := time.Now()
	for i, row := range rows {
		if i < config.StartRow-1 {
			continue
		}
		result.TotalProcessed++

		word, err := parseRow(row, config, now)
		if err != nil {
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d: %v", i+1, err))
			continue
		}
		set.Words = append(set.Words, *word)
		result.Imported++
	}

	return set, result, nil
}

func parseRow(row []string, config Config, now time.Time) (*models.Word, error) {
	target := cell(row, config.TargetColumn)
	if target == "" {
		return nil, fmt.Errorf("missing target word")
	}
	native := cell(row, config.NativeColumn)
	if native == "" {
		return nil, fmt.Errorf("missing translation")
	}

	word := &models.Word{
		Target:          target,
		Native:          native,
		Transliteration: cell(row, config.TransliterationColumn),
		Stats:           models.NewReviewStats(now),
	}
	if raw := cell(row, config.ExamplesColumn); raw != "" {
		word.Examples = splitList(raw, ";")
	}
	if raw := cell(row, config.TagsColumn); raw != "" {
		word.Tags = splitList(raw, ",")
	}
	return word, nil
}

func readExcel(path, sheet string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to get rows: %w", err)
	}
	return rows, nil
}

func readCSV(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1 // строки могут иметь разное число колонок

	var rows [][]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV: %w", err)
		}
		rows = append(rows, record)
	}
	return rows, nil
}

// cell returns the trimmed value at the given column letter, "" when the
// row is too short or the column is not configured.
func cell(row []string, column string) string {
	if column == "" {
		return ""
	}
	idx, err := excelize.ColumnNameToNumber(column)
	if err != nil || idx-1 >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx-1])
}

func splitList(raw, sep string) []string {
	parts := strings.Split(raw, sep)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
