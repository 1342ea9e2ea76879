// Package importer reads custom sprite orders from CSV and Excel files.
// It supports automatic delimiter detection, flexible column mapping, and
// case-insensitive header recognition.
package importer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/piwi3910/SpritePack/internal/model"
)

// OrderImport holds the results of an import operation.
type OrderImport struct {
	Names    []string
	Errors   []string
	Warnings []string
}

// ColumnMapping maps semantic column roles to their indices in the data.
type ColumnMapping struct {
	Name  int
	Order int
}

// headerAliases maps canonical column names to their accepted aliases (all lowercase).
var headerAliases = map[string][]string{
	"name":  {"name", "sprite", "file", "filename", "file name", "image", "frame"},
	"order": {"order", "index", "position", "pos", "#"},
}

// DetectCSVDelimiter reads the file content and determines the most likely CSV delimiter.
// It tries comma, semicolon, tab, and pipe. The delimiter that produces the most
// consistent (non-one) column count across lines wins; single-column files
// fall back to comma.
func DetectCSVDelimiter(data []byte) rune {
	candidates := []rune{',', ';', '\t', '|'}
	bestDelimiter := ','
	bestScore := 0

	for _, delim := range candidates {
		reader := csv.NewReader(bytes.NewReader(data))
		reader.Comma = delim
		reader.LazyQuotes = true
		reader.FieldsPerRecord = -1

		records, err := reader.ReadAll()
		if err != nil || len(records) < 1 {
			continue
		}

		firstCols := len(records[0])
		if firstCols < 2 {
			continue
		}

		score := 0
		for _, row := range records {
			if len(row) == firstCols {
				score++
			}
		}

		weighted := score*10 + firstCols
		if weighted > bestScore {
			bestScore = weighted
			bestDelimiter = delim
		}
	}

	return bestDelimiter
}

// DetectColumns examines a header row and returns a ColumnMapping.
// It returns the mapping and true if a header was detected, or the
// positional mapping (name in the first column, no order column) and false.
func DetectColumns(row []string) (ColumnMapping, bool) {
	mapping := ColumnMapping{Name: -1, Order: -1}

	isHeader := false
	for i, cell := range row {
		normalized := strings.ToLower(strings.TrimSpace(cell))
		for role, aliases := range headerAliases {
			for _, alias := range aliases {
				if normalized != alias {
					continue
				}
				isHeader = true
				switch role {
				case "name":
					if mapping.Name == -1 {
						mapping.Name = i
					}
				case "order":
					if mapping.Order == -1 {
						mapping.Order = i
					}
				}
			}
		}
	}

	if !isHeader {
		return ColumnMapping{Name: 0, Order: -1}, false
	}
	return mapping, true
}

// getCell safely retrieves a cell value from a row by column index.
func getCell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// ImportOrderCSV reads a sprite order from a CSV file.
func ImportOrderCSV(path string) OrderImport {
	result := OrderImport{}

	data, err := os.ReadFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open file: %v", err))
		return result
	}
	if len(bytes.TrimSpace(data)) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	delimiter := DetectCSVDelimiter(data)
	if delimiter != ',' {
		delimName := map[rune]string{';': "semicolon", '\t': "tab", '|': "pipe"}[delimiter]
		result.Warnings = append(result.Warnings, fmt.Sprintf("Detected %s delimiter", delimName))
	}

	imported := ImportOrderCSVFromReader(bytes.NewReader(data), delimiter)
	imported.Warnings = append(result.Warnings, imported.Warnings...)
	return imported
}

// ImportOrderCSVFromReader reads a sprite order with a known delimiter.
func ImportOrderCSVFromReader(reader io.Reader, delimiter rune) OrderImport {
	csvReader := csv.NewReader(reader)
	csvReader.Comma = delimiter
	csvReader.LazyQuotes = true
	csvReader.FieldsPerRecord = -1

	records, err := csvReader.ReadAll()
	if err != nil {
		return OrderImport{Errors: []string{fmt.Sprintf("Cannot read CSV: %v", err)}}
	}
	if len(records) == 0 {
		return OrderImport{Errors: []string{"File is empty"}}
	}
	return importFromRows(records, "Line")
}

// ImportOrderExcel reads a sprite order from the first sheet of an Excel file.
func ImportOrderExcel(path string) OrderImport {
	result := OrderImport{}

	f, err := excelize.OpenFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open Excel file: %v", err))
		return result
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		result.Errors = append(result.Errors, "Excel file has no sheets")
		return result
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read Excel data: %v", err))
		return result
	}
	if len(rows) == 0 {
		result.Errors = append(result.Errors, "Sheet is empty")
		return result
	}

	return importFromRows(rows, "Row")
}

// ImportOrder dispatches on the file extension.
func ImportOrder(path string) OrderImport {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm", ".xls":
		return ImportOrderExcel(path)
	default:
		return ImportOrderCSV(path)
	}
}

// importFromRows is the shared import logic for both CSV and Excel data.
// When an order column is present, names are sorted by it (stable).
func importFromRows(rows [][]string, rowPrefix string) OrderImport {
	result := OrderImport{}

	mapping, hasHeader := DetectColumns(rows[0])
	startRow := 0
	if hasHeader {
		startRow = 1
		result.Warnings = append(result.Warnings, "Detected header row, skipping")
		if mapping.Name == -1 {
			result.Errors = append(result.Errors, "Required column not found in header: Name")
			return result
		}
	}

	type ranked struct {
		name string
		rank int
	}
	var items []ranked
	seen := make(map[string]bool)

	for i := startRow; i < len(rows); i++ {
		row := rows[i]
		if isEmptyRow(row) {
			continue
		}
		rowLabel := fmt.Sprintf("%s %d", rowPrefix, i+1)

		name := getCell(row, mapping.Name)
		if name == "" {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: Missing name", rowLabel))
			continue
		}

		rank := len(items)
		if mapping.Order >= 0 {
			rankStr := getCell(row, mapping.Order)
			n, err := strconv.Atoi(rankStr)
			if err != nil {
				result.Errors = append(result.Errors, fmt.Sprintf("%s: Invalid order '%s'", rowLabel, rankStr))
				continue
			}
			rank = n
		}

		if seen[name] {
			result.Warnings = append(result.Warnings, fmt.Sprintf("%s: Duplicate name '%s' ignored", rowLabel, name))
			continue
		}
		seen[name] = true
		items = append(items, ranked{name: name, rank: rank})
	}

	sort.SliceStable(items, func(a, b int) bool { return items[a].rank < items[b].rank })
	result.Names = make([]string, len(items))
	for i, it := range items {
		result.Names[i] = it.name
	}
	return result
}

// ApplyOrder returns entries ordered by names. A name matches an entry's
// display name, its file name or its identifier. Names that match nothing
// are reported as warnings; entries not listed follow in their existing
// order.
func ApplyOrder(entries []model.ImageEntry, names []string) ([]model.ImageEntry, []string) {
	lookup := make(map[string]int, 3*len(entries))
	for i := len(entries) - 1; i >= 0; i-- {
		e := entries[i]
		lookup[e.ID] = i
		lookup[filepath.Base(e.ID)] = i
		lookup[e.Name] = i
	}

	var warnings []string
	used := make([]bool, len(entries))
	out := make([]model.ImageEntry, 0, len(entries))
	for _, name := range names {
		i, ok := lookup[name]
		if !ok {
			warnings = append(warnings, fmt.Sprintf("No image named '%s'", name))
			continue
		}
		if used[i] {
			continue
		}
		used[i] = true
		out = append(out, entries[i])
	}
	for i, e := range entries {
		if !used[i] {
			out = append(out, e)
		}
	}
	return out, warnings
}
