// Package importer reads cut lists from CSV, Excel and DXF files.
// CSV import detects the delimiter automatically, and both CSV and Excel
// map columns by case-insensitive header aliases.
package importer

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
	"go.uber.org/multierr"

	"github.com/piwi3910/YardCut/internal/model"
)

// ErrNoPieces is returned by ImportResult.Table when nothing was imported.
var ErrNoPieces = errors.New("no pieces imported")

// ImportResult holds the results of an import operation.
type ImportResult struct {
	Pieces   []model.PieceSpec
	Errors   []string
	Warnings []string
}

// Table turns the result into a named piece table. Any row error fails
// the whole import so a cut list is never silently short of pieces.
func (r ImportResult) Table(name string) (model.PieceTable, error) {
	var errs error
	for _, e := range r.Errors {
		errs = multierr.Append(errs, errors.New(e))
	}
	if errs != nil {
		return model.PieceTable{}, errs
	}
	if len(r.Pieces) == 0 {
		return model.PieceTable{}, ErrNoPieces
	}
	return model.PieceTable{Name: name, Pieces: r.Pieces}, nil
}

// ColumnMapping maps semantic column roles to their indices in the data.
type ColumnMapping struct {
	Label      int
	Horizontal int
	Vertical   int
	Quantity   int
}

// headerAliases maps canonical column names to their accepted aliases (all lowercase).
var headerAliases = map[string][]string{
	"label":      {"label", "name", "piece", "piece name", "part", "description", "desc", "item"},
	"horizontal": {"horizontal", "horiz", "width", "w", "across", "x"},
	"vertical":   {"vertical", "vert", "height", "h", "length", "len", "along", "y"},
	"quantity":   {"quantity", "qty", "count", "num", "amount", "pcs", "pieces"},
}

// DetectCSVDelimiter reads the file content and determines the most likely CSV delimiter.
// It tries comma, semicolon, tab, and pipe. The delimiter that produces the most
// consistent (non-one) column count across lines wins.
func DetectCSVDelimiter(data []byte) rune {
	candidates := []rune{',', ';', '\t', '|'}
	bestDelimiter := ','
	bestScore := 0

	for _, delim := range candidates {
		reader := csv.NewReader(bytes.NewReader(data))
		reader.Comma = delim
		reader.LazyQuotes = true
		reader.FieldsPerRecord = -1 // Allow variable field counts

		records, err := reader.ReadAll()
		if err != nil || len(records) < 1 {
			continue
		}

		// Only consider delimiters that produce more than 1 column
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

		// Prefer delimiters with higher consistency and more columns
		weighted := score*10 + firstCols
		if weighted > bestScore {
			bestScore = weighted
			bestDelimiter = delim
		}
	}

	return bestDelimiter
}

// DetectColumns examines a header row and returns a ColumnMapping.
// Returns the mapping and true if a header was detected, or the positional
// mapping (label, horizontal, vertical, quantity) and false otherwise.
func DetectColumns(row []string) (ColumnMapping, bool) {
	mapping := ColumnMapping{
		Label:      -1,
		Horizontal: -1,
		Vertical:   -1,
		Quantity:   -1,
	}

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
				case "label":
					if mapping.Label == -1 {
						mapping.Label = i
					}
				case "horizontal":
					if mapping.Horizontal == -1 {
						mapping.Horizontal = i
					}
				case "vertical":
					if mapping.Vertical == -1 {
						mapping.Vertical = i
					}
				case "quantity":
					if mapping.Quantity == -1 {
						mapping.Quantity = i
					}
				}
			}
		}
	}

	if !isHeader {
		return positionalMapping(row), false
	}
	return mapping, true
}

// positionalMapping guesses columns for header-less data. Two numeric
// columns are (horizontal, vertical); a leading non-numeric column is the
// label; a trailing fourth column is the quantity.
func positionalMapping(row []string) ColumnMapping {
	if len(row) > 0 && !isNumber(row[0]) {
		return ColumnMapping{Label: 0, Horizontal: 1, Vertical: 2, Quantity: 3}
	}
	return ColumnMapping{Label: -1, Horizontal: 0, Vertical: 1, Quantity: 2}
}

func isNumber(s string) bool {
	_, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	return err == nil
}

// getCell safely retrieves a cell value from a row by column index.
// Returns empty string if the index is out of range or negative.
func getCell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// parseRow extracts a piece from a row using the given column mapping.
// Returns the piece and any error message.
func parseRow(row []string, mapping ColumnMapping, rowLabel string, pieceCount int) (model.PieceSpec, string) {
	label := getCell(row, mapping.Label)
	if label == "" {
		label = fmt.Sprintf("Piece %d", pieceCount+1)
	}

	hStr := getCell(row, mapping.Horizontal)
	if hStr == "" {
		return model.PieceSpec{}, fmt.Sprintf("%s: Missing horizontal value", rowLabel)
	}
	horizontal, err := strconv.ParseFloat(hStr, 64)
	if err != nil {
		return model.PieceSpec{}, fmt.Sprintf("%s: Invalid horizontal '%s'", rowLabel, hStr)
	}

	vStr := getCell(row, mapping.Vertical)
	if vStr == "" {
		return model.PieceSpec{}, fmt.Sprintf("%s: Missing vertical value", rowLabel)
	}
	vertical, err := strconv.ParseFloat(vStr, 64)
	if err != nil {
		return model.PieceSpec{}, fmt.Sprintf("%s: Invalid vertical '%s'", rowLabel, vStr)
	}

	// Quantity is optional and defaults to a single piece
	qty := 1
	if qStr := getCell(row, mapping.Quantity); qStr != "" {
		qty, err = strconv.Atoi(qStr)
		if err != nil {
			return model.PieceSpec{}, fmt.Sprintf("%s: Invalid quantity '%s'", rowLabel, qStr)
		}
	}

	if horizontal <= 0 || vertical <= 0 || qty <= 0 {
		return model.PieceSpec{}, fmt.Sprintf("%s: Horizontal, vertical, and quantity must be positive", rowLabel)
	}

	return model.NewPieceSpec(label, horizontal, vertical, qty), ""
}

// isEmptyRow returns true if the row has no meaningful content.
func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// ImportFile picks an importer from the file extension.
func ImportFile(path string) ImportResult {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm", ".xltx":
		return ImportExcel(path)
	case ".dxf":
		return ImportDXF(path)
	default:
		return ImportCSV(path)
	}
}

// ImportCSV imports pieces from a CSV file.
// It automatically detects the delimiter and maps columns by header names.
// Supports comma, semicolon, tab, and pipe delimiters.
func ImportCSV(path string) ImportResult {
	result := ImportResult{}

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

	records, err := readCSV(bytes.NewReader(data), delimiter)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read CSV: %v", err))
		return result
	}

	if len(records) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	return importFromRows(records, "Line", result.Warnings)
}

// ImportCSVFromReader imports pieces from a CSV reader with a specific delimiter.
func ImportCSVFromReader(reader io.Reader, delimiter rune) ImportResult {
	result := ImportResult{}

	records, err := readCSV(reader, delimiter)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read CSV: %v", err))
		return result
	}

	if len(records) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	return importFromRows(records, "Line", nil)
}

func readCSV(r io.Reader, delimiter rune) ([][]string, error) {
	csvReader := csv.NewReader(r)
	csvReader.Comma = delimiter
	csvReader.LazyQuotes = true
	csvReader.FieldsPerRecord = -1
	csvReader.Comment = '#'
	return csvReader.ReadAll()
}

// ImportExcel imports pieces from an Excel (.xlsx) file.
// Reads the first sheet and auto-detects column mapping from headers.
func ImportExcel(path string) ImportResult {
	result := ImportResult{}

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

	return importFromRows(rows, "Row", nil)
}

// importFromRows is the shared import logic for both CSV and Excel data.
// It detects headers, maps columns, and parses each row into pieces.
func importFromRows(rows [][]string, rowPrefix string, initialWarnings []string) ImportResult {
	result := ImportResult{
		Warnings: initialWarnings,
	}

	if len(rows) == 0 {
		result.Errors = append(result.Errors, "No data rows found")
		return result
	}

	mapping, hasHeader := DetectColumns(rows[0])
	startRow := 0
	if hasHeader {
		startRow = 1
		result.Warnings = append(result.Warnings, "Detected header row, skipping")

		missing := []string{}
		if mapping.Horizontal == -1 {
			missing = append(missing, "Horizontal")
		}
		if mapping.Vertical == -1 {
			missing = append(missing, "Vertical")
		}
		if len(missing) > 0 {
			result.Errors = append(result.Errors, fmt.Sprintf("Required columns not found in header: %s", strings.Join(missing, ", ")))
			return result
		}
	} else if mapping.Label == 0 && len(rows[0]) >= 3 && !isNumber(rows[0][1]) {
		// Unrecognized header: skip it but keep positional mapping
		startRow = 1
		result.Warnings = append(result.Warnings, "Detected header row, skipping")
	}

	for i := startRow; i < len(rows); i++ {
		row := rows[i]
		if isEmptyRow(row) {
			continue
		}

		rowLabel := fmt.Sprintf("%s %d", rowPrefix, i+1)
		piece, errMsg := parseRow(row, mapping, rowLabel, len(result.Pieces))
		if errMsg != "" {
			result.Errors = append(result.Errors, errMsg)
			continue
		}
		result.Pieces = append(result.Pieces, piece)
	}

	return result
}
