// Package importer reads circle lists back from CSV, Excel ledgers and DXF
// drawings, e.g. to inspect an exported layout. It supports automatic
// delimiter detection and case-insensitive header recognition.
package importer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Circle is an imported circle in file coordinates: pixel row/column for
// ledgers, drawing units for DXF.
type Circle struct {
	X      float64
	Y      float64
	Radius float64
}

// ImportResult holds the results of an import operation.
type ImportResult struct {
	Circles  []Circle
	Errors   []string
	Warnings []string
}

// ColumnMapping maps semantic column roles to their indices in the data.
type ColumnMapping struct {
	Row    int
	Column int
	Radius int
}

// headerAliases maps canonical column names to their accepted aliases (all lowercase).
var headerAliases = map[string][]string{
	"row":    {"row", "i", "y", "center row"},
	"column": {"column", "col", "j", "x", "center column"},
	"radius": {"radius", "r", "size"},
}

// Import dispatches on the file extension.
func Import(path string) ImportResult {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv", ".txt", ".tsv":
		return ImportCSV(path)
	case ".xlsx", ".xlsm":
		return ImportExcel(path)
	case ".dxf":
		return ImportDXF(path)
	default:
		return ImportResult{Errors: []string{fmt.Sprintf("Unsupported file type %q", filepath.Ext(path))}}
	}
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
// mapping Row, Column, Radius and false otherwise.
func DetectColumns(row []string) (ColumnMapping, bool) {
	mapping := ColumnMapping{Row: -1, Column: -1, Radius: -1}

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
				case "row":
					if mapping.Row == -1 {
						mapping.Row = i
					}
				case "column":
					if mapping.Column == -1 {
						mapping.Column = i
					}
				case "radius":
					if mapping.Radius == -1 {
						mapping.Radius = i
					}
				}
			}
		}
	}

	if !isHeader {
		return ColumnMapping{Row: 0, Column: 1, Radius: 2}, false
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

// parseRow extracts a Circle from a row using the given column mapping.
func parseRow(row []string, mapping ColumnMapping, rowLabel string) (Circle, string) {
	fields := []struct {
		name string
		idx  int
	}{
		{"row", mapping.Row},
		{"column", mapping.Column},
		{"radius", mapping.Radius},
	}

	var vals [3]float64
	for k, f := range fields {
		s := getCell(row, f.idx)
		if s == "" {
			return Circle{}, fmt.Sprintf("%s: Missing %s value", rowLabel, f.name)
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return Circle{}, fmt.Sprintf("%s: Invalid %s '%s'", rowLabel, f.name, s)
		}
		vals[k] = v
	}

	if vals[2] <= 0 {
		return Circle{}, fmt.Sprintf("%s: Radius must be positive", rowLabel)
	}
	return Circle{X: vals[1], Y: vals[0], Radius: vals[2]}, ""
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

// ImportCSV imports circles from a CSV file.
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
	result = ImportCSVFromReader(bytes.NewReader(data), delimiter)
	if delimiter != ',' {
		delimName := map[rune]string{';': "semicolon", '\t': "tab", '|': "pipe"}[delimiter]
		result.Warnings = append([]string{fmt.Sprintf("Detected %s delimiter", delimName)}, result.Warnings...)
	}
	return result
}

// ImportCSVFromReader imports circles from a CSV reader with a specific delimiter.
func ImportCSVFromReader(reader io.Reader, delimiter rune) ImportResult {
	csvReader := csv.NewReader(reader)
	csvReader.Comma = delimiter
	csvReader.LazyQuotes = true
	csvReader.FieldsPerRecord = -1

	records, err := csvReader.ReadAll()
	if err != nil {
		return ImportResult{Errors: []string{fmt.Sprintf("Cannot read CSV: %v", err)}}
	}
	return importFromRows(records, "Line")
}

// ImportExcel imports circles from the first sheet of an Excel workbook,
// such as the ledger written by the export package.
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

	return importFromRows(rows, "Row")
}

// importFromRows is the shared import logic for both CSV and Excel data.
func importFromRows(rows [][]string, rowPrefix string) ImportResult {
	result := ImportResult{}

	if len(rows) == 0 {
		result.Errors = append(result.Errors, "No data rows found")
		return result
	}

	mapping, hasHeader := DetectColumns(rows[0])
	startRow := 0
	if hasHeader {
		startRow = 1
		var missing []string
		if mapping.Row == -1 {
			missing = append(missing, "Row")
		}
		if mapping.Column == -1 {
			missing = append(missing, "Column")
		}
		if mapping.Radius == -1 {
			missing = append(missing, "Radius")
		}
		if len(missing) > 0 {
			result.Errors = append(result.Errors, fmt.Sprintf("Required columns not found in header: %s", strings.Join(missing, ", ")))
			return result
		}
	}

	for i := startRow; i < len(rows); i++ {
		row := rows[i]
		if isEmptyRow(row) {
			continue
		}

		circle, errMsg := parseRow(row, mapping, fmt.Sprintf("%s %d", rowPrefix, i+1))
		if errMsg != "" {
			result.Errors = append(result.Errors, errMsg)
			continue
		}
		result.Circles = append(result.Circles, circle)
	}

	return result
}

// Summary describes an imported circle list.
type Summary struct {
	Count      int
	MinRadius  float64
	MaxRadius  float64
	MeanRadius float64
	// Bounding box of all circle outlines.
	MinX, MinY, MaxX, MaxY float64
}

// Summarize computes radius statistics and the extent of circles.
func Summarize(circles []Circle) Summary {
	s := Summary{Count: len(circles)}
	if len(circles) == 0 {
		return s
	}

	s.MinRadius = math.Inf(1)
	s.MinX, s.MinY = math.Inf(1), math.Inf(1)
	s.MaxX, s.MaxY = math.Inf(-1), math.Inf(-1)
	var total float64
	for _, c := range circles {
		s.MinRadius = math.Min(s.MinRadius, c.Radius)
		s.MaxRadius = math.Max(s.MaxRadius, c.Radius)
		total += c.Radius

		s.MinX = math.Min(s.MinX, c.X-c.Radius)
		s.MinY = math.Min(s.MinY, c.Y-c.Radius)
		s.MaxX = math.Max(s.MaxX, c.X+c.Radius)
		s.MaxY = math.Max(s.MaxY, c.Y+c.Radius)
	}
	s.MeanRadius = total / float64(len(circles))
	return s
}
