package dataset

import (
	"context"
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"fcdash/pkg/contracts/domain"
)

// defaultCountries are the per-source fallback labels, assigned positionally
// in load order. The dashboard is defined over exactly these three sources;
// a different source count is not supported.
var defaultCountries = [3]string{"Indonesia", "Japan", "Singapore"}

// sourceTable is one parsed input file before normalization.
type sourceTable struct {
	path    string
	headers []string
	rows    [][]string
}

// Load reads the three source files, reconciles their column spellings,
// fills per-source defaults, and concatenates them into the unified table.
// Any unreadable or malformed source fails the whole load; unparseable year
// or value cells are coerced to nil instead, and the row is retained.
func Load(ctx context.Context, pathA, pathB, pathC string) ([]domain.IndicatorRecord, error) {
	logger := slog.Default().With(slog.String("component", "dataset_loader"))

	paths := [3]string{pathA, pathB, pathC}
	var unified []domain.IndicatorRecord

	for i, path := range paths {
		table, err := parseSource(path)
		if err != nil {
			return nil, fmt.Errorf("failed to load source %q: %w", path, err)
		}

		records := normalizeSource(table, defaultCountries[i])
		unified = append(unified, records...)

		logger.InfoContext(ctx, "source normalized",
			slog.String("path", path),
			slog.String("default_country", defaultCountries[i]),
			slog.Int("rows", len(records)))
	}

	logger.InfoContext(ctx, "unified table built", slog.Int("total_rows", len(unified)))

	return unified, nil
}

// parseSource reads a tabular file into headers plus string cells.
// The extension selects the reader: .xlsx goes through excelize (first
// sheet), everything else is treated as CSV.
func parseSource(path string) (*sourceTable, error) {
	var rows [][]string
	var err error

	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		rows, err = readXLSX(path)
	default:
		rows, err = readCSV(path)
	}
	if err != nil {
		return nil, err
	}

	if len(rows) == 0 {
		// A source with zero rows (not even a header) contributes nothing
		return &sourceTable{path: path}, nil
	}

	return &sourceTable{
		path:    path,
		headers: rows[0],
		rows:    rows[1:],
	}, nil
}

// readCSV parses a delimited file into raw string rows.
func readCSV(path string) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1 // sources carry ragged rows
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse csv: %w", err)
	}

	return rows, nil
}

// readXLSX parses the first sheet of an Excel workbook into raw string rows.
func readXLSX(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}

	return rows, nil
}

// normalizeSource turns one parsed source into unified records.
func normalizeSource(table *sourceTable, defaultCountry string) []domain.IndicatorRecord {
	if len(table.rows) == 0 {
		return nil
	}

	index := columnIndex(table.headers)

	// COUNTRY absent, or present but entirely empty, falls back to the
	// source's positional default label for every row.
	useDefaultCountry := true
	if col, ok := index[ColCountry]; ok {
		for _, row := range table.rows {
			if cell(row, col) != "" {
				useDefaultCountry = false
				break
			}
		}
	}

	_, hasType := index[ColType]

	records := make([]domain.IndicatorRecord, 0, len(table.rows))
	for _, row := range table.rows {
		record := domain.IndicatorRecord{
			Country:   cellAt(row, index, ColCountry),
			Indicator: cellAt(row, index, ColIndicator),
			Year:      parseYear(cellAt(row, index, ColYear)),
			Value:     parseValue(cellAt(row, index, ColValue)),
			Type:      cellAt(row, index, ColType),
		}

		if useDefaultCountry {
			record.Country = defaultCountry
		}
		if !hasType {
			record.Type = domain.TypeActual
		}

		// Derived, never set independently
		record.IsForecast = strings.EqualFold(record.Type, domain.TypeForecast)

		records = append(records, record)
	}

	return records
}

// cell returns the trimmed value at col, or "" when the row is too short.
func cell(row []string, col int) string {
	if col < 0 || col >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[col])
}

// cellAt resolves a canonical column through the index before reading it.
func cellAt(row []string, index map[string]int, canonical string) string {
	col, ok := index[canonical]
	if !ok {
		return ""
	}
	return cell(row, col)
}

// parseYear coerces a year cell to a nullable integer. Unparseable values
// become nil rather than failing the load; integral floats such as "2020.0"
// are accepted.
func parseYear(raw string) *int {
	if raw == "" {
		return nil
	}

	if year, err := strconv.Atoi(raw); err == nil {
		return &year
	}

	if f, err := strconv.ParseFloat(raw, 64); err == nil && f == float64(int(f)) {
		year := int(f)
		return &year
	}

	return nil
}

// parseValue coerces a value cell to a nullable float. Thousands separators
// are tolerated; anything else unparseable becomes nil.
func parseValue(raw string) *float64 {
	if raw == "" {
		return nil
	}

	value, err := strconv.ParseFloat(strings.ReplaceAll(raw, ",", ""), 64)
	if err != nil {
		return nil
	}

	return &value
}
