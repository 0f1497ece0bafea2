package dataset

import (
	"encoding/csv"
	"fmt"
	"slices"
	"strings"

	"github.com/spboyer/bootci/internal/statistics"
)

// Row represents a single CSV row with column name to value mapping.
type Row map[string]string

// LoadCSV reads a CSV file and returns rows as maps of column to value.
// The first row is treated as headers (column names), with surrounding
// whitespace removed.
func LoadCSV(path string) ([]string, []Row, error) {
	rc, err := Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("csv: open %s: %w", path, err)
	}
	defer rc.Close() //nolint:errcheck

	reader := csv.NewReader(rc)
	reader.TrimLeadingSpace = true
	records, err := reader.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("csv: parse %s: %w", path, err)
	}

	if len(records) == 0 {
		return nil, nil, fmt.Errorf("csv: %s is empty (no header row)", path)
	}

	headers := records[0]
	for i, h := range headers {
		headers[i] = strings.TrimSpace(h)
	}
	rows := make([]Row, 0, len(records)-1)
	for _, record := range records[1:] {
		row := make(Row, len(headers))
		for j, h := range headers {
			row[h] = record[j]
		}
		rows = append(rows, row)
	}

	return headers, rows, nil
}

// LoadCSVColumn reads the named column of a CSV file as a sample. Empty cells
// are skipped; a cell that is not a finite number is an *statistics.InputError
// whose line is the CSV row number, counting the header as row 1.
func LoadCSVColumn(path, column string) ([]float64, error) {
	headers, rows, err := LoadCSV(path)
	if err != nil {
		return nil, &statistics.InputError{Path: path, Err: err}
	}
	if !slices.Contains(headers, column) {
		return nil, &statistics.InputError{
			Path: path,
			Err:  fmt.Errorf("no column %q (have %s)", column, strings.Join(headers, ", ")),
		}
	}

	scores := make([]float64, 0, len(rows))
	for i, row := range rows {
		cell := strings.TrimSpace(row[column])
		if cell == "" {
			continue
		}
		v, err := parseScore(cell)
		if err != nil {
			return nil, &statistics.InputError{Path: path, Line: i + 2, Err: err}
		}
		scores = append(scores, v)
	}

	if len(scores) == 0 {
		return nil, &statistics.InputError{Path: path, Err: statistics.ErrEmptySample}
	}
	return scores, nil
}
