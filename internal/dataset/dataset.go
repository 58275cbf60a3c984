// Package dataset reads banana measurement datasets: comma-separated text
// with a header line, seven numeric columns in field order and an optional
// quality label column.
package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/dotcommander/bananaq/internal/types"
)

// Row is one dataset record with its optional quality label.
type Row struct {
	Line   int          // 1-based line number in the source
	Record types.Record
	Label  string // "Good", "Bad" or empty when the dataset carries no label
}

// Labelled reports whether the row carries a quality label.
func (r Row) Labelled() bool {
	return r.Label != ""
}

// RowError describes a malformed dataset row.
type RowError struct {
	Line   int
	Column int // 1-based, 0 when the whole row is at fault
	Err    error
}

func (e *RowError) Error() string {
	if e.Column > 0 {
		return fmt.Sprintf("line %d, column %d: %v", e.Line, e.Column, e.Err)
	}
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *RowError) Unwrap() error {
	return e.Err
}

// ErrTooFewColumns is wrapped by a RowError for rows shorter than seven columns.
var ErrTooFewColumns = errors.New("too few columns")

// Load reads the dataset at path.
func Load(path string) ([]Row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset: %w", err)
	}
	defer f.Close()

	rows, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return rows, nil
}

// Parse reads a dataset from r. The first line is a header and is skipped.
// Blank lines are ignored. A malformed row stops parsing with a *RowError.
func Parse(r io.Reader) ([]Row, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	reader.ReuseRecord = true

	var rows []Row
	header := true
	for {
		cells, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read dataset: %w", err)
		}
		line, _ := reader.FieldPos(0)
		if header {
			header = false
			continue
		}

		row, err := parseRow(line, cells)
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}

	return rows, nil
}

func parseRow(line int, cells []string) (Row, error) {
	if len(cells) < len(types.Fields) {
		return Row{}, &RowError{Line: line, Err: fmt.Errorf("%w: got %d, want %d", ErrTooFewColumns, len(cells), len(types.Fields))}
	}

	row := Row{Line: line}
	for i, f := range types.Fields {
		cell := strings.TrimSpace(cells[i])
		v, err := strconv.ParseFloat(cell, 64)
		if err != nil {
			return Row{}, &RowError{Line: line, Column: i + 1, Err: fmt.Errorf("%s: %q is not a number", f, cell)}
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return Row{}, &RowError{Line: line, Column: i + 1, Err: fmt.Errorf("%s: %q is not a finite number", f, cell)}
		}
		row.Record = row.Record.With(f, v)
	}

	if len(cells) > len(types.Fields) {
		label, err := parseLabel(cells[len(types.Fields)])
		if err != nil {
			return Row{}, &RowError{Line: line, Column: len(types.Fields) + 1, Err: err}
		}
		row.Label = label
	}

	return row, nil
}

// parseLabel normalizes a quality label. Empty cells mean unlabelled.
func parseLabel(cell string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(cell)) {
	case "":
		return "", nil
	case "good":
		return types.QualityGood, nil
	case "bad":
		return types.QualityBad, nil
	}
	return "", fmt.Errorf("unknown quality label %q", cell)
}
