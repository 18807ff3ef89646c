package core

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidColumnIndex is returned when a correction's column index falls
	// outside the supplied column-name list.
	ErrInvalidColumnIndex = errors.New("invalid column index")

	// ErrMissingColumnMapping is returned when a correction names no usable
	// column and no column-name list is available to resolve its index.
	ErrMissingColumnMapping = errors.New("missing column_name or columns to map column index")

	// ErrInvalidRowIndex is returned when a correction targets a row the table
	// does not have.
	ErrInvalidRowIndex = errors.New("invalid row index")
)

// Correction is a caller-approved instruction to overwrite one cell.
// The target column is ColumnName when set, otherwise Column resolved through
// the caller's column-name list.
type Correction struct {
	Row            int     `json:"row"`
	Column         *int    `json:"column,omitempty"`
	ColumnName     *string `json:"column_name,omitempty"`
	SuggestedValue Cell    `json:"suggested_value"`
}

// ApplyCorrections writes each correction's value into t, in order; when two
// corrections target the same cell the later one wins. columns maps column
// indexes to names and may be nil when every correction carries a name.
//
// All directives are resolved before anything is written, so on error t is
// left untouched.
func ApplyCorrections(t *Table, corrections []Correction, columns []string) (*Table, error) {
	type target struct {
		row, col int
		value    Cell
	}

	targets := make([]target, 0, len(corrections))
	for i, c := range corrections {
		col, err := resolveColumn(t, c, columns)
		if err != nil {
			return t, fmt.Errorf("correction %d: %w", i, err)
		}
		if c.Row < 0 || c.Row >= t.NumRows() {
			return t, fmt.Errorf("correction %d: %w: %d", i, ErrInvalidRowIndex, c.Row)
		}
		targets = append(targets, target{row: c.Row, col: col, value: c.SuggestedValue})
	}

	for _, tg := range targets {
		t.Rows[tg.row][tg.col] = tg.value
	}
	return t, nil
}

// resolveColumn returns the table position a correction targets.
func resolveColumn(t *Table, c Correction, columns []string) (int, error) {
	name := ""
	switch {
	case c.ColumnName != nil:
		name = *c.ColumnName
	case c.Column != nil && columns != nil:
		idx := *c.Column
		if idx < 0 || idx >= len(columns) {
			return 0, fmt.Errorf("%w: %d", ErrInvalidColumnIndex, idx)
		}
		name = columns[idx]
	default:
		return 0, ErrMissingColumnMapping
	}

	pos := t.ColumnIndex(name)
	if pos < 0 {
		return 0, fmt.Errorf("%w: unknown column %q", ErrMissingColumnMapping, name)
	}
	return pos, nil
}
