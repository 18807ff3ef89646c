package core

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Table is a rectangular grid of cells with ordered, named columns.
//
// A Table is exclusively owned by the call processing it. Detectors never
// mutate it; only ApplyCorrections writes into targeted cells.
type Table struct {
	Columns []string
	Rows    [][]Cell
}

// NewTable builds a table and enforces that every row has one cell per column.
func NewTable(columns []string, rows [][]Cell) (*Table, error) {
	for i, row := range rows {
		if len(row) != len(columns) {
			return nil, fmt.Errorf("row %d has %d cells, expected %d", i, len(row), len(columns))
		}
	}
	return &Table{Columns: columns, Rows: rows}, nil
}

// NumRows returns the number of data rows.
func (t *Table) NumRows() int { return len(t.Rows) }

// Column returns a copy of the values in column idx, in row order.
func (t *Table) Column(idx int) []Cell {
	out := make([]Cell, len(t.Rows))
	for i, row := range t.Rows {
		if idx < len(row) {
			out[i] = row[idx]
		}
	}
	return out
}

// ColumnIndex returns the position of the first column named name, or -1.
func (t *Table) ColumnIndex(name string) int {
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// Clone returns a deep copy of the table.
func (t *Table) Clone() *Table {
	cols := append([]string(nil), t.Columns...)
	rows := make([][]Cell, len(t.Rows))
	for i, row := range t.Rows {
		rows[i] = append([]Cell(nil), row...)
	}
	return &Table{Columns: cols, Rows: rows}
}

// Records returns the rows as column-ordered records for JSON output.
func (t *Table) Records() []Record {
	out := make([]Record, len(t.Rows))
	for i, row := range t.Rows {
		out[i] = NewRecord(t.Columns, row)
	}
	return out
}

// TableFromRecords builds a table from decoded records. When columns is
// empty, column order follows first appearance across the records.
func TableFromRecords(columns []string, records []Record) *Table {
	if len(columns) == 0 {
		seen := make(map[string]bool)
		for _, rec := range records {
			for _, c := range rec.columns {
				if !seen[c] {
					seen[c] = true
					columns = append(columns, c)
				}
			}
		}
	}

	rows := make([][]Cell, len(records))
	for i, rec := range records {
		row := make([]Cell, len(columns))
		for j, c := range columns {
			row[j] = rec.Get(c)
		}
		rows[i] = row
	}
	return &Table{Columns: columns, Rows: rows}
}

// Record is one table row keyed by column name. Its JSON form is an object
// whose keys keep the table's column order.
type Record struct {
	columns []string
	cells   []Cell
}

// NewRecord pairs column names with cells.
func NewRecord(columns []string, cells []Cell) Record {
	return Record{columns: columns, cells: cells}
}

// Get returns the cell stored under column name, or an empty cell.
func (r Record) Get(name string) Cell {
	for i, c := range r.columns {
		if c == name && i < len(r.cells) {
			return r.cells[i]
		}
	}
	return Empty()
}

// MarshalJSON writes the record as an ordered JSON object.
func (r Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, c := range r.columns {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(c)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')

		var cell Cell
		if i < len(r.cells) {
			cell = r.cells[i]
		}
		val, err := cell.MarshalJSON()
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads a JSON object, remembering key order.
func (r *Record) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("record must be a JSON object")
	}

	r.columns = r.columns[:0]
	r.cells = r.cells[:0]
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("record key must be a string")
		}
		var cell Cell
		if err := dec.Decode(&cell); err != nil {
			return fmt.Errorf("record field %q: %w", key, err)
		}
		r.columns = append(r.columns, key)
		r.cells = append(r.cells, cell)
	}
	_, err = dec.Token()
	return err
}
