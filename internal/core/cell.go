package core

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// CellKind tags the variant held by a Cell.
type CellKind int

const (
	CellEmpty CellKind = iota
	CellText
	CellNumber
)

// Cell is a single table value: empty, free text, or a number.
//
// Number cells keep the raw text they were read from so detectors and issue
// records always see the value exactly as the user supplied it.
type Cell struct {
	Kind CellKind
	Raw  string  // Original text (empty for CellEmpty)
	Num  float64 // Parsed value, meaningful only for CellNumber
}

// Empty returns the empty cell.
func Empty() Cell { return Cell{} }

// Text returns a text cell. The empty string yields an empty cell.
func Text(s string) Cell {
	if s == "" {
		return Cell{}
	}
	return Cell{Kind: CellText, Raw: s}
}

// Number returns a numeric cell whose textual form is the shortest
// representation of f.
func Number(f float64) Cell {
	return Cell{Kind: CellNumber, Raw: strconv.FormatFloat(f, 'f', -1, 64), Num: f}
}

// NumberFromText returns a numeric cell when raw parses as a plain number,
// otherwise a text cell.
func NumberFromText(raw string) Cell {
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return Text(raw)
	}
	return Cell{Kind: CellNumber, Raw: raw, Num: f}
}

// IsEmpty reports whether the cell holds no value.
func (c Cell) IsEmpty() bool { return c.Kind == CellEmpty }

// IsText reports whether the cell holds free text.
func (c Cell) IsText() bool { return c.Kind == CellText }

// String returns the cell's original text ("" for empty cells).
func (c Cell) String() string { return c.Raw }

// MarshalJSON encodes empty cells as null, numbers as JSON numbers and text as
// JSON strings.
func (c Cell) MarshalJSON() ([]byte, error) {
	switch c.Kind {
	case CellEmpty:
		return []byte("null"), nil
	case CellNumber:
		if json.Valid([]byte(c.Raw)) {
			return []byte(c.Raw), nil
		}
		if math.IsNaN(c.Num) || math.IsInf(c.Num, 0) {
			return json.Marshal(c.Raw)
		}
		return []byte(strconv.FormatFloat(c.Num, 'f', -1, 64)), nil
	default:
		return json.Marshal(c.Raw)
	}
}

// UnmarshalJSON accepts null, strings, numbers and booleans.
func (c *Cell) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*c = Empty()
		return nil
	}

	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*c = Text(s)
	case 't', 'f':
		var b bool
		if err := json.Unmarshal(data, &b); err != nil {
			return err
		}
		*c = Text(strconv.FormatBool(b))
	default:
		f, err := strconv.ParseFloat(string(data), 64)
		if err != nil {
			return fmt.Errorf("invalid cell value %s", data)
		}
		*c = Cell{Kind: CellNumber, Raw: string(data), Num: f}
	}
	return nil
}
