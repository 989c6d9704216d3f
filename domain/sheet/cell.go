package sheet

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// CellKind tags the dynamic type of a spreadsheet cell
type CellKind int

const (
	CellEmpty CellKind = iota
	CellText
	CellNumeric
)

// Cell is a spreadsheet value resolved once at read time.
// The zero value is an empty cell.
type Cell struct {
	Kind   CellKind
	Text   string
	Number float64
}

// Empty returns an empty cell
func Empty() Cell { return Cell{Kind: CellEmpty} }

// Text returns a text cell; an empty string yields an empty cell
func Text(s string) Cell {
	if s == "" {
		return Empty()
	}
	return Cell{Kind: CellText, Text: s}
}

// Numeric returns a numeric cell
func Numeric(f float64) Cell { return Cell{Kind: CellNumeric, Number: f} }

// String stringifies the cell the way it is shown to users and stored as text
func (c Cell) String() string {
	switch c.Kind {
	case CellText:
		return c.Text
	case CellNumeric:
		return strconv.FormatFloat(c.Number, 'f', -1, 64)
	default:
		return ""
	}
}

// Trimmed returns the stringified value with surrounding whitespace removed
func (c Cell) Trimmed() string {
	return strings.TrimSpace(c.String())
}

// IsBlank reports whether the cell is empty once stringified and trimmed
func (c Cell) IsBlank() bool {
	return c.Trimmed() == ""
}

// IsNumeric reports whether the cell carries a native number
func (c Cell) IsNumeric() bool {
	return c.Kind == CellNumeric
}

// MarshalJSON encodes the cell as null, a string, or a number
func (c Cell) MarshalJSON() ([]byte, error) {
	switch c.Kind {
	case CellText:
		return json.Marshal(c.Text)
	case CellNumeric:
		return json.Marshal(c.Number)
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON accepts null, strings, numbers and booleans
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
		var f float64
		if err := json.Unmarshal(data, &f); err != nil {
			return fmt.Errorf("unsupported cell value %s: %w", string(data), err)
		}
		*c = Numeric(f)
	}
	return nil
}

// Row is an ordered sequence of cells aligned to headers
type Row []Cell

// At returns the cell at idx, or an empty cell when the row is short
func (r Row) At(idx int) Cell {
	if idx < 0 || idx >= len(r) {
		return Empty()
	}
	return r[idx]
}
