package materialize

import (
	"sheetboard/domain/briefing"
	"sheetboard/domain/sheet"
	"sheetboard/internal/inference"
)

// CoerceValue converts a raw cell into the value stored for a column of the given type.
// Numeric types store the normalized number, falling back to the raw text when it
// does not parse. Dates are stored as their raw text.
func CoerceValue(t briefing.ColumnType, raw sheet.Cell) sheet.Cell {
	if raw.IsBlank() {
		return sheet.Empty()
	}
	if t.IsNumeric() {
		if f, ok := inference.CellNumber(raw); ok {
			return sheet.Numeric(f)
		}
	}
	return sheet.Text(raw.String())
}
