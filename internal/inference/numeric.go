package inference

import (
	"strconv"
	"strings"

	"sheetboard/domain/sheet"
)

// NormalizeNumeric strips everything except digits and separators, then resolves
// comma-as-decimal so "R$ 1.234,56" and "$1,234.56" both become 1234.56.
// Signs are stripped with the rest, so "-5" normalizes to "5".
func NormalizeNumeric(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if (r >= '0' && r <= '9') || r == ',' || r == '.' {
			b.WriteRune(r)
		}
	}
	s := b.String()

	lastComma := strings.LastIndex(s, ",")
	lastDot := strings.LastIndex(s, ".")
	switch {
	case lastComma >= 0 && lastDot >= 0 && lastComma > lastDot:
		// 1.234,56
		s = strings.ReplaceAll(s, ".", "")
		s = strings.Replace(s, ",", ".", 1)
	case lastComma >= 0 && lastDot >= 0:
		// 1,234.56
		s = strings.ReplaceAll(s, ",", "")
	case lastComma >= 0:
		if strings.Count(s, ",") == 1 {
			s = strings.Replace(s, ",", ".", 1)
		}
	case strings.Count(s, ".") > 1:
		// 1.234.567
		s = strings.ReplaceAll(s, ".", "")
	}
	return s
}

// ParseNumeric parses a raw string after NormalizeNumeric
func ParseNumeric(raw string) (float64, bool) {
	s := NormalizeNumeric(raw)
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// CellNumber returns the numeric value of a cell: native numbers as-is, text via ParseNumeric
func CellNumber(c sheet.Cell) (float64, bool) {
	switch c.Kind {
	case sheet.CellNumeric:
		return c.Number, true
	case sheet.CellText:
		return ParseNumeric(c.Text)
	default:
		return 0, false
	}
}
