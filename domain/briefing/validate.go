package briefing

import (
	"fmt"
	"strings"
)

// Validate checks the shape contract shared by both producers: one suggested
// column per header, same order, unique names, known types and a coherent grouping.
func (b *Briefing) Validate(headers []string) error {
	if b == nil {
		return fmt.Errorf("briefing is nil")
	}
	if len(b.SuggestedColumns) != len(headers) {
		return fmt.Errorf("expected %d suggested columns, got %d", len(headers), len(b.SuggestedColumns))
	}

	seen := make(map[string]bool, len(headers))
	for i, col := range b.SuggestedColumns {
		if col.Name != headers[i] {
			return fmt.Errorf("suggested column %d is %q, expected header %q", i, col.Name, headers[i])
		}
		if seen[col.Name] {
			return fmt.Errorf("duplicate suggested column %q", col.Name)
		}
		seen[col.Name] = true
		if !col.Type.Valid() {
			return fmt.Errorf("column %q has unknown type %q", col.Name, col.Type)
		}
	}

	switch b.Grouping.Strategy {
	case GroupByColumn:
		if strings.TrimSpace(b.Grouping.ByColumn) == "" {
			return fmt.Errorf("grouping by_column requires byColumn")
		}
	case GroupSingleGroup:
	default:
		return fmt.Errorf("unknown grouping strategy %q", b.Grouping.Strategy)
	}

	return nil
}
