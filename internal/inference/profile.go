package inference

import (
	"github.com/montanaflynn/stats"

	"sheetboard/domain/sheet"
)

// NumericSummary describes the numeric cells of a column
type NumericSummary struct {
	Count int     `json:"count"`
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
	Mean  float64 `json:"mean"`
	Sum   float64 `json:"sum"`
}

// ColumnProfile summarizes one column over the full table
type ColumnProfile struct {
	Name     string          `json:"name"`
	NonEmpty int             `json:"nonEmpty"`
	Distinct int             `json:"distinct"`
	Numeric  *NumericSummary `json:"numeric,omitempty"`
}

// ProfileColumns profiles every column of a table. A numeric summary is only
// attached when more than half of the non-empty cells are numeric.
func ProfileColumns(table *sheet.Table) []ColumnProfile {
	if table == nil {
		return nil
	}
	profiles := make([]ColumnProfile, 0, len(table.Headers))
	for idx, header := range table.Headers {
		profiles = append(profiles, profileColumn(header, table.ColumnValues(idx)))
	}
	return profiles
}

func profileColumn(name string, values []sheet.Cell) ColumnProfile {
	profile := ColumnProfile{Name: name, NonEmpty: len(values)}

	distinct := make(map[string]struct{}, len(values))
	numbers := make(stats.Float64Data, 0, len(values))
	for _, v := range values {
		distinct[v.Trimmed()] = struct{}{}
		if f, ok := CellNumber(v); ok {
			numbers = append(numbers, f)
		}
	}
	profile.Distinct = len(distinct)

	if len(numbers) == 0 || len(numbers)*2 <= len(values) {
		return profile
	}

	summary := &NumericSummary{Count: len(numbers)}
	summary.Min, _ = numbers.Min()
	summary.Max, _ = numbers.Max()
	summary.Mean, _ = numbers.Mean()
	summary.Sum, _ = numbers.Sum()
	profile.Numeric = summary
	return profile
}
