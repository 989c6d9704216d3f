package inference

import (
	"fmt"

	"sheetboard/domain/briefing"
)

// SuggestVisualizations proposes at most one chart per rule, each on the first
// matching header: status pie, numeric bar, date line, currency sum metric.
// Output follows rule order, not header order.
func SuggestVisualizations(headers []string, types map[string]briefing.ColumnType) []briefing.Visualization {
	first := func(match func(briefing.ColumnType) bool) (string, bool) {
		for _, h := range headers {
			if match(types[h]) {
				return h, true
			}
		}
		return "", false
	}

	suggestions := make([]briefing.Visualization, 0, 4)

	if h, ok := first(func(t briefing.ColumnType) bool { return t == briefing.TypeStatus }); ok {
		suggestions = append(suggestions, briefing.Visualization{
			Type:        briefing.VisualizationPie,
			Title:       fmt.Sprintf("Distribution by %s", h),
			Description: fmt.Sprintf("Share of items in each %s value", h),
			DataSource:  h,
		})
	}
	if h, ok := first(briefing.ColumnType.IsNumeric); ok {
		suggestions = append(suggestions, briefing.Visualization{
			Type:        briefing.VisualizationBar,
			Title:       fmt.Sprintf("%s comparison", h),
			Description: fmt.Sprintf("Compare %s across groups", h),
			DataSource:  h,
		})
	}
	if h, ok := first(func(t briefing.ColumnType) bool { return t == briefing.TypeDate }); ok {
		suggestions = append(suggestions, briefing.Visualization{
			Type:        briefing.VisualizationLine,
			Title:       fmt.Sprintf("Trend over %s", h),
			Description: fmt.Sprintf("Item volume over time by %s", h),
			DataSource:  h,
		})
	}
	if h, ok := first(func(t briefing.ColumnType) bool { return t == briefing.TypeCurrency }); ok {
		suggestions = append(suggestions, briefing.Visualization{
			Type:        briefing.VisualizationMetric,
			Title:       fmt.Sprintf("Total %s", h),
			Description: fmt.Sprintf("Sum of %s across all items", h),
			DataSource:  h,
		})
	}

	return suggestions
}
