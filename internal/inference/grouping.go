package inference

import (
	"strings"

	"sheetboard/domain/briefing"
)

// groupKeywords are the categorical header hints, in priority order
var groupKeywords = []string{
	"categoria", "category",
	"tipo", "type",
	"grupo", "group",
	"cliente", "client",
	"projeto", "project",
	"status",
	"mês", "mes", "month",
	"departamento", "department",
}

// ResolveGrouping scans headers in order and groups by the first one containing
// any group keyword; without a match every row goes into the default group.
func ResolveGrouping(headers []string) briefing.Grouping {
	for _, header := range headers {
		if containsAny(strings.ToLower(header), groupKeywords) {
			return briefing.Grouping{
				Strategy:     briefing.GroupByColumn,
				ByColumn:     header,
				DefaultGroup: briefing.UncategorizedGroup,
			}
		}
	}
	return briefing.Grouping{
		Strategy:     briefing.GroupSingleGroup,
		DefaultGroup: briefing.DefaultGroupName,
	}
}
