package heuristic

import (
	"context"
	"fmt"
	"strings"

	"sheetboard/adapters/excel"
	"sheetboard/domain/briefing"
	"sheetboard/internal/inference"
	"sheetboard/ports"
)

// LargeDatasetRows is the row count above which the size recommendation fires
const LargeDatasetRows = 100

// Generator builds briefings from keyword and value rules, without any external call
type Generator struct {
	classifier *inference.ColumnClassifier
}

// NewGenerator creates a heuristic briefing generator
func NewGenerator() *Generator {
	return &Generator{classifier: inference.NewColumnClassifier(inference.DefaultClassifierConfig())}
}

var _ ports.BriefingProducer = (*Generator)(nil)

// Source identifies this producer
func (g *Generator) Source() briefing.Source { return briefing.SourceHeuristic }

// SampleSize is the number of rows the classifier sniffs per column
func (g *Generator) SampleSize() int { return excel.HeuristicSampleSize }

// ProduceBriefing composes column classification, grouping and visualization rules
func (g *Generator) ProduceBriefing(ctx context.Context, req ports.BriefingRequest) (*briefing.Briefing, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	structure := req.Structure
	types := g.classifier.ClassifyTable(structure.Headers, structure.SampleRows)

	columns := make([]briefing.SuggestedColumn, 0, len(structure.Headers))
	for _, header := range structure.Headers {
		columns = append(columns, briefing.SuggestedColumn{
			Name:        header,
			Type:        types[header],
			Description: describeColumn(header, types[header]),
		})
	}

	return &briefing.Briefing{
		Summary:          g.summarize(structure.Headers, structure.RowCount, req.Description),
		DataType:         inference.InferDataType(structure.FileInfo.Name),
		Grouping:         inference.ResolveGrouping(structure.Headers),
		SuggestedColumns: columns,
		Visualizations:   inference.SuggestVisualizations(structure.Headers, types),
		Recommendations:  recommend(types, structure.RowCount),
	}, nil
}

// summarize renders the summary template
func (g *Generator) summarize(headers []string, rowCount int, description string) string {
	summary := fmt.Sprintf("Spreadsheet with %d rows and %d columns (%s).",
		rowCount, len(headers), strings.Join(headers, ", "))
	if d := strings.TrimSpace(description); d != "" {
		summary += " " + d
	}
	return summary
}

func describeColumn(header string, t briefing.ColumnType) string {
	switch t {
	case briefing.TypeStatus:
		return fmt.Sprintf("Current state of each item (%s)", header)
	case briefing.TypePriority:
		return fmt.Sprintf("Priority level from %s", header)
	case briefing.TypePerson:
		return fmt.Sprintf("Person associated with the item (%s)", header)
	case briefing.TypeDate:
		return fmt.Sprintf("Date values from %s", header)
	case briefing.TypeLink:
		return fmt.Sprintf("Links from %s", header)
	case briefing.TypeCurrency:
		return fmt.Sprintf("Monetary amount from %s", header)
	case briefing.TypeNumber:
		return fmt.Sprintf("Numeric values from %s", header)
	default:
		return fmt.Sprintf("Free text from %s", header)
	}
}

// recommend emits the templated recommendations gated on column types and size
func recommend(types map[string]briefing.ColumnType, rowCount int) []string {
	has := func(want briefing.ColumnType) bool {
		for _, t := range types {
			if t == want {
				return true
			}
		}
		return false
	}

	recommendations := []string{}
	if has(briefing.TypeStatus) {
		recommendations = append(recommendations, "Use a kanban view grouped by status to track progress.")
	}
	if has(briefing.TypeDate) {
		recommendations = append(recommendations, "Add a timeline view to follow items by date.")
	}
	if has(briefing.TypeCurrency) {
		recommendations = append(recommendations, "Create a dashboard with financial totals.")
	}
	if rowCount > LargeDatasetRows {
		recommendations = append(recommendations, "Large dataset: use filters and saved views to keep the board manageable.")
	}
	return recommendations
}
