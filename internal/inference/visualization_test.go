package inference

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sheetboard/domain/briefing"
)

func TestSuggestVisualizationsFollowsRuleOrder(t *testing.T) {
	headers := []string{"Receita", "Criado em", "Qtd", "Status", "Fase"}
	types := map[string]briefing.ColumnType{
		"Receita":   briefing.TypeCurrency,
		"Criado em": briefing.TypeDate,
		"Qtd":       briefing.TypeNumber,
		"Status":    briefing.TypeStatus,
		"Fase":      briefing.TypeStatus,
	}

	got := SuggestVisualizations(headers, types)
	require.Len(t, got, 4)

	assert.Equal(t, briefing.VisualizationPie, got[0].Type)
	assert.Equal(t, "Status", got[0].DataSource)
	assert.Equal(t, "Distribution by Status", got[0].Title)

	// currency counts as numeric and comes first by position
	assert.Equal(t, briefing.VisualizationBar, got[1].Type)
	assert.Equal(t, "Receita", got[1].DataSource)

	assert.Equal(t, briefing.VisualizationLine, got[2].Type)
	assert.Equal(t, "Criado em", got[2].DataSource)

	assert.Equal(t, briefing.VisualizationMetric, got[3].Type)
	assert.Equal(t, "Total Receita", got[3].Title)
}

func TestSuggestVisualizationsTextOnly(t *testing.T) {
	headers := []string{"Nota", "Obs"}
	types := map[string]briefing.ColumnType{"Nota": briefing.TypeText, "Obs": briefing.TypeText}

	got := SuggestVisualizations(headers, types)
	assert.Empty(t, got)
}
