package inference

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sheetboard/domain/sheet"
)

func TestProfileColumns(t *testing.T) {
	table := &sheet.Table{
		Headers: []string{"Cliente", "Valor"},
		Rows: []sheet.Row{
			{sheet.Text("Acme"), sheet.Text("R$ 100,00")},
			{sheet.Text("Acme"), sheet.Numeric(300)},
			{sheet.Text("Beta"), sheet.Empty()},
		},
	}

	profiles := ProfileColumns(table)
	require.Len(t, profiles, 2)

	assert.Equal(t, "Cliente", profiles[0].Name)
	assert.Equal(t, 3, profiles[0].NonEmpty)
	assert.Equal(t, 2, profiles[0].Distinct)
	assert.Nil(t, profiles[0].Numeric)

	valor := profiles[1]
	assert.Equal(t, 2, valor.NonEmpty)
	require.NotNil(t, valor.Numeric)
	assert.Equal(t, 2, valor.Numeric.Count)
	assert.InDelta(t, 100, valor.Numeric.Min, 1e-9)
	assert.InDelta(t, 300, valor.Numeric.Max, 1e-9)
	assert.InDelta(t, 200, valor.Numeric.Mean, 1e-9)
	assert.InDelta(t, 400, valor.Numeric.Sum, 1e-9)
}

func TestProfileColumnsNilTable(t *testing.T) {
	assert.Nil(t, ProfileColumns(nil))
}
