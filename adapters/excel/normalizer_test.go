package excel

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sheetboard/domain/core"
	"sheetboard/domain/sheet"
)

func textRow(values ...string) sheet.Row {
	row := make(sheet.Row, len(values))
	for i, v := range values {
		row[i] = sheet.Text(v)
	}
	return row
}

func TestNormalizeDropsEmptyHeadersAndReindexes(t *testing.T) {
	raw := &sheet.RawSheet{
		FileInfo: sheet.FileInfo{Name: "vendas.xlsx", SheetName: "Plan1"},
		Rows: []sheet.Row{
			textRow(" Cliente ", "", "Valor"),
			textRow("Acme", "ignored", "1000"),
			textRow("", "  ", ""),
			{sheet.Text("Beta"), sheet.Empty(), sheet.Numeric(200)},
		},
	}

	table, structure, err := Normalize(raw, HeuristicSampleSize)
	require.NoError(t, err)

	assert.Equal(t, []string{"Cliente", "Valor"}, table.Headers)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, sheet.Row{sheet.Text("Acme"), sheet.Text("1000")}, table.Rows[0])
	assert.Equal(t, sheet.Row{sheet.Text("Beta"), sheet.Numeric(200)}, table.Rows[1])

	assert.Equal(t, 2, structure.RowCount)
	assert.Equal(t, "Plan1", structure.FileInfo.SheetName)
}

func TestNormalizeDiscardsRowsBlankOnlyInKeptColumns(t *testing.T) {
	raw := &sheet.RawSheet{Rows: []sheet.Row{
		textRow("A", "", "B"),
		textRow("", "only in dropped column", ""),
		textRow("x"),
	}}

	table, structure, err := Normalize(raw, 10)
	require.NoError(t, err)
	assert.Equal(t, 1, structure.RowCount)
	assert.Equal(t, sheet.Row{sheet.Text("x"), sheet.Empty()}, table.Rows[0])
}

func TestNormalizeCapsSampleButCountsAllRows(t *testing.T) {
	rows := []sheet.Row{textRow("Tarefa")}
	for i := 0; i < 25; i++ {
		rows = append(rows, textRow("t"))
	}

	_, heuristic, err := Normalize(&sheet.RawSheet{Rows: rows}, HeuristicSampleSize)
	require.NoError(t, err)
	assert.Equal(t, 25, heuristic.RowCount)
	assert.Len(t, heuristic.SampleRows, 10)

	_, classifier, err := Normalize(&sheet.RawSheet{Rows: rows}, ClassifierSampleSize)
	require.NoError(t, err)
	assert.Equal(t, 25, classifier.RowCount)
	assert.Len(t, classifier.SampleRows, 5)
}

func TestNormalizeErrors(t *testing.T) {
	_, _, err := Normalize(&sheet.RawSheet{}, 10)
	assert.True(t, errors.Is(err, core.ErrEmptySheet))

	_, _, err = Normalize(&sheet.RawSheet{Rows: []sheet.Row{textRow("", "  ")}}, 10)
	assert.True(t, errors.Is(err, core.ErrNoHeaders))
}

func TestNormalizeHeaderOnlySheet(t *testing.T) {
	table, structure, err := Normalize(&sheet.RawSheet{Rows: []sheet.Row{textRow("Nome", "Status")}}, 10)
	require.NoError(t, err)
	assert.Equal(t, 0, structure.RowCount)
	assert.Empty(t, structure.SampleRows)
	assert.Empty(t, table.Rows)
}

func TestNormalizeDisambiguatesDuplicateHeaders(t *testing.T) {
	raw := &sheet.RawSheet{Rows: []sheet.Row{textRow("Valor", "valor", "Valor (2)")}}
	table, _, err := Normalize(raw, 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"Valor", "valor (2)", "Valor (2) (2)"}, table.Headers)
}
