package sheet

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCellString(t *testing.T) {
	assert.Equal(t, "", Empty().String())
	assert.Equal(t, "abc", Text("abc").String())
	assert.Equal(t, "1000", Numeric(1000).String())
	assert.Equal(t, "10.5", Numeric(10.5).String())
	assert.True(t, Text("   ").IsBlank())
	assert.Equal(t, CellEmpty, Text("").Kind)
}

func TestCellJSONDecodesMixedRow(t *testing.T) {
	var row Row
	require.NoError(t, json.Unmarshal([]byte(`["Acme", 1000, null, true, ""]`), &row))
	require.Len(t, row, 5)

	assert.Equal(t, Text("Acme"), row[0])
	assert.Equal(t, Numeric(1000), row[1])
	assert.Equal(t, Empty(), row[2])
	assert.Equal(t, Text("true"), row[3])
	assert.Equal(t, Empty(), row[4])

	out, err := json.Marshal(row)
	require.NoError(t, err)
	assert.JSONEq(t, `["Acme", 1000, null, "true", null]`, string(out))
}

func TestRowAtOutOfRange(t *testing.T) {
	row := Row{Text("a")}
	assert.Equal(t, Empty(), row.At(3))
	assert.Equal(t, Empty(), row.At(-1))
}

func TestHeaderIndexCaseInsensitive(t *testing.T) {
	headers := []string{"Cliente", "Status", "Valor"}
	assert.Equal(t, 1, HeaderIndex(headers, "status"))
	assert.Equal(t, 2, HeaderIndex(headers, " VALOR "))
	assert.Equal(t, -1, HeaderIndex(headers, "Prazo"))
	assert.Equal(t, -1, HeaderIndex(headers, ""))
}
