package excel

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"sheetboard/domain/core"
	"sheetboard/domain/sheet"
)

func TestDetectFileType(t *testing.T) {
	tests := []struct {
		name     string
		expected string
		hasError bool
	}{
		{"vendas.xlsx", FileTypeXLSX, false},
		{"EXPORT.CSV", FileTypeCSV, false},
		{"legacy.xls", "", true},
		{"notes.txt", "", true},
		{"noext", "", true},
	}

	for _, tt := range tests {
		got, err := DetectFileType(tt.name)
		if tt.hasError {
			if !errors.Is(err, core.ErrUnsupportedFile) {
				t.Errorf("DetectFileType(%q) expected ErrUnsupportedFile, got %v", tt.name, err)
			}
			continue
		}
		if err != nil || got != tt.expected {
			t.Errorf("DetectFileType(%q) = %q, %v; expected %q", tt.name, got, err, tt.expected)
		}
	}
}

func TestReadCSVWithSemicolonsAndBOM(t *testing.T) {
	reader, err := NewDataReader("clientes.csv")
	require.NoError(t, err)

	content := "\xef\xbb\xbfCliente;Status;Valor\nAcme;ativo;\"1.000,50\"\nBeta;pausado\n"
	raw, err := reader.Read(strings.NewReader(content))
	require.NoError(t, err)

	require.Len(t, raw.Rows, 3)
	assert.Equal(t, "Cliente", raw.Rows[0][0].String())
	assert.Equal(t, "1.000,50", raw.Rows[1][2].String())
	assert.Len(t, raw.Rows[2], 2)
	assert.Equal(t, "clientes.csv", raw.FileInfo.Name)
}

func TestReadExcelKeepsNativeNumbers(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	sheetName := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheetName, "A1", &[]interface{}{"Projeto", "Horas", "Código"}))
	require.NoError(t, f.SetSheetRow(sheetName, "A2", &[]interface{}{"Site", 12.5, "0042"}))
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	reader, err := NewDataReader("projetos.xlsx")
	require.NoError(t, err)
	raw, err := reader.Read(buf)
	require.NoError(t, err)

	require.Len(t, raw.Rows, 2)
	assert.Equal(t, sheetName, raw.FileInfo.SheetName)
	assert.Equal(t, sheet.Text("Site"), raw.Rows[1][0])
	assert.Equal(t, sheet.Numeric(12.5), raw.Rows[1][1])
	assert.Equal(t, sheet.Text("0042"), raw.Rows[1][2])
}
