package inference

import (
	"testing"

	"sheetboard/domain/briefing"
	"sheetboard/domain/sheet"
)

func texts(values ...string) []sheet.Cell {
	cells := make([]sheet.Cell, len(values))
	for i, v := range values {
		cells[i] = sheet.Text(v)
	}
	return cells
}

func TestClassifyRuleCascade(t *testing.T) {
	classifier := NewColumnClassifier(DefaultClassifierConfig())

	tests := []struct {
		name     string
		header   string
		samples  []sheet.Cell
		expected briefing.ColumnType
	}{
		{"status keyword", "Status", texts("ativo"), briefing.TypeStatus},
		{"status beats date", "Status Date", texts("2024-01-01"), briefing.TypeStatus},
		{"situacao", "Situação do pedido", nil, briefing.TypeStatus},
		{"priority", "Prioridade", texts("alta"), briefing.TypePriority},
		{"person", "Responsável", texts("Ana"), briefing.TypePerson},
		{"name is person", "Nome", texts("Ana"), briefing.TypePerson},
		{"date", "Data de criação", texts("01/02/2024"), briefing.TypeDate},
		{"deadline", "Prazo", nil, briefing.TypeDate},
		{"link keyword", "Website", texts("x"), briefing.TypeLink},
		{"http header", "https://example.com", nil, briefing.TypeLink},
		{"currency with positive sample", "Valor Total", texts("R$ 100,50", "abc"), briefing.TypeCurrency},
		{"currency keyword without numbers", "Valor Total", texts("abc", "def"), briefing.TypeText},
		{"currency ignores sign characters", "Valor", texts("-5"), briefing.TypeCurrency},
		{"currency with dotted thousands", "Valor", texts("1.234.567"), briefing.TypeCurrency},
		{"currency keyword with only zero", "Preço", texts("0", "0,00"), briefing.TypeNumber},
		{"number above threshold", "Quantidade", []sheet.Cell{sheet.Numeric(1), sheet.Numeric(2), sheet.Numeric(3), sheet.Numeric(4), sheet.Text("x")}, briefing.TypeNumber},
		{"number below threshold", "Quantidade", []sheet.Cell{sheet.Numeric(1), sheet.Text("x"), sheet.Text("y"), sheet.Text("z"), sheet.Numeric(2)}, briefing.TypeText},
		{"exactly seventy percent is not enough", "Horas", texts("1", "2", "3", "4", "5", "6", "7", "a", "b", "c"), briefing.TypeText},
		{"blank samples ignored", "Horas", texts("1", "", "  ", "2"), briefing.TypeNumber},
		{"empty sample falls through", "Valor", nil, briefing.TypeText},
		{"plain text", "Descrição", texts("algo"), briefing.TypeText},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := classifier.Classify(tt.header, tt.samples); got != tt.expected {
				t.Errorf("Classify(%q) = %s, expected %s", tt.header, got, tt.expected)
			}
		})
	}
}

func TestClassifyTableReturnsOneTypePerHeader(t *testing.T) {
	classifier := NewColumnClassifier(DefaultClassifierConfig())
	headers := []string{"Cliente", "Status", "Valor"}
	sample := []sheet.Row{
		{sheet.Text("Acme"), sheet.Text("ativo"), sheet.Text("1000")},
		{sheet.Text("Beta"), sheet.Text("pausado"), sheet.Text("200")},
	}

	types := classifier.ClassifyTable(headers, sample)
	if len(types) != len(headers) {
		t.Fatalf("Expected %d types, got %d", len(headers), len(types))
	}
	expected := map[string]briefing.ColumnType{
		"Cliente": briefing.TypePerson,
		"Status":  briefing.TypeStatus,
		"Valor":   briefing.TypeCurrency,
	}
	for header, want := range expected {
		if types[header] != want {
			t.Errorf("Column %s: expected %s, got %s", header, want, types[header])
		}
	}
}

func TestParseNumeric(t *testing.T) {
	tests := []struct {
		input    string
		expected float64
		ok       bool
	}{
		{"R$ 100,50", 100.5, true},
		{"1.234,56", 1234.56, true},
		{"$1,234.56", 1234.56, true},
		{"1000", 1000, true},
		{"-12,5", 12.5, true},
		{"1.234.567", 1234567, true},
		{"R$ 1.234.567", 1234567, true},
		{"1,2,3", 0, false},
		{"abc", 0, false},
		{"", 0, false},
		{"-", 0, false},
	}

	for _, tt := range tests {
		got, ok := ParseNumeric(tt.input)
		if ok != tt.ok || (ok && got != tt.expected) {
			t.Errorf("ParseNumeric(%q) = %v, %v; expected %v, %v", tt.input, got, ok, tt.expected, tt.ok)
		}
	}
}

func TestInferDataType(t *testing.T) {
	tests := map[string]string{
		"Vendas_2024.xlsx":      "sales",
		"roadmap-projetos.csv":  "projects",
		"orcamento anual.xlsx":  "financial",
		"lista de clientes.csv": "customers",
		"planilha.xlsx":         GenericDataType,
	}
	for filename, expected := range tests {
		if got := InferDataType(filename); got != expected {
			t.Errorf("InferDataType(%q) = %s, expected %s", filename, got, expected)
		}
	}
}
