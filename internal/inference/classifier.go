package inference

import (
	"strings"

	"sheetboard/domain/briefing"
	"sheetboard/domain/sheet"
)

// Header keywords per type, matched as case-insensitive substrings
var (
	statusKeywords   = []string{"status", "estado", "situação", "situacao", "state", "stage", "etapa"}
	priorityKeywords = []string{"prioridade", "priority", "urgência", "urgencia", "urgency"}
	personKeywords   = []string{
		"responsável", "responsavel", "pessoa", "person", "usuário", "usuario", "user",
		"vendedor", "seller", "cliente", "client", "nome", "name", "owner", "assignee",
	}
	dateKeywords = []string{
		"data", "date", "criado", "created", "atualizado", "updated",
		"início", "inicio", "start", "fim", "end", "prazo", "deadline",
	}
	linkKeywords     = []string{"link", "url", "site", "web"}
	currencyKeywords = []string{
		"valor", "value", "preço", "preco", "price", "custo", "cost", "total",
		"receita", "revenue", "orçamento", "orcamento", "budget", "r$", "$", "€",
	}
)

// ClassifierConfig holds the value-sniffing thresholds
type ClassifierConfig struct {
	NumericThreshold float64 // share of non-empty samples that must be numeric, exclusive
}

// DefaultClassifierConfig returns the standard thresholds
func DefaultClassifierConfig() ClassifierConfig {
	return ClassifierConfig{NumericThreshold: 0.7}
}

// ColumnClassifier assigns a semantic type to a column from its header and sample values
type ColumnClassifier struct {
	config ClassifierConfig
}

// NewColumnClassifier creates a classifier
func NewColumnClassifier(config ClassifierConfig) *ColumnClassifier {
	return &ColumnClassifier{config: config}
}

// Classify runs the rule cascade; the first matching rule wins.
// Header keywords decide the semantic types, sample values only settle currency and number.
func (c *ColumnClassifier) Classify(header string, samples []sheet.Cell) briefing.ColumnType {
	h := strings.ToLower(strings.TrimSpace(header))
	values := nonBlank(samples)

	switch {
	case containsAny(h, statusKeywords):
		return briefing.TypeStatus
	case containsAny(h, priorityKeywords):
		return briefing.TypePriority
	case containsAny(h, personKeywords):
		return briefing.TypePerson
	case containsAny(h, dateKeywords):
		return briefing.TypeDate
	case containsAny(h, linkKeywords) || strings.HasPrefix(h, "http"):
		return briefing.TypeLink
	case containsAny(h, currencyKeywords) && hasPositiveNumber(values):
		return briefing.TypeCurrency
	case c.mostlyNumeric(values):
		return briefing.TypeNumber
	default:
		return briefing.TypeText
	}
}

// ClassifyTable classifies every header of a table from its sample rows
func (c *ColumnClassifier) ClassifyTable(headers []string, sample []sheet.Row) map[string]briefing.ColumnType {
	types := make(map[string]briefing.ColumnType, len(headers))
	for idx, header := range headers {
		cells := make([]sheet.Cell, 0, len(sample))
		for _, row := range sample {
			cells = append(cells, row.At(idx))
		}
		types[header] = c.Classify(header, cells)
	}
	return types
}

func (c *ColumnClassifier) mostlyNumeric(values []sheet.Cell) bool {
	if len(values) == 0 {
		return false
	}
	numeric := 0
	for _, v := range values {
		if _, ok := CellNumber(v); ok {
			numeric++
		}
	}
	return float64(numeric)/float64(len(values)) > c.config.NumericThreshold
}

func hasPositiveNumber(values []sheet.Cell) bool {
	for _, v := range values {
		if f, ok := CellNumber(v); ok && f > 0 {
			return true
		}
	}
	return false
}

func nonBlank(cells []sheet.Cell) []sheet.Cell {
	out := make([]sheet.Cell, 0, len(cells))
	for _, c := range cells {
		if !c.IsBlank() {
			out = append(out, c)
		}
	}
	return out
}

func containsAny(s string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}
