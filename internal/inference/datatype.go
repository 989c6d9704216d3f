package inference

import "strings"

// GenericDataType is the label used when the filename says nothing about the domain
const GenericDataType = "general"

// dataTypeRules map filename keywords to coarse domain labels, checked in order
var dataTypeRules = []struct {
	label    string
	keywords []string
}{
	{"sales", []string{"venda", "sales", "pedido", "order", "comercial"}},
	{"projects", []string{"projeto", "project", "sprint", "roadmap"}},
	{"financial", []string{"financ", "orçamento", "orcamento", "budget", "despesa", "expense", "fatura", "invoice"}},
	{"customers", []string{"cliente", "client", "customer", "crm", "lead"}},
	{"tasks", []string{"tarefa", "task", "todo", "atividade", "backlog"}},
	{"inventory", []string{"estoque", "inventory", "stock", "produto", "product"}},
	{"hr", []string{"funcionario", "funcionário", "employee", "colaborador", "staff", "rh_", "hr_"}},
	{"marketing", []string{"marketing", "campanha", "campaign"}},
}

// InferDataType labels a dataset from keywords in its filename
func InferDataType(filename string) string {
	name := strings.ToLower(filename)
	for _, rule := range dataTypeRules {
		if containsAny(name, rule.keywords) {
			return rule.label
		}
	}
	return GenericDataType
}
