// Package briefing defines the inferred schema of an imported spreadsheet.
//
// A Briefing is produced either heuristically or by an external classifier;
// both producers must satisfy the same shape so materialization never branches
// on where a briefing came from.
package briefing

// ColumnType is the semantic type assigned to a spreadsheet column
type ColumnType string

const (
	TypeText     ColumnType = "text"
	TypeStatus   ColumnType = "status"
	TypePriority ColumnType = "priority"
	TypePerson   ColumnType = "person"
	TypeDate     ColumnType = "date"
	TypeLink     ColumnType = "link"
	TypeCurrency ColumnType = "currency"
	TypeNumber   ColumnType = "number"
)

// AllColumnTypes lists every valid column type
var AllColumnTypes = []ColumnType{
	TypeText, TypeStatus, TypePriority, TypePerson,
	TypeDate, TypeLink, TypeCurrency, TypeNumber,
}

// Valid reports whether t is a known column type
func (t ColumnType) Valid() bool {
	for _, known := range AllColumnTypes {
		if t == known {
			return true
		}
	}
	return false
}

// IsNumeric reports whether values of this type are coerced to numbers
func (t ColumnType) IsNumeric() bool {
	return t == TypeCurrency || t == TypeNumber
}

// GroupingStrategy decides how rows are partitioned into groups
type GroupingStrategy string

const (
	GroupByColumn    GroupingStrategy = "by_column"
	GroupSingleGroup GroupingStrategy = "single_group"
)

// Fixed labels used when no better name exists
const (
	DefaultGroupName   = "Main Group"
	UncategorizedGroup = "Uncategorized"
)

// Grouping describes the chosen grouping strategy
type Grouping struct {
	Strategy     GroupingStrategy `json:"strategy"`
	ByColumn     string           `json:"byColumn,omitempty"`
	DefaultGroup string           `json:"defaultGroup,omitempty"`
}

// SuggestedColumn is the inferred type for one source header
type SuggestedColumn struct {
	Name        string     `json:"name"`
	Type        ColumnType `json:"type"`
	Description string     `json:"description"`
}

// VisualizationType names a chart or metric kind
type VisualizationType string

const (
	VisualizationPie    VisualizationType = "pie"
	VisualizationBar    VisualizationType = "bar"
	VisualizationLine   VisualizationType = "line"
	VisualizationMetric VisualizationType = "metric"
)

// Visualization is a suggested chart or metric over one column
type Visualization struct {
	Type        VisualizationType `json:"type"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	DataSource  string            `json:"dataSource"`
}

// Briefing is the inferred (and later confirmed) schema of a dataset
type Briefing struct {
	Summary          string            `json:"summary"`
	DataType         string            `json:"dataType"`
	Grouping         Grouping          `json:"grouping"`
	SuggestedColumns []SuggestedColumn `json:"suggestedColumns"`
	Visualizations   []Visualization   `json:"visualizations"`
	Recommendations  []string          `json:"recommendations"`
}

// ColumnTypes maps each suggested column name to its type
func (b *Briefing) ColumnTypes() map[string]ColumnType {
	types := make(map[string]ColumnType, len(b.SuggestedColumns))
	for _, col := range b.SuggestedColumns {
		types[col.Name] = col.Type
	}
	return types
}

// Source tells which producer generated a briefing
type Source string

const (
	SourceHeuristic  Source = "heuristic"
	SourceClassifier Source = "classifier"
)
