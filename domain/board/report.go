package board

import "sheetboard/domain/core"

// EntityKind names a persisted entity kind
type EntityKind string

const (
	KindBoard       EntityKind = "board"
	KindColumn      EntityKind = "column"
	KindGroup       EntityKind = "group"
	KindItem        EntityKind = "item"
	KindColumnValue EntityKind = "column_value"
)

// SkippedEntity records an entity that could not be created and was skipped
type SkippedEntity struct {
	Kind   EntityKind `json:"kind"`
	Name   string     `json:"name"`
	Reason string     `json:"reason"`
}

// MaterializationReport collects what a materialization run created and skipped
type MaterializationReport struct {
	BoardID     core.BoardID    `json:"boardId"`
	BoardName   string          `json:"boardName"`
	ColumnIDs   []core.ColumnID `json:"columnIds"`
	GroupIDs    []core.GroupID  `json:"groupIds"`
	ItemIDs     []core.ItemID   `json:"itemIds"`
	ValueCount  int             `json:"valueCount"`
	SkippedRows int             `json:"skippedRows"`
	Skipped     []SkippedEntity `json:"skipped"`
}

// Skip records a skipped entity
func (r *MaterializationReport) Skip(kind EntityKind, name string, err error) {
	reason := ""
	if err != nil {
		reason = err.Error()
	}
	r.Skipped = append(r.Skipped, SkippedEntity{Kind: kind, Name: name, Reason: reason})
}

// SkippedOf returns the skipped entries of one kind
func (r *MaterializationReport) SkippedOf(kind EntityKind) []SkippedEntity {
	var out []SkippedEntity
	for _, s := range r.Skipped {
		if s.Kind == kind {
			out = append(out, s)
		}
	}
	return out
}

// Complete reports whether nothing was skipped
func (r *MaterializationReport) Complete() bool {
	return len(r.Skipped) == 0
}
