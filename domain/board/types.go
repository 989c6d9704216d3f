package board

import (
	"sheetboard/domain/briefing"
	"sheetboard/domain/core"
	"sheetboard/domain/sheet"
)

// Board is the root entity created by an import
type Board struct {
	ID          core.BoardID     `json:"id" db:"id"`
	WorkspaceID core.WorkspaceID `json:"workspaceId" db:"workspace_id"`
	OwnerID     core.UserID      `json:"ownerId" db:"owner_id"`
	Name        string           `json:"name" db:"name"`
	Description string           `json:"description" db:"description"`
	CreatedAt   core.Timestamp   `json:"createdAt" db:"-"`
}

// Column is a typed board column; Position is its stable ordinal
type Column struct {
	ID       core.ColumnID       `json:"id" db:"id"`
	BoardID  core.BoardID        `json:"boardId" db:"board_id"`
	Name     string              `json:"name" db:"name"`
	Type     briefing.ColumnType `json:"type" db:"type"`
	Position int                 `json:"position" db:"position"`
}

// Group partitions a board's items
type Group struct {
	ID       core.GroupID `json:"id" db:"id"`
	BoardID  core.BoardID `json:"boardId" db:"board_id"`
	Name     string       `json:"name" db:"name"`
	Position int          `json:"position" db:"position"`
}

// Item is one materialized spreadsheet row
type Item struct {
	ID       core.ItemID  `json:"id" db:"id"`
	GroupID  core.GroupID `json:"groupId" db:"group_id"`
	Name     string       `json:"name" db:"name"`
	Position int          `json:"position" db:"position"`
}

// ColumnValue is the value of one item in one column.
// At most one value exists per (item, column) pair.
type ColumnValue struct {
	ItemID   core.ItemID   `json:"itemId"`
	ColumnID core.ColumnID `json:"columnId"`
	Value    sheet.Cell    `json:"value"`
}

// Snapshot is a board read back together with all of its children
type Snapshot struct {
	Board   *Board        `json:"board"`
	Columns []Column      `json:"columns"`
	Groups  []GroupItems  `json:"groups"`
	Values  []ColumnValue `json:"values"`
}

// GroupItems is a group with its items in position order
type GroupItems struct {
	Group
	Items []Item `json:"items"`
}
