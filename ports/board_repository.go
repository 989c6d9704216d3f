package ports

import (
	"context"

	"sheetboard/domain/board"
	"sheetboard/domain/core"
)

// BoardRepository is the persistence interface the import pipeline writes through.
// The pipeline only inserts; reads serve snapshot read-back.
type BoardRepository interface {
	// Inserts
	CreateBoard(ctx context.Context, b *board.Board) error
	CreateColumn(ctx context.Context, c *board.Column) error
	CreateGroup(ctx context.Context, g *board.Group) error
	CreateItem(ctx context.Context, i *board.Item) error
	CreateColumnValue(ctx context.Context, v *board.ColumnValue) error

	// Queries
	GetBoard(ctx context.Context, id core.BoardID) (*board.Board, error)
	ListColumns(ctx context.Context, boardID core.BoardID) ([]board.Column, error)
	ListGroups(ctx context.Context, boardID core.BoardID) ([]board.Group, error)
	ListItems(ctx context.Context, groupID core.GroupID) ([]board.Item, error)
	ListColumnValues(ctx context.Context, boardID core.BoardID) ([]board.ColumnValue, error)
}
