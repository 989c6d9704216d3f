package materialize

import (
	"context"

	"sheetboard/domain/board"
	"sheetboard/domain/core"
	"sheetboard/ports"
)

// LoadSnapshot reads a board back with its columns, groups, items and values,
// all in position order.
func LoadSnapshot(ctx context.Context, repo ports.BoardRepository, id core.BoardID) (*board.Snapshot, error) {
	b, err := repo.GetBoard(ctx, id)
	if err != nil {
		return nil, err
	}
	columns, err := repo.ListColumns(ctx, id)
	if err != nil {
		return nil, core.NewPersistenceError("columns", err)
	}
	groups, err := repo.ListGroups(ctx, id)
	if err != nil {
		return nil, core.NewPersistenceError("groups", err)
	}

	snapshot := &board.Snapshot{
		Board:   b,
		Columns: columns,
		Groups:  make([]board.GroupItems, 0, len(groups)),
	}
	for _, g := range groups {
		items, err := repo.ListItems(ctx, g.ID)
		if err != nil {
			return nil, core.NewPersistenceError("items", err)
		}
		snapshot.Groups = append(snapshot.Groups, board.GroupItems{Group: g, Items: items})
	}
	if snapshot.Values, err = repo.ListColumnValues(ctx, id); err != nil {
		return nil, core.NewPersistenceError("column values", err)
	}
	return snapshot, nil
}
