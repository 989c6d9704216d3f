package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"sheetboard/domain/board"
	"sheetboard/domain/core"
	"sheetboard/ports"
)

// boardRepository keeps boards in process memory. It enforces the same
// references and (item, column) uniqueness as the Postgres schema.
type boardRepository struct {
	mu      sync.RWMutex
	boards  map[core.BoardID]board.Board
	columns map[core.ColumnID]board.Column
	groups  map[core.GroupID]board.Group
	items   map[core.ItemID]board.Item
	values  []board.ColumnValue
	valued  map[valueKey]bool
}

type valueKey struct {
	item   core.ItemID
	column core.ColumnID
}

// NewBoardRepository creates an empty in-memory board repository
func NewBoardRepository() ports.BoardRepository {
	return &boardRepository{
		boards:  make(map[core.BoardID]board.Board),
		columns: make(map[core.ColumnID]board.Column),
		groups:  make(map[core.GroupID]board.Group),
		items:   make(map[core.ItemID]board.Item),
		valued:  make(map[valueKey]bool),
	}
}

func (r *boardRepository) CreateBoard(ctx context.Context, b *board.Board) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.boards[b.ID]; exists {
		return fmt.Errorf("board %s already exists", b.ID)
	}
	if b.CreatedAt.IsZero() {
		b.CreatedAt = core.Now()
	}
	r.boards[b.ID] = *b
	return nil
}

func (r *boardRepository) CreateColumn(ctx context.Context, c *board.Column) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.boards[c.BoardID]; !ok {
		return core.NewNotFoundError("board", c.BoardID.String())
	}
	r.columns[c.ID] = *c
	return nil
}

func (r *boardRepository) CreateGroup(ctx context.Context, g *board.Group) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.boards[g.BoardID]; !ok {
		return core.NewNotFoundError("board", g.BoardID.String())
	}
	r.groups[g.ID] = *g
	return nil
}

func (r *boardRepository) CreateItem(ctx context.Context, i *board.Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.groups[i.GroupID]; !ok {
		return core.NewNotFoundError("group", i.GroupID.String())
	}
	r.items[i.ID] = *i
	return nil
}

func (r *boardRepository) CreateColumnValue(ctx context.Context, v *board.ColumnValue) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[v.ItemID]; !ok {
		return core.NewNotFoundError("item", v.ItemID.String())
	}
	if _, ok := r.columns[v.ColumnID]; !ok {
		return core.NewNotFoundError("column", v.ColumnID.String())
	}
	key := valueKey{item: v.ItemID, column: v.ColumnID}
	if r.valued[key] {
		return fmt.Errorf("value for item %s and column %s already exists", v.ItemID, v.ColumnID)
	}
	r.valued[key] = true
	r.values = append(r.values, *v)
	return nil
}

func (r *boardRepository) GetBoard(ctx context.Context, id core.BoardID) (*board.Board, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	b, ok := r.boards[id]
	if !ok {
		return nil, core.NewNotFoundError("board", id.String())
	}
	return &b, nil
}

func (r *boardRepository) ListColumns(ctx context.Context, boardID core.BoardID) ([]board.Column, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	columns := make([]board.Column, 0)
	for _, c := range r.columns {
		if c.BoardID == boardID {
			columns = append(columns, c)
		}
	}
	sort.Slice(columns, func(i, j int) bool { return columns[i].Position < columns[j].Position })
	return columns, nil
}

func (r *boardRepository) ListGroups(ctx context.Context, boardID core.BoardID) ([]board.Group, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	groups := make([]board.Group, 0)
	for _, g := range r.groups {
		if g.BoardID == boardID {
			groups = append(groups, g)
		}
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i].Position < groups[j].Position })
	return groups, nil
}

func (r *boardRepository) ListItems(ctx context.Context, groupID core.GroupID) ([]board.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	items := make([]board.Item, 0)
	for _, i := range r.items {
		if i.GroupID == groupID {
			items = append(items, i)
		}
	}
	sort.Slice(items, func(a, b int) bool { return items[a].Position < items[b].Position })
	return items, nil
}

// ListColumnValues returns the board's values in insertion order
func (r *boardRepository) ListColumnValues(ctx context.Context, boardID core.BoardID) ([]board.ColumnValue, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	values := make([]board.ColumnValue, 0)
	for _, v := range r.values {
		if col, ok := r.columns[v.ColumnID]; ok && col.BoardID == boardID {
			values = append(values, v)
		}
	}
	return values, nil
}
