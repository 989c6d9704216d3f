package testkit

import (
	"context"
	"errors"
	"sync"

	"sheetboard/domain/board"
	"sheetboard/ports"
)

// ErrInjected is returned by FailingRepository for every injected failure
var ErrInjected = errors.New("injected failure")

// FailingRepository wraps a repository and fails inserts selected by name.
// Queries always pass through.
type FailingRepository struct {
	ports.BoardRepository

	mu          sync.Mutex
	FailBoard   bool
	FailColumns map[string]bool // by column name
	FailGroups  map[string]bool // by group name
	FailItems   map[string]bool // by item name
	FailValues  bool
	Attempts    map[board.EntityKind]int
}

// NewFailingRepository wraps inner with no failures configured
func NewFailingRepository(inner ports.BoardRepository) *FailingRepository {
	return &FailingRepository{
		BoardRepository: inner,
		FailColumns:     make(map[string]bool),
		FailGroups:      make(map[string]bool),
		FailItems:       make(map[string]bool),
		Attempts:        make(map[board.EntityKind]int),
	}
}

func (r *FailingRepository) attempt(kind board.EntityKind, fail bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Attempts[kind]++
	if fail {
		return ErrInjected
	}
	return nil
}

func (r *FailingRepository) CreateBoard(ctx context.Context, b *board.Board) error {
	if err := r.attempt(board.KindBoard, r.FailBoard); err != nil {
		return err
	}
	return r.BoardRepository.CreateBoard(ctx, b)
}

func (r *FailingRepository) CreateColumn(ctx context.Context, c *board.Column) error {
	if err := r.attempt(board.KindColumn, r.FailColumns[c.Name]); err != nil {
		return err
	}
	return r.BoardRepository.CreateColumn(ctx, c)
}

func (r *FailingRepository) CreateGroup(ctx context.Context, g *board.Group) error {
	if err := r.attempt(board.KindGroup, r.FailGroups[g.Name]); err != nil {
		return err
	}
	return r.BoardRepository.CreateGroup(ctx, g)
}

func (r *FailingRepository) CreateItem(ctx context.Context, i *board.Item) error {
	if err := r.attempt(board.KindItem, r.FailItems[i.Name]); err != nil {
		return err
	}
	return r.BoardRepository.CreateItem(ctx, i)
}

func (r *FailingRepository) CreateColumnValue(ctx context.Context, v *board.ColumnValue) error {
	if err := r.attempt(board.KindColumnValue, r.FailValues); err != nil {
		return err
	}
	return r.BoardRepository.CreateColumnValue(ctx, v)
}

// AttemptsOf returns how many inserts of a kind were attempted
func (r *FailingRepository) AttemptsOf(kind board.EntityKind) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.Attempts[kind]
}
