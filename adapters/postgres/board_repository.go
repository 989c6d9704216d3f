package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"sheetboard/domain/board"
	"sheetboard/domain/core"
	"sheetboard/internal"
	"sheetboard/ports"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// boardRepository implements the BoardRepository interface
type boardRepository struct {
	db     *sqlx.DB
	logger *internal.Logger
}

// NewBoardRepository creates a new board repository
func NewBoardRepository(db *sqlx.DB) ports.BoardRepository {
	return &boardRepository{db: db, logger: internal.DefaultLogger.With("BoardRepository")}
}

// CreateBoard inserts a new board
func (r *boardRepository) CreateBoard(ctx context.Context, b *board.Board) error {
	if b.CreatedAt.IsZero() {
		b.CreatedAt = core.Now()
	}

	query := `INSERT INTO boards (
		id, workspace_id, owner_id, name, description, created_at
	) VALUES (
		$1, $2, $3, $4, $5, $6
	)`

	_, err := r.db.ExecContext(ctx, query,
		b.ID, b.WorkspaceID, b.OwnerID, b.Name, b.Description, b.CreatedAt.Time(),
	)
	if err != nil {
		return fmt.Errorf("failed to create board: %w", err)
	}

	r.logger.Debug("inserted board %s", b.ID)
	return nil
}

// CreateColumn inserts a board column
func (r *boardRepository) CreateColumn(ctx context.Context, c *board.Column) error {
	query := `INSERT INTO board_columns (id, board_id, name, type, position) VALUES ($1, $2, $3, $4, $5)`

	if _, err := r.db.ExecContext(ctx, query, c.ID, c.BoardID, c.Name, c.Type, c.Position); err != nil {
		return fmt.Errorf("failed to create column %q: %w", c.Name, err)
	}
	return nil
}

// CreateGroup inserts a board group
func (r *boardRepository) CreateGroup(ctx context.Context, g *board.Group) error {
	query := `INSERT INTO board_groups (id, board_id, name, position) VALUES ($1, $2, $3, $4)`

	if _, err := r.db.ExecContext(ctx, query, g.ID, g.BoardID, g.Name, g.Position); err != nil {
		return fmt.Errorf("failed to create group %q: %w", g.Name, err)
	}
	return nil
}

// CreateItem inserts an item into a group
func (r *boardRepository) CreateItem(ctx context.Context, i *board.Item) error {
	query := `INSERT INTO board_items (id, group_id, name, position) VALUES ($1, $2, $3, $4)`

	if _, err := r.db.ExecContext(ctx, query, i.ID, i.GroupID, i.Name, i.Position); err != nil {
		return fmt.Errorf("failed to create item %q: %w", i.Name, err)
	}
	return nil
}

// CreateColumnValue inserts the value of one item in one column as JSONB
func (r *boardRepository) CreateColumnValue(ctx context.Context, v *board.ColumnValue) error {
	valueJSON, err := json.Marshal(v.Value)
	if err != nil {
		return fmt.Errorf("failed to marshal value: %w", err)
	}

	query := `INSERT INTO board_column_values (item_id, column_id, value) VALUES ($1, $2, $3)`

	if _, err := r.db.ExecContext(ctx, query, v.ItemID, v.ColumnID, valueJSON); err != nil {
		return fmt.Errorf("failed to create column value: %w", err)
	}
	return nil
}

// GetBoard retrieves a board by its ID
func (r *boardRepository) GetBoard(ctx context.Context, id core.BoardID) (*board.Board, error) {
	query := `SELECT id, workspace_id, owner_id, name, description, created_at FROM boards WHERE id = $1`

	var b board.Board
	var createdAt time.Time
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&b.ID, &b.WorkspaceID, &b.OwnerID, &b.Name, &b.Description, &createdAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || isInvalidText(err) {
			return nil, core.NewNotFoundError("board", id.String())
		}
		return nil, fmt.Errorf("failed to get board: %w", err)
	}
	b.CreatedAt = core.NewTimestamp(createdAt)

	return &b, nil
}

// isInvalidText reports a value the uuid column rejected (invalid_text_representation)
func isInvalidText(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "22P02"
}

// ListColumns returns a board's columns in position order
func (r *boardRepository) ListColumns(ctx context.Context, boardID core.BoardID) ([]board.Column, error) {
	columns := make([]board.Column, 0)
	query := `SELECT id, board_id, name, type, position FROM board_columns WHERE board_id = $1 ORDER BY position`

	if err := r.db.SelectContext(ctx, &columns, query, boardID); err != nil {
		return nil, fmt.Errorf("failed to list columns: %w", err)
	}
	return columns, nil
}

// ListGroups returns a board's groups in position order
func (r *boardRepository) ListGroups(ctx context.Context, boardID core.BoardID) ([]board.Group, error) {
	groups := make([]board.Group, 0)
	query := `SELECT id, board_id, name, position FROM board_groups WHERE board_id = $1 ORDER BY position`

	if err := r.db.SelectContext(ctx, &groups, query, boardID); err != nil {
		return nil, fmt.Errorf("failed to list groups: %w", err)
	}
	return groups, nil
}

// ListItems returns a group's items in position order
func (r *boardRepository) ListItems(ctx context.Context, groupID core.GroupID) ([]board.Item, error) {
	items := make([]board.Item, 0)
	query := `SELECT id, group_id, name, position FROM board_items WHERE group_id = $1 ORDER BY position`

	if err := r.db.SelectContext(ctx, &items, query, groupID); err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}
	return items, nil
}

// ListColumnValues returns every value of a board's columns in insertion order
func (r *boardRepository) ListColumnValues(ctx context.Context, boardID core.BoardID) ([]board.ColumnValue, error) {
	query := `SELECT v.item_id, v.column_id, v.value
	FROM board_column_values v
	JOIN board_columns c ON c.id = v.column_id
	WHERE c.board_id = $1
	ORDER BY v.created_at`

	rows, err := r.db.QueryContext(ctx, query, boardID)
	if err != nil {
		return nil, fmt.Errorf("failed to query column values: %w", err)
	}
	defer rows.Close()

	values := make([]board.ColumnValue, 0)
	for rows.Next() {
		var v board.ColumnValue
		var valueJSON []byte
		if err := rows.Scan(&v.ItemID, &v.ColumnID, &valueJSON); err != nil {
			return nil, fmt.Errorf("failed to scan column value: %w", err)
		}
		if err := json.Unmarshal(valueJSON, &v.Value); err != nil {
			return nil, fmt.Errorf("failed to unmarshal column value: %w", err)
		}
		values = append(values, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate column values: %w", err)
	}

	return values, nil
}
