package migration

import (
	"context"

	"sheetboard/internal/errors"

	"github.com/jmoiron/sqlx"
)

// Migrator defines the interface for database migration operations
type Migrator interface {
	Run(ctx context.Context, db *sqlx.DB) error
	Version() string
}

// MigrationRunner handles database schema migrations
type MigrationRunner struct {
	version string
}

// NewRunner creates a new migration runner
func NewRunner() *MigrationRunner {
	return &MigrationRunner{
		version: "1.0.0",
	}
}

// Version returns the migration version
func (r *MigrationRunner) Version() string {
	return r.version
}

// Run executes all database migrations in the correct order.
// Every statement is idempotent so Run is safe on an existing schema.
func (r *MigrationRunner) Run(ctx context.Context, db *sqlx.DB) error {
	if err := r.createBoardsTable(ctx, db); err != nil {
		return errors.Wrap(err, "failed to create boards table")
	}

	if err := r.createBoardColumnsTable(ctx, db); err != nil {
		return errors.Wrap(err, "failed to create board_columns table")
	}

	if err := r.createBoardGroupsTable(ctx, db); err != nil {
		return errors.Wrap(err, "failed to create board_groups table")
	}

	if err := r.createBoardItemsTable(ctx, db); err != nil {
		return errors.Wrap(err, "failed to create board_items table")
	}

	if err := r.createBoardColumnValuesTable(ctx, db); err != nil {
		return errors.Wrap(err, "failed to create board_column_values table")
	}

	if err := r.createIndexes(ctx, db); err != nil {
		return errors.Wrap(err, "failed to create indexes")
	}

	return nil
}

func (r *MigrationRunner) createBoardsTable(ctx context.Context, db *sqlx.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS boards (
			id UUID PRIMARY KEY,
			workspace_id TEXT NOT NULL,
			owner_id TEXT NOT NULL,
			name VARCHAR(255) NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
		)
	`)
	return err
}

func (r *MigrationRunner) createBoardColumnsTable(ctx context.Context, db *sqlx.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS board_columns (
			id UUID PRIMARY KEY,
			board_id UUID NOT NULL REFERENCES boards(id) ON DELETE CASCADE,
			name VARCHAR(255) NOT NULL,
			type VARCHAR(20) NOT NULL,
			position INTEGER NOT NULL
		)
	`)
	return err
}

func (r *MigrationRunner) createBoardGroupsTable(ctx context.Context, db *sqlx.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS board_groups (
			id UUID PRIMARY KEY,
			board_id UUID NOT NULL REFERENCES boards(id) ON DELETE CASCADE,
			name VARCHAR(255) NOT NULL,
			position INTEGER NOT NULL
		)
	`)
	return err
}

func (r *MigrationRunner) createBoardItemsTable(ctx context.Context, db *sqlx.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS board_items (
			id UUID PRIMARY KEY,
			group_id UUID NOT NULL REFERENCES board_groups(id) ON DELETE CASCADE,
			name TEXT NOT NULL,
			position INTEGER NOT NULL
		)
	`)
	return err
}

func (r *MigrationRunner) createBoardColumnValuesTable(ctx context.Context, db *sqlx.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS board_column_values (
			item_id UUID NOT NULL REFERENCES board_items(id) ON DELETE CASCADE,
			column_id UUID NOT NULL REFERENCES board_columns(id) ON DELETE CASCADE,
			value JSONB NOT NULL,
			created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
			UNIQUE(item_id, column_id)
		)
	`)
	return err
}

func (r *MigrationRunner) createIndexes(ctx context.Context, db *sqlx.DB) error {
	indexes := []string{
		`CREATE INDEX IF NOT EXISTS idx_boards_workspace_id ON boards(workspace_id)`,
		`CREATE INDEX IF NOT EXISTS idx_board_columns_board_id ON board_columns(board_id, position)`,
		`CREATE INDEX IF NOT EXISTS idx_board_groups_board_id ON board_groups(board_id, position)`,
		`CREATE INDEX IF NOT EXISTS idx_board_items_group_id ON board_items(group_id, position)`,
		`CREATE INDEX IF NOT EXISTS idx_board_column_values_column_id ON board_column_values(column_id)`,
	}

	for _, idx := range indexes {
		if _, err := db.ExecContext(ctx, idx); err != nil {
			return err
		}
	}
	return nil
}
