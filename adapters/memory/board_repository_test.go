package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sheetboard/domain/board"
	"sheetboard/domain/core"
	"sheetboard/domain/sheet"
)

func TestBoardRepositoryRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := NewBoardRepository()

	b := &board.Board{ID: "b1", WorkspaceID: "w1", Name: "Vendas"}
	require.NoError(t, repo.CreateBoard(ctx, b))
	assert.False(t, b.CreatedAt.IsZero())

	require.NoError(t, repo.CreateColumn(ctx, &board.Column{ID: "c2", BoardID: "b1", Name: "Valor", Position: 1}))
	require.NoError(t, repo.CreateColumn(ctx, &board.Column{ID: "c1", BoardID: "b1", Name: "Cliente", Position: 0}))
	require.NoError(t, repo.CreateGroup(ctx, &board.Group{ID: "g1", BoardID: "b1", Name: "ativo"}))
	require.NoError(t, repo.CreateItem(ctx, &board.Item{ID: "i1", GroupID: "g1", Name: "Acme"}))
	require.NoError(t, repo.CreateColumnValue(ctx, &board.ColumnValue{ItemID: "i1", ColumnID: "c1", Value: sheet.Text("Acme")}))

	got, err := repo.GetBoard(ctx, "b1")
	require.NoError(t, err)
	assert.Equal(t, "Vendas", got.Name)

	columns, err := repo.ListColumns(ctx, "b1")
	require.NoError(t, err)
	require.Len(t, columns, 2)
	assert.Equal(t, "Cliente", columns[0].Name)

	values, err := repo.ListColumnValues(ctx, "b1")
	require.NoError(t, err)
	assert.Len(t, values, 1)
}

func TestBoardRepositoryEnforcesReferences(t *testing.T) {
	ctx := context.Background()
	repo := NewBoardRepository()

	assert.True(t, core.IsNotFoundError(repo.CreateColumn(ctx, &board.Column{ID: "c1", BoardID: "missing"})))
	assert.True(t, core.IsNotFoundError(repo.CreateItem(ctx, &board.Item{ID: "i1", GroupID: "missing"})))

	_, err := repo.GetBoard(ctx, "missing")
	assert.True(t, core.IsNotFoundError(err))
}

func TestBoardRepositoryRejectsDuplicateValue(t *testing.T) {
	ctx := context.Background()
	repo := NewBoardRepository()
	require.NoError(t, repo.CreateBoard(ctx, &board.Board{ID: "b1"}))
	require.NoError(t, repo.CreateColumn(ctx, &board.Column{ID: "c1", BoardID: "b1"}))
	require.NoError(t, repo.CreateGroup(ctx, &board.Group{ID: "g1", BoardID: "b1"}))
	require.NoError(t, repo.CreateItem(ctx, &board.Item{ID: "i1", GroupID: "g1"}))

	v := &board.ColumnValue{ItemID: "i1", ColumnID: "c1", Value: sheet.Numeric(1)}
	require.NoError(t, repo.CreateColumnValue(ctx, v))
	assert.Error(t, repo.CreateColumnValue(ctx, v))
}
