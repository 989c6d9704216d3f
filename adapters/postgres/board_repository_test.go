package postgres

import (
	"database/sql"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestIsInvalidText(t *testing.T) {
	assert.True(t, isInvalidText(&pq.Error{Code: "22P02"}))
	assert.True(t, isInvalidText(fmt.Errorf("query: %w", &pq.Error{Code: "22P02"})))
	assert.False(t, isInvalidText(&pq.Error{Code: "23505"}))
	assert.False(t, isInvalidText(sql.ErrNoRows))
}
