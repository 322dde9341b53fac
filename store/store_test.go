package store

import (
	"path/filepath"
	"testing"

	"PixBot/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenSQLiteAndMigrateIsIdempotent(t *testing.T) {
	db, err := Open(filepath.Join(t.TempDir(), "bot.db"))
	require.NoError(t, err)
	defer Close(db)

	require.NoError(t, Migrate(db))
	require.NoError(t, Migrate(db))

	var states []models.TreasureState
	require.NoError(t, db.Find(&states).Error)
	require.Len(t, states, 1)
	assert.Equal(t, uint(1), states[0].ID)
	assert.Zero(t, states[0].Stage)

	for _, m := range models.All() {
		assert.True(t, db.Migrator().HasTable(m))
	}
}

func TestIsPostgres(t *testing.T) {
	assert.True(t, isPostgres("postgres://u:p@localhost/db"))
	assert.True(t, isPostgres("postgresql://localhost/db"))
	assert.False(t, isPostgres("bot.db"))
	assert.False(t, isPostgres(":memory:"))
}
