package db

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := OpenDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestMigrate_Idempotent(t *testing.T) {
	db := openTestDB(t)

	// OpenDB already migrated once; re-running must tolerate the ALTER TABLE.
	require.NoError(t, Migrate(db))
	require.NoError(t, Migrate(db))
}

func TestMigrate_CreatesAllTables(t *testing.T) {
	db := openTestDB(t)

	for _, table := range []string{"users", "focus_sessions"} {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name=?`, table).Scan(&name)
		require.NoError(t, err, "table %s should exist", table)
		assert.Equal(t, table, name)
	}
}

func TestMigrate_CreatesIndexes(t *testing.T) {
	db := openTestDB(t)

	for _, idx := range []string{"idx_focus_sessions_user", "idx_focus_sessions_start"} {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='index' AND name=?`, idx).Scan(&name)
		require.NoError(t, err, "index %s should exist", idx)
	}
}

func TestMigrate_RejectsEmptyCategory(t *testing.T) {
	db := openTestDB(t)

	_, err := db.Exec(`INSERT INTO focus_sessions (id, username, category, start_epoch, end_epoch, duration_min, created_at)
		VALUES ('a', 'alice', '', 0, 60, 1, '2024-01-01T00:00:00Z')`)
	assert.Error(t, err, "empty category should violate the CHECK constraint")
}

func TestMigrate_SourceColumnDefaultsToLive(t *testing.T) {
	db := openTestDB(t)

	_, err := db.Exec(`INSERT INTO focus_sessions (id, username, category, start_epoch, end_epoch, duration_min, created_at)
		VALUES ('a', 'alice', 'Study', 0, 60, 1, '2024-01-01T00:00:00Z')`)
	require.NoError(t, err)

	var source string
	require.NoError(t, db.QueryRow(`SELECT source FROM focus_sessions WHERE id = 'a'`).Scan(&source))
	assert.Equal(t, "live", source)
}
