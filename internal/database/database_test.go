package database

import (
	"testing"

	"github.com/mauv0809/swiss-tribble/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitDB_CreatesTables(t *testing.T) {
	db, teardown, err := InitDB(config.DatabaseConfig{Driver: "sqlite3", Name: ":memory:"})
	require.NoError(t, err, "InitDB should not return an error")
	defer teardown()

	for _, table := range []string{"players", "matches", "metrics"} {
		var name string
		err = db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&name)
		require.NoError(t, err, "Querying for %s table should not produce an error", table)
		assert.Equal(t, table, name)
	}

	var view string
	err = db.QueryRow("SELECT name FROM sqlite_master WHERE type='view' AND name='standings'").Scan(&view)
	require.NoError(t, err)
	assert.Equal(t, "standings", view)
}

func TestInitDB_EnforcesForeignKeys(t *testing.T) {
	db, teardown, err := InitDB(config.DatabaseConfig{Name: ":memory:"})
	require.NoError(t, err)
	defer teardown()

	_, err = db.Exec("INSERT INTO matches (winner_id, loser_id, reported_at) VALUES (1, 2, 0)")
	assert.Error(t, err, "matches must reference registered players")
}

func TestInitDB_UnsupportedDriver(t *testing.T) {
	_, _, err := InitDB(config.DatabaseConfig{Driver: "oracle"})
	assert.ErrorContains(t, err, "unsupported database driver")
}

func TestRebind(t *testing.T) {
	query := "SELECT 1 FROM matches WHERE winner_id = ? AND loser_id = ?"

	sqlite := &DB{Dialect: DialectSQLite}
	assert.Equal(t, query, sqlite.Rebind(query))

	pg := &DB{Dialect: DialectPostgres}
	assert.Equal(t, "SELECT 1 FROM matches WHERE winner_id = $1 AND loser_id = $2", pg.Rebind(query))
}
