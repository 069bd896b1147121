package metrics

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mauv0809/swiss-tribble/internal/config"
	"github.com/mauv0809/swiss-tribble/internal/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestDB creates a temporary file-backed SQLite database for testing.
func setupTestDB(t *testing.T) (CounterStore, func()) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "testdb_metrics.db")
	db, dbTeardown, err := database.InitDB(config.DatabaseConfig{Driver: "sqlite3", Name: path})
	require.NoError(t, err)

	store := NewCounterStore(db)

	teardown := func() {
		dbTeardown()
		os.Remove(path)
	}

	return store, teardown
}

func TestIncrementAndGetAll(t *testing.T) {
	store, teardown := setupTestDB(t)
	defer teardown()

	// 1. Initially, there should be no counters
	counters, err := store.GetAll()
	require.NoError(t, err)
	assert.Empty(t, counters)

	// 2. Increment a new key
	store.Increment("rounds_paired")
	counters, err = store.GetAll()
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"rounds_paired": 1}, counters)

	// 3. Increment the same key again
	store.Increment("rounds_paired")
	counters, err = store.GetAll()
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"rounds_paired": 2}, counters)

	// 4. Increment a different key
	store.Increment("rounds_infeasible")
	counters, err = store.GetAll()
	require.NoError(t, err)
	assert.Equal(t, map[string]int{
		"rounds_paired":     2,
		"rounds_infeasible": 1,
	}, counters)
}
