package metrics

import (
	"sync"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/swiss-tribble/internal/database"
)

// store persists counters in the metrics table so they survive restarts.
type store struct {
	db *database.DB
	mu sync.Mutex
}

// NewCounterStore creates a new CounterStore.
func NewCounterStore(db *database.DB) CounterStore {
	return &store{
		db: db,
	}
}

// Increment upserts a counter key and increments its value by one.
func (s *store) Increment(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(s.db.Rebind(`
		INSERT INTO metrics (key, value) VALUES (?, 1)
		ON CONFLICT(key) DO UPDATE SET value = metrics.value + 1;
	`), key)
	if err != nil {
		log.Error("Failed to increment counter", "error", err, "key", key)
	} else {
		log.Debug("Incremented counter", "key", key)
	}
}

// GetAll returns all counters from the database.
func (s *store) GetAll() (map[string]int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.Query("SELECT key, value FROM metrics")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counters := make(map[string]int)
	for rows.Next() {
		var key string
		var value int
		if err := rows.Scan(&key, &value); err != nil {
			return nil, err
		}
		counters[key] = value
	}
	return counters, rows.Err()
}
