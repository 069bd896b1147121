package tournament

import (
	"context"
	"sync"

	"github.com/mauv0809/swiss-tribble/internal/pairing"
)

// MockStore is a mock implementation of the Store interface for testing.
// It is safe for concurrent use.
type MockStore struct {
	mu sync.Mutex

	// Spies for method calls
	RegisterPlayerFunc  func(name string) (pairing.Player, error)
	CountPlayersFunc    func() (int, error)
	ReportMatchFunc     func(winnerID, loserID int64) (*Match, error)
	PlayerStandingsFunc func() ([]pairing.Player, error)
	HasPlayedFunc       func(a, b int64) (bool, error)
	ListMatchesFunc     func() ([]Match, error)
	DeleteMatchesFunc   func() error
	DeletePlayersFunc   func() error
	SnapshotFunc        func() (*Snapshot, error)

	// Call records
	RegisterPlayerCalls []string
	ReportMatchCalls    []struct {
		WinnerID int64
		LoserID  int64
	}
	SnapshotCalls      int
	DeleteMatchesCalls int
	DeletePlayersCalls int
}

var _ Store = (*MockStore)(nil)

// NewMock creates a new mock instance.
func NewMock() *MockStore {
	return &MockStore{}
}

func (m *MockStore) RegisterPlayer(ctx context.Context, name string) (pairing.Player, error) {
	m.mu.Lock()
	m.RegisterPlayerCalls = append(m.RegisterPlayerCalls, name)
	m.mu.Unlock()
	if m.RegisterPlayerFunc != nil {
		return m.RegisterPlayerFunc(name)
	}
	return pairing.Player{Name: name}, nil
}

func (m *MockStore) CountPlayers(ctx context.Context) (int, error) {
	if m.CountPlayersFunc != nil {
		return m.CountPlayersFunc()
	}
	return 0, nil
}

func (m *MockStore) ReportMatch(ctx context.Context, winnerID, loserID int64) (*Match, error) {
	m.mu.Lock()
	m.ReportMatchCalls = append(m.ReportMatchCalls, struct {
		WinnerID int64
		LoserID  int64
	}{winnerID, loserID})
	m.mu.Unlock()
	if m.ReportMatchFunc != nil {
		return m.ReportMatchFunc(winnerID, loserID)
	}
	return &Match{WinnerID: winnerID, LoserID: loserID}, nil
}

func (m *MockStore) PlayerStandings(ctx context.Context) ([]pairing.Player, error) {
	if m.PlayerStandingsFunc != nil {
		return m.PlayerStandingsFunc()
	}
	return nil, nil
}

func (m *MockStore) HasPlayed(ctx context.Context, a, b int64) (bool, error) {
	if m.HasPlayedFunc != nil {
		return m.HasPlayedFunc(a, b)
	}
	return false, nil
}

func (m *MockStore) ListMatches(ctx context.Context) ([]Match, error) {
	if m.ListMatchesFunc != nil {
		return m.ListMatchesFunc()
	}
	return nil, nil
}

func (m *MockStore) DeleteMatches(ctx context.Context) error {
	m.mu.Lock()
	m.DeleteMatchesCalls++
	m.mu.Unlock()
	if m.DeleteMatchesFunc != nil {
		return m.DeleteMatchesFunc()
	}
	return nil
}

func (m *MockStore) DeletePlayers(ctx context.Context) error {
	m.mu.Lock()
	m.DeletePlayersCalls++
	m.mu.Unlock()
	if m.DeletePlayersFunc != nil {
		return m.DeletePlayersFunc()
	}
	return nil
}

func (m *MockStore) Snapshot(ctx context.Context) (*Snapshot, error) {
	m.mu.Lock()
	m.SnapshotCalls++
	m.mu.Unlock()
	if m.SnapshotFunc != nil {
		return m.SnapshotFunc()
	}
	return &Snapshot{History: pairing.NewHistory()}, nil
}
