package notifier

import (
	"sync"

	"github.com/mauv0809/swiss-tribble/internal/pairing"
	"github.com/mauv0809/swiss-tribble/internal/tournament"
)

// Mock is a mock implementation of the Notifier interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu sync.Mutex

	// Call records
	SendPairingsCalls       []SendCall
	SendPairingFailureCalls []SendCall
	SendStandingsCalls      [][]pairing.Player

	// Spies
	SendPairingsFunc            func(round *tournament.Round, dryRun bool) error
	FormatStandingsResponseFunc func(standings []pairing.Player) (any, error)
}

// SendCall holds the arguments of a round notification.
type SendCall struct {
	Round  *tournament.Round
	DryRun bool
}

var _ Notifier = (*Mock)(nil)

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{}
}

func (m *Mock) SendPairings(round *tournament.Round, dryRun bool) error {
	m.mu.Lock()
	m.SendPairingsCalls = append(m.SendPairingsCalls, SendCall{Round: round, DryRun: dryRun})
	m.mu.Unlock()
	if m.SendPairingsFunc != nil {
		return m.SendPairingsFunc(round, dryRun)
	}
	return nil
}

func (m *Mock) SendPairingFailure(round *tournament.Round, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendPairingFailureCalls = append(m.SendPairingFailureCalls, SendCall{Round: round, DryRun: dryRun})
	return nil
}

func (m *Mock) SendStandings(standings []pairing.Player, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendStandingsCalls = append(m.SendStandingsCalls, standings)
	return nil
}

func (m *Mock) FormatStandingsResponse(standings []pairing.Player) (any, error) {
	if m.FormatStandingsResponseFunc != nil {
		return m.FormatStandingsResponseFunc(standings)
	}
	return standings, nil
}

// StandingsSent returns how many standings digests were sent.
func (m *Mock) StandingsSent() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.SendStandingsCalls)
}
