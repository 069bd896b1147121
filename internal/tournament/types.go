package tournament

import (
	"errors"
	"time"

	"github.com/mauv0809/swiss-tribble/internal/pairing"
)

var (
	ErrInvalidName       = errors.New("player name must not be empty")
	ErrSelfMatch         = errors.New("a player cannot play against themselves")
	ErrPlayerNotFound    = errors.New("player not found")
	ErrRematch           = errors.New("players have already played each other")
	ErrDataInconsistency = errors.New("standings and match history disagree")
)

// Match is a reported result. It is never updated after creation.
type Match struct {
	ID         int64     `json:"id"`
	WinnerID   int64     `json:"winner_id"`
	LoserID    int64     `json:"loser_id"`
	ReportedAt time.Time `json:"reported_at"`
}

// Snapshot is a consistent view of standings and history taken at one instant.
type Snapshot struct {
	Standings []pairing.Player
	History   *pairing.History
	// Matches is the number of reported matches the snapshot was built from.
	Matches int
}

// Round returns the number of the round that would be played next: one more
// than the most matches any player has completed.
func (s *Snapshot) Round() int {
	most := 0
	for _, p := range s.Standings {
		if p.Matches > most {
			most = p.Matches
		}
	}
	return most + 1
}

// Round is the outcome of one pairing request.
type Round struct {
	ID        string          `json:"id" msgpack:"id"`
	Number    int             `json:"number" msgpack:"number"`
	Pairs     []pairing.Pair  `json:"pairs" msgpack:"pairs"`
	Outcome   pairing.Outcome `json:"outcome" msgpack:"outcome"`
	Nodes     int             `json:"search_nodes" msgpack:"search_nodes"`
	CreatedAt time.Time       `json:"created_at" msgpack:"created_at"`
}
