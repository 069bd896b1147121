package tournament

import (
	"context"

	"github.com/mauv0809/swiss-tribble/internal/pairing"
)

// Store is the read/write surface over registered players and reported matches.
// It acts as both the standings provider and the match history index for pairing.
type Store interface {
	RegisterPlayer(ctx context.Context, name string) (pairing.Player, error)
	CountPlayers(ctx context.Context) (int, error)
	ReportMatch(ctx context.Context, winnerID, loserID int64) (*Match, error)
	// PlayerStandings returns players ordered by wins, ties broken by registration order.
	PlayerStandings(ctx context.Context) ([]pairing.Player, error)
	HasPlayed(ctx context.Context, a, b int64) (bool, error)
	ListMatches(ctx context.Context) ([]Match, error)
	DeleteMatches(ctx context.Context) error
	// DeletePlayers removes every player together with their matches.
	DeletePlayers(ctx context.Context) error
	// Snapshot reads standings and match history in a single read transaction.
	Snapshot(ctx context.Context) (*Snapshot, error)
}
