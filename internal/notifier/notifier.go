package notifier

import (
	"github.com/mauv0809/swiss-tribble/internal/pairing"
	"github.com/mauv0809/swiss-tribble/internal/tournament"
)

// Notifier defines a high-level interface for sending notifications about tournament events.
// This decouples the rest of the application from the specific notification provider (e.g., Slack).
type Notifier interface {
	// For a freshly paired round
	SendPairings(round *tournament.Round, dryRun bool) error
	// For rounds that could not be paired; an operator has to step in
	SendPairingFailure(round *tournament.Round, dryRun bool) error
	SendStandings(standings []pairing.Player, dryRun bool) error

	// For formatting responses for slash commands
	FormatStandingsResponse(standings []pairing.Player) (any, error)
}
