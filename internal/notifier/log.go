package notifier

import (
	"github.com/charmbracelet/log"
	"github.com/mauv0809/swiss-tribble/internal/pairing"
	"github.com/mauv0809/swiss-tribble/internal/tournament"
)

// LogNotifier writes notifications to the log. It is used when Slack is not configured.
type LogNotifier struct{}

var _ Notifier = LogNotifier{}

func (LogNotifier) SendPairings(round *tournament.Round, dryRun bool) error {
	for i, p := range round.Pairs {
		log.Info("Pairing", "round", round.Number, "board", i+1, "player_a", p.A.Name, "player_b", p.B.Name)
	}
	return nil
}

func (LogNotifier) SendPairingFailure(round *tournament.Round, dryRun bool) error {
	log.Warn("Round could not be paired", "round", round.Number, "outcome", round.Outcome, "nodes", round.Nodes)
	return nil
}

func (LogNotifier) SendStandings(standings []pairing.Player, dryRun bool) error {
	for i, p := range standings {
		log.Info("Standing", "rank", i+1, "player", p.Name, "wins", p.Wins, "matches", p.Matches)
	}
	return nil
}

func (LogNotifier) FormatStandingsResponse(standings []pairing.Player) (any, error) {
	return standings, nil
}
