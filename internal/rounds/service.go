package rounds

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/mauv0809/swiss-tribble/internal/metrics"
	"github.com/mauv0809/swiss-tribble/internal/notifier"
	"github.com/mauv0809/swiss-tribble/internal/pairing"
	"github.com/mauv0809/swiss-tribble/internal/pubsub"
	"github.com/mauv0809/swiss-tribble/internal/tournament"
)

// New creates a new Service.
func New(store tournament.Store, engine *pairing.Engine, notifier notifier.Notifier, metrics metrics.Metrics, counters metrics.CounterStore, pubsub pubsub.PubSubClient) *Service {
	return &Service{
		store:    store,
		engine:   engine,
		notifier: notifier,
		metrics:  metrics,
		counters: counters,
		pubsub:   pubsub,
	}
}

// NextRound pairs every registered player for the next round.
//
// An odd number of players is an error and the engine is not run. A round that
// cannot be paired is returned without error; its Outcome tells the caller why.
// In dry-run mode no event is published and notifications are only logged.
func (s *Service) NextRound(ctx context.Context, dryRun bool) (*tournament.Round, error) {
	s.roundMu.Lock()
	defer s.roundMu.Unlock()

	snapshot, err := s.store.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to take snapshot: %w", err)
	}
	if len(snapshot.Standings)%2 != 0 {
		log.Warn("Refusing to pair an odd number of players", "players", len(snapshot.Standings))
		return nil, fmt.Errorf("%w: %d registered", pairing.ErrOddPlayerCount, len(snapshot.Standings))
	}

	startTime := time.Now()
	result, err := s.engine.Compute(pairing.Rank(snapshot.Standings), snapshot.History)
	duration := time.Since(startTime)
	if err != nil {
		return nil, fmt.Errorf("failed to compute pairings: %w", err)
	}
	s.metrics.ObservePairingDuration(duration.Seconds())
	s.metrics.ObserveSearchNodes(result.Nodes)
	s.metrics.IncRounds(string(result.Outcome))

	round := &tournament.Round{
		ID:        uuid.NewString(),
		Number:    snapshot.Round(),
		Pairs:     result.Pairs,
		Outcome:   result.Outcome,
		Nodes:     result.Nodes,
		CreatedAt: time.Now().UTC(),
	}
	log.Info("Computed round", "round", round.Number, "outcome", round.Outcome, "pairs", len(round.Pairs), "nodes", round.Nodes, "duration", duration)

	if round.Outcome != pairing.OutcomePaired {
		if !dryRun {
			s.counters.Increment(CounterRoundsFailed)
		}
		if err := s.notifier.SendPairingFailure(round, dryRun); err != nil {
			log.Error("Failed to send pairing failure alert", "error", err, "round", round.Number)
		}
		return round, nil
	}

	if !dryRun {
		s.counters.Increment(CounterRoundsPaired)
		if err := s.pubsub.SendMessage(pubsub.EventRoundPaired, round); err != nil {
			log.Error("Failed to publish round", "error", err, "round", round.Number)
		}
	}
	if err := s.notifier.SendPairings(round, dryRun); err != nil {
		log.Error("Failed to send pairings", "error", err, "round", round.Number)
	}
	return round, nil
}

// ReportMatch records a result and announces it. In dry-run mode the result is
// stored but no event is published.
func (s *Service) ReportMatch(ctx context.Context, winnerID, loserID int64, dryRun bool) (*tournament.Match, error) {
	match, err := s.store.ReportMatch(ctx, winnerID, loserID)
	if err != nil {
		return nil, err
	}
	s.metrics.IncMatchesReported()

	if dryRun {
		log.Info("[Dry Run] Would publish match report", "match", match.ID)
		return match, nil
	}
	s.counters.Increment(CounterMatchesReported)
	report := pubsub.MatchReport{WinnerID: winnerID, LoserID: loserID}
	if err := s.pubsub.SendMessage(pubsub.EventMatchReported, report); err != nil {
		log.Error("Failed to publish match report", "error", err, "match", match.ID)
	}
	return match, nil
}

// Standings returns the current standings, best first.
func (s *Service) Standings(ctx context.Context) ([]pairing.Player, error) {
	return s.store.PlayerStandings(ctx)
}

// PostStandings sends the current standings to the notifier.
func (s *Service) PostStandings(ctx context.Context, dryRun bool) error {
	standings, err := s.store.PlayerStandings(ctx)
	if err != nil {
		return fmt.Errorf("failed to get standings: %w", err)
	}
	if err := s.notifier.SendStandings(standings, dryRun); err != nil {
		return fmt.Errorf("failed to send standings: %w", err)
	}
	if !dryRun {
		s.counters.Increment(CounterStandingsPosted)
	}
	log.Info("Posted standings", "players", len(standings))
	return nil
}
