package rounds

import (
	"sync"

	"github.com/mauv0809/swiss-tribble/internal/metrics"
	"github.com/mauv0809/swiss-tribble/internal/notifier"
	"github.com/mauv0809/swiss-tribble/internal/pairing"
	"github.com/mauv0809/swiss-tribble/internal/pubsub"
	"github.com/mauv0809/swiss-tribble/internal/tournament"
)

// Keys of the persisted counters kept by the service.
const (
	CounterRoundsPaired    = "rounds_paired"
	CounterRoundsFailed    = "rounds_failed"
	CounterMatchesReported = "matches_reported"
	CounterStandingsPosted = "standings_posted"
)

// Service drives a tournament: it takes snapshots from the store, runs the
// pairing engine and fans results out to events and notifications.
type Service struct {
	store    tournament.Store
	engine   *pairing.Engine
	notifier notifier.Notifier
	metrics  metrics.Metrics
	counters metrics.CounterStore
	pubsub   pubsub.PubSubClient

	// roundMu serialises NextRound.
	roundMu sync.Mutex
}
