package rounds

import (
	"context"
	"errors"
	"testing"

	"github.com/mauv0809/swiss-tribble/internal/config"
	"github.com/mauv0809/swiss-tribble/internal/database"
	"github.com/mauv0809/swiss-tribble/internal/metrics"
	"github.com/mauv0809/swiss-tribble/internal/notifier"
	"github.com/mauv0809/swiss-tribble/internal/pairing"
	"github.com/mauv0809/swiss-tribble/internal/pubsub"
	"github.com/mauv0809/swiss-tribble/internal/tournament"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	store    *tournament.MockStore
	notif    *notifier.Mock
	metr     *metrics.Mock
	counters *metrics.CounterMock
	pubsub   *pubsub.MockPubSubClient
	service  *Service
}

func newFixture(budget int) *fixture {
	f := &fixture{
		store:    tournament.NewMock(),
		notif:    notifier.NewMock(),
		metr:     metrics.NewMock(),
		counters: metrics.NewCounterMock(),
		pubsub:   pubsub.NewMock(),
	}
	f.service = New(f.store, pairing.New(budget), f.notif, f.metr, f.counters, f.pubsub)
	return f
}

func snapshotOf(players []pairing.Player, played ...[2]int64) *tournament.Snapshot {
	history := pairing.NewHistory()
	for _, m := range played {
		history.Add(m[0], m[1])
	}
	return &tournament.Snapshot{Standings: players, History: history, Matches: len(played)}
}

func TestNextRound(t *testing.T) {
	t.Run("pairs players and announces the round", func(t *testing.T) {
		f := newFixture(0)
		f.store.SnapshotFunc = func() (*tournament.Snapshot, error) {
			return snapshotOf([]pairing.Player{
				{ID: 1, Name: "A", Wins: 1, Matches: 1},
				{ID: 3, Name: "C", Wins: 0, Matches: 1},
				{ID: 2, Name: "B", Wins: 1, Matches: 1},
				{ID: 4, Name: "D", Wins: 0, Matches: 1},
			}, [2]int64{1, 3}, [2]int64{2, 4}), nil
		}

		round, err := f.service.NextRound(context.Background(), false)
		require.NoError(t, err)

		assert.Equal(t, pairing.OutcomePaired, round.Outcome)
		assert.Equal(t, 2, round.Number)
		assert.NotEmpty(t, round.ID)
		require.Len(t, round.Pairs, 2)
		assert.Equal(t, int64(1), round.Pairs[0].A.ID)
		assert.Equal(t, int64(2), round.Pairs[0].B.ID)
		assert.Equal(t, int64(3), round.Pairs[1].A.ID)
		assert.Equal(t, int64(4), round.Pairs[1].B.ID)

		require.Len(t, f.notif.SendPairingsCalls, 1)
		assert.Same(t, round, f.notif.SendPairingsCalls[0].Round)
		assert.Empty(t, f.notif.SendPairingFailureCalls)

		calls := f.pubsub.Calls()
		require.Len(t, calls, 1)
		assert.Equal(t, pubsub.EventRoundPaired, calls[0].Topic)

		assert.Equal(t, 1, f.metr.Rounds(string(pairing.OutcomePaired)))
		assert.Equal(t, []int{2}, f.metr.SearchNodes())
		assert.Len(t, f.metr.PairingDurations(), 1)

		counters, _ := f.counters.GetAll()
		assert.Equal(t, 1, counters[CounterRoundsPaired])
	})

	t.Run("odd player count never reaches the engine", func(t *testing.T) {
		f := newFixture(0)
		f.store.SnapshotFunc = func() (*tournament.Snapshot, error) {
			return snapshotOf([]pairing.Player{{ID: 1}, {ID: 2}, {ID: 3}}), nil
		}

		round, err := f.service.NextRound(context.Background(), false)
		assert.ErrorIs(t, err, pairing.ErrOddPlayerCount)
		assert.Nil(t, round)
		assert.Empty(t, f.metr.SearchNodes())
		assert.Empty(t, f.notif.SendPairingsCalls)
		assert.Empty(t, f.notif.SendPairingFailureCalls)
	})

	t.Run("infeasible round is a value and alerts the operator", func(t *testing.T) {
		f := newFixture(0)
		f.store.SnapshotFunc = func() (*tournament.Snapshot, error) {
			return snapshotOf([]pairing.Player{{ID: 1, Wins: 1, Matches: 1}, {ID: 2, Matches: 1}}, [2]int64{1, 2}), nil
		}

		round, err := f.service.NextRound(context.Background(), false)
		require.NoError(t, err)
		assert.Equal(t, pairing.OutcomeInfeasible, round.Outcome)
		assert.Empty(t, round.Pairs)

		require.Len(t, f.notif.SendPairingFailureCalls, 1)
		assert.Empty(t, f.notif.SendPairingsCalls)
		assert.Empty(t, f.pubsub.Calls(), "failed rounds are not published")
		assert.Equal(t, 1, f.metr.Rounds(string(pairing.OutcomeInfeasible)))

		counters, _ := f.counters.GetAll()
		assert.Equal(t, 1, counters[CounterRoundsFailed])
	})

	t.Run("budget exhaustion is reported distinctly", func(t *testing.T) {
		f := newFixture(1)
		f.store.SnapshotFunc = func() (*tournament.Snapshot, error) {
			players := make([]pairing.Player, 0, 6)
			for i := int64(1); i <= 6; i++ {
				players = append(players, pairing.Player{ID: i})
			}
			return snapshotOf(players,
				[2]int64{1, 5}, [2]int64{1, 6},
				[2]int64{2, 3}, [2]int64{2, 4}, [2]int64{2, 5}, [2]int64{2, 6},
				[2]int64{3, 4}, [2]int64{3, 5}, [2]int64{3, 6},
				[2]int64{4, 5}, [2]int64{4, 6},
			), nil
		}

		round, err := f.service.NextRound(context.Background(), false)
		require.NoError(t, err)
		assert.Equal(t, pairing.OutcomeBudgetExhausted, round.Outcome)
		require.Len(t, f.notif.SendPairingFailureCalls, 1)
		assert.Equal(t, 1, f.metr.Rounds(string(pairing.OutcomeBudgetExhausted)))
	})

	t.Run("dry run neither publishes nor counts", func(t *testing.T) {
		f := newFixture(0)
		f.store.SnapshotFunc = func() (*tournament.Snapshot, error) {
			return snapshotOf([]pairing.Player{{ID: 1}, {ID: 2}}), nil
		}

		round, err := f.service.NextRound(context.Background(), true)
		require.NoError(t, err)
		assert.Equal(t, pairing.OutcomePaired, round.Outcome)
		assert.Empty(t, f.pubsub.Calls())
		require.Len(t, f.notif.SendPairingsCalls, 1)
		assert.True(t, f.notif.SendPairingsCalls[0].DryRun)

		counters, _ := f.counters.GetAll()
		assert.Empty(t, counters)
	})

	t.Run("store errors are propagated", func(t *testing.T) {
		f := newFixture(0)
		f.store.SnapshotFunc = func() (*tournament.Snapshot, error) {
			return nil, tournament.ErrDataInconsistency
		}

		_, err := f.service.NextRound(context.Background(), false)
		assert.ErrorIs(t, err, tournament.ErrDataInconsistency)
	})

	t.Run("notification failures do not fail the round", func(t *testing.T) {
		f := newFixture(0)
		f.store.SnapshotFunc = func() (*tournament.Snapshot, error) {
			return snapshotOf([]pairing.Player{{ID: 1}, {ID: 2}}), nil
		}
		f.notif.SendPairingsFunc = func(*tournament.Round, bool) error {
			return errors.New("slack is down")
		}

		round, err := f.service.NextRound(context.Background(), false)
		require.NoError(t, err)
		assert.Equal(t, pairing.OutcomePaired, round.Outcome)
	})
}

func TestReportMatch(t *testing.T) {
	t.Run("stores the result and publishes it", func(t *testing.T) {
		f := newFixture(0)

		match, err := f.service.ReportMatch(context.Background(), 1, 2, false)
		require.NoError(t, err)
		assert.Equal(t, int64(1), match.WinnerID)

		require.Len(t, f.store.ReportMatchCalls, 1)
		calls := f.pubsub.Calls()
		require.Len(t, calls, 1)
		assert.Equal(t, pubsub.EventMatchReported, calls[0].Topic)
		assert.Equal(t, pubsub.MatchReport{WinnerID: 1, LoserID: 2}, calls[0].Data)
		assert.Equal(t, 1, f.metr.MatchesReported())
	})

	t.Run("rejected results are not published", func(t *testing.T) {
		f := newFixture(0)
		f.store.ReportMatchFunc = func(winnerID, loserID int64) (*tournament.Match, error) {
			return nil, tournament.ErrRematch
		}

		_, err := f.service.ReportMatch(context.Background(), 1, 2, false)
		assert.ErrorIs(t, err, tournament.ErrRematch)
		assert.Empty(t, f.pubsub.Calls())
		assert.Equal(t, 0, f.metr.MatchesReported())
	})

	t.Run("dry run stores without publishing", func(t *testing.T) {
		f := newFixture(0)

		_, err := f.service.ReportMatch(context.Background(), 1, 2, true)
		require.NoError(t, err)
		assert.Len(t, f.store.ReportMatchCalls, 1)
		assert.Empty(t, f.pubsub.Calls())
	})
}

func TestPostStandings(t *testing.T) {
	f := newFixture(0)
	f.store.PlayerStandingsFunc = func() ([]pairing.Player, error) {
		return []pairing.Player{{ID: 1, Name: "A"}}, nil
	}

	require.NoError(t, f.service.PostStandings(context.Background(), false))
	assert.Equal(t, 1, f.notif.StandingsSent())

	counters, _ := f.counters.GetAll()
	assert.Equal(t, 1, counters[CounterStandingsPosted])
}

// TestTournamentAgainstDatabase plays a full tournament on a real store: every
// round must pair everyone and no pairing may repeat an earlier one.
func TestTournamentAgainstDatabase(t *testing.T) {
	db, teardown, err := database.InitDB(config.DatabaseConfig{Driver: "sqlite3", Name: ":memory:"})
	require.NoError(t, err)
	defer teardown()

	store := tournament.New(db)
	service := New(store, pairing.New(pairing.DefaultNodeBudget), notifier.NewMock(), metrics.NewMock(), metrics.NewCounterStore(db), pubsub.NewMock())
	ctx := context.Background()

	for _, name := range []string{"Ann", "Ben", "Cat", "Dan", "Eve", "Fay", "Gus", "Hal"} {
		_, err := store.RegisterPlayer(ctx, name)
		require.NoError(t, err)
	}

	// Eight players can play seven rounds without a rematch. Greedy pairing by
	// standings does not always reach the last one, so only the first three
	// are required to succeed.
	for n := 1; n <= 3; n++ {
		round, err := service.NextRound(ctx, false)
		require.NoError(t, err)
		require.Equal(t, pairing.OutcomePaired, round.Outcome, "round %d", n)
		assert.Equal(t, n, round.Number)
		require.Len(t, round.Pairs, 4)

		for _, p := range round.Pairs {
			played, err := store.HasPlayed(ctx, p.A.ID, p.B.ID)
			require.NoError(t, err)
			require.False(t, played, "rematch between %d and %d in round %d", p.A.ID, p.B.ID, n)

			// The higher ranked player always wins.
			_, err = service.ReportMatch(ctx, p.A.ID, p.B.ID, false)
			require.NoError(t, err)
		}
	}

	standings, err := service.Standings(ctx)
	require.NoError(t, err)
	require.Len(t, standings, 8)
	assert.Equal(t, 3, standings[0].Wins)
	assert.Equal(t, 0, standings[7].Wins)

	counters, err := metrics.NewCounterStore(db).GetAll()
	require.NoError(t, err)
	assert.Equal(t, 3, counters[CounterRoundsPaired])
	assert.Equal(t, 12, counters[CounterMatchesReported])
}
