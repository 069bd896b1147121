package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/mauv0809/swiss-tribble/internal/config"
	"github.com/mauv0809/swiss-tribble/internal/database"
	"github.com/mauv0809/swiss-tribble/internal/metrics"
	"github.com/mauv0809/swiss-tribble/internal/notifier"
	"github.com/mauv0809/swiss-tribble/internal/pairing"
	"github.com/mauv0809/swiss-tribble/internal/pubsub"
	"github.com/mauv0809/swiss-tribble/internal/rounds"
	"github.com/mauv0809/swiss-tribble/internal/tournament"
	"github.com/spf13/cobra"
)

var (
	numPlayers int
	numRounds  int
	seed       int64
)

var rootCmd = &cobra.Command{
	Use:   "seeder",
	Short: "Fill the configured database with a simulated tournament",
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd.Context())
	},
}

func init() {
	rootCmd.Flags().IntVar(&numPlayers, "players", 16, "Number of players to register")
	rootCmd.Flags().IntVar(&numRounds, "rounds", 4, "Number of rounds to pair and play")
	rootCmd.Flags().Int64Var(&seed, "seed", time.Now().UnixNano(), "Seed for the random match results")
}

// loadConfig reads the same environment as the server, but PORT is not needed here.
func loadConfig() config.Config {
	if err := godotenv.Load(); err != nil {
		log.Warn("No .env file found, reading from environment variables")
	}
	return config.FromEnv(func(key string) (string, bool) {
		if value, ok := os.LookupEnv(key); ok {
			return value, true
		}
		if key == "PORT" {
			return "", true
		}
		return "", false
	})
}

func run(ctx context.Context) error {
	log.Info("Starting database seeder...", "players", numPlayers, "rounds", numRounds, "seed", seed)
	cfg := loadConfig()

	db, teardown, err := database.InitDB(cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer teardown()

	store := tournament.New(db)
	metricsSvc := metrics.NewService()
	ps := pubsub.New("")
	defer ps.Close()
	service := rounds.New(store, pairing.New(cfg.Pairing.NodeBudget), notifier.LogNotifier{}, metricsSvc, metrics.NewCounterStore(db), ps)

	for i := 0; i < numPlayers; i++ {
		if _, err := store.RegisterPlayer(ctx, fmt.Sprintf("Seeder Player %d", i+1)); err != nil {
			return fmt.Errorf("failed to register player: %w", err)
		}
	}
	log.Info("Registered players", "count", numPlayers)

	rng := rand.New(rand.NewSource(seed))
	startTime := time.Now()
	for n := 0; n < numRounds; n++ {
		round, err := service.NextRound(ctx, false)
		if err != nil {
			return fmt.Errorf("failed to pair round: %w", err)
		}
		if round.Outcome != pairing.OutcomePaired {
			log.Warn("Stopping early, round could not be paired", "round", round.Number, "outcome", round.Outcome)
			break
		}

		for _, pair := range round.Pairs {
			winner, loser := pair.A, pair.B
			if rng.Intn(2) == 1 {
				winner, loser = loser, winner
			}
			if _, err := service.ReportMatch(ctx, winner.ID, loser.ID, false); err != nil {
				return fmt.Errorf("failed to report match: %w", err)
			}
		}
		log.Info("Played round", "round", round.Number, "matches", len(round.Pairs))
	}

	log.Info("Seeding finished", "duration", time.Since(startTime))
	return service.PostStandings(ctx, false)
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		log.Fatalf("Seeder failed: %s", err)
	}
}
