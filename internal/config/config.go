package config

import (
	"os"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/mauv0809/swiss-tribble/internal/pairing"
)

// Load reads configuration from environment variables and .env file.
func Load() Config {
	err := godotenv.Load()
	if err != nil {
		log.Info("No .env file found, reading from environment variables")
	}
	return FromEnv(os.LookupEnv)
}

// FromEnv builds a Config from the given lookup function. Missing required
// variables are fatal.
func FromEnv(lookup func(string) (string, bool)) Config {
	// A helper function to get a required env var. It will fail if the env var is not set.
	getEnv := func(key string) string {
		if value, ok := lookup(key); ok {
			return value
		}
		log.Fatalf("Error: Required environment variable %s is not set.", key)
		return ""
	}
	getEnvOr := func(key, fallback string) string {
		if value, ok := lookup(key); ok && value != "" {
			return value
		}
		return fallback
	}

	nodeBudget := pairing.DefaultNodeBudget
	if raw := getEnvOr("PAIRING_NODE_BUDGET", ""); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			log.Warn("Invalid PAIRING_NODE_BUDGET, using default", "value", raw, "default", nodeBudget)
		} else {
			nodeBudget = parsed
		}
	}

	var standingsInterval time.Duration
	if raw := getEnvOr("STANDINGS_INTERVAL", ""); raw != "" {
		parsed, err := time.ParseDuration(raw)
		if err != nil {
			log.Warn("Invalid STANDINGS_INTERVAL, standings digest disabled", "value", raw)
		} else {
			standingsInterval = parsed
		}
	}

	cfg := Config{
		Port: getEnv("PORT"),
		Database: DatabaseConfig{
			Driver:        getEnvOr("DB_DRIVER", "sqlite3"),
			Name:          getEnvOr("DB_NAME", "tournament.db"),
			URL:           getEnvOr("DATABASE_URL", ""),
			MigrationsDir: getEnvOr("MIGRATIONS_DIR", ""),
			Turso: TursoConfig{
				PrimaryURL: getEnvOr("TURSO_PRIMARY_URL", ""),
				AuthToken:  getEnvOr("TURSO_AUTH_TOKEN", ""),
			},
		},
		Pairing: PairingConfig{
			NodeBudget: nodeBudget,
		},
		Slack: SlackConfig{
			Token:         getEnvOr("SLACK_BOT_TOKEN", ""),
			ChannelID:     getEnvOr("SLACK_CHANNEL_ID", ""),
			SigningSecret: getEnvOr("SLACK_SIGNING_SECRET", ""),
		},
		ProjectID:         getEnvOr("GCP_PROJECT", ""),
		StandingsInterval: standingsInterval,
	}
	return cfg
}
