package config

import "time"

// Config holds all configuration for the application.
type Config struct {
	Port      string
	Database  DatabaseConfig
	Pairing   PairingConfig
	Slack     SlackConfig
	ProjectID string
	// StandingsInterval is how often the standings digest is posted. Zero disables it.
	StandingsInterval time.Duration
}

type DatabaseConfig struct {
	// Driver is one of sqlite3, libsql or postgres.
	Driver        string
	Name          string
	URL           string
	MigrationsDir string
	Turso         TursoConfig
}

type TursoConfig struct {
	PrimaryURL string
	AuthToken  string
}

type PairingConfig struct {
	NodeBudget int
}

type SlackConfig struct {
	Token         string
	ChannelID     string
	SigningSecret string
}

// SlackEnabled reports whether enough Slack settings are present to post messages.
func (c Config) SlackEnabled() bool {
	return c.Slack.Token != "" && c.Slack.ChannelID != ""
}
