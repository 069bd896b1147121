package tournament

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/swiss-tribble/internal/database"
	"github.com/mauv0809/swiss-tribble/internal/pairing"
)

// store handles all database operations for the tournament.
type store struct {
	db *database.DB
	mu sync.RWMutex
}

// New creates a new tournament Store.
func New(db *database.DB) Store {
	return &store{
		db: db,
	}
}

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// RegisterPlayer adds a player. The database assigns the id.
func (s *store) RegisterPlayer(ctx context.Context, name string) (pairing.Player, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return pairing.Player{}, ErrInvalidName
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var id int64
	err := s.db.QueryRowContext(ctx,
		s.db.Rebind("INSERT INTO players (name, registered_at) VALUES (?, ?) RETURNING id"),
		name, time.Now().Unix(),
	).Scan(&id)
	if err != nil {
		return pairing.Player{}, fmt.Errorf("failed to register player: %w", err)
	}

	log.Info("Registered player", "id", id, "name", name)
	return pairing.Player{ID: id, Name: name}, nil
}

func (s *store) CountPlayers(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var count int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM players").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count players: %w", err)
	}
	return count, nil
}

// ReportMatch records the outcome of a single match. Both players must be
// registered and must not have met before.
func (s *store) ReportMatch(ctx context.Context, winnerID, loserID int64) (*Match, error) {
	if winnerID == loserID {
		return nil, ErrSelfMatch
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var known int
	err = tx.QueryRowContext(ctx,
		s.db.Rebind("SELECT COUNT(*) FROM players WHERE id IN (?, ?)"),
		winnerID, loserID,
	).Scan(&known)
	if err != nil {
		return nil, fmt.Errorf("failed to look up players: %w", err)
	}
	if known != 2 {
		return nil, fmt.Errorf("%w: %d or %d", ErrPlayerNotFound, winnerID, loserID)
	}

	played, err := s.hasPlayed(ctx, tx, winnerID, loserID)
	if err != nil {
		return nil, err
	}
	if played {
		return nil, fmt.Errorf("%w: %d and %d", ErrRematch, winnerID, loserID)
	}

	match := &Match{
		WinnerID:   winnerID,
		LoserID:    loserID,
		ReportedAt: time.Unix(time.Now().Unix(), 0),
	}
	err = tx.QueryRowContext(ctx,
		s.db.Rebind("INSERT INTO matches (winner_id, loser_id, reported_at) VALUES (?, ?, ?) RETURNING id"),
		winnerID, loserID, match.ReportedAt.Unix(),
	).Scan(&match.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to insert match: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit match: %w", err)
	}

	log.Info("Reported match", "id", match.ID, "winner", winnerID, "loser", loserID)
	return match, nil
}

func (s *store) PlayerStandings(ctx context.Context) ([]pairing.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.standings(ctx, s.db)
}

func (s *store) standings(ctx context.Context, q querier) ([]pairing.Player, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT id, name, wins, matches
		FROM standings
		ORDER BY wins DESC, id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query standings: %w", err)
	}
	defer rows.Close()

	players := make([]pairing.Player, 0)
	for rows.Next() {
		var p pairing.Player
		if err := rows.Scan(&p.ID, &p.Name, &p.Wins, &p.Matches); err != nil {
			return nil, fmt.Errorf("failed to scan standings row: %w", err)
		}
		players = append(players, p)
	}
	return players, rows.Err()
}

func (s *store) HasPlayed(ctx context.Context, a, b int64) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.hasPlayed(ctx, s.db, a, b)
}

func (s *store) hasPlayed(ctx context.Context, q querier, a, b int64) (bool, error) {
	var count int
	err := q.QueryRowContext(ctx, s.db.Rebind(`
		SELECT COUNT(*) FROM matches
		WHERE (winner_id = ? AND loser_id = ?) OR (winner_id = ? AND loser_id = ?)
	`), a, b, b, a).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check match history: %w", err)
	}
	return count > 0, nil
}

func (s *store) ListMatches(ctx context.Context) ([]Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.matches(ctx, s.db)
}

func (s *store) matches(ctx context.Context, q querier) ([]Match, error) {
	rows, err := q.QueryContext(ctx, "SELECT id, winner_id, loser_id, reported_at FROM matches ORDER BY id ASC")
	if err != nil {
		return nil, fmt.Errorf("failed to query matches: %w", err)
	}
	defer rows.Close()

	matches := make([]Match, 0)
	for rows.Next() {
		var m Match
		var reportedAt int64
		if err := rows.Scan(&m.ID, &m.WinnerID, &m.LoserID, &reportedAt); err != nil {
			return nil, fmt.Errorf("failed to scan match row: %w", err)
		}
		m.ReportedAt = time.Unix(reportedAt, 0)
		matches = append(matches, m)
	}
	return matches, rows.Err()
}

func (s *store) DeleteMatches(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.ExecContext(ctx, "DELETE FROM matches"); err != nil {
		return fmt.Errorf("failed to delete matches: %w", err)
	}
	log.Info("Deleted all matches")
	return nil
}

func (s *store) DeletePlayers(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM matches"); err != nil {
		return fmt.Errorf("failed to delete matches: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM players"); err != nil {
		return fmt.Errorf("failed to delete players: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit player deletion: %w", err)
	}
	log.Info("Deleted all players")
	return nil
}

// Snapshot reads standings and history in one transaction and checks that the
// two views agree before handing them to the pairing engine.
func (s *store) Snapshot(ctx context.Context) (*Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var opts *sql.TxOptions
	if s.db.Dialect == database.DialectPostgres {
		opts = &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true}
	}
	tx, err := s.db.BeginTx(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to begin snapshot transaction: %w", err)
	}
	defer tx.Rollback()

	standings, err := s.standings(ctx, tx)
	if err != nil {
		return nil, err
	}
	matches, err := s.matches(ctx, tx)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to close snapshot transaction: %w", err)
	}

	if err := checkConsistency(standings, matches); err != nil {
		return nil, err
	}

	history := pairing.NewHistory()
	for _, m := range matches {
		history.Add(m.WinnerID, m.LoserID)
	}
	log.Debug("Took standings snapshot", "players", len(standings), "matches", len(matches))
	return &Snapshot{Standings: standings, History: history, Matches: len(matches)}, nil
}

func checkConsistency(standings []pairing.Player, matches []Match) error {
	known := make(map[int64]struct{}, len(standings))
	wins := 0
	for _, p := range standings {
		if p.Wins < 0 || p.Wins > p.Matches {
			return fmt.Errorf("%w: player %d has %d wins in %d matches", ErrDataInconsistency, p.ID, p.Wins, p.Matches)
		}
		known[p.ID] = struct{}{}
		wins += p.Wins
	}
	for _, m := range matches {
		_, winnerKnown := known[m.WinnerID]
		_, loserKnown := known[m.LoserID]
		if !winnerKnown || !loserKnown {
			return fmt.Errorf("%w: match %d references an unknown player", ErrDataInconsistency, m.ID)
		}
	}
	if wins != len(matches) {
		return fmt.Errorf("%w: %d wins recorded for %d matches", ErrDataInconsistency, wins, len(matches))
	}
	return nil
}
