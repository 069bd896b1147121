package pairing

import "errors"

var (
	ErrOddPlayerCount  = errors.New("odd number of players")
	ErrDuplicatePlayer = errors.New("player appears more than once in standings")
)

// Player is one row of the standings snapshot.
type Player struct {
	ID      int64  `json:"id" msgpack:"id"`
	Name    string `json:"name" msgpack:"name"`
	Wins    int    `json:"wins" msgpack:"wins"`
	Matches int    `json:"matches" msgpack:"matches"`
}

// Pair is a single board of a round. A is always the higher ranked player.
type Pair struct {
	A Player `json:"player_a" msgpack:"player_a"`
	B Player `json:"player_b" msgpack:"player_b"`
}

// Outcome tells the caller how a pairing computation ended.
type Outcome string

const (
	OutcomePaired          Outcome = "PAIRED"
	OutcomeInfeasible      Outcome = "INFEASIBLE"
	OutcomeBudgetExhausted Outcome = "BUDGET_EXHAUSTED"
)

// Result is what the engine hands back. Pairs is only set when Outcome is OutcomePaired.
type Result struct {
	Pairs   []Pair  `json:"pairs"`
	Outcome Outcome `json:"outcome"`
	// Nodes is the number of tentative pairings placed during the search.
	Nodes int `json:"nodes"`
}

// HistoryIndex answers whether two players have already met. Implementations
// must be symmetric.
type HistoryIndex interface {
	HasPlayed(a, b int64) bool
}
