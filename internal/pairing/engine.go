package pairing

import "fmt"

// DefaultNodeBudget bounds the search when no budget is configured by the caller.
const DefaultNodeBudget = 1_000_000

// Engine computes Swiss pairings from a ranked snapshot. The zero value searches
// without a node budget.
type Engine struct {
	// NodeBudget caps the number of tentative pairings the search may place.
	// Zero or negative means unlimited.
	NodeBudget int
}

// New returns an engine with the given node budget.
func New(nodeBudget int) *Engine {
	return &Engine{NodeBudget: nodeBudget}
}

// frame is one level of the search: p1 is fixed, p2 is the opponent currently
// tried for it (p2 == p1 before the first candidate is placed).
type frame struct {
	p1 int
	p2 int
}

// Compute pairs every player in snapshot exactly once without repeating a
// previous meeting. The snapshot must already be in standings order: the
// highest ranked unpaired player is always paired first, and its opponents are
// tried from the nearest ranked downwards. The first complete pairing found is
// returned.
//
// Infeasibility is reported through Result.Outcome. An error is only returned
// when the snapshot itself is unusable.
func (e *Engine) Compute(snapshot []Player, history HistoryIndex) (Result, error) {
	if err := validate(snapshot); err != nil {
		return Result{}, err
	}
	if history == nil {
		history = NewHistory()
	}
	if stranded(snapshot, history) {
		return Result{Outcome: OutcomeInfeasible}, nil
	}
	return e.search(snapshot, history), nil
}

func validate(snapshot []Player) error {
	if len(snapshot)%2 != 0 {
		return fmt.Errorf("%w: %d", ErrOddPlayerCount, len(snapshot))
	}
	seen := make(map[int64]struct{}, len(snapshot))
	for _, p := range snapshot {
		if _, ok := seen[p.ID]; ok {
			return fmt.Errorf("%w: id %d", ErrDuplicatePlayer, p.ID)
		}
		seen[p.ID] = struct{}{}
	}
	return nil
}

// stranded reports whether some player has already met everyone else in the
// snapshot, in which case no perfect matching can exist.
func stranded(snapshot []Player, history HistoryIndex) bool {
	for i, p := range snapshot {
		open := false
		for j, q := range snapshot {
			if i != j && !history.HasPlayed(p.ID, q.ID) {
				open = true
				break
			}
		}
		if !open {
			return true
		}
	}
	return false
}

func (e *Engine) search(players []Player, history HistoryIndex) Result {
	n := len(players)
	paired := make([]bool, n)
	frames := make([]frame, 0, n/2)
	nodes := 0
	descend := true

	for {
		if descend {
			if len(frames) == n/2 {
				return Result{Pairs: collect(players, frames), Outcome: OutcomePaired, Nodes: nodes}
			}
			p1 := firstUnpaired(paired)
			paired[p1] = true
			frames = append(frames, frame{p1: p1, p2: p1})
		}

		top := &frames[len(frames)-1]
		if top.p2 != top.p1 {
			paired[top.p2] = false
		}

		next := -1
		for c := top.p2 + 1; c < n; c++ {
			if paired[c] || history.HasPlayed(players[top.p1].ID, players[c].ID) {
				continue
			}
			next = c
			break
		}

		if next < 0 {
			paired[top.p1] = false
			frames = frames[:len(frames)-1]
			if len(frames) == 0 {
				return Result{Outcome: OutcomeInfeasible, Nodes: nodes}
			}
			descend = false
			continue
		}

		nodes++
		if e.NodeBudget > 0 && nodes > e.NodeBudget {
			return Result{Outcome: OutcomeBudgetExhausted, Nodes: nodes}
		}
		top.p2 = next
		paired[next] = true
		descend = true
	}
}

func firstUnpaired(paired []bool) int {
	for i, done := range paired {
		if !done {
			return i
		}
	}
	return -1
}

func collect(players []Player, frames []frame) []Pair {
	pairs := make([]Pair, 0, len(frames))
	for _, f := range frames {
		pairs = append(pairs, Pair{A: players[f.p1], B: players[f.p2]})
	}
	return pairs
}
