package pairing

type pairKey struct{ lo, hi int64 }

func keyOf(a, b int64) pairKey {
	if a > b {
		a, b = b, a
	}
	return pairKey{lo: a, hi: b}
}

// History is an in-memory HistoryIndex over recorded matches.
type History struct {
	played map[pairKey]struct{}
}

// NewHistory creates an empty history.
func NewHistory() *History {
	return &History{played: make(map[pairKey]struct{})}
}

// Add records that a and b met. Order does not matter.
func (h *History) Add(a, b int64) {
	h.played[keyOf(a, b)] = struct{}{}
}

// HasPlayed implements HistoryIndex.
func (h *History) HasPlayed(a, b int64) bool {
	if h == nil {
		return false
	}
	_, ok := h.played[keyOf(a, b)]
	return ok
}

// Len returns the number of distinct pairings recorded.
func (h *History) Len() int {
	if h == nil {
		return 0
	}
	return len(h.played)
}
