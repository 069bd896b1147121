package pairing

import "sort"

// Rank orders players by wins descending, breaking ties by ascending id so that
// equal standings always produce the same search order. The input is not modified.
func Rank(players []Player) []Player {
	ranked := make([]Player, len(players))
	copy(ranked, players)
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Wins != ranked[j].Wins {
			return ranked[i].Wins > ranked[j].Wins
		}
		return ranked[i].ID < ranked[j].ID
	})
	return ranked
}
