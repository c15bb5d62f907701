package search

import (
	"github.com/pappde/bmai-sub000/die"
	"github.com/pappde/bmai-sub000/game"
	"github.com/pappde/bmai-sub000/move"
)

// sampleSwingMoves reduces an oversized preround move list down to
// limit entries by random sampling biased to retain combinations whose
// swing values sit at the extremes of each swing letter's range
// (spec.md §4.5 "Swing/option enumeration for the search"). Extreme
// combinations carry the most information about the value landscape,
// so all of them are kept and the interior is sampled to fill the rest;
// when the extremes alone exceed limit, a random subset of them is kept.
func sampleSwingMoves(g *game.Game, moves []move.Move, limit int) []move.Move {
	if limit < 1 || len(moves) <= limit {
		return moves
	}

	extreme := make([]move.Move, 0, limit)
	interior := make([]move.Move, 0, len(moves))
	for _, m := range moves {
		if isExtremeSwing(m) {
			extreme = append(extreme, m)
		} else {
			interior = append(interior, m)
		}
	}

	if len(extreme) >= limit {
		g.RNG.Shuffle(len(extreme), func(i, j int) {
			extreme[i], extreme[j] = extreme[j], extreme[i]
		})
		return extreme[:limit]
	}

	g.RNG.Shuffle(len(interior), func(i, j int) {
		interior[i], interior[j] = interior[j], interior[i]
	})
	out := extreme
	out = append(out, interior[:limit-len(extreme)]...)
	return out
}

// isExtremeSwing reports whether every swing choice in m sits at an
// endpoint of its letter's range.
func isExtremeSwing(m move.Move) bool {
	if m.Kind != move.SetSwing || len(m.SetSwing.Swings) == 0 {
		return false
	}
	for _, sc := range m.SetSwing.Swings {
		t, ok := die.SwingTypeForLetter(sc.Letter)
		if !ok {
			return false
		}
		min, max := t.Range()
		if sc.Value != min && sc.Value != max {
			return false
		}
	}
	return true
}
