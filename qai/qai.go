// Package qai implements the quick evaluator of spec.md §4.4: a cheap
// one-ply heuristic mover used as the search's leaf oracle once ply
// depth is exhausted. Grounded on mcts/search.go's simulate() (apply a
// move to a clone, read off a score), restructured per spec.md's
// expected-value-shift-plus-fuzziness heuristic rather than a random
// playout.
package qai

import (
	"github.com/pappde/bmai-sub000/die"
	"github.com/pappde/bmai-sub000/game"
	"github.com/pappde/bmai-sub000/move"
)

// AI is the quick evaluator. It implements game.AI.
type AI struct {
	// Fuzziness adds uniform integer noise in [0, Fuzziness) to each
	// candidate's score, breaking ties pseudo-randomly the way the
	// original's QAI does (spec.md §4.4).
	Fuzziness int
}

// New returns a QAI with the given fuzziness (0 disables noise).
func New(fuzziness int) *AI { return &AI{Fuzziness: fuzziness} }

// ChooseMove scores every legal attack with the cheap heuristic and
// returns the maximum, breaking ties by first found (spec.md §4.4).
// Non-fight phases return pass or a minimally-populated default.
func (a *AI) ChooseMove(g *game.Game, playerIdx int) move.Move {
	if g.Phase != game.PhaseFight {
		return a.defaultMove(g, playerIdx)
	}

	moves := g.LegalMoves()
	if len(moves) == 0 {
		return move.NewPass()
	}

	best := moves[0]
	bestScore := a.score(g, playerIdx, best)
	for _, m := range moves[1:] {
		s := a.score(g, playerIdx, m)
		if s > bestScore {
			bestScore = s
			best = m
		}
	}
	return best
}

// score implements spec.md §4.4's heuristic: apply the move to a
// cloned game, take the attacker-minus-target score delta, adjust for
// each rerolling attacker die's expected value shift, and add noise.
func (a *AI) score(g *game.Game, playerIdx int, m move.Move) float64 {
	clone := g.Clone()
	before0, before1 := clone.Players[0].Score, clone.Players[1].Score

	if m.Kind == move.Attack {
		clone.ApplyAttack(m)
	}

	after0, after1 := clone.Players[0].Score, clone.Players[1].Score
	delta := (after0 - before0) - (after1 - before1)
	if g.PhasePlayer == 1 {
		delta = -delta
	}

	if m.Kind == move.Attack {
		for _, orig := range m.Attack.Attackers {
			d := findOriginal(g, g.PhasePlayer, orig)
			if d == nil {
				continue
			}
			shift := (float64(d.SidesMax()+1) / 2) - float64(d.Value)
			switch {
			case d.Properties.Has(die.Shadow):
				// shadow dice don't change value on reroll in a way
				// that matters to this estimate (spec.md §4.4).
			case d.Properties.Has(die.Poison):
				delta -= shift
			default:
				delta += shift
			}
		}
	}

	if a.Fuzziness > 0 {
		delta += float64(pseudoNoise(g, a.Fuzziness))
	}

	return delta
}

// findOriginal looks up a die by original roster index without
// mutating the live game (read-only helper; game package doesn't
// export this directly since search/qai are the only outside callers
// that need it read-only).
func findOriginal(g *game.Game, playerIdx, orig int) *die.Die {
	p := g.Players[playerIdx]
	for i := 0; i < p.NumDice; i++ {
		if p.Dice[i].OriginalIndex == orig {
			return &p.Dice[i]
		}
	}
	return nil
}

// pseudoNoise draws a uniform integer in [0, n) from the game's shared
// RNG stream (spec.md §4.4 "small uniform integer noise").
func pseudoNoise(g *game.Game, n int) int {
	return g.RNG.Intn(n)
}

// defaultMove returns the first legal swing combination in preround
// (minimalSwingMove; it does not pass there), pass in the chance/focus
// sub-phases, a reserve
// pass in the reserve phase, and pass otherwise (spec.md §4.4).
func (a *AI) defaultMove(g *game.Game, playerIdx int) move.Move {
	switch g.Phase {
	case game.PhasePreround:
		return minimalSwingMove(g, playerIdx)
	case game.PhaseInitiativeChance, game.PhaseInitiativeFocus:
		return move.NewPass()
	case game.PhaseReserve:
		return move.Move{Kind: move.UseReserve, UseReserve: move.UseReservePayload{Pass: true}}
	}
	return move.NewPass()
}

// minimalSwingMove picks the first legal swing combination (spec.md
// §4.4: "a minimally-populated default action"), deferring to the
// rules engine's own enumeration rather than re-deriving swing ranges.
func minimalSwingMove(g *game.Game, playerIdx int) move.Move {
	moves := g.LegalMoves()
	if len(moves) == 0 {
		return move.Move{Kind: move.SetSwing}
	}
	return moves[0]
}
