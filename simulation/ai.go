package simulation

import (
	"github.com/pappde/bmai-sub000/game"
	"github.com/pappde/bmai-sub000/move"
)

// Random picks uniformly among the legal moves, the baseline mover of
// the fairness harness (playfair mode 0; original BMC_AI's
// GetAttackAction draws one move from the list at random).
type Random struct{}

func (Random) ChooseMove(g *game.Game, playerIdx int) move.Move {
	moves := g.LegalMoves()
	if len(moves) == 0 {
		return move.NewPass()
	}
	return moves[g.RNG.Intn(len(moves))]
}

// Maximize is the one-ply greedy mover of playfair mode 1 (original
// BMC_AI_Maximize): in the fight phase it simulates each attack once
// and keeps the best score differential; elsewhere it takes the first
// legal move, which for swing enumeration is the minimum-value
// combination.
type Maximize struct{}

func (Maximize) ChooseMove(g *game.Game, playerIdx int) move.Move {
	moves := g.LegalMoves()
	if len(moves) == 0 {
		return move.NewPass()
	}
	if g.Phase != game.PhaseFight {
		return moves[0]
	}

	best := moves[0]
	bestScore := scoreAttack(g, moves[0])
	for _, m := range moves[1:] {
		if s := scoreAttack(g, m); s > bestScore {
			bestScore = s
			best = m
		}
	}
	return best
}

// scoreAttack simulates the attack once on a clone and returns the
// phasing-player-minus-target score differential (original
// BMC_AI::ScoreAttack: one sampled application, not an expectation).
func scoreAttack(g *game.Game, m move.Move) float64 {
	if m.Kind != move.Attack {
		return 0
	}
	clone := g.Clone()
	clone.ApplyAttack(m.Clone())
	return clone.Players[clone.PhasePlayer].Score - clone.Players[clone.TargetPlayer].Score
}

// MaximizeOrRandom flips a weighted coin per move: Maximize with
// probability P, Random otherwise (original BMC_AI_MaximizeOrRandom,
// playfair's Maximize-probability parameter).
type MaximizeOrRandom struct {
	P float64
}

func (a MaximizeOrRandom) ChooseMove(g *game.Game, playerIdx int) move.Move {
	if g.RNG.Float64() < a.P {
		return Maximize{}.ChooseMove(g, playerIdx)
	}
	return Random{}.ChooseMove(g, playerIdx)
}
