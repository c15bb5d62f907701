package game

import (
	"github.com/pappde/bmai-sub000/die"
	"github.com/pappde/bmai-sub000/move"
)

// ApplyMove is the single dispatch point for applying any legal move
// to the game, matching spec.md §4.6's command-dispatch shape: each
// phase accepts exactly the move kinds its LegalMoves can produce.
func (g *Game) ApplyMove(m move.Move) {
	switch g.Phase {
	case PhasePreround:
		g.ApplySetSwing(m)
	case PhaseInitiativeChance:
		if m.Kind == move.Pass {
			g.PassChance()
		} else {
			g.ApplyUseChance(m)
		}
	case PhaseInitiativeFocus:
		if m.Kind == move.Pass {
			g.PassFocus()
		} else {
			g.ApplyUseFocus(m)
		}
	case PhaseReserve:
		g.ApplyUseReserve(m)
	case PhaseFight:
		g.applyFightMove(m)
	}
}

// applyFightMove handles pass/surrender/attack during PhaseFight,
// including mutual-pass and surrender round termination, and turn
// alternation (spec.md §4.3 "Turn alternation", "Round end").
func (g *Game) applyFightMove(m move.Move) {
	switch m.Kind {
	case move.Surrender:
		g.Players[g.PhasePlayer].OnSurrendered()
		g.endRound()
		return
	case move.Pass:
		mutual := g.LastAction == move.Pass && g.LastActionBy == g.TargetPlayer
		g.LastAction = move.Pass
		g.LastActionBy = g.PhasePlayer
		if mutual {
			g.endRound()
			return
		}
		g.finishTurn(false)
		return
	case move.Attack:
		if !g.ValidAttack(m) {
			// unreachable when moves come from LegalMoves; an AI handing
			// back anything else forfeits the turn (spec.md §7).
			Invariant(false, "illegal attack move rejected")
			g.LastAction = move.Pass
			g.LastActionBy = g.PhasePlayer
			g.finishTurn(false)
			return
		}
		extraTurn := g.ApplyAttack(m)
		g.LastAction = move.Attack
		g.LastActionBy = g.PhasePlayer
		if g.Players[g.TargetPlayer].AvailableDice == 0 {
			g.endRound()
			return
		}
		g.finishTurn(extraTurn)
		return
	}
}

// finishTurn recovers the mover's dizzy dice, then swaps phasing and
// target players unless an extra turn was earned (spec.md §4.3 "Dizzy
// recovery", "Turn alternation").
func (g *Game) finishTurn(extraTurn bool) {
	mover := g.Players[g.PhasePlayer]
	for i := 0; i < mover.NumDice; i++ {
		mover.Dice[i].RecoverFromDizzy()
	}
	mover.OptimizeDice()

	if extraTurn {
		return
	}
	g.PhasePlayer, g.TargetPlayer = g.TargetPlayer, g.PhasePlayer
}

// endRound scores the round, updates standings, and transitions to
// gameover, reserve, or back to preround (spec.md §4.3 "Round end").
func (g *Game) endRound() {
	s0, s1 := g.Players[0].Score, g.Players[1].Score

	winner := 0
	if s1 > s0 {
		winner = 1
	}
	loser := Opponent(winner)

	g.Standing.Wins[winner]++
	g.Players[loser].OnRoundLost()

	if g.Standing.Wins[winner] >= g.TargetWins {
		g.Phase = PhaseGameOver
		return
	}

	if g.playerHasReserve(loser) {
		g.reserveMover = loser
		g.Phase = PhaseReserve
		return
	}

	g.beginPreround()
}

func (g *Game) playerHasReserve(playerIdx int) bool {
	p := g.Players[playerIdx]
	for i := 0; i < p.NumDice; i++ {
		if p.Dice[i].State == die.StateReserve {
			return true
		}
	}
	return false
}
