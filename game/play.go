package game

// PlayRound drives the game from its current phase through to the next
// round boundary (a fresh PhasePreround, or PhaseGameOver), asking
// each phase's acting player's AI for a move and applying it. This is
// the primitive spec.md §2's data flow describes: "playgame/playfair
// loop over Game::play_round internally".
func (g *Game) PlayRound() {
	startedInPreround := g.Phase == PhasePreround
	for {
		if g.Phase == PhaseGameOver {
			return
		}
		mover := g.ActingPlayer()
		ai := g.AIs[mover]
		if ai == nil {
			return
		}
		mv := ai.ChooseMove(g, mover)
		g.ApplyMove(mv)
		if g.Phase == PhaseGameOver {
			return
		}
		if g.Phase == PhasePreround && !startedInPreround {
			return
		}
		if g.Phase != PhasePreround {
			// a full preround->...->preround cycle without an
			// intervening round-end is impossible; guard against an
			// infinite loop by treating re-entry as the boundary too
			// once at least one non-preround phase has been visited.
			startedInPreround = false
		}
	}
}

// PlayGame runs PlayRound until the game reaches PhaseGameOver.
func (g *Game) PlayGame() {
	for !g.IsOver() {
		g.PlayRound()
	}
}
