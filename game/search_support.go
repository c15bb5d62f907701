package game

import "github.com/pappde/bmai-sub000/player"

// MaskOpponentSwing temporarily downgrades the opponent's ready swing
// status to not-ready, so a recursive search call evaluating this
// player's candidate move can't have its own QAI/search peek at the
// opponent's already-chosen-but-unmasked swing (spec.md §4.5
// "Simultaneous swing masking"). Only applies above the top level,
// matching the spec's "when evaluating ... at level > 1". Returns
// whether a mask was applied, so the caller knows whether to restore.
func (g *Game) MaskOpponentSwing(playerIdx, level int) bool {
	if level <= 1 {
		return false
	}
	opp := Opponent(playerIdx)
	p := g.Players[opp]
	if p.SwingSet != player.SwingSetReady {
		return false
	}
	p.SwingSet = player.SwingSetNot
	g.swingMasked[opp] = true
	return true
}

// UnmaskOpponentSwing restores a swing status masked by
// MaskOpponentSwing.
func (g *Game) UnmaskOpponentSwing(playerIdx int) {
	opp := Opponent(playerIdx)
	if !g.swingMasked[opp] {
		return
	}
	g.Players[opp].SwingSet = player.SwingSetReady
	g.swingMasked[opp] = false
}
