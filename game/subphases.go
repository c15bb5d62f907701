package game

import (
	"github.com/pappde/bmai-sub000/die"
	"github.com/pappde/bmai-sub000/move"
)

// legalChanceMoves enumerates every nonempty subset of the chance
// mover's chance dice to reroll, plus pass (spec.md §4.3 "Chance
// sub-phase").
func (g *Game) legalChanceMoves() []move.Move {
	p := g.Players[g.chanceMover]
	var chanceIdx []int
	for i := 0; i < p.AvailableDice; i++ {
		if p.Dice[i].Properties.Has(die.Chance) {
			chanceIdx = append(chanceIdx, i)
		}
	}
	moves := []move.Move{move.NewPass()}
	if len(chanceIdx) == 0 {
		return moves
	}
	n := len(chanceIdx)
	for mask := 1; mask < (1 << n); mask++ {
		var sel []int
		for i := 0; i < n; i++ {
			if mask&(1<<i) != 0 {
				sel = append(sel, p.Dice[chanceIdx[i]].OriginalIndex)
			}
		}
		moves = append(moves, move.Move{Kind: move.UseChance, UseChance: move.UseChancePayload{DieIndices: sel}})
	}
	return moves
}

// legalFocusMoves enumerates every legal focus move: for each nonempty
// subset of focus dice and each combination of reduced values, a move
// is legal iff it flips initiative (spec.md §4.3 "Focus sub-phase").
// The reduced-value space can be large; for each subset this tries
// two candidates (every selected die reduced to 1, and every selected
// die reduced by one) and keeps those that ValidUseFocus (the
// authoritative check) accepts. Other combinations of reduced values
// are not generated.
func (g *Game) legalFocusMoves() []move.Move {
	p := g.Players[g.focusMover]
	var focusIdx []int
	for i := 0; i < p.AvailableDice; i++ {
		if p.Dice[i].Properties.Has(die.Focus) && p.Dice[i].Value > 1 {
			focusIdx = append(focusIdx, i)
		}
	}
	moves := []move.Move{move.NewPass()}
	if len(focusIdx) == 0 {
		return moves
	}

	n := len(focusIdx)
	for mask := 1; mask < (1 << n); mask++ {
		var idxs []int
		for i := 0; i < n; i++ {
			if mask&(1<<i) != 0 {
				idxs = append(idxs, focusIdx[i])
			}
		}
		// Two candidates per subset: every selected die down to 1, and
		// every selected die down by one (floored at 1).
		for _, reduceToMin := range []bool{true, false} {
			m := move.Move{Kind: move.UseFocus}
			for _, idx := range idxs {
				d := &p.Dice[idx]
				val := 1
				if !reduceToMin {
					val = d.Value - 1
					if val < 1 {
						val = 1
					}
				}
				m.UseFocus.Choices = append(m.UseFocus.Choices, move.FocusChoice{DieIndex: idx, Value: val})
			}
			if g.ValidUseFocus(m) {
				moves = append(moves, m)
			}
		}
	}
	return moves
}

// legalReserveMoves enumerates promoting one reserve die, or passing
// (spec.md §4.3 "Round end" -> reserve; §4.2 "use_reserve").
func (g *Game) legalReserveMoves() []move.Move {
	p := g.Players[g.reserveMover]
	moves := []move.Move{{Kind: move.UseReserve, UseReserve: move.UseReservePayload{Pass: true}}}
	for d := 0; d < p.NumDice; d++ {
		if p.Dice[d].State == die.StateReserve {
			moves = append(moves, move.Move{Kind: move.UseReserve, UseReserve: move.UseReservePayload{DieIndex: p.Dice[d].OriginalIndex}})
		}
	}
	return moves
}

// ApplyUseReserve promotes the chosen reserve die (or does nothing on
// pass), then returns to preround (spec.md §4.3).
func (g *Game) ApplyUseReserve(m move.Move) {
	p := g.Players[g.reserveMover]
	if !m.UseReserve.Pass {
		for d := 0; d < p.NumDice; d++ {
			if p.Dice[d].OriginalIndex == m.UseReserve.DieIndex && p.Dice[d].State == die.StateReserve {
				p.Dice[d].State = die.StateNotSet
				break
			}
		}
	}
	p.OptimizeDice()
	g.beginPreround()
}

func (g *Game) beginPreround() {
	g.Phase = PhasePreround
	g.preroundMover = 0
}
