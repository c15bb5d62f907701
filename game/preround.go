package game

import (
	"github.com/pappde/bmai-sub000/die"
	"github.com/pappde/bmai-sub000/move"
	"github.com/pappde/bmai-sub000/player"
)

// PreroundMover returns which player is currently expected to choose
// swing/option values (spec.md §4.3).
func (g *Game) PreroundMover() int { return g.preroundMover }

// swingSlot is one swing-letter or option-die decision a player must
// make this preround, grounded on original_source
// BMC_Game::GenerateValidSetSwing's SWING_ACTION array.
type swingSlot struct {
	isSwing bool
	letter  die.SwingType // when isSwing
	dieIdx  int           // when !isSwing, roster index of the option die
	min     int
	max     int
}

func swingSlotsFor(p *player.Player) []swingSlot {
	var slots []swingSlot
	for t := die.SwingP; t.Valid(); t++ {
		if p.SwingCount[t] == 0 {
			continue
		}
		min, max := t.Range()
		slots = append(slots, swingSlot{isSwing: true, letter: t, min: min, max: max})
	}
	for d := 0; d < p.NumDice; d++ {
		dd := &p.Dice[d]
		if dd.State == die.StateNotUsed {
			continue
		}
		if dd.IsOption() {
			slots = append(slots, swingSlot{isSwing: false, dieIdx: d, min: 0, max: 1})
		}
	}
	return slots
}

// legalSwingMoves enumerates the full cartesian product of swing
// values and option choices for the current preround mover (spec.md
// §4.3, §4.5 "Swing/option enumeration for the search" — the search
// layer, not this package, applies the budget-driven sampling cutoff).
func (g *Game) legalSwingMoves() []move.Move {
	p := g.Players[g.preroundMover]
	if !p.NeedsSetSwing() {
		return []move.Move{{Kind: move.SetSwing}}
	}

	slots := swingSlotsFor(p)
	if len(slots) == 0 {
		return []move.Move{{Kind: move.SetSwing}}
	}

	values := make([]int, len(slots))
	for i, s := range slots {
		values[i] = s.min
	}

	var moves []move.Move
	for {
		m := move.Move{Kind: move.SetSwing}
		for i, s := range slots {
			if s.isSwing {
				m.SetSwing.Swings = append(m.SetSwing.Swings, move.SwingChoice{Letter: s.letter.Letter(), Value: values[i]})
			} else {
				m.SetSwing.Options = append(m.SetSwing.Options, move.OptionChoice{DieIndex: p.Dice[s.dieIdx].OriginalIndex, Side: values[i]})
			}
		}
		if g.validSetSwing(p, m) {
			moves = append(moves, m)
		}

		// mixed-radix increment across all slots
		i := 0
		for ; i < len(slots); i++ {
			values[i]++
			if values[i] <= slots[i].max {
				break
			}
			values[i] = slots[i].min
		}
		if i == len(slots) {
			break
		}
	}

	if len(moves) == 0 {
		return []move.Move{{Kind: move.SetSwing}}
	}
	return moves
}

// validSetSwing enforces the UNIQUE-die cross-swing-type restriction
// (spec.md §4.3/original_source ValidSetSwing: a unique die's swing
// value may not coincide with an earlier swing letter's value).
func (g *Game) validSetSwing(p *player.Player, m move.Move) bool {
	valueFor := func(letter byte) (int, bool) {
		for _, sc := range m.SetSwing.Swings {
			if sc.Letter == letter {
				return sc.Value, true
			}
		}
		return 0, false
	}
	for d := 0; d < p.NumDice; d++ {
		dd := &p.Dice[d]
		if dd.State == die.StateNotUsed || !dd.Properties.Has(die.Unique) {
			continue
		}
		t := dd.SwingType[0]
		if !t.Valid() {
			continue
		}
		v, ok := valueFor(t.Letter())
		if !ok || v <= 0 {
			continue
		}
		for s := die.SwingP; s < t; s++ {
			if p.SwingCount[s] == 0 {
				continue
			}
			sv, ok := valueFor(s.Letter())
			if ok && sv > 0 && sv == v {
				return false
			}
		}
	}
	return true
}

// ApplySetSwing applies the mover's swing/option choices, advances to
// the other preround mover if they still need to set, or finishes the
// preround once both sides are ready (spec.md §4.3).
func (g *Game) ApplySetSwing(m move.Move) {
	p := g.Players[g.preroundMover]
	for _, sc := range m.SetSwing.Swings {
		t, ok := die.SwingTypeForLetter(sc.Letter)
		if ok {
			p.SetSwing(t, sc.Value, false)
		}
	}
	for _, oc := range m.SetSwing.Options {
		for d := 0; d < p.NumDice; d++ {
			if p.Dice[d].OriginalIndex == oc.DieIndex {
				p.SetOptionDie(d, oc.Side)
			}
		}
	}
	p.SwingSet = player.SwingSetReady

	other := Opponent(g.preroundMover)
	if g.Players[other].NeedsSetSwing() {
		g.preroundMover = other
		return
	}
	if p.NeedsSetSwing() {
		// shouldn't happen given legalSwingMoves covers every slot, but
		// stay on this mover rather than silently proceeding.
		return
	}
	for i := range g.Players {
		if g.Players[i].SwingSet == player.SwingSetReady {
			g.Players[i].SwingSet = player.SwingSetLocked
		}
	}
	g.FinishPreround()
}
