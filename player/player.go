// Package player implements the Player model of spec.md §3/§4.2: a
// roster of up to ten dice plus swing/score/aggregate bookkeeping.
// Grounded on engine/types.go's PlayerState (score + hand) and its
// packed-slice "Reset" idiom generalized per spec.md's "available dice
// packed at the front, sorted descending" invariant.
package player

import (
	"math/rand"
	"sort"

	"github.com/pappde/bmai-sub000/die"
)

// MaxDice is the largest roster a button man may carry (spec.md §3).
const MaxDice = 10

// SurrenderScore is the score sentinel spec.md §4.2/§8 defines:
// strictly less than any reachable non-surrendered score.
const SurrenderScore = -1000

// SwingSet is the preround tri-state for whether swing/option values
// have been chosen this round (spec.md §3, original_source SWING_SET).
type SwingSet uint8

const (
	SwingSetNot SwingSet = iota
	SwingSetReady
	SwingSetLocked
)

// Player owns an ordered array of dice plus score and swing state.
type Player struct {
	ID int

	Dice     []die.Die
	NumDice  int // count of roster slots in use (<= MaxDice)
	SwingSet SwingSet

	// SwingValue/SwingCount are indexed by die.SwingType.
	SwingValue [12]int
	SwingCount [12]int

	// Score is own-dice score plus accumulated captured-die score
	// (recomputeScore refreshes the own-dice half on every optimize;
	// OnDieCaptured adds to capturedScore, lowering it for a poison die,
	// SetButtonMan zeroes it and SetScore pins it from a parsed score).
	Score         float64
	capturedScore float64
	surrendered   bool

	AvailableDice int
	MaxValue      int
	MinValue      int
}

// New returns an empty player with the given ID.
func New(id int) *Player {
	return &Player{ID: id, Dice: make([]die.Die, 0, MaxDice)}
}

// Clone deep-copies the player, including its unexported captured-score
// accumulator and surrender flag (spec.md §9 "Game cloning": a Game
// clone deep-copies everything it owns, which includes its Players).
func (p *Player) Clone() *Player {
	np := *p
	np.Dice = make([]die.Die, len(p.Dice))
	copy(np.Dice, p.Dice)
	return &np
}

// SetButtonMan populates the roster from a slice of template dice
// (already property/side-parsed by the protocol package), assigns
// OriginalIndex, recomputes swing counts, and optimizes the view
// (spec.md §4.2 "set_button").
func (p *Player) SetButtonMan(dice []die.Die) {
	p.Dice = make([]die.Die, len(dice))
	copy(p.Dice, dice)
	p.NumDice = len(dice)
	for i := range p.Dice {
		p.Dice[i].OriginalIndex = i
		p.Dice[i].RecomputeAttacks()
	}
	p.capturedScore = 0
	p.surrendered = false
	p.recomputeSwingCounts()
	p.OptimizeDice()
}

func (p *Player) recomputeSwingCounts() {
	for i := range p.SwingCount {
		p.SwingCount[i] = 0
	}
	for d := 0; d < p.NumDice; d++ {
		for i := 0; i < p.Dice[d].Dice(); i++ {
			t := p.Dice[d].SwingType[i]
			if t != die.SwingNone {
				p.SwingCount[t]++
			}
		}
	}
}

// RollDice rolls every used die (spec.md §4.2 "roll_dice").
func (p *Player) RollDice(r *rand.Rand) {
	for d := 0; d < p.NumDice; d++ {
		dd := &p.Dice[d]
		if dd.State == die.StateNotUsed || dd.State == die.StateReserve || dd.State == die.StateCaptured {
			continue
		}
		dd.Roll(r)
	}
	p.OptimizeDice()
}

// SetSwing updates all dice of the given swing type to value, unless
// already locked (forbidden) and fromTurbo is false (spec.md §4.2
// "set_swing").
func (p *Player) SetSwing(t die.SwingType, value int, fromTurbo bool) bool {
	if p.SwingSet == SwingSetLocked && !fromTurbo {
		return false
	}
	p.SwingValue[t] = value
	for d := 0; d < p.NumDice; d++ {
		p.Dice[d].SetSwing(t, value)
	}
	return true
}

// SetOptionDie chooses side 0 or 1 for an option die at roster index i.
func (p *Player) SetOptionDie(i, side int) {
	if i < 0 || i >= p.NumDice {
		return
	}
	p.Dice[i].SetOption(side)
}

// NeedsSetSwing reports whether any of this player's own swing or
// option dice still await a value (spec.md §4.2 "needs_set_swing").
func (p *Player) NeedsSetSwing() bool {
	for d := 0; d < p.NumDice; d++ {
		dd := &p.Dice[d]
		if dd.State == die.StateNotUsed || dd.State == die.StateReserve {
			continue
		}
		if dd.NeedsSwing() {
			return true
		}
		if dd.IsOption() && !dd.OptionSet {
			return true
		}
	}
	return false
}

// HasDieWithProperty returns 1+index of the first die carrying prop
// (or, if all is true, requires every used die carry it), else 0
// (spec.md §4.2 "has_die_with_property").
func (p *Player) HasDieWithProperty(prop die.Property, all bool) int {
	found := 0
	for d := 0; d < p.NumDice; d++ {
		dd := &p.Dice[d]
		if dd.State == die.StateNotUsed {
			continue
		}
		has := dd.Properties.Has(prop)
		if all {
			if !has {
				return 0
			}
			if found == 0 {
				found = d + 1
			}
		} else if has {
			return d + 1
		}
	}
	return found
}

// OnDieLost compacts the roster so the lost die (roster index i) is
// appended after the still-in-play dice, then re-optimizes (spec.md
// §4.2 "on_die_lost").
func (p *Player) OnDieLost(i int) {
	if i < 0 || i >= p.NumDice {
		return
	}
	lost := p.Dice[i]
	p.Dice = append(p.Dice[:i], p.Dice[i+1:]...)
	p.Dice = append(p.Dice, lost)
	p.OptimizeDice()
}

// OnDieCaptured adds a captured die's score contribution to this
// player's running score (spec.md §4.2 "on_die_captured").
func (p *Player) OnDieCaptured(d *die.Die) {
	p.capturedScore += d.Score(false)
	p.recomputeScore()
}

// SetScore pins the player's score to a value parsed from a position.
// Mid-game positions list only in-play dice, so the parsed score's
// captured-dice contribution is recovered as the difference from the
// own-dice sum and folded into the accumulator; later captures stay
// incremental on top of it.
func (p *Player) SetScore(score float64) {
	own := 0.0
	for d := 0; d < p.NumDice; d++ {
		dd := &p.Dice[d]
		if dd.State == die.StateCaptured || dd.State == die.StateNotUsed || dd.State == die.StateReserve {
			continue
		}
		own += dd.Score(true)
	}
	p.capturedScore = score - own
	p.recomputeScore()
}

// OnRoundLost resets swing values and the swing-set tri-state (spec.md
// §4.2 "on_round_lost").
func (p *Player) OnRoundLost() {
	p.SwingSet = SwingSetNot
	for i := range p.SwingValue {
		p.SwingValue[i] = 0
	}
	for d := 0; d < p.NumDice; d++ {
		dd := &p.Dice[d]
		for i := 0; i < dd.Dice(); i++ {
			if dd.SwingType[i] != die.SwingNone {
				dd.Sides[i] = 0
			}
		}
	}
}

// OnSurrendered sets the score sentinel (spec.md §4.2 "on_surrendered").
func (p *Player) OnSurrendered() {
	p.surrendered = true
	p.Score = SurrenderScore
}

// Surrendered reports whether this player has surrendered.
func (p *Player) Surrendered() bool { return p.surrendered }

// OptimizeDice recomputes the "available dice" partition: ready/dizzy
// dice sorted by value descending go first, everything else trails,
// then MaxValue/MinValue/AvailableDice/Score are refreshed (spec.md
// §4.2 aggregates, the invariant spec.md §8 tests).
func (p *Player) OptimizeDice() {
	sort.SliceStable(p.Dice[:p.NumDice], func(a, b int) bool {
		da, db := &p.Dice[a], &p.Dice[b]
		aAvail, bAvail := da.State.IsAvailable(), db.State.IsAvailable()
		if aAvail != bAvail {
			return aAvail
		}
		if aAvail && bAvail {
			return da.Value > db.Value
		}
		return false
	})

	p.AvailableDice = 0
	p.MaxValue = 0
	p.MinValue = 0
	first := true
	for d := 0; d < p.NumDice; d++ {
		dd := &p.Dice[d]
		if !dd.State.IsAvailable() {
			continue
		}
		p.AvailableDice++
		if first {
			p.MaxValue = dd.Value
			p.MinValue = dd.Value
			first = false
		} else {
			if dd.Value > p.MaxValue {
				p.MaxValue = dd.Value
			}
			if dd.Value < p.MinValue {
				p.MinValue = dd.Value
			}
		}
	}

	p.recomputeScore()
}

// recomputeScore sums die.Score(own=true) across every non-captured,
// in-play die and adds the accumulated captured-die contribution
// (spec.md §8: "score equals the sum of die.score(own=true) over used
// own dice plus die.score(own=false) over captured dice").
func (p *Player) recomputeScore() {
	if p.surrendered {
		return
	}
	total := 0.0
	for d := 0; d < p.NumDice; d++ {
		dd := &p.Dice[d]
		if dd.State == die.StateCaptured || dd.State == die.StateNotUsed || dd.State == die.StateReserve {
			continue
		}
		total += dd.Score(true)
	}
	p.Score = total + p.capturedScore
}
