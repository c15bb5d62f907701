package die

import "math/rand"

// maxSubDice is the number of sub-dice a die can carry (plain dice use
// only index 0; twin and option dice use both).
const maxSubDice = 2

// valueOwnDiceDivisor is the halving factor spec.md §4.1's scoring rule
// applies between a die's "own roster" and "captured" magnitudes.
const valueOwnDiceDivisor = 2

// Die is a single die (or twin/option pair of sub-dice) belonging to a
// player's roster. Derived fields (attacks/vulnerabilities) are recomputed
// whenever properties, state, or value change — never stored stale.
type Die struct {
	Properties Property
	Sides      [maxSubDice]int      // current side count per sub-die
	SwingType  [maxSubDice]SwingType

	State         State
	Value         int // sum across sub-dice when Ready
	OriginalIndex int // stable position in owner's roster, for protocol output

	// OptionChosen tracks which side (0 or 1) an option die last chose,
	// and OptionSet whether a choice has been made at all — an option
	// die carries both side counts from parse time, so a zero side
	// can't stand in for "not chosen yet" the way it does for swing.
	OptionChosen int
	OptionSet    bool

	attacks         AttackSet
	vulnerabilities AttackSet
}

// Dice returns 1, or 2 for a twin die (spec.md §3: "Dice()").
func (d *Die) Dice() int {
	if d.Properties.Has(Twin) {
		return 2
	}
	return 1
}

// SidesMax is the sum of all sub-die side counts (0 until swing/option
// values are set).
func (d *Die) SidesMax() int {
	total := 0
	for i := 0; i < d.Dice(); i++ {
		total += d.Sides[i]
	}
	return total
}

// NeedsSwing reports whether any sub-die awaits a swing value.
func (d *Die) NeedsSwing() bool {
	for i := 0; i < d.Dice(); i++ {
		if d.SwingType[i] != SwingNone && d.Sides[i] == 0 {
			return true
		}
	}
	return false
}

// IsOption reports whether this die requires a side choice (0 or 1)
// rather than a swing value.
func (d *Die) IsOption() bool { return d.Properties.Has(Option) }

// SetSwing assigns value to every sub-die of the given swing type,
// matching original_source BMC_Die::OnSwingSet. Forbidding a locked
// re-set is the Player's responsibility (spec.md §4.2), not the die's.
func (d *Die) SetSwing(t SwingType, value int) {
	if d.State == StateNotUsed || d.State == StateReserve {
		return
	}
	for i := 0; i < d.Dice(); i++ {
		if d.SwingType[i] == t {
			d.Sides[i] = value
		}
	}
}

// SetOption swaps sub-die 0 into the chosen side, per spec.md's Option
// die semantics (original_source BMC_Die::SetOption): side 1 is only
// ever compared against, never itself rolled.
func (d *Die) SetOption(side int) {
	if side != 0 && d.OptionChosen == 0 {
		d.Sides[0], d.Sides[1] = d.Sides[1], d.Sides[0]
	} else if side == 0 && d.OptionChosen == 1 {
		d.Sides[0], d.Sides[1] = d.Sides[1], d.Sides[0]
	}
	d.OptionChosen = side
	d.OptionSet = true
}

// CanDoAttack reports whether this die may perform the given attack kind.
func (d *Die) CanDoAttack(a Attack) bool { return d.attacks.Has(a) }

// CanBeAttacked reports whether this die is vulnerable to the given
// attack kind.
func (d *Die) CanBeAttacked(a Attack) bool { return d.vulnerabilities.Has(a) }

// RecomputeAttacks rebuilds the derived attack/vulnerability sets from
// (properties, state, value), applying spec.md §4.1's ordered rule list.
// Later rules override earlier ones, exactly as the original's
// RecomputeAttacks does.
func (d *Die) RecomputeAttacks() {
	d.vulnerabilities.SetAll()
	d.attacks.ClearAll()
	d.attacks.Set(Power)
	d.attacks.Set(Skill)

	if d.Properties.Has(Unskilled) {
		d.attacks.Clear(Skill)
	}
	if d.Properties.Has(Speed) {
		d.attacks.Set(AttackSpeed)
	}
	if d.Properties.Has(Trip) {
		d.attacks.Set(AttackTrip)
	}
	if d.Properties.Has(Shadow) {
		d.attacks.Set(AttackShadow)
		d.attacks.Clear(Power)
	}
	if d.Properties.Has(Konstant) {
		d.attacks.Clear(Power)
	}
	if d.Properties.Has(Insult) {
		d.vulnerabilities.Clear(Skill)
	}
	if d.Properties.Has(Berserk) {
		d.attacks.Set(AttackBerserk)
		d.attacks.Clear(Skill)
	}
	if d.Properties.Has(Stealth) {
		d.attacks.Clear(Power)
		d.vulnerabilities.ClearAll()
		d.vulnerabilities.Set(Skill)
	}
	if d.Properties.Has(Warrior) {
		d.vulnerabilities.ClearAll()
		d.attacks.ClearAll()
		d.attacks.Set(Skill)
	}
	if d.Properties.Has(Queer) && d.Value%2 == 1 {
		d.attacks.Set(AttackShadow)
		d.attacks.Clear(Power)
	}
	if d.State == StateDizzy {
		d.attacks.ClearAll()
	}
}

// Roll sums one uniform draw per sub-die, unless warrior or maximum
// force the maximum roll (spec.md §4.1 "Roll"). Transitions to Ready
// and recomputes derived attacks.
func (d *Die) Roll(rng *rand.Rand) {
	if d.State == StateNotUsed || d.State == StateReserve || d.State == StateCaptured {
		return
	}
	d.Value = 0
	for i := 0; i < d.Dice(); i++ {
		if d.Sides[i] <= 0 {
			continue
		}
		if d.Properties.HasAny(Warrior | Maximum) {
			d.Value += d.Sides[i]
		} else {
			d.Value += rng.Intn(d.Sides[i]) + 1
		}
	}
	d.State = StateReady
	d.RecomputeAttacks()
}

// RollMood re-picks each mood sub-die's side count from its fixed table
// before the re-roll that follows an attack (spec.md §4.1 "Mood").
func (d *Die) RollMood(rng *rand.Rand) {
	if !d.Properties.Has(Mood) {
		return
	}
	for i := 0; i < d.Dice(); i++ {
		t := d.SwingType[i]
		switch t {
		case SwingX:
			d.Sides[i] = moodSidesX[rng.Intn(len(moodSidesX))]
		case SwingV:
			d.Sides[i] = moodSidesV[rng.Intn(len(moodSidesV))]
		default:
			if t.Valid() {
				min, max := t.Range()
				d.Sides[i] = min + rng.Intn(max-min+1)
			}
		}
	}
}

// ApplyMighty raises sides to the next step in the mighty table
// (spec.md §4.1 "pre-roll mutations").
func (d *Die) ApplyMighty() {
	if !d.Properties.Has(Mighty) {
		return
	}
	for i := 0; i < d.Dice(); i++ {
		if d.Sides[i] > 0 {
			d.Sides[i] = mightyStep(d.Sides[i])
		}
	}
}

// ApplyWeak lowers sides per the symmetric weak table.
func (d *Die) ApplyWeak() {
	if !d.Properties.Has(Weak) {
		return
	}
	for i := 0; i < d.Dice(); i++ {
		if d.Sides[i] > 0 {
			d.Sides[i] = weakStep(d.Sides[i])
		}
	}
}

// ApplyBerserkHalving halves sides (rounding up), clearing the berserk
// property — applied once, the first time a berserk die makes a true
// attack (spec.md §4.1).
func (d *Die) ApplyBerserkHalving() {
	if !d.Properties.Has(Berserk) {
		return
	}
	for i := 0; i < d.Dice(); i++ {
		if d.Sides[i] > 0 {
			d.Sides[i] = (d.Sides[i] + 1) / 2
		}
	}
	d.Properties &^= Berserk
}

// MorphFrom copies side counts from the target die: all sub-sides if
// the target is twin, else just the first (spec.md §4.1 "morphing").
func (d *Die) MorphFrom(target *Die) {
	if !d.Properties.Has(Morphing) {
		return
	}
	if target.Properties.Has(Twin) {
		d.Properties |= Twin
	}
	n := target.Dice()
	for i := 0; i < maxSubDice; i++ {
		if i < n {
			d.Sides[i] = target.Sides[i]
		} else {
			d.Sides[i] = 0
		}
	}
}

// ClearWarriorAfterAttack removes the warrior property after its first
// attack (spec.md §4.1).
func (d *Die) ClearWarriorAfterAttack() {
	d.Properties &^= Warrior
}

// MarkNotSet transitions the die to NotSet ahead of a re-roll, unless it
// is konstant (which skips the re-roll and keeps its current value,
// spec.md §4.1/§4.3).
func (d *Die) MarkNotSet() {
	if d.Properties.Has(Konstant) {
		return
	}
	if d.State == StateReady || d.State == StateDizzy {
		d.State = StateNotSet
	}
}

// RecoverFromDizzy returns a dizzy die to ready at the end of its
// owner's turn (spec.md §4.3 "Dizzy recovery").
func (d *Die) RecoverFromDizzy() {
	if d.State == StateDizzy {
		d.State = StateReady
		d.RecomputeAttacks()
	}
}

// SetFocus sets a reduced value on a focus die and marks it dizzy
// (spec.md §4.3 "Focus sub-phase"). Caller validates v < current value.
func (d *Die) SetFocus(v int) {
	d.Value = v
	d.State = StateDizzy
	d.RecomputeAttacks()
}

// Capture transitions a die into the capturing player's pile. nullTaint
// and valueTaint reflect whether any attacking die (any attacker, for
// an N-to-1 skill attack) carried Null/Value respectively — the
// captured die inherits exactly those properties, not an unconditional
// pair (spec.md §4.3 "Apply attack" step 3, "On success ... Captured
// dice inherit null and value taint from attacker").
func (d *Die) Capture(nullTaint, valueTaint bool) {
	d.State = StateCaptured
	if nullTaint {
		d.Properties |= Null
	}
	if valueTaint {
		d.Properties |= Value
	}
}

// Score implements spec.md §4.1's scoring rule. Non-poison dice count at
// full magnitude when captured and half when still in the owner's
// roster; poison dice invert that (own carries the full penalty,
// captured only half), matching spec.md's branch order exactly (ported
// from BMC_Die.cpp::GetScore: null/warrior, then value+poison, then
// poison, then value, then the side-count default).
func (d *Die) Score(own bool) float64 {
	if d.Properties.HasAny(Null | Warrior) {
		return 0
	}

	switch {
	case d.Properties.Has(Poison) && d.Properties.Has(Value):
		if own {
			return -float64(d.Value)
		}
		return -float64(d.Value) / valueOwnDiceDivisor
	case d.Properties.Has(Poison):
		sidesMax := float64(d.SidesMax())
		if own {
			return -sidesMax
		}
		return -sidesMax / valueOwnDiceDivisor
	case d.Properties.Has(Value):
		v := float64(d.Value)
		if own {
			return v / valueOwnDiceDivisor
		}
		return v
	default:
		sidesMax := float64(d.SidesMax())
		if own {
			return sidesMax / valueOwnDiceDivisor
		}
		return sidesMax
	}
}
