package game

import (
	"github.com/pappde/bmai-sub000/die"
	"github.com/pappde/bmai-sub000/move"
)

// initiativeSkip is the property mask of dice that don't count toward
// initiative comparison (spec.md §4.3 "Initiative determination").
const initiativeSkip = die.Trip | die.Slow | die.Stinger

// CheckInitiative compares both players' available dice from the tail
// upward, skipping trip/slow/stinger dice, and returns the winning
// player index, or -1 on a tie (spec.md §4.3; original_source
// BMC_Game::CheckInitiative). Idempotent: calling it twice without
// state change returns the same value (spec.md §8).
func (g *Game) CheckInitiative() int {
	i := g.Players[0].AvailableDice - 1
	j := g.Players[1].AvailableDice - 1

	for {
		for i >= 0 && g.Players[0].Dice[i].Properties.HasAny(initiativeSkip) {
			i--
		}
		for j >= 0 && g.Players[1].Dice[j].Properties.HasAny(initiativeSkip) {
			j--
		}

		if i < 0 && j < 0 {
			return -1
		}
		if i < 0 {
			return 1
		}
		if j < 0 {
			return 0
		}

		delta := g.Players[0].Dice[i].Value - g.Players[1].Dice[j].Value
		if delta == 0 {
			i--
			j--
			continue
		}
		if delta > 0 {
			return 0
		}
		return 1
	}
}

// FinishPreround rolls both players' dice and determines initiative,
// transitioning preround -> initiative (spec.md §4.3). Ties go to
// player 0, per spec.md §9's recorded Open Question decision.
func (g *Game) FinishPreround() {
	Invariant(g.Phase == PhasePreround, "FinishPreround: phase must be preround")

	for i := range g.Players {
		g.Players[i].RollDice(g.RNG.Rand())
	}

	init := g.CheckInitiative()
	if init < 0 {
		init = 0
	}
	g.PhasePlayer = init
	g.TargetPlayer = Opponent(init)
	g.InitiativeWinner = init
	g.LastAction = move.NoAction
	g.Phase = PhaseInitiative

	g.advanceToChanceOrFight()
}

// advanceToChanceOrFight moves from PhaseInitiative into the
// chance/focus sub-phases (if the non-initiative player has eligible
// dice) or straight into fight.
func (g *Game) advanceToChanceOrFight() {
	nonInit := Opponent(g.PhasePlayer)
	if g.Players[nonInit].HasDieWithProperty(die.Chance, false) > 0 {
		g.chanceMover = nonInit
		g.Phase = PhaseInitiativeChance
		return
	}
	g.advanceToFocusOrFight()
}

func (g *Game) advanceToFocusOrFight() {
	nonInit := Opponent(g.PhasePlayer)
	if g.Players[nonInit].HasDieWithProperty(die.Focus, false) > 0 {
		g.focusMover = nonInit
		g.Phase = PhaseInitiativeFocus
		return
	}
	g.startFight()
}

func (g *Game) startFight() {
	g.Phase = PhaseFight
	g.LastAction = move.NoAction
}

// ValidUseChance reports whether every rerolled die (by original
// index) is actually an available chance die belonging to the mover
// (spec.md §4.3 "Chance sub-phase").
func (g *Game) ValidUseChance(m move.Move) bool {
	mover := g.chanceMover
	for _, orig := range m.UseChance.DieIndices {
		d := findByOriginalIndex(g.Players[mover], orig)
		if d == nil || !d.State.IsAvailable() || !d.Properties.Has(die.Chance) {
			return false
		}
	}
	return len(m.UseChance.DieIndices) > 0
}

// ApplyUseChance rerolls the chosen dice, recomputes initiative, and
// either swaps the chance-mover role (if the reroll flipped initiative
// their way) or ends the sub-phase (spec.md §4.3).
func (g *Game) ApplyUseChance(m move.Move) {
	mover := g.chanceMover
	p := g.Players[mover]
	for _, orig := range m.UseChance.DieIndices {
		if d := findByOriginalIndex(p, orig); d != nil {
			d.Roll(g.RNG.Rand())
		}
	}
	p.OptimizeDice()

	init := g.CheckInitiative()
	if init == mover && init != g.PhasePlayer {
		g.PhasePlayer = init
		g.TargetPlayer = Opponent(init)
		g.InitiativeWinner = init
		g.chanceMover = Opponent(mover)
		return
	}
	g.advanceToFocusOrFight()
}

// PassChance ends the chance sub-phase without rerolling.
func (g *Game) PassChance() { g.advanceToFocusOrFight() }

// ValidUseFocus reports whether the proposed reduced values are all on
// focus dice, all strictly less than the die's current value, and
// whether applying them would flip initiative to the mover (spec.md
// §4.3 "Focus sub-phase").
func (g *Game) ValidUseFocus(m move.Move) bool {
	if len(m.UseFocus.Choices) == 0 {
		return false
	}
	mover := g.focusMover
	p := g.Players[mover]
	for _, c := range m.UseFocus.Choices {
		if c.DieIndex < 0 || c.DieIndex >= p.AvailableDice {
			return false
		}
		d := &p.Dice[c.DieIndex]
		if !d.Properties.Has(die.Focus) {
			return false
		}
		if c.Value <= 0 || c.Value >= d.Value {
			return false
		}
	}

	clone := g.Clone()
	cp := clone.Players[mover]
	for _, c := range m.UseFocus.Choices {
		cp.Dice[c.DieIndex].SetFocus(c.Value)
	}
	cp.OptimizeDice()

	return clone.CheckInitiative() == mover
}

// ApplyUseFocus applies the reduced values (setting those dice dizzy),
// then resolves the sub-phase exactly like chance (spec.md §4.3).
func (g *Game) ApplyUseFocus(m move.Move) {
	mover := g.focusMover
	p := g.Players[mover]
	for _, c := range m.UseFocus.Choices {
		p.Dice[c.DieIndex].SetFocus(c.Value)
	}
	p.OptimizeDice()

	init := g.CheckInitiative()
	if init == mover && init != g.PhasePlayer {
		g.PhasePlayer = init
		g.TargetPlayer = Opponent(init)
		g.InitiativeWinner = init
		g.focusMover = Opponent(mover)
		return
	}
	g.startFight()
}

// PassFocus ends the focus sub-phase without using a focus die.
func (g *Game) PassFocus() { g.startFight() }

// ChanceMover/FocusMover expose whose turn it is in the respective
// sub-phase, needed by movegen and the protocol driver.
func (g *Game) ChanceMover() int { return g.chanceMover }
func (g *Game) FocusMover() int  { return g.focusMover }
