package game

import (
	"github.com/pappde/bmai-sub000/die"
	"github.com/pappde/bmai-sub000/move"
	"github.com/pappde/bmai-sub000/player"
)

// ApplyAttack runs the three-stage attack resolution of spec.md §4.3
// "Apply attack" (player / nature-roll / nature-post), grounded on
// original_source BMC_Game::ApplyAttackPlayer/NatureRoll/NaturePost.
// Returns whether the attacker earns an extra turn (time-and-space).
func (g *Game) ApplyAttack(m move.Move) (extraTurn bool) {
	attacker := g.Players[g.PhasePlayer]
	target := g.Players[g.TargetPlayer]

	attackerDice := diceByOriginalIndex(attacker, m.Attack.Attackers)
	targetDice := diceByOriginalIndex(target, m.Attack.Targets)

	g.applyAttackPlayerStage(m, attacker, attackerDice, target, targetDice)
	g.applyAttackNatureRollStage(m, attackerDice, targetDice)
	extraTurn = g.applyAttackNaturePostStage(m, attacker, attackerDice, target, targetDice)

	return extraTurn
}

func diceByOriginalIndex(p *player.Player, origIndices []int) []*die.Die {
	out := make([]*die.Die, 0, len(origIndices))
	for _, orig := range origIndices {
		if d := findByOriginalIndex(p, orig); d != nil {
			out = append(out, d)
		}
	}
	return out
}

// applyAttackPlayerStage runs every deterministic attacker-controlled
// effect: mark not-set, berserk halving, pre-roll mutations, morphing,
// turbo, warrior clearing, and the ornery-always-rerolls rule (spec.md
// §4.3 stage 1).
func (g *Game) applyAttackPlayerStage(m move.Move, attacker *player.Player, attackerDice []*die.Die, target *player.Player, targetDice []*die.Die) {
	isBerserkAttack := m.Kind == move.Attack && m.Attack.AttackKind == move.AttackBerserk

	for _, ad := range attackerDice {
		ad.MarkNotSet()
		if isBerserkAttack {
			ad.ApplyBerserkHalving()
		}
		ad.ApplyMighty()
		ad.ApplyWeak()
		if ad.Properties.Has(die.Morphing) && len(targetDice) > 0 {
			ad.MorphFrom(targetDice[0])
		}
		applyTurboOverride(ad, attacker, m.Attack.Turbo)
		if ad.Properties.Has(die.Warrior) {
			ad.ClearWarriorAfterAttack()
		}
	}

	if m.Attack.AttackKind == move.AttackTrip {
		for _, td := range targetDice {
			td.MarkNotSet()
		}
	}

	// ORNERY: every ornery die on the attacker reruns, whether or not
	// it actually attacked this turn (spec.md §4.3 stage 1, §9 Open
	// Question — ornery only marks not-set, it does not itself force
	// mighty/weak/mood/turbo sub-effects).
	for i := 0; i < attacker.AvailableDice; i++ {
		ad := &attacker.Dice[i]
		if ad.Properties.Has(die.Ornery) {
			ad.MarkNotSet()
		}
	}
}

func applyTurboOverride(d *die.Die, owner *player.Player, overrides []move.TurboOverride) {
	for _, t := range overrides {
		if t.DieIndex != d.OriginalIndex {
			continue
		}
		if t.IsOption {
			d.SetOption(t.SideValue)
		} else if d.SwingType[0].Valid() {
			// a turbo swing change re-sets the owner's swing value even
			// when locked (spec.md §4.2 set_swing's from_turbo escape).
			owner.SetSwing(d.SwingType[0], t.SideValue, true)
		}
	}
}

// applyAttackNatureRollStage re-rolls every not-set die, mood dice
// re-picking their side count first (spec.md §4.3 stage 2).
func (g *Game) applyAttackNatureRollStage(m move.Move, attackerDice, targetDice []*die.Die) {
	reroll := func(d *die.Die) {
		if d.State != die.StateNotSet {
			return
		}
		d.RollMood(g.RNG.Rand())
		d.Roll(g.RNG.Rand())
	}
	for _, ad := range attackerDice {
		reroll(ad)
	}
	if m.Attack.AttackKind == move.AttackTrip {
		for _, td := range targetDice {
			reroll(td)
		}
	}
	// ornery dice outside this attack's attacker set, marked not-set
	// above, are rerolled by the roster sweep in
	// applyAttackNaturePostStage.
}

// applyAttackNaturePostStage determines success and applies captures
// (spec.md §4.3 stage 3), then re-optimizes both rosters.
func (g *Game) applyAttackNaturePostStage(m move.Move, attacker *player.Player, attackerDice []*die.Die, target *player.Player, targetDice []*die.Die) (extraTurn bool) {
	nullAttacker, valueAttacker := false, false
	for _, ad := range attackerDice {
		if ad.Properties.Has(die.Null) {
			nullAttacker = true
		}
		if ad.Properties.Has(die.Value) {
			valueAttacker = true
		}
		if ad.Properties.Has(die.TimeAndSpace) && ad.Value%2 == 1 {
			extraTurn = true
		}
	}

	capture := true
	if m.Attack.AttackKind == move.AttackTrip && len(attackerDice) > 0 && len(targetDice) > 0 {
		if attackerDice[0].Value < targetDice[0].Value {
			capture = false
		}
	}

	if capture {
		for _, td := range targetDice {
			rosterIdx := rosterIndexOf(target, td.OriginalIndex)
			if rosterIdx < 0 {
				continue
			}
			target.Dice[rosterIdx].Capture(nullAttacker, valueAttacker)
			capturedCopy := target.Dice[rosterIdx]
			target.OnDieLost(rosterIdx)
			attacker.OnDieCaptured(&capturedCopy)
		}
	} else if m.Attack.AttackKind == move.AttackTrip {
		target.OptimizeDice()
	}

	// reroll-in-stage-2 for ornery dice outside the attack set
	for i := 0; i < attacker.AvailableDice; i++ {
		ad := &attacker.Dice[i]
		if ad.State == die.StateNotSet {
			ad.RollMood(g.RNG.Rand())
			ad.Roll(g.RNG.Rand())
		}
	}

	attacker.OptimizeDice()
	if !capture {
		target.OptimizeDice()
	}

	return extraTurn
}

func rosterIndexOf(p *player.Player, origIndex int) int {
	for i := 0; i < p.NumDice; i++ {
		if p.Dice[i].OriginalIndex == origIndex {
			return i
		}
	}
	return -1
}
