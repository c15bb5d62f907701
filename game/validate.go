package game

import (
	"fmt"

	"github.com/pappde/bmai-sub000/die"
	"github.com/pappde/bmai-sub000/move"
	"github.com/pappde/bmai-sub000/player"
)

// ValidateDie enforces the property-exclusivity invariants of spec.md
// §3: only one of twin/option may apply, and morphing excludes twin,
// turbo, speed, and berserk (the last two per §9's inherited
// prohibition).
func ValidateDie(d *die.Die) error {
	if d.Properties.Has(die.Twin) && d.Properties.Has(die.Option) {
		return fmt.Errorf("die cannot be both twin and option")
	}
	if d.Properties.Has(die.Morphing) {
		for _, p := range []die.Property{die.Twin, die.Turbo, die.Speed, die.Berserk} {
			if d.Properties.Has(p) {
				return fmt.Errorf("morphing die cannot carry conflicting property")
			}
		}
	}
	return nil
}

// ValidAttack is the authoritative predicate for an attack move
// (spec.md §8 "every generated move passes the Game::valid_* predicate
// for its kind"). Move generation only emits moves that pass it; an AI
// handing back anything else is rejected by the caller (spec.md §7
// "Illegal move attempted by an AI").
func (g *Game) ValidAttack(m move.Move) bool {
	if m.Kind != move.Attack {
		return false
	}
	attacker := g.Players[g.PhasePlayer]
	target := g.Players[g.TargetPlayer]

	attackers := availableByOriginalIndex(attacker, m.Attack.Attackers)
	targets := availableByOriginalIndex(target, m.Attack.Targets)
	if attackers == nil || targets == nil {
		return false
	}

	kind := attackKindToDie(m.Attack.AttackKind)
	for _, td := range targets {
		if !td.CanBeAttacked(kind) {
			return false
		}
	}

	switch m.Attack.AttackKind {
	case move.AttackPower:
		if len(attackers) != 1 || len(targets) != 1 {
			return false
		}
		return attackers[0].CanDoAttack(die.Power) && targets[0].Value <= attackers[0].Value

	case move.AttackShadow:
		if len(attackers) != 1 || len(targets) != 1 {
			return false
		}
		return attackers[0].CanDoAttack(die.AttackShadow) && targets[0].Value <= attackers[0].SidesMax()

	case move.AttackTrip:
		if len(attackers) != 1 || len(targets) != 1 {
			return false
		}
		return attackers[0].CanDoAttack(die.AttackTrip) && attackers[0].Dice() >= targets[0].Dice()

	case move.AttackSkill:
		if len(attackers) < 2 || len(targets) != 1 {
			return false
		}
		sum, low := 0, 0
		warriors := 0
		hasStinger := false
		for _, ad := range attackers {
			if !ad.CanDoAttack(die.Skill) {
				return false
			}
			if ad.Properties.Has(die.Warrior) {
				warriors++
			}
			if ad.Properties.Has(die.Stinger) {
				hasStinger = true
				low++
			} else {
				low += ad.Value
			}
			sum += ad.Value
		}
		if warriors > 1 {
			return false
		}
		if hasStinger {
			return targets[0].Value >= low && targets[0].Value <= sum
		}
		return targets[0].Value == sum

	case move.AttackBerserk, move.AttackSpeed:
		if len(attackers) != 1 || len(targets) == 0 {
			return false
		}
		if !attackers[0].CanDoAttack(kind) {
			return false
		}
		sum := 0
		for _, td := range targets {
			sum += td.Value
		}
		return sum == attackers[0].Value
	}
	return false
}

// availableByOriginalIndex resolves original indices to available dice,
// or nil if any index is missing, unavailable, or duplicated.
func availableByOriginalIndex(p *player.Player, origIndices []int) []*die.Die {
	if len(origIndices) == 0 {
		return nil
	}
	out := make([]*die.Die, 0, len(origIndices))
	seen := make(map[int]bool, len(origIndices))
	for _, orig := range origIndices {
		if seen[orig] {
			return nil
		}
		seen[orig] = true
		d := findByOriginalIndex(p, orig)
		if d == nil || !d.State.IsAvailable() {
			return nil
		}
		out = append(out, d)
	}
	return out
}
