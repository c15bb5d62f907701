package game

import (
	"github.com/pappde/bmai-sub000/die"
	"github.com/pappde/bmai-sub000/move"
	"github.com/pappde/bmai-sub000/player"
)

// LegalMoves enumerates every legal move for the phasing player in the
// current phase (spec.md §4.3 "Legal-move generation" and the
// preround/chance/focus/reserve equivalents). Grounded on
// engine/movegen.go's walk-phases-then-walk-dice shape.
func (g *Game) LegalMoves() []move.Move {
	switch g.Phase {
	case PhasePreround:
		return g.legalSwingMoves()
	case PhaseInitiativeChance:
		return g.legalChanceMoves()
	case PhaseInitiativeFocus:
		return g.legalFocusMoves()
	case PhaseReserve:
		return g.legalReserveMoves()
	case PhaseFight:
		return g.legalAttackMoves()
	default:
		return nil
	}
}

// legalAttackMoves walks the attacker's available dice and, for each
// attack kind that die can perform, enumerates candidate target sets
// (spec.md §4.3 "Legal-move generation"). If no attack is legal, the
// only legal move is pass.
func (g *Game) legalAttackMoves() []move.Move {
	attacker := g.Players[g.PhasePlayer]
	target := g.Players[g.TargetPlayer]

	var moves []move.Move
	for ai := 0; ai < attacker.AvailableDice; ai++ {
		ad := &attacker.Dice[ai]
		if ad.CanDoAttack(die.Power) {
			moves = append(moves, g.generate1to1(ai, move.AttackPower, attacker, target)...)
		}
		if ad.CanDoAttack(die.AttackShadow) {
			moves = append(moves, g.generate1to1(ai, move.AttackShadow, attacker, target)...)
		}
		if ad.CanDoAttack(die.AttackTrip) {
			moves = append(moves, g.generateTrip(ai, attacker, target)...)
		}
		if ad.CanDoAttack(die.Skill) {
			moves = append(moves, g.generateSkill(ai, attacker, target)...)
		}
		if ad.CanDoAttack(die.AttackBerserk) {
			moves = append(moves, g.generate1toN(ai, move.AttackBerserk, attacker, target)...)
		}
		if ad.CanDoAttack(die.AttackSpeed) {
			moves = append(moves, g.generate1toN(ai, move.AttackSpeed, attacker, target)...)
		}
	}

	moves = g.expandTurbo(moves, attacker)

	if len(moves) == 0 {
		return []move.Move{move.NewPass()}
	}
	return moves
}

// generate1to1 enumerates power/shadow attacks: one attacker die versus
// one target die, targets walked ascending with a per-kind prune.
func (g *Game) generate1to1(attackerIdx int, kind move.AttackKind, attacker, target *player.Player) []move.Move {
	ad := &attacker.Dice[attackerIdx]
	var moves []move.Move
	for ti := target.AvailableDice - 1; ti >= 0; ti-- {
		td := &target.Dice[ti]
		if !td.CanBeAttacked(attackKindToDie(kind)) {
			continue
		}
		switch kind {
		case move.AttackPower:
			if td.Value > ad.Value {
				continue
			}
		case move.AttackShadow:
			if td.Value > ad.SidesMax() {
				continue
			}
		}
		moves = append(moves, move.Move{
			Kind: move.Attack,
			Attack: move.AttackPayload{
				AttackKind:     kind,
				AttackerPlayer: g.PhasePlayer,
				TargetPlayer:   g.TargetPlayer,
				Attackers:      []int{ad.OriginalIndex},
				Targets:        []int{td.OriginalIndex},
			},
		})
	}
	return moves
}

// generateTrip enumerates trip attacks: attacker's sub-die count must
// be >= target's (a one-sided die can't trip-attack a twin), no value
// comparison at generation time (spec.md §4.3, §8 boundary behavior).
func (g *Game) generateTrip(attackerIdx int, attacker, target *player.Player) []move.Move {
	ad := &attacker.Dice[attackerIdx]
	var moves []move.Move
	for ti := 0; ti < target.AvailableDice; ti++ {
		td := &target.Dice[ti]
		if !td.CanBeAttacked(die.AttackTrip) {
			continue
		}
		if ad.Dice() < td.Dice() {
			continue
		}
		moves = append(moves, move.Move{
			Kind: move.Attack,
			Attack: move.AttackPayload{
				AttackKind:     move.AttackTrip,
				AttackerPlayer: g.PhasePlayer,
				TargetPlayer:   g.TargetPlayer,
				Attackers:      []int{ad.OriginalIndex},
				Targets:        []int{td.OriginalIndex},
			},
		})
	}
	return moves
}

// generateSkill enumerates N-to-1 skill attacks: combinatorial subsets
// of attacker dice (>= 2, at most one warrior) matching a target's
// value exactly, or within [low,high] if any attacker has stinger
// (spec.md §4.3).
func (g *Game) generateSkill(attackerIdx int, attacker, target *player.Player) []move.Move {
	var moves []move.Move
	enumerateSubsetsFixed(attacker, attackerIdx, 2, func(indices []int, sum int) {
		warriors := 0
		hasStinger := false
		for _, idx := range indices {
			d := &attacker.Dice[idx]
			if d.Properties.Has(die.Warrior) {
				warriors++
			}
			if d.Properties.Has(die.Stinger) {
				hasStinger = true
			}
		}
		if warriors > 1 {
			return
		}
		low, high := sum, sum
		if hasStinger {
			low = 0
			for _, idx := range indices {
				d := &attacker.Dice[idx]
				if d.Properties.Has(die.Stinger) {
					low++
				} else {
					low += d.Value
				}
			}
		}
		for ti := 0; ti < target.AvailableDice; ti++ {
			td := &target.Dice[ti]
			if !td.CanBeAttacked(die.Skill) {
				continue
			}
			if td.Value < low || td.Value > high {
				continue
			}
			origAttackers := make([]int, len(indices))
			for i, idx := range indices {
				origAttackers[i] = attacker.Dice[idx].OriginalIndex
			}
			moves = append(moves, move.Move{
				Kind: move.Attack,
				Attack: move.AttackPayload{
					AttackKind:     move.AttackSkill,
					AttackerPlayer: g.PhasePlayer,
					TargetPlayer:   g.TargetPlayer,
					Attackers:      origAttackers,
					Targets:        []int{td.OriginalIndex},
				},
			})
		}
	})
	return moves
}

// generate1toN enumerates berserk/speed attacks: combinatorial subsets
// of target dice summing exactly to the attacker's value (spec.md
// §4.3).
func (g *Game) generate1toN(attackerIdx int, kind move.AttackKind, attacker, target *player.Player) []move.Move {
	ad := &attacker.Dice[attackerIdx]
	dieKind := attackKindToDie(kind)
	var moves []move.Move
	enumerateSubsets(target, 1, func(indices []int, sum int) {
		if sum != ad.Value {
			return
		}
		for _, idx := range indices {
			if !target.Dice[idx].CanBeAttacked(dieKind) {
				return
			}
		}
		origTargets := make([]int, len(indices))
		for i, idx := range indices {
			origTargets[i] = target.Dice[idx].OriginalIndex
		}
		moves = append(moves, move.Move{
			Kind: move.Attack,
			Attack: move.AttackPayload{
				AttackKind:     kind,
				AttackerPlayer: g.PhasePlayer,
				TargetPlayer:   g.TargetPlayer,
				Attackers:      []int{ad.OriginalIndex},
				Targets:        origTargets,
			},
		})
	})
	return moves
}

func attackKindToDie(k move.AttackKind) die.Attack {
	switch k {
	case move.AttackPower:
		return die.Power
	case move.AttackSkill:
		return die.Skill
	case move.AttackBerserk:
		return die.AttackBerserk
	case move.AttackSpeed:
		return die.AttackSpeed
	case move.AttackTrip:
		return die.AttackTrip
	case move.AttackShadow:
		return die.AttackShadow
	}
	return die.Power
}

// expandTurbo adds sibling moves for every move that uses a turbo die,
// one per alternate side choice, spaced by 1/turboAccuracy and always
// including the min/max endpoints (spec.md §4.3 "Turbo"). With
// turboAccuracy <= 0, only the two endpoints plus the unchanged
// baseline are produced (spec.md §8 boundary behavior).
func (g *Game) expandTurbo(moves []move.Move, attacker *player.Player) []move.Move {
	out := make([]move.Move, 0, len(moves))
	for _, m := range moves {
		out = append(out, m)
		for _, attackerOrigIdx := range m.Attack.Attackers {
			d := findByOriginalIndex(attacker, attackerOrigIdx)
			if d == nil || !d.Properties.Has(die.Turbo) {
				continue
			}
			for _, variant := range turboVariants(d, g.TurboAccuracy) {
				nm := m.Clone()
				nm.Attack.Turbo = append(nm.Attack.Turbo, move.TurboOverride{
					DieIndex:  attackerOrigIdx,
					SideValue: variant,
					IsOption:  d.Properties.Has(die.Option),
				})
				out = append(out, nm)
			}
		}
	}
	return out
}

func findByOriginalIndex(p *player.Player, orig int) *die.Die {
	for i := range p.Dice[:p.NumDice] {
		if p.Dice[i].OriginalIndex == orig {
			return &p.Dice[i]
		}
	}
	return nil
}

// turboVariants returns the alternate side-count choices a turbo die
// may pick, per spec.md §4.3/§8: option dice choose between their two
// fixed sides; swing dice space choices by 1/turboAccuracy across
// their range, always including both endpoints.
func turboVariants(d *die.Die, turboAccuracy float64) []int {
	if d.Properties.Has(die.Option) {
		return []int{0, 1}
	}
	t := d.SwingType[0]
	if !t.Valid() {
		return nil
	}
	min, max := t.Range()
	if turboAccuracy <= 0 {
		if min == max {
			return []int{min}
		}
		return []int{min, max}
	}
	step := int(1.0 / turboAccuracy)
	if step < 1 {
		step = 1
	}
	variants := make([]int, 0, (max-min)/step+2)
	seen := map[int]bool{}
	add := func(v int) {
		if !seen[v] {
			seen[v] = true
			variants = append(variants, v)
		}
	}
	add(min)
	for v := min; v <= max; v += step {
		add(v)
	}
	add(max)
	return variants
}
