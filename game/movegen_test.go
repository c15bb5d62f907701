package game

import (
	"testing"

	"github.com/pappde/bmai-sub000/die"
	"github.com/pappde/bmai-sub000/move"
	"github.com/pappde/bmai-sub000/rng"
)

func TestTurboZeroAccuracyEndpointsOnly(t *testing.T) {
	turbo := die.Die{
		Properties: die.Turbo,
		SwingType:  [2]die.SwingType{die.SwingX, die.SwingNone},
		Sides:      [2]int{10, 0},
		State:      die.StateReady,
		Value:      8,
	}
	g := fightGame(
		[]die.Die{turbo},
		[]die.Die{readyDie(4, 3, 0)},
	)
	g.TurboAccuracy = 0

	moves := g.LegalMoves()
	// baseline power attack plus the two swing-range endpoints.
	if len(moves) != 3 {
		t.Fatalf("expected 3 moves (baseline + 2 endpoints), got %d", len(moves))
	}
	var sides []int
	for _, m := range moves {
		for _, to := range m.Attack.Turbo {
			sides = append(sides, to.SideValue)
		}
	}
	if len(sides) != 2 || sides[0] == sides[1] {
		t.Fatalf("expected two distinct endpoint variants, got %v", sides)
	}
	min, max := die.SwingX.Range()
	for _, s := range sides {
		if s != min && s != max {
			t.Fatalf("turbo variant %d is not a range endpoint", s)
		}
	}
}

func TestTurboFullAccuracyCoversRange(t *testing.T) {
	turbo := die.Die{
		Properties: die.Turbo,
		SwingType:  [2]die.SwingType{die.SwingX, die.SwingNone},
		Sides:      [2]int{10, 0},
		State:      die.StateReady,
		Value:      8,
	}
	g := fightGame(
		[]die.Die{turbo},
		[]die.Die{readyDie(4, 3, 0)},
	)
	g.TurboAccuracy = 1

	moves := g.LegalMoves()
	min, max := die.SwingX.Range()
	// baseline + one variant per side count in the range.
	want := 1 + (max - min + 1)
	if len(moves) != want {
		t.Fatalf("expected %d moves, got %d", want, len(moves))
	}
}

func TestShadowAttackUsesSidesMax(t *testing.T) {
	g := fightGame(
		[]die.Die{readyDie(20, 2, die.Shadow)},
		[]die.Die{readyDie(10, 9, 0)},
	)
	moves := g.LegalMoves()
	found := false
	for _, m := range moves {
		if m.Kind == move.Attack && m.Attack.AttackKind == move.AttackShadow {
			found = true
		}
		if m.Kind == move.Attack && m.Attack.AttackKind == move.AttackPower {
			t.Fatalf("shadow die must not power-attack")
		}
	}
	if !found {
		t.Fatalf("shadow attack within sides_max should be legal")
	}
}

func TestSpeedAttackTargetsSumToValue(t *testing.T) {
	g := fightGame(
		[]die.Die{readyDie(10, 5, die.Speed)},
		[]die.Die{readyDie(4, 3, 0), readyDie(4, 2, 0), readyDie(6, 6, 0)},
	)
	for _, m := range g.LegalMoves() {
		if m.Kind != move.Attack || m.Attack.AttackKind != move.AttackSpeed {
			continue
		}
		sum := 0
		for _, orig := range m.Attack.Targets {
			d := findByOriginalIndex(g.Players[1], orig)
			sum += d.Value
		}
		if sum != 5 {
			t.Fatalf("speed targets should sum to the attacker value, got %d", sum)
		}
	}
}

func TestStealthOnlyVulnerableToSkill(t *testing.T) {
	g := fightGame(
		[]die.Die{readyDie(6, 5, 0)},
		[]die.Die{readyDie(4, 3, die.Stealth)},
	)
	for _, m := range g.LegalMoves() {
		if m.Kind == move.Attack && m.Attack.AttackKind == move.AttackPower {
			t.Fatalf("stealth die must not be power-attackable")
		}
	}
}

func TestInsultImmuneToSkillOnly(t *testing.T) {
	d := readyDie(6, 5, die.Insult)
	d.RecomputeAttacks()
	if d.CanBeAttacked(die.Skill) {
		t.Fatalf("insult die must not be skill-attackable")
	}
	if !d.CanBeAttacked(die.Power) {
		t.Fatalf("insult die should still be power-attackable")
	}
}

func TestWarriorSkillOnlyAndAtMostOne(t *testing.T) {
	g := fightGame(
		[]die.Die{readyDie(4, 4, die.Warrior), readyDie(4, 4, die.Warrior), readyDie(4, 4, 0)},
		[]die.Die{readyDie(8, 8, 0)},
	)
	for _, m := range g.LegalMoves() {
		if m.Kind != move.Attack {
			continue
		}
		if m.Attack.AttackKind != move.AttackSkill {
			t.Fatalf("warrior rosters should only skill-attack, got %v", m.Attack.AttackKind)
		}
		warriors := 0
		for _, orig := range m.Attack.Attackers {
			d := findByOriginalIndex(g.Players[0], orig)
			if d.Properties.Has(die.Warrior) {
				warriors++
			}
		}
		if warriors > 1 {
			t.Fatalf("at most one warrior may join a skill attack")
		}
	}
}

func TestPreroundSwingEnumeration(t *testing.T) {
	g := New(1, rng.New(6))
	swing := die.Die{SwingType: [2]die.SwingType{die.SwingT, die.SwingNone}, State: die.StateNotSet}
	g.Players[0].SetButtonMan([]die.Die{swing})
	g.Players[1].SetButtonMan([]die.Die{{Sides: [2]int{6, 0}, State: die.StateNotSet}})

	moves := g.LegalMoves()
	min, max := die.SwingT.Range()
	if len(moves) != max-min+1 {
		t.Fatalf("expected one move per swing value, got %d", len(moves))
	}
	for _, m := range moves {
		if m.Kind != move.SetSwing || len(m.SetSwing.Swings) != 1 {
			t.Fatalf("malformed swing move: %+v", m)
		}
		v := m.SetSwing.Swings[0].Value
		if v < min || v > max {
			t.Fatalf("swing value %d out of range", v)
		}
	}
}

func TestReserveMovesEnumeratePromotions(t *testing.T) {
	reserve := die.Die{Properties: die.Reserve, Sides: [2]int{10, 0}, State: die.StateReserve}
	g := New(2, rng.New(6))
	g.Players[0].SetButtonMan([]die.Die{readyDie(6, 3, 0), reserve})
	g.Players[1].SetButtonMan([]die.Die{readyDie(6, 4, 0)})
	g.Phase = PhaseReserve
	g.reserveMover = 0

	moves := g.LegalMoves()
	if len(moves) != 2 {
		t.Fatalf("expected pass plus one promotion, got %d", len(moves))
	}
	promote := moves[1]
	g.ApplyMove(promote)
	if g.Phase != PhasePreround {
		t.Fatalf("reserve choice should return to preround")
	}
	found := false
	for i := 0; i < g.Players[0].NumDice; i++ {
		d := &g.Players[0].Dice[i]
		if d.Properties.Has(die.Reserve) && d.State == die.StateNotSet {
			found = true
		}
	}
	if !found {
		t.Fatalf("promoted reserve die should await its roll")
	}
}

func TestSubsetEnumerationVisitsAll(t *testing.T) {
	g := fightGame(
		[]die.Die{readyDie(6, 3, 0), readyDie(6, 2, 0), readyDie(6, 1, 0)},
		[]die.Die{readyDie(6, 1, 0)},
	)
	count := 0
	enumerateSubsets(g.Players[0], 1, func(indices []int, sum int) {
		count++
	})
	// 2^3 - 1 nonempty subsets.
	if count != 7 {
		t.Fatalf("expected 7 subsets, got %d", count)
	}
}
