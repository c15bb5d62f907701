package game

import (
	"testing"

	"github.com/pappde/bmai-sub000/die"
	"github.com/pappde/bmai-sub000/move"
	"github.com/pappde/bmai-sub000/rng"
)

func readyDie(sides, value int, props die.Property) die.Die {
	return die.Die{
		Properties: props,
		Sides:      [2]int{sides, 0},
		State:      die.StateReady,
		Value:      value,
	}
}

func fightGame(p0, p1 []die.Die) *Game {
	g := New(1, rng.New(7))
	g.Players[0].SetButtonMan(p0)
	g.Players[1].SetButtonMan(p1)
	g.Phase = PhaseFight
	g.PhasePlayer = 0
	g.TargetPlayer = 1
	g.LastAction = move.NoAction
	return g
}

func TestLegalMovesSimplePowerCapture(t *testing.T) {
	g := fightGame(
		[]die.Die{readyDie(6, 5, 0)},
		[]die.Die{readyDie(4, 3, 0)},
	)
	moves := g.LegalMoves()
	if len(moves) != 1 {
		t.Fatalf("expected exactly one legal move, got %d", len(moves))
	}
	m := moves[0]
	if m.Kind != move.Attack || m.Attack.AttackKind != move.AttackPower {
		t.Fatalf("expected a power attack, got %v", m.Kind)
	}
	if len(m.Attack.Attackers) != 1 || m.Attack.Attackers[0] != 0 {
		t.Fatalf("expected attacker die 0, got %v", m.Attack.Attackers)
	}
	if len(m.Attack.Targets) != 1 || m.Attack.Targets[0] != 0 {
		t.Fatalf("expected target die 0, got %v", m.Attack.Targets)
	}
}

func TestLegalMovesSkillCombination(t *testing.T) {
	g := fightGame(
		[]die.Die{readyDie(4, 3, 0), readyDie(2, 2, 0), readyDie(1, 1, 0)},
		[]die.Die{readyDie(6, 6, 0)},
	)
	moves := g.LegalMoves()
	found := false
	for _, m := range moves {
		if m.Kind != move.Attack || m.Attack.AttackKind != move.AttackSkill {
			continue
		}
		if len(m.Attack.Attackers) == 3 {
			found = true
			sum := 0
			for _, orig := range m.Attack.Attackers {
				d := findByOriginalIndex(g.Players[0], orig)
				sum += d.Value
			}
			if sum != 6 {
				t.Fatalf("three-die skill attack should sum to 6, got %d", sum)
			}
		}
	}
	if !found {
		t.Fatalf("expected a three-die skill attack summing to the target")
	}
}

func TestLegalMovesPassWhenNoAttack(t *testing.T) {
	g := fightGame(
		[]die.Die{readyDie(2, 1, 0)},
		[]die.Die{readyDie(20, 19, 0)},
	)
	moves := g.LegalMoves()
	if len(moves) != 1 || moves[0].Kind != move.Pass {
		t.Fatalf("expected pass to be the only legal move, got %v", moves)
	}
}

func TestLegalMovesDistinctAndValid(t *testing.T) {
	g := fightGame(
		[]die.Die{readyDie(6, 4, 0), readyDie(4, 2, 0), readyDie(8, 2, die.Speed)},
		[]die.Die{readyDie(6, 2, 0), readyDie(4, 2, 0)},
	)
	moves := g.LegalMoves()
	for i := range moves {
		for j := i + 1; j < len(moves); j++ {
			if move.Equal(moves[i], moves[j]) {
				t.Fatalf("generated moves %d and %d are identical", i, j)
			}
		}
		if moves[i].Kind == move.Attack && !g.ValidAttack(moves[i]) {
			t.Fatalf("generated move %d fails ValidAttack: %+v", i, moves[i].Attack)
		}
	}
}

func TestTripRequiresAtLeastAsManySubDice(t *testing.T) {
	twin := die.Die{
		Properties: die.Twin,
		Sides:      [2]int{2, 2},
		State:      die.StateReady,
		Value:      2,
	}
	g := fightGame(
		[]die.Die{readyDie(1, 1, die.Trip)},
		[]die.Die{twin},
	)
	for _, m := range g.LegalMoves() {
		if m.Kind == move.Attack && m.Attack.AttackKind == move.AttackTrip {
			t.Fatalf("one-sided die must not trip-attack a twin")
		}
	}
}

func TestApplyAttackPowerCapturesAndScores(t *testing.T) {
	g := fightGame(
		[]die.Die{readyDie(6, 5, 0)},
		[]die.Die{readyDie(4, 3, 0)},
	)
	moves := g.LegalMoves()
	g.ApplyMove(moves[0])

	if g.Phase != PhaseGameOver && g.Phase != PhaseRoundEnd {
		// the lone target die was captured; with target wins 1 the game
		// should have ended.
		t.Fatalf("expected round to end after capturing the last die, phase %v", g.Phase)
	}
	if g.Players[1].AvailableDice != 0 {
		t.Fatalf("target should have no available dice after capture")
	}
	// captured d4 contributes its full 4 sides to the attacker.
	if got := g.Players[0].Score; got < 4 {
		t.Fatalf("attacker score should include the captured die, got %v", got)
	}
}

func TestMutualPassEndsRoundWithoutCapture(t *testing.T) {
	g := fightGame(
		[]die.Die{readyDie(2, 1, 0)},
		[]die.Die{readyDie(20, 19, 0)},
	)
	g.TargetWins = 3

	g.ApplyMove(move.NewPass())
	if g.Phase != PhaseFight {
		t.Fatalf("single pass should not end the fight")
	}
	g.ApplyMove(move.NewPass())
	if g.Phase == PhaseFight {
		t.Fatalf("mutual pass should end the fight")
	}
	if g.Players[0].NumDice != 1 || g.Players[1].NumDice != 1 {
		t.Fatalf("mutual pass must not capture dice")
	}
}

func TestSurrenderEndsRound(t *testing.T) {
	g := fightGame(
		[]die.Die{readyDie(2, 1, 0)},
		[]die.Die{readyDie(20, 19, 0)},
	)
	g.ApplyMove(move.NewSurrender())
	if !g.Players[0].Surrendered() {
		t.Fatalf("surrender flag not set")
	}
	if g.Players[0].Score != -1000 {
		t.Fatalf("surrendered score sentinel should be -1000, got %v", g.Players[0].Score)
	}
	if g.Standing.Wins[1] != 1 {
		t.Fatalf("opponent should win the surrendered round")
	}
}

func TestCloneLockstep(t *testing.T) {
	g := fightGame(
		[]die.Die{readyDie(6, 5, 0), readyDie(4, 2, 0)},
		[]die.Die{readyDie(6, 2, 0), readyDie(4, 1, 0)},
	)
	g.TargetWins = 3
	clone := g.Clone()
	if !clone.Simulation {
		t.Fatalf("clone must be marked as simulation")
	}

	moves := g.LegalMoves()
	cloneMoves := clone.LegalMoves()
	if len(moves) != len(cloneMoves) {
		t.Fatalf("clone should generate the same %d moves, got %d", len(moves), len(cloneMoves))
	}
	for i := range moves {
		if !move.Equal(moves[i], cloneMoves[i]) {
			t.Fatalf("clone move %d differs", i)
		}
	}

	// mutating the clone must not touch the original.
	clone.Players[1].Dice[0].Value = 99
	if g.Players[1].Dice[0].Value == 99 {
		t.Fatalf("clone aliases the original's dice")
	}
}

func TestExtraTurnOnOddTimeAndSpace(t *testing.T) {
	// a maximum time-and-space die always re-rolls to its odd side
	// count, so the attacker keeps the turn.
	g := fightGame(
		[]die.Die{readyDie(5, 5, die.TimeAndSpace | die.Maximum)},
		[]die.Die{readyDie(4, 3, 0), readyDie(4, 2, 0)},
	)
	g.TargetWins = 3
	moves := g.LegalMoves()
	g.ApplyMove(moves[0])
	if g.Phase != PhaseFight {
		t.Fatalf("fight should continue, phase %v", g.Phase)
	}
	if g.PhasePlayer != 0 {
		t.Fatalf("odd time-and-space roll should grant an extra turn")
	}
}

func TestDizzyRecoveryAtTurnEnd(t *testing.T) {
	focus := readyDie(6, 5, die.Focus)
	g := fightGame(
		[]die.Die{focus, readyDie(4, 2, 0)},
		[]die.Die{readyDie(20, 19, 0)},
	)
	g.TargetWins = 3
	// put the focus die into dizzy by hand, as the focus sub-phase would.
	g.Players[0].Dice[0].SetFocus(2)
	g.Players[0].OptimizeDice()

	g.ApplyMove(move.NewPass())
	for i := 0; i < g.Players[0].NumDice; i++ {
		if g.Players[0].Dice[i].State == die.StateDizzy {
			t.Fatalf("dizzy dice should recover at the owner's turn end")
		}
	}
}

func TestValidateDieRejectsMorphingConflicts(t *testing.T) {
	d := readyDie(6, 3, die.Morphing|die.Turbo)
	if err := ValidateDie(&d); err == nil {
		t.Fatalf("morphing+turbo should be rejected")
	}
	ok := readyDie(6, 3, die.Morphing)
	if err := ValidateDie(&ok); err != nil {
		t.Fatalf("plain morphing die should validate: %v", err)
	}
}
