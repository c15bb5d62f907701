package qai

import (
	"testing"

	"github.com/pappde/bmai-sub000/die"
	"github.com/pappde/bmai-sub000/game"
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

func fightGame(p0, p1 []die.Die) *game.Game {
	g := game.New(1, rng.New(3))
	g.Players[0].SetButtonMan(p0)
	g.Players[1].SetButtonMan(p1)
	g.Phase = game.PhaseFight
	g.PhasePlayer = 0
	g.TargetPlayer = 1
	g.LastAction = move.NoAction
	return g
}

func TestChooseMovePicksBiggerCapture(t *testing.T) {
	// capturing the d12 (12 points) clearly beats capturing the d2.
	g := fightGame(
		[]die.Die{readyDie(20, 15, 0)},
		[]die.Die{readyDie(12, 10, 0), readyDie(2, 1, 0)},
	)
	a := New(0)
	m := a.ChooseMove(g, 0)
	if m.Kind != move.Attack {
		t.Fatalf("expected an attack, got %v", m.Kind)
	}
	target := m.Attack.Targets[0]
	d := g.Players[1].Dice[0]
	if d.OriginalIndex != target {
		t.Fatalf("QAI should capture the highest-scoring target, got die %d", target)
	}
}

func TestChooseMoveReturnsPassOutsideFight(t *testing.T) {
	g := fightGame(
		[]die.Die{readyDie(6, 5, 0)},
		[]die.Die{readyDie(4, 3, 0)},
	)
	g.Phase = game.PhaseInitiativeChance
	if m := (New(0)).ChooseMove(g, 0); m.Kind != move.Pass {
		t.Fatalf("chance phase should yield pass, got %v", m.Kind)
	}
	g.Phase = game.PhaseInitiativeFocus
	if m := (New(0)).ChooseMove(g, 0); m.Kind != move.Pass {
		t.Fatalf("focus phase should yield pass, got %v", m.Kind)
	}
	g.Phase = game.PhaseReserve
	if m := (New(0)).ChooseMove(g, 0); m.Kind != move.UseReserve || !m.UseReserve.Pass {
		t.Fatalf("reserve phase should yield a reserve pass, got %v", m.Kind)
	}
}

func TestChooseMoveSwingDefault(t *testing.T) {
	g := game.New(1, rng.New(3))
	swing := die.Die{SwingType: [2]die.SwingType{die.SwingX, die.SwingNone}, State: die.StateNotSet}
	g.Players[0].SetButtonMan([]die.Die{swing})
	g.Players[1].SetButtonMan([]die.Die{readyDie(6, 0, 0)})

	m := (New(0)).ChooseMove(g, 0)
	if m.Kind != move.SetSwing {
		t.Fatalf("preround should yield a swing move, got %v", m.Kind)
	}
	if len(m.SetSwing.Swings) != 1 || m.SetSwing.Swings[0].Value != 4 {
		t.Fatalf("default swing move should pick the range minimum, got %+v", m.SetSwing)
	}
}
