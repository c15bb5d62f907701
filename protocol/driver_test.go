package protocol

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/pappde/bmai-sub000/die"
	"github.com/pappde/bmai-sub000/game"
	"github.com/pappde/bmai-sub000/stats"
)

func quietLogger() zerolog.Logger {
	return zerolog.New(io.Discard)
}

func newTestDriver(input string) (*Driver, *bytes.Buffer) {
	var out bytes.Buffer
	log := stats.NewLogger(quietLogger())
	d := NewDriver(strings.NewReader(input), &out, 1, log)
	return d, &out
}

func TestParsePositionFight(t *testing.T) {
	input := strings.Join([]string{
		"fight",
		"player 0 2 7.5",
		"6:5",
		"4:2",
		"player 1 1 2",
		"4:3",
	}, "\n") + "\n"
	d, _ := newTestDriver(input)
	g, err := ParsePosition("game 2", d, d.RNG, d.Log)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if g.TargetWins != 2 {
		t.Fatalf("target wins should be 2, got %d", g.TargetWins)
	}
	if g.Phase != game.PhaseFight {
		t.Fatalf("phase should be fight, got %v", g.Phase)
	}
	if g.Players[0].NumDice != 2 || g.Players[1].NumDice != 1 {
		t.Fatalf("dice counts wrong")
	}
	if g.Players[0].Score != 7.5 {
		t.Fatalf("player 0 score should be pinned to 7.5, got %v", g.Players[0].Score)
	}
	if g.Players[0].Dice[0].Value != 5 {
		t.Fatalf("available dice should be sorted by value descending")
	}
}

func TestParsePositionSwingLocking(t *testing.T) {
	input := strings.Join([]string{
		"preround",
		"player 0 1 0",
		"X",
		"player 1 1 0",
		"X-7",
	}, "\n") + "\n"
	d, _ := newTestDriver(input)
	g, err := ParsePosition("game", d, d.RNG, d.Log)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if !g.Players[0].NeedsSetSwing() {
		t.Fatalf("player 0's undefined swing should need a choice")
	}
	if g.Players[1].NeedsSetSwing() {
		t.Fatalf("player 1's pinned swing should not need a choice")
	}
	if g.Players[1].SwingValue[die.SwingX] != 7 {
		t.Fatalf("pinned swing value not recorded")
	}
}

func TestParsePositionErrors(t *testing.T) {
	cases := []string{
		// bad phase
		"nonsense\n",
		// player header mismatch
		"fight\nplayer 1 1 0\n6:5\n",
		// malformed die
		"fight\nplayer 0 1 0\nxx\n",
	}
	for _, input := range cases {
		d, _ := newTestDriver(input)
		if _, err := ParsePosition("game", d, d.RNG, d.Log); err == nil {
			t.Errorf("expected error for position %q", input)
		}
	}
}

func TestGetActionSimplePowerCapture(t *testing.T) {
	input := strings.Join([]string{
		"game 1",
		"fight",
		"player 0 1 3",
		"6:5",
		"player 1 1 2",
		"4:3",
		"getaction",
		"quit",
	}, "\n") + "\n"
	d, out := newTestDriver(input)
	if err := d.Run(); err != nil {
		t.Fatalf("driver error: %v", err)
	}
	want := "action\npower\n0\n0\n"
	if out.String() != want {
		t.Fatalf("getaction output mismatch:\nwant %q\ngot  %q", want, out.String())
	}
}

func TestGetActionSkillCombination(t *testing.T) {
	input := strings.Join([]string{
		"game 1",
		"fight",
		"player 0 3 3",
		"4:3",
		"2:2",
		"1:1",
		"player 1 1 3",
		"6:6",
		"getaction",
		"quit",
	}, "\n") + "\n"
	d, out := newTestDriver(input)
	if err := d.Run(); err != nil {
		t.Fatalf("driver error: %v", err)
	}
	got := out.String()
	if !strings.HasPrefix(got, "action\nskill\n") {
		t.Fatalf("expected a skill attack, got %q", got)
	}
	lines := strings.Split(strings.TrimSuffix(got, "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 4 output lines, got %q", got)
	}
	// attacker line holds all three original indices; target is die 0.
	attackers := strings.Fields(lines[2])
	if len(attackers) != 3 {
		t.Fatalf("expected three skill attackers, got %q", lines[2])
	}
	if lines[3] != "0" {
		t.Fatalf("expected target die 0, got %q", lines[3])
	}
}

func TestGetActionPassWhenNoAttack(t *testing.T) {
	input := strings.Join([]string{
		"game 1",
		"fight",
		"player 0 1 1",
		"2:1",
		"player 1 1 10",
		"20:19",
		"getaction",
		"quit",
	}, "\n") + "\n"
	d, out := newTestDriver(input)
	if err := d.Run(); err != nil {
		t.Fatalf("driver error: %v", err)
	}
	if out.String() != "action\npass\n" {
		t.Fatalf("expected pass, got %q", out.String())
	}
}

func TestDispatchSettings(t *testing.T) {
	input := strings.Join([]string{
		"max_sims 50",
		"min_sims 2",
		"ply 3",
		"maxbranch 400",
		"turbo_accuracy 0.5",
		"seed 7",
		"surrender on",
		"quit",
	}, "\n") + "\n"
	d, _ := newTestDriver(input)
	if err := d.Run(); err != nil {
		t.Fatalf("driver error: %v", err)
	}
	if d.bmai3.Params.MaxSims != 50 || d.bmai3.Params.MinSims != 2 {
		t.Fatalf("sims settings not applied")
	}
	if d.bmai3.Params.MaxPly != 3 || d.bmai3.Params.MaxBranch != 400 {
		t.Fatalf("ply/branch settings not applied")
	}
	if d.turboAccuracy != 0.5 {
		t.Fatalf("turbo accuracy not applied")
	}
	if !d.bmai3.Params.SurrenderEnabled {
		t.Fatalf("surrender not enabled")
	}
}

func TestDispatchUnknownCommandIsFatal(t *testing.T) {
	d, _ := newTestDriver("bogus command\n")
	if err := d.Run(); err == nil {
		t.Fatalf("unknown command should be a fatal parse error")
	}
}

func TestDispatchDebugToggle(t *testing.T) {
	d, _ := newTestDriver("debug BMAI 1\nquit\n")
	if err := d.Run(); err != nil {
		t.Fatalf("driver error: %v", err)
	}
	if !d.Log.Enabled(stats.CatBMAI) {
		t.Fatalf("debug toggle not applied")
	}
}
