package protocol

import (
	"testing"

	"github.com/pappde/bmai-sub000/die"
)

func TestParseDiePlainWithValue(t *testing.T) {
	spec, err := ParseDie("6:5")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	d := spec.Die
	if d.Sides[0] != 6 || d.Value != 5 || d.State != die.StateReady {
		t.Fatalf("bad parse: %+v", d)
	}
}

func TestParseDiePrefixProperties(t *testing.T) {
	spec, err := ParseDie("tz18")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	d := spec.Die
	if !d.Properties.Has(die.Trip) || !d.Properties.Has(die.Speed) {
		t.Fatalf("prefix properties missing: %v", d.Properties)
	}
	if d.Sides[0] != 18 || d.State != die.StateNotSet {
		t.Fatalf("bad sides/state: %+v", d)
	}
}

func TestParseDieNullValue(t *testing.T) {
	spec, err := ParseDie("n9:9")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	d := spec.Die
	if !d.Properties.Has(die.Null) {
		t.Fatalf("null property missing")
	}
	if got := d.Score(true); got != 0 {
		t.Fatalf("null die should score 0 own, got %v", got)
	}
	if got := d.Score(false); got != 0 {
		t.Fatalf("null die should score 0 captured, got %v", got)
	}
}

func TestParseDieSwingDefined(t *testing.T) {
	spec, err := ParseDie("X-4:3")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	d := spec.Die
	if d.SwingType[0] != die.SwingX || d.Sides[0] != 4 {
		t.Fatalf("swing parse wrong: %+v", d)
	}
	if d.Value != 3 || d.State != die.StateReady {
		t.Fatalf("value parse wrong: %+v", d)
	}
	if spec.DefinedSwing[die.SwingX] != 4 {
		t.Fatalf("defined swing not recorded: %v", spec.DefinedSwing)
	}
}

func TestParseDieSwingUndefined(t *testing.T) {
	spec, err := ParseDie("X")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	d := spec.Die
	if d.SwingType[0] != die.SwingX || d.Sides[0] != 0 || d.State != die.StateNotSet {
		t.Fatalf("undefined swing parse wrong: %+v", d)
	}
	if !d.NeedsSwing() {
		t.Fatalf("undefined swing die should need a swing value")
	}
}

func TestParseDieOptionChosen(t *testing.T) {
	spec, err := ParseDie("4/6-6:2")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	d := spec.Die
	if !d.Properties.Has(die.Option) || !d.OptionSet || d.OptionChosen != 1 {
		t.Fatalf("option choice wrong: %+v", d)
	}
	if d.Sides[0] != 6 || d.Sides[1] != 4 {
		t.Fatalf("option sides should be swapped to chosen-first: %v", d.Sides)
	}
}

func TestParseDieOptionUnchosen(t *testing.T) {
	spec, err := ParseDie("4/6")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	d := spec.Die
	if d.OptionSet {
		t.Fatalf("unchosen option die should not be marked set")
	}
	if d.Sides[0] != 4 || d.Sides[1] != 6 {
		t.Fatalf("option sides wrong: %v", d.Sides)
	}
}

func TestParseDieTwin(t *testing.T) {
	spec, err := ParseDie("(6,8):10")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	d := spec.Die
	if !d.Properties.Has(die.Twin) || d.Sides[0] != 6 || d.Sides[1] != 8 {
		t.Fatalf("twin parse wrong: %+v", d)
	}
	if d.Dice() != 2 || d.SidesMax() != 14 {
		t.Fatalf("twin aggregates wrong")
	}
}

func TestParseDiePostfixAndDizzy(t *testing.T) {
	spec, err := ParseDie("fX-7!:3d")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	d := spec.Die
	if !d.Properties.Has(die.Focus) || !d.Properties.Has(die.Turbo) {
		t.Fatalf("properties wrong: %v", d.Properties)
	}
	if d.State != die.StateDizzy || d.Value != 3 {
		t.Fatalf("dizzy state wrong: %+v", d)
	}
}

func TestParseDieMood(t *testing.T) {
	spec, err := ParseDie("X?")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if !spec.Die.Properties.Has(die.Mood) {
		t.Fatalf("mood postfix missing")
	}
}

func TestParseDieReserveState(t *testing.T) {
	spec, err := ParseDie("rz18")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if spec.Die.State != die.StateReserve {
		t.Fatalf("reserve die should parse into reserve state")
	}
}

func TestParseDieErrors(t *testing.T) {
	for _, text := range []string{"", "x6", "6:", "(6,8", "4/6-5", "6:5x"} {
		if _, err := ParseDie(text); err == nil {
			t.Errorf("expected parse error for %q", text)
		}
	}
}

func TestDieRoundTrip(t *testing.T) {
	cases := []string{
		"6:5",
		"tz18",
		"n9:9",
		"X-4:3",
		"X",
		"4/6-6:2",
		"4/6",
		"(6,8):10",
		"pB10:7",
		"fX-7!:3d",
		"rz18",
		"`4:4",
	}
	for _, text := range cases {
		spec, err := ParseDie(text)
		if err != nil {
			t.Fatalf("parse %q: %v", text, err)
		}
		encoded := EncodeDie(&spec.Die)
		spec2, err := ParseDie(encoded)
		if err != nil {
			t.Fatalf("re-parse %q (from %q): %v", encoded, text, err)
		}
		a, b := spec.Die, spec2.Die
		if a.Properties != b.Properties || a.Sides != b.Sides ||
			a.SwingType != b.SwingType || a.State != b.State ||
			a.Value != b.Value || a.OptionSet != b.OptionSet ||
			a.OptionChosen != b.OptionChosen {
			t.Fatalf("round trip mismatch for %q -> %q:\n%+v\n%+v", text, encoded, a, b)
		}
	}
}
