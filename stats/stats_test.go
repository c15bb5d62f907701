package stats

import (
	"io"
	"testing"

	"github.com/rs/zerolog"
)

func TestCategoryForName(t *testing.T) {
	c, ok := CategoryForName("SIMULATION")
	if !ok || c != CatSimulation {
		t.Fatalf("SIMULATION lookup failed: %v %v", c, ok)
	}
	if _, ok := CategoryForName("NOPE"); ok {
		t.Fatalf("unknown category should not resolve")
	}
	// case-insensitive, since tooling has been loose about it
	if c, _ := CategoryForName("bmai"); c != CatBMAI {
		t.Fatalf("lookup should be case-insensitive")
	}
}

func TestSetLoggingToggles(t *testing.T) {
	l := NewLogger(zerolog.New(io.Discard))
	if l.Enabled(CatBMAI) {
		t.Fatalf("BMAI should start disabled")
	}
	if !l.Enabled(CatAlways) {
		t.Fatalf("ALWAYS should start enabled")
	}
	if !l.SetLogging("BMAI", true) {
		t.Fatalf("toggle should succeed")
	}
	if !l.Enabled(CatBMAI) {
		t.Fatalf("toggle did not apply")
	}
	if l.SetLogging("NOPE", true) {
		t.Fatalf("unknown category toggle should fail")
	}
}

func TestCountersFoldDeepPlies(t *testing.T) {
	var c Counters
	c.OnPlyAction(1, 5, 100)
	c.OnPlyAction(MaxPlyTracked+3, 2, 10)
	if c.PlySims[0] != 100 || c.PlyMoves[0] != 5 || c.PlySamples[0] != 1 {
		t.Fatalf("ply 1 counters wrong: %+v", c)
	}
	if c.PlySims[MaxPlyTracked-1] != 10 {
		t.Fatalf("deep plies should fold into the last slot")
	}
	c.OnFullSimulation()
	if c.FullSimulations != 1 {
		t.Fatalf("full simulation counter wrong")
	}
}
