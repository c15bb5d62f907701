// Package stats carries the process-global logging categories and the
// search's ply-level counters (spec.md §2 "Stats & logging", §5 "Shared
// resources"). Logging is built on zerolog, per-category sub-loggers
// toggled between Disabled and Debug by the protocol's `debug <cat>
// <0|1>` command; counters are plain monotonic integers, exactly what
// the original's BMC_Stats is.
package stats

import (
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// Category names one debug-output category, matching the original's
// BME_DEBUG enum and the `debug CAT 0|1` protocol command's CAT values.
type Category int

const (
	CatAlways Category = iota
	CatWarning
	CatParser
	CatSimulation
	CatRound
	CatGame
	CatQAI
	CatBMAI
	catMax
)

var categoryNames = [catMax]string{
	"ALWAYS",
	"WARNING",
	"PARSER",
	"SIMULATION",
	"ROUND",
	"GAME",
	"QAI",
	"BMAI",
}

func (c Category) String() string {
	if int(c) < len(categoryNames) {
		return categoryNames[c]
	}
	return "INVALID"
}

// CategoryForName reverses String, case-insensitively (the protocol's
// `debug SIMULATION 0` style commands use upper case, but tooling has
// been loose about it).
func CategoryForName(name string) (Category, bool) {
	for c := Category(0); c < catMax; c++ {
		if strings.EqualFold(categoryNames[c], name) {
			return c, true
		}
	}
	return 0, false
}

// Logger is the per-category logging front end. ALWAYS and WARNING start
// enabled; the noisier categories start disabled, matching the
// original's defaults.
type Logger struct {
	base    zerolog.Logger
	loggers [catMax]zerolog.Logger
	enabled [catMax]bool
}

// NewLogger builds the category logger on top of base.
func NewLogger(base zerolog.Logger) *Logger {
	l := &Logger{base: base}
	for c := Category(0); c < catMax; c++ {
		l.loggers[c] = base.With().Str("cat", c.String()).Logger()
		l.enabled[c] = c == CatAlways || c == CatWarning
	}
	l.apply()
	return l
}

// NewDefaultLogger builds the logger most callers want: console output
// on stderr, keeping stdout clean for the text protocol.
func NewDefaultLogger() *Logger {
	out := zerolog.ConsoleWriter{Out: os.Stderr, NoColor: true}
	return NewLogger(zerolog.New(out).With().Timestamp().Logger())
}

func (l *Logger) apply() {
	for c := Category(0); c < catMax; c++ {
		if l.enabled[c] {
			l.loggers[c] = l.loggers[c].Level(zerolog.DebugLevel)
		} else {
			l.loggers[c] = l.loggers[c].Level(zerolog.Disabled)
		}
	}
}

// SetLogging toggles one category by name, returning false for an
// unknown category (spec.md §6 `debug CAT 0|1`).
func (l *Logger) SetLogging(name string, on bool) bool {
	c, ok := CategoryForName(name)
	if !ok {
		return false
	}
	l.enabled[c] = on
	l.apply()
	l.Log(CatAlways, "debug %s set to %v", name, on)
	return true
}

// Enabled reports whether a category currently logs.
func (l *Logger) Enabled(c Category) bool { return l.enabled[c] }

// Log emits one formatted line under the given category.
func (l *Logger) Log(c Category, format string, args ...any) {
	if int(c) >= int(catMax) || !l.enabled[c] {
		return
	}
	l.loggers[c].Debug().Msgf(format, args...)
}

// Counters are the ply-level search counters the original's BMC_Stats
// tracks (OnPlyAction / OnFullSimulation). Single-threaded per spec.md
// §5, so plain ints suffice; a threaded port must guard these.
type Counters struct {
	FullSimulations int

	// per-ply accumulators, indexed by search level (capped at MaxPlyTracked).
	PlySims    [MaxPlyTracked]int
	PlyMoves   [MaxPlyTracked]int
	PlySamples [MaxPlyTracked]int
}

// MaxPlyTracked bounds the per-ply accumulator arrays; levels beyond it
// fold into the last slot.
const MaxPlyTracked = 8

// OnFullSimulation records one rollout played to round completion.
func (c *Counters) OnFullSimulation() { c.FullSimulations++ }

// OnPlyAction records one completed ply decision: how many moves were
// considered and how many simulations were spent on them.
func (c *Counters) OnPlyAction(ply, moves, sims int) {
	if ply < 1 {
		ply = 1
	}
	if ply > MaxPlyTracked {
		ply = MaxPlyTracked
	}
	c.PlySims[ply-1] += sims
	c.PlyMoves[ply-1] += moves
	c.PlySamples[ply-1]++
}
