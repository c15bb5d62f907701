package protocol

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pappde/bmai-sub000/die"
	"github.com/pappde/bmai-sub000/game"
	"github.com/pappde/bmai-sub000/move"
	"github.com/pappde/bmai-sub000/player"
	"github.com/pappde/bmai-sub000/rng"
	"github.com/pappde/bmai-sub000/stats"
)

// lineReader abstracts the driver's one-line-at-a-time input so the
// position parser can be tested without a full driver.
type lineReader interface {
	// readLine returns the next input line with EOL stripped, its line
	// number, and false on EOF.
	readLine() (string, int, bool)
}

// ParsePosition reads the position block that follows a `game [W]`
// command line (spec.md §6 "Position format") and returns a populated
// Game. r continues from the line after the game command.
func ParsePosition(gameLine string, r lineReader, stream *rng.Stream, log *stats.Logger) (*game.Game, error) {
	targetWins := 0
	fields := strings.Fields(gameLine)
	if len(fields) >= 2 {
		w, err := strconv.Atoi(fields[1])
		if err != nil {
			return nil, &ParseError{Text: gameLine, Msg: "bad target wins"}
		}
		targetWins = w
		if log != nil {
			log.Log(stats.CatAlways, "target wins set to %d", w)
		}
	}

	g := game.New(targetWins, stream)

	phaseLine, n, ok := r.readLine()
	if !ok {
		return nil, &ParseError{Line: n, Msg: "missing input"}
	}
	phase, found := game.PhaseForName(phaseLine)
	if !found {
		return nil, &ParseError{Line: n, Text: phaseLine, Msg: "phase not found"}
	}
	g.Phase = phase
	if phase == game.PhaseFight {
		// a freshly parsed fight position has no move history; a single
		// pass must not read as mutual.
		g.LastAction = move.NoAction
	}

	for p := 0; p < 2; p++ {
		if err := parsePlayerBlock(g, p, r, log); err != nil {
			return nil, err
		}
	}

	return g, nil
}

func parsePlayerBlock(g *game.Game, p int, r lineReader, log *stats.Logger) error {
	header, n, ok := r.readLine()
	if !ok {
		return &ParseError{Line: n, Msg: "missing input"}
	}
	var idx, diceCount int
	var score float64
	if cnt, err := fmt.Sscanf(header, "player %d %d %f", &idx, &diceCount, &score); cnt < 3 || err != nil || idx != p {
		return &ParseError{Line: n, Text: header, Msg: fmt.Sprintf("missing player %d", p)}
	}
	if diceCount < 0 || diceCount > player.MaxDice {
		return &ParseError{Line: n, Text: header, Msg: "dice count out of range"}
	}

	dice := make([]die.Die, 0, diceCount)
	specs := make([]DieSpec, 0, diceCount)
	for i := 0; i < diceCount; i++ {
		text, ln, ok := r.readLine()
		if !ok {
			return &ParseError{Line: ln, Msg: "missing input"}
		}
		spec, err := ParseDie(text)
		if err != nil {
			if pe, isPE := err.(*ParseError); isPE {
				pe.Line = ln
			}
			return err
		}
		if verr := game.ValidateDie(&spec.Die); verr != nil {
			return &ParseError{Line: ln, Text: text, Msg: verr.Error()}
		}
		dice = append(dice, spec.Die)
		specs = append(specs, spec)
	}

	pl := g.Players[p]
	pl.SetButtonMan(dice)

	// swing bookkeeping: values pinned in the text lock the player's
	// choice for this round; any unpinned swing or option die means the
	// choice is still pending (original ParseDieSides's SWING_SET
	// handling).
	anySwing := false
	for _, spec := range specs {
		for t, v := range spec.DefinedSwing {
			pl.SwingValue[t] = v
			anySwing = true
		}
		if spec.OptionDefined || spec.Die.Properties.Has(die.Option) {
			anySwing = true
		}
		if spec.Die.NeedsSwing() {
			anySwing = true
		}
	}
	// option choices recorded per-die by ParseDie are already in the
	// dice themselves; SetButtonMan copied them through.
	if anySwing {
		if pl.NeedsSetSwing() {
			pl.SwingSet = player.SwingSetNot
		} else {
			pl.SwingSet = player.SwingSetLocked
		}
	}

	// don't clobber score during the initiative phases (the original
	// parser's rule: those phases recompute from dice).
	switch g.Phase {
	case game.PhaseInitiative, game.PhaseInitiativeChance, game.PhaseInitiativeFocus:
	default:
		pl.SetScore(score)
	}

	if log != nil {
		for i := 0; i < pl.NumDice; i++ {
			log.Log(stats.CatParser, "player %d die %d: %s", p, i, EncodeDie(&pl.Dice[i]))
		}
	}
	return nil
}
