package protocol

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/pappde/bmai-sub000/die"
	"github.com/pappde/bmai-sub000/game"
	"github.com/pappde/bmai-sub000/move"
	"github.com/pappde/bmai-sub000/qai"
	"github.com/pappde/bmai-sub000/rng"
	"github.com/pappde/bmai-sub000/search"
	"github.com/pappde/bmai-sub000/simulation"
	"github.com/pappde/bmai-sub000/stats"
)

// aiTypes is the size of the `ai P T` selection pool (spec.md §6:
// 0=BMAI, 1=QAI, 2=BMAI3).
const aiTypes = 3

// Driver owns the singleton Game and the AI pool, reads commands one
// line at a time, and writes protocol output (spec.md §4.6).
type Driver struct {
	Game *game.Game

	RNG      *rng.Stream
	Log      *stats.Logger
	Counters *stats.Counters

	// the selectable pool: plain BMAI (tier 0), QAI (tier 1), and the
	// culling BMAI3 (tier 2, the default for both sides).
	bmai  *search.AI
	qai   *qai.AI
	bmai3 *search.AI

	turboAccuracy float64
	debugPly      int

	in      *bufio.Scanner
	out     io.Writer
	lineNum int
}

// NewDriver wires a driver around the given streams. seed 0 keeps the
// RNG time-based.
func NewDriver(in io.Reader, out io.Writer, seed int64, log *stats.Logger) *Driver {
	stream := rng.New(seed)
	counters := &stats.Counters{}

	params := search.DefaultParams()
	d := &Driver{
		RNG:           stream,
		Log:           log,
		Counters:      counters,
		bmai:          search.NewPlain(params),
		qai:           qai.New(5),
		bmai3:         search.New(params),
		turboAccuracy: 1,
		in:            bufio.NewScanner(in),
		out:           out,
	}
	d.bmai.Counters = counters
	d.bmai3.Counters = counters
	d.bmai.Log = log
	d.bmai3.Log = log
	return d
}

func (d *Driver) aiPool() [aiTypes]game.AI {
	return [aiTypes]game.AI{d.bmai, d.qai, d.bmai3}
}

func (d *Driver) readLine() (string, int, bool) {
	if !d.in.Scan() {
		return "", d.lineNum, false
	}
	d.lineNum++
	return strings.TrimRight(d.in.Text(), "\r\n"), d.lineNum, true
}

func (d *Driver) send(format string, args ...any) {
	fmt.Fprintf(d.out, format, args...)
}

// Run is the command loop (spec.md §6 "Commands"). It returns nil on
// EOF or `quit`, and a *ParseError on the fatal paths spec.md §7 names.
func (d *Driver) Run() error {
	for {
		line, n, ok := d.readLine()
		if !ok {
			return nil
		}
		quit, err := d.dispatch(line, n)
		if err != nil {
			return err
		}
		if quit {
			return nil
		}
	}
}

func (d *Driver) dispatch(line string, n int) (quit bool, err error) {
	var param, param2 int
	var fparam float64
	var sparam string

	switch {
	case line == "":
		// blank line

	case line == "quit":
		return true, nil

	case strings.HasPrefix(line, "game"):
		g, perr := ParsePosition(line, d, d.RNG, d.Log)
		if perr != nil {
			return false, perr
		}
		g.TurboAccuracy = d.turboAccuracy
		g.SetAI(0, d.bmai3)
		g.SetAI(1, d.bmai3)
		d.Game = g

	case scan(line, "playgame %d", &param):
		if err := d.requirePreround(line, n); err != nil {
			return false, err
		}
		res := simulation.RunBatch(d.Game, param)
		d.Log.Log(stats.CatAlways, "matches over %d - %d", res.Wins[0], res.Wins[1])
		d.send("matches over %d - %d\n", res.Wins[0], res.Wins[1])

	case scan(line, "compare %d", &param):
		if err := d.requirePreround(line, n); err != nil {
			return false, err
		}
		res := simulation.RunBatch(d.Game, param)
		d.Log.Log(stats.CatAlways, "matches over %d - %d", res.Wins[0], res.Wins[1])
		d.send("matches over %d - %d\n", res.Wins[0], res.Wins[1])

	case scanf3(line, "playfair %d %d %f", &param, &param2, &fparam):
		if err := d.requirePreround(line, n); err != nil {
			return false, err
		}
		res := simulation.RunFair(d.Game, param, param2, fparam, d.bmai3.Params.MaxPly)
		d.sendFairReport(res)

	case scan2(line, "ai %d %d", &param, &param2):
		if param2 < 0 || param2 >= aiTypes {
			return false, &ParseError{Line: n, Text: line, Msg: "invalid setting for ai type"}
		}
		if param < 0 || param > 1 {
			return false, &ParseError{Line: n, Text: line, Msg: "invalid setting for ai player number"}
		}
		if d.Game == nil {
			return false, &ParseError{Line: n, Text: line, Msg: "no game"}
		}
		d.Game.SetAI(param, d.aiPool()[param2])
		d.send("Setting AI for player %d to type %d\n", param, param2)

	case scan(line, "max_sims %d", &param):
		d.bmai3.Params.MaxSims = param
		d.bmai.Params.MaxSims = param
		d.send("Setting max # simulations to %d\n", param)

	case scan(line, "min_sims %d", &param):
		d.bmai3.Params.MinSims = param
		d.bmai.Params.MinSims = param
		d.send("Setting min # simulations to %d\n", param)

	case scanF(line, "turbo_accuracy %f", &fparam):
		d.turboAccuracy = fparam
		if d.Game != nil {
			d.Game.TurboAccuracy = fparam
		}
		d.send("Setting turbo accuracy to %f\n", fparam)

	case scan(line, "ply %d", &param):
		d.bmai3.Params.MaxPly = param
		d.bmai.Params.MaxPly = param
		d.send("Setting max ply to %d\n", param)

	case scan(line, "debugply %d", &param):
		d.debugPly = param
		d.bmai3.DebugPly = param
		d.bmai.DebugPly = param
		d.send("Setting debug ply to %d\n", param)

	case scan(line, "maxbranch %d", &param):
		d.bmai3.Params.MaxBranch = param
		d.bmai.Params.MaxBranch = param
		d.send("Setting max branch to %d\n", param)

	case line == "getaction":
		if err := d.getAction(n); err != nil {
			return false, err
		}

	case scanSD(line, "debug %s %d", &sparam, &param):
		if !d.Log.SetLogging(sparam, param != 0) {
			return false, &ParseError{Line: n, Text: line, Msg: "unknown debug category"}
		}

	case scan(line, "seed %d", &param):
		d.RNG.Seed(int64(param))
		d.send("Seeding with %d\n", param)

	case scanS(line, "surrender %s", &sparam):
		on := sparam == "on"
		d.bmai3.Params.SurrenderEnabled = on
		d.bmai.Params.SurrenderEnabled = on

	default:
		return false, &ParseError{Line: n, Text: line, Msg: "unrecognized command"}
	}

	return false, nil
}

func (d *Driver) requirePreround(line string, n int) error {
	if d.Game == nil || d.Game.Phase != game.PhasePreround {
		return &ParseError{Line: n, Text: line, Msg: "cannot play games unless it is preround"}
	}
	return nil
}

// scan helpers wrap fmt.Sscanf into boolean switch guards.
func scan(line, format string, p *int) bool {
	n, err := fmt.Sscanf(line, format, p)
	return err == nil && n == 1
}

func scan2(line, format string, p1, p2 *int) bool {
	n, err := fmt.Sscanf(line, format, p1, p2)
	return err == nil && n == 2
}

func scanF(line, format string, f *float64) bool {
	n, err := fmt.Sscanf(line, format, f)
	return err == nil && n == 1
}

func scanS(line, format string, s *string) bool {
	n, err := fmt.Sscanf(line, format, s)
	return err == nil && n == 1
}

func scanSD(line, format string, s *string, p *int) bool {
	n, err := fmt.Sscanf(line, format, s, p)
	return err == nil && n == 2
}

func scanf3(line, format string, p1, p2 *int, f *float64) bool {
	n, err := fmt.Sscanf(line, format, p1, p2, f)
	return err == nil && n == 3
}

func (d *Driver) sendFairReport(res simulation.FairResult) {
	d.send("PlayFairGames: %d games, mode %d, p %f\n", res.Games, res.Mode, res.P)
	for p := 0; p < 2; p++ {
		order := []int{p, 1 - p}
		for _, i := range order {
			w := res.Wins[i][p]
			l := res.Wins[i][1-p]
			g := w + l
			pct := 0.0
			if g > 0 {
				pct = float64(w) * 100 / float64(g)
			}
			d.send("P%d stats: initiative P%d games %d wins %d losses %d percent %.1f%%\n", p, i, g, w, l, pct)
		}
	}
}

// getAction asks player 0's AI for its move in the current phase and
// emits the `action` banner plus the encoded move (spec.md §4.6,
// original BMC_Parser::GetAction — the acting side in a getaction
// request is always player 0).
func (d *Driver) getAction(n int) error {
	if d.Game == nil {
		return &ParseError{Line: n, Msg: "getaction: no game"}
	}
	g := d.Game

	switch g.Phase {
	case game.PhasePreround, game.PhaseReserve,
		game.PhaseInitiativeChance, game.PhaseInitiativeFocus:
	case game.PhaseFight:
		g.PhasePlayer = 0
		g.TargetPlayer = 1
	default:
		return &ParseError{Line: n, Msg: fmt.Sprintf("getaction: unrecognized phase %s", g.Phase)}
	}

	ai := g.AIs[0]
	if ai == nil {
		return &ParseError{Line: n, Msg: "getaction: no AI for player 0"}
	}
	m := ai.ChooseMove(g, 0)

	d.logStats()
	d.send("action\n")

	switch g.Phase {
	case game.PhasePreround:
		d.sendSetSwing(m)
	case game.PhaseReserve:
		d.sendUseReserve(m)
	case game.PhaseInitiativeChance:
		d.sendUseChance(m)
	case game.PhaseInitiativeFocus:
		d.sendUseFocus(m)
	case game.PhaseFight:
		d.sendAttack(m)
	}
	return nil
}

// logStats emits the search-parameter banner and counters through the
// stats logger (stderr), keeping stdout bit-exact to the `action`
// banner plus move lines.
func (d *Driver) logStats() {
	p := d.bmai3.Params
	d.Log.Log(stats.CatAlways, "stats %d/%d-%d/%d/%.2f sims %d",
		p.MaxPly, p.MinSims, p.MaxSims, p.MaxBranch, p.PlyDecay,
		d.Counters.FullSimulations)
}

// sendSetSwing parallels ApplySetSwing: one `swing X N` line per swing
// letter, one `option IDX SIDES` line per option die. Option lines
// carry the chosen side count, not the side index.
func (d *Driver) sendSetSwing(m move.Move) {
	if m.Kind == move.Pass {
		d.send("pass\n")
		return
	}
	for _, sc := range m.SetSwing.Swings {
		d.send("swing %c %d\n", sc.Letter, sc.Value)
	}
	p := d.Game.Players[0]
	for _, oc := range m.SetSwing.Options {
		dd := findDie(p.Dice[:p.NumDice], oc.DieIndex)
		if dd == nil {
			continue
		}
		d.send("option %d %d\n", oc.DieIndex, dd.Sides[oc.Side])
	}
}

func (d *Driver) sendUseReserve(m move.Move) {
	if m.Kind != move.UseReserve || m.UseReserve.Pass {
		d.send("reserve -1\n")
		return
	}
	d.send("reserve %d\n", m.UseReserve.DieIndex)
}

func (d *Driver) sendUseChance(m move.Move) {
	if m.Kind != move.UseChance || len(m.UseChance.DieIndices) == 0 {
		d.send("pass\n")
		return
	}
	for _, idx := range m.UseChance.DieIndices {
		d.send("chance %d\n", idx)
	}
}

func (d *Driver) sendUseFocus(m move.Move) {
	if m.Kind != move.UseFocus || len(m.UseFocus.Choices) == 0 {
		d.send("pass\n")
		return
	}
	p := d.Game.Players[0]
	for _, c := range m.UseFocus.Choices {
		if c.Value <= 0 {
			continue
		}
		dd := &p.Dice[c.DieIndex]
		d.send("focus %d %d\n", dd.OriginalIndex, c.Value)
	}
}

// sendAttack emits the attack kind, attacker original indices, target
// original indices, and any turbo suffix line (spec.md §4.6; original
// BMC_Parser::SendAttack).
func (d *Driver) sendAttack(m move.Move) {
	switch m.Kind {
	case move.Pass:
		d.send("pass\n")
		return
	case move.Surrender:
		d.send("surrender\n")
		return
	}

	d.send("%s\n", m.Attack.AttackKind)
	d.sendIndexLine(m.Attack.Attackers)
	d.sendIndexLine(m.Attack.Targets)

	if len(m.Attack.Turbo) > 0 {
		attacker := d.Game.Players[m.Attack.AttackerPlayer]
		for _, t := range m.Attack.Turbo {
			dd := findDie(attacker.Dice[:attacker.NumDice], t.DieIndex)
			if dd == nil {
				continue
			}
			if t.IsOption {
				d.send("option %d %d\n", t.DieIndex, dd.Sides[t.SideValue])
			} else {
				d.send("swing %c %d\n", dd.SwingType[0].Letter(), t.SideValue)
			}
		}
	}
}

func (d *Driver) sendIndexLine(indices []int) {
	for i, idx := range indices {
		if i > 0 {
			d.send(" ")
		}
		d.send("%d", idx)
	}
	d.send("\n")
}

func findDie(dice []die.Die, origIndex int) *die.Die {
	for i := range dice {
		if dice[i].OriginalIndex == origIndex {
			return &dice[i]
		}
	}
	return nil
}

// Fatal renders a parse error the way the original's BMF_Error path
// does: a single human-readable line (spec.md §7 "User-visible failures
// surface only through the protocol").
func Fatal(err error) string {
	return "ERROR: " + err.Error()
}
