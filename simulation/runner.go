// Package simulation is the self-play harness behind the `playgame`,
// `compare`, and `playfair` protocol commands (spec.md §2, §6).
// Grounded on the teacher's simulation/runner.go RunBatch/RunSingleGame
// serial loop — the goroutine-pool variant in the same teacher file is
// deliberately not adopted, since spec.md §5 keeps the core
// single-threaded with one shared RNG stream.
package simulation

import (
	"github.com/pappde/bmai-sub000/game"
	"github.com/pappde/bmai-sub000/qai"
	"github.com/pappde/bmai-sub000/search"
)

// BatchResult aggregates a batch of self-played games.
type BatchResult struct {
	Games int
	Wins  [2]int
}

// RunSingleGame clones the template position and plays it to
// completion with the template's assigned AIs, returning the winner
// (ties in final standings go to player 1, matching the original
// PlayGame tally's else-branch).
func RunSingleGame(template *game.Game) int {
	g := template.Clone()
	g.PlayGame()
	if g.Standing.Wins[0] > g.Standing.Wins[1] {
		return 0
	}
	return 1
}

// RunBatch plays n full games from the template position and tallies
// wins (spec.md §6 `playgame N` / `compare N` — compare differs only in
// which AIs the `ai P T` command assigned beforehand).
func RunBatch(template *game.Game, n int) BatchResult {
	res := BatchResult{Games: n}
	for i := 0; i < n; i++ {
		res.Wins[RunSingleGame(template)]++
	}
	return res
}

// FairResult tallies playfair outcomes indexed by [initiative winner]
// [game winner], the split the fairness harness reports (original
// BMC_Parser::PlayFairGames).
type FairResult struct {
	Games int
	Mode  int
	P     float64
	Wins  [2][2]int
}

// RunFair plays n games with both sides driven by the mode's AI
// (spec.md §6 `playfair N MODE P`):
//
//	mode 0 — random mover
//	mode 1 — one-ply maximizer
//	mode 2 — plain BMAI with MaximizeOrRandom(P) as its leaf oracle
//	mode 3 — plain BMAI with the QAI as its leaf oracle
//
// maxPly carries the driver's current `ply` setting into modes 2-3.
func RunFair(template *game.Game, n, mode int, p float64, maxPly int) FairResult {
	res := FairResult{Games: n, Mode: mode, P: p}

	var ai game.AI
	switch mode {
	case 0:
		ai = Random{}
	case 1:
		ai = Maximize{}
	case 2:
		params := search.DefaultParams()
		params.MaxPly = maxPly
		s := search.NewPlain(params)
		s.QAI = MaximizeOrRandom{P: p}
		ai = s
	default:
		params := search.DefaultParams()
		params.MaxPly = maxPly
		s := search.NewPlain(params)
		s.QAI = qai.New(0)
		ai = s
	}

	for i := 0; i < n; i++ {
		g := template.Clone()
		g.SetAI(0, ai)
		g.SetAI(1, ai)
		g.PlayGame()
		winner := 1
		if g.Standing.Wins[0] > g.Standing.Wins[1] {
			winner = 0
		}
		res.Wins[g.InitiativeWinner][winner]++
	}
	return res
}
