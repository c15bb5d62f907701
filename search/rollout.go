package search

import (
	"math"

	"github.com/pappde/bmai-sub000/game"
	"github.com/pappde/bmai-sub000/move"
	"github.com/pappde/bmai-sub000/stats"
)

// Run chooses among g's legal moves for playerIdx by rollout, per
// spec.md §4.5. level is 1 for a fresh top-level call and increases
// with each recursive simulation.
func (a *AI) Run(g *game.Game, playerIdx int, level int) Result {
	moves := g.LegalMoves()
	if len(moves) == 0 {
		return Result{Move: move.NewPass()}
	}
	if len(moves) == 1 {
		return Result{Move: moves[0], WinProbability: 0.5}
	}

	p := a.Params
	if g.Phase == game.PhasePreround && p.MinSims > 0 {
		moves = sampleSwingMoves(g, moves, p.MaxBranch/p.MinSims)
	}
	decay := math.Pow(p.PlyDecay, float64(level-1))
	m := float64(len(moves))
	sims := clampF(float64(p.MaxBranch)*decay/m, math.Ceil(float64(p.MinSims)*decay), math.Ceil(float64(p.MaxSims)*decay))
	simBudget := int(sims)
	if simBudget < 1 {
		simBudget = 1
	}

	scores := make([]float64, len(moves))
	alive := make([]bool, len(moves))
	for i := range alive {
		alive[i] = true
	}
	aliveCount := len(moves)

	batch := p.SimsPerCheck
	if batch <= 0 || p.NoCull {
		batch = simBudget
	}

	run := 0
	for run < simBudget {
		step := batch
		if run+step > simBudget {
			step = simBudget - run
		}
		for i, mv := range moves {
			if !alive[i] {
				continue
			}
			for k := 0; k < step; k++ {
				scores[i] += a.simulateMove(g, playerIdx, level, mv)
			}
		}
		run += step

		if !p.NoCull && aliveCount > 1 {
			aliveCount = a.cullPass(moves, scores, alive, run, simBudget)
		}
		if aliveCount <= 1 {
			run = simBudget
			break
		}
	}

	bestIdx := -1
	bestScore := -1.0
	for i := range moves {
		if !alive[i] {
			continue
		}
		if bestIdx == -1 || scores[i] > bestScore {
			bestIdx = i
			bestScore = scores[i]
		}
	}
	if bestIdx == -1 {
		bestIdx = 0
		bestScore = scores[0]
	}

	winProb := 0.0
	if run > 0 {
		winProb = bestScore / float64(run)
	}

	if a.Counters != nil {
		a.Counters.OnPlyAction(level, len(moves), run)
	}
	if a.Log != nil && level <= a.DebugPly {
		a.Log.Log(stats.CatBMAI, "ply %d: %d moves, %d sims, best %s score %.2f",
			level, len(moves), run, moves[bestIdx].Kind, bestScore)
	}

	chosen := moves[bestIdx]
	if p.SurrenderEnabled && bestScore == 0 {
		chosen = move.NewSurrender()
	}

	return Result{Move: chosen, Score: bestScore, SimsRun: run, WinProbability: winProb}
}

// cullPass implements spec.md §4.5's cull pass, returning the number of
// surviving moves.
func (a *AI) cullPass(moves []move.Move, scores []float64, alive []bool, run, simBudget int) int {
	p := a.Params
	fracSimsRun := float64(run) / float64(simBudget)

	bestScore := -1.0
	for i := range moves {
		if alive[i] && scores[i] > bestScore {
			bestScore = scores[i]
		}
	}

	bestThreshold := p.MinCullThreshold + fracSimsRun*(p.MaxCullThreshold-p.MinCullThreshold)
	deltaPoints := (1 - fracSimsRun) * float64(p.SimsPerCheck) * 0.5
	if bestScore > 1 && deltaPoints > bestScore {
		deltaPoints = bestScore
	}

	remaining := float64(simBudget - run)
	survivors := 0
	for i := range moves {
		if !alive[i] {
			continue
		}
		if scores[i] == bestScore {
			survivors++
			continue
		}
		maxPossible := scores[i] + remaining
		if maxPossible < bestScore {
			alive[i] = false
			continue
		}
		if scores[i] < bestThreshold*bestScore {
			threshold := deltaPoints
			if isTripMove(moves[i]) {
				threshold /= 2
			}
			if bestScore-scores[i] > threshold {
				alive[i] = false
				continue
			}
		}
		survivors++
	}
	return survivors
}

func isTripMove(m move.Move) bool {
	return m.Kind == move.Attack && m.Attack.AttackKind == move.AttackTrip
}

// simulateMove clones g, applies m on playerIdx's behalf, and returns a
// score in [0, 1] from playerIdx's point of view: the round played to
// completion with QAI once level reaches max_ply, or a recursive search
// call otherwise (spec.md §4.5 "Simulation substitution").
func (a *AI) simulateMove(g *game.Game, playerIdx int, level int, m move.Move) float64 {
	clone := g.Clone()
	masked := clone.MaskOpponentSwing(playerIdx, level)
	clone.ApplyMove(m.Clone())
	score := a.evaluate(clone, playerIdx, level)
	if masked {
		clone.UnmaskOpponentSwing(playerIdx)
	}
	return score
}

// evaluate plays a cloned, mid-round game out to the next round
// boundary, recursing or bottoming out at QAI per the level vs max_ply
// comparison (spec.md §4.5 "Simulation substitution"), then scores the
// just-completed round from playerIdx's point of view.
func (a *AI) evaluate(g *game.Game, playerIdx int, level int) float64 {
	opp := game.Opponent(playerIdx)
	startMine, startTheirs := g.Standing.Wins[playerIdx], g.Standing.Wins[opp]

	atLeaf := level >= a.Params.MaxPly
	for !g.IsOver() && g.Standing.Wins[playerIdx] == startMine && g.Standing.Wins[opp] == startTheirs {
		mover := g.ActingPlayer()
		var mv move.Move
		if atLeaf {
			mv = a.QAI.ChooseMove(g, mover)
		} else {
			mv = a.Run(g, mover, level+1).Move
		}
		g.ApplyMove(mv)
	}
	if atLeaf && a.Counters != nil {
		a.Counters.OnFullSimulation()
	}

	switch {
	case g.Standing.Wins[playerIdx] > startMine:
		return 1
	case g.Standing.Wins[opp] > startTheirs:
		return 0
	default:
		return 0.5
	}
}

func clampF(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
