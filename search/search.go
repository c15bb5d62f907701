// Package search implements the BMAI rollout search of spec.md §4.5:
// recursive ply expansion with per-ply simulation budgeting, decay,
// and progressive move culling against the running best score.
// Grounded on original_source/src/BMC_BMAI3.cpp ("GetAttackAction",
// "CullMoves") for the culling algorithm spec.md specifies in full,
// and on mcts/search.go / mcts/node.go for the Go shape of a tree
// search over a cloned game state — BMAI is not a persistent tree
// (it clones per rollout and discards), so mcts.Node's parent-chain
// bookkeeping has no analogue here; only the Search/expand/simulate
// function shape is adapted.
package search

import (
	"github.com/pappde/bmai-sub000/game"
	"github.com/pappde/bmai-sub000/move"
	"github.com/pappde/bmai-sub000/qai"
	"github.com/pappde/bmai-sub000/stats"
)

// Params holds the runtime-tunable knobs spec.md §4.5 lists, all
// settable via the text protocol (`max_sims`, `ply`, `maxbranch`, ...).
type Params struct {
	MaxPly           int
	MaxBranch        int
	MaxSims          int
	MinSims          int
	SimsPerCheck     int
	PlyDecay         float64
	MinCullThreshold float64
	MaxCullThreshold float64

	// NoCull disables the batch/cull loop entirely, fixed-sims per
	// move — this is tier 0, BMC_BMAI::GetAttackAction's behavior
	// (spec.md's SUPPLEMENTED FEATURES "Two AI tiers, not one").
	NoCull bool

	SurrenderEnabled bool
}

// DefaultParams mirrors the original's documented defaults (max_sims
// 500, min_sims 10, maxbranch 5000): moderate ply/branch caps that
// keep a top-level getaction call fast.
func DefaultParams() Params {
	return Params{
		MaxPly:           2,
		MaxBranch:        5000,
		MaxSims:          500,
		MinSims:          10,
		SimsPerCheck:     100,
		PlyDecay:         0.5,
		MinCullThreshold: 0.25,
		MaxCullThreshold: 0.90,
		SurrenderEnabled: false,
	}
}

// AI is the BMAI3 culling search. It implements game.AI. QAI is the
// leaf oracle substituted once ply depth is exhausted — normally a
// qai.AI, but playfair's fairness modes swap in other one-ply movers
// (spec.md §6 `playfair N MODE P`).
type AI struct {
	Params Params
	QAI    game.AI

	// LastWinProbability holds the last top-level call's
	// winning-probability estimate for its own chosen move (spec.md's
	// SUPPLEMENTED FEATURES "m_last_probability_win"). The protocol and
	// simulation packages do not read it.
	LastWinProbability float64

	// Counters, when non-nil, accumulate ply-level search statistics
	// for the driver's stats banner (spec.md SUPPLEMENTED FEATURES
	// "Stats counters").
	Counters *stats.Counters

	// Log and DebugPly gate per-ply decision logging: levels up to
	// DebugPly emit a BMAI-category line per completed ply (spec.md §6
	// `debugply N`).
	Log      *stats.Logger
	DebugPly int
}

// New constructs the culling BMAI3 search.
func New(p Params) *AI {
	return &AI{Params: p, QAI: qai.New(0)}
}

// NewPlain constructs tier 0: BMC_BMAI's fixed-sims, no-cull search
// (spec.md SUPPLEMENTED FEATURES "Two AI tiers, not one").
func NewPlain(p Params) *AI {
	p.NoCull = true
	return &AI{Params: p, QAI: qai.New(0)}
}

// ChooseMove is the single entry point the protocol driver's getaction
// command invokes (spec.md §4.6). The top-level call runs at level 1.
func (a *AI) ChooseMove(g *game.Game, playerIdx int) move.Move {
	res := a.Run(g, playerIdx, 1)
	a.LastWinProbability = res.WinProbability
	return res.Move
}

// Result is one move candidate's outcome after rollouts (spec.md
// SUPPLEMENTED FEATURES).
type Result struct {
	Move            move.Move
	Score           float64
	SimsRun         int
	WinProbability  float64
}
