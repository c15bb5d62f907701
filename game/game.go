// Package game implements the rules engine of spec.md §4.3: the phase
// state machine, legal-move generation, attack resolution, and
// initiative/chance/focus sub-phases, layered over the die and player
// packages. Grounded on engine/movegen.go's phase-switch dispatch and
// engine/effects.go's mutation-by-switch shape, generalized to Button
// Men's fixed ruleset per spec.md; exact transition names and ordering
// come from original_source/src/BMC_Game.cpp and bmai.h's BME_PHASE_*
// enum.
package game

import (
	"github.com/pappde/bmai-sub000/move"
	"github.com/pappde/bmai-sub000/player"
	"github.com/pappde/bmai-sub000/rng"
)

// AI is the external collaborator a Game holds one of per side. Search
// (BMAI) and the quick evaluator (QAI) both implement it. ChooseMove
// dispatches internally on g.Phase, matching spec.md §4.6's single
// `getaction` entry point that "invokes the search on the current
// phase".
type AI interface {
	ChooseMove(g *Game, playerIdx int) move.Move
}

// Standing tallies round outcomes from player 0's perspective (win,
// loss, tie), matching original_source's BME_WLT indexing.
type Standing struct {
	Wins  [2]int
	Ties  int
}

// Game is a pair of players plus phase/initiative/turn state (spec.md
// §3 "Game"). The zero Game is not usable; construct with New.
type Game struct {
	Players [2]*player.Player

	Standing Standing

	TargetWins int
	Phase      Phase

	PhasePlayer  int
	TargetPlayer int

	LastAction     move.Kind
	LastActionBy   int
	InitiativeWinner int

	// Simulation is true for games cloned inside the search (spec.md
	// §3 "simulation flag").
	Simulation bool

	AIs [2]AI

	RNG *rng.Stream

	// TurboAccuracy controls how finely expandTurbo spaces alternate
	// turbo side-count choices (spec.md §6 `turbo_accuracy F`, §4.3
	// "Turbo"). Defaults to 1 (every integer side count considered).
	TurboAccuracy float64

	// chanceMover/focusMover track whose turn it is
	// within the chance/focus alternation (spec.md §4.3 "Chance
	// sub-phase"/"Focus sub-phase").
	chanceMover int
	focusMover  int

	// preroundMover tracks which player is currently choosing swing
	// values during PhasePreround (spec.md §4.3/§4.5: each side sets
	// swings independently, the opponent's choice masked in the
	// meantime — see swingMasked).
	preroundMover int

	// reserveMover is the loser choosing a reserve die to promote
	// during PhaseReserve (spec.md §4.3 "Round end").
	reserveMover int

	// swingMasked remembers, per player, whether that player's swing
	// status was temporarily downgraded from ready to not for opponent-evaluation
	// masking (spec.md §4.5 "Simultaneous swing masking"); restored by
	// the search after the recursive call returns.
	swingMasked [2]bool
}

// New constructs a Game with the given target win count (spec.md §6
// `game [W]`, default 3).
func New(targetWins int, r *rng.Stream) *Game {
	if targetWins <= 0 {
		targetWins = 3
	}
	g := &Game{
		Players:       [2]*player.Player{player.New(0), player.New(1)},
		TargetWins:    targetWins,
		Phase:         PhasePreround,
		LastAction:    move.Pass,
		RNG:           r,
		TurboAccuracy: 1,
	}
	return g
}

// SetAI assigns the AI collaborator for one side.
func (g *Game) SetAI(playerIdx int, ai AI) { g.AIs[playerIdx] = ai }

// Opponent returns the other player's index.
func Opponent(playerIdx int) int { return 1 - playerIdx }

// Winner returns the player index with the most round wins, or -1 if
// nobody has reached TargetWins yet.
func (g *Game) Winner() int {
	if g.Standing.Wins[0] >= g.TargetWins {
		return 0
	}
	if g.Standing.Wins[1] >= g.TargetWins {
		return 1
	}
	return -1
}

// IsOver reports whether the game has reached PhaseGameOver.
func (g *Game) IsOver() bool { return g.Phase == PhaseGameOver }

// ActingPlayer returns whichever player is expected to produce the next
// move given the current phase (spec.md §4.3's phase table): the
// preround/chance/focus/reserve movers each track their own turn
// independently of PhasePlayer/TargetPlayer, which only apply once the
// fight phase starts.
func (g *Game) ActingPlayer() int {
	switch g.Phase {
	case PhasePreround:
		return g.preroundMover
	case PhaseInitiativeChance:
		return g.chanceMover
	case PhaseInitiativeFocus:
		return g.focusMover
	case PhaseReserve:
		return g.reserveMover
	default:
		return g.PhasePlayer
	}
}
