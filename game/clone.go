package game

// Clone deep-copies the Game, explicitly setting Simulation = true on
// the copy and shallow-copying the AI references (spec.md §9 "Game
// cloning", §3 "Ownership and lifecycle": "Cloning a Game deep-copies
// everything except the AI pointers"). Grounded on engine/types.go
// GameState.Clone's field-by-field deep-copy shape, extended to two
// nested owned Players.
func (g *Game) Clone() *Game {
	clone := &Game{
		Standing:         g.Standing,
		TargetWins:       g.TargetWins,
		Phase:            g.Phase,
		PhasePlayer:      g.PhasePlayer,
		TargetPlayer:     g.TargetPlayer,
		LastAction:       g.LastAction,
		LastActionBy:     g.LastActionBy,
		InitiativeWinner: g.InitiativeWinner,
		Simulation:       true,
		AIs:              g.AIs,
		RNG:              g.RNG,
		TurboAccuracy:    g.TurboAccuracy,
		chanceMover:      g.chanceMover,
		focusMover:       g.focusMover,
		preroundMover:    g.preroundMover,
		reserveMover:     g.reserveMover,
		swingMasked:      g.swingMasked,
	}
	for i := range g.Players {
		clone.Players[i] = g.Players[i].Clone()
	}
	return clone
}
