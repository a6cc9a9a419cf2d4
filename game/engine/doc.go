// Package engine provides the core rules for the Chain Reaction grid game.
//
// The engine package implements the game mechanics including:
//   - The fixed 5x5 board with position-based cell capacities
//   - Move validation and turn alternation
//   - Round-based chain-reaction resolution
//   - Score derivation and the elimination win condition
//
// Core Types:
//
// GameState is an immutable-snapshot value describing a full game: board,
// turn, move count and terminal status. The pure functions NewGame and
// ApplyMove transform one snapshot into the next. The Engine interface,
// implemented by GameEngine, wraps a snapshot with move history bookkeeping
// for callers that want a stateful handle.
//
// Usage:
//
//	game := engine.NewGameEngine()
//
//	state, err := game.Apply(2, 2, engine.PlayerA)
//	if engine.IsRejection(err) {
//		// illegal placement, nothing changed
//	}
//
// Game Rules:
//
// Two players alternate adding one unit to an empty or self-owned cell. A
// cell reaching its capacity (its number of orthogonal neighbors) explodes:
// it empties and pushes one unit into each neighbor, converting the neighbor
// to the mover's color. Explosions cascade until the board is stable. A
// player wins by eliminating every opposing unit once both sides have moved.
package engine
