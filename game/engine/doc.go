// Package engine provides the authoritative rules of the tangosim tile game.
//
// The engine package implements:
//   - The immutable board (GameState) keyed by axial position
//   - Placement legality and adjacency scoring
//   - Pop detection and removal of surrounded tiles
//   - Enclosed-region detection by flood fill
//   - The advanced variant's tile relocation
//   - Ruleset loading and validation (JSON or YAML)
//
// Core Types:
//
// GameState is a persistent value: PlaceTile, Pop and MoveTile return a new
// state and leave the receiver untouched, so strategies can keep any number
// of past states for look-ahead. The set of available positions is updated
// from the neighbourhood of each change rather than by rescanning the board.
// Ruleset holds the tunable parameters: player count, mode, scoring rule,
// pop bonus, round limit, start positions and tile set.
//
// Usage:
//
//	state, err := engine.New(engine.SimpleRuleset())
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	pieces := tile.StandardSet(0)
//	if delta, ok := state.ScorePotentialMove(pieces[0], hex.Origin); ok {
//		state, err = state.PlaceTile(pieces[0], hex.Origin, 0)
//		fmt.Println(delta, state.Scores())
//	}
//
// Rules:
//
// Two touching tiles must agree on their shared edge: both sides coloured or
// both plain. Every shared edge that is coloured on both sides scores one
// point for the placing player (only against tiles of the same colour under
// the default same_color rule). A position whose six neighbours are all
// occupied cannot be placed on. A tile whose six neighbours are all occupied
// pops: it leaves the board and returns to its owner's pool.
package engine
