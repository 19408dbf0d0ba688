// Package match orchestrates a game between pluggable strategies.
//
// The match package implements:
//   - The turn state machine (Initializing, PlayerTurn, PopResolution,
//     ScoreUpdate, GameOver) with validated transitions
//   - Per-player tile pools, including tiles returned by pops
//   - The Strategy contract and the optional Relocator extension
//   - Action history and the final Result
//
// A turn asks the active player's strategy for a decision, validates it
// against the pool and the board, applies it, pops every satisfied tile
// around the changed position (asking the strategy to choose when several
// are eligible) and commits the new board. A player with no legal option
// passes automatically.
//
// The game ends when the player to act has an empty pool and shares the top
// score (exhausted), when every player passed in a row (stalemate), or when
// the ruleset's round limit is reached (round_limit).
//
// Usage:
//
//	m, err := match.New(engine.SimpleRuleset(), []match.Strategy{
//		strategy.NewGreedy(0, 1),
//		strategy.NewRandom(1, 2),
//	}, match.WithLogger(logger))
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	result, err := m.Play(ctx)
//	if err != nil {
//		log.Fatal(err) // a strategy made an invalid move
//	}
//	fmt.Println(result.Scores, result.Winner, result.Reason)
//
// A strategy error is fatal for a simulation but leaves the Match exactly
// as it was, so interactive callers can ask again.
package match
