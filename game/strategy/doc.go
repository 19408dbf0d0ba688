// Package strategy provides ready-made players for match.
//
// Available strategies:
//   - random: uniform over every legal option
//   - greedy: highest immediate score, seeded tie-break
//   - lookahead: immediate score minus the next player's best reply
//   - scripted: replays queued decisions, used for human seats
//
// Every automated strategy also implements match.Relocator, so in the
// advanced mode it weighs relocations against placements.
//
// Usage:
//
//	s, err := strategy.ByName("greedy", 0, 42)
//	if err != nil {
//		log.Fatal(err)
//	}
package strategy
