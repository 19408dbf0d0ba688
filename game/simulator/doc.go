// Package simulator runs batches of automated games and collects statistics.
//
// Every game gets fresh strategies seeded from the run seed and the game
// index, and games run in parallel on an errgroup bounded by Workers. The
// aggregate reports wins, ties, score and round distributions, the winner's
// score gap over decisive games, end reasons, and per-player neighbour
// affinity (how strongly a player's tiles cluster with their own colour).
//
// Usage:
//
//	sim, err := simulator.New(simulator.Config{
//		Ruleset:    engine.SimpleRuleset(),
//		Strategies: []string{"greedy", "random"},
//		Games:      500,
//		Seed:       42,
//	}, simulator.WithLogger(logger))
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	results, err := sim.Run(ctx, func(p simulator.Progress) {
//		fmt.Printf("\r%d/%d", p.Done, p.Total)
//	})
//	simulator.WriteReport(os.Stdout, results, nil)
package simulator
