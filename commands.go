package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/wricardo/tangosim/game/config"
	"github.com/wricardo/tangosim/game/engine"
	"github.com/wricardo/tangosim/game/match"
	"github.com/wricardo/tangosim/game/simulator"
	"github.com/wricardo/tangosim/game/strategy"
	"github.com/wricardo/tangosim/validate"
)

func rulesetFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "Ruleset name (default ruleset when empty)",
	}
}

func strategiesFlag() *cli.StringSliceFlag {
	return &cli.StringSliceFlag{
		Name:    "strategies",
		Aliases: []string{"s"},
		Usage:   "One strategy per player, or one for every player (" + strings.Join(strategy.Automated(), ", ") + ")",
	}
}

func playCommand() *cli.Command {
	return &cli.Command{
		Name:  "play",
		Usage: "Play one game between automated strategies and print it",
		Flags: []cli.Flag{
			rulesetFlag(),
			strategiesFlag(),
			&cli.Int64Flag{Name: "seed", Usage: "Seed for the strategies (0 = time based)"},
			&cli.BoolFlag{Name: "moves", Usage: "Print every action"},
		},
		Action: runPlay,
	}
}

func simulateCommand() *cli.Command {
	return &cli.Command{
		Name:  "simulate",
		Usage: "Play a batch of games and report win rates and score distributions",
		Flags: []cli.Flag{
			rulesetFlag(),
			strategiesFlag(),
			&cli.IntFlag{Name: "games", Aliases: []string{"n"}, Value: simulator.DefaultGames, Usage: "Number of games"},
			&cli.Int64Flag{Name: "seed", Usage: "Seed for reproducible runs (0 = random)"},
			&cli.IntFlag{Name: "workers", Usage: "Parallel games (0 = one per CPU)"},
			&cli.BoolFlag{Name: "json", Usage: "Print the results as JSON"},
			&cli.BoolFlag{Name: "raw", Usage: "Include every game in the JSON output"},
		},
		Action: runSimulate,
	}
}

func validateCommand() *cli.Command {
	return &cli.Command{
		Name:      "validate",
		Usage:     "Check ruleset files and report every problem",
		ArgsUsage: "[files...]",
		Action:    runValidate,
	}
}

// loadRuleset reads name from the config directory, or the default ruleset
// when name is empty.
func loadRuleset(configDir, name string) (engine.Ruleset, error) {
	manager, err := config.NewManager(configDir)
	if err != nil {
		return engine.Ruleset{}, err
	}
	if name == "" {
		return manager.GetDefault().Clone(), nil
	}
	rules, err := manager.LoadConfig(name)
	if err != nil {
		return engine.Ruleset{}, err
	}
	return *rules, nil
}

// seatStrategies expands the strategy flag to one name per player. No names
// means greedy everywhere and a single name is used for every player.
func seatStrategies(names []string, players int) ([]string, error) {
	switch len(names) {
	case 0:
		names = []string{strategy.NameGreedy}
		fallthrough
	case 1:
		out := make([]string, players)
		for i := range out {
			out[i] = names[0]
		}
		names = out
	case players:
	default:
		return nil, fmt.Errorf("%d strategies for %d players", len(names), players)
	}

	automated := strategy.Automated()
	out := make([]string, len(names))
	for i, name := range names {
		out[i] = strings.ToLower(strings.TrimSpace(name))
		if !slices.Contains(automated, out[i]) {
			return nil, fmt.Errorf("player %d: unknown strategy %q (known: %s)", i, name, strings.Join(automated, ", "))
		}
	}
	return out, nil
}

func runPlay(ctx context.Context, cmd *cli.Command) error {
	rules, err := loadRuleset(cmd.String("config-dir"), cmd.String("config"))
	if err != nil {
		return err
	}
	names, err := seatStrategies(cmd.StringSlice("strategies"), rules.Players)
	if err != nil {
		return err
	}
	seed := cmd.Int64("seed")
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	strategies := make([]match.Strategy, len(names))
	for p, name := range names {
		if strategies[p], err = strategy.ByName(name, p, seed+int64(p)); err != nil {
			return err
		}
	}

	m, err := match.New(rules, strategies, match.WithLogger(logger))
	if err != nil {
		return err
	}
	result, err := m.Play(ctx)
	if err != nil {
		return err
	}

	w := cmd.Root().Writer
	fmt.Fprintf(w, "%s: %s (seed %d)\n", rules.Name, strings.Join(names, " vs "), seed)
	if cmd.Bool("moves") {
		fmt.Fprintln(w, "\nActions:")
		for _, a := range m.History() {
			fmt.Fprintln(w, "  "+describeAction(a))
		}
	}
	printBoard(w, m.State())
	printResult(w, result, names)
	return nil
}

func describeAction(a match.Action) string {
	var b strings.Builder
	fmt.Fprintf(&b, "turn %d (round %d): P%d ", a.Turn, a.Round, a.Player)
	switch a.Type {
	case match.ActionPlace:
		fmt.Fprintf(&b, "placed %s at %v", a.Tile.Pattern, *a.Position)
	case match.ActionMove:
		fmt.Fprintf(&b, "moved %v to %v as %s", *a.Origin, *a.Position, a.Tile.Pattern)
	default:
		b.WriteString("passed")
	}
	if a.ScoreDelta != 0 {
		fmt.Fprintf(&b, " +%d", a.ScoreDelta)
	}
	for _, popped := range a.Popped {
		fmt.Fprintf(&b, ", popped P%d at %v", popped.Tile.Color, popped.Position)
	}
	return b.String()
}

func printBoard(w io.Writer, state *engine.GameState) {
	tiles := state.Tiles()
	fmt.Fprintf(w, "\nBoard (%d tiles):\n", len(tiles))
	for _, pt := range tiles {
		fmt.Fprintf(w, "  %-8v P%d %s\n", pt.Position, pt.Tile.Color, pt.Tile.Pattern)
	}
}

func printResult(w io.Writer, r *match.Result, names []string) {
	fmt.Fprintln(w, "\nScores:")
	for p, score := range r.Scores {
		fmt.Fprintf(w, "  P%d (%s): %d\n", p, names[p], score)
	}

	fmt.Fprintf(w, "\nGAME OVER (%s) after %d rounds, %d turns: ", r.Reason, r.Rounds, r.Turns)
	if r.Winner < 0 {
		fmt.Fprintln(w, "tie")
	} else {
		fmt.Fprintf(w, "player %d (%s) wins\n", r.Winner, names[r.Winner])
	}
}

func runSimulate(ctx context.Context, cmd *cli.Command) error {
	rules, err := loadRuleset(cmd.String("config-dir"), cmd.String("config"))
	if err != nil {
		return err
	}
	names, err := seatStrategies(cmd.StringSlice("strategies"), rules.Players)
	if err != nil {
		return err
	}

	sim, err := simulator.New(simulator.Config{
		Ruleset:    rules,
		Strategies: names,
		Games:      cmd.Int("games"),
		Workers:    cmd.Int("workers"),
		Seed:       cmd.Int64("seed"),
		KeepRaw:    cmd.Bool("raw"),
	}, simulator.WithLogger(logger))
	if err != nil {
		return err
	}

	asJSON := cmd.Bool("json")
	var progress simulator.ProgressCallback
	if !asJSON {
		errw := cmd.Root().ErrWriter
		step := max(sim.Config().Games/10, 1)
		progress = func(p simulator.Progress) {
			if p.Done%step == 0 || p.Done == p.Total {
				fmt.Fprintf(errw, "\rPlayed %d/%d games", p.Done, p.Total)
			}
			if p.Done == p.Total {
				fmt.Fprintln(errw)
			}
		}
	}

	results, err := sim.Run(ctx, progress)
	if err != nil {
		return err
	}

	w := cmd.Root().Writer
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}
	fmt.Fprintf(w, "Run %s (seed %d)\n", results.RunID, results.Seed)
	simulator.WriteReport(w, results, nil)
	return nil
}

func runValidate(ctx context.Context, cmd *cli.Command) error {
	var results []validate.Result
	if cmd.NArg() > 0 {
		for _, path := range cmd.Args().Slice() {
			results = append(results, validate.File(path))
		}
	} else {
		var err error
		if results, err = validate.Dir(cmd.String("config-dir")); err != nil {
			return err
		}
	}

	if !validate.Report(cmd.Root().Writer, results) {
		return errors.New("some rulesets have errors")
	}
	return nil
}
