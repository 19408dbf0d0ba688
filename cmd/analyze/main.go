// Command analyze prints quick, human-readable heuristics about the tile sets
// of the built-in rulesets and the ruleset files in a configs directory. It
// summarises tick counts, rotation classes and how often two tiles can touch,
// and highlights tiles that can never score.
//
// Usage:
//
//	go run ./cmd/analyze [configs-dir]
package main

import (
	"fmt"
	"io"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/wricardo/tangosim/game/engine"
	"github.com/wricardo/tangosim/game/simulator"
	"github.com/wricardo/tangosim/game/tile"
)

// Analysis summarises one ruleset's tile set.
type Analysis struct {
	Name    string
	Players int
	Tiles   int
	Ticks   simulator.DistributionStats
	Classes int
	// Blank lists tiles with no ticks.
	Blank []tile.Pattern
	// Compatibility is the share of side pairs that agree when two tiles of
	// the set touch, over every pair of tiles and sides.
	Compatibility float64
	// Scoring is the share of agreeing side pairs where both sides are marked.
	Scoring  float64
	Openings int
}

func main() {
	dir := "configs"
	if len(os.Args) > 1 {
		dir = os.Args[1]
	}

	rulesets, err := loadRulesets(dir)
	if err != nil {
		fmt.Printf("Error loading rulesets: %v\n", err)
		os.Exit(1)
	}

	for _, r := range rulesets {
		fmt.Printf("\n=== Analyzing %s ===\n", r.Name)
		a, err := analyzeRuleset(r)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			continue
		}
		printAnalysis(os.Stdout, a)
	}
}

// loadRulesets returns the built-ins followed by the files in dir. A file
// named like a built-in replaces it.
func loadRulesets(dir string) ([]engine.Ruleset, error) {
	byName := engine.BuiltinRulesets()

	entries, err := os.ReadDir(dir)
	if err != nil && !os.IsNotExist(err) {
		return nil, err
	}
	for _, e := range entries {
		ext := strings.ToLower(filepath.Ext(e.Name()))
		if e.IsDir() || (ext != ".json" && ext != ".yaml" && ext != ".yml") {
			continue
		}
		r, err := engine.LoadRuleset(filepath.Join(dir, e.Name()))
		if err != nil {
			return nil, err
		}
		byName[strings.TrimSuffix(e.Name(), filepath.Ext(e.Name()))] = *r
	}

	out := make([]engine.Ruleset, 0, len(byName))
	for _, name := range slices.Sorted(maps.Keys(byName)) {
		out = append(out, byName[name])
	}
	return out, nil
}

func analyzeRuleset(r engine.Ruleset) (Analysis, error) {
	pools, err := r.StartingPools()
	if err != nil {
		return Analysis{}, err
	}
	pool := pools[0]

	a := Analysis{
		Name:    r.Name,
		Players: r.Players,
		Tiles:   len(pool),
		Classes: len(tile.Classes(pool)),
	}

	ticks := make([]float64, len(pool))
	for i, t := range pool {
		ticks[i] = float64(t.NumTicks())
		if t.NumTicks() == 0 {
			a.Blank = append(a.Blank, t.Pattern)
		}
	}
	a.Ticks = simulator.FromValues(ticks)
	a.Compatibility, a.Scoring = edgeShares(pool)

	state, err := engine.New(r)
	if err != nil {
		return Analysis{}, err
	}
	a.Openings = len(state.LegalPlacements(pool))
	return a, nil
}

// edgeShares compares every side of every tile with every side of every other
// tile in the set.
func edgeShares(pool []tile.Tile) (compatible, scoring float64) {
	var pairs, agree, marked int
	for i, a := range pool {
		for j, b := range pool {
			if i == j {
				continue
			}
			for _, sa := range a.Pattern {
				for _, sb := range b.Pattern {
					pairs++
					if sa == sb {
						agree++
						if sa {
							marked++
						}
					}
				}
			}
		}
	}
	if pairs == 0 {
		return 0, 0
	}
	compatible = float64(agree) / float64(pairs)
	if agree > 0 {
		scoring = float64(marked) / float64(agree)
	}
	return compatible, scoring
}

func printAnalysis(w io.Writer, a Analysis) {
	fmt.Fprintf(w, "Players: %d\n", a.Players)
	fmt.Fprintf(w, "Tiles per player: %d (%d rotation classes)\n", a.Tiles, a.Classes)
	fmt.Fprintf(w, "Ticks: mean %.2f | std %.2f | min %.0f | max %.0f\n", a.Ticks.Mean, a.Ticks.Std, a.Ticks.Min, a.Ticks.Max)
	fmt.Fprintf(w, "Edge compatibility: %.1f%% (%.1f%% of those score)\n", a.Compatibility*100, a.Scoring*100)
	fmt.Fprintf(w, "Opening placements: %d\n", a.Openings)

	if len(a.Blank) > 0 {
		fmt.Fprintf(w, "⚠️  WARNING: %d tiles have no ticks and can never score\n", len(a.Blank))
	} else {
		fmt.Fprintf(w, "✅ Every tile can score\n")
	}
	if a.Classes < a.Tiles {
		fmt.Fprintf(w, "⚠️  WARNING: %d tiles repeat another tile's rotation class\n", a.Tiles-a.Classes)
	}
}
