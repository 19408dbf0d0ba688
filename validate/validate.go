// Package validate checks ruleset files before they are loaded by a server.
//
// For every file it checks:
//   - JSON or YAML structure
//   - Every ruleset constraint at once (players, mode, scoring, rounds, start
//     positions and tile set)
//   - That the starting pools can be built and the first player has an
//     opening placement
//
// Tile sets that are legal but weak are reported as warnings: blank tiles
// that can never score and patterns that are rotations of each other.
package validate

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"

	"github.com/wricardo/tangosim/game/engine"
	"github.com/wricardo/tangosim/game/tile"
)

// Extensions lists the file extensions treated as rulesets.
var Extensions = []string{".json", ".yaml", ".yml"}

// Result captures the outcome of validating a single file.
type Result struct {
	File     string
	Valid    bool
	Problems []error
	Warnings []string
	Info     []string
}

// Err combines every problem into one error, nil for a valid file.
func (r Result) Err() error {
	return multierr.Combine(r.Problems...)
}

func (r *Result) fail(err error) {
	r.Valid = false
	r.Problems = append(r.Problems, err)
}

// File loads and validates a single ruleset file.
func File(path string) Result {
	result := Result{File: filepath.Base(path), Valid: true}

	data, err := os.ReadFile(path)
	if err != nil {
		result.fail(fmt.Errorf("failed to read file: %w", err))
		return result
	}

	rules, err := decode(data, engine.FormatFromPath(path))
	if err != nil {
		result.fail(err)
		return result
	}

	Ruleset(&result, rules)
	return result
}

// Ruleset validates a decoded ruleset into result.
func Ruleset(result *Result, rules engine.Ruleset) {
	rules.ApplyDefaults()
	for _, problem := range engine.RulesetProblems(&rules) {
		result.fail(problem)
	}
	if !result.Valid {
		return
	}

	pools, err := rules.StartingPools()
	if err != nil {
		result.fail(fmt.Errorf("cannot build starting pools: %w", err))
		return
	}
	state, err := engine.New(rules)
	if err != nil {
		result.fail(err)
		return
	}
	openings := state.LegalPlacements(pools[0])
	if len(openings) == 0 {
		result.fail(errors.New("the first player has no opening placement"))
		return
	}

	result.Warnings = append(result.Warnings, tileSetWarnings(pools[0])...)

	result.Info = append(result.Info,
		fmt.Sprintf("✓ Name: %s", rules.Name),
		fmt.Sprintf("✓ Players: %d", rules.Players),
		fmt.Sprintf("✓ Mode: %s, scoring: %s, pop bonus: %d", rules.Mode, rules.Scoring, rules.PopBonus),
		fmt.Sprintf("✓ Tiles per player: %d", len(pools[0])),
		fmt.Sprintf("✓ Start positions: %d", len(rules.StartPositions)),
		fmt.Sprintf("✓ Opening placements: %d", len(openings)),
	)
}

// decode parses a ruleset without applying any validation, so that every
// problem can be listed.
func decode(data []byte, format string) (engine.Ruleset, error) {
	var r engine.Ruleset
	switch format {
	case "yaml":
		if err := yaml.Unmarshal(data, &r); err != nil {
			return r, fmt.Errorf("invalid YAML: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &r); err != nil {
			return r, fmt.Errorf("invalid JSON: %w", err)
		}
	}
	return r, nil
}

func tileSetWarnings(pool []tile.Tile) []string {
	var warnings []string
	for _, t := range pool {
		if t.NumTicks() == 0 {
			warnings = append(warnings, fmt.Sprintf("tile %s has no ticks and can never score", t.Pattern))
		}
	}

	classes := tile.Classes(pool)
	keys := make([]tile.Pattern, 0, len(classes))
	for k := range classes {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, func(a, b tile.Pattern) int { return strings.Compare(a.String(), b.String()) })
	for _, k := range keys {
		if n := len(classes[k]); n > 1 {
			warnings = append(warnings, fmt.Sprintf("%d tiles are rotations of %s", n, k))
		}
	}
	return warnings
}

// Dir validates every ruleset file in dir, sorted by name.
func Dir(dir string) ([]Result, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var results []Result
	for _, e := range entries {
		if e.IsDir() || !slices.Contains(Extensions, strings.ToLower(filepath.Ext(e.Name()))) {
			continue
		}
		results = append(results, File(filepath.Join(dir, e.Name())))
	}
	return results, nil
}

// Report prints a concise report and returns whether every result is valid.
func Report(w io.Writer, results []Result) bool {
	allValid := true
	for _, result := range results {
		fmt.Fprintf(w, "\n%s %s\n", strings.Repeat("=", 20), result.File)

		if result.Valid {
			fmt.Fprintln(w, "✅ VALID")
			for _, info := range result.Info {
				fmt.Fprintln(w, "  "+info)
			}
		} else {
			fmt.Fprintln(w, "❌ INVALID")
			allValid = false
			for _, err := range result.Problems {
				fmt.Fprintln(w, "  ❌ "+err.Error())
			}
		}
		for _, warning := range result.Warnings {
			fmt.Fprintln(w, "  ⚠️  "+warning)
		}
	}

	fmt.Fprintf(w, "\n%s\n", strings.Repeat("=", 40))
	switch {
	case len(results) == 0:
		fmt.Fprintln(w, "No ruleset files found")
	case allValid:
		fmt.Fprintln(w, "✅ All rulesets are valid!")
	default:
		fmt.Fprintln(w, "❌ Some rulesets have errors")
	}
	return allValid
}
