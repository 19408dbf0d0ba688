package engine

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/wricardo/tangosim/game/hex"
	"github.com/wricardo/tangosim/game/tile"
	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"
)

// ValidateRuleset validates a ruleset and reports every problem at once.
// The returned error wraps ErrInvalidRules.
func ValidateRuleset(r *Ruleset) error {
	if err := validateRuleset(r); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidRules, err)
	}
	return nil
}

// RulesetProblems lists the individual validation failures of a ruleset.
func RulesetProblems(r *Ruleset) []error {
	return multierr.Errors(validateRuleset(r))
}

func validateRuleset(r *Ruleset) error {
	if r == nil {
		return errors.New("ruleset is nil")
	}

	var errs error
	if r.Name == "" {
		errs = multierr.Append(errs, errors.New("name is required"))
	}

	if r.Players < MinPlayers || r.Players > MaxPlayers {
		errs = multierr.Append(errs, fmt.Errorf("players must be between %d and %d, got %d", MinPlayers, MaxPlayers, r.Players))
	}

	switch r.Mode {
	case ModeSimple, ModeAdvanced:
	default:
		errs = multierr.Append(errs, fmt.Errorf("mode must be %q or %q, got %q", ModeSimple, ModeAdvanced, r.Mode))
	}

	switch r.Scoring {
	case ScoreSameColor, ScoreAnyColor:
	default:
		errs = multierr.Append(errs, fmt.Errorf("scoring must be %q or %q, got %q", ScoreSameColor, ScoreAnyColor, r.Scoring))
	}

	if r.PopBonus < 0 || r.PopBonus > MaxPopBonus {
		errs = multierr.Append(errs, fmt.Errorf("pop_bonus must be between 0 and %d, got %d", MaxPopBonus, r.PopBonus))
	}

	if r.MaxRounds < 1 || r.MaxRounds > MaxRoundsLimit {
		errs = multierr.Append(errs, fmt.Errorf("max_rounds must be between 1 and %d, got %d", MaxRoundsLimit, r.MaxRounds))
	}

	if len(r.StartPositions) == 0 {
		errs = multierr.Append(errs, errors.New("at least one start position is required"))
	}
	seen := make(map[hex.Position]bool, len(r.StartPositions))
	for _, p := range r.StartPositions {
		if seen[p] {
			errs = multierr.Append(errs, fmt.Errorf("duplicate start position %v", p))
		}
		seen[p] = true
	}

	switch r.TileSet {
	case TileSetStandard:
	case TileSetCustom:
		if len(r.CustomPatterns) == 0 || len(r.CustomPatterns) > MaxCustomTiles {
			errs = multierr.Append(errs, fmt.Errorf("custom tile set needs between 1 and %d patterns, got %d", MaxCustomTiles, len(r.CustomPatterns)))
		}
		for i, s := range r.CustomPatterns {
			if _, err := tile.ParsePattern(s); err != nil {
				errs = multierr.Append(errs, fmt.Errorf("custom_patterns[%d]: %w", i, err))
			}
		}
	default:
		errs = multierr.Append(errs, fmt.Errorf("tile_set must be %q or %q, got %q", TileSetStandard, TileSetCustom, r.TileSet))
	}

	return errs
}

// ApplyDefaults fills unset fields with their default values.
func (r *Ruleset) ApplyDefaults() {
	if r.Players == 0 {
		r.Players = MinPlayers
	}
	if r.Mode == "" {
		r.Mode = ModeSimple
	}
	if r.Scoring == "" {
		r.Scoring = ScoreSameColor
	}
	if r.MaxRounds == 0 {
		r.MaxRounds = DefaultMaxRounds
	}
	if r.TileSet == "" {
		r.TileSet = TileSetStandard
	}
	if len(r.StartPositions) == 0 {
		r.StartPositions = []hex.Position{hex.Origin}
	}
}

// Clone returns a deep copy of the ruleset.
func (r Ruleset) Clone() Ruleset {
	r.StartPositions = slices.Clone(r.StartPositions)
	r.CustomPatterns = slices.Clone(r.CustomPatterns)
	return r
}

// Patterns returns the tile configurations each player starts with.
func (r Ruleset) Patterns() ([]tile.Pattern, error) {
	if r.TileSet != TileSetCustom {
		return tile.StandardPatterns(), nil
	}

	out := make([]tile.Pattern, 0, len(r.CustomPatterns))
	for _, s := range r.CustomPatterns {
		p, err := tile.ParsePattern(s)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

// StartingPools builds a fresh pool of tiles for every player.
func (r Ruleset) StartingPools() ([][]tile.Tile, error) {
	patterns, err := r.Patterns()
	if err != nil {
		return nil, err
	}

	pools := make([][]tile.Tile, r.Players)
	for player := range pools {
		pools[player] = tile.SetFromPatterns(patterns, player)
	}
	return pools, nil
}

// DecodeRuleset parses a ruleset in "json" or "yaml" format, applies defaults and validates it.
func DecodeRuleset(data []byte, format string) (*Ruleset, error) {
	var r Ruleset
	switch strings.ToLower(format) {
	case "yaml", "yml":
		if err := yaml.Unmarshal(data, &r); err != nil {
			return nil, fmt.Errorf("failed to parse yaml ruleset: %w", err)
		}
	case "json", "":
		if err := json.Unmarshal(data, &r); err != nil {
			return nil, fmt.Errorf("failed to parse json ruleset: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported ruleset format %q", format)
	}

	r.ApplyDefaults()
	if err := ValidateRuleset(&r); err != nil {
		return nil, err
	}
	return &r, nil
}

// EncodeRuleset renders a ruleset in "json" or "yaml" format.
func EncodeRuleset(r *Ruleset, format string) ([]byte, error) {
	switch strings.ToLower(format) {
	case "yaml", "yml":
		return yaml.Marshal(r)
	case "json", "":
		return json.MarshalIndent(r, "", "  ")
	default:
		return nil, fmt.Errorf("unsupported ruleset format %q", format)
	}
}

// FormatFromPath infers the ruleset format from a file extension.
func FormatFromPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return "yaml"
	default:
		return "json"
	}
}

// LoadRuleset loads a ruleset from a JSON or YAML file.
func LoadRuleset(path string) (*Ruleset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	r, err := DecodeRuleset(data, FormatFromPath(path))
	if err != nil {
		return nil, fmt.Errorf("ruleset %s: %w", filepath.Base(path), err)
	}
	return r, nil
}

// SimpleRuleset is the placement-only game for two players.
func SimpleRuleset() Ruleset {
	r := Ruleset{
		Name:        "simple",
		Description: "Two players place their thirteen tiles; matching same-colour edges score",
	}
	r.ApplyDefaults()
	return r
}

// AdvancedRuleset lets players relocate their own tiles up to their tick count.
func AdvancedRuleset() Ruleset {
	r := Ruleset{
		Name:        "advanced",
		Description: "Like simple, but a turn may move an own tile up to as many cells as it has ticks",
		Mode:        ModeAdvanced,
	}
	r.ApplyDefaults()
	return r
}

// DefaultRuleset returns the ruleset used when none is named.
func DefaultRuleset() Ruleset {
	return SimpleRuleset()
}

// BuiltinRulesets returns the rulesets that exist without any config files.
func BuiltinRulesets() map[string]Ruleset {
	simple := SimpleRuleset()
	advanced := AdvancedRuleset()
	return map[string]Ruleset{
		simple.Name:   simple,
		advanced.Name: advanced,
	}
}
