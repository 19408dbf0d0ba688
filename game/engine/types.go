package engine

import (
	"github.com/wricardo/tangosim/game/hex"
	"github.com/wricardo/tangosim/game/tile"
)

// Mode selects the turn actions a ruleset allows.
type Mode string

const (
	// ModeSimple allows placing tiles from the pool only.
	ModeSimple Mode = "simple"
	// ModeAdvanced also allows relocating an own tile already on the board.
	ModeAdvanced Mode = "advanced"
)

// ScoringRule selects which matched edges earn points.
type ScoringRule string

const (
	// ScoreSameColor counts marked-marked edges shared with a tile of the placing colour.
	ScoreSameColor ScoringRule = "same_color"
	// ScoreAnyColor counts every marked-marked edge.
	ScoreAnyColor ScoringRule = "any_color"
)

const (
	TileSetStandard = "standard"
	TileSetCustom   = "custom"

	// Validation constants
	MinPlayers       = 2
	MaxPlayers       = 6
	DefaultMaxRounds = 200
	MaxRoundsLimit   = 10000
	MaxPopBonus      = 100
	MaxCustomTiles   = 64
)

// Ruleset holds the tunable parameters of a game.
type Ruleset struct {
	Name           string         `json:"name" yaml:"name"`
	Description    string         `json:"description" yaml:"description"`
	Players        int            `json:"players" yaml:"players"`
	Mode           Mode           `json:"mode" yaml:"mode"`
	Scoring        ScoringRule    `json:"scoring" yaml:"scoring"`
	PopBonus       int            `json:"pop_bonus" yaml:"pop_bonus"`
	MaxRounds      int            `json:"max_rounds" yaml:"max_rounds"`
	StartPositions []hex.Position `json:"start_positions,omitempty" yaml:"start_positions,omitempty"`
	TileSet        string         `json:"tile_set" yaml:"tile_set"`
	CustomPatterns []string       `json:"custom_patterns,omitempty" yaml:"custom_patterns,omitempty"`
}

// PlacedTile is a tile at a board position.
type PlacedTile struct {
	Position hex.Position `json:"position"`
	Tile     tile.Tile    `json:"tile"`
}

// Snapshot is the serialisable view of a GameState.
type Snapshot struct {
	Tiles      []PlacedTile     `json:"tiles"`
	Scores     []int            `json:"scores"`
	TileCounts []int            `json:"tile_counts"`
	Available  []hex.Position   `json:"available"`
	Enclosed   [][]hex.Position `json:"enclosed,omitempty"`
	Mode       Mode             `json:"mode"`
}

// Placement is a candidate placement of a pool tile.
type Placement struct {
	Tile     tile.Tile    `json:"tile"`
	Position hex.Position `json:"position"`
	Score    int          `json:"score"`
}

// Relocation is a candidate move of a tile already on the board.
type Relocation struct {
	Tile  tile.Tile    `json:"tile"`
	From  hex.Position `json:"from"`
	To    hex.Position `json:"to"`
	Score int          `json:"score"`
}
