package service

import (
	"time"

	"github.com/wricardo/tangosim/game/engine"
	"github.com/wricardo/tangosim/game/hex"
	"github.com/wricardo/tangosim/game/match"
	"github.com/wricardo/tangosim/game/tile"
)

// SeatHuman marks a seat played through the API instead of a strategy.
const SeatHuman = "human"

// SessionInfo provides information about a game session
type SessionInfo struct {
	ID             string          `json:"id"`
	ConfigName     string          `json:"config_name"`
	Seats          []string        `json:"seats"`
	Seed           int64           `json:"seed"`
	CreatedAt      time.Time       `json:"created_at"`
	LastAccessedAt time.Time       `json:"last_accessed_at"`
	Ruleset        *engine.Ruleset `json:"ruleset"`
	State          *GameView       `json:"state"`
}

// CreateSessionRequest describes a new interactive match.
type CreateSessionRequest struct {
	ConfigName string   `json:"config_name"`
	Seats      []string `json:"seats"` // "human" or a strategy name, one per player
	Seed       int64    `json:"seed"`
}

// GameView is the serialisable state of a session's match.
type GameView struct {
	SessionID     string          `json:"session_id"`
	Ruleset       string          `json:"ruleset"`
	Mode          engine.Mode     `json:"mode"`
	Phase         match.Phase     `json:"phase"`
	ActivePlayer  int             `json:"active_player"`
	AwaitingHuman bool            `json:"awaiting_human"`
	Round         int             `json:"round"`
	Turn          int             `json:"turn"`
	Seats         []string        `json:"seats"`
	Board         engine.Snapshot `json:"board"`
	Pools         [][]tile.Tile   `json:"pools"`
	Finished      bool            `json:"finished"`
	Result        *match.Result   `json:"result,omitempty"`
	LastAction    *match.Action   `json:"last_action,omitempty"`
}

// PlaceRequest places a tile from the player's pool.
type PlaceRequest struct {
	Player    int            `json:"player"`
	TileIndex int            `json:"tile_index"`
	Rotation  int            `json:"rotation"`
	Position  hex.Position   `json:"position"`
	Pops      []hex.Position `json:"pops,omitempty"` // choices for multi-candidate pops, in order
}

// MoveRequest relocates one of the player's tiles on the board.
type MoveRequest struct {
	Player   int            `json:"player"`
	From     hex.Position   `json:"from"`
	To       hex.Position   `json:"to"`
	Rotation int            `json:"rotation"`
	Pops     []hex.Position `json:"pops,omitempty"`
}

// TurnResult contains the actions a call produced, the caller's own action
// first, followed by any automated replies.
type TurnResult struct {
	Actions []match.Action `json:"actions"`
	State   *GameView      `json:"state"`
	Message string         `json:"message"`
	// Warning is set when automated seats stopped replying after the
	// requested action was applied.
	Warning string `json:"warning,omitempty"`
}

// LegalMoves lists what the active player may do.
type LegalMoves struct {
	Player      int                 `json:"player"`
	Placements  []engine.Placement  `json:"placements"`
	Relocations []engine.Relocation `json:"relocations,omitempty"`
	CanPass     bool                `json:"can_pass"`
}

// HistoryOptions configures action history retrieval
type HistoryOptions struct {
	Page  int    `json:"page"`
	Limit int    `json:"limit"`
	Order string `json:"order"` // "asc" or "desc"
}

// HistoryResponse contains paginated action history
type HistoryResponse struct {
	Actions      []match.Action `json:"actions"`
	TotalActions int            `json:"total_actions"`
	Page         int            `json:"page"`
	PageSize     int            `json:"page_size"`
	TotalPages   int            `json:"total_pages"`
	HasNext      bool           `json:"has_next"`
	HasPrevious  bool           `json:"has_previous"`
}

// ConfigInfo provides information about a ruleset
type ConfigInfo struct {
	Filename    string             `json:"filename,omitempty"`
	ConfigID    string             `json:"config_id"` // The identifier to use for session creation
	Name        string             `json:"name"`
	Description string             `json:"description"`
	Players     int                `json:"players"`
	Mode        engine.Mode        `json:"mode"`
	Scoring     engine.ScoringRule `json:"scoring"`
	Builtin     bool               `json:"builtin"`
}

// SimulateRequest runs a batch of automated games.
type SimulateRequest struct {
	ConfigName string   `json:"config_name"`
	Strategies []string `json:"strategies"`
	Games      int      `json:"games"`
	Seed       int64    `json:"seed"`
	KeepRaw    bool     `json:"keep_raw"`
}
