package match

import (
	"time"

	"github.com/wricardo/tangosim/game/engine"
	"github.com/wricardo/tangosim/game/hex"
	"github.com/wricardo/tangosim/game/tile"
)

// Phase is a state of the turn state machine.
type Phase string

const (
	PhaseInitializing  Phase = "initializing"
	PhasePlayerTurn    Phase = "player_turn"
	PhasePopResolution Phase = "pop_resolution"
	PhaseScoreUpdate   Phase = "score_update"
	PhaseGameOver      Phase = "game_over"
)

// transitions lists the phases reachable from each phase.
var transitions = map[Phase][]Phase{
	PhaseInitializing:  {PhasePlayerTurn},
	PhasePlayerTurn:    {PhasePopResolution, PhaseScoreUpdate, PhaseGameOver},
	PhasePopResolution: {PhaseScoreUpdate},
	PhaseScoreUpdate:   {PhasePlayerTurn, PhaseGameOver},
	PhaseGameOver:      nil,
}

// CanTransition reports whether the state machine allows moving from one phase to another.
func CanTransition(from, to Phase) bool {
	for _, p := range transitions[from] {
		if p == to {
			return true
		}
	}
	return false
}

// ActionType identifies what a player did on their turn.
type ActionType string

const (
	ActionPlace ActionType = "PLACE"
	ActionMove  ActionType = "MOVE"
	ActionPass  ActionType = "PASS"
)

// EndReason explains why a game finished.
type EndReason string

const (
	// ReasonExhausted: the acting player emptied their pool while holding the top score.
	ReasonExhausted EndReason = "exhausted"
	// ReasonStalemate: every player passed in a row.
	ReasonStalemate EndReason = "stalemate"
	// ReasonRoundLimit: the ruleset's round limit was reached.
	ReasonRoundLimit EndReason = "round_limit"
)

// Decision is a strategy's choice for a turn. Origin is only read for moves.
type Decision struct {
	Type     ActionType   `json:"type"`
	Tile     tile.Tile    `json:"tile"`
	Position hex.Position `json:"position"`
	Origin   hex.Position `json:"origin"`
}

// Place is a placement decision.
func Place(t tile.Tile, p hex.Position) Decision {
	return Decision{Type: ActionPlace, Tile: t, Position: p}
}

// Move is a relocation decision; t is the board tile in its new orientation.
func Move(t tile.Tile, from, to hex.Position) Decision {
	return Decision{Type: ActionMove, Tile: t, Position: to, Origin: from}
}

// Pass is a decision to skip the turn.
func Pass() Decision {
	return Decision{Type: ActionPass}
}

// Action is one entry of the match history.
type Action struct {
	ID         string              `json:"id"`
	Turn       int                 `json:"turn"`
	Round      int                 `json:"round"`
	Player     int                 `json:"player"`
	Type       ActionType          `json:"type"`
	Tile       *tile.Tile          `json:"tile,omitempty"`
	Position   *hex.Position       `json:"position,omitempty"`
	Origin     *hex.Position       `json:"origin,omitempty"`
	Popped     []engine.PlacedTile `json:"popped,omitempty"`
	ScoreDelta int                 `json:"score_delta"`
	Scores     []int               `json:"scores"`
	Timestamp  time.Time           `json:"timestamp"`
}

// Result summarises a finished game.
type Result struct {
	Scores []int `json:"scores"`
	// LastPlayer made the terminating move.
	LastPlayer int `json:"last_player"`
	// Winner holds the single top score, or -1 on a tie.
	Winner int       `json:"winner"`
	Rounds int       `json:"rounds"`
	Turns  int       `json:"turns"`
	Reason EndReason `json:"reason"`
}
