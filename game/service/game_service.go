package service

import (
	"context"
	"errors"
	"time"

	"github.com/wricardo/tangosim/game/engine"
	"github.com/wricardo/tangosim/game/match"
	"github.com/wricardo/tangosim/game/simulator"
	"github.com/wricardo/tangosim/game/strategy"
)

var (
	ErrNotYourTurn  = errors.New("not this player's turn")
	ErrNotHumanSeat = errors.New("seat is not played by a human")
	ErrInvalidSeats = errors.New("invalid seats")
	ErrGameFinished = errors.New("game is finished")
	ErrTooManyGames = errors.New("too many games requested")
)

// GameService defines all game-related operations
type GameService interface {
	// Session Management
	CreateSession(ctx context.Context, req CreateSessionRequest) (*SessionInfo, error)
	GetSession(ctx context.Context, sessionID string) (*SessionInfo, error)
	ListSessions(ctx context.Context) ([]*SessionInfo, error)
	DeleteSession(ctx context.Context, sessionID string) error

	// Game Operations
	Place(ctx context.Context, sessionID string, req PlaceRequest) (*TurnResult, error)
	Move(ctx context.Context, sessionID string, req MoveRequest) (*TurnResult, error)
	Pass(ctx context.Context, sessionID string, player int) (*TurnResult, error)
	Advance(ctx context.Context, sessionID string, maxTurns int) (*TurnResult, error)

	// Game State
	GetGameState(ctx context.Context, sessionID string) (*GameView, error)
	GetLegalMoves(ctx context.Context, sessionID string) (*LegalMoves, error)
	GetHistory(ctx context.Context, sessionID string, opts HistoryOptions) (*HistoryResponse, error)

	// Configuration
	ListConfigs(ctx context.Context) ([]*ConfigInfo, error)
	LoadConfig(ctx context.Context, configName string) (*engine.Ruleset, error)
	SaveConfig(ctx context.Context, configName string, rules *engine.Ruleset) error

	// Simulation
	Simulate(ctx context.Context, req SimulateRequest) (*simulator.SimulationResults, error)
}

// SessionManager defines session storage operations
type SessionManager interface {
	Create(id, configName string, rules engine.Ruleset, seats []string, seed int64) (*Session, error)
	Get(id string) (*Session, error)
	List() []*Session
	Delete(id string) error
	UpdateLastAccessed(id string) error
}

// ConfigManager handles ruleset loading
type ConfigManager interface {
	LoadConfig(name string) (*engine.Ruleset, error)
	ListConfigs() ([]*ConfigInfo, error)
	GetDefault() *engine.Ruleset
	SaveConfig(name string, rules *engine.Ruleset) error
}

// Session represents an active game session
type Session struct {
	ID             string
	ConfigName     string
	Match          *match.Match
	Seats          []string
	Humans         map[int]*strategy.Scripted // scripted strategy behind each human seat
	Seed           int64
	CreatedAt      time.Time
	LastAccessedAt time.Time
}

// IsHuman reports whether player's seat is played through the API.
func (s *Session) IsHuman(player int) bool {
	_, ok := s.Humans[player]
	return ok
}
