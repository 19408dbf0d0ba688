package service

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/wricardo/tangosim/game/engine"
	"github.com/wricardo/tangosim/game/hex"
	"github.com/wricardo/tangosim/game/match"
	"github.com/wricardo/tangosim/game/simulator"
	"github.com/wricardo/tangosim/game/strategy"
	"github.com/wricardo/tangosim/game/tile"
)

const (
	DefaultHistoryLimit = 20
	MaxHistoryLimit     = 100
	MaxSimulationGames  = 10_000
)

// gameServiceImpl implements the GameService interface
type gameServiceImpl struct {
	sessions SessionManager
	configs  ConfigManager
	logger   *zap.Logger
	mu       sync.RWMutex
}

// Option configures the game service.
type Option func(*gameServiceImpl)

// WithLogger sets the logger handed to simulations.
func WithLogger(logger *zap.Logger) Option {
	return func(s *gameServiceImpl) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewGameService creates a new game service instance
func NewGameService(sessions SessionManager, configs ConfigManager, opts ...Option) GameService {
	s := &gameServiceImpl{
		sessions: sessions,
		configs:  configs,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateSession creates a new game session. Without seats, player 0 is human
// and every other seat is played by the greedy strategy. When a human takes
// part, automated seats due before the first human turn are played at once.
func (s *gameServiceImpl) CreateSession(ctx context.Context, req CreateSessionRequest) (*SessionInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rules, err := s.ruleset(req.ConfigName)
	if err != nil {
		return nil, err
	}

	seats := req.Seats
	if len(seats) == 0 {
		seats = make([]string, rules.Players)
		seats[0] = SeatHuman
		for i := 1; i < len(seats); i++ {
			seats[i] = strategy.NameGreedy
		}
	}

	configID := req.ConfigName
	if configID == "" {
		configID = rules.Name
	}

	// Let session manager generate a proper 4-character ID
	sess, err := s.sessions.Create("", configID, *rules, seats, req.Seed)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	if len(sess.Humans) > 0 {
		if _, err := s.advance(ctx, sess, 0); err != nil {
			return nil, err
		}
	}
	return s.info(sess), nil
}

// GetSession retrieves session information
func (s *gameServiceImpl) GetSession(ctx context.Context, sessionID string) (*SessionInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}
	return s.info(sess), nil
}

// ListSessions returns all active sessions
func (s *gameServiceImpl) ListSessions(ctx context.Context) ([]*SessionInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sessions := s.sessions.List()
	slices.SortFunc(sessions, func(a, b *Session) int {
		return a.CreatedAt.Compare(b.CreatedAt)
	})

	result := make([]*SessionInfo, 0, len(sessions))
	for _, sess := range sessions {
		result = append(result, s.info(sess))
	}
	return result, nil
}

// DeleteSession removes a session
func (s *gameServiceImpl) DeleteSession(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.sessions.Delete(sessionID)
}

// Place plays a tile from a human player's pool, then lets automated seats
// reply until a human is due again.
func (s *gameServiceImpl) Place(ctx context.Context, sessionID string, req PlaceRequest) (*TurnResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.humanTurn(sessionID, req.Player)
	if err != nil {
		return nil, err
	}

	t, ok := tile.FindByIndex(sess.Match.Pool(req.Player), req.TileIndex)
	if !ok {
		return nil, fmt.Errorf("%w: tile %d", match.ErrPieceNotInPool, req.TileIndex)
	}
	return s.play(ctx, sess, req.Player, match.Place(t.Rotate(req.Rotation), req.Position), req.Pops)
}

// Move relocates a human player's tile in advanced mode.
func (s *gameServiceImpl) Move(ctx context.Context, sessionID string, req MoveRequest) (*TurnResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.humanTurn(sessionID, req.Player)
	if err != nil {
		return nil, err
	}

	t, ok := sess.Match.State().TileAt(req.From)
	if !ok {
		return nil, fmt.Errorf("%w: %v", engine.ErrNoTile, req.From)
	}
	return s.play(ctx, sess, req.Player, match.Move(t.Rotate(req.Rotation), req.From, req.To), req.Pops)
}

// Pass hands the turn on. Turns without a legal option pass automatically,
// so the match rejects a pass while the player can still act.
func (s *gameServiceImpl) Pass(ctx context.Context, sessionID string, player int) (*TurnResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.humanTurn(sessionID, player)
	if err != nil {
		return nil, err
	}
	return s.play(ctx, sess, player, match.Pass(), nil)
}

// Advance plays up to maxTurns automated turns, stopping early when a human
// seat is due or the game ends. maxTurns <= 0 means no limit.
func (s *gameServiceImpl) Advance(ctx context.Context, sessionID string, maxTurns int) (*TurnResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}
	if sess.Match.Finished() {
		return nil, ErrGameFinished
	}

	actions, err := s.advance(ctx, sess, maxTurns)
	if err != nil {
		return nil, err
	}
	return s.turnResult(sess, actions), nil
}

// GetGameState retrieves the current game state
func (s *gameServiceImpl) GetGameState(ctx context.Context, sessionID string) (*GameView, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}
	return view(sess), nil
}

// GetLegalMoves lists every legal action of the active player.
func (s *gameServiceImpl) GetLegalMoves(ctx context.Context, sessionID string) (*LegalMoves, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}
	if sess.Match.Finished() {
		return nil, ErrGameFinished
	}

	player := sess.Match.Active()
	state := sess.Match.State()
	moves := &LegalMoves{
		Player:     player,
		Placements: state.LegalPlacements(sess.Match.Pool(player)),
	}
	if state.Rules().Mode == engine.ModeAdvanced {
		moves.Relocations = state.LegalRelocations(player)
	}
	moves.CanPass = len(moves.Placements) == 0 && len(moves.Relocations) == 0
	return moves, nil
}

// GetHistory returns paginated action history
func (s *gameServiceImpl) GetHistory(ctx context.Context, sessionID string, opts HistoryOptions) (*HistoryResponse, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}

	history := sess.Match.History()
	total := len(history)

	// Apply defaults
	if opts.Page < 1 {
		opts.Page = 1
	}
	if opts.Limit <= 0 {
		opts.Limit = DefaultHistoryLimit
	}
	if opts.Limit > MaxHistoryLimit {
		opts.Limit = MaxHistoryLimit
	}
	if opts.Order == "" {
		opts.Order = "desc"
	}

	totalPages := (total + opts.Limit - 1) / opts.Limit
	if totalPages == 0 {
		totalPages = 1
	}

	if opts.Order == "desc" {
		slices.Reverse(history)
	}
	start := min((opts.Page-1)*opts.Limit, total)
	end := min(start+opts.Limit, total)

	actions := history[start:end]
	if actions == nil {
		actions = []match.Action{}
	}

	return &HistoryResponse{
		Actions:      actions,
		TotalActions: total,
		Page:         opts.Page,
		PageSize:     opts.Limit,
		TotalPages:   totalPages,
		HasNext:      opts.Page < totalPages,
		HasPrevious:  opts.Page > 1,
	}, nil
}

// ListConfigs returns available rulesets
func (s *gameServiceImpl) ListConfigs(ctx context.Context) ([]*ConfigInfo, error) {
	return s.configs.ListConfigs()
}

// LoadConfig loads a specific ruleset
func (s *gameServiceImpl) LoadConfig(ctx context.Context, configName string) (*engine.Ruleset, error) {
	return s.configs.LoadConfig(configName)
}

// SaveConfig saves a ruleset to disk
func (s *gameServiceImpl) SaveConfig(ctx context.Context, configName string, rules *engine.Ruleset) error {
	return s.configs.SaveConfig(configName, rules)
}

// Simulate runs a batch of automated games on a stored ruleset. Without
// strategies every seat plays greedy.
func (s *gameServiceImpl) Simulate(ctx context.Context, req SimulateRequest) (*simulator.SimulationResults, error) {
	if req.Games > MaxSimulationGames {
		return nil, fmt.Errorf("%w: %d (max %d)", ErrTooManyGames, req.Games, MaxSimulationGames)
	}

	s.mu.RLock()
	rules, err := s.ruleset(req.ConfigName)
	s.mu.RUnlock()
	if err != nil {
		return nil, err
	}

	strategies := req.Strategies
	if len(strategies) == 0 {
		strategies = make([]string, rules.Players)
		for i := range strategies {
			strategies[i] = strategy.NameGreedy
		}
	}

	sim, err := simulator.New(simulator.Config{
		Ruleset:    *rules,
		Strategies: strategies,
		Games:      req.Games,
		Seed:       req.Seed,
		KeepRaw:    req.KeepRaw,
	}, simulator.WithLogger(s.logger))
	if err != nil {
		return nil, err
	}
	return sim.Run(ctx, nil)
}

// ruleset loads a named ruleset, or the default one for an empty name.
func (s *gameServiceImpl) ruleset(name string) (*engine.Ruleset, error) {
	if name == "" {
		return s.configs.GetDefault(), nil
	}

	rules, err := s.configs.LoadConfig(name)
	if err != nil {
		// Provide helpful error message with available options
		if available, listErr := s.configs.ListConfigs(); listErr == nil && len(available) > 0 {
			ids := make([]string, 0, len(available))
			for _, c := range available {
				ids = append(ids, c.ConfigID)
			}
			return nil, fmt.Errorf("config %q (available: %s): %w", name, strings.Join(ids, ", "), err)
		}
		return nil, fmt.Errorf("config %q: %w", name, err)
	}
	return rules, nil
}

func (s *gameServiceImpl) session(id string) (*Session, error) {
	sess, err := s.sessions.Get(id)
	if err != nil {
		return nil, fmt.Errorf("session %s: %w", id, err)
	}
	_ = s.sessions.UpdateLastAccessed(id)
	return sess, nil
}

// humanTurn loads a session and checks that player is the human seat due to act.
func (s *gameServiceImpl) humanTurn(id string, player int) (*Session, error) {
	sess, err := s.session(id)
	if err != nil {
		return nil, err
	}
	if sess.Match.Finished() {
		return nil, ErrGameFinished
	}
	if !sess.IsHuman(player) {
		return nil, fmt.Errorf("%w: player %d", ErrNotHumanSeat, player)
	}
	if active := sess.Match.Active(); active != player {
		return nil, fmt.Errorf("%w: player %d is to act, not %d", ErrNotYourTurn, active, player)
	}
	return sess, nil
}

// play feeds one decision to a human seat, steps the match and lets the
// automated seats reply. A rejected decision leaves the session unchanged.
func (s *gameServiceImpl) play(ctx context.Context, sess *Session, player int, d match.Decision, pops []hex.Position) (*TurnResult, error) {
	human := sess.Humans[player]
	human.Clear()
	defer human.Clear()

	human.Queue(d)
	for _, p := range pops {
		human.QueuePop(p)
	}

	action, err := sess.Match.Step()
	if err != nil {
		return nil, err
	}

	var actions []match.Action
	if action != nil {
		actions = append(actions, *action)
	}
	replies, err := s.advance(ctx, sess, 0)
	actions = append(actions, replies...)
	result := s.turnResult(sess, actions)
	if err != nil {
		// The human action is already applied.
		s.logger.Warn("automated reply stopped",
			zap.String("session", sess.ID),
			zap.Int("turn", sess.Match.Turn()),
			zap.Error(err))
		result.Warning = err.Error()
	}
	return result, nil
}

// advance steps the match while the active seat needs no human input.
func (s *gameServiceImpl) advance(ctx context.Context, sess *Session, maxTurns int) ([]match.Action, error) {
	var actions []match.Action
	for n := 0; !sess.Match.Finished(); n++ {
		if maxTurns > 0 && n >= maxTurns {
			break
		}
		if err := ctx.Err(); err != nil {
			return actions, err
		}
		if sess.IsHuman(sess.Match.Active()) && sess.Match.AwaitingDecision() {
			break
		}

		action, err := sess.Match.Step()
		if err != nil {
			return actions, fmt.Errorf("automated turn: %w", err)
		}
		if action != nil {
			actions = append(actions, *action)
		}
	}
	return actions, nil
}

func (s *gameServiceImpl) turnResult(sess *Session, actions []match.Action) *TurnResult {
	if actions == nil {
		actions = []match.Action{}
	}
	v := view(sess)
	return &TurnResult{
		Actions: actions,
		State:   v,
		Message: describe(v, actions),
	}
}

func (s *gameServiceImpl) info(sess *Session) *SessionInfo {
	rules := sess.Match.Rules()
	return &SessionInfo{
		ID:             sess.ID,
		ConfigName:     sess.ConfigName,
		Seats:          slices.Clone(sess.Seats),
		Seed:           sess.Seed,
		CreatedAt:      sess.CreatedAt,
		LastAccessedAt: sess.LastAccessedAt,
		Ruleset:        &rules,
		State:          view(sess),
	}
}

func view(sess *Session) *GameView {
	m := sess.Match
	rules := m.Rules()
	v := &GameView{
		SessionID:    sess.ID,
		Ruleset:      rules.Name,
		Mode:         rules.Mode,
		Phase:        m.Phase(),
		ActivePlayer: m.Active(),
		Round:        m.Round(),
		Turn:         m.Turn(),
		Seats:        slices.Clone(sess.Seats),
		Board:        m.State().Snapshot(),
		Pools:        m.Pools(),
		Finished:     m.Finished(),
		Result:       m.Result(),
	}
	v.AwaitingHuman = !v.Finished && sess.IsHuman(v.ActivePlayer) && m.AwaitingDecision()
	if h := m.History(); len(h) > 0 {
		last := h[len(h)-1]
		v.LastAction = &last
	}
	return v
}

// describe summarises the actions of one call and what happens next.
func describe(v *GameView, actions []match.Action) string {
	var parts []string
	for _, a := range actions {
		parts = append(parts, describeAction(a))
	}

	switch {
	case v.Finished && v.Result != nil:
		if v.Result.Winner < 0 {
			parts = append(parts, fmt.Sprintf("Game over (%s): tie at %v", v.Result.Reason, v.Result.Scores))
		} else {
			parts = append(parts, fmt.Sprintf("Game over (%s): player %d wins with %v", v.Result.Reason, v.Result.Winner, v.Result.Scores))
		}
	case v.AwaitingHuman:
		parts = append(parts, fmt.Sprintf("Player %d to act", v.ActivePlayer))
	default:
		parts = append(parts, fmt.Sprintf("Player %d (%s) to act", v.ActivePlayer, v.Seats[v.ActivePlayer]))
	}
	return strings.Join(parts, ". ")
}

func describeAction(a match.Action) string {
	var b strings.Builder
	switch a.Type {
	case match.ActionPlace:
		fmt.Fprintf(&b, "Player %d placed %s at %v", a.Player, a.Tile.Pattern, *a.Position)
	case match.ActionMove:
		fmt.Fprintf(&b, "Player %d moved %s from %v to %v", a.Player, a.Tile.Pattern, *a.Origin, *a.Position)
	default:
		fmt.Fprintf(&b, "Player %d passed", a.Player)
	}
	if a.ScoreDelta != 0 {
		fmt.Fprintf(&b, " for %d", a.ScoreDelta)
	}
	if len(a.Popped) > 0 {
		fmt.Fprintf(&b, ", popping %d", len(a.Popped))
	}
	return b.String()
}
