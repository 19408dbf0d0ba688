package match

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/wricardo/tangosim/game/engine"
	"github.com/wricardo/tangosim/game/hex"
	"github.com/wricardo/tangosim/game/tile"
)

// Match runs one game between strategies, one turn per Step. A Match is not
// safe for concurrent use; the board values it hands out are.
type Match struct {
	id         string
	rules      engine.Ruleset
	strategies []Strategy
	pools      [][]tile.Tile
	state      *engine.GameState
	phase      Phase
	active     int
	turn       int
	round      int
	passes     int
	history    []Action
	result     *Result
	logger     *zap.Logger
	now        func() time.Time
}

// Option configures a Match.
type Option func(*Match)

// WithLogger sets the structured logger. The default discards everything.
func WithLogger(logger *zap.Logger) Option {
	return func(m *Match) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithPools replaces the ruleset's starting pools.
func WithPools(pools [][]tile.Tile) Option {
	return func(m *Match) {
		m.pools = clonePools(pools)
	}
}

// WithID sets the match id instead of a random one.
func WithID(id string) Option {
	return func(m *Match) {
		m.id = id
	}
}

// WithClock sets the time source for history timestamps.
func WithClock(now func() time.Time) Option {
	return func(m *Match) {
		m.now = now
	}
}

// New registers one strategy per player, in player order, and sets up the
// empty board. The match starts in the PlayerTurn phase with player 0 active.
func New(rules engine.Ruleset, strategies []Strategy, opts ...Option) (*Match, error) {
	rules = rules.Clone()
	rules.ApplyDefaults()

	state, err := engine.New(rules)
	if err != nil {
		return nil, err
	}
	if len(strategies) != rules.Players {
		return nil, fmt.Errorf("%w: %d strategies for %d players", ErrInvalidSetup, len(strategies), rules.Players)
	}
	for i, s := range strategies {
		if s == nil {
			return nil, fmt.Errorf("%w: no strategy for player %d", ErrInvalidSetup, i)
		}
	}

	m := &Match{
		id:         uuid.NewString(),
		rules:      rules,
		strategies: slices.Clone(strategies),
		state:      state,
		phase:      PhaseInitializing,
		round:      1,
		logger:     zap.NewNop(),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}

	if m.pools == nil {
		if m.pools, err = rules.StartingPools(); err != nil {
			return nil, err
		}
	}
	if err := validatePools(m.pools, rules.Players); err != nil {
		return nil, err
	}

	if err := m.setPhase(PhasePlayerTurn); err != nil {
		return nil, err
	}
	m.logger.Debug("match created",
		zap.String("match_id", m.id),
		zap.String("ruleset", rules.Name),
		zap.Int("players", rules.Players),
		zap.String("mode", string(rules.Mode)),
	)
	return m, nil
}

func validatePools(pools [][]tile.Tile, players int) error {
	if len(pools) != players {
		return fmt.Errorf("%w: %d pools for %d players", ErrInvalidSetup, len(pools), players)
	}
	seen := make(map[int]bool)
	for player, pool := range pools {
		for _, t := range pool {
			if t.Color != player {
				return fmt.Errorf("%w: player %d pool holds colour %d", ErrInvalidSetup, player, t.Color)
			}
			if seen[t.Index] {
				return fmt.Errorf("%w: duplicate tile index %d", ErrInvalidSetup, t.Index)
			}
			seen[t.Index] = true
		}
	}
	return nil
}

// ID returns the match id.
func (m *Match) ID() string { return m.id }

// Rules returns the ruleset the match plays under.
func (m *Match) Rules() engine.Ruleset { return m.rules.Clone() }

// State returns the current board.
func (m *Match) State() *engine.GameState { return m.state }

// Phase returns the current state machine phase.
func (m *Match) Phase() Phase { return m.phase }

// Active returns the player whose turn it is.
func (m *Match) Active() int { return m.active }

// Round returns the current round, starting at 1.
func (m *Match) Round() int { return m.round }

// Turn returns the number of completed turns.
func (m *Match) Turn() int { return m.turn }

// Finished reports whether the game is over.
func (m *Match) Finished() bool { return m.phase == PhaseGameOver }

// Pool returns a copy of a player's remaining tiles.
func (m *Match) Pool(player int) []tile.Tile {
	if player < 0 || player >= len(m.pools) {
		return nil
	}
	return slices.Clone(m.pools[player])
}

// Pools returns a copy of every player's remaining tiles.
func (m *Match) Pools() [][]tile.Tile { return clonePools(m.pools) }

// History returns the actions played so far.
func (m *Match) History() []Action { return slices.Clone(m.history) }

// Result returns the outcome, or nil while the game is running.
func (m *Match) Result() *Result {
	if m.result == nil {
		return nil
	}
	r := *m.result
	r.Scores = slices.Clone(r.Scores)
	return &r
}

// AwaitingDecision reports whether the next Step consults the active
// player's strategy. It is false when the game is over or the turn would end
// the game or pass automatically.
func (m *Match) AwaitingDecision() bool {
	if m.phase != PhasePlayerTurn || m.exhausted(m.active) {
		return false
	}
	return m.state.HasLegalAction(m.pools[m.active], m.active)
}

// Play steps until the game ends. The context is checked between turns.
func (m *Match) Play(ctx context.Context) (*Result, error) {
	for !m.Finished() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if _, err := m.Step(); err != nil {
			return nil, err
		}
	}
	return m.Result(), nil
}

// Step plays the active player's turn: decision, placement or move, pop
// resolution and score update. A strategy's invalid move or pop is returned
// as an error and leaves the match unchanged. Step returns a nil action
// when the game ends before the player acts.
func (m *Match) Step() (*Action, error) {
	if m.phase == PhaseGameOver {
		return nil, ErrGameOver
	}
	if m.phase != PhasePlayerTurn {
		return nil, fmt.Errorf("%w: step during %s", ErrBadTransition, m.phase)
	}
	if m.exhausted(m.active) {
		m.finish(ReasonExhausted, m.active)
		return nil, nil
	}

	player := m.active
	pieces := slices.Clone(m.pools[player])

	var decision Decision
	if !m.state.HasLegalAction(pieces, player) {
		decision = Pass()
	} else {
		var err error
		decision, err = m.decide(player, pieces)
		if errors.Is(err, ErrNoLegalMove) {
			return nil, fmt.Errorf("%w: player %d passed with legal moves left", engine.ErrInvalidMove, player)
		}
		if err != nil {
			return nil, fmt.Errorf("player %d: %w", player, err)
		}
		if decision.Type == ActionPass {
			return nil, fmt.Errorf("%w: player %d passed with legal moves left", engine.ErrInvalidMove, player)
		}
	}

	action, err := m.apply(player, decision)
	if err != nil {
		m.phase = PhasePlayerTurn
		m.logger.Debug("turn rejected",
			zap.String("match_id", m.id),
			zap.Int("player", player),
			zap.String("type", string(decision.Type)),
			zap.Error(err),
		)
		return nil, err
	}
	return action, nil
}

func (m *Match) decide(player int, pieces []tile.Tile) (Decision, error) {
	s := m.strategies[player]
	if r, ok := s.(Relocator); ok {
		return r.FormulateAction(m.state, pieces)
	}
	t, p, err := s.FormulateTurn(m.state, pieces)
	if err != nil {
		return Decision{}, err
	}
	return Place(t, p), nil
}

// apply runs one decision through the phases. The match is only updated
// once everything succeeded.
func (m *Match) apply(player int, d Decision) (*Action, error) {
	pools := clonePools(m.pools)
	before := m.state.Score(player)

	action := Action{
		ID:     uuid.NewString(),
		Turn:   m.turn + 1,
		Round:  m.round,
		Player: player,
		Type:   d.Type,
	}

	var (
		next *engine.GameState
		err  error
	)
	switch d.Type {
	case ActionPlace:
		next, err = m.place(pools, player, d)
	case ActionMove:
		next, err = m.state.MoveTile(d.Tile, d.Origin, d.Position, player)
		action.Origin = &d.Origin
	case ActionPass:
		next = m.state
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownAction, d.Type)
	}
	if err != nil {
		return nil, err
	}

	if d.Type != ActionPass {
		t, p := d.Tile, d.Position
		action.Tile, action.Position = &t, &p

		if err := m.setPhase(PhasePopResolution); err != nil {
			return nil, err
		}
		next, action.Popped, err = m.resolvePops(next, pools, player, d.Position)
		if err != nil {
			return nil, err
		}
	}

	if err := m.setPhase(PhaseScoreUpdate); err != nil {
		return nil, err
	}
	m.state = next
	m.pools = pools
	action.ScoreDelta = next.Score(player) - before
	action.Scores = next.Scores()
	action.Timestamp = m.now()
	m.history = append(m.history, action)

	if d.Type == ActionPass {
		m.passes++
	} else {
		m.passes = 0
	}

	m.logger.Debug("turn played",
		zap.String("match_id", m.id),
		zap.Int("turn", action.Turn),
		zap.Int("player", player),
		zap.String("type", string(d.Type)),
		zap.Int("score_delta", action.ScoreDelta),
		zap.Int("popped", len(action.Popped)),
	)

	m.endTurn(player)
	return &action, nil
}

func (m *Match) place(pools [][]tile.Tile, player int, d Decision) (*engine.GameState, error) {
	piece, ok := tile.FindByIndex(pools[player], d.Tile.Index)
	if !ok {
		return nil, fmt.Errorf("%w: player %d has no tile #%d", ErrPieceNotInPool, player, d.Tile.Index)
	}
	if piece.Color != d.Tile.Color || !piece.IsRotationallyEqual(d.Tile) {
		return nil, fmt.Errorf("%w: %v does not match pooled %v", ErrPieceNotInPool, d.Tile, piece)
	}

	next, err := m.state.PlaceTile(d.Tile, d.Position, player)
	if err != nil {
		return nil, err
	}
	pools[player], _ = tile.RemoveByIndex(pools[player], d.Tile.Index)
	return next, nil
}

// resolvePops pops around seed until nothing is left to pop, asking the
// acting strategy whenever there is a choice. Popped tiles go back to their
// owners' pools.
func (m *Match) resolvePops(state *engine.GameState, pools [][]tile.Tile, player int, seed hex.Position) (*engine.GameState, []engine.PlacedTile, error) {
	var popped []engine.PlacedTile
	for {
		candidates := state.PopCandidates(seed)
		if len(candidates) == 0 {
			return state, popped, nil
		}

		choice := candidates[0]
		if len(candidates) > 1 {
			var err error
			choice, err = m.strategies[player].PickPieceToPop(state, slices.Clone(pools[player]), slices.Clone(candidates))
			if err != nil {
				return nil, nil, fmt.Errorf("player %d pop: %w", player, err)
			}
			if !slices.Contains(candidates, choice) {
				return nil, nil, fmt.Errorf("%w: %v is not among %v", engine.ErrIllegalPop, choice, candidates)
			}
		}

		next, t, err := state.Pop(choice, player)
		if err != nil {
			return nil, nil, err
		}
		pools[t.Color] = append(pools[t.Color], t)
		popped = append(popped, engine.PlacedTile{Position: choice, Tile: t})
		state = next
	}
}

// endTurn checks the end conditions and hands the turn to the next player.
func (m *Match) endTurn(player int) {
	m.turn++
	if m.exhausted(player) {
		m.finish(ReasonExhausted, player)
		return
	}
	if m.passes >= len(m.strategies) {
		m.finish(ReasonStalemate, player)
		return
	}

	m.active = (m.active + 1) % len(m.strategies)
	if m.active == 0 {
		m.round++
	}
	if m.round > m.rules.MaxRounds {
		m.round = m.rules.MaxRounds
		m.finish(ReasonRoundLimit, player)
		return
	}
	_ = m.setPhase(PhasePlayerTurn)
}

// exhausted reports whether player has no tiles left and shares the top score.
func (m *Match) exhausted(player int) bool {
	if len(m.pools[player]) > 0 {
		return false
	}
	return m.state.Score(player) == slices.Max(m.state.Scores())
}

func (m *Match) finish(reason EndReason, last int) {
	_ = m.setPhase(PhaseGameOver)

	scores := m.state.Scores()
	m.result = &Result{
		Scores:     scores,
		LastPlayer: last,
		Winner:     winner(scores),
		Rounds:     m.round,
		Turns:      m.turn,
		Reason:     reason,
	}
	m.logger.Info("game over",
		zap.String("match_id", m.id),
		zap.String("reason", string(reason)),
		zap.Ints("scores", scores),
		zap.Int("winner", m.result.Winner),
		zap.Int("rounds", m.round),
	)
}

func (m *Match) setPhase(next Phase) error {
	if !CanTransition(m.phase, next) {
		return fmt.Errorf("%w: %s -> %s", ErrBadTransition, m.phase, next)
	}
	m.phase = next
	return nil
}

// winner returns the player with the single highest score, or -1 on a tie.
func winner(scores []int) int {
	if len(scores) == 0 {
		return -1
	}
	top := slices.Max(scores)
	best := -1
	for i, s := range scores {
		if s != top {
			continue
		}
		if best >= 0 {
			return -1
		}
		best = i
	}
	return best
}

func clonePools(pools [][]tile.Tile) [][]tile.Tile {
	out := make([][]tile.Tile, len(pools))
	for i, p := range pools {
		out[i] = slices.Clone(p)
	}
	return out
}
