package simulator

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/wricardo/tangosim/game/engine"
	"github.com/wricardo/tangosim/game/match"
	"github.com/wricardo/tangosim/game/strategy"
)

const (
	DefaultGames = 1000
	MaxGames     = 1_000_000
)

var ErrInvalidConfig = errors.New("invalid simulation config")

// Config describes a batch of games.
type Config struct {
	Ruleset    engine.Ruleset
	Strategies []string // one strategy name per player
	Games      int      // number of games (0 = DefaultGames)
	Workers    int      // parallel games (0 = GOMAXPROCS)
	Seed       int64    // RNG seed (0 = random)
	KeepRaw    bool     // keep every GameResult in the output
}

// Progress reports how many games have finished.
type Progress struct {
	Done  int `json:"done"`
	Total int `json:"total"`
}

// ProgressCallback is called after every finished game. Calls are serialised.
type ProgressCallback func(Progress)

// Simulator runs independent games in parallel and aggregates the results.
type Simulator struct {
	cfg    Config
	logger *zap.Logger
}

// Option configures a Simulator.
type Option func(*Simulator)

// WithLogger sets the structured logger. The default discards everything.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Simulator) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New validates cfg and fills its defaults.
func New(cfg Config, opts ...Option) (*Simulator, error) {
	cfg.Ruleset = cfg.Ruleset.Clone()
	cfg.Ruleset.ApplyDefaults()
	if err := engine.ValidateRuleset(&cfg.Ruleset); err != nil {
		return nil, err
	}
	if len(cfg.Strategies) != cfg.Ruleset.Players {
		return nil, fmt.Errorf("%w: %d strategies for %d players", ErrInvalidConfig, len(cfg.Strategies), cfg.Ruleset.Players)
	}
	for i, name := range cfg.Strategies {
		if name == strategy.NameScripted {
			return nil, fmt.Errorf("%w: player %d: %s needs input and cannot be simulated", ErrInvalidConfig, i, name)
		}
		if _, err := strategy.ByName(name, i, 0); err != nil {
			return nil, fmt.Errorf("%w: player %d: %w", ErrInvalidConfig, i, err)
		}
	}

	if cfg.Games == 0 {
		cfg.Games = DefaultGames
	}
	if cfg.Games < 0 || cfg.Games > MaxGames {
		return nil, fmt.Errorf("%w: games must be between 1 and %d, got %d", ErrInvalidConfig, MaxGames, cfg.Games)
	}
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.GOMAXPROCS(0)
	}
	if cfg.Seed == 0 {
		cfg.Seed = rand.Int63()
	}

	s := &Simulator{cfg: cfg, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Config returns the effective configuration, defaults included.
func (s *Simulator) Config() Config {
	return s.cfg
}

// Run plays every game and aggregates the results. Each game's strategies are
// seeded from the game index, so results for a seed do not depend on the
// number of workers. The first failing game cancels the rest.
func (s *Simulator) Run(ctx context.Context, progress ProgressCallback) (*SimulationResults, error) {
	runID := uuid.NewString()
	total := s.cfg.Games
	results := make([]GameResult, total)

	s.logger.Info("simulation started",
		zap.String("run_id", runID),
		zap.String("ruleset", s.cfg.Ruleset.Name),
		zap.Strings("strategies", s.cfg.Strategies),
		zap.Int("games", total),
		zap.Int("workers", s.cfg.Workers),
		zap.Int64("seed", s.cfg.Seed),
	)

	var (
		done atomic.Int64
		mu   sync.Mutex
	)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.Workers)

	for i := range total {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			r, err := s.RunGame(gctx, i)
			if err != nil {
				return fmt.Errorf("game %d: %w", i, err)
			}
			results[i] = r

			n := done.Add(1)
			if progress != nil {
				mu.Lock()
				progress(Progress{Done: int(n), Total: total})
				mu.Unlock()
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		s.logger.Warn("simulation failed", zap.String("run_id", runID), zap.Error(err))
		return nil, err
	}

	out := aggregate(results, s.cfg.Ruleset.Players)
	out.RunID = runID
	out.Ruleset = s.cfg.Ruleset.Name
	out.Strategies = append([]string(nil), s.cfg.Strategies...)
	out.Seed = s.cfg.Seed
	if s.cfg.KeepRaw {
		out.RawResults = results
	}

	s.logger.Info("simulation finished",
		zap.String("run_id", runID),
		zap.Ints("wins", out.Wins),
		zap.Int("ties", out.Ties),
	)
	return &out, nil
}

// RunGame plays game number index with freshly built strategies.
func (s *Simulator) RunGame(ctx context.Context, index int) (GameResult, error) {
	players := s.cfg.Ruleset.Players
	strategies := make([]match.Strategy, players)
	for p, name := range s.cfg.Strategies {
		st, err := strategy.ByName(name, p, s.gameSeed(index, p))
		if err != nil {
			return GameResult{}, err
		}
		strategies[p] = st
	}

	m, err := match.New(s.cfg.Ruleset, strategies, match.WithLogger(s.logger.With(zap.Int("game", index))))
	if err != nil {
		return GameResult{}, err
	}
	r, err := m.Play(ctx)
	if err != nil {
		return GameResult{}, err
	}
	return gameResult(index, m.State(), r), nil
}

func (s *Simulator) gameSeed(index, player int) int64 {
	return s.cfg.Seed + int64(index)*int64(s.cfg.Ruleset.Players) + int64(player)
}
