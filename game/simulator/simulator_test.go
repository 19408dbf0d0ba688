package simulator

import (
	"bytes"
	"context"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/wricardo/tangosim/game/engine"
	"github.com/wricardo/tangosim/game/hex"
	"github.com/wricardo/tangosim/game/match"
	"github.com/wricardo/tangosim/game/tile"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestFromValues(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		want   DistributionStats
	}{
		{"empty", nil, DistributionStats{}},
		{"single", []float64{4}, DistributionStats{Mean: 4, Min: 4, Max: 4, Median: 4, Count: 1}},
		{"odd", []float64{3, 1, 2}, DistributionStats{Mean: 2, Std: 1, Min: 1, Max: 3, Median: 2, Count: 3}},
		{"even", []float64{4, 1, 3, 2}, DistributionStats{Mean: 2.5, Std: math.Sqrt(5.0 / 3), Min: 1, Max: 4, Median: 2.5, Count: 4}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FromValues(tt.values)
			if got.Count != tt.want.Count ||
				!almostEqual(got.Mean, tt.want.Mean) ||
				!almostEqual(got.Std, tt.want.Std) ||
				!almostEqual(got.Min, tt.want.Min) ||
				!almostEqual(got.Max, tt.want.Max) ||
				!almostEqual(got.Median, tt.want.Median) {
				t.Errorf("FromValues(%v) = %+v, want %+v", tt.values, got, tt.want)
			}
		})
	}

	values := []float64{3, 1, 2}
	FromValues(values)
	if values[0] != 3 || values[1] != 1 {
		t.Error("FromValues reordered its input")
	}
}

func TestNeighborAffinity(t *testing.T) {
	rules := engine.SimpleRuleset()
	rules.Players = 3
	state := engine.MustNew(rules)

	full, err := tile.ParsePattern("111111")
	if err != nil {
		t.Fatal(err)
	}
	for _, p := range []struct {
		pos   hex.Position
		color int
	}{
		{hex.Origin, 0},
		{hex.Position{Q: 1, R: 0}, 0},
		{hex.Position{Q: 0, R: -1}, 1},
	} {
		state, err = state.PlaceTile(tile.FromPattern(full, p.color), p.pos, p.color)
		if err != nil {
			t.Fatalf("PlaceTile %v: %v", p.pos, err)
		}
	}

	got := NeighborAffinity(state, 3)
	want := []float64{2.0 / 3, 0, 0}
	for i := range want {
		if !almostEqual(got[i], want[i]) {
			t.Errorf("player %d affinity = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestGameResult_ScoreGap(t *testing.T) {
	state := engine.MustNew(engine.SimpleRuleset())
	tests := []struct {
		name   string
		result match.Result
		want   int
	}{
		{"decisive", match.Result{Scores: []int{9, 4}, Winner: 0}, 5},
		{"runner-up is best of the rest", match.Result{Scores: []int{2, 7, 5}, Winner: 1}, 2},
		{"tie", match.Result{Scores: []int{3, 3}, Winner: -1}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := tt.result
			if got := gameResult(0, state, &r).ScoreGap; got != tt.want {
				t.Errorf("ScoreGap = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestAggregate(t *testing.T) {
	results := []GameResult{
		{Scores: []int{10, 4}, Winner: 0, ScoreGap: 6, Rounds: 13, NeighborAffinity: []float64{0.5, 0.2}, EndReason: match.ReasonExhausted},
		{Scores: []int{5, 5}, Winner: -1, Rounds: 13, NeighborAffinity: []float64{0.3, 0.4}, EndReason: match.ReasonExhausted},
		{Scores: []int{3, 7}, Winner: 1, ScoreGap: 4, Rounds: 10, NeighborAffinity: []float64{0.1, 0.6}, EndReason: match.ReasonStalemate},
		{Scores: []int{8, 6}, Winner: 0, ScoreGap: 2, Rounds: 12, NeighborAffinity: []float64{0.7, 0.0}, EndReason: match.ReasonExhausted},
	}

	got := aggregate(results, 2)
	if got.NumGames != 4 || got.Ties != 1 {
		t.Errorf("NumGames, Ties = %d, %d", got.NumGames, got.Ties)
	}
	if got.Wins[0] != 2 || got.Wins[1] != 1 {
		t.Errorf("Wins = %v", got.Wins)
	}
	if !almostEqual(got.WinPercentages[0], 50) || !almostEqual(got.WinPercentages[1], 25) {
		t.Errorf("WinPercentages = %v", got.WinPercentages)
	}
	if gap := got.ScoreGapDistribution; gap.Count != 3 || !almostEqual(gap.Mean, 4) {
		t.Errorf("ties should be left out of the gap distribution: %+v", gap)
	}
	if !almostEqual(got.ScoreDistributions[0].Mean, 6.5) || got.ScoreDistributions[1].Max != 7 {
		t.Errorf("ScoreDistributions = %+v", got.ScoreDistributions)
	}
	if !almostEqual(got.RoundsDistribution.Median, 12.5) {
		t.Errorf("rounds median = %v, want 12.5", got.RoundsDistribution.Median)
	}
	if !almostEqual(got.NeighborAffinityDistributions[1].Mean, 0.3) {
		t.Errorf("affinity mean = %v, want 0.3", got.NeighborAffinityDistributions[1].Mean)
	}
	if got.EndReasons["exhausted"] != 3 || got.EndReasons["stalemate"] != 1 {
		t.Errorf("EndReasons = %v", got.EndReasons)
	}
}

func TestNew_Validation(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{"strategy count", Config{Ruleset: engine.SimpleRuleset(), Strategies: []string{"random"}}},
		{"unknown strategy", Config{Ruleset: engine.SimpleRuleset(), Strategies: []string{"random", "oracle"}}},
		{"scripted", Config{Ruleset: engine.SimpleRuleset(), Strategies: []string{"scripted", "random"}}},
		{"negative games", Config{Ruleset: engine.SimpleRuleset(), Strategies: []string{"random", "random"}, Games: -1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(tt.cfg); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}

	bad := engine.SimpleRuleset()
	bad.Mode = "chaos"
	if _, err := New(Config{Ruleset: bad, Strategies: []string{"random", "random"}}); !errors.Is(err, engine.ErrInvalidRules) {
		t.Errorf("expected ErrInvalidRules, got %v", err)
	}

	sim, err := New(Config{Ruleset: engine.SimpleRuleset(), Strategies: []string{"random", "greedy"}})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	cfg := sim.Config()
	if cfg.Games != DefaultGames || cfg.Workers <= 0 || cfg.Seed == 0 {
		t.Errorf("defaults not applied: %+v", cfg)
	}
}

func TestRun(t *testing.T) {
	sim, err := New(Config{
		Ruleset:    engine.SimpleRuleset(),
		Strategies: []string{"greedy", "random"},
		Games:      8,
		Workers:    3,
		Seed:       11,
		KeepRaw:    true,
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	var calls, last int
	got, err := sim.Run(context.Background(), func(p Progress) {
		calls++
		last = p.Done
		if p.Total != 8 {
			t.Errorf("Progress.Total = %d, want 8", p.Total)
		}
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if calls != 8 || last != 8 {
		t.Errorf("progress called %d times, last Done %d", calls, last)
	}
	if got.RunID == "" || got.Ruleset != "simple" || got.Seed != 11 {
		t.Errorf("metadata = %q %q %d", got.RunID, got.Ruleset, got.Seed)
	}
	if got.Wins[0]+got.Wins[1]+got.Ties != 8 {
		t.Errorf("wins %v and ties %d do not add up to 8", got.Wins, got.Ties)
	}
	if len(got.RawResults) != 8 {
		t.Fatalf("RawResults = %d, want 8", len(got.RawResults))
	}
	for i, r := range got.RawResults {
		if r.Index != i {
			t.Errorf("RawResults[%d].Index = %d", i, r.Index)
		}
		if r.EndReason == "" {
			t.Errorf("game %d has no end reason", i)
		}
	}
}

func TestRun_WorkerCountDoesNotChangeResults(t *testing.T) {
	run := func(workers int) *SimulationResults {
		t.Helper()
		sim, err := New(Config{
			Ruleset:    engine.AdvancedRuleset(),
			Strategies: []string{"random", "greedy"},
			Games:      6,
			Workers:    workers,
			Seed:       5,
			KeepRaw:    true,
		})
		if err != nil {
			t.Fatalf("New: %v", err)
		}
		r, err := sim.Run(context.Background(), nil)
		if err != nil {
			t.Fatalf("Run: %v", err)
		}
		return r
	}

	a, b := run(1), run(4)
	for i := range a.RawResults {
		ra, rb := a.RawResults[i], b.RawResults[i]
		if ra.Winner != rb.Winner || ra.Turns != rb.Turns || ra.Scores[0] != rb.Scores[0] || ra.Scores[1] != rb.Scores[1] {
			t.Errorf("game %d differs: %+v vs %+v", i, ra, rb)
		}
	}
}

func TestRun_Cancelled(t *testing.T) {
	sim, err := New(Config{Ruleset: engine.SimpleRuleset(), Strategies: []string{"random", "random"}, Games: 50, Seed: 1})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := sim.Run(ctx, nil); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestWriteReport(t *testing.T) {
	r := aggregate([]GameResult{
		{Scores: []int{5, 5}, Winner: -1, Rounds: 13, NeighborAffinity: []float64{0.5, 0.5}, EndReason: match.ReasonStalemate},
	}, 2)
	r.Ruleset = "simple"
	r.Strategies = []string{"greedy", "random"}

	var buf bytes.Buffer
	WriteReport(&buf, &r, nil)
	out := buf.String()

	for _, want := range []string{
		"SIMULATION RESULTS (1 games, ruleset simple)",
		"Player 0 (greedy): 0 wins (0.0%)",
		"Ties: 1 (100.0%)",
		"No decisive games (all ties)",
		"stalemate: 1",
		"Neighbor Affinity",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("report is missing %q:\n%s", want, out)
		}
	}

	buf.Reset()
	WriteReport(&buf, &r, []string{"Alice", "Bob"})
	if !strings.Contains(buf.String(), "Alice: 0 wins") {
		t.Errorf("custom names ignored:\n%s", buf.String())
	}
}
