package simulator

import (
	"fmt"
	"io"
	"strings"

	"github.com/wricardo/tangosim/game/engine"
	"github.com/wricardo/tangosim/game/hex"
	"github.com/wricardo/tangosim/game/match"
)

// GameResult is the outcome of one simulated game.
type GameResult struct {
	Index  int   `json:"index"`
	Scores []int `json:"scores"`
	// Winner is the player index, or -1 on a tie.
	Winner int `json:"winner"`
	// ScoreGap is the winner's lead over the runner-up, 0 on a tie.
	ScoreGap         int             `json:"score_gap"`
	Rounds           int             `json:"rounds"`
	Turns            int             `json:"turns"`
	NeighborAffinity []float64       `json:"neighbor_affinity"`
	EndReason        match.EndReason `json:"end_reason"`
}

// SimulationResults aggregates a batch of games.
type SimulationResults struct {
	RunID                         string              `json:"run_id"`
	Ruleset                       string              `json:"ruleset"`
	Strategies                    []string            `json:"strategies"`
	Seed                          int64               `json:"seed"`
	NumGames                      int                 `json:"num_games"`
	Wins                          []int               `json:"wins"`
	Ties                          int                 `json:"ties"`
	WinPercentages                []float64           `json:"win_percentages"`
	ScoreDistributions            []DistributionStats `json:"score_distributions"`
	ScoreGapDistribution          DistributionStats   `json:"score_gap_distribution"`
	RoundsDistribution            DistributionStats   `json:"rounds_distribution"`
	NeighborAffinityDistributions []DistributionStats `json:"neighbor_affinity_distributions"`
	EndReasons                    map[string]int      `json:"end_reasons"`
	RawResults                    []GameResult        `json:"raw_results,omitempty"`
}

// NeighborAffinity returns, per player, the share of same-colour tiles among
// all tiles bordering that player's tiles. A player without neighbours scores 0.
func NeighborAffinity(state *engine.GameState, players int) []float64 {
	same := make([]int, players)
	total := make([]int, players)

	for _, pt := range state.Tiles() {
		player := pt.Tile.Color
		if player < 0 || player >= players {
			continue
		}
		for _, n := range hex.Neighbors(pt.Position) {
			other, ok := state.TileAt(n)
			if !ok {
				continue
			}
			total[player]++
			if other.Color == player {
				same[player]++
			}
		}
	}

	out := make([]float64, players)
	for i := range out {
		if total[i] > 0 {
			out[i] = float64(same[i]) / float64(total[i])
		}
	}
	return out
}

func gameResult(index int, state *engine.GameState, r *match.Result) GameResult {
	gap := 0
	if r.Winner >= 0 {
		runnerUp := -1
		for i, s := range r.Scores {
			if i != r.Winner && (runnerUp < 0 || s > runnerUp) {
				runnerUp = s
			}
		}
		if runnerUp >= 0 {
			gap = r.Scores[r.Winner] - runnerUp
		}
	}

	return GameResult{
		Index:            index,
		Scores:           r.Scores,
		Winner:           r.Winner,
		ScoreGap:         gap,
		Rounds:           r.Rounds,
		Turns:            r.Turns,
		NeighborAffinity: NeighborAffinity(state, len(r.Scores)),
		EndReason:        r.Reason,
	}
}

func aggregate(results []GameResult, players int) SimulationResults {
	out := SimulationResults{
		NumGames:       len(results),
		Wins:           make([]int, players),
		WinPercentages: make([]float64, players),
		EndReasons:     make(map[string]int),
	}

	var gaps, rounds []float64
	scores := make([][]float64, players)
	affinity := make([][]float64, players)

	for _, r := range results {
		if r.Winner < 0 {
			out.Ties++
		} else {
			out.Wins[r.Winner]++
			gaps = append(gaps, float64(r.ScoreGap))
		}
		rounds = append(rounds, float64(r.Rounds))
		out.EndReasons[string(r.EndReason)]++
		for p := range players {
			scores[p] = append(scores[p], float64(r.Scores[p]))
			affinity[p] = append(affinity[p], r.NeighborAffinity[p])
		}
	}

	for p := range players {
		if out.NumGames > 0 {
			out.WinPercentages[p] = float64(out.Wins[p]) / float64(out.NumGames) * 100
		}
		out.ScoreDistributions = append(out.ScoreDistributions, FromValues(scores[p]))
		out.NeighborAffinityDistributions = append(out.NeighborAffinityDistributions, FromValues(affinity[p]))
	}
	out.ScoreGapDistribution = FromValues(gaps)
	out.RoundsDistribution = FromValues(rounds)
	return out
}

// WriteReport prints a human-readable summary. names label the players and
// default to the strategy names.
func WriteReport(w io.Writer, r *SimulationResults, names []string) {
	if len(names) != len(r.Wins) {
		names = make([]string, len(r.Wins))
		for i := range names {
			if i < len(r.Strategies) {
				names[i] = fmt.Sprintf("Player %d (%s)", i, r.Strategies[i])
			} else {
				names[i] = fmt.Sprintf("Player %d", i)
			}
		}
	}
	rule := strings.Repeat("=", 60)

	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "SIMULATION RESULTS (%d games, ruleset %s)\n", r.NumGames, r.Ruleset)
	fmt.Fprintln(w, rule)

	fmt.Fprintln(w, "\n--- Win Statistics ---")
	for i, name := range names {
		fmt.Fprintf(w, "  %s: %d wins (%.1f%%)\n", name, r.Wins[i], r.WinPercentages[i])
	}
	tiePct := 0.0
	if r.NumGames > 0 {
		tiePct = float64(r.Ties) / float64(r.NumGames) * 100
	}
	fmt.Fprintf(w, "  Ties: %d (%.1f%%)\n", r.Ties, tiePct)

	fmt.Fprintln(w, "\n--- Score Distributions ---")
	for i, name := range names {
		d := r.ScoreDistributions[i]
		fmt.Fprintf(w, "  %s:\n", name)
		fmt.Fprintf(w, "    Mean: %.2f | Std: %.2f\n", d.Mean, d.Std)
		fmt.Fprintf(w, "    Min: %.0f | Max: %.0f | Median: %.1f\n", d.Min, d.Max, d.Median)
	}

	fmt.Fprintln(w, "\n--- Score Gap (Winner - Runner-up) ---")
	if gap := r.ScoreGapDistribution; gap.Count > 0 {
		fmt.Fprintf(w, "  Mean: %.2f | Std: %.2f\n", gap.Mean, gap.Std)
		fmt.Fprintf(w, "  Min: %.0f | Max: %.0f | Median: %.1f\n", gap.Min, gap.Max, gap.Median)
	} else {
		fmt.Fprintln(w, "  No decisive games (all ties)")
	}

	fmt.Fprintln(w, "\n--- Game Length (Rounds) ---")
	rnd := r.RoundsDistribution
	fmt.Fprintf(w, "  Mean: %.2f | Std: %.2f\n", rnd.Mean, rnd.Std)
	fmt.Fprintf(w, "  Min: %.0f | Max: %.0f | Median: %.1f\n", rnd.Min, rnd.Max, rnd.Median)

	fmt.Fprintln(w, "\n--- End Reasons ---")
	for _, reason := range []match.EndReason{match.ReasonExhausted, match.ReasonStalemate, match.ReasonRoundLimit} {
		fmt.Fprintf(w, "  %s: %d\n", reason, r.EndReasons[string(reason)])
	}

	fmt.Fprintln(w, "\n--- Neighbor Affinity (Clustering) ---")
	for i, name := range names {
		a := r.NeighborAffinityDistributions[i]
		fmt.Fprintf(w, "  %s:\n", name)
		fmt.Fprintf(w, "    Mean: %.3f | Std: %.3f\n", a.Mean, a.Std)
		fmt.Fprintf(w, "    Min: %.3f | Max: %.3f\n", a.Min, a.Max)
	}

	fmt.Fprintln(w, "\n"+rule)
}
