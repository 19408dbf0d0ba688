package strategy

import (
	"cmp"
	"math/rand"
	"slices"

	"github.com/wricardo/tangosim/game/engine"
	"github.com/wricardo/tangosim/game/hex"
	"github.com/wricardo/tangosim/game/match"
	"github.com/wricardo/tangosim/game/tile"
)

// DefaultWidth is how many of the best immediate options Lookahead searches.
const DefaultWidth = 8

// Lookahead scores each of its best immediate options by its own gain minus
// the next player's best greedy reply, searched over the ruleset's full tile
// set.
type Lookahead struct {
	Width int

	player int
	rng    *rand.Rand
}

// NewLookahead creates a look-ahead player with DefaultWidth.
func NewLookahead(player int, seed int64) *Lookahead {
	return &Lookahead{
		Width:  DefaultWidth,
		player: player,
		rng:    rand.New(rand.NewSource(seed)),
	}
}

func (l *Lookahead) FormulateTurn(state *engine.GameState, pieces []tile.Tile) (tile.Tile, hex.Position, error) {
	d, ok := l.choose(state, options(state, pieces, l.player, false))
	if !ok {
		return tile.Tile{}, hex.Position{}, match.ErrNoLegalMove
	}
	return d.Tile, d.Position, nil
}

func (l *Lookahead) FormulateAction(state *engine.GameState, pieces []tile.Tile) (match.Decision, error) {
	d, ok := l.choose(state, options(state, pieces, l.player, true))
	if !ok {
		return match.Decision{}, match.ErrNoLegalMove
	}
	return d, nil
}

func (l *Lookahead) PickPieceToPop(state *engine.GameState, _ []tile.Tile, candidates []hex.Position) (hex.Position, error) {
	return pickOpponentFirst(state, l.player, candidates), nil
}

func (l *Lookahead) choose(state *engine.GameState, opts []option) (match.Decision, bool) {
	if len(opts) == 0 {
		return match.Decision{}, false
	}

	slices.SortStableFunc(opts, func(a, b option) int { return cmp.Compare(b.score, a.score) })
	if width := max(l.Width, 1); len(opts) > width {
		opts = opts[:width]
	}

	opponent := (l.player + 1) % state.Players()
	replies := fullSet(state, opponent)

	var (
		ties []match.Decision
		best int
	)
	for _, o := range opts {
		next, err := apply(state, o.decision, l.player)
		if err != nil {
			continue
		}
		value := o.score - bestReply(next, replies)
		switch {
		case len(ties) == 0 || value > best:
			best = value
			ties = []match.Decision{o.decision}
		case value == best:
			ties = append(ties, o.decision)
		}
	}
	if len(ties) == 0 {
		return opts[0].decision, true
	}
	return ties[l.rng.Intn(len(ties))], true
}

// fullSet returns one tile of every configuration in the ruleset for color.
func fullSet(state *engine.GameState, color int) []tile.Tile {
	patterns, err := state.Rules().Patterns()
	if err != nil {
		return nil
	}
	out := make([]tile.Tile, 0, len(patterns))
	for _, p := range patterns {
		out = append(out, tile.Tile{Pattern: p, Color: color})
	}
	return out
}

func bestReply(state *engine.GameState, pieces []tile.Tile) int {
	best := 0
	for _, p := range state.LegalPlacements(pieces) {
		best = max(best, p.Score)
	}
	return best
}
