package strategy

import (
	"math/rand"

	"github.com/wricardo/tangosim/game/engine"
	"github.com/wricardo/tangosim/game/hex"
	"github.com/wricardo/tangosim/game/match"
	"github.com/wricardo/tangosim/game/tile"
)

// Greedy takes the option with the highest immediate score. Equal options
// are broken by a seeded coin so repeated games still differ.
type Greedy struct {
	player int
	rng    *rand.Rand
}

// NewGreedy creates a greedy player.
func NewGreedy(player int, seed int64) *Greedy {
	return &Greedy{player: player, rng: rand.New(rand.NewSource(seed))}
}

func (g *Greedy) FormulateTurn(state *engine.GameState, pieces []tile.Tile) (tile.Tile, hex.Position, error) {
	best, ok := g.best(options(state, pieces, g.player, false))
	if !ok {
		return tile.Tile{}, hex.Position{}, match.ErrNoLegalMove
	}
	return best.Tile, best.Position, nil
}

func (g *Greedy) FormulateAction(state *engine.GameState, pieces []tile.Tile) (match.Decision, error) {
	best, ok := g.best(options(state, pieces, g.player, true))
	if !ok {
		return match.Decision{}, match.ErrNoLegalMove
	}
	return best, nil
}

// PickPieceToPop prefers an opponent's tile, then the lowest position.
func (g *Greedy) PickPieceToPop(state *engine.GameState, _ []tile.Tile, candidates []hex.Position) (hex.Position, error) {
	return pickOpponentFirst(state, g.player, candidates), nil
}

func (g *Greedy) best(opts []option) (match.Decision, bool) {
	if len(opts) == 0 {
		return match.Decision{}, false
	}
	top := opts[0].score
	for _, o := range opts[1:] {
		top = max(top, o.score)
	}
	var ties []match.Decision
	for _, o := range opts {
		if o.score == top {
			ties = append(ties, o.decision)
		}
	}
	return ties[g.rng.Intn(len(ties))], true
}

func pickOpponentFirst(state *engine.GameState, player int, candidates []hex.Position) hex.Position {
	for _, p := range candidates {
		if t, ok := state.TileAt(p); ok && t.Color != player {
			return p
		}
	}
	return candidates[0]
}
