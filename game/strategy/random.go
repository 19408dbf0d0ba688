package strategy

import (
	"math/rand"

	"github.com/wricardo/tangosim/game/engine"
	"github.com/wricardo/tangosim/game/hex"
	"github.com/wricardo/tangosim/game/match"
	"github.com/wricardo/tangosim/game/tile"
)

// Random picks uniformly among the legal options.
type Random struct {
	player int
	rng    *rand.Rand
}

// NewRandom creates a random player. The same seed replays the same game.
func NewRandom(player int, seed int64) *Random {
	return &Random{player: player, rng: rand.New(rand.NewSource(seed))}
}

func (r *Random) FormulateTurn(state *engine.GameState, pieces []tile.Tile) (tile.Tile, hex.Position, error) {
	opts := options(state, pieces, r.player, false)
	if len(opts) == 0 {
		return tile.Tile{}, hex.Position{}, match.ErrNoLegalMove
	}
	d := opts[r.rng.Intn(len(opts))].decision
	return d.Tile, d.Position, nil
}

func (r *Random) FormulateAction(state *engine.GameState, pieces []tile.Tile) (match.Decision, error) {
	opts := options(state, pieces, r.player, true)
	if len(opts) == 0 {
		return match.Decision{}, match.ErrNoLegalMove
	}
	return opts[r.rng.Intn(len(opts))].decision, nil
}

func (r *Random) PickPieceToPop(_ *engine.GameState, _ []tile.Tile, candidates []hex.Position) (hex.Position, error) {
	return candidates[r.rng.Intn(len(candidates))], nil
}
