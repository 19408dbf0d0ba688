package match

import (
	"github.com/wricardo/tangosim/game/engine"
	"github.com/wricardo/tangosim/game/hex"
	"github.com/wricardo/tangosim/game/tile"
)

// Strategy chooses a player's moves. Implementations receive read-only
// values: the board is immutable and pieces is a copy of the player's pool.
type Strategy interface {
	// FormulateTurn picks a tile from pieces, in any orientation, and where
	// to place it. Returning ErrNoLegalMove passes the turn.
	FormulateTurn(state *engine.GameState, pieces []tile.Tile) (tile.Tile, hex.Position, error)
	// PickPieceToPop picks one of two or more pop candidates.
	PickPieceToPop(state *engine.GameState, pieces []tile.Tile, candidates []hex.Position) (hex.Position, error)
}

// Relocator is implemented by strategies that can also move tiles already
// on the board. When present it is used instead of FormulateTurn.
type Relocator interface {
	FormulateAction(state *engine.GameState, pieces []tile.Tile) (Decision, error)
}

// StrategyFunc adapts plain functions to Strategy. A nil Pop picks the
// first candidate.
type StrategyFunc struct {
	Turn func(state *engine.GameState, pieces []tile.Tile) (tile.Tile, hex.Position, error)
	Pop  func(state *engine.GameState, pieces []tile.Tile, candidates []hex.Position) (hex.Position, error)
}

func (f StrategyFunc) FormulateTurn(state *engine.GameState, pieces []tile.Tile) (tile.Tile, hex.Position, error) {
	if f.Turn == nil {
		return tile.Tile{}, hex.Position{}, ErrNoLegalMove
	}
	return f.Turn(state, pieces)
}

func (f StrategyFunc) PickPieceToPop(state *engine.GameState, pieces []tile.Tile, candidates []hex.Position) (hex.Position, error) {
	if f.Pop == nil {
		return candidates[0], nil
	}
	return f.Pop(state, pieces, candidates)
}
