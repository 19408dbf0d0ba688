package strategy

import (
	"github.com/wricardo/tangosim/game/engine"
	"github.com/wricardo/tangosim/game/match"
	"github.com/wricardo/tangosim/game/tile"
)

// option is a scored candidate decision.
type option struct {
	decision match.Decision
	score    int
}

// options lists every legal placement and, when withMoves is set, every
// legal relocation for player. Relocations only exist in the advanced mode.
func options(state *engine.GameState, pieces []tile.Tile, player int, withMoves bool) []option {
	placements := state.LegalPlacements(pieces)
	var relocations []engine.Relocation
	if withMoves {
		relocations = state.LegalRelocations(player)
	}

	out := make([]option, 0, len(placements)+len(relocations))
	for _, p := range placements {
		out = append(out, option{decision: match.Place(p.Tile, p.Position), score: p.Score})
	}
	for _, r := range relocations {
		out = append(out, option{decision: match.Move(r.Tile, r.From, r.To), score: r.Score})
	}
	return out
}

// apply plays an option on a board, popping the first candidate whenever
// something pops. It is used for look-ahead only.
func apply(state *engine.GameState, d match.Decision, player int) (*engine.GameState, error) {
	var (
		next *engine.GameState
		err  error
	)
	switch d.Type {
	case match.ActionMove:
		next, err = state.MoveTile(d.Tile, d.Origin, d.Position, player)
	default:
		next, err = state.PlaceTile(d.Tile, d.Position, player)
	}
	if err != nil {
		return nil, err
	}

	for {
		candidates := next.PopCandidates(d.Position)
		if len(candidates) == 0 {
			return next, nil
		}
		if next, _, err = next.Pop(candidates[0], player); err != nil {
			return nil, err
		}
	}
}
