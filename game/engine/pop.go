package engine

import (
	"fmt"

	"github.com/wricardo/tangosim/game/hex"
	"github.com/wricardo/tangosim/game/tile"
)

// Satisfied reports whether the tile at p is ready to pop: all six neighbours
// are occupied and every shared edge agrees.
func (s *GameState) Satisfied(p hex.Position) bool {
	t, ok := s.tiles[p]
	if !ok {
		return false
	}
	for side, n := range hex.Neighbors(p) {
		other, ok := s.tiles[n]
		if !ok {
			return false
		}
		if t.Pattern[side] != other.Pattern[hex.Opposite(side)] {
			return false
		}
	}
	return true
}

// PopCandidates lists the tiles around seed that are eligible to pop, sorted.
// The tile at seed itself is never a candidate.
func (s *GameState) PopCandidates(seed hex.Position) []hex.Position {
	var out []hex.Position
	for _, n := range hex.Neighbors(seed) {
		if s.Satisfied(n) {
			out = append(out, n)
		}
	}
	hex.Sort(out)
	return out
}

// Pop removes a satisfied tile on behalf of player and returns the new state
// with the removed tile. The popped tile belongs to its colour's owner; player
// is credited the ruleset's pop bonus.
func (s *GameState) Pop(p hex.Position, player int) (*GameState, tile.Tile, error) {
	if err := s.validPlayer(player); err != nil {
		return nil, tile.Tile{}, err
	}
	if !s.Satisfied(p) {
		return nil, tile.Tile{}, fmt.Errorf("%w: tile at %v is not surrounded", ErrIllegalPop, p)
	}

	next := s.clone()
	popped := next.lift(p)
	next.scores[player] += s.rules.PopBonus
	return next, popped, nil
}
