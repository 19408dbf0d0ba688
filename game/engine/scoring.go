package engine

import (
	"fmt"

	"github.com/wricardo/tangosim/game/hex"
	"github.com/wricardo/tangosim/game/tile"
)

// ScorePotentialMove returns the score a placement would earn, or false when
// the placement is illegal. It never changes the state.
func (s *GameState) ScorePotentialMove(t tile.Tile, p hex.Position) (int, bool) {
	delta, err := s.CheckPlacement(t, p)
	if err != nil {
		return 0, false
	}
	return delta, true
}

// CheckPlacement is ScorePotentialMove with the reason for rejection.
func (s *GameState) CheckPlacement(t tile.Tile, p hex.Position) (int, error) {
	if _, ok := s.tiles[p]; ok {
		return 0, fmt.Errorf("%w: %v", ErrOccupied, p)
	}
	if _, ok := s.available[p]; !ok {
		if s.occupiedNeighbors(p) == hex.Sides {
			return 0, fmt.Errorf("%w: %v", ErrEnclosed, p)
		}
		return 0, fmt.Errorf("%w: %v", ErrUnavailable, p)
	}
	return s.edgeScore(t, p)
}

// PlaceTile places a tile for player and returns the resulting state.
// The tile must carry the player's colour. Nothing changes on error.
func (s *GameState) PlaceTile(t tile.Tile, p hex.Position, player int) (*GameState, error) {
	if err := s.validPlayer(player); err != nil {
		return nil, err
	}
	if t.Color != player {
		return nil, fmt.Errorf("%w: tile colour %d, player %d", ErrNotOwner, t.Color, player)
	}

	delta, err := s.CheckPlacement(t, p)
	if err != nil {
		return nil, err
	}

	next := s.clone()
	next.put(p, t)
	next.scores[player] += delta
	return next, nil
}

// edgeScore checks every shared edge of t at p and counts the scoring ones.
func (s *GameState) edgeScore(t tile.Tile, p hex.Position) (int, error) {
	delta := 0
	for side, n := range hex.Neighbors(p) {
		other, ok := s.tiles[n]
		if !ok {
			continue
		}
		mine := t.Pattern[side]
		theirs := other.Pattern[hex.Opposite(side)]
		if mine != theirs {
			return 0, fmt.Errorf("%w: side %d of %v against %v", ErrEdgeMismatch, side, p, n)
		}
		if mine && s.edgeCounts(t.Color, other.Color) {
			delta++
		}
	}
	return delta, nil
}

// edgeCounts reports whether a marked edge between two colours earns a point.
func (s *GameState) edgeCounts(placing, neighbor int) bool {
	if s.rules.Scoring == ScoreAnyColor {
		return true
	}
	return placing == neighbor
}
