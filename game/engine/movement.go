package engine

import (
	"fmt"

	"github.com/wricardo/tangosim/game/hex"
	"github.com/wricardo/tangosim/game/tile"
)

// ScorePotentialRelocation returns the score moving the tile at from to to
// would earn, or false when the move is illegal.
func (s *GameState) ScorePotentialRelocation(t tile.Tile, from, to hex.Position, player int) (int, bool) {
	delta, err := s.CheckRelocation(t, from, to, player)
	if err != nil {
		return 0, false
	}
	return delta, true
}

// CheckRelocation is ScorePotentialRelocation with the reason for rejection.
func (s *GameState) CheckRelocation(t tile.Tile, from, to hex.Position, player int) (int, error) {
	lifted, err := s.liftFor(t, from, player)
	if err != nil {
		return 0, err
	}
	return lifted.checkLanding(t, from, to)
}

// MoveTile relocates one of player's tiles in the advanced variant. t is the
// board tile at from in its new orientation. Nothing changes on error.
func (s *GameState) MoveTile(t tile.Tile, from, to hex.Position, player int) (*GameState, error) {
	lifted, err := s.liftFor(t, from, player)
	if err != nil {
		return nil, err
	}
	delta, err := lifted.checkLanding(t, from, to)
	if err != nil {
		return nil, err
	}

	lifted.put(to, t)
	lifted.scores[player] += delta
	return lifted, nil
}

// liftFor validates the origin of a relocation and returns an unpublished
// copy of the board without the moving tile.
func (s *GameState) liftFor(t tile.Tile, from hex.Position, player int) (*GameState, error) {
	if s.rules.Mode != ModeAdvanced {
		return nil, fmt.Errorf("%w: relocation needs %s mode", ErrModeDisallow, ModeAdvanced)
	}
	if err := s.validPlayer(player); err != nil {
		return nil, err
	}

	current, ok := s.tiles[from]
	if !ok {
		return nil, fmt.Errorf("%w: %v", ErrNoTile, from)
	}
	if current.Color != player {
		return nil, fmt.Errorf("%w: tile at %v has colour %d", ErrNotOwner, from, current.Color)
	}
	if t.Index != current.Index || t.Color != current.Color || !t.IsRotationallyEqual(current) {
		return nil, fmt.Errorf("%w: tile %v is not the tile at %v", ErrInvalidMove, t, from)
	}

	lifted := s.clone()
	lifted.lift(from)
	return lifted, nil
}

// checkLanding runs on a lifted board and scores the landing of t at to.
func (s *GameState) checkLanding(t tile.Tile, from, to hex.Position) (int, error) {
	d := hex.Distance(from, to)
	if d < 1 || d > t.NumTicks() {
		return 0, fmt.Errorf("%w: %v to %v is %d cells, tile allows %d", ErrOutOfRange, from, to, d, t.NumTicks())
	}
	if _, ok := s.tiles[to]; ok {
		return 0, fmt.Errorf("%w: %v", ErrOccupied, to)
	}

	neighbors := s.occupiedNeighbors(to)
	if s.IsEmpty() {
		if _, ok := s.starts[to]; !ok {
			return 0, fmt.Errorf("%w: %v", ErrUnavailable, to)
		}
	} else if neighbors == 0 {
		return 0, fmt.Errorf("%w: %v does not touch the board", ErrUnavailable, to)
	}

	delta, err := s.edgeScore(t, to)
	if err != nil {
		return 0, err
	}

	// Landing inside an enclosure is only allowed when it pops a tile or
	// leaves the landed tile with an open side.
	if neighbors == hex.Sides && s.IsEnclosed(to) {
		probe := s.clone()
		probe.put(to, t)
		if len(probe.PopCandidates(to)) == 0 {
			return 0, fmt.Errorf("%w: landing at %v would be surrounded without a pop", ErrEnclosed, to)
		}
	}

	return delta, nil
}
