package engine

import (
	"github.com/wricardo/tangosim/game/hex"
	"github.com/wricardo/tangosim/game/tile"
)

// LegalPlacements enumerates every legal placement of the given pieces, in
// every distinct orientation, on every available position.
func (s *GameState) LegalPlacements(pieces []tile.Tile) []Placement {
	positions := s.AvailablePositions()
	var out []Placement
	for _, piece := range pieces {
		for _, oriented := range piece.Rotations() {
			for _, p := range positions {
				if delta, ok := s.ScorePotentialMove(oriented, p); ok {
					out = append(out, Placement{Tile: oriented, Position: p, Score: delta})
				}
			}
		}
	}
	return out
}

// LegalRelocations enumerates every legal relocation for player. It is empty
// outside the advanced mode.
func (s *GameState) LegalRelocations(player int) []Relocation {
	if s.rules.Mode != ModeAdvanced {
		return nil
	}

	var out []Relocation
	for _, pt := range s.TilesOf(player) {
		if pt.Tile.NumTicks() == 0 {
			continue
		}
		lifted, err := s.liftFor(pt.Tile, pt.Position, player)
		if err != nil {
			continue
		}
		for _, to := range hex.Range(pt.Position, pt.Tile.NumTicks()) {
			if to == pt.Position || s.Occupied(to) {
				continue
			}
			for _, oriented := range pt.Tile.Rotations() {
				if delta, err := lifted.checkLanding(oriented, pt.Position, to); err == nil {
					out = append(out, Relocation{Tile: oriented, From: pt.Position, To: to, Score: delta})
				}
			}
		}
	}
	return out
}

// HasLegalAction reports whether player can place one of pieces or, in the
// advanced mode, relocate a tile.
func (s *GameState) HasLegalAction(pieces []tile.Tile, player int) bool {
	positions := s.AvailablePositions()
	for _, piece := range pieces {
		for _, oriented := range piece.Rotations() {
			for _, p := range positions {
				if _, ok := s.ScorePotentialMove(oriented, p); ok {
					return true
				}
			}
		}
	}
	return len(s.LegalRelocations(player)) > 0
}

// CountByColor returns how many board tiles each player owns.
func (s *GameState) CountByColor() []int {
	out := make([]int, len(s.scores))
	for _, t := range s.tiles {
		if t.Color >= 0 && t.Color < len(out) {
			out[t.Color]++
		}
	}
	return out
}
