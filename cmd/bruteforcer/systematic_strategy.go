package main

import (
	"github.com/wricardo/tangosim/game/hex"
	"github.com/wricardo/tangosim/game/service"
	"github.com/wricardo/tangosim/game/tile"
)

// Choice is the request the strategy wants to send. Both fields nil means pass.
type Choice struct {
	Place *service.PlaceRequest
	Move  *service.MoveRequest
}

// SystematicStrategy ranks every legal move the server offers. It takes the
// highest score, then the position touching most of its own tiles, then the
// tile with most ticks, so that hard-to-place tiles leave the pool early.
// Relocations are only used when they beat every placement.
type SystematicStrategy struct {
	player int
}

// rank orders candidate moves; greater is better.
type rank struct {
	score   int
	friends int
	ticks   int
	pos     hex.Position
	index   int
}

func (a rank) beats(b rank) bool {
	switch {
	case a.score != b.score:
		return a.score > b.score
	case a.friends != b.friends:
		return a.friends > b.friends
	case a.ticks != b.ticks:
		return a.ticks > b.ticks
	case a.pos != b.pos:
		return hex.Compare(a.pos, b.pos) < 0
	default:
		return a.index < b.index
	}
}

func NewSystematicStrategy(player int) *SystematicStrategy {
	return &SystematicStrategy{player: player}
}

// Choose picks the move to play from the server's legal moves.
func (s *SystematicStrategy) Choose(state *service.GameView, moves *service.LegalMoves) Choice {
	board := make(map[hex.Position]tile.Tile, len(state.Board.Tiles))
	for _, pt := range state.Board.Tiles {
		board[pt.Position] = pt.Tile
	}
	var pool []tile.Tile
	if s.player < len(state.Pools) {
		pool = state.Pools[s.player]
	}

	var (
		choice Choice
		best   rank
		found  bool
	)
	for _, p := range moves.Placements {
		r := rank{
			score:   p.Score,
			friends: s.friends(board, p.Position, nil),
			ticks:   p.Tile.NumTicks(),
			pos:     p.Position,
			index:   p.Tile.Index,
		}
		if found && !r.beats(best) {
			continue
		}
		best, found = r, true
		choice = Choice{Place: &service.PlaceRequest{
			Player:    s.player,
			TileIndex: p.Tile.Index,
			Rotation:  rotation(pool, p.Tile),
			Position:  p.Position,
		}}
	}

	placed := found
	for _, m := range moves.Relocations {
		if placed && m.Score <= best.score {
			continue
		}
		r := rank{
			score:   m.Score,
			friends: s.friends(board, m.To, &m.From),
			ticks:   m.Tile.NumTicks(),
			pos:     m.To,
			index:   m.Tile.Index,
		}
		if found && !r.beats(best) {
			continue
		}
		best, found = r, true

		from := board[m.From]
		choice = Choice{Move: &service.MoveRequest{
			Player:   s.player,
			From:     m.From,
			To:       m.To,
			Rotation: rotation([]tile.Tile{from}, m.Tile),
		}}
	}

	return choice
}

// friends counts the player's tiles around p, ignoring the tile at skip.
func (s *SystematicStrategy) friends(board map[hex.Position]tile.Tile, p hex.Position, skip *hex.Position) int {
	n := 0
	for _, nb := range hex.Neighbors(p) {
		if skip != nil && nb == *skip {
			continue
		}
		if t, ok := board[nb]; ok && t.Color == s.player {
			n++
		}
	}
	return n
}

// rotation finds the clockwise steps that turn the pool tile with the same
// index into oriented.
func rotation(pool []tile.Tile, oriented tile.Tile) int {
	t, ok := tile.FindByIndex(pool, oriented.Index)
	if !ok {
		return 0
	}
	for r := range hex.Sides {
		if t.Pattern.Rotate(r) == oriented.Pattern {
			return r
		}
	}
	return 0
}
