package engine

import (
	"encoding/json"
	"fmt"
	"maps"
	"slices"

	"github.com/wricardo/tangosim/game/hex"
	"github.com/wricardo/tangosim/game/tile"
)

// GameState is an immutable board snapshot. Every placement, pop or relocation
// returns a new value; existing values are never modified and may be shared.
type GameState struct {
	rules     *Ruleset
	starts    map[hex.Position]struct{}
	tiles     map[hex.Position]tile.Tile
	available map[hex.Position]struct{}
	scores    []int
	// enclosed is kept sorted by each region's first position.
	enclosed []Region
	// radius bounds the distance from the origin of every tile ever placed.
	radius int
}

// New creates the empty board for a ruleset.
func New(rules Ruleset) (*GameState, error) {
	r := rules.Clone()
	r.ApplyDefaults()
	if err := ValidateRuleset(&r); err != nil {
		return nil, err
	}

	s := &GameState{
		rules:     &r,
		starts:    make(map[hex.Position]struct{}, len(r.StartPositions)),
		tiles:     make(map[hex.Position]tile.Tile),
		available: make(map[hex.Position]struct{}, len(r.StartPositions)),
		scores:    make([]int, r.Players),
	}
	for _, p := range r.StartPositions {
		s.starts[p] = struct{}{}
		s.available[p] = struct{}{}
		s.radius = max(s.radius, hex.Distance(hex.Origin, p))
	}
	return s, nil
}

// MustNew is New for rulesets known to be valid.
func MustNew(rules Ruleset) *GameState {
	s, err := New(rules)
	if err != nil {
		panic(err)
	}
	return s
}

// Rules returns a copy of the ruleset the board was created with.
func (s *GameState) Rules() Ruleset {
	return s.rules.Clone()
}

// Players returns the number of players in the score ledger.
func (s *GameState) Players() int {
	return len(s.scores)
}

// Scores returns the score ledger in player order.
func (s *GameState) Scores() []int {
	return slices.Clone(s.scores)
}

// Score returns a single player's score.
func (s *GameState) Score(player int) int {
	if player < 0 || player >= len(s.scores) {
		return 0
	}
	return s.scores[player]
}

// TileAt returns the tile at p.
func (s *GameState) TileAt(p hex.Position) (tile.Tile, bool) {
	t, ok := s.tiles[p]
	return t, ok
}

// Occupied reports whether a tile sits at p.
func (s *GameState) Occupied(p hex.Position) bool {
	_, ok := s.tiles[p]
	return ok
}

// NumTiles returns the number of tiles on the board.
func (s *GameState) NumTiles() int {
	return len(s.tiles)
}

// IsEmpty reports whether the board has no tiles.
func (s *GameState) IsEmpty() bool {
	return len(s.tiles) == 0
}

// Tiles returns every placed tile sorted by position.
func (s *GameState) Tiles() []PlacedTile {
	out := make([]PlacedTile, 0, len(s.tiles))
	for _, p := range s.positions() {
		out = append(out, PlacedTile{Position: p, Tile: s.tiles[p]})
	}
	return out
}

// TilesOf returns the tiles of one colour sorted by position.
func (s *GameState) TilesOf(color int) []PlacedTile {
	var out []PlacedTile
	for _, pt := range s.Tiles() {
		if pt.Tile.Color == color {
			out = append(out, pt)
		}
	}
	return out
}

// AvailablePositions returns the placeable positions, sorted.
func (s *GameState) AvailablePositions() []hex.Position {
	out := slices.Collect(maps.Keys(s.available))
	hex.Sort(out)
	return out
}

// IsAvailable reports whether p is in the available set.
func (s *GameState) IsAvailable(p hex.Position) bool {
	_, ok := s.available[p]
	return ok
}

// Snapshot returns a serialisable copy of the board.
func (s *GameState) Snapshot() Snapshot {
	regions := s.Enclosed()
	enclosed := make([][]hex.Position, 0, len(regions))
	for _, r := range regions {
		enclosed = append(enclosed, slices.Clone(r))
	}
	return Snapshot{
		Tiles:      s.Tiles(),
		Scores:     s.Scores(),
		TileCounts: s.CountByColor(),
		Available:  s.AvailablePositions(),
		Enclosed:   enclosed,
		Mode:       s.rules.Mode,
	}
}

// MarshalJSON encodes the board as its Snapshot.
func (s *GameState) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Snapshot())
}

func (s *GameState) String() string {
	return fmt.Sprintf("board{tiles=%d available=%d scores=%v}", len(s.tiles), len(s.available), s.scores)
}

func (s *GameState) positions() []hex.Position {
	out := slices.Collect(maps.Keys(s.tiles))
	hex.Sort(out)
	return out
}

// clone copies the mutable parts so the copy can be edited before it is published.
func (s *GameState) clone() *GameState {
	next := &GameState{
		rules:     s.rules,
		starts:    s.starts,
		tiles:     make(map[hex.Position]tile.Tile, len(s.tiles)+1),
		available: make(map[hex.Position]struct{}, len(s.available)+hex.Sides),
		scores:    slices.Clone(s.scores),
		enclosed:  slices.Clone(s.enclosed),
		radius:    s.radius,
	}
	maps.Copy(next.tiles, s.tiles)
	maps.Copy(next.available, s.available)
	return next
}

// put and lift edit an unpublished clone and keep availability and the
// enclosed regions in step with the occupied set by refreshing only the
// touched neighbourhood.
func (s *GameState) put(p hex.Position, t tile.Tile) {
	wasEmpty := len(s.tiles) == 0
	s.tiles[p] = t
	s.radius = max(s.radius, hex.Distance(hex.Origin, p))
	if wasEmpty {
		clear(s.available)
	}
	s.refreshAround(p)
	s.updateEnclosed(p)
}

func (s *GameState) lift(p hex.Position) tile.Tile {
	t := s.tiles[p]
	delete(s.tiles, p)
	if len(s.tiles) == 0 {
		clear(s.available)
		for sp := range s.starts {
			s.available[sp] = struct{}{}
		}
		s.enclosed = nil
		return t
	}
	s.refreshAround(p)
	s.updateEnclosed(p)
	return t
}

func (s *GameState) refreshAround(p hex.Position) {
	s.refresh(p)
	for _, n := range hex.Neighbors(p) {
		s.refresh(n)
	}
}

func (s *GameState) refresh(p hex.Position) {
	if s.placeable(p) {
		s.available[p] = struct{}{}
	} else {
		delete(s.available, p)
	}
}

// placeable is the availability rule: empty, touching the board, and not a
// single-cell hole. On an empty board only the start positions qualify.
func (s *GameState) placeable(p hex.Position) bool {
	if _, ok := s.tiles[p]; ok {
		return false
	}
	if len(s.tiles) == 0 {
		_, ok := s.starts[p]
		return ok
	}
	n := s.occupiedNeighbors(p)
	return n > 0 && n < hex.Sides
}

func (s *GameState) occupiedNeighbors(p hex.Position) int {
	count := 0
	for _, n := range hex.Neighbors(p) {
		if _, ok := s.tiles[n]; ok {
			count++
		}
	}
	return count
}

func (s *GameState) validPlayer(player int) error {
	if player < 0 || player >= len(s.scores) {
		return fmt.Errorf("%w: %d", ErrUnknownPlayer, player)
	}
	return nil
}
