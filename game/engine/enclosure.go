package engine

import (
	"slices"

	"github.com/wricardo/tangosim/game/hex"
)

// Region is a connected set of empty positions, sorted.
type Region []hex.Position

// Contains reports whether p belongs to the region.
func (r Region) Contains(p hex.Position) bool {
	for _, q := range r {
		if q == p {
			return true
		}
	}
	return false
}

// EnclosedRegionOf returns the empty region containing p when that region is
// fully bounded by tiles. It returns false for occupied positions and for
// regions that reach open board.
func (s *GameState) EnclosedRegionOf(p hex.Position) (Region, bool) {
	r, ok := s.regionOf(p)
	return slices.Clone(r), ok
}

// Enclosed returns the enclosed regions maintained by every placement, pop and
// relocation, ordered by their first position.
func (s *GameState) Enclosed() []Region {
	return slices.Clone(s.enclosed)
}

// EnclosedRegions recomputes every enclosed region from scratch, seeding the
// search from the empty neighbours of each tile. Enclosed returns the same
// regions without scanning the board.
func (s *GameState) EnclosedRegions() []Region {
	seeds := make([]hex.Position, 0, len(s.tiles))
	for _, p := range s.positions() {
		for _, n := range hex.Neighbors(p) {
			if !s.Occupied(n) {
				seeds = append(seeds, n)
			}
		}
	}
	regions := s.enclosedFrom(seeds)
	sortRegions(regions)
	return regions
}

// EnclosedRegionsAround finds the enclosed regions adjacent to a changed position.
func (s *GameState) EnclosedRegionsAround(changed hex.Position) []Region {
	seeds := make([]hex.Position, 0, hex.Sides+1)
	if !s.Occupied(changed) {
		seeds = append(seeds, changed)
	}
	for _, n := range hex.Neighbors(changed) {
		if !s.Occupied(n) {
			seeds = append(seeds, n)
		}
	}
	return s.enclosedFrom(seeds)
}

// IsEnclosed reports whether p is an empty position inside an enclosed region.
func (s *GameState) IsEnclosed(p hex.Position) bool {
	_, ok := s.regionOf(p)
	return ok
}

func (s *GameState) regionOf(p hex.Position) (Region, bool) {
	for _, r := range s.enclosed {
		if r.Contains(p) {
			return r, true
		}
	}
	return nil, false
}

// updateEnclosed drops the regions that touch changed and floods out from
// changed to find the regions that replace them.
func (s *GameState) updateEnclosed(changed hex.Position) {
	around := hex.Neighbors(changed)
	s.enclosed = slices.DeleteFunc(s.enclosed, func(r Region) bool {
		return r.Contains(changed) || slices.ContainsFunc(around[:], r.Contains)
	})
	s.enclosed = append(s.enclosed, s.EnclosedRegionsAround(changed)...)
	sortRegions(s.enclosed)
}

func sortRegions(regions []Region) {
	slices.SortFunc(regions, func(a, b Region) int {
		return hex.Compare(a[0], b[0])
	})
}

func (s *GameState) enclosedFrom(seeds []hex.Position) []Region {
	visited := make(map[hex.Position]bool)
	var out []Region
	for _, seed := range seeds {
		if visited[seed] {
			continue
		}
		region, enclosed := s.floodEmpty(seed)
		for _, p := range region {
			visited[p] = true
		}
		if enclosed {
			out = append(out, region)
		}
	}
	return out
}

// floodEmpty walks the empty cells connected to start. A region escapes when
// it reaches beyond the board radius, since nothing can bound it there.
func (s *GameState) floodEmpty(start hex.Position) (Region, bool) {
	limit := s.radius + 1
	seen := map[hex.Position]bool{start: true}
	queue := []hex.Position{start}
	region := Region{}
	enclosed := true

	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]
		region = append(region, p)

		if hex.Distance(hex.Origin, p) >= limit {
			enclosed = false
			continue
		}
		for _, n := range hex.Neighbors(p) {
			if seen[n] || s.Occupied(n) {
				continue
			}
			seen[n] = true
			queue = append(queue, n)
		}
	}

	hex.Sort(region)
	return region, enclosed
}
