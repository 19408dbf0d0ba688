package engine

import (
	"math/rand"
	"slices"
	"testing"

	"github.com/wricardo/tangosim/game/hex"
	"github.com/wricardo/tangosim/game/tile"
)

// recomputeAvailable derives the available set from scratch.
func recomputeAvailable(s *GameState) []hex.Position {
	if s.IsEmpty() {
		out := slices.Clone(s.rules.StartPositions)
		hex.Sort(out)
		return out
	}
	seen := make(map[hex.Position]bool)
	var out []hex.Position
	for _, pt := range s.Tiles() {
		for _, n := range hex.Neighbors(pt.Position) {
			if seen[n] || s.Occupied(n) {
				continue
			}
			seen[n] = true
			if k := s.occupiedNeighbors(n); k > 0 && k < hex.Sides {
				out = append(out, n)
			}
		}
	}
	hex.Sort(out)
	return out
}

// randomGame plays random legal placements, popping whatever becomes
// surrounded, and calls check after every change.
func randomGame(t *testing.T, rules Ruleset, seed int64, check func(s *GameState, pools [][]tile.Tile)) {
	t.Helper()
	rng := rand.New(rand.NewSource(seed))

	s := MustNew(rules)
	pools, err := rules.StartingPools()
	if err != nil {
		t.Fatalf("StartingPools: %v", err)
	}

	player := 0
	for turn := 0; turn < 200; turn++ {
		moves := s.LegalPlacements(pools[player])
		if len(moves) > 0 {
			m := moves[rng.Intn(len(moves))]
			next, err := s.PlaceTile(m.Tile, m.Position, player)
			if err != nil {
				t.Fatalf("enumerated placement %+v rejected: %v", m, err)
			}
			if got := next.Score(player) - s.Score(player); got != m.Score {
				t.Fatalf("placement %+v scored %d", m, got)
			}
			pools[player], _ = tile.RemoveByIndex(pools[player], m.Tile.Index)
			s = next
			check(s, pools)

			for {
				candidates := s.PopCandidates(m.Position)
				if len(candidates) == 0 {
					break
				}
				var popped tile.Tile
				s, popped, err = s.Pop(candidates[0], player)
				if err != nil {
					t.Fatalf("Pop(%v): %v", candidates[0], err)
				}
				pools[popped.Color] = append(pools[popped.Color], popped)
				check(s, pools)
			}
		}
		player = (player + 1) % len(pools)
	}
}

func TestRandomPlay_AvailabilityMatchesRecompute(t *testing.T) {
	for seed := int64(1); seed <= 5; seed++ {
		randomGame(t, SimpleRuleset(), seed, func(s *GameState, _ [][]tile.Tile) {
			if got, want := s.AvailablePositions(), recomputeAvailable(s); !slices.Equal(got, want) {
				t.Fatalf("seed %d: incremental availability %v, recomputed %v", seed, got, want)
			}
		})
	}
}

func sameRegions(a, b []Region) bool {
	return slices.EqualFunc(a, b, func(x, y Region) bool { return slices.Equal(x, y) })
}

func TestRandomPlay_EnclosedMatchesRecompute(t *testing.T) {
	three := SimpleRuleset()
	three.Players = 3

	for _, rules := range []Ruleset{SimpleRuleset(), three} {
		for seed := int64(1); seed <= 5; seed++ {
			randomGame(t, rules, seed, func(s *GameState, _ [][]tile.Tile) {
				if got, want := s.Enclosed(), s.EnclosedRegions(); !sameRegions(got, want) {
					t.Fatalf("%d players, seed %d: tracked enclosed regions %v, recomputed %v", rules.Players, seed, got, want)
				}
			})
		}
	}
}

func TestRandomPlay_ConservesTiles(t *testing.T) {
	rules := SimpleRuleset()
	rules.Players = 3
	total := 3 * len(tile.StandardPatterns())

	randomGame(t, rules, 42, func(s *GameState, pools [][]tile.Tile) {
		held := 0
		for player, pool := range pools {
			held += len(pool)
			for _, tl := range pool {
				if tl.Color != player {
					t.Fatalf("player %d holds a colour %d tile", player, tl.Color)
				}
			}
		}
		if held+s.NumTiles() != total {
			t.Fatalf("%d on board + %d in pools, want %d", s.NumTiles(), held, total)
		}
	})
}

func TestRandomPlay_EnclosedRegionsAreUnavailable(t *testing.T) {
	randomGame(t, SimpleRuleset(), 7, func(s *GameState, _ [][]tile.Tile) {
		for _, region := range s.EnclosedRegions() {
			for _, p := range region {
				if s.Occupied(p) {
					t.Fatalf("enclosed region %v contains an occupied position", region)
				}
				if !s.IsEnclosed(p) {
					t.Fatalf("IsEnclosed(%v) disagrees with EnclosedRegions", p)
				}
			}
		}
	})
}

func TestRandomPlay_ScoresNeverDecrease(t *testing.T) {
	var last []int
	randomGame(t, SimpleRuleset(), 11, func(s *GameState, _ [][]tile.Tile) {
		scores := s.Scores()
		for i := range last {
			if scores[i] < last[i] {
				t.Fatalf("score of player %d dropped from %d to %d", i, last[i], scores[i])
			}
		}
		last = scores
	})
}

func TestEnclosedRegionsAround(t *testing.T) {
	placed := map[hex.Position]tile.Tile{}
	for _, p := range hex.Neighbors(hex.Origin) {
		placed[p] = mustTile(t, "000000", 0)
	}
	s := board(t, SimpleRuleset(), placed)

	regions := s.EnclosedRegionsAround(hex.Origin.Neighbor(0))
	if len(regions) != 1 || !regions[0].Contains(hex.Origin) {
		t.Errorf("EnclosedRegionsAround() = %v, want the origin hole", regions)
	}

	if got := s.EnclosedRegionsAround(hex.Position{Q: 0, R: -2}); len(got) != 0 {
		t.Errorf("outer cells are not enclosed, got %v", got)
	}

	if _, ok := s.EnclosedRegionOf(hex.Position{Q: 3, R: 0}); ok {
		t.Error("open board reported as enclosed")
	}
}

func TestEnclosedRegion_MultiCell(t *testing.T) {
	// A ring around (0,0) and (1,0).
	hole := map[hex.Position]bool{{Q: 0, R: 0}: true, {Q: 1, R: 0}: true}
	placed := map[hex.Position]tile.Tile{}
	for p := range hole {
		for _, n := range hex.Neighbors(p) {
			if !hole[n] {
				placed[n] = mustTile(t, "000000", 0)
			}
		}
	}
	s := board(t, SimpleRuleset(), placed)

	region, ok := s.EnclosedRegionOf(hex.Origin)
	if !ok {
		t.Fatal("two-cell hole should be enclosed")
	}
	if len(region) != 2 || !region.Contains(hex.Position{Q: 1, R: 0}) {
		t.Errorf("region = %v", region)
	}
	if !s.IsAvailable(hex.Origin) {
		t.Error("cells of a multi-cell hole keep an empty neighbour and stay available")
	}
}
