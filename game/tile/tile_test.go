package tile

import (
	"encoding/json"
	"errors"
	"testing"
)

func mustPattern(t *testing.T, s string) Pattern {
	t.Helper()
	p, err := ParsePattern(s)
	if err != nil {
		t.Fatalf("ParsePattern(%q): %v", s, err)
	}
	return p
}

func TestNew_Malformed(t *testing.T) {
	tests := []struct {
		name    string
		pattern []bool
	}{
		{"empty", nil},
		{"five sides", []bool{true, false, true, false, true}},
		{"seven sides", []bool{true, false, true, false, true, false, true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.pattern, 0, 0)
			if !errors.Is(err, ErrMalformedTile) {
				t.Errorf("expected ErrMalformedTile, got %v", err)
			}
		})
	}
}

func TestNew_NegativeColor(t *testing.T) {
	_, err := New([]bool{true, false, true, false, true, false}, -1, 0)
	if !errors.Is(err, ErrInvalidColor) {
		t.Errorf("expected ErrInvalidColor, got %v", err)
	}
	if errors.Is(err, ErrMalformedTile) {
		t.Error("a six-sided pattern is not malformed")
	}
}

func TestNew_AssignsIndex(t *testing.T) {
	a, err := New([]bool{true, false, false, false, false, false}, 1, 0)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	b, err := New([]bool{true, false, false, false, false, false}, 1, 0)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if a.Index == 0 || b.Index == 0 {
		t.Fatal("expected non-zero indices")
	}
	if a.Index == b.Index {
		t.Errorf("expected distinct indices, both are %d", a.Index)
	}

	c, err := New([]bool{true, false, false, false, false, false}, 1, 42)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if c.Index != 42 {
		t.Errorf("explicit index not kept: %d", c.Index)
	}
}

func TestRotate(t *testing.T) {
	tile := FromPattern(mustPattern(t, "100000"), 0)

	if got := tile.Rotate(1).Pattern.String(); got != "010000" {
		t.Errorf("Rotate(1) = %s, want 010000", got)
	}
	if got := tile.Rotate(-1).Pattern.String(); got != "000001" {
		t.Errorf("Rotate(-1) = %s, want 000001", got)
	}

	rotated := tile.Rotate(2)
	if rotated.Color != tile.Color || rotated.Index != tile.Index {
		t.Error("rotation must keep color and index")
	}
	if tile.Pattern.String() != "100000" {
		t.Error("rotation mutated the original tile")
	}
}

func TestRotate_PeriodSix(t *testing.T) {
	for _, p := range StandardPatterns() {
		tile := FromPattern(p, 0)
		if tile.Rotate(6) != tile {
			t.Errorf("Rotate(6) changed %s", p)
		}
		if tile.Rotate(13) != tile.Rotate(1) {
			t.Errorf("Rotate(13) != Rotate(1) for %s", p)
		}
	}
}

func TestIsRotationallyEqual(t *testing.T) {
	for _, p := range StandardPatterns() {
		tile := FromPattern(p, 0)
		for k := 0; k < 6; k++ {
			if !tile.IsRotationallyEqual(tile.Rotate(k)) {
				t.Errorf("%s not rotationally equal to its rotation by %d", p, k)
			}
		}
	}

	single := FromPattern(mustPattern(t, "100000"), 0)
	double := FromPattern(mustPattern(t, "110000"), 0)
	if single.IsRotationallyEqual(double) {
		t.Error("different tick counts must not be rotationally equal")
	}

	otherColor := FromPattern(mustPattern(t, "000100"), 1)
	if !single.IsRotationallyEqual(otherColor) {
		t.Error("rotational equality ignores color")
	}

	meta := FromPattern(mustPattern(t, "101000"), 0)
	para := FromPattern(mustPattern(t, "100100"), 0)
	if meta.IsRotationallyEqual(para) {
		t.Error("101000 and 100100 are different shapes")
	}
}

func TestNumTicks(t *testing.T) {
	tests := []struct {
		pattern string
		want    int
	}{
		{"000000", 0},
		{"100000", 1},
		{"101010", 3},
		{"111110", 5},
		{"111111", 6},
	}
	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			if got := FromPattern(mustPattern(t, tt.pattern), 0).NumTicks(); got != tt.want {
				t.Errorf("NumTicks() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestRotations(t *testing.T) {
	tests := []struct {
		pattern string
		want    int
	}{
		{"111111", 1},
		{"101010", 2},
		{"100100", 3},
		{"100000", 6},
	}
	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			tile := FromPattern(mustPattern(t, tt.pattern), 0)
			rotations := tile.Rotations()
			if len(rotations) != tt.want {
				t.Errorf("got %d distinct rotations, want %d", len(rotations), tt.want)
			}
			if rotations[0] != tile {
				t.Error("first rotation should be the tile itself")
			}
		})
	}
}

func TestCanonical(t *testing.T) {
	a := FromPattern(mustPattern(t, "010000"), 0)
	b := FromPattern(mustPattern(t, "000010"), 0)
	if a.Pattern.Canonical() != b.Pattern.Canonical() {
		t.Error("rotations should share a canonical pattern")
	}
	if got := a.Pattern.Canonical().String(); got != "000001" {
		t.Errorf("Canonical() = %s, want 000001", got)
	}
}

func TestParsePattern(t *testing.T) {
	if _, err := ParsePattern("10101"); !errors.Is(err, ErrMalformedTile) {
		t.Errorf("short pattern: expected ErrMalformedTile, got %v", err)
	}
	if _, err := ParsePattern("10102x"); !errors.Is(err, ErrMalformedTile) {
		t.Errorf("bad digit: expected ErrMalformedTile, got %v", err)
	}
	p := mustPattern(t, "101010")
	if p.String() != "101010" {
		t.Errorf("round trip produced %s", p)
	}
}

func TestUnmarshalJSON_RejectsMalformed(t *testing.T) {
	var tile Tile
	err := json.Unmarshal([]byte(`{"pattern":[true,false],"color":0,"index":3}`), &tile)
	if !errors.Is(err, ErrMalformedTile) {
		t.Errorf("expected ErrMalformedTile, got %v", err)
	}

	err = json.Unmarshal([]byte(`{"pattern":[true,false,true,false,true,false],"color":1,"index":3}`), &tile)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tile.Pattern.String() != "101010" || tile.Color != 1 || tile.Index != 3 {
		t.Errorf("unexpected tile %+v", tile)
	}
}

func TestStandardSet(t *testing.T) {
	set := StandardSet(1)
	if len(set) != 13 {
		t.Fatalf("expected 13 standard tiles, got %d", len(set))
	}

	seen := make(map[int]bool)
	for _, tile := range set {
		if tile.Color != 1 {
			t.Errorf("tile %v has wrong color", tile)
		}
		if seen[tile.Index] {
			t.Errorf("duplicate index %d", tile.Index)
		}
		seen[tile.Index] = true
	}

	other := StandardSet(1)
	if other[0].Index == set[0].Index {
		t.Error("each set should get fresh indices")
	}
}

func TestPoolHelpers(t *testing.T) {
	pool := StandardSet(0)
	target := pool[4]

	found, ok := FindByIndex(pool, target.Index)
	if !ok || found != target {
		t.Fatalf("FindByIndex did not return %v", target)
	}

	rest, ok := RemoveByIndex(pool, target.Index)
	if !ok {
		t.Fatal("RemoveByIndex reported missing tile")
	}
	if len(rest) != len(pool)-1 {
		t.Errorf("expected %d tiles, got %d", len(pool)-1, len(rest))
	}
	if _, ok := FindByIndex(rest, target.Index); ok {
		t.Error("tile still present after removal")
	}
	if len(pool) != 13 {
		t.Error("RemoveByIndex must not modify its input")
	}

	if _, ok := RemoveByIndex(pool, -5); ok {
		t.Error("removing an unknown index should report false")
	}
}

func TestClasses(t *testing.T) {
	tiles := []Tile{
		FromPattern(mustPattern(t, "100000"), 0),
		FromPattern(mustPattern(t, "001000"), 0),
		FromPattern(mustPattern(t, "110000"), 0),
	}
	classes := Classes(tiles)
	if len(classes) != 2 {
		t.Fatalf("expected 2 classes, got %d", len(classes))
	}
	if len(classes[mustPattern(t, "000001")]) != 2 {
		t.Error("single-tick tiles should share a class")
	}
}
