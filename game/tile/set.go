package tile

import "slices"

// standardPatterns are the thirteen starting configurations each player owns.
var standardPatterns = []string{
	"100000",

	"110000",
	"101000",
	"100100",

	"111000",
	"101100",
	"101010",
	"101001",

	"001111",
	"010111",
	"011011",

	"111110",
	"111111",
}

// StandardPatterns returns the starting configurations.
func StandardPatterns() []Pattern {
	out := make([]Pattern, 0, len(standardPatterns))
	for _, s := range standardPatterns {
		p, err := ParsePattern(s)
		if err != nil {
			panic(err)
		}
		out = append(out, p)
	}
	return out
}

// StandardSet builds one tile per standard configuration for a player.
func StandardSet(color int) []Tile {
	return SetFromPatterns(StandardPatterns(), color)
}

// SetFromPatterns builds one tile per pattern with fresh indices.
func SetFromPatterns(patterns []Pattern, color int) []Tile {
	out := make([]Tile, 0, len(patterns))
	for _, p := range patterns {
		out = append(out, FromPattern(p, color))
	}
	return out
}

// FindByIndex returns the tile with the given index.
func FindByIndex(pool []Tile, index int) (Tile, bool) {
	i := slices.IndexFunc(pool, func(t Tile) bool { return t.Index == index })
	if i < 0 {
		return Tile{}, false
	}
	return pool[i], true
}

// RemoveByIndex returns a copy of pool without the tile carrying index.
func RemoveByIndex(pool []Tile, index int) ([]Tile, bool) {
	i := slices.IndexFunc(pool, func(t Tile) bool { return t.Index == index })
	if i < 0 {
		return slices.Clone(pool), false
	}
	out := make([]Tile, 0, len(pool)-1)
	out = append(out, pool[:i]...)
	return append(out, pool[i+1:]...), true
}

// Classes groups tiles by rotational equivalence, keyed by canonical pattern.
func Classes(tiles []Tile) map[Pattern][]Tile {
	out := make(map[Pattern][]Tile)
	for _, t := range tiles {
		key := t.Pattern.Canonical()
		out[key] = append(out[key], t)
	}
	return out
}
