package tile

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/wricardo/tangosim/game/hex"
)

var (
	ErrMalformedTile = errors.New("malformed tile")
	ErrInvalidColor  = errors.New("invalid tile color")
)

// Pattern marks which sides of a tile are coloured, clockwise from the top.
type Pattern [hex.Sides]bool

// nextIndex hands out tile indices; zero is reserved for "unassigned".
var nextIndex atomic.Int64

// Tile is an immutable six-sided piece owned by a player.
type Tile struct {
	Pattern Pattern `json:"pattern"`
	Color   int     `json:"color"`
	Index   int     `json:"index"`
}

// New builds a tile from a pattern slice. An index of 0 assigns a fresh one.
func New(pattern []bool, color, index int) (Tile, error) {
	if len(pattern) != hex.Sides {
		return Tile{}, fmt.Errorf("%w: pattern has %d sides, want %d", ErrMalformedTile, len(pattern), hex.Sides)
	}
	if color < 0 {
		return Tile{}, fmt.Errorf("%w: %d", ErrInvalidColor, color)
	}

	var p Pattern
	copy(p[:], pattern)
	if index == 0 {
		index = NextIndex()
	}

	return Tile{Pattern: p, Color: color, Index: index}, nil
}

// FromPattern builds a tile with a fresh index.
func FromPattern(p Pattern, color int) Tile {
	return Tile{Pattern: p, Color: color, Index: NextIndex()}
}

// NextIndex reserves a unique tile index.
func NextIndex() int {
	return int(nextIndex.Add(1))
}

// Side reports whether side i is coloured.
func (t Tile) Side(i int) bool {
	return t.Pattern[((i%hex.Sides)+hex.Sides)%hex.Sides]
}

// NumTicks counts the coloured sides.
func (t Tile) NumTicks() int {
	return t.Pattern.NumTicks()
}

// Rotate returns the tile turned clockwise by steps sides.
func (t Tile) Rotate(steps int) Tile {
	t.Pattern = t.Pattern.Rotate(steps)
	return t
}

// IsRotationallyEqual reports whether other has the same pattern up to rotation.
// Color and index are ignored.
func (t Tile) IsRotationallyEqual(other Tile) bool {
	return t.Pattern.IsRotationOf(other.Pattern)
}

// Rotations returns the distinct orientations of the tile, starting with itself.
func (t Tile) Rotations() []Tile {
	seen := make(map[Pattern]bool, hex.Sides)
	out := make([]Tile, 0, hex.Sides)
	for steps := range hex.Sides {
		r := t.Rotate(steps)
		if seen[r.Pattern] {
			continue
		}
		seen[r.Pattern] = true
		out = append(out, r)
	}
	return out
}

func (t Tile) String() string {
	return fmt.Sprintf("%s/p%d#%d", t.Pattern, t.Color, t.Index)
}

// UnmarshalJSON rejects patterns that do not have exactly six sides.
func (t *Tile) UnmarshalJSON(data []byte) error {
	var raw struct {
		Pattern []bool `json:"pattern"`
		Color   int    `json:"color"`
		Index   int    `json:"index"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	parsed, err := New(raw.Pattern, raw.Color, raw.Index)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// NumTicks counts the coloured sides.
func (p Pattern) NumTicks() int {
	count := 0
	for _, side := range p {
		if side {
			count++
		}
	}
	return count
}

// Rotate shifts the pattern clockwise by steps sides.
func (p Pattern) Rotate(steps int) Pattern {
	steps = ((steps % hex.Sides) + hex.Sides) % hex.Sides
	var out Pattern
	for i := range p {
		out[(i+steps)%hex.Sides] = p[i]
	}
	return out
}

// IsRotationOf reports whether p equals some rotation of other.
func (p Pattern) IsRotationOf(other Pattern) bool {
	for steps := range hex.Sides {
		if other.Rotate(steps) == p {
			return true
		}
	}
	return false
}

// Canonical returns the rotation whose string form sorts first.
func (p Pattern) Canonical() Pattern {
	best := p
	for steps := 1; steps < hex.Sides; steps++ {
		r := p.Rotate(steps)
		if r.String() < best.String() {
			best = r
		}
	}
	return best
}

// String renders the pattern as six 0/1 digits.
func (p Pattern) String() string {
	var b strings.Builder
	for _, side := range p {
		if side {
			b.WriteByte('1')
		} else {
			b.WriteByte('0')
		}
	}
	return b.String()
}

// ParsePattern reads a pattern written as six 0/1 digits.
func ParsePattern(s string) (Pattern, error) {
	s = strings.TrimSpace(s)
	if len(s) != hex.Sides {
		return Pattern{}, fmt.Errorf("%w: %q has %d sides, want %d", ErrMalformedTile, s, len(s), hex.Sides)
	}

	var p Pattern
	for i, c := range s {
		switch c {
		case '1':
			p[i] = true
		case '0':
		default:
			return Pattern{}, fmt.Errorf("%w: unexpected %q in %q", ErrMalformedTile, c, s)
		}
	}
	return p, nil
}
