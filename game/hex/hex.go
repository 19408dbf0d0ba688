package hex

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// Sides is the number of sides of a hex cell.
const Sides = 6

var ErrInvalidPosition = errors.New("invalid position")

// Position is an axial hex coordinate.
type Position struct {
	Q int `json:"q" yaml:"q"`
	R int `json:"r" yaml:"r"`
}

// Origin is the conventional centre of the board.
var Origin = Position{}

// directions lists the neighbour offsets clockwise from the top side.
var directions = [Sides]Position{
	{Q: 0, R: -1},
	{Q: 1, R: -1},
	{Q: 1, R: 0},
	{Q: 0, R: 1},
	{Q: -1, R: 1},
	{Q: -1, R: 0},
}

// Add returns the component-wise sum of two positions.
func (p Position) Add(o Position) Position {
	return Position{Q: p.Q + o.Q, R: p.R + o.R}
}

// Neighbor returns the position across the given side.
func (p Position) Neighbor(side int) Position {
	return p.Add(directions[mod(side, Sides)])
}

// String formats the position as "(q,r)".
func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.Q, p.R)
}

// Neighbors returns the six neighbours of p, clockwise from the top.
// Side i of a tile at p faces Neighbors(p)[i].
func Neighbors(p Position) [Sides]Position {
	var out [Sides]Position
	for i, d := range directions {
		out[i] = p.Add(d)
	}
	return out
}

// Opposite returns the side of a neighbour that faces back across side.
func Opposite(side int) int {
	return mod(side+3, Sides)
}

// Distance returns the hex distance between a and b.
func Distance(a, b Position) int {
	dq := a.Q - b.Q
	dr := a.R - b.R
	return (abs(dq) + abs(dq+dr) + abs(dr)) / 2
}

// RotatePosition rotates p around the origin by steps*60 degrees clockwise.
// Negative steps rotate counter-clockwise.
func RotatePosition(p Position, steps int) Position {
	for range mod(steps, Sides) {
		p = Position{Q: -p.R, R: p.Q + p.R}
	}
	return p
}

// Range returns every position within radius of center, sorted.
func Range(center Position, radius int) []Position {
	if radius < 0 {
		return nil
	}
	out := make([]Position, 0, 3*radius*(radius+1)+1)
	for dq := -radius; dq <= radius; dq++ {
		lo := max(-radius, -dq-radius)
		hi := min(radius, -dq+radius)
		for dr := lo; dr <= hi; dr++ {
			out = append(out, Position{Q: center.Q + dq, R: center.R + dr})
		}
	}
	Sort(out)
	return out
}

// Compare orders positions by r, then q.
func Compare(a, b Position) int {
	if a.R != b.R {
		return a.R - b.R
	}
	return a.Q - b.Q
}

// Sort sorts positions in place using Compare.
func Sort(ps []Position) {
	slices.SortFunc(ps, Compare)
}

// Parse reads a position written as "q,r" or "(q,r)".
func Parse(s string) (Position, error) {
	trimmed := strings.TrimSpace(s)
	trimmed = strings.TrimPrefix(trimmed, "(")
	trimmed = strings.TrimSuffix(trimmed, ")")

	parts := strings.Split(trimmed, ",")
	if len(parts) != 2 {
		return Position{}, fmt.Errorf("%w: %q", ErrInvalidPosition, s)
	}

	q, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return Position{}, fmt.Errorf("%w: %q: %v", ErrInvalidPosition, s, err)
	}
	r, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return Position{}, fmt.Errorf("%w: %q: %v", ErrInvalidPosition, s, err)
	}

	return Position{Q: q, R: r}, nil
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func mod(a, n int) int {
	m := a % n
	if m < 0 {
		m += n
	}
	return m
}
