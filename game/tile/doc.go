// Package tile models the six-sided pieces of the game.
//
// A Tile is a value: a Pattern of six coloured/uncoloured sides (clockwise from
// the top), the owning player's colour, and an index that identifies the
// physical piece. Rotating a tile yields a new value with the same colour and
// index. Pools of tiles are plain slices and membership is decided by index;
// rotational equality is a separate comparison used for pattern matching.
//
// Usage:
//
//	t, err := tile.New([]bool{true, false, true, false, true, false}, 0, 0)
//	if err != nil {
//		log.Fatal(err) // tile.ErrMalformedTile
//	}
//	turned := t.Rotate(1)
//	fmt.Println(turned.IsRotationallyEqual(t)) // true
//
// StandardSet returns the thirteen starting pieces a player begins with.
package tile
