// Package hex provides axial hex-grid geometry for the tangosim board.
//
// Positions are (q, r) axial coordinates. The six neighbours of a cell are
// listed clockwise starting from the top side, and that order is the same
// order used for tile sides: side i of a tile placed at p faces
// Neighbors(p)[i], and the neighbour touches it with side Opposite(i).
//
// All functions are pure.
package hex
