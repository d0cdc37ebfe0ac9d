// Package core implements the headless match-3 board: level configuration,
// match finding, swap validation and the cascade resolver.
// This package is UI-agnostic and deterministic for a given seed.
package core

import "fmt"

// MinMatch is the shortest run that counts as a match on either axis.
const MinMatch = 3

// PieceType identifies a gem kind, in [0, number of types).
type PieceType int

// PieceID identifies a piece for the lifetime of a board. IDs are never reused.
type PieceID uint64

// Piece is a gem sitting on the board.
type Piece struct {
	ID   PieceID
	Type PieceType
	Pos  Pos
}

// Pos is a cell coordinate.
// X increases to the right, Y increases downward (screen coordinates), so
// pieces fall toward larger Y.
type Pos struct {
	X int
	Y int
}

// P is a convenience constructor for Pos.
func P(x, y int) Pos {
	return Pos{X: x, Y: y}
}

// String returns a string representation of the position.
func (p Pos) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Step returns the neighbouring position in the given direction.
func (p Pos) Step(d Dir) Pos {
	dx, dy := d.Delta()
	return Pos{X: p.X + dx, Y: p.Y + dy}
}

// Manhattan returns the Manhattan distance to another position.
func (p Pos) Manhattan(other Pos) int {
	dx := p.X - other.X
	dy := p.Y - other.Y
	if dx < 0 {
		dx = -dx
	}
	if dy < 0 {
		dy = -dy
	}
	return dx + dy
}

// Adjacent reports whether other is one orthogonal step away.
func (p Pos) Adjacent(other Pos) bool {
	return p.Manhattan(other) == 1
}

// Dir is one of the four cardinal directions.
type Dir uint8

const (
	DirUp Dir = iota
	DirRight
	DirDown
	DirLeft
)

// Dirs lists all directions in a fixed order.
var Dirs = [4]Dir{DirUp, DirRight, DirDown, DirLeft}

// String returns the string representation of a direction.
func (d Dir) String() string {
	switch d {
	case DirUp:
		return "Up"
	case DirRight:
		return "Right"
	case DirDown:
		return "Down"
	case DirLeft:
		return "Left"
	default:
		return "Unknown"
	}
}

// Delta returns the (dx, dy) offset for one step in this direction.
func (d Dir) Delta() (dx, dy int) {
	switch d {
	case DirUp:
		return 0, -1
	case DirRight:
		return 1, 0
	case DirDown:
		return 0, 1
	case DirLeft:
		return -1, 0
	default:
		return 0, 0
	}
}

// Opposite returns the opposite direction.
func (d Dir) Opposite() Dir {
	switch d {
	case DirUp:
		return DirDown
	case DirRight:
		return DirLeft
	case DirDown:
		return DirUp
	case DirLeft:
		return DirRight
	default:
		return d
	}
}

// Axis is a line through a cell, horizontal or vertical.
type Axis uint8

const (
	Horizontal Axis = iota
	Vertical
)

// Dirs returns the two opposite directions that make up the axis.
func (a Axis) Dirs() (Dir, Dir) {
	if a == Vertical {
		return DirUp, DirDown
	}
	return DirLeft, DirRight
}

func (a Axis) String() string {
	if a == Vertical {
		return "Vertical"
	}
	return "Horizontal"
}

// Swap is a pair of adjacent positions to exchange.
type Swap struct {
	A Pos
	B Pos
}

func (s Swap) String() string {
	return fmt.Sprintf("%v<->%v", s.A, s.B)
}
