package core

import "strings"

// Cell is one position in a Snapshot.
type Cell struct {
	Valid    bool
	Occupied bool
	Type     PieceType
	ID       PieceID
}

// Snapshot captures the board for comparison in tests and debug output.
type Snapshot struct {
	W     int
	H     int
	State State
	Cells []Cell // row-major
}

// Snapshot returns a deep copy of the current board.
func (b *Board) Snapshot() Snapshot {
	s := Snapshot{W: b.w, H: b.h, State: b.state, Cells: make([]Cell, len(b.cells))}
	for i, pc := range b.cells {
		c := Cell{Valid: b.valid[i]}
		if pc != nil {
			c.Occupied = true
			c.Type = pc.Type
			c.ID = pc.ID
		}
		s.Cells[i] = c
	}
	return s
}

// At returns the cell at p. Out-of-bounds positions read as invalid.
func (s Snapshot) At(p Pos) Cell {
	if p.X < 0 || p.X >= s.W || p.Y < 0 || p.Y >= s.H {
		return Cell{}
	}
	return s.Cells[p.Y*s.W+p.X]
}

// Equal compares occupancy, types and piece IDs.
func (s Snapshot) Equal(other Snapshot) bool {
	if s.W != other.W || s.H != other.H || len(s.Cells) != len(other.Cells) {
		return false
	}
	for i := range s.Cells {
		if s.Cells[i] != other.Cells[i] {
			return false
		}
	}
	return true
}

// String renders one line per row: x for holes, . for empty cells and the
// type digit (or letter past 9) for pieces.
func (s Snapshot) String() string {
	var sb strings.Builder
	for y := 0; y < s.H; y++ {
		for x := 0; x < s.W; x++ {
			c := s.Cells[y*s.W+x]
			switch {
			case !c.Valid:
				sb.WriteByte('x')
			case !c.Occupied:
				sb.WriteByte('.')
			default:
				sb.WriteByte(typeGlyph(c.Type))
			}
		}
		if y < s.H-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

func typeGlyph(t PieceType) byte {
	if t < 10 {
		return byte('0' + t)
	}
	return byte('a' + t - 10)
}
