package core

import "sort"

// PosSet is a set of positions. A piece matched on both axes appears once.
type PosSet map[Pos]struct{}

// NewPosSet returns a set holding the given positions.
func NewPosSet(ps ...Pos) PosSet {
	s := make(PosSet, len(ps))
	for _, p := range ps {
		s[p] = struct{}{}
	}
	return s
}

// Add inserts positions into the set.
func (s PosSet) Add(ps ...Pos) {
	for _, p := range ps {
		s[p] = struct{}{}
	}
}

// Has reports membership.
func (s PosSet) Has(p Pos) bool {
	_, ok := s[p]
	return ok
}

// Len returns the number of positions.
func (s PosSet) Len() int { return len(s) }

// Union adds every position of other into s and returns s.
func (s PosSet) Union(other PosSet) PosSet {
	for p := range other {
		s[p] = struct{}{}
	}
	return s
}

// Sorted returns the positions in row-major order (y, then x).
func (s PosSet) Sorted() []Pos {
	out := make([]Pos, 0, len(s))
	for p := range s {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Y != out[j].Y {
			return out[i].Y < out[j].Y
		}
		return out[i].X < out[j].X
	})
	return out
}
