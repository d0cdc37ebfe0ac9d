package core

// View is a read-only window onto piece occupancy.
type View interface {
	Width() int
	Height() int
	IsValid(p Pos) bool
	// TypeAt reports false for empty, invalid and out-of-bounds cells.
	TypeAt(p Pos) (PieceType, bool)
}

// FindRun walks from origin in dir while the cells hold the origin's type.
// The origin is always the first element.
func FindRun(v View, origin Pos, dir Dir) []Pos {
	run := []Pos{origin}
	t, ok := v.TypeAt(origin)
	if !ok {
		return run
	}
	for p := origin.Step(dir); ; p = p.Step(dir) {
		got, ok := v.TypeAt(p)
		if !ok || got != t {
			return run
		}
		run = append(run, p)
	}
}

// FindAxisMatches unions the two opposite runs through origin on axis.
// It returns an empty set when the line is shorter than minLength.
func FindAxisMatches(v View, origin Pos, axis Axis, minLength int) PosSet {
	d1, d2 := axis.Dirs()
	line := NewPosSet(FindRun(v, origin, d1)...)
	line.Add(FindRun(v, origin, d2)...)
	if line.Len() < minLength {
		return PosSet{}
	}
	return line
}

// FindMatchesAt returns every piece matched through origin on either axis.
func FindMatchesAt(v View, origin Pos) PosSet {
	if _, ok := v.TypeAt(origin); !ok {
		return PosSet{}
	}
	m := FindAxisMatches(v, origin, Horizontal, MinMatch)
	return m.Union(FindAxisMatches(v, origin, Vertical, MinMatch))
}

// FindMatchesAtMany unions FindMatchesAt over the given positions only.
func FindMatchesAtMany(v View, positions []Pos) PosSet {
	out := PosSet{}
	for _, p := range positions {
		out.Union(FindMatchesAt(v, p))
	}
	return out
}

// FindAllMatches scans the whole board.
func FindAllMatches(v View) PosSet {
	out := PosSet{}
	for y := 0; y < v.Height(); y++ {
		for x := 0; x < v.Width(); x++ {
			out.Union(FindMatchesAt(v, P(x, y)))
		}
	}
	return out
}

// swappedView presents v as if the pieces at a and b were exchanged.
type swappedView struct {
	View
	a, b Pos
}

func (s swappedView) TypeAt(p Pos) (PieceType, bool) {
	switch p {
	case s.a:
		return s.View.TypeAt(s.b)
	case s.b:
		return s.View.TypeAt(s.a)
	}
	return s.View.TypeAt(p)
}

// PreviewSwap returns the matches exchanging a and b would produce, without
// changing anything. Illegal swaps preview as empty.
func PreviewSwap(v View, a, b Pos) PosSet {
	if !a.Adjacent(b) {
		return PosSet{}
	}
	if _, ok := v.TypeAt(a); !ok {
		return PosSet{}
	}
	if _, ok := v.TypeAt(b); !ok {
		return PosSet{}
	}
	sv := swappedView{View: v, a: a, b: b}
	return FindMatchesAt(sv, a).Union(FindMatchesAt(sv, b))
}

// PossibleSwaps lists every swap that would be accepted. A is visited in
// row-major order and B is the right or lower neighbour.
func PossibleSwaps(v View) []Swap {
	var out []Swap
	for y := 0; y < v.Height(); y++ {
		for x := 0; x < v.Width(); x++ {
			a := P(x, y)
			for _, d := range [2]Dir{DirRight, DirDown} {
				b := a.Step(d)
				if PreviewSwap(v, a, b).Len() > 0 {
					out = append(out, Swap{A: a, B: b})
				}
			}
		}
	}
	return out
}
