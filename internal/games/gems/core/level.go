package core

import (
	"fmt"
	"math"
)

// Level defaults, matching what the loader fills in when a file omits them.
const (
	DefaultNumTypes = 6
	DefaultPoints   = 10
	DefaultMaxMoves = 20

	// DistributionEpsilon is the tolerance on the probability sum.
	DistributionEpsilon = 1e-6
)

// DefaultStars are the 1/2/3-star score thresholds.
var DefaultStars = [3]int{100, 200, 300}

// LevelConfig is the read-only data the board needs from a level.
type LevelConfig interface {
	Width() int
	Height() int
	IsValidCell(x, y int) bool
	// InitialPieceAt is consulted only during the first fill.
	InitialPieceAt(x, y int) (PieceType, bool)
	// ProbabilityDistribution has one entry per piece type.
	ProbabilityDistribution() []float64
	PointsFor(t PieceType) int
}

// Level is a concrete level: board shape, presets, piece odds and scoring, plus
// the move limit and star thresholds used by the game session.
type Level struct {
	ID   string
	Name string
	W    int
	H    int

	// Mask holds cell validity in row-major order (index = y*W + x).
	Mask    []bool
	Presets map[Pos]PieceType

	Distribution []float64
	Points       []int

	MaxMoves int
	Stars    [3]int
}

// NewLevel returns a fully valid w x h level with default odds and scoring.
func NewLevel(id string, w, h int) *Level {
	l := &Level{
		ID:       id,
		Name:     id,
		W:        w,
		H:        h,
		Presets:  make(map[Pos]PieceType),
		MaxMoves: DefaultMaxMoves,
		Stars:    DefaultStars,
	}
	if w > 0 && h > 0 {
		l.Mask = make([]bool, w*h)
		for i := range l.Mask {
			l.Mask[i] = true
		}
	}
	l.Distribution = UniformDistribution(DefaultNumTypes)
	l.Points = UniformPoints(DefaultNumTypes, DefaultPoints)
	return l
}

// UniformDistribution returns n equal probabilities.
func UniformDistribution(n int) []float64 {
	d := make([]float64, n)
	for i := range d {
		d[i] = 1 / float64(n)
	}
	return d
}

// UniformPoints returns n copies of pts.
func UniformPoints(n, pts int) []int {
	p := make([]int, n)
	for i := range p {
		p[i] = pts
	}
	return p
}

func (l *Level) Width() int  { return l.W }
func (l *Level) Height() int { return l.H }

// NumTypes returns the number of piece types.
func (l *Level) NumTypes() int { return len(l.Distribution) }

func (l *Level) inBounds(x, y int) bool {
	return x >= 0 && x < l.W && y >= 0 && y < l.H
}

// IsValidCell reports whether (x, y) is part of the playable board.
func (l *Level) IsValidCell(x, y int) bool {
	if !l.inBounds(x, y) || len(l.Mask) != l.W*l.H {
		return false
	}
	return l.Mask[y*l.W+x]
}

// InitialPieceAt returns the preset piece for (x, y), if any.
func (l *Level) InitialPieceAt(x, y int) (PieceType, bool) {
	t, ok := l.Presets[P(x, y)]
	return t, ok
}

// ProbabilityDistribution returns a copy of the piece odds.
func (l *Level) ProbabilityDistribution() []float64 {
	out := make([]float64, len(l.Distribution))
	copy(out, l.Distribution)
	return out
}

// PointsFor returns the score for clearing one piece of type t.
func (l *Level) PointsFor(t PieceType) int {
	if int(t) < 0 || int(t) >= len(l.Points) {
		return 0
	}
	return l.Points[t]
}

// SetHole marks (x, y) as not playable and drops any preset there.
func (l *Level) SetHole(x, y int) {
	if l.inBounds(x, y) {
		l.Mask[y*l.W+x] = false
		delete(l.Presets, P(x, y))
	}
}

// SetPreset places a fixed piece used by the first fill.
func (l *Level) SetPreset(x, y int, t PieceType) {
	if l.Presets == nil {
		l.Presets = make(map[Pos]PieceType)
	}
	l.Presets[P(x, y)] = t
}

// ValidCells counts playable cells.
func (l *Level) ValidCells() int {
	n := 0
	for _, v := range l.Mask {
		if v {
			n++
		}
	}
	return n
}

// Validate checks everything ValidateConfig does plus the session fields.
func (l *Level) Validate() error {
	if len(l.Mask) != l.W*l.H {
		return invalid("BAD_SIZE", "mask has %d cells, want %d", len(l.Mask), l.W*l.H)
	}
	if err := ValidateConfig(l); err != nil {
		return err
	}
	if len(l.Points) != len(l.Distribution) {
		return invalid("POINTS_LENGTH", "%d point values for %d piece types", len(l.Points), len(l.Distribution))
	}
	if l.MaxMoves < 1 || l.MaxMoves > 99 {
		return invalid("BAD_MOVES", "moves %d outside 1..99", l.MaxMoves)
	}
	for i, s := range l.Stars {
		if s < 5 || s > 999 {
			return invalid("BAD_STARS", "star %d threshold %d outside 5..999", i+1, s)
		}
		if i > 0 && s <= l.Stars[i-1] {
			return invalid("BAD_STARS", "star thresholds %v are not strictly increasing", l.Stars)
		}
	}
	return nil
}

// ValidateConfig checks what the board needs to run: a non-empty mask, a
// probability distribution summing to 1, non-negative points and sane presets.
func ValidateConfig(cfg LevelConfig) error {
	w, h := cfg.Width(), cfg.Height()
	if w < 1 || h < 1 {
		return invalid("BAD_SIZE", "board size %dx%d", w, h)
	}

	dist := cfg.ProbabilityDistribution()
	if len(dist) == 0 {
		return invalid("NO_TYPES", "probability distribution is empty")
	}
	sum := 0.0
	for i, p := range dist {
		if p < 0 || math.IsNaN(p) {
			return invalid("BAD_DISTRIBUTION", "type %d has probability %v", i, p)
		}
		sum += p
	}
	if math.Abs(sum-1) > DistributionEpsilon {
		return invalid("BAD_DISTRIBUTION", "probabilities sum to %v, want 1", sum)
	}
	for t := range dist {
		if pts := cfg.PointsFor(PieceType(t)); pts < 0 {
			return invalid("NEGATIVE_POINTS", "type %d scores %d", t, pts)
		}
	}

	valid := 0
	presets := newGridView(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			ok := cfg.IsValidCell(x, y)
			t, preset := cfg.InitialPieceAt(x, y)
			if ok {
				valid++
				presets.valid[presets.index(P(x, y))] = true
			}
			if !preset {
				continue
			}
			if !ok {
				return invalid("PRESET_ON_HOLE", "preset at %v sits on a hole", P(x, y))
			}
			if int(t) < 0 || int(t) >= len(dist) {
				return invalid("PRESET_TYPE", "preset at %v has type %d, want 0..%d", P(x, y), t, len(dist)-1)
			}
			presets.set(P(x, y), t)
		}
	}
	if valid == 0 {
		return invalid("NO_VALID_CELLS", "level has no playable cells")
	}
	if m := FindAllMatches(presets); m.Len() > 0 {
		return invalid("PRESET_MATCH", "preset pieces already match at %v", m.Sorted()[0])
	}
	return nil
}

// gridView is a minimal View over plain slices, used to check presets and to
// preview swaps without touching a board.
type gridView struct {
	w, h     int
	valid    []bool
	occupied []bool
	types    []PieceType
}

func newGridView(w, h int) *gridView {
	return &gridView{
		w:        w,
		h:        h,
		valid:    make([]bool, w*h),
		occupied: make([]bool, w*h),
		types:    make([]PieceType, w*h),
	}
}

func (g *gridView) index(p Pos) int { return p.Y*g.w + p.X }

func (g *gridView) inBounds(p Pos) bool {
	return p.X >= 0 && p.X < g.w && p.Y >= 0 && p.Y < g.h
}

func (g *gridView) set(p Pos, t PieceType) {
	i := g.index(p)
	g.occupied[i] = true
	g.types[i] = t
}

func (g *gridView) Width() int  { return g.w }
func (g *gridView) Height() int { return g.h }

func (g *gridView) IsValid(p Pos) bool {
	return g.inBounds(p) && g.valid[g.index(p)]
}

func (g *gridView) TypeAt(p Pos) (PieceType, bool) {
	if !g.IsValid(p) {
		return 0, false
	}
	i := g.index(p)
	return g.types[i], g.occupied[i]
}

// String describes the level briefly.
func (l *Level) String() string {
	return fmt.Sprintf("level %s %q %dx%d types=%d moves=%d", l.ID, l.Name, l.W, l.H, len(l.Distribution), l.MaxMoves)
}
