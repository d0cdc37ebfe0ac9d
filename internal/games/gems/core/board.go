package core

import (
	"fmt"
	"math/rand"
	"time"
)

// DefaultMaxRetries caps resampling for a single cell during fill and refill.
const DefaultMaxRetries = 100

// State is the board's lifecycle state.
type State uint8

const (
	StateUninitialized State = iota
	StateIdle
	StateValidating
	StateResolving
	// StateFailed is entered when a fill runs out of retries. Only Reset or
	// Create leave it.
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "Uninitialized"
	case StateIdle:
		return "Idle"
	case StateValidating:
		return "Validating"
	case StateResolving:
		return "Resolving"
	case StateFailed:
		return "Failed"
	default:
		return "Unknown"
	}
}

// SwapResult is the game outcome of a swap request.
type SwapResult uint8

const (
	SwapRejected SwapResult = iota
	SwapAccepted
)

func (r SwapResult) String() string {
	if r == SwapAccepted {
		return "Accepted"
	}
	return "Rejected"
}

// SwapOutcome summarises a swap and the cascade it triggered.
type SwapOutcome struct {
	Result  SwapResult
	Points  int // total over all cascade steps
	Steps   int // cascade iterations
	Cleared int // pieces removed
}

// Accepted reports whether the swap produced a match.
func (o SwapOutcome) Accepted() bool { return o.Result == SwapAccepted }

// Board owns the grid of pieces for one level session.
type Board struct {
	cfg      LevelConfig
	w, h     int
	valid    []bool
	cells    []*Piece
	points   []int
	numTypes int

	state      State
	nextID     PieceID
	rng        *rand.Rand
	sampler    *sampler
	listener   Listener
	maxRetries int
	stepLimit  int // cascade steps per swap; zero means one per cell
}

// Option configures a Board.
type Option func(*Board)

// WithSeed seeds the board's random source.
func WithSeed(seed int64) Option {
	return func(b *Board) {
		b.rng = rand.New(rand.NewSource(seed))
	}
}

// WithRand uses r as the board's random source.
func WithRand(r *rand.Rand) Option {
	return func(b *Board) {
		b.rng = r
	}
}

// WithListener sets the event listener.
func WithListener(l Listener) Option {
	return func(b *Board) {
		b.listener = l
	}
}

// WithMaxRetries sets the per-cell resample cap.
func WithMaxRetries(n int) Option {
	return func(b *Board) {
		if n > 0 {
			b.maxRetries = n
		}
	}
}

// NewBoard returns an uninitialized board. Call Create before anything else.
func NewBoard(opts ...Option) *Board {
	b := &Board{
		listener:   NopListener{},
		maxRetries: DefaultMaxRetries,
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.rng == nil {
		b.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return b
}

// SetListener replaces the event listener. Nil silences the board.
func (b *Board) SetListener(l Listener) {
	if l == nil {
		l = NopListener{}
	}
	b.listener = l
}

// Create validates cfg, copies its validity mask and fills the board.
func (b *Board) Create(cfg LevelConfig) error {
	if b.busy() {
		return ErrBusy
	}
	if err := ValidateConfig(cfg); err != nil {
		return fmt.Errorf("core: create board: %w", err)
	}

	b.cfg = cfg
	b.w, b.h = cfg.Width(), cfg.Height()
	b.valid = make([]bool, b.w*b.h)
	b.cells = make([]*Piece, b.w*b.h)
	for y := 0; y < b.h; y++ {
		for x := 0; x < b.w; x++ {
			b.valid[y*b.w+x] = cfg.IsValidCell(x, y)
		}
	}

	dist := cfg.ProbabilityDistribution()
	b.numTypes = len(dist)
	b.points = make([]int, b.numTypes)
	for t := range b.points {
		b.points[t] = cfg.PointsFor(PieceType(t))
	}
	b.sampler = newSampler(b.rng, dist)
	b.state = StateIdle

	return b.Reset()
}

// Reset clears every piece and fills the board again. Presets go first,
// then the remaining cells column by column from the bottom row up; each
// random piece is resampled while it matches the pieces placed so far.
func (b *Board) Reset() error {
	switch b.state {
	case StateUninitialized:
		return ErrNotCreated
	case StateValidating, StateResolving:
		return ErrBusy
	}

	for _, p := range b.occupied() {
		id := b.pieceAt(p).ID
		b.cells[b.index(p)] = nil
		b.listener.OnPieceRemoved(id)
	}

	for y := 0; y < b.h; y++ {
		for x := 0; x < b.w; x++ {
			if !b.valid[y*b.w+x] {
				continue
			}
			if t, ok := b.cfg.InitialPieceAt(x, y); ok {
				p := b.place(P(x, y), t)
				b.listener.OnPieceSpawned(*p, p.Pos)
			}
		}
	}

	for x := 0; x < b.w; x++ {
		for y := b.h - 1; y >= 0; y-- {
			pos := P(x, y)
			if !b.valid[b.index(pos)] || b.cells[b.index(pos)] != nil {
				continue
			}
			p, err := b.placeRandom(pos)
			if err != nil {
				b.state = StateFailed
				return fmt.Errorf("core: reset: %w", err)
			}
			b.listener.OnPieceSpawned(*p, pos)
		}
	}

	b.state = StateIdle
	return nil
}

// TrySwap exchanges the pieces at a and c. A swap that forms no match is
// undone and reported as SwapRejected; otherwise the cascade runs to
// completion before TrySwap returns. Errors are caller contract violations,
// or a configuration failure during refill.
func (b *Board) TrySwap(a, c Pos) (SwapOutcome, error) {
	if err := b.checkSwap(a, c); err != nil {
		return SwapOutcome{}, fmt.Errorf("core: swap %v/%v: %w", a, c, err)
	}

	b.state = StateValidating
	b.swap(a, c)
	matched := FindMatchesAt(b, a).Union(FindMatchesAt(b, c))
	if matched.Len() == 0 {
		b.swap(a, c)
		b.listener.OnSwapRejected()
		b.state = StateIdle
		return SwapOutcome{Result: SwapRejected}, nil
	}

	b.state = StateResolving
	out, err := b.resolve(matched)
	if err != nil {
		return out, fmt.Errorf("core: swap %v/%v: %w", a, c, err)
	}
	return out, nil
}

func (b *Board) checkSwap(a, c Pos) error {
	switch b.state {
	case StateUninitialized:
		return ErrNotCreated
	case StateValidating, StateResolving:
		return ErrBusy
	case StateFailed:
		return ErrFailed
	}
	for _, p := range [2]Pos{a, c} {
		if !b.inBounds(p) {
			return ErrOutOfBounds
		}
		if !b.valid[b.index(p)] {
			return ErrInvalidCell
		}
		if b.cells[b.index(p)] == nil {
			return ErrEmptyCell
		}
	}
	if !a.Adjacent(c) {
		return ErrNotAdjacent
	}
	return nil
}

// swap exchanges two occupied cells.
func (b *Board) swap(a, c Pos) {
	pa, pc := b.pieceAt(a), b.pieceAt(c)
	b.cells[b.index(a)], b.cells[b.index(c)] = pc, pa
	pa.Pos, pc.Pos = c, a
	b.listener.OnPieceMoved(pa.ID, a, c)
	b.listener.OnPieceMoved(pc.ID, c, a)
}

func (b *Board) busy() bool {
	return b.state == StateValidating || b.state == StateResolving
}

func (b *Board) index(p Pos) int { return p.Y*b.w + p.X }

func (b *Board) inBounds(p Pos) bool {
	return p.X >= 0 && p.X < b.w && p.Y >= 0 && p.Y < b.h
}

func (b *Board) pieceAt(p Pos) *Piece {
	return b.cells[b.index(p)]
}

// place puts a new piece of type t at p.
func (b *Board) place(p Pos, t PieceType) *Piece {
	b.nextID++
	pc := &Piece{ID: b.nextID, Type: t, Pos: p}
	b.cells[b.index(p)] = pc
	return pc
}

// placeRandom samples types for p until one does not complete a match with
// the pieces already on the board.
func (b *Board) placeRandom(p Pos) (*Piece, error) {
	probe := &Piece{Pos: p}
	i := b.index(p)
	for attempt := 0; attempt < b.maxRetries; attempt++ {
		probe.Type = b.sampler.next()
		b.cells[i] = probe
		if FindMatchesAt(b, p).Len() == 0 {
			b.cells[i] = nil
			return b.place(p, probe.Type), nil
		}
	}
	b.cells[i] = nil
	return nil, fmt.Errorf("cell %v after %d attempts: %w", p, b.maxRetries, ErrRetriesExhausted)
}

// occupied returns occupied positions in row-major order.
func (b *Board) occupied() []Pos {
	var out []Pos
	for i, pc := range b.cells {
		if pc != nil {
			out = append(out, P(i%b.w, i/b.w))
		}
	}
	return out
}

// Width returns the number of columns.
func (b *Board) Width() int { return b.w }

// Height returns the number of rows.
func (b *Board) Height() int { return b.h }

// IsValid reports whether p is a playable cell.
func (b *Board) IsValid(p Pos) bool {
	return b.inBounds(p) && b.valid[b.index(p)]
}

// TypeAt returns the type of the piece at p.
func (b *Board) TypeAt(p Pos) (PieceType, bool) {
	if !b.inBounds(p) {
		return 0, false
	}
	pc := b.cells[b.index(p)]
	if pc == nil {
		return 0, false
	}
	return pc.Type, true
}

// PieceAt returns a copy of the piece at p.
func (b *Board) PieceAt(p Pos) (Piece, bool) {
	if !b.inBounds(p) {
		return Piece{}, false
	}
	pc := b.cells[b.index(p)]
	if pc == nil {
		return Piece{}, false
	}
	return *pc, true
}

// Pieces returns copies of all pieces in row-major order.
func (b *Board) Pieces() []Piece {
	out := make([]Piece, 0, len(b.cells))
	for _, pc := range b.cells {
		if pc != nil {
			out = append(out, *pc)
		}
	}
	return out
}

// State returns the lifecycle state.
func (b *Board) State() State { return b.state }

// Level returns the configuration the board was created from.
func (b *Board) Level() LevelConfig { return b.cfg }

// NumTypes returns the number of piece types.
func (b *Board) NumTypes() int { return b.numTypes }

// PointsFor returns the board's copy of the score for type t.
func (b *Board) PointsFor(t PieceType) int {
	if int(t) < 0 || int(t) >= len(b.points) {
		return 0
	}
	return b.points[t]
}
