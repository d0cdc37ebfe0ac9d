package core_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-gems/internal/games/gems/core"
)

func TestCreateRejectsEmptyMask(t *testing.T) {
	l := levelFrom(t, "xxx", "xxx")
	b := core.NewBoard(core.WithSeed(1))

	err := b.Create(l)
	require.Error(t, err)
	assert.True(t, errors.Is(err, core.ErrInvalidConfig))

	var ve core.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "NO_VALID_CELLS", ve.Code)
	assert.Equal(t, core.StateUninitialized, b.State())
}

func TestUninitializedBoard(t *testing.T) {
	b := core.NewBoard()
	assert.Equal(t, core.StateUninitialized, b.State())

	_, err := b.TrySwap(core.P(0, 0), core.P(1, 0))
	assert.ErrorIs(t, err, core.ErrNotCreated)
	assert.ErrorIs(t, b.Reset(), core.ErrNotCreated)
}

func TestResetFillsWithoutMatches(t *testing.T) {
	shapes := map[string][]string{
		"Full": {
			".........", ".........", ".........",
			".........", ".........", ".........",
			".........", ".........", ".........",
		},
		"Holes": {
			"xx.....xx", "x.......x", ".........",
			"....x....", "...xxx...", "....x....",
			".........", "x.......x", "xx.....xx",
		},
		"Presets": {
			"0.......1", ".0.....1.", "..2...3..",
			".........", "....4....", ".........",
			"..3...2..", ".1.....0.", "1.......0",
		},
		"Narrow": {".", ".", ".", ".", ".", "x", "."},
	}

	for name, rows := range shapes {
		t.Run(name, func(t *testing.T) {
			l := levelFrom(t, rows...)
			for seed := int64(0); seed < 25; seed++ {
				b, _ := newBoard(t, l, seed)
				requireStable(t, b)
			}
		})
	}
}

func TestResetKeepsPresets(t *testing.T) {
	l := levelFrom(t, "0.1", "...", "2.3")
	b, _ := newBoard(t, l, 3)

	for p, want := range l.Presets {
		got, ok := b.TypeAt(p)
		require.True(t, ok)
		assert.Equal(t, want, got, "preset at %v", p)
	}
}

func TestResetIsIdempotent(t *testing.T) {
	l := levelFrom(t, nineByNine...)
	b, rec := newBoard(t, l, 11)
	before := b.Snapshot()

	require.NoError(t, b.Reset())
	require.NoError(t, b.Reset())
	requireStable(t, b)

	// A fully preset board refills identically, only the IDs advance.
	after := b.Snapshot()
	assert.Equal(t, before.String(), after.String())
	assert.Equal(t, 2*81, rec.Count(core.EventRemoved))
	assert.Equal(t, 2*81, rec.Count(core.EventSpawned))
}

func TestResetSpawnsEveryPiece(t *testing.T) {
	l := levelFrom(t, ".x.", "...")
	rec := &core.Recorder{}
	b := core.NewBoard(core.WithSeed(5), core.WithListener(rec))
	require.NoError(t, b.Create(l))

	require.Equal(t, 5, rec.Count(core.EventSpawned))
	for _, e := range rec.Events {
		assert.Equal(t, e.From, e.To, "initial pieces appear in place")
	}
}

func TestTrySwapContractViolations(t *testing.T) {
	l := levelFrom(t, nineByNine...)
	l.SetHole(8, 8)
	b, rec := newBoard(t, l, 1)
	before := b.Snapshot()

	cases := []struct {
		name string
		a, b core.Pos
		err  error
	}{
		{"NotAdjacent", core.P(0, 0), core.P(2, 0), core.ErrNotAdjacent},
		{"Diagonal", core.P(0, 0), core.P(1, 1), core.ErrNotAdjacent},
		{"Same", core.P(4, 4), core.P(4, 4), core.ErrNotAdjacent},
		{"OutOfBounds", core.P(8, 0), core.P(9, 0), core.ErrOutOfBounds},
		{"Negative", core.P(0, -1), core.P(0, 0), core.ErrOutOfBounds},
		{"Hole", core.P(7, 8), core.P(8, 8), core.ErrInvalidCell},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := b.TrySwap(tc.a, tc.b)
			require.ErrorIs(t, err, tc.err)
			assert.False(t, errors.Is(err, core.ErrInvalidConfig))
		})
	}

	assert.True(t, before.Equal(b.Snapshot()), "contract violations must not touch the board")
	assert.Empty(t, rec.Events)
	assert.Equal(t, core.StateIdle, b.State())
}

func TestScenarioHorizontalMatch(t *testing.T) {
	l := levelFrom(t, nineByNine...)
	l.Points = []int{10, 20, 30, 40, 50, 60}
	b, rec := newBoard(t, l, 42)

	out, err := b.TrySwap(core.P(2, 0), core.P(3, 0))
	require.NoError(t, err)

	assert.Equal(t, core.SwapAccepted, out.Result)
	assert.Equal(t, 3, out.Cleared)
	assert.Equal(t, 30, out.Points)
	assert.Equal(t, 1, out.Steps)

	assert.Equal(t, 3, rec.Count(core.EventRemoved))
	require.Equal(t, 1, rec.Count(core.EventScored))
	assert.Equal(t, 3, rec.Count(core.EventSpawned), "cleared cells are refilled")
	assert.Equal(t, 1, rec.Count(core.EventSuccess))
	assert.Zero(t, rec.Count(core.EventRejected))

	last := rec.Events[len(rec.Events)-1]
	assert.Equal(t, core.EventSuccess, last.Kind)
	for _, e := range rec.Events {
		if e.Kind == core.EventScored {
			assert.Equal(t, 30, e.Points)
		}
		if e.Kind == core.EventSpawned {
			assert.Less(t, e.From.Y, 0, "refills enter from above the board")
			assert.Equal(t, 0, e.To.Y)
		}
	}

	typ, _ := b.TypeAt(core.P(3, 0))
	assert.Equal(t, core.PieceType(1), typ, "the partner piece stays swapped")
	requireStable(t, b)
}

func TestScenarioRejectedSwap(t *testing.T) {
	l := levelFrom(t, nineByNine...)
	b, rec := newBoard(t, l, 42)
	before := b.Snapshot()

	out, err := b.TrySwap(core.P(4, 0), core.P(5, 0))
	require.NoError(t, err)

	assert.Equal(t, core.SwapRejected, out.Result)
	assert.False(t, out.Accepted())
	assert.Zero(t, out.Points)
	assert.True(t, before.Equal(b.Snapshot()), "board changed:\n%s\nwant\n%s", b.Snapshot(), before)

	assert.Equal(t, 1, rec.Count(core.EventRejected))
	assert.Equal(t, 4, rec.Count(core.EventMoved), "swap out and back")
	assert.Zero(t, rec.Count(core.EventScored))
	assert.Zero(t, rec.Count(core.EventSuccess))
	assert.Equal(t, core.StateIdle, b.State())
}

func TestSwapSymmetry(t *testing.T) {
	l := levelFrom(t, nineByNine...)

	b1, _ := newBoard(t, l, 9)
	b2, _ := newBoard(t, l, 9)
	out1, err := b1.TrySwap(core.P(2, 0), core.P(3, 0))
	require.NoError(t, err)
	out2, err := b2.TrySwap(core.P(3, 0), core.P(2, 0))
	require.NoError(t, err)
	assert.Equal(t, out1, out2)
	assert.True(t, b1.Snapshot().Equal(b2.Snapshot()))

	random := levelFrom(t, "........", "........", "........", "........", "........", "........")
	for seed := int64(0); seed < 10; seed++ {
		r1, _ := newBoard(t, random, seed)
		r2, _ := newBoard(t, random, seed)
		swaps := core.PossibleSwaps(r1)
		if len(swaps) == 0 {
			continue
		}
		s := swaps[len(swaps)/2]
		o1, err := r1.TrySwap(s.A, s.B)
		require.NoError(t, err)
		o2, err := r2.TrySwap(s.B, s.A)
		require.NoError(t, err)
		assert.Equal(t, o1, o2, "seed %d", seed)
		assert.True(t, r1.Snapshot().Equal(r2.Snapshot()), "seed %d", seed)
	}
}

func TestCascadeChains(t *testing.T) {
	// Clearing the third row drops two 1s onto the bottom 1 in column 0.
	l := levelFrom(t,
		"123",
		"132",
		"002",
		"120",
	)
	l.Distribution = core.UniformDistribution(4)
	l.Points = core.UniformPoints(4, 10)
	b, rec := newBoard(t, l, 77)

	out, err := b.TrySwap(core.P(2, 2), core.P(2, 3))
	require.NoError(t, err)
	require.True(t, out.Accepted())
	assert.GreaterOrEqual(t, out.Steps, 2)
	assert.Equal(t, 10*out.Cleared, out.Points)

	var deltas []int
	for _, e := range rec.Events {
		if e.Kind == core.EventScored {
			deltas = append(deltas, e.Points)
		}
	}
	require.Len(t, deltas, out.Steps)
	assert.Equal(t, []int{30, 30}, deltas[:2])
	assert.Equal(t, 1, rec.Count(core.EventSuccess))
	requireStable(t, b)
}

func TestRefillExhaustsRetries(t *testing.T) {
	l := levelFrom(t,
		"121",
		"210",
		"002",
	)
	l.Distribution = []float64{1, 0, 0}
	l.Points = core.UniformPoints(3, 10)

	b := core.NewBoard(core.WithSeed(1), core.WithMaxRetries(50))
	require.NoError(t, b.Create(l), "a fully preset board needs no random pieces")

	_, err := b.TrySwap(core.P(2, 1), core.P(2, 2))
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrRetriesExhausted)
	assert.ErrorIs(t, err, core.ErrInvalidConfig)
	assert.Equal(t, core.StateFailed, b.State())

	_, err = b.TrySwap(core.P(0, 1), core.P(0, 2))
	assert.ErrorIs(t, err, core.ErrFailed)
}

func TestFillExhaustsRetries(t *testing.T) {
	l := core.NewLevel("mono", 3, 1)
	l.Distribution = []float64{1}
	l.Points = []int{10}

	b := core.NewBoard(core.WithSeed(1))
	err := b.Create(l)
	require.ErrorIs(t, err, core.ErrRetriesExhausted)
	assert.Equal(t, core.StateFailed, b.State())

	// Two cells in a row cannot match, so a smaller board fills fine.
	small := core.NewLevel("mono", 2, 1)
	small.Distribution = []float64{1}
	small.Points = []int{10}
	require.NoError(t, b.Create(small))
	assert.Equal(t, core.StateIdle, b.State())
}

type reentrant struct {
	core.NopListener
	board    *core.Board
	swapErr  error
	resetErr error
}

func (r *reentrant) OnPointsScored(int) {
	_, r.swapErr = r.board.TrySwap(core.P(0, 8), core.P(1, 8))
	r.resetErr = r.board.Reset()
}

func TestSwapWhileResolvingIsBusy(t *testing.T) {
	l := levelFrom(t, nineByNine...)
	b := core.NewBoard(core.WithSeed(3))
	require.NoError(t, b.Create(l))

	r := &reentrant{board: b}
	b.SetListener(r)

	out, err := b.TrySwap(core.P(2, 0), core.P(3, 0))
	require.NoError(t, err)
	assert.True(t, out.Accepted())
	assert.ErrorIs(t, r.swapErr, core.ErrBusy)
	assert.ErrorIs(t, r.resetErr, core.ErrBusy)
	requireStable(t, b)
}

func TestPieceIdentity(t *testing.T) {
	l := levelFrom(t, nineByNine...)
	b, _ := newBoard(t, l, 8)

	a, _ := b.PieceAt(core.P(0, 0))
	c, _ := b.PieceAt(core.P(4, 0))
	_, err := b.TrySwap(core.P(4, 0), core.P(5, 0))
	require.NoError(t, err)
	got, _ := b.PieceAt(core.P(4, 0))
	assert.Equal(t, c, got, "rejected swap restores the same piece")

	_, err = b.TrySwap(core.P(2, 0), core.P(3, 0))
	require.NoError(t, err)
	for _, p := range b.Pieces() {
		assert.NotEqual(t, a.ID, p.ID, "cleared piece %d still on board", a.ID)
		if p.ID > 81 {
			assert.Equal(t, 0, p.Pos.Y, "new pieces land in the top row")
		}
	}
}
