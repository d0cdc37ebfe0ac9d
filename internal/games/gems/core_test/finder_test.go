package core_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-gems/internal/games/gems/core"
)

func TestFindRun(t *testing.T) {
	v := textView{
		"0001",
		"0x22",
		"0.22",
	}

	cases := []struct {
		name   string
		origin core.Pos
		dir    core.Dir
		want   []core.Pos
	}{
		{"RightUntilOtherType", core.P(0, 0), core.DirRight, []core.Pos{core.P(0, 0), core.P(1, 0), core.P(2, 0)}},
		{"LeftFromMiddle", core.P(1, 0), core.DirLeft, []core.Pos{core.P(1, 0), core.P(0, 0)}},
		{"DownToEdge", core.P(0, 0), core.DirDown, []core.Pos{core.P(0, 0), core.P(0, 1), core.P(0, 2)}},
		{"StopsAtHole", core.P(1, 0), core.DirDown, []core.Pos{core.P(1, 0)}},
		{"StopsAtEmpty", core.P(2, 2), core.DirLeft, []core.Pos{core.P(2, 2)}},
		{"BottomEdge", core.P(2, 1), core.DirDown, []core.Pos{core.P(2, 1), core.P(2, 2)}},
		{"StopsAtGridEdge", core.P(3, 0), core.DirUp, []core.Pos{core.P(3, 0)}},
		{"EmptyOriginAlone", core.P(1, 2), core.DirRight, []core.Pos{core.P(1, 2)}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, core.FindRun(v, tc.origin, tc.dir))
		})
	}
}

func TestFindAxisMatches(t *testing.T) {
	v := textView{
		"01110",
		"20332",
		"20442",
	}

	t.Run("OriginCountedOnce", func(t *testing.T) {
		m := core.FindAxisMatches(v, core.P(2, 0), core.Horizontal, core.MinMatch)
		assert.Equal(t, []core.Pos{core.P(1, 0), core.P(2, 0), core.P(3, 0)}, m.Sorted())
	})
	t.Run("ShortLineIsEmpty", func(t *testing.T) {
		assert.Zero(t, core.FindAxisMatches(v, core.P(2, 1), core.Horizontal, core.MinMatch).Len())
		assert.Zero(t, core.FindAxisMatches(v, core.P(1, 1), core.Vertical, core.MinMatch).Len())
	})
	t.Run("CustomMinimum", func(t *testing.T) {
		m := core.FindAxisMatches(v, core.P(0, 1), core.Vertical, 2)
		assert.Equal(t, []core.Pos{core.P(0, 1), core.P(0, 2)}, m.Sorted())
	})
	t.Run("VerticalEdge", func(t *testing.T) {
		m := core.FindAxisMatches(v, core.P(4, 2), core.Vertical, 2)
		assert.Equal(t, 2, m.Len())
	})
}

func TestFindMatchesAtLShape(t *testing.T) {
	v := textView{
		"1112",
		"1023",
		"1230",
	}

	m := core.FindMatchesAt(v, core.P(0, 0))
	require.Equal(t, 5, m.Len(), "corner piece must be counted once")
	for _, p := range []core.Pos{core.P(0, 0), core.P(1, 0), core.P(2, 0), core.P(0, 1), core.P(0, 2)} {
		assert.True(t, m.Has(p), "missing %v", p)
	}

	assert.Zero(t, core.FindMatchesAt(v, core.P(3, 0)).Len())
}

func TestFindMatchesAtIsPerType(t *testing.T) {
	v := textView{"00110"}
	assert.Zero(t, core.FindMatchesAt(v, core.P(1, 0)).Len())
}

func TestFindMatchesAtMany(t *testing.T) {
	v := textView{
		"000x",
		"1231",
		"3221",
		"0331",
	}

	only := core.FindMatchesAtMany(v, []core.Pos{core.P(1, 0)})
	assert.Equal(t, 3, only.Len(), "only the top row should be examined")

	both := core.FindMatchesAtMany(v, []core.Pos{core.P(1, 0), core.P(3, 3), core.P(2, 2)})
	assert.Equal(t, 6, both.Len())
	assert.True(t, both.Has(core.P(3, 1)))

	assert.Zero(t, core.FindMatchesAtMany(v, nil).Len())
}

func TestFindMatchesAtManyKeepsCrossingAxis(t *testing.T) {
	// (1,1) belongs to the vertical run through (1,0) and to the horizontal
	// run through itself; both must be reported.
	v := textView{
		"020",
		"222",
		"121",
	}
	m := core.FindMatchesAtMany(v, []core.Pos{core.P(1, 0), core.P(1, 1)})
	assert.Equal(t, 5, m.Len())
}

func TestFindAllMatches(t *testing.T) {
	v := textView{
		"0120",
		"0201",
		"0312",
	}
	assert.Equal(t, []core.Pos{core.P(0, 0), core.P(0, 1), core.P(0, 2)}, core.FindAllMatches(v).Sorted())
	assert.Zero(t, core.FindAllMatches(textView{"0101", "1010"}).Len())
}

func TestPreviewSwap(t *testing.T) {
	v := textView{
		"0010",
		"1201",
		"2012",
	}

	m := core.PreviewSwap(v, core.P(2, 0), core.P(3, 0))
	assert.Equal(t, []core.Pos{core.P(0, 0), core.P(1, 0), core.P(2, 0)}, m.Sorted())

	assert.Zero(t, core.PreviewSwap(v, core.P(0, 1), core.P(1, 1)).Len())
	assert.Zero(t, core.PreviewSwap(v, core.P(0, 0), core.P(1, 1)).Len(), "diagonal")
	assert.Zero(t, core.PreviewSwap(v, core.P(3, 0), core.P(4, 0)).Len(), "out of bounds")

	// The view itself is untouched.
	typ, _ := v.TypeAt(core.P(2, 0))
	assert.Equal(t, core.PieceType(1), typ)
}

func TestPossibleSwaps(t *testing.T) {
	v := textView{
		"0010",
		"1201",
		"2312",
	}
	swaps := core.PossibleSwaps(v)
	require.NotEmpty(t, swaps)
	assert.Contains(t, swaps, core.Swap{A: core.P(2, 0), B: core.P(3, 0)})
	for _, s := range swaps {
		assert.NotZero(t, core.PreviewSwap(v, s.A, s.B).Len(), "swap %v", s)
	}

	assert.Empty(t, core.PossibleSwaps(textView{"0101", "2323", "0101"}))
}
