package core_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-gems/internal/games/gems/core"
)

// textView is a View over literal rows: x = hole, . = empty, digit = piece.
type textView []string

func (v textView) Width() int  { return len(v[0]) }
func (v textView) Height() int { return len(v) }

func (v textView) IsValid(p core.Pos) bool {
	if p.X < 0 || p.Y < 0 || p.Y >= len(v) || p.X >= len(v[p.Y]) {
		return false
	}
	return v[p.Y][p.X] != 'x'
}

func (v textView) TypeAt(p core.Pos) (core.PieceType, bool) {
	if !v.IsValid(p) {
		return 0, false
	}
	c := v[p.Y][p.X]
	if c < '0' || c > '9' {
		return 0, false
	}
	return core.PieceType(c - '0'), true
}

// levelFrom builds a level from literal rows using the same alphabet as
// textView; digits become presets and "." cells are filled randomly.
func levelFrom(t *testing.T, rows ...string) *core.Level {
	t.Helper()
	l := core.NewLevel("test", len(rows[0]), len(rows))
	for y, row := range rows {
		require.Len(t, row, l.W, "row %d", y)
		for x := 0; x < len(row); x++ {
			switch c := row[x]; {
			case c == 'x':
				l.SetHole(x, y)
			case c >= '0' && c <= '9':
				l.SetPreset(x, y, core.PieceType(c-'0'))
			}
		}
	}
	return l
}

// newBoard creates a seeded board for l with a recorder attached.
func newBoard(t *testing.T, l core.LevelConfig, seed int64) (*core.Board, *core.Recorder) {
	t.Helper()
	rec := &core.Recorder{}
	b := core.NewBoard(core.WithSeed(seed), core.WithListener(rec))
	require.NoError(t, b.Create(l))
	rec.Take()
	return b, rec
}

// requireStable checks the quiescent-board invariants.
func requireStable(t *testing.T, b *core.Board) {
	t.Helper()
	for y := 0; y < b.Height(); y++ {
		for x := 0; x < b.Width(); x++ {
			p := core.P(x, y)
			_, occupied := b.TypeAt(p)
			if b.IsValid(p) {
				require.True(t, occupied, "valid cell %v is empty", p)
				require.Zero(t, core.FindMatchesAt(b, p).Len(), "match left at %v\n%s", p, b.Snapshot())
			} else {
				require.False(t, occupied, "hole %v holds a piece", p)
			}
		}
	}
	require.Equal(t, core.StateIdle, b.State())
}

// nineByNine is a match-free preset board; swapping (2,0) and (3,0) lines up
// three 0s in the top row, swapping (4,0) and (5,0) matches nothing.
var nineByNine = []string{
	"001023451",
	"234501234",
	"450123450",
	"012345012",
	"234501234",
	"450123450",
	"012345012",
	"234501234",
	"450123450",
}
