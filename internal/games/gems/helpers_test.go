package gems

import (
	"testing"

	gcore "github.com/vovakirdan/tui-gems/internal/games/gems/core"
)

// presetLevel builds a level from literal rows: x = hole, digit = preset,
// anything else is filled randomly.
func presetLevel(t *testing.T, id string, rows ...string) *gcore.Level {
	t.Helper()
	l := gcore.NewLevel(id, len(rows[0]), len(rows))
	l.Name = id
	for y, row := range rows {
		for x := 0; x < len(row); x++ {
			switch c := row[x]; {
			case c == 'x':
				l.SetHole(x, y)
			case c >= '0' && c <= '9':
				l.SetPreset(x, y, gcore.PieceType(c-'0'))
			}
		}
	}
	if err := l.Validate(); err != nil {
		t.Fatalf("level %s: %v", id, err)
	}
	return l
}

// nineByNine is a fully preset 9x9 level with no match on it. Swapping
// (2,0) and (3,0) lines up three 0s in the top row; swapping (4,0) and
// (5,0) matches nothing.
func nineByNine(t *testing.T, id string) *gcore.Level {
	t.Helper()
	rows := []string{"001023451"}
	for y := 1; y < 9; y++ {
		row := make([]byte, 9)
		for x := range row {
			row[x] = byte('0' + (x+2*y)%6)
		}
		rows = append(rows, string(row))
	}
	return presetLevel(t, id, rows...)
}

func newSession(t *testing.T, l *gcore.Level, opts SessionOptions) *Session {
	t.Helper()
	s, err := NewSession(l, opts)
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	return s
}
