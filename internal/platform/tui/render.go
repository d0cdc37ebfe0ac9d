package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-gems/internal/core"
)

// ansiCodes holds the 256-color code for each core.Color. An empty code
// leaves the terminal foreground alone.
var ansiCodes = [...]string{
	core.ColorDefault:       "",
	core.ColorRed:           "1",
	core.ColorGreen:         "2",
	core.ColorYellow:        "3",
	core.ColorBlue:          "4",
	core.ColorMagenta:       "5",
	core.ColorCyan:          "6",
	core.ColorWhite:         "7",
	core.ColorBrightRed:     "9",
	core.ColorBrightGreen:   "10",
	core.ColorBrightYellow:  "11",
	core.ColorBrightBlue:    "12",
	core.ColorBrightMagenta: "13",
	core.ColorBrightCyan:    "14",
	core.ColorBrightWhite:   "15",
	core.ColorOrange:        "208",
	core.ColorGray:          "245",
}

// Palette turns screen colors into lipgloss styles for one output. Each SSH
// session gets its own palette so the color profile of its terminal is used.
type Palette struct {
	styles [len(ansiCodes)]lipgloss.Style
}

// NewPalette builds a palette on r. A nil renderer uses the process output.
func NewPalette(r *lipgloss.Renderer) *Palette {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	p := &Palette{}
	for c, code := range ansiCodes {
		st := r.NewStyle()
		if code != "" {
			st = st.Foreground(lipgloss.Color(code))
		}
		p.styles[c] = st
	}
	return p
}

// localPalette renders for the process terminal.
var localPalette = NewPalette(nil)

// Style returns the style for c. Colors outside the table render plain.
func (p *Palette) Style(c core.Color) lipgloss.Style {
	if int(c) >= len(p.styles) {
		return p.styles[core.ColorDefault]
	}
	return p.styles[c]
}

// Render converts a Screen buffer to a styled string, one line per row.
// A run of same-colored cells is styled once.
func (p *Palette) Render(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	var run []rune
	for y := range s.Height() {
		if y > 0 {
			sb.WriteByte('\n')
		}
		for x := 0; x < s.Width(); {
			c := s.GetCell(x, y).Color
			run = run[:0]
			for ; x < s.Width() && s.GetCell(x, y).Color == c; x++ {
				run = append(run, s.GetCell(x, y).Rune)
			}
			sb.WriteString(p.Style(c).Render(string(run)))
		}
	}
	return sb.String()
}
