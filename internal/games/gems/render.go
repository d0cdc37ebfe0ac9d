package gems

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/vovakirdan/tui-gems/internal/core"
	gcore "github.com/vovakirdan/tui-gems/internal/games/gems/core"
)

const hudHeight = 3

// Theme maps piece types to glyphs and colors.
type Theme struct {
	Colors []core.Color
	Glyphs []rune
}

// ThemeFrom resolves color and glyph names. Unknown colors render in the
// default color.
func ThemeFrom(palette, glyphs []string) Theme {
	var t Theme
	for _, name := range palette {
		c, _ := core.ParseColor(name)
		t.Colors = append(t.Colors, c)
	}
	for _, g := range glyphs {
		if r, _ := utf8.DecodeRuneInString(g); r != utf8.RuneError {
			t.Glyphs = append(t.Glyphs, r)
		}
	}
	return t
}

// Style returns the glyph and color for piece type pt.
func (t Theme) Style(pt gcore.PieceType) (rune, core.Color) {
	r := rune('0' + int(pt)%10)
	if len(t.Glyphs) > 0 {
		r = t.Glyphs[int(pt)%len(t.Glyphs)]
	}
	c := core.ColorDefault
	if len(t.Colors) > 0 {
		c = t.Colors[int(pt)%len(t.Colors)]
	}
	return r, c
}

func (g *Game) theme() Theme {
	cfg := currentSettings()
	return ThemeFrom(cfg.Theme.Palette, cfg.Theme.Glyphs)
}

func cellWidth() int { return currentSettings().Board.CellWidth }

// boardSize returns the board frame size in screen cells.
func (g *Game) boardSize() (w, h int) {
	return g.level.W*cellWidth() + 2, g.level.H + 2
}

// Render draws the game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.session == nil {
		g.renderError(dst)
		return
	}
	if g.tooSmall {
		g.renderTooSmall(dst)
		return
	}

	boardW, boardH := g.boardSize()
	frame := core.NewRect(0, hudHeight, g.screenW, boardH).CenterIn(boardW, boardH)

	g.renderHUD(dst, frame)
	g.renderBoard(dst, frame)
	g.renderFooter(dst, frame)
	g.renderOverlays(dst, frame)
}

// renderTooSmall shows a "window too small" message.
func (g *Game) renderTooSmall(dst *core.Screen) {
	y := g.screenH / 2
	dst.DrawTextCentered(y, "Window too small")
	dst.DrawTextCentered(y+1, "Please resize terminal")
}

func (g *Game) renderError(dst *core.Screen) {
	msg := "Level failed to start"
	if g.err != nil {
		msg = g.err.Error()
	}
	y := g.screenH / 2
	dst.DrawTextCentered(y-1, "GEMS")
	dst.DrawTextCentered(y, truncate(msg, g.screenW-2))
	dst.DrawTextCentered(y+1, "Press B to go back, Q to quit")
}

// renderHUD draws the title, score and move counter.
func (g *Game) renderHUD(dst *core.Screen, frame core.Rect) {
	s := g.session
	title := "Gems: " + g.level.Name
	if g.mode == ModeEndless {
		title = "Gems: Endless"
	}
	dst.DrawTextCentered(0, title)

	span := core.NewRect(0, 1, g.screenW, 1).CenterIn(core.Max(frame.W, 36), 1)
	dst.DrawText(span.X, 1, fmt.Sprintf("Score: %d", s.Score()))

	var info string
	if g.mode == ModeEndless {
		info = fmt.Sprintf("Moves: %d", s.Moves())
	} else {
		info = fmt.Sprintf("Moves left: %d", s.MovesLeft())
	}
	dst.DrawText(span.Right()-len(info), 1, info)

	if g.mode == ModeCampaign {
		goal := fmt.Sprintf("  goal %d", g.level.Stars[0])
		x := (g.screenW - 3 - len(goal)) / 2
		dst.DrawTextColored(x, 2, starString(s.Stars()), core.ColorBrightYellow)
		dst.DrawText(x+3, 2, goal)
	}
}

// renderBoard draws the frame, empty cells and sprites.
func (g *Game) renderBoard(dst *core.Screen, frame core.Rect) {
	dst.DrawBox(frame, core.ColorGray)
	cw := cellWidth()
	ox, oy := frame.X+1, frame.Y+1
	board := g.session.Board()

	for y := 0; y < g.level.H; y++ {
		for x := 0; x < g.level.W; x++ {
			if board.IsValid(gcore.P(x, y)) {
				dst.SetColored(ox+x*cw+cw-1, oy+y, '·', core.ColorGray)
			}
		}
	}

	theme := g.theme()
	blink := (g.tick/8)%2 == 0
	for _, sp := range g.playback.Sprites() {
		pos := g.playback.Position(sp)
		if pos.Y < 0 || pos.Y >= g.level.H {
			continue
		}
		r, c := theme.Style(sp.Type)
		if sp.Fading {
			if !blink {
				continue
			}
			r, c = '*', core.ColorBrightWhite
		}
		dst.SetColored(ox+pos.X*cw+cw-1, oy+pos.Y, r, c)
	}

	if g.gameOver || g.playback.Busy() {
		return
	}
	if g.hintLeft > 0 && blink {
		for _, p := range [2]gcore.Pos{g.hint.A, g.hint.B} {
			g.drawMarker(dst, ox, oy, p, '?', core.ColorOrange)
		}
	}
	if g.selected {
		g.drawMarker(dst, ox, oy, g.selPos, '»', core.ColorBrightYellow)
	}
	if !g.selected || g.cursor != g.selPos {
		g.drawMarker(dst, ox, oy, g.cursor, '>', core.ColorBrightWhite)
	}
}

// drawMarker flags cell p. Wide cells get a marker in front of the glyph;
// single-column cells swap the glyph for the marker.
func (g *Game) drawMarker(dst *core.Screen, ox, oy int, p gcore.Pos, r rune, c core.Color) {
	cw := cellWidth()
	x := ox + p.X*cw
	if cw > 1 {
		dst.SetColored(x+cw-2, oy+p.Y, r, c)
		return
	}
	if (g.tick/15)%2 == 1 {
		dst.SetColored(x, oy+p.Y, r, c)
	}
}

// renderFooter draws the last message below the board.
func (g *Game) renderFooter(dst *core.Screen, frame core.Rect) {
	y := frame.Bottom()
	if g.msgLeft > 0 && g.message != "" {
		dst.DrawTextCentered(y, g.message)
	} else if pts := g.playback.StepPoints(); g.playback.Busy() && pts > 0 {
		dst.DrawTextCentered(y, fmt.Sprintf("+%d", pts))
	}
	if y+1 < g.screenH {
		dst.DrawTextCentered(y+1, truncate(g.Controls(), g.screenW))
	}
}

// renderOverlays draws game state overlays.
func (g *Game) renderOverlays(dst *core.Screen, frame core.Rect) {
	centerX := frame.X + frame.W/2
	centerY := frame.Y + frame.H/2

	if g.paused {
		g.drawOverlay(dst, centerX, centerY, "PAUSED", "Press P to resume")
		return
	}
	if !g.gameOver {
		return
	}

	s := g.session
	scoreStr := fmt.Sprintf("Score: %d", s.Score())
	switch {
	case g.mode == ModeEndless:
		g.drawOverlay(dst, centerX, centerY, "NO MOVES LEFT", scoreStr, "Press R to restart")
	case s.Won() && g.next != "":
		g.drawOverlay(dst, centerX, centerY, "LEVEL COMPLETE!", scoreStr, starString(s.Stars()),
			"Enter: next level", "R: replay")
	case s.Won():
		g.drawOverlay(dst, centerX, centerY, "CAMPAIGN COMPLETE!", scoreStr, starString(s.Stars()),
			"Press R to replay")
	case s.Deadlocked():
		g.drawOverlay(dst, centerX, centerY, "NO MOVES LEFT", scoreStr, "Press R to restart")
	default:
		goal := fmt.Sprintf("Needed %d", g.level.Stars[0])
		g.drawOverlay(dst, centerX, centerY, "OUT OF MOVES", scoreStr, goal, "Press R to restart")
	}
}

// drawOverlay draws a centered text overlay.
func (g *Game) drawOverlay(dst *core.Screen, centerX, centerY int, lines ...string) {
	maxLen := 0
	for _, line := range lines {
		maxLen = core.Max(maxLen, utf8.RuneCountInString(line))
	}

	boxW := maxLen + 4
	boxH := len(lines) + 2
	box := core.NewRect(centerX-boxW/2, centerY-boxH/2, boxW, boxH)

	// Clear area behind overlay
	dst.DrawRect(box, ' ')
	dst.DrawBox(box, core.ColorBrightWhite)

	for i, line := range lines {
		x := centerX - utf8.RuneCountInString(line)/2
		dst.DrawText(x, box.Y+1+i, line)
	}
}

func starString(n int) string {
	n = core.Clamp(n, 0, 3)
	return strings.Repeat("★", n) + strings.Repeat("☆", 3-n)
}

func truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
