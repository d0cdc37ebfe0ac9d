// Package gems implements the match-3 game on top of the board engine in
// gems/core: sessions with a move budget and stars, the auto-player, and
// the interactive registry.Game with animated playback.
package gems

import (
	"errors"
	"fmt"
	"sync"

	"github.com/vovakirdan/tui-gems/internal/config"
	"github.com/vovakirdan/tui-gems/internal/core"
	gcore "github.com/vovakirdan/tui-gems/internal/games/gems/core"
	"github.com/vovakirdan/tui-gems/internal/games/gems/levels"
	"github.com/vovakirdan/tui-gems/internal/registry"
)

const (
	hintTicks    = 90
	messageTicks = 60
)

// Game implements the interactive match-3 game.
type Game struct {
	mode  Mode
	first string // start level requested at construction
	level *gcore.Level
	next  string // campaign level unlocked by a win
	seed  int64
	tick  uint64

	session  *Session
	playback *Playback
	err      error

	cursor   gcore.Pos
	selected bool
	selPos   gcore.Pos
	hint     gcore.Swap
	hintLeft int
	message  string
	msgLeft  int

	// Screen dimensions
	screenW int
	screenH int

	gameOver bool
	paused   bool
	tooSmall bool
}

// Package-level setup applied to games created afterwards.
var (
	setupMu       sync.Mutex
	settings      = config.DefaultGemsConfig()
	campaign      []levels.Level
	selectedLevel string
)

// Configure sets the configuration used by new games.
func Configure(cfg config.GemsConfig) {
	setupMu.Lock()
	defer setupMu.Unlock()
	cfg.Validate()
	settings = cfg
}

// SetCampaign sets the campaign levels in play order.
func SetCampaign(ls []levels.Level) {
	setupMu.Lock()
	defer setupMu.Unlock()
	campaign = ls
}

// SetStartLevel selects the campaign level the next game starts on.
// An empty id starts from the first level.
func SetStartLevel(id string) {
	setupMu.Lock()
	defer setupMu.Unlock()
	selectedLevel = id
}

// GetStartLevel returns the currently selected start level.
func GetStartLevel() string {
	setupMu.Lock()
	defer setupMu.Unlock()
	return selectedLevel
}

// Campaign returns the campaign levels, loading them on first use from
// the configured directory or the built-in set.
func Campaign() ([]levels.Level, error) {
	setupMu.Lock()
	defer setupMu.Unlock()
	if campaign != nil {
		return campaign, nil
	}
	loader := levels.Builtin()
	if settings.Levels.Dir != "" {
		loader = levels.NewLoader(settings.Levels.Dir)
	}
	ls, err := loader.LoadAll()
	if err != nil {
		return nil, err
	}
	campaign = ls
	return campaign, nil
}

func currentSettings() config.GemsConfig {
	setupMu.Lock()
	defer setupMu.Unlock()
	return settings
}

// New creates a campaign game.
func New() *Game {
	return &Game{mode: ModeCampaign}
}

// NewAt creates a campaign game starting on level id, ignoring the
// package-level start level.
func NewAt(id string) *Game {
	return &Game{mode: ModeCampaign, first: id}
}

// NewEndless creates an endless game.
func NewEndless() *Game {
	return &Game{mode: ModeEndless}
}

func init() {
	registry.Register("gems", func() registry.Game {
		return New()
	})
	registry.Register("gems_endless", func() registry.Game {
		return NewEndless()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string {
	if g.mode == ModeEndless {
		return "gems_endless"
	}
	return "gems"
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.mode == ModeEndless {
		return "Gems (Endless)"
	}
	return "Gems"
}

// Reset starts the current level again, or the selected start level on
// the first call.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.seed = cfg.Seed
	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH
	g.paused = false

	if g.mode == ModeEndless {
		g.start(EndlessLevel(currentSettings().Session.EndlessTypes), "")
		return
	}

	id := g.first
	if id == "" {
		id = GetStartLevel()
	}
	if g.level != nil {
		id = g.level.ID
	}
	level, next, err := pickLevel(id)
	if err != nil {
		g.fail(err)
		return
	}
	g.start(level, next)
}

// pickLevel finds id in the campaign, or the first level for "".
func pickLevel(id string) (*gcore.Level, string, error) {
	ls, err := Campaign()
	if err != nil {
		return nil, "", err
	}
	if len(ls) == 0 {
		return nil, "", levels.ErrNotFound
	}
	cur := ls[0]
	if id != "" {
		found := false
		for _, l := range ls {
			if l.ID == id {
				cur, found = l, true
				break
			}
		}
		if !found {
			return nil, "", fmt.Errorf("%w: %s", levels.ErrNotFound, id)
		}
	}
	next := ""
	if n, ok := levels.Next(ls, cur.ID); ok {
		next = n.ID
	}
	return cur.Level, next, nil
}

// start builds a session for level.
func (g *Game) start(level *gcore.Level, next string) {
	cfg := currentSettings()

	g.tick = 0
	g.err = nil
	g.gameOver = false
	g.level = level
	g.next = next
	g.selected = false
	g.hintLeft = 0
	g.message = ""
	g.msgLeft = 0
	g.playback = NewPlayback(cfg.Board.AnimationTicks)

	s, err := NewSession(level, SessionOptions{
		Seed:       g.seed,
		Mode:       g.mode,
		MaxRetries: cfg.Board.MaxRetries,
		Reshuffle:  cfg.Session.Reshuffle,
		Listener:   g.playback,
	})
	if err != nil {
		g.fail(err)
		return
	}
	g.session = s
	g.playback.Finish()
	g.cursor = gcore.P(level.W/2, level.H/2)
	g.checkScreenSize()
}

func (g *Game) fail(err error) {
	g.err = err
	g.session = nil
	g.gameOver = true
}

// Resize follows a terminal resize without restarting the level.
func (g *Game) Resize(w, h int) {
	g.screenW = w
	g.screenH = h
	g.checkScreenSize()
}

// checkScreenSize checks if the screen is large enough.
func (g *Game) checkScreenSize() {
	if g.level == nil {
		g.tooSmall = false
		return
	}
	minW, minH := g.boardSize()
	minW = core.Max(minW+2, 36)
	minH += hudHeight + 3
	g.tooSmall = g.screenW < minW || g.screenH < minH
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++

	if g.tooSmall || g.session == nil {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) && !g.gameOver {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	if g.hintLeft > 0 {
		g.hintLeft--
	}
	if g.msgLeft > 0 {
		g.msgLeft--
	}

	// Input is locked while the display catches up with the board
	if g.playback.Busy() {
		g.playback.Tick()
		return g.settle()
	}

	if g.gameOver {
		if in.Has(core.ActionConfirm) && g.session.Won() && g.next != "" {
			g.advanceLevel()
		}
		return core.StepResult{State: g.State()}
	}

	g.handleInput(in)
	if g.playback.Busy() {
		return core.StepResult{State: g.State()}
	}
	return g.settle()
}

// settle ends the game once the session is over and playback is done.
func (g *Game) settle() core.StepResult {
	if g.gameOver || g.playback.Busy() || !g.session.Over() {
		return core.StepResult{State: g.State()}
	}
	g.gameOver = true
	g.selected = false
	return core.StepResult{State: g.State(), Finished: true}
}

func (g *Game) handleInput(in core.InputFrame) {
	if in.Has(core.ActionHint) {
		if sw, ok := g.session.Hint(); ok {
			g.hint = sw
			g.hintLeft = hintTicks
		}
	}

	for _, m := range [...]struct {
		action core.Action
		dir    gcore.Dir
	}{
		{core.ActionUp, gcore.DirUp},
		{core.ActionDown, gcore.DirDown},
		{core.ActionLeft, gcore.DirLeft},
		{core.ActionRight, gcore.DirRight},
	} {
		if !in.Has(m.action) {
			continue
		}
		if g.selected {
			g.trySwap(g.selPos, g.selPos.Step(m.dir))
			return
		}
		g.moveCursor(m.dir)
		return
	}

	if in.Has(core.ActionSelect) || in.Has(core.ActionConfirm) {
		g.toggleSelect()
	}
}

func (g *Game) moveCursor(d gcore.Dir) {
	next := g.cursor.Step(d)
	next.X = core.Clamp(next.X, 0, g.level.W-1)
	next.Y = core.Clamp(next.Y, 0, g.level.H-1)
	g.cursor = next
}

func (g *Game) toggleSelect() {
	board := g.session.Board()
	switch {
	case g.selected && g.selPos == g.cursor:
		g.selected = false
	case g.selected && g.selPos.Adjacent(g.cursor):
		g.trySwap(g.selPos, g.cursor)
	default:
		if _, ok := board.TypeAt(g.cursor); ok {
			g.selected = true
			g.selPos = g.cursor
		}
	}
}

func (g *Game) trySwap(a, b gcore.Pos) {
	g.selected = false
	g.hintLeft = 0

	out, err := g.session.Swap(a, b)
	switch {
	case errors.Is(err, ErrGameOver):
		return
	case errors.Is(err, gcore.ErrOutOfBounds), errors.Is(err, gcore.ErrInvalidCell),
		errors.Is(err, gcore.ErrEmptyCell), errors.Is(err, gcore.ErrNotAdjacent):
		g.say("Can't swap there")
		return
	case err != nil:
		g.fail(err)
		return
	}

	if !out.Accepted() {
		g.say("No match")
		return
	}
	g.cursor = b
	if out.Steps > 1 {
		g.say(fmt.Sprintf("+%d  combo x%d", out.Points, out.Steps))
	} else {
		g.say(fmt.Sprintf("+%d", out.Points))
	}
}

func (g *Game) say(msg string) {
	g.message = msg
	g.msgLeft = messageTicks
}

// advanceLevel moves to the next campaign level.
func (g *Game) advanceLevel() {
	level, next, err := pickLevel(g.next)
	if err != nil {
		g.fail(err)
		return
	}
	g.start(level, next)
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	st := core.GameState{
		GameOver: g.gameOver,
		Paused:   g.paused || g.tooSmall,
	}
	if g.session != nil {
		st.Score = g.session.Score()
		st.Won = g.session.Won()
		st.Stars = g.session.Stars()
	}
	return st
}

// LevelID returns the campaign level being played, or "" in endless mode.
func (g *Game) LevelID() string {
	if g.mode == ModeEndless || g.level == nil {
		return ""
	}
	return g.level.ID
}

// NextLevelID returns the campaign level a win unlocks.
func (g *Game) NextLevelID() string { return g.next }

// Session exposes the running session, nil after a failed start.
func (g *Game) Session() *Session { return g.session }

// Err returns the error that stopped the game, if any.
func (g *Game) Err() error { return g.err }

// Controls returns the control hints for the game.
func (g *Game) Controls() string {
	return "Arrows/WASD: Move | Space: Select | H: Hint | P: Pause | R: Restart | Q: Quit"
}
