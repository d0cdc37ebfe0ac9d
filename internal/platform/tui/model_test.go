package tui

import (
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-gems/internal/core"
	"github.com/vovakirdan/tui-gems/internal/storage"
)

// fakeGame finishes on a chosen step with a fixed result.
type fakeGame struct {
	state    core.GameState
	finishOn int
	steps    int
	resets   int
	resized  int
	level    string
	next     string
}

func (g *fakeGame) ID() string               { return "gems" }
func (g *fakeGame) Title() string            { return "Fake" }
func (g *fakeGame) Reset(core.RuntimeConfig) { g.resets++; g.steps = 0; g.state.GameOver = false }
func (g *fakeGame) Render(dst *core.Screen)  { dst.DrawText(0, 0, "fake") }
func (g *fakeGame) State() core.GameState    { return g.state }
func (g *fakeGame) LevelID() string          { return g.level }
func (g *fakeGame) NextLevelID() string      { return g.next }
func (g *fakeGame) Resize(w, h int)          { g.resized++ }

func (g *fakeGame) Step(core.InputFrame) core.StepResult {
	g.steps++
	if g.steps == g.finishOn {
		g.state.GameOver = true
		return core.StepResult{State: g.state, Finished: true}
	}
	return core.StepResult{State: g.state}
}

func openStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "progress.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return nm, cmd
}

func testConfig() core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 7}
}

func TestModelRecordsFinishedLevel(t *testing.T) {
	store := openStore(t)
	g := &fakeGame{
		state:    core.GameState{Score: 150, Stars: 2, Won: true},
		finishOn: 2,
		level:    "01",
		next:     "02",
	}
	m := NewModel(g, store, testConfig())
	m.player = "alice"

	for i := 0; i < 4; i++ {
		m, _ = update(t, m, TickMsg{})
	}

	scores, err := store.TopLevelScores("01", 10)
	if err != nil {
		t.Fatalf("TopLevelScores() failed: %v", err)
	}
	if len(scores) != 1 {
		t.Fatalf("scores = %d, want 1 (saved once)", len(scores))
	}
	if s := scores[0]; s.Score != 150 || s.Stars != 2 || s.Player != "alice" || s.GameID != "gems" {
		t.Errorf("score entry = %+v", s)
	}

	p, err := store.Progress("01")
	if err != nil {
		t.Fatalf("Progress() failed: %v", err)
	}
	if p.Plays != 1 || p.Wins != 1 || p.BestStars != 2 {
		t.Errorf("progress = %+v", p)
	}
	if next, _ := store.Progress("02"); !next.Unlocked {
		t.Error("next level should be unlocked after a win")
	}
}

func TestModelEndlessSkipsProgress(t *testing.T) {
	store := openStore(t)
	g := &fakeGame{state: core.GameState{Score: 40}, finishOn: 1}
	m := NewModel(g, store, testConfig())

	update(t, m, TickMsg{})

	all, err := store.AllProgress()
	if err != nil {
		t.Fatalf("AllProgress() failed: %v", err)
	}
	if len(all) != 0 {
		t.Errorf("progress rows = %d, want 0", len(all))
	}
	if best, _ := store.HighScore("gems"); best != 40 {
		t.Errorf("high score = %d, want 40", best)
	}
}

func TestModelBackOnlyWhenIdle(t *testing.T) {
	g := &fakeGame{finishOn: 1}
	m := NewModel(g, nil, testConfig())

	m, cmd := update(t, m, runeKey('b'))
	if m.BackToMenu() || cmd != nil {
		t.Fatal("back accepted during play")
	}

	m, _ = update(t, m, TickMsg{})
	m, cmd = update(t, m, runeKey('b'))
	if !m.BackToMenu() || cmd == nil {
		t.Error("back after game over should leave the game")
	}
	if m.View() != "" {
		t.Error("view should be empty after leaving")
	}
}

func TestModelRestartKeepsFixedSeed(t *testing.T) {
	g := &fakeGame{}
	m := NewModel(g, nil, testConfig())

	m, _ = update(t, m, runeKey('r'))
	m, _ = update(t, m, TickMsg{})
	if g.resets != 1 {
		t.Errorf("resets = %d, want 1", g.resets)
	}
	if m.config.Seed != 7 {
		t.Errorf("seed = %d, want 7", m.config.Seed)
	}
}

func TestModelResizeUsesResizer(t *testing.T) {
	g := &fakeGame{}
	m := NewModel(g, nil, testConfig())

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})
	if g.resized != 1 || g.resets != 0 {
		t.Errorf("resized = %d resets = %d, want 1 and 0", g.resized, g.resets)
	}
	if m.config.ScreenW != 100 || m.config.ScreenH != 40 {
		t.Errorf("config size = %dx%d", m.config.ScreenW, m.config.ScreenH)
	}
}

func TestModelQuit(t *testing.T) {
	m := NewModel(&fakeGame{}, nil, testConfig())
	m, cmd := update(t, m, runeKey('q'))
	if !m.IsQuitting() || cmd == nil {
		t.Error("q should quit")
	}
}

func storageEntry(levelID string, score int) storage.ScoreEntry {
	return storage.ScoreEntry{GameID: "gems", LevelID: levelID, Player: "bob", Score: score, Stars: 1}
}
