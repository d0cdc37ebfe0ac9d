package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-gems/internal/core"
	"github.com/vovakirdan/tui-gems/internal/games/gems"
	"github.com/vovakirdan/tui-gems/internal/games/gems/levels"
	"github.com/vovakirdan/tui-gems/internal/registry"
	"github.com/vovakirdan/tui-gems/internal/storage"
)

// LevelSelection holds the player's choice from the level list.
type LevelSelection struct {
	Endless bool
	LevelID string // empty for endless
}

// NewGame creates the game for the selection.
func (s LevelSelection) NewGame() registry.Game {
	if s.Endless {
		return gems.NewEndless()
	}
	return gems.NewAt(s.LevelID)
}

// LevelEntry is one row of the level list.
type LevelEntry struct {
	ID        string
	Name      string
	Size      string
	Moves     int
	Unlocked  bool
	BestScore int
	BestStars int
}

// LevelEntries pairs campaign levels with stored progress. Without a store
// every level is open.
func LevelEntries(ls []levels.Level, store *storage.Store) ([]LevelEntry, error) {
	var progress map[string]storage.LevelProgress
	if store != nil {
		var err error
		if progress, err = store.AllProgress(); err != nil {
			return nil, err
		}
	}

	entries := make([]LevelEntry, 0, len(ls))
	for i, l := range ls {
		p := progress[l.ID]
		entries = append(entries, LevelEntry{
			ID:        l.ID,
			Name:      l.Name,
			Size:      fmt.Sprintf("%dx%d", l.W, l.H),
			Moves:     l.MaxMoves,
			Unlocked:  store == nil || i == 0 || p.Unlocked,
			BestScore: p.BestScore,
			BestStars: p.BestStars,
		})
	}
	return entries, nil
}

var (
	menuTitleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	menuCursorStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57"))
	menuLockedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	menuStarStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	menuHelpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

type levelMenuKeys struct {
	Nav    key.Binding
	Select key.Binding
	Scores key.Binding
	Quit   key.Binding
}

func (k levelMenuKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Nav, k.Select, k.Scores, k.Quit}
}

func (k levelMenuKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// LevelMenuModel lets users pick a campaign level or endless mode.
type LevelMenuModel struct {
	entries        []LevelEntry
	cursor         int // len(entries) is the endless row
	width          int
	height         int
	config         core.RuntimeConfig
	keyMapper      *KeyMapper
	help           help.Model
	keys           levelMenuKeys
	notice         string
	selection      *LevelSelection
	quitting       bool
	openScoreboard bool
}

// NewLevelMenuModel creates a level menu. The cursor starts on the last
// unlocked level.
func NewLevelMenuModel(entries []LevelEntry, cfg core.RuntimeConfig) LevelMenuModel {
	m := LevelMenuModel{
		entries:   entries,
		width:     cfg.ScreenW,
		height:    cfg.ScreenH,
		config:    cfg,
		keyMapper: NewKeyMapper(),
		help:      help.New(),
		keys: levelMenuKeys{
			Nav:    key.NewBinding(key.WithKeys("up", "down"), key.WithHelp("↑/↓", "navigate")),
			Select: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "play")),
			Scores: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "scores")),
			Quit:   key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
		},
	}
	for i, e := range entries {
		if e.Unlocked {
			m.cursor = i
		}
	}
	return m
}

// Init initializes the model.
func (m LevelMenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m LevelMenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.help.Width = msg.Width
		return m, nil
	}
	return m, nil
}

func (m LevelMenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.notice = ""

	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit, MenuActionBack:
		m.quitting = true
		return m, tea.Quit
	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}
	case MenuActionDown:
		if m.cursor < len(m.entries) {
			m.cursor++
		}
	case MenuActionScoreboard:
		m.openScoreboard = true
		return m, tea.Quit
	case MenuActionSelect:
		if m.cursor == len(m.entries) {
			m.selection = &LevelSelection{Endless: true}
			return m, tea.Quit
		}
		e := m.entries[m.cursor]
		if !e.Unlocked {
			m.notice = "Level locked: win the previous level first"
			return m, nil
		}
		m.selection = &LevelSelection{LevelID: e.ID}
		return m, tea.Quit
	}

	return m, nil
}

// View renders the level list.
func (m LevelMenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(menuTitleStyle.Render("G E M S"), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Select a level", m.width))
	b.WriteString("\n\n")

	for i, e := range m.entries {
		b.WriteString(centerText(m.renderEntry(i, e), m.width))
		b.WriteString("\n")
	}

	endless := fmt.Sprintf("  %-34s", "Endless mode")
	if m.cursor == len(m.entries) {
		endless = menuCursorStyle.Render(fmt.Sprintf("> %-34s", "Endless mode"))
	}
	b.WriteString("\n")
	b.WriteString(centerText(endless, m.width))
	b.WriteString("\n\n")

	if m.notice != "" {
		b.WriteString(centerText(m.notice, m.width))
	}
	b.WriteString("\n")
	b.WriteString(centerText(menuHelpStyle.Render(m.help.View(m.keys)), m.width))

	return b.String()
}

func (m LevelMenuModel) renderEntry(i int, e LevelEntry) string {
	name := e.Name
	if len([]rune(name)) > 18 {
		name = string([]rune(name)[:17]) + "."
	}
	line := fmt.Sprintf("%3s  %-18s %5s %2dm", e.ID, name, e.Size, e.Moves)

	switch {
	case i == m.cursor:
		line = menuCursorStyle.Render("> " + line)
	case !e.Unlocked:
		line = menuLockedStyle.Render("  " + line)
	default:
		line = "  " + line
	}

	if !e.Unlocked {
		return line + menuLockedStyle.Render("  locked")
	}
	n := core.Clamp(e.BestStars, 0, 3)
	stars := strings.Repeat("★", n) + strings.Repeat("☆", 3-n)
	return line + "  " + menuStarStyle.Render(stars)
}

// Selected returns the selection, or nil if none was made.
func (m LevelMenuModel) Selected() *LevelSelection {
	return m.selection
}

// IsQuitting returns true if user wants to quit.
func (m LevelMenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsScoreboard returns true if user requested scoreboard.
func (m LevelMenuModel) WantsScoreboard() bool {
	return m.openScoreboard
}

// Config returns the current runtime config (may have been updated by resize).
func (m LevelMenuModel) Config() core.RuntimeConfig {
	return m.config
}

// centerText centers text within given width. Width is measured in
// terminal cells so styled text centers correctly.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	padding := (width - w) / 2
	return strings.Repeat(" ", padding) + text
}

// MenuResult holds the result of running the level menu.
type MenuResult struct {
	Selection       *LevelSelection
	Config          core.RuntimeConfig
	WantsScoreboard bool
	Quit            bool
}

// RunLevelMenu runs the level menu and returns the selection result.
func RunLevelMenu(entries []LevelEntry, cfg core.RuntimeConfig) (MenuResult, error) {
	p := tea.NewProgram(
		NewLevelMenuModel(entries, cfg),
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return MenuResult{Config: cfg}, err
	}

	m, ok := finalModel.(LevelMenuModel)
	if !ok {
		return MenuResult{Config: cfg, Quit: true}, nil
	}

	result := MenuResult{Config: m.Config()}
	switch {
	case m.WantsScoreboard():
		result.WantsScoreboard = true
	case m.Selected() != nil:
		result.Selection = m.Selected()
	default:
		result.Quit = true
	}
	return result, nil
}
