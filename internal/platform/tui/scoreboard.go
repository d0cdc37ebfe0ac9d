package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-gems/internal/core"
	"github.com/vovakirdan/tui-gems/internal/games/gems/levels"
	"github.com/vovakirdan/tui-gems/internal/storage"
)

const (
	sidebarMinWidth = 80 // narrower terminals get a page switcher instead
	sidebarWidth    = 24
	scoreLimit      = 100
)

var (
	boardTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).MarginBottom(1)
	boardFrameStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1)
	boardDimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	boardPickStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	boardTabStyle   = boardPickStyle.Background(lipgloss.Color("57")).Padding(0, 1)
	boardEmptyStyle = boardDimStyle.Italic(true).Padding(2, 4)
)

// ScoreboardPage is one table of the scoreboard: a campaign level or the
// endless mode.
type ScoreboardPage struct {
	Title   string
	LevelID string // empty for endless
}

// Endless reports whether the page lists endless runs.
func (p ScoreboardPage) Endless() bool { return p.LevelID == "" }

// label is the short name used on the page switcher.
func (p ScoreboardPage) label() string {
	if p.Endless() {
		return "Endless"
	}
	return p.LevelID
}

// ScoreboardPages lists one page per campaign level followed by endless.
func ScoreboardPages(ls []levels.Level) []ScoreboardPage {
	pages := make([]ScoreboardPage, 0, len(ls)+1)
	for _, l := range ls {
		pages = append(pages, ScoreboardPage{Title: l.ID + " " + l.Name, LevelID: l.ID})
	}
	return append(pages, ScoreboardPage{Title: "Endless"})
}

// ScoreboardKeyMap holds the scoreboard bindings.
type ScoreboardKeyMap struct {
	Up   key.Binding
	Down key.Binding
	Next key.Binding
	Prev key.Binding
	Back key.Binding
	Quit key.Binding
}

func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Next, k.Prev, k.Back}
}

func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down, k.Next, k.Prev}, {k.Back, k.Quit}}
}

// DefaultScoreboardKeyMap returns the default scoreboard bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up:   key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "scroll up")),
		Down: key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "scroll down")),
		Next: key.NewBinding(key.WithKeys("tab", "right", "l"), key.WithHelp("tab/→", "next page")),
		Prev: key.NewBinding(key.WithKeys("shift+tab", "left", "h"), key.WithHelp("S-tab/←", "prev page")),
		Back: key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc/b", "back")),
		Quit: key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ScoreboardModel shows the best scores page by page, with the saved
// progress of the level on screen.
type ScoreboardModel struct {
	store      *storage.Store
	pages      []ScoreboardPage
	pageCursor int
	scores     []storage.ScoreEntry
	progress   *storage.LevelProgress // nil on the endless page or without a store
	loadErr    error

	table table.Model
	help  help.Model
	keys  ScoreboardKeyMap

	width, height int
	quitting      bool
	goingBack     bool
}

// NewScoreboardModel creates a scoreboard opened on the first page.
func NewScoreboardModel(store *storage.Store, pages []ScoreboardPage, width, height int) ScoreboardModel {
	m := ScoreboardModel{
		store:  store,
		pages:  pages,
		help:   help.New(),
		keys:   DefaultScoreboardKeyMap(),
		width:  width,
		height: height,
	}
	m.table = m.newTable()
	m.reload()
	return m
}

func (m ScoreboardModel) sidebar() bool { return m.width >= sidebarMinWidth }

func (m ScoreboardModel) page() (ScoreboardPage, bool) {
	if len(m.pages) == 0 {
		return ScoreboardPage{}, false
	}
	return m.pages[m.pageCursor], true
}

func (m *ScoreboardModel) newTable() table.Model {
	columns := []table.Column{
		{Title: "Rank", Width: 6},
		{Title: "Score", Width: 8},
		{Title: "Stars", Width: 6},
		{Title: "Player", Width: 10},
		{Title: "Date", Width: 14},
	}
	avail := m.width - 4
	if m.sidebar() {
		avail -= sidebarWidth + 3
	}
	if avail > 60 {
		columns[3].Width = core.Min(avail-46, 20)
	}

	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	styles.Selected = styles.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)

	return table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(core.Max(m.height-9, 3)),
		table.WithStyles(styles),
	)
}

// reload fetches scores and progress for the current page.
func (m *ScoreboardModel) reload() {
	m.scores, m.progress, m.loadErr = nil, nil, nil
	page, ok := m.page()
	if ok && m.store != nil {
		if page.Endless() {
			m.scores, m.loadErr = m.store.TopScores("gems_endless", scoreLimit)
		} else {
			m.scores, m.loadErr = m.store.TopLevelScores(page.LevelID, scoreLimit)
			if m.loadErr == nil {
				p, err := m.store.Progress(page.LevelID)
				m.progress, m.loadErr = &p, err
			}
		}
	}
	m.fillRows()
}

func (m *ScoreboardModel) fillRows() {
	rows := make([]table.Row, 0, len(m.scores))
	for i, s := range m.scores {
		rows = append(rows, table.Row{
			"#" + strconv.Itoa(i+1),
			strconv.Itoa(s.Score),
			strings.Repeat("★", core.Clamp(s.Stars, 0, 3)),
			s.Player,
			s.CreatedAt.Format("Jan 02 15:04"),
		})
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// turn moves delta pages, wrapping around.
func (m *ScoreboardModel) turn(delta int) {
	if len(m.pages) == 0 {
		return
	}
	n := len(m.pages)
	m.pageCursor = ((m.pageCursor+delta)%n + n) % n
	m.reload()
}

func (m ScoreboardModel) Init() tea.Cmd { return nil }

func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Next):
			m.turn(1)
			return m, nil
		case key.Matches(msg, m.keys.Prev):
			m.turn(-1)
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.table = m.newTable()
		m.fillRows()
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	title := "HIGH SCORES"
	if page, ok := m.page(); ok {
		title += " - " + page.Title
	}

	var b strings.Builder
	b.WriteString(boardTitleStyle.Render(centerText(title, m.width)))
	b.WriteString("\n\n")

	body := boardFrameStyle.Render(m.tableView())
	if m.sidebar() {
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, m.sidebarView(), "  ", body))
	} else {
		b.WriteString(centerText(m.switcherView(), m.width))
		b.WriteString("\n\n")
		b.WriteString(centerText(body, m.width))
	}

	b.WriteString("\n")
	if line := m.progressLine(); line != "" {
		b.WriteString(boardDimStyle.Render(line))
		b.WriteString("\n")
	}
	b.WriteString(boardDimStyle.Render(m.help.View(m.keys)))
	return b.String()
}

func (m ScoreboardModel) sidebarView() string {
	var sb strings.Builder
	sb.WriteString("Levels\n")
	sb.WriteString(strings.Repeat("-", sidebarWidth-4))
	for i, p := range m.pages {
		name := p.Title
		if r := []rune(name); len(r) > sidebarWidth-6 {
			name = string(r[:sidebarWidth-7]) + "."
		}
		sb.WriteString("\n")
		if i == m.pageCursor {
			sb.WriteString(boardPickStyle.Render("> " + name))
		} else {
			sb.WriteString("  " + name)
		}
	}
	return boardFrameStyle.Width(sidebarWidth).Render(sb.String())
}

// switcherView lists page labels, or only the current title when they do
// not fit.
func (m ScoreboardModel) switcherView() string {
	tabs := make([]string, len(m.pages))
	for i, p := range m.pages {
		if i == m.pageCursor {
			tabs[i] = boardTabStyle.Render(p.label())
		} else {
			tabs[i] = boardDimStyle.Render(" " + p.label() + " ")
		}
	}
	line := strings.Join(tabs, " ")
	if page, ok := m.page(); ok && lipgloss.Width(line) > m.width-4 {
		line = "< " + page.Title + " >"
	}
	return line
}

func (m ScoreboardModel) tableView() string {
	switch {
	case m.loadErr != nil:
		return boardEmptyStyle.Render("Scores unavailable: " + m.loadErr.Error())
	case len(m.scores) == 0:
		return boardEmptyStyle.Render("No scores recorded yet.\nPlay this level to set a high score!")
	}
	return m.table.View()
}

// progressLine summarizes the saved progress of a campaign page.
func (m ScoreboardModel) progressLine() string {
	p := m.progress
	if p == nil || p.Plays == 0 {
		return ""
	}
	stars := core.Clamp(p.BestStars, 0, 3)
	return fmt.Sprintf("Best %d %s%s  |  %d plays  |  %d wins",
		p.BestScore, strings.Repeat("★", stars), strings.Repeat("☆", 3-stars), p.Plays, p.Wins)
}

// IsGoingBack reports whether the player went back to the level list.
func (m ScoreboardModel) IsGoingBack() bool { return m.goingBack }

// IsQuitting reports whether the player quit.
func (m ScoreboardModel) IsQuitting() bool { return m.quitting }

// RunScoreboard shows the scoreboard and reports whether the player went
// back rather than quitting.
func RunScoreboard(store *storage.Store, pages []ScoreboardPage, width, height int) (goBack bool, err error) {
	final, err := tea.NewProgram(NewScoreboardModel(store, pages, width, height), tea.WithAltScreen()).Run()
	if err != nil {
		return false, err
	}
	m, ok := final.(ScoreboardModel)
	return ok && m.IsGoingBack(), nil
}
