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

	"github.com/vovakirdan/sky-arcade/internal/registry"
	"github.com/vovakirdan/sky-arcade/internal/storage"
)

const (
	maxScores        = 100 // Rows loaded into the score table
	maxMatches       = 50  // Recent online matches scanned per game
	maxTrophyRows    = 6
	scoreboardChrome = 9 // Title, chips, frame, stats and help lines
)

type boardPane int

const (
	paneScores boardPane = iota
	paneMatches
)

var (
	sbTitle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	sbChip     = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Padding(0, 1)
	sbChipOn   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57")).Padding(0, 1)
	sbFrame    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1)
	sbDim      = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	sbGold     = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	sbEmptyMsg = sbDim.Italic(true).Padding(1, 2)
)

type scoreboardKeys struct {
	Up   key.Binding
	Down key.Binding
	Next key.Binding
	Prev key.Binding
	Pane key.Binding
	Back key.Binding
	Quit key.Binding
}

func (k scoreboardKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Prev, k.Pane, k.Back, k.Quit}
}

func (k scoreboardKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down, k.Next, k.Prev}, {k.Pane, k.Back, k.Quit}}
}

var boardKeys = scoreboardKeys{
	Up:   key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "scroll")),
	Down: key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "scroll")),
	Next: key.NewBinding(key.WithKeys("tab", "right", "l"), key.WithHelp("tab/→", "next game")),
	Prev: key.NewBinding(key.WithKeys("shift+tab", "left", "h"), key.WithHelp("←", "prev game")),
	Pane: key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "online matches")),
	Back: key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc", "back")),
	Quit: key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}

// ScoreboardModel shows high scores, stats and trophies per game, and the
// recent online results of versus games.
type ScoreboardModel struct {
	store  *storage.Store
	games  []registry.GameInfo
	cursor int
	pane   boardPane

	scores   []storage.ScoreEntry
	matches  []storage.OnlineMatchResult
	stats    storage.GameStats
	trophies []storage.TrophySummary

	table table.Model
	help  help.Model

	width, height int
	quitting      bool
	goingBack     bool
}

// NewScoreboardModel creates a scoreboard for the registered games. store
// may be nil, in which case every board is empty.
func NewScoreboardModel(store *storage.Store, width, height int) ScoreboardModel {
	m := ScoreboardModel{
		store:  store,
		games:  registry.List(),
		help:   help.New(),
		width:  width,
		height: height,
	}
	m.reload()
	return m
}

func (m ScoreboardModel) current() (registry.GameInfo, bool) {
	if len(m.games) == 0 {
		return registry.GameInfo{}, false
	}
	return m.games[m.cursor], true
}

// reload fetches everything shown for the selected game and rebuilds the
// table. Read errors leave the affected section empty.
func (m *ScoreboardModel) reload() {
	m.scores, m.matches, m.trophies = nil, nil, nil
	m.stats = storage.GameStats{}

	game, ok := m.current()
	if !ok || !game.Versus {
		m.pane = paneScores
	}
	if ok && m.store != nil {
		if scores, err := m.store.TopScores(game.ID, maxScores); err == nil {
			m.scores = scores
		}
		if stats, err := m.store.GameStats(game.ID); err == nil {
			m.stats = stats
		}
		if trophies, err := m.store.Trophies(game.ID); err == nil {
			m.trophies = trophies
		}
		if game.Versus {
			m.matches = m.onlineMatches(game.ID)
		}
	}
	m.table = m.buildTable()
}

func (m *ScoreboardModel) onlineMatches(gameID string) []storage.OnlineMatchResult {
	recent, err := m.store.RecentOnlineMatches(maxMatches)
	if err != nil {
		return nil
	}
	var out []storage.OnlineMatchResult
	for _, r := range recent {
		if r.GameID == gameID {
			out = append(out, r)
		}
	}
	return out
}

func (m ScoreboardModel) buildTable() table.Model {
	var (
		cols []table.Column
		rows []table.Row
	)
	switch m.pane {
	case paneMatches:
		cols = []table.Column{
			{Title: "Date", Width: 13},
			{Title: "Score", Width: 9},
			{Title: "Result", Width: 12},
			{Title: "Length", Width: 7},
		}
		for _, r := range m.matches {
			rows = append(rows, table.Row{
				r.CreatedAt.Format("Jan 02 15:04"),
				fmt.Sprintf("%d - %d", r.Score1, r.Score2),
				matchOutcome(r),
				fmt.Sprintf("%d:%02d", r.Duration/60, r.Duration%60),
			})
		}
	default:
		cols = []table.Column{
			{Title: "Rank", Width: 5},
			{Title: "Score", Width: 10},
			{Title: "Date", Width: 13},
		}
		for i, s := range m.scores {
			rows = append(rows, table.Row{
				"#" + strconv.Itoa(i+1),
				strconv.Itoa(s.Score),
				s.CreatedAt.Format("Jan 02 15:04"),
			})
		}
	}

	t := table.New(
		table.WithColumns(cols),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(max(m.height-scoreboardChrome-maxTrophyRows, 3)),
	)
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
	t.SetStyles(styles)
	return t
}

// matchOutcome describes a stored match from the host's (P1) side.
func matchOutcome(r storage.OnlineMatchResult) string {
	switch {
	case r.EndReason != "" && r.EndReason != "completed":
		return r.EndReason
	case r.WinnerSession == "":
		return "draw"
	case r.WinnerSession == r.Player1Session:
		return "P1 won"
	default:
		return "P2 won"
	}
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, boardKeys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, boardKeys.Back):
			m.goingBack = true
			return m, tea.Quit
		case key.Matches(msg, boardKeys.Next):
			m.step(1)
			return m, nil
		case key.Matches(msg, boardKeys.Prev):
			m.step(-1)
			return m, nil
		case key.Matches(msg, boardKeys.Pane):
			if game, ok := m.current(); ok && game.Versus {
				m.pane = 1 - m.pane
				m.table = m.buildTable()
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.table = m.buildTable()
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m *ScoreboardModel) step(delta int) {
	if len(m.games) == 0 {
		return
	}
	m.cursor = (m.cursor + delta + len(m.games)) % len(m.games)
	m.reload()
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	title := "HIGH SCORES"
	game, ok := m.current()
	if ok {
		title += " - " + game.Title
		if m.pane == paneMatches {
			title = "ONLINE MATCHES - " + game.Title
		}
	}

	var b strings.Builder
	b.WriteString(sbTitle.Render(centerText(title, m.width)))
	b.WriteString("\n\n")
	b.WriteString(centerText(m.chips(), m.width))
	b.WriteString("\n\n")
	b.WriteString(sbFrame.Render(m.body()))
	b.WriteString("\n")
	b.WriteString(m.summary())
	b.WriteString("\n")
	b.WriteString(sbDim.Render(m.help.View(boardKeys)))
	return b.String()
}

// chips renders the game selector. It collapses to "< Title >" when the
// full row does not fit.
func (m ScoreboardModel) chips() string {
	parts := make([]string, len(m.games))
	for i, g := range m.games {
		if i == m.cursor {
			parts[i] = sbChipOn.Render(g.Title)
		} else {
			parts[i] = sbChip.Render(g.Title)
		}
	}
	row := strings.Join(parts, " ")
	if lipgloss.Width(row) > m.width-4 && len(m.games) > 0 {
		return "< " + m.games[m.cursor].Title + " >"
	}
	return row
}

func (m ScoreboardModel) body() string {
	switch {
	case m.pane == paneMatches && len(m.matches) == 0:
		return sbEmptyMsg.Render("No online matches yet.\nHost one from the SSH arcade.")
	case m.pane == paneScores && len(m.scores) == 0:
		return sbEmptyMsg.Render("No scores recorded yet.\nPlay a game to set a high score!")
	}
	return m.table.View()
}

// summary renders aggregate stats and earned trophies.
func (m ScoreboardModel) summary() string {
	var b strings.Builder
	if m.stats.GamesCount > 0 {
		b.WriteString(sbDim.Render(fmt.Sprintf("Games: %d  Best: %d  Average: %.0f  Last played: %s",
			m.stats.GamesCount, m.stats.HighScore, m.stats.AvgScore, m.stats.LastPlayed.Format("Jan 02 15:04"))))
		b.WriteString("\n")
	}
	if len(m.trophies) == 0 {
		return b.String()
	}

	b.WriteString(sbGold.Render("Trophies"))
	b.WriteString("\n")
	for i, t := range m.trophies {
		if i == maxTrophyRows {
			b.WriteString(sbDim.Render(fmt.Sprintf("  ... and %d more", len(m.trophies)-i)))
			b.WriteString("\n")
			break
		}
		line := "  * " + t.Name
		if t.Holder != "" {
			line += " (" + t.Holder + ")"
		}
		if t.Count > 1 {
			line += " x" + strconv.Itoa(t.Count)
		}
		b.WriteString(line + "\n")
	}
	return b.String()
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// RunScoreboard runs the scoreboard screen.
// Returns true if user wants to go back to menu, false if quitting.
func RunScoreboard(store *storage.Store, width, height int) (goBack bool, err error) {
	final, err := tea.NewProgram(NewScoreboardModel(store, width, height), tea.WithAltScreen()).Run()
	if err != nil {
		return false, err
	}
	m, ok := final.(ScoreboardModel)
	if !ok {
		return false, nil
	}
	return m.IsGoingBack(), nil
}
