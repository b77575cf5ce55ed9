package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/laserpunk/internal/registry"
	"github.com/vovakirdan/laserpunk/internal/storage"
)

const maxScores = 100

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up   key.Binding
	Down key.Binding
	Next key.Binding
	Prev key.Binding
	Back key.Binding
	Quit key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Next, k.Prev, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down, k.Next, k.Prev}, {k.Back, k.Quit}}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up:   key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("up/k", "scroll up")),
		Down: key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("down/j", "scroll down")),
		Next: key.NewBinding(key.WithKeys("right", "l", "tab"), key.WithHelp("right", "next campaign")),
		Prev: key.NewBinding(key.WithKeys("left", "h", "shift+tab"), key.WithHelp("left", "prev campaign")),
		Back: key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc/b", "back")),
		Quit: key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ScoreboardModel lists the best runs of one campaign at a time.
type ScoreboardModel struct {
	campaigns []registry.CampaignInfo
	cursor    int
	store     *storage.Store
	scores    []storage.Run
	stats     *storage.CampaignStats
	table     table.Model
	help      help.Model
	keys      ScoreboardKeyMap
	width     int
	height    int
	quitting  bool
	goingBack bool
	embedded  bool // runs inside the game model rather than its own program
}

// NewScoreboardModel creates a scoreboard opened on the first registered
// campaign.
func NewScoreboardModel(store *storage.Store, width, height int) ScoreboardModel {
	m := ScoreboardModel{
		campaigns: registry.List(),
		store:     store,
		keys:      DefaultScoreboardKeyMap(),
		help:      help.New(),
		width:     width,
		height:    height,
	}
	m.table = m.createTable()
	if len(m.campaigns) > 0 {
		m.loadScores(m.campaigns[0].ID)
	}
	return m
}

// selectCampaign moves the cursor to the campaign with the given ID.
func (m *ScoreboardModel) selectCampaign(id string) {
	for i, c := range m.campaigns {
		if c.ID == id {
			m.cursor = i
			m.loadScores(id)
			return
		}
	}
}

func (m *ScoreboardModel) shift(delta int) {
	n := len(m.campaigns)
	if n == 0 {
		return
	}
	m.cursor = ((m.cursor+delta)%n + n) % n
	m.loadScores(m.campaigns[m.cursor].ID)
}

func (m *ScoreboardModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Rank", Width: 5},
		{Title: "Player", Width: 12},
		{Title: "Score", Width: 7},
		{Title: "Rooms", Width: 6},
		{Title: "Out", Width: 4},
		{Title: "Date", Width: 12},
	}
	if w := m.width - 4; w > 60 {
		columns[1].Width = min(w-46, 20)
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-10, 3)),
	)
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)
	return t
}

// loadScores fetches the best runs and the totals of campaign. A missing
// store or a failed query shows an empty board.
func (m *ScoreboardModel) loadScores(campaign string) {
	m.scores, m.stats = nil, nil
	if m.store != nil {
		if scores, err := m.store.TopScores(campaign, maxScores); err == nil {
			m.scores = scores
		}
		if stats, err := m.store.Stats(campaign); err == nil {
			m.stats = stats
		}
	}

	rows := make([]table.Row, len(m.scores))
	for i, s := range m.scores {
		out := ""
		if s.Escaped {
			out = "yes"
		}
		rows[i] = table.Row{
			fmt.Sprintf("#%d", i+1),
			s.Player,
			fmt.Sprintf("%d", s.Score),
			fmt.Sprintf("%d", s.Rooms),
			out,
			s.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			if m.embedded {
				return m, nil
			}
			return m, tea.Quit
		case key.Matches(msg, m.keys.Next):
			m.shift(1)
			return m, nil
		case key.Matches(msg, m.keys.Prev):
			m.shift(-1)
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		rows := m.table.Rows()
		m.table = m.createTable()
		m.table.SetRows(rows)
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	subtle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	var b strings.Builder
	b.WriteString(titleStyle.Render(centerText("HIGH SCORES", m.width)))
	b.WriteString("\n\n")

	if len(m.campaigns) > 0 {
		c := m.campaigns[m.cursor]
		line := fmt.Sprintf("< %s >  %d/%d", c.Title, m.cursor+1, len(m.campaigns))
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	var body string
	if len(m.scores) == 0 {
		body = subtle.Italic(true).Padding(2, 4).
			Render("No runs recorded yet.\nEscape the facility to set a high score!")
	} else {
		body = m.table.View()
	}
	b.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, box.Render(body)))
	b.WriteString("\n")

	if m.stats != nil && m.stats.Runs > 0 {
		line := fmt.Sprintf("best %d  runs %d  escapes %d  avg %.0f",
			m.stats.HighScore, m.stats.Runs, m.stats.Escapes, m.stats.AvgScore)
		b.WriteString(subtle.Render(centerText(line, m.width)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(subtle.Render(m.help.View(m.keys)))
	return b.String()
}

// IsGoingBack reports whether the player left the scoreboard with back.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting reports whether the player asked to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// RunScoreboard runs the scoreboard as its own program, opened on campaign.
// It returns true when the player went back rather than quit.
func RunScoreboard(store *storage.Store, campaign string, width, height int) (goBack bool, err error) {
	model := NewScoreboardModel(store, width, height)
	model.selectCampaign(campaign)

	final, err := tea.NewProgram(model, tea.WithAltScreen()).Run()
	if err != nil {
		return false, err
	}
	m, ok := final.(ScoreboardModel)
	if !ok {
		return false, nil
	}
	return m.IsGoingBack(), nil
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}
