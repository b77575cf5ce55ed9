package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/laserpunk/internal/core"
	"github.com/vovakirdan/laserpunk/internal/game"
	"github.com/vovakirdan/laserpunk/internal/storage"
)

// footerHeight is the number of rows below the game screen.
const footerHeight = 1

// Options configures a game model.
type Options struct {
	Store    *storage.Store // may be nil
	Config   core.RuntimeConfig
	Player   string
	Campaign string
	Logger   *log.Logger
}

// Model is the Bubble Tea model for playing a laserpunk session.
type Model struct {
	session    *game.Session
	screen     *core.Screen
	opts       Options
	logger     *log.Logger
	keys       KeyMap
	help       help.Model
	inputFrame core.InputFrame
	gameState  core.GameState
	scores     *ScoreboardModel // non-nil while the scoreboard is open
	err        error
	quitting   bool
	scoreSaved bool // Whether the run has been saved for current game over
}

// NewModel creates a new Bubble Tea model for the given session.
func NewModel(session *game.Session, opts Options) Model {
	if opts.Config.TickRate <= 0 {
		opts.Config.TickRate = core.DefaultConfig().TickRate
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.Player == "" {
		opts.Player = "anonymous"
	}
	h := help.New()
	h.Width = opts.Config.ScreenW

	return Model{
		session:    session,
		screen:     core.NewScreen(opts.Config.ScreenW, max(opts.Config.ScreenH-footerHeight, 1)),
		opts:       opts,
		logger:     opts.Logger,
		keys:       DefaultKeyMap(),
		help:       h,
		inputFrame: core.NewInputFrame(),
		gameState:  session.State(),
	}
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.opts.Config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.scores != nil {
			return m.updateScores(msg)
		}
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Screenshot):
		m.saveScreenshot()
		return m, nil
	case key.Matches(msg, m.keys.Scores):
		sb := NewScoreboardModel(m.opts.Store, m.opts.Config.ScreenW, m.opts.Config.ScreenH)
		sb.embedded = true
		sb.selectCampaign(m.opts.Campaign)
		m.scores = &sb
		return m, nil
	}

	switch action := m.keys.Action(msg); action {
	case core.ActionNone:
	case core.ActionQuit:
		m.quitting = true
		return m, tea.Quit
	case core.ActionHelp:
		m.help.ShowAll = !m.help.ShowAll
	case core.ActionRestart:
		if m.gameState.GameOver {
			m.inputFrame.Set(action)
		}
	default:
		m.inputFrame.Set(action)
	}

	return m, nil
}

func (m Model) updateScores(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.scores.Update(msg)
	sb, ok := next.(ScoreboardModel)
	if !ok {
		return m, cmd
	}
	switch {
	case sb.IsQuitting():
		m.quitting = true
		return m, tea.Quit
	case sb.IsGoingBack():
		m.scores = nil
	default:
		m.scores = &sb
	}
	return m, cmd
}

// handleResize processes window resize events. Room layouts do not depend
// on the window size, so the session keeps running.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.opts.Config.ScreenW = msg.Width
	m.opts.Config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, max(msg.Height-footerHeight, 1))
	m.help.Width = msg.Width

	if m.scores != nil {
		return m.updateScores(msg)
	}
	return m, nil
}

// handleTick applies the input gathered since the previous tick.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.inputFrame.Has(core.ActionRestart) && m.gameState.GameOver {
		if err := m.session.Reset(m.opts.Config); err != nil {
			m.logger.Error("restart failed", "err", err)
			m.err = err
		}
		m.gameState = m.session.State()
		m.scoreSaved = false
		m.inputFrame.Clear()
		return m, tickCmd(m.opts.Config.TickRate)
	}

	if len(m.inputFrame.Actions) > 0 {
		result := m.session.Step(m.inputFrame)
		m.gameState = result.State
		for _, msg := range result.Messages {
			m.logger.Debug(msg, "player", m.opts.Player)
		}
	}

	if m.gameState.GameOver && !m.scoreSaved {
		m.saveRun()
		m.scoreSaved = true
	}

	// Clear input for next frame
	m.inputFrame.Clear()

	return m, tickCmd(m.opts.Config.TickRate)
}

func (m *Model) saveRun() {
	if m.opts.Store == nil {
		return
	}
	_, err := m.opts.Store.SaveRun(storage.Run{
		Player:   m.opts.Player,
		Campaign: m.opts.Campaign,
		Rooms:    m.gameState.Rooms,
		Score:    m.gameState.Score,
		Escaped:  m.gameState.Won,
	})
	if err != nil {
		m.logger.Warn("could not save run", "err", err)
		return
	}
	m.logger.Info("run saved", "player", m.opts.Player, "score", m.gameState.Score,
		"rooms", m.gameState.Rooms, "escaped", m.gameState.Won)
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.session.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".laserpunk", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.session.ID(), timestamp))

	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.scores != nil {
		return m.scores.View()
	}

	m.session.Render(m.screen)
	footer := m.help.View(m.keys)
	if m.err != nil {
		footer = colorStyles[core.ColorWarn].Render(m.err.Error())
	}
	return RenderScreen(m.screen) + "\n" + footer
}

// Run starts the Bubble Tea program with the given session.
func Run(session *game.Session, opts Options) error {
	p := tea.NewProgram(
		NewModel(session, opts),
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
