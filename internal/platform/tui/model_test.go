package tui

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/laserpunk/internal/core"
	"github.com/vovakirdan/laserpunk/internal/game"
	"github.com/vovakirdan/laserpunk/internal/laser"
	"github.com/vovakirdan/laserpunk/internal/rooms"
	"github.com/vovakirdan/laserpunk/internal/storage"
)

func newTestSession(t *testing.T) *game.Session {
	t.Helper()
	start := laser.C(1, 1)
	cat := rooms.MapCatalog{
		"hall": {
			ID:   "hall",
			Name: "Hall",
			Grid: laser.MustParseLayout(
				"####",
				"#..D",
				"####",
			),
			Start: &start,
			Connections: []laser.Connection{
				{Target: "out", Requirement: laser.RequirementFromCode(0), Door: laser.C(3, 1)},
			},
		},
		"out": {ID: "out", Terminal: true},
	}
	s, err := game.New(game.Options{Catalog: cat, StartRoom: "hall"})
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func runeKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestKeyMapAction(t *testing.T) {
	km := DefaultKeyMap()
	tests := []struct {
		msg  tea.KeyMsg
		want core.Action
	}{
		{tea.KeyMsg{Type: tea.KeyUp}, core.ActionUp},
		{runeKey("w"), core.ActionUp},
		{runeKey("s"), core.ActionDown},
		{tea.KeyMsg{Type: tea.KeyLeft}, core.ActionLeft},
		{runeKey("d"), core.ActionRight},
		{runeKey("q"), core.ActionRotateLeft},
		{runeKey("e"), core.ActionRotateRight},
		{tea.KeyMsg{Type: tea.KeySpace}, core.ActionInteract},
		{tea.KeyMsg{Type: tea.KeyEnter}, core.ActionInteract},
		{runeKey("r"), core.ActionRestart},
		{runeKey("?"), core.ActionHelp},
		{tea.KeyMsg{Type: tea.KeyEsc}, core.ActionQuit},
		{tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit},
		{runeKey("y"), core.ActionNone},
	}
	for _, tt := range tests {
		if got := km.Action(tt.msg); got != tt.want {
			t.Errorf("Action(%q) = %v, want %v", tt.msg.String(), got, tt.want)
		}
	}
}

func TestRenderScreenKeepsText(t *testing.T) {
	s := core.NewScreen(20, 2)
	s.DrawText(0, 0, "beam", core.ColorBeam)
	s.DrawText(5, 0, "wall", core.ColorWall)
	s.DrawText(0, 1, "@", core.Color(200))

	out := RenderScreen(s)
	for _, want := range []string{"beam", "wall", "@"} {
		if !strings.Contains(out, want) {
			t.Errorf("rendered output missing %q: %q", want, out)
		}
	}
	if n := strings.Count(out, "\n"); n != 1 {
		t.Errorf("expected 2 lines, got %d newlines", n)
	}
}

func step(m Model, msg tea.Msg) Model {
	next, _ := m.Update(msg)
	m = next.(Model)
	next, _ = m.Update(TickMsg{})
	return next.(Model)
}

func TestModelPlaysAndSavesRun(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	session := newTestSession(t)
	m := NewModel(session, Options{
		Store:    store,
		Config:   core.RuntimeConfig{ScreenW: 40, ScreenH: 16, TickRate: 30},
		Player:   "ada",
		Campaign: "test",
	})

	m = step(m, tea.KeyMsg{Type: tea.KeyRight})
	if p, _ := session.Player(); p != laser.C(2, 1) {
		t.Fatalf("player = %v, want (2,1)", p)
	}
	if !strings.Contains(m.View(), "@") {
		t.Error("view should show the player")
	}

	m = step(m, tea.KeyMsg{Type: tea.KeyRight})
	if !m.gameState.GameOver || !m.gameState.Won {
		t.Fatalf("state = %+v, want escaped", m.gameState)
	}

	// Further ticks must not save the run twice.
	m = step(m, TickMsg{})

	runs, err := store.TopScores("test", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 1 {
		t.Fatalf("expected 1 saved run, got %d", len(runs))
	}
	if runs[0].Player != "ada" || !runs[0].Escaped {
		t.Errorf("unexpected run %+v", runs[0])
	}

	m = step(m, runeKey("r"))
	if m.gameState.GameOver {
		t.Error("r after game over should restart")
	}
	if p, _ := session.Player(); p != laser.C(1, 1) {
		t.Errorf("player = %v after restart", p)
	}
}

func TestModelRestartIgnoredWhilePlaying(t *testing.T) {
	session := newTestSession(t)
	m := NewModel(session, Options{Config: core.DefaultConfig()})

	m = step(m, tea.KeyMsg{Type: tea.KeyRight})
	m = step(m, runeKey("r"))
	if p, _ := session.Player(); p != laser.C(2, 1) {
		t.Errorf("restart should need a finished run, player at %v", p)
	}
}

func TestModelScoreboardToggle(t *testing.T) {
	m := NewModel(newTestSession(t), Options{Config: core.DefaultConfig()})

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(Model)
	if m.scores == nil {
		t.Fatal("tab should open the scoreboard")
	}
	if !strings.Contains(m.View(), "HIGH SCORES") {
		t.Error("scoreboard view expected")
	}

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = next.(Model)
	if m.scores != nil {
		t.Error("esc should close the scoreboard")
	}
	if cmd != nil {
		t.Error("closing the scoreboard must not quit the program")
	}
	if m.quitting {
		t.Error("model should keep running")
	}
}

func TestModelQuit(t *testing.T) {
	m := NewModel(newTestSession(t), Options{Config: core.DefaultConfig()})

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if cmd == nil {
		t.Fatal("esc should return tea.Quit")
	}
	if next.(Model).View() != "" {
		t.Error("quitting model should render nothing")
	}
}

func TestModelHelpToggle(t *testing.T) {
	m := NewModel(newTestSession(t), Options{Config: core.DefaultConfig()})

	next, _ := m.Update(runeKey("?"))
	m = next.(Model)
	if !m.help.ShowAll {
		t.Error("? should expand the help")
	}
	if !strings.Contains(m.View(), "rotate left") {
		t.Error("help footer should list the rotate binding")
	}
}
