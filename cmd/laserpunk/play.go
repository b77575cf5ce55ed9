package main

import (
	"fmt"
	"io"
	"os"
	"os/user"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/laserpunk/internal/core"
	"github.com/vovakirdan/laserpunk/internal/platform/tui"
	"github.com/vovakirdan/laserpunk/internal/storage"
)

var flagPlayer string

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play the selected campaign",
	Long: `Start a run through the selected campaign.

Controls:
  Arrows/WASD/HJKL  - Move or turn
  Q / E             - Rotate the redirector in front of you
  Space/Enter       - Use a terminal, locker or blocker
  Tab               - High scores
  ?                 - Toggle help
  R                 - Restart (after game over)
  Esc/Ctrl+C        - Quit

Examples:
  laserpunk play
  laserpunk play --player ada
  laserpunk play --levels ./my-rooms --start lobby --log-file play.log`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagPlayer, "player", "", "Name to record runs under (default: current user)")
}

func runPlay(_ *cobra.Command, _ []string) error {
	camp, err := openCampaign()
	if err != nil {
		return err
	}

	// The alt screen owns stderr while playing.
	sessionLog := logger
	if flagLogFile == "" {
		sessionLog = log.New(io.Discard)
	}

	session, err := camp.newSession(sessionLog)
	if err != nil {
		return fmt.Errorf("start game: %w", err)
	}

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	store, err := storage.Open(cfg.Storage.DBPath)
	if err != nil {
		logger.Warn("could not open scores database", "error", err)
		// Continue without storage - game still works
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	return tui.Run(session, tui.Options{
		Store: store,
		Config: core.RuntimeConfig{
			ScreenW:  width,
			ScreenH:  height,
			TickRate: cfg.TUI.TickRate,
		},
		Player:   playerName(),
		Campaign: camp.id,
		Logger:   sessionLog,
	})
}

func playerName() string {
	if flagPlayer != "" {
		return flagPlayer
	}
	if u, err := user.Current(); err == nil && u.Username != "" {
		return u.Username
	}
	return "anonymous"
}
