package main

import (
	"fmt"
	"net"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/laserpunk/internal/game"
	"github.com/vovakirdan/laserpunk/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout time.Duration
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the laserpunk SSH server",
	Long: `Start an SSH server that lets users connect and play.

Each SSH connection plays its own run of the selected campaign. Runs are
saved under the SSH user name and share one leaderboard.

Host key handling:
  - If --host-key (or server.host_key_path) is set, uses that key file
  - Otherwise, auto-generates a key at ~/.laserpunk/host_key

Examples:
  laserpunk serve                           # Listen on the configured address
  laserpunk serve --ssh :2222               # Listen on port 2222
  laserpunk serve --host-key ./my_host_key  # Use specific host key
  laserpunk serve --levels ./my-rooms --start lobby

Users can connect with:
  ssh localhost -p 23234`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", "", "SSH server address (default: server.address)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (default: server.host_key_path)")
	serveCmd.Flags().DurationVar(&flagIdleTimeout, "idle-timeout", 0, "Idle timeout before disconnecting (default: server.idle_timeout)")
}

func runServe(_ *cobra.Command, _ []string) error {
	camp, err := openCampaign()
	if err != nil {
		return err
	}

	// Fail at startup rather than on the first connection.
	if _, err := camp.newSession(logger); err != nil {
		return fmt.Errorf("start game: %w", err)
	}

	sc := tui.SSHServerConfig{
		Address:     cfg.Server.Address,
		HostKeyPath: cfg.Server.HostKeyPath,
		DBPath:      cfg.Storage.DBPath,
		IdleTimeout: cfg.Server.IdleTimeout,
		TickRate:    cfg.TUI.TickRate,
		Campaign:    camp.id,
		NewSession: func() (*game.Session, error) {
			return camp.newSession(logger)
		},
	}
	if flagSSHAddr != "" {
		sc.Address = flagSSHAddr
	}
	if flagHostKey != "" {
		sc.HostKeyPath = flagHostKey
	}
	if flagIdleTimeout > 0 {
		sc.IdleTimeout = flagIdleTimeout
	}

	server, err := tui.NewSSHServer(sc, logger)
	if err != nil {
		return fmt.Errorf("create server: %w", err)
	}

	port := "23234"
	if _, p, splitErr := net.SplitHostPort(sc.Address); splitErr == nil {
		port = p
	}
	fmt.Printf("Starting laserpunk SSH server on %s (campaign %s)\n", sc.Address, camp.title)
	fmt.Printf("Connect with: ssh localhost -p %s\n", port)
	fmt.Println("Press Ctrl+C to stop")

	return server.ListenAndServe()
}
