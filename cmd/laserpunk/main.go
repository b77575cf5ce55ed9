// laserpunk is a terminal puzzle game: route a laser through rooms of
// mirrors, blockers and splitters to open the way out.
//
// Usage:
//
//	laserpunk play              - Play the selected campaign
//	laserpunk serve             - Start SSH server for remote play
//	laserpunk rooms             - List campaigns and their rooms
//	laserpunk trace <room>      - Print a room with its beam
//	laserpunk validate [dir]    - Check room files for errors
//	laserpunk scores            - Show the best runs
//
// Global flags:
//
//	--config <path>     - Config file (default: ~/.laserpunk/config.yaml)
//	--campaign <id>     - Registered campaign to play (default: builtin)
//	--levels <dir>      - Load rooms from a directory instead of a campaign
//	--db <path>         - Scores database path
//	--log-level <lvl>   - debug, info, warn, error
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/laserpunk/internal/config"
	"github.com/vovakirdan/laserpunk/internal/levels"
)

var (
	// Global flags
	flagConfig   string
	flagCampaign string
	flagLevels   string
	flagStart    string
	flagDBPath   string
	flagLogLevel string
	flagLogFile  string

	cfg     config.Config
	logger  *log.Logger
	logFile *os.File
)

func main() {
	err := rootCmd.Execute()
	if logFile != nil {
		logFile.Close()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "laserpunk",
	Short: "Laserpunk - bend a laser through a locked-down facility",
	Long: `Laserpunk is a terminal puzzle game. Each room holds a laser emitter,
mirrors you can turn, blockers you can raise and receivers that open doors
when the beam reaches them. Find a way out.

Available commands:
  play      - Play the selected campaign
  serve     - Start SSH server for remote play
  rooms     - List campaigns and rooms
  trace     - Print a room with its beam
  validate  - Check room files for errors
  scores    - View the best runs

Examples:
  laserpunk play
  laserpunk play --levels ./my-rooms --start lobby
  laserpunk trace room_1 --rotate 5,3 --rotate 5,3
  laserpunk validate ./my-rooms
  laserpunk serve`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML")
	rootCmd.PersistentFlags().StringVar(&flagCampaign, "campaign", levels.BuiltinID, "Registered campaign to play")
	rootCmd.PersistentFlags().StringVar(&flagLevels, "levels", "", "Directory of room files (overrides --campaign)")
	rootCmd.PersistentFlags().StringVar(&flagStart, "start", "", "Start room (default: the campaign's or config's)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Append logs to this file instead of stderr")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(roomsCmd)
	rootCmd.AddCommand(traceCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(scoresCmd)
}

// setup loads the config, applies flag overrides and builds the logger.
func setup(_ *cobra.Command, _ []string) error {
	c, err := config.Load(flagConfig)
	if err != nil {
		return err
	}
	if flagDBPath != "" {
		c.Storage.DBPath = flagDBPath
	}
	if flagLogLevel != "" {
		c.Log.Level = flagLogLevel
	}
	if flagLevels != "" {
		c.Game.LevelsDir = flagLevels
	}

	var w io.Writer = os.Stderr
	if flagLogFile != "" {
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		logFile = f
		w = f
	}
	l, err := config.NewLogger(c.Log, w)
	if err != nil {
		return fmt.Errorf("logger: %w", err)
	}

	cfg, logger = c, l
	return nil
}
