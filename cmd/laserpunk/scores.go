package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/laserpunk/internal/platform/tui"
	"github.com/vovakirdan/laserpunk/internal/storage"
)

var (
	flagScoresLimit  int
	flagScoresPlayer string
	flagScoresTUI    bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show the best runs",
	Long: `Display the best runs of the selected campaign, or the latest runs
of one player with --player.

Examples:
  laserpunk scores
  laserpunk scores --limit 20
  laserpunk scores --player ada
  laserpunk scores --tui`,
	Args: cobra.NoArgs,
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of runs to show")
	scoresCmd.Flags().StringVar(&flagScoresPlayer, "player", "", "Show the latest runs of this player")
	scoresCmd.Flags().BoolVar(&flagScoresTUI, "tui", false, "Open the interactive scoreboard")
}

func runScores(_ *cobra.Command, _ []string) error {
	camp, err := openCampaign()
	if err != nil {
		return err
	}

	// Open score storage
	store, err := storage.Open(cfg.Storage.DBPath)
	if err != nil {
		return fmt.Errorf("opening scores database: %w", err)
	}
	defer store.Close()

	if flagScoresTUI {
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width, height = w, h
		}
		_, err := tui.RunScoreboard(store, camp.id, width, height)
		return err
	}

	var runs []storage.Run
	if flagScoresPlayer != "" {
		runs, err = store.PlayerRuns(flagScoresPlayer, flagScoresLimit)
		fmt.Printf("Latest runs - %s\n", flagScoresPlayer)
	} else {
		runs, err = store.TopScores(camp.id, flagScoresLimit)
		fmt.Printf("High Scores - %s\n", camp.title)
	}
	if err != nil {
		return fmt.Errorf("retrieving scores: %w", err)
	}
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Play 'laserpunk play' to set the first high score!")
		return nil
	}

	// Print header
	fmt.Printf("  %-4s  %-12s  %-8s  %-5s  %-3s  %s\n", "Rank", "Player", "Score", "Rooms", "Out", "Date")
	fmt.Printf("  %-4s  %-12s  %-8s  %-5s  %-3s  %s\n", "----", "------", "-----", "-----", "---", "----")

	for i, r := range runs {
		out := "no"
		if r.Escaped {
			out = "yes"
		}
		fmt.Printf("  %-4d  %-12s  %-8d  %-5d  %-3s  %s\n",
			i+1, r.Player, r.Score, r.Rooms, out, r.CreatedAt.Format("2006-01-02 15:04"))
	}

	if flagScoresPlayer != "" {
		return nil
	}
	fmt.Println()
	if stats, err := store.Stats(camp.id); err == nil {
		fmt.Printf("Best: %d  Runs: %d  Escapes: %d  Average: %.0f\n",
			stats.HighScore, stats.Runs, stats.Escapes, stats.AvgScore)
	}
	return nil
}
