package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/descent/internal/platform/tui"
	"github.com/vovakirdan/descent/internal/registry"
	"github.com/vovakirdan/descent/internal/storage"
)

var (
	flagScoresLimit int
	flagScoresClear bool
	flagScoresTUI   bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [mode]",
	Short: "Show best runs",
	Long: `Display the best runs for a mode, or totals for every mode when
no mode is given.

Examples:
  descent scores
  descent scores descent --limit 20
  descent scores swarm --tui
  descent scores swarm --clear`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of runs to show")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete every recorded run for the mode")
	scoresCmd.Flags().BoolVar(&flagScoresTUI, "tui", false, "Open the interactive scoreboard")
}

func runScores(_ *cobra.Command, args []string) error {
	gameID := ""
	if len(args) == 1 {
		gameID = args[0]
		if !registry.Exists(gameID) {
			return fmt.Errorf("unknown mode %q (run 'descent list' to see available modes)", gameID)
		}
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening runs database: %w", err)
	}
	defer store.Close()

	switch {
	case flagScoresTUI:
		cfg := runtimeConfig()
		_, err := tui.RunScoreboard(store, gameID, cfg.ScreenW, cfg.ScreenH)
		return err
	case gameID == "":
		return printTotals(store)
	case flagScoresClear:
		if err := store.ClearRuns(gameID); err != nil {
			return err
		}
		fmt.Printf("Cleared all runs for %s.\n", gameID)
		return nil
	}
	return printRuns(store, gameID)
}

func printRuns(store *storage.Store, gameID string) error {
	runs, err := store.TopRuns(gameID, flagScoresLimit)
	if err != nil {
		return fmt.Errorf("retrieving runs: %w", err)
	}

	fmt.Printf("Best Runs - %s\n", gameID)
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'descent play %s' to set the first one!\n", gameID)
		return nil
	}

	fmt.Printf("  %-4s  %-7s  %-5s  %-6s  %-6s  %s\n", "Rank", "Score", "Level", "Ticks", "End", "Date")
	fmt.Printf("  %-4s  %-7s  %-5s  %-6s  %-6s  %s\n", "----", "-----", "-----", "-----", "---", "----")
	for i, r := range runs {
		fmt.Printf("  %-4d  %-7d  %-5d  %-6d  %-6s  %s\n",
			i+1, r.Score, r.Level, r.Ticks, r.Cause, r.CreatedAt.Format("2006-01-02 15:04"))
	}
	return nil
}

func printTotals(store *storage.Store) error {
	stats, err := store.GetAllGamesStats()
	if err != nil {
		return fmt.Errorf("retrieving stats: %w", err)
	}

	fmt.Printf("  %-10s  %-5s  %-5s  %-5s  %-7s  %s\n", "Mode", "Runs", "Best", "Level", "Avg", "Last played")
	fmt.Printf("  %-10s  %-5s  %-5s  %-5s  %-7s  %s\n", "----", "----", "----", "-----", "---", "-----------")
	for _, g := range registry.List() {
		s, ok := stats[g.ID]
		if !ok {
			fmt.Printf("  %-10s  %-5d  %-5s  %-5s  %-7s  %s\n", g.ID, 0, "-", "-", "-", "never")
			continue
		}
		fmt.Printf("  %-10s  %-5d  %-5d  %-5d  %-7.1f  %s\n",
			g.ID, s.RunsCount, s.HighScore, s.BestLevel, s.AvgScore, s.LastPlayed.Format("2006-01-02 15:04"))
	}
	return nil
}
