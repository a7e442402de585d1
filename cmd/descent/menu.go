package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/descent/internal/config"
	"github.com/vovakirdan/descent/internal/platform/tui"
	"github.com/vovakirdan/descent/internal/registry"
	"github.com/vovakirdan/descent/internal/storage"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start with a mode picker menu",
	Long: `Start in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to select a mode and
Left/Right to pick a difficulty.
After a run ends, press B or Esc to return to the menu.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select mode
  Left/Right   - Difficulty
  Tab          - Best runs
  Q            - Quit

Examples:
  descent menu
  descent menu --fps 30
  descent menu --db ./descent.db`,
	RunE: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) error {
	logger, closeLog, err := newLogger(io.Discard, "descent")
	if err != nil {
		return err
	}
	defer closeLog()

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open runs database: %v\n", err)
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	cfg := runtimeConfig()
	difficulty := string(config.DifficultyNormal)
	for {
		result, err := tui.RunMenu(store, cfg, difficulty)
		if err != nil {
			return err
		}
		cfg, difficulty = result.Config, result.Difficulty

		switch {
		case result.Quit:
			return nil

		case result.WantsScoreboard:
			goBack, err := tui.RunScoreboard(store, "", cfg.ScreenW, cfg.ScreenH)
			if err != nil {
				return err
			}
			if !goBack {
				return nil
			}

		case result.GameID != "":
			game, err := registry.Create(result.GameID, registry.Options{
				Difficulty: difficulty,
				Logger:     logger,
			})
			if err != nil {
				return err
			}
			backToMenu, err := tui.Run(game, tui.Options{
				Store:   store,
				Runtime: cfg,
				Logger:  logger,
			})
			if err != nil {
				return fmt.Errorf("running game: %w", err)
			}
			if !backToMenu {
				return nil
			}
		}
	}
}
