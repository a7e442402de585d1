// descent is a terminal endless scroller: platform clusters, enemies and
// hazards scroll down the screen while you dodge, hide and dash to survive.
//
// Usage:
//
//	descent list              - List available modes
//	descent play <mode>       - Play a mode
//	descent menu              - Start menu to pick modes interactively
//	descent serve             - Start SSH server for remote play
//	descent scores <mode>     - Show best runs for a mode
//	descent sim <mode>        - Run a headless simulation
//
// Global flags:
//
//	--fps <rate>       - Set tick rate (default: 60)
//	--seed <value>     - Set RNG seed for reproducible runs
//	--db <path>        - Set database path (default: ~/.descent/descent.db)
//	--log-file <path>  - Write logs to a file while the TUI is running
//	--debug            - Enable debug logging
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	// Import modes to register them
	_ "github.com/vovakirdan/descent/internal/games/descent"
)

var (
	// Global flags
	flagFPS     int
	flagSeed    int64
	flagDBPath  string
	flagLogFile string
	flagDebug   bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "descent",
	Short: "Descent - an endless scroller in your terminal",
	Long: `Descent is a top-down endless scroller for the terminal.

The world scrolls toward you. Stay on screen, dodge enemies, hide in
stealth zones and keep clear of erupting volcanoes. Your score grows
with every second survived and unlocks harder content.

Available commands:
  list     - Show all available modes
  play     - Play a specific mode directly
  menu     - Interactive mode picker
  serve    - Start SSH server for remote play
  scores   - View best runs
  sim      - Run a headless simulation

Examples:
  descent list
  descent play descent
  descent menu
  descent serve --ssh :2222
  descent scores swarm
  descent sim descent --ticks 3600 --seed 7`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.descent/descent.db", "Path to runs database")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file (TUI commands discard logs otherwise)")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Enable debug logging")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(simCmd)
}

// newLogger builds the logger for a command. The fallback writer is used
// when --log-file is not set; TUI commands pass io.Discard so logs never
// tear the screen. The returned close func must be called on exit.
func newLogger(fallback io.Writer, prefix string) (*log.Logger, func(), error) {
	w, closeFn := fallback, func() {}
	if flagLogFile != "" {
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		w, closeFn = f, func() { f.Close() }
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
	if flagDebug {
		logger.SetLevel(log.DebugLevel)
	}
	return logger, closeFn, nil
}
