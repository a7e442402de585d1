package main

import (
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/descent/internal/config"
	"github.com/vovakirdan/descent/internal/games/descent/world"
	"github.com/vovakirdan/descent/internal/registry"
	"github.com/vovakirdan/descent/internal/storage"
)

var (
	flagSimTicks  int
	flagSimWidth  int
	flagSimHeight int
	flagSimPolicy string
	flagSimSave   bool
)

var simCmd = &cobra.Command{
	Use:   "sim <mode>",
	Short: "Run a headless simulation",
	Long: `Run a mode without a terminal UI and print a summary.

The player is driven by a simple policy:
  idle    - never moves (falls off the bottom eventually)
  random  - changes direction every third of a second, dashes now and then

The same --seed always produces the same run. Logs go to stderr.

Examples:
  descent sim descent --seed 7
  descent sim swarm --ticks 18000 --policy random --debug
  descent sim descent --config ./my-descent.yaml --difficulty hard --save`,
	Args: cobra.ExactArgs(1),
	RunE: runSim,
}

func init() {
	simCmd.Flags().IntVar(&flagSimTicks, "ticks", 3600, "Maximum ticks to simulate")
	simCmd.Flags().IntVar(&flagSimWidth, "width", 80, "Viewport width in cells")
	simCmd.Flags().IntVar(&flagSimHeight, "height", 23, "Viewport height in cells")
	simCmd.Flags().StringVar(&flagSimPolicy, "policy", "random", "Player policy: idle, random")
	simCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom mode config YAML")
	simCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	simCmd.Flags().BoolVar(&flagSimSave, "save", false, "Record the run in the database")
}

// policy picks the player's input for a tick.
type policy func(tick int64) world.Input

func newPolicy(name string, seed int64, tickRate int) (policy, error) {
	switch name {
	case "idle":
		return func(int64) world.Input { return world.Input{} }, nil
	case "random":
		rng := rand.New(rand.NewSource(seed ^ 0x5eed))
		period := int64(max(1, tickRate/3))
		var in world.Input
		return func(tick int64) world.Input {
			if tick%period == 0 {
				in.Move = world.Vec2{X: float64(rng.Intn(3) - 1), Y: float64(rng.Intn(3) - 1)}
			}
			in.Dash = rng.Intn(120) == 0
			return in
		}, nil
	}
	return nil, fmt.Errorf("unknown policy %q (want idle or random)", name)
}

func runSim(_ *cobra.Command, args []string) error {
	mode := args[0]
	if !registry.Exists(mode) {
		return fmt.Errorf("unknown mode %q (run 'descent list' to see available modes)", mode)
	}

	logger, closeLog, err := newLogger(os.Stderr, "sim")
	if err != nil {
		return err
	}
	defer closeLog()

	cfg, err := config.Load(mode, flagConfig)
	if err != nil {
		return err
	}
	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		return err
	}
	config.ApplyPreset(&cfg, preset)

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	pick, err := newPolicy(flagSimPolicy, seed, flagFPS)
	if err != nil {
		return err
	}

	w := world.New(cfg, world.Options{
		Width:    flagSimWidth,
		Height:   flagSimHeight,
		TickRate: flagFPS,
		Seed:     seed,
		Logger:   logger,
	})
	w.Events.PlayerDamaged.Subscribe(func(ev world.PlayerDamaged) {
		logger.Debug("player damaged", "amount", ev.Amount, "hp", ev.HP, "source", ev.Source, "tick", w.Ticks())
	})

	start := time.Now()
	for int(w.Ticks()) < flagSimTicks && !w.Over() {
		w.Step(pick(w.Ticks()))
	}
	s := w.Summary()
	logger.Debug("simulation finished", "wall", time.Since(start))

	cause := string(s.Cause)
	if cause == "" {
		cause = "alive"
	}
	fmt.Printf("mode:    %s\n", mode)
	fmt.Printf("seed:    %d\n", seed)
	fmt.Printf("ticks:   %d (%.1fs)\n", s.Ticks, w.Elapsed())
	fmt.Printf("score:   %d\n", s.Score)
	fmt.Printf("level:   %d\n", s.Level)
	fmt.Printf("hp:      %d\n", s.HP)
	fmt.Printf("end:     %s\n", cause)
	fmt.Printf("groups:  %d spawned, %d retired\n", s.Spawned, s.Retired)

	if !flagSimSave || s.Score <= 0 {
		return nil
	}
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening runs database: %w", err)
	}
	defer store.Close()
	if _, err := store.SaveRun(storage.Run{
		GameID: mode,
		Score:  s.Score,
		Level:  s.Level,
		Ticks:  int(s.Ticks),
		Cause:  cause,
	}); err != nil {
		return err
	}
	fmt.Println("run saved")
	return nil
}
