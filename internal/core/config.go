package core

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to adapt to screen size and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second (default 60)
	Seed     int64 // RNG seed, 0 means the platform picks one
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
	}
}

// DeltaTime returns the fixed simulation step in seconds.
func (c RuntimeConfig) DeltaTime() float64 {
	if c.TickRate <= 0 {
		return 1.0 / 60.0
	}
	return 1.0 / float64(c.TickRate)
}

// GameState is the status a game reports back to the platform every tick.
type GameState struct {
	Score    int    // Current score
	Level    int    // Current content level (0-based)
	HP       int    // Player health, when the game has one
	Ticks    int    // Active ticks since the run started
	GameOver bool   // Whether the run has ended
	Paused   bool   // Whether the game is paused
	Cause    string // Why the run ended, empty while running
}

// StepResult is returned by Game.Step() after each simulation tick.
type StepResult struct {
	State    GameState
	LevelUp  bool // A level transition happened during this tick
	Finished bool // The run ended during this tick
}
