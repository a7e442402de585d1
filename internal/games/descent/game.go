// Package descent adapts the scrolling world to the game registry and TUI.
// It registers two modes: "descent", where platforms, hazards and enemies
// arrive in level pools, and "swarm", a single endless pool of enemies.
package descent

import (
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/descent/internal/config"
	"github.com/vovakirdan/descent/internal/core"
	"github.com/vovakirdan/descent/internal/games/descent/world"
	"github.com/vovakirdan/descent/internal/registry"
)

// holdSeconds is how long one key press keeps a direction held. Terminals
// report presses and repeats but never releases.
const holdSeconds = 0.15

// hudRows is the number of screen rows above the playfield.
const hudRows = 1

var moveActions = []core.Action{core.ActionUp, core.ActionDown, core.ActionLeft, core.ActionRight}

var oppositeAction = map[core.Action]core.Action{
	core.ActionUp:    core.ActionDown,
	core.ActionDown:  core.ActionUp,
	core.ActionLeft:  core.ActionRight,
	core.ActionRight: core.ActionLeft,
}

// Game implements registry.Game on top of a world.World.
type Game struct {
	id    string
	title string
	opts  registry.Options
	log   *log.Logger

	cfg     config.DescentConfig
	runtime core.RuntimeConfig
	world   *world.World

	held       map[core.Action]int // Ticks left before a pressed direction is released
	paused     bool
	levelFlash int // Ticks left to show the level banner
}

// New creates a game for a mode, loading its configuration.
// Config errors are logged and the mode's defaults are used instead.
func New(mode, title string, opts registry.Options) *Game {
	opts = opts.WithDefaults()
	g := &Game{
		id:    mode,
		title: title,
		opts:  opts,
		log:   opts.Logger.WithPrefix(mode),
		held:  make(map[core.Action]int),
	}
	g.cfg = g.loadConfig()
	return g
}

func (g *Game) loadConfig() config.DescentConfig {
	cfg, err := config.Load(g.id, g.opts.ConfigPath)
	if err != nil {
		g.log.Warn("using default config", "error", err)
		cfg = config.DefaultFor(g.id)
	}
	if g.opts.Difficulty != "" {
		preset, err := config.ParsePreset(g.opts.Difficulty)
		if err != nil {
			g.log.Warn("ignoring difficulty", "error", err)
		} else {
			config.ApplyPreset(&cfg, preset)
		}
	}
	return cfg
}

// ID returns the mode identifier.
func (g *Game) ID() string { return g.id }

// Title returns the display name.
func (g *Game) Title() string { return g.title }

// Config returns the configuration the next Reset will use.
func (g *Game) Config() config.DescentConfig { return g.cfg }

// Reload re-reads the configuration and restarts the run with it.
func (g *Game) Reload() error {
	cfg, err := config.Load(g.id, g.opts.ConfigPath)
	if err != nil {
		return err
	}
	if g.opts.Difficulty != "" {
		if preset, err := config.ParsePreset(g.opts.Difficulty); err == nil {
			config.ApplyPreset(&cfg, preset)
		}
	}
	g.cfg = cfg
	g.log.Info("config reloaded", "path", g.opts.ConfigPath)
	g.Reset(g.runtime)
	return nil
}

// Reset starts a new run sized to the screen.
func (g *Game) Reset(rc core.RuntimeConfig) {
	g.runtime = rc
	g.paused = false
	g.levelFlash = 0
	for a := range g.held {
		delete(g.held, a)
	}

	height := rc.ScreenH - hudRows
	if height < 4 {
		height = 4
	}
	g.world = world.New(g.cfg, world.Options{
		Width:    rc.ScreenW,
		Height:   height,
		TickRate: rc.TickRate,
		Seed:     rc.Seed,
		Logger:   g.log,
	})
}

// Step advances the run by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.world == nil {
		g.Reset(core.DefaultConfig())
	}
	if g.world.Over() {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	level := g.world.Level()
	g.world.Step(world.Input{Move: g.direction(in), Dash: in.Has(core.ActionDash)})

	res := core.StepResult{State: g.State()}
	if g.world.Level() != level {
		res.LevelUp = true
		g.levelFlash = g.runtime.TickRate * 2
	}
	if g.levelFlash > 0 {
		g.levelFlash--
	}
	res.Finished = g.world.Over()
	return res
}

// direction turns presses into held directions. A press refreshes its hold
// and releases the opposite direction.
func (g *Game) direction(in core.InputFrame) world.Vec2 {
	hold := int(holdSeconds*float64(g.runtime.TickRate) + 0.5)
	if hold < 1 {
		hold = 1
	}
	var held core.InputFrame
	for _, a := range moveActions {
		if in.Has(a) {
			g.held[a] = hold
			delete(g.held, oppositeAction[a])
		}
	}
	for _, a := range moveActions {
		if g.held[a] > 0 {
			held.Set(a)
			g.held[a]--
		}
	}

	dx, dy := held.Direction()
	return world.Vec2{X: float64(dx), Y: float64(dy)}
}

// State reports the run to the platform.
func (g *Game) State() core.GameState {
	if g.world == nil {
		return core.GameState{}
	}
	p := g.world.Player()
	return core.GameState{
		Score:    g.world.Score(),
		Level:    g.world.Level(),
		HP:       p.HP,
		Ticks:    int(g.world.Ticks()),
		GameOver: g.world.Over(),
		Paused:   g.paused,
		Cause:    string(p.Cause),
	}
}

// World exposes the simulation, mainly for the headless runner.
func (g *Game) World() *world.World { return g.world }

func init() {
	registry.Register(config.ModeDescent, "Descent", func(opts registry.Options) registry.Game {
		return New(config.ModeDescent, "Descent", opts)
	})
	registry.Register(config.ModeSwarm, "Descent: Swarm", func(opts registry.Options) registry.Game {
		return New(config.ModeSwarm, "Descent: Swarm", opts)
	})
}
