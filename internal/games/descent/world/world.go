package world

import (
	"io"
	"math"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/descent/internal/config"
)

// Options are the host-supplied collaborators of a world.
type Options struct {
	Width    int // Viewport width in cells
	Height   int // Viewport height in cells, the scroll extent
	TickRate int
	Seed     int64
	Logger   *log.Logger
}

// Input is the player's intent for one tick.
type Input struct {
	Move Vec2 // Direction; only its sign per axis matters
	Dash bool
}

// World owns every entity and runs the fixed-step tick.
type World struct {
	cfg   config.DescentConfig
	opts  Options
	log   *log.Logger
	rng   *rand.Rand
	reg   *Registry
	sched *Scheduler

	spawner  *Spawner
	progress *Progression
	border   Border
	player   Player
	variants map[string]*Variant

	stealth  *AreaTracker
	killzone *AreaTracker
	hitbox   *AreaTracker
	eruption *AreaTracker

	theme      int
	themeSwap  EventID
	gameOverAt EventID
	over       bool
	ticks      int64

	// Events are emitted synchronously from Step.
	Events Events
}

// New builds a world and performs the initial fill.
func New(cfg config.DescentConfig, o Options) *World {
	if o.TickRate <= 0 {
		o.TickRate = 60
	}
	if o.Width <= 0 {
		o.Width = 80
	}
	if o.Height <= 0 {
		o.Height = 24
	}
	if o.Logger == nil {
		o.Logger = log.New(io.Discard)
	}

	w := &World{
		cfg:      cfg,
		opts:     o,
		log:      o.Logger,
		rng:      rand.New(rand.NewSource(o.Seed)),
		reg:      NewRegistry(),
		sched:    NewScheduler(o.TickRate),
		progress: NewProgression(cfg.Levels.Thresholds, cfg.Levels.ScoreDivisor),
		variants: make(map[string]*Variant, len(cfg.Enemies)),
		stealth:  NewAreaTracker(),
		killzone: NewAreaTracker(),
		hitbox:   NewAreaTracker(),
		eruption: NewAreaTracker(),
		border: Border{
			MinX: 0,
			MaxX: float64(o.Width - 1),
			MinY: 0,
			MaxY: float64(o.Height - 1),
		},
	}

	for name, vc := range cfg.Enemies {
		v, err := NewVariant(name, vc)
		if err != nil {
			w.log.Warn("variant skipped", "error", err)
			continue
		}
		w.variants[name] = &v
	}

	pe := w.reg.Spawn(KindPlayer, Vec2{X: math.Floor(float64(o.Width) / 2), Y: math.Floor(float64(o.Height) / 2)}, Vec2{X: 1, Y: 1})
	w.player = newPlayer(pe.Handle, cfg.Player)

	w.spawner = NewSpawner(SpawnerConfig{
		Speed:    cfg.Scroll.Speed,
		Interval: cfg.Scroll.Interval,
		Viewport: float64(o.Height),
	}, groupFactory{w: w}, w.rng, w.log)
	w.spawner.Fill(cfg.Scroll.StartGroup)
	w.placePlayer()

	w.progress.OnLevelChanged.Subscribe(w.onLevelChanged)
	return w
}

// placePlayer lifts the player out of any platform it starts inside.
func (w *World) placePlayer() {
	pe := w.reg.Get(w.player.Handle)
	for pe.Pos.Y > 0 && w.blocker(pe) != nil {
		pe.Pos.Y--
	}
}

// Step advances the world by one tick. Order: timers, movement, scrolling,
// triggers, then level progression.
func (w *World) Step(in Input) {
	if w.over {
		return
	}
	w.ticks++
	dt := 1 / float64(w.opts.TickRate)

	w.sched.Advance()

	if !w.player.Dead {
		w.movePlayer(in, dt)
	}
	w.moveEnemies(dt)

	w.spawner.Advance(dt)
	w.pushPlayer()

	w.resolveBorders()
	w.resolveStealth()
	w.resolveKillzones()
	w.resolveHitboxes()
	w.resolveEruptions()

	if !w.player.Dead {
		w.progress.Tick(dt)
		w.progress.CheckTransition()
	}
}

func (w *World) movePlayer(in Input, dt float64) {
	if in.Dash && w.player.Dash(w.sched) {
		w.log.Debug("dash", "tick", w.ticks)
	}
	dir := Vec2{X: sign(in.Move.X), Y: sign(in.Move.Y)}.Normalized()
	if dir == (Vec2{}) {
		return
	}
	v := dir.Scale(w.player.Speed())
	v.Y *= w.cfg.Player.VerticalFactor

	pe := w.reg.Get(w.player.Handle)
	w.move(pe, v.Scale(dt))
	if pe.Pos.Y < w.border.MinY {
		pe.Pos.Y = w.border.MinY
	}
}

func (w *World) moveEnemies(dt float64) {
	pe := w.reg.Get(w.player.Handle)
	target := pe.Center()
	w.reg.Each(KindEnemy, func(e *Entity) {
		v := e.Enemy.Velocity(e.Center(), target, w.player.Hidden, dt, w.rng)
		v.Y *= w.cfg.Player.VerticalFactor
		if e.Enemy.Variant.Mode == ModePatrol {
			e.Pos = e.Pos.Add(v.Scale(dt))
			return
		}
		w.move(e, v.Scale(dt))
	})
}

// move displaces e by d one axis at a time, stopping flush against
// platforms.
func (w *World) move(e *Entity, d Vec2) {
	if d.X != 0 {
		e.Pos.X += d.X
		if p := w.blocker(e); p != nil {
			if d.X > 0 {
				e.Pos.X = p.Pos.X - e.Size.X
			} else {
				e.Pos.X = p.Pos.X + p.Size.X
			}
		}
	}
	if d.Y != 0 {
		e.Pos.Y += d.Y
		if p := w.blocker(e); p != nil {
			if d.Y > 0 {
				e.Pos.Y = p.Pos.Y - e.Size.Y
			} else {
				e.Pos.Y = p.Pos.Y + p.Size.Y
			}
		}
	}
}

func (w *World) blocker(e *Entity) *Entity {
	var hit *Entity
	box := e.Box()
	w.reg.Each(KindPlatform, func(p *Entity) {
		if hit == nil && box.Intersects(p.Box()) {
			hit = p
		}
	})
	return hit
}

// pushPlayer moves the player below any platform that scrolled into it.
func (w *World) pushPlayer() {
	if w.player.Dead {
		return
	}
	pe := w.reg.Get(w.player.Handle)
	for i := 0; i < 8; i++ {
		p := w.blocker(pe)
		if p == nil {
			return
		}
		pe.Pos.Y = p.Pos.Y + p.Size.Y
	}
}

func (w *World) resolveBorders() {
	if !w.player.Dead {
		pe := w.reg.Get(w.player.Handle)
		switch w.border.Resolve(pe) {
		case OutcomeWrapped:
			w.log.Debug("player wrapped", "x", pe.Pos.X)
		case OutcomeDied:
			w.kill(CauseFell)
		}
	}

	var gone []Handle
	w.reg.Each(KindEnemy, func(e *Entity) {
		if e.Enemy.Variant.Mode == ModePatrol {
			inside := e.Pos.X >= w.border.MinX && e.Pos.X <= w.border.MaxX
			if inside {
				e.Enemy.onScreen = true
			} else if e.Enemy.onScreen {
				gone = append(gone, e.Handle)
			}
			return
		}
		switch w.border.Resolve(e) {
		case OutcomeStruck:
			w.log.Debug("enemy border strike", "variant", e.Enemy.Variant.Name, "edge", e.Edge)
		case OutcomeDespawn:
			gone = append(gone, e.Handle)
		}
	})
	for _, h := range gone {
		w.despawn(h)
	}
}

func (w *World) resolveStealth() {
	var contacts []Contact
	if !w.player.Dead {
		box := w.reg.Get(w.player.Handle).Box()
		w.reg.Each(KindStealthZone, func(z *Entity) {
			if box.Intersects(z.Box()) {
				contacts = append(contacts, Contact{Area: z.Handle, Body: w.player.Handle})
			}
		})
	}

	entered, exited := w.stealth.Update(contacts)
	for range exited {
		if w.player.ExitStealth() {
			w.Events.StealthChanged.Emit(StealthChanged{Hidden: false})
		}
	}
	for _, c := range entered {
		if w.player.EnterStealth(c.Area) {
			w.reg.Each(KindEnemy, func(e *Entity) { e.Enemy.OnPlayerHidden() })
			w.Events.StealthChanged.Emit(StealthChanged{Hidden: true})
		}
	}
}

func (w *World) resolveKillzones() {
	var contacts []Contact
	w.reg.Each(KindKillzone, func(k *Entity) {
		box := k.Box()
		w.reg.Each(KindEnemy, func(e *Entity) {
			if box.Intersects(e.Box()) {
				contacts = append(contacts, Contact{Area: k.Handle, Body: e.Handle})
			}
		})
	})
	entered, _ := w.killzone.Update(contacts)
	for _, c := range entered {
		if w.despawn(c.Body) {
			w.log.Debug("enemy fell into killzone")
		}
	}
}

func (w *World) resolveHitboxes() {
	if w.player.Dead {
		w.hitbox.Reset()
		return
	}
	var contacts []Contact
	box := w.reg.Get(w.player.Handle).Box()
	w.reg.Each(KindEnemy, func(e *Entity) {
		if box.Intersects(e.Box()) {
			contacts = append(contacts, Contact{Area: e.Handle, Body: w.player.Handle})
		}
	})
	entered, _ := w.hitbox.Update(contacts)
	for _, c := range entered {
		e := w.reg.Get(c.Area)
		if e == nil {
			continue
		}
		w.damage(e.Enemy.Variant.Damage, KindEnemy)
		w.despawn(c.Area)
	}
}

func (w *World) resolveEruptions() {
	if w.player.Dead {
		w.eruption.Reset()
		return
	}
	var contacts []Contact
	box := w.reg.Get(w.player.Handle).Box()
	w.reg.Each(KindVolcano, func(v *Entity) {
		if v.Volcano.Armed && box.Intersects(w.EruptionBox(v)) {
			contacts = append(contacts, Contact{Area: v.Handle, Body: w.player.Handle})
		}
	})
	entered, _ := w.eruption.Update(contacts)
	for range entered {
		w.damage(w.cfg.Volcano.Damage, KindVolcano)
	}
}

// damage applies n HP of damage from source and runs the death flow when
// the player runs out.
func (w *World) damage(n int, source Kind) {
	lost := w.player.TakeDamage(n)
	if lost == 0 {
		return
	}
	w.Events.PlayerDamaged.Emit(PlayerDamaged{Amount: lost, HP: w.player.HP, Source: source})
	if w.player.HP <= 0 {
		w.kill(CauseKilled)
	}
}

// kill starts the death sequence: scrolling stops at once and the run ends
// after the respawn delay.
func (w *World) kill(cause Cause) {
	if w.player.Dead {
		return
	}
	w.player.Dead = true
	w.player.Cause = cause
	w.spawner.Stop()
	w.sched.Cancel(w.player.dashEnd)
	w.player.dashing = false
	w.log.Info("player died", "cause", cause, "score", w.progress.Score(), "level", w.progress.Level())
	w.Events.PlayerDied.Emit(PlayerDied{Cause: cause})

	w.gameOverAt = w.sched.After(w.cfg.Player.RespawnDelay, func() {
		w.over = true
		w.Events.GameOver.Emit(PlayerDied{Cause: cause})
	})
}

func (w *World) onLevelChanged(ev LevelChanged) {
	w.spawner.SetLevel(ev.Level)
	w.spawner.SetSpeed(w.cfg.Scroll.Speed * (1 + w.cfg.Levels.SpeedStep*float64(ev.Level)))
	w.log.Info("level changed", "level", ev.Level, "score", ev.Score, "speed", w.spawner.Speed())

	w.sched.Cancel(w.themeSwap)
	level := ev.Level
	w.themeSwap = w.sched.After(w.cfg.Levels.ThemeDelay, func() {
		w.theme = level
		w.themeSwap = 0
		w.Events.ThemeChanged.Emit(ThemeChanged{Theme: level})
	})
	w.Events.LevelChanged.Emit(ev)
}

// despawn removes an entity and releases whatever it has scheduled.
func (w *World) despawn(h Handle) bool {
	e := w.reg.Get(h)
	if e == nil {
		return false
	}
	if e.Volcano != nil {
		w.cancelVolcano(e.Volcano)
	}
	return w.reg.Despawn(h)
}

func sign(v float64) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}
