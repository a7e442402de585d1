package world

// Player returns a copy of the player's survival state.
func (w *World) Player() Player {
	return w.player
}

// PlayerEntity returns the player's entity.
func (w *World) PlayerEntity() *Entity {
	return w.reg.Get(w.player.Handle)
}

// Each visits every live entity of a kind in registry order.
func (w *World) Each(kind Kind, fn func(*Entity)) {
	w.reg.Each(kind, fn)
}

// Count returns the number of live entities of a kind.
func (w *World) Count(kind Kind) int {
	return w.reg.Count(kind)
}

// Score returns the time-derived score.
func (w *World) Score() int { return w.progress.Score() }

// Level returns the current level index.
func (w *World) Level() int { return w.progress.Level() }

// Theme returns the visual theme in effect; it trails Level by the theme
// delay.
func (w *World) Theme() int { return w.theme }

// Over reports whether the run has ended.
func (w *World) Over() bool { return w.over }

// Ticks returns the number of steps taken.
func (w *World) Ticks() int64 { return w.ticks }

// Elapsed returns active (alive) time in seconds.
func (w *World) Elapsed() float64 { return w.progress.Elapsed() }

// Size returns the viewport dimensions.
func (w *World) Size() (width, height int) { return w.opts.Width, w.opts.Height }

// Border returns the rectangle the player wraps within.
func (w *World) Border() Border { return w.border }

// Spawner exposes the scrolling spawner for inspection.
func (w *World) Spawner() *Spawner { return w.spawner }

// Summary is a compact report of a run.
type Summary struct {
	Score   int
	Level   int
	Ticks   int64
	HP      int
	Cause   Cause
	Spawned int
	Retired int
}

// Summary reports the run so far.
func (w *World) Summary() Summary {
	spawned, retired := w.spawner.Stats()
	return Summary{
		Score:   w.progress.Score(),
		Level:   w.progress.Level(),
		Ticks:   w.ticks,
		HP:      w.player.HP,
		Cause:   w.player.Cause,
		Spawned: spawned,
		Retired: retired,
	}
}
