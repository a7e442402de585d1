package world

import (
	"fmt"
	"math"

	"github.com/vovakirdan/descent/internal/config"
)

// groupFactory instantiates pool templates into the world's registry.
type groupFactory struct {
	w *World
}

func (f groupFactory) PoolSize(level int) int {
	return len(f.w.cfg.Pool(level))
}

func (f groupFactory) Instantiate(level, index int, pos Vec2) (Instance, error) {
	pool := f.w.cfg.Pool(level)
	if index < 0 || index >= len(pool) {
		return nil, fmt.Errorf("%w: level %d index %d (pool size %d)", ErrNoTemplate, level, index, len(pool))
	}
	return f.w.instantiate(pool[index], pos), nil
}

// group is a live template instance. Anchored members follow it as it
// scrolls; detached members (patrolling enemies) only die with it if they
// are still registered as members.
type group struct {
	w       *World
	name    string
	pos     Vec2
	members []Handle
}

func (g *group) SetPosition(pos Vec2) {
	d := pos.Sub(g.pos)
	g.pos = pos
	for _, h := range g.members {
		if e := g.w.reg.Get(h); e != nil && e.Anchored {
			e.Pos = e.Pos.Add(d)
		}
	}
}

func (g *group) Destroy() {
	for _, h := range g.members {
		g.w.despawn(h)
	}
	g.members = nil
}

func (w *World) instantiate(t config.GroupTemplate, pos Vec2) *group {
	g := &group{w: w, name: t.Name, pos: pos}
	width := float64(w.opts.Width)

	area := func(kind Kind, a config.AreaSpec) {
		e := w.reg.Spawn(kind,
			Vec2{X: math.Floor(a.X * width), Y: pos.Y + a.Y},
			Vec2{X: math.Max(1, math.Round(a.W*width)), Y: math.Max(1, a.H)})
		e.Anchored = true
		g.members = append(g.members, e.Handle)
	}
	for _, a := range t.Platforms {
		area(KindPlatform, a)
	}
	for _, a := range t.Stealth {
		area(KindStealthZone, a)
	}
	for _, a := range t.Killzones {
		area(KindKillzone, a)
	}

	for _, p := range t.Volcanoes {
		e := w.reg.Spawn(KindVolcano, Vec2{X: math.Floor(p.X * width), Y: pos.Y + p.Y}, Vec2{X: 1, Y: 1})
		e.Anchored = true
		e.Volcano = &VolcanoState{}
		w.scheduleEruption(e.Handle)
		g.members = append(g.members, e.Handle)
	}

	for _, p := range t.Enemies {
		v, ok := w.variants[p.Variant]
		if !ok {
			w.log.Warn("enemy skipped: unknown variant", "group", t.Name, "variant", p.Variant)
			continue
		}
		if v.Mode == ModePatrol {
			// Patrols are detached from the band and start off-screen on
			// the side opposite their placement.
			w.spawnPatrol(v, p.X)
			continue
		}
		e := w.reg.Spawn(KindEnemy, Vec2{X: math.Floor(p.X * width), Y: pos.Y + p.Y}, Vec2{X: 1, Y: 1})
		e.Anchored = true
		e.Enemy = newEnemyState(v, w.player.Hidden)
		g.members = append(g.members, e.Handle)
	}

	w.log.Debug("instantiated group", "name", t.Name, "members", len(g.members), "y", pos.Y)
	return g
}

func (w *World) spawnPatrol(v *Variant, frac float64) {
	width := float64(w.opts.Width)
	pos := Vec2{Y: float64(w.opts.Height) - v.SpawnOffset}
	st := newEnemyState(v, w.player.Hidden)
	if frac < 0.5 {
		pos.X = -patrolMargin
	} else {
		pos.X = width + patrolMargin
		st.dir = -1
	}
	e := w.reg.Spawn(KindEnemy, pos, Vec2{X: 1, Y: 1})
	e.Enemy = st
}

// patrolMargin is how far outside the screen patrols start.
const patrolMargin = 4
