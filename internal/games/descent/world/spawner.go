package world

import (
	"errors"
	"math"
	"math/rand"

	"github.com/charmbracelet/log"
)

// ErrNoTemplate is returned by an Instancer asked for a pool entry that does
// not exist.
var ErrNoTemplate = errors.New("world: no template at pool index")

// Instance is a placed group of content. The spawner only moves and destroys
// it; what it contains is the instancer's business.
type Instance interface {
	SetPosition(pos Vec2)
	Destroy()
}

// Instancer produces positioned instances from level pools.
type Instancer interface {
	PoolSize(level int) int
	Instantiate(level, index int, pos Vec2) (Instance, error)
}

// SpawnGroup is one live instance owned by the spawner.
type SpawnGroup struct {
	ID        uint64
	Pos       Vec2
	Level     int
	PoolIndex int
	Alive     bool

	inst Instance
}

// SpawnerConfig defines scrolling and spacing along the Y axis.
type SpawnerConfig struct {
	Speed    float64 // Cells per second
	Interval float64 // Cells between successive groups
	Viewport float64 // Visible extent along the scroll axis
}

// Spawner scrolls groups toward the trailing (bottom) edge, spawns new ones
// at the leading edge and retires the oldest once it leaves the viewport.
// Groups form a queue ordered by spawn time, which is also their order along
// the scroll axis.
type Spawner struct {
	cfg      SpawnerConfig
	inst     Instancer
	rng      *rand.Rand
	logger   *log.Logger
	level    int
	groups   []*SpawnGroup
	progress float64
	forced   int
	nextID   uint64
	spawned  int
	retired  int

	badInterval bool // Config error already reported
}

// NewSpawner creates a spawner. It holds no groups until Fill is called.
func NewSpawner(cfg SpawnerConfig, inst Instancer, rng *rand.Rand, logger *log.Logger) *Spawner {
	return &Spawner{
		cfg:    cfg,
		inst:   inst,
		rng:    rng,
		logger: logger,
		forced: -1,
	}
}

// Capacity is the number of groups the initial fill creates and the most the
// spawner holds between ticks: ceil(viewport / interval) + 2.
func (s *Spawner) Capacity() int {
	if s.cfg.Interval <= 0 {
		return 0
	}
	return int(math.Ceil(s.cfg.Viewport/s.cfg.Interval)) + 2
}

// Fill performs the one-time initial fill. Groups are stacked upward from
// the trailing edge so the oldest one sits one interval above it and the
// screen starts populated. forced, when >= 0, is the pool index used for the
// oldest group, the one nearest the player.
func (s *Spawner) Fill(forced int) {
	if !s.intervalValid() {
		return
	}
	for i := 0; i < s.Capacity(); i++ {
		idx := -1
		if i == 0 {
			idx = forced
		}
		y := s.cfg.Viewport - float64(i+1)*s.cfg.Interval
		s.spawn(Vec2{Y: y}, idx)
	}
}

// SetLevel switches the pool future spawns draw from.
func (s *Spawner) SetLevel(level int) {
	s.level = level
}

// Level returns the pool level in use.
func (s *Spawner) Level() int {
	return s.level
}

// SpawnForced makes the next spawn use the given pool index instead of a
// random pick.
func (s *Spawner) SpawnForced(index int) {
	s.forced = index
}

// SetSpeed changes the scroll speed. Negative speeds are treated as zero.
func (s *Spawner) SetSpeed(speed float64) {
	s.cfg.Speed = math.Max(0, speed)
}

// Speed returns the current scroll speed.
func (s *Spawner) Speed() float64 {
	return s.cfg.Speed
}

// Stop halts scrolling.
func (s *Spawner) Stop() {
	s.cfg.Speed = 0
}

// Progress returns the scroll distance accumulated since the last spawn.
// It is always in [0, interval).
func (s *Spawner) Progress() float64 {
	return s.progress
}

// Len returns the number of live groups.
func (s *Spawner) Len() int {
	return len(s.groups)
}

// Groups returns a snapshot of the live groups, oldest first.
func (s *Spawner) Groups() []SpawnGroup {
	out := make([]SpawnGroup, len(s.groups))
	for i, g := range s.groups {
		out[i] = *g
	}
	return out
}

// Stats returns how many groups were spawned and retired so far.
func (s *Spawner) Stats() (spawned, retired int) {
	return s.spawned, s.retired
}

// Advance scrolls every group by speed*dt. Each time the accumulated progress
// reaches the interval one group is spawned at the leading edge, the interval
// is subtracted (the remainder is kept) and the oldest group is retired if it
// has fully left the viewport. A step longer than one interval is split so
// every spawn is paired with its retirement check.
func (s *Spawner) Advance(dt float64) {
	if !s.intervalValid() {
		return
	}
	dist := s.cfg.Speed * dt
	for dist > 0 {
		step := math.Min(dist, s.cfg.Interval)
		dist -= step
		s.scroll(step)
	}
}

// intervalValid reports whether the spawn interval can drive scrolling.
// A bad interval is a config error: it is logged once and the spawner
// stays idle.
func (s *Spawner) intervalValid() bool {
	if s.cfg.Interval > 0 {
		return true
	}
	if !s.badInterval {
		s.badInterval = true
		s.logger.Error("spawner idle: interval must be positive", "interval", s.cfg.Interval)
	}
	return false
}

func (s *Spawner) scroll(d float64) {
	for _, g := range s.groups {
		g.Pos.Y += d
		g.inst.SetPosition(g.Pos)
	}

	s.progress += d
	if s.progress < s.cfg.Interval {
		return
	}

	lead := Vec2{Y: -s.cfg.Interval}
	if n := len(s.groups); n > 0 {
		lead = Vec2{Y: s.groups[n-1].Pos.Y - s.cfg.Interval}
	}
	idx := s.forced
	s.forced = -1
	s.spawn(lead, idx)

	s.progress -= s.cfg.Interval
	if s.progress < 0 {
		s.progress = 0
	}

	s.retireOldest()
}

// retireOldest removes the head group once its top edge has reached the
// trailing edge. Only one group is examined per spawn event.
func (s *Spawner) retireOldest() {
	if len(s.groups) == 0 {
		return
	}
	head := s.groups[0]
	// Positions and progress accumulate the same steps separately; the
	// tolerance absorbs their rounding drift.
	if head.Pos.Y < s.cfg.Viewport-1e-6*s.cfg.Interval {
		return
	}
	head.inst.Destroy()
	head.Alive = false
	s.groups[0] = nil
	s.groups = s.groups[1:]
	s.retired++
	s.logger.Debug("retired group", "id", head.ID, "y", head.Pos.Y)
}

// spawn instantiates one group at pos. index < 0 picks at random from the
// active pool. Configuration errors are logged and skipped.
func (s *Spawner) spawn(pos Vec2, index int) {
	size := s.inst.PoolSize(s.level)
	if size == 0 {
		s.logger.Warn("spawn skipped: empty pool", "level", s.level)
		return
	}
	if index < 0 {
		index = s.rng.Intn(size)
	}

	inst, err := s.inst.Instantiate(s.level, index, pos)
	if err != nil {
		s.logger.Warn("spawn skipped", "level", s.level, "index", index, "error", err)
		return
	}

	s.nextID++
	g := &SpawnGroup{
		ID:        s.nextID,
		Pos:       pos,
		Level:     s.level,
		PoolIndex: index,
		Alive:     true,
		inst:      inst,
	}
	s.groups = append(s.groups, g)
	s.spawned++
	s.logger.Debug("spawned group", "id", g.ID, "level", s.level, "index", index, "y", pos.Y)
}
