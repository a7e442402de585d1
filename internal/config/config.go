// Package config provides YAML-based configuration for the descent modes:
// scrolling, level thresholds, player tuning, enemy variants, hazards and the
// content pools each level draws from.
package config

// DescentConfig contains everything a run needs. The same shape serves every
// mode; the swarm mode simply ships a single enemy-only pool and no thresholds.
type DescentConfig struct {
	Scroll  ScrollConfig            `yaml:"scroll"`
	Levels  LevelConfig             `yaml:"levels"`
	Player  PlayerConfig            `yaml:"player"`
	Enemies map[string]EnemyVariant `yaml:"enemies"`
	Volcano VolcanoConfig           `yaml:"volcano"`
	Pools   [][]GroupTemplate       `yaml:"pools"` // Indexed by level
}

// ScrollConfig defines how fast the world moves and how groups are spaced.
type ScrollConfig struct {
	Speed      float64 `yaml:"speed"`       // Cells per second
	Interval   float64 `yaml:"interval"`    // Cells between successive groups
	StartGroup int     `yaml:"start_group"` // Pool index forced for the nearest initial group, -1 = random
}

// LevelConfig defines score derivation and level thresholds.
type LevelConfig struct {
	Thresholds   []int   `yaml:"thresholds"`    // Ascending scores that unlock levels 1..n
	ScoreDivisor float64 `yaml:"score_divisor"` // Seconds of active time per point
	ThemeDelay   float64 `yaml:"theme_delay"`   // Seconds between level change and theme swap
	SpeedStep    float64 `yaml:"speed_step"`    // Scroll speed gained per level, as a fraction of the base speed
}

// PlayerConfig defines player movement and survival parameters.
type PlayerConfig struct {
	HP             int     `yaml:"hp"`
	Speed          float64 `yaml:"speed"`           // Horizontal cells per second
	VerticalFactor float64 `yaml:"vertical_factor"` // Terminal cells are taller than wide
	DashMultiplier float64 `yaml:"dash_multiplier"`
	DashDuration   float64 `yaml:"dash_duration"`
	DashCooldown   float64 `yaml:"dash_cooldown"`
	RespawnDelay   float64 `yaml:"respawn_delay"` // Seconds between death and game over
}

// EnemyVariant is the data record that replaces per-enemy subclasses.
type EnemyVariant struct {
	Mode        string  `yaml:"mode"` // chase, wander-wait, patrol-horizontal
	Speed       float64 `yaml:"speed"`
	WanderSpeed float64 `yaml:"wander_speed"`
	WaitTime    float64 `yaml:"wait_time"`
	Damage      int     `yaml:"damage"`
	TurnChance  float64 `yaml:"turn_chance"`  // Per-tick chance to pick a new wander direction
	SpawnOffset float64 `yaml:"spawn_offset"` // Patrol spawn height above the bottom edge
	Glyph       string  `yaml:"glyph"`
}

// Enemy behavior modes.
const (
	ModeChase      = "chase"
	ModeWanderWait = "wander-wait"
	ModePatrol     = "patrol-horizontal"
)

// KnownMode reports whether m names an enemy behavior mode.
func KnownMode(m string) bool {
	switch m {
	case ModeChase, ModeWanderWait, ModePatrol:
		return true
	}
	return false
}

// VolcanoConfig defines the eruption cycle of volcano hazards.
type VolcanoConfig struct {
	Interval      float64 `yaml:"interval"`       // Seconds between eruption starts
	Duration      float64 `yaml:"duration"`       // Seconds an eruption lasts
	ActivateDelay float64 `yaml:"activate_delay"` // Seconds before the damage area arms
	Damage        int     `yaml:"damage"`
	Reach         float64 `yaml:"reach"` // Height of the eruption column in cells
}

// GroupTemplate is one entry of a level pool. Horizontal values are fractions
// of the screen width so layouts adapt to any terminal; vertical values are
// cell offsets inside the group's band.
type GroupTemplate struct {
	Name      string           `yaml:"name"`
	Platforms []AreaSpec       `yaml:"platforms"`
	Stealth   []AreaSpec       `yaml:"stealth"`
	Killzones []AreaSpec       `yaml:"killzones"`
	Volcanoes []PointSpec      `yaml:"volcanoes"`
	Enemies   []EnemyPlacement `yaml:"enemies"`
}

// AreaSpec is a rectangle inside a group band.
type AreaSpec struct {
	X float64 `yaml:"x"` // Fraction of width
	Y float64 `yaml:"y"` // Cells from the band top
	W float64 `yaml:"w"` // Fraction of width
	H float64 `yaml:"h"` // Cells
}

// PointSpec is a position inside a group band.
type PointSpec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// EnemyPlacement places one enemy of a named variant inside a group band.
type EnemyPlacement struct {
	Variant string  `yaml:"variant"`
	X       float64 `yaml:"x"`
	Y       float64 `yaml:"y"`
}

// Pool returns the pool for a level. Levels without a pool of their own fall
// back to the first one.
func (c *DescentConfig) Pool(level int) []GroupTemplate {
	if level >= 0 && level < len(c.Pools) {
		return c.Pools[level]
	}
	if len(c.Pools) > 0 {
		return c.Pools[0]
	}
	return nil
}
