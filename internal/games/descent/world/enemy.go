package world

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/vovakirdan/descent/internal/config"
)

// Mode is an enemy behavior. The set is closed; Velocity switches on it.
type Mode uint8

const (
	// ModeChase pursues a visible player and idles while it is hidden.
	ModeChase Mode = iota
	// ModeWanderWait never pursues: it waits, then wanders.
	ModeWanderWait
	// ModePatrol crosses the screen horizontally at a fixed height.
	ModePatrol
)

// ParseMode converts a config mode name.
func ParseMode(s string) (Mode, error) {
	switch s {
	case config.ModeChase:
		return ModeChase, nil
	case config.ModeWanderWait:
		return ModeWanderWait, nil
	case config.ModePatrol:
		return ModePatrol, nil
	}
	return 0, fmt.Errorf("world: unknown enemy mode %q", s)
}

// String returns the config name of the mode.
func (m Mode) String() string {
	switch m {
	case ModeChase:
		return config.ModeChase
	case ModeWanderWait:
		return config.ModeWanderWait
	case ModePatrol:
		return config.ModePatrol
	}
	return "unknown"
}

// Variant is the tuning shared by every enemy of one kind.
type Variant struct {
	Name        string
	Mode        Mode
	Speed       float64
	WanderSpeed float64
	WaitTime    float64
	Damage      int
	TurnChance  float64
	SpawnOffset float64
}

// NewVariant builds a variant from its config record.
func NewVariant(name string, v config.EnemyVariant) (Variant, error) {
	mode, err := ParseMode(v.Mode)
	if err != nil {
		return Variant{}, fmt.Errorf("variant %s: %w", name, err)
	}
	return Variant{
		Name:        name,
		Mode:        mode,
		Speed:       v.Speed,
		WanderSpeed: v.WanderSpeed,
		WaitTime:    v.WaitTime,
		Damage:      v.Damage,
		TurnChance:  v.TurnChance,
		SpawnOffset: v.SpawnOffset,
	}, nil
}

// EnemyState is the per-enemy half of the behavior.
type EnemyState struct {
	Variant *Variant

	// BorderStrike is set by the first border crossing.
	BorderStrike bool

	wait     float64 // Seconds left before wandering starts
	heading  Vec2
	dir      float64 // Patrol direction, -1 or 1
	onScreen bool    // Patrol enemy has been inside the border once
}

func newEnemyState(v *Variant, playerHidden bool) *EnemyState {
	s := &EnemyState{Variant: v, dir: 1}
	if v.Mode == ModeWanderWait || playerHidden {
		s.wait = v.WaitTime
	}
	return s
}

// OnPlayerHidden restarts the wait before wandering.
func (s *EnemyState) OnPlayerHidden() {
	s.wait = s.Variant.WaitTime
	s.heading = Vec2{}
}

// Waiting reports whether the enemy is standing still before wandering.
func (s *EnemyState) Waiting() bool {
	return s.wait > 0
}

// Velocity returns this tick's velocity for an enemy at pos, given the
// player's position and visibility.
func (s *EnemyState) Velocity(pos, target Vec2, hidden bool, dt float64, rng *rand.Rand) Vec2 {
	switch s.Variant.Mode {
	case ModePatrol:
		return Vec2{X: s.dir * s.Variant.Speed}
	case ModeChase:
		if !hidden {
			s.wait = 0
			s.heading = Vec2{}
			return target.Sub(pos).Normalized().Scale(s.Variant.Speed)
		}
	}
	return s.idle(dt, rng)
}

func (s *EnemyState) idle(dt float64, rng *rand.Rand) Vec2 {
	if s.wait > 0 {
		s.wait -= dt
		return Vec2{}
	}
	if s.heading == (Vec2{}) || rng.Float64() < s.Variant.TurnChance {
		a := rng.Float64() * 2 * math.Pi
		s.heading = Vec2{X: math.Cos(a), Y: math.Sin(a)}
	}
	return s.heading.Scale(s.Variant.WanderSpeed)
}
