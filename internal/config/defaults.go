package config

import (
	_ "embed"
)

//go:embed defaults/descent.yaml
var defaultDescentYAML []byte

//go:embed defaults/swarm.yaml
var defaultSwarmYAML []byte

// Mode identifiers; each has its own embedded default file.
const (
	ModeDescent = "descent"
	ModeSwarm   = "swarm"
)

// DefaultDescentConfig returns the hardcoded fallback for the descent mode.
// It is only used when the embedded YAML cannot be parsed.
func DefaultDescentConfig() DescentConfig {
	cfg := baseConfig()
	cfg.Scroll = ScrollConfig{Speed: 3.0, Interval: 8, StartGroup: 0}
	cfg.Levels.Thresholds = []int{10, 20, 30}
	cfg.Levels.SpeedStep = 0.1
	cfg.Pools = [][]GroupTemplate{
		{
			{Name: "open", Platforms: []AreaSpec{{X: 0.35, Y: 3, W: 0.30, H: 1}}},
			{Name: "hideout", Platforms: []AreaSpec{{X: 0.10, Y: 4, W: 0.20, H: 1}}, Stealth: []AreaSpec{{X: 0.55, Y: 1, W: 0.20, H: 4}}},
		},
		{
			{Name: "patrol", Platforms: []AreaSpec{{X: 0.20, Y: 3, W: 0.20, H: 1}}, Enemies: []EnemyPlacement{{Variant: "grunt", X: 0.70, Y: 2}}},
		},
		{
			{Name: "vents", Volcanoes: []PointSpec{{X: 0.25, Y: 6}, {X: 0.75, Y: 6}}},
		},
		{
			{Name: "pit", Killzones: []AreaSpec{{X: 0.40, Y: 3, W: 0.20, H: 2}}, Enemies: []EnemyPlacement{{Variant: "brute", X: 0.15, Y: 1}, {Variant: "crawler", X: 0.90, Y: 0}}},
		},
	}
	return cfg
}

// DefaultSwarmConfig returns the hardcoded fallback for the swarm mode.
func DefaultSwarmConfig() DescentConfig {
	cfg := baseConfig()
	cfg.Scroll = ScrollConfig{Speed: 2.0, Interval: 8, StartGroup: -1}
	cfg.Pools = [][]GroupTemplate{
		{
			{Name: "lone-grunt", Enemies: []EnemyPlacement{{Variant: "grunt", X: 0.5}}},
			{Name: "lone-runner", Enemies: []EnemyPlacement{{Variant: "runner", X: 0.5}}},
		},
	}
	return cfg
}

// DefaultFor returns the hardcoded fallback for a mode.
func DefaultFor(mode string) DescentConfig {
	if mode == ModeSwarm {
		return DefaultSwarmConfig()
	}
	return DefaultDescentConfig()
}

func baseConfig() DescentConfig {
	return DescentConfig{
		Levels: LevelConfig{
			ScoreDivisor: 2.0,
			ThemeDelay:   7.5,
		},
		Player: PlayerConfig{
			HP:             10,
			Speed:          24,
			VerticalFactor: 0.5,
			DashMultiplier: 2.5,
			DashDuration:   0.25,
			DashCooldown:   1.0,
			RespawnDelay:   1.5,
		},
		Enemies: map[string]EnemyVariant{
			"grunt":   {Mode: "chase", Speed: 4, WanderSpeed: 2, WaitTime: 3, Damage: 1, TurnChance: 0.01, Glyph: "g"},
			"runner":  {Mode: "chase", Speed: 8, WanderSpeed: 12, WaitTime: 2, Damage: 1, TurnChance: 0.01, Glyph: "r"},
			"brute":   {Mode: "chase", Speed: 9, WanderSpeed: 12, WaitTime: 2, Damage: 3, TurnChance: 0.01, Glyph: "B"},
			"crawler": {Mode: "patrol-horizontal", Speed: 12, Damage: 1, SpawnOffset: 4, Glyph: "~"},
			"drifter": {Mode: "wander-wait", WanderSpeed: 3, WaitTime: 1, Damage: 1, TurnChance: 0.02, Glyph: "d"},
		},
		Volcano: VolcanoConfig{
			Interval:      2.0,
			Duration:      1.0,
			ActivateDelay: 0.7,
			Damage:        1,
			Reach:         4,
		},
	}
}

// GetDefaultYAML returns the embedded default YAML for a mode.
func GetDefaultYAML(mode string) []byte {
	switch mode {
	case ModeDescent:
		return defaultDescentYAML
	case ModeSwarm:
		return defaultSwarmYAML
	default:
		return nil
	}
}
