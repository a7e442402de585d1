package config

import "fmt"

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset converts a CLI value into a preset. The empty string means
// "use the config as loaded".
func ParsePreset(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(s); p {
	case "", DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal, hard or fixed)", s)
	}
}

// ApplyPreset modifies the config based on a difficulty preset.
// Fixed keeps the run on level 0 by dropping every threshold.
func ApplyPreset(cfg *DescentConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Player.HP += cfg.Player.HP / 2
		cfg.Scroll.Speed *= 0.8
	case DifficultyHard:
		cfg.Player.HP = max(1, cfg.Player.HP/2)
		cfg.Scroll.Speed *= 1.25
		for name, v := range cfg.Enemies {
			v.Speed *= 1.2
			cfg.Enemies[name] = v
		}
	case DifficultyFixed:
		cfg.Levels.Thresholds = nil
	}
}
