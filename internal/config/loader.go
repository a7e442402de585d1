package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"
)

// Validation errors. Load wraps them with the offending field.
var (
	ErrInvalidScroll     = errors.New("config: scroll speed and interval must be positive")
	ErrUnsortedThreshold = errors.New("config: level thresholds must be strictly ascending")
	ErrNoPools           = errors.New("config: at least one pool is required")
	ErrUnknownVariant    = errors.New("config: unknown enemy variant")
	ErrInvalidPlayer     = errors.New("config: player hp and speed must be positive")
	ErrUnknownMode       = errors.New("config: unknown enemy mode")
	ErrInvalidSpeedStep  = errors.New("config: level speed step must not be negative")
)

// Load loads the configuration for a mode.
// Search order: customPath -> ~/.descent/configs/<mode>.yaml -> ./configs/<mode>.yaml -> embedded default.
// A custom path that cannot be read or parsed is an error; the other
// locations are skipped silently when missing or broken.
func Load(mode, customPath string) (DescentConfig, error) {
	if customPath != "" {
		cfg, err := loadFile(customPath)
		if err != nil {
			return cfg, err
		}
		if err := cfg.Validate(); err != nil {
			return cfg, fmt.Errorf("invalid config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	filename := mode + ".yaml"
	candidates := []string{userConfigPath(filename), filepath.Join("configs", filename)}
	for _, path := range candidates {
		if path == "" {
			continue
		}
		if cfg, err := loadFile(path); err == nil && cfg.Validate() == nil {
			return cfg, nil
		}
	}

	var cfg DescentConfig
	if err := yaml.Unmarshal(GetDefaultYAML(mode), &cfg); err != nil || cfg.Validate() != nil {
		return DefaultFor(mode), nil
	}
	return cfg, nil
}

// Parse decodes YAML bytes into a validated config.
func Parse(data []byte) (DescentConfig, error) {
	var cfg DescentConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func loadFile(path string) (DescentConfig, error) {
	var cfg DescentConfig
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}

// userConfigPath returns the path to a user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".descent", "configs", filename)
}

// Validate checks the invariants the simulation relies on.
// Empty individual pools are allowed: spawning from them is a logged no-op.
func (c *DescentConfig) Validate() error {
	if c.Scroll.Speed <= 0 || c.Scroll.Interval <= 0 {
		return ErrInvalidScroll
	}
	if !sort.SliceIsSorted(c.Levels.Thresholds, func(i, j int) bool {
		return c.Levels.Thresholds[i] < c.Levels.Thresholds[j]
	}) {
		return ErrUnsortedThreshold
	}
	for i := 1; i < len(c.Levels.Thresholds); i++ {
		if c.Levels.Thresholds[i] == c.Levels.Thresholds[i-1] {
			return ErrUnsortedThreshold
		}
	}
	if c.Levels.SpeedStep < 0 {
		return ErrInvalidSpeedStep
	}
	if c.Player.HP <= 0 || c.Player.Speed <= 0 {
		return ErrInvalidPlayer
	}
	for name, v := range c.Enemies {
		if !KnownMode(v.Mode) {
			return fmt.Errorf("%w %q for variant %q", ErrUnknownMode, v.Mode, name)
		}
	}
	if len(c.Pools) == 0 {
		return ErrNoPools
	}
	for level, pool := range c.Pools {
		for _, tmpl := range pool {
			for _, e := range tmpl.Enemies {
				if _, ok := c.Enemies[e.Variant]; !ok {
					return fmt.Errorf("%w %q in level %d group %q", ErrUnknownVariant, e.Variant, level, tmpl.Name)
				}
			}
		}
	}
	return nil
}
