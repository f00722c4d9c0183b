// Package config provides YAML-based configuration loading and difficulty
// presets for the stardrift simulation and its hosts.
package config

// Config contains all tunable parameters for a stardrift session.
// Fixed gameplay constants (effect durations, spawn math) live in the
// simulation package; this covers what operators may reasonably retune.
type Config struct {
	Playfield  PlayfieldConfig  `yaml:"playfield"`
	Craft      CraftConfig      `yaml:"craft"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
	Viewer     ViewerConfig     `yaml:"viewer"`
}

// PlayfieldConfig defines the world-unit dimensions of the play area.
// The terminal host projects these onto screen cells.
type PlayfieldConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// CraftConfig defines the player craft parameters.
type CraftConfig struct {
	Width     float64 `yaml:"width"`
	Height    float64 `yaml:"height"`
	MaxHealth int     `yaml:"max_health"`
	MaxEnergy int     `yaml:"max_energy"`
	Speed     float64 `yaml:"speed"` // World units per tick per held axis
}

// DifficultyConfig seeds the difficulty controller.
type DifficultyConfig struct {
	InitialLevel float64 `yaml:"initial_level"` // Starting level, 1.0 to 20.0
	RarityBias   float64 `yaml:"rarity_bias"`   // Scales power-up rarity thresholds
	Fixed        bool    `yaml:"fixed"`         // Pin the level at initial_level
}

// ViewerConfig bounds the viewer-action side channel.
type ViewerConfig struct {
	QueueSize int `yaml:"queue_size"` // Pending injected actions before drop-oldest
}

// Normalize clamps loaded values into their playable ranges so a hand-edited
// config can never produce a degenerate session.
func (c *Config) Normalize() {
	c.Playfield.Width = clampF(c.Playfield.Width, 200, 4000)
	c.Playfield.Height = clampF(c.Playfield.Height, 150, 3000)
	c.Craft.Width = clampF(c.Craft.Width, 4, 200)
	c.Craft.Height = clampF(c.Craft.Height, 4, 200)
	if c.Craft.MaxHealth <= 0 {
		c.Craft.MaxHealth = DefaultConfig().Craft.MaxHealth
	}
	if c.Craft.MaxEnergy <= 0 {
		c.Craft.MaxEnergy = DefaultConfig().Craft.MaxEnergy
	}
	c.Craft.Speed = clampF(c.Craft.Speed, 1, 40)
	c.Difficulty.InitialLevel = clampF(c.Difficulty.InitialLevel, 1, 20)
	c.Difficulty.RarityBias = clampF(c.Difficulty.RarityBias, 0.25, 2)
	if c.Viewer.QueueSize <= 0 {
		c.Viewer.QueueSize = DefaultConfig().Viewer.QueueSize
	}
}

// clampF restricts a float64 to [min, max].
func clampF(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}
