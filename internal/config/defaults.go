package config

import (
	_ "embed"
)

//go:embed defaults/stardrift.yaml
var defaultYAML []byte

// DefaultConfig returns the hardcoded default configuration, used when even
// the embedded YAML cannot be parsed.
func DefaultConfig() Config {
	return Config{
		Playfield: PlayfieldConfig{
			Width:  800,
			Height: 600,
		},
		Craft: CraftConfig{
			Width:     40,
			Height:    20,
			MaxHealth: 100,
			MaxEnergy: 100,
			Speed:     6,
		},
		Difficulty: DifficultyConfig{
			InitialLevel: 1.0,
			RarityBias:   1.0,
			Fixed:        false,
		},
		Viewer: ViewerConfig{
			QueueSize: 64,
		},
	}
}

// DefaultYAML returns the embedded default YAML, e.g. for writing a starter
// config file for the user to edit.
func DefaultYAML() []byte {
	return defaultYAML
}
