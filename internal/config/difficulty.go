package config

// DifficultyPreset represents a named difficulty setup.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// Presets returns all selectable presets in menu order.
func Presets() []DifficultyPreset {
	return []DifficultyPreset{DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed}
}

// Description returns a one-line menu description for the preset.
func (p DifficultyPreset) Description() string {
	switch p {
	case DifficultyEasy:
		return "generous power-ups, gentle start"
	case DifficultyNormal:
		return "the intended experience"
	case DifficultyHard:
		return "starts at level 3, stingy power-ups"
	case DifficultyFixed:
		return "difficulty pinned at the starting level"
	default:
		return ""
	}
}

// ParsePreset maps a user-supplied name to a preset.
func ParsePreset(name string) (DifficultyPreset, bool) {
	switch DifficultyPreset(name) {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return DifficultyPreset(name), true
	default:
		return DifficultyNormal, false
	}
}

// ApplyPreset modifies the difficulty section based on a named preset.
func ApplyPreset(cfg *Config, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Difficulty.InitialLevel = 1.0
		cfg.Difficulty.RarityBias = 1.25
		cfg.Difficulty.Fixed = false
	case DifficultyNormal:
		cfg.Difficulty.InitialLevel = 1.0
		cfg.Difficulty.RarityBias = 1.0
		cfg.Difficulty.Fixed = false
	case DifficultyHard:
		cfg.Difficulty.InitialLevel = 3.0
		cfg.Difficulty.RarityBias = 0.8
		cfg.Difficulty.Fixed = false
	case DifficultyFixed:
		cfg.Difficulty.Fixed = true
	}
}
