package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadCustomPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	data := []byte(`
playfield:
  width: 1000
  height: 700
craft:
  width: 50
  height: 25
  max_health: 150
  max_energy: 80
  speed: 8
difficulty:
  initial_level: 2.5
  rarity_bias: 1.1
viewer:
  queue_size: 32
`)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Playfield.Width != 1000 || cfg.Playfield.Height != 700 {
		t.Errorf("playfield = %+v, expected 1000x700", cfg.Playfield)
	}
	if cfg.Craft.MaxHealth != 150 {
		t.Errorf("max_health = %d, expected 150", cfg.Craft.MaxHealth)
	}
	if cfg.Difficulty.InitialLevel != 2.5 {
		t.Errorf("initial_level = %f, expected 2.5", cfg.Difficulty.InitialLevel)
	}
	if cfg.Viewer.QueueSize != 32 {
		t.Errorf("queue_size = %d, expected 32", cfg.Viewer.QueueSize)
	}
}

func TestLoadMissingCustomPath(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Error("expected error for missing explicit config path")
	}
}

func TestLoadEmbeddedDefault(t *testing.T) {
	// Point the home lookup at an empty dir so a real user config cannot
	// shadow the embedded default.
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	def := DefaultConfig()
	if cfg.Playfield != def.Playfield {
		t.Errorf("playfield = %+v, expected %+v", cfg.Playfield, def.Playfield)
	}
	if cfg.Craft != def.Craft {
		t.Errorf("craft = %+v, expected %+v", cfg.Craft, def.Craft)
	}
	if cfg.Difficulty != def.Difficulty {
		t.Errorf("difficulty = %+v, expected %+v", cfg.Difficulty, def.Difficulty)
	}
}

func TestNormalizeClampsDegenerateValues(t *testing.T) {
	cfg := Config{}
	cfg.Playfield.Width = 1
	cfg.Playfield.Height = 99999
	cfg.Craft.Speed = -5
	cfg.Difficulty.InitialLevel = 50
	cfg.Difficulty.RarityBias = 0
	cfg.Normalize()

	if cfg.Playfield.Width < 200 {
		t.Errorf("width not clamped up: %f", cfg.Playfield.Width)
	}
	if cfg.Playfield.Height > 3000 {
		t.Errorf("height not clamped down: %f", cfg.Playfield.Height)
	}
	if cfg.Craft.Speed < 1 {
		t.Errorf("speed not clamped up: %f", cfg.Craft.Speed)
	}
	if cfg.Difficulty.InitialLevel > 20 {
		t.Errorf("initial_level not clamped to 20: %f", cfg.Difficulty.InitialLevel)
	}
	if cfg.Difficulty.RarityBias < 0.25 {
		t.Errorf("rarity_bias not clamped up: %f", cfg.Difficulty.RarityBias)
	}
	if cfg.Craft.MaxHealth <= 0 || cfg.Viewer.QueueSize <= 0 {
		t.Error("zero values should fall back to defaults")
	}
}

func TestApplyPreset(t *testing.T) {
	tests := []struct {
		preset       DifficultyPreset
		initialLevel float64
		rarityBias   float64
		fixed        bool
	}{
		{DifficultyEasy, 1.0, 1.25, false},
		{DifficultyNormal, 1.0, 1.0, false},
		{DifficultyHard, 3.0, 0.8, false},
	}

	for _, tc := range tests {
		cfg := DefaultConfig()
		ApplyPreset(&cfg, tc.preset)
		if cfg.Difficulty.InitialLevel != tc.initialLevel {
			t.Errorf("%s: initial_level = %f, expected %f", tc.preset, cfg.Difficulty.InitialLevel, tc.initialLevel)
		}
		if cfg.Difficulty.RarityBias != tc.rarityBias {
			t.Errorf("%s: rarity_bias = %f, expected %f", tc.preset, cfg.Difficulty.RarityBias, tc.rarityBias)
		}
		if cfg.Difficulty.Fixed != tc.fixed {
			t.Errorf("%s: fixed = %v, expected %v", tc.preset, cfg.Difficulty.Fixed, tc.fixed)
		}
	}

	// Fixed pins the level without touching the rest
	cfg := DefaultConfig()
	cfg.Difficulty.InitialLevel = 5
	ApplyPreset(&cfg, DifficultyFixed)
	if !cfg.Difficulty.Fixed {
		t.Error("fixed preset should set Fixed")
	}
	if cfg.Difficulty.InitialLevel != 5 {
		t.Error("fixed preset should keep the configured initial level")
	}
}

func TestParsePreset(t *testing.T) {
	if p, ok := ParsePreset("hard"); !ok || p != DifficultyHard {
		t.Errorf("ParsePreset(hard) = %v, %v", p, ok)
	}
	if _, ok := ParsePreset("nightmare"); ok {
		t.Error("expected unknown preset to be rejected")
	}
}
