package sim

import (
	"testing"

	"github.com/telisar/stardrift/internal/config"
)

func TestLevelForScoreScenario(t *testing.T) {
	// T(2)=100 <= 250 < T(3)=300, so L=2 and the fractional part is
	// (250-100)/200 = 0.75.
	if got := LevelForScore(250); got != 2.75 {
		t.Errorf("LevelForScore(250) = %v, expected 2.75", got)
	}
}

func TestLevelForScoreBounds(t *testing.T) {
	if got := LevelForScore(0); got != 1.0 {
		t.Errorf("LevelForScore(0) = %v, expected 1.0", got)
	}
	if got := LevelForScore(-500); got != 1.0 {
		t.Errorf("LevelForScore(-500) = %v, expected 1.0", got)
	}
	// T(20) = 100*20*19/2 = 19000; anything at or past it caps.
	if got := LevelForScore(19000); got != 20.0 {
		t.Errorf("LevelForScore(19000) = %v, expected 20.0", got)
	}
	if got := LevelForScore(1_000_000); got != 20.0 {
		t.Errorf("LevelForScore(1e6) = %v, expected 20.0", got)
	}
}

func TestLevelForScoreMonotonic(t *testing.T) {
	prev := 0.0
	for score := 0; score <= 20000; score += 37 {
		level := LevelForScore(score)
		if level < prev {
			t.Fatalf("level decreased: score=%d level=%v prev=%v", score, level, prev)
		}
		prev = level
	}
}

func TestParamsMonotonicAndClamped(t *testing.T) {
	var prev Params
	for i := 0; i <= 38; i++ {
		level := 1.0 + float64(i)*0.5
		p := paramsForLevel(level, 1.0)

		if p.GameSpeed > 30 {
			t.Errorf("level %v: gameSpeed %v above cap", level, p.GameSpeed)
		}
		if p.ObstacleSpawnInterval < 300 {
			t.Errorf("level %v: obstacle interval %v below floor", level, p.ObstacleSpawnInterval)
		}
		if p.PowerUpSpawnInterval < 3000 {
			t.Errorf("level %v: power-up interval %v below floor", level, p.PowerUpSpawnInterval)
		}
		if p.ObstacleSpeedMultiplier > 2 || p.ObstacleSizeMultiplier > 1.5 || p.PowerUpRarityBias > 1.8 {
			t.Errorf("level %v: multiplier above cap: %+v", level, p)
		}

		if i > 0 {
			if p.GameSpeed < prev.GameSpeed {
				t.Errorf("gameSpeed not monotonic at level %v", level)
			}
			if p.ObstacleSpawnInterval > prev.ObstacleSpawnInterval {
				t.Errorf("obstacle interval not non-increasing at level %v", level)
			}
			if p.PowerUpSpawnInterval < prev.PowerUpSpawnInterval {
				t.Errorf("power-up interval not non-decreasing at level %v", level)
			}
			if p.ObstacleSpeedMultiplier < prev.ObstacleSpeedMultiplier ||
				p.ObstacleSizeMultiplier < prev.ObstacleSizeMultiplier {
				t.Errorf("multipliers not monotonic at level %v", level)
			}
		}
		prev = p
	}
}

func TestDerivedParamValues(t *testing.T) {
	p := paramsForLevel(1, 1.0)
	if p.GameSpeed != 3.2 {
		t.Errorf("level 1 gameSpeed = %v, expected 3.2", p.GameSpeed)
	}
	if p.ObstacleSpawnInterval != 1340 {
		t.Errorf("level 1 obstacle interval = %v, expected 1340", p.ObstacleSpawnInterval)
	}
	if p.PowerUpSpawnInterval != 5200 {
		t.Errorf("level 1 power-up interval = %v, expected 5200", p.PowerUpSpawnInterval)
	}

	p = paramsForLevel(20, 1.0)
	if p.GameSpeed != 26 {
		t.Errorf("level 20 gameSpeed = %v, expected 26", p.GameSpeed)
	}
	if p.ObstacleSpawnInterval != 300 {
		t.Errorf("level 20 obstacle interval = %v, expected floor 300", p.ObstacleSpawnInterval)
	}
}

func TestRecomputeHysteresis(t *testing.T) {
	d := NewDifficulty(config.DifficultyConfig{InitialLevel: 1, RarityBias: 1})

	// A handful of points moves the continuous level by less than 0.1.
	if d.Recompute(5) {
		t.Error("Recompute republished params for a sub-threshold change")
	}
	if d.Params().Level != 1 {
		t.Errorf("level = %v, expected to hold at 1", d.Params().Level)
	}

	if !d.Recompute(250) {
		t.Error("Recompute did not republish for a large change")
	}
	if d.Params().Level != 2.75 {
		t.Errorf("level = %v, expected 2.75", d.Params().Level)
	}
}

func TestRecomputeFixedPinsLevel(t *testing.T) {
	d := NewDifficulty(config.DifficultyConfig{InitialLevel: 5, RarityBias: 1, Fixed: true})
	if d.Recompute(100000) {
		t.Error("fixed controller republished params")
	}
	if d.Params().Level != 5 {
		t.Errorf("level = %v, expected pinned 5", d.Params().Level)
	}
}

func TestRecomputeRespectsInitialLevelFloor(t *testing.T) {
	d := NewDifficulty(config.DifficultyConfig{InitialLevel: 3, RarityBias: 1})
	d.Recompute(0)
	if d.Params().Level != 3 {
		t.Errorf("level = %v, expected floor at initial 3", d.Params().Level)
	}
}

func TestLevelProgress(t *testing.T) {
	// At score 250, level 2: 150 points into the 200-point step.
	if got := LevelProgress(250, 2.75); got != 75 {
		t.Errorf("LevelProgress(250) = %v, expected 75", got)
	}
	if got := LevelProgress(19000, 20); got != 100 {
		t.Errorf("LevelProgress at cap = %v, expected 100", got)
	}
}
