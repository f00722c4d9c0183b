package sim

import (
	"math"

	"github.com/telisar/stardrift/internal/config"
)

// Level bounds and the hysteresis threshold for republishing params.
const (
	minLevel        = 1.0
	maxLevel        = 20.0
	levelHysteresis = 0.1
)

// Params are the tunables derived from the difficulty level. Every field is
// a pure function of the level, monotonic and independently clamped, so a
// host may cache them safely between recomputes.
type Params struct {
	Level                   float64
	GameSpeed               float64 // World units per nominal tick
	ObstacleSpawnInterval   float64 // ms between obstacle bursts
	PowerUpSpawnInterval    float64 // ms between power-up spawns
	ObstacleSpeedMultiplier float64
	ObstacleSizeMultiplier  float64
	PowerUpRarityBias       float64
}

// Difficulty derives a continuous level from the score and republishes
// Params when the level moves by at least the hysteresis threshold.
type Difficulty struct {
	initialLevel float64
	presetBias   float64
	fixed        bool
	params       Params
}

// NewDifficulty creates a difficulty controller from the config section.
func NewDifficulty(cfg config.DifficultyConfig) *Difficulty {
	d := &Difficulty{
		initialLevel: clampLevel(cfg.InitialLevel),
		presetBias:   cfg.RarityBias,
		fixed:        cfg.Fixed,
	}
	if d.presetBias <= 0 {
		d.presetBias = 1
	}
	d.Reset()
	return d
}

// Reset returns the level to its configured starting point.
func (d *Difficulty) Reset() {
	d.params = paramsForLevel(d.initialLevel, d.presetBias)
}

// Params returns the current derived tunables.
func (d *Difficulty) Params() Params {
	return d.params
}

// Recompute derives the level for the given score and republishes Params if
// it differs from the current level by at least the hysteresis threshold.
// Returns true when Params changed. Pinned (fixed) controllers never move.
func (d *Difficulty) Recompute(score int) bool {
	if d.fixed {
		return false
	}
	level := LevelForScore(score)
	if level < d.initialLevel {
		level = d.initialLevel
	}
	if math.Abs(level-d.params.Level) < levelHysteresis {
		return false
	}
	d.params = paramsForLevel(level, d.presetBias)
	return true
}

// LevelForScore maps a score to the continuous difficulty level.
// Level-to-level cost grows triangularly: reaching integer level L costs
// T(L) = 100*L*(L-1)/2 total points and the step from L to L+1 costs 100*L.
// The fractional part is the linear progress through the current step,
// rounded to 2 decimals. Result is clamped to [1, 20].
func LevelForScore(score int) float64 {
	if score < 0 {
		score = 0
	}
	l := 1
	for l < int(maxLevel) && levelThreshold(l+1) <= score {
		l++
	}
	if l >= int(maxLevel) {
		return maxLevel
	}
	frac := float64(score-levelThreshold(l)) / float64(100*l)
	level := float64(l) + frac
	level = math.Round(level*100) / 100
	return clampLevel(level)
}

// levelThreshold returns T(L), the cumulative points needed for level L.
func levelThreshold(l int) int {
	return 100 * l * (l - 1) / 2
}

// LevelProgress returns the percentage progress from the current integer
// level toward the next one, in [0, 100].
func LevelProgress(score int, level float64) float64 {
	l := int(level)
	if l >= int(maxLevel) {
		return 100
	}
	if l < 1 {
		l = 1
	}
	pct := float64(score-levelThreshold(l)) / float64(100*l) * 100
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}

// paramsForLevel derives all tunables for a level. Monotonic in level with
// per-field clamps; the power-up interval grows while the obstacle interval
// shrinks, an intentional asymmetry that starves late runs of help.
func paramsForLevel(level, presetBias float64) Params {
	level = clampLevel(level)
	return Params{
		Level:                   level,
		GameSpeed:               math.Min(2+1.2*level, 30),
		ObstacleSpawnInterval:   math.Max(1400-60*level, 300),
		PowerUpSpawnInterval:    math.Max(5000+200*level, 3000),
		ObstacleSpeedMultiplier: math.Min(1+0.05*(level-1), 2),
		ObstacleSizeMultiplier:  math.Min(1+0.02*(level-1), 1.5),
		PowerUpRarityBias:       math.Min(1+0.04*(level-1), 1.8) * presetBias,
	}
}

func clampLevel(level float64) float64 {
	if level < minLevel {
		return minLevel
	}
	if level > maxLevel {
		return maxLevel
	}
	return level
}
