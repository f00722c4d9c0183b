// Package sim implements the stardrift endless-runner simulation: a player
// craft dodging spawned obstacles and collecting power-ups while difficulty
// scales with score. The package is deliberately free of I/O, logging, and
// rendering; hosts drive it one tick at a time and read back typed events
// and snapshots.
package sim

import "github.com/telisar/stardrift/internal/core"

// ObstacleKind identifies what an obstacle is. Fixed at creation; entities
// are pure data and any visual treatment belongs to the presentation layer.
type ObstacleKind int

const (
	ObstacleAsteroid ObstacleKind = iota
	ObstacleDebris
	ObstacleEnemy
	ObstacleMeteor
	ObstacleBlackhole
	ObstacleLaser
	obstacleKindCount // Sentinel for counting kinds
)

// String returns the wire/storage name of the kind.
func (k ObstacleKind) String() string {
	switch k {
	case ObstacleAsteroid:
		return "asteroid"
	case ObstacleDebris:
		return "debris"
	case ObstacleEnemy:
		return "enemy"
	case ObstacleMeteor:
		return "meteor"
	case ObstacleBlackhole:
		return "blackhole"
	case ObstacleLaser:
		return "laser"
	default:
		return "unknown"
	}
}

// ParseObstacleKind maps a wire name to a kind.
func ParseObstacleKind(name string) (ObstacleKind, bool) {
	switch name {
	case "asteroid":
		return ObstacleAsteroid, true
	case "debris":
		return ObstacleDebris, true
	case "enemy":
		return ObstacleEnemy, true
	case "meteor":
		return ObstacleMeteor, true
	case "blackhole":
		return ObstacleBlackhole, true
	case "laser":
		return ObstacleLaser, true
	default:
		return ObstacleAsteroid, false
	}
}

// SpawnSide identifies the playfield edge an obstacle entered from.
type SpawnSide int

const (
	SideLeft SpawnSide = iota
	SideRight
	SideTop
	SideBottom
)

// String returns a human-readable name for the side.
func (s SpawnSide) String() string {
	switch s {
	case SideLeft:
		return "left"
	case SideRight:
		return "right"
	case SideTop:
		return "top"
	case SideBottom:
		return "bottom"
	default:
		return "unknown"
	}
}

// Obstacle is a hazard entity. Plain data; all behavior lives in the
// spawner, motion, and collision passes.
type Obstacle struct {
	ID        uint64
	Kind      ObstacleKind
	Pos       core.Vec2
	Vel       core.Vec2 // World units per nominal tick, before damping
	Rotation  float64   // Radians; facing derived from velocity at spawn
	RotSpeed  float64   // Radians per nominal tick
	Size      float64   // AABB is Size x Size
	Damage    int
	HitPoints int // Reserved; nothing consumes it yet
	Side      SpawnSide
}

// Bounds returns the obstacle's collision box.
func (o *Obstacle) Bounds() core.RectF {
	return core.NewRectF(o.Pos.X, o.Pos.Y, o.Size, o.Size)
}

// PowerUpKind identifies what a power-up grants.
type PowerUpKind int

const (
	PowerUpShield PowerUpKind = iota
	PowerUpBoost
	PowerUpBonus
	PowerUpMultishot
	PowerUpTimeFreeze
	PowerUpMagnet
	PowerUpInvisibility
	powerUpKindCount // Sentinel for counting kinds
)

// String returns the wire/storage name of the kind.
func (k PowerUpKind) String() string {
	switch k {
	case PowerUpShield:
		return "shield"
	case PowerUpBoost:
		return "boost"
	case PowerUpBonus:
		return "bonus"
	case PowerUpMultishot:
		return "multishot"
	case PowerUpTimeFreeze:
		return "timefreeze"
	case PowerUpMagnet:
		return "magnet"
	case PowerUpInvisibility:
		return "invisibility"
	default:
		return "unknown"
	}
}

// ParsePowerUpKind maps a wire name to a kind.
func ParsePowerUpKind(name string) (PowerUpKind, bool) {
	switch name {
	case "shield":
		return PowerUpShield, true
	case "boost":
		return PowerUpBoost, true
	case "bonus":
		return PowerUpBonus, true
	case "multishot":
		return PowerUpMultishot, true
	case "timefreeze":
		return PowerUpTimeFreeze, true
	case "magnet":
		return PowerUpMagnet, true
	case "invisibility":
		return PowerUpInvisibility, true
	default:
		return PowerUpShield, false
	}
}

// Rarity scales a power-up's point value and its pull toward a magnet.
type Rarity int

const (
	RarityCommon Rarity = iota
	RarityRare
	RarityEpic
	RarityLegendary
)

// String returns the wire/storage name of the rarity.
func (r Rarity) String() string {
	switch r {
	case RarityCommon:
		return "common"
	case RarityRare:
		return "rare"
	case RarityEpic:
		return "epic"
	case RarityLegendary:
		return "legendary"
	default:
		return "unknown"
	}
}

// ParseRarity maps a wire name to a rarity.
func ParseRarity(name string) (Rarity, bool) {
	switch name {
	case "common":
		return RarityCommon, true
	case "rare":
		return RarityRare, true
	case "epic":
		return RarityEpic, true
	case "legendary":
		return RarityLegendary, true
	default:
		return RarityCommon, false
	}
}

// Multiplier returns the score multiplier for this rarity.
func (r Rarity) Multiplier() int {
	switch r {
	case RarityRare:
		return 2
	case RarityEpic:
		return 3
	case RarityLegendary:
		return 5
	default:
		return 1
	}
}

// PullFactor returns the magnet attraction intensity for this rarity.
func (r Rarity) PullFactor() float64 {
	switch r {
	case RarityRare:
		return 1.15
	case RarityEpic:
		return 1.3
	case RarityLegendary:
		return 1.5
	default:
		return 1.0
	}
}

// PowerUp is a collectible entity. Plain data, like Obstacle.
type PowerUp struct {
	ID       uint64
	Kind     PowerUpKind
	Rarity   Rarity
	Pos      core.Vec2
	Size     float64 // AABB is Size x Size
	Value    int     // Score granted on collection
	Duration float64 // Effect duration in ms granted on collection
}

// Bounds returns the power-up's collision box.
func (p *PowerUp) Bounds() core.RectF {
	return core.NewRectF(p.Pos.X, p.Pos.Y, p.Size, p.Size)
}
