package sim

import (
	"math/rand"

	"github.com/telisar/stardrift/internal/core"
)

// Spawn tuning. Sizes and damage are per kind; everything level-dependent
// comes in through Params.
const (
	damageNormal = 10
	damageEnemy  = 20

	powerUpSize = 16.0

	burstSpacing   = 48.0 // World units between burst members along the edge
	lateralJitter  = 0.3  // Fraction of speed bled into the lateral axis
	minSpawnSize   = 6.0
	maxSpawnSize   = 80.0
	minSpawnSpeed  = 0.5
	maxSpawnSpeed  = 40.0
	rotSpeedSpread = 0.15 // Max radians per tick either way
)

// spawner creates obstacles and power-ups, randomized or from injected
// requests. It owns the entity id counter so spawned and injected entities
// share one id space.
type spawner struct {
	rng    *rand.Rand
	fieldW float64
	fieldH float64
	nextID uint64
}

func newSpawner(rng *rand.Rand, fieldW, fieldH float64) *spawner {
	return &spawner{rng: rng, fieldW: fieldW, fieldH: fieldH}
}

func (sp *spawner) id() uint64 {
	sp.nextID++
	return sp.nextID
}

// burstCountForLevel is the number of obstacles spawned per burst.
func burstCountForLevel(level float64) int {
	switch {
	case level < 2:
		return 1
	case level < 5:
		return 2
	case level < 8:
		return 3
	case level < 12:
		return 4
	default:
		return 5
	}
}

// obstacleKindPool returns the kinds available at the given level. The base
// set widens past level 3.
func obstacleKindPool(level float64) []ObstacleKind {
	pool := []ObstacleKind{ObstacleAsteroid, ObstacleDebris, ObstacleEnemy}
	if level > 3 {
		pool = append(pool, ObstacleMeteor, ObstacleBlackhole, ObstacleLaser)
	}
	return pool
}

// powerUpKindPool returns the kinds available at the given level.
func powerUpKindPool(level float64) []PowerUpKind {
	pool := []PowerUpKind{PowerUpShield, PowerUpBoost, PowerUpBonus}
	if level > 3 {
		pool = append(pool, PowerUpMultishot, PowerUpTimeFreeze, PowerUpMagnet, PowerUpInvisibility)
	}
	return pool
}

// sidePool returns the edges obstacles may enter from. The bottom edge
// only opens above level 2.
func sidePool(level float64) []SpawnSide {
	pool := []SpawnSide{SideLeft, SideRight, SideTop}
	if level > 2 {
		pool = append(pool, SideBottom)
	}
	return pool
}

// rarityForRoll maps a uniform roll in [0,1) through the cascading rarity
// thresholds, scaled by the rarity bias knob.
func rarityForRoll(roll, bias float64) Rarity {
	switch {
	case roll < 0.10*bias:
		return RarityLegendary
	case roll < 0.30*bias:
		return RarityEpic
	case roll < 0.60*bias:
		return RarityRare
	default:
		return RarityCommon
	}
}

// powerUpValue computes the score granted on collection. Bonus pickups use
// a doubled base on top of their already higher one.
func powerUpValue(kind PowerUpKind, level float64, rarity Rarity) int {
	base := 5
	if kind == PowerUpBonus {
		base = 10
		base *= 2
	}
	return base * int(level) * rarity.Multiplier()
}

func damageForKind(kind ObstacleKind) int {
	if kind == ObstacleEnemy {
		return damageEnemy
	}
	return damageNormal
}

func baseSizeForKind(kind ObstacleKind) float64 {
	switch kind {
	case ObstacleAsteroid:
		return 28
	case ObstacleDebris:
		return 14
	case ObstacleEnemy:
		return 24
	case ObstacleMeteor:
		return 18
	case ObstacleBlackhole:
		return 36
	case ObstacleLaser:
		return 30
	default:
		return 20
	}
}

// spawnObstacleBurst creates a level-sized burst. Each member picks its own
// edge and is offset along that edge proportionally to its index so burst
// members never stack on one spot.
func (sp *spawner) spawnObstacleBurst(p Params) []Obstacle {
	count := burstCountForLevel(p.Level)
	burst := make([]Obstacle, 0, count)
	for i := 0; i < count; i++ {
		burst = append(burst, sp.makeObstacle(p, ObstacleRequest{}, i))
	}
	return burst
}

// makeObstacle materializes an obstacle from a request, substituting
// randomized defaults for missing or out-of-range fields. burstIdx shifts
// the spawn position along the edge; pass 0 for injected singles.
func (sp *spawner) makeObstacle(p Params, req ObstacleRequest, burstIdx int) Obstacle {
	kind := sp.pickObstacleKind(p, req.Kind)

	size := baseSizeForKind(kind) * p.ObstacleSizeMultiplier * (0.85 + 0.3*sp.rng.Float64())
	if req.Size != nil {
		size = core.ClampF(*req.Size, minSpawnSize, maxSpawnSize)
	}

	sides := sidePool(p.Level)
	side := sides[sp.rng.Intn(len(sides))]
	pos := sp.edgePosition(side, size, burstIdx)
	if req.X != nil {
		pos.X = core.ClampF(*req.X, -exitMargin+1, sp.fieldW+exitMargin-1)
	}
	if req.Y != nil {
		pos.Y = core.ClampF(*req.Y, -exitMargin+1, sp.fieldH+exitMargin-1)
	}

	speed := (0.8 + 0.4*sp.rng.Float64()) * p.GameSpeed * p.ObstacleSpeedMultiplier
	if req.Speed != nil {
		speed = core.ClampF(*req.Speed, minSpawnSpeed, maxSpawnSpeed)
	}
	vel := sp.inwardVelocity(side, speed)

	return Obstacle{
		ID:        sp.id(),
		Kind:      kind,
		Pos:       pos,
		Vel:       vel,
		Rotation:  vel.Angle(),
		RotSpeed:  (sp.rng.Float64()*2 - 1) * rotSpeedSpread,
		Size:      size,
		Damage:    damageForKind(kind),
		HitPoints: 1,
		Side:      side,
	}
}

func (sp *spawner) pickObstacleKind(p Params, requested *ObstacleKind) ObstacleKind {
	if requested != nil && *requested >= 0 && *requested < obstacleKindCount {
		return *requested
	}
	pool := obstacleKindPool(p.Level)
	return pool[sp.rng.Intn(len(pool))]
}

// edgePosition places an entity just outside the chosen edge, randomized
// along it, with the burst index offset folded back into the edge length.
func (sp *spawner) edgePosition(side SpawnSide, size float64, burstIdx int) core.Vec2 {
	offset := float64(burstIdx) * burstSpacing
	switch side {
	case SideLeft:
		y := sp.alongEdge(sp.fieldH, size, offset)
		return core.Vec2{X: -size, Y: y}
	case SideRight:
		y := sp.alongEdge(sp.fieldH, size, offset)
		return core.Vec2{X: sp.fieldW, Y: y}
	case SideTop:
		x := sp.alongEdge(sp.fieldW, size, offset)
		return core.Vec2{X: x, Y: -size}
	default: // SideBottom
		x := sp.alongEdge(sp.fieldW, size, offset)
		return core.Vec2{X: x, Y: sp.fieldH}
	}
}

func (sp *spawner) alongEdge(edgeLen, size, offset float64) float64 {
	span := edgeLen - size
	if span <= 0 {
		return 0
	}
	pos := sp.rng.Float64()*span + offset
	for pos > span {
		pos -= span
	}
	return pos
}

// inwardVelocity points the velocity away from the spawn edge with a small
// lateral jitter component.
func (sp *spawner) inwardVelocity(side SpawnSide, speed float64) core.Vec2 {
	jitter := (sp.rng.Float64()*2 - 1) * lateralJitter * speed
	switch side {
	case SideLeft:
		return core.Vec2{X: speed, Y: jitter}
	case SideRight:
		return core.Vec2{X: -speed, Y: jitter}
	case SideTop:
		return core.Vec2{X: jitter, Y: speed}
	default: // SideBottom
		return core.Vec2{X: jitter, Y: -speed}
	}
}

// spawnPowerUp creates a randomized power-up at the right edge; they drift
// left toward the craft's side of the field.
func (sp *spawner) spawnPowerUp(p Params) PowerUp {
	return sp.makePowerUp(p, PowerUpRequest{})
}

// makePowerUp materializes a power-up from a request with the same
// permissive defaulting as makeObstacle.
func (sp *spawner) makePowerUp(p Params, req PowerUpRequest) PowerUp {
	kind := sp.pickPowerUpKind(p, req.Kind)

	rarity := rarityForRoll(sp.rng.Float64(), p.PowerUpRarityBias)
	if req.Rarity != nil && *req.Rarity >= RarityCommon && *req.Rarity <= RarityLegendary {
		rarity = *req.Rarity
	}

	pos := core.Vec2{
		X: sp.fieldW,
		Y: sp.rng.Float64() * (sp.fieldH - powerUpSize),
	}
	if req.X != nil {
		pos.X = core.ClampF(*req.X, 0, sp.fieldW+exitMargin-1)
	}
	if req.Y != nil {
		pos.Y = core.ClampF(*req.Y, 0, sp.fieldH-powerUpSize)
	}

	return PowerUp{
		ID:       sp.id(),
		Kind:     kind,
		Rarity:   rarity,
		Pos:      pos,
		Size:     powerUpSize,
		Value:    powerUpValue(kind, p.Level, rarity),
		Duration: effectDuration(kind),
	}
}

func (sp *spawner) pickPowerUpKind(p Params, requested *PowerUpKind) PowerUpKind {
	if requested != nil && *requested >= 0 && *requested < powerUpKindCount {
		return *requested
	}
	pool := powerUpKindPool(p.Level)
	return pool[sp.rng.Intn(len(pool))]
}
