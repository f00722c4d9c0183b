package sim

import (
	"math/rand"
	"sync"

	"github.com/telisar/stardrift/internal/config"
	"github.com/telisar/stardrift/internal/core"
)

// Cadences and caps for the per-tick sequence.
const (
	difficultyCadence = 60 // Ticks between difficulty recomputes
	snapshotCadence   = 30 // Ticks between published snapshots

	powerUpCap = 5

	maxFrameMs = 250.0 // Clamp on a single Advance step after host stalls

	passiveScoreRate = 0.1 // Score per nominal tick per unit of gameSpeed

	// Energy is HUD-facing: boost burns it, idling recovers it, pickups
	// refill a chunk. Nothing gates on it yet.
	boostEnergyDrainPerSec = 3.0
	energyRegenPerSec      = 1.5
	collectEnergy          = 10
)

// Sim is the simulation context: it exclusively owns the craft, the entity
// collections, and the derived game state, and mutates them only inside
// Advance. The pending action queue is the single cross-goroutine boundary;
// everything else is single-threaded by contract.
type Sim struct {
	cfg    config.Config
	fieldW float64
	fieldH float64

	rng  *rand.Rand
	sp   *spawner
	diff *Difficulty

	state State
	tick  uint64

	craft     Craft
	obstacles []Obstacle
	powerUps  []PowerUp
	input     core.InputFrame

	scoreF       float64
	highScore    int
	newHighScore bool
	distance     float64
	energyAcc    float64

	sinceObstacle float64 // ms since the last obstacle burst
	sincePowerUp  float64

	queueMu   sync.Mutex
	pending   []ViewerAction
	queueSize int
}

// New creates a simulation from the config, seeded for deterministic play.
// highScore seeds the persistent best known at session start.
func New(cfg config.Config, seed int64, highScore int) *Sim {
	cfg.Normalize()
	rng := rand.New(rand.NewSource(seed))
	g := &Sim{
		cfg:       cfg,
		fieldW:    cfg.Playfield.Width,
		fieldH:    cfg.Playfield.Height,
		rng:       rng,
		sp:        newSpawner(rng, cfg.Playfield.Width, cfg.Playfield.Height),
		diff:      NewDifficulty(cfg.Difficulty),
		highScore: highScore,
		queueSize: cfg.Viewer.QueueSize,
	}
	g.resetRun()
	return g
}

// resetRun restores the per-run state. High score and the id counter
// survive across runs.
func (g *Sim) resetRun() {
	g.state = StateRunning
	g.tick = 0
	g.scoreF = 0
	g.newHighScore = false
	g.distance = 0
	g.energyAcc = 0
	g.sinceObstacle = 0
	g.sincePowerUp = 0
	g.obstacles = g.obstacles[:0]
	g.powerUps = g.powerUps[:0]
	g.diff.Reset()

	g.craft = Craft{
		Pos: core.Vec2{
			X: g.fieldW * 0.1,
			Y: (g.fieldH - g.cfg.Craft.Height) / 2,
		},
		Width:     g.cfg.Craft.Width,
		Height:    g.cfg.Craft.Height,
		Speed:     g.cfg.Craft.Speed,
		Health:    g.cfg.Craft.MaxHealth,
		MaxHealth: g.cfg.Craft.MaxHealth,
		Energy:    g.cfg.Craft.MaxEnergy,
		MaxEnergy: g.cfg.Craft.MaxEnergy,
	}
}

// Reset transitions back to Running from any state, reseeding the RNG and
// clearing every per-run collection, timer, and effect. Queued viewer
// actions are dropped so the fresh run starts clean.
func (g *Sim) Reset(seed int64) {
	g.rng = rand.New(rand.NewSource(seed))
	g.sp.rng = g.rng
	g.resetRun()

	g.queueMu.Lock()
	g.pending = nil
	g.queueMu.Unlock()
}

// SetInput stores the keys-down set consumed by the next Advance. Safe to
// call between frames; the frame is copied.
func (g *Sim) SetInput(frame core.InputFrame) {
	g.input = frame.Clone()
}

// InjectAction queues one viewer action for the next Advance. Safe to call
// from any goroutine. The queue is bounded; on overflow the oldest pending
// action is dropped.
func (g *Sim) InjectAction(a ViewerAction) {
	g.queueMu.Lock()
	defer g.queueMu.Unlock()
	if len(g.pending) >= g.queueSize {
		copy(g.pending, g.pending[1:])
		g.pending = g.pending[:len(g.pending)-1]
	}
	g.pending = append(g.pending, a)
}

// Advance runs one tick and returns the events it produced. dtMs is wall
// time since the previous call; oversized steps are clamped so a stalled
// host cannot teleport entities. While GameOver only time, shake decay, and
// snapshots advance; the world stays still until Reset.
func (g *Sim) Advance(dtMs float64) []Event {
	if dtMs <= 0 {
		return nil
	}
	if dtMs > maxFrameMs {
		dtMs = maxFrameMs
	}
	dtFactor := dtMs / nominalTickMs
	g.tick++

	var events []Event
	if g.state == StateGameOver {
		g.decayShake(dtFactor)
		if g.tick%snapshotCadence == 0 {
			events = append(events, InfoEvent{Info: g.Snapshot()})
		}
		return events
	}

	events = g.drainActions(events)
	tickEffects(&g.craft, dtMs)
	g.tickEnergy(dtMs)
	g.advanceMotion(dtFactor)
	g.maybeSpawn(dtMs)

	p := g.diff.Params()
	g.addScore(passiveScoreRate * p.GameSpeed * dtFactor)
	g.distance += p.GameSpeed * dtFactor

	if g.resolveCollisions() {
		g.state = StateGameOver
		events = append(events, GameOverEvent{
			Score:        g.Score(),
			HighScore:    g.highScore,
			Distance:     g.distance,
			NewHighScore: g.newHighScore,
		})
	}

	if g.tick%difficultyCadence == 0 {
		g.diff.Recompute(g.Score())
	}
	if g.tick%snapshotCadence == 0 {
		events = append(events, InfoEvent{Info: g.Snapshot()})
	}
	return events
}

// drainActions consumes every pending viewer action exactly once, in
// submission order, acknowledging each with an ActionProcessedEvent.
// Injected spawns bypass the spawn-interval gate and the population caps;
// the caps only pace the simulation's own spawning.
func (g *Sim) drainActions(events []Event) []Event {
	g.queueMu.Lock()
	batch := g.pending
	g.pending = nil
	g.queueMu.Unlock()

	p := g.diff.Params()
	for _, a := range batch {
		switch a.Type {
		case ActionSpawnPowerUp:
			var req PowerUpRequest
			if a.PowerUp != nil {
				req = *a.PowerUp
			}
			g.powerUps = append(g.powerUps, g.sp.makePowerUp(p, req))
		case ActionSpawnObstacle:
			var req ObstacleRequest
			if a.Obstacle != nil {
				req = *a.Obstacle
			}
			g.obstacles = append(g.obstacles, g.sp.makeObstacle(p, req, 0))
		case ActionBoost:
			applyEffect(&g.craft, PowerUpBoost)
		}
		events = append(events, ActionProcessedEvent{ID: a.ID})
	}
	return events
}

// maybeSpawn runs the interval-and-cap gated periodic spawns.
func (g *Sim) maybeSpawn(dtMs float64) {
	g.sinceObstacle += dtMs
	g.sincePowerUp += dtMs

	p := g.diff.Params()
	if g.sinceObstacle >= p.ObstacleSpawnInterval && len(g.obstacles) < obstacleCap(p.Level) {
		g.obstacles = append(g.obstacles, g.sp.spawnObstacleBurst(p)...)
		g.sinceObstacle = 0
	}
	if g.sincePowerUp >= p.PowerUpSpawnInterval && len(g.powerUps) < powerUpCap {
		g.powerUps = append(g.powerUps, g.sp.spawnPowerUp(p))
		g.sincePowerUp = 0
	}
}

// obstacleCap bounds the live obstacle count, which in turn bounds the
// O(n²) separation pass.
func obstacleCap(level float64) int {
	n := 20 + int(3*level)
	if n > 35 {
		return 35
	}
	return n
}

// addScore accrues points and maintains the high score. The new-high-score
// flag latches the first time the score passes the best known before this
// run; comparing before updating is what makes the flag reachable.
func (g *Sim) addScore(points float64) {
	g.scoreF += points
	if s := int(g.scoreF); s > g.highScore {
		g.newHighScore = true
		g.highScore = s
	}
}

// tickEnergy applies the boost drain or idle regen, carrying fractional
// amounts across ticks.
func (g *Sim) tickEnergy(dtMs float64) {
	if g.craft.Boost {
		g.energyAcc -= boostEnergyDrainPerSec * dtMs / 1000
	} else {
		g.energyAcc += energyRegenPerSec * dtMs / 1000
	}
	for g.energyAcc >= 1 {
		g.craft.restoreEnergy(1)
		g.energyAcc--
	}
	for g.energyAcc <= -1 {
		g.craft.drainEnergy(1)
		g.energyAcc++
	}
}

// State returns the current lifecycle state.
func (g *Sim) State() State {
	return g.state
}

// Score returns the integer score.
func (g *Sim) Score() int {
	return int(g.scoreF)
}

// HighScore returns the best score known to this session.
func (g *Sim) HighScore() int {
	return g.highScore
}

// Distance returns how far the craft has traveled this run, in world units.
func (g *Sim) Distance() float64 {
	return g.distance
}

// Params returns the current difficulty tunables.
func (g *Sim) Params() Params {
	return g.diff.Params()
}

// Playfield returns the world dimensions.
func (g *Sim) Playfield() (w, h float64) {
	return g.fieldW, g.fieldH
}

// Entities returns copies of the craft and the live entity collections for
// rendering. Mutating the returned slices does not affect the simulation.
func (g *Sim) Entities() (Craft, []Obstacle, []PowerUp) {
	obstacles := make([]Obstacle, len(g.obstacles))
	copy(obstacles, g.obstacles)
	powerUps := make([]PowerUp, len(g.powerUps))
	copy(powerUps, g.powerUps)
	return g.craft, obstacles, powerUps
}
