package sim

import (
	"math"

	"github.com/telisar/stardrift/internal/core"
)

// Motion tuning. Velocities are stored in world units per nominal tick;
// dtFactor rescales them when the host ticks at a different rate.
const (
	nominalTickMs = 1000.0 / 60.0

	obstacleDamping = 0.7 // Fraction of stored velocity applied per tick
	freezeFactor    = 0.3 // Extra slow applied on top of damping while frozen

	separationRadius   = 30.0 // Obstacle pairs closer than this repel
	separationStrength = 6.0  // Nudge magnitude at distance 1

	exitMargin = 100.0 // World units past the playfield before removal

	powerUpDriftFactor = 2.0 // Leftward drift in gameSpeed multiples
	powerUpFrozenDrift = 0.5 // Flat drift per nominal tick while frozen
	magnetPullStep     = 4.0 // Attraction per nominal tick at common rarity

	boostSpeedFactor = 2.0

	shakeDecay = 0.9
	shakeSnap  = 0.1
)

// advanceMotion runs one motion pass: obstacles (damped, separated,
// culled), power-ups (drift or magnet pull, culled), then the craft.
func (g *Sim) advanceMotion(dtFactor float64) {
	g.moveObstacles(dtFactor)
	g.separateObstacles(dtFactor)
	g.cullObstacles()
	g.movePowerUps(dtFactor)
	g.moveCraft(dtFactor)
	g.decayShake(dtFactor)
}

// moveObstacles advances positions at the damped rate. Time-freeze is a
// multiplicative slow on top of the damping, not a full stop.
func (g *Sim) moveObstacles(dtFactor float64) {
	rate := obstacleDamping * dtFactor
	if g.craft.TimeFreeze {
		rate *= freezeFactor
	}
	for i := range g.obstacles {
		o := &g.obstacles[i]
		o.Pos = o.Pos.Add(o.Vel.Scale(rate))
		o.Rotation += o.RotSpeed * rate / obstacleDamping
	}
}

// separateObstacles applies a pairwise repulsive velocity nudge to pairs
// closer than separationRadius, proportional to 1/distance. O(n²) but the
// obstacle cap keeps n at 35 or fewer.
func (g *Sim) separateObstacles(dtFactor float64) {
	for i := 0; i < len(g.obstacles); i++ {
		for j := i + 1; j < len(g.obstacles); j++ {
			a, b := &g.obstacles[i], &g.obstacles[j]
			delta := a.Pos.Sub(b.Pos)
			dist := delta.Len()
			if dist <= 0 || dist >= separationRadius {
				continue
			}
			push := delta.Normalize().Scale(separationStrength / dist * dtFactor)
			a.Vel = a.Vel.Add(push)
			b.Vel = b.Vel.Sub(push)
		}
	}
}

// cullObstacles removes obstacles more than exitMargin outside the
// playfield, compacting the slice in place to keep iteration order stable.
func (g *Sim) cullObstacles() {
	n := 0
	for i := range g.obstacles {
		o := &g.obstacles[i]
		if o.Pos.X+o.Size < -exitMargin || o.Pos.X > g.fieldW+exitMargin ||
			o.Pos.Y+o.Size < -exitMargin || o.Pos.Y > g.fieldH+exitMargin {
			continue
		}
		g.obstacles[n] = g.obstacles[i]
		n++
	}
	g.obstacles = g.obstacles[:n]
}

// movePowerUps drifts power-ups leftward, or pulls them toward the craft
// when the magnet covers them. Ones past the left edge are removed.
func (g *Sim) movePowerUps(dtFactor float64) {
	craftCenter := g.craft.Center()
	drift := powerUpDriftFactor * g.diff.Params().GameSpeed * dtFactor
	if g.craft.TimeFreeze {
		drift = powerUpFrozenDrift * dtFactor
	}

	n := 0
	for i := range g.powerUps {
		p := &g.powerUps[i]
		pull := core.Vec2{}
		if g.craft.Magnet {
			toCraft := craftCenter.Sub(p.Bounds().Center())
			if d := toCraft.Len(); d > 0 && d <= g.craft.MagnetRange {
				pull = toCraft.Normalize().Scale(magnetPullStep * p.Rarity.PullFactor() * dtFactor)
			}
		}
		if pull.X != 0 || pull.Y != 0 {
			p.Pos = p.Pos.Add(pull)
		} else {
			p.Pos.X -= drift
		}
		if p.Pos.X+p.Size < 0 {
			continue
		}
		g.powerUps[n] = g.powerUps[i]
		n++
	}
	g.powerUps = g.powerUps[:n]
}

// moveCraft applies held directional input at the craft's per-axis speed,
// doubled under boost, and clamps the result to the playfield.
func (g *Sim) moveCraft(dtFactor float64) {
	step := g.craft.Speed * dtFactor
	if g.craft.Boost {
		step *= boostSpeedFactor
	}
	if g.input.Has(core.ActionUp) {
		g.craft.Pos.Y -= step
	}
	if g.input.Has(core.ActionDown) {
		g.craft.Pos.Y += step
	}
	if g.input.Has(core.ActionLeft) {
		g.craft.Pos.X -= step
	}
	if g.input.Has(core.ActionRight) {
		g.craft.Pos.X += step
	}
	g.craft.Pos.X = core.ClampF(g.craft.Pos.X, 0, g.fieldW-g.craft.Width)
	g.craft.Pos.Y = core.ClampF(g.craft.Pos.Y, 0, g.fieldH-g.craft.Height)
}

// decayShake shrinks the shake amplitude exponentially, snapping to zero
// below the threshold, and resamples the presentation offsets. The
// collision box always uses the true position; the offsets never feed back
// into physics.
func (g *Sim) decayShake(dtFactor float64) {
	g.craft.ShakeAmp *= math.Pow(shakeDecay, dtFactor)
	if g.craft.ShakeAmp < shakeSnap {
		g.craft.ShakeAmp = 0
		g.craft.ShakeX, g.craft.ShakeY = 0, 0
		return
	}
	g.craft.ShakeX = (g.rng.Float64()*2 - 1) * g.craft.ShakeAmp
	g.craft.ShakeY = (g.rng.Float64()*2 - 1) * g.craft.ShakeAmp
}
