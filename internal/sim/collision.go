package sim

// impactShake is the shake amplitude set when an obstacle hits the craft.
const impactShake = 8.0

// resolveCollisions tests the craft against every obstacle and power-up and
// applies the consequences. Returns true when the craft was destroyed this
// pass.
func (g *Sim) resolveCollisions() bool {
	destroyed := g.resolveObstacleHits()
	g.collectPowerUps()
	return destroyed
}

// resolveObstacleHits applies contact damage. Shield and invisibility are
// full immunity: the entire pass is skipped, and the effect timers are
// untouched by the contact itself. Obstacles are not removed on impact, so
// staying in contact re-applies damage every tick; dodging away is the
// player's only defense once immunity runs out.
func (g *Sim) resolveObstacleHits() bool {
	if g.craft.Shield || g.craft.Invisible {
		return false
	}
	box := g.craft.Bounds()
	destroyed := false
	for i := range g.obstacles {
		o := &g.obstacles[i]
		if !box.Intersects(o.Bounds()) {
			continue
		}
		g.craft.ShakeAmp = impactShake
		if g.craft.damage(o.Damage) {
			destroyed = true
		}
	}
	return destroyed
}

// collectPowerUps picks up every power-up overlapping the craft. There is
// no immunity check on collection. Iteration is reverse-index so removal
// during the pass cannot skip or double-visit an entry; each power-up is
// collected exactly once.
func (g *Sim) collectPowerUps() {
	box := g.craft.Bounds()
	for i := len(g.powerUps) - 1; i >= 0; i-- {
		p := g.powerUps[i]
		if !box.Intersects(p.Bounds()) {
			continue
		}
		g.addScore(float64(p.Value))
		applyEffect(&g.craft, p.Kind)
		g.craft.restoreEnergy(collectEnergy)
		g.powerUps = append(g.powerUps[:i], g.powerUps[i+1:]...)
	}
}
