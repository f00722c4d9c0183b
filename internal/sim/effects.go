package sim

// Fixed effect durations in ms. Collecting boost or shield extends the
// running timer; every other effect refreshes to its full duration.
const (
	shieldDuration     = 5000.0
	boostDuration      = 5000.0
	invisibleDuration  = 4000.0
	multishotDuration  = 6000.0
	magnetDuration     = 8000.0
	timeFreezeDuration = 5000.0

	magnetRange = 80.0
)

// effectDuration returns the duration granted by collecting the given kind.
// Bonus grants score only, no timer.
func effectDuration(kind PowerUpKind) float64 {
	switch kind {
	case PowerUpShield:
		return shieldDuration
	case PowerUpBoost:
		return boostDuration
	case PowerUpInvisibility:
		return invisibleDuration
	case PowerUpMultishot:
		return multishotDuration
	case PowerUpMagnet:
		return magnetDuration
	case PowerUpTimeFreeze:
		return timeFreezeDuration
	default:
		return 0
	}
}

// applyEffect activates the effect a power-up kind grants. Shield and boost
// stack by extending the remaining time; the rest refresh to full.
func applyEffect(c *Craft, kind PowerUpKind) {
	switch kind {
	case PowerUpShield:
		c.ShieldTime += shieldDuration
		c.Shield = true
	case PowerUpBoost:
		c.BoostTime += boostDuration
		c.Boost = true
	case PowerUpInvisibility:
		c.InvisibleTime = invisibleDuration
		c.Invisible = true
	case PowerUpMultishot:
		c.MultishotTime = multishotDuration
		c.Multishot = true
	case PowerUpMagnet:
		c.MagnetTime = magnetDuration
		c.MagnetRange = magnetRange
		c.Magnet = true
	case PowerUpTimeFreeze:
		c.TimeFreezeTime = timeFreezeDuration
		c.TimeFreeze = true
	}
}

// tickEffects advances every effect timer by dtMs, clamping at zero and
// keeping each boolean consistent with its remaining time.
func tickEffects(c *Craft, dtMs float64) {
	c.ShieldTime = tickTimer(c.ShieldTime, dtMs)
	c.Shield = c.ShieldTime > 0

	c.BoostTime = tickTimer(c.BoostTime, dtMs)
	c.Boost = c.BoostTime > 0

	c.InvisibleTime = tickTimer(c.InvisibleTime, dtMs)
	c.Invisible = c.InvisibleTime > 0

	c.MultishotTime = tickTimer(c.MultishotTime, dtMs)
	c.Multishot = c.MultishotTime > 0

	c.MagnetTime = tickTimer(c.MagnetTime, dtMs)
	c.Magnet = c.MagnetTime > 0
	if !c.Magnet {
		c.MagnetRange = 0
	}

	c.TimeFreezeTime = tickTimer(c.TimeFreezeTime, dtMs)
	c.TimeFreeze = c.TimeFreezeTime > 0
}

// clearEffects drops every effect and timer, used on reset.
func clearEffects(c *Craft) {
	c.Shield, c.ShieldTime = false, 0
	c.Boost, c.BoostTime = false, 0
	c.Invisible, c.InvisibleTime = false, 0
	c.Multishot, c.MultishotTime = false, 0
	c.Magnet, c.MagnetTime, c.MagnetRange = false, 0, 0
	c.TimeFreeze, c.TimeFreezeTime = false, 0
}

func tickTimer(remaining, dtMs float64) float64 {
	remaining -= dtMs
	if remaining < 0 {
		return 0
	}
	return remaining
}
