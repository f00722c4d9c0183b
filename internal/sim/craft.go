package sim

import "github.com/telisar/stardrift/internal/core"

// Craft is the player-controlled entity. A single instance is owned
// exclusively by the simulation; hosts read copies via Entities().
// Each status effect is a boolean plus its remaining duration in ms; the
// effect tracker keeps the pair consistent (flag true iff remaining > 0).
type Craft struct {
	Pos    core.Vec2
	Width  float64
	Height float64
	Speed  float64 // World units per nominal tick per held direction

	Health    int
	MaxHealth int
	Energy    int
	MaxEnergy int

	Shield     bool
	ShieldTime float64

	Boost     bool
	BoostTime float64

	Invisible      bool
	InvisibleTime  float64
	Multishot      bool
	MultishotTime  float64
	Magnet         bool
	MagnetTime     float64
	MagnetRange    float64
	TimeFreeze     bool
	TimeFreezeTime float64

	// Screen shake: amplitude decays every tick, the offsets are resampled
	// from it for presentation. The collision box uses Pos, never the offsets.
	ShakeAmp float64
	ShakeX   float64
	ShakeY   float64
}

// Bounds returns the craft's collision box.
func (c *Craft) Bounds() core.RectF {
	return core.NewRectF(c.Pos.X, c.Pos.Y, c.Width, c.Height)
}

// Center returns the craft's center point.
func (c *Craft) Center() core.Vec2 {
	return core.Vec2{X: c.Pos.X + c.Width/2, Y: c.Pos.Y + c.Height/2}
}

// damage applies dmg to health, clamping at 0. Returns true when the craft
// is destroyed by this hit.
func (c *Craft) damage(dmg int) bool {
	c.Health -= dmg
	if c.Health < 0 {
		c.Health = 0
	}
	return c.Health <= 0
}

// heal raises health, clamping at MaxHealth.
func (c *Craft) heal(amount int) {
	c.Health += amount
	if c.Health > c.MaxHealth {
		c.Health = c.MaxHealth
	}
}

// restoreEnergy raises energy, clamping at MaxEnergy.
func (c *Craft) restoreEnergy(amount int) {
	c.Energy += amount
	if c.Energy > c.MaxEnergy {
		c.Energy = c.MaxEnergy
	}
}

// drainEnergy lowers energy, clamping at 0.
func (c *Craft) drainEnergy(amount int) {
	c.Energy -= amount
	if c.Energy < 0 {
		c.Energy = 0
	}
}
