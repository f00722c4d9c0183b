// Package viewer is the boundary between external viewers and a live
// simulation. It normalizes permissive wire payloads into typed actions,
// routes them to the right session through short feed codes, and records an
// audit trail of what was injected. Unknown action types die here, at the
// host boundary; the simulation only ever sees valid variants.
package viewer

import (
	"fmt"
	"time"

	"github.com/telisar/stardrift/internal/sim"
)

// Fields is one viewer submission as it arrives off the wire. Everything
// except Type is optional; missing or unrecognized optional fields fall
// back to randomized defaults inside the simulation, per the permissive
// injection contract.
type Fields struct {
	ID        string
	Type      string
	Timestamp int64 // Unix ms; stamped at normalization when absent
	Kind      string
	Rarity    string
	X         *float64
	Y         *float64
	Size      *float64
	Speed     *float64
}

// Normalize turns wire fields into a typed ViewerAction. Only an
// unrecognized Type is an error; every optional field that fails to parse
// is dropped so the spawner substitutes a default.
func Normalize(f Fields) (sim.ViewerAction, error) {
	actionType, ok := sim.ParseActionType(f.Type)
	if !ok {
		return sim.ViewerAction{}, fmt.Errorf("viewer: unknown action type %q", f.Type)
	}

	a := sim.ViewerAction{
		ID:        f.ID,
		Type:      actionType,
		Timestamp: f.Timestamp,
	}
	if a.ID == "" {
		a.ID = newActionID()
	}
	if a.Timestamp == 0 {
		a.Timestamp = time.Now().UnixMilli()
	}

	switch actionType {
	case sim.ActionSpawnPowerUp:
		req := &sim.PowerUpRequest{X: f.X, Y: f.Y}
		if kind, ok := sim.ParsePowerUpKind(f.Kind); ok {
			req.Kind = &kind
		}
		if rarity, ok := sim.ParseRarity(f.Rarity); ok {
			req.Rarity = &rarity
		}
		a.PowerUp = req
	case sim.ActionSpawnObstacle:
		req := &sim.ObstacleRequest{X: f.X, Y: f.Y, Size: f.Size, Speed: f.Speed}
		if kind, ok := sim.ParseObstacleKind(f.Kind); ok {
			req.Kind = &kind
		}
		a.Obstacle = req
	}
	return a, nil
}

// Detail returns a short human-readable description of the submission for
// the audit log.
func (f Fields) Detail() string {
	if f.Kind == "" {
		return f.Type
	}
	return f.Type + ":" + f.Kind
}
