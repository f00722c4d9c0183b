package viewer

import (
	"testing"

	"github.com/telisar/stardrift/internal/sim"
)

func TestNormalizePowerUp(t *testing.T) {
	x := 500.0
	a, err := Normalize(Fields{ID: "v1", Type: "powerup", Timestamp: 99, Kind: "magnet", Rarity: "epic", X: &x})
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}
	if a.ID != "v1" || a.Timestamp != 99 {
		t.Errorf("identity fields mangled: %+v", a)
	}
	if a.Type != sim.ActionSpawnPowerUp || a.PowerUp == nil || a.Obstacle != nil {
		t.Fatalf("wrong variant: %+v", a)
	}
	if a.PowerUp.Kind == nil || *a.PowerUp.Kind != sim.PowerUpMagnet {
		t.Error("kind not parsed")
	}
	if a.PowerUp.Rarity == nil || *a.PowerUp.Rarity != sim.RarityEpic {
		t.Error("rarity not parsed")
	}
	if a.PowerUp.X == nil || *a.PowerUp.X != 500 {
		t.Error("position not carried")
	}
	if a.PowerUp.Y != nil {
		t.Error("absent Y should stay nil for default substitution")
	}
}

func TestNormalizeObstacle(t *testing.T) {
	size := 30.0
	a, err := Normalize(Fields{Type: "obstacle", Kind: "laser", Size: &size})
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}
	if a.Type != sim.ActionSpawnObstacle || a.Obstacle == nil {
		t.Fatalf("wrong variant: %+v", a)
	}
	if a.Obstacle.Kind == nil || *a.Obstacle.Kind != sim.ObstacleLaser {
		t.Error("kind not parsed")
	}
	if a.Obstacle.Size == nil || *a.Obstacle.Size != 30 {
		t.Error("size not carried")
	}
}

func TestNormalizeStampsMissingIdentity(t *testing.T) {
	a, err := Normalize(Fields{Type: "boost"})
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}
	if a.ID == "" {
		t.Error("missing id not stamped")
	}
	if a.Timestamp == 0 {
		t.Error("missing timestamp not stamped")
	}
	if a.PowerUp != nil || a.Obstacle != nil {
		t.Error("boost carries no payload")
	}
}

func TestNormalizeUnknownKindFallsBack(t *testing.T) {
	// A bad optional field is dropped, never an error: the spawner
	// substitutes a random default downstream.
	a, err := Normalize(Fields{Type: "powerup", Kind: "unobtainium", Rarity: "mythic"})
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}
	if a.PowerUp.Kind != nil || a.PowerUp.Rarity != nil {
		t.Errorf("unparseable fields should stay nil: %+v", a.PowerUp)
	}
}

func TestNormalizeUnknownTypeRejected(t *testing.T) {
	if _, err := Normalize(Fields{Type: "nuke"}); err == nil {
		t.Error("expected error for unknown type")
	}
	if _, err := Normalize(Fields{}); err == nil {
		t.Error("expected error for empty type")
	}
}
