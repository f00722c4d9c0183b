package sim

// ActionType discriminates a ViewerAction. The boundary layer is
// responsible for rejecting unknown types; the simulation only ever sees
// the three valid variants.
type ActionType int

const (
	ActionSpawnPowerUp ActionType = iota
	ActionSpawnObstacle
	ActionBoost
)

// String returns the wire name of the action type.
func (t ActionType) String() string {
	switch t {
	case ActionSpawnPowerUp:
		return "powerup"
	case ActionSpawnObstacle:
		return "obstacle"
	case ActionBoost:
		return "boost"
	default:
		return "unknown"
	}
}

// ParseActionType maps a wire name to an action type.
func ParseActionType(name string) (ActionType, bool) {
	switch name {
	case "powerup":
		return ActionSpawnPowerUp, true
	case "obstacle":
		return ActionSpawnObstacle, true
	case "boost":
		return ActionBoost, true
	default:
		return ActionBoost, false
	}
}

// PowerUpRequest carries externally supplied power-up parameters. Every
// field is optional; nil or out-of-range fields fall back to randomized
// defaults when the spawner materializes the request. Requests are never
// rejected.
type PowerUpRequest struct {
	Kind   *PowerUpKind
	Rarity *Rarity
	X      *float64
	Y      *float64
}

// ObstacleRequest carries externally supplied obstacle parameters, with the
// same permissive defaulting as PowerUpRequest.
type ObstacleRequest struct {
	Kind  *ObstacleKind
	X     *float64
	Y     *float64
	Size  *float64
	Speed *float64
}

// ViewerAction is one externally injected event, discriminated by Type.
// Exactly one of the variant payloads is set, matching Type; the Boost
// variant carries no payload. Each action is consumed at most once and
// acknowledged with an ActionProcessedEvent carrying its ID.
type ViewerAction struct {
	ID        string
	Type      ActionType
	Timestamp int64 // Unix ms at submission, informational only

	PowerUp  *PowerUpRequest  // Set iff Type == ActionSpawnPowerUp
	Obstacle *ObstacleRequest // Set iff Type == ActionSpawnObstacle
}
