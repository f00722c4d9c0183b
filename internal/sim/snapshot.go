package sim

// State is the simulation lifecycle state.
type State int

const (
	StateRunning State = iota
	StateGameOver
)

// String returns a human-readable name for the state.
func (s State) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StateGameOver:
		return "game over"
	default:
		return "unknown"
	}
}

// EffectStatus reports one status effect: whether it is active and how many
// ms remain. The boolean is true iff Remaining > 0.
type EffectStatus struct {
	Active    bool
	Remaining float64
}

// Snapshot is an immutable copy of the public game info, published every
// snapshot cadence and available on demand via Snapshot(). It carries no
// references into live simulation state.
type Snapshot struct {
	State State
	Tick  uint64

	Score        int
	HighScore    int
	NewHighScore bool
	Distance     float64

	Level         float64
	LevelProgress float64 // Percent toward the next integer level

	Health    int
	MaxHealth int
	Energy    int
	MaxEnergy int

	Shield       EffectStatus
	Boost        EffectStatus
	Invisibility EffectStatus
	Multishot    EffectStatus
	Magnet       EffectStatus
	TimeFreeze   EffectStatus

	ObstacleCount int
	PowerUpCount  int
}

// Snapshot builds the current public snapshot.
func (g *Sim) Snapshot() Snapshot {
	p := g.diff.Params()
	return Snapshot{
		State:         g.state,
		Tick:          g.tick,
		Score:         g.Score(),
		HighScore:     g.highScore,
		NewHighScore:  g.newHighScore,
		Distance:      g.distance,
		Level:         p.Level,
		LevelProgress: LevelProgress(g.Score(), p.Level),
		Health:        g.craft.Health,
		MaxHealth:     g.craft.MaxHealth,
		Energy:        g.craft.Energy,
		MaxEnergy:     g.craft.MaxEnergy,
		Shield:        EffectStatus{Active: g.craft.Shield, Remaining: g.craft.ShieldTime},
		Boost:         EffectStatus{Active: g.craft.Boost, Remaining: g.craft.BoostTime},
		Invisibility:  EffectStatus{Active: g.craft.Invisible, Remaining: g.craft.InvisibleTime},
		Multishot:     EffectStatus{Active: g.craft.Multishot, Remaining: g.craft.MultishotTime},
		Magnet:        EffectStatus{Active: g.craft.Magnet, Remaining: g.craft.MagnetTime},
		TimeFreeze:    EffectStatus{Active: g.craft.TimeFreeze, Remaining: g.craft.TimeFreezeTime},
		ObstacleCount: len(g.obstacles),
		PowerUpCount:  len(g.powerUps),
	}
}
