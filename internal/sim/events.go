package sim

// Event is something the simulation reports back to its host from Advance.
// The marker method keeps the set closed; hosts switch on the concrete
// types.
type Event interface {
	simEvent()
}

// GameOverEvent is emitted exactly once per terminal transition, when the
// craft's health reaches zero.
type GameOverEvent struct {
	Score        int
	HighScore    int
	Distance     float64
	NewHighScore bool
}

func (GameOverEvent) simEvent() {}

// InfoEvent carries the periodic public snapshot for presentation and
// telemetry, published on a coarse tick cadence.
type InfoEvent struct {
	Info Snapshot
}

func (InfoEvent) simEvent() {}

// ActionProcessedEvent acknowledges one drained viewer action. Emitted
// exactly once per action, in drain order.
type ActionProcessedEvent struct {
	ID string
}

func (ActionProcessedEvent) simEvent() {}
