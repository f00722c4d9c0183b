package sim

import (
	"fmt"
	"math"
	"reflect"
	"testing"

	"github.com/telisar/stardrift/internal/config"
	"github.com/telisar/stardrift/internal/core"
)

func TestAdvanceIgnoresNonPositiveDt(t *testing.T) {
	g := newTestSim(1)
	if events := g.Advance(0); events != nil {
		t.Errorf("Advance(0) produced events: %v", events)
	}
	if g.tick != 0 {
		t.Error("Advance(0) advanced the tick")
	}
}

func TestAdvanceClampsOversizedSteps(t *testing.T) {
	g := newTestSim(1)
	g.Advance(10000)
	// A stalled host gets at most maxFrameMs of simulated time.
	want := g.diff.Params().GameSpeed * maxFrameMs / nominalTickMs
	if math.Abs(g.Distance()-want) > 1e-9 {
		t.Errorf("distance = %v, expected clamp to %v", g.Distance(), want)
	}
}

func TestPassiveScoreAndDistance(t *testing.T) {
	g := newTestSim(1)
	for i := 0; i < 60; i++ {
		g.Advance(nominalTickMs)
	}
	// 0.1 * gameSpeed(level 1) = 0.32 per tick.
	if g.Score() != 19 {
		t.Errorf("score after 60 ticks = %d, expected 19", g.Score())
	}
	if math.Abs(g.Distance()-192) > 1e-6 {
		t.Errorf("distance = %v, expected 192", g.Distance())
	}
}

func TestSnapshotCadence(t *testing.T) {
	g := newTestSim(1)
	infos := 0
	for i := 0; i < 90; i++ {
		for _, ev := range g.Advance(nominalTickMs) {
			if _, ok := ev.(InfoEvent); ok {
				infos++
			}
		}
	}
	if infos != 3 {
		t.Errorf("published %d snapshots over 90 ticks, expected 3", infos)
	}
}

func TestInjectedActionsDrainedAndAcknowledged(t *testing.T) {
	g := newTestSim(1)
	kind := PowerUpShield
	g.InjectAction(ViewerAction{ID: "a1", Type: ActionSpawnPowerUp, PowerUp: &PowerUpRequest{Kind: &kind}})
	g.InjectAction(ViewerAction{ID: "a2", Type: ActionSpawnObstacle})
	g.InjectAction(ViewerAction{ID: "a3", Type: ActionBoost})

	var acks []string
	for _, ev := range g.Advance(nominalTickMs) {
		if ap, ok := ev.(ActionProcessedEvent); ok {
			acks = append(acks, ap.ID)
		}
	}
	if !reflect.DeepEqual(acks, []string{"a1", "a2", "a3"}) {
		t.Errorf("acks = %v, expected submission order a1 a2 a3", acks)
	}
	if len(g.powerUps) != 1 || g.powerUps[0].Kind != PowerUpShield {
		t.Errorf("injected power-up missing: %+v", g.powerUps)
	}
	if len(g.obstacles) != 1 {
		t.Errorf("injected obstacle missing: %+v", g.obstacles)
	}
	if !g.craft.Boost {
		t.Error("boost action did not activate boost")
	}

	// Consumed exactly once: the next tick must not re-process anything.
	for _, ev := range g.Advance(nominalTickMs) {
		if _, ok := ev.(ActionProcessedEvent); ok {
			t.Error("action acknowledged twice")
		}
	}
}

func TestInjectQueueDropsOldestOnOverflow(t *testing.T) {
	g := newTestSim(1)
	for i := 0; i < g.queueSize+5; i++ {
		g.InjectAction(ViewerAction{ID: fmt.Sprintf("a%d", i), Type: ActionBoost})
	}

	g.queueMu.Lock()
	defer g.queueMu.Unlock()
	if len(g.pending) != g.queueSize {
		t.Fatalf("pending = %d, expected bound %d", len(g.pending), g.queueSize)
	}
	if g.pending[0].ID != "a5" {
		t.Errorf("oldest pending = %s, expected a5 after dropping 5", g.pending[0].ID)
	}
}

func TestGameOverTransition(t *testing.T) {
	g := newTestSim(1)
	g.craft.Health = 10
	g.obstacles = []Obstacle{{ID: 1, Pos: g.craft.Pos, Size: 10, Damage: 20}}

	var over *GameOverEvent
	for _, ev := range g.Advance(nominalTickMs) {
		if e, ok := ev.(GameOverEvent); ok {
			over = &e
		}
	}
	if over == nil {
		t.Fatal("lethal collision produced no GameOverEvent")
	}
	if g.State() != StateGameOver {
		t.Errorf("state = %v, expected game over", g.State())
	}

	// Emitted exactly once per terminal transition.
	for i := 0; i < 10; i++ {
		for _, ev := range g.Advance(nominalTickMs) {
			if _, ok := ev.(GameOverEvent); ok {
				t.Fatal("GameOverEvent emitted twice")
			}
		}
	}
}

func TestGameOverSuspendsWorld(t *testing.T) {
	g := newTestSim(1)
	g.craft.Health = 1
	g.obstacles = []Obstacle{{ID: 1, Pos: g.craft.Pos, Size: 10, Damage: 20}}
	g.Advance(nominalTickMs)
	if g.State() != StateGameOver {
		t.Fatal("setup did not reach game over")
	}

	g.obstacles = append(g.obstacles, Obstacle{ID: 2, Pos: core.Vec2{X: 400, Y: 300}, Vel: core.Vec2{X: 10, Y: 0}})
	g.craft.ShakeAmp = impactShake
	g.InjectAction(ViewerAction{ID: "queued", Type: ActionBoost})

	score := g.Score()
	g.Advance(nominalTickMs)

	if g.obstacles[1].Pos.X != 400 {
		t.Error("obstacle moved while game over")
	}
	if g.Score() != score {
		t.Error("score accrued while game over")
	}
	if g.craft.ShakeAmp >= impactShake {
		t.Error("shake did not keep decaying while game over")
	}
	g.queueMu.Lock()
	pending := len(g.pending)
	g.queueMu.Unlock()
	if pending != 1 {
		t.Errorf("pending = %d, expected the action to stay queued", pending)
	}
}

func TestResetRestoresRunningState(t *testing.T) {
	g := newTestSim(1)
	for i := 0; i < 100; i++ {
		g.Advance(nominalTickMs)
	}
	g.craft.Health = 1
	g.obstacles = append(g.obstacles, Obstacle{ID: 9999, Pos: g.craft.Pos, Size: 10, Damage: 20})
	g.Advance(nominalTickMs)
	if g.State() != StateGameOver {
		t.Fatal("setup did not reach game over")
	}
	g.InjectAction(ViewerAction{ID: "stale", Type: ActionBoost})
	high := g.HighScore()

	g.Reset(7)

	if g.State() != StateRunning {
		t.Errorf("state = %v, expected running", g.State())
	}
	if g.craft.Health != g.craft.MaxHealth || g.craft.Energy != g.craft.MaxEnergy {
		t.Errorf("craft not restored: health=%d energy=%d", g.craft.Health, g.craft.Energy)
	}
	if len(g.obstacles) != 0 || len(g.powerUps) != 0 {
		t.Error("entity collections not cleared")
	}
	if g.Score() != 0 || g.Distance() != 0 {
		t.Errorf("score/distance not reset: %d / %v", g.Score(), g.Distance())
	}
	if g.Params().Level != 1 {
		t.Errorf("level = %v, expected back to 1", g.Params().Level)
	}
	if g.craft.Shield || g.craft.Boost || g.craft.TimeFreeze {
		t.Error("effects survived reset")
	}
	if g.HighScore() != high {
		t.Errorf("high score = %d, expected to survive reset as %d", g.HighScore(), high)
	}
	g.queueMu.Lock()
	pending := len(g.pending)
	g.queueMu.Unlock()
	if pending != 0 {
		t.Error("stale queued action survived reset")
	}
}

func TestNewHighScoreLatchesAgainstPreviousBest(t *testing.T) {
	g := New(config.DefaultConfig(), 1, 50)

	g.addScore(30)
	if g.newHighScore {
		t.Error("flag set below the previous best")
	}
	g.addScore(30)
	if !g.newHighScore {
		t.Error("flag not set after passing the previous best")
	}
	if g.HighScore() != 60 {
		t.Errorf("high score = %d, expected 60", g.HighScore())
	}

	// Latched: it stays set while the score keeps climbing.
	g.addScore(10)
	if !g.newHighScore {
		t.Error("flag did not latch")
	}

	snap := g.Snapshot()
	if !snap.NewHighScore || snap.HighScore != 70 {
		t.Errorf("snapshot = %+v, expected new high score 70", snap)
	}
}

func TestObstacleCapBounds(t *testing.T) {
	if got := obstacleCap(1); got != 23 {
		t.Errorf("cap at level 1 = %d, expected 23", got)
	}
	if got := obstacleCap(5); got != 35 {
		t.Errorf("cap at level 5 = %d, expected 35", got)
	}
	if got := obstacleCap(20); got != 35 {
		t.Errorf("cap at level 20 = %d, expected 35", got)
	}
}

func TestSpawnGateRespectsCap(t *testing.T) {
	g := newTestSim(1)
	p := g.diff.Params()
	for len(g.obstacles) < obstacleCap(p.Level) {
		g.obstacles = append(g.obstacles, Obstacle{ID: g.sp.id(), Pos: core.Vec2{X: 400, Y: 300}})
	}
	g.sinceObstacle = p.ObstacleSpawnInterval + 1

	g.maybeSpawn(nominalTickMs)
	if len(g.obstacles) != obstacleCap(p.Level) {
		t.Errorf("spawned past the cap: %d obstacles", len(g.obstacles))
	}
}

func TestSpawnAfterInterval(t *testing.T) {
	g := newTestSim(1)
	p := g.diff.Params()

	ticks := int(p.ObstacleSpawnInterval/nominalTickMs) + 2
	for i := 0; i < ticks; i++ {
		g.Advance(nominalTickMs)
	}
	if len(g.obstacles) == 0 {
		t.Error("no obstacles after a full spawn interval")
	}
}

func TestEntitiesReturnsCopies(t *testing.T) {
	g := newTestSim(1)
	g.obstacles = []Obstacle{{ID: 1, Pos: core.Vec2{X: 100, Y: 100}}}

	_, obstacles, _ := g.Entities()
	obstacles[0].Pos.X = -500
	if g.obstacles[0].Pos.X != 100 {
		t.Error("Entities leaked a reference into live state")
	}
}

func TestDeterminism(t *testing.T) {
	run := func() (*Sim, []Snapshot) {
		g := New(config.DefaultConfig(), 424242, 0)
		var snaps []Snapshot
		frame := core.NewInputFrame()
		for i := 0; i < 600; i++ {
			frame.Clear()
			if i > 100 && i < 200 {
				frame.Set(core.ActionUp)
			}
			if i > 300 && i < 350 {
				frame.Set(core.ActionRight)
			}
			g.SetInput(frame)
			if i == 120 {
				g.InjectAction(ViewerAction{ID: "v1", Type: ActionSpawnObstacle})
			}
			if i == 240 {
				kind := PowerUpMagnet
				g.InjectAction(ViewerAction{ID: "v2", Type: ActionSpawnPowerUp, PowerUp: &PowerUpRequest{Kind: &kind}})
			}
			for _, ev := range g.Advance(nominalTickMs) {
				if info, ok := ev.(InfoEvent); ok {
					snaps = append(snaps, info.Info)
				}
			}
		}
		return g, snaps
	}

	g1, snaps1 := run()
	g2, snaps2 := run()

	if !reflect.DeepEqual(snaps1, snaps2) {
		t.Fatal("published snapshots diverged between identical seeded runs")
	}

	c1, o1, p1 := g1.Entities()
	c2, o2, p2 := g2.Entities()
	if !reflect.DeepEqual(c1, c2) {
		t.Error("craft state diverged")
	}
	if !reflect.DeepEqual(o1, o2) {
		t.Error("obstacle collections diverged")
	}
	if !reflect.DeepEqual(p1, p2) {
		t.Error("power-up collections diverged")
	}
}
