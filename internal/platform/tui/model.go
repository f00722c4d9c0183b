package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/telisar/stardrift/internal/config"
	"github.com/telisar/stardrift/internal/core"
	"github.com/telisar/stardrift/internal/sim"
	"github.com/telisar/stardrift/internal/storage"
)

// Model is the Bubble Tea model hosting one stardrift run.
type Model struct {
	sim        *sim.Sim
	screen     *core.Screen
	store      *storage.Store
	runtime    core.RuntimeConfig
	feedCode   string // Shown in the HUD; empty when no viewer hub is attached
	keyMapper  *KeyMapper
	inputFrame core.InputFrame
	snap       sim.Snapshot
	paused     bool
	runStart   time.Time
	runSaved   bool // Whether the finished run has been persisted
	backToMenu bool
	quitting   bool
}

// NewModel wraps an already-constructed simulation. The caller owns feed
// registration so SSH sessions and local play share the same model.
func NewModel(g *sim.Sim, store *storage.Store, rt core.RuntimeConfig, feedCode string) Model {
	return Model{
		sim:        g,
		screen:     core.NewScreen(rt.ScreenW, rt.ScreenH),
		store:      store,
		runtime:    rt,
		feedCode:   feedCode,
		keyMapper:  NewKeyMapper(),
		inputFrame: core.NewInputFrame(),
		snap:       g.Snapshot(),
		runStart:   time.Now(),
	}
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.runtime.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action, isQuit := m.keyMapper.MapKey(msg)
	if isQuit {
		m.quitting = true
		return m, tea.Quit
	}

	switch action {
	case core.ActionBack:
		m.backToMenu = true
		return m, tea.Quit

	case core.ActionPause:
		// Pause is a host concern: the simulation simply stops advancing.
		if m.snap.State == sim.StateRunning {
			m.paused = !m.paused
		}

	case core.ActionRestart:
		if m.snap.State == sim.StateGameOver {
			m.sim.Reset(time.Now().UnixNano())
			m.snap = m.sim.Snapshot()
			m.runStart = time.Now()
			m.runSaved = false
			m.paused = false
			m.inputFrame.Clear()
		}

	case core.ActionUp, core.ActionDown, core.ActionLeft, core.ActionRight:
		m.inputFrame.Set(action)
	}

	return m, nil
}

// handleResize resizes the render buffer. The simulation world keeps its
// dimensions; only the projection changes.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.runtime.ScreenW = msg.Width
	m.runtime.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)
	return m, nil
}

// handleTick advances the simulation by one fixed step.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.paused {
		return m, tickCmd(m.runtime.TickRate)
	}

	dtMs := 1000.0 / float64(m.runtime.TickRate)
	m.sim.SetInput(m.inputFrame)
	events := m.sim.Advance(dtMs)
	m.inputFrame.Clear()
	m.snap = m.sim.Snapshot()

	for _, ev := range events {
		if over, ok := ev.(sim.GameOverEvent); ok && !m.runSaved {
			if m.store != nil && over.Score > 0 {
				//nolint:errcheck // Best-effort save, session continues regardless
				m.store.SaveRun(storage.Run{
					Score:    over.Score,
					Distance: over.Distance,
					Level:    m.snap.Level,
					Duration: int(time.Since(m.runStart).Seconds()),
				})
			}
			m.runSaved = true
		}
	}

	return m, tickCmd(m.runtime.TickRate)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	drawGame(m.screen, m.sim, m.snap, m.feedCode, m.paused)
	return RenderScreen(m.screen)
}

// WantsMenu reports whether the session ended with a back-to-menu request
// rather than a quit.
func (m Model) WantsMenu() bool {
	return m.backToMenu
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// RunResult describes how an interactive session ended.
type RunResult struct {
	BackToMenu bool
}

// Run starts a local Bubble Tea session for the given simulation.
func Run(g *sim.Sim, store *storage.Store, rt core.RuntimeConfig, feedCode string) (RunResult, error) {
	model := NewModel(g, store, rt, feedCode)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return RunResult{}, err
	}

	if m, ok := finalModel.(Model); ok {
		return RunResult{BackToMenu: m.WantsMenu()}, nil
	}
	return RunResult{}, nil
}

// NewSim builds a simulation from the shared config plus runtime seed and
// the persisted high score. A zero seed falls back to the clock.
func NewSim(cfg config.Config, rt core.RuntimeConfig, highScore int) *sim.Sim {
	seed := rt.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return sim.New(cfg, seed, highScore)
}
