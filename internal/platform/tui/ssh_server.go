package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"

	"github.com/telisar/stardrift/internal/config"
	"github.com/telisar/stardrift/internal/core"
	"github.com/telisar/stardrift/internal/storage"
	"github.com/telisar/stardrift/internal/viewer"
)

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23234").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.stardrift/host_key.
	HostKeyPath string

	// DBPath is the path to the runs database.
	DBPath string

	// ConfigPath is an optional custom gameplay config YAML.
	ConfigPath string

	// TickRate is the simulation tick rate for hosted sessions.
	TickRate int

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23234",
		DBPath:      "~/.stardrift/runs.db",
		TickRate:    60,
		IdleTimeout: 30 * time.Minute,
	}
}

// SSHServer wraps a Wish SSH server. Interactive sessions get the full
// menu-and-run flow; viewers reach running sessions through the cheer exec
// command, routed by the shared hub.
type SSHServer struct {
	config  SSHServerConfig
	server  *ssh.Server
	store   *storage.Store
	hub     *viewer.Hub
	gameCfg config.Config
	logger  *log.Logger
}

// NewSSHServer creates a new SSH server with the given configuration.
func NewSSHServer(cfg SSHServerConfig) (*SSHServer, error) {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "stardrift-ssh",
	})

	// Open storage
	store, err := storage.Open(cfg.DBPath)
	if err != nil {
		logger.Warn("could not open runs database", "error", err)
		// Continue without storage
	}

	gameCfg, err := config.Load(cfg.ConfigPath)
	if err != nil {
		if store != nil {
			store.Close()
		}
		return nil, fmt.Errorf("cannot load gameplay config: %w", err)
	}

	var recorder viewer.ActionRecorder
	if store != nil {
		recorder = store
	}

	srv := &SSHServer{
		config:  cfg,
		store:   store,
		hub:     viewer.NewHub(logger, recorder),
		gameCfg: gameCfg,
		logger:  logger,
	}

	// Resolve host key path
	hostKeyPath := cfg.HostKeyPath
	if hostKeyPath == "" {
		home, homeErr := os.UserHomeDir()
		if homeErr != nil {
			return nil, fmt.Errorf("cannot get home directory: %w", homeErr)
		}
		hostKeyPath = filepath.Join(home, ".stardrift", "host_key")
	}

	// Ensure host key directory exists
	hostKeyDir := filepath.Dir(hostKeyPath)
	if mkdirErr := os.MkdirAll(hostKeyDir, 0o700); mkdirErr != nil {
		return nil, fmt.Errorf("cannot create host key directory: %w", mkdirErr)
	}

	opts := []ssh.Option{
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.cheerMiddleware,
			srv.loggingMiddleware,
		),
	}

	server, err := wish.NewServer(opts...)
	if err != nil {
		if store != nil {
			store.Close()
		}
		return nil, fmt.Errorf("cannot create SSH server: %w", err)
	}

	srv.server = server
	return srv, nil
}

// teaHandler creates a Bubble Tea program for each interactive SSH session.
func (s *SSHServer) teaHandler(sshSession ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sshSession.Pty()
	if !ok {
		s.logger.Warn("no PTY requested", "user", sshSession.User())
		return nil, nil
	}

	rt := core.RuntimeConfig{
		ScreenW:  pty.Window.Width,
		ScreenH:  pty.Window.Height,
		TickRate: s.config.TickRate,
		Seed:     time.Now().UnixNano(),
	}

	model := NewSessionModel(s.store, s.hub, s.gameCfg, rt)

	return model, []tea.ProgramOption{
		tea.WithAltScreen(),
	}
}

// cheerMiddleware intercepts viewer exec commands of the form
//
//	ssh host cheer CODE TYPE [KIND]
//
// and routes them into the session behind CODE. Interactive sessions pass
// through untouched.
func (s *SSHServer) cheerMiddleware(next ssh.Handler) ssh.Handler {
	return func(sshSession ssh.Session) {
		args := sshSession.Command()
		if len(args) == 0 || args[0] != "cheer" {
			next(sshSession)
			return
		}
		s.handleCheer(sshSession, args[1:])
	}
}

// handleCheer parses and submits one viewer action, echoing the outcome.
func (s *SSHServer) handleCheer(sshSession ssh.Session, args []string) {
	if len(args) < 2 {
		fmt.Fprintln(sshSession.Stderr(), "usage: cheer CODE TYPE [KIND]")
		fmt.Fprintln(sshSession.Stderr(), "types: powerup, obstacle, boost")
		//nolint:errcheck // Session is closing anyway
		sshSession.Exit(1)
		return
	}

	code := strings.ToUpper(args[0])
	fields := viewer.Fields{Type: args[1]}
	if len(args) > 2 {
		fields.Kind = args[2]
	}

	action, err := s.hub.Submit(code, fields)
	if err != nil {
		fmt.Fprintln(sshSession.Stderr(), err)
		//nolint:errcheck // Session is closing anyway
		sshSession.Exit(1)
		return
	}

	s.logger.Info("viewer cheer accepted",
		"code", code,
		"detail", fields.Detail(),
		"remote", sshSession.RemoteAddr().String(),
	)
	fmt.Fprintf(sshSession, "sent %s to feed %s (id %s)\n", fields.Detail(), code, action.ID)
}

// loggingMiddleware logs SSH session events.
func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sshSession ssh.Session) {
		s.logger.Info("session started",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
		next(sshSession)
		s.logger.Info("session ended",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
	}
}

// ListenAndServe starts the SSH server and blocks until shutdown.
func (s *SSHServer) ListenAndServe() error {
	s.logger.Info("starting SSH server", "address", s.config.Address)

	// Setup signal handling for graceful shutdown
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			s.logger.Error("server error", "error", err)
		}
	}()

	<-done
	s.logger.Info("shutting down...")
	return s.Shutdown()
}

// Shutdown gracefully stops the server.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if s.store != nil {
		s.store.Close()
	}

	return s.server.Shutdown(ctx)
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Address
}

// Hub returns the viewer hub shared by all hosted sessions.
func (s *SSHServer) Hub() *viewer.Hub {
	return s.hub
}

// SessionModel manages the full session flow: menu -> run -> menu.
// This is the top-level model used for SSH sessions.
type SessionModel struct {
	store     *storage.Store
	hub       *viewer.Hub
	gameCfg   config.Config
	runtime   core.RuntimeConfig
	menu      MenuModel
	scores    *ScoreboardModel
	gameModel *Model
	feedCode  string
	quitting  bool
}

// NewSessionModel creates a new session model.
func NewSessionModel(store *storage.Store, hub *viewer.Hub, gameCfg config.Config, rt core.RuntimeConfig) SessionModel {
	return SessionModel{
		store:   store,
		hub:     hub,
		gameCfg: gameCfg,
		runtime: rt,
		menu:    NewMenuModel(rt),
	}
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Handle window resize globally
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.runtime.ScreenW = wsm.Width
		m.runtime.ScreenH = wsm.Height
	}

	switch {
	case m.gameModel != nil:
		return m.updateGame(msg)
	case m.scores != nil:
		return m.updateScoreboard(msg)
	default:
		return m.updateMenu(msg)
	}
}

// updateMenu handles updates when in menu mode.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}

	if m.menu.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.menu.WantsScoreboard() {
		scores := NewScoreboardModel(m.store, m.runtime.ScreenW, m.runtime.ScreenH)
		m.scores = &scores
		m.menu = NewMenuModel(m.runtime)
		return m, m.scores.Init()
	}

	if selected := m.menu.Selected(); selected != nil {
		m.runtime = m.menu.Config() // Get possibly updated config from resize
		return m.startRun(selected.Preset)
	}

	return m, cmd
}

// startRun builds a fresh simulation for the preset and enters game mode.
func (m SessionModel) startRun(preset config.DifficultyPreset) (tea.Model, tea.Cmd) {
	cfg := m.gameCfg
	config.ApplyPreset(&cfg, preset)

	highScore := 0
	if m.store != nil {
		if best, err := m.store.HighScore(); err == nil {
			highScore = best
		}
	}

	rt := m.runtime
	rt.Seed = time.Now().UnixNano()
	g := NewSim(cfg, rt, highScore)

	if m.hub != nil {
		m.feedCode = m.hub.Register(g)
	}

	gameModel := NewModel(g, m.store, rt, m.feedCode)
	m.gameModel = &gameModel
	return m, m.gameModel.Init()
}

// updateGame handles updates when a run is active.
func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.gameModel.Update(msg)
	if gameModel, ok := newModel.(Model); ok {
		m.gameModel = &gameModel
	}

	// Back to menu: drop the feed registration and discard the inner quit
	if m.gameModel.WantsMenu() {
		m.leaveRun()
		m.menu = NewMenuModel(m.runtime)
		return m, m.menu.Init()
	}

	if m.gameModel.IsQuitting() {
		m.leaveRun()
		m.quitting = true
		return m, tea.Quit
	}

	return m, cmd
}

// updateScoreboard handles updates when the run history is shown.
func (m SessionModel) updateScoreboard(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.scores.Update(msg)
	if scoresModel, ok := newModel.(ScoreboardModel); ok {
		m.scores = &scoresModel
	}

	if m.scores.IsGoingBack() {
		m.scores = nil
		m.menu = NewMenuModel(m.runtime)
		return m, m.menu.Init()
	}

	if m.scores.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	return m, cmd
}

// leaveRun tears down the active run's viewer feed.
func (m *SessionModel) leaveRun() {
	if m.hub != nil && m.feedCode != "" {
		m.hub.Unregister(m.feedCode)
	}
	m.feedCode = ""
	m.gameModel = nil
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch {
	case m.gameModel != nil:
		return m.gameModel.View()
	case m.scores != nil:
		return m.scores.View()
	default:
		return m.menu.View()
	}
}
