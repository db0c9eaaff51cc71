package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"

	"github.com/vovakirdan/sky-arcade/internal/audio"
	"github.com/vovakirdan/sky-arcade/internal/core"
	"github.com/vovakirdan/sky-arcade/internal/multiplayer"
	"github.com/vovakirdan/sky-arcade/internal/registry"
	"github.com/vovakirdan/sky-arcade/internal/storage"
)

// sessionBuffer is the per-session event queue length.
const sessionBuffer = 256

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23234").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.arcade/host_key.
	HostKeyPath string

	// DBPath is the path to the scores database.
	DBPath string

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration

	// TickRate drives both local games and online matches.
	TickRate int

	// LobbyTimeout is how long an unjoined lobby stays open.
	LobbyTimeout time.Duration
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:      ":23234",
		DBPath:       "~/.arcade/scores.db",
		IdleTimeout:  30 * time.Minute,
		TickRate:     60,
		LobbyTimeout: 2 * time.Minute,
	}
}

// OnlineGameFactory builds server-side games from the registry.
func OnlineGameFactory(gameID string, cfg core.RuntimeConfig) (multiplayer.OnlineGame, error) {
	game, err := registry.Create(gameID)
	if err != nil {
		return nil, err
	}
	online, ok := game.(multiplayer.OnlineGame)
	if !ok {
		return nil, fmt.Errorf("game %q does not support online play", gameID)
	}
	online.Reset(cfg)
	return online, nil
}

// SSHServer wraps a Wish SSH server for the arcade.
type SSHServer struct {
	config      SSHServerConfig
	server      *ssh.Server
	store       *storage.Store
	logger      *log.Logger
	sessions    *multiplayer.SessionRegistry
	coordinator *multiplayer.Coordinator
	onlineCfg   core.RuntimeConfig
}

// NewSSHServer creates a new SSH server with the given configuration.
// logger may be nil.
func NewSSHServer(cfg SSHServerConfig, logger *log.Logger) (*SSHServer, error) {
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "arcade-ssh",
		})
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = 60
	}

	// Open storage; the server runs without it if the database is unusable.
	store, err := storage.Open(cfg.DBPath)
	if err != nil {
		logger.Warn("could not open scores database", "err", err)
		store = nil
	}

	coordCfg := multiplayer.DefaultCoordinatorConfig()
	coordCfg.TickRate = cfg.TickRate
	if cfg.LobbyTimeout > 0 {
		coordCfg.LobbyTimeout = cfg.LobbyTimeout
	}
	sessions := multiplayer.NewSessionRegistry()
	coordinator := multiplayer.NewCoordinator(coordCfg, OnlineGameFactory, sessions, logger.WithPrefix("coordinator"))
	if store != nil {
		coordinator.SetResultSaver(store)
	}

	srv := &SSHServer{
		config:      cfg,
		store:       store,
		logger:      logger,
		sessions:    sessions,
		coordinator: coordinator,
		onlineCfg: core.RuntimeConfig{
			ScreenW:  coordCfg.ScreenW,
			ScreenH:  coordCfg.ScreenH,
			TickRate: coordCfg.TickRate,
		},
	}

	hostKeyPath := cfg.HostKeyPath
	if hostKeyPath == "" {
		home, homeErr := os.UserHomeDir()
		if homeErr != nil {
			return nil, fmt.Errorf("cannot get home directory: %w", homeErr)
		}
		hostKeyPath = filepath.Join(home, ".arcade", "host_key")
	}
	if mkdirErr := os.MkdirAll(filepath.Dir(hostKeyPath), 0o700); mkdirErr != nil {
		return nil, fmt.Errorf("cannot create host key directory: %w", mkdirErr)
	}

	server, err := wish.NewServer(
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.loggingMiddleware,
		),
	)
	if err != nil {
		if store != nil {
			store.Close() //nolint:errcheck
		}
		return nil, fmt.Errorf("cannot create SSH server: %w", err)
	}

	srv.server = server
	return srv, nil
}

// Coordinator exposes the match coordinator, e.g. to list matches for
// spectators or to attach an observer before Serve.
func (s *SSHServer) Coordinator() *multiplayer.Coordinator {
	return s.coordinator
}

// teaHandler creates a Bubble Tea program for each SSH session.
func (s *SSHServer) teaHandler(sshSession ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sshSession.Pty()
	if !ok {
		s.logger.Warn("no PTY requested", "user", sshSession.User())
		return nil, nil
	}

	cfg := core.RuntimeConfig{
		ScreenW:  pty.Window.Width,
		ScreenH:  pty.Window.Height,
		TickRate: s.config.TickRate,
	}

	session := multiplayer.NewChannelSession(multiplayer.NewSessionID(), sessionBuffer)
	s.sessions.Register(session)
	go func() {
		<-sshSession.Context().Done()
		s.coordinator.Send(multiplayer.SessionDisconnectedMsg{SessionID: session.ID()})
		s.sessions.Unregister(session.ID())
		session.Close()
	}()

	model := NewSessionModel(SessionDeps{
		Store:     s.store,
		Session:   session,
		Coord:     s.coordinator,
		Logger:    s.logger.With("user", sshSession.User()),
		Config:    cfg,
		OnlineCfg: s.onlineCfg,
	})

	return model, []tea.ProgramOption{
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
	}
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
			"lobbies", s.coordinator.LobbyCount(),
			"matches", s.coordinator.MatchCount(),
		)
	}
}

// Serve starts the coordinator and the SSH listener and blocks until ctx is
// cancelled or the listener fails.
func (s *SSHServer) Serve(ctx context.Context) error {
	s.logger.Info("starting SSH server", "address", s.config.Address)
	s.coordinator.Start()

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("shutting down...")
		return s.Shutdown()
	case err := <-errCh:
		shutdownErr := s.Shutdown()
		if errors.Is(err, ssh.ErrServerClosed) {
			return shutdownErr
		}
		return err
	}
}

// Shutdown gracefully stops the server, every running match and the store.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err := s.server.Shutdown(ctx)
	s.coordinator.Stop()
	if s.store != nil {
		err = errors.Join(err, s.store.Close())
		s.store = nil
	}
	return err
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Address
}

// SessionDeps carries what one SSH session needs from the server.
type SessionDeps struct {
	Store     *storage.Store
	Session   *multiplayer.ChannelSession
	Coord     Dispatcher
	Logger    *log.Logger
	Config    core.RuntimeConfig // Terminal size and tick rate
	OnlineCfg core.RuntimeConfig // Playfield of online matches
}

type sessionView int

const (
	viewMenu sessionView = iota
	viewScoreboard
	viewGame
	viewLobby
	viewMatch
)

// SessionModel manages the full arcade session flow: menu -> game -> menu,
// with the scoreboard and online lobbies in between.
// This is the top-level model used for SSH sessions.
type SessionModel struct {
	deps       SessionDeps
	config     core.RuntimeConfig
	audio      *audio.Player
	view       sessionView
	menu       MenuModel
	scoreboard ScoreboardModel
	game       Model
	lobby      OnlineLobbyModel
	match      OnlineMatchModel
	quitting   bool
}

// NewSessionModel creates a new session model.
func NewSessionModel(deps SessionDeps) SessionModel {
	if deps.Logger == nil {
		deps.Logger = log.New(io.Discard)
	}
	return SessionModel{
		deps:   deps,
		config: deps.Config,
		// Sound would play on the server, so remote sessions stay silent.
		audio: audio.NewSilent(),
		menu:  NewMenuModel(deps.Store, deps.Config, true),
	}
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return tea.Batch(m.menu.Init(), waitForEvent(m.deps.Session))
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
	case SessionEventMsg:
		next, cmd := m.routeEvent(msg)
		return next, tea.Batch(cmd, waitForEvent(m.deps.Session))
	}

	switch m.view {
	case viewScoreboard:
		return m.updateScoreboard(msg)
	case viewGame:
		return m.updateGame(msg)
	case viewLobby:
		return m.updateLobby(msg)
	case viewMatch:
		return m.updateMatch(msg)
	default:
		return m.updateMenu(msg)
	}
}

// routeEvent hands coordinator events to the online views.
func (m SessionModel) routeEvent(msg SessionEventMsg) (SessionModel, tea.Cmd) {
	switch m.view {
	case viewLobby:
		next, cmd := m.updateLobby(msg)
		return next.(SessionModel), cmd
	case viewMatch:
		next, cmd := m.updateMatch(msg)
		return next.(SessionModel), cmd
	}
	return m, nil
}

func (m SessionModel) toMenu() (tea.Model, tea.Cmd) {
	m.view = viewMenu
	m.menu = NewMenuModel(m.deps.Store, m.config, true)
	return m, m.menu.Init()
}

func (m SessionModel) quit() (tea.Model, tea.Cmd) {
	m.quitting = true
	return m, tea.Quit
}

// updateMenu handles updates when in menu mode.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}

	switch {
	case m.menu.IsQuitting():
		return m.quit()

	case m.menu.WantsScoreboard():
		m.view = viewScoreboard
		m.scoreboard = NewScoreboardModel(m.deps.Store, m.config.ScreenW, m.config.ScreenH)
		return m, m.scoreboard.Init()

	case m.menu.Selected() != nil:
		return m.startSelected(*m.menu.Selected())
	}

	return m, cmd
}

func (m SessionModel) startSelected(item MenuItem) (tea.Model, tea.Cmd) {
	if item.Mode == multiplayer.MatchModeOnlinePvP {
		m.view = viewLobby
		m.lobby = NewOnlineLobbyModel(item.GameID, item.Title, m.deps.Session.ID(), m.deps.Coord,
			m.config.ScreenW, m.config.ScreenH)
		return m, m.lobby.Init()
	}

	game, err := registry.Create(item.GameID)
	if err != nil {
		m.deps.Logger.Error("cannot create game", "game", item.GameID, "err", err)
		return m.toMenu()
	}

	m.view = viewGame
	m.game = NewModel(game, GameOptions{
		Store:  m.deps.Store,
		Audio:  m.audio,
		Logger: m.deps.Logger,
		Config: m.config,
		Mode:   item.Mode,
	})
	return m, m.game.Init()
}

func (m SessionModel) updateScoreboard(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.scoreboard.Update(msg)
	if sb, ok := next.(ScoreboardModel); ok {
		m.scoreboard = sb
	}

	switch {
	case m.scoreboard.IsQuitting():
		return m.quit()
	case m.scoreboard.IsGoingBack():
		return m.toMenu()
	}
	return m, cmd
}

// updateGame handles updates when in game mode.
func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.game.Update(msg)
	if gm, ok := next.(Model); ok {
		m.game = gm
	}

	switch {
	case m.game.IsQuitting():
		return m.quit()
	case m.game.BackToMenu():
		return m.toMenu()
	}
	return m, cmd
}

func (m SessionModel) updateLobby(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.lobby.Update(msg)
	if lm, ok := next.(OnlineLobbyModel); ok {
		m.lobby = lm
	}

	switch {
	case m.lobby.IsQuitting():
		return m.quit()
	case m.lobby.BackToMenu():
		return m.toMenu()
	case m.lobby.Started() != nil:
		return m.startMatch(*m.lobby.Started())
	}
	return m, cmd
}

// startMatch builds a local mirror of the server's game for rendering.
func (m SessionModel) startMatch(started multiplayer.MatchStartedEvent) (tea.Model, tea.Cmd) {
	game, err := registry.Create(started.GameID)
	if err != nil {
		m.deps.Logger.Error("cannot create game", "game", started.GameID, "err", err)
		m.deps.Coord.Send(multiplayer.LeaveMatchMsg{SessionID: m.deps.Session.ID(), MatchID: started.MatchID})
		return m.toMenu()
	}
	mirror, ok := game.(multiplayer.OnlineGame)
	if !ok {
		m.deps.Logger.Error("game has no online mode", "game", started.GameID)
		m.deps.Coord.Send(multiplayer.LeaveMatchMsg{SessionID: m.deps.Session.ID(), MatchID: started.MatchID})
		return m.toMenu()
	}
	mirror.Reset(m.deps.OnlineCfg)

	cfg := m.config
	cfg.TickRate = max(m.deps.OnlineCfg.TickRate, 1)
	m.view = viewMatch
	m.match = NewOnlineMatchModel(mirror, game.Render, started, m.deps.Session.ID(), m.deps.Coord, m.audio, cfg)
	m.deps.Logger.Info("online match joined", "match", started.MatchID, "side", started.Side)
	return m, m.match.Init()
}

func (m SessionModel) updateMatch(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.match.Update(msg)
	if mm, ok := next.(OnlineMatchModel); ok {
		m.match = mm
	}

	switch {
	case m.match.IsQuitting():
		return m.quit()
	case m.match.BackToMenu():
		return m.toMenu()
	}
	return m, cmd
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.view {
	case viewScoreboard:
		return m.scoreboard.View()
	case viewGame:
		return m.game.View()
	case viewLobby:
		return m.lobby.View()
	case viewMatch:
		return m.match.View()
	default:
		return m.menu.View()
	}
}
