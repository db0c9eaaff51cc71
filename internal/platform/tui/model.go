package tui

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/sky-arcade/internal/audio"
	"github.com/vovakirdan/sky-arcade/internal/core"
	"github.com/vovakirdan/sky-arcade/internal/multiplayer"
	"github.com/vovakirdan/sky-arcade/internal/registry"
	"github.com/vovakirdan/sky-arcade/internal/storage"
)

// bannerTicks is how long a trophy banner stays on screen.
const bannerTicks = 120

// ErrQuit is returned by Run when the player quit the whole program
// rather than going back to the menu.
var ErrQuit = errors.New("quit requested")

// GameOptions configures a Model. Zero values are usable: no store means
// nothing is saved, no audio means a silent player.
type GameOptions struct {
	Store     *storage.Store
	Audio     *audio.Player
	Logger    *log.Logger
	Config    core.RuntimeConfig
	Mode      multiplayer.MatchMode
	HoldTicks int

	// Standalone programs quit on Esc instead of returning to a menu.
	Standalone bool
}

// Model is the Bubble Tea model for running arcade games.
type Model struct {
	game       registry.Game
	versus     registry.Versus // nil unless the game supports two players
	mode       multiplayer.MatchMode
	screen     *core.Screen
	store      *storage.Store
	audio      *audio.Player
	logger     *log.Logger
	config     core.RuntimeConfig
	keys       *KeyMapper
	sampler    *core.KeySampler
	tick       uint64
	gameState  core.GameState
	banner     string
	bannerLeft int
	standalone bool
	quitting   bool
	backToMenu bool
	scoreSaved bool // Whether score has been saved for current game over
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game registry.Game, opts GameOptions) Model {
	cfg := opts.Config
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if opts.Audio == nil {
		opts.Audio = audio.NewSilent()
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.HoldTicks <= 0 {
		opts.HoldTicks = core.DefaultHoldTicks
	}

	versus, _ := game.(registry.Versus)
	mode := opts.Mode
	if mode == multiplayer.MatchModeLocalPvP && versus == nil {
		mode = multiplayer.MatchModeSolo
	}

	return Model{
		game:       game,
		versus:     versus,
		mode:       mode,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:      opts.Store,
		audio:      opts.Audio,
		logger:     opts.Logger,
		config:     cfg,
		keys:       NewKeyMapper(mode == multiplayer.MatchModeLocalPvP),
		sampler:    core.NewKeySampler(opts.HoldTicks),
		standalone: opts.Standalone,
	}
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	for _, p := range m.keys.Map(msg) {
		switch p.Action {
		case core.ActionQuit:
			m.quitting = true
			return m, tea.Quit
		case core.ActionBack:
			m.backToMenu = true
			if m.standalone {
				return m, tea.Quit
			}
			return m, nil
		case core.ActionMute:
			m.audio.ToggleMute()
		case core.ActionRestart:
			if m.gameState.GameOver {
				m.restart()
			}
		default:
			m.sampler.Press(p.Player, p.Action, m.tick)
		}
	}

	return m, nil
}

// handleMouse feeds the pointer to Player 1.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	m.sampler.MovePointer(float64(msg.X), float64(msg.Y))
	if msg.Button == tea.MouseButtonLeft {
		switch msg.Action {
		case tea.MouseActionPress:
			m.sampler.SetPointerDown(true)
		case tea.MouseActionRelease:
			m.sampler.SetPointerDown(false)
		}
	}
	return m, nil
}

// handleResize processes window resize events.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)

	// Reinitialize game with new dimensions
	if !m.gameState.GameOver {
		m.game.Reset(m.config)
		m.sampler.Reset()
	}

	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.quitting || m.backToMenu {
		return m, nil
	}

	frame := m.sampler.Frame(m.tick)
	m.tick++

	var result core.StepResult
	if m.mode == multiplayer.MatchModeLocalPvP {
		result = m.versus.StepMulti(frame)
	} else {
		result = m.game.Step(frame.Player1())
	}
	m.gameState = result.State
	m.audio.PlayAll(result.Sounds)

	for _, t := range result.Trophies {
		m.banner = "Trophy: " + t.Name
		m.bannerLeft = bannerTicks
		if m.store == nil {
			continue
		}
		if err := m.store.SaveTrophy(m.game.ID(), t); err != nil {
			m.logger.Warn("cannot save trophy", "game", m.game.ID(), "trophy", t.ID, "err", err)
		}
	}
	if m.bannerLeft > 0 {
		m.bannerLeft--
		if m.bannerLeft == 0 {
			m.banner = ""
		}
	}

	// Save score on game over (once). Local two player runs have no single owner.
	if m.gameState.GameOver && !m.scoreSaved {
		m.scoreSaved = true
		if m.store != nil && m.gameState.Score > 0 && m.mode != multiplayer.MatchModeLocalPvP {
			if _, err := m.store.SaveScore(m.game.ID(), m.gameState.Score); err != nil {
				m.logger.Warn("cannot save score", "game", m.game.ID(), "err", err)
			}
		}
	}

	return m, tickCmd(m.config.TickRate)
}

// restart begins a new run with a fresh seed.
func (m *Model) restart() {
	m.config.Seed = time.Now().UnixNano()
	m.game.Reset(m.config)
	m.gameState = m.game.State()
	m.scoreSaved = false
	m.sampler.Reset()
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.screen.Clear()
	m.game.Render(m.screen)

	dir := filepath.Join(os.Getenv("HOME"), ".arcade", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("cannot create screenshot directory", "err", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("cannot save screenshot", "err", err)
		return
	}
	m.logger.Info("screenshot saved", "path", path)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.screen.Clear()
	m.game.Render(m.screen)
	drawStatus(m.screen, m.audio.Muted(), m.banner)
	return RenderScreen(m.screen)
}

// State returns the last observed game state.
func (m Model) State() core.GameState {
	return m.gameState
}

// BackToMenu reports whether the player asked to leave the game.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// IsQuitting returns true if the player asked to quit the program.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// Run starts a standalone Bubble Tea program for one game.
func Run(game registry.Game, opts GameOptions) error {
	opts.Standalone = true
	model := NewModel(game, opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
	)

	final, err := p.Run()
	if err != nil {
		return err
	}
	if fm, ok := final.(Model); ok && fm.IsQuitting() {
		return ErrQuit
	}
	return nil
}
