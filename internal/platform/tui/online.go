package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/sky-arcade/internal/audio"
	"github.com/vovakirdan/sky-arcade/internal/core"
	"github.com/vovakirdan/sky-arcade/internal/multiplayer"
)

// joinCodeLen matches the codes handed out by the coordinator.
const joinCodeLen = 6

// Dispatcher delivers session requests to the match coordinator.
type Dispatcher interface {
	Send(msg multiplayer.CoordinatorMessage)
}

// SessionEventMsg wraps a coordinator event for Bubble Tea.
type SessionEventMsg struct {
	Event multiplayer.SessionEvent
}

// EventSource is a session whose coordinator events feed the TUI.
type EventSource interface {
	Events() <-chan multiplayer.SessionEvent
	Done() <-chan struct{}
}

// waitForEvent returns a command that delivers the next coordinator event.
// It yields nil once the session is done.
func waitForEvent(src EventSource) tea.Cmd {
	return func() tea.Msg {
		select {
		case evt := <-src.Events():
			return SessionEventMsg{Event: evt}
		case <-src.Done():
			return nil
		}
	}
}

// OnlineState represents the current state of the online matchmaking flow.
type OnlineState int

const (
	OnlineStateChooseMode    OnlineState = iota // Choose Host or Join
	OnlineStateHostWaiting                      // Hosting, waiting for joiner
	OnlineStateJoinEnterCode                    // Entering join code
	OnlineStateJoinWaiting                      // Waiting to connect to host
	OnlineStateInMatch                          // Match started
)

// OnlineLobbyModel handles the online matchmaking flow for one game.
type OnlineLobbyModel struct {
	state     OnlineState
	width     int
	height    int
	gameID    string
	title     string
	sessionID multiplayer.SessionID
	coord     Dispatcher

	// Host state
	lobbyCode string

	// Join state
	joinCodeInput string
	joinError     string

	// Match state
	started *multiplayer.MatchStartedEvent

	backToMenu bool
	quitting   bool
}

// NewOnlineLobbyModel creates a new online lobby model.
func NewOnlineLobbyModel(gameID, title string, sessionID multiplayer.SessionID, coord Dispatcher, width, height int) OnlineLobbyModel {
	return OnlineLobbyModel{
		state:     OnlineStateChooseMode,
		width:     width,
		height:    height,
		gameID:    gameID,
		title:     title,
		sessionID: sessionID,
		coord:     coord,
	}
}

// Init initializes the lobby model.
func (m OnlineLobbyModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m OnlineLobbyModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case SessionEventMsg:
		return m.handleEvent(msg.Event), nil
	}
	return m, nil
}

func (m OnlineLobbyModel) handleEvent(evt multiplayer.SessionEvent) OnlineLobbyModel {
	switch evt := evt.(type) {
	case multiplayer.LobbyCreatedEvent:
		m.lobbyCode = evt.Code
		m.joinError = ""
		m.state = OnlineStateHostWaiting
	case multiplayer.LobbyErrorEvent:
		m.joinError = evt.Message
		if m.state == OnlineStateJoinWaiting {
			m.state = OnlineStateJoinEnterCode
		}
	case multiplayer.LobbyPlayerLeftEvent:
		m.joinError = "Opponent left, waiting for another player"
	case multiplayer.MatchStartedEvent:
		m.started = &evt
		m.state = OnlineStateInMatch
	case multiplayer.MatchEndedEvent:
		// Only lobby closures reach this model.
		m.joinError = evt.Reason.String()
		m.state = OnlineStateChooseMode
	}
	return m
}

func (m OnlineLobbyModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		m.leave()
		m.quitting = true
		return m, tea.Quit
	}

	switch m.state {
	case OnlineStateChooseMode:
		return m.handleChooseModeKey(msg)
	case OnlineStateHostWaiting:
		if isBackKey(msg) {
			m.leave()
			m.backToMenu = true
		}
	case OnlineStateJoinEnterCode:
		return m.handleJoinCodeKey(msg)
	case OnlineStateJoinWaiting:
		if isBackKey(msg) {
			m.leave()
			m.state = OnlineStateJoinEnterCode
		}
	}

	return m, nil
}

func isBackKey(msg tea.KeyMsg) bool {
	key := msg.String()
	return key == "esc" || key == "b"
}

// leave withdraws from whatever lobby this session is in.
func (m OnlineLobbyModel) leave() {
	switch m.state {
	case OnlineStateHostWaiting:
		m.coord.Send(multiplayer.CancelLobbyMsg{SessionID: m.sessionID, Code: m.lobbyCode})
	case OnlineStateJoinWaiting:
		m.coord.Send(multiplayer.LeaveLobbyMsg{SessionID: m.sessionID, Code: m.joinCodeInput})
	}
}

func (m OnlineLobbyModel) handleChooseModeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch strings.ToLower(msg.String()) {
	case "h", "1":
		m.coord.Send(multiplayer.CreateLobbyMsg{SessionID: m.sessionID, GameID: m.gameID})
	case "j", "2":
		m.state = OnlineStateJoinEnterCode
		m.joinCodeInput = ""
		m.joinError = ""
	case "esc", "b":
		m.backToMenu = true
	case "q":
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

func (m OnlineLobbyModel) handleJoinCodeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	switch key {
	case "esc":
		m.state = OnlineStateChooseMode
		m.joinError = ""
	case "enter":
		if len(m.joinCodeInput) == joinCodeLen {
			m.state = OnlineStateJoinWaiting
			m.joinError = ""
			m.coord.Send(multiplayer.JoinLobbyMsg{SessionID: m.sessionID, Code: m.joinCodeInput})
		}
	case "backspace":
		if m.joinCodeInput != "" {
			m.joinCodeInput = m.joinCodeInput[:len(m.joinCodeInput)-1]
		}
	default:
		// Codes use the base32 alphabet.
		if len(key) == 1 && len(m.joinCodeInput) < joinCodeLen {
			c := strings.ToUpper(key)[0]
			if (c >= 'A' && c <= 'Z') || (c >= '2' && c <= '7') {
				m.joinCodeInput += string(c)
			}
		}
	}

	return m, nil
}

// View renders the current state.
func (m OnlineLobbyModel) View() string {
	if m.quitting {
		return ""
	}

	var lines []string
	switch m.state {
	case OnlineStateChooseMode:
		lines = []string{
			"ONLINE " + strings.ToUpper(m.title),
			"",
			"Choose an option:",
			"",
			"[H] Host a game",
			"[J] Join a game",
		}
		if m.joinError != "" {
			lines = append(lines, "", m.joinError)
		}
		lines = append(lines, "", "Esc: Back  |  Q: Quit")
	case OnlineStateHostWaiting:
		lines = []string{
			"HOSTING " + strings.ToUpper(m.title),
			"",
			"Share this code with your opponent:",
			"",
			fmt.Sprintf("[ %s ]", m.lobbyCode),
			"",
			"Waiting for player to join...",
		}
		if m.joinError != "" {
			lines = append(lines, m.joinError)
		}
		lines = append(lines, "", "Esc: Cancel")
	case OnlineStateJoinEnterCode:
		code := m.joinCodeInput + strings.Repeat("_", joinCodeLen-len(m.joinCodeInput))
		lines = []string{
			"JOIN " + strings.ToUpper(m.title),
			"",
			"Enter the game code:",
			"",
			fmt.Sprintf("[ %s ]", code),
		}
		if m.joinError != "" {
			lines = append(lines, "", "Error: "+m.joinError)
		}
		lines = append(lines, "", "Enter: Connect  |  Esc: Back")
	case OnlineStateJoinWaiting:
		lines = []string{
			"CONNECTING",
			"",
			"Joining game: " + m.joinCodeInput,
			"",
			"Please wait...",
			"",
			"Esc: Cancel",
		}
	case OnlineStateInMatch:
		lines = []string{"MATCH STARTING", "", "Get ready!"}
	}

	var b strings.Builder
	b.WriteString("\n")
	for _, l := range lines {
		b.WriteString(centerText(l, m.width))
		b.WriteString("\n")
	}
	return b.String()
}

// State returns the current online state.
func (m OnlineLobbyModel) State() OnlineState {
	return m.state
}

// BackToMenu returns true if user wants to go back to menu.
func (m OnlineLobbyModel) BackToMenu() bool {
	return m.backToMenu
}

// IsQuitting returns true if user wants to quit entirely.
func (m OnlineLobbyModel) IsQuitting() bool {
	return m.quitting
}

// Started returns the match start event once a match began.
func (m OnlineLobbyModel) Started() *multiplayer.MatchStartedEvent {
	return m.started
}

// OnlineMatchModel mirrors a server-side match. Local key presses are sent
// to the coordinator as this session's input; snapshots replace the local
// game state before every render.
type OnlineMatchModel struct {
	game      multiplayer.OnlineGame
	render    func(*core.Screen)
	screen    *core.Screen
	coord     Dispatcher
	audio     *audio.Player
	sessionID multiplayer.SessionID
	matchID   multiplayer.MatchID
	side      core.PlayerID
	tickRate  int
	keys      *KeyMapper
	sampler   *core.KeySampler
	tick      uint64
	ended     *multiplayer.MatchEndedEvent

	backToMenu bool
	quitting   bool
}

// NewOnlineMatchModel creates the client view of a started match. render
// draws the mirrored game, usually the game's own Render method.
func NewOnlineMatchModel(
	game multiplayer.OnlineGame,
	render func(*core.Screen),
	started multiplayer.MatchStartedEvent,
	sessionID multiplayer.SessionID,
	coord Dispatcher,
	player *audio.Player,
	cfg core.RuntimeConfig,
) OnlineMatchModel {
	if player == nil {
		player = audio.NewSilent()
	}
	return OnlineMatchModel{
		game:      game,
		render:    render,
		screen:    core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		coord:     coord,
		audio:     player,
		sessionID: sessionID,
		matchID:   started.MatchID,
		side:      started.Side,
		tickRate:  cfg.TickRate,
		keys:      NewKeyMapper(false),
		sampler:   core.NewKeySampler(core.DefaultHoldTicks),
	}
}

// Init starts the input loop.
func (m OnlineMatchModel) Init() tea.Cmd {
	return tickCmd(m.tickRate)
}

// Update handles messages.
func (m OnlineMatchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.screen.Resize(msg.Width, msg.Height)
	case TickMsg:
		return m.handleTick()
	case SessionEventMsg:
		m.handleEvent(msg.Event)
	}
	return m, nil
}

func (m OnlineMatchModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	for _, p := range m.keys.Map(msg) {
		switch p.Action {
		case core.ActionQuit:
			m.leave()
			m.quitting = true
			return m, tea.Quit
		case core.ActionBack:
			m.leave()
			m.backToMenu = true
			return m, nil
		case core.ActionMute:
			m.audio.ToggleMute()
		case core.ActionRestart:
			// Online matches are never restarted locally.
		default:
			m.sampler.Press(core.Player1, p.Action, m.tick)
		}
	}
	return m, nil
}

func (m OnlineMatchModel) leave() {
	if m.ended == nil {
		m.coord.Send(multiplayer.LeaveMatchMsg{SessionID: m.sessionID, MatchID: m.matchID})
	}
}

// handleTick sends this session's held keys to the match.
func (m OnlineMatchModel) handleTick() (tea.Model, tea.Cmd) {
	if m.ended != nil || m.backToMenu || m.quitting {
		return m, nil
	}

	frame := m.sampler.Frame(m.tick).Player1()
	m.tick++
	if hasActions(frame) {
		m.coord.Send(multiplayer.PlayerInputMsg{MatchID: m.matchID, Player: m.side, Input: frame})
	}
	return m, tickCmd(m.tickRate)
}

func hasActions(f core.InputFrame) bool {
	for _, on := range f.Actions {
		if on {
			return true
		}
	}
	return false
}

func (m *OnlineMatchModel) handleEvent(evt multiplayer.SessionEvent) {
	switch evt := evt.(type) {
	case multiplayer.SnapshotEvent:
		if evt.MatchID != m.matchID {
			return
		}
		m.game.ApplySnapshot(evt.Snapshot)
		m.audio.PlayAll(evt.Sounds)
	case multiplayer.MatchEndedEvent:
		m.ended = &evt
	}
}

// View renders the mirrored game and, once over, the result.
func (m OnlineMatchModel) View() string {
	if m.quitting {
		return ""
	}

	m.screen.Clear()
	m.render(m.screen)
	if m.ended != nil {
		m.screen.DrawMessage(m.resultLines(), core.ColorBrightWhite)
	}
	drawStatus(m.screen, m.audio.Muted(), "You are "+m.side.String())
	return RenderScreen(m.screen)
}

func (m OnlineMatchModel) resultLines() []string {
	e := m.ended
	headline := "DRAW"
	switch e.Winner {
	case m.side:
		headline = "YOU WIN!"
	case m.side.Opponent():
		headline = "YOU LOSE"
	}
	return []string{
		headline,
		"",
		e.Reason.String(),
		fmt.Sprintf("P1 %d  -  %d P2", e.Score1, e.Score2),
		"",
		"Esc: Back to menu",
	}
}

// Ended returns the end event once the match is over.
func (m OnlineMatchModel) Ended() *multiplayer.MatchEndedEvent {
	return m.ended
}

// BackToMenu returns true if user wants to go back to menu.
func (m OnlineMatchModel) BackToMenu() bool {
	return m.backToMenu
}

// IsQuitting returns true if user wants to quit entirely.
func (m OnlineMatchModel) IsQuitting() bool {
	return m.quitting
}
