package multiplayer

import (
	"context"
	"crypto/rand"
	"encoding/base32"
	"fmt"
	"io"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/sky-arcade/internal/core"
)

// Lobby represents a waiting room for a match.
type Lobby struct {
	Code      string
	GameID    string
	Host      SessionHandle
	Joiner    SessionHandle
	CreatedAt time.Time
}

// CoordinatorConfig holds configuration for the coordinator.
type CoordinatorConfig struct {
	LobbyTimeout  time.Duration // How long before an empty lobby expires
	TickRate      int           // Game tick rate (Hz)
	CleanupPeriod time.Duration // How often to clean up expired lobbies
	ScreenW       int           // Playfield used for online games
	ScreenH       int
}

// DefaultCoordinatorConfig returns sensible defaults.
func DefaultCoordinatorConfig() CoordinatorConfig {
	return CoordinatorConfig{
		LobbyTimeout:  2 * time.Minute,
		TickRate:      60,
		CleanupPeriod: 30 * time.Second,
		ScreenW:       80,
		ScreenH:       24,
	}
}

// GameFactory creates game instances for matches.
type GameFactory func(gameID string, cfg core.RuntimeConfig) (OnlineGame, error)

// MatchResultSaver persists match outcomes without tying the coordinator
// to a storage backend.
type MatchResultSaver interface {
	SaveMatchResult(result MatchResultData) error
}

// MatchResultData contains match result data for persistence.
type MatchResultData struct {
	MatchID        string
	GameID         string
	Player1Session string
	Player2Session string
	Score1         int
	Score2         int
	WinnerSession  string
	EndReason      string
	DurationSecs   int
}

// Coordinator manages lobbies and active matches.
// All lobby mutations run on a single goroutine fed by Send.
type Coordinator struct {
	config      CoordinatorConfig
	gameFactory GameFactory
	sessions    *SessionRegistry
	logger      *log.Logger
	resultSaver MatchResultSaver // Optional
	observer    Observer         // Optional

	mu           sync.RWMutex
	lobbies      map[string]*Lobby
	matches      map[MatchID]*OnlineMatch
	sessionLobby map[SessionID]string
	sessionMatch map[SessionID]MatchID

	msgChan chan CoordinatorMessage
	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

// NewCoordinator creates a new coordinator. logger may be nil.
func NewCoordinator(cfg CoordinatorConfig, factory GameFactory, sessions *SessionRegistry, logger *log.Logger) *Coordinator {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Coordinator{
		config:       cfg,
		gameFactory:  factory,
		sessions:     sessions,
		logger:       logger,
		lobbies:      make(map[string]*Lobby),
		matches:      make(map[MatchID]*OnlineMatch),
		sessionLobby: make(map[SessionID]string),
		sessionMatch: make(map[SessionID]MatchID),
		msgChan:      make(chan CoordinatorMessage, 256),
		ctx:          ctx,
		cancel:       cancel,
	}
}

// SetResultSaver sets the optional match result saver.
func (c *Coordinator) SetResultSaver(saver MatchResultSaver) { c.resultSaver = saver }

// SetObserver registers a snapshot observer such as the spectator hub.
func (c *Coordinator) SetObserver(o Observer) { c.observer = o }

// Start begins background processing.
func (c *Coordinator) Start() {
	c.wg.Add(2)
	go func() {
		defer c.wg.Done()
		c.processMessages()
	}()
	go func() {
		defer c.wg.Done()
		c.cleanupLoop()
	}()
}

// Stop cancels every running match and waits for the background loops.
func (c *Coordinator) Stop() {
	c.cancel()
	c.wg.Wait()
}

// Send queues a message for the coordinator goroutine.
func (c *Coordinator) Send(msg CoordinatorMessage) {
	select {
	case c.msgChan <- msg:
	case <-c.ctx.Done():
	}
}

func (c *Coordinator) processMessages() {
	for {
		select {
		case msg := <-c.msgChan:
			c.handleMessage(msg)
		case <-c.ctx.Done():
			return
		}
	}
}

func (c *Coordinator) handleMessage(msg CoordinatorMessage) {
	switch m := msg.(type) {
	case CreateLobbyMsg:
		c.handleCreateLobby(m)
	case JoinLobbyMsg:
		c.handleJoinLobby(m)
	case CancelLobbyMsg:
		c.handleCancelLobby(m)
	case LeaveLobbyMsg:
		c.handleLeaveLobby(m)
	case LeaveMatchMsg:
		c.handleLeaveMatch(m)
	case PlayerInputMsg:
		c.handlePlayerInput(m)
	case SessionDisconnectedMsg:
		c.handleSessionDisconnected(m)
	}
}

func (c *Coordinator) handleCreateLobby(msg CreateLobbyMsg) {
	session, ok := c.sessions.Get(msg.SessionID)
	if !ok {
		return
	}

	c.mu.Lock()
	if _, inLobby := c.sessionLobby[msg.SessionID]; inLobby {
		c.mu.Unlock()
		session.Send(LobbyErrorEvent{Message: "Already in a lobby"})
		return
	}
	code := c.generateUniqueCode()
	c.lobbies[code] = &Lobby{
		Code:      code,
		GameID:    msg.GameID,
		Host:      session,
		CreatedAt: time.Now(),
	}
	c.sessionLobby[msg.SessionID] = code
	c.mu.Unlock()

	c.logger.Debug("lobby created", "code", code, "game", msg.GameID, "host", msg.SessionID)
	session.Send(LobbyCreatedEvent{Code: code, GameID: msg.GameID})
}

func (c *Coordinator) handleJoinLobby(msg JoinLobbyMsg) {
	session, ok := c.sessions.Get(msg.SessionID)
	if !ok {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, inLobby := c.sessionLobby[msg.SessionID]; inLobby {
		session.Send(LobbyErrorEvent{Message: "Already in a lobby"})
		return
	}

	code := strings.ToUpper(strings.TrimSpace(msg.Code))
	lobby, exists := c.lobbies[code]
	switch {
	case !exists:
		session.Send(LobbyErrorEvent{Message: "Lobby not found"})
		return
	case lobby.Joiner != nil:
		session.Send(LobbyErrorEvent{Message: "Lobby is full"})
		return
	case lobby.Host.ID() == msg.SessionID:
		session.Send(LobbyErrorEvent{Message: "Cannot join your own lobby"})
		return
	}

	lobby.Joiner = session
	c.sessionLobby[msg.SessionID] = code

	lobby.Host.Send(LobbyJoinedEvent{Code: code, Side: Player1, OpponentID: msg.SessionID})
	session.Send(LobbyJoinedEvent{Code: code, Side: Player2, OpponentID: lobby.Host.ID()})

	c.startMatch(lobby)
}

// startMatch must be called with c.mu held.
func (c *Coordinator) startMatch(lobby *Lobby) {
	cfg := core.RuntimeConfig{
		ScreenW:  c.config.ScreenW,
		ScreenH:  c.config.ScreenH,
		TickRate: c.config.TickRate,
		Seed:     time.Now().UnixNano(),
	}

	game, err := c.gameFactory(lobby.GameID, cfg)
	if err != nil {
		c.logger.Error("cannot create online game", "game", lobby.GameID, "err", err)
		lobby.Host.Send(LobbyErrorEvent{Message: "Failed to create game"})
		lobby.Joiner.Send(LobbyErrorEvent{Message: "Failed to create game"})
		delete(c.sessionLobby, lobby.Joiner.ID())
		lobby.Joiner = nil
		return
	}

	info := MatchInfo{
		ID:        NewMatchID(),
		GameID:    lobby.GameID,
		Code:      lobby.Code,
		StartedAt: time.Now(),
	}
	match := NewOnlineMatch(info, game, lobby.Host, lobby.Joiner, c.config.TickRate, c.observer)

	hostID, joinerID := lobby.Host.ID(), lobby.Joiner.ID()
	c.matches[info.ID] = match
	delete(c.sessionLobby, hostID)
	delete(c.sessionLobby, joinerID)
	c.sessionMatch[hostID] = info.ID
	c.sessionMatch[joinerID] = info.ID
	delete(c.lobbies, lobby.Code)

	lobby.Host.Send(MatchStartedEvent{MatchID: info.ID, GameID: info.GameID, Side: Player1, Code: lobby.Code})
	lobby.Joiner.Send(MatchStartedEvent{MatchID: info.ID, GameID: info.GameID, Side: Player2, Code: lobby.Code})
	c.logger.Info("match started", "match", info.ID, "game", info.GameID, "p1", hostID, "p2", joinerID)

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		match.Run(c.ctx, func(result MatchResult) {
			c.handleMatchEnded(info.ID, result)
		})
		c.forgetMatch(info.ID)
	}()
}

func (c *Coordinator) handleMatchEnded(matchID MatchID, result MatchResult) {
	c.mu.RLock()
	match, exists := c.matches[matchID]
	c.mu.RUnlock()
	if !exists {
		return
	}

	p1, p2 := match.player1.ID(), match.player2.ID()
	if c.resultSaver != nil {
		winner := ""
		switch result.Winner {
		case Player1:
			winner = string(p1)
		case Player2:
			winner = string(p2)
		}
		data := MatchResultData{
			MatchID:        string(matchID),
			GameID:         match.info.GameID,
			Player1Session: string(p1),
			Player2Session: string(p2),
			Score1:         result.Score1,
			Score2:         result.Score2,
			WinnerSession:  winner,
			EndReason:      result.Reason.String(),
			DurationSecs:   int(result.Ticks / uint64(max(1, c.config.TickRate))), //nolint:gosec // tick rate clamped positive
		}
		if err := c.resultSaver.SaveMatchResult(data); err != nil {
			c.logger.Warn("cannot save match result", "match", matchID, "err", err)
		}
	}

	c.logger.Info("match ended", "match", matchID, "reason", result.Reason, "winner", result.Winner,
		"score1", result.Score1, "score2", result.Score2)

	end := MatchEndedEvent{
		MatchID: matchID,
		Reason:  result.Reason,
		Winner:  result.Winner,
		Score1:  result.Score1,
		Score2:  result.Score2,
	}
	match.player1.Send(end)
	match.player2.Send(end)
}

func (c *Coordinator) forgetMatch(id MatchID) {
	c.mu.Lock()
	defer c.mu.Unlock()

	match, ok := c.matches[id]
	if !ok {
		return
	}
	delete(c.sessionMatch, match.player1.ID())
	delete(c.sessionMatch, match.player2.ID())
	delete(c.matches, id)
}

// closeLobby removes a lobby and tells the joiner the host is gone.
// Must be called with c.mu held.
func (c *Coordinator) closeLobby(lobby *Lobby) {
	if lobby.Joiner != nil {
		lobby.Joiner.Send(MatchEndedEvent{Reason: MatchEndReasonHostLeft})
		delete(c.sessionLobby, lobby.Joiner.ID())
	}
	delete(c.sessionLobby, lobby.Host.ID())
	delete(c.lobbies, lobby.Code)
}

func (c *Coordinator) handleCancelLobby(msg CancelLobbyMsg) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if lobby, ok := c.lobbies[msg.Code]; ok && lobby.Host.ID() == msg.SessionID {
		c.closeLobby(lobby)
	}
}

func (c *Coordinator) handleLeaveLobby(msg LeaveLobbyMsg) {
	c.mu.Lock()
	defer c.mu.Unlock()

	lobby, ok := c.lobbies[msg.Code]
	if !ok {
		return
	}
	if lobby.Joiner != nil && lobby.Joiner.ID() == msg.SessionID {
		lobby.Joiner = nil
		delete(c.sessionLobby, msg.SessionID)
		lobby.Host.Send(LobbyPlayerLeftEvent{Code: msg.Code})
		return
	}
	if lobby.Host.ID() == msg.SessionID {
		c.closeLobby(lobby)
	}
}

func (c *Coordinator) handleLeaveMatch(msg LeaveMatchMsg) {
	c.mu.RLock()
	match, ok := c.matches[msg.MatchID]
	c.mu.RUnlock()
	if ok {
		match.PlayerDisconnected(msg.SessionID)
	}
}

func (c *Coordinator) handlePlayerInput(msg PlayerInputMsg) {
	c.mu.RLock()
	match, ok := c.matches[msg.MatchID]
	c.mu.RUnlock()
	if ok {
		match.SendInput(msg.Player, msg.Input)
	}
}

func (c *Coordinator) handleSessionDisconnected(msg SessionDisconnectedMsg) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if code, inLobby := c.sessionLobby[msg.SessionID]; inLobby {
		if lobby, ok := c.lobbies[code]; ok {
			switch {
			case lobby.Host.ID() == msg.SessionID:
				c.closeLobby(lobby)
			case lobby.Joiner != nil && lobby.Joiner.ID() == msg.SessionID:
				lobby.Joiner = nil
				lobby.Host.Send(LobbyPlayerLeftEvent{Code: code})
			}
		}
		delete(c.sessionLobby, msg.SessionID)
	}

	if matchID, inMatch := c.sessionMatch[msg.SessionID]; inMatch {
		if match, ok := c.matches[matchID]; ok {
			match.PlayerDisconnected(msg.SessionID)
		}
	}
}

func (c *Coordinator) cleanupLoop() {
	ticker := time.NewTicker(c.config.CleanupPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.cleanupExpiredLobbies(time.Now())
		case <-c.ctx.Done():
			return
		}
	}
}

func (c *Coordinator) cleanupExpiredLobbies(now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for code, lobby := range c.lobbies {
		if lobby.Joiner == nil && now.Sub(lobby.CreatedAt) > c.config.LobbyTimeout {
			lobby.Host.Send(LobbyErrorEvent{Message: "Lobby expired"})
			delete(c.sessionLobby, lobby.Host.ID())
			delete(c.lobbies, code)
			c.logger.Debug("lobby expired", "code", code)
		}
	}
}

func (c *Coordinator) generateUniqueCode() string {
	for {
		code := generateJoinCode()
		if _, exists := c.lobbies[code]; !exists {
			return code
		}
	}
}

// generateJoinCode creates a 6-character code from the base32 alphabet (A-Z, 2-7).
func generateJoinCode() string {
	b := make([]byte, 4)
	if _, err := rand.Read(b); err != nil {
		return fmt.Sprintf("%06X", time.Now().UnixNano()&0xFFFFFF)
	}
	return base32.StdEncoding.EncodeToString(b)[:6]
}

// ActiveMatches lists running matches, oldest first.
func (c *Coordinator) ActiveMatches() []MatchInfo {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]MatchInfo, 0, len(c.matches))
	for _, m := range c.matches {
		out = append(out, m.info)
	}
	slices.SortFunc(out, func(a, b MatchInfo) int { return a.StartedAt.Compare(b.StartedAt) })
	return out
}

// LobbyCount returns the number of active lobbies.
func (c *Coordinator) LobbyCount() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.lobbies)
}

// MatchCount returns the number of active matches.
func (c *Coordinator) MatchCount() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.matches)
}
