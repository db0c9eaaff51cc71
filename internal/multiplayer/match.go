package multiplayer

import (
	"context"
	"time"

	"github.com/vovakirdan/sky-arcade/internal/core"
	"github.com/vovakirdan/sky-arcade/internal/sim"
)

// OnlineGame is implemented by versus games that can run authoritatively on
// the server and be mirrored on clients from snapshots.
type OnlineGame interface {
	Reset(cfg core.RuntimeConfig)

	// StepMulti advances the game by one tick using input from both players.
	StepMulti(input core.MultiInputFrame) core.StepResult

	// Snapshot captures the state needed to render the game remotely.
	Snapshot() GameSnapshot

	// ApplySnapshot overwrites local state with a server snapshot.
	ApplySnapshot(s GameSnapshot)

	IsGameOver() bool

	// Winner returns Player1/Player2, or 0 while the game is running.
	Winner() PlayerID

	Score1() int
	Score2() int
}

// MatchInfo describes a running match for observers.
type MatchInfo struct {
	ID        MatchID   `json:"match_id"`
	GameID    string    `json:"game_id"`
	Code      string    `json:"code"`
	StartedAt time.Time `json:"started_at"`
}

// Observer receives every broadcast snapshot. Implementations must not block.
type Observer interface {
	ObserveSnapshot(info MatchInfo, tick uint64, snap GameSnapshot)
	MatchEnded(id MatchID)
}

// MatchResult contains the outcome of a completed match.
type MatchResult struct {
	MatchID MatchID
	Reason  MatchEndReason
	Winner  PlayerID
	Score1  int
	Score2  int
	Ticks   uint64
}

// OnlineMatch runs one authoritative game between two sessions.
type OnlineMatch struct {
	info     MatchInfo
	game     OnlineGame
	tickRate int
	observer Observer

	player1 SessionHandle
	player2 SessionHandle

	pending   map[PlayerID]core.InputFrame // Owned by the Run goroutine
	inputChan chan playerInput

	disconnects chan SessionID
	tick        uint64
}

type playerInput struct {
	player PlayerID
	input  core.InputFrame
}

// NewOnlineMatch creates a match. observer may be nil.
func NewOnlineMatch(info MatchInfo, game OnlineGame, p1, p2 SessionHandle, tickRate int, observer Observer) *OnlineMatch {
	return &OnlineMatch{
		info:        info,
		game:        game,
		tickRate:    tickRate,
		observer:    observer,
		player1:     p1,
		player2:     p2,
		pending:     make(map[PlayerID]core.InputFrame),
		inputChan:   make(chan playerInput, 128),
		disconnects: make(chan SessionID, 2),
	}
}

// ID returns the match identifier.
func (m *OnlineMatch) ID() MatchID { return m.info.ID }

// Info returns the match description.
func (m *OnlineMatch) Info() MatchInfo { return m.info }

// SendInput queues player input for the next tick. Never blocks.
func (m *OnlineMatch) SendInput(player PlayerID, input core.InputFrame) {
	select {
	case m.inputChan <- playerInput{player: player, input: input}:
	default:
	}
}

// PlayerDisconnected signals that a session left the match.
func (m *OnlineMatch) PlayerDisconnected(id SessionID) {
	select {
	case m.disconnects <- id:
	default:
	}
}

// Run drives the match until the game ends, a player disconnects or ctx is
// cancelled. onComplete receives the result in the first two cases.
func (m *OnlineMatch) Run(ctx context.Context, onComplete func(MatchResult)) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go m.watchSessions(ctx)

	var result MatchResult
	finished := false

	_ = sim.Run(ctx, m.tickRate, func(uint64) bool {
		select {
		case id := <-m.disconnects:
			result = m.disconnectResult(id)
			finished = true
			return false
		default:
		}
		result, finished = m.step()
		return !finished
	})

	if m.observer != nil {
		m.observer.MatchEnded(m.info.ID)
	}
	if finished && onComplete != nil {
		onComplete(result)
	}
}

// step runs one tick. It reports the result once the game is over.
func (m *OnlineMatch) step() (MatchResult, bool) {
	res := m.game.StepMulti(m.collectInput())
	m.tick++

	snap := m.game.Snapshot()
	evt := SnapshotEvent{MatchID: m.info.ID, Tick: m.tick, Snapshot: snap, Sounds: res.Sounds}
	m.player1.Send(evt)
	m.player2.Send(evt)
	if m.observer != nil {
		m.observer.ObserveSnapshot(m.info, m.tick, snap)
	}

	if !m.game.IsGameOver() {
		return MatchResult{}, false
	}
	return MatchResult{
		MatchID: m.info.ID,
		Reason:  MatchEndReasonCompleted,
		Winner:  m.game.Winner(),
		Score1:  m.game.Score1(),
		Score2:  m.game.Score2(),
		Ticks:   m.tick,
	}, true
}

// collectInput merges every frame received since the last tick.
// Actions are OR-ed together; the frames are consumed.
func (m *OnlineMatch) collectInput() core.MultiInputFrame {
	for drained := false; !drained; {
		select {
		case pi := <-m.inputChan:
			frame, ok := m.pending[pi.player]
			if !ok {
				frame = core.NewInputFrame()
			}
			for a, on := range pi.input.Actions {
				if on {
					frame.Set(a)
				}
			}
			m.pending[pi.player] = frame
		default:
			drained = true
		}
	}

	multi := core.NewMultiInputFrame()
	for _, p := range []PlayerID{Player1, Player2} {
		if frame, ok := m.pending[p]; ok {
			multi.SetPlayer(p, frame)
		}
	}
	clear(m.pending)
	return multi
}

func (m *OnlineMatch) disconnectResult(id SessionID) MatchResult {
	winner := Player1
	if id == m.player1.ID() {
		winner = Player2
	}
	return MatchResult{
		MatchID: m.info.ID,
		Reason:  MatchEndReasonDisconnect,
		Winner:  winner,
		Score1:  m.game.Score1(),
		Score2:  m.game.Score2(),
		Ticks:   m.tick,
	}
}

func (m *OnlineMatch) watchSessions(ctx context.Context) {
	select {
	case <-m.player1.Done():
		m.PlayerDisconnected(m.player1.ID())
	case <-m.player2.Done():
		m.PlayerDisconnected(m.player2.ID())
	case <-ctx.Done():
	}
}
