package multiplayer

import "github.com/vovakirdan/sky-arcade/internal/core"

// CoordinatorMessage is anything a session asks of the coordinator. All
// messages travel through a single channel and are handled in order.
type CoordinatorMessage interface {
	coordinatorMessage()
}

// CreateLobbyMsg opens a lobby for a versus game and makes the sender its host.
type CreateLobbyMsg struct {
	SessionID SessionID
	GameID    string
}

func (CreateLobbyMsg) coordinatorMessage() {}

// JoinLobbyMsg joins the lobby with the given six letter code. The match
// starts as soon as the joiner is in.
type JoinLobbyMsg struct {
	SessionID SessionID
	Code      string
}

func (JoinLobbyMsg) coordinatorMessage() {}

// CancelLobbyMsg closes a lobby. Only its host may send it.
type CancelLobbyMsg struct {
	SessionID SessionID
	Code      string
}

func (CancelLobbyMsg) coordinatorMessage() {}

// LeaveLobbyMsg takes the joiner out of a lobby that has not started.
type LeaveLobbyMsg struct {
	SessionID SessionID
	Code      string
}

func (LeaveLobbyMsg) coordinatorMessage() {}

// LeaveMatchMsg forfeits a running match.
type LeaveMatchMsg struct {
	SessionID SessionID
	MatchID   MatchID
}

func (LeaveMatchMsg) coordinatorMessage() {}

// PlayerInputMsg is one side's sampled input for the next match tick.
type PlayerInputMsg struct {
	MatchID MatchID
	Player  PlayerID
	Input   core.InputFrame
}

func (PlayerInputMsg) coordinatorMessage() {}

// SessionDisconnectedMsg reports a closed SSH session. The session leaves
// any lobby and its match ends by disconnect.
type SessionDisconnectedMsg struct {
	SessionID SessionID
}

func (SessionDisconnectedMsg) coordinatorMessage() {}

// SessionEvent is pushed from the coordinator or a match loop to one session.
type SessionEvent interface {
	sessionEvent()
}

// LobbyCreatedEvent hands the host the join code to share.
type LobbyCreatedEvent struct {
	Code   string
	GameID string
}

func (LobbyCreatedEvent) sessionEvent() {}

// LobbyErrorEvent carries a human readable lobby failure.
type LobbyErrorEvent struct {
	Message string
}

func (LobbyErrorEvent) sessionEvent() {}

// LobbyJoinedEvent tells both sides who they play against.
type LobbyJoinedEvent struct {
	Code       string
	Side       PlayerID // host is Player1, joiner Player2
	OpponentID SessionID
}

func (LobbyJoinedEvent) sessionEvent() {}

// LobbyPlayerLeftEvent tells the host the joiner left before kickoff.
type LobbyPlayerLeftEvent struct {
	Code string
}

func (LobbyPlayerLeftEvent) sessionEvent() {}

// MatchStartedEvent switches a session from the lobby to the match view.
type MatchStartedEvent struct {
	MatchID MatchID
	GameID  string
	Side    PlayerID
	Code    string
}

func (MatchStartedEvent) sessionEvent() {}

// MatchEndedEvent is the last event of a match.
type MatchEndedEvent struct {
	MatchID MatchID
	Reason  MatchEndReason
	Winner  PlayerID // zero on a draw or when the lobby closed
	Score1  int
	Score2  int
}

func (MatchEndedEvent) sessionEvent() {}

// MatchEndReason says how a match or lobby came to an end.
type MatchEndReason int

const (
	MatchEndReasonCompleted  MatchEndReason = iota // the game reported game over
	MatchEndReasonDisconnect                       // a player dropped or forfeited
	MatchEndReasonHostLeft                         // the lobby closed under the joiner
)

func (r MatchEndReason) String() string {
	switch r {
	case MatchEndReasonCompleted:
		return "Match completed"
	case MatchEndReasonDisconnect:
		return "Opponent disconnected"
	case MatchEndReasonHostLeft:
		return "Host left"
	default:
		return "Unknown"
	}
}

// SnapshotEvent is the authoritative state after a match tick.
type SnapshotEvent struct {
	MatchID  MatchID
	Tick     uint64
	Snapshot GameSnapshot
	Sounds   []core.Sound // played by the receiving client
}

func (SnapshotEvent) sessionEvent() {}

// GameSnapshot is a versus game's full state. Implementations are plain
// structs with JSON tags so spectators receive them unchanged.
type GameSnapshot interface {
	IsGameSnapshot()
}
