// Package multiplayer provides lobbies, session plumbing and the
// authoritative match loop used for online versus play over SSH.
package multiplayer

import (
	"github.com/google/uuid"

	"github.com/vovakirdan/sky-arcade/internal/core"
)

// PlayerID is an alias to core.PlayerID for convenience.
// Player1 is the host (left side), Player2 the joiner or CPU (right side).
type PlayerID = core.PlayerID

// Re-export player constants for convenience.
const (
	Player1 = core.Player1
	Player2 = core.Player2
)

// SessionID uniquely identifies a player's session (e.g., SSH connection).
type SessionID string

// NewSessionID returns a random session identifier.
func NewSessionID() SessionID {
	return SessionID(uuid.NewString())
}

// MatchID uniquely identifies a game match.
type MatchID string

// NewMatchID returns a random match identifier.
func NewMatchID() MatchID {
	return MatchID(uuid.NewString())
}

// MatchMode defines who controls Player 2.
type MatchMode int

const (
	// MatchModeSolo is a single-player game (Sky Fighter, Skull Hunter).
	MatchModeSolo MatchMode = iota

	// MatchModeVsCPU lets the game's CPU opponent drive Player 2.
	MatchModeVsCPU

	// MatchModeLocalPvP shares one keyboard between two players.
	MatchModeLocalPvP

	// MatchModeOnlinePvP pairs two SSH sessions through a lobby code.
	MatchModeOnlinePvP
)

// String returns a human-readable name for the match mode.
func (m MatchMode) String() string {
	switch m {
	case MatchModeSolo:
		return "Solo"
	case MatchModeVsCPU:
		return "vs CPU"
	case MatchModeLocalPvP:
		return "Local 2P"
	case MatchModeOnlinePvP:
		return "Online PvP"
	default:
		return "Unknown"
	}
}
