package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/sky-arcade/internal/core"
	"github.com/vovakirdan/sky-arcade/internal/multiplayer"
)

func newSession(t *testing.T) (SessionModel, *recordingDispatcher) {
	t.Helper()
	session := multiplayer.NewChannelSession("s1", 16)
	t.Cleanup(session.Close)
	d := &recordingDispatcher{}
	m := NewSessionModel(SessionDeps{
		Session:   session,
		Coord:     d,
		Config:    testConfig,
		OnlineCfg: core.RuntimeConfig{ScreenW: 40, ScreenH: 10, TickRate: 60},
	})
	return m, d
}

func sessionUpdate(t *testing.T, m SessionModel, msg tea.Msg) (SessionModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	sm, ok := next.(SessionModel)
	require.True(t, ok)
	return sm, cmd
}

func TestSessionLocalGameAndBack(t *testing.T) {
	m, _ := newSession(t)
	m.menu = moveTo(t, m.menu, "tui-solo")

	m, cmd := sessionUpdate(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, viewGame, m.view)
	assert.NotNil(t, cmd, "the game tick loop starts")
	assert.Contains(t, m.View(), "FAKE")

	m, _ = sessionUpdate(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, viewMenu, m.view)
	assert.False(t, m.quitting)
}

func TestSessionScoreboardRoundTrip(t *testing.T) {
	m, _ := newSession(t)

	m, _ = sessionUpdate(t, m, tea.KeyMsg{Type: tea.KeyTab})
	require.Equal(t, viewScoreboard, m.view)

	m, _ = sessionUpdate(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, viewMenu, m.view)
	assert.False(t, m.quitting)
}

func TestSessionOnlineFlow(t *testing.T) {
	m, d := newSession(t)
	m.menu = moveTo(t, m.menu, "tui-online")

	// Pick Online PvP, the third mode.
	m, _ = sessionUpdate(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m, _ = sessionUpdate(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m, _ = sessionUpdate(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m, _ = sessionUpdate(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, viewLobby, m.view)

	m, _ = sessionUpdate(t, m, runeKey("h"))
	assert.Equal(t, multiplayer.CreateLobbyMsg{SessionID: "s1", GameID: "tui-online"}, d.last())

	m, cmd := sessionUpdate(t, m, event(multiplayer.LobbyCreatedEvent{Code: "QWERTY", GameID: "tui-online"}))
	assert.NotNil(t, cmd, "the event wait is re-armed")
	assert.Contains(t, m.View(), "QWERTY")

	m, _ = sessionUpdate(t, m, event(multiplayer.MatchStartedEvent{MatchID: "m9", GameID: "tui-online", Side: core.Player1}))
	require.Equal(t, viewMatch, m.view)
	assert.Contains(t, m.View(), "ready")

	m, _ = sessionUpdate(t, m, event(multiplayer.SnapshotEvent{MatchID: "m9", Snapshot: mirrorSnapshot{Text: "live"}}))
	assert.Contains(t, m.View(), "live")

	m, _ = sessionUpdate(t, m, event(multiplayer.MatchEndedEvent{MatchID: "m9", Winner: core.Player2}))
	assert.Contains(t, m.View(), "YOU LOSE")

	m, _ = sessionUpdate(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, viewMenu, m.view)
}

func TestSessionIgnoresEventsOutsideOnlineViews(t *testing.T) {
	m, _ := newSession(t)

	m, cmd := sessionUpdate(t, m, event(multiplayer.LobbyErrorEvent{Message: "late"}))
	assert.Equal(t, viewMenu, m.view)
	assert.NotNil(t, cmd)
}

func TestSessionQuit(t *testing.T) {
	m, _ := newSession(t)

	m, cmd := sessionUpdate(t, m, runeKey("q"))
	assert.True(t, m.quitting)
	assert.NotNil(t, cmd)
	assert.Empty(t, m.View())
}

func TestOnlineGameFactory(t *testing.T) {
	g, err := OnlineGameFactory("tui-online", core.RuntimeConfig{ScreenW: 40, ScreenH: 10})
	require.NoError(t, err)
	snap, ok := g.Snapshot().(mirrorSnapshot)
	require.True(t, ok)
	assert.Equal(t, "ready", snap.Text, "factory games are reset")

	_, err = OnlineGameFactory("tui-solo", core.RuntimeConfig{})
	assert.ErrorContains(t, err, "does not support online play")

	_, err = OnlineGameFactory("missing", core.RuntimeConfig{})
	assert.Error(t, err)
}
