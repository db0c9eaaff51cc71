package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/sky-arcade/internal/core"
	"github.com/vovakirdan/sky-arcade/internal/storage"
)

func boardUpdate(t *testing.T, m ScoreboardModel, msg tea.Msg) (ScoreboardModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	sb, ok := next.(ScoreboardModel)
	require.True(t, ok)
	return sb, cmd
}

// boardAt moves the scoreboard to the given game with Tab.
func boardAt(t *testing.T, m ScoreboardModel, gameID string) ScoreboardModel {
	t.Helper()
	for range m.games {
		if g, ok := m.current(); ok && g.ID == gameID {
			return m
		}
		m, _ = boardUpdate(t, m, tea.KeyMsg{Type: tea.KeyTab})
	}
	t.Fatalf("game %q not on the scoreboard", gameID)
	return m
}

func TestScoreboardEmptyWithoutStore(t *testing.T) {
	m := NewScoreboardModel(nil, 80, 30)
	assert.Contains(t, m.View(), "No scores recorded yet.")
}

func TestScoreboardShowsScoresStatsAndTrophies(t *testing.T) {
	store := openStore(t)
	for _, s := range []int{100, 300} {
		_, err := store.SaveScore("tui-solo", s)
		require.NoError(t, err)
	}
	require.NoError(t, store.SaveTrophy("tui-solo", core.Trophy{ID: "ace", Name: "Ace Pilot"}))

	m := boardAt(t, NewScoreboardModel(store, 80, 30), "tui-solo")
	view := m.View()
	assert.Contains(t, view, "HIGH SCORES - Fake tui-solo")
	assert.Contains(t, view, "300")
	assert.Contains(t, view, "Games: 2")
	assert.Contains(t, view, "Ace Pilot")

	// Online matches only exist for versus games.
	m, _ = boardUpdate(t, m, runeKey("o"))
	assert.Equal(t, paneScores, m.pane)
}

func TestScoreboardOnlineMatches(t *testing.T) {
	store := openStore(t)
	_, err := store.SaveOnlineMatch(storage.OnlineMatchResult{
		MatchID:        "m1",
		GameID:         "tui-versus",
		Player1Session: "a",
		Player2Session: "b",
		Score1:         5,
		Score2:         2,
		WinnerSession:  "a",
		EndReason:      "completed",
		Duration:       75,
	})
	require.NoError(t, err)

	m := boardAt(t, NewScoreboardModel(store, 80, 30), "tui-versus")
	m, _ = boardUpdate(t, m, runeKey("o"))
	require.Equal(t, paneMatches, m.pane)

	view := m.View()
	assert.Contains(t, view, "ONLINE MATCHES - Fake tui-versus")
	assert.Contains(t, view, "5 - 2")
	assert.Contains(t, view, "P1 won")
	assert.Contains(t, view, "1:15")

	// Switching to a solo game falls back to scores.
	m = boardAt(t, m, "tui-solo")
	assert.Equal(t, paneScores, m.pane)
}

func TestScoreboardGameCycling(t *testing.T) {
	m := NewScoreboardModel(nil, 80, 30)
	require.NotEmpty(t, m.games)

	m, _ = boardUpdate(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	assert.Equal(t, len(m.games)-1, m.cursor)
	m, _ = boardUpdate(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, 0, m.cursor)
}

func TestScoreboardBackAndQuit(t *testing.T) {
	m := NewScoreboardModel(nil, 80, 30)

	back, cmd := boardUpdate(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.NotNil(t, cmd)
	assert.True(t, back.IsGoingBack())
	assert.Empty(t, back.View())

	quit, _ := boardUpdate(t, m, runeKey("q"))
	assert.True(t, quit.IsQuitting())
}

func TestMatchOutcome(t *testing.T) {
	tests := []struct {
		name string
		in   storage.OnlineMatchResult
		want string
	}{
		{"host won", storage.OnlineMatchResult{Player1Session: "a", WinnerSession: "a", EndReason: "completed"}, "P1 won"},
		{"guest won", storage.OnlineMatchResult{Player1Session: "a", WinnerSession: "b", EndReason: "completed"}, "P2 won"},
		{"draw", storage.OnlineMatchResult{Player1Session: "a", EndReason: "completed"}, "draw"},
		{"disconnect", storage.OnlineMatchResult{Player1Session: "a", WinnerSession: "a", EndReason: "disconnect"}, "disconnect"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, matchOutcome(tt.in))
		})
	}
}
