package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/sky-arcade/internal/core"
	"github.com/vovakirdan/sky-arcade/internal/multiplayer"
)

func menuUpdate(t *testing.T, m MenuModel, msg tea.Msg) (MenuModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	mm, ok := next.(MenuModel)
	require.True(t, ok)
	return mm, cmd
}

// moveTo puts the cursor on the given game.
func moveTo(t *testing.T, m MenuModel, gameID string) MenuModel {
	t.Helper()
	for i, item := range m.items {
		if item.GameID == gameID {
			m.cursor = i
			return m
		}
	}
	t.Fatalf("game %q not in menu", gameID)
	return m
}

func TestMenuListsRegisteredGames(t *testing.T) {
	m := NewMenuModel(nil, testConfig, false)

	ids := make([]string, 0, len(m.items))
	for _, item := range m.items {
		ids = append(ids, item.GameID)
	}
	assert.Subset(t, ids, []string{"tui-online", "tui-solo", "tui-versus"})

	m = moveTo(t, m, "tui-versus")
	assert.True(t, m.items[m.cursor].Versus)
	assert.Equal(t, multiplayer.MatchModeVsCPU, m.items[m.cursor].Mode)
	assert.Contains(t, m.View(), "Fake tui-versus (2P)")
}

func TestMenuSelectSoloGame(t *testing.T) {
	m := moveTo(t, NewMenuModel(nil, testConfig, false), "tui-solo")

	m, cmd := menuUpdate(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	require.NotNil(t, m.Selected())

	res := m.Result()
	assert.Equal(t, "tui-solo", res.GameID)
	assert.Equal(t, multiplayer.MatchModeSolo, res.Mode)
	assert.False(t, res.Quit)
}

func TestMenuVersusModePicker(t *testing.T) {
	m := moveTo(t, NewMenuModel(nil, testConfig, false), "tui-versus")

	m, cmd := menuUpdate(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
	assert.Nil(t, m.Selected())
	view := m.View()
	assert.Contains(t, view, "Choose a mode")
	assert.Contains(t, view, "> vs CPU")
	assert.Contains(t, view, "Local 2P")
	assert.NotContains(t, view, "Online PvP", "online play needs the SSH server")

	m, _ = menuUpdate(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m, _ = menuUpdate(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m, cmd = menuUpdate(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.Equal(t, multiplayer.MatchModeLocalPvP, m.Result().Mode)
}

func TestMenuModePickerBack(t *testing.T) {
	m := moveTo(t, NewMenuModel(nil, testConfig, true), "tui-versus")

	m, _ = menuUpdate(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Contains(t, m.View(), "Online PvP")

	m, _ = menuUpdate(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Contains(t, m.View(), "Select a game")
	assert.Nil(t, m.Selected())
}

func TestMenuScoreboardAndQuit(t *testing.T) {
	m := NewMenuModel(nil, testConfig, false)

	sb, cmd := menuUpdate(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.NotNil(t, cmd)
	assert.True(t, sb.Result().WantsScoreboard)

	q, _ := menuUpdate(t, m, runeKey("q"))
	assert.True(t, q.Result().Quit)
	assert.Empty(t, q.View())
}

func TestMenuResizeUpdatesConfig(t *testing.T) {
	m := NewMenuModel(nil, testConfig, false)
	m, _ = menuUpdate(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})

	assert.Equal(t, core.RuntimeConfig{ScreenW: 120, ScreenH: 40, TickRate: 60, Seed: 1}, m.Config())
}

func TestCenterText(t *testing.T) {
	assert.Equal(t, "   abcd", centerText("abcd", 10))
	assert.Equal(t, "toolong", centerText("toolong", 4))
	assert.Equal(t, "  ↑↓", centerText("↑↓", 6))
}
