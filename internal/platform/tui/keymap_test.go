package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"

	"github.com/vovakirdan/sky-arcade/internal/core"
)

func runeKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestKeyMapperPlayerBindings(t *testing.T) {
	km := NewKeyMapper(true)

	tests := []struct {
		name string
		msg  tea.KeyMsg
		want []KeyPress
	}{
		{"w", runeKey("w"), []KeyPress{{core.Player1, core.ActionUp}}},
		{"shifted D", runeKey("D"), []KeyPress{{core.Player1, core.ActionRight}}},
		{"space", tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, []KeyPress{
			{core.Player1, core.ActionFire},
			{core.Player1, core.ActionGrab},
		}},
		{"f", runeKey("f"), []KeyPress{{core.Player1, core.ActionPunch}}},
		{"g", runeKey("g"), []KeyPress{{core.Player1, core.ActionBlock}}},
		{"q", runeKey("q"), []KeyPress{{core.Player1, core.ActionStickLeft}}},
		{"e", runeKey("e"), []KeyPress{{core.Player1, core.ActionStickRight}}},
		{"up", tea.KeyMsg{Type: tea.KeyUp}, []KeyPress{{core.Player2, core.ActionUp}}},
		{"left", tea.KeyMsg{Type: tea.KeyLeft}, []KeyPress{{core.Player2, core.ActionLeft}}},
		{"enter", tea.KeyMsg{Type: tea.KeyEnter}, []KeyPress{
			{core.Player2, core.ActionFire},
			{core.Player2, core.ActionGrab},
		}},
		{"l", runeKey("l"), []KeyPress{{core.Player2, core.ActionPunch}}},
		{"k", runeKey("k"), []KeyPress{{core.Player2, core.ActionBlock}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, km.Map(tt.msg))
		})
	}
}

func TestKeyMapperSinglePlayerFoldsPlayer2(t *testing.T) {
	km := NewKeyMapper(false)

	assert.Equal(t, []KeyPress{{core.Player1, core.ActionDown}}, km.Map(tea.KeyMsg{Type: tea.KeyDown}))
	assert.Equal(t, []KeyPress{{core.Player1, core.ActionPunch}}, km.Map(runeKey("l")))
}

func TestKeyMapperGlobalKeys(t *testing.T) {
	km := NewKeyMapper(true)

	assert.Equal(t, []KeyPress{{core.Player1, core.ActionPause}}, km.Map(runeKey("p")))
	assert.Equal(t, []KeyPress{{core.Player1, core.ActionRestart}}, km.Map(runeKey("r")))
	assert.Equal(t, []KeyPress{{core.Player1, core.ActionMute}}, km.Map(runeKey("m")))
	assert.Equal(t, []KeyPress{{core.Player1, core.ActionBack}}, km.Map(tea.KeyMsg{Type: tea.KeyEsc}))
	assert.Equal(t, []KeyPress{{core.Player1, core.ActionQuit}}, km.Map(tea.KeyMsg{Type: tea.KeyCtrlC}))
	assert.Empty(t, km.Map(runeKey("z")))
}

func TestMapKeyToMenuAction(t *testing.T) {
	km := NewKeyMapper(false)

	assert.Equal(t, MenuActionUp, km.MapKeyToMenuAction(tea.KeyMsg{Type: tea.KeyUp}))
	assert.Equal(t, MenuActionDown, km.MapKeyToMenuAction(runeKey("j")))
	assert.Equal(t, MenuActionSelect, km.MapKeyToMenuAction(tea.KeyMsg{Type: tea.KeyEnter}))
	assert.Equal(t, MenuActionBack, km.MapKeyToMenuAction(tea.KeyMsg{Type: tea.KeyEsc}))
	assert.Equal(t, MenuActionScoreboard, km.MapKeyToMenuAction(tea.KeyMsg{Type: tea.KeyTab}))
	assert.Equal(t, MenuActionQuit, km.MapKeyToMenuAction(runeKey("Q")))
	assert.Equal(t, MenuActionNone, km.MapKeyToMenuAction(runeKey("x")))
}
