package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/sky-arcade/internal/core"
)

// KeyPress is one action triggered by a key, attributed to a player.
type KeyPress struct {
	Player core.PlayerID
	Action core.Action
}

// Player 1 plays on the left side of the keyboard.
var player1Keys = map[string][]core.Action{
	"w": {core.ActionUp},
	"a": {core.ActionLeft},
	"s": {core.ActionDown},
	"d": {core.ActionRight},
	" ": {core.ActionFire, core.ActionGrab},
	"f": {core.ActionPunch},
	"g": {core.ActionBlock},
	"q": {core.ActionStickLeft},
	"e": {core.ActionStickRight},
}

// Player 2 uses the arrows and the right hand keys.
var player2Keys = map[string][]core.Action{
	"up":    {core.ActionUp},
	"left":  {core.ActionLeft},
	"down":  {core.ActionDown},
	"right": {core.ActionRight},
	"enter": {core.ActionFire, core.ActionGrab},
	"l":     {core.ActionPunch},
	"k":     {core.ActionBlock},
}

// Keys that control the session rather than a player.
var globalKeys = map[string]core.Action{
	"p":      core.ActionPause,
	"r":      core.ActionRestart,
	"m":      core.ActionMute,
	"esc":    core.ActionBack,
	"ctrl+c": core.ActionQuit,
}

// KeyMapper translates Bubble Tea key messages to game actions.
// This centralizes key bindings and makes them testable.
type KeyMapper struct {
	twoPlayer bool
}

// NewKeyMapper creates a key mapper. With twoPlayer false the Player 2 keys
// also drive Player 1, so arrows work in solo and vs CPU games.
func NewKeyMapper(twoPlayer bool) *KeyMapper {
	return &KeyMapper{twoPlayer: twoPlayer}
}

// normalizeKey folds shifted letters onto their lowercase binding.
func normalizeKey(msg tea.KeyMsg) string {
	key := msg.String()
	if len(key) == 1 {
		return strings.ToLower(key)
	}
	return key
}

// Map returns the presses produced by a key. Unbound keys produce none.
func (km *KeyMapper) Map(msg tea.KeyMsg) []KeyPress {
	key := normalizeKey(msg)

	if a, ok := globalKeys[key]; ok {
		return []KeyPress{{Player: core.Player1, Action: a}}
	}

	player := core.Player1
	actions, ok := player1Keys[key]
	if !ok {
		actions, ok = player2Keys[key]
		if !ok {
			return nil
		}
		if km.twoPlayer {
			player = core.Player2
		}
	}

	out := make([]KeyPress, len(actions))
	for i, a := range actions {
		out[i] = KeyPress{Player: player, Action: a}
	}
	return out
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionBack
	MenuActionScoreboard
	MenuActionQuit
)

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	switch normalizeKey(msg) {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k": // vim-style k for up
		return MenuActionUp
	case "s", "down", "j": // vim-style j for down
		return MenuActionDown
	case "enter", " ":
		return MenuActionSelect
	case "b", "esc":
		return MenuActionBack
	case "tab":
		return MenuActionScoreboard
	}

	return MenuActionNone
}
