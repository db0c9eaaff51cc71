package tui

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vovakirdan/sky-arcade/internal/core"
)

func TestRenderScreenKeepsText(t *testing.T) {
	s := core.NewScreen(12, 3)
	s.DrawText(0, 0, "plain")
	s.DrawTextColor(6, 0, "red", core.ColorRed)
	s.DrawTextColor(0, 2, "P2", core.PlayerColor(core.Player2))

	assert.Contains(t, RenderScreen(s), "plain")
	assert.Contains(t, RenderScreen(s), "red")
	assert.Equal(t, "", RenderScreen(core.NewScreen(0, 0)))
}

func TestDrawStatus(t *testing.T) {
	s := core.NewScreen(30, 4)
	drawStatus(s, true, "TROPHY")

	bottom := s.Row(3)
	assert.Contains(t, bottom, " TROPHY ")
	assert.Equal(t, "[muted]", bottom[len(bottom)-len("[muted]"):])
	assert.Equal(t, core.ColorGray, s.GetCell(29, 3).Color)

	s.Clear()
	drawStatus(s, false, "")
	assert.Equal(t, "", strings.TrimSpace(s.Row(3)))
}
