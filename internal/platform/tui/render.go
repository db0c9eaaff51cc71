package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/sky-arcade/internal/core"
)

// cellStyle returns the lipgloss style for a cell color.
func cellStyle(c core.Color) lipgloss.Style {
	code := c.ANSI()
	if code == "" {
		return lipgloss.NewStyle()
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(code))
}

// RenderScreen converts a Screen to styled text with one lipgloss render per
// run of same-colored cells.
func RenderScreen(s *core.Screen) string {
	if s.Width() == 0 {
		return ""
	}
	var out strings.Builder
	out.Grow(s.Width()*s.Height()*2 + s.Height())

	run := make([]rune, 0, s.Width())
	for y := range s.Height() {
		if y > 0 {
			out.WriteByte('\n')
		}
		run = run[:0]
		color := s.GetCell(0, y).Color
		for x := range s.Width() {
			cell := s.GetCell(x, y)
			if cell.Color != color {
				out.WriteString(cellStyle(color).Render(string(run)))
				run, color = run[:0], cell.Color
			}
			run = append(run, cell.Rune)
		}
		out.WriteString(cellStyle(color).Render(string(run)))
	}
	return out.String()
}

// drawStatus writes the mute flag and a transient banner on the bottom row,
// over whatever the game drew there.
func drawStatus(s *core.Screen, muted bool, banner string) {
	bottom := s.Height() - 1
	if banner != "" {
		s.DrawTextCenteredColor(bottom, " "+banner+" ", core.ColorBrightYellow)
	}
	if muted {
		const flag = "[muted]"
		s.DrawTextColor(s.Width()-len(flag), bottom, flag, core.ColorGray)
	}
}
