package tennis

import (
	"fmt"
	"math"

	"github.com/vovakirdan/sky-arcade/internal/core"
)

const (
	ballChar   = '●'
	racketChar = 'Ø'
	netChar    = '║'
	groundChar = '▀'
)

var playerColors = [2]core.Color{core.PlayerColor(core.Player1), core.PlayerColor(core.Player2)}

var playerSprite = []string{" o", "/█", "/\\"}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	g.drawCourt(dst)

	for i, p := range g.players {
		x0, y0 := round(p.box.X), round(p.box.Y)
		for dy, row := range playerSprite {
			dx := 0
			for _, r := range row {
				if r != ' ' {
					dst.SetColor(x0+dx, y0+dy, r, playerColors[i])
				}
				dx++
			}
		}
		c := core.ColorYellow
		if !p.holding {
			c = core.ColorGray
		}
		dst.SetColor(round(p.racket.X), round(p.racket.Y), racketChar, c)
	}

	dst.SetColor(round(g.ball.pos.X), round(g.ball.pos.Y), ballChar, core.ColorBrightGreen)

	dst.DrawTextColor(1, 0, fmt.Sprintf("P1 %d", g.score[0]), playerColors[0])
	right := fmt.Sprintf("%d P2", g.score[1])
	dst.DrawTextColor(dst.Width()-len(right)-1, 0, right, playerColors[1])
	dst.DrawTextCenteredColor(0, fmt.Sprintf("TENNIS  first to %d", g.cfg.WinScore), core.ColorBrightWhite)

	switch {
	case g.gameOver:
		dst.DrawMessage([]string{
			g.winner.String() + " WINS THE MATCH",
			fmt.Sprintf("%d - %d", g.score[0], g.score[1]),
			"Press R to restart",
		}, playerColors[g.winner-1])
	case g.paused:
		dst.DrawMessage([]string{"PAUSED", "Press P to resume"}, core.ColorBrightWhite)
	case !g.ball.live && !g.players[g.server].holding:
		hint := "P" + fmt.Sprint(g.server+1) + ": grab your racket to serve"
		dst.DrawTextCenteredColor(1, hint, core.ColorGray)
	}
}

func (g *Game) drawCourt(dst *core.Screen) {
	ground := round(g.court.Bottom())
	dst.DrawHLineColor(round(g.court.X), ground, int(g.court.W), groundChar, core.ColorGreen)
	dst.DrawHLineColor(round(g.court.X), round(g.court.Y)-1, int(g.court.W), '─', core.ColorGray)
	dst.DrawVLineColor(round(g.net.X), round(g.net.Y), ground-round(g.net.Y), netChar, core.ColorWhite)
}

func round(v float64) int { return int(math.Round(v)) }
