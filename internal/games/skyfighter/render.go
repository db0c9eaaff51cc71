package skyfighter

import (
	"fmt"
	"math"
	"strings"

	"github.com/vovakirdan/sky-arcade/internal/core"
	"github.com/vovakirdan/sky-arcade/internal/sim"
)

// Sprites, one string per row.
var (
	planeSprite = []string{"  ▲  ", "◄═╬═►"}
	basicSprite = []string{"╲█╱", " ▼ "}
	fastSprite  = []string{"»█«", " ▾ "}
)

const (
	bulletChar    = '│'
	coinChar      = '$'
	explosionChar = '✶'
	stickChar     = '·'
	tipChar       = '●'
	anchorChar    = '◘'
)

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	g.drawHUD(dst)

	for i := range g.sticks {
		g.drawStick(dst, g.sticks[i])
	}
	g.coins.Each(func(c *coin) {
		dst.SetColor(int(c.box.X), int(c.box.Y), coinChar, core.ColorBrightYellow)
	})
	g.bullets.Each(func(b *bullet) {
		dst.SetColor(int(b.box.X), int(b.box.Y), bulletChar, core.ColorBrightCyan)
	})
	g.enemies.Each(func(e *enemy) {
		if e.kind == EnemyFast {
			drawSprite(dst, e.box, fastSprite, core.ColorOrange)
		} else {
			drawSprite(dst, e.box, basicSprite, core.ColorRed)
		}
	})
	if !g.gameOver {
		drawSprite(dst, g.player.box, planeSprite, core.ColorBrightWhite)
	}
	g.explosions.Each(func(e *explosion) {
		c := core.ColorBrightYellow
		if e.ttl < g.cfg.Explosion/2 {
			c = core.ColorOrange
		}
		dst.SetColor(int(e.at.X), int(e.at.Y), explosionChar, c)
	})

	if g.paused {
		dst.DrawMessage([]string{"PAUSED", "Press P to resume"}, core.ColorBrightWhite)
	}
	if g.gameOver {
		dst.DrawMessage([]string{
			"GAME OVER",
			fmt.Sprintf("Score: %d  Kills: %d  Coins: %d", g.score, g.kills, g.collected),
			"Press R to restart",
		}, core.ColorBrightRed)
	}
}

func (g *Game) drawHUD(dst *core.Screen) {
	hearts := strings.Repeat("♥", g.player.health) + strings.Repeat("♡", max(0, g.cfg.Player.Health-g.player.health))
	dst.DrawTextColor(1, 0, fmt.Sprintf("SCORE %d", g.score), core.ColorBrightWhite)
	dst.DrawTextColor(14, 0, hearts, core.ColorBrightRed)
	dst.DrawTextColor(16+g.cfg.Player.Health, 0, fmt.Sprintf("COINS %d", g.collected), core.ColorYellow)
	trophies := fmt.Sprintf("TROPHIES %d/%d", len(g.awarded), len(g.cfg.Trophies))
	dst.DrawTextColor(dst.Width()-len(trophies)-1, 0, trophies, core.ColorGray)
}

func (g *Game) drawStick(dst *core.Screen, s stick) {
	c := core.ColorGray
	if s.swing > 0 {
		c = core.ColorBrightYellow
	}
	length := g.cfg.Sticks.Length
	for d := 1.0; d < length; d++ {
		p := s.anchor.Add(sim.FromAngle(s.angle, d))
		dst.SetColor(int(math.Round(p.X)), int(math.Round(p.Y)), stickChar, c)
	}
	tip := s.tip(length)
	dst.SetColor(int(math.Round(tip.X)), int(math.Round(tip.Y)), tipChar, c)
	dst.SetColor(int(math.Round(s.anchor.X)), int(math.Round(s.anchor.Y)), anchorChar, core.ColorWhite)
}

// drawSprite draws rows of runes at the box position; spaces are transparent.
func drawSprite(dst *core.Screen, b sim.Box, rows []string, c core.Color) {
	x0, y0 := int(math.Round(b.X)), int(math.Round(b.Y))
	for dy, row := range rows {
		dx := 0
		for _, r := range row {
			if r != ' ' {
				dst.SetColor(x0+dx, y0+dy, r, c)
			}
			dx++
		}
	}
}
