package skullhunter

import (
	"fmt"
	"math"
	"strings"

	"github.com/vovakirdan/sky-arcade/internal/core"
	"github.com/vovakirdan/sky-arcade/internal/sim"
)

const (
	heroChar     = '@'
	skullChar    = '☠'
	bossRing     = '▒'
	fireballChar = '●'
	trailChar    = '·'
	coinChar     = '$'
	barWidth     = 20
)

var characterColors = map[string]core.Color{
	"default": core.ColorBrightWhite,
	"warrior": core.ColorBrightRed,
	"mage":    core.ColorBrightMagenta,
	"ninja":   core.ColorBrightCyan,
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	g.coins.Each(func(c *coin) {
		dst.SetColor(round(c.body.C.X), round(c.body.C.Y), coinChar, core.ColorBrightYellow)
	})

	g.skulls.Each(func(s *skull) {
		if s.boss {
			drawDisc(dst, s.body, bossRing, core.ColorMagenta)
		}
		dst.SetColor(round(s.body.C.X), round(s.body.C.Y), skullChar, core.ColorBrightWhite)
	})

	g.fireballs.Each(func(f *fireball) {
		for _, p := range f.trail {
			dst.SetColor(round(p.X), round(p.Y), trailChar, core.ColorRed)
		}
		dst.SetColor(round(f.body.C.X), round(f.body.C.Y), fireballChar, core.ColorOrange)
	})

	c, ok := characterColors[g.cfg.Player.Character]
	if !ok {
		c = core.ColorBrightWhite
	}
	dst.SetColor(round(g.hero.body.C.X), round(g.hero.body.C.Y), heroChar, c)

	g.drawHUD(dst)

	switch {
	case g.gameOver:
		dst.DrawMessage([]string{
			"THE SKULLS GOT YOU",
			fmt.Sprintf("Score: %d", g.Score()),
			"Press R to restart",
		}, core.ColorBrightRed)
	case g.paused:
		dst.DrawMessage([]string{"PAUSED", "Press P to resume"}, core.ColorBrightWhite)
	}
}

func (g *Game) drawHUD(dst *core.Screen) {
	full := g.cfg.Player.Health
	filled := 0
	if full > 0 {
		filled = g.hero.health * barWidth / full
	}
	bar := strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)
	color := core.ColorGreen
	if g.hero.health*3 < full {
		color = core.ColorRed
	}
	dst.DrawTextColor(0, 0, bar, color)
	hud := fmt.Sprintf(" %3d  Skulls: %d  Coins: %d  Level: %d  Score: %d",
		g.hero.health, g.kills, g.collected, g.level, g.Score())
	dst.DrawText(barWidth, 0, hud)
}

// drawDisc fills the cells whose centers fall inside the circle.
func drawDisc(dst *core.Screen, c sim.Circle, r rune, color core.Color) {
	span := sim.V(c.R, c.R)
	lo, hi := c.C.Sub(span), c.C.Add(span)
	for y := int(math.Floor(lo.Y)); y <= int(math.Ceil(hi.Y)); y++ {
		for x := int(math.Floor(lo.X)); x <= int(math.Ceil(hi.X)); x++ {
			if sim.V(float64(x), float64(y)).Dist(c.C) <= c.R {
				dst.SetColor(x, y, r, color)
			}
		}
	}
}

func round(v float64) int { return int(math.Round(v)) }
