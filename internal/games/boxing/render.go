package boxing

import (
	"fmt"
	"math"
	"strings"

	"github.com/vovakirdan/sky-arcade/internal/core"
)

var (
	standRight = []string{" () ", "/██>", " ██ ", " ██ ", " /\\ ", "/  \\"}
	punchRight = []string{" () ", "/██═", " ██ ", " ██ ", " /\\ ", "/  \\"}
	guardRight = []string{" () ", "[██]", " ██ ", " ██ ", " /\\ ", "/  \\"}
	koSprite   = []string{"", "", "", "", "    ", "x()═"}
)

const (
	gloveChar = '●'
	ropeColor = core.ColorGray
	barWidth  = 20
	barFull   = '█'
	barEmpty  = '░'
)

var fighterColors = [2]core.Color{core.PlayerColor(core.Player1), core.PlayerColor(core.Player2)}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	g.drawHUD(dst)
	dst.DrawBoxColor(core.NewRect(0, 1, dst.Width(), dst.Height()-1), ropeColor)
	if !g.cfg.Rules.FreeMovement {
		mid := int(g.ring.X + g.ring.W/2)
		for y := int(g.ring.Y); y < int(g.ring.Bottom()); y += 2 {
			dst.SetColor(mid, y, '┊', ropeColor)
		}
	}

	for i := range g.fighters {
		g.drawFighter(dst, i)
	}
	g.punches.Each(func(p *punch) {
		r := core.RectFromFloat(p.box.X, p.box.Y, p.box.W, p.box.H)
		dst.DrawRectColor(r, gloveChar, fighterColors[p.owner])
	})

	if g.paused {
		dst.DrawMessage([]string{"PAUSED", "Press P to resume"}, core.ColorBrightWhite)
	}
	if g.gameOver {
		dst.DrawMessage([]string{
			"K.O.!",
			g.winner.String() + " WINS",
			"Press R for a rematch",
		}, fighterColors[index(g.winner)])
	}
}

func (g *Game) drawHUD(dst *core.Screen) {
	full := g.cfg.Fighter.Health
	left := fmt.Sprintf("P1 %s %3d", healthBar(g.fighters[0].health, full), g.fighters[0].health)
	right := fmt.Sprintf("%3d %s P2", g.fighters[1].health, healthBar(g.fighters[1].health, full))
	dst.DrawTextColor(1, 0, left, fighterColors[0])
	dst.DrawTextColor(dst.Width()-len([]rune(right))-1, 0, right, fighterColors[1])
	dst.DrawTextCenteredColor(0, strings.ToUpper(g.Title()), core.ColorBrightWhite)
}

func healthBar(hp, full int) string {
	if full <= 0 {
		return ""
	}
	n := int(math.Ceil(float64(hp) / float64(full) * barWidth))
	n = min(max(n, 0), barWidth)
	return strings.Repeat(string(barFull), n) + strings.Repeat(string(barEmpty), barWidth-n)
}

func (g *Game) drawFighter(dst *core.Screen, i int) {
	f := g.fighters[i]
	sprite := standRight
	switch {
	case f.health == 0:
		sprite = koSprite
	case f.blocking:
		sprite = guardRight
	case f.pose > 0:
		sprite = punchRight
	}

	x0, y0 := int(math.Round(f.box.X)), int(math.Round(f.box.Y))
	for dy, row := range sprite {
		runes := []rune(row)
		for dx := range runes {
			r := runes[dx]
			if f.facing < 0 {
				r = mirror(runes[len(runes)-1-dx])
			}
			if r != ' ' {
				dst.SetColor(x0+dx, y0+dy, r, fighterColors[i])
			}
		}
	}
}

func mirror(r rune) rune {
	switch r {
	case '/':
		return '\\'
	case '\\':
		return '/'
	case '>':
		return '<'
	case '[':
		return ']'
	case ']':
		return '['
	case '(':
		return ')'
	case ')':
		return '('
	}
	return r
}
