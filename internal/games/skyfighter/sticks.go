package skyfighter

import (
	"math"

	"github.com/vovakirdan/sky-arcade/internal/core"
	"github.com/vovakirdan/sky-arcade/internal/sim"
)

// swingTicks is how long a struck stick is drawn highlighted.
const swingTicks = 8

// stick is a drum stick pivoting around its anchor.
type stick struct {
	anchor sim.Vec
	angle  float64 // Radians, screen coordinates (y grows downward)
	swing  int
}

func (s stick) tip(length float64) sim.Vec {
	return s.anchor.Add(sim.FromAngle(s.angle, length))
}

// restingSticks places the sticks in the bottom corners, leaning inward.
func (g *Game) restingSticks() [2]stick {
	y := g.field.Bottom() - 2
	return [2]stick{
		{anchor: sim.V(2, y), angle: -math.Pi / 3},
		{anchor: sim.V(g.field.W-3, y), angle: -2 * math.Pi / 3},
	}
}

func (g *Game) updateSticks(in core.InputFrame, res *core.StepResult) {
	for i := range g.sticks {
		if g.sticks[i].swing > 0 {
			g.sticks[i].swing--
		}
	}

	g.dragSticks(in.Pointer)

	if in.Has(core.ActionStickLeft) {
		g.strike(0, res)
	}
	if in.Has(core.ActionStickRight) {
		g.strike(1, res)
	}
}

// dragSticks lets the pointer pick up a stick near its anchor, carry it and
// aim it along the drag direction.
func (g *Game) dragSticks(p core.Pointer) {
	ptr := sim.V(p.X, p.Y)
	defer func() { g.lastPtr = ptr }()

	if !p.Valid || !p.Down {
		g.dragging = -1
		return
	}

	if g.dragging < 0 {
		best := g.cfg.Sticks.GrabRadius
		for i, s := range g.sticks {
			if d := s.anchor.Dist(ptr); d <= best {
				best = d
				g.dragging = i
			}
		}
		return
	}

	s := &g.sticks[g.dragging]
	delta := ptr.Sub(g.lastPtr)
	s.anchor = sim.V(
		sim.Clamp(ptr.X, g.field.X, g.field.Right()-1),
		sim.Clamp(ptr.Y, g.field.Y, g.field.Bottom()-1),
	)
	if !delta.IsZero() {
		s.angle = delta.Angle()
	}
}

// strike destroys every enemy whose center lies within hit radius of the tip.
func (g *Game) strike(i int, res *core.StepResult) {
	sc := g.cfg.Sticks
	s := &g.sticks[i]
	s.swing = swingTicks
	res.Emit(core.SoundDrum)

	tip := s.tip(sc.Length)
	zone := sim.Circle{C: tip, R: sc.HitRadius}
	g.enemies.RemoveIf(func(e *enemy) bool {
		if !zone.Intersects(sim.Circle{C: e.box.Center()}) {
			return false
		}
		if e.kind == EnemyFast {
			g.score += sc.FastPoints
		} else {
			g.score += sc.BasicPoints
		}
		g.kills++
		g.explode(e.box.Center())
		res.Emit(core.SoundExplosion)
		return true
	})
}
