package tennis

import (
	"math"

	"github.com/vovakirdan/sky-arcade/internal/core"
	"github.com/vovakirdan/sky-arcade/internal/sim"
)

const (
	// deadBallTicks is how long a ball may roll on the ground before the
	// rally is over.
	deadBallTicks = 90

	// bounceSoundSpeed is the minimum vertical speed for an audible bounce.
	bounceSoundSpeed = 0.05
)

func (g *Game) moveBall(res *core.StepResult) {
	bc := g.cfg.Ball
	b := &g.ball
	prevX := b.pos.X

	b.vel.Y += bc.Gravity
	b.vel.X *= bc.DragX
	b.vel.Y *= bc.DragY
	b.pos = b.pos.Add(b.vel)

	ground := g.court.Bottom() - bc.Radius
	if b.pos.Y >= ground {
		b.pos.Y = ground
		if b.vel.Y > bounceSoundSpeed {
			res.Emit(core.SoundHit)
		}
		b.vel.Y = -b.vel.Y * bc.GroundBounce
		b.vel.X *= bc.GroundFriction
	}

	// The ceiling only spans the court, so a lob past a side edge can sail
	// out over the top.
	ceiling := g.court.Y + bc.Radius
	overCourt := b.pos.X >= g.court.X && b.pos.X <= g.court.Right()
	if overCourt && b.pos.Y <= ceiling {
		b.pos.Y = ceiling
		b.vel.Y = math.Abs(b.vel.Y) * bc.CeilingBounce
	}

	if (sim.Circle{C: b.pos, R: bc.Radius}).IntersectsBox(g.net) {
		b.vel.X = -b.vel.X * bc.NetBounceX
		b.vel.Y = -math.Abs(b.vel.Y) * bc.NetBounceY
		if prevX < g.net.Center().X {
			b.pos.X = g.net.X - bc.Radius - 0.01
		} else {
			b.pos.X = g.net.Right() + bc.Radius + 0.01
		}
	}

	if b.pos.Y >= ground-0.01 && math.Abs(b.vel.Y) < bounceSoundSpeed {
		b.resting++
	} else {
		b.resting = 0
	}
}

// swingRackets returns the ball from any held racket within reach.
func (g *Game) swingRackets(res *core.StepResult) {
	rc := g.cfg.Racket
	reach := g.cfg.Ball.Radius + rc.HitReach
	for i := range g.players {
		p := &g.players[i]
		if !p.holding || !p.hitTimer.Ready() {
			continue
		}
		off := g.ball.pos.Sub(p.racket)
		if off.Len() >= reach {
			continue
		}

		dir := 1.0
		if i == 1 {
			dir = -1
		}
		a := off.Angle()
		g.ball.vel = sim.V(
			dir*rc.HitSpeed*(0.6+0.4*math.Abs(math.Cos(a))),
			math.Sin(a)*rc.HitLift-rc.HitBoost,
		)
		g.ball.resting = 0
		p.hitTimer.Start(rc.HitCooldown)
		res.Emit(core.SoundHit)
	}
}

// checkPoint awards a point when the ball leaves the court sideways inside
// the court height, or when it dies rolling on one side.
func (g *Game) checkPoint(res *core.StepResult) {
	r := g.cfg.Ball.Radius
	pos := g.ball.pos
	inHeight := pos.Y >= g.court.Y && pos.Y <= g.court.Bottom()

	switch {
	case pos.X+r < g.court.X:
		if inHeight {
			g.point(1, res)
		} else {
			g.resetBall(g.server)
		}
	case pos.X-r > g.court.Right():
		if inHeight {
			g.point(0, res)
		} else {
			g.resetBall(g.server)
		}
	case g.ball.resting >= deadBallTicks:
		if pos.X < g.net.Center().X {
			g.point(1, res)
		} else {
			g.point(0, res)
		}
	}
}

// point credits player i. The player who conceded serves next.
func (g *Game) point(i int, res *core.StepResult) {
	g.score[i]++
	res.Emit(core.SoundScore)

	if g.score[i] >= g.cfg.WinScore {
		g.gameOver = true
		g.winner = core.PlayerID(i + 1)
		res.Emit(core.SoundWin)
		res.Award(core.Trophy{ID: "tennis-champion", Name: "Tennis Champion", Holder: g.winner.String()})
		return
	}
	g.resetBall(1 - i)
}
