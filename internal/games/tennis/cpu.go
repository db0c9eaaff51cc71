package tennis

import (
	"math"
	"math/rand"

	"github.com/vovakirdan/sky-arcade/internal/core"
	"github.com/vovakirdan/sky-arcade/internal/sim"
)

// cpu drives Player 2: fetch the racket, then shadow the ball.
type cpu struct {
	rng    *rand.Rand
	wait   int
	target sim.Vec
}

func newCPU(seed int64) *cpu {
	return &cpu{rng: sim.NewRand(seed + 1)}
}

func (c *cpu) think(g *Game, skill float64) core.InputFrame {
	in := core.NewInputFrame()
	me := &g.players[1]
	center := me.box.Center()

	if !me.holding {
		c.steer(&in, center, me.racket, 0.3)
		if center.Dist(me.racket) <= g.cfg.Racket.GrabRadius {
			in.Set(core.ActionGrab)
		}
		return in
	}

	if c.wait > 0 {
		c.wait--
	} else {
		c.target = c.aim(g, skill)
		c.wait = 1 + int((1-skill)*10)
	}
	c.steer(&in, center, c.target, 0.4)
	return in
}

// aim picks where the CPU wants its body to be so that its racket, held on
// the net side, meets the ball.
func (c *cpu) aim(g *Game, skill float64) sim.Vec {
	me := g.players[1]
	home := g.half(1).Center()
	home.Y = g.court.Bottom() - me.box.H/2
	b := g.ball
	if !b.live || (b.pos.X < g.net.X && b.vel.X <= 0) {
		return home
	}

	// Body position that puts the racket on the ball.
	hand := g.racketHand(1).Sub(me.box.Center())
	want := b.pos.Sub(hand)
	want.X += 0.5

	// Lower skill means a sloppier read of the ball.
	errX := sim.Between(c.rng, -1, 1) * (1 - skill) * 4
	want.X += errX
	want.Y = math.Max(want.Y, g.court.Y)
	return want
}

func (c *cpu) steer(in *core.InputFrame, from, to sim.Vec, deadZone float64) {
	d := to.Sub(from)
	if d.X > deadZone {
		in.Set(core.ActionRight)
	} else if d.X < -deadZone {
		in.Set(core.ActionLeft)
	}
	if d.Y > deadZone {
		in.Set(core.ActionDown)
	} else if d.Y < -deadZone {
		in.Set(core.ActionUp)
	}
}
