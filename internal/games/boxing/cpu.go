package boxing

import (
	"math"
	"math/rand"

	"github.com/vovakirdan/sky-arcade/internal/core"
	"github.com/vovakirdan/sky-arcade/internal/sim"
)

// cpu drives Player 2. It re-plans at a skill-dependent reaction interval
// and holds its movement between plans.
type cpu struct {
	rng      *rand.Rand
	wait     int
	dx, dy   float64
	punching bool
}

func newCPU(seed int64) *cpu {
	return &cpu{rng: sim.NewRand(seed)}
}

// arenaGap is the horizontal distance the arena CPU keeps while trading
// flying punches.
const arenaGap = 10.0

// think returns Player 2's input for the next tick. skill is in [0, 1].
func (c *cpu) think(g *Game, skill float64) core.InputFrame {
	in := core.NewInputFrame()
	me, foe := &g.fighters[1], &g.fighters[0]

	if g.cfg.Rules.Blocking && c.threatened(g) && sim.Chance(c.rng, skill) {
		in.Set(core.ActionBlock)
		return in
	}

	if c.wait > 0 {
		c.wait--
	} else {
		c.plan(g, me, foe, skill)
		c.wait = 2 + int((1-skill)*12)
	}

	dx := c.dx
	if c.punching && me.cooldown.Ready() {
		in.Set(core.ActionPunch)
		c.punching = false
		if g.cfg.Rules.Facing {
			// Turn toward the opponent in the same tick the punch is thrown.
			dx = foe.box.Center().X - me.box.Center().X
		}
	}
	c.press(&in, dx, core.ActionLeft, core.ActionRight)
	c.press(&in, c.dy, core.ActionUp, core.ActionDown)
	return in
}

func (c *cpu) press(in *core.InputFrame, v float64, neg, pos core.Action) {
	switch {
	case v < 0:
		in.Set(neg)
	case v > 0:
		in.Set(pos)
	}
}

// plan picks a movement direction toward striking range and decides
// whether to punch.
func (c *cpu) plan(g *Game, me, foe *fighter, skill float64) {
	d := foe.box.Center().Sub(me.box.Center())
	reach := g.cfg.Punch.Width

	c.dy = 0
	if math.Abs(d.Y) > 0.5 {
		c.dy = math.Copysign(1, d.Y)
	}

	aligned := math.Abs(d.Y) < me.box.H/2
	gap := math.Abs(d.X) - me.box.W
	c.dx = 0
	if g.cfg.Punch.Speed > 0 {
		switch {
		case gap > arenaGap:
			c.dx = math.Copysign(1, d.X)
		case gap < arenaGap/2:
			c.dx = -math.Copysign(1, d.X)
		}
		c.punching = aligned && sim.Chance(c.rng, 0.3+0.5*skill)
	} else {
		if gap > reach*0.8 {
			c.dx = math.Copysign(1, d.X)
		}
		c.punching = aligned && gap <= reach && sim.Chance(c.rng, 0.3+0.6*skill)
	}

	// A clumsy CPU occasionally wanders.
	if sim.Chance(c.rng, (1-skill)*0.2) {
		c.dx = float64(c.rng.Intn(3) - 1)
	}
}

// threatened reports whether a Player 1 punch is about to reach the CPU.
func (c *cpu) threatened(g *Game) bool {
	me := g.fighters[1].box
	for _, p := range g.punches.All() {
		if p.owner != 0 {
			continue
		}
		ahead := me.X - p.box.Right()
		if p.dir < 0 {
			ahead = p.box.X - me.Right()
		}
		if p.box.Y < me.Bottom() && p.box.Bottom() > me.Y && ahead > -1 && ahead < 6 {
			return true
		}
	}
	return false
}
