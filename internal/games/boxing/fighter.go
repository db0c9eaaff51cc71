package boxing

import (
	"github.com/vovakirdan/sky-arcade/internal/core"
	"github.com/vovakirdan/sky-arcade/internal/sim"
)

type fighter struct {
	box      sim.Box
	health   int
	facing   float64 // +1 faces right, -1 faces left
	cooldown sim.Cooldown
	pose     int // Ticks left in the attack pose
	blocking bool
}

func (f *fighter) tick() {
	f.cooldown.Tick()
	if f.pose > 0 {
		f.pose--
	}
}

// punch is a glove hitbox. Static punches expire after ttl ticks; moving
// punches fly until they leave the ring.
type punch struct {
	box   sim.Box
	owner int
	dir   float64
	ttl   int
}

// bounds returns the area fighter i may move in.
func (g *Game) bounds(i int) sim.Box {
	if g.cfg.Rules.FreeMovement {
		return g.ring
	}
	half := g.ring
	half.W = g.ring.W / 2
	if i == 1 {
		half.X += half.W
	}
	return half
}

// control applies one player's input to fighter i.
func (g *Game) control(i int, in core.InputFrame, res *core.StepResult) {
	f := &g.fighters[i]

	f.blocking = g.cfg.Rules.Blocking && in.Has(core.ActionBlock)

	dx, dy := in.Axis()
	if !f.blocking {
		f.box = f.box.Moved(sim.V(dx, dy).Scale(g.cfg.Fighter.Speed)).ClampInto(g.bounds(i))
	}
	if g.cfg.Rules.Facing && dx != 0 {
		f.facing = dx
	}

	if in.Has(core.ActionPunch) && !f.blocking && f.cooldown.Ready() {
		g.throw(i)
		res.Emit(core.SoundPunch)
	}
}

// throw spawns a punch in front of fighter i and starts the cooldown.
func (g *Game) throw(i int) {
	f := &g.fighters[i]
	p := g.cfg.Punch
	f.cooldown.Start(p.Cooldown)
	f.pose = p.AttackPose

	x := f.box.Right()
	if f.facing < 0 {
		x = f.box.X - p.Width
	}
	g.punches.Add(punch{
		box:   sim.Box{X: x, Y: f.box.Y + 1, W: p.Width, H: p.Height},
		owner: i,
		dir:   f.facing,
		ttl:   p.Lifetime,
	})
}

func (g *Game) movePunches() {
	speed := g.cfg.Punch.Speed
	if speed <= 0 {
		g.punches.Each(func(p *punch) { p.ttl-- })
		g.punches.RemoveIf(func(p *punch) bool { return p.ttl <= 0 })
		return
	}
	g.punches.Each(func(p *punch) { p.box = p.box.Moved(sim.V(p.dir*speed, 0)) })
	g.punches.RemoveIf(func(p *punch) bool { return p.box.Outside(g.ring) })
}

// resolvePunches lands every punch that overlaps the opposing fighter.
// A landed punch is consumed whether or not it was blocked.
func (g *Game) resolvePunches(res *core.StepResult) {
	g.punches.RemoveIf(func(p *punch) bool {
		if g.gameOver {
			return false
		}
		target := &g.fighters[1-p.owner]
		if !p.box.Intersects(target.box) {
			return false
		}
		if target.blocking {
			res.Emit(core.SoundBlock)
			return true
		}

		target.health = max(0, target.health-g.cfg.Punch.Damage)
		res.Emit(core.SoundHit)
		if target.health == 0 {
			g.knockout(p.owner, res)
		}
		return true
	})
}

func (g *Game) knockout(winner int, res *core.StepResult) {
	g.gameOver = true
	g.winner = core.Player1
	if winner == 1 {
		g.winner = core.Player2
	}
	res.Emit(core.SoundKO)
	res.Award(core.Trophy{
		ID:     g.ID() + "-champion",
		Name:   g.Title() + " Champion",
		Holder: g.winner.String(),
	})
}
