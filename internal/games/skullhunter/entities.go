package skullhunter

import (
	"github.com/vovakirdan/sky-arcade/internal/core"
	"github.com/vovakirdan/sky-arcade/internal/sim"
)

type hero struct {
	body     sim.Circle
	health   int
	facing   sim.Vec // last non-zero movement direction, unit length
	cooldown sim.Cooldown
}

type fireball struct {
	body  sim.Circle
	vel   sim.Vec
	trail []sim.Vec // oldest first
}

type skull struct {
	body   sim.Circle
	health int
	speed  float64
	boss   bool
}

type coin struct {
	body sim.Circle
}

// moveHero applies normalized eight-way movement and keeps the hero inside
// the arena.
func (g *Game) moveHero(in core.InputFrame) {
	dx, dy := in.Axis()
	dir := sim.V(dx, dy).Norm()
	if !dir.IsZero() {
		g.hero.facing = dir
	}
	h := &g.hero
	c := h.body.C.Add(dir.Scale(g.cfg.Player.Speed))
	c.X = sim.Clamp(c.X, g.arena.X+h.body.R, g.arena.Right()-h.body.R)
	c.Y = sim.Clamp(c.Y, g.arena.Y+h.body.R, g.arena.Bottom()-h.body.R)
	h.body.C = c
	h.cooldown.Tick()
}

// throw launches a fireball toward the pointer, or along the facing
// direction when there is no usable pointer. It reports whether a fireball
// was launched.
func (g *Game) throw(ptr core.Pointer) bool {
	h := &g.hero
	if !h.cooldown.Ready() {
		return false
	}
	dir := h.facing
	if ptr.Valid {
		if d := sim.V(ptr.X, ptr.Y).Sub(h.body.C).Norm(); !d.IsZero() {
			dir = d
		}
	}
	fc := g.cfg.Fireball
	g.fireballs.Add(fireball{
		body: sim.Circle{C: h.body.C, R: fc.Radius},
		vel:  dir.Scale(fc.Speed),
	})
	h.cooldown.Start(fc.Cooldown)
	return true
}

func (g *Game) moveFireballs() {
	n := g.cfg.Fireball.Trail
	g.fireballs.Each(func(f *fireball) {
		f.trail = append(f.trail, f.body.C)
		if len(f.trail) > n {
			f.trail = f.trail[len(f.trail)-n:]
		}
		f.body.C = f.body.C.Add(f.vel)
	})

	m := g.cfg.Fireball.Margin
	limit := sim.Box{X: g.arena.X - m, Y: g.arena.Y - m, W: g.arena.W + 2*m, H: g.arena.H + 2*m}
	g.fireballs.RemoveIf(func(f *fireball) bool { return !limit.Contains(f.body.C) })
}

// spawn rolls for a new skull at a random edge and a coin somewhere inside.
func (g *Game) spawn() {
	ec := g.cfg.Enemies
	base := ec.SpawnChance + float64(g.level)*ec.SpawnPerLevel
	if sim.Chance(g.rng, g.diff.Chance(base, g.Score(), g.ticks)) {
		g.skulls.Add(g.newSkull())
	}

	cc := g.cfg.Coins
	if sim.Chance(g.rng, cc.SpawnChance) {
		p := sim.V(
			sim.Between(g.rng, g.arena.X+1, g.arena.Right()-1),
			sim.Between(g.rng, g.arena.Y+1, g.arena.Bottom()-1),
		)
		g.coins.Add(coin{body: sim.Circle{C: p, R: cc.Radius}})
	}
}

func (g *Game) newSkull() skull {
	ec := g.cfg.Enemies
	s := skull{
		body:   sim.Circle{R: ec.Radius},
		health: ec.Health,
		speed:  g.diff.Speed(sim.Between(g.rng, ec.SpeedMin, ec.SpeedMax), g.Score(), g.ticks),
	}
	if sim.Chance(g.rng, ec.BossChance) {
		s.boss = true
		s.body.R = ec.BossRadius
		s.health = ec.BossHealth
		s.speed *= ec.BossSpeedFactor
	}

	a := g.arena
	switch g.rng.Intn(4) {
	case 0:
		s.body.C = sim.V(sim.Between(g.rng, a.X, a.Right()), a.Y)
	case 1:
		s.body.C = sim.V(a.Right(), sim.Between(g.rng, a.Y, a.Bottom()))
	case 2:
		s.body.C = sim.V(sim.Between(g.rng, a.X, a.Right()), a.Bottom())
	default:
		s.body.C = sim.V(a.X, sim.Between(g.rng, a.Y, a.Bottom()))
	}
	return s
}

// chase moves every skull straight at the hero.
func (g *Game) chase() {
	target := g.hero.body.C
	g.skulls.Each(func(s *skull) {
		dir := target.Sub(s.body.C).Norm()
		s.body.C = s.body.C.Add(dir.Scale(s.speed))
	})
}

func (g *Game) resolveFireballs(res *core.StepResult) {
	hit := func(f *fireball, s *skull) bool { return f.body.Intersects(s.body) }
	sim.Collide(g.fireballs, g.skulls, hit, func(_ *fireball, s *skull) sim.Outcome {
		s.health--
		if s.health > 0 {
			res.Emit(core.SoundHit)
			return sim.Outcome{RemoveA: true}
		}
		g.kills++
		res.Emit(core.SoundExplosion)
		if sim.Chance(g.rng, g.cfg.Coins.DropChance) {
			g.coins.Add(coin{body: sim.Circle{C: s.body.C, R: g.cfg.Coins.Radius}})
		}
		return sim.Outcome{RemoveA: true, RemoveB: true}
	})
}

// resolveContacts damages the hero for every touching skull and knocks the
// skull back.
func (g *Game) resolveContacts(res *core.StepResult) {
	ec := g.cfg.Enemies
	h := &g.hero
	g.skulls.Each(func(s *skull) {
		if !s.body.Intersects(h.body) {
			return
		}
		dmg := ec.Damage
		if s.boss {
			dmg = ec.BossDamage
		}
		h.health = max(h.health-dmg, 0)
		res.Emit(core.SoundHit)

		push := s.body.C.Sub(h.body.C).Norm()
		if push.IsZero() {
			push = h.facing
		}
		s.body.C = s.body.C.Add(push.Scale(ec.Knockback))
	})
	if h.health == 0 {
		g.gameOver = true
		res.Emit(core.SoundExplosion)
	}
}

func (g *Game) resolveCoins(res *core.StepResult) {
	hit := func(c *coin, h *hero) bool { return c.body.Intersects(h.body) }
	sim.CollideOne(g.coins, &g.hero, hit, func(_ *coin, h *hero) bool {
		g.collected++
		h.health = min(h.health+g.cfg.Coins.Heal, g.cfg.Player.Health)
		res.Emit(core.SoundCoin)
		return true
	})
}
