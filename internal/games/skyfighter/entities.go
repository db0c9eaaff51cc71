package skyfighter

import (
	"github.com/vovakirdan/sky-arcade/internal/core"
	"github.com/vovakirdan/sky-arcade/internal/sim"
)

type plane struct {
	box    sim.Box
	health int
}

type bullet struct {
	box sim.Box
}

// EnemyKind distinguishes the two enemy types.
type EnemyKind int

const (
	EnemyBasic EnemyKind = iota
	EnemyFast
)

type enemy struct {
	box   sim.Box
	kind  EnemyKind
	speed float64
}

type coin struct {
	box sim.Box
}

type explosion struct {
	at  sim.Vec
	ttl int
}

// fire spawns a bullet centered on the plane's nose.
func (g *Game) fire() {
	b := g.cfg.Bullets
	nose := g.player.box.Center()
	g.bullets.Add(bullet{box: sim.Box{
		X: nose.X - b.Width/2,
		Y: g.player.box.Y - b.Height,
		W: b.Width,
		H: b.Height,
	}})
}

func (g *Game) moveBullets() {
	up := sim.V(0, -g.cfg.Bullets.Speed)
	g.bullets.Each(func(b *bullet) { b.box = b.box.Moved(up) })
	g.bullets.RemoveIf(func(b *bullet) bool { return b.box.Bottom() <= g.field.Y })
}

// spawnInterval is max(base - floor(ticks/ramp)*step, min), further shortened
// by the difficulty level.
func (g *Game) spawnInterval() int {
	e := g.cfg.Enemies
	base := e.SpawnBase
	if e.SpawnRamp > 0 {
		base -= (g.ticks / e.SpawnRamp) * e.SpawnStep
	}
	base = max(base, e.SpawnMin)
	return g.diff.Interval(base, e.SpawnMin, g.score, g.ticks)
}

func (g *Game) spawnEnemies() {
	g.spawnTimer++
	if g.spawnTimer < g.spawnInterval() {
		return
	}
	g.spawnTimer = 0

	e := g.cfg.Enemies
	kind, speed := EnemyBasic, e.BasicSpeed
	if sim.Chance(g.rng, e.FastChance) {
		kind, speed = EnemyFast, e.FastSpeed
	}
	x := sim.Between(g.rng, 0, max(0, g.field.W-e.Width))
	g.enemies.Add(enemy{
		box:   sim.Box{X: x, Y: g.field.Y - e.Height, W: e.Width, H: e.Height},
		kind:  kind,
		speed: g.diff.Speed(speed, g.score, g.ticks),
	})
}

func (g *Game) moveEnemies() {
	g.enemies.Each(func(e *enemy) { e.box = e.box.Moved(sim.V(0, e.speed)) })
	g.enemies.RemoveIf(func(e *enemy) bool { return e.box.Y >= g.field.Bottom() })
}

func (g *Game) updateCoins(res *core.StepResult) {
	if g.coinTimer.Tick() {
		x := sim.Between(g.rng, 0, max(0, g.field.W-1))
		g.coins.Add(coin{box: sim.Box{X: x, Y: g.field.Y, W: 1, H: 1}})
	}

	fall := sim.V(0, g.cfg.Coins.Speed)
	g.coins.Each(func(c *coin) { c.box = c.box.Moved(fall) })
	g.coins.RemoveIf(func(c *coin) bool { return c.box.Y >= g.field.Bottom() })

	sim.CollideOne(g.coins, &g.player,
		func(c *coin, p *plane) bool { return c.box.Intersects(p.box) },
		func(*coin, *plane) bool {
			g.score += g.cfg.Coins.Value
			g.collected++
			res.Emit(core.SoundCoin)
			return true
		})
}

func (g *Game) enemyPoints(kind EnemyKind) int {
	if kind == EnemyFast {
		return g.cfg.Enemies.FastPoints
	}
	return g.cfg.Enemies.BasicPoints
}

// resolveBulletHits removes each bullet and the first enemy it overlaps.
func (g *Game) resolveBulletHits(res *core.StepResult) {
	sim.Collide(g.bullets, g.enemies,
		func(b *bullet, e *enemy) bool { return b.box.Intersects(e.box) },
		func(_ *bullet, e *enemy) sim.Outcome {
			g.score += g.enemyPoints(e.kind)
			g.kills++
			g.explode(e.box.Center())
			res.Emit(core.SoundExplosion)
			return sim.Outcome{RemoveA: true, RemoveB: true}
		})
}

// resolvePlayerHits costs one health point per enemy that rams the plane.
func (g *Game) resolvePlayerHits(res *core.StepResult) {
	sim.CollideOne(g.enemies, &g.player,
		func(e *enemy, p *plane) bool { return e.box.Intersects(p.box) },
		func(e *enemy, p *plane) bool {
			g.explode(e.box.Center())
			res.Emit(core.SoundHit)
			p.health = max(0, p.health-1)
			if p.health == 0 && !g.gameOver {
				g.gameOver = true
				g.explode(p.box.Center())
				res.Emit(core.SoundExplosion)
			}
			return true
		})
}

func (g *Game) explode(at sim.Vec) {
	g.explosions.Add(explosion{at: at, ttl: g.cfg.Explosion})
}
