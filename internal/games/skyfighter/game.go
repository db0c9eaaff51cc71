// Package skyfighter implements a vertical shooter. The player's plane fires
// upward at descending enemies, collects coins and can swat enemies with two
// drum sticks that are re-aimed by dragging them with the mouse.
package skyfighter

import (
	"math/rand"

	"github.com/vovakirdan/sky-arcade/internal/config"
	"github.com/vovakirdan/sky-arcade/internal/core"
	"github.com/vovakirdan/sky-arcade/internal/registry"
	"github.com/vovakirdan/sky-arcade/internal/sim"
)

// Game implements the Sky Fighter game logic.
type Game struct {
	cfg     config.SkyFighterConfig
	diff    *config.DifficultyManager
	runtime core.RuntimeConfig
	rng     *rand.Rand
	field   sim.Box // Playfield below the HUD row

	player     plane
	bullets    *sim.Pool[bullet]
	enemies    *sim.Pool[enemy]
	coins      *sim.Pool[coin]
	explosions *sim.Pool[explosion]
	sticks     [2]stick
	dragging   int // Index of the stick following the pointer, -1 when none
	lastPtr    sim.Vec

	spawnTimer int
	coinTimer  sim.Interval

	score     int
	kills     int
	collected int
	awarded   map[string]bool
	ticks     int
	gameOver  bool
	paused    bool
}

// New creates a Sky Fighter game with the built-in configuration.
func New() *Game {
	cfg := config.DefaultSkyFighterConfig()
	return &Game{
		cfg:  cfg,
		diff: config.NewDifficultyManager(cfg.Difficulty),
	}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string { return "skyfighter" }

// Title returns the display name for this game.
func (g *Game) Title() string { return "Sky Fighter" }

// Controls returns the key hint shown in menus.
func (g *Game) Controls() string {
	return "WASD move, Space fire, Q/E drum sticks, drag a stick with the mouse"
}

// Configure loads the YAML configuration and applies the difficulty preset.
func (g *Game) Configure(opts registry.Options) error {
	cfg, err := config.LoadSkyFighter(opts.ConfigPath)
	if err != nil {
		return err
	}
	if err := config.ApplyPresetName(&cfg.Difficulty, opts.Difficulty); err != nil {
		return err
	}
	g.cfg = cfg
	g.diff = config.NewDifficultyManager(cfg.Difficulty)
	return nil
}

// Reset initializes or restarts the game.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime
	g.rng = sim.NewRand(runtime.Seed)
	g.field = sim.Box{X: 0, Y: 1, W: float64(runtime.ScreenW), H: float64(runtime.ScreenH - 1)}

	p := g.cfg.Player
	g.player = plane{
		box: sim.Box{
			X: (g.field.W - p.Width) / 2,
			Y: g.field.Bottom() - p.Height - 1,
			W: p.Width,
			H: p.Height,
		},
		health: p.Health,
	}

	g.bullets = sim.NewPool[bullet](32)
	g.enemies = sim.NewPool[enemy](32)
	g.coins = sim.NewPool[coin](4)
	g.explosions = sim.NewPool[explosion](16)
	g.sticks = g.restingSticks()
	g.dragging = -1
	g.lastPtr = sim.Vec{}

	g.spawnTimer = 0
	g.coinTimer = sim.Interval{Every: g.cfg.Coins.Every}

	g.score = 0
	g.kills = 0
	g.collected = 0
	g.awarded = make(map[string]bool)
	g.ticks = 0
	g.gameOver = false
	g.paused = false
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	var res core.StepResult
	if g.gameOver {
		res.State = g.State()
		return res
	}

	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		res.State = g.State()
		return res
	}

	g.ticks++

	g.movePlayer(in)
	if in.Has(core.ActionFire) {
		g.fire()
		res.Emit(core.SoundShoot)
	}
	g.updateSticks(in, &res)

	g.moveBullets()
	g.spawnEnemies()
	g.moveEnemies()
	g.updateCoins(&res)

	g.resolveBulletHits(&res)
	g.resolvePlayerHits(&res)

	g.explosions.Each(func(e *explosion) { e.ttl-- })
	g.explosions.RemoveIf(func(e *explosion) bool { return e.ttl <= 0 })

	g.checkTrophies(&res)

	res.State = g.State()
	return res
}

// movePlayer moves the plane in four directions, clamped to the playfield.
func (g *Game) movePlayer(in core.InputFrame) {
	dx, dy := in.Axis()
	d := sim.V(dx, dy).Scale(g.cfg.Player.Speed)
	g.player.box = g.player.box.Moved(d).ClampInto(g.field)
}

func (g *Game) checkTrophies(res *core.StepResult) {
	for _, t := range g.cfg.Trophies {
		if g.awarded[t.ID] || g.score < t.Score {
			continue
		}
		g.awarded[t.ID] = true
		res.Award(core.Trophy{ID: t.ID, Name: t.Name})
		res.Emit(core.SoundWin)
	}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.score,
		GameOver: g.gameOver,
		Paused:   g.paused,
	}
}

func init() {
	registry.Register("skyfighter", func() registry.Game {
		return New()
	})
}
