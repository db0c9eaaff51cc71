// Package skullhunter implements a top-down arena shooter. The hero throws
// fireballs at skulls that chase them from the arena edges and collects
// coins to heal.
package skullhunter

import (
	"fmt"
	"math/rand"
	"slices"
	"strings"

	"github.com/vovakirdan/sky-arcade/internal/config"
	"github.com/vovakirdan/sky-arcade/internal/core"
	"github.com/vovakirdan/sky-arcade/internal/registry"
	"github.com/vovakirdan/sky-arcade/internal/sim"
)

// Game implements the Skull Hunter game logic.
type Game struct {
	cfg     config.SkullHunterConfig
	diff    *config.DifficultyManager
	runtime core.RuntimeConfig
	rng     *rand.Rand
	arena   sim.Box

	hero      hero
	fireballs *sim.Pool[fireball]
	skulls    *sim.Pool[skull]
	coins     *sim.Pool[coin]

	kills     int
	collected int
	level     int
	ticks     int
	gameOver  bool
	paused    bool
}

// New creates a Skull Hunter game with the built-in configuration.
func New() *Game {
	cfg := config.DefaultSkullHunterConfig()
	return &Game{cfg: cfg, diff: config.NewDifficultyManager(cfg.Difficulty)}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string { return "skullhunter" }

// Title returns the display name for this game.
func (g *Game) Title() string { return "Skull Hunter" }

// Controls returns the key hint shown in menus.
func (g *Game) Controls() string {
	return "WASD move, Space or click to throw a fireball at the pointer"
}

// Configure loads the YAML configuration and applies the difficulty preset.
func (g *Game) Configure(opts registry.Options) error {
	cfg, err := config.LoadSkullHunter(opts.ConfigPath)
	if err != nil {
		return err
	}
	if _, ok := cfg.Player.Characters[cfg.Player.Character]; !ok {
		names := make([]string, 0, len(cfg.Player.Characters))
		for name := range cfg.Player.Characters {
			names = append(names, name)
		}
		slices.Sort(names)
		return fmt.Errorf("unknown character %q (want one of %s)", cfg.Player.Character, strings.Join(names, ", "))
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
	g.arena = sim.Box{X: 0, Y: 1, W: float64(runtime.ScreenW), H: float64(runtime.ScreenH - 1)}

	r, ok := g.cfg.Player.Characters[g.cfg.Player.Character]
	if !ok || r <= 0 {
		r = 1
	}
	g.hero = hero{
		body:   sim.Circle{C: g.arena.Center(), R: r},
		health: g.cfg.Player.Health,
		facing: sim.V(1, 0),
	}
	g.fireballs = sim.NewPool[fireball](16)
	g.skulls = sim.NewPool[skull](32)
	g.coins = sim.NewPool[coin](8)

	g.kills = 0
	g.collected = 0
	g.level = 1
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

	g.moveHero(in)
	if in.Has(core.ActionFire) || in.Pointer.Down {
		if g.throw(in.Pointer) {
			res.Emit(core.SoundShoot)
		}
	}
	g.moveFireballs()

	g.spawn()
	g.chase()

	g.resolveFireballs(&res)
	g.resolveContacts(&res)
	if g.gameOver {
		res.State = g.State()
		return res
	}
	g.resolveCoins(&res)
	g.checkLevel(&res)

	res.State = g.State()
	return res
}

// Score is skulls * skull_points + coins * coin_points.
func (g *Game) Score() int {
	s := g.cfg.Scoring
	return g.kills*s.SkullPoints + g.collected*s.CoinPoints
}

func (g *Game) checkLevel(res *core.StepResult) {
	per := g.cfg.Scoring.SkullsPerLevel
	if per <= 0 || g.kills == 0 || g.kills%per != 0 {
		return
	}
	if g.kills/per > g.level-1 {
		g.level++
		res.Emit(core.SoundWin)
	}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.Score(),
		GameOver: g.gameOver,
		Paused:   g.paused,
	}
}

func init() {
	registry.Register("skullhunter", func() registry.Game { return New() })
}
