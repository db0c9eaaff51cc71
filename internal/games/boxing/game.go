// Package boxing implements two side-view fighting games that share one
// engine: the classic ring, where each fighter keeps to their own half and
// throws short jabs, and the arena, where fighters roam the whole ring,
// face their last direction of travel, guard with block and throw punches
// that fly across the ring.
package boxing

import (
	"github.com/vovakirdan/sky-arcade/internal/config"
	"github.com/vovakirdan/sky-arcade/internal/core"
	"github.com/vovakirdan/sky-arcade/internal/multiplayer"
	"github.com/vovakirdan/sky-arcade/internal/registry"
	"github.com/vovakirdan/sky-arcade/internal/sim"
)

// Variant selects the rule set.
type Variant int

const (
	VariantClassic Variant = iota
	VariantArena
)

// Game implements both boxing variants.
type Game struct {
	variant Variant
	cfg     config.BoxingConfig
	diff    *config.DifficultyManager
	runtime core.RuntimeConfig
	ring    sim.Box

	fighters [2]fighter // Index 0 is Player 1
	punches  *sim.Pool[punch]
	cpu      *cpu

	winner   core.PlayerID
	ticks    int
	gameOver bool
	paused   bool
}

// NewClassic creates the classic ring.
func NewClassic() *Game {
	return newGame(VariantClassic, config.DefaultBoxingConfig())
}

// NewArena creates the arena variant.
func NewArena() *Game {
	return newGame(VariantArena, config.DefaultArenaConfig())
}

func newGame(v Variant, cfg config.BoxingConfig) *Game {
	return &Game{
		variant: v,
		cfg:     cfg,
		diff:    config.NewDifficultyManager(cfg.Difficulty),
	}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	if g.variant == VariantArena {
		return "arena"
	}
	return "boxing"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	if g.variant == VariantArena {
		return "Boxing Arena"
	}
	return "Boxing"
}

// Controls returns the key hint shown in menus.
func (g *Game) Controls() string {
	if g.variant == VariantArena {
		return "P1: WASD move, F punch, G block | P2: arrows, L punch, K block"
	}
	return "P1: WASD move, F punch | P2: arrows, L punch"
}

// Configure loads the YAML configuration and applies the difficulty preset.
func (g *Game) Configure(opts registry.Options) error {
	load := config.LoadBoxing
	if g.variant == VariantArena {
		load = config.LoadArena
	}
	cfg, err := load(opts.ConfigPath)
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
	g.ring = sim.Box{X: 1, Y: 2, W: float64(runtime.ScreenW - 2), H: float64(runtime.ScreenH - 3)}

	f := g.cfg.Fighter
	y := g.ring.Bottom() - f.Height
	g.fighters = [2]fighter{
		{box: sim.Box{X: g.ring.X + g.ring.W/4 - f.Width/2, Y: y, W: f.Width, H: f.Height}, health: f.Health, facing: 1},
		{box: sim.Box{X: g.ring.X + 3*g.ring.W/4 - f.Width/2, Y: y, W: f.Width, H: f.Height}, health: f.Health, facing: -1},
	}
	g.punches = sim.NewPool[punch](8)
	g.cpu = newCPU(runtime.Seed + 1)

	g.winner = 0
	g.ticks = 0
	g.gameOver = false
	g.paused = false
}

// Step advances the game with Player 1 on the keyboard and the CPU as Player 2.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	multi := core.NewMultiInputFrame()
	multi.SetPlayer(core.Player1, in)
	if !g.gameOver && !g.paused {
		skill := g.diff.Skill(g.cfg.CPU, 0, g.ticks)
		multi.SetPlayer(core.Player2, g.cpu.think(g, skill))
	}
	return g.StepMulti(multi)
}

// StepMulti advances the game with input for both fighters.
func (g *Game) StepMulti(in core.MultiInputFrame) core.StepResult {
	var res core.StepResult
	if g.gameOver {
		res.State = g.State()
		return res
	}

	if in.Player1().Has(core.ActionPause) || in.Player2().Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		res.State = g.State()
		return res
	}

	g.ticks++

	for i := range g.fighters {
		g.fighters[i].tick()
	}
	for i, p := range []core.PlayerID{core.Player1, core.Player2} {
		g.control(i, in.Player(p), &res)
	}

	g.movePunches()
	g.resolvePunches(&res)

	res.State = g.State()
	return res
}

// State returns the current game state. Player 1's score is the health
// left after a win.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.Score1(),
		GameOver: g.gameOver,
		Paused:   g.paused,
	}
}

// IsGameOver reports whether a fighter has been knocked out.
func (g *Game) IsGameOver() bool { return g.gameOver }

// Winner returns the fighter left standing, or 0 while the bout runs.
func (g *Game) Winner() core.PlayerID { return g.winner }

// Score1 returns Player 1's remaining health if Player 1 won.
func (g *Game) Score1() int {
	if g.winner == core.Player1 {
		return g.fighters[0].health
	}
	return 0
}

// Score2 returns Player 2's remaining health if Player 2 won.
func (g *Game) Score2() int {
	if g.winner == core.Player2 {
		return g.fighters[1].health
	}
	return 0
}

// Health returns a fighter's current health.
func (g *Game) Health(p core.PlayerID) int {
	return g.fighters[index(p)].health
}

func index(p core.PlayerID) int {
	if p == core.Player2 {
		return 1
	}
	return 0
}

var (
	_ registry.Versus        = (*Game)(nil)
	_ multiplayer.OnlineGame = (*Game)(nil)
	_ registry.Configurable  = (*Game)(nil)
)

func init() {
	registry.Register("boxing", func() registry.Game { return NewClassic() })
	registry.Register("arena", func() registry.Game { return NewArena() })
}
