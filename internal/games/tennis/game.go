// Package tennis implements a side-view tennis game. Each player picks up a
// racket lying in their half, the ball flies under gravity and bounces off
// the ground, the ceiling and the net, and a point is scored when the ball
// leaves the court past a player.
package tennis

import (
	"github.com/vovakirdan/sky-arcade/internal/config"
	"github.com/vovakirdan/sky-arcade/internal/core"
	"github.com/vovakirdan/sky-arcade/internal/multiplayer"
	"github.com/vovakirdan/sky-arcade/internal/registry"
	"github.com/vovakirdan/sky-arcade/internal/sim"
)

// serveDelay is how long the server waits with the racket before the ball
// is put in play automatically.
const serveDelay = 45

// Game implements the Tennis game logic.
type Game struct {
	cfg     config.TennisConfig
	diff    *config.DifficultyManager
	runtime core.RuntimeConfig
	court   sim.Box
	net     sim.Box

	players [2]player // Index 0 is Player 1 on the left
	ball    ball
	server  int
	serveIn int
	cpu     *cpu

	score    [2]int
	winner   core.PlayerID
	ticks    int
	gameOver bool
	paused   bool
}

type player struct {
	box      sim.Box
	racket   sim.Vec
	holding  bool
	hitTimer sim.Cooldown
}

type ball struct {
	pos     sim.Vec
	vel     sim.Vec
	live    bool
	resting int // Ticks spent rolling on the ground
}

// New creates a Tennis game with the built-in configuration.
func New() *Game {
	cfg := config.DefaultTennisConfig()
	return &Game{cfg: cfg, diff: config.NewDifficultyManager(cfg.Difficulty)}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string { return "tennis" }

// Title returns the display name for this game.
func (g *Game) Title() string { return "Tennis" }

// Controls returns the key hint shown in menus.
func (g *Game) Controls() string {
	return "P1: WASD move, Space grab/serve | P2: arrows, Enter grab/serve"
}

// Configure loads the YAML configuration and applies the difficulty preset.
func (g *Game) Configure(opts registry.Options) error {
	cfg, err := config.LoadTennis(opts.ConfigPath)
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
	c := g.cfg.Court
	g.court = sim.Box{
		X: float64(c.SideMargin),
		Y: float64(c.TopMargin),
		W: float64(runtime.ScreenW - 2*c.SideMargin),
		H: float64(runtime.ScreenH - c.TopMargin - c.BottomMargin),
	}
	netH := g.court.H * sim.Clamp(c.NetRatio, 0, 1)
	g.net = sim.Box{X: g.court.Center().X - 0.5, Y: g.court.Bottom() - netH, W: 1, H: netH}

	p := g.cfg.Player
	for i := range g.players {
		half := g.half(i)
		g.players[i] = player{
			box: sim.Box{X: half.Center().X - p.Width/2, Y: g.court.Bottom() - p.Height, W: p.Width, H: p.Height},
		}
		// Rackets start on the ground near the net.
		x := half.X + half.W*0.75
		if i == 1 {
			x = half.X + half.W*0.25
		}
		g.players[i].racket = sim.V(x, g.court.Bottom()-0.5)
	}

	g.cpu = newCPU(runtime.Seed)
	g.score = [2]int{}
	g.winner = 0
	g.ticks = 0
	g.gameOver = false
	g.paused = false
	g.resetBall(0)
}

// half returns the area player i may move in.
func (g *Game) half(i int) sim.Box {
	h := g.court
	h.W = g.net.X - g.court.X
	if i == 1 {
		h.X = g.net.Right()
		h.W = g.court.Right() - h.X
	}
	return h
}

// resetBall parks the ball with the server until it is served.
func (g *Game) resetBall(server int) {
	g.server = server
	g.serveIn = serveDelay
	g.ball = ball{}
	g.parkBall()
}

func (g *Game) parkBall() {
	b := g.players[g.server].box
	g.ball.pos = sim.V(b.Center().X, b.Y-g.cfg.Ball.Radius-0.5)
}

// Step advances the game with Player 1 on the keyboard and the CPU as Player 2.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	multi := core.NewMultiInputFrame()
	multi.SetPlayer(core.Player1, in)
	if !g.gameOver && !g.paused {
		skill := g.diff.Skill(g.cfg.CPU, g.score[0]+g.score[1], g.ticks)
		multi.SetPlayer(core.Player2, g.cpu.think(g, skill))
	}
	return g.StepMulti(multi)
}

// StepMulti advances the game with input for both players.
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

	armed := g.players[g.server].holding
	for i, id := range []core.PlayerID{core.Player1, core.Player2} {
		g.control(i, in.Player(id))
	}

	if g.ball.live {
		g.moveBall(&res)
		g.swingRackets(&res)
		g.checkPoint(&res)
	} else {
		g.waitServe(in.Player(core.PlayerID(g.server+1)), armed)
	}

	res.State = g.State()
	return res
}

// control moves player i and handles racket pickup.
func (g *Game) control(i int, in core.InputFrame) {
	p := &g.players[i]
	p.hitTimer.Tick()

	dx, dy := in.Axis()
	p.box = p.box.Moved(sim.V(dx, dy).Scale(g.cfg.Player.Speed)).ClampInto(g.half(i))

	if !p.holding && in.Has(core.ActionGrab) && p.box.Center().Dist(p.racket) <= g.cfg.Racket.GrabRadius {
		p.holding = true
	}
	if p.holding {
		p.racket = g.racketHand(i)
	}
}

// racketHand is where a held racket sits: beside the player, toward the net.
func (g *Game) racketHand(i int) sim.Vec {
	b := g.players[i].box
	side := 1.0
	if i == 1 {
		side = -1
	}
	return b.Center().Add(sim.V(side*(b.W/2+0.5), -0.5))
}

// waitServe keeps the ball with the server and serves once the server holds
// a racket and either presses grab again or the serve delay runs out.
// armed reports whether the racket was already held before this tick.
func (g *Game) waitServe(in core.InputFrame, armed bool) {
	g.parkBall()
	if !g.players[g.server].holding {
		return
	}
	g.serveIn--
	if g.serveIn > 0 && !(armed && in.Has(core.ActionGrab)) {
		return
	}
	dir := 1.0
	if g.server == 1 {
		dir = -1
	}
	g.ball.vel = sim.V(dir*g.cfg.Ball.ServeVX, g.cfg.Ball.ServeVY)
	g.ball.live = true
	// No immediate return hit from the server's own racket.
	g.players[g.server].hitTimer.Start(g.cfg.Racket.HitCooldown)
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.score[0],
		GameOver: g.gameOver,
		Paused:   g.paused,
	}
}

// IsGameOver reports whether a player has reached the winning score.
func (g *Game) IsGameOver() bool { return g.gameOver }

// Winner returns the match winner, or 0 while play continues.
func (g *Game) Winner() core.PlayerID { return g.winner }

// Score1 returns Player 1's points.
func (g *Game) Score1() int { return g.score[0] }

// Score2 returns Player 2's points.
func (g *Game) Score2() int { return g.score[1] }

var (
	_ registry.Versus        = (*Game)(nil)
	_ multiplayer.OnlineGame = (*Game)(nil)
)

func init() {
	registry.Register("tennis", func() registry.Game { return New() })
}
