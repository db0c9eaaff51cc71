package tennis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/sky-arcade/internal/core"
	"github.com/vovakirdan/sky-arcade/internal/sim"
)

func newGame(t *testing.T) *Game {
	t.Helper()
	g := New()
	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 11})
	return g
}

func idle() core.MultiInputFrame { return core.NewMultiInputFrame() }

func p1(actions ...core.Action) core.MultiInputFrame {
	in := core.NewInputFrame()
	for _, a := range actions {
		in.Set(a)
	}
	m := core.NewMultiInputFrame()
	m.SetPlayer(core.Player1, in)
	return m
}

// standOnRacket moves player i next to their racket.
func standOnRacket(g *Game, i int) {
	p := &g.players[i]
	p.box.X = p.racket.X - p.box.W/2
}

func TestCourtLayout(t *testing.T) {
	g := newGame(t)
	assert.InDelta(t, g.court.Center().X, g.net.Center().X, 1e-9)
	assert.InDelta(t, g.court.Bottom(), g.net.Bottom(), 1e-9)
	assert.InDelta(t, g.court.H*g.cfg.Court.NetRatio, g.net.H, 1e-9)
	assert.Less(t, g.players[0].box.Right(), g.net.X)
	assert.Greater(t, g.players[1].box.X, g.net.Right())
}

func TestPlayersStayInTheirHalf(t *testing.T) {
	g := newGame(t)
	for range 200 {
		g.StepMulti(p1(core.ActionRight))
	}
	assert.Equal(t, g.net.X, g.players[0].box.Right())
}

func TestGrabRacketWithinReach(t *testing.T) {
	g := newGame(t)

	g.StepMulti(p1(core.ActionGrab))
	assert.False(t, g.players[0].holding, "racket is out of reach")

	standOnRacket(g, 0)
	g.StepMulti(p1(core.ActionGrab))
	require.True(t, g.players[0].holding)
	assert.Equal(t, g.racketHand(0), g.players[0].racket)

	g.StepMulti(p1(core.ActionLeft))
	assert.Equal(t, g.racketHand(0), g.players[0].racket, "a held racket follows its owner")
}

func TestServeNeedsRacket(t *testing.T) {
	g := newGame(t)
	for range serveDelay * 2 {
		g.StepMulti(idle())
	}
	assert.False(t, g.ball.live)

	standOnRacket(g, 0)
	g.StepMulti(p1(core.ActionGrab))
	assert.False(t, g.ball.live, "picking up the racket does not serve")

	g.StepMulti(p1(core.ActionGrab))
	require.True(t, g.ball.live)
	assert.Positive(t, g.ball.vel.X, "player 1 serves toward the right")
	assert.Negative(t, g.ball.vel.Y)
}

func TestServeAfterDelay(t *testing.T) {
	g := newGame(t)
	standOnRacket(g, 0)
	g.StepMulti(p1(core.ActionGrab))
	for range serveDelay {
		g.StepMulti(idle())
	}
	assert.True(t, g.ball.live)
}

func TestServeClearsNet(t *testing.T) {
	g := newGame(t)
	standOnRacket(g, 0)
	g.StepMulti(p1(core.ActionGrab))
	g.StepMulti(p1(core.ActionGrab))
	require.True(t, g.ball.live)

	crossed := false
	for range 300 {
		g.StepMulti(idle())
		if g.ball.pos.X > g.net.Right() {
			crossed = true
			break
		}
	}
	assert.True(t, crossed)
}

func TestGroundBounce(t *testing.T) {
	g := newGame(t)
	g.ball = ball{pos: sim.V(20, g.court.Bottom()-0.6), vel: sim.V(0.2, 0.4), live: true}

	var res core.StepResult
	g.moveBall(&res)

	assert.Equal(t, g.court.Bottom()-g.cfg.Ball.Radius, g.ball.pos.Y)
	assert.Negative(t, g.ball.vel.Y, "the bounce reverses vertical speed")
	assert.Less(t, g.ball.vel.X, 0.2, "ground friction slows the ball")
	assert.Contains(t, res.Sounds, core.SoundHit)
}

func TestCeilingBounce(t *testing.T) {
	g := newGame(t)
	g.ball = ball{pos: sim.V(20, g.court.Y+0.6), vel: sim.V(0, -0.5), live: true}

	var res core.StepResult
	g.moveBall(&res)

	assert.Equal(t, g.court.Y+g.cfg.Ball.Radius, g.ball.pos.Y)
	assert.Positive(t, g.ball.vel.Y)
}

func TestNetBounce(t *testing.T) {
	g := newGame(t)
	y := g.net.Y + 2
	g.ball = ball{pos: sim.V(g.net.X-1, y), vel: sim.V(0.8, 0.1), live: true}

	var res core.StepResult
	g.moveBall(&res)

	assert.Negative(t, g.ball.vel.X)
	assert.LessOrEqual(t, g.ball.vel.Y, 0.0)
	assert.Less(t, g.ball.pos.X+g.cfg.Ball.Radius, g.net.X, "ball is pushed back to its side")
}

func TestRacketHitSendsBallToOpponent(t *testing.T) {
	g := newGame(t)
	standOnRacket(g, 1)
	g.players[1].holding = true
	g.players[1].racket = g.racketHand(1)
	g.ball = ball{pos: g.players[1].racket.Add(sim.V(-0.5, 0)), vel: sim.V(0.3, 0), live: true}

	var res core.StepResult
	g.swingRackets(&res)

	assert.Negative(t, g.ball.vel.X)
	assert.Negative(t, g.ball.vel.Y, "hits lift the ball")
	assert.Contains(t, res.Sounds, core.SoundHit)

	vel := g.ball.vel
	g.swingRackets(&res)
	assert.Equal(t, vel, g.ball.vel, "hit cooldown prevents a double hit")
}

func TestPointWhenBallLeavesLeftEdge(t *testing.T) {
	g := newGame(t)
	g.ball = ball{pos: sim.V(g.court.X, 10), vel: sim.V(-1, 0), live: true}

	res := g.StepMulti(idle())

	assert.Equal(t, [2]int{0, 1}, g.score)
	assert.Contains(t, res.Sounds, core.SoundScore)
	assert.False(t, g.ball.live)
	assert.Equal(t, 0, g.server, "the player who conceded serves")
}

func TestBallOverTheTopIsNoPoint(t *testing.T) {
	g := newGame(t)
	g.server = 1
	g.ball = ball{pos: sim.V(g.court.X-0.1, g.court.Y+0.6), vel: sim.V(-1.5, -1), live: true}

	res := g.StepMulti(idle())

	assert.Equal(t, [2]int{0, 0}, g.score)
	assert.NotContains(t, res.Sounds, core.SoundScore)
	assert.False(t, g.ball.live)
	assert.Equal(t, 1, g.server, "the server keeps the serve")
}

func TestDeadBallScoresForOtherSide(t *testing.T) {
	g := newGame(t)
	g.ball = ball{pos: sim.V(60, g.court.Bottom()-g.cfg.Ball.Radius), live: true}

	for range deadBallTicks + 5 {
		g.StepMulti(idle())
	}
	assert.Equal(t, [2]int{1, 0}, g.score)
	assert.Equal(t, 1, g.server)
}

func TestMatchWin(t *testing.T) {
	g := newGame(t)
	g.score[0] = g.cfg.WinScore - 1
	g.ball = ball{pos: sim.V(g.court.Right(), 10), vel: sim.V(1, 0), live: true}

	res := g.StepMulti(idle())

	assert.True(t, g.IsGameOver())
	assert.Equal(t, core.Player1, g.Winner())
	assert.Equal(t, g.cfg.WinScore, g.Score1())
	assert.Contains(t, res.Sounds, core.SoundWin)
	require.Len(t, res.Trophies, 1)
	assert.Equal(t, "tennis-champion", res.Trophies[0].ID)
	assert.Equal(t, "P1", res.Trophies[0].Holder)
}

func TestCPUFetchesRacket(t *testing.T) {
	g := newGame(t)
	for range 300 {
		g.Step(core.NewInputFrame())
	}
	assert.True(t, g.players[1].holding)
}

func TestDeterminism(t *testing.T) {
	actions := []core.Action{core.ActionLeft, core.ActionRight, core.ActionUp, core.ActionGrab}
	run := func() Snapshot {
		g := newGame(t)
		m := sim.NewMonkey(21, actions, 80, 24)
		for range 4000 {
			g.Step(m.Next())
		}
		return g.Snapshot().(Snapshot)
	}
	assert.Equal(t, run(), run())
}

func TestSnapshotRoundTrip(t *testing.T) {
	src := newGame(t)
	standOnRacket(src, 0)
	src.StepMulti(p1(core.ActionGrab))
	src.StepMulti(p1(core.ActionGrab))

	dst := newGame(t)
	dst.ApplySnapshot(src.Snapshot())
	assert.Equal(t, src.Snapshot(), dst.Snapshot())

	a, b := core.NewScreen(80, 24), core.NewScreen(80, 24)
	src.Render(a)
	dst.Render(b)
	assert.Equal(t, a.String(), b.String())
}
