package tennis

import (
	"github.com/vovakirdan/sky-arcade/internal/core"
	"github.com/vovakirdan/sky-arcade/internal/multiplayer"
	"github.com/vovakirdan/sky-arcade/internal/sim"
)

// PlayerState is one player as seen by remote clients.
type PlayerState struct {
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	RacketX float64 `json:"racket_x"`
	RacketY float64 `json:"racket_y"`
	Holding bool    `json:"holding"`
}

// Snapshot is the complete state of a tennis match for network transmission.
type Snapshot struct {
	Tick     int            `json:"tick"`
	Players  [2]PlayerState `json:"players"`
	BallX    float64        `json:"ball_x"`
	BallY    float64        `json:"ball_y"`
	BallVX   float64        `json:"ball_vx"`
	BallVY   float64        `json:"ball_vy"`
	Live     bool           `json:"live"`
	Server   int            `json:"server"`
	Score    [2]int         `json:"score"`
	Winner   core.PlayerID  `json:"winner"`
	GameOver bool           `json:"game_over"`
	Paused   bool           `json:"paused"`
}

// IsGameSnapshot implements the GameSnapshot interface marker.
func (Snapshot) IsGameSnapshot() {}

var _ multiplayer.GameSnapshot = Snapshot{}

// Snapshot captures the match.
func (g *Game) Snapshot() multiplayer.GameSnapshot {
	s := Snapshot{
		Tick:     g.ticks,
		BallX:    g.ball.pos.X,
		BallY:    g.ball.pos.Y,
		BallVX:   g.ball.vel.X,
		BallVY:   g.ball.vel.Y,
		Live:     g.ball.live,
		Server:   g.server,
		Score:    g.score,
		Winner:   g.winner,
		GameOver: g.gameOver,
		Paused:   g.paused,
	}
	for i, p := range g.players {
		s.Players[i] = PlayerState{
			X:       p.box.X,
			Y:       p.box.Y,
			RacketX: p.racket.X,
			RacketY: p.racket.Y,
			Holding: p.holding,
		}
	}
	return s
}

// ApplySnapshot overwrites local state with a server snapshot.
// Snapshots of other games are ignored.
func (g *Game) ApplySnapshot(gs multiplayer.GameSnapshot) {
	s, ok := gs.(Snapshot)
	if !ok {
		return
	}
	g.ticks = s.Tick
	for i, ps := range s.Players {
		p := &g.players[i]
		p.box.X, p.box.Y = ps.X, ps.Y
		p.racket = sim.V(ps.RacketX, ps.RacketY)
		p.holding = ps.Holding
	}
	g.ball.pos = sim.V(s.BallX, s.BallY)
	g.ball.vel = sim.V(s.BallVX, s.BallVY)
	g.ball.live = s.Live
	g.server = s.Server
	g.score = s.Score
	g.winner = s.Winner
	g.gameOver = s.GameOver
	g.paused = s.Paused
}
