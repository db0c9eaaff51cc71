package boxing

import (
	"github.com/vovakirdan/sky-arcade/internal/core"
	"github.com/vovakirdan/sky-arcade/internal/multiplayer"
	"github.com/vovakirdan/sky-arcade/internal/sim"
)

// FighterState is one fighter as seen by remote clients.
type FighterState struct {
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Health   int     `json:"health"`
	Facing   float64 `json:"facing"`
	Pose     int     `json:"pose"`
	Blocking bool    `json:"blocking"`
	Cooldown int     `json:"cooldown"`
}

// PunchState is a glove in flight.
type PunchState struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Owner int     `json:"owner"` // 0 for Player 1, 1 for Player 2
	Dir   float64 `json:"dir"`
	TTL   int     `json:"ttl"`
}

// Snapshot is the complete state of a bout for network transmission.
type Snapshot struct {
	Tick     int             `json:"tick"`
	Fighters [2]FighterState `json:"fighters"`
	Punches  []PunchState    `json:"punches"`
	Winner   core.PlayerID   `json:"winner"`
	GameOver bool            `json:"game_over"`
	Paused   bool            `json:"paused"`
}

// IsGameSnapshot implements the GameSnapshot interface marker.
func (Snapshot) IsGameSnapshot() {}

var _ multiplayer.GameSnapshot = Snapshot{}

// Snapshot captures the bout.
func (g *Game) Snapshot() multiplayer.GameSnapshot {
	s := Snapshot{
		Tick:     g.ticks,
		Punches:  make([]PunchState, 0, g.punches.Len()),
		Winner:   g.winner,
		GameOver: g.gameOver,
		Paused:   g.paused,
	}
	for i, f := range g.fighters {
		s.Fighters[i] = FighterState{
			X:        f.box.X,
			Y:        f.box.Y,
			Health:   f.health,
			Facing:   f.facing,
			Pose:     f.pose,
			Blocking: f.blocking,
			Cooldown: f.cooldown.Remaining(),
		}
	}
	g.punches.Each(func(p *punch) {
		s.Punches = append(s.Punches, PunchState{X: p.box.X, Y: p.box.Y, Owner: p.owner, Dir: p.dir, TTL: p.ttl})
	})
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
	g.winner = s.Winner
	g.gameOver = s.GameOver
	g.paused = s.Paused

	for i, fs := range s.Fighters {
		f := &g.fighters[i]
		f.box.X, f.box.Y = fs.X, fs.Y
		f.health = fs.Health
		f.facing = fs.Facing
		f.pose = fs.Pose
		f.blocking = fs.Blocking
		f.cooldown.Start(fs.Cooldown)
	}

	p := g.cfg.Punch
	items := make([]punch, 0, len(s.Punches))
	for _, ps := range s.Punches {
		items = append(items, punch{
			box:   sim.Box{X: ps.X, Y: ps.Y, W: p.Width, H: p.Height},
			owner: ps.Owner,
			dir:   ps.Dir,
			ttl:   ps.TTL,
		})
	}
	g.punches.Replace(items)
}
