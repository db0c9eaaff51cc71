package sim

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/sky-arcade/internal/core"
)

func TestBoxIntersects(t *testing.T) {
	a := Box{0, 0, 4, 2}

	assert.True(t, a.Intersects(Box{3, 1, 4, 2}), "overlap")
	assert.False(t, a.Intersects(Box{4, 0, 1, 1}), "touching right edge")
	assert.False(t, a.Intersects(Box{0, 2, 1, 1}), "touching bottom edge")
	assert.True(t, a.Intersects(Box{1, 0.5, 0.5, 0.5}), "contained")
	assert.Equal(t, a.Intersects(Box{3, 1, 4, 2}), Box{3, 1, 4, 2}.Intersects(a), "symmetry")
}

func TestBoxClampInto(t *testing.T) {
	bounds := Box{0, 1, 20, 10}

	got := Box{-3, 15, 4, 2}.ClampInto(bounds)
	assert.Equal(t, Box{0, 9, 4, 2}, got)

	got = Box{18, 0, 4, 2}.ClampInto(bounds)
	assert.Equal(t, Box{16, 1, 4, 2}, got)
}

func TestCircleTests(t *testing.T) {
	c := Circle{V(0, 0), 1}

	assert.True(t, c.Intersects(Circle{V(1.5, 0), 1}))
	assert.False(t, c.Intersects(Circle{V(2, 0), 1}), "exactly touching does not collide")
	assert.True(t, c.IntersectsBox(Box{0.5, -0.5, 2, 1}))
	assert.False(t, c.IntersectsBox(Box{1, 1, 2, 2}), "corner at distance sqrt(2)")
}

func TestVecNorm(t *testing.T) {
	n := V(3, 4).Norm()
	assert.InDelta(t, 0.6, n.X, 1e-9)
	assert.InDelta(t, 0.8, n.Y, 1e-9)
	assert.Equal(t, Vec{}, Vec{}.Norm())

	f := FromAngle(math.Pi/2, 2)
	assert.InDelta(t, 0, f.X, 1e-9)
	assert.InDelta(t, 2, f.Y, 1e-9)
}

func items[T any](p *Pool[T]) []T {
	var out []T
	for _, v := range p.All() {
		out = append(out, *v)
	}
	return out
}

func TestPoolRemoveIf(t *testing.T) {
	p := NewPool[int](4)
	for i := range 6 {
		p.Add(i)
	}

	removed := p.RemoveIf(func(v *int) bool { return *v%2 == 1 })
	require.Equal(t, 3, removed)
	assert.Equal(t, []int{0, 2, 4}, items(p))

	p.Each(func(v *int) { *v *= 10 })
	assert.Equal(t, []int{0, 20, 40}, items(p))

	var seen []int
	for i, v := range p.All() {
		if i == 2 {
			break
		}
		seen = append(seen, *v)
	}
	assert.Equal(t, []int{0, 20}, seen)

	p.Clear()
	assert.Zero(t, p.Len())
}

type shot struct{ x float64 }
type target struct {
	x  float64
	hp int
}

func TestCollideRemovesEachEntityOnce(t *testing.T) {
	shots := NewPool[shot](0)
	shots.Add(shot{1})
	shots.Add(shot{1})
	shots.Add(shot{9})

	targets := NewPool[target](0)
	targets.Add(target{1, 1})
	targets.Add(target{1, 1})

	hits := Collide(shots, targets,
		func(s *shot, tg *target) bool { return s.x == tg.x },
		func(s *shot, tg *target) Outcome {
			tg.hp--
			return Outcome{RemoveA: true, RemoveB: tg.hp <= 0}
		})

	assert.Equal(t, 2, hits, "each shot kills one target")
	assert.Equal(t, []shot{{9}}, items(shots))
	assert.Zero(t, targets.Len())
}

func TestCollideOne(t *testing.T) {
	coins := NewPool[shot](0)
	coins.Add(shot{1})
	coins.Add(shot{5})
	player := target{x: 1}

	n := CollideOne(coins, &player,
		func(c *shot, p *target) bool { return c.x == p.x },
		func(c *shot, p *target) bool { p.hp++; return true })

	assert.Equal(t, 1, n)
	assert.Equal(t, 1, player.hp)
	assert.Equal(t, 1, coins.Len())
}

func TestCooldownAndInterval(t *testing.T) {
	var c Cooldown
	assert.True(t, c.Ready())
	c.Start(2)
	c.Tick()
	assert.False(t, c.Ready())
	assert.Equal(t, 1, c.Remaining())
	c.Tick()
	c.Tick()
	assert.True(t, c.Ready())

	iv := Interval{Every: 3}
	fired := 0
	for range 9 {
		if iv.Tick() {
			fired++
		}
	}
	assert.Equal(t, 3, fired)
	assert.False(t, (&Interval{}).Tick())
}

func TestClockAdvance(t *testing.T) {
	c := NewClock(50) // 20ms per step

	assert.Equal(t, 0, c.Advance(10*time.Millisecond))
	assert.Equal(t, 1, c.Advance(15*time.Millisecond))
	assert.Equal(t, 2, c.Advance(40*time.Millisecond))
	assert.Equal(t, uint64(3), c.Tick())

	assert.Equal(t, MaxCatchUp, c.Advance(time.Second), "catch-up is capped")
	assert.Equal(t, 0, c.Advance(0), "backlog dropped after cap")
}

func TestRunStopsWhenStepReturnsFalse(t *testing.T) {
	var ticks []uint64
	err := Run(context.Background(), 1000, func(tick uint64) bool {
		ticks = append(ticks, tick)
		return tick < 2
	})
	require.NoError(t, err)
	assert.Equal(t, []uint64{0, 1, 2}, ticks)
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	err := Run(ctx, 1000, func(tick uint64) bool {
		if tick == 1 {
			cancel()
		}
		return true
	})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRunCatchesUpAfterStall(t *testing.T) {
	clock := NewClock(100) // 10ms per step
	start := time.Unix(0, 0)
	fires := make(chan time.Time, 4)
	fires <- start.Add(10 * time.Millisecond)
	fires <- start.Add(60 * time.Millisecond) // the previous step stalled for 50ms
	fires <- start.Add(70 * time.Millisecond)

	var ticks []uint64
	err := drive(context.Background(), clock, start, fires, func(tick uint64) bool {
		ticks = append(ticks, tick)
		return len(ticks) < 7
	})
	require.NoError(t, err)
	assert.Equal(t, []uint64{0, 1, 2, 3, 4, 5, 6}, ticks)
}

func TestRunCatchUpIsCapped(t *testing.T) {
	clock := NewClock(100)
	start := time.Unix(0, 0)
	fires := make(chan time.Time, 2)
	fires <- start.Add(time.Second)
	fires <- start.Add(time.Second + 10*time.Millisecond)

	steps := 0
	err := drive(context.Background(), clock, start, fires, func(uint64) bool {
		steps++
		return steps < MaxCatchUp+1
	})
	require.NoError(t, err)
	assert.Equal(t, MaxCatchUp+1, steps)
	assert.Equal(t, uint64(MaxCatchUp+1), clock.Tick())
}

func TestRunFor(t *testing.T) {
	count := 0
	n := RunFor(10, func(uint64) bool { count++; return true })
	assert.Equal(t, uint64(10), n)
	assert.Equal(t, 10, count)

	n = RunFor(10, func(tick uint64) bool { return tick < 3 })
	assert.Equal(t, uint64(4), n)
}

func TestMonkeyDeterministic(t *testing.T) {
	actions := []core.Action{core.ActionLeft, core.ActionRight, core.ActionFire}
	a := NewMonkey(7, actions, 80, 24)
	b := NewMonkey(7, actions, 80, 24)

	for i := range 200 {
		fa, fb := a.Next(), b.Next()
		require.Equal(t, fa.Actions, fb.Actions, "tick %d", i)
		require.Equal(t, fa.Pointer, fb.Pointer, "tick %d", i)
	}
}
