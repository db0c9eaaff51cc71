package sim

import (
	"context"
	"time"
)

// MaxCatchUp bounds how many steps a Clock reports after a stall, so a slow
// frame never snowballs into ever longer catch-up bursts.
const MaxCatchUp = 5

// Clock is a fixed-timestep accumulator. Wall-clock time is fed in and
// whole simulation steps come out.
type Clock struct {
	step time.Duration
	acc  time.Duration
	tick uint64
}

// NewClock creates a clock for the given tick rate (ticks per second).
func NewClock(tickRate int) *Clock {
	if tickRate <= 0 {
		tickRate = 60
	}
	return &Clock{step: time.Second / time.Duration(tickRate)}
}

// Step returns the duration of one simulation step.
func (c *Clock) Step() time.Duration { return c.step }

// Tick returns the number of steps taken so far.
func (c *Clock) Tick() uint64 { return c.tick }

// Advance adds elapsed time and returns how many steps are due.
// Backlog beyond MaxCatchUp steps is dropped.
func (c *Clock) Advance(elapsed time.Duration) int {
	if elapsed < 0 {
		elapsed = 0
	}
	c.acc += elapsed
	n := int(c.acc / c.step)
	c.acc -= time.Duration(n) * c.step
	if n > MaxCatchUp {
		n = MaxCatchUp
		c.acc = 0
	}
	c.tick += uint64(n)
	return n
}

// Run calls step once per due tick at tickRate until step returns false or
// ctx is cancelled. Ticks missed while step was slow are caught up in a
// burst, at most MaxCatchUp at a time. It returns nil when step stops the
// loop and ctx.Err() on cancellation.
func Run(ctx context.Context, tickRate int, step func(tick uint64) bool) error {
	clock := NewClock(tickRate)
	ticker := time.NewTicker(clock.Step())
	defer ticker.Stop()
	return drive(ctx, clock, time.Now(), ticker.C, step)
}

// drive feeds the time between ticker fires into clock and runs the steps
// it reports due.
func drive(ctx context.Context, clock *Clock, start time.Time, fires <-chan time.Time, step func(tick uint64) bool) error {
	last := start
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-fires:
			base := clock.Tick()
			n := clock.Advance(now.Sub(last))
			last = now
			for i := range n {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				if !step(base + uint64(i)) {
					return nil
				}
			}
		}
	}
}

// RunFor steps synchronously n times without sleeping. It is the headless
// counterpart of Run used by simulations and tests.
func RunFor(n int, step func(tick uint64) bool) uint64 {
	var tick uint64
	for ; tick < uint64(n); tick++ {
		if !step(tick) {
			return tick + 1
		}
	}
	return tick
}
