package sim

import (
	"math/rand"

	"github.com/vovakirdan/sky-arcade/internal/core"
)

// NewRand returns a deterministic generator for the given seed.
func NewRand(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// Chance returns true with probability p.
func Chance(rng *rand.Rand, p float64) bool {
	return rng.Float64() < p
}

// Between returns a uniform float in [lo, hi).
func Between(rng *rand.Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}

// Monkey produces random but reproducible input frames for headless runs.
type Monkey struct {
	rng     *rand.Rand
	actions []core.Action
	held    map[core.Action]int
	w, h    float64
}

// NewMonkey creates a random input source over the given action set.
// w and h bound the generated pointer positions.
func NewMonkey(seed int64, actions []core.Action, w, h float64) *Monkey {
	return &Monkey{
		rng:     NewRand(seed),
		actions: actions,
		held:    make(map[core.Action]int),
		w:       w,
		h:       h,
	}
}

// Next returns the input for the next tick. Continuous actions are held for
// a random number of ticks; impulses fire with low probability.
func (m *Monkey) Next() core.InputFrame {
	frame := core.NewInputFrame()
	for _, a := range m.actions {
		if a.Continuous() {
			if m.held[a] > 0 {
				m.held[a]--
				frame.Set(a)
			} else if Chance(m.rng, 0.05) {
				m.held[a] = 5 + m.rng.Intn(20)
			}
			continue
		}
		if Chance(m.rng, 0.08) {
			frame.Set(a)
		}
	}
	frame.Pointer = core.Pointer{
		X:     Between(m.rng, 0, m.w),
		Y:     Between(m.rng, 0, m.h),
		Valid: m.w > 0 && m.h > 0,
	}
	return frame
}
