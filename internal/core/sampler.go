package core

// DefaultHoldTicks is how long a continuous action stays held after the last
// key event when the terminal gives no release notification.
const DefaultHoldTicks = 10

// KeySampler turns discrete terminal key events into per-tick input frames.
//
// Continuous actions (movement, guard) remain held until their hold window
// expires; every auto-repeat event refreshes the window. Impulse actions
// (fire, punch, pause) are delivered in exactly one frame.
type KeySampler struct {
	holdTicks uint64
	held      map[PlayerID]map[Action]uint64 // action -> expiry tick (exclusive)
	impulses  map[PlayerID]map[Action]bool
	pointer   Pointer
}

// NewKeySampler creates a sampler. holdTicks <= 0 selects DefaultHoldTicks.
func NewKeySampler(holdTicks int) *KeySampler {
	if holdTicks <= 0 {
		holdTicks = DefaultHoldTicks
	}
	return &KeySampler{
		holdTicks: uint64(holdTicks),
		held:      make(map[PlayerID]map[Action]uint64),
		impulses:  make(map[PlayerID]map[Action]bool),
	}
}

// opposite returns the action cancelled by a.
func opposite(a Action) Action {
	switch a {
	case ActionUp:
		return ActionDown
	case ActionDown:
		return ActionUp
	case ActionLeft:
		return ActionRight
	case ActionRight:
		return ActionLeft
	}
	return ActionNone
}

// Press records a key event for player p at the given tick.
func (s *KeySampler) Press(p PlayerID, a Action, tick uint64) {
	if a == ActionNone {
		return
	}
	if !a.Continuous() {
		if s.impulses[p] == nil {
			s.impulses[p] = make(map[Action]bool)
		}
		s.impulses[p][a] = true
		return
	}
	if s.held[p] == nil {
		s.held[p] = make(map[Action]uint64)
	}
	if opp := opposite(a); opp != ActionNone {
		delete(s.held[p], opp)
	}
	s.held[p][a] = tick + s.holdTicks
}

// MovePointer updates the pointer position in screen cells.
func (s *KeySampler) MovePointer(x, y float64) {
	s.pointer.X = x
	s.pointer.Y = y
	s.pointer.Valid = true
}

// SetPointerDown updates the primary button state.
func (s *KeySampler) SetPointerDown(down bool) {
	s.pointer.Down = down
}

// Pointer returns the last known pointer state.
func (s *KeySampler) Pointer() Pointer {
	return s.pointer
}

// Frame builds the input for the given tick and consumes pending impulses.
// The pointer is attributed to Player1.
func (s *KeySampler) Frame(tick uint64) MultiInputFrame {
	multi := NewMultiInputFrame()
	for _, p := range []PlayerID{Player1, Player2} {
		frame := NewInputFrame()
		for a, until := range s.held[p] {
			if tick < until {
				frame.Set(a)
			} else {
				delete(s.held[p], a)
			}
		}
		for a := range s.impulses[p] {
			frame.Set(a)
		}
		delete(s.impulses, p)
		if p == Player1 {
			frame.Pointer = s.pointer
		}
		multi.SetPlayer(p, frame)
	}
	return multi
}

// Reset forgets all held keys and pending impulses.
func (s *KeySampler) Reset() {
	clear(s.held)
	clear(s.impulses)
	s.pointer.Down = false
}
