package core

import "testing"

func TestSamplerHoldWindow(t *testing.T) {
	s := NewKeySampler(5)
	s.Press(Player1, ActionLeft, 10)

	for tick := uint64(10); tick < 15; tick++ {
		if !s.Frame(tick).Player1().Has(ActionLeft) {
			t.Fatalf("tick %d: Left should still be held", tick)
		}
	}
	if s.Frame(15).Player1().Has(ActionLeft) {
		t.Error("Left should expire once the hold window passes")
	}
}

func TestSamplerRepeatRefreshesHold(t *testing.T) {
	s := NewKeySampler(3)
	s.Press(Player1, ActionUp, 0)
	s.Press(Player1, ActionUp, 2)

	if !s.Frame(4).Player1().Has(ActionUp) {
		t.Error("auto-repeat should extend the hold window")
	}
}

func TestSamplerImpulseDeliveredOnce(t *testing.T) {
	s := NewKeySampler(0)
	s.Press(Player2, ActionPunch, 0)

	if !s.Frame(0).Player2().Has(ActionPunch) {
		t.Fatal("impulse should appear in the next frame")
	}
	if s.Frame(1).Player2().Has(ActionPunch) {
		t.Error("impulse must not repeat")
	}
}

func TestSamplerOppositeCancels(t *testing.T) {
	s := NewKeySampler(10)
	s.Press(Player1, ActionRight, 0)
	s.Press(Player1, ActionLeft, 1)

	f := s.Frame(2).Player1()
	if f.Has(ActionRight) {
		t.Error("pressing Left should release Right")
	}
	if dx, _ := f.Axis(); dx != -1 {
		t.Errorf("Axis dx = %v, expected -1", dx)
	}
}

func TestSamplerPlayersIndependent(t *testing.T) {
	s := NewKeySampler(10)
	s.Press(Player1, ActionDown, 0)
	s.Press(Player2, ActionBlock, 0)

	f := s.Frame(0)
	if f.Player1().Has(ActionBlock) || f.Player2().Has(ActionDown) {
		t.Error("actions leaked between players")
	}
	if !f.Player2().Has(ActionBlock) {
		t.Error("P2 block missing")
	}
}

func TestSamplerPointer(t *testing.T) {
	s := NewKeySampler(0)
	if s.Frame(0).Player1().Pointer.Valid {
		t.Error("pointer should be invalid before any mouse event")
	}

	s.MovePointer(12, 7)
	s.SetPointerDown(true)
	p := s.Frame(1).Player1().Pointer
	if !p.Valid || !p.Down || p.X != 12 || p.Y != 7 {
		t.Errorf("pointer = %+v", p)
	}
	if s.Frame(1).Player2().Pointer.Valid {
		t.Error("pointer belongs to P1 only")
	}

	s.Reset()
	if s.Pointer().Down {
		t.Error("Reset should release the pointer button")
	}
}
