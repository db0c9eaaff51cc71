package sim

// Cooldown counts down simulation ticks. The zero value is ready.
type Cooldown struct {
	left int
}

// Start arms the cooldown for n ticks.
func (c *Cooldown) Start(n int) { c.left = n }

// Tick advances by one tick.
func (c *Cooldown) Tick() {
	if c.left > 0 {
		c.left--
	}
}

// Ready reports whether the cooldown has elapsed.
func (c Cooldown) Ready() bool { return c.left == 0 }

// Remaining returns the ticks left.
func (c Cooldown) Remaining() int { return c.left }

// Interval fires every n ticks; used for periodic spawns.
type Interval struct {
	Every int
	acc   int
}

// Tick advances one tick and reports whether the interval fired.
// Every <= 0 never fires.
func (iv *Interval) Tick() bool {
	if iv.Every <= 0 {
		return false
	}
	iv.acc++
	if iv.acc >= iv.Every {
		iv.acc = 0
		return true
	}
	return false
}

// Reset restarts the interval.
func (iv *Interval) Reset() { iv.acc = 0 }
