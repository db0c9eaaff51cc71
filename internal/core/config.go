package core

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to adapt to screen size and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second (default 60)
	Seed     int64 // RNG seed for deterministic gameplay
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Score    int  // Current score
	GameOver bool // Whether the game has ended
	Paused   bool // Whether the game is paused
}

// Trophy is an achievement unlocked during a run.
type Trophy struct {
	ID     string // Stable identifier, e.g. "sky-rookie"
	Name   string // Display name
	Holder string // Who earned it ("P1", "P2"); empty for single player games
}

// StepResult is returned by Game.Step() after each simulation tick.
// Contains the updated game state and any events that occurred.
type StepResult struct {
	State GameState

	// Sounds are cues the platform may play. Games never block on audio.
	Sounds []Sound

	// Trophies lists achievements unlocked during this tick.
	Trophies []Trophy
}

// Emit appends a sound cue to the result.
func (r *StepResult) Emit(s Sound) {
	r.Sounds = append(r.Sounds, s)
}

// Award appends an unlocked trophy to the result.
func (r *StepResult) Award(t Trophy) {
	r.Trophies = append(r.Trophies, t)
}
