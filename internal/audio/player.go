package audio

import (
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/vovakirdan/sky-arcade/internal/core"
)

// maxVoices caps overlapping cues so a burst of explosions stays audible.
const maxVoices = 8

// Player mixes sound cues into the speaker. It degrades to a silent player
// when no audio device can be opened. Safe for concurrent use.
type Player struct {
	mu      sync.Mutex
	mixer   *beep.Mixer
	enabled bool
	muted   bool
	volume  float64
}

var speakerOnce struct {
	sync.Once
	err error
}

// NewPlayer opens the default audio device. Failures are logged once and
// produce a silent player.
func NewPlayer(logger *log.Logger) *Player {
	p := NewSilent()

	speakerOnce.Do(func() {
		speakerOnce.err = speaker.Init(SampleRate, SampleRate.N(50*time.Millisecond))
	})
	if err := speakerOnce.err; err != nil {
		if logger != nil {
			logger.Warn("audio disabled", "err", err)
		}
		return p
	}

	speaker.Play(p.mixer)
	p.enabled = true
	return p
}

// NewSilent returns a player that tracks mute state but never makes a sound.
func NewSilent() *Player {
	return &Player{mixer: &beep.Mixer{}, volume: 1}
}

// Play queues the cue for s. Unknown sounds, a muted player and a silent
// player do nothing.
func (p *Player) Play(s core.Sound) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.enabled || p.muted {
		return
	}
	cue, ok := CueFor(s)
	if !ok {
		return
	}

	speaker.Lock()
	if p.mixer.Len() < maxVoices {
		p.mixer.Add(cue.Streamer(p.volume))
	}
	speaker.Unlock()
}

// PlayAll plays every cue of one step.
func (p *Player) PlayAll(sounds []core.Sound) {
	for _, s := range sounds {
		p.Play(s)
	}
}

// ToggleMute flips the mute state and returns the new value. Muting stops
// cues that are still playing.
func (p *Player) ToggleMute() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.muted = !p.muted
	if p.muted && p.enabled {
		speaker.Lock()
		p.mixer.Clear()
		speaker.Unlock()
	}
	return p.muted
}

// SetMuted sets the mute state.
func (p *Player) SetMuted(muted bool) {
	if p.Muted() != muted {
		p.ToggleMute()
	}
}

// Muted reports whether the player is muted.
func (p *Player) Muted() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.muted
}

// Enabled reports whether an audio device is attached.
func (p *Player) Enabled() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.enabled
}

// Close stops all cues. The speaker itself stays open for the process.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.enabled {
		speaker.Lock()
		p.mixer.Clear()
		speaker.Unlock()
	}
	p.enabled = false
}
