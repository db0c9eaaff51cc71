// Package audio turns game sound cues into short synthesized tones and
// plays them through the system speaker when one is available.
package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"

	"github.com/vovakirdan/sky-arcade/internal/core"
)

// SampleRate is the output rate of every synthesized cue.
const SampleRate = beep.SampleRate(44100)

// Wave is an oscillator shape.
type Wave int

const (
	WaveSine Wave = iota
	WaveSquare
	WaveSaw
	WaveTriangle
	WaveNoise
)

// Tone is one exponential frequency sweep with an exponential gain decay.
type Tone struct {
	Wave     Wave
	From, To float64 // Hz
	Gain     float64 // Initial gain, decays to 1% of itself
	Duration time.Duration
}

// Cue is a sequence of tones played back to back.
type Cue []Tone

var cues = map[core.Sound]Cue{
	core.SoundShoot:     {{Wave: WaveSquare, From: 800, To: 400, Gain: 0.1, Duration: 100 * time.Millisecond}},
	core.SoundExplosion: {{Wave: WaveNoise, Gain: 0.3, Duration: 300 * time.Millisecond}},
	core.SoundHit:       {{Wave: WaveSaw, From: 150, To: 50, Gain: 0.2, Duration: 200 * time.Millisecond}},
	core.SoundCoin: {
		{Wave: WaveSine, From: 800, To: 1200, Gain: 0.15, Duration: 100 * time.Millisecond},
		{Wave: WaveSine, From: 1200, To: 600, Gain: 0.15, Duration: 100 * time.Millisecond},
	},
	core.SoundDrum:  {{Wave: WaveSine, From: 200, To: 50, Gain: 0.4, Duration: 300 * time.Millisecond}},
	core.SoundPunch: {{Wave: WaveSquare, From: 200, To: 100, Gain: 0.4, Duration: 100 * time.Millisecond}},
	core.SoundBlock: {{Wave: WaveTriangle, From: 300, To: 300, Gain: 0.3, Duration: 50 * time.Millisecond}},
	core.SoundKO: {
		{Wave: WaveSaw, From: 400, To: 100, Gain: 0.3, Duration: 400 * time.Millisecond},
		{Wave: WaveNoise, Gain: 0.2, Duration: 200 * time.Millisecond},
	},
	core.SoundScore: {{Wave: WaveSine, From: 523, To: 784, Gain: 0.2, Duration: 150 * time.Millisecond}},
	core.SoundWin: {
		{Wave: WaveSine, From: 523, To: 523, Gain: 0.2, Duration: 120 * time.Millisecond},
		{Wave: WaveSine, From: 659, To: 659, Gain: 0.2, Duration: 120 * time.Millisecond},
		{Wave: WaveSine, From: 784, To: 784, Gain: 0.2, Duration: 240 * time.Millisecond},
	},
}

// CueFor returns the cue for a sound, or false if the sound is silent.
func CueFor(s core.Sound) (Cue, bool) {
	c, ok := cues[s]
	return c, ok
}

// Streamer renders the cue at the given volume (0..1).
func (c Cue) Streamer(volume float64) beep.Streamer {
	parts := make([]beep.Streamer, 0, len(c))
	for _, t := range c {
		parts = append(parts, newSweep(t, SampleRate))
	}
	return withVolume(beep.Seq(parts...), volume)
}

// Duration is the total playback time of the cue.
func (c Cue) Duration() time.Duration {
	var d time.Duration
	for _, t := range c {
		d += t.Duration
	}
	return d
}

// sweep generates a single tone sample by sample.
type sweep struct {
	tone  Tone
	rate  beep.SampleRate
	total int
	pos   int
	phase float64
	rng   *rand.Rand
}

func newSweep(t Tone, rate beep.SampleRate) *sweep {
	return &sweep{
		tone:  t,
		rate:  rate,
		total: rate.N(t.Duration),
		rng:   rand.New(rand.NewSource(int64(t.From*1000) + int64(t.Duration))), //nolint:gosec // noise, not crypto
	}
}

func (s *sweep) Stream(samples [][2]float64) (n int, ok bool) {
	if s.pos >= s.total {
		return 0, false
	}
	for i := range samples {
		if s.pos >= s.total {
			return i, true
		}
		progress := float64(s.pos) / float64(s.total)
		v := s.sample() * s.tone.Gain * math.Pow(0.01, progress)
		samples[i][0] = v
		samples[i][1] = v

		freq := s.tone.From
		if s.tone.From > 0 && s.tone.To > 0 {
			freq = s.tone.From * math.Pow(s.tone.To/s.tone.From, progress)
		}
		s.phase += freq / float64(s.rate)
		s.phase -= math.Floor(s.phase)
		s.pos++
	}
	return len(samples), true
}

func (s *sweep) sample() float64 {
	switch s.tone.Wave {
	case WaveSquare:
		if s.phase < 0.5 {
			return 1
		}
		return -1
	case WaveSaw:
		return 2 * (s.phase - 0.5)
	case WaveTriangle:
		return 1 - 4*math.Abs(s.phase-0.5)
	case WaveNoise:
		return s.rng.Float64()*2 - 1
	default:
		return math.Sin(2 * math.Pi * s.phase)
	}
}

func (s *sweep) Err() error { return nil }

// withVolume scales a streamer linearly. A volume of 0 is silent.
func withVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}
