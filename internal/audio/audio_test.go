package audio

import (
	"math"
	"testing"

	"github.com/gopxl/beep"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/sky-arcade/internal/core"
)

// drain reads a streamer to the end and returns every left-channel sample.
func drain(t *testing.T, s beep.Streamer) []float64 {
	t.Helper()
	var out []float64
	buf := make([][2]float64, 512)
	for range 10000 {
		n, ok := s.Stream(buf)
		for _, v := range buf[:n] {
			out = append(out, v[0])
		}
		if !ok {
			return out
		}
	}
	t.Fatal("streamer never finished")
	return nil
}

func TestEverySoundHasACue(t *testing.T) {
	for s := core.SoundShoot; s <= core.SoundWin; s++ {
		cue, ok := CueFor(s)
		require.True(t, ok, s.String())
		assert.NotEmpty(t, cue, s.String())
		assert.Positive(t, cue.Duration(), s.String())
	}
	_, ok := CueFor(core.SoundNone)
	assert.False(t, ok)
}

func TestCueLengthMatchesDuration(t *testing.T) {
	for s := core.SoundShoot; s <= core.SoundWin; s++ {
		cue, _ := CueFor(s)
		want := 0
		for _, tone := range cue {
			want += SampleRate.N(tone.Duration)
		}
		samples := drain(t, cue.Streamer(1))
		assert.Len(t, samples, want, s.String())
	}
}

func TestCueStaysInRangeAndDecays(t *testing.T) {
	cue, _ := CueFor(core.SoundDrum)
	samples := drain(t, cue.Streamer(1))
	require.NotEmpty(t, samples)

	peak := func(vs []float64) float64 {
		m := 0.0
		for _, v := range vs {
			m = math.Max(m, math.Abs(v))
		}
		return m
	}
	for _, v := range samples {
		assert.False(t, math.IsNaN(v))
		assert.LessOrEqual(t, math.Abs(v), 1.0)
	}
	q := len(samples) / 4
	assert.Greater(t, peak(samples[:q]), peak(samples[3*q:]), "gain decays over the tone")
}

func TestZeroVolumeIsSilent(t *testing.T) {
	cue, _ := CueFor(core.SoundExplosion)
	for _, v := range drain(t, cue.Streamer(0)) {
		assert.Zero(t, v)
	}
}

func TestSilentPlayer(t *testing.T) {
	p := NewSilent()
	assert.False(t, p.Enabled())

	p.Play(core.SoundWin)
	p.PlayAll([]core.Sound{core.SoundHit, core.SoundCoin})

	assert.True(t, p.ToggleMute())
	assert.True(t, p.Muted())
	assert.False(t, p.ToggleMute())

	p.SetMuted(true)
	assert.True(t, p.Muted())
	p.SetMuted(true)
	assert.True(t, p.Muted())

	p.Close()
}
