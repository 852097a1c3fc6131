// ABOUTME: Sample-clock driven tone source
// ABOUTME: Evaluates tones directly from a running sample counter instead of per-voice phase
package osc

import (
	"fmt"
	"math"
)

// SampleClock is a shared sample counter that tones are evaluated against.
// The clock wraps at the sample rate, so it restarts once per second of audio.
type SampleClock struct {
	sampleRate float64
	clock      float64
	channels   int
}

// NewSampleClock creates a clock for sampleRate with the given output channel count
func NewSampleClock(sampleRate, channels int) (*SampleClock, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSampleRate, sampleRate)
	}
	return &SampleClock{
		sampleRate: float64(sampleRate),
		channels:   channels,
	}, nil
}

// Tick advances the clock by one sample
func (c *SampleClock) Tick() {
	c.clock = math.Mod(c.clock+1, c.sampleRate)
}

// Tone returns the value of a sine at freq for the current clock position
func (c *SampleClock) Tone(freq float64) float32 {
	return float32(math.Sin(c.clock * freq * 2 * math.Pi / c.sampleRate))
}

// Clock returns the current sample position in [0, sampleRate)
func (c *SampleClock) Clock() float64 { return c.clock }

// SampleRate returns the clock rate in Hz
func (c *SampleClock) SampleRate() int { return int(c.sampleRate) }

// Channels returns the channel count the clock was created for
func (c *SampleClock) Channels() int { return c.channels }

// ClockChord returns a source that ticks c once per sample and averages a sine at each freq.
// The frequencies are validated and copied.
func ClockChord(c *SampleClock, freqs ...float64) (Func, error) {
	if len(freqs) == 0 {
		return nil, ErrNoOscillators
	}
	for _, f := range freqs {
		if err := ValidateFrequency(f, c.SampleRate()); err != nil {
			return nil, err
		}
	}

	tones := make([]float64, len(freqs))
	copy(tones, freqs)
	n := float32(len(tones))

	return func() float32 {
		c.Tick()
		var sum float32
		for _, f := range tones {
			sum += c.Tone(f)
		}
		return sum / n
	}, nil
}
