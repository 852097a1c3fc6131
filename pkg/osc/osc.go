// ABOUTME: Oscillator abstraction and phase-accumulator sine implementation
// ABOUTME: Produces one normalized sample per Next call for the real-time path
package osc

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrInvalidFrequency is returned when a frequency is not positive or reaches Nyquist
	ErrInvalidFrequency = errors.New("invalid oscillator frequency")

	// ErrInvalidSampleRate is returned when the sample rate is not positive
	ErrInvalidSampleRate = errors.New("invalid sample rate")

	// ErrNoOscillators is returned when a mixer is built from an empty or nil set
	ErrNoOscillators = errors.New("mixer needs at least one oscillator")
)

// Oscillator produces a waveform one sample at a time.
//
// Next advances the internal phase by one step and returns the new value in [-1, 1].
// Implementations must be O(1) and must not allocate, lock or block: Next runs inside
// the audio backend's real-time callback.
type Oscillator interface {
	Next() float32
}

// Func adapts a plain sample function to the Oscillator interface
type Func func() float32

// Next calls f
func (f Func) Next() float32 {
	return f()
}

// Sine is a phase-accumulator sine oscillator.
//
// The period is quantized to a whole number of samples, so the played frequency is
// sampleRate/period rather than the requested one. The error grows with frequency;
// for 440 Hz at 44.1 kHz the period is 100 samples and the tone plays at 441 Hz.
type Sine struct {
	period     uint32
	clock      uint32
	sampleRate int
}

// NewSine creates a sine oscillator for freq Hz at sampleRate.
// freq must be positive and below sampleRate/2.
func NewSine(freq float64, sampleRate int) (*Sine, error) {
	if err := ValidateFrequency(freq, sampleRate); err != nil {
		return nil, err
	}

	period := uint32(math.Round(float64(sampleRate) / freq))

	return &Sine{
		period:     period,
		sampleRate: sampleRate,
	}, nil
}

// ValidateFrequency checks that freq can be rendered at sampleRate.
// The period sampleRate/freq must round to a value that fits a uint32.
func ValidateFrequency(freq float64, sampleRate int) error {
	if sampleRate <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidSampleRate, sampleRate)
	}
	if math.IsNaN(freq) || math.IsInf(freq, 0) || freq <= 0 {
		return fmt.Errorf("%w: %v Hz", ErrInvalidFrequency, freq)
	}
	if freq >= float64(sampleRate)/2 {
		return fmt.Errorf("%w: %v Hz is at or above Nyquist (%d Hz sample rate)",
			ErrInvalidFrequency, freq, sampleRate)
	}
	if math.Round(float64(sampleRate)/freq) > math.MaxUint32 {
		return fmt.Errorf("%w: %v Hz is too low, its period does not fit in 32 bits at %d Hz",
			ErrInvalidFrequency, freq, sampleRate)
	}
	return nil
}

// Next advances the phase clock and returns sin(2π·clock/period)
func (s *Sine) Next() float32 {
	s.clock = (s.clock + 1) % s.period
	return float32(math.Sin(2 * math.Pi * float64(s.clock) / float64(s.period)))
}

// Period returns the number of samples per cycle
func (s *Sine) Period() uint32 { return s.period }

// Clock returns the current phase clock, always in [0, Period)
func (s *Sine) Clock() uint32 { return s.clock }

// ActualFrequency returns the frequency actually rendered after period quantization
func (s *Sine) ActualFrequency() float64 {
	return float64(s.sampleRate) / float64(s.period)
}
