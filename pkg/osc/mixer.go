// ABOUTME: Mixer combining several oscillators into one normalized signal
// ABOUTME: Advances every child once per sample and averages their output
package osc

import "fmt"

// Mixer averages a fixed set of oscillators. It is itself an Oscillator.
type Mixer struct {
	oscs []Oscillator
	n    float32
}

// NewMixer builds a mixer over oscs. The set is copied and fixed for the mixer's lifetime.
func NewMixer(oscs ...Oscillator) (*Mixer, error) {
	if len(oscs) == 0 {
		return nil, ErrNoOscillators
	}
	for i, o := range oscs {
		if o == nil {
			return nil, fmt.Errorf("%w: oscillator %d is nil", ErrNoOscillators, i)
		}
	}

	owned := make([]Oscillator, len(oscs))
	copy(owned, oscs)

	return &Mixer{
		oscs: owned,
		n:    float32(len(owned)),
	}, nil
}

// Next advances each child exactly once, in order, and returns their mean.
// The result stays in [-1, 1] whenever every child does.
func (m *Mixer) Next() float32 {
	var sum float32
	for _, o := range m.oscs {
		sum += o.Next()
	}
	return sum / m.n
}

// Len returns the number of mixed oscillators
func (m *Mixer) Len() int {
	return len(m.oscs)
}
