// ABOUTME: Oscillator package for real-time sample generation
// ABOUTME: Provides the Oscillator interface with Sine, Mixer and sample-clock sources
// Package osc provides oscillators that produce one sample per call.
//
// Variants:
//   - Sine: phase-accumulator sine with a whole-sample period
//   - Mixer: averages a fixed set of oscillators
//   - Func: adapts a plain sample function, e.g. ClockChord over a SampleClock
//
// Example:
//
//	root, _ := osc.NewSine(440, 48000)
//	fifth, _ := osc.NewSine(659.26, 48000)
//	chord, err := osc.NewMixer(root, fifth)
//	v := chord.Next()
package osc
