// ABOUTME: Sample emitter package for real-time buffer filling
// ABOUTME: Adapts an oscillator to the buffer formats audio backends hand out
// Package emit fills audio backend buffers from an oscillator.
//
// Each output frame receives exactly one new sample from the source, converted to the
// buffer's numeric format and replicated across every channel of the frame.
//
// Example:
//
//	sine, err := osc.NewSine(440, 48000)
//	e := emit.New(sine, 2)
//	e.RenderInt16(buf) // called from the backend callback
package emit
