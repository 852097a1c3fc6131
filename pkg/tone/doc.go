// ABOUTME: High-level tone generator API
// ABOUTME: Wires interval frequencies, oscillators and an audio backend into one stream
// Package tone provides the high-level API for playing generated tones.
//
// It is the main entry point for most library users:
//   - NewSource: build a sine, a mixed chord or a clock-driven chord for a sample rate
//   - Generator: negotiate a device with an output.Backend and stream the source to it
//
// For lower-level control, see the interval, osc, audio/emit and audio/output packages.
//
// Example:
//
//	triad := interval.MajorTriad(440)
//	gen, err := tone.New(tone.Config{
//	    Frequencies: []float64{float64(triad[0]), float64(triad[1]), float64(triad[2])},
//	    Backend:     output.NewOto(output.DefaultOptions()),
//	})
//	err = gen.Start()
//	defer gen.Close()
package tone
