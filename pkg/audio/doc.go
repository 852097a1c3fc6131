// ABOUTME: Audio fundamentals package providing core types and utilities
// ABOUTME: Defines sample formats, stream configs and sample conversion functions
// Package audio provides fundamental audio types shared by the tone generator.
//
// This package defines:
//   - SampleFormat: numeric encoding of an output buffer (f32, s16, u16, s32)
//   - StreamConfig: negotiated sample rate, channel count and format
//
// It also provides the float-to-native mapping used when writing samples:
//   - float32 passes through (clamped to [-1, 1])
//   - signed integers scale linearly to their full range
//   - uint16 maps [-1, 1] onto [0, 65535]
//
// Example:
//
//	cfg := audio.StreamConfig{
//	    SampleRate: 48000,
//	    Channels:   2,
//	    Format:     audio.FormatInt16,
//	}
//
//	s := audio.ToInt16(0.5) // 16383
package audio
