// ABOUTME: Sample emitter that fills backend buffers from an oscillator
// ABOUTME: Pulls one sample per frame and fans it out across every channel
package emit

import (
	"sync/atomic"

	"github.com/Resonate-Protocol/resonate-tone/pkg/audio"
	"github.com/Resonate-Protocol/resonate-tone/pkg/osc"
)

// Fill writes one sample from src into every slot of each whole frame in out.
// Frames are filled in buffer order and src advances exactly once per frame.
// A trailing partial frame is left untouched. Returns the number of frames written.
func Fill[T audio.Sample](out []T, channels int, src osc.Oscillator, conv func(float32) T) int {
	if channels <= 0 {
		return 0
	}

	frames := len(out) / channels
	for f := 0; f < frames; f++ {
		v := conv(src.Next())
		frame := out[f*channels : (f+1)*channels]
		for i := range frame {
			frame[i] = v
		}
	}
	return frames
}

// FillBytes is Fill for byte-oriented backends: samples are encoded little-endian in format
func FillBytes(out []byte, format audio.SampleFormat, channels int, src osc.Oscillator) int {
	width := format.BytesPerSample()
	if channels <= 0 || width == 0 {
		return 0
	}

	frameBytes := width * channels
	frames := len(out) / frameBytes
	for f := 0; f < frames; f++ {
		frame := out[f*frameBytes : (f+1)*frameBytes]
		audio.Encode(frame, format, src.Next())
		for i := width; i < frameBytes; i += width {
			copy(frame[i:i+width], frame[:width])
		}
	}
	return frames
}

// Stats reports how much work the emitter has done
type Stats struct {
	Callbacks int64
	Frames    int64
}

// Emitter binds a source to an interleaved channel count and renders backend buffers.
//
// Render methods run on the backend's callback goroutine and do not allocate or lock.
// The source is owned by the emitter once created and must not be touched elsewhere.
type Emitter struct {
	src      osc.Oscillator
	channels int

	callbacks atomic.Int64
	frames    atomic.Int64
}

// New creates an emitter over src for channels interleaved channels
func New(src osc.Oscillator, channels int) *Emitter {
	return &Emitter{
		src:      src,
		channels: channels,
	}
}

// Channels returns the interleaved channel count
func (e *Emitter) Channels() int { return e.channels }

// RenderFloat32 fills a float32 buffer
func (e *Emitter) RenderFloat32(out []float32) {
	e.account(Fill(out, e.channels, e.src, audio.ToFloat32))
}

// RenderInt16 fills a signed 16-bit buffer
func (e *Emitter) RenderInt16(out []int16) {
	e.account(Fill(out, e.channels, e.src, audio.ToInt16))
}

// RenderUint16 fills an unsigned 16-bit buffer
func (e *Emitter) RenderUint16(out []uint16) {
	e.account(Fill(out, e.channels, e.src, audio.ToUint16))
}

// RenderInt32 fills a signed 32-bit buffer
func (e *Emitter) RenderInt32(out []int32) {
	e.account(Fill(out, e.channels, e.src, audio.ToInt32))
}

// RenderBytes fills a little-endian byte buffer in format
func (e *Emitter) RenderBytes(out []byte, format audio.SampleFormat) {
	e.account(FillBytes(out, format, e.channels, e.src))
}

func (e *Emitter) account(frames int) {
	e.callbacks.Add(1)
	e.frames.Add(int64(frames))
}

// Stats returns callback and frame counters. Safe to call from any goroutine.
func (e *Emitter) Stats() Stats {
	return Stats{
		Callbacks: e.callbacks.Load(),
		Frames:    e.frames.Load(),
	}
}
