// ABOUTME: Audio backend interface definition
// ABOUTME: Device discovery, default config negotiation and callback stream construction
package output

import (
	"errors"
	"fmt"
	"time"

	"github.com/Resonate-Protocol/resonate-tone/pkg/audio"
)

var (
	// ErrNoDevice is returned when the backend has no default output device
	ErrNoDevice = errors.New("default output device is not available")

	// ErrUnsupportedFormat is returned when a backend cannot play the requested sample format
	ErrUnsupportedFormat = errors.New("unsupported sample format")

	// ErrStreamStopped is reported through the error callback when the device stops on its own
	ErrStreamStopped = errors.New("output stream stopped unexpectedly")

	// ErrUnknownBackend is returned by New for names it does not recognize
	ErrUnknownBackend = errors.New("unknown audio backend")
)

// Device identifies an output device
type Device struct {
	ID   string
	Name string

	// SampleRate and Channels are the device's native values, 0 when unknown
	SampleRate int
	Channels   int

	native any
}

// Renderer fills backend-owned buffers with interleaved samples.
//
// Render methods are invoked from the backend's real-time callback. Implementations must
// not allocate, lock or block.
type Renderer interface {
	RenderFloat32(out []float32)
	RenderInt16(out []int16)
	RenderUint16(out []uint16)
	RenderInt32(out []int32)
	RenderBytes(out []byte, format audio.SampleFormat)
}

// Stream is a registered output callback
type Stream interface {
	// Play starts invoking the renderer
	Play() error

	// Close stops the stream and releases the callback registration
	Close() error
}

// Backend is an audio I/O subsystem
type Backend interface {
	// Name returns the backend identifier
	Name() string

	// DefaultOutputDevice returns the default playback device or ErrNoDevice
	DefaultOutputDevice() (*Device, error)

	// DefaultOutputConfig returns the stream config the backend prefers for dev
	DefaultOutputConfig(dev *Device) (audio.StreamConfig, error)

	// BuildOutputStream registers r as the buffer-filling callback for dev.
	// Runtime stream failures are delivered to onErr, which may be called from any goroutine.
	BuildOutputStream(dev *Device, cfg audio.StreamConfig, r Renderer, onErr func(error)) (Stream, error)

	// Close releases backend resources
	Close() error
}

// Options are the stream preferences used where a backend cannot query the device
type Options struct {
	SampleRate int
	Channels   int
	Format     audio.SampleFormat

	// BufferFrames is the callback buffer size in frames (0 = backend default)
	BufferFrames int

	// Latency is the requested output latency (0 = backend default)
	Latency time.Duration

	// AppName identifies the client to sound servers that track applications
	AppName string
}

// DefaultOptions returns the preferences used when none are given
func DefaultOptions() Options {
	return Options{
		SampleRate:   48000,
		Channels:     2,
		Format:       audio.FormatFloat32,
		BufferFrames: 512,
		AppName:      "resonate-tone",
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.SampleRate <= 0 {
		o.SampleRate = d.SampleRate
	}
	if o.Channels <= 0 {
		o.Channels = d.Channels
	}
	if !o.Format.Valid() {
		o.Format = d.Format
	}
	if o.BufferFrames <= 0 {
		o.BufferFrames = d.BufferFrames
	}
	if o.AppName == "" {
		o.AppName = d.AppName
	}
	return o
}

// Backends lists the names accepted by New
var Backends = []string{"oto", "malgo", "pulse", "portaudio", "headless"}

// New creates a backend by name
func New(name string, opts Options) (Backend, error) {
	switch name {
	case "oto":
		return NewOto(opts), nil
	case "malgo":
		return NewMalgo(opts), nil
	case "pulse":
		return NewPulse(opts), nil
	case "portaudio":
		return NewPortAudio(opts), nil
	case "headless":
		return NewHeadless(opts), nil
	default:
		return nil, fmt.Errorf("%w: %q (supported: %v)", ErrUnknownBackend, name, Backends)
	}
}

// pickFormat returns want if the backend supports it, otherwise the first supported format
func pickFormat(want audio.SampleFormat, supported ...audio.SampleFormat) audio.SampleFormat {
	for _, f := range supported {
		if f == want {
			return f
		}
	}
	return supported[0]
}

func checkFormat(backend string, f audio.SampleFormat, supported ...audio.SampleFormat) error {
	for _, s := range supported {
		if s == f {
			return nil
		}
	}
	return fmt.Errorf("%w: %s cannot play %s (supported: %v)", ErrUnsupportedFormat, backend, f, supported)
}
