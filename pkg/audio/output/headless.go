// ABOUTME: Headless audio backend without a sound device
// ABOUTME: Drives the renderer at real-time pace into a discarded buffer
package output

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/Resonate-Protocol/resonate-tone/pkg/audio"
)

// Headless backend renders on a ticker and throws the audio away.
// It accepts every sample format and is useful on machines with no sound hardware.
type Headless struct {
	opts Options
}

// NewHeadless creates a new Headless backend
func NewHeadless(opts Options) *Headless {
	return &Headless{opts: opts.withDefaults()}
}

// Name returns the backend identifier
func (h *Headless) Name() string { return "headless" }

// DefaultOutputDevice returns the virtual device
func (h *Headless) DefaultOutputDevice() (*Device, error) {
	return &Device{
		ID:         "headless",
		Name:       "headless",
		SampleRate: h.opts.SampleRate,
		Channels:   h.opts.Channels,
	}, nil
}

// DefaultOutputConfig returns the configured preferences unchanged
func (h *Headless) DefaultOutputConfig(dev *Device) (audio.StreamConfig, error) {
	return audio.StreamConfig{
		SampleRate: h.opts.SampleRate,
		Channels:   h.opts.Channels,
		Format:     h.opts.Format,
	}, nil
}

// BuildOutputStream preallocates one callback buffer for cfg
func (h *Headless) BuildOutputStream(dev *Device, cfg audio.StreamConfig, r Renderer, onErr func(error)) (Stream, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	samples := h.opts.BufferFrames * cfg.Channels
	s := &headlessStream{
		r:      r,
		format: cfg.Format,
		period: time.Duration(h.opts.BufferFrames) * time.Second / time.Duration(cfg.SampleRate),
	}

	switch cfg.Format {
	case audio.FormatFloat32:
		s.f32 = make([]float32, samples)
	case audio.FormatInt16:
		s.i16 = make([]int16, samples)
	case audio.FormatUint16:
		s.u16 = make([]uint16, samples)
	case audio.FormatInt32:
		s.i32 = make([]int32, samples)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, cfg.Format)
	}

	s.ctx, s.cancel = context.WithCancel(context.Background())
	return s, nil
}

// Close releases resources
func (h *Headless) Close() error {
	return nil
}

type headlessStream struct {
	r      Renderer
	format audio.SampleFormat
	period time.Duration

	f32 []float32
	i16 []int16
	u16 []uint16
	i32 []int32

	ctx    context.Context
	cancel context.CancelFunc
	once   sync.Once
	wg     sync.WaitGroup
}

// Play starts the render loop
func (s *headlessStream) Play() error {
	if err := s.ctx.Err(); err != nil {
		return fmt.Errorf("stream closed: %w", err)
	}
	s.once.Do(func() {
		s.wg.Add(1)
		go s.run()
	})
	return nil
}

func (s *headlessStream) run() {
	defer s.wg.Done()

	ticker := time.NewTicker(s.period)
	defer ticker.Stop()

	for {
		select {
		case <-s.ctx.Done():
			return
		case <-ticker.C:
			s.render()
		}
	}
}

func (s *headlessStream) render() {
	switch s.format {
	case audio.FormatFloat32:
		s.r.RenderFloat32(s.f32)
	case audio.FormatInt16:
		s.r.RenderInt16(s.i16)
	case audio.FormatUint16:
		s.r.RenderUint16(s.u16)
	case audio.FormatInt32:
		s.r.RenderInt32(s.i32)
	}
}

// Close stops the render loop and waits for it to exit
func (s *headlessStream) Close() error {
	s.cancel()
	s.wg.Wait()
	return nil
}
