// ABOUTME: Oto-based audio backend
// ABOUTME: Feeds an oto player from a reader that renders samples on oto's audio thread
package output

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/Resonate-Protocol/resonate-tone/pkg/audio"
	"github.com/ebitengine/oto/v3"
)

// ErrOtoContextInUse is returned when a second stream asks oto for a different format.
// oto allows one context per process.
var ErrOtoContextInUse = errors.New("oto context already created with a different format")

var (
	otoMu      sync.Mutex
	otoCtx     *oto.Context
	otoOptions oto.NewContextOptions
)

// Oto backend implementation using oto library
type Oto struct {
	opts Options
}

// NewOto creates a new Oto backend
func NewOto(opts Options) *Oto {
	return &Oto{opts: opts.withDefaults()}
}

// Name returns the backend identifier
func (o *Oto) Name() string { return "oto" }

// DefaultOutputDevice returns the system default device. oto cannot enumerate devices.
func (o *Oto) DefaultOutputDevice() (*Device, error) {
	return &Device{
		ID:   "default",
		Name: "system default (oto)",
	}, nil
}

// DefaultOutputConfig returns the configured preferences, limited to formats oto can play
func (o *Oto) DefaultOutputConfig(dev *Device) (audio.StreamConfig, error) {
	return audio.StreamConfig{
		SampleRate: o.opts.SampleRate,
		Channels:   o.opts.Channels,
		Format:     pickFormat(o.opts.Format, audio.FormatFloat32, audio.FormatInt16),
	}, nil
}

// BuildOutputStream creates an oto player pulling from r
func (o *Oto) BuildOutputStream(dev *Device, cfg audio.StreamConfig, r Renderer, onErr func(error)) (Stream, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var format oto.Format
	switch cfg.Format {
	case audio.FormatFloat32:
		format = oto.FormatFloat32LE
	case audio.FormatInt16:
		format = oto.FormatSignedInt16LE
	default:
		return nil, checkFormat(o.Name(), cfg.Format, audio.FormatFloat32, audio.FormatInt16)
	}

	ctx, err := otoContext(oto.NewContextOptions{
		SampleRate:   cfg.SampleRate,
		ChannelCount: cfg.Channels,
		Format:       format,
		BufferSize:   o.opts.Latency,
	})
	if err != nil {
		return nil, err
	}

	reader := newOtoReader(r, cfg.Format, cfg.FrameBytes())

	streamCtx, cancel := context.WithCancel(context.Background())

	return &otoStream{
		ctx:    streamCtx,
		cancel: cancel,
		otoCtx: ctx,
		player: ctx.NewPlayer(reader),
		onErr:  onErr,
	}, nil
}

// Close is a no-op: the oto context lives for the rest of the process
func (o *Oto) Close() error {
	return nil
}

// otoContext returns the process-wide oto context, creating it on first use
func otoContext(op oto.NewContextOptions) (*oto.Context, error) {
	otoMu.Lock()
	defer otoMu.Unlock()

	if otoCtx != nil {
		if otoOptions.SampleRate != op.SampleRate || otoOptions.ChannelCount != op.ChannelCount || otoOptions.Format != op.Format {
			return nil, fmt.Errorf("%w (%dHz %dch -> %dHz %dch)", ErrOtoContextInUse,
				otoOptions.SampleRate, otoOptions.ChannelCount, op.SampleRate, op.ChannelCount)
		}
		log.Printf("Audio output already initialized with same format, reusing oto context")
		if err := otoCtx.Resume(); err != nil {
			return nil, fmt.Errorf("failed to resume oto context: %w", err)
		}
		return otoCtx, nil
	}

	ctx, readyChan, err := oto.NewContext(&op)
	if err != nil {
		return nil, fmt.Errorf("failed to create oto context: %w", err)
	}
	<-readyChan

	otoCtx = ctx
	otoOptions = op
	return ctx, nil
}

// otoReader renders whole frames into the bytes oto asks for.
// A read shorter than a frame is served from a one-frame scratch buffer.
type otoReader struct {
	r          Renderer
	format     audio.SampleFormat
	frameBytes int

	frame   []byte
	pending []byte
}

func newOtoReader(r Renderer, format audio.SampleFormat, frameBytes int) *otoReader {
	return &otoReader{
		r:          r,
		format:     format,
		frameBytes: frameBytes,
		frame:      make([]byte, frameBytes),
	}
}

func (rd *otoReader) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}

	// Finish a frame split by an earlier short read
	if len(rd.pending) > 0 {
		n := copy(p, rd.pending)
		rd.pending = rd.pending[n:]
		return n, nil
	}

	if n := len(p) - len(p)%rd.frameBytes; n > 0 {
		rd.r.RenderBytes(p[:n], rd.format)
		return n, nil
	}

	rd.r.RenderBytes(rd.frame, rd.format)
	n := copy(p, rd.frame)
	rd.pending = rd.frame[n:]
	return n, nil
}

type otoStream struct {
	ctx    context.Context
	cancel context.CancelFunc
	otoCtx *oto.Context
	player *oto.Player
	onErr  func(error)
	once   sync.Once
}

// Play starts the player and watches it for errors
func (s *otoStream) Play() error {
	if err := s.ctx.Err(); err != nil {
		return fmt.Errorf("stream closed: %w", err)
	}
	s.player.Play()
	s.once.Do(func() { go s.watch() })
	return nil
}

// watch polls oto for player and context errors until the stream is closed
func (s *otoStream) watch() {
	ticker := time.NewTicker(250 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-s.ctx.Done():
			return
		case <-ticker.C:
			err := s.player.Err()
			if err == nil {
				err = s.otoCtx.Err()
			}
			if err != nil {
				if s.onErr != nil {
					s.onErr(fmt.Errorf("oto playback failed: %w", err))
				}
				return
			}
		}
	}
}

// Close stops the player
func (s *otoStream) Close() error {
	s.cancel()
	if err := s.player.Close(); err != nil {
		return fmt.Errorf("failed to close oto player: %w", err)
	}
	return nil
}
