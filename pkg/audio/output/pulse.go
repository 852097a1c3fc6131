// ABOUTME: PulseAudio backend using the native protocol client
// ABOUTME: Renders into typed pulse readers for the server's default sink
package output

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/Resonate-Protocol/resonate-tone/pkg/audio"
	"github.com/jfreymuth/pulse"
	"github.com/jfreymuth/pulse/proto"
)

// Pulse backend talking to a PulseAudio (or PipeWire-pulse) server
type Pulse struct {
	opts   Options
	client *pulse.Client
	mu     sync.Mutex
}

// NewPulse creates a new Pulse backend. The server connection is made on first use.
func NewPulse(opts Options) *Pulse {
	return &Pulse{opts: opts.withDefaults()}
}

// Name returns the backend identifier
func (p *Pulse) Name() string { return "pulse" }

func (p *Pulse) connect() (*pulse.Client, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.client != nil {
		return p.client, nil
	}

	c, err := pulse.NewClient(pulse.ClientApplicationName(p.opts.AppName))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to pulse server: %w", err)
	}
	p.client = c
	return c, nil
}

// DefaultOutputDevice returns the server's default sink
func (p *Pulse) DefaultOutputDevice() (*Device, error) {
	c, err := p.connect()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoDevice, err)
	}

	sink, err := c.DefaultSink()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoDevice, err)
	}
	if sink == nil {
		return nil, ErrNoDevice
	}

	return &Device{
		ID:         sink.ID(),
		Name:       sink.Name(),
		SampleRate: sink.SampleRate(),
		Channels:   len(sink.Channels()),
		native:     &pulseSink{sink: sink, channels: sink.Channels()},
	}, nil
}

// pulseSink is the backend-specific part of a pulse Device
type pulseSink struct {
	sink     *pulse.Sink
	channels proto.ChannelMap
}

// sinkOf returns the sink dev was discovered on, or nil to let the server choose
func sinkOf(dev *Device) *pulseSink {
	if dev == nil {
		return nil
	}
	ps, _ := dev.native.(*pulseSink)
	return ps
}

// DefaultOutputConfig returns the sink's native rate and channel count
func (p *Pulse) DefaultOutputConfig(dev *Device) (audio.StreamConfig, error) {
	cfg := audio.StreamConfig{
		SampleRate: p.opts.SampleRate,
		Channels:   p.opts.Channels,
		Format:     pickFormat(p.opts.Format, audio.FormatFloat32, audio.FormatInt16, audio.FormatInt32),
	}
	if dev != nil && dev.SampleRate > 0 {
		cfg.SampleRate = dev.SampleRate
	}
	if dev != nil && dev.Channels > 0 {
		cfg.Channels = dev.Channels
	}
	return cfg, nil
}

// BuildOutputStream creates a corked playback stream reading from r
func (p *Pulse) BuildOutputStream(dev *Device, cfg audio.StreamConfig, r Renderer, onErr func(error)) (Stream, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var reader pulse.Reader
	switch cfg.Format {
	case audio.FormatFloat32:
		reader = pulse.Float32Reader(func(out []float32) (int, error) {
			r.RenderFloat32(out)
			return len(out), nil
		})
	case audio.FormatInt16:
		reader = pulse.Int16Reader(func(out []int16) (int, error) {
			r.RenderInt16(out)
			return len(out), nil
		})
	case audio.FormatInt32:
		reader = pulse.Int32Reader(func(out []int32) (int, error) {
			r.RenderInt32(out)
			return len(out), nil
		})
	default:
		return nil, checkFormat(p.Name(), cfg.Format, audio.FormatFloat32, audio.FormatInt16, audio.FormatInt32)
	}

	channelMap, err := pulseChannelMap(dev, cfg.Channels)
	if err != nil {
		return nil, err
	}

	c, err := p.connect()
	if err != nil {
		return nil, err
	}

	opts := []pulse.PlaybackOption{
		pulse.PlaybackSampleRate(cfg.SampleRate),
		pulse.PlaybackChannels(channelMap),
	}
	if ps := sinkOf(dev); ps != nil && ps.sink != nil {
		opts = append(opts, pulse.PlaybackSink(ps.sink))
	}
	if p.opts.Latency > 0 {
		opts = append(opts, pulse.PlaybackLatency(p.opts.Latency.Seconds()))
	}

	stream, err := c.NewPlayback(reader, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create pulse playback stream: %w", err)
	}

	return &pulseStream{
		stream: stream,
		onErr:  onErr,
		done:   make(chan struct{}),
	}, nil
}

// Close disconnects from the server
func (p *Pulse) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.client != nil {
		p.client.Close()
		p.client = nil
	}
	return nil
}

// pulseChannelMap picks a channel map for channels, preferring the sink's own layout
func pulseChannelMap(dev *Device, channels int) (proto.ChannelMap, error) {
	if ps := sinkOf(dev); ps != nil && len(ps.channels) == channels {
		return ps.channels, nil
	}

	switch channels {
	case 1:
		return proto.ChannelMap{proto.ChannelMono}, nil
	case 2:
		return proto.ChannelMap{proto.ChannelLeft, proto.ChannelRight}, nil
	default:
		return nil, fmt.Errorf("no pulse channel map for %d channels", channels)
	}
}

type pulseStream struct {
	stream *pulse.PlaybackStream
	onErr  func(error)
	done   chan struct{}
	once   sync.Once
	close  sync.Once
}

// Play uncorks the stream and watches it for errors
func (s *pulseStream) Play() error {
	s.stream.Start()
	s.once.Do(func() { go s.watch() })
	return nil
}

// watch polls the stream for errors until the stream is closed
func (s *pulseStream) watch() {
	ticker := time.NewTicker(250 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-s.done:
			return
		case <-ticker.C:
			if err := s.stream.Error(); err != nil {
				if s.onErr != nil {
					s.onErr(fmt.Errorf("pulse playback failed: %w", err))
				}
				return
			}
		}
	}
}

// Close stops and releases the stream
func (s *pulseStream) Close() error {
	s.close.Do(func() {
		close(s.done)
		s.stream.Stop()
		if s.stream.Underflow() {
			log.Printf("Pulse stream reported underflow")
		}
		s.stream.Close()
	})
	return nil
}
