//go:build portaudio

// ABOUTME: PortAudio backend implementation
// ABOUTME: Cross-platform callback streams using PortAudio
package output

import (
	"fmt"
	"sync"

	"github.com/Resonate-Protocol/resonate-tone/pkg/audio"
	"github.com/gordonklaus/portaudio"
)

// PortAudio backend implementation
type PortAudio struct {
	opts        Options
	initialized bool
	mu          sync.Mutex
}

// NewPortAudio creates a new PortAudio backend
func NewPortAudio(opts Options) *PortAudio {
	return &PortAudio{opts: opts.withDefaults()}
}

// Name returns the backend identifier
func (p *PortAudio) Name() string { return "portaudio" }

func (p *PortAudio) init() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}
	if err := portaudio.Initialize(); err != nil {
		return fmt.Errorf("failed to initialize portaudio: %w", err)
	}
	p.initialized = true
	return nil
}

// DefaultOutputDevice returns PortAudio's default output device
func (p *PortAudio) DefaultOutputDevice() (*Device, error) {
	if err := p.init(); err != nil {
		return nil, err
	}

	info, err := portaudio.DefaultOutputDevice()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoDevice, err)
	}
	if info == nil {
		return nil, ErrNoDevice
	}

	return &Device{
		ID:         info.Name,
		Name:       info.Name,
		SampleRate: int(info.DefaultSampleRate),
		Channels:   info.MaxOutputChannels,
		native:     info,
	}, nil
}

// DefaultOutputConfig returns the device's default rate and up to the preferred channel count
func (p *PortAudio) DefaultOutputConfig(dev *Device) (audio.StreamConfig, error) {
	cfg := audio.StreamConfig{
		SampleRate: p.opts.SampleRate,
		Channels:   p.opts.Channels,
		Format:     pickFormat(p.opts.Format, audio.FormatFloat32, audio.FormatInt16, audio.FormatInt32),
	}
	if dev != nil && dev.SampleRate > 0 {
		cfg.SampleRate = dev.SampleRate
	}
	if dev != nil && dev.Channels > 0 && dev.Channels < cfg.Channels {
		cfg.Channels = dev.Channels
	}
	return cfg, nil
}

// BuildOutputStream opens a callback stream rendering through r
func (p *PortAudio) BuildOutputStream(dev *Device, cfg audio.StreamConfig, r Renderer, onErr func(error)) (Stream, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var callback interface{}
	switch cfg.Format {
	case audio.FormatFloat32:
		callback = func(out []float32) { r.RenderFloat32(out) }
	case audio.FormatInt16:
		callback = func(out []int16) { r.RenderInt16(out) }
	case audio.FormatInt32:
		callback = func(out []int32) { r.RenderInt32(out) }
	default:
		return nil, checkFormat(p.Name(), cfg.Format, audio.FormatFloat32, audio.FormatInt16, audio.FormatInt32)
	}

	if err := p.init(); err != nil {
		return nil, err
	}

	var info *portaudio.DeviceInfo
	if dev != nil {
		info, _ = dev.native.(*portaudio.DeviceInfo)
	}
	if info == nil {
		var err error
		if info, err = portaudio.DefaultOutputDevice(); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrNoDevice, err)
		}
	}

	params := portaudio.LowLatencyParameters(nil, info)
	params.Output.Channels = cfg.Channels
	params.SampleRate = float64(cfg.SampleRate)
	params.FramesPerBuffer = p.opts.BufferFrames
	if p.opts.Latency > 0 {
		params.Output.Latency = p.opts.Latency
	}

	stream, err := portaudio.OpenStream(params, callback)
	if err != nil {
		return nil, fmt.Errorf("failed to open stream: %w", err)
	}

	return &portAudioStream{stream: stream}, nil
}

// Close terminates PortAudio
func (p *PortAudio) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return nil
	}
	p.initialized = false
	return portaudio.Terminate()
}

type portAudioStream struct {
	stream *portaudio.Stream
}

// Play starts the stream
func (s *portAudioStream) Play() error {
	return s.stream.Start()
}

// Close stops and closes the stream
func (s *portAudioStream) Close() error {
	if err := s.stream.Stop(); err != nil {
		return err
	}
	return s.stream.Close()
}
