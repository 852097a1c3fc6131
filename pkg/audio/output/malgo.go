// ABOUTME: Malgo-based audio backend
// ABOUTME: Uses miniaudio via malgo with the emitter running in the device data callback
package output

import (
	"fmt"
	"log"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/Resonate-Protocol/resonate-tone/pkg/audio"
	"github.com/gen2brain/malgo"
)

// Malgo backend implementation using malgo/miniaudio library
type Malgo struct {
	opts     Options
	malgoCtx *malgo.AllocatedContext
	mu       sync.Mutex
}

// NewMalgo creates a new Malgo backend
func NewMalgo(opts Options) *Malgo {
	return &Malgo{opts: opts.withDefaults()}
}

// Name returns the backend identifier
func (m *Malgo) Name() string { return "malgo" }

// context returns the malgo context, creating it if needed (must hold m.mu)
func (m *Malgo) context() (*malgo.AllocatedContext, error) {
	if m.malgoCtx != nil {
		return m.malgoCtx, nil
	}

	ctx, err := malgo.InitContext(nil, malgo.ContextConfig{}, func(message string) {
		log.Printf("malgo: %s", strings.TrimSpace(message))
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize malgo context: %w", err)
	}
	m.malgoCtx = ctx
	return ctx, nil
}

// DefaultOutputDevice returns the playback device miniaudio marks as default
func (m *Malgo) DefaultOutputDevice() (*Device, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	ctx, err := m.context()
	if err != nil {
		return nil, err
	}

	infos, err := ctx.Devices(malgo.Playback)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to enumerate playback devices: %v", ErrNoDevice, err)
	}
	if len(infos) == 0 {
		return nil, ErrNoDevice
	}

	info := infos[0]
	for _, candidate := range infos {
		if candidate.IsDefault != 0 {
			info = candidate
			break
		}
	}

	id := info.ID
	return &Device{
		ID:     info.Name(),
		Name:   info.Name(),
		native: &id,
	}, nil
}

// DefaultOutputConfig returns the configured preferences, limited to formats malgo can play
func (m *Malgo) DefaultOutputConfig(dev *Device) (audio.StreamConfig, error) {
	return audio.StreamConfig{
		SampleRate: m.opts.SampleRate,
		Channels:   m.opts.Channels,
		Format:     pickFormat(m.opts.Format, audio.FormatFloat32, audio.FormatInt16, audio.FormatInt32),
	}, nil
}

// BuildOutputStream initializes a playback device whose data callback renders through r
func (m *Malgo) BuildOutputStream(dev *Device, cfg audio.StreamConfig, r Renderer, onErr func(error)) (Stream, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	// Map sample format to malgo format
	var format malgo.FormatType
	switch cfg.Format {
	case audio.FormatFloat32:
		format = malgo.FormatF32
	case audio.FormatInt16:
		format = malgo.FormatS16
	case audio.FormatInt32:
		format = malgo.FormatS32
	default:
		return nil, checkFormat(m.Name(), cfg.Format, audio.FormatFloat32, audio.FormatInt16, audio.FormatInt32)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	ctx, err := m.context()
	if err != nil {
		return nil, err
	}

	// Configure device
	deviceConfig := malgo.DefaultDeviceConfig(malgo.Playback)
	deviceConfig.Playback.Format = format
	deviceConfig.Playback.Channels = uint32(cfg.Channels)
	deviceConfig.SampleRate = uint32(cfg.SampleRate)
	deviceConfig.PeriodSizeInFrames = uint32(m.opts.BufferFrames)
	deviceConfig.Alsa.NoMMap = 1
	if dev != nil {
		if id, ok := dev.native.(*malgo.DeviceID); ok {
			deviceConfig.Playback.DeviceID = id.Pointer()
		}
	}

	s := &malgoStream{}
	frameBytes := cfg.FrameBytes()
	sampleFormat := cfg.Format

	deviceCallbacks := malgo.DeviceCallbacks{
		Data: func(pOutput, _ []byte, frameCount uint32) {
			n := int(frameCount) * frameBytes
			if n > len(pOutput) {
				n = len(pOutput)
			}
			r.RenderBytes(pOutput[:n], sampleFormat)
		},
		Stop: func() {
			if !s.closing.Load() && onErr != nil {
				onErr(ErrStreamStopped)
			}
		},
	}

	device, err := malgo.InitDevice(ctx.Context, deviceConfig, deviceCallbacks)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize playback device: %w", err)
	}
	s.device = device

	log.Printf("Malgo playback device initialized: %s (%s)", cfg, formatName(format))

	return s, nil
}

// Close releases the malgo context
func (m *Malgo) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.malgoCtx != nil {
		if err := m.malgoCtx.Uninit(); err != nil {
			log.Printf("Warning: malgo context uninit error: %v", err)
		}
		m.malgoCtx.Free()
		m.malgoCtx = nil
	}
	return nil
}

type malgoStream struct {
	device  *malgo.Device
	closing atomic.Bool
}

// Play starts the device
func (s *malgoStream) Play() error {
	if err := s.device.Start(); err != nil {
		return fmt.Errorf("failed to start device: %w", err)
	}
	return nil
}

// Close stops and uninitializes the device
func (s *malgoStream) Close() error {
	if !s.closing.CompareAndSwap(false, true) {
		return nil
	}
	if err := s.device.Stop(); err != nil {
		log.Printf("Warning: device stop error: %v", err)
	}
	s.device.Uninit()
	return nil
}

// formatName returns human-readable format name
func formatName(format malgo.FormatType) string {
	switch format {
	case malgo.FormatS16:
		return "S16"
	case malgo.FormatS32:
		return "S32"
	case malgo.FormatF32:
		return "F32"
	default:
		return fmt.Sprintf("Unknown(%d)", format)
	}
}
