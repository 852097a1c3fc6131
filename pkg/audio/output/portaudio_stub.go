//go:build !portaudio

// ABOUTME: PortAudio stub when library not available
// ABOUTME: Provides compile-time placeholder when PortAudio not installed
package output

import (
	"errors"

	"github.com/Resonate-Protocol/resonate-tone/pkg/audio"
)

var errPortAudioDisabled = errors.New("PortAudio support not enabled (build with -tags portaudio)")

// PortAudio backend implementation (stub)
type PortAudio struct{}

// NewPortAudio creates a new PortAudio backend
func NewPortAudio(opts Options) *PortAudio {
	return &PortAudio{}
}

// Name returns the backend identifier
func (p *PortAudio) Name() string { return "portaudio" }

// DefaultOutputDevice always fails in this build
func (p *PortAudio) DefaultOutputDevice() (*Device, error) {
	return nil, errPortAudioDisabled
}

// DefaultOutputConfig always fails in this build
func (p *PortAudio) DefaultOutputConfig(dev *Device) (audio.StreamConfig, error) {
	return audio.StreamConfig{}, errPortAudioDisabled
}

// BuildOutputStream always fails in this build
func (p *PortAudio) BuildOutputStream(dev *Device, cfg audio.StreamConfig, r Renderer, onErr func(error)) (Stream, error) {
	return nil, errPortAudioDisabled
}

// Close releases resources
func (p *PortAudio) Close() error {
	return nil
}
