// ABOUTME: Audio output package for playing generated audio
// ABOUTME: Provides the Backend interface and oto, malgo, pulse, PortAudio and headless backends
// Package output provides audio backends.
//
// A Backend finds the default output device, proposes a stream config and registers a
// Renderer as the real-time buffer-filling callback. Backends:
//   - oto: ebitengine/oto, float32 or int16
//   - malgo: miniaudio via malgo, float32, int16 or int32
//   - pulse: native PulseAudio protocol, float32, int16 or int32
//   - portaudio: PortAudio (build with -tags portaudio)
//   - headless: no device, renders on a timer
//
// Example:
//
//	b := output.NewMalgo(output.DefaultOptions())
//	dev, err := b.DefaultOutputDevice()
//	cfg, err := b.DefaultOutputConfig(dev)
//	stream, err := b.BuildOutputStream(dev, cfg, renderer, onErr)
//	err = stream.Play()
package output
