// ABOUTME: Stream bootstrap wiring oscillators to an audio backend
// ABOUTME: Negotiates device and config, builds the source and starts the output stream
package tone

import (
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/Resonate-Protocol/resonate-tone/pkg/audio"
	"github.com/Resonate-Protocol/resonate-tone/pkg/audio/emit"
	"github.com/Resonate-Protocol/resonate-tone/pkg/audio/output"
	"github.com/Resonate-Protocol/resonate-tone/pkg/osc"
	"github.com/google/uuid"
)

var (
	// ErrNoFrequencies is returned when a source is requested with no frequencies
	ErrNoFrequencies = errors.New("at least one frequency is required")

	// ErrAlreadyStarted is returned by Start on a running generator
	ErrAlreadyStarted = errors.New("generator already started")
)

// DefaultFrequency is A4
const DefaultFrequency = 440.0

// Mode selects how samples are produced
type Mode int

const (
	// ModeOscillator renders one phase-accumulator sine per frequency, mixed when more than one
	ModeOscillator Mode = iota

	// ModeClock evaluates every frequency against a single shared sample clock
	ModeClock
)

func (m Mode) String() string {
	switch m {
	case ModeOscillator:
		return "osc"
	case ModeClock:
		return "clock"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode parses the names returned by Mode.String
func ParseMode(s string) (Mode, error) {
	switch s {
	case "osc", "oscillator":
		return ModeOscillator, nil
	case "clock":
		return ModeClock, nil
	default:
		return 0, fmt.Errorf("unknown mode: %q (supported: osc, clock)", s)
	}
}

// Setup stages reported in SetupError
const (
	StageDevice = "device"
	StageConfig = "config"
	StageSource = "source"
	StageBuild  = "build"
	StagePlay   = "play"
)

// SetupError is a fatal failure while bringing up the output stream
type SetupError struct {
	Stage   string
	Backend string
	Err     error
}

func (e *SetupError) Error() string {
	return fmt.Sprintf("%s setup failed (%s): %v", e.Stage, e.Backend, e.Err)
}

func (e *SetupError) Unwrap() error {
	return e.Err
}

// NewSource builds a ready-to-register source for freqs at sampleRate.
// A single frequency in ModeOscillator yields a *osc.Sine, several yield a *osc.Mixer.
// ModeClock yields an osc.Func over a shared osc.SampleClock.
func NewSource(mode Mode, freqs []float64, sampleRate, channels int) (osc.Oscillator, error) {
	if len(freqs) == 0 {
		return nil, ErrNoFrequencies
	}

	switch mode {
	case ModeOscillator:
		sines := make([]osc.Oscillator, 0, len(freqs))
		for _, f := range freqs {
			s, err := osc.NewSine(f, sampleRate)
			if err != nil {
				return nil, err
			}
			sines = append(sines, s)
		}
		if len(sines) == 1 {
			return sines[0], nil
		}
		m, err := osc.NewMixer(sines...)
		if err != nil {
			return nil, err
		}
		return m, nil

	case ModeClock:
		clock, err := osc.NewSampleClock(sampleRate, channels)
		if err != nil {
			return nil, err
		}
		chord, err := osc.ClockChord(clock, freqs...)
		if err != nil {
			return nil, err
		}
		return chord, nil

	default:
		return nil, fmt.Errorf("unknown mode: %v", mode)
	}
}

// Config holds generator configuration
type Config struct {
	// Frequencies to play, in Hz (default: A4)
	Frequencies []float64

	// Mode selects the sample source (default: ModeOscillator)
	Mode Mode

	// Source, when set, replaces the built-in sources. It is called once the stream
	// config is known and Frequencies/Mode are ignored.
	Source func(sampleRate, channels int) (osc.Oscillator, error)

	// Backend is the audio backend (default: malgo)
	Backend output.Backend

	// OnStart is called once the stream is playing
	OnStart func(StreamInfo)

	// OnError is called for runtime stream errors. It may run on a backend goroutine.
	OnError func(error)
}

// StreamInfo describes a running stream
type StreamInfo struct {
	ID          string
	Backend     string
	Device      string
	Config      audio.StreamConfig
	Mode        Mode
	Frequencies []float64
}

// Generator plays a tone through an audio backend
type Generator struct {
	config Config

	mu      sync.Mutex
	stream  output.Stream
	emitter *emit.Emitter
	info    StreamInfo
}

// New creates a generator with the given configuration
func New(config Config) (*Generator, error) {
	if len(config.Frequencies) == 0 {
		config.Frequencies = []float64{DefaultFrequency}
	}
	if config.Backend == nil {
		config.Backend = output.NewMalgo(output.DefaultOptions())
	}

	freqs := make([]float64, len(config.Frequencies))
	copy(freqs, config.Frequencies)
	config.Frequencies = freqs

	for _, f := range freqs {
		if !(f > 0) {
			return nil, fmt.Errorf("%w: %v Hz", osc.ErrInvalidFrequency, f)
		}
	}

	return &Generator{config: config}, nil
}

// Start negotiates the output device and config, builds the source and starts playback.
// Setup failures are returned as *SetupError and are not retried.
func (g *Generator) Start() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.stream != nil {
		return ErrAlreadyStarted
	}

	backend := g.config.Backend
	fail := func(stage string, err error) error {
		return &SetupError{Stage: stage, Backend: backend.Name(), Err: err}
	}

	device, err := backend.DefaultOutputDevice()
	if err != nil {
		return fail(StageDevice, err)
	}
	if device == nil {
		return fail(StageDevice, output.ErrNoDevice)
	}
	log.Printf("Output device: %s", device.Name)

	cfg, err := backend.DefaultOutputConfig(device)
	if err != nil {
		return fail(StageConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return fail(StageConfig, err)
	}
	log.Printf("Default output config: %s", cfg)

	var src osc.Oscillator
	if g.config.Source != nil {
		src, err = g.config.Source(cfg.SampleRate, cfg.Channels)
		if err == nil && src == nil {
			err = osc.ErrNoOscillators
		}
	} else {
		src, err = NewSource(g.config.Mode, g.config.Frequencies, cfg.SampleRate, cfg.Channels)
	}
	if err != nil {
		return fail(StageSource, err)
	}
	if sine, ok := src.(*osc.Sine); ok {
		log.Printf("Sine period %d samples, playing %.3f Hz", sine.Period(), sine.ActualFrequency())
	}

	// The emitter owns src from here on; only the backend callback touches it.
	emitter := emit.New(src, cfg.Channels)
	id := uuid.New().String()

	stream, err := backend.BuildOutputStream(device, cfg, emitter, g.reportError(id))
	if err != nil {
		return fail(StageBuild, err)
	}

	if err := stream.Play(); err != nil {
		if closeErr := stream.Close(); closeErr != nil {
			log.Printf("Error closing stream %s: %v", id, closeErr)
		}
		return fail(StagePlay, err)
	}

	g.stream = stream
	g.emitter = emitter
	g.info = StreamInfo{
		ID:          id,
		Backend:     backend.Name(),
		Device:      device.Name,
		Config:      cfg,
		Mode:        g.config.Mode,
		Frequencies: g.config.Frequencies,
	}

	log.Printf("Stream %s playing %v Hz (%s mode) on %s", id, g.config.Frequencies, g.config.Mode, backend.Name())

	if g.config.OnStart != nil {
		g.config.OnStart(g.info)
	}
	return nil
}

// reportError forwards runtime stream errors to OnError, or logs them
func (g *Generator) reportError(id string) func(error) {
	return func(err error) {
		if g.config.OnError != nil {
			g.config.OnError(err)
			return
		}
		log.Printf("Stream %s error: %v", id, err)
	}
}

// Stop tears down the stream. The source stops being invoked once Stop returns.
func (g *Generator) Stop() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.stream == nil {
		return nil
	}

	err := g.stream.Close()
	stats := g.emitter.Stats()
	log.Printf("Stream %s stopped after %d callbacks, %d frames", g.info.ID, stats.Callbacks, stats.Frames)

	g.stream = nil
	if err != nil {
		return fmt.Errorf("failed to close stream: %w", err)
	}
	return nil
}

// Close stops the stream and releases the backend
func (g *Generator) Close() error {
	stopErr := g.Stop()
	if err := g.config.Backend.Close(); err != nil {
		return fmt.Errorf("failed to close backend: %w", err)
	}
	return stopErr
}

// Info returns details of the current (or last) stream
func (g *Generator) Info() StreamInfo {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.info
}

// Running reports whether a stream is active
func (g *Generator) Running() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.stream != nil
}

// Stats returns emitter counters for the current (or last) stream
func (g *Generator) Stats() emit.Stats {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.emitter == nil {
		return emit.Stats{}
	}
	return g.emitter.Stats()
}
