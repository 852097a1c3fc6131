// ABOUTME: Entry point for the tone generator
// ABOUTME: Parses CLI flags, picks an audio backend and plays a tone or chord
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/Resonate-Protocol/resonate-tone/internal/version"
	"github.com/Resonate-Protocol/resonate-tone/pkg/audio"
	"github.com/Resonate-Protocol/resonate-tone/pkg/audio/output"
	"github.com/Resonate-Protocol/resonate-tone/pkg/interval"
	"github.com/Resonate-Protocol/resonate-tone/pkg/tone"
)

var (
	freq        = flag.Float64("freq", tone.DefaultFrequency, "Fundamental frequency in Hz")
	chord       = flag.String("chord", "", "Chord built on -freq (major)")
	intervals   = flag.String("intervals", "", "Comma-separated intervals above -freq, e.g. Unison,MajorThird,Fifth")
	mode        = flag.String("mode", "osc", "Sample source: osc (per-voice oscillators) or clock (shared sample clock)")
	backendName = flag.String("backend", "malgo", "Audio backend: "+strings.Join(output.Backends, ", "))
	rate        = flag.Int("rate", 48000, "Preferred sample rate when the backend cannot query the device")
	channels    = flag.Int("channels", 2, "Preferred channel count when the backend cannot query the device")
	format      = flag.String("format", "f32", "Preferred sample format: f32, s16, u16, s32")
	bufferMs    = flag.Int("buffer-ms", 0, "Requested output latency in milliseconds (0 = backend default)")
	duration    = flag.Duration("duration", 3*time.Second, "How long to play (0 = until interrupted)")
	logFile     = flag.String("log-file", "", "Also write logs to this file")
)

func main() {
	flag.Parse()

	os.Exit(execute(*logFile, run))
}

// execute runs fn with logging set up and returns the process exit code.
// The log file is closed before returning, including when fn fails.
func execute(logPath string, fn func() error) int {
	if logPath != "" {
		f, err := os.OpenFile(logPath, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
		if err != nil {
			log.Printf("error opening log file: %v", err)
			return 1
		}
		defer func() { _ = f.Close() }()
		log.SetOutput(io.MultiWriter(os.Stdout, f))
	}

	if err := fn(); err != nil {
		log.Printf("Error: %v", err)
		return 1
	}
	return 0
}

func run() error {
	log.Printf("Starting %s", version.String())

	freqs, err := buildFrequencies(*freq, *chord, *intervals)
	if err != nil {
		return err
	}

	sourceMode, err := tone.ParseMode(*mode)
	if err != nil {
		return err
	}

	sampleFormat, err := audio.ParseSampleFormat(*format)
	if err != nil {
		return err
	}

	backend, err := output.New(*backendName, output.Options{
		SampleRate: *rate,
		Channels:   *channels,
		Format:     sampleFormat,
		Latency:    time.Duration(*bufferMs) * time.Millisecond,
		AppName:    version.Product,
	})
	if err != nil {
		return err
	}

	// Runtime stream errors end playback; recovery is not attempted
	streamErr := make(chan error, 1)

	gen, err := tone.New(tone.Config{
		Frequencies: freqs,
		Mode:        sourceMode,
		Backend:     backend,
		OnError: func(err error) {
			select {
			case streamErr <- err:
			default:
			}
		},
	})
	if err != nil {
		return err
	}

	if err := gen.Start(); err != nil {
		var setupErr *tone.SetupError
		if errors.As(err, &setupErr) && errors.Is(err, output.ErrNoDevice) {
			log.Printf("No output device on %s; try -backend headless", backend.Name())
		}
		_ = backend.Close()
		return err
	}
	defer func() {
		if err := gen.Close(); err != nil {
			log.Printf("Error closing generator: %v", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var timeout <-chan time.Time
	if *duration > 0 {
		timer := time.NewTimer(*duration)
		defer timer.Stop()
		timeout = timer.C
	}

	select {
	case <-ctx.Done():
		log.Printf("Shutdown signal received")
	case <-timeout:
		log.Printf("Played for %v", *duration)
	case err := <-streamErr:
		return fmt.Errorf("stream error: %w", err)
	}

	return nil
}

// buildFrequencies expands the fundamental into the list of voices to play
func buildFrequencies(fundamental float64, chordName, intervalList string) ([]float64, error) {
	if fundamental <= 0 {
		return nil, fmt.Errorf("frequency must be positive, got %v", fundamental)
	}
	if chordName != "" && intervalList != "" {
		return nil, fmt.Errorf("use either -chord or -intervals, not both")
	}

	var voices []float32
	switch {
	case chordName != "":
		if !strings.EqualFold(chordName, "major") {
			return nil, fmt.Errorf("unknown chord: %q (supported: major)", chordName)
		}
		triad := interval.MajorTriad(float32(fundamental))
		voices = triad[:]
	case intervalList != "":
		list, err := interval.ParseList(intervalList)
		if err != nil {
			return nil, err
		}
		voices = interval.Chord(float32(fundamental), list...)
	default:
		return []float64{fundamental}, nil
	}

	freqs := make([]float64, len(voices))
	for i, v := range voices {
		freqs[i] = float64(v)
	}
	return freqs, nil
}
