// ABOUTME: Tests for CLI helpers
// ABOUTME: Verifies chord and interval flag expansion
package main

import (
	"errors"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Resonate-Protocol/resonate-tone/pkg/interval"
)

func TestBuildFrequencies(t *testing.T) {
	triad := interval.MajorTriad(440)

	tests := []struct {
		name      string
		freq      float64
		chord     string
		intervals string
		expected  []float64
	}{
		{"single", 440, "", "", []float64{440}},
		{"major chord", 440, "major", "", []float64{float64(triad[0]), float64(triad[1]), float64(triad[2])}},
		{"intervals", 440, "", "Unison,Octave", []float64{440, 880}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := buildFrequencies(tt.freq, tt.chord, tt.intervals)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(got) != len(tt.expected) {
				t.Fatalf("expected %v, got %v", tt.expected, got)
			}
			for i := range got {
				if got[i] != tt.expected[i] {
					t.Errorf("voice %d: expected %v, got %v", i, tt.expected[i], got[i])
				}
			}
		})
	}
}

func TestBuildFrequenciesErrors(t *testing.T) {
	if _, err := buildFrequencies(0, "", ""); err == nil {
		t.Error("expected error for zero frequency")
	}
	if _, err := buildFrequencies(440, "minor", ""); err == nil {
		t.Error("expected error for unknown chord")
	}
	if _, err := buildFrequencies(440, "major", "Fifth"); err == nil {
		t.Error("expected error when both -chord and -intervals are set")
	}
	if _, err := buildFrequencies(440, "", "Fifth,Nope"); !errors.Is(err, interval.ErrUnknownInterval) {
		t.Errorf("expected ErrUnknownInterval, got %v", err)
	}
}

func TestExecuteWritesLogFile(t *testing.T) {
	prev := log.Writer()
	defer log.SetOutput(prev)

	tests := []struct {
		name     string
		fn       func() error
		code     int
		contains string
	}{
		{"success", func() error { log.Printf("tone done"); return nil }, 0, "tone done"},
		{"failure", func() error { return errors.New("no output device") }, 1, "Error: no output device"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "tone.log")

			if code := execute(path, tt.fn); code != tt.code {
				t.Errorf("expected exit code %d, got %d", tt.code, code)
			}

			data, err := os.ReadFile(path)
			if err != nil {
				t.Fatalf("failed to read log: %v", err)
			}
			if !strings.Contains(string(data), tt.contains) {
				t.Errorf("log file missing %q: %q", tt.contains, data)
			}
		})
	}
}

func TestExecuteBadLogPath(t *testing.T) {
	prev := log.Writer()
	defer log.SetOutput(prev)

	called := false
	code := execute(filepath.Join(t.TempDir(), "missing", "tone.log"), func() error {
		called = true
		return nil
	})
	if code != 1 {
		t.Errorf("expected exit code 1, got %d", code)
	}
	if called {
		t.Error("run should not start without a log file")
	}
}
