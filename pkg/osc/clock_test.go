// ABOUTME: Tests for the sample-clock tone source
// ABOUTME: Verifies clock wrapping, tone evaluation and chord normalization
package osc

import (
	"errors"
	"math"
	"testing"
)

func TestSampleClockTickWraps(t *testing.T) {
	c, err := NewSampleClock(8, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for i := 1; i <= 20; i++ {
		c.Tick()
		if expected := float64(i % 8); c.Clock() != expected {
			t.Fatalf("tick %d: expected clock %v, got %v", i, expected, c.Clock())
		}
	}
	if c.Channels() != 2 {
		t.Errorf("expected 2 channels, got %d", c.Channels())
	}
}

func TestSampleClockTone(t *testing.T) {
	c, _ := NewSampleClock(44100, 1)

	if v := c.Tone(440); v != 0 {
		t.Errorf("expected 0 at clock 0, got %v", v)
	}

	c.Tick()
	expected := math.Sin(440 * 2 * math.Pi / 44100)
	if v := c.Tone(440); math.Abs(float64(v)-expected) > 1e-6 {
		t.Errorf("expected %v, got %v", expected, v)
	}
}

func TestNewSampleClockRejectsBadRate(t *testing.T) {
	if _, err := NewSampleClock(0, 2); !errors.Is(err, ErrInvalidSampleRate) {
		t.Errorf("expected ErrInvalidSampleRate, got %v", err)
	}
}

func TestClockChord(t *testing.T) {
	c, _ := NewSampleClock(48000, 2)
	src, err := ClockChord(c, 440, 554.37, 659.26)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for i := 1; i <= 5000; i++ {
		v := src.Next()
		if v < -1 || v > 1 {
			t.Fatalf("sample %d out of range: %v", i, v)
		}
		if c.Clock() != float64(i%48000) {
			t.Fatalf("sample %d: clock expected %d, got %v", i, i, c.Clock())
		}
	}
}

func TestClockChordSingleToneMatchesClock(t *testing.T) {
	c, _ := NewSampleClock(44100, 1)
	src, err := ClockChord(c, 1000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for i := 1; i <= 100; i++ {
		v := src.Next()
		expected := math.Sin(float64(i) * 1000 * 2 * math.Pi / 44100)
		if math.Abs(float64(v)-expected) > 1e-6 {
			t.Fatalf("sample %d: expected %v, got %v", i, expected, v)
		}
	}
}

func TestClockChordValidation(t *testing.T) {
	c, _ := NewSampleClock(44100, 2)

	if _, err := ClockChord(c); !errors.Is(err, ErrNoOscillators) {
		t.Errorf("expected ErrNoOscillators, got %v", err)
	}
	if _, err := ClockChord(c, 440, 30000); !errors.Is(err, ErrInvalidFrequency) {
		t.Errorf("expected ErrInvalidFrequency, got %v", err)
	}
	if _, err := ClockChord(c, 440, 1e-300); !errors.Is(err, ErrInvalidFrequency) {
		t.Errorf("expected ErrInvalidFrequency for tiny frequency, got %v", err)
	}
}
