// ABOUTME: Tests for the interval model
// ABOUTME: Verifies equal-temperament ratios, chords and name parsing
package interval

import (
	"errors"
	"math"
	"testing"
)

func TestRatioExactEndpoints(t *testing.T) {
	if r := Unison.Ratio(); r != 1.0 {
		t.Errorf("Unison: expected exactly 1.0, got %v", r)
	}
	if r := Octave.Ratio(); r != 2.0 {
		t.Errorf("Octave: expected exactly 2.0, got %v", r)
	}
}

func TestRatioEqualTemperament(t *testing.T) {
	for i := Unison; i <= Octave; i++ {
		t.Run(i.String(), func(t *testing.T) {
			expected := math.Pow(2, float64(i.Semitones())/12)
			got := float64(i.Ratio())
			if math.Abs(got-expected) > 1e-6 {
				t.Errorf("expected %v, got %v", expected, got)
			}
		})
	}
}

func TestRatioMonotonic(t *testing.T) {
	for i := MinorSecond; i <= Octave; i++ {
		if i.Ratio() <= (i - 1).Ratio() {
			t.Errorf("%v ratio %v not above %v ratio %v", i, i.Ratio(), i-1, (i - 1).Ratio())
		}
	}
}

func TestRatioInvalid(t *testing.T) {
	tests := []Interval{-1, Octave + 1, 100}
	for _, i := range tests {
		if i.Valid() {
			t.Errorf("%d should be invalid", int(i))
		}
		if r := i.Ratio(); r != 1 {
			t.Errorf("%d: expected ratio 1 for invalid interval, got %v", int(i), r)
		}
	}
}

func TestOf(t *testing.T) {
	tests := []struct {
		name     string
		interval Interval
		from     float32
		expected float32
	}{
		{"unison", Unison, 440, 440},
		{"octave", Octave, 440, 880},
		{"fifth", Fifth, 440, 440 * Fifth.Ratio()},
		{"zero", MajorThird, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.interval.Of(tt.from); got != tt.expected {
				t.Errorf("expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestMajorTriad(t *testing.T) {
	for _, f := range []float32{110, 261.63, 440, 1000} {
		triad := MajorTriad(f)
		expected := [3]float32{f, f * MajorThird.Ratio(), f * Fifth.Ratio()}
		if triad != expected {
			t.Errorf("MajorTriad(%v): expected %v, got %v", f, expected, triad)
		}
	}
}

func TestChord(t *testing.T) {
	chord := Chord(440, Unison, MajorThird, Fifth)
	triad := MajorTriad(440)

	if len(chord) != 3 {
		t.Fatalf("expected 3 frequencies, got %d", len(chord))
	}
	for i := range triad {
		if chord[i] != triad[i] {
			t.Errorf("member %d: expected %v, got %v", i, triad[i], chord[i])
		}
	}

	if got := Chord(440); len(got) != 0 {
		t.Errorf("expected empty chord, got %v", got)
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		input    string
		expected Interval
	}{
		{"Unison", Unison},
		{"majorthird", MajorThird},
		{" FIFTH ", Fifth},
		{"DiminishedFifth", DiminishedFifth},
		{"octave", Octave},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := Parse(tt.input)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.expected {
				t.Errorf("expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestParseUnknown(t *testing.T) {
	_, err := Parse("tritone-ish")
	if !errors.Is(err, ErrUnknownInterval) {
		t.Errorf("expected ErrUnknownInterval, got %v", err)
	}
}

func TestParseList(t *testing.T) {
	got, err := ParseList("Unison,MajorThird,Fifth")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	expected := []Interval{Unison, MajorThird, Fifth}
	if len(got) != len(expected) {
		t.Fatalf("expected %d intervals, got %d", len(expected), len(got))
	}
	for i := range expected {
		if got[i] != expected[i] {
			t.Errorf("index %d: expected %v, got %v", i, expected[i], got[i])
		}
	}

	if empty, err := ParseList("  "); err != nil || empty != nil {
		t.Errorf("expected nil list for blank input, got %v, %v", empty, err)
	}

	if _, err := ParseList("Fifth,Bogus"); !errors.Is(err, ErrUnknownInterval) {
		t.Errorf("expected ErrUnknownInterval, got %v", err)
	}
}

func TestString(t *testing.T) {
	if MinorSeventh.String() != "MinorSeventh" {
		t.Errorf("unexpected name %q", MinorSeventh.String())
	}
	if Interval(42).String() != "Interval(42)" {
		t.Errorf("unexpected name %q", Interval(42).String())
	}
}
