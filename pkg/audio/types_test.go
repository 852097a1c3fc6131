// ABOUTME: Tests for audio types
// ABOUTME: Tests sample format metadata and float-to-native conversions
package audio

import (
	"encoding/binary"
	"math"
	"testing"
)

func TestToInt16(t *testing.T) {
	tests := []struct {
		name     string
		input    float32
		expected int16
	}{
		{"zero", 0, 0},
		{"max", 1, 32767},
		{"min", -1, -32768},
		{"half", 0.5, 16383},
		{"negative half", -0.5, -16384},
		{"clip high", 1.5, 32767},
		{"clip low", -3, -32768},
		{"NaN", float32(math.NaN()), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ToInt16(tt.input)
			if result != tt.expected {
				t.Errorf("expected %d, got %d", tt.expected, result)
			}
		})
	}
}

func TestToUint16(t *testing.T) {
	tests := []struct {
		name     string
		input    float32
		expected uint16
	}{
		{"min", -1, 0},
		{"max", 1, 65535},
		{"center", 0, 32768},
		{"clip high", 2, 65535},
		{"clip low", -2, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ToUint16(tt.input)
			if result != tt.expected {
				t.Errorf("expected %d, got %d", tt.expected, result)
			}
		})
	}
}

func TestToInt32(t *testing.T) {
	tests := []struct {
		name     string
		input    float32
		expected int32
	}{
		{"zero", 0, 0},
		{"max", 1, math.MaxInt32},
		{"min", -1, math.MinInt32},
		{"half", 0.5, 1073741823},
		{"clip", 9, math.MaxInt32},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ToInt32(tt.input)
			if result != tt.expected {
				t.Errorf("expected %d, got %d", tt.expected, result)
			}
		})
	}
}

func TestToFloat32(t *testing.T) {
	tests := []struct {
		input    float32
		expected float32
	}{
		{0.25, 0.25},
		{-1, -1},
		{1.25, 1},
		{-1.25, -1},
	}

	for _, tt := range tests {
		if result := ToFloat32(tt.input); result != tt.expected {
			t.Errorf("ToFloat32(%v): expected %v, got %v", tt.input, tt.expected, result)
		}
	}
}

func TestEncode(t *testing.T) {
	buf := make([]byte, 4)

	if n := Encode(buf, FormatFloat32, 0.5); n != 4 {
		t.Errorf("f32: expected 4 bytes, got %d", n)
	}
	if v := math.Float32frombits(binary.LittleEndian.Uint32(buf)); v != 0.5 {
		t.Errorf("f32: expected 0.5, got %v", v)
	}

	if n := Encode(buf, FormatInt16, -1); n != 2 {
		t.Errorf("s16: expected 2 bytes, got %d", n)
	}
	if v := int16(binary.LittleEndian.Uint16(buf)); v != -32768 {
		t.Errorf("s16: expected -32768, got %d", v)
	}

	if n := Encode(buf, FormatUint16, 1); n != 2 {
		t.Errorf("u16: expected 2 bytes, got %d", n)
	}
	if v := binary.LittleEndian.Uint16(buf); v != 65535 {
		t.Errorf("u16: expected 65535, got %d", v)
	}

	if n := Encode(buf, FormatInt32, 1); n != 4 {
		t.Errorf("s32: expected 4 bytes, got %d", n)
	}
	if v := int32(binary.LittleEndian.Uint32(buf)); v != math.MaxInt32 {
		t.Errorf("s32: expected %d, got %d", int32(math.MaxInt32), v)
	}

	if n := Encode(buf, SampleFormat(99), 1); n != 0 {
		t.Errorf("unknown format: expected 0 bytes, got %d", n)
	}
}

func TestBytesPerSample(t *testing.T) {
	tests := []struct {
		format   SampleFormat
		expected int
	}{
		{FormatFloat32, 4},
		{FormatInt16, 2},
		{FormatUint16, 2},
		{FormatInt32, 4},
		{SampleFormat(-1), 0},
	}

	for _, tt := range tests {
		if got := tt.format.BytesPerSample(); got != tt.expected {
			t.Errorf("%v: expected %d, got %d", tt.format, tt.expected, got)
		}
	}
}

func TestParseSampleFormat(t *testing.T) {
	for _, f := range []SampleFormat{FormatFloat32, FormatInt16, FormatUint16, FormatInt32} {
		got, err := ParseSampleFormat(f.String())
		if err != nil {
			t.Fatalf("%v: unexpected error: %v", f, err)
		}
		if got != f {
			t.Errorf("expected %v, got %v", f, got)
		}
	}

	if _, err := ParseSampleFormat("s24"); err == nil {
		t.Error("expected error for unsupported format")
	}
}

func TestStreamConfig(t *testing.T) {
	cfg := StreamConfig{SampleRate: 48000, Channels: 2, Format: FormatInt16}
	if err := cfg.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if cfg.FrameBytes() != 4 {
		t.Errorf("expected 4 bytes per frame, got %d", cfg.FrameBytes())
	}
	if cfg.String() != "48000Hz, 2 channels, s16" {
		t.Errorf("unexpected string %q", cfg.String())
	}

	bad := []StreamConfig{
		{SampleRate: 0, Channels: 2},
		{SampleRate: 48000, Channels: 0},
		{SampleRate: 48000, Channels: 2, Format: SampleFormat(7)},
	}
	for _, c := range bad {
		if err := c.Validate(); err == nil {
			t.Errorf("expected error for %+v", c)
		}
	}
}
