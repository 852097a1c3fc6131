// ABOUTME: Audio type definitions
// ABOUTME: Defines sample formats, stream configs and float-to-native sample conversion
package audio

import (
	"encoding/binary"
	"fmt"
	"math"
	"strings"
)

// SampleFormat is the numeric encoding of samples in an output buffer
type SampleFormat int

const (
	FormatFloat32 SampleFormat = iota
	FormatInt16
	FormatUint16
	FormatInt32
)

// Sample is the set of native buffer types the emitter can write
type Sample interface {
	~float32 | ~int16 | ~uint16 | ~int32
}

// StreamConfig is the negotiated output stream configuration
type StreamConfig struct {
	SampleRate int
	Channels   int
	Format     SampleFormat
}

func (c StreamConfig) String() string {
	return fmt.Sprintf("%dHz, %d channels, %s", c.SampleRate, c.Channels, c.Format)
}

// FrameBytes returns the size in bytes of one interleaved frame
func (c StreamConfig) FrameBytes() int {
	return c.Channels * c.Format.BytesPerSample()
}

// Validate checks that the config can drive an output stream
func (c StreamConfig) Validate() error {
	if c.SampleRate <= 0 {
		return fmt.Errorf("invalid sample rate: %d", c.SampleRate)
	}
	if c.Channels <= 0 {
		return fmt.Errorf("invalid channel count: %d", c.Channels)
	}
	if !c.Format.Valid() {
		return fmt.Errorf("invalid sample format: %d", int(c.Format))
	}
	return nil
}

// Valid reports whether f is a known format
func (f SampleFormat) Valid() bool {
	return f >= FormatFloat32 && f <= FormatInt32
}

// BytesPerSample returns the encoded width of one sample
func (f SampleFormat) BytesPerSample() int {
	switch f {
	case FormatInt16, FormatUint16:
		return 2
	case FormatFloat32, FormatInt32:
		return 4
	default:
		return 0
	}
}

func (f SampleFormat) String() string {
	switch f {
	case FormatFloat32:
		return "f32"
	case FormatInt16:
		return "s16"
	case FormatUint16:
		return "u16"
	case FormatInt32:
		return "s32"
	default:
		return fmt.Sprintf("SampleFormat(%d)", int(f))
	}
}

// ParseSampleFormat parses the short names used by String
func ParseSampleFormat(s string) (SampleFormat, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "f32", "float32":
		return FormatFloat32, nil
	case "s16", "i16", "int16":
		return FormatInt16, nil
	case "u16", "uint16":
		return FormatUint16, nil
	case "s32", "i32", "int32":
		return FormatInt32, nil
	default:
		return 0, fmt.Errorf("unknown sample format: %q (supported: f32, s16, u16, s32)", s)
	}
}

// clamp limits v to [-1, 1] and maps NaN to silence
func clamp(v float32) float32 {
	if v != v {
		return 0
	}
	if v > 1 {
		return 1
	}
	if v < -1 {
		return -1
	}
	return v
}

// ToFloat32 returns v limited to [-1, 1]
func ToFloat32(v float32) float32 {
	return clamp(v)
}

// ToInt16 scales v to the signed 16-bit range.
// Positive values scale by 32767 and negative by 32768 so both rails are reachable.
func ToInt16(v float32) int16 {
	v = clamp(v)
	if v >= 0 {
		return int16(v * math.MaxInt16)
	}
	return int16(v * -math.MinInt16)
}

// ToUint16 maps [-1, 1] linearly onto [0, 65535]
func ToUint16(v float32) uint16 {
	v = clamp(v)
	return uint16(math.Round((float64(v) + 1) * 0.5 * math.MaxUint16))
}

// ToInt32 scales v to the signed 32-bit range
func ToInt32(v float32) int32 {
	v = clamp(v)
	if v >= 0 {
		return int32(float64(v) * math.MaxInt32)
	}
	return int32(float64(v) * -math.MinInt32)
}

// Encode writes v into dst as a little-endian sample of format f.
// dst must hold at least f.BytesPerSample() bytes. Returns the bytes written.
func Encode(dst []byte, f SampleFormat, v float32) int {
	switch f {
	case FormatFloat32:
		binary.LittleEndian.PutUint32(dst, math.Float32bits(ToFloat32(v)))
		return 4
	case FormatInt16:
		binary.LittleEndian.PutUint16(dst, uint16(ToInt16(v)))
		return 2
	case FormatUint16:
		binary.LittleEndian.PutUint16(dst, ToUint16(v))
		return 2
	case FormatInt32:
		binary.LittleEndian.PutUint32(dst, uint32(ToInt32(v)))
		return 4
	default:
		return 0
	}
}
