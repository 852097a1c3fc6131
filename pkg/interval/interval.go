// ABOUTME: Musical interval model for equal-temperament tuning
// ABOUTME: Maps intervals to frequency ratios and builds chords from a fundamental
package interval

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// ErrUnknownInterval is returned by Parse for names outside the interval set
var ErrUnknownInterval = errors.New("unknown interval")

// Interval is a musical interval within one octave
type Interval int

const (
	Unison Interval = iota
	MinorSecond
	MajorSecond
	MinorThird
	MajorThird
	Fourth
	DiminishedFifth
	Fifth
	MinorSixth
	MajorSixth
	MinorSeventh
	MajorSeventh
	Octave
)

var names = [...]string{
	Unison:          "Unison",
	MinorSecond:     "MinorSecond",
	MajorSecond:     "MajorSecond",
	MinorThird:      "MinorThird",
	MajorThird:      "MajorThird",
	Fourth:          "Fourth",
	DiminishedFifth: "DiminishedFifth",
	Fifth:           "Fifth",
	MinorSixth:      "MinorSixth",
	MajorSixth:      "MajorSixth",
	MinorSeventh:    "MinorSeventh",
	MajorSeventh:    "MajorSeventh",
	Octave:          "Octave",
}

// ratios holds the equal-temperament ratio for each interval, indexed by semitone count.
// Unison and Octave are exact by convention rather than derived from the twelfth root.
var ratios = func() [Octave + 1]float32 {
	var r [Octave + 1]float32
	for k := Unison; k <= Octave; k++ {
		r[k] = float32(math.Pow(2, float64(k)/12))
	}
	r[Unison] = 1
	r[Octave] = 2
	return r
}()

// Valid reports whether i is one of the defined intervals
func (i Interval) Valid() bool {
	return i >= Unison && i <= Octave
}

// Semitones returns the number of half steps spanned by the interval
func (i Interval) Semitones() int {
	return int(i)
}

// Ratio returns the equal-temperament frequency ratio, 2^(semitones/12).
// Invalid intervals map to 1.
func (i Interval) Ratio() float32 {
	if !i.Valid() {
		return 1
	}
	return ratios[i]
}

// Of returns the frequency the interval lands on above from
func (i Interval) Of(from float32) float32 {
	return from * i.Ratio()
}

func (i Interval) String() string {
	if !i.Valid() {
		return fmt.Sprintf("Interval(%d)", int(i))
	}
	return names[i]
}

// Parse looks up an interval by name, ignoring case
func Parse(name string) (Interval, error) {
	name = strings.TrimSpace(name)
	for i, n := range names {
		if strings.EqualFold(n, name) {
			return Interval(i), nil
		}
	}
	return Unison, fmt.Errorf("%w: %q", ErrUnknownInterval, name)
}

// ParseList parses a comma-separated list of interval names
func ParseList(list string) ([]Interval, error) {
	if strings.TrimSpace(list) == "" {
		return nil, nil
	}

	parts := strings.Split(list, ",")
	out := make([]Interval, 0, len(parts))
	for _, p := range parts {
		i, err := Parse(p)
		if err != nil {
			return nil, err
		}
		out = append(out, i)
	}
	return out, nil
}

// Chord returns the frequencies of each interval above fundamental, in order
func Chord(fundamental float32, intervals ...Interval) []float32 {
	freqs := make([]float32, len(intervals))
	for n, i := range intervals {
		freqs[n] = i.Of(fundamental)
	}
	return freqs
}

// MajorTriad returns root, major third and fifth above fundamental
func MajorTriad(fundamental float32) [3]float32 {
	return [3]float32{
		fundamental,
		MajorThird.Of(fundamental),
		Fifth.Of(fundamental),
	}
}
