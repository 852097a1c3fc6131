// ABOUTME: Interval package for equal-temperament frequency math
// ABOUTME: Provides the Interval enum, ratios and chord helpers
// Package interval maps musical intervals to equal-temperament frequency ratios.
//
// Example:
//
//	fifth := interval.Fifth.Of(440)     // ~659.26 Hz
//	triad := interval.MajorTriad(440)   // [440, ~554.37, ~659.26]
//	chord := interval.Chord(220, interval.Unison, interval.MinorThird, interval.Fifth)
package interval
