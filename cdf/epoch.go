package cdf

import (
	"time"

	"github.com/robert-malhotra/go-cdf/internal/epoch"
)

// FillValue is the conventional pad value for epoch variables; both epoch
// decoders map it (and its negation) to MaxTime.
const FillValue = epoch.Fill

// MaxTime is the latest timestamp the epoch encodings represent. Out of
// range and fill inputs decode to it.
func MaxTime() time.Time { return epoch.Max }

// TimeToEpoch encodes a timestamp as milliseconds since 0000-01-01
// (proleptic Gregorian, UTC), rounded to the nearest millisecond.
func TimeToEpoch(t time.Time) float64 { return epoch.FromTime(t) }

// EpochToTime decodes a millisecond epoch. Values outside the year 1-9999
// range, including the fill value, decode to MaxTime at millisecond
// precision.
func EpochToTime(e float64) time.Time { return epoch.ToTime(e) }

// TimeToEpoch16 encodes a timestamp as whole seconds since 0000-01-01 plus
// picoseconds within the second.
func TimeToEpoch16(t time.Time) (sec, psec float64) { return epoch.FromTime16(t) }

// Epoch16ToTime decodes a two-component epoch. Sub-microsecond precision is
// discarded; a fill value in either component decodes to MaxTime.
func Epoch16ToTime(sec, psec float64) time.Time { return epoch.ToTime16(sec, psec) }

// TimesToEpochs encodes a slice of timestamps.
func TimesToEpochs(ts []time.Time) []float64 { return epoch.FromTimeSlice(ts) }

// EpochsToTimes decodes a slice of millisecond epochs.
func EpochsToTimes(es []float64) []time.Time { return epoch.ToTimeSlice(es) }

// TimesToEpoch16s encodes a slice of timestamps as two-component epochs,
// one (seconds, picoseconds) pair per timestamp.
func TimesToEpoch16s(ts []time.Time) [][2]float64 {
	return epoch.FromTime16Slice(ts)
}

// Epoch16sToTimes decodes a slice of two-component epoch pairs.
func Epoch16sToTimes(pairs [][2]float64) []time.Time {
	return epoch.ToTime16Slice(pairs)
}
