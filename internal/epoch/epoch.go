// Package epoch converts calendar timestamps to and from the two native CDF
// timestamp encodings.
//
// Both encodings count from the reference instant 0000-01-01T00:00:00 UTC on
// the proleptic Gregorian calendar, with no leap seconds:
//
//   - Epoch: a single float64 of milliseconds since the reference. Whole
//     milliseconds only; sub-millisecond input is rounded.
//   - Epoch16: a float64 pair of (integral seconds since the reference,
//     remainder scaled to picoseconds). Calendar timestamps round-trip with
//     microsecond fidelity.
//
// Decoding never fails. The pad sentinel (±1e31-scale values) and anything
// that breaks down to year <= 0 or year >= 10000 decode to Max, the
// canonical maximum representable timestamp.
package epoch

import (
	"math"
	"time"
)

// Fill is the conventional pad value written for "no data" timestamp
// elements. Any component at this magnitude decodes to Max.
const Fill = -1.0e31

// Max is the canonical maximum representable timestamp. Out-of-range and
// fill values clamp to it on decode; the Epoch decoder holds it at that
// encoding's millisecond precision.
var Max = time.Date(9999, 12, 13, 23, 59, 59, 999999000, time.UTC)

var maxMilli = Max.Truncate(time.Millisecond)

// refUnix is the Unix-seconds position of the reference instant
// 0000-01-01T00:00:00 UTC.
var refUnix = time.Date(0, time.January, 1, 0, 0, 0, 0, time.UTC).Unix()

// Valid encodings land between year 1 and year 9999 inclusive; anything
// outside clamps to Max on decode.
var (
	minSec = time.Date(1, time.January, 1, 0, 0, 0, 0, time.UTC).Unix() - refUnix
	maxSec = time.Date(10000, time.January, 1, 0, 0, 0, 0, time.UTC).Unix() - refUnix
)

// FromTime encodes a calendar timestamp as an Epoch value. The timestamp's
// zone offset is normalized to UTC first; sub-millisecond precision rounds
// to the nearest millisecond.
func FromTime(t time.Time) float64 {
	t = t.UTC()
	sec := t.Unix() - refUnix
	return float64(sec)*1000.0 + math.Round(float64(t.Nanosecond())/1e6)
}

// ToTime decodes an Epoch value. Fill and out-of-range values return Max.
func ToTime(e float64) time.Time {
	if !(e >= float64(minSec)*1000.0 && e < float64(maxSec)*1000.0) {
		return maxMilli
	}
	sec := math.Floor(e / 1000.0)
	ms := math.Round(e - sec*1000.0)
	return time.Unix(int64(sec)+refUnix, int64(ms)*int64(time.Millisecond)).UTC()
}

// FromTime16 encodes a calendar timestamp as an Epoch16 pair. The zone
// offset is normalized to UTC; the remainder carries whole microseconds
// scaled to picoseconds.
func FromTime16(t time.Time) (float64, float64) {
	t = t.UTC()
	sec := t.Unix() - refUnix
	psec := float64(t.Nanosecond()/1000) * 1e6
	return float64(sec), psec
}

// ToTime16 decodes an Epoch16 pair. Fill detection is per component: either
// component at the pad value, or a seconds component outside the
// representable range, returns Max. The picosecond remainder truncates to
// whole microseconds.
func ToTime16(sec, psec float64) time.Time {
	if psec <= Fill || psec >= -Fill {
		return Max
	}
	if !(sec >= float64(minSec) && sec < float64(maxSec)) {
		return Max
	}
	us := math.Floor(psec / 1e6)
	return time.Unix(int64(sec)+refUnix, int64(us)*int64(time.Microsecond)).UTC()
}

// FromTimeSlice is the element-wise form of FromTime.
func FromTimeSlice(ts []time.Time) []float64 {
	out := make([]float64, len(ts))
	for i, t := range ts {
		out[i] = FromTime(t)
	}
	return out
}

// ToTimeSlice is the element-wise form of ToTime.
func ToTimeSlice(es []float64) []time.Time {
	out := make([]time.Time, len(es))
	for i, e := range es {
		out[i] = ToTime(e)
	}
	return out
}

// FromTime16Slice is the element-wise form of FromTime16, returning
// [2]float64 pairs.
func FromTime16Slice(ts []time.Time) [][2]float64 {
	out := make([][2]float64, len(ts))
	for i, t := range ts {
		sec, psec := FromTime16(t)
		out[i] = [2]float64{sec, psec}
	}
	return out
}

// ToTime16Slice is the element-wise form of ToTime16.
func ToTime16Slice(pairs [][2]float64) []time.Time {
	out := make([]time.Time, len(pairs))
	for i, p := range pairs {
		out[i] = ToTime16(p[0], p[1])
	}
	return out
}
