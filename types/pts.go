// pts.go defines helpers for Presentation Time Stamps (PTS).

package types

import (
	"math"
	"math/big"
	"time"
)

const (
	// NoPTS is the value FFmpeg uses for "no timestamp" (AV_NOPTS_VALUE).
	//
	// It is negative, so everything that checks "pts < 0" treats it as
	// "not a valid presentation instant".
	NoPTS = int64(math.MinInt64)
)

// PTSAdd returns a+b, or NoPTS if either argument is NoPTS or the sum
// overflows int64.
func PTSAdd(a, b int64) int64 {
	if a == NoPTS || b == NoPTS {
		return NoPTS
	}
	sum := a + b
	if (b > 0 && sum < a) || (b < 0 && sum > a) {
		return NoPTS
	}
	return sum
}

// PTSSub returns a-b, or NoPTS if either argument is NoPTS or the difference
// overflows int64.
func PTSSub(a, b int64) int64 {
	if a == NoPTS || b == NoPTS {
		return NoPTS
	}
	diff := a - b
	if (b < 0 && diff < a) || (b > 0 && diff > a) {
		return NoPTS
	}
	return diff
}

// PTSFromFloat64 rounds v to the closest timestamp, or returns NoPTS if v is
// not representable.
func PTSFromFloat64(v float64) int64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return NoPTS
	}
	v = math.Round(v)
	// float64(math.MaxInt64) rounds up to 2^63, which is already out of range
	if v >= math.MaxInt64 || v <= math.MinInt64 {
		return NoPTS
	}
	return int64(v)
}

var (
	// exclusive bounds of values that truncate into the int64 range
	ptsUpperBound = new(big.Float).SetPrec(ptsPrecision).SetMantExp(big.NewFloat(1), 63)
	ptsLowerBound = new(big.Float).SetPrec(ptsPrecision).Sub(
		new(big.Float).SetPrec(ptsPrecision).Neg(ptsUpperBound),
		big.NewFloat(1),
	)
	ptsHalf = new(big.Float).SetPrec(ptsPrecision).SetFloat64(0.5)
)

const ptsPrecision = 128

// PTSInterpolate returns round((current-previous)*location + current) * scale,
// which is the timestamp of the point at "location" on the line through
// "previous" and "current" (location 0 is "current", -1 is "previous"),
// multiplied by "scale".
//
// The arithmetic is carried in 128 bits, so timestamps close to the int64
// limits are not distorted by float64 rounding. NoPTS is returned if any
// input is NoPTS or the result does not fit into int64.
func PTSInterpolate(previous, current int64, location, scale float64) int64 {
	if previous == NoPTS || current == NoPTS {
		return NoPTS
	}
	if math.IsNaN(location) || math.IsInf(location, 0) || math.IsNaN(scale) || math.IsInf(scale, 0) {
		return NoPTS
	}

	newFloat := func() *big.Float { return new(big.Float).SetPrec(ptsPrecision) }
	delta := newFloat().Sub(newFloat().SetInt64(current), newFloat().SetInt64(previous))
	v := newFloat().Mul(delta, newFloat().SetFloat64(location))
	v.Add(v, newFloat().SetInt64(current))
	v.Mul(v, newFloat().SetFloat64(scale))

	if v.Sign() >= 0 {
		v.Add(v, ptsHalf)
	} else {
		v.Sub(v, ptsHalf)
	}
	if v.Cmp(ptsUpperBound) >= 0 || v.Cmp(ptsLowerBound) <= 0 {
		return NoPTS
	}
	result, _ := v.Int64() // truncates toward zero, which completes the rounding
	return result
}

// PTSToDuration converts a timestamp in the given time base to a duration.
func PTSToDuration(pts int64, timeBase Rational) time.Duration {
	if pts == NoPTS || timeBase.Den == 0 {
		return time.Duration(math.MinInt64)
	}
	return time.Duration(float64(pts) * timeBase.Float64() * float64(time.Second))
}

// FrameDuration returns the nominal duration of one frame at the given
// frame rate, in the given time base; zero if it cannot be computed.
func FrameDuration(frameRate Rational, timeBase Rational) int64 {
	if !frameRate.IsPositive() || !timeBase.IsPositive() {
		return 0
	}
	return PTSFromFloat64(1 / (frameRate.Float64() * timeBase.Float64()))
}
