package types

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestPTSAdd(t *testing.T) {
	require.Equal(t, int64(5), PTSAdd(2, 3))
	require.Equal(t, int64(-1), PTSAdd(2, -3))
	require.Equal(t, NoPTS, PTSAdd(math.MaxInt64, 1))
	require.Equal(t, NoPTS, PTSAdd(math.MinInt64+1, -2))
	require.Equal(t, NoPTS, PTSAdd(NoPTS, 1))
}

func TestPTSSub(t *testing.T) {
	require.Equal(t, int64(-1), PTSSub(2, 3))
	require.Equal(t, NoPTS, PTSSub(math.MaxInt64, -1))
	require.Equal(t, NoPTS, PTSSub(1, NoPTS))
}

func TestPTSFromFloat64(t *testing.T) {
	require.Equal(t, int64(3), PTSFromFloat64(2.5))
	require.Equal(t, int64(-3), PTSFromFloat64(-2.5))
	require.Equal(t, NoPTS, PTSFromFloat64(math.NaN()))
	require.Equal(t, NoPTS, PTSFromFloat64(math.Inf(1)))
	require.Equal(t, NoPTS, PTSFromFloat64(math.MaxInt64))
	require.Equal(t, NoPTS, PTSFromFloat64(2*float64(math.MaxInt64)))
}

func TestFrameDuration(t *testing.T) {
	require.Equal(t, int64(3003), FrameDuration(Rational{Num: 30000, Den: 1001}, Rational{Num: 1, Den: 90000}))
	require.Equal(t, int64(1), FrameDuration(Rational{Num: 25, Den: 1}, Rational{Num: 1, Den: 25}))
	require.Zero(t, FrameDuration(Rational{}, Rational{Num: 1, Den: 25}))
	require.Equal(t, 2*time.Second, PTSToDuration(4, Rational{Num: 1, Den: 2}))
}

func TestPTSInterpolate(t *testing.T) {
	require.Equal(t, int64(2), PTSInterpolate(0, 1, 0, 2))
	require.Equal(t, int64(3), PTSInterpolate(0, 1, 0.5, 2))
	require.Equal(t, int64(0), PTSInterpolate(0, 1, -1, 2))
	require.Equal(t, int64(1), PTSInterpolate(0, 1, -0.5, 2))
	require.Equal(t, int64(1500), PTSInterpolate(1000, 2000, -0.5, 1))
	require.Equal(t, int64(-2500), PTSInterpolate(-1000, -2000, 0.5, 1))

	const m = int64(math.MaxInt64)
	require.Equal(t, NoPTS, PTSInterpolate(m-2000, m-1500, 0.5, 2))
	require.Equal(t, m-1000, PTSInterpolate(m-1500, m-500, -0.5, 1))
	require.Equal(t, m, PTSInterpolate(m-1500, m-500, 0.5, 1))
	require.Equal(t, NoPTS, PTSInterpolate(m-1500, m-500, 0.6, 1))
	require.Equal(t, NoPTS, PTSInterpolate(NoPTS, 1, 0, 1))
	require.Equal(t, NoPTS, PTSInterpolate(0, 1, math.NaN(), 1))
}
