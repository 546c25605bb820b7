package indicator

import (
	"context"

	indicators "github.com/lmpizarro/go_ehlers_indicators"
	"github.com/xaionaro-go/xsync"
)

// Adaptive is the MESA adaptive moving average over a sliding window: it
// follows trends quickly and smooths out oscillations.
type Adaptive[T Number] struct {
	FastLimit float64
	SlowLimit float64

	locker  xsync.Mutex
	window  []float64
	ordered []float64
	next    int
	count   int
}

var _ MovingAverage[float64] = (*Adaptive[float64])(nil)

// MAMA looks back up to six samples.
const minWindowSize = 8

func NewAdaptive[T Number](windowSize int) *Adaptive[T] {
	return NewAdaptiveWithLimits[T](windowSize, 0.5, 0.05)
}

func NewAdaptiveWithLimits[T Number](
	windowSize int,
	fastLimit float64,
	slowLimit float64,
) *Adaptive[T] {
	if windowSize < minWindowSize {
		windowSize = minWindowSize
	}
	return &Adaptive[T]{
		FastLimit: fastLimit,
		SlowLimit: slowLimit,
		window:    make([]float64, windowSize),
		ordered:   make([]float64, windowSize),
	}
}

func (a *Adaptive[T]) Update(v T) T {
	return xsync.DoA1R1(context.Background(), &a.locker, a.updateLocked, v)
}

func (a *Adaptive[T]) updateLocked(v T) T {
	a.window[a.next] = float64(v)
	a.next = (a.next + 1) % len(a.window)
	a.count++
	if a.count < len(a.window) {
		return v
	}

	// the oldest value is at a.next
	n := copy(a.ordered, a.window[a.next:])
	copy(a.ordered[n:], a.window[:a.next])

	result := indicators.MAMA(a.ordered, a.FastLimit, a.SlowLimit)
	return T(result[len(result)-1])
}

func (a *Adaptive[T]) Valid() bool {
	return xsync.DoR1(context.Background(), &a.locker, func() bool {
		return a.count >= len(a.window)
	})
}
