package indicator

import (
	"time"
)

// Rate converts a growing counter into a smoothed per-second rate.
type Rate struct {
	Average MovingAverage[float64]

	lastCount uint64
	lastTime  time.Time
}

func NewRate(windowSize int) *Rate {
	return &Rate{
		Average: NewAdaptive[float64](windowSize),
	}
}

// Update takes the current value of the counter and returns the smoothed
// rate; the first call returns zero.
func (r *Rate) Update(count uint64, now time.Time) float64 {
	if r.lastTime.IsZero() {
		r.lastCount, r.lastTime = count, now
		return 0
	}
	elapsed := now.Sub(r.lastTime).Seconds()
	if elapsed <= 0 {
		return r.Average.Update(0)
	}
	var delta uint64
	if count > r.lastCount {
		delta = count - r.lastCount
	}
	r.lastCount, r.lastTime = count, now
	return r.Average.Update(float64(delta) / elapsed)
}
