// Package indicator provides smoothing of noisy measurements, such as the
// processing speed.
package indicator

import (
	"golang.org/x/exp/constraints"
)

type Number interface {
	constraints.Integer | constraints.Float
}

type MovingAverage[T Number] interface {
	// Update adds a measurement and returns the current average.
	Update(v T) T

	// Valid returns true when enough measurements are collected for the
	// average to be meaningful.
	Valid() bool
}
