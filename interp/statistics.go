package interp

import (
	"go.uber.org/atomic"
)

type Statistics struct {
	FramesIngested    atomic.Uint64
	FramesSynthesized atomic.Uint64
	FramesDiscarded   atomic.Uint64
	DrainRounds       atomic.Uint64
}

type StatisticsSnapshot struct {
	FramesIngested    uint64 `json:"frames_ingested"`
	FramesSynthesized uint64 `json:"frames_synthesized"`
	FramesDiscarded   uint64 `json:"frames_discarded"`
	DrainRounds       uint64 `json:"drain_rounds"`
}

func (s *Statistics) Snapshot() StatisticsSnapshot {
	return StatisticsSnapshot{
		FramesIngested:    s.FramesIngested.Load(),
		FramesSynthesized: s.FramesSynthesized.Load(),
		FramesDiscarded:   s.FramesDiscarded.Load(),
		DrainRounds:       s.DrainRounds.Load(),
	}
}
