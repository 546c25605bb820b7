package interp

import (
	"context"
	"fmt"

	"github.com/xaionaro-go/avinterp/internal"
	"github.com/xaionaro-go/avinterp/logger"
	"github.com/xaionaro-go/avinterp/types"
)

// Scheduler decides when a synthesized frame must be produced, where in time
// it sits relative to the real frames around it and which timestamp it gets.
//
// It is not thread-safe: calls must be serialized by the caller.
type Scheduler[S any] struct {
	Config     Config
	Engine     Engine[S]
	Allocator  Allocator[S]
	Statistics Statistics

	bracket        bracket[S]
	fpsFactor      float64
	framesIngested uint64
	slotsConsumed  uint64
	previousPTS    int64
	currentPTS     int64
	isDrained      bool
	isClosed       bool
}

func New[S any](
	ctx context.Context,
	cfg Config,
	engine Engine[S],
	allocator Allocator[S],
) (*Scheduler[S], error) {
	if engine == nil {
		return nil, ErrEngineUnavailable{}
	}
	if allocator == nil {
		return nil, ErrInvalidConfig{Err: fmt.Errorf("no allocator")}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	b, err := newBracket[S](cfg.Mode)
	if err != nil {
		return nil, ErrInvalidConfig{Err: err}
	}
	s := &Scheduler[S]{
		Config:      cfg,
		Engine:      engine,
		Allocator:   allocator,
		bracket:     b,
		fpsFactor:   cfg.FPSFactor(),
		previousPTS: types.NoPTS,
		currentPTS:  types.NoPTS,
	}
	logger.Debugf(ctx, "interpolation scheduler: mode %s, FPS factor %v, engine %s", cfg.Mode, s.fpsFactor, engine)
	return s, nil
}

func (s *Scheduler[S]) String() string {
	return fmt.Sprintf("Scheduler(%s, %s)", s.Config.Mode, s.Engine)
}

func (s *Scheduler[S]) Mode() Mode {
	return s.bracket.Mode()
}

func (s *Scheduler[S]) FPSFactor() float64 {
	return s.fpsFactor
}

func (s *Scheduler[S]) FramesIngested() uint64 {
	return s.framesIngested
}

// Position returns the position of the next synthesized frame, measured in
// real frames since the first one.
func (s *Scheduler[S]) Position() float64 {
	return s.position()
}

func (s *Scheduler[S]) position() float64 {
	return float64(s.slotsConsumed) * s.fpsFactor
}

func (s *Scheduler[S]) IsDrained() bool {
	return s.isDrained
}

// Ingest consumes a real frame and emits to the sink all the synthesized
// frames which became possible to produce.
//
// The scheduler takes the ownership of the anchor sample in any case.
func (s *Scheduler[S]) Ingest(
	ctx context.Context,
	anchor Anchor[S],
	sink Sink[S],
) (_err error) {
	logger.Tracef(ctx, "Ingest(%d)", anchor.PTS)
	defer func() { logger.Tracef(ctx, "/Ingest(%d): %v", anchor.PTS, _err) }()

	isRetained := false
	defer func() {
		if !isRetained {
			s.Allocator.Release(ctx, anchor.Sample)
		}
	}()

	switch {
	case s.isClosed || s.Engine == nil:
		return ErrEngineUnavailable{}
	case s.isDrained:
		return ErrAlreadyDrained{}
	}

	if anchor.PTS == types.NoPTS || (s.framesIngested > 0 && anchor.PTS < s.currentPTS) {
		return ErrInvalidPTS{PTS: anchor.PTS, PreviousPTS: s.currentPTS}
	}

	isFirst := s.framesIngested == 0
	if err := s.callEngine(ctx, func(ctx context.Context) error {
		return s.Engine.Ingest(ctx, anchor.Sample, anchor.PTS, isFirst)
	}); err != nil {
		return ErrEngineProcessingFailed{Op: "ingest", Err: err}
	}
	s.Statistics.FramesIngested.Inc()

	previousPTS := s.currentPTS
	s.framesIngested++
	s.previousPTS, s.currentPTS = previousPTS, anchor.PTS

	if err := s.synthesize(ctx, anchor.Sample, s.framesIngested, previousPTS, anchor.PTS, false, sink); err != nil {
		return err
	}

	s.bracket.retain(ctx, s.Allocator, anchor)
	isRetained = true
	return nil
}

// Drain emits the synthesized frames still owed at the end of the stream,
// extrapolating virtual real frames from the last timestamp delta. It
// releases all the retained anchors and may be called only once.
func (s *Scheduler[S]) Drain(
	ctx context.Context,
	sink Sink[S],
) (_err error) {
	logger.Tracef(ctx, "Drain")
	defer func() { logger.Tracef(ctx, "/Drain: %v", _err) }()

	switch {
	case s.isClosed || s.Engine == nil:
		return ErrEngineUnavailable{}
	case s.isDrained:
		return ErrAlreadyDrained{}
	}
	s.isDrained = true
	defer s.bracket.release(ctx, s.Allocator)

	if err := s.callEngine(ctx, s.Engine.EndStream); err != nil {
		return ErrEngineProcessingFailed{Op: "end_stream", Err: err}
	}

	template, ok := s.bracket.latest()
	if !ok {
		logger.Debugf(ctx, "no frames were ingested, nothing to drain")
		return nil
	}

	previousPTS, currentPTS := s.previousPTS, s.currentPTS
	if s.framesIngested < 2 {
		delta := types.FrameDuration(s.Config.InputRate, s.Config.TimeBase)
		if delta <= 0 {
			logger.Debugf(ctx, "a single frame was ingested and the frame duration is unknown (rate: %s, time base: %s), nothing to drain", s.Config.InputRate, s.Config.TimeBase)
			return nil
		}
		previousPTS = types.PTSSub(currentPTS, delta)
	}

	n := s.framesIngested
	for round := uint(0); round < s.Config.DrainRounds; round++ {
		nextPTS := types.PTSAdd(currentPTS, types.PTSSub(currentPTS, previousPTS))
		previousPTS, currentPTS = currentPTS, nextPTS
		n++
		s.Statistics.DrainRounds.Inc()
		logger.Debugf(ctx, "drain round %d: virtual frame #%d with PTS %d", round, n, currentPTS)
		if err := s.synthesize(ctx, template.Sample, n, previousPTS, currentPTS, true, sink); err != nil {
			return fmt.Errorf("drain round %d: %w", round, err)
		}
	}
	return nil
}

// Close destroys the engine and releases the anchors (if not drained yet).
func (s *Scheduler[S]) Close(ctx context.Context) (_err error) {
	logger.Tracef(ctx, "Close")
	defer func() { logger.Tracef(ctx, "/Close: %v", _err) }()
	if s.isClosed {
		return nil
	}
	s.isClosed = true
	if !s.isDrained {
		s.bracket.release(ctx, s.Allocator)
	}
	if s.Engine == nil {
		return nil
	}
	if err := s.Engine.Close(ctx); err != nil {
		return ErrEngineProcessingFailed{Op: "close", Err: err}
	}
	return nil
}

// synthesize produces the frames for all the slots positioned before the
// last of "n" real frames.
func (s *Scheduler[S]) synthesize(
	ctx context.Context,
	template S,
	n uint64,
	previousPTS int64,
	currentPTS int64,
	skipNegative bool,
	sink Sink[S],
) error {
	ref := s.bracket.referenceIndex(n)
	locationMin := float64(n) - 2 - ref
	for {
		position := s.position()
		if position >= float64(n-1) {
			return nil
		}
		location := position - ref
		internal.Assert(ctx, location < locationMin+1, location, locationMin)

		if location < locationMin {
			// a previous round was aborted, so this slot has no bracket anymore
			logger.Warnf(ctx, "skipping a stale slot at position %v (location %v)", position, location)
			s.discardSlot()
			continue
		}

		pts := types.PTSInterpolate(previousPTS, currentPTS, location, s.Config.SlowMotionFactor)
		if pts == types.NoPTS || (skipNegative && pts < 0) {
			logger.Debugf(ctx, "discarding the slot at position %v: PTS %d is not representable", position, pts)
			s.discardSlot()
			continue
		}

		if err := s.emitSlot(ctx, template, location, pts, sink); err != nil {
			return err
		}
		s.slotsConsumed++
		s.Statistics.FramesSynthesized.Inc()
	}
}

func (s *Scheduler[S]) discardSlot() {
	s.slotsConsumed++
	s.Statistics.FramesDiscarded.Inc()
}

func (s *Scheduler[S]) emitSlot(
	ctx context.Context,
	template S,
	location float64,
	pts int64,
	sink Sink[S],
) error {
	out, err := s.Allocator.AllocOutput(ctx, template)
	if err != nil {
		return ErrAllocationFailed{Err: err}
	}

	if err := s.callEngine(ctx, func(ctx context.Context) error {
		return s.Engine.InterpolateAt(ctx, location, out)
	}); err != nil {
		s.Allocator.Release(ctx, out)
		return ErrEngineProcessingFailed{Op: "interpolate", Err: err}
	}

	logger.Tracef(ctx, "emitting a synthesized frame at location %v with PTS %d", location, pts)
	if err := sink.EmitFrame(ctx, out, pts); err != nil {
		return ErrDownstreamRejected{PTS: pts, Err: err}
	}
	return nil
}

func (s *Scheduler[S]) callEngine(
	ctx context.Context,
	fn func(context.Context) error,
) error {
	if s.Config.EngineCallTimeout <= 0 {
		return fn(ctx)
	}
	ctx, cancelFn := context.WithTimeout(ctx, s.Config.EngineCallTimeout)
	defer cancelFn()
	return fn(ctx)
}
