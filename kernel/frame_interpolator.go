// frame_interpolator.go implements a kernel that raises the frame rate of a
// video stream by synthesizing frames between the real ones.

package kernel

import (
	"context"
	"fmt"

	"github.com/asticode/go-astiav"
	"github.com/davecgh/go-spew/spew"
	"github.com/xaionaro-go/avinterp/engine"
	"github.com/xaionaro-go/avinterp/frame"
	"github.com/xaionaro-go/avinterp/helpers/closuresignaler"
	"github.com/xaionaro-go/avinterp/interp"
	"github.com/xaionaro-go/avinterp/logger"
	"github.com/xaionaro-go/avinterp/types"
	avtypes "github.com/xaionaro-go/avinterp/types/astiav"
	"github.com/xaionaro-go/xcontext"
	"github.com/xaionaro-go/xsync"
)

type FrameInterpolatorConfig struct {
	// Interpolation configures the scheduler; the input rate and the time
	// base are taken from the stream if not set. If the mode is not set it
	// is derived from the model name.
	Interpolation interp.Config

	EngineName   string
	EngineParams engine.Params

	// EngineFactory, if set, is used instead of the engine registry.
	EngineFactory engine.Factory
}

func DefaultFrameInterpolatorConfig() FrameInterpolatorConfig {
	cfg := interp.DefaultConfig()
	cfg.Mode = interp.ModeUndefined
	return FrameInterpolatorConfig{
		Interpolation: cfg,
		EngineName:    "blend",
		EngineParams:  engine.DefaultParams(),
	}
}

func (cfg *FrameInterpolatorConfig) String() string {
	if cfg == nil {
		return "<nil>"
	}
	return spew.Sdump(*cfg)
}

type FrameInterpolator struct {
	*closuresignaler.ClosureSignaler
	Config FrameInterpolatorConfig
	Locker xsync.Mutex

	scheduler   *interp.Scheduler[*astiav.Frame]
	streamIndex int
	timeBase    astiav.Rational
	frameRate   astiav.Rational
	duration    int64
}

var _ Abstract = (*FrameInterpolator)(nil)

func NewFrameInterpolator(
	ctx context.Context,
	config *FrameInterpolatorConfig,
) *FrameInterpolator {
	if config == nil {
		defaultConfig := DefaultFrameInterpolatorConfig()
		config = &defaultConfig
	}
	return &FrameInterpolator{
		ClosureSignaler: closuresignaler.New(),
		Config:          *config,
	}
}

func (k *FrameInterpolator) String() string {
	return fmt.Sprintf("FrameInterpolator(%s)", k.Config.EngineName)
}

// Statistics returns the counters of the scheduler; it is zero until the
// first frame is received.
func (k *FrameInterpolator) Statistics(ctx context.Context) interp.StatisticsSnapshot {
	return xsync.DoR1(ctx, &k.Locker, func() interp.StatisticsSnapshot {
		if k.scheduler == nil {
			return interp.StatisticsSnapshot{}
		}
		return k.scheduler.Statistics.Snapshot()
	})
}

// OutputFrameRate returns the frame rate of the produced stream given the
// frame rate of the input one.
func (k *FrameInterpolator) OutputFrameRate(inputRate astiav.Rational) astiav.Rational {
	if k.Config.Interpolation.OutputRate.IsSet() {
		return avtypes.RationalToAstiav(k.Config.Interpolation.OutputRate.Get())
	}
	return inputRate
}

func (k *FrameInterpolator) SendInputFrame(
	ctx context.Context,
	input frame.Input,
	outputCh chan<- frame.Output,
) (_err error) {
	logger.Tracef(ctx, "SendInputFrame")
	defer func() { logger.Tracef(ctx, "/SendInputFrame: %v", _err) }()
	return xsync.DoA3R1(ctx, &k.Locker, k.sendInputFrameLocked, ctx, input, outputCh)
}

func (k *FrameInterpolator) sendInputFrameLocked(
	ctx context.Context,
	input frame.Input,
	outputCh chan<- frame.Output,
) error {
	if k.IsClosed() {
		return ErrClosed{}
	}
	if input.Frame == nil {
		return ErrUnexpectedInput{Err: fmt.Errorf("no frame")}
	}

	if k.scheduler == nil {
		if err := k.initLocked(ctx, input); err != nil {
			return fmt.Errorf("unable to initialize the interpolator: %w", err)
		}
	}
	if input.StreamIndex != k.streamIndex {
		return ErrUnexpectedStream{StreamIndex: input.StreamIndex, ExpectedStreamIndex: k.streamIndex}
	}

	return k.scheduler.Ingest(ctx, interp.Anchor[*astiav.Frame]{
		Sample: frame.CloneAsReferenced(input.Frame),
		PTS:    input.Frame.Pts(),
	}, k.sink(outputCh))
}

func (k *FrameInterpolator) initLocked(
	ctx context.Context,
	input frame.Input,
) (_err error) {
	logger.Debugf(ctx, "initLocked")
	defer func() { logger.Debugf(ctx, "/initLocked: %v", _err) }()

	cfg := k.Config.Interpolation
	if cfg.Mode == interp.ModeUndefined {
		mode, err := interp.ModeFromModelName(k.Config.EngineParams.Model)
		if err != nil {
			return err
		}
		cfg.Mode = mode
	}
	if !cfg.InputRate.IsPositive() {
		cfg.InputRate = avtypes.RationalFromAstiav(input.FrameRate)
	}
	if !cfg.TimeBase.IsPositive() {
		cfg.TimeBase = avtypes.RationalFromAstiav(input.TimeBase)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	params := k.Config.EngineParams
	params.SetInterpolation(cfg)
	params.Resolution = (&frame.Commons{Frame: input.Frame}).GetResolution()
	params.PixelFormat = input.Frame.PixelFormat()

	var (
		e   interp.Engine[*astiav.Frame]
		err error
	)
	if k.Config.EngineFactory != nil {
		e, err = k.Config.EngineFactory(ctx, params)
	} else {
		e, err = engine.New(ctx, k.Config.EngineName, params)
	}
	if err != nil {
		return fmt.Errorf("unable to create the engine: %w", err)
	}

	s, err := interp.New[*astiav.Frame](ctx, cfg, e, frame.Allocator{Scale: params.Scale})
	if err != nil {
		if closeErr := e.Close(ctx); closeErr != nil {
			logger.Errorf(ctx, "unable to close the engine: %v", closeErr)
		}
		return err
	}

	k.scheduler = s
	k.streamIndex = input.StreamIndex
	k.timeBase = avtypes.RationalToAstiav(cfg.TimeBase)
	k.frameRate = avtypes.RationalToAstiav(cfg.OutputFrameRate())
	k.duration = types.FrameDuration(cfg.OutputFrameRate(), cfg.TimeBase)
	logger.Debugf(ctx, "the interpolator is initialized: %s; engine params: %s", cfg.String(), params.String())
	return nil
}

// Flush drains the scheduler: it emits the frames still owed after the last
// real frame. It is valid to call it only once.
func (k *FrameInterpolator) Flush(
	ctx context.Context,
	outputCh chan<- frame.Output,
) (_err error) {
	logger.Tracef(ctx, "Flush")
	defer func() { logger.Tracef(ctx, "/Flush: %v", _err) }()
	return xsync.DoA2R1(ctx, &k.Locker, k.flushLocked, ctx, outputCh)
}

func (k *FrameInterpolator) flushLocked(
	ctx context.Context,
	outputCh chan<- frame.Output,
) error {
	if k.IsClosed() {
		return ErrClosed{}
	}
	if k.scheduler == nil {
		logger.Debugf(ctx, "no frames were received, nothing to flush")
		return nil
	}
	return k.scheduler.Drain(ctx, k.sink(outputCh))
}

func (k *FrameInterpolator) Close(ctx context.Context) error {
	ctx = xcontext.DetachDone(ctx)
	return xsync.DoA1R1(ctx, &k.Locker, k.closeLocked, ctx)
}

func (k *FrameInterpolator) closeLocked(ctx context.Context) error {
	if !k.ClosureSignaler.Close(ctx) {
		return nil
	}
	if k.scheduler == nil {
		return nil
	}
	stats := k.scheduler.Statistics.Snapshot()
	logger.Debugf(ctx, "closing the interpolator; statistics: %#+v", stats)
	return k.scheduler.Close(ctx)
}

func (k *FrameInterpolator) sink(outputCh chan<- frame.Output) interp.Sink[*astiav.Frame] {
	return interp.SinkFunc[*astiav.Frame](func(
		ctx context.Context,
		out *astiav.Frame,
		pts int64,
	) error {
		out.SetPts(pts)
		out.SetTimeBase(k.timeBase)
		out.SetDuration(k.duration)
		select {
		case <-ctx.Done():
			frame.Pool.Put(out)
			return ctx.Err()
		case outputCh <- frame.BuildOutput(out, k.streamIndex, k.timeBase, k.frameRate):
			return nil
		}
	})
}
