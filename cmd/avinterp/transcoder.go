package main

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/asticode/go-astiav"
	"github.com/asticode/go-astikit"
	"github.com/xaionaro-go/avinterp/engine"
	"github.com/xaionaro-go/avinterp/frame"
	"github.com/xaionaro-go/avinterp/helpers/closuresignaler"
	"github.com/xaionaro-go/avinterp/interp"
	"github.com/xaionaro-go/avinterp/kernel"
	"github.com/xaionaro-go/avinterp/logger"
	"github.com/xaionaro-go/avinterp/scaler"
	"github.com/xaionaro-go/avinterp/types"
	"github.com/xaionaro-go/observability"
	"go.uber.org/atomic"
)

// transcoder converts decoded frames to the engine pixel format, runs them
// through the interpolator and encodes the synthesized frames.
type transcoder struct {
	input      *input
	kernel     *kernel.FrameInterpolator
	toEngine   *scaler.Software
	fromEngine *scaler.Software
	output     *output

	outputCh      chan frame.Output
	closeOutputCh sync.Once
	consumerDone  *closuresignaler.ClosureSignaler
	consumerErr   error

	FramesRead    atomic.Uint64
	FramesSkipped atomic.Uint64
}

func newTranscoder(
	ctx context.Context,
	closer *astikit.Closer,
	in *input,
	outputURL string,
	cfg kernel.FrameInterpolatorConfig,
) (_ret *transcoder, _err error) {
	reg, err := engine.Lookup(cfg.EngineName)
	if err != nil {
		return nil, err
	}

	t := &transcoder{
		input:        in,
		kernel:       kernel.NewFrameInterpolator(ctx, &cfg),
		outputCh:     make(chan frame.Output, 16),
		consumerDone: closuresignaler.New(),
	}
	defer func() {
		if _err != nil {
			if err := t.kernel.Close(ctx); err != nil {
				logger.Errorf(ctx, "unable to close the interpolator: %v", err)
			}
		}
	}()

	resolution := types.Resolution{
		Width:  uint32(in.codecContext.Width()),
		Height: uint32(in.codecContext.Height()),
	}
	if in.codecContext.PixelFormat() != reg.PixelFormat {
		t.toEngine, err = scaler.NewSoftware(ctx, resolution, in.codecContext.PixelFormat(), resolution, reg.PixelFormat)
		if err != nil {
			return nil, err
		}
	}

	t.output, err = openOutput(ctx, closer, outputURL, outputConfig{
		Resolution:        resolution.Scale(cfg.EngineParams.Scale),
		SampleAspectRatio: in.codecContext.SampleAspectRatio(),
		TimeBase:          in.TimeBase(),
		FrameRate:         t.kernel.OutputFrameRate(in.frameRate),
	})
	if err != nil {
		return nil, err
	}

	if t.output.PixelFormat() != reg.PixelFormat {
		outputResolution := resolution.Scale(cfg.EngineParams.Scale)
		t.fromEngine, err = scaler.NewSoftware(ctx, outputResolution, reg.PixelFormat, outputResolution, t.output.PixelFormat())
		if err != nil {
			return nil, err
		}
	}

	observability.Go(ctx, func(ctx context.Context) {
		defer t.consumerDone.Close(ctx)
		t.consumerErr = t.consumeOutput(ctx)
	})
	return t, nil
}

func (t *transcoder) consumeOutput(ctx context.Context) error {
	var resultErr error
	for out := range t.outputCh {
		if resultErr != nil {
			frame.Pool.Put(out.Frame)
			continue
		}
		resultErr = t.writeFrame(ctx, out)
	}
	return resultErr
}

func (t *transcoder) writeFrame(
	ctx context.Context,
	out frame.Output,
) error {
	defer frame.Pool.Put(out.Frame)
	f := out.Frame
	if t.fromEngine != nil {
		converted, err := t.fromEngine.Convert(ctx, f)
		if err != nil {
			return err
		}
		defer frame.Pool.Put(converted)
		f = converted
	}
	f.SetPictureType(astiav.PictureTypeNone)
	return t.output.WriteFrame(ctx, f)
}

func (t *transcoder) SendInputFrame(
	ctx context.Context,
	f *astiav.Frame,
) error {
	t.FramesRead.Inc()
	if t.consumerDone.IsClosed() {
		return fmt.Errorf("the encoder stopped: %w", t.consumerErr)
	}
	if f.Pts() == types.NoPTS {
		logger.Warnf(ctx, "skipping a frame without a timestamp")
		t.FramesSkipped.Inc()
		return nil
	}

	if t.toEngine != nil {
		converted, err := t.toEngine.Convert(ctx, f)
		if err != nil {
			return err
		}
		defer frame.Pool.Put(converted)
		f = converted
	}

	err := t.kernel.SendInputFrame(ctx, frame.BuildInput(
		f,
		t.input.stream.Index(),
		t.input.TimeBase(),
		t.input.frameRate,
	), t.outputCh)
	if errors.As(err, &interp.ErrInvalidPTS{}) {
		logger.Warnf(ctx, "skipping a frame: %v", err)
		t.FramesSkipped.Inc()
		return nil
	}
	return err
}

func (t *transcoder) stopConsumer(ctx context.Context) error {
	t.closeOutputCh.Do(func() {
		close(t.outputCh)
	})
	if err := t.consumerDone.Wait(ctx); err != nil {
		return err
	}
	return t.consumerErr
}

// Finish emits the frames still owed by the interpolator and finalizes the
// output file.
func (t *transcoder) Finish(ctx context.Context) error {
	if err := t.kernel.Flush(ctx, t.outputCh); err != nil {
		return errors.Join(fmt.Errorf("unable to flush the interpolator: %w", err), t.stopConsumer(ctx))
	}
	if err := t.stopConsumer(ctx); err != nil {
		return err
	}
	return t.output.Finish(ctx)
}

// Abort stops the encoding without finalizing the output.
func (t *transcoder) Abort(ctx context.Context) error {
	return t.stopConsumer(ctx)
}

func (t *transcoder) Statistics(ctx context.Context) interp.StatisticsSnapshot {
	return t.kernel.Statistics(ctx)
}

func (t *transcoder) Close(ctx context.Context) error {
	var errs []error
	if err := t.kernel.Close(ctx); err != nil {
		errs = append(errs, fmt.Errorf("unable to close the interpolator: %w", err))
	}
	for _, s := range []*scaler.Software{t.toEngine, t.fromEngine} {
		if s == nil {
			continue
		}
		if err := s.Close(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
