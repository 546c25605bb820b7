package kernel

import (
	"context"
	"testing"

	"github.com/asticode/go-astiav"
	"github.com/facebookincubator/go-belt"
	"github.com/facebookincubator/go-belt/pkg/runtime"
	"github.com/facebookincubator/go-belt/tool/logger/implementation/logrus"
	assertT "github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xaionaro-go/avinterp/engine"
	"github.com/xaionaro-go/avinterp/frame"
	"github.com/xaionaro-go/avinterp/interp"
	"github.com/xaionaro-go/avinterp/logger"
	"github.com/xaionaro-go/avinterp/types"
	"github.com/xaionaro-go/observability"
	"github.com/xaionaro-go/typing"
)

type dummyEngine struct {
	Params     engine.Params
	Ingested   int
	Locations  []float64
	IsEnded    bool
	CloseCount int
}

func (e *dummyEngine) String() string { return "dummy" }

func (e *dummyEngine) Ingest(ctx context.Context, sample *astiav.Frame, pts int64, isFirst bool) error {
	e.Ingested++
	return nil
}

func (e *dummyEngine) InterpolateAt(ctx context.Context, location float64, out *astiav.Frame) error {
	e.Locations = append(e.Locations, location)
	return nil
}

func (e *dummyEngine) EndStream(ctx context.Context) error {
	e.IsEnded = true
	return nil
}

func (e *dummyEngine) Close(ctx context.Context) error {
	e.CloseCount++
	return nil
}

func newTestFrame(t *testing.T, pts int64) frame.Input {
	f, err := frame.NewVideo(context.Background(), types.Resolution{Width: 16, Height: 8}, astiav.PixelFormatYuv420P)
	require.NoError(t, err)
	f.SetPts(pts)
	return frame.BuildInput(f, 0, astiav.NewRational(1, 30), astiav.NewRational(30, 1))
}

func collectPTS(ch chan frame.Output) []int64 {
	var result []int64
	for {
		select {
		case out := <-ch:
			result = append(result, out.GetPTS())
			frame.Pool.Put(out.Frame)
		default:
			return result
		}
	}
}

func TestFrameInterpolator(t *testing.T) {
	l := logrus.Default().WithLevel(logger.LevelTrace)
	ctx := logger.CtxWithLogger(context.Background(), l)
	logger.SetDefault(func() logger.Logger {
		return l
	})
	defer belt.Flush(ctx)
	runtime.DefaultCallerPCFilter = observability.CallerPCFilter(runtime.DefaultCallerPCFilter)

	var e *dummyEngine
	cfg := DefaultFrameInterpolatorConfig()
	cfg.EngineParams.Model = "apo-8"
	cfg.Interpolation.OutputRate = typing.Opt(types.Rational{Num: 60, Den: 1})
	cfg.EngineFactory = func(ctx context.Context, params engine.Params) (interp.Engine[*astiav.Frame], error) {
		e = &dummyEngine{Params: params}
		return e, nil
	}

	k := NewFrameInterpolator(ctx, &cfg)
	outCh := make(chan frame.Output, 100)

	for _, pts := range []int64{0, 2, 4} {
		in := newTestFrame(t, pts)
		require.NoError(t, k.SendInputFrame(ctx, in, outCh))
		frame.Pool.Put(in.Frame)
	}

	require.NotNil(t, e)
	require.Equal(t, interp.ModeApollo, e.Params.Mode)
	require.Equal(t, 0.5, e.Params.FPSFactor)
	require.Equal(t, types.Resolution{Width: 16, Height: 8}, e.Params.Resolution)
	require.Equal(t, 3, e.Ingested)

	out := <-outCh
	require.Equal(t, int64(0), out.GetPTS())
	require.Equal(t, astiav.NewRational(1, 30), out.GetTimeBase())
	require.Equal(t, astiav.NewRational(60, 1), out.GetFrameRate())
	frame.Pool.Put(out.Frame)
	require.Equal(t, []int64{1, 2, 3}, collectPTS(outCh))

	wrongStream := newTestFrame(t, 6)
	wrongStream.StreamIndex = 1
	require.ErrorAs(t, k.SendInputFrame(ctx, wrongStream, outCh), &ErrUnexpectedStream{})
	frame.Pool.Put(wrongStream.Frame)

	require.NoError(t, k.Flush(ctx, outCh))
	require.True(t, e.IsEnded)
	require.Equal(t, []int64{4, 5, 6, 7}, collectPTS(outCh))
	assertT.Equal(t, uint64(8), k.Statistics(ctx).FramesSynthesized)

	require.NoError(t, k.Close(ctx))
	require.NoError(t, k.Close(ctx))
	require.Equal(t, 1, e.CloseCount)
	require.ErrorAs(t, k.Flush(ctx, outCh), &ErrClosed{})
}

func TestFrameInterpolatorNoFrames(t *testing.T) {
	ctx := context.Background()
	k := NewFrameInterpolator(ctx, nil)
	outCh := make(chan frame.Output, 1)
	require.NoError(t, k.Flush(ctx, outCh))
	require.NoError(t, k.Close(ctx))
}

func TestFrameInterpolatorUnknownModel(t *testing.T) {
	ctx := context.Background()
	cfg := DefaultFrameInterpolatorConfig()
	cfg.EngineParams.Model = "xyz-1"
	k := NewFrameInterpolator(ctx, &cfg)

	in := newTestFrame(t, 0)
	defer frame.Pool.Put(in.Frame)
	require.Error(t, k.SendInputFrame(ctx, in, make(chan frame.Output, 1)))
	require.NoError(t, k.Close(ctx))
}
