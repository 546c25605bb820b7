package nearest

import (
	"context"
	"image"
	"testing"

	"github.com/asticode/go-astiav"
	"github.com/stretchr/testify/require"
	"github.com/xaionaro-go/avinterp/engine"
	"github.com/xaionaro-go/avinterp/frame"
	"github.com/xaionaro-go/avinterp/interp"
	"github.com/xaionaro-go/avinterp/types"
)

var resolution = types.Resolution{Width: 16, Height: 8}

func newFrame(t *testing.T, luma uint8) *astiav.Frame {
	f, err := frame.NewVideo(context.Background(), resolution, astiav.PixelFormatYuv420P)
	require.NoError(t, err)
	img := image.NewYCbCr(image.Rect(0, 0, int(resolution.Width), int(resolution.Height)), image.YCbCrSubsampleRatio420)
	for idx := range img.Y {
		img.Y[idx] = luma
	}
	for idx := range img.Cb {
		img.Cb[idx] = 128
		img.Cr[idx] = 128
	}
	require.NoError(t, engine.FromImage(f, img))
	return f
}

func lumaOf(t *testing.T, f *astiav.Frame) uint8 {
	img, err := engine.ToImage(f)
	require.NoError(t, err)
	return img.(*image.YCbCr).Y[0]
}

func TestNearest(t *testing.T) {
	ctx := context.Background()
	params := engine.DefaultParams()
	params.Mode = interp.ModeChronos
	params.Resolution = resolution
	params.PixelFormat = astiav.PixelFormatYuv420P

	e, err := engine.New(ctx, Name, params)
	require.NoError(t, err)
	defer e.Close(ctx)

	a := newFrame(t, 16)
	defer frame.Pool.Put(a)
	b := newFrame(t, 235)
	defer frame.Pool.Put(b)
	require.NoError(t, e.Ingest(ctx, a, 0, true))
	require.NoError(t, e.Ingest(ctx, b, 1, false))

	alloc := frame.Allocator{}
	for location, expected := range map[float64]uint8{0: 16, 0.25: 16, 0.5: 235, 0.75: 235} {
		out, err := alloc.AllocOutput(ctx, b)
		require.NoError(t, err)
		require.NoError(t, e.InterpolateAt(ctx, location, out))
		require.Equal(t, expected, lumaOf(t, out))
		alloc.Release(ctx, out)
	}
}
