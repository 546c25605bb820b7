package blend

import (
	"context"
	"image"
	"image/color"
	"image/draw"
	"testing"

	"github.com/asticode/go-astiav"
	"github.com/stretchr/testify/require"
	"github.com/xaionaro-go/avinterp/engine"
	"github.com/xaionaro-go/avinterp/frame"
	"github.com/xaionaro-go/avinterp/interp"
	"github.com/xaionaro-go/avinterp/types"
)

var resolution = types.Resolution{Width: 16, Height: 8}

func newFrame(t *testing.T, c color.NRGBA) *astiav.Frame {
	f, err := frame.NewVideo(context.Background(), resolution, astiav.PixelFormatRgba)
	require.NoError(t, err)
	img := image.NewNRGBA(image.Rect(0, 0, int(resolution.Width), int(resolution.Height)))
	draw.Draw(img, img.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
	require.NoError(t, engine.FromImage(f, img))
	return f
}

func redOf(t *testing.T, f *astiav.Frame) int {
	img, err := engine.ToImage(f)
	require.NoError(t, err)
	return int(color.NRGBAModel.Convert(img.At(5, 5)).(color.NRGBA).R)
}

func TestBlend(t *testing.T) {
	ctx := context.Background()
	params := engine.DefaultParams()
	params.Mode = interp.ModeApollo
	params.Model = "apo-8"
	params.Resolution = resolution
	params.PixelFormat = astiav.PixelFormatRgba

	e, err := engine.New(ctx, Name, params)
	require.NoError(t, err)
	defer e.Close(ctx)

	a := newFrame(t, color.NRGBA{R: 0, G: 10, B: 20, A: 255})
	defer frame.Pool.Put(a)
	b := newFrame(t, color.NRGBA{R: 200, G: 10, B: 20, A: 255})
	defer frame.Pool.Put(b)

	require.NoError(t, e.Ingest(ctx, a, 0, true))
	require.NoError(t, e.Ingest(ctx, b, 2, false))

	alloc := frame.Allocator{}
	for _, tc := range []struct {
		Location float64
		Red      int
	}{
		{-1, 0},
		{-0.5, 100},
		{-0.25, 150},
	} {
		out, err := alloc.AllocOutput(ctx, b)
		require.NoError(t, err)
		require.NoError(t, e.InterpolateAt(ctx, tc.Location, out))
		require.InDelta(t, tc.Red, redOf(t, out), 1)
		alloc.Release(ctx, out)
	}
}
