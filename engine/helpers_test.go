package engine

import (
	"context"
	"image"
	"image/color"
	"image/draw"
	"testing"

	"github.com/asticode/go-astiav"
	"github.com/stretchr/testify/require"
	"github.com/xaionaro-go/avinterp/frame"
	"github.com/xaionaro-go/avinterp/types"
)

var testResolution = types.Resolution{Width: 16, Height: 8}

func newRGBAFrame(t *testing.T, c color.NRGBA) *astiav.Frame {
	f, err := frame.NewVideo(context.Background(), testResolution, astiav.PixelFormatRgba)
	require.NoError(t, err)
	img := image.NewNRGBA(image.Rect(0, 0, int(testResolution.Width), int(testResolution.Height)))
	draw.Draw(img, img.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
	require.NoError(t, FromImage(f, img))
	return f
}
