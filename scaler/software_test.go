package scaler

import (
	"context"
	"testing"

	"github.com/asticode/go-astiav"
	"github.com/stretchr/testify/require"
	"github.com/xaionaro-go/avinterp/frame"
	"github.com/xaionaro-go/avinterp/types"
)

func TestSoftwareConvert(t *testing.T) {
	ctx := context.Background()
	res := types.Resolution{Width: 32, Height: 16}

	s, err := NewSoftware(ctx, res, astiav.PixelFormatYuv420P, res, astiav.PixelFormatRgba)
	require.NoError(t, err)
	defer s.Close(ctx)

	src, err := frame.NewVideo(ctx, res, astiav.PixelFormatYuv420P)
	require.NoError(t, err)
	defer frame.Pool.Put(src)
	require.NoError(t, src.ImageFillBlack())
	src.SetPts(42)

	dst, err := s.Convert(ctx, src)
	require.NoError(t, err)
	defer frame.Pool.Put(dst)
	require.Equal(t, astiav.PixelFormatRgba, dst.PixelFormat())
	require.Equal(t, 32, dst.Width())
	require.Equal(t, int64(42), dst.Pts())

	require.NoError(t, s.Close(ctx))
	_, err = s.Convert(ctx, src)
	require.Error(t, err)
}
