package engine_test

import (
	"context"
	"testing"

	"github.com/asticode/go-astiav"
	"github.com/stretchr/testify/require"
	"github.com/xaionaro-go/avinterp/engine"
	"github.com/xaionaro-go/avinterp/engine/blend"
	"github.com/xaionaro-go/avinterp/engine/nearest"
	"github.com/xaionaro-go/avinterp/interp"
	"github.com/xaionaro-go/avinterp/types"
)

func TestRegistry(t *testing.T) {
	ctx := context.Background()
	require.Subset(t, engine.Names(), []string{blend.Name, nearest.Name})

	params := engine.DefaultParams()
	params.Mode = interp.ModeChronos
	params.Resolution = types.Resolution{Width: 16, Height: 8}
	params.PixelFormat = astiav.PixelFormatRgba

	_, err := engine.New(ctx, "no-such-engine", params)
	require.Error(t, err)

	_, err = engine.New(ctx, nearest.Name, params)
	require.Error(t, err)

	params.Scale = 3
	_, err = engine.New(ctx, blend.Name, params)
	require.ErrorAs(t, err, &interp.ErrInvalidConfig{})

	params.Scale = 2
	_, err = engine.New(ctx, blend.Name, params)
	require.ErrorAs(t, err, &interp.ErrEngineProcessingFailed{})

	params.Scale = 1
	e, err := engine.New(ctx, blend.Name, params)
	require.NoError(t, err)
	require.NoError(t, e.Close(ctx))

	reg, err := engine.Lookup(nearest.Name)
	require.NoError(t, err)
	require.Equal(t, astiav.PixelFormatYuv420P, reg.PixelFormat)
}
