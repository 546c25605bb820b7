package config

import (
	"os"
	"path"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/xaionaro-go/avinterp/interp"
	"github.com/xaionaro-go/avinterp/types"
)

func TestParse(t *testing.T) {
	cfg, err := Parse([]byte(`
engine: nearest
engine_params:
  model: apo-8
  device: 0
  vram: 0.5
interpolation:
  slowmo: 2
  fps: 30000/1001
  engine_timeout: 5s
`))
	require.NoError(t, err)
	require.Equal(t, "nearest", cfg.Engine)
	require.Equal(t, "apo-8", cfg.EngineParams.Model)
	require.Equal(t, 0, cfg.EngineParams.Device)
	require.Equal(t, 0.5, cfg.EngineParams.VRAM)
	require.Equal(t, 1, cfg.EngineParams.Instances)
	require.Equal(t, uint(2), cfg.Interpolation.DrainRounds)
	require.Equal(t, &types.Rational{Num: 30000, Den: 1001}, cfg.Interpolation.OutputRate)

	kcfg, err := cfg.FrameInterpolatorConfig()
	require.NoError(t, err)
	require.Equal(t, "nearest", kcfg.EngineName)
	require.Equal(t, 2.0, kcfg.Interpolation.SlowMotionFactor)
	require.Equal(t, 5*time.Second, kcfg.Interpolation.EngineCallTimeout)
	require.True(t, kcfg.Interpolation.OutputRate.IsSet())
	require.Equal(t, interp.ModeUndefined, kcfg.Interpolation.Mode)
}

func TestParseErrors(t *testing.T) {
	_, err := Parse([]byte("no_such_field: 1\n"))
	require.Error(t, err)

	cfg, err := Parse([]byte("interpolation:\n  mode: hermes\n"))
	require.NoError(t, err)
	_, err = cfg.FrameInterpolatorConfig()
	require.Error(t, err)

	cfg, err = Parse([]byte("engine_params:\n  scale: 3\n"))
	require.NoError(t, err)
	_, err = cfg.FrameInterpolatorConfig()
	require.Error(t, err)
}

func TestReadFileRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Interpolation.Mode = "apollo"
	cfg.EngineParams.Model = "apo-8"
	b, err := cfg.Bytes()
	require.NoError(t, err)

	filePath := path.Join(t.TempDir(), "avinterp.yaml")
	require.NoError(t, os.WriteFile(filePath, b, 0o644))

	parsed, err := ReadFile(filePath)
	require.NoError(t, err)
	require.Equal(t, cfg, parsed)

	kcfg, err := parsed.FrameInterpolatorConfig()
	require.NoError(t, err)
	require.Equal(t, interp.ModeApollo, kcfg.Interpolation.Mode)

	_, err = ReadFile(path.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestParseEmpty(t *testing.T) {
	cfg, err := Parse(nil)
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)
}
