package interp

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/xaionaro-go/avinterp/types"
	"github.com/xaionaro-go/typing"
)

func TestConfigFPSFactor(t *testing.T) {
	cfg := DefaultConfig()
	require.Equal(t, 1.0, cfg.FPSFactor())

	cfg.SlowMotionFactor = 4
	require.Equal(t, 0.25, cfg.FPSFactor())
	require.Equal(t, 0.075, cfg.Threshold())

	cfg.SlowMotionFactor = 1
	cfg.InputRate = types.Rational{Num: 30, Den: 1}
	cfg.OutputRate = typing.Opt(types.Rational{Num: 60, Den: 1})
	require.Equal(t, 0.5, cfg.FPSFactor())
	require.Equal(t, types.Rational{Num: 60, Den: 1}, cfg.OutputFrameRate())

	cfg.OutputRate = typing.Optional[types.Rational]{}
	require.Equal(t, types.Rational{Num: 30, Den: 1}, cfg.OutputFrameRate())
}

func TestConfigValidate(t *testing.T) {
	require.NoError(t, DefaultConfig().Validate())

	for name, modify := range map[string]func(*Config){
		"no_mode":          func(cfg *Config) { cfg.Mode = ModeUndefined },
		"slowmo_too_small": func(cfg *Config) { cfg.SlowMotionFactor = 0.01 },
		"slowmo_too_big":   func(cfg *Config) { cfg.SlowMotionFactor = 17 },
		"no_input_rate": func(cfg *Config) {
			cfg.OutputRate = typing.Opt(types.Rational{Num: 60, Den: 1})
		},
		"zero_output_rate": func(cfg *Config) {
			cfg.InputRate = types.Rational{Num: 30, Den: 1}
			cfg.OutputRate = typing.Opt(types.Rational{Num: 0, Den: 1})
		},
		"negative_timeout": func(cfg *Config) { cfg.EngineCallTimeout = -time.Second },
	} {
		t.Run(name, func(t *testing.T) {
			cfg := DefaultConfig()
			modify(&cfg)
			require.ErrorAs(t, cfg.Validate(), &ErrInvalidConfig{})
		})
	}
}
