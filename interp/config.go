package interp

import (
	"fmt"
	"math"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/xaionaro-go/avinterp/types"
	"github.com/xaionaro-go/typing"
)

const (
	DefaultDrainRounds = 2

	SlowMotionFactorMin = 0.1
	SlowMotionFactorMax = 16

	// ThresholdRatio is the ratio between the scene-change threshold
	// passed to an engine and the FPS factor.
	ThresholdRatio = 0.3
)

type Config struct {
	Mode Mode

	// InputRate is the frame rate of the real frames.
	InputRate types.Rational

	// OutputRate is the requested frame rate; if not set the output rate
	// is the input rate.
	OutputRate typing.Optional[types.Rational]

	// SlowMotionFactor stretches the timestamps of the output, e.g. 2
	// means the output plays twice as long as the input.
	SlowMotionFactor float64

	// TimeBase is the time base of the timestamps of both the real and
	// the synthesized frames.
	TimeBase types.Rational

	// DrainRounds is the amount of virtual frames extrapolated at the end
	// of the stream to emit the frames still owed.
	DrainRounds uint

	// EngineCallTimeout limits the duration of every call to the engine;
	// zero means no limit.
	EngineCallTimeout time.Duration
}

func DefaultConfig() Config {
	return Config{
		Mode:             ModeChronos,
		SlowMotionFactor: 1,
		DrainRounds:      DefaultDrainRounds,
	}
}

func (cfg *Config) String() string {
	if cfg == nil {
		return "<nil>"
	}
	return spew.Sdump(*cfg)
}

// OutputFrameRate returns the frame rate of the output stream.
func (cfg Config) OutputFrameRate() types.Rational {
	if cfg.OutputRate.IsSet() {
		return cfg.OutputRate.Get()
	}
	return cfg.InputRate
}

// FPSFactor returns by how much the position advances per synthesized frame
// (measured in real frames).
func (cfg Config) FPSFactor() float64 {
	if !cfg.OutputRate.IsSet() {
		return 1 / cfg.SlowMotionFactor
	}
	ratio := cfg.OutputRate.Get().Div(cfg.InputRate).Float64()
	return 1 / (cfg.SlowMotionFactor * ratio)
}

// Threshold returns the scene-change threshold to be passed to an engine.
func (cfg Config) Threshold() float64 {
	return cfg.FPSFactor() * ThresholdRatio
}

func (cfg Config) Validate() error {
	if err := cfg.validate(); err != nil {
		return ErrInvalidConfig{Err: err}
	}
	return nil
}

func (cfg Config) validate() error {
	switch cfg.Mode {
	case ModeChronos, ModeApollo:
	default:
		return fmt.Errorf("unknown mode %s", cfg.Mode)
	}
	if math.IsNaN(cfg.SlowMotionFactor) || cfg.SlowMotionFactor < SlowMotionFactorMin || cfg.SlowMotionFactor > SlowMotionFactorMax {
		return fmt.Errorf("the slow motion factor %v is out of range [%v, %v]", cfg.SlowMotionFactor, SlowMotionFactorMin, SlowMotionFactorMax)
	}
	if cfg.OutputRate.IsSet() {
		if !cfg.InputRate.IsPositive() {
			return fmt.Errorf("the input rate (%s) must be positive when the output rate is set", cfg.InputRate)
		}
		if !cfg.OutputRate.Get().IsPositive() {
			return fmt.Errorf("the output rate (%s) must be positive", cfg.OutputRate.Get())
		}
	}
	fpsFactor := cfg.FPSFactor()
	if math.IsNaN(fpsFactor) || math.IsInf(fpsFactor, 0) || fpsFactor <= 0 {
		return fmt.Errorf("the FPS factor %v is not a positive finite number", fpsFactor)
	}
	if cfg.EngineCallTimeout < 0 {
		return fmt.Errorf("the engine call timeout (%v) is negative", cfg.EngineCallTimeout)
	}
	return nil
}
