// Package config is the YAML configuration of the avinterp command.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/xaionaro-go/avinterp/engine"
	"github.com/xaionaro-go/avinterp/interp"
	"github.com/xaionaro-go/avinterp/kernel"
	"github.com/xaionaro-go/avinterp/types"
	"github.com/xaionaro-go/typing"
	"gopkg.in/yaml.v3"
)

type Interpolation struct {
	// Mode overrides the mode derived from the model name.
	Mode              string          `yaml:"mode,omitempty"`
	SlowMotionFactor  float64         `yaml:"slowmo"`
	OutputRate        *types.Rational `yaml:"fps,omitempty"`
	DrainRounds       uint            `yaml:"drain_rounds"`
	EngineCallTimeout time.Duration   `yaml:"engine_timeout,omitempty"`
}

type Config struct {
	Engine        string        `yaml:"engine"`
	EngineParams  engine.Params `yaml:"engine_params"`
	Interpolation Interpolation `yaml:"interpolation"`
}

func Default() Config {
	interpCfg := interp.DefaultConfig()
	return Config{
		Engine:       "blend",
		EngineParams: engine.DefaultParams(),
		Interpolation: Interpolation{
			SlowMotionFactor: interpCfg.SlowMotionFactor,
			DrainRounds:      interpCfg.DrainRounds,
		},
	}
}

// Parse reads the YAML; the values which are not set keep their defaults.
func Parse(b []byte) (Config, error) {
	cfg := Default()
	decoder := yaml.NewDecoder(bytes.NewReader(b))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("unable to parse the config: %w", err)
	}
	return cfg, nil
}

func ReadFile(path string) (Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("unable to read '%s': %w", path, err)
	}
	cfg, err := Parse(b)
	if err != nil {
		return Config{}, fmt.Errorf("'%s': %w", path, err)
	}
	return cfg, nil
}

func (cfg Config) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(cfg); err != nil {
		return nil, fmt.Errorf("unable to serialize the config: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// FrameInterpolatorConfig converts the config into the kernel config.
func (cfg Config) FrameInterpolatorConfig() (kernel.FrameInterpolatorConfig, error) {
	result := kernel.DefaultFrameInterpolatorConfig()
	result.EngineName = cfg.Engine
	result.EngineParams = cfg.EngineParams

	if cfg.Interpolation.Mode != "" {
		mode, err := interp.ModeFromString(cfg.Interpolation.Mode)
		if err != nil {
			return kernel.FrameInterpolatorConfig{}, err
		}
		result.Interpolation.Mode = mode
	}
	result.Interpolation.SlowMotionFactor = cfg.Interpolation.SlowMotionFactor
	if cfg.Interpolation.OutputRate != nil {
		result.Interpolation.OutputRate = typing.Opt(*cfg.Interpolation.OutputRate)
	}
	result.Interpolation.DrainRounds = cfg.Interpolation.DrainRounds
	result.Interpolation.EngineCallTimeout = cfg.Interpolation.EngineCallTimeout
	if err := result.EngineParams.Validate(); err != nil {
		return kernel.FrameInterpolatorConfig{}, err
	}
	return result, nil
}
