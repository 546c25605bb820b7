// Package engine contains the inference engines which synthesize the
// pixels of interpolated frames, and the registry to pick one by name.
package engine

import (
	"fmt"

	"github.com/asticode/go-astiav"
	"github.com/davecgh/go-spew/spew"
	"github.com/xaionaro-go/avinterp/interp"
	"github.com/xaionaro-go/avinterp/types"
)

const (
	DefaultModel = "chr-1"

	DeviceAuto = -2
	DeviceCPU  = -1
	DeviceMax  = 8

	InstancesMax = 3

	VRAMMin = 0.1
	VRAMMax = 1.0
)

// Params is what an engine is created with.
type Params struct {
	// Model is the short name of the model, e.g. "chr-2" or "apo-8".
	Model string `yaml:"model"`

	// Device is the index of the GPU to run on; see DeviceAuto and DeviceCPU.
	Device int `yaml:"device"`

	// Instances is the amount of extra processing instances per device.
	Instances int `yaml:"instances"`

	// VRAM is the share of the device memory the engine may use.
	VRAM float64 `yaml:"vram"`

	// Download allows the engine to fetch the model if it is missing.
	Download bool `yaml:"download"`

	// Scale is the factor of the output resolution; only interpolation
	// engines without upscaling are shipped, so they require 1.
	Scale uint32 `yaml:"scale"`

	Mode             interp.Mode `yaml:"-"`
	Threshold        float64     `yaml:"-"`
	FPSFactor        float64     `yaml:"-"`
	SlowMotionFactor float64     `yaml:"-"`

	Resolution  types.Resolution   `yaml:"-"`
	PixelFormat astiav.PixelFormat `yaml:"-"`
	TimeBase    types.Rational     `yaml:"-"`
	FrameRate   types.Rational     `yaml:"-"`
}

func DefaultParams() Params {
	return Params{
		Model:     DefaultModel,
		Device:    DeviceAuto,
		Instances: 1,
		VRAM:      VRAMMax,
		Scale:     1,
	}
}

func (p *Params) String() string {
	if p == nil {
		return "<nil>"
	}
	return spew.Sdump(*p)
}

// SetInterpolation copies the interpolation-related values of the
// scheduler config into the params.
func (p *Params) SetInterpolation(cfg interp.Config) {
	p.Mode = cfg.Mode
	p.FPSFactor = cfg.FPSFactor()
	p.Threshold = cfg.Threshold()
	p.SlowMotionFactor = cfg.SlowMotionFactor
	p.TimeBase = cfg.TimeBase
	p.FrameRate = cfg.OutputFrameRate()
}

// Vector returns the model parameters in the order the engine consumes them.
func (p Params) Vector() [3]float64 {
	return [3]float64{p.Threshold, p.FPSFactor, p.SlowMotionFactor}
}

// OutputResolution is the resolution of the synthesized frames.
func (p Params) OutputResolution() types.Resolution {
	return p.Resolution.Scale(p.Scale)
}

func (p Params) Validate() error {
	if p.Device < DeviceAuto || p.Device > DeviceMax {
		return fmt.Errorf("device %d is out of range [%d, %d]", p.Device, DeviceAuto, DeviceMax)
	}
	if p.Instances < 0 || p.Instances > InstancesMax {
		return fmt.Errorf("instances %d is out of range [0, %d]", p.Instances, InstancesMax)
	}
	if p.VRAM < VRAMMin || p.VRAM > VRAMMax {
		return fmt.Errorf("vram %v is out of range [%v, %v]", p.VRAM, VRAMMin, VRAMMax)
	}
	switch p.Scale {
	case 1, 2, 4:
	default:
		return fmt.Errorf("scale %d is not supported, expected 1, 2 or 4", p.Scale)
	}
	mode, err := interp.ModeFromModelName(p.Model)
	if err != nil {
		return err
	}
	if p.Mode != interp.ModeUndefined && p.Mode != mode {
		return fmt.Errorf("model '%s' is for mode %s, but mode %s is requested", p.Model, mode, p.Mode)
	}
	return nil
}
