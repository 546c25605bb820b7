package engine

import (
	"context"
	"fmt"
	"sort"

	"github.com/asticode/go-astiav"
	"github.com/xaionaro-go/avinterp/interp"
	"github.com/xaionaro-go/avinterp/logger"
	"github.com/xaionaro-go/xsync"
)

// Factory creates an engine; it must not return a nil engine without an
// error.
type Factory func(ctx context.Context, params Params) (interp.Engine[*astiav.Frame], error)

type Registration struct {
	Name    string
	Factory Factory

	// PixelFormat is the only pixel format the engine accepts.
	PixelFormat astiav.PixelFormat
}

var (
	registryLocker xsync.Mutex
	registry       = map[string]Registration{}
)

func Register(reg Registration) {
	ctx := context.Background()
	registryLocker.Do(ctx, func() {
		if _, ok := registry[reg.Name]; ok {
			logger.Panic(ctx, "engine is already registered", reg.Name)
		}
		registry[reg.Name] = reg
	})
}

func Lookup(name string) (Registration, error) {
	return xsync.DoR2(context.Background(), &registryLocker, func() (Registration, error) {
		reg, ok := registry[name]
		if !ok {
			return Registration{}, fmt.Errorf("unknown engine '%s', known engines: %v", name, namesNoLock())
		}
		return reg, nil
	})
}

func Names() []string {
	return xsync.DoR1(context.Background(), &registryLocker, namesNoLock)
}

func namesNoLock() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// New creates the engine registered with the given name.
func New(
	ctx context.Context,
	name string,
	params Params,
) (_ret interp.Engine[*astiav.Frame], _err error) {
	logger.Tracef(ctx, "New(ctx, '%s')", name)
	defer func() { logger.Tracef(ctx, "/New(ctx, '%s'): %v %v", name, _ret, _err) }()

	reg, err := Lookup(name)
	if err != nil {
		return nil, err
	}
	if err := params.Validate(); err != nil {
		return nil, interp.ErrInvalidConfig{Err: err}
	}
	if params.PixelFormat != reg.PixelFormat {
		return nil, fmt.Errorf("engine '%s' accepts only %s, but received %s", name, reg.PixelFormat, params.PixelFormat)
	}
	e, err := reg.Factory(ctx, params)
	if err != nil {
		return nil, interp.ErrEngineProcessingFailed{Op: "create", Err: err}
	}
	if e == nil {
		return nil, interp.ErrEngineUnavailable{}
	}
	return e, nil
}
