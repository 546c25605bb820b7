// Package nearest provides an engine which duplicates the real frame
// nearest to the requested location.
package nearest

import (
	"context"
	"fmt"

	"github.com/asticode/go-astiav"
	"github.com/xaionaro-go/avinterp/engine"
	"github.com/xaionaro-go/avinterp/interp"
)

const Name = "nearest"

func init() {
	engine.Register(engine.Registration{
		Name:        Name,
		Factory:     New,
		PixelFormat: astiav.PixelFormatYuv420P,
	})
}

type Duplicator struct{}

var _ engine.Blender = Duplicator{}

func New(
	ctx context.Context,
	params engine.Params,
) (interp.Engine[*astiav.Frame], error) {
	if params.Scale != 1 {
		return nil, fmt.Errorf("engine '%s' does not support scaling", Name)
	}
	return engine.NewPairEngine(params, Duplicator{}), nil
}

func (Duplicator) String() string {
	return "Nearest"
}

func (Duplicator) Blend(
	ctx context.Context,
	dst, a, b *astiav.Frame,
	weight float64,
) error {
	src := a
	if weight >= 0.5 {
		src = b
	}
	img, err := engine.ToImage(src)
	if err != nil {
		return err
	}
	return engine.FromImage(dst, img)
}
