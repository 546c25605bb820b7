// Package blend provides an engine which synthesizes a frame as a
// cross-fade of the two real frames around it.
package blend

import (
	"context"
	"fmt"

	"github.com/anthonynsimon/bild/blend"
	"github.com/asticode/go-astiav"
	"github.com/xaionaro-go/avinterp/engine"
	"github.com/xaionaro-go/avinterp/interp"
)

const Name = "blend"

func init() {
	engine.Register(engine.Registration{
		Name:        Name,
		Factory:     New,
		PixelFormat: astiav.PixelFormatRgba,
	})
}

type Blender struct{}

var _ engine.Blender = Blender{}

func New(
	ctx context.Context,
	params engine.Params,
) (interp.Engine[*astiav.Frame], error) {
	if params.Scale != 1 {
		return nil, fmt.Errorf("engine '%s' does not support scaling", Name)
	}
	return engine.NewPairEngine(params, Blender{}), nil
}

func (Blender) String() string {
	return "Blend"
}

func (Blender) Blend(
	ctx context.Context,
	dst, a, b *astiav.Frame,
	weight float64,
) error {
	imgA, err := engine.ToImage(a)
	if err != nil {
		return err
	}
	imgB := imgA
	if b != a {
		imgB, err = engine.ToImage(b)
		if err != nil {
			return err
		}
	}
	return engine.FromImage(dst, blend.Opacity(imgA, imgB, weight))
}
