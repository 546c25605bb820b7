//go:build with_cv
// +build with_cv

// Package cvblend provides an engine which cross-fades the real frames
// around a synthesized one using OpenCV.
package cvblend

import (
	"context"
	"fmt"

	"github.com/asticode/go-astiav"
	"github.com/xaionaro-go/avinterp/engine"
	"github.com/xaionaro-go/avinterp/interp"
	"gocv.io/x/gocv"
)

const Name = "cvblend"

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
	return "CVBlend"
}

func toMat(f *astiav.Frame) (gocv.Mat, error) {
	img, err := engine.ToImage(f)
	if err != nil {
		return gocv.Mat{}, err
	}
	mat, err := gocv.ImageToMatRGBA(img)
	if err != nil {
		return gocv.Mat{}, fmt.Errorf("unable to convert the image to a matrix: %w", err)
	}
	return mat, nil
}

func (Blender) Blend(
	ctx context.Context,
	dst, a, b *astiav.Frame,
	weight float64,
) error {
	matA, err := toMat(a)
	if err != nil {
		return err
	}
	defer matA.Close()
	matB, err := toMat(b)
	if err != nil {
		return err
	}
	defer matB.Close()

	result := gocv.NewMat()
	defer result.Close()
	if err := gocv.AddWeighted(matA, 1-weight, matB, weight, 0, &result); err != nil {
		return fmt.Errorf("unable to blend: %w", err)
	}

	img, err := result.ToImage()
	if err != nil {
		return fmt.Errorf("unable to convert the matrix to an image: %w", err)
	}
	return engine.FromImage(dst, img)
}
