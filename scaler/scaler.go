// Package scaler converts video frames between resolutions and pixel formats.
package scaler

import (
	"context"
	"fmt"

	"github.com/asticode/go-astiav"
	"github.com/xaionaro-go/avinterp/types"
)

type Scaler interface {
	fmt.Stringer
	Close(context.Context) error
	ScaleFrame(ctx context.Context, src *astiav.Frame, dst *astiav.Frame) error
	SourceResolution() types.Resolution
	SourcePixelFormat() astiav.PixelFormat
	DestinationResolution() types.Resolution
	DestinationPixelFormat() astiav.PixelFormat
}
