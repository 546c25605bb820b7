package frame

import (
	"context"
	"fmt"

	"github.com/asticode/go-astiav"
	"github.com/xaionaro-go/avinterp/logger"
	"github.com/xaionaro-go/avinterp/types"
)

// NewVideo allocates a video frame with its own buffers.
func NewVideo(
	ctx context.Context,
	resolution types.Resolution,
	pixelFormat astiav.PixelFormat,
) (_ret *astiav.Frame, _err error) {
	logger.Tracef(ctx, "NewVideo(ctx, %s, %s)", resolution, pixelFormat)
	defer func() { logger.Tracef(ctx, "/NewVideo(ctx, %s, %s): %v", resolution, pixelFormat, _err) }()

	f := Pool.Get()
	f.SetWidth(int(resolution.Width))
	f.SetHeight(int(resolution.Height))
	f.SetPixelFormat(pixelFormat)
	if err := f.AllocBuffer(0); err != nil {
		Pool.Put(f)
		return nil, fmt.Errorf("unable to allocate frame buffer: %w", err)
	}
	return f, nil
}

// NewVideoLike allocates a video frame with the same geometry, pixel format
// and color properties as the template, but with its own buffers. The
// picture content is not copied.
func NewVideoLike(
	ctx context.Context,
	template *astiav.Frame,
) (*astiav.Frame, error) {
	f, err := NewVideo(ctx, types.Resolution{
		Width:  uint32(template.Width()),
		Height: uint32(template.Height()),
	}, template.PixelFormat())
	if err != nil {
		return nil, err
	}
	CopyProperties(f, template)
	return f, nil
}

// CopyProperties copies the properties of a frame which are independent of
// its content and position in time.
func CopyProperties(dst, src *astiav.Frame) {
	dst.SetSampleAspectRatio(src.SampleAspectRatio())
	dst.SetColorRange(src.ColorRange())
	dst.SetColorSpace(src.ColorSpace())
	dst.SetTimeBase(src.TimeBase())
	dst.SetDuration(src.Duration())
}
