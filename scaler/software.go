package scaler

import (
	"context"
	"fmt"

	"github.com/asticode/go-astiav"
	"github.com/xaionaro-go/avinterp/frame"
	"github.com/xaionaro-go/avinterp/helpers/closuresignaler"
	"github.com/xaionaro-go/avinterp/internal"
	"github.com/xaionaro-go/avinterp/logger"
	"github.com/xaionaro-go/avinterp/types"
)

type Software struct {
	*astiav.SoftwareScaleContext
	*closuresignaler.ClosureSignaler
}

var _ Scaler = (*Software)(nil)

func NewSoftware(
	ctx context.Context,
	src types.Resolution,
	srcPixFmt astiav.PixelFormat,
	dst types.Resolution,
	dstPixFmt astiav.PixelFormat,
	opts ...astiav.SoftwareScaleContextFlag,
) (*Software, error) {
	if len(opts) == 0 {
		opts = []astiav.SoftwareScaleContextFlag{astiav.SoftwareScaleContextFlagBilinear}
	}
	swsCtx, err := astiav.CreateSoftwareScaleContext(
		int(src.Width),
		int(src.Height),
		srcPixFmt,
		int(dst.Width),
		int(dst.Height),
		dstPixFmt,
		astiav.NewSoftwareScaleContextFlags(opts...),
	)
	if err != nil {
		return nil, fmt.Errorf("unable to create a software scale context %s:%s -> %s:%s: %w", src, srcPixFmt, dst, dstPixFmt, err)
	}
	internal.SetFinalizerFree(ctx, swsCtx)
	return &Software{
		SoftwareScaleContext: swsCtx,
		ClosureSignaler:      closuresignaler.New(),
	}, nil
}

func (s *Software) String() string {
	return fmt.Sprintf(
		"SoftwareScaler(%s:%s -> %s:%s)",
		s.SourceResolution(), s.SourcePixelFormat(),
		s.DestinationResolution(), s.DestinationPixelFormat(),
	)
}

func (s *Software) Close(ctx context.Context) error {
	logger.Tracef(ctx, "Close")
	defer func() { logger.Tracef(ctx, "/Close") }()
	s.ClosureSignaler.Close(ctx)
	return nil
}

func (s *Software) ScaleFrame(
	ctx context.Context,
	src *astiav.Frame,
	dst *astiav.Frame,
) (_err error) {
	logger.Tracef(ctx, "ScaleFrame")
	defer func() { logger.Tracef(ctx, "/ScaleFrame: %v", _err) }()
	if s.IsClosed() {
		return fmt.Errorf("the scaler is closed")
	}
	if err := s.SoftwareScaleContext.ScaleFrame(src, dst); err != nil {
		return fmt.Errorf("unable to scale a frame: %w", err)
	}
	return nil
}

// Convert returns a new frame (taken from frame.Pool) with the converted
// picture of src, keeping its timestamp and color properties.
func (s *Software) Convert(
	ctx context.Context,
	src *astiav.Frame,
) (*astiav.Frame, error) {
	dst, err := frame.NewVideo(ctx, s.DestinationResolution(), s.DestinationPixelFormat())
	if err != nil {
		return nil, err
	}
	if err := s.ScaleFrame(ctx, src, dst); err != nil {
		frame.Pool.Put(dst)
		return nil, err
	}
	frame.CopyProperties(dst, src)
	dst.SetPts(src.Pts())
	return dst, nil
}

func (s *Software) SourceResolution() types.Resolution {
	return types.Resolution{
		Width:  uint32(s.SoftwareScaleContext.SourceWidth()),
		Height: uint32(s.SoftwareScaleContext.SourceHeight()),
	}
}

func (s *Software) SourcePixelFormat() astiav.PixelFormat {
	return s.SoftwareScaleContext.SourcePixelFormat()
}

func (s *Software) DestinationResolution() types.Resolution {
	return types.Resolution{
		Width:  uint32(s.SoftwareScaleContext.DestinationWidth()),
		Height: uint32(s.SoftwareScaleContext.DestinationHeight()),
	}
}

func (s *Software) DestinationPixelFormat() astiav.PixelFormat {
	return s.SoftwareScaleContext.DestinationPixelFormat()
}
