package frame

import (
	"context"
	"fmt"

	"github.com/asticode/go-astiav"
	"github.com/xaionaro-go/avinterp/logger"
)

// Allocator provides output frames for synthesized video frames and
// returns released frames to Pool.
type Allocator struct {
	// Scale is the factor applied to the template resolution; 0 means 1.
	Scale uint32
}

func (a Allocator) String() string {
	return fmt.Sprintf("FrameAllocator(x%d)", a.scale())
}

func (a Allocator) scale() uint32 {
	if a.Scale == 0 {
		return 1
	}
	return a.Scale
}

func (a Allocator) AllocOutput(
	ctx context.Context,
	template *astiav.Frame,
) (*astiav.Frame, error) {
	if template == nil {
		return nil, fmt.Errorf("no template frame")
	}
	resolution := (&Commons{Frame: template}).GetResolution().Scale(a.scale())
	f, err := NewVideo(ctx, resolution, template.PixelFormat())
	if err != nil {
		return nil, err
	}
	CopyProperties(f, template)
	return f, nil
}

func (a Allocator) Release(
	ctx context.Context,
	f *astiav.Frame,
) {
	if f == nil {
		logger.Debugf(ctx, "releasing a nil frame")
		return
	}
	Pool.Put(f)
}
