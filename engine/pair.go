package engine

import (
	"context"
	"fmt"

	"github.com/asticode/go-astiav"
	"github.com/xaionaro-go/avinterp/frame"
	"github.com/xaionaro-go/avinterp/interp"
	"github.com/xaionaro-go/avinterp/logger"
)

// Blender synthesizes a frame between "a" and "b"; weight 0 means "a"
// and weight 1 means "b".
type Blender interface {
	fmt.Stringer
	Blend(ctx context.Context, dst, a, b *astiav.Frame, weight float64) error
}

// PairEngine is an engine which keeps the two latest real frames and asks
// a Blender to mix them. After the end of the stream it holds the last
// frame.
type PairEngine struct {
	Params  Params
	Blender Blender

	previous *astiav.Frame
	current  *astiav.Frame
	isEnded  bool
	isClosed bool
}

var _ interp.Engine[*astiav.Frame] = (*PairEngine)(nil)

func NewPairEngine(
	params Params,
	blender Blender,
) *PairEngine {
	return &PairEngine{
		Params:  params,
		Blender: blender,
	}
}

func (e *PairEngine) String() string {
	return fmt.Sprintf("%s[%s]", e.Blender, e.Params.Model)
}

func (e *PairEngine) Ingest(
	ctx context.Context,
	sample *astiav.Frame,
	pts int64,
	isFirst bool,
) (_err error) {
	logger.Tracef(ctx, "Ingest(%d, %t)", pts, isFirst)
	defer func() { logger.Tracef(ctx, "/Ingest(%d, %t): %v", pts, isFirst, _err) }()
	if e.isClosed {
		return fmt.Errorf("the engine is closed")
	}
	if isFirst {
		e.releaseFrames()
		e.isEnded = false
	}
	if res := (&frame.Commons{Frame: sample}).GetResolution(); res != e.Params.Resolution {
		return fmt.Errorf("expected a %s frame, but received %s", e.Params.Resolution, res)
	}
	if sample.PixelFormat() != e.Params.PixelFormat {
		return fmt.Errorf("expected pixel format %s, but received %s", e.Params.PixelFormat, sample.PixelFormat())
	}
	frame.Pool.Put(e.previous)
	e.previous = e.current
	e.current = frame.CloneAsReferenced(sample)
	return nil
}

// Weight converts a location to the weight of the latest real frame.
func (e *PairEngine) Weight(location float64) (float64, error) {
	var weight float64
	switch e.Params.Mode {
	case interp.ModeChronos:
		weight = location
	case interp.ModeApollo:
		weight = 1 + location
	default:
		return 0, fmt.Errorf("unknown mode %s", e.Params.Mode)
	}
	if weight < 0 || weight > 1 {
		return 0, fmt.Errorf("location %v is out of range for mode %s", location, e.Params.Mode)
	}
	return weight, nil
}

func (e *PairEngine) InterpolateAt(
	ctx context.Context,
	location float64,
	out *astiav.Frame,
) (_err error) {
	logger.Tracef(ctx, "InterpolateAt(%v)", location)
	defer func() { logger.Tracef(ctx, "/InterpolateAt(%v): %v", location, _err) }()
	if e.isClosed {
		return fmt.Errorf("the engine is closed")
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if e.current == nil {
		return fmt.Errorf("no frames were ingested")
	}
	if e.isEnded || e.previous == nil {
		return e.Blender.Blend(ctx, out, e.current, e.current, 0)
	}
	weight, err := e.Weight(location)
	if err != nil {
		return err
	}
	return e.Blender.Blend(ctx, out, e.previous, e.current, weight)
}

func (e *PairEngine) EndStream(ctx context.Context) error {
	logger.Debugf(ctx, "EndStream")
	e.isEnded = true
	return nil
}

func (e *PairEngine) Close(ctx context.Context) error {
	logger.Debugf(ctx, "Close")
	e.isClosed = true
	e.releaseFrames()
	return nil
}

func (e *PairEngine) releaseFrames() {
	frame.Pool.Put(e.previous, e.current)
	e.previous, e.current = nil, nil
}
