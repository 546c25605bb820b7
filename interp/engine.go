package interp

import (
	"context"
	"fmt"
)

// Anchor is a real frame retained to serve as an interpolation bracket.
type Anchor[S any] struct {
	Sample S
	PTS    int64
}

// Engine is the inference engine which does the actual pixel synthesis.
//
// The scheduler decides which frames to synthesize and which timestamps they
// get; the engine only knows how to produce a sample at a location between
// the samples it was given.
type Engine[S any] interface {
	fmt.Stringer

	// Ingest adds a new real frame. The engine must copy (or reference)
	// whatever it needs: the sample may be released right after the
	// scheduler replaces its anchor.
	Ingest(ctx context.Context, sample S, pts int64, isFirst bool) error

	// InterpolateAt writes into "out" the sample at the given location
	// relative to the bracket of the scheduler's mode, see Mode.
	InterpolateAt(ctx context.Context, location float64, out S) error

	// EndStream signals there will be no more real frames.
	EndStream(ctx context.Context) error

	// Close destroys the engine.
	Close(ctx context.Context) error
}

// Allocator provides and releases buffers on behalf of the host pipeline.
type Allocator[S any] interface {
	// AllocOutput returns a new buffer for a synthesized frame; the
	// template is the latest real frame, its properties should be copied.
	AllocOutput(ctx context.Context, template S) (S, error)

	// Release frees a buffer owned by the scheduler.
	Release(ctx context.Context, sample S)
}

// Sink accepts synthesized frames.
type Sink[S any] interface {
	// EmitFrame takes the ownership of "out" regardless of the result.
	EmitFrame(ctx context.Context, out S, pts int64) error
}

// SinkFunc is a Sink implemented by a function.
type SinkFunc[S any] func(ctx context.Context, out S, pts int64) error

func (fn SinkFunc[S]) EmitFrame(ctx context.Context, out S, pts int64) error {
	return fn(ctx, out, pts)
}
