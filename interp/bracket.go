package interp

import (
	"context"
	"fmt"
)

// bracket is the mode-specific part of the scheduler: which real frame the
// location is measured from and which real frames are retained.
type bracket[S any] interface {
	Mode() Mode

	// referenceIndex returns the index (counting from 0) of the real frame
	// a location is measured from, given n real frames were ingested.
	referenceIndex(n uint64) float64

	// retain takes the ownership of the new anchor, releasing the anchor
	// which is not needed anymore.
	retain(ctx context.Context, allocator Allocator[S], anchor Anchor[S])

	latest() (Anchor[S], bool)

	release(ctx context.Context, allocator Allocator[S])
}

func newBracket[S any](mode Mode) (bracket[S], error) {
	switch mode {
	case ModeChronos:
		return &chronosBracket[S]{}, nil
	case ModeApollo:
		return &apolloBracket[S]{}, nil
	default:
		return nil, fmt.Errorf("unsupported mode: %s", mode)
	}
}

type chronosBracket[S any] struct {
	current anchorSlot[S]
}

func (*chronosBracket[S]) Mode() Mode { return ModeChronos }

func (*chronosBracket[S]) referenceIndex(n uint64) float64 {
	return float64(n) - 2
}

func (b *chronosBracket[S]) retain(
	ctx context.Context,
	allocator Allocator[S],
	anchor Anchor[S],
) {
	b.current.replace(ctx, allocator, anchor)
}

func (b *chronosBracket[S]) latest() (Anchor[S], bool) {
	if !b.current.IsSet() {
		return Anchor[S]{}, false
	}
	return b.current.Get(), true
}

func (b *chronosBracket[S]) release(
	ctx context.Context,
	allocator Allocator[S],
) {
	b.current.release(ctx, allocator)
}

type apolloBracket[S any] struct {
	previous anchorSlot[S]
	current  anchorSlot[S]
}

func (*apolloBracket[S]) Mode() Mode { return ModeApollo }

func (*apolloBracket[S]) referenceIndex(n uint64) float64 {
	return float64(n) - 1
}

func (b *apolloBracket[S]) retain(
	ctx context.Context,
	allocator Allocator[S],
	anchor Anchor[S],
) {
	if current, ok := b.current.take(); ok {
		b.previous.replace(ctx, allocator, current)
	}
	b.current.replace(ctx, allocator, anchor)
}

func (b *apolloBracket[S]) latest() (Anchor[S], bool) {
	if !b.current.IsSet() {
		return Anchor[S]{}, false
	}
	return b.current.Get(), true
}

func (b *apolloBracket[S]) release(
	ctx context.Context,
	allocator Allocator[S],
) {
	b.previous.release(ctx, allocator)
	b.current.release(ctx, allocator)
}
