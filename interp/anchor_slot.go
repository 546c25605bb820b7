package interp

import (
	"context"

	"github.com/xaionaro-go/typing"
)

// anchorSlot is a single-owner holder of an anchor frame: putting a new
// anchor into it releases the one it replaces.
type anchorSlot[S any] struct {
	typing.Optional[Anchor[S]]
}

func (s *anchorSlot[S]) replace(
	ctx context.Context,
	allocator Allocator[S],
	anchor Anchor[S],
) {
	s.release(ctx, allocator)
	s.Optional = typing.Opt(anchor)
}

// take moves the anchor out of the slot without releasing it.
func (s *anchorSlot[S]) take() (Anchor[S], bool) {
	if !s.IsSet() {
		return Anchor[S]{}, false
	}
	anchor := s.Get()
	s.Unset()
	return anchor, true
}

func (s *anchorSlot[S]) release(
	ctx context.Context,
	allocator Allocator[S],
) {
	anchor, ok := s.take()
	if !ok {
		return
	}
	allocator.Release(ctx, anchor.Sample)
}
