// Package kernel contains the frame-processing kernels of a pipeline.
package kernel

import (
	"context"
	"fmt"

	"github.com/xaionaro-go/avinterp/frame"
)

// Abstract is a kernel which consumes decoded frames and produces frames.
type Abstract interface {
	fmt.Stringer
	CloseChaner

	// SendInputFrame consumes the input frame; the kernel does not take
	// the ownership of it.
	SendInputFrame(ctx context.Context, input frame.Input, outputCh chan<- frame.Output) error

	// Flush emits the frames still pending at the end of the stream.
	Flush(ctx context.Context, outputCh chan<- frame.Output) error

	Close(ctx context.Context) error
}

type CloseChaner interface {
	CloseChan() <-chan struct{}
}
