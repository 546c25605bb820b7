// Package closuresignaler provides a one-shot signal that something is
// closed.
package closuresignaler

import (
	"context"
	"sync"

	"github.com/xaionaro-go/avinterp/logger"
)

type ClosureSignaler struct {
	closeOnce sync.Once
	c         chan struct{}
}

func New() *ClosureSignaler {
	return &ClosureSignaler{
		c: make(chan struct{}),
	}
}

func (c *ClosureSignaler) CloseChan() <-chan struct{} {
	return c.c
}

// Close emits the signal; it returns true only on the first call.
func (c *ClosureSignaler) Close(ctx context.Context) bool {
	isFirst := false
	c.closeOnce.Do(func() {
		logger.Debugf(ctx, "closing")
		close(c.c)
		isFirst = true
	})
	return isFirst
}

func (c *ClosureSignaler) IsClosed() bool {
	select {
	case <-c.c:
		return true
	default:
		return false
	}
}

// Wait blocks until the signal is emitted or the context is cancelled.
func (c *ClosureSignaler) Wait(ctx context.Context) error {
	select {
	case <-c.c:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
