package internal

import (
	"context"
	"runtime"

	"github.com/xaionaro-go/avinterp/logger"
)

// SetFinalizerFree makes sure the C-side object is freed once the Go-side
// wrapper is garbage collected.
func SetFinalizerFree[T interface{ Free() }](
	ctx context.Context,
	freer T,
) {
	runtime.SetFinalizer(freer, func(freer T) {
		logger.Debugf(ctx, "freeing %T", freer)
		freer.Free()
	})
}
