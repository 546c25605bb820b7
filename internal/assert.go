// Package internal contains helpers shared by avinterp packages that are
// not meant to be imported by users.
package internal

import (
	"context"

	"github.com/xaionaro-go/avinterp/logger"
)

// Assert panics (through the logger, so the message is recorded) if
// mustBeTrue is false.
func Assert(
	ctx context.Context,
	mustBeTrue bool,
	extraArgs ...any,
) {
	if mustBeTrue {
		return
	}

	logger.Panic(ctx, "assertion failed", extraArgs)
}
