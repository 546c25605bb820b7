//go:build !debug_trace
// +build !debug_trace

package logger

import (
	"context"
)

// Tracef is a no-op unless built with the `debug_trace` tag: the scheduler
// traces every synthesized slot and that is too expensive for normal builds.
func Tracef(ctx context.Context, format string, args ...any) {}
