package main

import (
	"context"
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/xaionaro-go/avinterp/indicator"
	"github.com/xaionaro-go/avinterp/logger"
)

func printProgress(
	ctx context.Context,
	t *transcoder,
) {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()
	speed := indicator.NewRate(10)
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			fps := speed.Update(t.output.FramesWritten.Load(), now)
			fmt.Println(progressLine(ctx, t, fps))
		}
	}
}

func progressLine(
	ctx context.Context,
	t *transcoder,
	fps float64,
) string {
	stats := t.Statistics(ctx)
	written := t.output.FramesWritten.Load()
	return fmt.Sprintf(
		"read: %d (skipped %d); synthesized: %d (discarded %d); written: %d frames, %sB; speed: %s",
		t.FramesRead.Load(), t.FramesSkipped.Load(),
		stats.FramesSynthesized, stats.FramesDiscarded,
		written, humanize.SI(float64(t.output.BytesWritten.Load()), ""),
		humanize.SI(fps, "fps"),
	)
}

func printSummary(
	ctx context.Context,
	t *transcoder,
) {
	stats := t.Statistics(ctx)
	logger.Infof(ctx, "done: %s frames read, %s frames synthesized, %s written",
		humanize.Comma(int64(t.FramesRead.Load())),
		humanize.Comma(int64(stats.FramesSynthesized)),
		humanize.Bytes(t.output.BytesWritten.Load()),
	)
}
