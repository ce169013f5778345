// Package driver wires a source object's download pipeline to a
// destination object's upload pipeline through one bounded channel and
// waits for both sides to finish, matching the transfer core's entire
// externally visible contract: build source, build destination, move
// bytes, report the first error.
package driver

import (
	"context"

	"golang.org/x/sync/errgroup"

	"hikyaku/pkg/fsobject"
	"hikyaku/pkg/herrors"
	"hikyaku/pkg/progress"
	"hikyaku/pkg/upload"

	"hikyaku/pkg/download"
)

// Transfer moves the byte stream named by src into dst. src must be
// download-eligible (FileSize set by its builder); dst's own
// precondition checks (directory, overwrite policy) run inside
// upload.Run. The channel's capacity is the larger of the two objects'
// configured concurrency, so neither side's fan-out starves waiting on
// a single-slot handoff.
func Transfer(ctx context.Context, src, dst fsobject.Object) error {
	return TransferWithProgress(ctx, src, dst, nil)
}

// TransferWithProgress is Transfer plus a tracker that gets one Update
// call per chunk as the upload side finishes writing it, so a caller
// (cmd/hikyakud's status endpoint) can poll tracker.GetStats() while
// the transfer is in flight on another goroutine.
func TransferWithProgress(ctx context.Context, src, dst fsobject.Object, tracker *progress.Tracker) error {
	if !src.IsDownloadable() {
		return herrors.Newf(herrors.KindNotExistFile, "source object has no known size, cannot transfer")
	}

	capacity := src.Concurrency
	if dst.Concurrency > capacity {
		capacity = dst.Concurrency
	}
	if capacity < 1 {
		capacity = 1
	}

	ch := make(chan fsobject.ChunkData, capacity)

	var onChunk upload.OnChunk
	if tracker != nil {
		onChunk = tracker.Update
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer close(ch)
		return download.Run(gctx, src, ch)
	})
	g.Go(func() error {
		return upload.RunWithProgress(gctx, dst, ch, onChunk)
	})

	return g.Wait()
}
