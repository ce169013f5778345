// Package download implements the chunked download pipeline: fan out
// one task per chunk, issue a backend-specific ranged read, and emit
// the result on a shared channel for the upload side to consume.
package download

import (
	"context"

	"golang.org/x/sync/errgroup"

	"hikyaku/pkg/chunk"
	"hikyaku/pkg/fsobject"
	"hikyaku/pkg/herrors"
	"hikyaku/pkg/pool"
)

// Run spawns one task per chunk of object and sends each resulting
// ChunkData on out. Tasks select their backend client by offset index
// mod concurrency, not a work queue, so load across clients is fixed at
// plan time rather than adaptive. If out stops being read (the upload
// side failed and the caller cancelled ctx), in-flight tasks notice on
// their next send and return without error; a ranged read against S3 or
// Drive that is cut short by the cancellation returns that error instead.
// Through an errgroup-based caller such as pkg/driver, the error reported
// is the one from whichever side failed first.
func Run(ctx context.Context, object fsobject.Object, out chan<- fsobject.ChunkData) error {
	if !object.IsDownloadable() {
		return herrors.Newf(herrors.KindNotExistFile, "source object has no known size, cannot download")
	}

	ranges := chunk.Plan(*object.FileSize, object.ChunkSize)

	// One fixed-size pool per transfer: every range but the last reads
	// exactly ChunkSize bytes, so a single pooled buffer size serves
	// the whole plan instead of allocating fresh per chunk.
	bufPool := pool.NewBufferPool(int(object.ChunkSize))

	g, gctx := errgroup.WithContext(ctx)
	for _, r := range ranges {
		r := r
		g.Go(func() error {
			data, err := readRange(gctx, object, r, bufPool)
			if err != nil {
				return err
			}

			cd := fsobject.ChunkData{Bytes: data, OffsetIndex: r.Index, IsLast: r.IsLast, Release: func() { bufPool.Put(data) }}
			select {
			case out <- cd:
				return nil
			case <-gctx.Done():
				return nil
			}
		})
	}

	return g.Wait()
}

func readRange(ctx context.Context, object fsobject.Object, r chunk.Range, bufPool *pool.BufferPool) ([]byte, error) {
	switch object.Kind {
	case fsobject.KindLocal:
		return readLocal(object, r, bufPool)
	case fsobject.KindS3:
		return readS3(ctx, object, r, bufPool)
	case fsobject.KindDrive:
		return readDrive(ctx, object, r, bufPool)
	default:
		return nil, herrors.Newf(herrors.KindUnknown, "unrecognized object kind")
	}
}
