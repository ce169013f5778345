// Package upload implements the chunked upload pipeline: consume
// ChunkData records from a shared channel and apply each one via a
// backend-specific positional write, finalising the transfer once
// every chunk has landed.
package upload

import (
	"context"
	"log"

	"golang.org/x/sync/errgroup"

	"hikyaku/pkg/fsobject"
	"hikyaku/pkg/herrors"
)

// OnChunk is called once per chunk after its write attempt, reporting
// how many bytes it carried and whether the write succeeded. Passing
// nil is fine — callers that don't need progress reporting skip it.
type OnChunk func(bytes int64, success bool)

// Run drains in, applying each chunk to object with its backend
// writer, and finalises the transfer (S3's CompleteMultipartUpload;
// Drive's resumable session already finalises itself on the last PUT).
// If any chunk write fails, Run aborts backend state created so far
// (best-effort) before returning the first error.
func Run(ctx context.Context, object fsobject.Object, in <-chan fsobject.ChunkData) error {
	return RunWithProgress(ctx, object, in, nil)
}

// RunWithProgress is Run plus a per-chunk progress callback.
func RunWithProgress(ctx context.Context, object fsobject.Object, in <-chan fsobject.ChunkData, onChunk OnChunk) error {
	if err := checkPreconditions(object); err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	for cd := range in {
		cd := cd
		if !cd.IsLast && int64(len(cd.Bytes)) != object.ChunkSize {
			if cd.Release != nil {
				cd.Release()
			}
			return herrors.Newf(herrors.KindUnknown, "chunk %d has length %d, expected chunk size %d", cd.OffsetIndex, len(cd.Bytes), object.ChunkSize)
		}

		g.Go(func() error {
			err := writeChunk(gctx, object, cd)
			if cd.Release != nil {
				cd.Release()
			}
			if onChunk != nil {
				onChunk(int64(len(cd.Bytes)), err == nil)
			}
			return err
		})
	}

	if err := g.Wait(); err != nil {
		abort(context.Background(), object)
		return err
	}

	if err := finalize(ctx, object); err != nil {
		abort(context.Background(), object)
		return err
	}
	return nil
}

func checkPreconditions(object fsobject.Object) error {
	switch object.Kind {
	case fsobject.KindLocal:
		if object.Local.IsDir {
			return herrors.Newf(herrors.KindInvalidArgument, "upload destination %s is a directory", object.Local.Path)
		}
		if object.IsDownloadable() {
			return herrors.Newf(herrors.KindInvalidArgument, "local destination %s already exists", object.Local.Path)
		}
	case fsobject.KindS3:
		if object.S3.Key == "" {
			return herrors.Newf(herrors.KindBuilder, "S3 destination has no key")
		}
		if object.IsDownloadable() {
			log.Printf("upload: s3://%s/%s already exists, overwriting", object.S3.Bucket, object.S3.Key)
		}
	case fsobject.KindDrive:
		if object.Drive.UploadFilename == nil {
			return herrors.Newf(herrors.KindBuilder, "Drive destination has no upload filename")
		}
		if object.IsDownloadable() {
			log.Printf("upload: Drive file %q already exists, creating a duplicate", *object.Drive.UploadFilename)
		}
	default:
		return herrors.Newf(herrors.KindUnknown, "unrecognized object kind")
	}
	return nil
}

func writeChunk(ctx context.Context, object fsobject.Object, cd fsobject.ChunkData) error {
	switch object.Kind {
	case fsobject.KindLocal:
		return writeLocal(object, cd)
	case fsobject.KindS3:
		return writeS3(ctx, object, cd)
	case fsobject.KindDrive:
		return writeDrive(ctx, object, cd)
	default:
		return herrors.Newf(herrors.KindUnknown, "unrecognized object kind")
	}
}

func finalize(ctx context.Context, object fsobject.Object) error {
	if object.Kind == fsobject.KindS3 {
		return completeS3(ctx, object)
	}
	return nil
}

func abort(ctx context.Context, object fsobject.Object) {
	switch object.Kind {
	case fsobject.KindS3:
		abortS3(ctx, object)
	case fsobject.KindDrive:
		abortDrive(ctx, object)
	}
}
