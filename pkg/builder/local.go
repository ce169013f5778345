package builder

import (
	"context"

	"hikyaku/pkg/chunk"
	"hikyaku/pkg/fsobject"
	"hikyaku/pkg/herrors"
	"hikyaku/pkg/resolver"
	"hikyaku/pkg/uri"
)

// Local builds a FileSystemObject backed by the local filesystem.
type Local struct {
	path        string
	set         bool
	concurrency int
	chunkSize   int64
}

// NewLocal starts a Local builder with the default concurrency and
// chunk size; both can be overridden before Build.
func NewLocal() Local {
	return Local{concurrency: defaultConcurrency(), chunkSize: chunk.DefaultChunkSize}
}

// SetFilePath parses a file:// URI and records its path. The core
// interprets local paths with an implicit leading "/" the way the
// source's Local builder does, so "file://tmp/out.bin" and
// "file:///tmp/out.bin" resolve to the same absolute path.
func (b Local) SetFilePath(path string) (Local, error) {
	parsed, err := uri.Parse(path)
	if err != nil {
		return Local{}, err
	}
	if parsed.Scheme != uri.SchemeFile {
		return Local{}, herrors.Newf(herrors.KindInvalidArgument, "file system prefix is not file://")
	}
	b.path = "/" + parsed.Path
	b.set = true
	return b, nil
}

// Concurrency overrides the fan-out degree for this object.
func (b Local) Concurrency(n int) Local {
	if n > 0 {
		b.concurrency = n
	}
	return b
}

// ChunkSize overrides the per-chunk byte size; zero is rejected in
// favor of the default rather than producing a zero-length chunk plan.
func (b Local) ChunkSize(bytes int64) Local {
	b.chunkSize = orDefaultChunkSize(bytes, chunk.DefaultChunkSize)
	return b
}

// Build stats the path and materializes the FileSystemObject.
func (b Local) Build(ctx context.Context) (fsobject.Object, error) {
	if !b.set {
		return fsobject.Object{}, herrors.Newf(herrors.KindBuilder, "path is not set")
	}

	res, err := resolver.Local(b.path)
	if err != nil {
		return fsobject.Object{}, err
	}

	return fsobject.Object{
		Kind:        fsobject.KindLocal,
		FileSize:    res.FileSize,
		ChunkSize:   b.chunkSize,
		Concurrency: b.concurrency,
		Local:       fsobject.NewLocalData(b.path, res.IsDir),
	}, nil
}
