package builder

import (
	"context"

	"hikyaku/pkg/chunk"
	"hikyaku/pkg/credential"
	"hikyaku/pkg/fsobject"
	"hikyaku/pkg/herrors"
	"hikyaku/pkg/resolver"
	"hikyaku/pkg/uri"
)

// S3 builds a FileSystemObject backed by an S3-compatible bucket.
type S3 struct {
	cred        credential.S3
	bucket      string
	key         string
	set         bool
	concurrency int
	chunkSize   int64
}

// NewS3 starts an S3 builder bound to one credential.
func NewS3(cred credential.S3) S3 {
	return S3{cred: cred, concurrency: defaultConcurrency(), chunkSize: chunk.DefaultChunkSize}
}

// SetFilePath parses an s3:// URI into bucket + key.
func (b S3) SetFilePath(path string) (S3, error) {
	parsed, err := uri.Parse(path)
	if err != nil {
		return S3{}, err
	}
	if parsed.Scheme != uri.SchemeS3 {
		return S3{}, herrors.Newf(herrors.KindInvalidArgument, "file system prefix is not s3://")
	}
	if parsed.Namespace == "" {
		return S3{}, herrors.Newf(herrors.KindBuilder, "bucket name not found")
	}
	b.bucket, b.key = parsed.Namespace, parsed.Path
	b.set = true
	return b, nil
}

func (b S3) Concurrency(n int) S3 {
	if n > 0 {
		b.concurrency = n
	}
	return b
}

func (b S3) ChunkSize(bytes int64) S3 {
	b.chunkSize = orDefaultChunkSize(bytes, chunk.DefaultChunkSize)
	return b
}

// Build allocates one client per concurrency slot and probes the key
// with ListObjectsV2 to learn whether it names an existing object.
func (b S3) Build(ctx context.Context) (fsobject.Object, error) {
	if !b.set {
		return fsobject.Object{}, herrors.Newf(herrors.KindBuilder, "path is not set")
	}

	clients, err := credential.NewS3Clients(ctx, b.cred, b.concurrency)
	if err != nil {
		return fsobject.Object{}, err
	}

	size, err := resolver.S3(ctx, clients[0], b.bucket, b.key)
	if err != nil {
		return fsobject.Object{}, err
	}

	return fsobject.Object{
		Kind:        fsobject.KindS3,
		FileSize:    size,
		ChunkSize:   b.chunkSize,
		Concurrency: len(clients),
		S3:          fsobject.NewS3Data(clients, b.bucket, b.key),
	}, nil
}
