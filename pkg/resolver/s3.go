package resolver

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/s3"

	"hikyaku/pkg/herrors"
)

// S3 issues ListObjectsV2(bucket, prefix=key) and reports the object's
// size iff exactly one key matches — a prefix match (or no match at all)
// leaves the object upload-only, per spec §4.2.2.
func S3(ctx context.Context, client *s3.Client, bucket, key string) (*int64, error) {
	out, err := client.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
		Bucket: &bucket,
		Prefix: &key,
	})
	if err != nil {
		return nil, herrors.Wrap(herrors.KindConnection, "listing objects for "+bucket+"/"+key, err)
	}

	if len(out.Contents) != 1 {
		return nil, nil
	}

	size := out.Contents[0].Size
	if size == nil {
		return nil, nil
	}
	return size, nil
}
