package download

import (
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/service/s3"

	"hikyaku/pkg/chunk"
	"hikyaku/pkg/fsobject"
	"hikyaku/pkg/herrors"
	"hikyaku/pkg/pool"
)

func readS3(ctx context.Context, object fsobject.Object, r chunk.Range, bufPool *pool.BufferPool) ([]byte, error) {
	client := object.S3ClientFor(r.Index)

	rangeHeader := fmt.Sprintf("bytes=%d-%d", r.Start, r.End)
	out, err := client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: &object.S3.Bucket,
		Key:    &object.S3.Key,
		Range:  &rangeHeader,
	})
	if err != nil {
		return nil, herrors.Wrap(herrors.KindS3, "getting "+object.S3.Bucket+"/"+object.S3.Key, err)
	}
	defer out.Body.Close()

	buf := bufPool.Get()[:r.Len()]
	if _, err := io.ReadFull(out.Body, buf); err != nil {
		return nil, herrors.Wrap(herrors.KindS3, "reading response body", err)
	}
	return buf, nil
}
