package upload

import (
	"bytes"
	"context"
	"sort"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"hikyaku/pkg/fsobject"
	"hikyaku/pkg/herrors"
)

func writeS3(ctx context.Context, object fsobject.Object, cd fsobject.ChunkData) error {
	uploadID, err := object.S3.EnsureUploadID(func() (string, error) {
		out, err := object.S3ClientFor(0).CreateMultipartUpload(ctx, &s3.CreateMultipartUploadInput{
			Bucket: &object.S3.Bucket,
			Key:    &object.S3.Key,
		})
		if err != nil {
			return "", herrors.Wrap(herrors.KindS3, "creating multipart upload", err)
		}
		return *out.UploadId, nil
	})
	if err != nil {
		return err
	}

	partNumber := int32(cd.OffsetIndex) + 1
	out, err := object.S3ClientFor(cd.OffsetIndex).UploadPart(ctx, &s3.UploadPartInput{
		Bucket:     &object.S3.Bucket,
		Key:        &object.S3.Key,
		UploadId:   &uploadID,
		PartNumber: &partNumber,
		Body:       bytes.NewReader(cd.Bytes),
	})
	if err != nil {
		return herrors.Wrap(herrors.KindS3, "uploading part", err)
	}

	object.S3.RecordPart(partNumber, aws.ToString(out.ETag))
	return nil
}

func completeS3(ctx context.Context, object fsobject.Object) error {
	uploadID, ok := object.S3.UploadIDIfSet()
	if !ok {
		return nil // no chunks arrived; nothing to finalise
	}

	parts := object.S3.PartsSnapshot()
	completed := make([]types.CompletedPart, 0, len(parts))
	for num, etag := range parts {
		completed = append(completed, types.CompletedPart{PartNumber: aws.Int32(num), ETag: aws.String(etag)})
	}
	sort.Slice(completed, func(i, j int) bool {
		return aws.ToInt32(completed[i].PartNumber) < aws.ToInt32(completed[j].PartNumber)
	})

	_, err := object.S3ClientFor(0).CompleteMultipartUpload(ctx, &s3.CompleteMultipartUploadInput{
		Bucket:          &object.S3.Bucket,
		Key:             &object.S3.Key,
		UploadId:        &uploadID,
		MultipartUpload: &types.CompletedMultipartUpload{Parts: completed},
	})
	if err != nil {
		return herrors.Wrap(herrors.KindS3, "completing multipart upload", err)
	}
	return nil
}

func abortS3(ctx context.Context, object fsobject.Object) {
	uploadID, ok := object.S3.UploadIDIfSet()
	if !ok {
		return
	}
	_, _ = object.S3ClientFor(0).AbortMultipartUpload(ctx, &s3.AbortMultipartUploadInput{
		Bucket:   &object.S3.Bucket,
		Key:      &object.S3.Key,
		UploadId: &uploadID,
	})
}
