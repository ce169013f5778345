package builder

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hikyaku/pkg/credential"
	"hikyaku/pkg/herrors"
)

func TestLocal_SetFilePath_RejectsWrongScheme(t *testing.T) {
	_, err := NewLocal().SetFilePath("s3://bucket/key")
	require.Error(t, err)
	assert.Equal(t, herrors.KindInvalidArgument, herrors.KindOf(err))
}

func TestLocal_SetFilePath_AddsImplicitLeadingSlash(t *testing.T) {
	b, err := NewLocal().SetFilePath("file://tmp/out.bin")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/out.bin", b.path)
}

func TestS3_SetFilePath_RejectsWrongScheme(t *testing.T) {
	_, err := NewS3(credential.NewS3("id", "secret", "us-east-1")).SetFilePath("file:///tmp/x")
	require.Error(t, err)
	assert.Equal(t, herrors.KindInvalidArgument, herrors.KindOf(err))
}

func TestS3_SetFilePath_SplitsBucketAndKey(t *testing.T) {
	b, err := NewS3(credential.NewS3("id", "secret", "us-east-1")).SetFilePath("s3://bkt/a/b.txt")
	require.NoError(t, err)
	assert.Equal(t, "bkt", b.bucket)
	assert.Equal(t, "a/b.txt", b.key)
}

func TestDrive_SetFilePath_RejectsWrongScheme(t *testing.T) {
	_, err := NewDrive(credential.NewDrive("tok", "", time.Time{})).SetFilePath("s3://bkt/key")
	require.Error(t, err)
	assert.Equal(t, herrors.KindInvalidArgument, herrors.KindOf(err))
}

func TestBuild_NoInputFailsBuilder(t *testing.T) {
	_, _, _, err := Drive{}.resolve(nil, nil)
	require.Error(t, err)
	assert.Equal(t, herrors.KindBuilder, herrors.KindOf(err))
}
