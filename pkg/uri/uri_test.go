package uri

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hikyaku/pkg/herrors"
)

func TestParse_S3WithPath(t *testing.T) {
	p, err := Parse("s3://bkt/a/b.txt")
	require.NoError(t, err)
	assert.Equal(t, SchemeS3, p.Scheme)
	assert.Equal(t, "bkt", p.Namespace)
	assert.Equal(t, "a/b.txt", p.Path)
}

func TestParse_S3BucketOnly(t *testing.T) {
	p, err := Parse("s3://bkt")
	require.NoError(t, err)
	assert.Equal(t, "bkt", p.Namespace)
	assert.Equal(t, "", p.Path)
}

func TestParse_FileQuadSlash(t *testing.T) {
	_, err := Parse("file:////")
	require.Error(t, err)
	assert.Equal(t, herrors.KindInvalidArgument, herrors.KindOf(err))
}

func TestParse_UnknownPrefix(t *testing.T) {
	_, err := Parse("ftp://host/path")
	require.Error(t, err)
	assert.Equal(t, herrors.KindInvalidArgument, herrors.KindOf(err))
}

func TestParse_NoNamespace(t *testing.T) {
	p, err := Parse("file:///test/test1/test2")
	require.NoError(t, err)
	assert.Equal(t, "", p.Namespace)
	assert.Equal(t, "test/test1/test2", p.Path)

	p, err = Parse("gd://test1/test2/")
	require.NoError(t, err)
	assert.Equal(t, "", p.Namespace)
	assert.Equal(t, "test1/test2", p.Path)
}

func TestParse_WithNamespaceTrailingSlash(t *testing.T) {
	p, err := Parse("s3://test/test1/test2/")
	require.NoError(t, err)
	assert.Equal(t, "test", p.Namespace)
	assert.Equal(t, "test1/test2", p.Path)

	p, err = Parse("gds:///test_gd/test1/test2")
	require.NoError(t, err)
	assert.Equal(t, "test_gd", p.Namespace)
	assert.Equal(t, "test1/test2", p.Path)
}

func TestParse_AmbiguousDoubleSlash(t *testing.T) {
	_, err := Parse("file:///test/test1//test2/")
	require.Error(t, err)
	assert.Equal(t, herrors.KindInvalidArgument, herrors.KindOf(err))

	_, err = Parse("s3:///test//test1/test2")
	require.Error(t, err)
	assert.Equal(t, herrors.KindInvalidArgument, herrors.KindOf(err))
}

func TestParse_MissingNamespace(t *testing.T) {
	_, err := Parse("s3:///")
	require.Error(t, err)
	assert.Equal(t, herrors.KindInvalidArgument, herrors.KindOf(err))
}

func TestParse_Totality(t *testing.T) {
	inputs := []string{
		"file://a/b/c",
		"s3://bucket/a/b",
		"gd://x/y",
		"gds://drive/x/y",
		"file://",
		"s3://bucket",
	}
	for _, in := range inputs {
		_, err := Parse(in)
		assert.NoErrorf(t, err, "expected %q to parse", in)
	}
}

func TestSplitSegments(t *testing.T) {
	segs, err := SplitSegments("a/b/c")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, segs)

	_, err = SplitSegments("a/../b")
	require.Error(t, err)

	_, err = SplitSegments("a/./b")
	require.Error(t, err)

	segs, err = SplitSegments("")
	require.NoError(t, err)
	assert.Nil(t, segs)
}
