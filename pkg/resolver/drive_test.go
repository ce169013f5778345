package resolver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildQuery_NoParents(t *testing.T) {
	assert.Equal(t, "name = 'train.csv' and 'root' in parents", buildQuery("train.csv", nil))
}

func TestBuildQuery_MultipleParents(t *testing.T) {
	parents := []DriveFile{{ID: "a"}, {ID: "b"}}
	assert.Equal(t, "name = 'dir1' and ('a' in parents or 'b' in parents)", buildQuery("dir1", parents))
}

func TestUploadFilename(t *testing.T) {
	assert.Equal(t, "", UploadFilename(""))
	assert.Equal(t, "file.bin", UploadFilename("file.bin"))
	assert.Equal(t, "file.bin", UploadFilename("new_dir/new_sub/file.bin"))
}

func TestSplitPathSegments_RejectsDotSegments(t *testing.T) {
	_, err := splitPathSegments("a/../b")
	require.Error(t, err)
}

func TestSplitPathSegments_Empty(t *testing.T) {
	segs, err := splitPathSegments("")
	require.NoError(t, err)
	assert.Nil(t, segs)
}

func TestDriveFile_Unsupported(t *testing.T) {
	assert.True(t, DriveFile{Mime: "application/vnd.google-apps.document"}.Unsupported())
	assert.True(t, DriveFile{Mime: "application/vnd.google-apps.shortcut"}.Unsupported())
	assert.False(t, DriveFile{Mime: folderMime}.Unsupported())
	assert.False(t, DriveFile{Mime: "application/pdf"}.Unsupported())
}
