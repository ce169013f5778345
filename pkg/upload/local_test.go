package upload

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hikyaku/pkg/fsobject"
)

func TestRunWithProgress_LocalWritesEveryChunkAndReportsProgress(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "dst.bin")

	object := fsobject.Object{
		Kind:      fsobject.KindLocal,
		ChunkSize: 4,
		Local:     fsobject.NewLocalData(path, false),
	}

	chunks := []fsobject.ChunkData{
		{Bytes: []byte("abcd"), OffsetIndex: 0},
		{Bytes: []byte("efgh"), OffsetIndex: 1},
		{Bytes: []byte("ij"), OffsetIndex: 2, IsLast: true},
	}

	in := make(chan fsobject.ChunkData, len(chunks))
	for _, c := range chunks {
		in <- c
	}
	close(in)

	var reported int64
	var successes int
	onChunk := func(bytes int64, success bool) {
		reported += bytes
		if success {
			successes++
		}
	}

	err := RunWithProgress(context.Background(), object, in, onChunk)
	require.NoError(t, err)

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "abcdefghij", string(got))
	assert.EqualValues(t, 10, reported)
	assert.Equal(t, 3, successes)
}

func TestRunWithProgress_RejectsUndersizedNonLastChunk(t *testing.T) {
	dir := t.TempDir()
	object := fsobject.Object{
		Kind:      fsobject.KindLocal,
		ChunkSize: 4,
		Local:     fsobject.NewLocalData(filepath.Join(dir, "dst.bin"), false),
	}

	in := make(chan fsobject.ChunkData, 1)
	in <- fsobject.ChunkData{Bytes: []byte("ab"), OffsetIndex: 0, IsLast: false}
	close(in)

	err := RunWithProgress(context.Background(), object, in, nil)
	assert.Error(t, err)
}

func TestRunWithProgress_RejectsExistingLocalDestination(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "dst.bin")
	require.NoError(t, os.WriteFile(path, []byte("already here"), 0o644))
	size := int64(12)

	object := fsobject.Object{
		Kind:      fsobject.KindLocal,
		FileSize:  &size,
		ChunkSize: 4,
		Local:     fsobject.NewLocalData(path, false),
	}

	in := make(chan fsobject.ChunkData)
	close(in)

	err := RunWithProgress(context.Background(), object, in, nil)
	assert.Error(t, err)
}
