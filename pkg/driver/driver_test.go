package driver

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hikyaku/pkg/builder"
	"hikyaku/pkg/fsobject"
	"hikyaku/pkg/progress"
)

func localObject(t *testing.T, path string, chunkSize int64) fsobject.Object {
	t.Helper()
	b, err := builder.NewLocal().SetFilePath("file://" + path)
	require.NoError(t, err)
	obj, err := b.Concurrency(4).ChunkSize(chunkSize).Build(context.Background())
	require.NoError(t, err)
	return obj
}

func TestTransfer_LocalToLocal(t *testing.T) {
	dir := t.TempDir()
	srcPath := filepath.Join(dir, "src.bin")
	dstPath := filepath.Join(dir, "dst.bin")

	payload := make([]byte, 3*1024+17)
	for i := range payload {
		payload[i] = byte(i % 251)
	}
	require.NoError(t, os.WriteFile(srcPath, payload, 0o644))

	src := localObject(t, srcPath, 1024)
	dst := localObject(t, dstPath, 1024)

	err := Transfer(context.Background(), src, dst)
	require.NoError(t, err)

	got, err := os.ReadFile(dstPath)
	require.NoError(t, err)
	assert.Equal(t, payload, got)
}

func TestTransferWithProgress_ReportsCompleteStats(t *testing.T) {
	dir := t.TempDir()
	srcPath := filepath.Join(dir, "src.bin")
	dstPath := filepath.Join(dir, "dst.bin")

	payload := make([]byte, 5000)
	require.NoError(t, os.WriteFile(srcPath, payload, 0o644))

	src := localObject(t, srcPath, 1000)
	dst := localObject(t, dstPath, 1000)

	tracker := progress.NewTracker(5, int64(len(payload)))
	err := TransferWithProgress(context.Background(), src, dst, tracker)
	require.NoError(t, err)

	stats := tracker.GetStats()
	assert.Equal(t, int64(5), stats.CopiedChunks)
	assert.Equal(t, int64(0), stats.FailedChunks)
	assert.InDelta(t, 100.0, stats.ProgressPct, 0.01)
}

func TestTransfer_SourceMissingFailsFast(t *testing.T) {
	dir := t.TempDir()
	src := localObject(t, filepath.Join(dir, "does-not-exist.bin"), 1024)
	dst := localObject(t, filepath.Join(dir, "dst.bin"), 1024)

	err := Transfer(context.Background(), src, dst)
	assert.Error(t, err)
}
