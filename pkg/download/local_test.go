package download

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hikyaku/pkg/fsobject"
)

func TestRun_LocalEmitsEveryChunkExactlyOnce(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "src.bin")

	payload := make([]byte, 2500)
	for i := range payload {
		payload[i] = byte(i)
	}
	require.NoError(t, os.WriteFile(path, payload, 0o644))

	size := int64(len(payload))
	object := fsobject.Object{
		Kind:        fsobject.KindLocal,
		FileSize:    &size,
		ChunkSize:   1000,
		Concurrency: 3,
		Local:       fsobject.NewLocalData(path, false),
	}

	out := make(chan fsobject.ChunkData, 10)
	err := Run(context.Background(), object, out)
	close(out)
	require.NoError(t, err)

	seen := make(map[uint64][]byte)
	var lastCount int
	for cd := range out {
		seen[cd.OffsetIndex] = cd.Bytes
		if cd.IsLast {
			lastCount++
		}
	}

	require.Len(t, seen, 3)
	assert.Equal(t, 1, lastCount)
	assert.Equal(t, payload[0:1000], seen[0])
	assert.Equal(t, payload[1000:2000], seen[1])
	assert.Equal(t, payload[2000:2500], seen[2])
}

func TestRun_NotDownloadableReturnsError(t *testing.T) {
	object := fsobject.Object{
		Kind:      fsobject.KindLocal,
		ChunkSize: 1000,
		Local:     fsobject.NewLocalData("/does/not/matter", false),
	}
	out := make(chan fsobject.ChunkData, 1)
	err := Run(context.Background(), object, out)
	assert.Error(t, err)
}
