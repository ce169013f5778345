package chunk

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlan_PartitionsContiguously(t *testing.T) {
	sizes := []int64{1, 100, 1024, 8*1024*1024 - 1, 8 * 1024 * 1024, 8*1024*1024 + 1, 10_000_000}
	chunkSizes := []int64{1, 1024, 8 * 1024 * 1024}

	for _, size := range sizes {
		for _, cs := range chunkSizes {
			ranges := Plan(size, cs)
			require.NotEmpty(t, ranges)

			lastCount := 0
			var cursor int64
			for i, r := range ranges {
				assert.Equal(t, cursor, r.Start, "size=%d chunk=%d idx=%d", size, cs, i)
				assert.LessOrEqual(t, r.Len(), cs)
				if r.IsLast {
					lastCount++
				} else {
					assert.Equal(t, cs, r.Len())
				}
				cursor = r.End + 1
			}
			assert.Equal(t, size, cursor)
			assert.Equal(t, 1, lastCount, "size=%d chunk=%d should have exactly one last chunk", size, cs)
		}
	}
}

func TestPlan_10MBExampleFromSpec(t *testing.T) {
	ranges := Plan(10_000_000, 1_048_576)
	require.Len(t, ranges, 10)
	last := ranges[9]
	assert.True(t, last.IsLast)
	assert.Equal(t, int64(9*1_048_576), last.Start)
	assert.Equal(t, int64(10_000_000-1), last.End)
	assert.Equal(t, int64(10_000_000-9*1_048_576), last.Len())
}
