package pool

import "sync"

// BufferPool reuses fixed-size byte buffers across one transfer's chunk
// pipeline. Every chunk but the last reads or writes exactly the
// transfer's chunk size, so a single pool sized to that chunk size
// serves the whole plan instead of allocating fresh per chunk; the
// download side hands a buffer back via ChunkData.Release once the
// upload side is done with it.
type BufferPool struct {
	pool sync.Pool
	size int
}

// NewBufferPool creates a pool of buffers sized to bufferSize.
func NewBufferPool(bufferSize int) *BufferPool {
	return &BufferPool{
		size: bufferSize,
		pool: sync.Pool{
			New: func() interface{} {
				return make([]byte, bufferSize)
			},
		},
	}
}

// Get retrieves a full-capacity buffer from the pool. Callers reslice
// it down to the actual chunk length (buf[:n]) for a short final
// chunk; that preserves cap(buf), so a later Put still passes the
// capacity check below.
func (bp *BufferPool) Get() []byte {
	buf := bp.pool.Get().([]byte)
	return buf[:bp.size]
}

// Put returns a buffer to the pool. A buffer with the wrong capacity —
// one that didn't come from this pool — is dropped rather than kept,
// since accepting it would hand out mismatched backing storage on a
// later Get.
func (bp *BufferPool) Put(buf []byte) {
	if buf == nil || cap(buf) != bp.size {
		return
	}
	bp.pool.Put(buf[:cap(buf)])
}
