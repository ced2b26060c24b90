// Package pool provides reusable byte buffers for the one-shot
// compression helpers, so repeated Compress/Decompress calls don't
// reallocate their assembly buffers.
package pool

import (
	"bytes"
	"sync"
)

// BufferPool manages a pool of byte buffers sized for a typical
// compressed payload.
type BufferPool struct {
	size int       // Initial capacity of each buffer.
	pool sync.Pool // Thread-safe pool of buffers.
}

// NewBufferPool creates a pool whose buffers start at the given
// capacity in bytes.
func NewBufferPool(size int) *BufferPool {
	return &BufferPool{
		size: size,
		pool: sync.Pool{
			New: func() any {
				return bytes.NewBuffer(make([]byte, 0, size))
			},
		},
	}
}

// Get retrieves a clean buffer from the pool.
func (bp *BufferPool) Get() *bytes.Buffer {
	buf := bp.pool.Get().(*bytes.Buffer)
	buf.Reset()
	return buf
}

// Put returns a buffer to the pool. Buffers that grew far beyond the
// pool's size are dropped instead of pinned.
func (bp *BufferPool) Put(buf *bytes.Buffer) {
	if buf.Cap() > bp.size*2 {
		return
	}

	buf.Reset()
	bp.pool.Put(buf)
}
