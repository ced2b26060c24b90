package decompressor

import (
	"github.com/iamNilotpal/gzstream/internal/core/ports"
)

// bufferedSource is the session's fixed-capacity staging buffer over
// the caller's source, tracked with two explicit cursors (offset and
// end of valid bytes) instead of raw pointer arithmetic. Both the
// framing parser and the engine read through it, so bytes the engine
// doesn't consume (the gzip trailer in particular) remain available
// to the session.
type bufferedSource struct {
	src ports.Source
	buf []byte
	off int // next unread byte in buf
	end int // end of valid bytes in buf
}

func newBufferedSource(src ports.Source, capacity int) *bufferedSource {
	return &bufferedSource{src: src, buf: make([]byte, capacity)}
}

// fill loads the next chunk from the source once the window is empty.
// Short reads are fine; a read of zero bytes with a nil error is
// retried, since only an error ends the byte supply.
func (b *bufferedSource) fill() error {
	if b.off < b.end {
		return nil
	}
	for {
		n, err := b.src.Read(b.buf)
		if n > 0 {
			b.off, b.end = 0, n
			return nil
		}
		if err != nil {
			return err
		}
	}
}

// Read implements io.Reader. It returns whatever the window holds,
// refilling at most once, so a single call never blocks for more than
// one source read.
func (b *bufferedSource) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	if err := b.fill(); err != nil {
		return 0, err
	}

	n := copy(p, b.buf[b.off:b.end])
	b.off += n
	return n, nil
}

// ReadByte implements io.ByteReader.
func (b *bufferedSource) ReadByte() (byte, error) {
	if err := b.fill(); err != nil {
		return 0, err
	}

	c := b.buf[b.off]
	b.off++
	return c, nil
}

var _ ports.ByteSource = (*bufferedSource)(nil)
