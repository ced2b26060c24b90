package ports

import "io"

// Sink is where a compression session delivers compressed bytes. It is
// the plain io.Writer contract with one point sharpened: a Write that
// returns n < len(p) with a nil error is treated as fatal by the
// session (domain.ErrShortWrite). No partial-write retry is attempted;
// a sink either takes everything it is given or fails.
//
// The sink is borrowed from the caller and must outlive the session.
type Sink = io.Writer

// Source is where a decompression session obtains compressed bytes.
// Short reads are fine and do not imply end-of-stream; a read that
// returns (0, nil) during body decompression is simply retried. Only
// io.EOF ends the byte supply, and even then the engine's own
// stream-end signal is what ends the session.
//
// The source is borrowed from the caller and must outlive the session.
type Source = io.Reader

// ByteSource is the buffered view a decompression session exposes over
// its Source. ReadByte matters beyond convenience: handed an
// io.ByteReader, the DEFLATE engine reads exactly the bytes the stream
// needs, so the gzip trailer that follows the body stays available in
// the session's scratch buffer instead of disappearing into an engine
// buffer.
type ByteSource interface {
	io.Reader
	io.ByteReader
}
