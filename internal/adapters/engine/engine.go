// Package engine adapts the klauspost/compress DEFLATE implementation
// to the narrow block-engine seam the sessions are written against
// (ports.Deflater / ports.Inflater). It is the only package that
// imports the compression library; swapping the implementation means
// touching nothing outside this directory.
//
// Mode selects the stream dressing the engine itself provides: raw mode
// uses the zlib wrapper (2-byte header, Adler-32 trailer), gzip mode
// uses an undressed DEFLATE body because the session adds gzip framing
// around it.
package engine

import "io"

// writerEngine is the surface shared by the flate and zlib writers.
type writerEngine interface {
	io.WriteCloser
	Reset(io.Writer)
}
