// Package gzstream provides streaming DEFLATE compression and
// decompression sessions over caller-supplied sinks and sources, with
// two framings: a zlib-wrapped stream (raw mode) or a single-member
// gzip stream with hand-built header and CRC-32 trailer (gzip mode).
//
// A Compressor feeds arbitrary chunks through a fixed scratch buffer
// into its sink; a Decompressor pulls decompressed bytes back out the
// same way. Neither ever holds a whole payload in memory.
//
//	var buf bytes.Buffer
//
//	c, err := gzstream.NewCompressor(&buf, &gzstream.Options{Mode: gzstream.ModeGzip})
//	// err handling elided
//	_ = c.Feed([]byte("hello world"))
//	_ = c.Finish()
//	_ = c.Close()
//
//	d, _ := gzstream.NewDecompressor(&buf, &gzstream.Options{Mode: gzstream.ModeGzip})
//	defer d.Close()
//	chunk, _ := d.Pull(4096) // empty chunk means end of stream
package gzstream

import (
	"bytes"
	"errors"
	"io"

	"github.com/iamNilotpal/gzstream/internal/core/domain"
	"github.com/iamNilotpal/gzstream/internal/core/services/compressor"
	"github.com/iamNilotpal/gzstream/internal/core/services/decompressor"
	"github.com/iamNilotpal/gzstream/pkg/pool"
)

// Re-exported configuration surface. Options documents every knob.
type (
	Mode    = domain.Mode
	Options = domain.Options
)

// Sink is where compressed bytes go. It is the io.Writer contract with
// one point sharpened: a short write with a nil error is fatal to the
// session (ErrShortWrite); no partial-write retry is attempted.
type Sink = io.Writer

// Source is where compressed bytes come from. Short reads are fine and
// never imply end-of-stream; only the engine's own end signal finishes
// a session.
type Source = io.Reader

const (
	ModeRaw  = domain.ModeRaw
	ModeGzip = domain.ModeGzip

	LevelDefault     = domain.LevelDefault
	LevelHuffmanOnly = domain.LevelHuffmanOnly
	LevelFastest     = domain.LevelFastest
	LevelBest        = domain.LevelBest
)

// Re-exported error taxonomy; see the sentinels' own documentation.
var (
	ErrBadHeader        = domain.ErrBadHeader
	ErrTruncatedHeader  = domain.ErrTruncatedHeader
	ErrTruncatedTrailer = domain.ErrTruncatedTrailer
	ErrChecksumMismatch = domain.ErrChecksumMismatch
	ErrLengthMismatch   = domain.ErrLengthMismatch
	ErrShortWrite       = domain.ErrShortWrite
	ErrFinished         = domain.ErrFinished
	ErrNotFinalized     = domain.ErrNotFinalized
)

// Compressor is a streaming compression session; see the service
// package for the full contract of Feed, Finish, Write and Close.
type Compressor = compressor.Compressor

// Decompressor is a streaming decompression session; see the service
// package for the full contract of Pull, Read and Close.
type Decompressor = decompressor.Decompressor

// NewCompressor creates a compression session writing to sink. In gzip
// mode the header is written before it returns. A nil opts means raw
// mode at the default level.
func NewCompressor(sink Sink, opts *Options) (*Compressor, error) {
	return compressor.New(sink, opts)
}

// NewDecompressor creates a decompression session reading from source.
// No I/O happens until the first Pull or Read. A nil opts means raw
// mode with trailer verification left at its default.
func NewDecompressor(source Source, opts *Options) (*Decompressor, error) {
	return decompressor.New(source, opts)
}

// buffers serves the one-shot helpers, sized for small payloads and
// grown on demand.
var buffers = pool.NewBufferPool(domain.DefaultBufferSize)

// Compress is the one-shot convenience: it runs data through a full
// compression session and returns the framed stream.
func Compress(data []byte, opts *Options) ([]byte, error) {
	buf := buffers.Get()
	defer buffers.Put(buf)

	c, err := NewCompressor(buf, opts)
	if err != nil {
		return nil, err
	}
	defer c.Close()

	if err := c.Feed(data); err != nil {
		return nil, err
	}
	if err := c.Finish(); err != nil {
		return nil, err
	}

	return bytes.Clone(buf.Bytes()), nil
}

// Decompress is the one-shot inverse of Compress.
func Decompress(data []byte, opts *Options) ([]byte, error) {
	d, err := NewDecompressor(bytes.NewReader(data), opts)
	if err != nil {
		return nil, err
	}
	defer d.Close()

	out := buffers.Get()
	defer buffers.Put(out)

	chunk := make([]byte, domain.DefaultBufferSize)
	for {
		n, err := d.Read(chunk)
		if n > 0 {
			out.Write(chunk[:n])
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				return bytes.Clone(out.Bytes()), nil
			}
			return nil, err
		}
	}
}
