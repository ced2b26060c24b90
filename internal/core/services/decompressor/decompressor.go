// Package decompressor implements the decompression session: it adapts
// a caller-supplied source of DEFLATE or gzip bytes into incremental
// pulls of decompressed data, staging source bytes through one
// fixed-capacity scratch buffer.
package decompressor

import (
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/iamNilotpal/gzstream/internal/adapters/checksum"
	"github.com/iamNilotpal/gzstream/internal/adapters/engine"
	"github.com/iamNilotpal/gzstream/internal/core/domain"
	"github.com/iamNilotpal/gzstream/internal/core/frame"
	"github.com/iamNilotpal/gzstream/internal/core/ports"
	"github.com/iamNilotpal/gzstream/pkg/logger"
)

// Decompressor is a single-stream decompression session bound to one
// source. No I/O happens at construction: the gzip header is parsed
// lazily on the first read, exactly once. End-of-stream is whatever the
// engine says it is, never a byte count, and once reached,
// every further read reports it without touching the source again.
//
// A Decompressor is not safe for concurrent use.
type Decompressor struct {
	src    *bufferedSource
	engine ports.Inflater // nil until the first read
	crc    ports.Checksum // gzip trailer verification only

	opts *domain.Options
	log  *zap.SugaredLogger

	size    uint32 // decompressed bytes produced, mod 2^32
	started bool   // header consumed, engine constructed
	ended   bool   // engine signaled logical stream end
	endErr  error  // sticky trailer-verification failure
	closed  bool
}

// New creates a decompression session reading from source. A nil opts
// uses defaults: raw mode, 2048-byte scratch buffer, trailer
// verification on.
func New(source ports.Source, opts *domain.Options) (*Decompressor, error) {
	opts = domain.PrepareDefaults(opts)
	if err := domain.Validate(opts); err != nil {
		return nil, err
	}

	log := opts.Logger
	if log == nil {
		log = logger.NewNop()
	}

	d := &Decompressor{
		src:  newBufferedSource(source, opts.BufferSize),
		opts: opts,
		log:  log,
	}
	if opts.Mode == domain.ModeGzip && !opts.DisableTrailerCheck {
		d.crc = checksum.NewCRC32IEEE()
	}

	d.log.Debugw("decompression session created",
		"mode", opts.Mode, "bufferSize", opts.BufferSize, "verifyTrailer", !opts.DisableTrailerCheck)
	return d, nil
}

// Read implements io.Reader, decompressing up to len(p) bytes. At
// logical stream end it returns io.EOF (after any final bytes have
// been delivered) and keeps returning it on every later call.
func (d *Decompressor) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	if d.ended {
		if d.endErr != nil {
			return 0, d.endErr
		}
		return 0, io.EOF
	}

	if !d.started {
		if err := d.start(); err != nil {
			return 0, err
		}
	}

	for {
		n, err := d.engine.Read(p)
		if n > 0 {
			if d.crc != nil {
				d.crc.Update(p[:n])
			}
			d.size += uint32(n)

			// Deliver the bytes now; a simultaneous end signal is
			// re-reported on the next call.
			if errors.Is(err, io.EOF) {
				d.finish()
			}
			return n, nil
		}

		switch {
		case err == nil:
			// No progress yet; the engine needs another round of input.
			continue
		case errors.Is(err, io.EOF):
			d.finish()
			if d.endErr != nil {
				return 0, d.endErr
			}
			return 0, io.EOF
		default:
			return 0, err
		}
	}
}

// Pull decompresses and returns up to max bytes. A zero-length result
// after data has flowed is the canonical end-of-stream signal; callers
// must stop pulling. max <= 0 returns empty immediately.
func (d *Decompressor) Pull(max int) ([]byte, error) {
	if max <= 0 {
		return nil, nil
	}

	buf := make([]byte, max)
	n, err := d.Read(buf)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return buf[:0], nil
		}
		return nil, err
	}
	return buf[:n], nil
}

// Close releases the engine if one was ever constructed. It is safe on
// every exit path, including sessions that never pulled or that died
// mid-stream.
func (d *Decompressor) Close() error {
	if d.closed {
		return nil
	}
	d.closed = true
	d.ended = true

	if d.engine != nil {
		return d.engine.Close()
	}
	return nil
}

// start consumes the gzip header (gzip mode) and constructs the engine
// over the buffered source. Runs at most once, on the first read.
func (d *Decompressor) start() error {
	if d.opts.Mode == domain.ModeGzip {
		if err := frame.ParseHeader(d.src); err != nil {
			return err
		}
		d.log.Debugw("gzip header consumed")
	}

	eng, err := engine.NewInflater(d.opts.Mode, d.src)
	if err != nil {
		return err
	}

	d.engine = eng
	d.started = true
	return nil
}

// finish records the logical stream end and, when verifying, checks the
// gzip trailer against the bytes actually produced. A verification
// failure is sticky: it surfaces on this and every later read.
func (d *Decompressor) finish() {
	d.ended = true

	if d.crc != nil {
		crc, size, err := frame.ParseTrailer(d.src)
		switch {
		case err != nil:
			d.endErr = err
		case crc != d.crc.Sum32():
			d.endErr = fmt.Errorf("%w: stream %#08x, trailer %#08x",
				domain.ErrChecksumMismatch, d.crc.Sum32(), crc)
		case size != d.size:
			d.endErr = fmt.Errorf("%w: stream %d, trailer %d",
				domain.ErrLengthMismatch, d.size, size)
		}
	}

	d.log.Debugw("logical stream end", "decompressedBytes", d.size, "trailerError", d.endErr)
}
