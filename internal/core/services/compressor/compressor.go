// Package compressor implements the compression session: it adapts a
// caller-supplied sink into an incremental DEFLATE or gzip stream,
// staging engine output through one fixed-capacity scratch buffer so
// payloads of any size compress without being held in memory.
package compressor

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/iamNilotpal/gzstream/internal/adapters/checksum"
	"github.com/iamNilotpal/gzstream/internal/adapters/engine"
	"github.com/iamNilotpal/gzstream/internal/core/domain"
	"github.com/iamNilotpal/gzstream/internal/core/frame"
	"github.com/iamNilotpal/gzstream/internal/core/ports"
	"github.com/iamNilotpal/gzstream/pkg/logger"
)

// Compressor is a single-stream compression session bound to one sink.
// Feed hands it uncompressed bytes in chunks of any size; Finish flushes
// the engine and, in gzip mode, appends the CRC-32 + length trailer.
// Everything written to the sink is final; nothing is buffered past a
// returned call except what the engine holds for the next block.
//
// A Compressor is not safe for concurrent use: every call mutates the
// engine handle and the scratch buffer in place.
type Compressor struct {
	// Collaborators. The sink is borrowed from the caller; the engine
	// and checksum accumulator are owned and released on Close.
	sink   ports.Sink
	engine ports.Deflater
	crc    ports.Checksum // gzip mode only

	opts    *domain.Options
	log     *zap.SugaredLogger
	scratch []byte // fixed staging buffer, reused by every call

	// Trailer accounting and lifecycle state.
	size       uint32 // uncompressed bytes fed, mod 2^32
	compressed uint64 // bytes delivered to the sink
	finished   bool   // Finish has run; Feed/Finish are now errors
	closed     bool   // engine released
}

// New creates a compression session writing to sink. In gzip mode the
// 10-byte header is written to the sink before New returns; a sink
// failure here surfaces immediately and the engine is released.
//
// A nil opts uses defaults: raw mode, default level, 2048-byte scratch
// buffer.
func New(sink ports.Sink, opts *domain.Options) (*Compressor, error) {
	opts = domain.PrepareDefaults(opts)
	if err := domain.Validate(opts); err != nil {
		return nil, err
	}

	eng, err := engine.NewDeflater(opts.Mode, opts.Level)
	if err != nil {
		return nil, err
	}

	log := opts.Logger
	if log == nil {
		log = logger.NewNop()
	}

	c := &Compressor{
		sink:    sink,
		engine:  eng,
		opts:    opts,
		log:     log,
		scratch: make([]byte, opts.BufferSize),
	}

	if opts.Mode == domain.ModeGzip {
		c.crc = checksum.NewCRC32IEEE()
		if err := c.write(frame.Header()); err != nil {
			_ = eng.Close()
			return nil, err
		}
	}

	c.log.Debugw("compression session created",
		"mode", opts.Mode, "level", opts.Level, "bufferSize", opts.BufferSize)
	return c, nil
}

// Feed compresses p. The call returns once the engine has consumed all
// of p; compressed output produced along the way is written to the sink
// one scratch buffer at a time. Feeding a finished session fails with
// domain.ErrFinished.
func (c *Compressor) Feed(p []byte) error {
	if c.finished {
		return domain.ErrFinished
	}
	if len(p) == 0 {
		return nil
	}

	// Trailer accounting runs over the uncompressed bytes, before the
	// engine sees them.
	if c.opts.Mode == domain.ModeGzip {
		c.crc.Update(p)
		c.size += uint32(len(p))
	}

	consumed := 0
	for {
		n, produced, _, err := c.engine.Step(p[consumed:], c.scratch, ports.DirectiveProcess)
		if err != nil {
			return err
		}
		consumed += n

		if produced > 0 {
			if err := c.write(c.scratch[:produced]); err != nil {
				return err
			}
		}

		// A full scratch buffer means the engine may have more output
		// pending even with no input left.
		if consumed == len(p) && produced < len(c.scratch) {
			return nil
		}
	}
}

// Write implements io.Writer over Feed, so a Compressor can be the
// destination of io.Copy.
func (c *Compressor) Write(p []byte) (int, error) {
	if err := c.Feed(p); err != nil {
		return 0, err
	}
	return len(p), nil
}

// Finish tells the engine no more input will arrive, drains everything
// it still holds to the sink and, in gzip mode, appends the trailer.
// It must be called exactly once; a second Finish fails with
// domain.ErrFinished.
func (c *Compressor) Finish() error {
	if c.finished {
		return domain.ErrFinished
	}

	for {
		_, produced, status, err := c.engine.Step(nil, c.scratch, ports.DirectiveFinish)
		if err != nil {
			return err
		}
		if produced > 0 {
			if err := c.write(c.scratch[:produced]); err != nil {
				return err
			}
		}
		if status == ports.StatusStreamEnd {
			break
		}
	}

	if c.opts.Mode == domain.ModeGzip {
		if err := c.write(frame.Trailer(c.crc.Sum32(), c.size)); err != nil {
			return err
		}
	}

	c.finished = true
	c.log.Debugw("compression session finished",
		"uncompressedBytes", c.size, "compressedBytes", c.compressed)
	return nil
}

// Close releases the engine. It runs on every exit path, whether or not
// Finish succeeded, and reports domain.ErrNotFinalized when the session
// is being discarded without Finish: the compressed stream is
// incomplete in that case.
func (c *Compressor) Close() error {
	if c.closed {
		return nil
	}
	c.closed = true

	err := c.engine.Close()
	if !c.finished {
		return domain.ErrNotFinalized
	}
	return err
}

// write delivers p to the sink in full. The sink contract admits no
// partial success: a short count with a nil error is fatal.
func (c *Compressor) write(p []byte) error {
	n, err := c.sink.Write(p)
	if err != nil {
		return fmt.Errorf("gzstream: write to sink: %w", err)
	}
	if n < len(p) {
		return domain.ErrShortWrite
	}

	c.compressed += uint64(n)
	return nil
}
