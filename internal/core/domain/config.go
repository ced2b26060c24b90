package domain

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/iamNilotpal/gzstream/pkg/errors"
)

// Mode selects the framing that wraps the DEFLATE body of a stream.
type Mode string

const (
	// ModeRaw produces/consumes a zlib-wrapped DEFLATE stream with no
	// additional framing. This is the default, matching plain deflate
	// usage where the peer is another zlib stream.
	ModeRaw Mode = "raw"

	// ModeGzip produces/consumes a single-member gzip stream: a 10-byte
	// header, a raw DEFLATE body and an 8-byte CRC-32 + length trailer.
	ModeGzip Mode = "gzip"
)

// Compression levels accepted by the DEFLATE engine. The range mirrors
// the engine's own constants so callers don't have to import it.
const (
	// LevelDefault lets the engine pick its balanced default.
	LevelDefault = -1

	// LevelHuffmanOnly disables Lempel-Ziv matching and only applies
	// Huffman entropy coding.
	LevelHuffmanOnly = -2

	// LevelFastest optimizes for speed with minimal compression.
	LevelFastest = 1

	// LevelBest optimizes for size regardless of CPU cost.
	LevelBest = 9
)

// DefaultBufferSize is the capacity of the scratch buffer each session
// stages bytes through. 2048 keeps sessions usable in memory-constrained
// environments while amortizing engine and I/O calls.
const DefaultBufferSize = 2048

// MinBufferSize bounds how small the scratch buffer may be configured.
// Below this the gzip header no longer fits in a single refill.
const MinBufferSize = 64

// Options configures a compression or decompression session.
type Options struct {
	// Mode selects raw (zlib-wrapped) or gzip framing.
	// Defaults to ModeRaw.
	Mode Mode

	// Level is the DEFLATE compression level, between LevelHuffmanOnly (-2)
	// and LevelBest (9). Ignored by decompression sessions.
	// The zero value is replaced with LevelDefault (-1).
	Level int

	// BufferSize is the scratch buffer capacity in bytes. The session
	// allocates it once at construction; no per-call allocation occurs.
	// Defaults to DefaultBufferSize.
	BufferSize int

	// DisableTrailerCheck stops a gzip decompression session from
	// checking the stream trailer's CRC-32 and length against the bytes
	// it actually produced, restoring the lenient behavior of accepting
	// any trailer. Ignored in raw mode. Verification is on by default.
	DisableTrailerCheck bool

	// Logger receives debug-level session lifecycle events.
	// Defaults to a nop logger.
	Logger *zap.SugaredLogger
}

// DefaultOptions returns the options every session starts from:
// raw mode, default level, 2048-byte scratch buffer, trailer
// verification on.
func DefaultOptions() *Options {
	return &Options{
		Mode:       ModeRaw,
		Level:      LevelDefault,
		BufferSize: DefaultBufferSize,
	}
}

// PrepareDefaults fills the zero values of opts with defaults and
// returns it. A nil opts yields DefaultOptions.
func PrepareDefaults(opts *Options) *Options {
	if opts == nil {
		return DefaultOptions()
	}

	if opts.Mode == "" {
		opts.Mode = ModeRaw
	}
	if opts.Level == 0 {
		opts.Level = LevelDefault
	}
	if opts.BufferSize == 0 {
		opts.BufferSize = DefaultBufferSize
	}

	return opts
}

// Validate checks that opts are usable for constructing a session.
// Level errors are reported by the engine itself at construction; this
// only validates what the sessions own.
func Validate(opts *Options) error {
	switch opts.Mode {
	case ModeRaw, ModeGzip:
	default:
		return errors.NewValidationError(
			"mode", opts.Mode, fmt.Errorf("mode must be %q or %q", ModeRaw, ModeGzip),
		)
	}

	if opts.BufferSize < MinBufferSize {
		return errors.NewValidationError(
			"bufferSize", opts.BufferSize, fmt.Errorf("buffer size must be at least %d bytes", MinBufferSize),
		)
	}

	return nil
}
