package domain

import (
	"errors"
	"fmt"
)

// ErrorCategory classifies failures surfaced by a session. It separates
// engine faults from framing faults and from I/O faults against the
// caller-supplied sink/source, so callers can decide which are worth
// retrying with a fresh session.
type ErrorCategory int

const (
	// ErrorEngine indicates the DEFLATE engine reported an unexpected
	// condition: a bad compression level at construction, corrupt input
	// during decompression, or an internal failure mid-stream.
	ErrorEngine ErrorCategory = iota + 1

	// ErrorFraming indicates malformed or truncated gzip framing:
	// header magic/method/reserved-bit violations, short header reads,
	// or a trailer that is missing or disagrees with the stream.
	ErrorFraming

	// ErrorIO indicates the caller-supplied sink or source failed,
	// including a sink that accepted fewer bytes than requested.
	ErrorIO

	// ErrorLifecycle indicates a session was used outside its legal
	// lifecycle, such as feeding data after Finish.
	ErrorLifecycle
)

// String returns the category name for logging and error text.
func (c ErrorCategory) String() string {
	switch c {
	case ErrorEngine:
		return "engine"
	case ErrorFraming:
		return "framing"
	case ErrorIO:
		return "io"
	case ErrorLifecycle:
		return "lifecycle"
	default:
		return "unknown"
	}
}

// Sentinel errors for conditions that carry no extra context. Match with
// errors.Is.
var (
	// ErrBadHeader reports a gzip header whose magic bytes, compression
	// method or reserved flag bits are invalid.
	ErrBadHeader = errors.New("gzstream: malformed gzip header")

	// ErrTruncatedHeader reports that the source ran out of bytes while
	// the gzip header (or one of its optional fields) was being read.
	ErrTruncatedHeader = errors.New("gzstream: truncated gzip header")

	// ErrTruncatedTrailer reports that the source ended before the
	// 8-byte gzip trailer was fully read.
	ErrTruncatedTrailer = errors.New("gzstream: truncated gzip trailer")

	// ErrChecksumMismatch reports that the trailer CRC-32 disagrees with
	// the checksum of the decompressed bytes.
	ErrChecksumMismatch = errors.New("gzstream: gzip trailer CRC-32 mismatch")

	// ErrLengthMismatch reports that the trailer length field disagrees
	// with the number of decompressed bytes (mod 2^32).
	ErrLengthMismatch = errors.New("gzstream: gzip trailer length mismatch")

	// ErrShortWrite reports a sink that accepted fewer bytes than it was
	// given without returning an error. No retry is attempted.
	ErrShortWrite = errors.New("gzstream: sink accepted short write")

	// ErrFinished reports Feed or Finish on a compressor that has
	// already been finalized.
	ErrFinished = errors.New("gzstream: session already finished")

	// ErrNotFinalized reports Close on a compressor whose Finish was
	// never called. The engine is still released; the compressed stream
	// is incomplete.
	ErrNotFinalized = errors.New("gzstream: session closed without finish")
)

// EngineError wraps a failure reported by the DEFLATE engine together
// with the operation that was being driven.
type EngineError struct {
	// Op is the engine operation: "init", "compress" or "decompress".
	Op string

	// Err is the engine's own error.
	Err error
}

// Error implements the error interface.
func (e *EngineError) Error() string {
	return fmt.Sprintf("gzstream: engine %s: %v", e.Op, e.Err)
}

// Unwrap exposes the engine's error to errors.Is/As.
func (e *EngineError) Unwrap() error { return e.Err }

// NewEngineError wraps err as an engine failure during op.
func NewEngineError(op string, err error) *EngineError {
	return &EngineError{Op: op, Err: err}
}

// IsEngineError reports whether err is (or wraps) an EngineError.
func IsEngineError(err error) bool {
	var ee *EngineError
	return errors.As(err, &ee)
}

// Category maps err to its ErrorCategory, or zero when err does not
// belong to this package's taxonomy.
func Category(err error) ErrorCategory {
	switch {
	case IsEngineError(err):
		return ErrorEngine
	case errors.Is(err, ErrBadHeader),
		errors.Is(err, ErrTruncatedHeader),
		errors.Is(err, ErrTruncatedTrailer),
		errors.Is(err, ErrChecksumMismatch),
		errors.Is(err, ErrLengthMismatch):
		return ErrorFraming
	case errors.Is(err, ErrShortWrite):
		return ErrorIO
	case errors.Is(err, ErrFinished), errors.Is(err, ErrNotFinalized):
		return ErrorLifecycle
	default:
		return 0
	}
}
