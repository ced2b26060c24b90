package ports

// The session services drive the DEFLATE engine exclusively through the
// interfaces in this file. The engine is the only native-algorithm
// dependency of the codec; keeping it behind this seam means no session
// ever sees its internal representation, only step results.

// Directive tells a Deflater step how to treat buffered state.
type Directive int

const (
	// DirectiveProcess compresses available input without flushing.
	// The engine is free to hold bytes back until a block boundary.
	DirectiveProcess Directive = iota

	// DirectiveFinish tells the engine no more input will arrive: emit
	// the final block and drain all internal state.
	DirectiveFinish
)

// Status is the engine's verdict after a step. Any other condition is
// reported through the step's error return.
type Status int

const (
	// StatusOK means the step succeeded and the stream continues.
	StatusOK Status = iota

	// StatusStreamEnd means the engine has emitted the logical end of
	// the stream: all input consumed, all output produced. This signal,
	// not byte counting, is authoritative for end-of-stream.
	StatusStreamEnd
)

// Deflater is the compression half of the block engine. A session calls
// Step repeatedly, handing it a slice of pending input and a bounded
// output slice, and writes whatever was produced before stepping again.
//
// Implementations are not safe for concurrent use.
type Deflater interface {
	// Step consumes up to len(in) input bytes and produces up to
	// len(out) compressed bytes. consumed and produced report how much
	// of each slice was used. After a DirectiveFinish step the caller
	// must keep stepping (with empty input) until StatusStreamEnd.
	Step(in, out []byte, directive Directive) (consumed, produced int, status Status, err error)

	// Reset discards all state so the Deflater can compress a new
	// stream at the same level.
	Reset() error

	// Close releases the engine. The Deflater is unusable afterwards.
	Close() error
}

// Inflater is the decompression half of the block engine. Unlike the
// Deflater it is pull-shaped: the engine reads compressed bytes from
// the source view it was constructed over, precisely enough to satisfy
// each Read, so bytes past the logical stream end stay in the caller's
// buffer.
//
// Read reports io.EOF exactly once the engine signals logical stream
// end; every other engine condition surfaces as a non-EOF error.
type Inflater interface {
	// Read decompresses up to len(out) bytes.
	Read(out []byte) (produced int, err error)

	// Close releases the engine.
	Close() error
}
