package engine

import (
	"bytes"

	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/zlib"

	"github.com/iamNilotpal/gzstream/internal/core/domain"
	"github.com/iamNilotpal/gzstream/internal/core/ports"
)

// deflater drives a DEFLATE writer through the step interface. The
// writer emits into an internal staging buffer; each Step hands out at
// most len(out) of it, so the session's drain loop stays bounded by its
// scratch buffer no matter how much the writer flushed at once.
type deflater struct {
	w      writerEngine
	out    bytes.Buffer
	closed bool
}

// NewDeflater initializes a compression engine for the given mode and
// level. An out-of-range level fails with an "init" EngineError.
func NewDeflater(mode domain.Mode, level int) (ports.Deflater, error) {
	d := &deflater{}

	switch mode {
	case domain.ModeGzip:
		w, err := flate.NewWriter(&d.out, level)
		if err != nil {
			return nil, domain.NewEngineError("init", err)
		}
		d.w = w
	default:
		w, err := zlib.NewWriterLevel(&d.out, level)
		if err != nil {
			return nil, domain.NewEngineError("init", err)
		}
		d.w = w
	}

	return d, nil
}

// Step implements ports.Deflater. The writer accepts all of in (its
// error return is the only way input can go unconsumed), so consumed is
// len(in) on success; produced is bounded by len(out).
func (d *deflater) Step(in, out []byte, directive ports.Directive) (int, int, ports.Status, error) {
	var consumed int

	if len(in) > 0 {
		n, err := d.w.Write(in)
		consumed = n
		if err != nil {
			return consumed, 0, ports.StatusOK, domain.NewEngineError("compress", err)
		}
	}

	if directive == ports.DirectiveFinish && !d.closed {
		if err := d.w.Close(); err != nil {
			return consumed, 0, ports.StatusOK, domain.NewEngineError("compress", err)
		}
		d.closed = true
	}

	produced := copy(out, d.out.Bytes())
	d.out.Next(produced)

	status := ports.StatusOK
	if d.closed && d.out.Len() == 0 {
		status = ports.StatusStreamEnd
	}
	return consumed, produced, status, nil
}

// Reset implements ports.Deflater, readying the engine for a fresh
// stream at the same level.
func (d *deflater) Reset() error {
	d.out.Reset()
	d.w.Reset(&d.out)
	d.closed = false
	return nil
}

// Close implements ports.Deflater. Pending state is discarded.
func (d *deflater) Close() error {
	if d.closed {
		return nil
	}
	d.closed = true
	if err := d.w.Close(); err != nil {
		return domain.NewEngineError("compress", err)
	}
	return nil
}
