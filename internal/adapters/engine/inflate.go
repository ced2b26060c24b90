package engine

import (
	"errors"
	"io"

	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/zlib"

	"github.com/iamNilotpal/gzstream/internal/core/domain"
	"github.com/iamNilotpal/gzstream/internal/core/ports"
)

// inflater wraps a DEFLATE reader bound to the session's buffered
// source view. io.EOF passes through untouched as the logical
// end-of-stream signal; every other failure is wrapped as an engine
// error.
type inflater struct {
	rc io.ReadCloser
}

// NewInflater initializes a decompression engine over src. In raw mode
// the zlib header is read and validated here, which is why sessions
// construct the engine lazily on the first pull.
func NewInflater(mode domain.Mode, src ports.ByteSource) (ports.Inflater, error) {
	switch mode {
	case domain.ModeGzip:
		return &inflater{rc: flate.NewReader(src)}, nil
	default:
		rc, err := zlib.NewReader(src)
		if err != nil {
			return nil, domain.NewEngineError("init", err)
		}
		return &inflater{rc: rc}, nil
	}
}

// Read implements ports.Inflater.
func (i *inflater) Read(out []byte) (int, error) {
	n, err := i.rc.Read(out)
	if err != nil && !errors.Is(err, io.EOF) {
		return n, domain.NewEngineError("decompress", err)
	}
	return n, err
}

// Close implements ports.Inflater.
func (i *inflater) Close() error {
	return i.rc.Close()
}
