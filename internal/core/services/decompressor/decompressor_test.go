package decompressor

import (
	"bytes"
	"io"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zlib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/iamNilotpal/gzstream/internal/core/domain"
)

// panicSource fails the test if the session touches the source.
type panicSource struct{ t *testing.T }

func (s *panicSource) Read([]byte) (int, error) {
	s.t.Fatal("source read before first pull")
	return 0, nil
}

// stutterSource returns (0, nil) on every other read. Legal per the
// source contract: zero bytes does not mean end-of-stream.
type stutterSource struct {
	r       io.Reader
	stutter bool
}

func (s *stutterSource) Read(p []byte) (int, error) {
	s.stutter = !s.stutter
	if s.stutter {
		return 0, nil
	}
	return s.r.Read(p)
}

// trickleSource delivers at most one byte per read.
type trickleSource struct {
	r io.Reader
}

func (s *trickleSource) Read(p []byte) (int, error) {
	if len(p) > 1 {
		p = p[:1]
	}
	return s.r.Read(p)
}

// gzipStream builds a gzip member with optional header fields using an
// independent implementation.
func gzipStream(t *testing.T, payload []byte) []byte {
	t.Helper()

	var buf bytes.Buffer
	w := gzip.NewWriter(&buf)
	w.Name = "payload.bin"
	w.Comment = "test stream"
	w.Extra = []byte{0x01, 0x02, 0x03}
	_, err := w.Write(payload)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return buf.Bytes()
}

// zlibStream builds a raw-mode stream.
func zlibStream(t *testing.T, payload []byte) []byte {
	t.Helper()

	var buf bytes.Buffer
	w := zlib.NewWriter(&buf)
	_, err := w.Write(payload)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return buf.Bytes()
}

// drain pulls until the session signals end-of-stream.
func drain(t *testing.T, d *Decompressor, max int) []byte {
	t.Helper()

	var out bytes.Buffer
	for {
		chunk, err := d.Pull(max)
		require.NoError(t, err)
		if len(chunk) == 0 {
			return out.Bytes()
		}
		out.Write(chunk)
	}
}

func TestNoIOBeforeFirstPull(t *testing.T) {
	d, err := New(&panicSource{t: t}, &domain.Options{Mode: domain.ModeGzip})
	require.NoError(t, err)
	assert.NoError(t, d.Close())
}

func TestPullZeroReturnsImmediately(t *testing.T) {
	d, err := New(&panicSource{t: t}, &domain.Options{Mode: domain.ModeGzip})
	require.NoError(t, err)
	defer d.Close()

	chunk, err := d.Pull(0)
	require.NoError(t, err)
	assert.Empty(t, chunk)
}

func TestGzipRoundTripWithOptionalHeaderFields(t *testing.T) {
	payload := []byte("interoperability: a stream produced elsewhere, with name, comment and extra fields")

	d, err := New(bytes.NewReader(gzipStream(t, payload)), &domain.Options{
		Mode:   domain.ModeGzip,
		Logger: zaptest.NewLogger(t).Sugar(),
	})
	require.NoError(t, err)
	defer d.Close()

	assert.Equal(t, payload, drain(t, d, 64))
}

func TestRawRoundTrip(t *testing.T) {
	payload := []byte("zlib-wrapped body")

	d, err := New(bytes.NewReader(zlibStream(t, payload)), nil)
	require.NoError(t, err)
	defer d.Close()

	assert.Equal(t, payload, drain(t, d, 7))
}

func TestBadHeaderRejected(t *testing.T) {
	d, err := New(bytes.NewReader([]byte("definitely not gzip")), &domain.Options{Mode: domain.ModeGzip})
	require.NoError(t, err)
	defer d.Close()

	_, err = d.Pull(16)
	assert.ErrorIs(t, err, domain.ErrBadHeader)
}

func TestTruncatedHeaderRejected(t *testing.T) {
	d, err := New(bytes.NewReader([]byte{0x1f, 0x8b, 0x08}), &domain.Options{Mode: domain.ModeGzip})
	require.NoError(t, err)
	defer d.Close()

	_, err = d.Pull(16)
	assert.ErrorIs(t, err, domain.ErrTruncatedHeader)
}

func TestPostEndPullsStayEmpty(t *testing.T) {
	d, err := New(bytes.NewReader(gzipStream(t, []byte("short"))), &domain.Options{Mode: domain.ModeGzip})
	require.NoError(t, err)
	defer d.Close()

	require.Equal(t, []byte("short"), drain(t, d, 64))

	// End-of-stream is detected exactly once; afterwards every pull is
	// empty and error-free, any number of times.
	for i := 0; i < 5; i++ {
		chunk, err := d.Pull(64)
		require.NoError(t, err)
		require.Empty(t, chunk)
	}
}

func TestStutteringSourceIsRetried(t *testing.T) {
	payload := bytes.Repeat([]byte("stutter "), 512)

	d, err := New(&stutterSource{r: bytes.NewReader(gzipStream(t, payload))}, &domain.Options{
		Mode: domain.ModeGzip,
	})
	require.NoError(t, err)
	defer d.Close()

	assert.Equal(t, payload, drain(t, d, 256))
}

func TestTrickleSourceSurvivesHeaderAndBody(t *testing.T) {
	payload := []byte("one byte at a time through header, body and trailer")

	d, err := New(&trickleSource{r: bytes.NewReader(gzipStream(t, payload))}, &domain.Options{
		Mode: domain.ModeGzip,
	})
	require.NoError(t, err)
	defer d.Close()

	assert.Equal(t, payload, drain(t, d, 4096))
}

func TestTrailerVerification(t *testing.T) {
	payload := []byte("verify me")

	tests := []struct {
		name    string
		corrupt func([]byte) // mutates the stream in place
		want    error
	}{
		{
			name:    "crc flipped",
			corrupt: func(s []byte) { s[len(s)-8] ^= 0xff },
			want:    domain.ErrChecksumMismatch,
		},
		{
			name:    "length flipped",
			corrupt: func(s []byte) { s[len(s)-1] ^= 0xff },
			want:    domain.ErrLengthMismatch,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stream := gzipStream(t, payload)
			tt.corrupt(stream)

			d, err := New(bytes.NewReader(stream), &domain.Options{Mode: domain.ModeGzip})
			require.NoError(t, err)
			defer d.Close()

			var got error
			var out bytes.Buffer
			for {
				chunk := make([]byte, 4)
				n, err := d.Read(chunk)
				out.Write(chunk[:n])
				if err != nil {
					got = err
					break
				}
			}

			// The payload itself decompressed fine; only the trailer
			// disagrees, and the failure is sticky.
			assert.Equal(t, payload, out.Bytes())
			assert.ErrorIs(t, got, tt.want)

			_, err = d.Read(make([]byte, 4))
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestTruncatedTrailer(t *testing.T) {
	stream := gzipStream(t, []byte("cut short"))
	stream = stream[:len(stream)-3]

	d, err := New(bytes.NewReader(stream), &domain.Options{Mode: domain.ModeGzip})
	require.NoError(t, err)
	defer d.Close()

	var got error
	for {
		_, err := d.Read(make([]byte, 64))
		if err != nil {
			got = err
			break
		}
	}
	assert.ErrorIs(t, got, domain.ErrTruncatedTrailer)
}

func TestLenientModeSkipsTrailerCheck(t *testing.T) {
	payload := []byte("nobody checks")
	stream := gzipStream(t, payload)
	stream[len(stream)-8] ^= 0xff // corrupt the CRC

	d, err := New(bytes.NewReader(stream), &domain.Options{
		Mode:                domain.ModeGzip,
		DisableTrailerCheck: true,
	})
	require.NoError(t, err)
	defer d.Close()

	assert.Equal(t, payload, drain(t, d, 64))
}
