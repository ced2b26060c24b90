package frame

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iamNilotpal/gzstream/internal/core/domain"
)

func TestHeaderWireFormat(t *testing.T) {
	// Byte-exact: magic, deflate method, no flags, zero mtime, zero
	// extra flags, Unix origin.
	assert.Equal(t,
		[]byte{0x1f, 0x8b, 0x08, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x03},
		Header(),
	)
}

func TestTrailerWireFormat(t *testing.T) {
	assert.Equal(t,
		[]byte{0x78, 0x56, 0x34, 0x12, 0x21, 0x43, 0x65, 0x87},
		Trailer(0x12345678, 0x87654321),
	)
}

func TestParseHeaderRoundTrip(t *testing.T) {
	r := bytes.NewReader(Header())

	require.NoError(t, ParseHeader(r))
	assert.Zero(t, r.Len(), "header must be fully consumed")
}

func TestParseHeaderOptionalFields(t *testing.T) {
	// flags: FHCRC | FEXTRA | FNAME | FCOMMENT. Field order per RFC
	// 1952: extra, name, comment, header CRC.
	var stream bytes.Buffer
	stream.Write([]byte{0x1f, 0x8b, 0x08, 0x1e, 0, 0, 0, 0, 0, 0x03})
	stream.Write([]byte{0x04, 0x00})             // extra length = 4
	stream.Write([]byte{0xde, 0xad, 0xbe, 0xef}) // extra payload
	stream.WriteString("file.txt\x00")           // name, zero-terminated
	stream.WriteString("a comment\x00")          // comment, zero-terminated
	stream.Write([]byte{0xaa, 0xbb})             // header CRC, not validated
	stream.WriteByte(0x42)                       // first body byte, must survive

	r := bytes.NewReader(stream.Bytes())
	require.NoError(t, ParseHeader(r))

	b, err := r.ReadByte()
	require.NoError(t, err)
	assert.Equal(t, byte(0x42), b, "parser must stop at the body")
}

func TestParseHeaderRejects(t *testing.T) {
	tests := []struct {
		name   string
		header []byte
		want   error
	}{
		{
			name:   "bad magic",
			header: []byte{'N', 'O', 0x08, 0, 0, 0, 0, 0, 0, 0x03},
			want:   domain.ErrBadHeader,
		},
		{
			name:   "wrong method",
			header: []byte{0x1f, 0x8b, 0x07, 0, 0, 0, 0, 0, 0, 0x03},
			want:   domain.ErrBadHeader,
		},
		{
			name:   "reserved flag bits",
			header: []byte{0x1f, 0x8b, 0x08, 0xe0, 0, 0, 0, 0, 0, 0x03},
			want:   domain.ErrBadHeader,
		},
		{
			name:   "empty stream",
			header: nil,
			want:   domain.ErrTruncatedHeader,
		},
		{
			name:   "short fixed header",
			header: []byte{0x1f, 0x8b, 0x08},
			want:   domain.ErrTruncatedHeader,
		},
		{
			name:   "extra field cut off",
			header: []byte{0x1f, 0x8b, 0x08, 0x04, 0, 0, 0, 0, 0, 0x03, 0x10, 0x00, 0x01},
			want:   domain.ErrTruncatedHeader,
		},
		{
			name:   "name missing terminator",
			header: []byte{0x1f, 0x8b, 0x08, 0x08, 0, 0, 0, 0, 0, 0x03, 'f', 'i', 'l', 'e'},
			want:   domain.ErrTruncatedHeader,
		},
		{
			name:   "header crc cut off",
			header: []byte{0x1f, 0x8b, 0x08, 0x02, 0, 0, 0, 0, 0, 0x03, 0xaa},
			want:   domain.ErrTruncatedHeader,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ParseHeader(bytes.NewReader(tt.header))
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestParseTrailer(t *testing.T) {
	crc, size, err := ParseTrailer(bytes.NewReader(Trailer(0xcafebabe, 1234)))

	require.NoError(t, err)
	assert.Equal(t, uint32(0xcafebabe), crc)
	assert.Equal(t, uint32(1234), size)
}

func TestParseTrailerTruncated(t *testing.T) {
	_, _, err := ParseTrailer(bytes.NewReader([]byte{1, 2, 3}))
	assert.ErrorIs(t, err, domain.ErrTruncatedTrailer)
}
