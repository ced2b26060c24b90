// Package frame encodes and decodes gzip member framing: the 10-byte
// fixed header with its optional fields, and the 8-byte CRC-32 + length
// trailer. The DEFLATE body in between is owned by the engine; this
// package never touches it.
package frame

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/iamNilotpal/gzstream/internal/core/domain"
	"github.com/iamNilotpal/gzstream/internal/core/ports"
)

// Gzip wire constants (RFC 1952). Changing any of these breaks
// interoperability with every other gzip implementation.
const (
	magic0        = 0x1f
	magic1        = 0x8b
	methodDeflate = 0x08
	osUnix        = 0x03

	// HeaderSize is the length of the fixed gzip header.
	HeaderSize = 10

	// TrailerSize is the length of the gzip trailer: CRC-32 followed by
	// the uncompressed length mod 2^32, both little-endian.
	TrailerSize = 8
)

// Header flag bits. Reserved bits must be zero in a valid stream.
const (
	flagText      = 1 << 0
	flagHeaderCRC = 1 << 1
	flagExtra     = 1 << 2
	flagName      = 1 << 3
	flagComment   = 1 << 4
	flagReserved  = 7 << 5
)

// Reader is the buffered source view framing is parsed from. ReadByte
// lets optional fields be scanned without one-byte source reads.
type Reader = ports.ByteSource

// Header returns the fixed 10-byte header written in front of every
// compressed member: magic, deflate method, no flags, zero mtime,
// no extra flags, Unix origin.
func Header() []byte {
	return []byte{magic0, magic1, methodDeflate, 0, 0, 0, 0, 0, 0, osUnix}
}

// Trailer encodes the gzip trailer for a stream whose uncompressed
// bytes hashed to crc and totaled size (mod 2^32).
func Trailer(crc, size uint32) []byte {
	var t [TrailerSize]byte
	binary.LittleEndian.PutUint32(t[0:4], crc)
	binary.LittleEndian.PutUint32(t[4:8], size)
	return t[:]
}

// ParseHeader reads and validates a gzip header from r, consuming the
// fixed header and every optional field the flags announce. On return
// the next byte of r is the first byte of the DEFLATE body.
//
// A source that runs dry mid-header yields domain.ErrTruncatedHeader;
// bad magic, a non-deflate method or set reserved bits yield
// domain.ErrBadHeader.
func ParseHeader(r Reader) error {
	var hdr [HeaderSize]byte
	if _, err := io.ReadFull(r, hdr[:]); err != nil {
		return fmt.Errorf("%w: fixed header: %v", domain.ErrTruncatedHeader, err)
	}

	flags := hdr[3]
	switch {
	case hdr[0] != magic0 || hdr[1] != magic1:
		return fmt.Errorf("%w: bad magic %#02x %#02x", domain.ErrBadHeader, hdr[0], hdr[1])
	case hdr[2] != methodDeflate:
		return fmt.Errorf("%w: compression method %d is not deflate", domain.ErrBadHeader, hdr[2])
	case flags&flagReserved != 0:
		return fmt.Errorf("%w: reserved flag bits %#02x", domain.ErrBadHeader, flags)
	}

	if flags&flagExtra != 0 {
		var xlen [2]byte
		if _, err := io.ReadFull(r, xlen[:]); err != nil {
			return fmt.Errorf("%w: extra field length: %v", domain.ErrTruncatedHeader, err)
		}
		if err := skip(r, int(binary.LittleEndian.Uint16(xlen[:]))); err != nil {
			return fmt.Errorf("%w: extra field: %v", domain.ErrTruncatedHeader, err)
		}
	}
	if flags&flagName != 0 {
		if err := skipString(r); err != nil {
			return fmt.Errorf("%w: file name: %v", domain.ErrTruncatedHeader, err)
		}
	}
	if flags&flagComment != 0 {
		if err := skipString(r); err != nil {
			return fmt.Errorf("%w: comment: %v", domain.ErrTruncatedHeader, err)
		}
	}
	if flags&flagHeaderCRC != 0 {
		if err := skip(r, 2); err != nil {
			return fmt.Errorf("%w: header CRC: %v", domain.ErrTruncatedHeader, err)
		}
	}

	return nil
}

// ParseTrailer reads the 8-byte trailer that follows the DEFLATE body.
func ParseTrailer(r Reader) (crc, size uint32, err error) {
	var t [TrailerSize]byte
	if _, err := io.ReadFull(r, t[:]); err != nil {
		return 0, 0, fmt.Errorf("%w: %v", domain.ErrTruncatedTrailer, err)
	}
	return binary.LittleEndian.Uint32(t[0:4]), binary.LittleEndian.Uint32(t[4:8]), nil
}

// skip discards exactly n bytes from r.
func skip(r Reader, n int) error {
	if n == 0 {
		return nil
	}
	if _, err := io.CopyN(io.Discard, r, int64(n)); err != nil {
		return err
	}
	return nil
}

// skipString discards bytes up to and including a zero terminator.
func skipString(r Reader) error {
	for {
		b, err := r.ReadByte()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return io.ErrUnexpectedEOF
			}
			return err
		}
		if b == 0 {
			return nil
		}
	}
}
