// Package checksum provides the running checksum accumulators sessions
// use for gzip trailer accounting.
package checksum

import (
	"hash/crc32"

	"github.com/iamNilotpal/gzstream/internal/core/ports"
)

// crc32IEEE accumulates a CRC-32 with the IEEE polynomial, the checksum
// the gzip trailer is defined over (RFC 1952).
type crc32IEEE struct {
	sum   uint32
	table *crc32.Table
}

// NewCRC32IEEE returns a running CRC-32/IEEE accumulator starting at
// the empty-stream checksum (zero).
func NewCRC32IEEE() ports.Checksum {
	return &crc32IEEE{table: crc32.MakeTable(crc32.IEEE)}
}

func (c *crc32IEEE) Update(p []byte) {
	c.sum = crc32.Update(c.sum, c.table, p)
}

func (c *crc32IEEE) Sum32() uint32 {
	return c.sum
}

func (c *crc32IEEE) Reset() {
	c.sum = 0
}
