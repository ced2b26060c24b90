// Package xorshift implements Marsaglia's xorshift128 pseudo-random
// generator: 128 bits of state, a handful of shifts and xors per draw.
// It is fast, deterministic and emphatically not cryptographic. The
// codec never touches it; it lives here as a standalone utility (and as
// the payload generator for the codec's own tests).
package xorshift

// Canonical seed words, used for any seed word left zero so the state
// never collapses to all-zeros (a fixed point of the generator).
const (
	seedX = 123456789
	seedY = 362436069
	seedZ = 521288629
	seedW = 88675123
)

// XorShift is a xorshift128 generator. The zero value is not ready for
// use; construct with New.
type XorShift struct {
	x, y, z, w uint32
}

// New returns a generator seeded with the given words. Zero words fall
// back to the canonical constants, so New(0, 0, 0, 0) is the reference
// generator.
func New(x, y, z, w uint32) *XorShift {
	g := &XorShift{}
	g.Init(x, y, z, w)
	return g
}

// Init reseeds the generator in place, applying the same zero-word
// fallback as New.
func (g *XorShift) Init(x, y, z, w uint32) {
	if x == 0 {
		x = seedX
	}
	if y == 0 {
		y = seedY
	}
	if z == 0 {
		z = seedZ
	}
	if w == 0 {
		w = seedW
	}
	g.x, g.y, g.z, g.w = x, y, z, w
}

// Uint32 draws the next 32-bit value.
func (g *XorShift) Uint32() uint32 {
	t := g.x ^ (g.x << 11)
	g.x, g.y, g.z = g.y, g.z, g.w
	g.w = (g.w ^ (g.w >> 19)) ^ (t ^ (t >> 8))
	return g.w
}

// Uint64 draws 64 bits as two consecutive 32-bit draws, high word
// first.
func (g *XorShift) Uint64() uint64 {
	hi := g.Uint32()
	lo := g.Uint32()
	return uint64(hi)<<32 | uint64(lo)
}

// Fill overwrites p with pseudo-random bytes.
func (g *XorShift) Fill(p []byte) {
	i := 0
	for ; i+4 <= len(p); i += 4 {
		v := g.Uint32()
		p[i] = byte(v)
		p[i+1] = byte(v >> 8)
		p[i+2] = byte(v >> 16)
		p[i+3] = byte(v >> 24)
	}
	if i < len(p) {
		v := g.Uint32()
		for ; i < len(p); i++ {
			p[i] = byte(v)
			v >>= 8
		}
	}
}
