package ports

// Checksum accumulates a running checksum over a byte stream. Sessions
// feed it every uncompressed byte that crosses them so the gzip trailer
// can be produced (compression) or verified (decompression) without
// buffering the payload.
type Checksum interface {
	// Update folds p into the running checksum.
	Update(p []byte)

	// Sum32 returns the checksum of everything fed so far.
	Sum32() uint32

	// Reset returns the accumulator to its initial state.
	Reset()
}
