package types

// Addresses are logically unsigned 64-bit values, but SQLite's INTEGER
// columns are signed 64-bit. Rows written by BinDiff therefore carry
// addresses at or above 0x8000000000000000 as negative integers.
// Reinterpreting the two's-complement bit pattern on both sides keeps
// the round trip lossless; no other transformation is applied.

// AddressFromStored converts a stored signed address to its canonical
// unsigned form.
func AddressFromStored(v int64) uint64 {
	return uint64(v)
}

// StoredAddress converts a canonical address to the signed form the
// storage engine persists.
func StoredAddress(a uint64) int64 {
	return int64(a)
}
