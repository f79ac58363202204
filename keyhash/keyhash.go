// Package keyhash computes the 64-bit keys the filters in this module see.
//
// The hash function is xxHash64, the same algorithm the teacher index
// formats (bucketteer, compactindexsized) use for their bucket and entry
// hashing. It is fixed and versioned: the hash itself is never stored in a
// serialized index (only the fingerprints derived from it are), so any
// change here invalidates every previously-built index without the change
// being detectable until a query silently misses.
package keyhash

import "github.com/cespare/xxhash/v2"

// Hash returns the 64-bit key for a stem. Stable across build and query,
// and across process restarts and architectures.
func Hash(stem string) uint64 {
	return xxhash.Sum64String(stem)
}

// HashBytes is the []byte counterpart of Hash, avoiding a string conversion
// when the caller already holds the stem as bytes.
func HashBytes(stem []byte) uint64 {
	return xxhash.Sum64(stem)
}
