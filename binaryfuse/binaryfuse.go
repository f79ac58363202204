// Package binaryfuse wraps github.com/FastFilter/xorfilter's binary fuse
// filters behind a width-agnostic interface, so layeredfilter can hold a
// tree of filters without hard-coding a fingerprint width.
//
// A binary fuse filter is an approximate-membership structure: Contains
// never returns false for a key that was populated, but may return true for
// a key that wasn't, with probability roughly 2^-F for an F-bit fingerprint.
package binaryfuse

import (
	"errors"
	"fmt"

	"github.com/FastFilter/xorfilter"
)

// Bits selects the fingerprint width of a filter. It is a compile-time
// choice in this module (spec §4.4/§9): it is not exposed as a TextIndex
// runtime option, only recorded in the serialized header so a mismatched
// build can be rejected at load time.
type Bits uint16

const (
	Bits8  Bits = 8
	Bits16 Bits = 16
	Bits32 Bits = 32
)

func (b Bits) String() string {
	switch b {
	case Bits8:
		return "8"
	case Bits16:
		return "16"
	case Bits32:
		return "32"
	default:
		return fmt.Sprintf("Bits(%d)", uint16(b))
	}
}

// ErrConstructionFailed is returned by Populate when the fuse filter
// construction did not converge on the supplied key set. It is almost
// always a sign that the key set was not deduplicated before calling
// Populate, which is why layeredfilter always runs a uniqueness pass first
// (spec §4.5).
var ErrConstructionFailed = errors.New("binaryfuse: construction failed")

// Blob is the on-disk representation of a filter's internal state,
// corresponding 1:1 with spec §4.7's FilterBlob.
type Blob struct {
	Seed               uint64
	SegmentLength      uint32
	SegmentLengthMask  uint32
	SegmentCount       uint32
	SegmentCountLength uint32
	Fingerprints       []byte
}

// Filter is satisfied by each of the three fingerprint-width wrappers.
type Filter interface {
	Contains(key uint64) bool
	SizeInBytes() int
	Blob() Blob
}

// Populate builds a Filter of the given width from a set of keys that the
// caller has already deduplicated. Duplicate keys are the documented cause
// of ErrConstructionFailed (spec §4.5's "workaround for binary-fuse
// duplicate keys").
func Populate(bits Bits, keys []uint64) (Filter, error) {
	switch bits {
	case Bits8:
		f, err := xorfilter.PopulateBinaryFuse8(keys)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrConstructionFailed, err)
		}
		return filter8{f}, nil
	case Bits16:
		f, err := xorfilter.PopulateBinaryFuse16(keys)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrConstructionFailed, err)
		}
		return filter16{f}, nil
	case Bits32:
		f, err := xorfilter.PopulateBinaryFuse32(keys)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrConstructionFailed, err)
		}
		return filter32{f}, nil
	default:
		return nil, fmt.Errorf("binaryfuse: unsupported fingerprint width %s", bits)
	}
}

// FromBlob reconstructs a Filter from a previously-serialized Blob, without
// re-running construction. Used by persistence on load.
func FromBlob(bits Bits, b Blob) (Filter, error) {
	switch bits {
	case Bits8:
		fp := make([]uint8, len(b.Fingerprints))
		copy(fp, b.Fingerprints)
		return filter8{&xorfilter.BinaryFuse8{
			Seed:               b.Seed,
			SegmentLength:      b.SegmentLength,
			SegmentLengthMask:  b.SegmentLengthMask,
			SegmentCount:       b.SegmentCount,
			SegmentCountLength: b.SegmentCountLength,
			Fingerprints:       fp,
		}}, nil
	case Bits16:
		fp := bytesToUint16(b.Fingerprints)
		return filter16{&xorfilter.BinaryFuse16{
			Seed:               b.Seed,
			SegmentLength:      b.SegmentLength,
			SegmentLengthMask:  b.SegmentLengthMask,
			SegmentCount:       b.SegmentCount,
			SegmentCountLength: b.SegmentCountLength,
			Fingerprints:       fp,
		}}, nil
	case Bits32:
		fp := bytesToUint32(b.Fingerprints)
		return filter32{&xorfilter.BinaryFuse32{
			Seed:               b.Seed,
			SegmentLength:      b.SegmentLength,
			SegmentLengthMask:  b.SegmentLengthMask,
			SegmentCount:       b.SegmentCount,
			SegmentCountLength: b.SegmentCountLength,
			Fingerprints:       fp,
		}}, nil
	default:
		return nil, fmt.Errorf("binaryfuse: unsupported fingerprint width %s", bits)
	}
}
