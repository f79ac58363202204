package binaryfuse

import (
	"encoding/binary"

	"github.com/FastFilter/xorfilter"
)

type filter8 struct{ f *xorfilter.BinaryFuse8 }

func (w filter8) Contains(key uint64) bool { return w.f.Contains(key) }
func (w filter8) SizeInBytes() int         { return w.f.SizeInBytes() }
func (w filter8) Blob() Blob {
	return Blob{
		Seed:               w.f.Seed,
		SegmentLength:      w.f.SegmentLength,
		SegmentLengthMask:  w.f.SegmentLengthMask,
		SegmentCount:       w.f.SegmentCount,
		SegmentCountLength: w.f.SegmentCountLength,
		Fingerprints:       append([]byte(nil), w.f.Fingerprints...),
	}
}

type filter16 struct{ f *xorfilter.BinaryFuse16 }

func (w filter16) Contains(key uint64) bool { return w.f.Contains(key) }
func (w filter16) SizeInBytes() int         { return w.f.SizeInBytes() }
func (w filter16) Blob() Blob {
	return Blob{
		Seed:               w.f.Seed,
		SegmentLength:      w.f.SegmentLength,
		SegmentLengthMask:  w.f.SegmentLengthMask,
		SegmentCount:       w.f.SegmentCount,
		SegmentCountLength: w.f.SegmentCountLength,
		Fingerprints:       uint16ToBytes(w.f.Fingerprints),
	}
}

type filter32 struct{ f *xorfilter.BinaryFuse32 }

func (w filter32) Contains(key uint64) bool { return w.f.Contains(key) }
func (w filter32) SizeInBytes() int         { return w.f.SizeInBytes() }
func (w filter32) Blob() Blob {
	return Blob{
		Seed:               w.f.Seed,
		SegmentLength:      w.f.SegmentLength,
		SegmentLengthMask:  w.f.SegmentLengthMask,
		SegmentCount:       w.f.SegmentCount,
		SegmentCountLength: w.f.SegmentCountLength,
		Fingerprints:       uint32ToBytes(w.f.Fingerprints),
	}
}

func uint16ToBytes(in []uint16) []byte {
	out := make([]byte, len(in)*2)
	for i, v := range in {
		binary.LittleEndian.PutUint16(out[i*2:], v)
	}
	return out
}

func bytesToUint16(in []byte) []uint16 {
	out := make([]uint16, len(in)/2)
	for i := range out {
		out[i] = binary.LittleEndian.Uint16(in[i*2:])
	}
	return out
}

func uint32ToBytes(in []uint32) []byte {
	out := make([]byte, len(in)*4)
	for i, v := range in {
		binary.LittleEndian.PutUint32(out[i*4:], v)
	}
	return out
}

func bytesToUint32(in []byte) []uint32 {
	out := make([]uint32, len(in)/4)
	for i := range out {
		out[i] = binary.LittleEndian.Uint32(in[i*4:])
	}
	return out
}
