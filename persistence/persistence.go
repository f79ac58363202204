// Package persistence implements the little-endian framed binary format of
// spec §4.7: a LayeredFilter plus its per-document Result payloads, written
// once at build time and read back at query time, in a file or an
// in-memory buffer.
//
// Two extensions beyond the literal byte layout in §4.7 are documented in
// DESIGN.md rather than left implicit: each FilterBlob is prefixed with a
// one-byte presence flag (a mid division or document can legitimately have
// zero keys and therefore no filter), and each Result is prefixed with a
// one-byte type tag (0 = Uint64Result, 1 = BytesResult) so a single stream
// can't silently misinterpret which shape it holds.
package persistence

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/thekorn/fastfilter-search/binaryfuse"
	"github.com/thekorn/fastfilter-search/layeredfilter"
)

// Version is the only version this package writes or accepts.
const Version uint16 = 1

var (
	// ErrVersionMismatch is returned by Load when the stream's version
	// field is not Version.
	ErrVersionMismatch = errors.New("persistence: version mismatch")
	// ErrOptionsMismatch is returned by Load when the stream's structural
	// options (fingerprint width, division count) don't match opts.
	ErrOptionsMismatch = errors.New("persistence: options mismatch")
	// ErrEndOfStream is returned by Load when the stream is truncated.
	ErrEndOfStream = errors.New("persistence: unexpected end of stream")
)

func fingerprintByteWidth(b binaryfuse.Bits) (uint32, error) {
	switch b {
	case binaryfuse.Bits8:
		return 1, nil
	case binaryfuse.Bits16:
		return 2, nil
	case binaryfuse.Bits32:
		return 4, nil
	default:
		return 0, fmt.Errorf("persistence: unsupported fingerprint width %s", b)
	}
}

// Save writes lf to w in full, including every mid division and inner
// layer, regardless of whether lf.Index has been called (an un-indexed
// filter just serializes with every filter field absent).
func Save(lf *layeredfilter.LayeredFilter, w io.Writer) error {
	bw := bufio.NewWriter(w)

	if err := writeUint16(bw, Version); err != nil {
		return err
	}
	if err := writeUint64(bw, lf.TotalKeysEstimate); err != nil {
		return err
	}
	if err := writeUint16(bw, uint16(lf.Options.FingerprintBits)); err != nil {
		return err
	}
	if err := writeUint64(bw, uint64(len(lf.MidLayer))); err != nil {
		return err
	}

	if err := writeUint64(bw, lf.Keys); err != nil {
		return err
	}
	if err := writeFilterBlob(bw, lf.Options.FingerprintBits, lf.OuterLayer); err != nil {
		return fmt.Errorf("persistence: outer filter: %w", err)
	}

	for d := range lf.MidLayer {
		mid := &lf.MidLayer[d]
		if err := writeUint64(bw, mid.KeysCount); err != nil {
			return err
		}
		if err := writeFilterBlob(bw, lf.Options.FingerprintBits, mid.Filter); err != nil {
			return fmt.Errorf("persistence: mid division %d filter: %w", d, err)
		}
		if err := writeUint32(bw, uint32(len(mid.InnerLayers))); err != nil {
			return err
		}
		for i, inner := range mid.InnerLayers {
			if err := writeUint64(bw, inner.KeysCount); err != nil {
				return err
			}
			if err := writeFilterBlob(bw, lf.Options.FingerprintBits, inner.Filter); err != nil {
				return fmt.Errorf("persistence: mid division %d inner layer %d filter: %w", d, i, err)
			}
			if err := writeResult(bw, inner.Result); err != nil {
				return fmt.Errorf("persistence: mid division %d inner layer %d result: %w", d, i, err)
			}
		}
	}

	return bw.Flush()
}

// Load reconstructs a LayeredFilter from r. opts.FingerprintBits and the
// division count implied by opts must match the stream's header, or Load
// fails with ErrOptionsMismatch. The loaded filter has no Producer on any
// InnerLayer (spec §3: "key buffers are not reconstructed"); it is only
// usable for Contains/QueryOr/QueryAnd, never Insert/Index again.
func Load(r io.Reader, opts layeredfilter.Options) (*layeredfilter.LayeredFilter, error) {
	if opts.Divisions <= 0 {
		opts.Divisions = layeredfilter.D
	}
	br := bufio.NewReader(r)

	version, err := readUint16(br)
	if err != nil {
		return nil, err
	}
	if version != Version {
		return nil, fmt.Errorf("%w: stream has version %d, this build reads version %d", ErrVersionMismatch, version, Version)
	}

	totalKeysEstimate, err := readUint64(br)
	if err != nil {
		return nil, err
	}
	fingerprintBits, err := readUint16(br)
	if err != nil {
		return nil, err
	}
	if binaryfuse.Bits(fingerprintBits) != opts.FingerprintBits {
		return nil, fmt.Errorf("%w: stream fingerprint width %d, this build expects %s", ErrOptionsMismatch, fingerprintBits, opts.FingerprintBits)
	}
	divisions, err := readUint64(br)
	if err != nil {
		return nil, err
	}
	if int(divisions) != opts.Divisions {
		return nil, fmt.Errorf("%w: stream has %d mid-layer divisions, this build expects %d", ErrOptionsMismatch, divisions, opts.Divisions)
	}

	lf := layeredfilter.New(totalKeysEstimate, opts)

	keys, err := readUint64(br)
	if err != nil {
		return nil, err
	}
	lf.Keys = keys
	outer, err := readFilterBlob(br, opts.FingerprintBits)
	if err != nil {
		return nil, fmt.Errorf("persistence: outer filter: %w", err)
	}
	lf.OuterLayer = outer

	for d := 0; d < opts.Divisions; d++ {
		midKeysCount, err := readUint64(br)
		if err != nil {
			return nil, err
		}
		midFilter, err := readFilterBlob(br, opts.FingerprintBits)
		if err != nil {
			return nil, fmt.Errorf("persistence: mid division %d filter: %w", d, err)
		}
		numInner, err := readUint32(br)
		if err != nil {
			return nil, err
		}

		lf.MidLayer[d].KeysCount = midKeysCount
		lf.MidLayer[d].Filter = midFilter
		lf.MidLayer[d].InnerLayers = make([]*layeredfilter.InnerLayer, 0, numInner)

		for i := uint32(0); i < numInner; i++ {
			innerKeysCount, err := readUint64(br)
			if err != nil {
				return nil, err
			}
			innerFilter, err := readFilterBlob(br, opts.FingerprintBits)
			if err != nil {
				return nil, fmt.Errorf("persistence: mid division %d inner layer %d filter: %w", d, i, err)
			}
			result, err := readResult(br)
			if err != nil {
				return nil, fmt.Errorf("persistence: mid division %d inner layer %d result: %w", d, i, err)
			}
			lf.MidLayer[d].InnerLayers = append(lf.MidLayer[d].InnerLayers, &layeredfilter.InnerLayer{
				KeysCount: innerKeysCount,
				Filter:    innerFilter,
				Result:    result,
			})
		}
	}

	return lf, nil
}

func writeFilterBlob(w io.Writer, bits binaryfuse.Bits, f binaryfuse.Filter) error {
	if f == nil {
		return writeUint8(w, 0)
	}
	if err := writeUint8(w, 1); err != nil {
		return err
	}
	blob := f.Blob()
	width, err := fingerprintByteWidth(bits)
	if err != nil {
		return err
	}
	if err := writeUint64(w, blob.Seed); err != nil {
		return err
	}
	if err := writeUint32(w, blob.SegmentLength); err != nil {
		return err
	}
	if err := writeUint32(w, blob.SegmentLengthMask); err != nil {
		return err
	}
	if err := writeUint32(w, blob.SegmentCount); err != nil {
		return err
	}
	if err := writeUint32(w, blob.SegmentCountLength); err != nil {
		return err
	}
	if err := writeUint32(w, uint32(len(blob.Fingerprints))/width); err != nil {
		return err
	}
	_, err = w.Write(blob.Fingerprints)
	return err
}

func readFilterBlob(r io.Reader, bits binaryfuse.Bits) (binaryfuse.Filter, error) {
	present, err := readUint8(r)
	if err != nil {
		return nil, err
	}
	if present == 0 {
		return nil, nil
	}
	width, err := fingerprintByteWidth(bits)
	if err != nil {
		return nil, err
	}
	seed, err := readUint64(r)
	if err != nil {
		return nil, err
	}
	segmentLength, err := readUint32(r)
	if err != nil {
		return nil, err
	}
	segmentLengthMask, err := readUint32(r)
	if err != nil {
		return nil, err
	}
	segmentCount, err := readUint32(r)
	if err != nil {
		return nil, err
	}
	segmentCountLength, err := readUint32(r)
	if err != nil {
		return nil, err
	}
	fingerprintsLen, err := readUint32(r)
	if err != nil {
		return nil, err
	}
	raw := make([]byte, uint64(fingerprintsLen)*uint64(width))
	if _, err := io.ReadFull(r, raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEndOfStream, err)
	}
	return binaryfuse.FromBlob(bits, binaryfuse.Blob{
		Seed:               seed,
		SegmentLength:      segmentLength,
		SegmentLengthMask:  segmentLengthMask,
		SegmentCount:       segmentCount,
		SegmentCountLength: segmentCountLength,
		Fingerprints:       raw,
	})
}

const (
	resultTagUint64 = 0
	resultTagBytes  = 1
)

func writeResult(w io.Writer, result layeredfilter.Result) error {
	switch r := result.(type) {
	case layeredfilter.Uint64Result:
		if err := writeUint8(w, resultTagUint64); err != nil {
			return err
		}
		return writeUint64(w, uint64(r))
	case layeredfilter.BytesResult:
		if err := writeUint8(w, resultTagBytes); err != nil {
			return err
		}
		if err := writeUint32(w, uint32(len(r))); err != nil {
			return err
		}
		_, err := w.Write(r)
		return err
	default:
		return fmt.Errorf("persistence: unsupported result type %T", result)
	}
}

func readResult(r io.Reader) (layeredfilter.Result, error) {
	tag, err := readUint8(r)
	if err != nil {
		return nil, err
	}
	switch tag {
	case resultTagUint64:
		v, err := readUint64(r)
		if err != nil {
			return nil, err
		}
		return layeredfilter.Uint64Result(v), nil
	case resultTagBytes:
		n, err := readUint32(r)
		if err != nil {
			return nil, err
		}
		buf := make([]byte, n)
		if _, err := io.ReadFull(r, buf); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrEndOfStream, err)
		}
		return layeredfilter.BytesResult(buf), nil
	default:
		return nil, fmt.Errorf("persistence: unknown result tag %d", tag)
	}
}

func writeUint8(w io.Writer, v uint8) error {
	_, err := w.Write([]byte{v})
	return err
}

func readUint8(r io.Reader) (uint8, error) {
	var buf [1]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrEndOfStream, err)
	}
	return buf[0], nil
}

func writeUint16(w io.Writer, v uint16) error {
	var buf [2]byte
	binary.LittleEndian.PutUint16(buf[:], v)
	_, err := w.Write(buf[:])
	return err
}

func readUint16(r io.Reader) (uint16, error) {
	var buf [2]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrEndOfStream, err)
	}
	return binary.LittleEndian.Uint16(buf[:]), nil
}

func writeUint32(w io.Writer, v uint32) error {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], v)
	_, err := w.Write(buf[:])
	return err
}

func readUint32(r io.Reader) (uint32, error) {
	var buf [4]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrEndOfStream, err)
	}
	return binary.LittleEndian.Uint32(buf[:]), nil
}

func writeUint64(w io.Writer, v uint64) error {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], v)
	_, err := w.Write(buf[:])
	return err
}

func readUint64(r io.Reader) (uint64, error) {
	var buf [8]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrEndOfStream, err)
	}
	return binary.LittleEndian.Uint64(buf[:]), nil
}
