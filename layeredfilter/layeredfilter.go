// Package layeredfilter implements the three-level tree of binary-fuse
// filters described in spec §4.5: one outer filter over every inserted
// key, D mid-layer filters over balanced divisions of documents, and one
// inner filter per document.
package layeredfilter

import (
	"unsafe"

	"github.com/thekorn/fastfilter-search/binaryfuse"
)

// D is the compile-time mid-layer division count. It is the Divisions value
// of DefaultOptions (and the fallback when Options.Divisions is not
// positive), which sizes the MidLayer slice and is part of the serialized
// header (spec §4.7); changing it is a breaking change to every existing
// index file.
const D = 8

// Options carries the compile-time-fixed structural parameters that are
// nonetheless part of a LayeredFilter's type identity: two filters built
// with different Options are not interchangeable, and loading a stream
// whose header Options don't match the running binary's Options fails
// (spec §3, §4.7).
type Options struct {
	FingerprintBits binaryfuse.Bits
	Divisions       int
}

// DefaultOptions is what every LayeredFilter in this module is built with.
// Fingerprint width and division count are not runtime-selectable (spec
// §4.6): textindex always passes this value to New and does not expose
// either one as a TextIndex option.
var DefaultOptions = Options{FingerprintBits: binaryfuse.Bits16, Divisions: D}

// Result is the opaque payload associated with one inserted document.
// Exactly two shapes are supported (spec §3): Uint64Result and BytesResult.
type Result interface {
	isResult()
}

// Uint64Result is a Result encoded as a little-endian u64.
type Uint64Result uint64

func (Uint64Result) isResult() {}

// BytesResult is a Result encoded as a length-prefixed byte string.
type BytesResult []byte

func (BytesResult) isResult() {}

// InnerLayer is the per-document filter and its associated result payload.
type InnerLayer struct {
	KeysCount uint64
	Filter    binaryfuse.Filter // nil until Index(); nil forever if KeysCount == 0
	Producer  KeyProducer
	Result    Result
}

// MidLayer is one of the D horizontal divisions used to balance key counts
// across documents (spec §3).
type MidLayer struct {
	Filter      binaryfuse.Filter
	KeysCount   uint64
	InnerLayers []*InnerLayer
}

// LayeredFilter is the three-tier membership structure: an outer filter
// over every key, D mid filters over balanced divisions, and one inner
// filter per document.
type LayeredFilter struct {
	TotalKeysEstimate uint64
	Keys              uint64
	OuterLayer        binaryfuse.Filter
	MidLayer          []MidLayer
	Options           Options

	indexed bool
}

// New constructs an empty LayeredFilter sized for estimatedKeys total keys.
// The estimate drives division balancing (Insert) but is not a hard cap:
// Insert still accepts more keys than estimated, placing a document in
// division len(keys) mod Divisions once no division is under its target
// (spec §4.5).
func New(estimatedKeys uint64, opts Options) *LayeredFilter {
	if opts.Divisions <= 0 {
		opts.Divisions = D
	}
	return &LayeredFilter{
		TotalKeysEstimate: estimatedKeys,
		Options:           opts,
		MidLayer:          make([]MidLayer, opts.Divisions),
	}
}

// Indexed reports whether Index has been called successfully.
func (lf *LayeredFilter) Indexed() bool { return lf.indexed }

// innerLayerOverhead is the per-document bookkeeping cost counted by
// SizeInBytes, independent of whichever filter (if any) the document ends
// up with.
var innerLayerOverhead = int(unsafe.Sizeof(InnerLayer{}))

// SizeInBytes sums the base struct, every present filter's SizeInBytes, and
// one InnerLayer overhead per document (spec §4.5 "Sizing").
func (lf *LayeredFilter) SizeInBytes() int {
	size := int(unsafe.Sizeof(*lf))
	if lf.OuterLayer != nil {
		size += lf.OuterLayer.SizeInBytes()
	}
	for d := range lf.MidLayer {
		if lf.MidLayer[d].Filter != nil {
			size += lf.MidLayer[d].Filter.SizeInBytes()
		}
		for _, inner := range lf.MidLayer[d].InnerLayers {
			size += innerLayerOverhead
			if inner.Filter != nil {
				size += inner.Filter.SizeInBytes()
			}
		}
	}
	return size
}

// Contains consults the outer filter only (spec §4.5 "Containment
// shortcut"); it does not descend into mid or inner layers.
func (lf *LayeredFilter) Contains(key uint64) bool {
	if lf.OuterLayer == nil {
		return false
	}
	return lf.OuterLayer.Contains(key)
}
