package layeredfilter

import "iter"

// KeyProducer yields the keys of one logical unit (a document, a division,
// or the whole filter) in a stable order, and can be replayed from the
// start any number of times (spec §4.5: "restartable"). Len must equal the
// number of keys Keys yields.
type KeyProducer interface {
	Len() int
	Keys() iter.Seq[uint64]
}

// sliceProducer is the KeyProducer used for a single document: the keys
// produced by tokenizing, stemming, and hashing its text (spec §4.6
// Insert). It owns its backing slice, so unlike the Zig original there is
// no separate "key buffer lifetime" concern (spec §9's design note (a)):
// the slice is simply moved in here at insert time.
type sliceProducer struct {
	keys []uint64
}

// NewSliceProducer builds a KeyProducer over an owned, already-computed key
// slice.
func NewSliceProducer(keys []uint64) KeyProducer {
	return sliceProducer{keys: keys}
}

func (p sliceProducer) Len() int { return len(p.keys) }

func (p sliceProducer) Keys() iter.Seq[uint64] {
	return func(yield func(uint64) bool) {
		for _, k := range p.keys {
			if !yield(k) {
				return
			}
		}
	}
}

// allKeysProducer walks every mid division in index order, and within each,
// every inner layer in insertion order (spec §4.5 "AllKeys").
type allKeysProducer struct{ lf *LayeredFilter }

func (a allKeysProducer) Len() int { return int(a.lf.Keys) }

func (a allKeysProducer) Keys() iter.Seq[uint64] {
	return func(yield func(uint64) bool) {
		for d := range a.lf.MidLayer {
			for _, inner := range a.lf.MidLayer[d].InnerLayers {
				for k := range inner.Producer.Keys() {
					if !yield(k) {
						return
					}
				}
			}
		}
	}
}

// AllKeys returns the producer for the outer filter's key set.
func (lf *LayeredFilter) AllKeys() KeyProducer { return allKeysProducer{lf} }

// midDivisionProducer restricts AllKeys's walk to a single division (spec
// §4.5 "MidDivision(i)").
type midDivisionProducer struct {
	lf       *LayeredFilter
	division int
}

func (m midDivisionProducer) Len() int {
	return int(m.lf.MidLayer[m.division].KeysCount)
}

func (m midDivisionProducer) Keys() iter.Seq[uint64] {
	return func(yield func(uint64) bool) {
		for _, inner := range m.lf.MidLayer[m.division].InnerLayers {
			for k := range inner.Producer.Keys() {
				if !yield(k) {
					return
				}
			}
		}
	}
}

// MidDivision returns the producer for division i's key set.
func (lf *LayeredFilter) MidDivision(i int) KeyProducer {
	return midDivisionProducer{lf: lf, division: i}
}

// collectUnique drains a producer into a deduplicated slice. Every filter
// tier is built this way (collect-then-populate) rather than by populating
// directly from the producer, working around a binary-fuse construction
// defect with non-unique inputs (spec §4.5, §9).
func collectUnique(p KeyProducer) []uint64 {
	seen := make(map[uint64]struct{}, p.Len())
	out := make([]uint64, 0, p.Len())
	for k := range p.Keys() {
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	return out
}
