package layeredfilter

import (
	"fmt"

	"github.com/thekorn/fastfilter-search/binaryfuse"
)

// Index builds the three filter tiers, in order: outer, then each mid
// division, then each inner layer (spec §4.5 "Indexing"). It must be
// called exactly once, after all Insert calls and before any query.
//
// A division or document with zero keys is left with a nil filter — not
// an error — matching the filter field being "optional" in spec §3.
func (lf *LayeredFilter) Index() error {
	if lf.indexed {
		return fmt.Errorf("layeredfilter: Index called more than once")
	}

	if outer := collectUnique(lf.AllKeys()); len(outer) > 0 {
		f, err := binaryfuse.Populate(lf.Options.FingerprintBits, outer)
		if err != nil {
			return fmt.Errorf("layeredfilter: outer layer: %w", err)
		}
		lf.OuterLayer = f
	}

	for d := range lf.MidLayer {
		if mid := collectUnique(lf.MidDivision(d)); len(mid) > 0 {
			f, err := binaryfuse.Populate(lf.Options.FingerprintBits, mid)
			if err != nil {
				return fmt.Errorf("layeredfilter: mid division %d: %w", d, err)
			}
			lf.MidLayer[d].Filter = f
		}

		for i, inner := range lf.MidLayer[d].InnerLayers {
			keys := collectUnique(inner.Producer)
			if len(keys) == 0 {
				continue
			}
			f, err := binaryfuse.Populate(lf.Options.FingerprintBits, keys)
			if err != nil {
				return fmt.Errorf("layeredfilter: mid division %d inner layer %d: %w", d, i, err)
			}
			inner.Filter = f
		}
	}

	lf.indexed = true
	return nil
}
