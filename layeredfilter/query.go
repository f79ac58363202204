package layeredfilter

// QueryOr returns the number of documents whose inner filter contains at
// least one of keys, pruning whole divisions (and the outer tier) that
// clearly cannot contain any match. If sink is non-nil, each surviving
// document's Result is appended in (division, insertion) order.
//
// An empty keys slice returns 0 (spec §4.5's documented OR edge case).
func (lf *LayeredFilter) QueryOr(keys []uint64, sink func(Result)) int {
	if len(keys) == 0 {
		return 0
	}
	if lf.OuterLayer == nil || !anyContained(lf.OuterLayer, keys) {
		return 0
	}

	count := 0
	for d := range lf.MidLayer {
		mid := lf.MidLayer[d].Filter
		if mid == nil || !anyContained(mid, keys) {
			continue
		}
		for _, inner := range lf.MidLayer[d].InnerLayers {
			if inner.Filter == nil || !anyContained(inner.Filter, keys) {
				continue
			}
			count++
			if sink != nil {
				sink(inner.Result)
			}
		}
	}
	return count
}

// QueryAnd returns the number of documents whose inner filter contains
// every key in keys, with the same pruning structure as QueryOr but
// requiring all keys (not just one) to survive at each tier.
//
// An empty keys slice trivially satisfies every tier's test and returns
// every document (spec §4.5/§9's documented AND edge case).
func (lf *LayeredFilter) QueryAnd(keys []uint64, sink func(Result)) int {
	if len(keys) > 0 {
		if lf.OuterLayer == nil || !allContained(lf.OuterLayer, keys) {
			return 0
		}
	}

	count := 0
	for d := range lf.MidLayer {
		if len(keys) > 0 {
			mid := lf.MidLayer[d].Filter
			if mid == nil || !allContained(mid, keys) {
				continue
			}
		}
		for _, inner := range lf.MidLayer[d].InnerLayers {
			if len(keys) > 0 {
				if inner.Filter == nil || !allContained(inner.Filter, keys) {
					continue
				}
			}
			count++
			if sink != nil {
				sink(inner.Result)
			}
		}
	}
	return count
}

func anyContained(f interface{ Contains(uint64) bool }, keys []uint64) bool {
	for _, k := range keys {
		if f.Contains(k) {
			return true
		}
	}
	return false
}

func allContained(f interface{ Contains(uint64) bool }, keys []uint64) bool {
	for _, k := range keys {
		if !f.Contains(k) {
			return false
		}
	}
	return true
}
