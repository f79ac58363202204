package layeredfilter

// Handle identifies a previously-inserted document for the caller's own
// lifetime bookkeeping. The LayeredFilter itself owns the producer and
// result regardless of whether the caller keeps the Handle around.
type Handle struct {
	Division int
	Index    int
}

// Insert records a new document's keys and result, choosing a mid-layer
// division to keep divisions balanced (spec §4.5):
//
//  1. target = TotalKeysEstimate / Divisions
//  2. place in the first division whose KeysCount+len(keys) < target
//  3. if none qualifies, fall back to len(keys) mod Divisions
//
// The producer must remain replayable until Index returns.
func (lf *LayeredFilter) Insert(producer KeyProducer, result Result) Handle {
	count := uint64(producer.Len())
	target := lf.TotalKeysEstimate / uint64(len(lf.MidLayer))

	division := -1
	for i := range lf.MidLayer {
		if lf.MidLayer[i].KeysCount+count < target {
			division = i
			break
		}
	}
	if division == -1 {
		division = int(count % uint64(len(lf.MidLayer)))
	}

	inner := &InnerLayer{
		KeysCount: count,
		Producer:  producer,
		Result:    result,
	}
	lf.MidLayer[division].InnerLayers = append(lf.MidLayer[division].InnerLayers, inner)
	lf.MidLayer[division].KeysCount += count
	lf.Keys += count

	return Handle{Division: division, Index: len(lf.MidLayer[division].InnerLayers) - 1}
}
