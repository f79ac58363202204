package layeredfilter

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func keysFor(base int, n int) []uint64 {
	keys := make([]uint64, n)
	for i := range keys {
		keys[i] = uint64(base*100000 + i)
	}
	return keys
}

func TestInsertIndexContains(t *testing.T) {
	lf := New(1000, DefaultOptions)

	doc1Keys := keysFor(1, 5)
	doc2Keys := keysFor(2, 7)
	lf.Insert(NewSliceProducer(doc1Keys), BytesResult("doc1"))
	lf.Insert(NewSliceProducer(doc2Keys), BytesResult("doc2"))

	require.NoError(t, lf.Index())

	for _, k := range doc1Keys {
		require.True(t, lf.Contains(k))
	}
	require.False(t, lf.Contains(999999999))
}

func TestIndexCalledTwiceErrors(t *testing.T) {
	lf := New(10, DefaultOptions)
	lf.Insert(NewSliceProducer(keysFor(1, 3)), BytesResult("a"))
	require.NoError(t, lf.Index())
	require.Error(t, lf.Index())
}

func TestQueryOrAnd(t *testing.T) {
	lf := New(1000, DefaultOptions)

	// doc A: keys {1,2,3}; doc B: keys {3,4,5}
	a := []uint64{1, 2, 3}
	b := []uint64{3, 4, 5}
	lf.Insert(NewSliceProducer(a), BytesResult("A"))
	lf.Insert(NewSliceProducer(b), BytesResult("B"))
	require.NoError(t, lf.Index())

	var orResults []Result
	orCount := lf.QueryOr([]uint64{1, 5}, func(r Result) { orResults = append(orResults, r) })
	require.Equal(t, 2, orCount)
	require.Len(t, orResults, 2)

	var andResults []Result
	andCount := lf.QueryAnd([]uint64{3}, func(r Result) { andResults = append(andResults, r) })
	require.Equal(t, 2, andCount)
	require.Len(t, andResults, 2)

	andCount2 := lf.QueryAnd([]uint64{1, 4}, nil)
	require.Equal(t, 0, andCount2)
}

func TestQueryEmptyKeys(t *testing.T) {
	lf := New(1000, DefaultOptions)
	lf.Insert(NewSliceProducer(keysFor(1, 3)), BytesResult("A"))
	lf.Insert(NewSliceProducer(keysFor(2, 3)), BytesResult("B"))
	require.NoError(t, lf.Index())

	require.Equal(t, 0, lf.QueryOr(nil, nil))

	var all []Result
	require.Equal(t, 2, lf.QueryAnd(nil, func(r Result) { all = append(all, r) }))
	require.Len(t, all, 2)
}

func TestQueryConsistency(t *testing.T) {
	lf := New(1000, DefaultOptions)
	a := []uint64{10, 20, 30}
	b := []uint64{30, 40, 50}
	lf.Insert(NewSliceProducer(a), BytesResult("A"))
	lf.Insert(NewSliceProducer(b), BytesResult("B"))
	require.NoError(t, lf.Index())

	ts := []uint64{10, 40}
	require.LessOrEqual(t, lf.QueryAnd(ts, nil), lf.QueryOr(ts, nil))

	single := []uint64{30}
	require.Equal(t, lf.QueryAnd(single, nil), lf.QueryOr(single, nil))
}

func TestKeyCountConservation(t *testing.T) {
	lf := New(1000, DefaultOptions)
	lf.Insert(NewSliceProducer(keysFor(1, 4)), BytesResult("A"))
	lf.Insert(NewSliceProducer(keysFor(2, 9)), BytesResult("B"))
	lf.Insert(NewSliceProducer(keysFor(3, 2)), BytesResult("C"))

	var sumMid uint64
	var sumInner uint64
	for _, mid := range lf.MidLayer {
		sumMid += mid.KeysCount
		for _, inner := range mid.InnerLayers {
			sumInner += inner.KeysCount
		}
	}
	require.Equal(t, lf.Keys, sumMid)
	require.Equal(t, lf.Keys, sumInner)
}

func TestBalance(t *testing.T) {
	lf := New(800, DefaultOptions) // estimate E, D=8 => target 100/division
	const docKeys = 10
	for i := 0; i < 20; i++ {
		lf.Insert(NewSliceProducer(keysFor(i+1, docKeys)), Uint64Result(i))
	}
	target := lf.TotalKeysEstimate / uint64(len(lf.MidLayer))
	// The balanced path only places a document in a division when, before
	// placement, that division's count plus the new document's keys stays
	// under target, so it never takes a division past target. Here 20
	// documents of 10 keys fill divisions 0 and 1 to 90 keys each and put
	// the last 2 in division 2, so the fallback path (len(keys) mod D) is
	// never taken and every division stays within target+docKeys.
	for _, mid := range lf.MidLayer {
		require.LessOrEqual(t, mid.KeysCount, target+docKeys)
	}
}

func TestSizeInBytesPositive(t *testing.T) {
	lf := New(100, DefaultOptions)
	lf.Insert(NewSliceProducer(keysFor(1, 5)), BytesResult("A"))
	require.NoError(t, lf.Index())
	require.Greater(t, lf.SizeInBytes(), 0)
}
