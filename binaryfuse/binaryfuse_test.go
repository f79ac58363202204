package binaryfuse

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func keySet(n int) []uint64 {
	keys := make([]uint64, n)
	for i := range keys {
		keys[i] = uint64(i)*2654435761 + 12345
	}
	return keys
}

func TestPopulateAndContainsAllWidths(t *testing.T) {
	for _, bits := range []Bits{Bits8, Bits16, Bits32} {
		bits := bits
		t.Run(bits.String(), func(t *testing.T) {
			keys := keySet(1000)
			f, err := Populate(bits, keys)
			require.NoError(t, err)
			for _, k := range keys {
				require.True(t, f.Contains(k))
			}
			require.Greater(t, f.SizeInBytes(), 0)
		})
	}
}

func TestBlobRoundTrip(t *testing.T) {
	for _, bits := range []Bits{Bits8, Bits16, Bits32} {
		bits := bits
		t.Run(bits.String(), func(t *testing.T) {
			keys := keySet(500)
			f, err := Populate(bits, keys)
			require.NoError(t, err)

			reloaded, err := FromBlob(bits, f.Blob())
			require.NoError(t, err)
			for _, k := range keys {
				require.True(t, reloaded.Contains(k))
			}
		})
	}
}

func TestPopulateUnsupportedWidth(t *testing.T) {
	_, err := Populate(Bits(12), []uint64{1, 2, 3})
	require.Error(t, err)
}
