package keyhash

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHashStable(t *testing.T) {
	require.Equal(t, Hash("test"), Hash("test"))
	require.NotEqual(t, Hash("test"), Hash("boo"))
}

func TestHashBytesMatchesHash(t *testing.T) {
	require.Equal(t, Hash("welt"), HashBytes([]byte("welt")))
}
