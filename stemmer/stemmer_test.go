package stemmer

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewUnknownStemmer(t *testing.T) {
	_, err := New("klingon", "UTF_8")
	require.ErrorIs(t, err, ErrUnknownStemmer)

	_, err = New("german", "LATIN1")
	require.ErrorIs(t, err, ErrUnknownStemmer)
}

func TestStemGerman(t *testing.T) {
	s, err := New("german", "UTF_8")
	require.NoError(t, err)

	require.NotEmpty(t, s.Stem("hallo"))
	require.Equal(t, s.Stem("tests"), s.Stem("test"))
}

func TestStemDeterministic(t *testing.T) {
	s, err := New("german", "UTF_8")
	require.NoError(t, err)

	require.Equal(t, s.Stem("testen"), s.Stem("testen"))
}
