package textindex

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

func buildGermanIndex(t *testing.T) *TextIndex {
	t.Helper()
	ti, err := New(Options{EstimatedKeys: 50, Language: "german", CharEnc: "UTF_8"})
	require.NoError(t, err)

	_, err = ti.Insert("Die Katze schläft auf dem Sofa")
	require.NoError(t, err)
	_, err = ti.Insert("Der Hund schläft im Garten")
	require.NoError(t, err)
	_, err = ti.Insert("Die Kinder spielen im Garten")
	require.NoError(t, err)

	require.NoError(t, ti.Index())
	return ti
}

func TestContainsKnownWord(t *testing.T) {
	ti := buildGermanIndex(t)

	ok, err := ti.Contains("Garten")
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = ti.Contains("katze")
	require.NoError(t, err)
	require.True(t, ok)
}

func TestContainsUnknownWord(t *testing.T) {
	ti := buildGermanIndex(t)

	ok, err := ti.Contains("Fahrrad")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestContainsRejectsEmptyAndMultiWord(t *testing.T) {
	ti := buildGermanIndex(t)

	_, err := ti.Contains("")
	require.ErrorIs(t, err, ErrEmptySearchWord)

	_, err = ti.Contains("  ")
	require.ErrorIs(t, err, ErrEmptySearchWord)

	_, err = ti.Contains("Katze Garten")
	require.ErrorIs(t, err, ErrMoreThanOneWord)
}

func TestQueryAnyReturnsAllDocsMentioningGarten(t *testing.T) {
	ti := buildGermanIndex(t)

	var hits []string
	n, err := ti.Query("Garten", func(text string) { hits = append(hits, text) }, QueryOptions{Type: Any})
	require.NoError(t, err)
	require.Equal(t, 2, n)
	require.Len(t, hits, 2)
	require.Contains(t, hits, "Der Hund schläft im Garten")
	require.Contains(t, hits, "Die Kinder spielen im Garten")
}

func TestQueryAllRequiresEveryTerm(t *testing.T) {
	ti := buildGermanIndex(t)

	n, err := ti.Query("Hund Garten", nil, QueryOptions{Type: All})
	require.NoError(t, err)
	require.Equal(t, 1, n)

	n, err = ti.Query("Katze Garten", nil, QueryOptions{Type: All})
	require.NoError(t, err)
	require.Equal(t, 0, n)
}

func TestQueryEmptyTermErrors(t *testing.T) {
	ti := buildGermanIndex(t)
	_, err := ti.Query("", nil, DefaultQueryOptions)
	require.ErrorIs(t, err, ErrEmptySearchWord)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	ti := buildGermanIndex(t)
	dir := t.TempDir()

	require.NoError(t, ti.Save(dir, "german.idx"))

	loaded, err := Load(dir, "german.idx", Options{Language: "german", CharEnc: "UTF_8"})
	require.NoError(t, err)

	ok, err := loaded.Contains("garten")
	require.NoError(t, err)
	require.True(t, ok)

	var hits []string
	n, err := loaded.Query("Garten", func(text string) { hits = append(hits, text) }, QueryOptions{Type: Any})
	require.NoError(t, err)
	require.Equal(t, 2, n)
}

func TestLoadsFromBytes(t *testing.T) {
	ti, err := New(Options{EstimatedKeys: 10, Language: "english", CharEnc: "UTF_8"})
	require.NoError(t, err)
	_, err = ti.Insert("the quick brown fox")
	require.NoError(t, err)
	require.NoError(t, ti.Index())

	dir := t.TempDir()
	require.NoError(t, ti.Save(dir, "en.idx"))

	data, err := os.ReadFile(dir + "/en.idx")
	require.NoError(t, err)

	loaded, err := Loads(data, Options{Language: "english", CharEnc: "UTF_8"})
	require.NoError(t, err)

	ok, err := loaded.Contains("fox")
	require.NoError(t, err)
	require.True(t, ok)
}
