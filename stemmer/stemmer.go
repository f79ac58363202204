// Package stemmer adapts the kljensen/snowball stemming algorithms to the
// (language, character encoding) configuration surface this index uses.
package stemmer

import (
	"errors"
	"fmt"

	"github.com/kljensen/snowball"
)

// ErrUnknownStemmer is returned by New when the (language, charenc) pair is
// not supported.
var ErrUnknownStemmer = errors.New("stemmer: unknown (language, charenc) pair")

// supportedLanguages mirrors what github.com/kljensen/snowball implements.
var supportedLanguages = map[string]bool{
	"danish": true, "dutch": true, "english": true, "finnish": true,
	"french": true, "german": true, "hungarian": true, "italian": true,
	"norwegian": true, "portuguese": true, "romanian": true, "russian": true,
	"spanish": true, "swedish": true, "turkish": true,
}

// Stemmer reduces tokens to their Snowball stem for a fixed language.
//
// A Stemmer is not safe for concurrent use; per the index's single-actor
// model (spec §5) each TextIndex owns exactly one Stemmer.
type Stemmer struct {
	language string
	charenc  string
}

// New constructs a Stemmer for the given Snowball algorithm name and
// character encoding. Only "UTF_8" is supported for charenc: the upstream
// Snowball-C heritage of this format accepted other encodings, but the pure
// Go port this module is built on does not, so anything else fails fast
// instead of silently mis-stemming.
func New(language, charenc string) (*Stemmer, error) {
	if charenc != "UTF_8" {
		return nil, fmt.Errorf("%w: charenc %q", ErrUnknownStemmer, charenc)
	}
	if !supportedLanguages[language] {
		return nil, fmt.Errorf("%w: language %q", ErrUnknownStemmer, language)
	}
	return &Stemmer{language: language, charenc: charenc}, nil
}

// Language returns the configured Snowball algorithm name.
func (s *Stemmer) Language() string { return s.language }

// CharEnc returns the configured character encoding.
func (s *Stemmer) CharEnc() string { return s.charenc }

// Stem returns the stem of token. The result is a fresh string; unlike the
// Zig original this binding is not required to borrow into reused scratch
// space, because Go strings are immutable and already cheap to share.
func (s *Stemmer) Stem(token string) string {
	stemmed, err := snowball.Stem(token, s.language, false)
	if err != nil {
		// snowball.Stem only fails on an unsupported language, which New
		// already validated; a failure here would mean the stemmer state
		// itself is corrupt.
		return token
	}
	return stemmed
}
