// Package tokenizer splits raw UTF-8 text into lowercase tokens.
//
// A token is a maximal run of bytes between ASCII space (U+0020) separators.
// Case folding uses full Unicode case data, not an ASCII-only table, so
// non-Latin scripts with case distinctions fold correctly.
package tokenizer

import (
	"iter"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var lowerer = cases.Lower(language.Und)

// Tokenize returns the non-empty lowercase tokens of s, in order.
//
// The separator is exactly the ASCII space character; runs of multiple
// spaces never produce empty tokens. Non-letter runs (e.g. digits) are
// returned unchanged except for case folding, which is a no-op for them.
func Tokenize(s string) []string {
	fields := strings.Split(s, " ")
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if f == "" {
			continue
		}
		out = append(out, lowerer.String(f))
	}
	return out
}

// Tokens returns a lazy, single-pass sequence of the same tokens Tokenize
// would return, without building the intermediate slice up front. Callers
// that only need to hash-and-discard tokens (the common build/query path)
// can use this to avoid an allocation for the token slice itself.
func Tokens(s string) iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, f := range strings.Split(s, " ") {
			if f == "" {
				continue
			}
			if !yield(lowerer.String(f)) {
				return
			}
		}
	}
}

// Count returns the number of tokens Tokenize(s) would produce, without
// allocating them. Used by textindex.Contains to validate word counts.
func Count(s string) int {
	n := 0
	for _, f := range strings.Split(s, " ") {
		if f != "" {
			n++
		}
	}
	return n
}
