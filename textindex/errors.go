package textindex

import "errors"

// Errors returned by Contains and Query, matching spec §4.6/§7 exactly.
var (
	ErrEmptySearchWord = errors.New("textindex: search word is empty")
	ErrMoreThanOneWord = errors.New("textindex: search word must be exactly one token")
)
