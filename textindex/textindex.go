// Package textindex is the top-level façade over a layered binary-fuse
// filter tree (spec §4.6): it turns raw text into stemmed keys, owns the
// stemmer and the underlying layeredfilter.LayeredFilter, and exposes the
// insert/index/contains/query/save/load surface that callers (the CLI
// builder, the WASM host) are built against.
package textindex

import (
	"bytes"
	"fmt"
	"io"

	"github.com/google/uuid"
	"golang.org/x/exp/mmap"

	"github.com/thekorn/fastfilter-search/keyhash"
	"github.com/thekorn/fastfilter-search/layeredfilter"
	"github.com/thekorn/fastfilter-search/persistence"
	"github.com/thekorn/fastfilter-search/stemmer"
	"github.com/thekorn/fastfilter-search/tokenizer"
)

// TextIndex owns one stemmer and one layeredfilter.LayeredFilter.
type TextIndex struct {
	options Options
	stemmer *stemmer.Stemmer
	layered *layeredfilter.LayeredFilter
}

// New allocates a TextIndex ready to accept Insert calls. EstimatedKeys
// should be the expected total token count across all documents that will
// be inserted before Index is called; an inaccurate estimate only degrades
// division balance (spec §4.5), it never produces incorrect results.
func New(opts Options) (*TextIndex, error) {
	opts = opts.withDefaults()
	st, err := stemmer.New(opts.Language, opts.CharEnc)
	if err != nil {
		return nil, fmt.Errorf("textindex: %w", err)
	}
	return &TextIndex{
		options: opts,
		stemmer: st,
		layered: layeredfilter.New(opts.EstimatedKeys, layeredfilter.DefaultOptions),
	}, nil
}

func (ti *TextIndex) keysFor(text string) []uint64 {
	tokens := tokenizer.Tokenize(text)
	keys := make([]uint64, len(tokens))
	for i, tok := range tokens {
		keys[i] = keyhash.Hash(ti.stemmer.Stem(tok))
	}
	return keys
}

// Insert tokenizes, stems, and hashes text, then registers the resulting
// key set as one document in the layered filter. The returned UUID is an
// opaque handle for the caller; the index retains its own copy of text as
// the document's Result and owns the key slice from here on (spec §4.6).
func (ti *TextIndex) Insert(text string) (uuid.UUID, error) {
	keys := ti.keysFor(text)
	ti.layered.Insert(layeredfilter.NewSliceProducer(keys), layeredfilter.BytesResult(text))
	return uuid.New(), nil
}

// Index builds the outer, mid-division, and per-document filters from
// everything inserted so far. It may be called at most once.
func (ti *TextIndex) Index() error {
	return ti.layered.Index()
}

// Contains reports whether a single stemmed word is a member of the
// index's outer filter (spec §4.5's containment shortcut). word must
// tokenize to exactly one token.
func (ti *TextIndex) Contains(word string) (bool, error) {
	switch n := tokenizer.Count(word); {
	case n == 0:
		return false, ErrEmptySearchWord
	case n > 1:
		return false, ErrMoreThanOneWord
	}
	tokens := tokenizer.Tokenize(word)
	key := keyhash.Hash(ti.stemmer.Stem(tokens[0]))
	return ti.layered.Contains(key), nil
}

// Query tokenizes term into one or more stemmed keys and evaluates them
// against the index using either disjunctive (Any) or conjunctive (All)
// semantics. Every matching document's original text is passed to sink in
// the order documented in spec §4.5. The document count is returned
// regardless of whether sink is nil.
func (ti *TextIndex) Query(term string, sink func(string), opts QueryOptions) (int, error) {
	if tokenizer.Count(term) == 0 {
		return 0, ErrEmptySearchWord
	}
	keys := ti.keysFor(term)

	wrap := func(r layeredfilter.Result) {
		if sink == nil {
			return
		}
		if b, ok := r.(layeredfilter.BytesResult); ok {
			sink(string(b))
		}
	}

	if opts.Type == All {
		return ti.layered.QueryAnd(keys, wrap), nil
	}
	return ti.layered.QueryOr(keys, wrap), nil
}

// Save writes the index to dir/filename using an atomic temp-file-then-
// rename sequence (spec §5).
func (ti *TextIndex) Save(dir, filename string) error {
	return persistence.SaveToFile(ti.layered, dir, filename)
}

// Load reconstructs a TextIndex previously written by Save. The caller
// must supply the same Language/CharEnc used to build the original index;
// the on-disk format does not carry stemmer configuration (spec §3).
func Load(dir, filename string, opts Options) (*TextIndex, error) {
	opts = opts.withDefaults()
	st, err := stemmer.New(opts.Language, opts.CharEnc)
	if err != nil {
		return nil, fmt.Errorf("textindex: %w", err)
	}
	lf, err := persistence.LoadFromFile(dir, filename, layeredfilter.DefaultOptions)
	if err != nil {
		return nil, fmt.Errorf("textindex: %w", err)
	}
	return &TextIndex{options: opts, stemmer: st, layered: lf}, nil
}

// LoadMMAP is like Load but maps the file into memory via golang.org/x/exp/mmap
// instead of reading it into a buffer, for the large-index / low-memory
// deployment path. The WASM host does not use it: it loads its pushed
// chunk buffer with Loads.
func LoadMMAP(dir, filename string, opts Options) (*TextIndex, error) {
	opts = opts.withDefaults()
	st, err := stemmer.New(opts.Language, opts.CharEnc)
	if err != nil {
		return nil, fmt.Errorf("textindex: %w", err)
	}
	path := dir + "/" + filename
	r, err := mmap.Open(path)
	if err != nil {
		return nil, fmt.Errorf("textindex: mmap open: %w", err)
	}
	defer r.Close()
	section := io.NewSectionReader(r, 0, int64(r.Len()))
	lf, err := persistence.Load(section, layeredfilter.DefaultOptions)
	if err != nil {
		return nil, fmt.Errorf("textindex: %w", err)
	}
	return &TextIndex{options: opts, stemmer: st, layered: lf}, nil
}

// Loads reconstructs a TextIndex from an in-memory byte slice rather than
// a file, for the WASM host (spec §4.8), which receives the index as a
// pushed byte buffer rather than a filesystem path.
func Loads(data []byte, opts Options) (*TextIndex, error) {
	opts = opts.withDefaults()
	st, err := stemmer.New(opts.Language, opts.CharEnc)
	if err != nil {
		return nil, fmt.Errorf("textindex: %w", err)
	}
	lf, err := persistence.Load(bytes.NewReader(data), layeredfilter.DefaultOptions)
	if err != nil {
		return nil, fmt.Errorf("textindex: %w", err)
	}
	return &TextIndex{options: opts, stemmer: st, layered: lf}, nil
}
