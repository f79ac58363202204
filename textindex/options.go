package textindex

// Options configures a TextIndex's stemmer and initial size estimate (spec
// §4.6). Fingerprint width and mid-layer division count are not part of
// Options: they are compile-time constants of the layeredfilter package.
type Options struct {
	EstimatedKeys uint64
	Language      string
	CharEnc       string
}

// DefaultOptions matches spec §4.6's defaults.
var DefaultOptions = Options{
	EstimatedKeys: 100,
	Language:      "german",
	CharEnc:       "UTF_8",
}

func (o Options) withDefaults() Options {
	if o.EstimatedKeys == 0 {
		o.EstimatedKeys = DefaultOptions.EstimatedKeys
	}
	if o.Language == "" {
		o.Language = DefaultOptions.Language
	}
	if o.CharEnc == "" {
		o.CharEnc = DefaultOptions.CharEnc
	}
	return o
}

// QueryType selects conjunctive (All) or disjunctive (Any) query semantics.
type QueryType int

const (
	Any QueryType = iota
	All
)

// QueryOptions configures a single Query call.
type QueryOptions struct {
	Type QueryType
}

// DefaultQueryOptions matches spec §4.6's default (Any).
var DefaultQueryOptions = QueryOptions{Type: Any}
