package complexity

import (
	"fmt"
	"math"
	"strings"

	"seqentropy/internal/errors"
)

// IndexMode selects the longest-match search used by a parse.
type IndexMode string

const (
	// IndexNaive uses brute-force substring search.
	IndexNaive IndexMode = "naive"
	// IndexSuffix uses a suffix array (LZ76) or suffix automaton (LZ77).
	IndexSuffix IndexMode = "indexed"
	// IndexAuto picks naive below AutoThreshold symbols, indexed otherwise.
	IndexAuto IndexMode = "auto"
)

const (
	// DefaultBase is the logarithm base of the normalized complexity.
	DefaultBase = 2.0
	// DefaultAutoThreshold is the sequence length at which IndexAuto
	// switches to the suffix-based matchers.
	DefaultAutoThreshold = 64
)

// ParseIndexMode converts a config string into an IndexMode
func ParseIndexMode(s string) (IndexMode, error) {
	switch m := IndexMode(strings.ToLower(strings.TrimSpace(s))); m {
	case IndexNaive, IndexSuffix, IndexAuto:
		return m, nil
	case "":
		return IndexAuto, nil
	default:
		return "", errors.InvalidInput(fmt.Sprintf("unknown index mode %q", s))
	}
}

// Options tunes an estimator call
type Options struct {
	Base          float64
	Strict        bool
	Index         IndexMode
	AutoThreshold int
}

// Option is a functional option for configuring an estimator call.
type Option func(*Options)

// WithBase sets the logarithm base of the normalized complexity.
func WithBase(b float64) Option {
	return func(o *Options) { o.Base = b }
}

// WithStrict makes an empty sequence an EMPTY_INPUT error instead of the
// degenerate zero result.
func WithStrict(strict bool) Option {
	return func(o *Options) { o.Strict = strict }
}

// WithIndex selects the matcher.
func WithIndex(m IndexMode) Option {
	return func(o *Options) { o.Index = m }
}

// WithAutoThreshold sets the length at which IndexAuto goes indexed.
func WithAutoThreshold(n int) Option {
	return func(o *Options) { o.AutoThreshold = n }
}

func buildOptions(opts []Option) (Options, error) {
	o := Options{
		Base:          DefaultBase,
		Index:         IndexAuto,
		AutoThreshold: DefaultAutoThreshold,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if !(o.Base > 0) || o.Base == 1 || math.IsInf(o.Base, 0) {
		return o, errors.InvalidInput(fmt.Sprintf("logarithm base must be positive and not 1, got %v", o.Base))
	}
	mode, err := ParseIndexMode(string(o.Index))
	if err != nil {
		return o, err
	}
	o.Index = mode
	if o.AutoThreshold < 0 {
		return o, errors.InvalidInput(fmt.Sprintf("auto threshold must be non-negative, got %d", o.AutoThreshold))
	}
	return o, nil
}

func (o Options) newMatcher(seq []int, policy Policy) matcher {
	indexed := o.Index == IndexSuffix || (o.Index == IndexAuto && len(seq) >= o.AutoThreshold)
	if !indexed {
		return &naiveMatcher{seq: seq, policy: policy}
	}
	if policy.SelfOverlap {
		return newSuffixArrayMatcher(seq)
	}
	return newAutomatonMatcher(seq)
}
