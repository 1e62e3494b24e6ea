package complexity

import (
	"fmt"
	"math"
	"strings"

	"seqentropy/domain/sequence"
	"seqentropy/internal/errors"
)

// LZ76 returns the Kaspar-Schuster complexity of seq.
func LZ76(seq sequence.Sequence, opts ...Option) (sequence.Complexity, error) {
	return estimate(seq, KasparSchuster, opts)
}

// LZ77 returns the number of phrases in the greedy non-overlapping LZ77
// factorization of seq.
func LZ77(seq sequence.Sequence, opts ...Option) (sequence.Complexity, error) {
	return estimate(seq, Greedy77, opts)
}

// Normalize scales a factor count by log_base(n)/n. It returns NaN for n <= 1.
func Normalize(count, n int, base float64) float64 {
	if n <= 1 {
		return math.NaN()
	}
	return float64(count) * math.Log(float64(n)) / math.Log(base) / float64(n)
}

func estimate(seq sequence.Sequence, policy Policy, opts []Option) (sequence.Complexity, error) {
	o, err := buildOptions(opts)
	if err != nil {
		return sequence.Complexity{}, err
	}
	res := sequence.Complexity{Estimator: policy.Name, N: len(seq), Normalized: math.NaN()}
	if len(seq) == 0 {
		if o.Strict {
			return res, errors.Wrapf(ErrEmptyInput, "%s of an empty sequence", policy.Name)
		}
		return res, nil
	}

	factors, err := factorizeWith(seq, policy, o)
	if err != nil {
		return sequence.Complexity{}, err
	}
	res.Factors = factors
	res.Count = len(factors)
	res.Normalized = Normalize(res.Count, res.N, o.Base)
	return res, nil
}

// Kind names an estimator
type Kind string

const (
	KindLZ76 Kind = "lz76"
	KindLZ77 Kind = "lz77"
)

// Kinds lists every estimator in a stable order
func Kinds() []Kind { return []Kind{KindLZ76, KindLZ77} }

// ParseKind converts a user-supplied name into a Kind
func ParseKind(s string) (Kind, error) {
	switch k := Kind(strings.ToLower(strings.TrimSpace(s))); k {
	case KindLZ76, KindLZ77:
		return k, nil
	default:
		return "", errors.Wrapf(ErrInvalidInput, "unknown estimator %q", s)
	}
}

// Estimator binds a policy to a fixed option set
type Estimator struct {
	policy Policy
	opts   []Option
}

// NewEstimator creates an estimator of the given kind. Options are validated
// up front so Estimate only fails on its input.
func NewEstimator(kind Kind, opts ...Option) (*Estimator, error) {
	var policy Policy
	switch kind {
	case KindLZ76:
		policy = KasparSchuster
	case KindLZ77:
		policy = Greedy77
	default:
		return nil, errors.Wrapf(ErrInvalidInput, "unknown estimator %q", kind)
	}
	if _, err := buildOptions(opts); err != nil {
		return nil, fmt.Errorf("estimator %s: %w", kind, err)
	}
	return &Estimator{policy: policy, opts: opts}, nil
}

// Name returns the estimator name
func (e *Estimator) Name() string { return e.policy.Name }

// Policy returns the parse policy
func (e *Estimator) Policy() Policy { return e.policy }

// Estimate computes the complexity of seq
func (e *Estimator) Estimate(seq sequence.Sequence) (sequence.Complexity, error) {
	return estimate(seq, e.policy, e.opts)
}
