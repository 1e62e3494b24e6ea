package complexity

import (
	"fmt"

	"seqentropy/domain/sequence"
	"seqentropy/internal/errors"
)

// factorize runs the shared parse loop. The policy decides the copy window
// (through the matcher) and whether an innovative symbol closes each factor.
func factorize(seq []int, policy Policy, m matcher) sequence.Factorization {
	n := len(seq)
	out := make(sequence.Factorization, 0, 16)
	for pos := 0; pos < n; {
		k, src := m.longestPrior(pos)
		length := k
		if policy.Innovative {
			length++
		}
		if length < 1 {
			length = 1
		}
		if pos+length > n {
			length = n - pos
		}
		if k == 0 {
			src = -1
		}
		out = append(out, sequence.Factor{Start: pos, Length: length, Source: src})
		pos += length
	}
	return out
}

// Factorize parses seq under policy and returns the validated factors.
func Factorize(seq sequence.Sequence, policy Policy, opts ...Option) (sequence.Factorization, error) {
	o, err := buildOptions(opts)
	if err != nil {
		return nil, err
	}
	return factorizeWith(seq, policy, o)
}

func factorizeWith(seq sequence.Sequence, policy Policy, o Options) (sequence.Factorization, error) {
	factors := factorize(seq, policy, o.newMatcher(seq, policy))
	if err := checkFactors(seq, policy, factors); err != nil {
		return nil, err
	}
	return factors, nil
}

func checkFactors(seq sequence.Sequence, policy Policy, factors sequence.Factorization) error {
	err := factors.Validate(len(seq))
	if err == nil {
		err = factors.VerifySources(seq, func(f sequence.Factor) int {
			return policy.copied(f.Length)
		})
	}
	if err == nil {
		return nil
	}
	if debugAssertions {
		panic(fmt.Sprintf("%s factorization of %d symbols: %v", policy.Name, len(seq), err))
	}
	return errors.Wrapf(fmt.Errorf("%w: %v", ErrInternal, err), "%s factorization", policy.Name)
}
