package sequence

import (
	"fmt"
)

// Factor is one step of an LZ-style parse: the half-open range
// [Start, Start+Length). Source is the start of an earlier occurrence of the
// copied part of the factor, or -1 when the factor is a literal.
type Factor struct {
	Start  int `json:"start"`
	Length int `json:"length"`
	Source int `json:"source"`
}

// End returns the exclusive end of the factor
func (f Factor) End() int { return f.Start + f.Length }

// IsLiteral reports whether the factor copies nothing
func (f Factor) IsLiteral() bool { return f.Source < 0 }

// Factorization is an ordered list of factors covering a sequence
type Factorization []Factor

// Count returns the number of factors
func (p Factorization) Count() int { return len(p) }

// Boundaries returns the start offset of every factor
func (p Factorization) Boundaries() []int {
	out := make([]int, len(p))
	for i, f := range p {
		out[i] = f.Start
	}
	return out
}

// Lengths returns the length of every factor
func (p Factorization) Lengths() []int {
	out := make([]int, len(p))
	for i, f := range p {
		out[i] = f.Length
	}
	return out
}

// Validate checks that the factors tile [0, n) with no gaps or overlaps
func (p Factorization) Validate(n int) error {
	next := 0
	for i, f := range p {
		if f.Length < 1 {
			return fmt.Errorf("factor %d has length %d", i, f.Length)
		}
		if f.Start != next {
			return fmt.Errorf("factor %d starts at %d, expected %d", i, f.Start, next)
		}
		next = f.End()
	}
	if next != n {
		return fmt.Errorf("factors cover [0,%d), sequence has %d symbols", next, n)
	}
	return nil
}

// VerifySources checks that each factor's copied part really occurs at its
// source. copied returns how many leading symbols of a factor were copied.
func (p Factorization) VerifySources(s Sequence, copied func(Factor) int) error {
	for i, f := range p {
		if f.IsLiteral() {
			continue
		}
		k := copied(f)
		if f.Source >= f.Start || f.Source+k > len(s) {
			return fmt.Errorf("factor %d: source %d out of range for start %d", i, f.Source, f.Start)
		}
		for j := 0; j < k; j++ {
			if s[f.Source+j] != s[f.Start+j] {
				return fmt.Errorf("factor %d: mismatch at offset %d (source %d)", i, j, f.Source)
			}
		}
	}
	return nil
}
