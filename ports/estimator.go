package ports

import (
	"seqentropy/domain/sequence"
)

// ComplexityEstimator computes one complexity measure over an integer-coded
// sequence. Implementations are pure and safe for concurrent use.
type ComplexityEstimator interface {
	Name() string
	Estimate(seq sequence.Sequence) (sequence.Complexity, error)
}
