package complexity

import (
	"seqentropy/internal/errors"
)

// Sentinels for errors.Is; returned errors wrap them with context.
var (
	ErrInvalidInput = errors.InvalidInput("invalid input")
	ErrEmptyInput   = errors.EmptyInput("empty sequence")
	ErrInternal     = errors.InvariantViolated("factorization invariant violated")
)
