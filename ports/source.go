package ports

import (
	"context"

	"seqentropy/domain/sequence"
)

// SequenceSource yields integer-coded sequences from some storage format
type SequenceSource interface {
	ReadAll(ctx context.Context) ([]sequence.Named, error)
}
