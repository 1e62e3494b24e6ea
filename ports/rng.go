package ports

import (
	"context"
	"math/rand"
)

// RNGPort provides seeded random number generation for deterministic operations
type RNGPort interface {
	// Stream creates a deterministic RNG stream for one unit of work.
	// The same (runID, stageName, key, baseSeed) always yields the same stream,
	// independent of which goroutine asks for it.
	Stream(ctx context.Context, runID, stageName, key string, baseSeed int64) (*rand.Rand, error)
}
