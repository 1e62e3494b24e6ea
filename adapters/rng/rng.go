package rng

import (
	"context"
	"math/rand"
)

// Adapter implements ports.RNGPort with math/rand sources whose seeds are
// derived from the stream coordinates.
type Adapter struct{}

// New creates an RNG adapter
func New() *Adapter {
	return &Adapter{}
}

// Stream creates a deterministic RNG stream for a specific run/stage/key
func (a *Adapter) Stream(ctx context.Context, runID, stageName, key string, baseSeed int64) (*rand.Rand, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	seed := baseSeed
	if runID != "" {
		seed = int64(hashString(runID)) + seed
	}
	if stageName != "" {
		seed = int64(hashString(stageName)) + seed
	}
	if key != "" {
		seed = int64(hashString(key)) + seed
	}
	return rand.New(rand.NewSource(seed)), nil
}

// hashString creates a simple hash for deterministic seeding
func hashString(s string) uint32 {
	var hash uint32 = 5381
	for _, c := range s {
		hash = ((hash << 5) + hash) + uint32(c) // djb2
	}
	return hash
}
