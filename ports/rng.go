package ports

import (
	"context"
	"math/rand/v2"
)

// RNGPort provides seeded random number generation for deterministic operations
type RNGPort interface {
	// SeededStream creates a deterministic random number generator for a named operation
	SeededStream(ctx context.Context, name string, seed int64) (*rand.Rand, error)

	// WorkerStream creates a deterministic RNG stream for one worker of a
	// partitioned experiment. Streams for different workers are independent,
	// and the same (name, worker, baseSeed) always yields the same stream, so
	// a partitioned run replays bit-identically.
	WorkerStream(ctx context.Context, name string, worker int, baseSeed int64) (*rand.Rand, error)

	// ValidateSeed ensures the seed produces expected deterministic results
	ValidateSeed(ctx context.Context, name string, seed int64, expected []float64) error
}
