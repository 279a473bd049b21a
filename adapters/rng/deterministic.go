// Package rng provides the deterministic random stream adapter used by
// simulations. Streams are PCG generators keyed by (name, seed), so any
// named draw sequence can be replayed exactly.
package rng

import (
	"context"
	"fmt"
	"math/rand/v2"

	"venturesim/domain/core"
	"venturesim/ports"
)

// DeterministicAdapter implements ports.RNGPort over math/rand/v2 PCG
// sources. The name is folded into the second PCG seed word, so distinct
// names produce independent streams from one base seed.
type DeterministicAdapter struct{}

// NewDeterministicAdapter creates an RNG adapter.
func NewDeterministicAdapter() *DeterministicAdapter {
	return &DeterministicAdapter{}
}

var _ ports.RNGPort = (*DeterministicAdapter)(nil)

// SeededStream creates a deterministic random number generator for a named operation
func (a *DeterministicAdapter) SeededStream(ctx context.Context, name string, seed int64) (*rand.Rand, error) {
	if name == "" {
		return nil, core.NewArgumentError("name", "stream name cannot be empty")
	}
	return rand.New(rand.NewPCG(uint64(seed), hashString(name))), nil
}

// WorkerStream creates a deterministic RNG stream for one worker of a
// partitioned experiment
func (a *DeterministicAdapter) WorkerStream(ctx context.Context, name string, worker int, baseSeed int64) (*rand.Rand, error) {
	if worker < 0 {
		return nil, core.NewArgumentError("worker", "worker index cannot be negative")
	}
	return a.SeededStream(ctx, fmt.Sprintf("%s/worker/%d", name, worker), baseSeed)
}

// ValidateSeed replays the first draws of a named stream against expected
// values and fails with ErrSeedMismatch on any difference
func (a *DeterministicAdapter) ValidateSeed(ctx context.Context, name string, seed int64, expected []float64) error {
	rng, err := a.SeededStream(ctx, name, seed)
	if err != nil {
		return err
	}
	for i, want := range expected {
		got := rng.Float64()
		if got != want {
			return fmt.Errorf("%w: stream %s draw %d: got %v, want %v", core.ErrSeedMismatch, name, i, got, want)
		}
	}
	return nil
}

// hashString creates a simple hash for deterministic seeding
func hashString(s string) uint64 {
	var hash uint64 = 5381
	for _, c := range s {
		hash = ((hash << 5) + hash) + uint64(c) // djb2 algorithm
	}
	return hash
}
