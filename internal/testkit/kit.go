// Package testkit provides shared fixtures for service-level tests: the
// benchmark transition model, a deterministic RNG adapter, and canonical
// experiment specs.
package testkit

import (
	"testing"

	"venturesim/adapters/rng"
	"venturesim/domain/belief"
	"venturesim/domain/experiment"
	"venturesim/internal/config"
	"venturesim/ports"
)

// Seed is the fixed seed fixtures run under.
const Seed int64 = 42

// TestKit provides testing utilities and fixtures.
type TestKit struct{}

// NewTestKit creates a new test kit instance.
func NewTestKit() *TestKit {
	return &TestKit{}
}

// RNGAdapter returns the deterministic RNG adapter.
func (k *TestKit) RNGAdapter() ports.RNGPort {
	return rng.NewDeterministicAdapter()
}

// BenchmarkModel builds a fresh copy of the benchmark transition model.
// Each call returns an independent model, so observations applied in one
// test cannot leak into another.
func (k *TestKit) BenchmarkModel(t *testing.T) *belief.TransitionModel {
	t.Helper()
	model, err := config.Default().TransitionModel()
	if err != nil {
		t.Fatalf("benchmark model: %v", err)
	}
	return model
}

// Spec returns a single-worker spec under the fixed seed, sized for fast
// tests.
func (k *TestKit) Spec(trials int) experiment.Spec {
	return experiment.Spec{Trials: trials, Seed: Seed, Workers: 1}
}
