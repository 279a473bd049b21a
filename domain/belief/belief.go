// Package belief holds the Bayesian transition model of the lifecycle chain.
// Each stage's annual transition probabilities are a Dirichlet belief over an
// outcome space: concentration parameters act as pseudo-counts, posterior
// means give point probabilities, and observed transitions update the belief
// by conjugate addition.
package belief

import (
	"fmt"
	"math/rand/v2"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat/distuv"

	"venturesim/domain/core"
	"venturesim/domain/venture"
)

// Belief is a Dirichlet distribution over one outcome space. The
// concentration vector is indexed by the space's coordinate order and every
// component stays strictly positive, so posterior means and samples are
// always well-defined probability vectors.
type Belief struct {
	space venture.OutcomeSpace
	alpha []float64
}

// NewBelief creates a belief from prior pseudo-counts. The vector must match
// the space's size and every component must be strictly positive.
func NewBelief(space venture.OutcomeSpace, alpha []float64) (*Belief, error) {
	if len(alpha) != space.Size() {
		return nil, core.NewArgumentError("alpha",
			fmt.Sprintf("%s space needs %d components, got %d", space.Name(), space.Size(), len(alpha)))
	}
	for i, a := range alpha {
		if a <= 0 {
			return nil, core.NewArgumentError("alpha",
				fmt.Sprintf("pseudo-count for %s must be positive, got %v", space.At(i), a))
		}
	}

	owned := make([]float64, len(alpha))
	copy(owned, alpha)
	return &Belief{space: space, alpha: owned}, nil
}

// Space returns the outcome space the belief is expressed over.
func (b *Belief) Space() venture.OutcomeSpace { return b.space }

// Alpha returns a copy of the concentration vector in coordinate order.
func (b *Belief) Alpha() []float64 {
	out := make([]float64, len(b.alpha))
	copy(out, b.alpha)
	return out
}

// Total returns the concentration total, the effective sample size of the
// belief.
func (b *Belief) Total() float64 {
	return floats.Sum(b.alpha)
}

// Mean returns the posterior mean probability vector in coordinate order.
// Components sum to one.
func (b *Belief) Mean() []float64 {
	total := floats.Sum(b.alpha)
	out := make([]float64, len(b.alpha))
	for i, a := range b.alpha {
		out[i] = a / total
	}
	return out
}

// Sample draws one probability vector from the Dirichlet posterior.
func (b *Belief) Sample(src rand.Source) []float64 {
	return distuv.NewDirichlet(b.alpha, src).Rand(nil)
}

// Observe applies count observed transitions to the given outcome. Counts
// are conjugate pseudo-count additions, so observation order never changes
// the resulting belief.
func (b *Belief) Observe(outcome venture.Outcome, count int) error {
	if count <= 0 {
		return core.NewArgumentError("count",
			fmt.Sprintf("observation count must be positive, got %d", count))
	}
	i, ok := b.space.Index(outcome)
	if !ok {
		return core.NewOutcomeError(outcome.String(), b.space.Name()+" space")
	}
	b.alpha[i] += float64(count)
	return nil
}

// Credible returns the equal-tailed credible interval for one outcome's
// probability at the given level, via the Beta marginal of the Dirichlet.
func (b *Belief) Credible(outcome venture.Outcome, level float64) (lower, upper float64, err error) {
	if level <= 0 || level >= 1 {
		return 0, 0, core.NewArgumentError("level",
			fmt.Sprintf("credible level must be in (0,1), got %v", level))
	}
	i, ok := b.space.Index(outcome)
	if !ok {
		return 0, 0, core.NewOutcomeError(outcome.String(), b.space.Name()+" space")
	}

	// Marginal of coordinate i of Dirichlet(alpha) is Beta(alpha_i, alpha_0-alpha_i).
	marginal := distuv.Beta{Alpha: b.alpha[i], Beta: floats.Sum(b.alpha) - b.alpha[i]}
	tail := (1 - level) / 2
	return marginal.Quantile(tail), marginal.Quantile(1 - tail), nil
}
