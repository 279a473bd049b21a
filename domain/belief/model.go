package belief

import (
	"math/rand/v2"

	"venturesim/domain/core"
	"venturesim/domain/venture"
)

// TransitionModel bundles the per-stage yearly beliefs and the terminal
// belief of the lifecycle chain. It is the single mutable artifact of the
// system: observations sharpen it in place, and every simulation run reads
// whatever state it holds at that moment.
//
// Reads are pure and safe to share across simulation workers. Observe calls
// must not run concurrently with reads on the same model.
type TransitionModel struct {
	stages      map[venture.Stage]*Belief
	terminal    *Belief
	sharedCPlus bool
}

// NewTransitionModel builds a model from prior pseudo-count vectors. Yearly
// priors are indexed by stage in yearly-space coordinate order; the terminal
// prior is in terminal-space coordinate order. Priors for seed through
// series C are required. The series C+ prior is optional: when omitted, the
// C+ stage shares series C's belief, so observations against either stage
// sharpen both.
func NewTransitionModel(stagePriors map[venture.Stage][]float64, terminalPrior []float64) (*TransitionModel, error) {
	for stage := range stagePriors {
		if !stage.Valid() {
			return nil, core.NewStageError(stage.String())
		}
	}

	required := []venture.Stage{venture.StageSeed, venture.StageSeriesA, venture.StageSeriesB, venture.StageSeriesC}
	stages := make(map[venture.Stage]*Belief, len(required)+1)
	for _, stage := range required {
		prior, ok := stagePriors[stage]
		if !ok {
			return nil, core.NewArgumentError("priors", "missing prior for stage "+stage.String())
		}
		b, err := NewBelief(venture.YearlySpace(), prior)
		if err != nil {
			return nil, err
		}
		stages[stage] = b
	}

	sharedCPlus := false
	if prior, ok := stagePriors[venture.StageSeriesCPlus]; ok {
		b, err := NewBelief(venture.YearlySpace(), prior)
		if err != nil {
			return nil, err
		}
		stages[venture.StageSeriesCPlus] = b
	} else {
		stages[venture.StageSeriesCPlus] = stages[venture.StageSeriesC]
		sharedCPlus = true
	}

	terminal, err := NewBelief(venture.TerminalSpace(), terminalPrior)
	if err != nil {
		return nil, err
	}

	return &TransitionModel{stages: stages, terminal: terminal, sharedCPlus: sharedCPlus}, nil
}

// StageBelief returns the belief backing a stage.
func (m *TransitionModel) StageBelief(stage venture.Stage) (*Belief, error) {
	b, ok := m.stages[stage]
	if !ok {
		return nil, core.NewStageError(stage.String())
	}
	return b, nil
}

// TerminalBelief returns the belief for the horizon boundary.
func (m *TransitionModel) TerminalBelief() *Belief { return m.terminal }

// SharesCPlus reports whether series C+ shares series C's belief.
func (m *TransitionModel) SharesCPlus() bool { return m.sharedCPlus }

// Probabilities returns the posterior mean yearly transition vector for a
// stage, in yearly-space coordinate order.
func (m *TransitionModel) Probabilities(stage venture.Stage) ([]float64, error) {
	b, err := m.StageBelief(stage)
	if err != nil {
		return nil, err
	}
	return b.Mean(), nil
}

// SampleProbabilities draws one yearly transition vector for a stage from
// its Dirichlet posterior.
func (m *TransitionModel) SampleProbabilities(stage venture.Stage, src rand.Source) ([]float64, error) {
	b, err := m.StageBelief(stage)
	if err != nil {
		return nil, err
	}
	return b.Sample(src), nil
}

// TerminalProbabilities returns the posterior mean terminal vector in
// terminal-space coordinate order.
func (m *TransitionModel) TerminalProbabilities() []float64 {
	return m.terminal.Mean()
}

// SampleTerminal draws one terminal vector from the Dirichlet posterior.
func (m *TransitionModel) SampleTerminal(src rand.Source) []float64 {
	return m.terminal.Sample(src)
}

// Observe applies count observed yearly transitions at a stage. When series
// C+ shares series C's belief, observing either stage updates the shared
// belief.
func (m *TransitionModel) Observe(stage venture.Stage, outcome venture.Outcome, count int) error {
	b, err := m.StageBelief(stage)
	if err != nil {
		return err
	}
	return b.Observe(outcome, count)
}

// ObserveTerminal applies count observed horizon outcomes.
func (m *TransitionModel) ObserveTerminal(outcome venture.Outcome, count int) error {
	return m.terminal.Observe(outcome, count)
}

// Fingerprint hashes the model's current concentration vectors. Two models
// fingerprint equal iff their beliefs are bit-identical, including whether
// series C+ is shared or explicit, so a manifest fingerprint pins the exact
// model state a result was computed from.
func (m *TransitionModel) Fingerprint() core.ModelFingerprint {
	vectors := make(map[string][]float64, len(m.stages)+1)
	for _, stage := range venture.Stages() {
		if stage == venture.StageSeriesCPlus && m.sharedCPlus {
			// Omitted key marks the shared-belief case: a model with an
			// explicit C+ vector fingerprints differently even when the
			// values match, because it diverges under observation.
			continue
		}
		vectors[stage.String()] = m.stages[stage].Alpha()
	}
	vectors["terminal"] = m.terminal.Alpha()
	return core.ComputeModelFingerprint(vectors)
}
