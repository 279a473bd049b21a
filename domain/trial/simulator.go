package trial

import (
	"fmt"
	"math/rand/v2"

	"venturesim/domain/core"
	"venturesim/domain/venture"
)

// TransitionSource supplies the probability vectors a simulation draws from.
// *belief.TransitionModel satisfies it; tests substitute fixed vectors.
type TransitionSource interface {
	// Probabilities returns the posterior mean yearly vector for a stage in
	// yearly-space coordinate order.
	Probabilities(stage venture.Stage) ([]float64, error)
	// SampleProbabilities draws a yearly vector from the stage's posterior.
	SampleProbabilities(stage venture.Stage, src rand.Source) ([]float64, error)
	// TerminalProbabilities returns the posterior mean terminal vector in
	// terminal-space coordinate order.
	TerminalProbabilities() []float64
	// SampleTerminal draws a terminal vector from the posterior.
	SampleTerminal(src rand.Source) []float64
}

// Simulator walks single trials through the stage chain. With Sampling set,
// each draw uses a fresh posterior sample of the transition vector instead
// of the posterior mean, folding parameter uncertainty into the simulated
// outcomes.
type Simulator struct {
	Source   TransitionSource
	Sampling bool
}

// Run simulates one trial. The company starts year zero at seed, operating.
// Years one through nine each draw one outcome from the current stage's
// yearly vector: operating holds the stage, next_stage advances it, bankrupt
// and unicorn absorb immediately. A company still alive after year nine
// takes one forced draw from the terminal vector at year ten. All
// randomness comes from rng, so a trial replays exactly per stream state.
func (s Simulator) Run(rng *rand.Rand) (*Trial, error) {
	if s.Source == nil {
		return nil, core.NewArgumentError("source", "transition source is required")
	}

	yearly := venture.YearlySpace()
	stage := venture.StageSeed
	rounds := 0
	path := make([]Step, 0, venture.HorizonYears+1)
	path = append(path, Step{Year: 0, Stage: stage, Outcome: venture.OutcomeOperating})

	for year := 1; year < venture.HorizonYears; year++ {
		probs, err := s.yearlyVector(stage, rng)
		if err != nil {
			return nil, err
		}

		outcome := drawOutcome(yearly, probs, rng.Float64())
		path = append(path, Step{Year: year, Stage: stage, Outcome: outcome})

		if outcome.Absorbing() {
			return &Trial{
				FinalStage:   stage,
				Outcome:      outcome,
				ExitYear:     year,
				RoundsRaised: rounds,
				Path:         path,
			}, nil
		}
		if outcome == venture.OutcomeNextStage {
			stage = stage.Next()
			rounds++
		}
	}

	// Alive at the horizon: one forced draw over bankrupt, zombie, unicorn.
	terminal := venture.TerminalSpace()
	probs := s.terminalVector(rng)
	if len(probs) != terminal.Size() {
		return nil, core.NewArgumentError("terminal vector",
			fmt.Sprintf("expected %d components, got %d", terminal.Size(), len(probs)))
	}

	outcome := drawOutcome(terminal, probs, rng.Float64())
	path = append(path, Step{Year: venture.HorizonYears, Stage: stage, Outcome: outcome})

	return &Trial{
		FinalStage:   stage,
		Outcome:      outcome,
		ExitYear:     venture.HorizonYears,
		RoundsRaised: rounds,
		Path:         path,
	}, nil
}

func (s Simulator) yearlyVector(stage venture.Stage, rng *rand.Rand) ([]float64, error) {
	var probs []float64
	var err error
	if s.Sampling {
		probs, err = s.Source.SampleProbabilities(stage, rng)
	} else {
		probs, err = s.Source.Probabilities(stage)
	}
	if err != nil {
		return nil, err
	}
	if len(probs) != venture.YearlySpace().Size() {
		return nil, core.NewArgumentError("transition vector",
			fmt.Sprintf("stage %s: expected %d components, got %d", stage, venture.YearlySpace().Size(), len(probs)))
	}
	return probs, nil
}

func (s Simulator) terminalVector(rng *rand.Rand) []float64 {
	if s.Sampling {
		return s.Source.SampleTerminal(rng)
	}
	return s.Source.TerminalProbabilities()
}

// drawOutcome maps one uniform draw onto the space's outcomes by cumulative
// probability in coordinate order. Any residual mass from floating point
// rounding falls to the last coordinate.
func drawOutcome(space venture.OutcomeSpace, probs []float64, u float64) venture.Outcome {
	cum := 0.0
	last := space.Size() - 1
	for i := 0; i < last; i++ {
		cum += probs[i]
		if u < cum {
			return space.At(i)
		}
	}
	return space.At(last)
}
