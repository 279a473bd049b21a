package estimate

import (
	"venturesim/domain/belief"
	"venturesim/domain/core"
	"venturesim/domain/venture"
)

// OutcomeSummary reports one outcome's posterior mean probability with its
// equal-tailed credible interval.
type OutcomeSummary struct {
	Outcome venture.Outcome `json:"outcome"`
	Mean    float64         `json:"mean"`
	Lower   float64         `json:"lower"`
	Upper   float64         `json:"upper"`
}

// StageSummary reports one stage's posterior over the yearly outcome space.
type StageSummary struct {
	Stage    venture.Stage    `json:"stage"`
	Total    float64          `json:"concentration_total"`
	Outcomes []OutcomeSummary `json:"outcomes"`
}

// ModelSummary is the probability-table view of a transition model: every
// stage's posterior means and credible intervals, plus the terminal
// boundary's.
type ModelSummary struct {
	Level       float64          `json:"level"`
	SharedCPlus bool             `json:"series_c_plus_shared"`
	Stages      []StageSummary   `json:"stages"`
	Terminal    []OutcomeSummary `json:"terminal"`
}

// SummarizeModel builds the posterior summary of a model at the given
// credible level.
func SummarizeModel(model *belief.TransitionModel, level float64) (ModelSummary, error) {
	if model == nil {
		return ModelSummary{}, core.NewArgumentError("model", "cannot summarize nil model")
	}

	summary := ModelSummary{
		Level:       level,
		SharedCPlus: model.SharesCPlus(),
		Stages:      make([]StageSummary, 0, len(venture.Stages())),
	}

	for _, stage := range venture.Stages() {
		b, err := model.StageBelief(stage)
		if err != nil {
			return ModelSummary{}, err
		}
		outcomes, err := summarizeBelief(b, level)
		if err != nil {
			return ModelSummary{}, err
		}
		summary.Stages = append(summary.Stages, StageSummary{
			Stage:    stage,
			Total:    b.Total(),
			Outcomes: outcomes,
		})
	}

	terminal, err := summarizeBelief(model.TerminalBelief(), level)
	if err != nil {
		return ModelSummary{}, err
	}
	summary.Terminal = terminal

	return summary, nil
}

func summarizeBelief(b *belief.Belief, level float64) ([]OutcomeSummary, error) {
	space := b.Space()
	mean := b.Mean()

	out := make([]OutcomeSummary, 0, space.Size())
	for i := 0; i < space.Size(); i++ {
		outcome := space.At(i)
		lower, upper, err := b.Credible(outcome, level)
		if err != nil {
			return nil, err
		}
		out = append(out, OutcomeSummary{
			Outcome: outcome,
			Mean:    mean[i],
			Lower:   lower,
			Upper:   upper,
		})
	}
	return out, nil
}
