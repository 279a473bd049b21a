package experiment

import (
	"venturesim/domain/core"
	"venturesim/domain/trial"
	"venturesim/domain/venture"
)

// Tally counts terminal outcomes across a batch. Counts add commutatively,
// so the order workers are merged in can never change a tally.
type Tally struct {
	Bankrupt int `json:"bankrupt"`
	Zombie   int `json:"zombie"`
	Unicorn  int `json:"unicorn"`
}

// Trials returns the number of tallied trials.
func (t Tally) Trials() int {
	return t.Bankrupt + t.Zombie + t.Unicorn
}

// Add counts one terminal outcome.
func (t *Tally) Add(outcome venture.Outcome) error {
	switch outcome {
	case venture.OutcomeBankrupt:
		t.Bankrupt++
	case venture.OutcomeZombie:
		t.Zombie++
	case venture.OutcomeUnicorn:
		t.Unicorn++
	default:
		return core.NewOutcomeError(outcome.String(), "terminal tally")
	}
	return nil
}

// Merge returns the combined tally.
func (t Tally) Merge(other Tally) Tally {
	return Tally{
		Bankrupt: t.Bankrupt + other.Bankrupt,
		Zombie:   t.Zombie + other.Zombie,
		Unicorn:  t.Unicorn + other.Unicorn,
	}
}

// Accumulator aggregates one worker's trial stream: the outcome tally plus
// the path observations that feed descriptive statistics. Slices keep trial
// order, so merging accumulators in a fixed worker order reproduces one
// canonical observation sequence.
type Accumulator struct {
	Tally           Tally
	ExitYears       []float64
	Rounds          []float64
	ExitYearCounts  []int
	ExitStageCounts map[venture.Stage]int
}

// NewAccumulator creates an accumulator sized for an expected trial count.
func NewAccumulator(capacity int) *Accumulator {
	if capacity < 0 {
		capacity = 0
	}
	return &Accumulator{
		ExitYears:       make([]float64, 0, capacity),
		Rounds:          make([]float64, 0, capacity),
		ExitYearCounts:  make([]int, venture.HorizonYears+1),
		ExitStageCounts: make(map[venture.Stage]int),
	}
}

// Record tallies one completed trial.
func (a *Accumulator) Record(tr *trial.Trial) error {
	if tr == nil {
		return core.NewArgumentError("trial", "cannot record nil trial")
	}
	if err := a.Tally.Add(tr.Outcome); err != nil {
		return err
	}
	a.ExitYears = append(a.ExitYears, float64(tr.ExitYear))
	a.Rounds = append(a.Rounds, float64(tr.RoundsRaised))
	if tr.ExitYear >= 0 && tr.ExitYear < len(a.ExitYearCounts) {
		a.ExitYearCounts[tr.ExitYear]++
	}
	a.ExitStageCounts[tr.FinalStage]++
	return nil
}

// Merge appends another accumulator's observations after this one's. Tallies
// and counts are commutative; the observation slices keep receiver-first
// order, so a fixed merge order yields one canonical sequence.
func (a *Accumulator) Merge(other *Accumulator) {
	if other == nil {
		return
	}
	a.Tally = a.Tally.Merge(other.Tally)
	a.ExitYears = append(a.ExitYears, other.ExitYears...)
	a.Rounds = append(a.Rounds, other.Rounds...)
	for year, n := range other.ExitYearCounts {
		if year < len(a.ExitYearCounts) {
			a.ExitYearCounts[year] += n
		}
	}
	for stage, n := range other.ExitStageCounts {
		a.ExitStageCounts[stage] += n
	}
}
