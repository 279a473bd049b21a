package experiment

import (
	"errors"
	"testing"

	"venturesim/domain/core"
	"venturesim/domain/trial"
	"venturesim/domain/venture"
)

// TestTallyAdd ensures only absorbing outcomes are tallied.
func TestTallyAdd(t *testing.T) {
	var tally Tally
	for _, outcome := range []venture.Outcome{
		venture.OutcomeBankrupt, venture.OutcomeBankrupt, venture.OutcomeZombie, venture.OutcomeUnicorn,
	} {
		if err := tally.Add(outcome); err != nil {
			t.Fatalf("Add(%s) returned error: %v", outcome, err)
		}
	}

	if tally.Bankrupt != 2 || tally.Zombie != 1 || tally.Unicorn != 1 {
		t.Fatalf("unexpected tally %+v", tally)
	}
	if tally.Trials() != 4 {
		t.Fatalf("Trials() = %d, want 4", tally.Trials())
	}

	if err := tally.Add(venture.OutcomeOperating); !errors.Is(err, core.ErrInvalidOutcome) {
		t.Fatalf("Add(operating) error = %v, want ErrInvalidOutcome", err)
	}
	if err := tally.Add(venture.OutcomeNextStage); !errors.Is(err, core.ErrInvalidOutcome) {
		t.Fatalf("Add(next_stage) error = %v, want ErrInvalidOutcome", err)
	}
	if tally.Trials() != 4 {
		t.Fatalf("rejected outcomes changed the tally: %+v", tally)
	}
}

// TestTallyMergeCommutes ensures merge order cannot change a tally.
func TestTallyMergeCommutes(t *testing.T) {
	a := Tally{Bankrupt: 10, Zombie: 2, Unicorn: 1}
	b := Tally{Bankrupt: 5, Zombie: 7, Unicorn: 3}

	ab := a.Merge(b)
	ba := b.Merge(a)
	if ab != ba {
		t.Fatalf("merge not commutative: %+v != %+v", ab, ba)
	}
	if ab.Trials() != a.Trials()+b.Trials() {
		t.Fatalf("merged trials = %d, want %d", ab.Trials(), a.Trials()+b.Trials())
	}
}

func sampleTrial(outcome venture.Outcome, exitYear, rounds int, stage venture.Stage) *trial.Trial {
	return &trial.Trial{
		FinalStage:   stage,
		Outcome:      outcome,
		ExitYear:     exitYear,
		RoundsRaised: rounds,
	}
}

// TestAccumulatorRecord ensures path observations land alongside the tally.
func TestAccumulatorRecord(t *testing.T) {
	acc := NewAccumulator(4)
	trials := []*trial.Trial{
		sampleTrial(venture.OutcomeBankrupt, 3, 1, venture.StageSeriesA),
		sampleTrial(venture.OutcomeUnicorn, 6, 3, venture.StageSeriesC),
		sampleTrial(venture.OutcomeZombie, 10, 0, venture.StageSeed),
		sampleTrial(venture.OutcomeBankrupt, 10, 2, venture.StageSeriesB),
	}
	for _, tr := range trials {
		if err := acc.Record(tr); err != nil {
			t.Fatalf("Record returned error: %v", err)
		}
	}

	if acc.Tally != (Tally{Bankrupt: 2, Zombie: 1, Unicorn: 1}) {
		t.Fatalf("unexpected tally %+v", acc.Tally)
	}
	if len(acc.ExitYears) != 4 || acc.ExitYears[1] != 6 {
		t.Fatalf("unexpected exit years %v", acc.ExitYears)
	}
	if len(acc.Rounds) != 4 || acc.Rounds[3] != 2 {
		t.Fatalf("unexpected rounds %v", acc.Rounds)
	}
	if acc.ExitYearCounts[10] != 2 || acc.ExitYearCounts[3] != 1 {
		t.Fatalf("unexpected exit year counts %v", acc.ExitYearCounts)
	}
	if acc.ExitStageCounts[venture.StageSeriesA] != 1 || acc.ExitStageCounts[venture.StageSeed] != 1 {
		t.Fatalf("unexpected exit stage counts %v", acc.ExitStageCounts)
	}

	if err := acc.Record(nil); !errors.Is(err, core.ErrInvalidArgument) {
		t.Fatalf("Record(nil) error = %v, want ErrInvalidArgument", err)
	}
	if err := acc.Record(sampleTrial(venture.OutcomeOperating, 4, 0, venture.StageSeed)); !errors.Is(err, core.ErrInvalidOutcome) {
		t.Fatalf("Record(operating) error = %v, want ErrInvalidOutcome", err)
	}
}

// TestAccumulatorMergeKeepsOrder ensures merged observations keep
// receiver-first order and counts combine.
func TestAccumulatorMergeKeepsOrder(t *testing.T) {
	first := NewAccumulator(2)
	second := NewAccumulator(2)

	if err := first.Record(sampleTrial(venture.OutcomeBankrupt, 2, 0, venture.StageSeed)); err != nil {
		t.Fatalf("Record returned error: %v", err)
	}
	if err := first.Record(sampleTrial(venture.OutcomeUnicorn, 5, 2, venture.StageSeriesB)); err != nil {
		t.Fatalf("Record returned error: %v", err)
	}
	if err := second.Record(sampleTrial(venture.OutcomeZombie, 10, 1, venture.StageSeriesA)); err != nil {
		t.Fatalf("Record returned error: %v", err)
	}

	first.Merge(second)
	first.Merge(nil)

	wantYears := []float64{2, 5, 10}
	if len(first.ExitYears) != len(wantYears) {
		t.Fatalf("merged exit years %v, want %v", first.ExitYears, wantYears)
	}
	for i, want := range wantYears {
		if first.ExitYears[i] != want {
			t.Fatalf("merged exit years %v, want %v", first.ExitYears, wantYears)
		}
	}
	if first.Tally.Trials() != 3 {
		t.Fatalf("merged tally %+v, want 3 trials", first.Tally)
	}
	if first.ExitYearCounts[10] != 1 || first.ExitYearCounts[2] != 1 {
		t.Fatalf("merged exit year counts %v", first.ExitYearCounts)
	}
	if first.ExitStageCounts[venture.StageSeriesA] != 1 {
		t.Fatalf("merged exit stage counts %v", first.ExitStageCounts)
	}
}
