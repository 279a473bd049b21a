package venture

import (
	"errors"
	"testing"

	"venturesim/domain/core"
)

// TestStageProgression ensures NextStage advances through the chain in order
// and self-loops at series C+.
func TestStageProgression(t *testing.T) {
	tcs := []struct {
		stage Stage
		next  Stage
	}{
		{StageSeed, StageSeriesA},
		{StageSeriesA, StageSeriesB},
		{StageSeriesB, StageSeriesC},
		{StageSeriesC, StageSeriesCPlus},
		{StageSeriesCPlus, StageSeriesCPlus},
	}

	for _, tc := range tcs {
		if got := tc.stage.Next(); got != tc.next {
			t.Fatalf("%s.Next() = %s, want %s", tc.stage, got, tc.next)
		}
	}

	if got := StageUnspecified.Next(); got != StageUnspecified {
		t.Fatalf("StageUnspecified.Next() = %s, want unspecified", got)
	}
}

// TestStagesOrder ensures Stages lists all five stages in progression order.
func TestStagesOrder(t *testing.T) {
	stages := Stages()
	if len(stages) != 5 {
		t.Fatalf("expected 5 stages, got %d", len(stages))
	}
	for i := 1; i < len(stages); i++ {
		if stages[i] <= stages[i-1] {
			t.Fatalf("stages out of order at %d: %v", i, stages)
		}
	}
	if stages[0] != StageSeed || stages[4] != StageSeriesCPlus {
		t.Fatalf("unexpected stage bounds: %v", stages)
	}
}

// TestParseStageRoundTrip ensures every stage parses back from its name.
func TestParseStageRoundTrip(t *testing.T) {
	for _, stage := range Stages() {
		parsed, err := ParseStage(stage.String())
		if err != nil {
			t.Fatalf("ParseStage(%q) returned error: %v", stage.String(), err)
		}
		if parsed != stage {
			t.Fatalf("ParseStage(%q) = %s, want %s", stage.String(), parsed, stage)
		}
	}
}

// TestParseStageRejectsUnknown ensures unknown names map to ErrInvalidStage.
func TestParseStageRejectsUnknown(t *testing.T) {
	for _, name := range []string{"", "series_d", "ipo", "  "} {
		_, err := ParseStage(name)
		if !errors.Is(err, core.ErrInvalidStage) {
			t.Fatalf("ParseStage(%q) error = %v, want ErrInvalidStage", name, err)
		}
	}
}

// TestParseOutcomeRoundTrip ensures every outcome parses back from its name.
func TestParseOutcomeRoundTrip(t *testing.T) {
	outcomes := []Outcome{OutcomeOperating, OutcomeNextStage, OutcomeBankrupt, OutcomeZombie, OutcomeUnicorn}
	for _, outcome := range outcomes {
		parsed, err := ParseOutcome(outcome.String())
		if err != nil {
			t.Fatalf("ParseOutcome(%q) returned error: %v", outcome.String(), err)
		}
		if parsed != outcome {
			t.Fatalf("ParseOutcome(%q) = %s, want %s", outcome.String(), parsed, outcome)
		}
	}

	_, err := ParseOutcome("acquired")
	if !errors.Is(err, core.ErrInvalidOutcome) {
		t.Fatalf("ParseOutcome(acquired) error = %v, want ErrInvalidOutcome", err)
	}
}

// TestOutcomeAbsorbing ensures exactly bankrupt, zombie and unicorn absorb.
func TestOutcomeAbsorbing(t *testing.T) {
	tcs := []struct {
		outcome   Outcome
		absorbing bool
	}{
		{OutcomeOperating, false},
		{OutcomeNextStage, false},
		{OutcomeBankrupt, true},
		{OutcomeZombie, true},
		{OutcomeUnicorn, true},
	}

	for _, tc := range tcs {
		if got := tc.outcome.Absorbing(); got != tc.absorbing {
			t.Fatalf("%s.Absorbing() = %v, want %v", tc.outcome, got, tc.absorbing)
		}
	}
}
