package experiment

import (
	"venturesim/domain/core"
	"venturesim/domain/venture"
)

// PathStats summarizes the simulated lifecycles beyond their terminal
// outcomes: how long companies survived, how many rounds they raised, and
// where in the chain they ended.
type PathStats struct {
	MeanExitYear   float64 `json:"mean_exit_year"`
	MedianExitYear float64 `json:"median_exit_year"`
	P90ExitYear    float64 `json:"p90_exit_year"`
	MeanRounds     float64 `json:"mean_rounds_raised"`
	// ExitYearCounts is indexed by exit year, zero through the horizon.
	ExitYearCounts []int `json:"exit_year_counts"`
	// ExitStageCounts counts trials by the stage they held at exit.
	ExitStageCounts map[venture.Stage]int `json:"exit_stage_counts"`
}

// Result is the immutable outcome of one experiment batch.
type Result struct {
	ExperimentID core.ExperimentID `json:"experiment_id"`
	Seed         int64             `json:"seed"`
	Trials       int               `json:"trials"`
	Sampling     bool              `json:"sampling"`
	Workers      int               `json:"workers"`
	Tally        Tally             `json:"tally"`
	// UnicornRate is the exact point estimate Tally.Unicorn/Trials, never
	// smoothed toward the interval.
	UnicornRate float64        `json:"unicorn_rate"`
	Interval    Interval       `json:"interval"`
	PathStats   PathStats      `json:"path_stats"`
	Manifest    Manifest       `json:"manifest"`
	RuntimeMs   int64          `json:"runtime_ms"`
	CreatedAt   core.Timestamp `json:"created_at"`
}
