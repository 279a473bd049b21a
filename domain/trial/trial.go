// Package trial simulates single startup lifecycles through the stage chain:
// one trial walks a company year by year from seed until an absorbing
// outcome, drawing each year's outcome from the transition model.
package trial

import (
	"venturesim/domain/venture"
)

// Step records one simulated year: the stage the company occupied when the
// year's outcome was drawn, and the outcome drawn.
type Step struct {
	Year    int             `json:"year"`
	Stage   venture.Stage   `json:"stage"`
	Outcome venture.Outcome `json:"outcome"`
}

// Trial is one completed startup lifecycle. Every trial ends in exactly one
// absorbing outcome by the horizon year.
type Trial struct {
	// FinalStage is the stage held when the trial ended.
	FinalStage venture.Stage `json:"final_stage"`
	// Outcome is the absorbing outcome: bankrupt, zombie or unicorn.
	Outcome venture.Outcome `json:"outcome"`
	// ExitYear is the year the absorbing outcome was drawn.
	ExitYear int `json:"exit_year"`
	// RoundsRaised counts next_stage outcomes along the path.
	RoundsRaised int `json:"rounds_raised"`
	// Path holds every step from the year-zero start through the exit,
	// including repeated operating years.
	Path []Step `json:"path"`
}
