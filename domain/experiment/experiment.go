// Package experiment defines batch simulation requests and results: the
// spec that parameterizes a Monte Carlo batch, the order-independent outcome
// tally, and the immutable result with its determinism manifest.
package experiment

import (
	"fmt"
	"strings"

	"venturesim/domain/core"
)

// IntervalMethod selects the binomial interval construction for the unicorn
// rate estimate.
type IntervalMethod string

const (
	// IntervalWilson is the default Wilson score interval.
	IntervalWilson IntervalMethod = "wilson"
	// IntervalNormal is the normal approximation interval.
	IntervalNormal IntervalMethod = "normal"
	// IntervalJeffreys is the Jeffreys equal-tailed Beta interval.
	IntervalJeffreys IntervalMethod = "jeffreys"
)

// ParseIntervalMethod parses an interval method name. Empty input selects
// the Wilson default.
func ParseIntervalMethod(s string) (IntervalMethod, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "wilson":
		return IntervalWilson, nil
	case "normal":
		return IntervalNormal, nil
	case "jeffreys":
		return IntervalJeffreys, nil
	default:
		return "", core.NewArgumentError("interval method", fmt.Sprintf("unknown method %q", s))
	}
}

// Interval is a frequency interval for a terminal-outcome rate, clamped to
// [0, 1].
type Interval struct {
	Lower  float64        `json:"lower"`
	Upper  float64        `json:"upper"`
	Level  float64        `json:"level"`
	Method IntervalMethod `json:"method"`
}

// Spec parameterizes one experiment batch.
type Spec struct {
	// Trials is the number of lifecycles to simulate. Must be at least one:
	// a zero-trial batch has no defined rate.
	Trials int `json:"trials"`
	// Seed derives every random stream of the batch.
	Seed int64 `json:"seed"`
	// Sampling switches trials from posterior-mean vectors to per-year
	// posterior draws.
	Sampling bool `json:"sampling"`
	// Workers is the parallelism degree. Zero selects a runtime default.
	// The partition of trials over workers is part of the replay identity.
	Workers int `json:"workers"`
	// Interval selects the rate interval construction. Empty selects Wilson.
	Interval IntervalMethod `json:"interval"`
	// Confidence is the interval level. Zero selects 0.95.
	Confidence float64 `json:"confidence"`
}

// Validate checks the spec before any trial runs. A spec error fails the
// whole batch up front.
func (s Spec) Validate() error {
	if s.Trials < 1 {
		return core.NewArgumentError("trials", fmt.Sprintf("must be at least 1, got %d", s.Trials))
	}
	if s.Workers < 0 {
		return core.NewArgumentError("workers", fmt.Sprintf("cannot be negative, got %d", s.Workers))
	}
	if s.Confidence != 0 && (s.Confidence <= 0 || s.Confidence >= 1) {
		return core.NewArgumentError("confidence", fmt.Sprintf("must be in (0,1), got %v", s.Confidence))
	}
	if _, err := ParseIntervalMethod(string(s.Interval)); err != nil {
		return err
	}
	return nil
}

// Normalized returns the spec with defaults filled in: Wilson interval and
// 0.95 confidence.
func (s Spec) Normalized() Spec {
	if s.Interval == "" {
		s.Interval = IntervalWilson
	}
	if s.Confidence == 0 {
		s.Confidence = 0.95
	}
	return s
}
