// Package estimate computes the frequency intervals and descriptive
// statistics reported with experiment results.
package estimate

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat/distuv"

	"venturesim/domain/core"
	"venturesim/domain/experiment"
)

// RateInterval computes a binomial interval for successes out of trials at
// the given confidence level. Bounds are clamped to [0, 1]. The point
// estimate stays the exact ratio successes/trials; the interval only
// quantifies its sampling noise.
func RateInterval(successes, trials int, level float64, method experiment.IntervalMethod) (experiment.Interval, error) {
	if trials < 1 {
		return experiment.Interval{}, core.NewArgumentError("trials",
			fmt.Sprintf("must be at least 1, got %d", trials))
	}
	if successes < 0 || successes > trials {
		return experiment.Interval{}, core.NewArgumentError("successes",
			fmt.Sprintf("must be in [0, %d], got %d", trials, successes))
	}
	if level <= 0 || level >= 1 {
		return experiment.Interval{}, core.NewArgumentError("level",
			fmt.Sprintf("must be in (0,1), got %v", level))
	}

	var lower, upper float64
	switch method {
	case experiment.IntervalWilson:
		lower, upper = wilson(successes, trials, level)
	case experiment.IntervalNormal:
		lower, upper = normalApprox(successes, trials, level)
	case experiment.IntervalJeffreys:
		lower, upper = jeffreys(successes, trials, level)
	default:
		return experiment.Interval{}, core.NewArgumentError("method",
			fmt.Sprintf("unknown interval method %q", method))
	}

	return experiment.Interval{
		Lower:  clamp01(lower),
		Upper:  clamp01(upper),
		Level:  level,
		Method: method,
	}, nil
}

// wilson computes the Wilson score interval. It stays well-behaved at
// extreme rates and small counts, which is why it is the default.
func wilson(successes, trials int, level float64) (float64, float64) {
	z := distuv.UnitNormal.Quantile(1 - (1-level)/2)
	n := float64(trials)
	p := float64(successes) / n
	z2 := z * z

	denom := 1 + z2/n
	center := (p + z2/(2*n)) / denom
	half := z * math.Sqrt(p*(1-p)/n+z2/(4*n*n)) / denom
	return center - half, center + half
}

// normalApprox computes the Wald normal approximation interval.
func normalApprox(successes, trials int, level float64) (float64, float64) {
	z := distuv.UnitNormal.Quantile(1 - (1-level)/2)
	n := float64(trials)
	p := float64(successes) / n

	half := z * math.Sqrt(p*(1-p)/n)
	return p - half, p + half
}

// jeffreys computes the equal-tailed Jeffreys interval from the
// Beta(successes+1/2, failures+1/2) posterior. By convention the lower
// bound is zero when no successes were seen and the upper bound one when
// nothing but successes were seen.
func jeffreys(successes, trials int, level float64) (float64, float64) {
	tail := (1 - level) / 2
	dist := distuv.Beta{Alpha: float64(successes) + 0.5, Beta: float64(trials-successes) + 0.5}

	lower := dist.Quantile(tail)
	upper := dist.Quantile(1 - tail)
	if successes == 0 {
		lower = 0
	}
	if successes == trials {
		upper = 1
	}
	return lower, upper
}

func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
