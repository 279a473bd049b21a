package estimate

import (
	"github.com/montanaflynn/stats"

	"venturesim/domain/core"
	"venturesim/domain/experiment"
	"venturesim/domain/venture"
)

// PathStats computes the descriptive lifecycle statistics of a completed
// batch from its merged accumulator. The accumulator's observation order is
// the canonical merge order, so identical batches produce identical
// statistics.
func PathStats(acc *experiment.Accumulator) (experiment.PathStats, error) {
	if acc == nil || len(acc.ExitYears) == 0 {
		return experiment.PathStats{}, core.NewArgumentError("accumulator", "no recorded trials")
	}

	meanExit, _ := stats.Mean(acc.ExitYears)
	medianExit, _ := stats.Median(acc.ExitYears)
	p90Exit, _ := stats.Percentile(acc.ExitYears, 90)
	meanRounds, _ := stats.Mean(acc.Rounds)

	yearCounts := make([]int, len(acc.ExitYearCounts))
	copy(yearCounts, acc.ExitYearCounts)

	stageCounts := make(map[venture.Stage]int, len(acc.ExitStageCounts))
	for stage, n := range acc.ExitStageCounts {
		stageCounts[stage] = n
	}

	return experiment.PathStats{
		MeanExitYear:    meanExit,
		MedianExitYear:  medianExit,
		P90ExitYear:     p90Exit,
		MeanRounds:      meanRounds,
		ExitYearCounts:  yearCounts,
		ExitStageCounts: stageCounts,
	}, nil
}
