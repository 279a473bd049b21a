// Package venture defines the funding-stage and outcome vocabulary of the
// startup lifecycle chain: which stages a company can occupy, which outcomes
// a year can produce, and the ordered outcome spaces that transition
// probabilities are expressed over.
package venture

import (
	"strings"

	"venturesim/domain/core"
)

// Stage represents a funding stage in the lifecycle chain. Ordering is
// progression order: each NextStage outcome advances one position, and
// SeriesCPlus absorbs all further progression.
type Stage int

const (
	// StageUnspecified represents an invalid stage value.
	StageUnspecified Stage = iota
	// StageSeed is the entry stage of every trial.
	StageSeed
	// StageSeriesA follows seed.
	StageSeriesA
	// StageSeriesB follows series A.
	StageSeriesB
	// StageSeriesC follows series B.
	StageSeriesC
	// StageSeriesCPlus collapses series C+1 and beyond into one stage.
	StageSeriesCPlus
)

// Stages lists all valid stages in progression order.
func Stages() []Stage {
	return []Stage{StageSeed, StageSeriesA, StageSeriesB, StageSeriesC, StageSeriesCPlus}
}

func (s Stage) String() string {
	switch s {
	case StageSeed:
		return "seed"
	case StageSeriesA:
		return "series_a"
	case StageSeriesB:
		return "series_b"
	case StageSeriesC:
		return "series_c"
	case StageSeriesCPlus:
		return "series_c_plus"
	default:
		return "unspecified"
	}
}

// Valid reports whether the stage is one of the five defined stages.
func (s Stage) Valid() bool {
	return s >= StageSeed && s <= StageSeriesCPlus
}

// Next returns the stage reached by a NextStage outcome. SeriesCPlus
// progresses to itself.
func (s Stage) Next() Stage {
	if s == StageSeriesCPlus {
		return StageSeriesCPlus
	}
	if !s.Valid() {
		return StageUnspecified
	}
	return s + 1
}

// ParseStage parses a canonical stage name.
func ParseStage(s string) (Stage, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "seed":
		return StageSeed, nil
	case "series_a":
		return StageSeriesA, nil
	case "series_b":
		return StageSeriesB, nil
	case "series_c":
		return StageSeriesC, nil
	case "series_c_plus":
		return StageSeriesCPlus, nil
	default:
		return StageUnspecified, core.NewStageError(s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s Stage) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Stage) UnmarshalText(text []byte) error {
	parsed, err := ParseStage(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
