package venture

// HorizonYears is the simulation horizon. Years 1 through HorizonYears-1 use
// the yearly outcome space; a trial still operating at HorizonYears takes one
// forced draw from the terminal space and ends.
const HorizonYears = 10

// OutcomeSpace is an ordered set of outcomes valid at a draw point. The
// order is the coordinate order of every probability vector expressed over
// the space, and the partition order of cumulative sampling.
type OutcomeSpace struct {
	name     string
	outcomes []Outcome
	index    map[Outcome]int
}

var (
	yearlySpace   = newSpace("yearly", OutcomeOperating, OutcomeNextStage, OutcomeBankrupt, OutcomeUnicorn)
	terminalSpace = newSpace("terminal", OutcomeBankrupt, OutcomeZombie, OutcomeUnicorn)
)

func newSpace(name string, outcomes ...Outcome) OutcomeSpace {
	index := make(map[Outcome]int, len(outcomes))
	for i, o := range outcomes {
		index[o] = i
	}
	return OutcomeSpace{name: name, outcomes: outcomes, index: index}
}

// YearlySpace returns the four-outcome space of regular years:
// operating, next_stage, bankrupt, unicorn.
func YearlySpace() OutcomeSpace { return yearlySpace }

// TerminalSpace returns the three-outcome space of the horizon boundary:
// bankrupt, zombie, unicorn.
func TerminalSpace() OutcomeSpace { return terminalSpace }

// Name returns the space name.
func (s OutcomeSpace) Name() string { return s.name }

// Size returns the number of outcomes in the space.
func (s OutcomeSpace) Size() int { return len(s.outcomes) }

// At returns the outcome at coordinate i.
func (s OutcomeSpace) At(i int) Outcome { return s.outcomes[i] }

// Index returns the coordinate of an outcome and whether it is in the space.
func (s OutcomeSpace) Index(o Outcome) (int, bool) {
	i, ok := s.index[o]
	return i, ok
}

// Contains reports whether the outcome is in the space.
func (s OutcomeSpace) Contains(o Outcome) bool {
	_, ok := s.index[o]
	return ok
}

// Outcomes returns a copy of the outcomes in coordinate order.
func (s OutcomeSpace) Outcomes() []Outcome {
	out := make([]Outcome, len(s.outcomes))
	copy(out, s.outcomes)
	return out
}

func (s OutcomeSpace) String() string { return s.name }
