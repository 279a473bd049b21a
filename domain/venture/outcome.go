package venture

import (
	"strings"

	"venturesim/domain/core"
)

// Outcome represents the result of a single simulated year.
type Outcome int

const (
	// OutcomeUnspecified represents an invalid outcome value.
	OutcomeUnspecified Outcome = iota
	// OutcomeOperating means the company survives the year in its current stage.
	OutcomeOperating
	// OutcomeNextStage means the company raises and advances one stage.
	OutcomeNextStage
	// OutcomeBankrupt is an absorbing failure.
	OutcomeBankrupt
	// OutcomeZombie is the absorbing horizon outcome for companies that
	// survive ten years without a major exit.
	OutcomeZombie
	// OutcomeUnicorn is the absorbing success outcome.
	OutcomeUnicorn
)

func (o Outcome) String() string {
	switch o {
	case OutcomeOperating:
		return "operating"
	case OutcomeNextStage:
		return "next_stage"
	case OutcomeBankrupt:
		return "bankrupt"
	case OutcomeZombie:
		return "zombie"
	case OutcomeUnicorn:
		return "unicorn"
	default:
		return "unspecified"
	}
}

// Valid reports whether the outcome is one of the five defined outcomes.
func (o Outcome) Valid() bool {
	return o >= OutcomeOperating && o <= OutcomeUnicorn
}

// Absorbing reports whether the outcome ends a trial. Bankrupt, Zombie and
// Unicorn are absorbing; Operating and NextStage continue the chain.
func (o Outcome) Absorbing() bool {
	return o == OutcomeBankrupt || o == OutcomeZombie || o == OutcomeUnicorn
}

// ParseOutcome parses a canonical outcome name.
func ParseOutcome(s string) (Outcome, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "operating":
		return OutcomeOperating, nil
	case "next_stage":
		return OutcomeNextStage, nil
	case "bankrupt":
		return OutcomeBankrupt, nil
	case "zombie":
		return OutcomeZombie, nil
	case "unicorn":
		return OutcomeUnicorn, nil
	default:
		return OutcomeUnspecified, core.NewOutcomeError(s, "outcome name")
	}
}

// MarshalText implements encoding.TextMarshaler.
func (o Outcome) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (o *Outcome) UnmarshalText(text []byte) error {
	parsed, err := ParseOutcome(string(text))
	if err != nil {
		return err
	}
	*o = parsed
	return nil
}
