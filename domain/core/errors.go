package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Validation errors
	ErrInvalidStage    = errors.New("invalid stage")
	ErrInvalidOutcome  = errors.New("invalid outcome")
	ErrInvalidArgument = errors.New("invalid argument")

	// Determinism errors
	ErrSeedMismatch        = errors.New("seed mismatch")
	ErrFingerprintMismatch = errors.New("fingerprint mismatch")
)

// Error constructors with context
func NewStageError(stage string) error {
	return fmt.Errorf("%w: %s", ErrInvalidStage, stage)
}

func NewOutcomeError(outcome string, context string) error {
	return fmt.Errorf("%w: %s not valid for %s", ErrInvalidOutcome, outcome, context)
}

func NewArgumentError(field string, reason string) error {
	return fmt.Errorf("%w: %s: %s", ErrInvalidArgument, field, reason)
}

// Error checking helpers
func IsInvalidStageError(err error) bool {
	return errors.Is(err, ErrInvalidStage)
}

func IsInvalidOutcomeError(err error) bool {
	return errors.Is(err, ErrInvalidOutcome)
}

func IsInvalidArgumentError(err error) bool {
	return errors.Is(err, ErrInvalidArgument)
}

func IsDeterminismError(err error) bool {
	return errors.Is(err, ErrSeedMismatch) ||
		errors.Is(err, ErrFingerprintMismatch)
}
