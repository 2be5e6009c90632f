package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors, matched with errors.Is.
var (
	// ErrValidation marks malformed or out-of-range illustration input.
	ErrValidation = errors.New("validation failed")

	// ErrUnknownFund marks a fund selector with no configured charge rate.
	ErrUnknownFund = errors.New("unknown fund")

	// ErrComputation marks an internal invariant violation inside the engine.
	ErrComputation = errors.New("computation failed")
)

// ValidationError names the input field that violated a constraint.
type ValidationError struct {
	Field      string
	Constraint string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Constraint)
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// UnknownFundError lists the fund choices that would have been accepted.
type UnknownFundError struct {
	Fund  string
	Valid []FundID
}

func (e *UnknownFundError) Error() string {
	valid := make([]string, len(e.Valid))
	for i, id := range e.Valid {
		valid[i] = string(id)
	}
	return fmt.Sprintf("unknown fund %q (valid: %s)", e.Fund, strings.Join(valid, ", "))
}

func (e *UnknownFundError) Unwrap() error {
	return ErrUnknownFund
}

// ComputationError reports parameters that should never reach the engine.
type ComputationError struct {
	Op     string
	Reason string
}

func (e *ComputationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Reason)
}

func (e *ComputationError) Unwrap() error {
	return ErrComputation
}

// IsClientError returns true if the error is due to invalid caller input.
func IsClientError(err error) bool {
	return errors.Is(err, ErrValidation) || errors.Is(err, ErrUnknownFund)
}
