package zkcompose

import (
	"errors"
	"fmt"

	"github.com/coinbase/cb-zkcompose-go/pkg/zkcompose/statement"
)

var (
	// ErrMalformed indicates a ProofSpec or call that is inconsistent before
	// any cryptographic work starts.
	ErrMalformed = errors.New("zkcompose: malformed input")
	// ErrTypeMismatch indicates a witness whose variant does not fit
	// its statement.
	ErrTypeMismatch = errors.New("zkcompose: witness does not match statement")
	// ErrRandomnessFailure indicates the randomness source failed.
	ErrRandomnessFailure = errors.New("zkcompose: randomness source failed")
	// ErrShapeMismatch indicates a proof whose statement count, kinds or
	// challenge length disagree with the ProofSpec.
	ErrShapeMismatch = errors.New("zkcompose: proof shape does not match spec")
	// ErrChallengeMismatch indicates the recomputed challenge differs from the
	// one embedded in the proof.
	ErrChallengeMismatch = errors.New("zkcompose: challenge mismatch")
	// ErrStatementInvalid indicates a sub-proof failed its own verification.
	ErrStatementInvalid = errors.New("zkcompose: statement proof invalid")
	// ErrEqualityViolation indicates linked slots answered with different
	// responses.
	ErrEqualityViolation = errors.New("zkcompose: witness equality violated")
)

// MalformedError describes why a ProofSpec or call was rejected.
type MalformedError struct {
	Reason string
	Err    error
}

func (e *MalformedError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("zkcompose: malformed input: %s: %v", e.Reason, e.Err)
	}
	return "zkcompose: malformed input: " + e.Reason
}

func (e *MalformedError) Is(target error) bool { return target == ErrMalformed }
func (e *MalformedError) Unwrap() error        { return e.Err }

func malformed(format string, args ...any) error {
	return &MalformedError{Reason: fmt.Sprintf(format, args...)}
}

// TypeMismatchError reports the statement whose witness does not fit.
type TypeMismatchError struct {
	Index int
	Err   error
}

func (e *TypeMismatchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("zkcompose: witness %d does not match statement: %v", e.Index, e.Err)
	}
	return fmt.Sprintf("zkcompose: witness %d does not match statement", e.Index)
}

func (e *TypeMismatchError) Is(target error) bool { return target == ErrTypeMismatch }
func (e *TypeMismatchError) Unwrap() error        { return e.Err }

// StatementInvalidError reports the lowest-indexed sub-proof that failed.
type StatementInvalidError struct {
	Index int
	Kind  statement.Kind
	Err   error
}

func (e *StatementInvalidError) Error() string {
	return fmt.Sprintf("zkcompose: statement %d (%s) invalid: %v", e.Index, e.Kind, e.Err)
}

func (e *StatementInvalidError) Is(target error) bool { return target == ErrStatementInvalid }
func (e *StatementInvalidError) Unwrap() error        { return e.Err }

// EqualityViolationError reports the first equality class whose members
// disagree.
type EqualityViolationError struct {
	Class int
}

func (e *EqualityViolationError) Error() string {
	return fmt.Sprintf("zkcompose: equality class %d violated", e.Class)
}

func (e *EqualityViolationError) Is(target error) bool { return target == ErrEqualityViolation }

// Reason is a stable code describing a verification outcome.
type Reason uint8

const (
	ReasonAccepted Reason = iota
	ReasonShapeMismatch
	ReasonChallengeMismatch
	ReasonStatementInvalid
	ReasonEqualityViolation
	ReasonMalformed
	ReasonUnknown
)

func (r Reason) String() string {
	switch r {
	case ReasonAccepted:
		return "accepted"
	case ReasonShapeMismatch:
		return "shape_mismatch"
	case ReasonChallengeMismatch:
		return "challenge_mismatch"
	case ReasonStatementInvalid:
		return "statement_invalid"
	case ReasonEqualityViolation:
		return "equality_violation"
	case ReasonMalformed:
		return "malformed"
	default:
		return "unknown"
	}
}

// ReasonOf maps a Verify result to its reason code. A nil error is
// ReasonAccepted.
func ReasonOf(err error) Reason {
	switch {
	case err == nil:
		return ReasonAccepted
	case errors.Is(err, ErrShapeMismatch):
		return ReasonShapeMismatch
	case errors.Is(err, ErrChallengeMismatch):
		return ReasonChallengeMismatch
	case errors.Is(err, ErrStatementInvalid):
		return ReasonStatementInvalid
	case errors.Is(err, ErrEqualityViolation):
		return ReasonEqualityViolation
	case errors.Is(err, ErrMalformed):
		return ReasonMalformed
	default:
		return ReasonUnknown
	}
}
