package equation

import (
	"errors"
	"fmt"
)

// ErrorCode categorizes conversion errors.
type ErrorCode string

const (
	// ErrCodeMalformedEquation indicates the equation has no extractable group.
	ErrCodeMalformedEquation ErrorCode = "MALFORMED_EQUATION"

	// ErrCodeEmptyResult indicates serialization left no group to join.
	ErrCodeEmptyResult ErrorCode = "EMPTY_RESULT"
)

// MalformedEquationError is returned by Parse when nothing can be extracted.
type MalformedEquationError struct {
	// Reason is a human-readable description.
	Reason string

	// Length is the character count of the trimmed input.
	Length int
}

// Error implements the error interface.
func (e *MalformedEquationError) Error() string {
	return fmt.Sprintf("%s: %s (length=%d)", ErrCodeMalformedEquation, e.Reason, e.Length)
}

// Code returns ErrCodeMalformedEquation.
func (e *MalformedEquationError) Code() ErrorCode {
	return ErrCodeMalformedEquation
}

// EmptyEquationResultError is returned by Serialize when every column is empty.
type EmptyEquationResultError struct {
	// Columns is the number of columns inspected.
	Columns int
}

// Error implements the error interface.
func (e *EmptyEquationResultError) Error() string {
	return fmt.Sprintf("%s: no column has a non-empty term (columns=%d)", ErrCodeEmptyResult, e.Columns)
}

// Code returns ErrCodeEmptyResult.
func (e *EmptyEquationResultError) Code() ErrorCode {
	return ErrCodeEmptyResult
}

// IsMalformedEquation returns true if err is or wraps a MalformedEquationError.
func IsMalformedEquation(err error) bool {
	var me *MalformedEquationError
	return errors.As(err, &me)
}

// IsEmptyResult returns true if err is or wraps an EmptyEquationResultError.
func IsEmptyResult(err error) bool {
	var ee *EmptyEquationResultError
	return errors.As(err, &ee)
}
