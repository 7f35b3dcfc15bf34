package tablefile

import (
	"errors"
	"fmt"
)

// ErrorCode categorizes adapter errors.
type ErrorCode string

const (
	// ErrCodeInputNotFound indicates the source path does not exist.
	ErrCodeInputNotFound ErrorCode = "INPUT_NOT_FOUND"

	// ErrCodeUnsupportedFormat indicates an unknown table file extension.
	ErrCodeUnsupportedFormat ErrorCode = "UNSUPPORTED_FORMAT"
)

// InputNotFoundError is returned when a source file does not exist.
type InputNotFoundError struct {
	Path string
}

// Error implements the error interface.
func (e *InputNotFoundError) Error() string {
	return fmt.Sprintf("%s: file not found: %s", ErrCodeInputNotFound, e.Path)
}

// Code returns ErrCodeInputNotFound.
func (e *InputNotFoundError) Code() ErrorCode {
	return ErrCodeInputNotFound
}

// UnsupportedFormatError is returned for a table file with an unknown extension.
type UnsupportedFormatError struct {
	Path      string
	Extension string
	Hint      string
}

// Error implements the error interface.
func (e *UnsupportedFormatError) Error() string {
	msg := fmt.Sprintf("%s: unsupported table format %q for %s (use .csv, .tsv, .xlsx, .yaml)",
		ErrCodeUnsupportedFormat, e.Extension, e.Path)
	if e.Hint != "" {
		msg += ": " + e.Hint
	}
	return msg
}

// Code returns ErrCodeUnsupportedFormat.
func (e *UnsupportedFormatError) Code() ErrorCode {
	return ErrCodeUnsupportedFormat
}

// IsInputNotFound returns true if err is or wraps an InputNotFoundError.
func IsInputNotFound(err error) bool {
	var ne *InputNotFoundError
	return errors.As(err, &ne)
}

// IsUnsupportedFormat returns true if err is or wraps an UnsupportedFormatError.
func IsUnsupportedFormat(err error) bool {
	var ue *UnsupportedFormatError
	return errors.As(err, &ue)
}
