// File: api/errors.go
// Author: momentics <momentics@gmail.com>
//
// Common error types and error handling utilities for the safemem library.
// Every recoverable failure of the buffer lifecycle maps to exactly one
// ErrorCode; callers match either the sentinel via errors.Is or the code
// via CodeOf.

package api

import (
	"errors"
	"fmt"
)

// Common errors used across the library.
var (
	ErrInvalidArgument   = errors.New("invalid argument")
	ErrIndexOutOfRange   = errors.New("index out of range")
	ErrUseAfterRelease   = errors.New("buffer used after release")
	ErrInvalidOperation  = errors.New("invalid operation on zero-length buffer")
	ErrResourceExhausted = errors.New("resource exhausted")
)

// ErrorCode represents specific error conditions in the library.
type ErrorCode int

const (
	ErrCodeOK ErrorCode = iota
	ErrCodeInvalidArgument
	ErrCodeIndexOutOfRange
	ErrCodeUseAfterRelease
	ErrCodeInvalidOperation
	ErrCodeResourceExhausted
)

// sentinel maps each code to its package-level sentinel so that
// errors.Is works across the structured and sentinel forms.
func (c ErrorCode) sentinel() error {
	switch c {
	case ErrCodeInvalidArgument:
		return ErrInvalidArgument
	case ErrCodeIndexOutOfRange:
		return ErrIndexOutOfRange
	case ErrCodeUseAfterRelease:
		return ErrUseAfterRelease
	case ErrCodeInvalidOperation:
		return ErrInvalidOperation
	case ErrCodeResourceExhausted:
		return ErrResourceExhausted
	}
	return nil
}

// Error represents a structured error with code and context.
type Error struct {
	Code    ErrorCode
	Message string
	Context map[string]any
}

// Error implements the error interface.
func (e *Error) Error() string {
	if len(e.Context) == 0 {
		return e.Message
	}
	return fmt.Sprintf("%s (context: %+v)", e.Message, e.Context)
}

// Unwrap lets errors.Is match the sentinel for e.Code.
func (e *Error) Unwrap() error {
	return e.Code.sentinel()
}

// NewError creates a new structured error.
func NewError(code ErrorCode, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
	}
}

// WithContext adds context information to the error.
func (e *Error) WithContext(key string, value any) *Error {
	if e.Context == nil {
		e.Context = make(map[string]any)
	}
	e.Context[key] = value
	return e
}

// CodeOf extracts the ErrorCode from err. Nil and foreign errors
// report ErrCodeOK.
func CodeOf(err error) ErrorCode {
	if err == nil {
		return ErrCodeOK
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ErrCodeOK
}
