// Package api
// Author: momentics <momentics@gmail.com>
//
// Error taxonomy shared by the ring and pool primitives.

package api

import (
	"errors"
	"fmt"
)

// ErrorCode represents specific error conditions in the library.
type ErrorCode int

const (
	ErrCodeOK ErrorCode = iota
	ErrCodeInvalidArgument
	ErrCodeResourceExhausted
	ErrCodeQueueFull
	ErrCodeEmptyRead
	ErrCodeInvalidHandle
)

// String returns a short name for the code.
func (c ErrorCode) String() string {
	switch c {
	case ErrCodeOK:
		return "ok"
	case ErrCodeInvalidArgument:
		return "invalid_argument"
	case ErrCodeResourceExhausted:
		return "resource_exhausted"
	case ErrCodeQueueFull:
		return "queue_full"
	case ErrCodeEmptyRead:
		return "empty_queue_read"
	case ErrCodeInvalidHandle:
		return "invalid_handle"
	default:
		return fmt.Sprintf("code(%d)", int(c))
	}
}

// Sentinel errors. Hot paths return these values directly, so they must never
// be mutated; use Errorf to derive an error that carries context.
var (
	ErrInvalidCapacity = NewError(ErrCodeInvalidArgument, "capacity must be positive")
	ErrQueueFull       = NewError(ErrCodeQueueFull, "queue is full")
	ErrEmptyQueueRead  = NewError(ErrCodeEmptyRead, "commit read on empty queue")
	ErrPoolExhausted   = NewError(ErrCodeResourceExhausted, "pool exhausted")
	ErrInvalidHandle   = NewError(ErrCodeInvalidHandle, "invalid handle")
)

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

// Is reports whether target is an *Error with the same code.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Code == e.Code
}

// NewError creates a new structured error.
func NewError(code ErrorCode, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
	}
}

// Errorf derives a fresh error from base, keeping its code. The message is
// formatted from format/args when format is non-empty.
func Errorf(base *Error, format string, args ...any) *Error {
	msg := base.Message
	if format != "" {
		msg = base.Message + ": " + fmt.Sprintf(format, args...)
	}
	return NewError(base.Code, msg)
}

// WithContext adds context information to the error.
func (e *Error) WithContext(key string, value any) *Error {
	if e.Context == nil {
		e.Context = make(map[string]any)
	}
	e.Context[key] = value
	return e
}

// CodeOf extracts the ErrorCode of err, or ErrCodeOK when err is nil or foreign.
func CodeOf(err error) ErrorCode {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ErrCodeOK
}

// IsRecoverable reports whether err is an expected runtime state the caller
// should back off from (full ring, exhausted pool).
func IsRecoverable(err error) bool {
	switch CodeOf(err) {
	case ErrCodeQueueFull, ErrCodeResourceExhausted:
		return true
	}
	return false
}

// IsContractViolation reports whether err signals a caller bug.
func IsContractViolation(err error) bool {
	switch CodeOf(err) {
	case ErrCodeEmptyRead, ErrCodeInvalidHandle:
		return true
	}
	return false
}
