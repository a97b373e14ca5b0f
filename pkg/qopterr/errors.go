// Package qopterr provides structured error types for the quantum circuit
// optimizer.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the library and CLI
//   - Machine-readable error codes for programmatic handling
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Each code names one failure class from the compiler's error taxonomy:
// gate construction, register bounds, DAG integrity, routing compatibility,
// topology reachability, and the front-end/config surfaces.
//
// # Usage
//
//	err := qopterr.New(qopterr.CodeInvalidGate, "CX operands must differ, got %d", q)
//	if qopterr.Is(err, qopterr.CodeInvalidGate) {
//	    // Handle construction error
//	}
//
//	// Wrap existing errors
//	err := qopterr.Wrap(qopterr.CodeParse, origErr, "parse %s", path)
package qopterr

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for the failure classes surfaced by the compiler core.
const (
	// Construction and register errors
	CodeInvalidGate     Code = "INVALID_GATE"
	CodeOutOfRangeQubit Code = "OUT_OF_RANGE_QUBIT"
	CodeCircuitTooLarge Code = "CIRCUIT_TOO_LARGE"

	// DAG errors
	CodeNodeNotFound  Code = "NODE_NOT_FOUND"
	CodeCycleDetected Code = "CYCLE_DETECTED"

	// Routing errors
	CodeIncompatibleSize Code = "INCOMPATIBLE_SIZE"
	CodeDisconnected     Code = "DISCONNECTED"
	CodeInvalidTopology  Code = "INVALID_TOPOLOGY"

	// Front-end and configuration errors
	CodeParse         Code = "PARSE_ERROR"
	CodeInvalidConfig Code = "INVALID_CONFIG"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error with a matching code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}
