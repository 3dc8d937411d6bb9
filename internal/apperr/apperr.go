// Package apperr defines the error categories used across html2exe.
//
// Error taxonomy
//
//	UserError  – caused by missing or invalid user input (wrong flag, bad value, …).
//	             The CLI prints only the message; usage help is NOT repeated.
//	             Exit code: 1.
//
//	ErrCancelled – the user deliberately aborted an interactive flow (init wizard,
//	               clean confirmation, …).
//	               Exit code: 0 (not a failure).
//
//	ErrInvalidConfiguration – the planner could not prepare a valid build tree
//	               (output directory cannot be created, …). Returned wrapped in a
//	               *ConfigError carrying the failing path. Recoverable: the caller
//	               may fix the path and retry.
//
//	ErrContractViolation – a value that should never exist was constructed
//	               (unknown source kind, unknown optimization profile, a
//	               recommendation contradicting its profile). Rejected at
//	               construction time.
//
// Everything else is a plain Go error (I/O, YAML decoding, …) and is
// propagated with fmt.Errorf("context: %w", err) wrapping.
package apperr

import (
	"errors"
	"fmt"
)

// ErrCancelled is returned when the user explicitly aborts an interactive
// operation.  The CLI should exit 0 rather than 1 when it sees this error.
var ErrCancelled = errors.New("operation cancelled")

// ErrInvalidConfiguration marks build-tree preparation failures.
var ErrInvalidConfiguration = errors.New("invalid configuration")

// ErrContractViolation marks values rejected at construction.
var ErrContractViolation = errors.New("contract violation")

// UserError represents an error caused by invalid or missing user input.
// Cobra command handlers return this instead of a bare fmt.Errorf so that
// the root command can suppress repeated usage output and format the message
// in a user-friendly way.
type UserError struct {
	Message string
}

func (e *UserError) Error() string { return e.Message }

// User creates a UserError with the given message.
func User(msg string) error { return &UserError{Message: msg} }

// Userf creates a formatted UserError.
func Userf(format string, args ...any) error {
	return &UserError{Message: fmt.Sprintf(format, args...)}
}

// IsUser reports whether err is (or wraps) a *UserError.
func IsUser(err error) bool {
	var u *UserError
	return errors.As(err, &u)
}

// ConfigError records which filesystem operation failed while preparing
// the output tree. errors.Is(err, ErrInvalidConfiguration) holds for it.
type ConfigError struct {
	Op   string
	Path string
	Err  error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *ConfigError) Unwrap() []error { return []error{ErrInvalidConfiguration, e.Err} }

// Config wraps a filesystem failure as an invalid-configuration error.
func Config(op, path string, err error) error {
	return &ConfigError{Op: op, Path: path, Err: err}
}

// Contractf creates an error wrapping ErrContractViolation.
func Contractf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrContractViolation, fmt.Sprintf(format, args...))
}
