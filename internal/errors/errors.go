// Package errors provides centralized error definitions and error handling utilities
// for tasker. It defines sentinel errors, semantic error types, domain error
// types with context wrapping, and error classification helpers.
//
// # Error Types
//
// Semantic errors represent common error conditions:
//   - NotFoundError: a task or file could not be found
//   - AlreadyExistsError: a save target already exists
//   - ValidationError: invalid input or configuration
//
// Domain-specific errors represent failures from specific subsystems:
//   - PersistenceError: I/O or (de)serialization failures while saving or loading
//   - InputError: a line could not be read from the user
//
// Every type renders the exact message shown to the user, so callers can print
// err.Error() directly.
//
// # Usage
//
//	err := errors.NewTaskNotFoundError("Buy milk")
//	fmt.Println(err) // Task "Buy milk" does not exist
//
//	if errors.Is(err, errors.ErrTaskNotFound) { ... }
//
//	var persistErr *errors.PersistenceError
//	if errors.As(err, &persistErr) { ... }
package errors

import (
	"errors"
	"fmt"
)

// Re-export standard library functions for convenience.
// This allows callers to import only this package for all error handling.
var (
	Is  = errors.Is
	As  = errors.As
	New = errors.New
)

// Severity represents the severity level of an error.
type Severity int

const (
	// SeverityDebug is for errors that are useful for debugging but not critical.
	SeverityDebug Severity = iota
	// SeverityInfo is for informational errors that don't indicate a problem.
	SeverityInfo
	// SeverityWarning is for expected failures such as a missing task.
	SeverityWarning
	// SeverityError is for errors that indicate a real problem.
	SeverityError
)

// String returns the string representation of the severity level.
func (s Severity) String() string {
	switch s {
	case SeverityDebug:
		return "debug"
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return "unknown"
	}
}

// -----------------------------------------------------------------------------
// Sentinel Errors
// -----------------------------------------------------------------------------

var (
	// ErrTaskNotFound indicates that no task carries the requested name.
	ErrTaskNotFound = New("task not found")
	// ErrFileExists indicates that a save target is already present.
	ErrFileExists = New("file already exists")
	// ErrFileNotFound indicates that a load target is absent.
	ErrFileNotFound = New("file not found")
	// ErrInputUnavailable indicates that a line could not be read from the user.
	ErrInputUnavailable = New("input unavailable")
	// ErrInvalidInput indicates that input validation failed.
	ErrInvalidInput = New("invalid input")
)

// Resource types used by NotFoundError and AlreadyExistsError.
const (
	ResourceTask = "Task"
	ResourceFile = "File"
)

// -----------------------------------------------------------------------------
// Base Error Interface
// -----------------------------------------------------------------------------

// TaskerError is the base interface for all tasker errors.
type TaskerError interface {
	error

	// Unwrap returns the underlying error, if any.
	Unwrap() error

	// Severity returns the severity level of this error.
	Severity() Severity

	// IsUserFacing returns true if the error message is safe to display
	// to end users.
	IsUserFacing() bool
}

// -----------------------------------------------------------------------------
// Base Error Implementation
// -----------------------------------------------------------------------------

// baseError provides common functionality for all error types.
type baseError struct {
	message    string
	cause      error
	sentinel   error
	severity   Severity
	userFacing bool
}

// Error returns the error message.
func (e *baseError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.message, e.cause)
	}
	return e.message
}

// Unwrap returns the underlying error.
func (e *baseError) Unwrap() error {
	return e.cause
}

// Is matches the error's sentinel, then falls through to the cause.
func (e *baseError) Is(target error) bool {
	if e.sentinel != nil && target == e.sentinel {
		return true
	}
	if e.cause != nil {
		return errors.Is(e.cause, target)
	}
	return false
}

// Severity returns the error severity.
func (e *baseError) Severity() Severity {
	return e.severity
}

// IsUserFacing returns whether the error is safe to show users.
func (e *baseError) IsUserFacing() bool {
	return e.userFacing
}

// notFoundSentinel maps a resource type to its not-found sentinel.
func notFoundSentinel(resourceType string) error {
	switch resourceType {
	case ResourceTask:
		return ErrTaskNotFound
	case ResourceFile:
		return ErrFileNotFound
	default:
		return nil
	}
}

// -----------------------------------------------------------------------------
// Semantic Errors
// -----------------------------------------------------------------------------

// NotFoundError represents a task or file that could not be found.
//
// Example:
//
//	err := errors.NewNotFoundError(errors.ResourceTask, "Ghost")
//	fmt.Println(err) // Task "Ghost" does not exist
type NotFoundError struct {
	baseError
	ResourceType string
	ResourceID   string
}

// NewNotFoundError creates a new NotFoundError.
func NewNotFoundError(resourceType, resourceID string) *NotFoundError {
	return &NotFoundError{
		baseError: baseError{
			message:    fmt.Sprintf("%s \"%s\" does not exist", resourceType, resourceID),
			sentinel:   notFoundSentinel(resourceType),
			severity:   SeverityWarning,
			userFacing: true,
		},
		ResourceType: resourceType,
		ResourceID:   resourceID,
	}
}

// NewTaskNotFoundError creates a NotFoundError for a task name.
func NewTaskNotFoundError(name string) *NotFoundError {
	return NewNotFoundError(ResourceTask, name)
}

// NewFileNotFoundError creates a NotFoundError for a file path.
func NewFileNotFoundError(path string) *NotFoundError {
	return NewNotFoundError(ResourceFile, path)
}

// Is checks if this error matches the target.
func (e *NotFoundError) Is(target error) bool {
	if _, ok := target.(*NotFoundError); ok {
		return true
	}
	return e.baseError.Is(target)
}

// AlreadyExistsError represents a resource that already exists.
//
// Example:
//
//	err := errors.NewAlreadyExistsError(errors.ResourceFile, "tasks.json")
//	fmt.Println(err) // File "tasks.json" already exists
type AlreadyExistsError struct {
	baseError
	ResourceType string
	ResourceID   string
}

// NewAlreadyExistsError creates a new AlreadyExistsError.
func NewAlreadyExistsError(resourceType, resourceID string) *AlreadyExistsError {
	var sentinel error
	if resourceType == ResourceFile {
		sentinel = ErrFileExists
	}
	return &AlreadyExistsError{
		baseError: baseError{
			message:    fmt.Sprintf("%s \"%s\" already exists", resourceType, resourceID),
			sentinel:   sentinel,
			severity:   SeverityWarning,
			userFacing: true,
		},
		ResourceType: resourceType,
		ResourceID:   resourceID,
	}
}

// Is checks if this error matches the target.
func (e *AlreadyExistsError) Is(target error) bool {
	if _, ok := target.(*AlreadyExistsError); ok {
		return true
	}
	return e.baseError.Is(target)
}

// ValidationError represents invalid input or state.
type ValidationError struct {
	baseError
}

// NewValidationError creates a new ValidationError.
func NewValidationError(message string) *ValidationError {
	return &ValidationError{
		baseError: baseError{
			message:    message,
			sentinel:   ErrInvalidInput,
			severity:   SeverityWarning,
			userFacing: true,
		},
	}
}

// Is checks if this error matches the target.
func (e *ValidationError) Is(target error) bool {
	if _, ok := target.(*ValidationError); ok {
		return true
	}
	return e.baseError.Is(target)
}

// -----------------------------------------------------------------------------
// Domain-Specific Errors
// -----------------------------------------------------------------------------

// PersistenceError represents an I/O or (de)serialization failure while
// saving or loading tasks. Op is the failed step as shown to the user, e.g.
// "creating file" or "loading data".
//
// Example:
//
//	err := errors.NewPersistenceError("opening file", "tasks.json", cause)
//	fmt.Println(err) // Error opening file: <cause>
type PersistenceError struct {
	baseError
	Op   string
	Path string
}

// NewPersistenceError creates a new PersistenceError.
func NewPersistenceError(op, path string, cause error) *PersistenceError {
	return &PersistenceError{
		baseError: baseError{
			message:    "Error " + op,
			cause:      cause,
			severity:   SeverityError,
			userFacing: true,
		},
		Op:   op,
		Path: path,
	}
}

// Is checks if this error matches the target.
func (e *PersistenceError) Is(target error) bool {
	if _, ok := target.(*PersistenceError); ok {
		return true
	}
	return e.baseError.Is(target)
}

// InputError represents a failure to read a line from the user.
type InputError struct {
	baseError
	Prompt string
}

// NewInputError creates a new InputError for the given prompt.
func NewInputError(prompt string, cause error) *InputError {
	return &InputError{
		baseError: baseError{
			message:    "Error getting user input",
			cause:      cause,
			sentinel:   ErrInputUnavailable,
			severity:   SeverityWarning,
			userFacing: true,
		},
		Prompt: prompt,
	}
}

// Is checks if this error matches the target.
func (e *InputError) Is(target error) bool {
	if _, ok := target.(*InputError); ok {
		return true
	}
	return e.baseError.Is(target)
}

// -----------------------------------------------------------------------------
// Error Classification Helpers
// -----------------------------------------------------------------------------

// IsUserFacing returns true if the error message is safe to display to end users.
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}

	var taskerErr TaskerError
	if As(err, &taskerErr) {
		return taskerErr.IsUserFacing()
	}
	return false
}

// GetSeverity returns the severity level of the error.
// Returns SeverityError for errors that don't implement TaskerError.
func GetSeverity(err error) Severity {
	if err == nil {
		return SeverityDebug
	}

	var taskerErr TaskerError
	if As(err, &taskerErr) {
		return taskerErr.Severity()
	}
	return SeverityError
}

// -----------------------------------------------------------------------------
// Convenience Constructors
// -----------------------------------------------------------------------------

// Wrap wraps an error with additional context message.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf wraps an error with a formatted context message.
func Wrapf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}
