package directive

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownDirective indicates no factory is registered under the name
	ErrUnknownDirective = errors.New("unknown directive")

	// ErrMissingArgument indicates a required directive argument was not supplied
	ErrMissingArgument = errors.New("missing required argument")

	// ErrInvalidArgument indicates a directive argument has an unusable value
	ErrInvalidArgument = errors.New("invalid argument")
)

// ParseError wraps any failure during Initialize: malformed arguments or a
// failure constructing the per-invocation transform state.
type ParseError struct {
	Directive string // Directive name
	Err       error  // Underlying error
}

// Error returns formatted error message
func (e *ParseError) Error() string {
	return fmt.Sprintf("directive '%s': %v", e.Directive, e.Err)
}

// Unwrap returns the underlying error
func (e *ParseError) Unwrap() error {
	return e.Err
}

// NewParseError creates a new parse error
func NewParseError(directive string, err error) *ParseError {
	return &ParseError{Directive: directive, Err: err}
}

// ExecutionError wraps a failure during Execute. It aborts the remaining
// batch; there is no per-row isolation.
type ExecutionError struct {
	Directive string // Directive name
	Column    string // Source column being transformed
	Err       error  // Underlying error
}

// Error returns formatted error message
func (e *ExecutionError) Error() string {
	return fmt.Sprintf("directive '%s': column '%s': %v", e.Directive, e.Column, e.Err)
}

// Unwrap returns the underlying error
func (e *ExecutionError) Unwrap() error {
	return e.Err
}

// NewExecutionError creates a new execution error
func NewExecutionError(directive, column string, err error) *ExecutionError {
	return &ExecutionError{Directive: directive, Column: column, Err: err}
}
