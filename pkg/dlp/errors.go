package dlp

import (
	"errors"
	"fmt"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

var (
	// ErrNoProject indicates no usable project id could be resolved
	ErrNoProject = errors.New("no resolvable project id")

	// ErrCredentials indicates the credentials file could not be read or parsed
	ErrCredentials = errors.New("credentials unavailable")
)

// InitError wraps a failure constructing the process-wide client handle:
// unreadable credentials or an unresolvable project id. Fatal to the
// directive invocation that triggered first use.
type InitError struct {
	Reason string // Short description of the initialization step that failed
	Err    error  // Underlying error
}

// Error returns formatted error message
func (e *InitError) Error() string {
	return fmt.Sprintf("dlp client init: %s: %v", e.Reason, e.Err)
}

// Unwrap returns the underlying error
func (e *InitError) Unwrap() error {
	return e.Err
}

// NewInitError creates a new init error
func NewInitError(reason string, err error) *InitError {
	return &InitError{Reason: reason, Err: err}
}

// TransformError wraps a failed deidentify call. The gRPC status code is
// carried so callers can distinguish quota, auth, and transport failures;
// no retry policy is applied here.
type TransformError struct {
	Code codes.Code // gRPC status code of the remote failure
	Err  error      // Underlying error
}

// Error returns formatted error message
func (e *TransformError) Error() string {
	return fmt.Sprintf("deidentify call failed (%s): %v", e.Code, e.Err)
}

// Unwrap returns the underlying error
func (e *TransformError) Unwrap() error {
	return e.Err
}

// NewTransformError creates a transform error, classifying err by its gRPC
// status code (codes.Unknown for non-gRPC errors).
func NewTransformError(err error) *TransformError {
	return &TransformError{Code: status.Code(err), Err: err}
}

// IsTransformError checks if an error is a transform error
func IsTransformError(err error) bool {
	var te *TransformError
	return errors.As(err, &te)
}
