package impose

import (
	"errors"
	"fmt"
)

// Sentinel errors for common imposition failure conditions.
var (
	ErrNoPages = errors.New("impose: input yields no pages")
	ErrNoInput = errors.New("impose: no input documents")
)

// ConfigError reports an invalid option combination detected before any
// page is touched.
type ConfigError string

func (e ConfigError) Error() string {
	return "impose: invalid configuration: " + string(e)
}

// configErrorf builds a ConfigError from a format string.
func configErrorf(format string, args ...any) ConfigError {
	return ConfigError(fmt.Sprintf(format, args...))
}

// OpError represents an error that occurred during a specific imposition
// operation. It wraps an underlying error and includes the operation name
// for context.
type OpError struct {
	Op  string // operation name, e.g. "Impose", "GeneratePreview"
	Err error  // underlying error
}

func (e *OpError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("impose.%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("impose.%s: unknown error", e.Op)
}

func (e *OpError) Unwrap() error {
	return e.Err
}

// newOpError creates a new OpError wrapping the given error with operation context.
func newOpError(op string, err error) *OpError {
	return &OpError{Op: op, Err: err}
}
