package errors

import (
	"errors"
	"fmt"
	"io/fs"
)

// ValidationError is returned when a request field fails its schema.
// It is always recoverable and maps to a 400 response.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError creates a validation error for the given field
func NewValidationError(field, msg string) *ValidationError {
	return &ValidationError{Field: field, Message: msg}
}

// IOError wraps a failure to open or read the file being hashed.
type IOError struct {
	Op   string // "open" or "read"
	Path string
	Err  error
}

// Error avoids repeating op and path when the cause already carries them,
// as *fs.PathError does.
func (e *IOError) Error() string {
	var pathErr *fs.PathError
	if errors.As(e.Err, &pathErr) {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// NewIOError creates an I/O error for the given operation and path
func NewIOError(op, path string, err error) *IOError {
	return &IOError{Op: op, Path: path, Err: err}
}

// IsIO reports whether err is or wraps an IOError
func IsIO(err error) bool {
	var ioe *IOError
	return errors.As(err, &ioe)
}
