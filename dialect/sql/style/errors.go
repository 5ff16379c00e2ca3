package style

import (
	"errors"
	"fmt"
	"reflect"
)

// Sentinel errors.
var (
	// ErrNoBindMapping is returned when a non-nil value has no type code.
	ErrNoBindMapping = errors.New("style: no bind mapping")

	// ErrNilOutputType is returned when an output parameter is registered without a type.
	ErrNilOutputType = errors.New("style: output parameter registered with nil type")
)

// BindError is returned by BuildBindFor for values it cannot classify.
type BindError struct {
	Type reflect.Type
}

// Error returns the error string.
func (e *BindError) Error() string {
	return fmt.Sprintf("style: no bind mapping for %v", e.Type)
}

// Is reports whether the target error matches BindError.
// This allows errors.Is(bindErr, ErrNoBindMapping) to return true.
func (e *BindError) Is(err error) bool {
	return err == ErrNoBindMapping
}

// TranscriptionError wraps a failure to move a value between a parameter or
// column and the host value. Index is the 1-based parameter or column index.
type TranscriptionError struct {
	Op    string
	Index int
	Err   error
}

// Error returns the error string.
func (e *TranscriptionError) Error() string {
	return fmt.Sprintf("style: %s on index %d: %v", e.Op, e.Index, e.Err)
}

// Unwrap returns the underlying error.
func (e *TranscriptionError) Unwrap() error {
	return e.Err
}

// IsTranscriptionError returns true if the error is a TranscriptionError.
func IsTranscriptionError(err error) bool {
	var e *TranscriptionError
	return errors.As(err, &e)
}
