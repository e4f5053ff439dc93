package graph

import (
	"errors"
	"fmt"
)

// Sentinel errors for common failure cases.
var (
	// ErrInvalidGraph indicates malformed graph text.
	ErrInvalidGraph = errors.New("fetchgraph: invalid graph text")
)

// InvalidGraphError reports malformed graph text with the byte offset of
// the offending character.
type InvalidGraphError struct {
	Pos     int    // byte offset into the parsed text
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *InvalidGraphError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("fetchgraph: invalid graph text at position %d: %s: %v", e.Pos, e.Message, e.Cause)
	}
	return fmt.Sprintf("fetchgraph: invalid graph text at position %d: %s", e.Pos, e.Message)
}

// Unwrap returns the underlying error.
func (e *InvalidGraphError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target matches the sentinel error for InvalidGraphError.
func (e *InvalidGraphError) Is(target error) bool {
	return target == ErrInvalidGraph
}

// NewInvalidGraphError creates a new InvalidGraphError.
func NewInvalidGraphError(pos int, message string, cause error) *InvalidGraphError {
	return &InvalidGraphError{Pos: pos, Message: message, Cause: cause}
}

// IsInvalidGraphError reports whether the error is an InvalidGraphError.
func IsInvalidGraphError(err error) bool {
	var e *InvalidGraphError
	return errors.As(err, &e)
}
