// Package gen generates per-entity constant packages from a schema
// document, so callers build fetch graphs and predicates without string
// typos.
package gen

import (
	"errors"
	"strings"
)

// ErrGenerationFailed indicates a code generation failure.
var ErrGenerationFailed = errors.New("fetchgraph: code generation failed")

// GenerationError reports a failure while generating an entity package.
type GenerationError struct {
	Entity  string
	File    string
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *GenerationError) Error() string {
	var b strings.Builder
	b.WriteString("fetchgraph: generate")
	if e.Entity != "" {
		b.WriteString(" entity ")
		b.WriteString(e.Entity)
	}
	if e.File != "" {
		b.WriteString(" file ")
		b.WriteString(e.File)
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

// Unwrap returns the underlying error.
func (e *GenerationError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target matches the sentinel error for GenerationError.
func (e *GenerationError) Is(target error) bool {
	return target == ErrGenerationFailed
}

// NewGenerationError creates a new GenerationError.
func NewGenerationError(entity, file, message string, cause error) *GenerationError {
	return &GenerationError{Entity: entity, File: file, Message: message, Cause: cause}
}

// IsGenerationError reports whether the error is a GenerationError.
func IsGenerationError(err error) bool {
	var e *GenerationError
	return errors.As(err, &e)
}
