package mapping

import (
	"errors"
	"fmt"
)

// Sentinel errors for common failure cases.
var (
	// ErrUnresolvedPath indicates a dotted path that does not resolve
	// against the model.
	ErrUnresolvedPath = errors.New("fetchgraph: unresolved path")

	// ErrInvalidDefinition indicates an invalid model definition.
	ErrInvalidDefinition = errors.New("fetchgraph: invalid model definition")

	// ErrEntityNotFound indicates a lookup of an unknown entity type.
	ErrEntityNotFound = errors.New("fetchgraph: entity not found")
)

// ResolutionError reports a path segment that could not be resolved.
type ResolutionError struct {
	Container string // role of the container the lookup ran against
	Segment   string // the segment that failed to resolve
	Path      string // the full requested path, if known
	Message   string
}

// Error implements the error interface.
func (e *ResolutionError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = "no such part"
	}
	if e.Path != "" {
		return fmt.Sprintf("fetchgraph: cannot resolve %q under %s (path %q): %s", e.Segment, e.Container, e.Path, msg)
	}
	return fmt.Sprintf("fetchgraph: cannot resolve %q under %s: %s", e.Segment, e.Container, msg)
}

// Is reports whether the target matches the sentinel error for ResolutionError.
func (e *ResolutionError) Is(target error) bool {
	return target == ErrUnresolvedPath
}

// NewResolutionError creates a new ResolutionError.
func NewResolutionError(container, segment, path, message string) *ResolutionError {
	return &ResolutionError{Container: container, Segment: segment, Path: path, Message: message}
}

// IsResolutionError reports whether the error is a ResolutionError.
func IsResolutionError(err error) bool {
	var e *ResolutionError
	return errors.As(err, &e)
}

// DefinitionError reports an invalid model definition.
type DefinitionError struct {
	Entity  string
	Part    string
	Message string
}

// Error implements the error interface.
func (e *DefinitionError) Error() string {
	if e.Part != "" {
		return fmt.Sprintf("fetchgraph: invalid definition on %s part %q: %s", e.Entity, e.Part, e.Message)
	}
	return fmt.Sprintf("fetchgraph: invalid definition on %s: %s", e.Entity, e.Message)
}

// Is reports whether the target matches the sentinel error for DefinitionError.
func (e *DefinitionError) Is(target error) bool {
	return target == ErrInvalidDefinition
}

// NewDefinitionError creates a new DefinitionError.
func NewDefinitionError(entity, part, message string) *DefinitionError {
	return &DefinitionError{Entity: entity, Part: part, Message: message}
}

// IsDefinitionError reports whether the error is a DefinitionError.
func IsDefinitionError(err error) bool {
	var e *DefinitionError
	return errors.As(err, &e)
}
