package fetchgraph

import (
	"errors"

	"github.com/syssam/fetchgraph/graph"
	"github.com/syssam/fetchgraph/mapping"
)

// Sentinel errors of the subpackages, re-exported so callers using the
// facade can match failures without importing mapping or graph.
var (
	// ErrInvalidGraph is returned for graph text that does not parse or
	// does not fit the entity model.
	ErrInvalidGraph = graph.ErrInvalidGraph

	// ErrUnresolvedPath is returned when an attribute or dotted path does
	// not resolve against the model.
	ErrUnresolvedPath = mapping.ErrUnresolvedPath

	// ErrInvalidDefinition is returned for invalid model definitions.
	ErrInvalidDefinition = mapping.ErrInvalidDefinition
)

// IsInvalidGraph reports whether the error came from parsing or mutating
// a fetch graph.
func IsInvalidGraph(err error) bool {
	return errors.Is(err, graph.ErrInvalidGraph)
}

// IsUnresolvedPath reports whether the error names an attribute or path
// that does not resolve against the model.
func IsUnresolvedPath(err error) bool {
	return errors.Is(err, mapping.ErrUnresolvedPath)
}
