package fetchgraph

import (
	"github.com/syssam/fetchgraph/graph"
	"github.com/syssam/fetchgraph/mapping"
)

// Parse creates a root graph bound to entity and parses text into it.
// A fresh root is created per call; empty text yields an empty graph.
func Parse(entity *mapping.EntityType, text string) (*graph.Root, error) {
	g := graph.NewRoot(entity)
	if err := graph.ParseInto(g, text); err != nil {
		return nil, err
	}
	return g, nil
}

// ParseNamed is like Parse but assigns a name to the resulting graph.
func ParseNamed(name string, entity *mapping.EntityType, text string) (*graph.Root, error) {
	g := graph.NewNamedRoot(name, entity)
	if err := graph.ParseInto(g, text); err != nil {
		return nil, err
	}
	return g, nil
}

// ParseInto parses text into a caller-owned graph, which may be a root
// or a subgraph. The graph is mutated in place.
func ParseInto(g graph.Mutable, text string) error {
	return graph.ParseInto(g, text)
}

// MustParse is like Parse but panics on error. Intended for fixtures and
// statically known graph text.
func MustParse(entity *mapping.EntityType, text string) *graph.Root {
	g, err := Parse(entity, text)
	if err != nil {
		panic(err)
	}
	return g
}
