package graphql

import (
	"context"
	"fmt"

	"github.com/99designs/gqlgen/graphql"

	"github.com/syssam/fetchgraph/graph"
	"github.com/syssam/fetchgraph/mapping"
)

// FromContext builds a fetch graph from the selections of the field
// being resolved in a gqlgen resolver. The resolved field's selection
// set maps onto entity the same way FromQuery maps an operation's
// top-level selections. Fragment definitions come from the operation
// document; directives are not evaluated.
func FromContext(ctx context.Context, entity *mapping.EntityType) (*graph.Root, error) {
	if !graphql.HasOperationContext(ctx) {
		return nil, fmt.Errorf("%w: no operation context", ErrInvalidSelection)
	}
	oc := graphql.GetOperationContext(ctx)
	fc := graphql.GetFieldContext(ctx)
	if fc == nil {
		return nil, fmt.Errorf("%w: no field context", ErrInvalidSelection)
	}
	g := graph.NewRoot(entity)
	w := &walker{frags: oc.Doc.Fragments}
	if err := w.selections(target{node: g}, fc.Field.Selections); err != nil {
		return nil, err
	}
	return g, nil
}
