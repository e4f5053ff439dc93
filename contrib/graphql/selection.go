// Package graphql derives fetch graphs from GraphQL selection sets.
package graphql

import (
	"errors"
	"fmt"
	"strings"

	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/parser"

	"github.com/syssam/fetchgraph/graph"
	"github.com/syssam/fetchgraph/mapping"
)

// ErrInvalidSelection indicates a selection set that cannot be mapped
// onto the entity model.
var ErrInvalidSelection = errors.New("fetchgraph: invalid graphql selection")

// FromQuery parses a GraphQL query document and converts the selection
// set of its single operation into a fetch graph rooted at entity. The
// operation's top-level selections name attributes of the entity; inline
// fragments and fragment spreads with a type condition map to
// treat-narrowed subgraphs. The document is parsed without a schema, so
// directives are not evaluated.
func FromQuery(entity *mapping.EntityType, query string) (*graph.Root, error) {
	doc, err := parseQuery(query)
	if err != nil {
		return nil, err
	}
	if len(doc.Operations) != 1 {
		return nil, fmt.Errorf("%w: document defines %d operations, use FromQueryOperation", ErrInvalidSelection, len(doc.Operations))
	}
	return fromOperation(entity, doc.Operations[0], doc.Fragments)
}

// FromQueryOperation is like FromQuery for documents with several
// operations; operation selects the one to convert by name.
func FromQueryOperation(entity *mapping.EntityType, query, operation string) (*graph.Root, error) {
	doc, err := parseQuery(query)
	if err != nil {
		return nil, err
	}
	op := doc.Operations.ForName(operation)
	if op == nil {
		return nil, fmt.Errorf("%w: no operation named %q", ErrInvalidSelection, operation)
	}
	return fromOperation(entity, op, doc.Fragments)
}

func parseQuery(query string) (*ast.QueryDocument, error) {
	doc, err := parser.ParseQuery(&ast.Source{Name: "query", Input: query})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSelection, err)
	}
	return doc, nil
}

func fromOperation(entity *mapping.EntityType, op *ast.OperationDefinition, frags ast.FragmentDefinitionList) (*graph.Root, error) {
	g := graph.NewRoot(entity)
	w := &walker{frags: frags}
	if err := w.selections(target{node: g}, op.SelectionSet); err != nil {
		return nil, err
	}
	return g, nil
}

// graphNode is the subset of Root and Sub the walker needs: mutation plus
// the bound type, for matching type conditions.
type graphNode interface {
	graph.Mutable
	Type() mapping.Queryable
}

// target is the graph node selections apply to, together with its parent
// context. The parent is needed to hang treat-narrowed siblings off the
// same attribute key.
type target struct {
	node   graphNode
	parent graph.Mutable
	attr   string
}

type walker struct {
	frags  ast.FragmentDefinitionList
	spread []string // fragment spread path, for cycle detection
}

func (w *walker) selections(t target, sels ast.SelectionSet) error {
	for _, sel := range sels {
		switch sel := sel.(type) {
		case *ast.Field:
			if err := w.field(t, sel); err != nil {
				return err
			}
		case *ast.InlineFragment:
			if err := w.fragment(t, sel.TypeCondition, sel.SelectionSet); err != nil {
				return err
			}
		case *ast.FragmentSpread:
			if err := w.spreadFragment(t, sel.Name); err != nil {
				return err
			}
		default:
			return fmt.Errorf("%w: unexpected selection %T", ErrInvalidSelection, sel)
		}
	}
	return nil
}

func (w *walker) field(t target, f *ast.Field) error {
	// Introspection meta fields such as __typename carry no model part.
	if strings.HasPrefix(f.Name, "__") {
		return nil
	}
	if len(f.SelectionSet) == 0 {
		return t.node.AddAttribute(f.Name)
	}
	sub, err := t.node.SubGraph(f.Name)
	if err != nil {
		return err
	}
	return w.selections(target{node: sub, parent: t.node, attr: f.Name}, f.SelectionSet)
}

// fragment applies a type-conditioned selection set. A condition naming
// the bound type or one of its supertypes applies unconditionally and is
// flattened in place; a condition naming a subtype becomes a
// treat-narrowed sibling subgraph. Subtype conditions on the operation's
// top level have no attribute to narrow and are rejected.
func (w *walker) fragment(t target, cond string, sels ast.SelectionSet) error {
	if cond == "" {
		return w.selections(t, sels)
	}
	if e, ok := t.node.Type().(*mapping.EntityType); ok {
		if c, ok := e.Model().Lookup(cond); ok && e.IsSubtypeOf(c) {
			return w.selections(t, sels)
		}
	}
	if t.parent == nil {
		return fmt.Errorf("%w: type condition %q cannot narrow the operation root", ErrInvalidSelection, cond)
	}
	sub, err := t.parent.SubGraphTreat(t.attr, cond)
	if err != nil {
		return err
	}
	return w.selections(target{node: sub, parent: t.parent, attr: t.attr}, sels)
}

func (w *walker) spreadFragment(t target, name string) error {
	def := w.frags.ForName(name)
	if def == nil {
		return fmt.Errorf("%w: undefined fragment %q", ErrInvalidSelection, name)
	}
	for _, seen := range w.spread {
		if seen == name {
			return fmt.Errorf("%w: fragment cycle through %q", ErrInvalidSelection, name)
		}
	}
	w.spread = append(w.spread, name)
	err := w.fragment(t, def.TypeCondition, def.SelectionSet)
	w.spread = w.spread[:len(w.spread)-1]
	return err
}
