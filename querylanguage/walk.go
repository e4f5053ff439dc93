package querylanguage

import (
	"errors"
	"fmt"

	"github.com/syssam/fetchgraph/mapping"
)

// ErrUnsupportedExpr indicates an expression variant the traversal does
// not know. The variant set is closed; encountering an unknown node is an
// unconditional failure, never a silent default.
var ErrUnsupportedExpr = errors.New("fetchgraph: unsupported expression")

// Walk calls fn for every node of the expression tree in depth-first,
// pre-order traversal. Walking stops at the first error.
func Walk(e Expr, fn func(Expr) error) error {
	if err := fn(e); err != nil {
		return err
	}
	switch x := e.(type) {
	case *Field, *Value:
		return nil
	case *UnaryExpr:
		return Walk(x.X, fn)
	case *BinaryExpr:
		if err := Walk(x.X, fn); err != nil {
			return err
		}
		return Walk(x.Y, fn)
	case *NaryExpr:
		for _, p := range x.Xs {
			if err := Walk(p, fn); err != nil {
				return err
			}
		}
		return nil
	case *CallExpr:
		for _, a := range x.Args {
			if err := Walk(a, fn); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("%w: %T", ErrUnsupportedExpr, e)
	}
}

// Resolve checks every field reference of the predicate against the
// mapping model, starting at root. Field names may be dotted paths. A
// has_edge call shifts the resolution scope: its first argument names an
// association or collection of the current scope, and the remaining
// predicate arguments resolve against the edge's target type.
func Resolve(p P, root mapping.Queryable) error {
	return resolve(p, root)
}

func resolve(e Expr, scope mapping.Queryable) error {
	switch x := e.(type) {
	case *Field:
		_, err := mapping.ResolvePath(scope, x.Name)
		return err
	case *Value:
		return nil
	case *UnaryExpr:
		return resolve(x.X, scope)
	case *BinaryExpr:
		if err := resolve(x.X, scope); err != nil {
			return err
		}
		return resolve(x.Y, scope)
	case *NaryExpr:
		for _, p := range x.Xs {
			if err := resolve(p, scope); err != nil {
				return err
			}
		}
		return nil
	case *CallExpr:
		if x.Func == FuncHasEdge {
			return resolveHasEdge(x, scope)
		}
		for _, a := range x.Args {
			if err := resolve(a, scope); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("%w: %T", ErrUnsupportedExpr, e)
	}
}

func resolveHasEdge(call *CallExpr, scope mapping.Queryable) error {
	if len(call.Args) == 0 {
		return fmt.Errorf("%w: has_edge without an edge name", ErrUnsupportedExpr)
	}
	f, ok := call.Args[0].(*Field)
	if !ok {
		return fmt.Errorf("%w: has_edge expects a field reference, got %T", ErrUnsupportedExpr, call.Args[0])
	}
	part, err := mapping.ResolvePath(scope, f.Name)
	if err != nil {
		return err
	}
	var target mapping.Queryable
	switch p := part.(type) {
	case *mapping.Association:
		target = p.Target()
	case *mapping.Collection:
		target = p.Target()
	default:
		return mapping.NewResolutionError(
			scope.Role().FullPath(), f.Name, "",
			"has_edge requires an association or collection, got "+part.Kind().String())
	}
	for _, a := range call.Args[1:] {
		if err := resolve(a, target); err != nil {
			return err
		}
	}
	return nil
}
