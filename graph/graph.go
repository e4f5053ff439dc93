// Package graph provides mutable fetch graphs over a mapping model.
//
// A Root describes which attributes of an entity type to fetch; nested
// attributes get on-demand Sub graphs, optionally narrowed ("treated") to
// a subtype of the attribute's declared type. Graphs can be built
// programmatically, parsed from a compact text form (see ParseInto),
// merged, rendered back to text, and snapshotted for caching.
//
// Graphs are not safe for concurrent mutation; the caller owns the graph
// exclusively for the duration of a ParseInto or Merge call.
package graph

import (
	"github.com/syssam/fetchgraph/mapping"
)

// subKey identifies a child subgraph by attribute name and optional
// treat-subtype name. The composite key keeps narrowed and plain
// subgraphs under the same attribute distinct.
type subKey struct {
	attr  string
	treat string
}

// node is the state shared by Root and Sub: the bound type, the included
// basic attribute names in insertion order, and the child subgraphs.
type node struct {
	typ      mapping.Queryable
	attrs    []string
	attrSet  map[string]struct{}
	subs     []*Sub
	subIndex map[subKey]int
}

// Root is a fetch graph bound to an entity type.
type Root struct {
	node
	name string
}

// Sub is a fetch graph bound to an attribute of its parent graph and the
// attribute's entity or embeddable type, optionally narrowed to a subtype.
type Sub struct {
	node
	attr  string
	treat string
}

// Mutable is the mutation surface shared by Root and Sub. It is the
// parser's view of a graph node.
type Mutable interface {
	// AddAttribute includes a named attribute of the bound type.
	AddAttribute(name string) error

	// SubGraph returns the subgraph for a nested attribute, creating it
	// on first use.
	SubGraph(attr string) (*Sub, error)

	// SubGraphTreat returns the subgraph for a nested attribute narrowed
	// to the named subtype, creating it on first use.
	SubGraphTreat(attr, subtype string) (*Sub, error)
}

var (
	_ Mutable = (*Root)(nil)
	_ Mutable = (*Sub)(nil)
)

// NewRoot creates an empty fetch graph bound to entity.
func NewRoot(entity *mapping.EntityType) *Root {
	return &Root{node: newNode(entity)}
}

// NewNamedRoot creates an empty named fetch graph bound to entity.
func NewNamedRoot(name string, entity *mapping.EntityType) *Root {
	return &Root{node: newNode(entity), name: name}
}

func newNode(typ mapping.Queryable) node {
	return node{
		typ:      typ,
		attrSet:  make(map[string]struct{}),
		subIndex: make(map[subKey]int),
	}
}

// Name returns the graph name, if any.
func (r *Root) Name() string { return r.name }

// Entity returns the entity type the root graph is bound to.
func (r *Root) Entity() *mapping.EntityType {
	return r.typ.(*mapping.EntityType)
}

// Attribute returns the parent attribute name the subgraph is bound to.
func (s *Sub) Attribute() string { return s.attr }

// Treat returns the narrowed subtype name, or "" when not narrowed.
func (s *Sub) Treat() string { return s.treat }

// Type returns the type the graph node is bound to. For a treated
// subgraph this is the narrowed subtype.
func (n *node) Type() mapping.Queryable { return n.typ }

// AddAttribute includes a named attribute of the bound type. Adding the
// same attribute twice is a no-op; unknown attributes fail with a
// resolution error.
func (n *node) AddAttribute(name string) error {
	if _, err := n.typ.SubPart(name, nil); err != nil {
		return err
	}
	if _, ok := n.attrSet[name]; ok {
		return nil
	}
	n.attrSet[name] = struct{}{}
	n.attrs = append(n.attrs, name)
	return nil
}

// AddAttributes includes several attributes, stopping at the first error.
func (n *node) AddAttributes(names ...string) error {
	for _, name := range names {
		if err := n.AddAttribute(name); err != nil {
			return err
		}
	}
	return nil
}

// HasAttribute reports whether the attribute is included.
func (n *node) HasAttribute(name string) bool {
	_, ok := n.attrSet[name]
	return ok
}

// Attributes returns the included attribute names in insertion order.
func (n *node) Attributes() []string {
	out := make([]string, len(n.attrs))
	copy(out, n.attrs)
	return out
}

// SubGraph returns the subgraph for the nested attribute attr, creating
// it on first use. Repeated requests for the same attribute return the
// same subgraph (duplicate declarations merge).
func (n *node) SubGraph(attr string) (*Sub, error) {
	return n.subGraph(attr, "")
}

// SubGraphTreat returns the subgraph for attr narrowed to the named
// subtype. Narrowed subgraphs coexist with the plain subgraph and with
// subgraphs narrowed to other subtypes of the same attribute.
func (n *node) SubGraphTreat(attr, subtype string) (*Sub, error) {
	if subtype == "" {
		return n.subGraph(attr, "")
	}
	return n.subGraph(attr, subtype)
}

func (n *node) subGraph(attr, treat string) (*Sub, error) {
	if idx, ok := n.subIndex[subKey{attr: attr, treat: treat}]; ok {
		return n.subs[idx], nil
	}
	part, err := n.typ.SubPart(attr, nil)
	if err != nil {
		return nil, err
	}
	bound, err := subType(part, treat)
	if err != nil {
		return nil, err
	}
	s := &Sub{node: newNode(bound), attr: attr, treat: treat}
	n.subIndex[subKey{attr: attr, treat: treat}] = len(n.subs)
	n.subs = append(n.subs, s)
	return s, nil
}

// subType determines the type a subgraph for part is bound to, applying
// the optional treat narrowing.
func subType(part mapping.ModelPart, treat string) (mapping.Queryable, error) {
	var target mapping.Queryable
	switch p := part.(type) {
	case *mapping.Embedded:
		target = p
	case *mapping.Association:
		target = p.Target()
	case *mapping.Collection:
		target = p.Target()
	default:
		return nil, mapping.NewResolutionError(
			part.Role().FullPath(), part.PartName(), "",
			"cannot create a subgraph for a "+part.Kind().String()+" attribute")
	}
	if treat == "" {
		return target, nil
	}
	entity, ok := target.(*mapping.EntityType)
	if !ok {
		return nil, mapping.NewResolutionError(
			part.Role().FullPath(), treat, "",
			"treat requires an entity-typed attribute")
	}
	narrowed, ok := entity.Model().Lookup(treat)
	if !ok {
		return nil, mapping.NewResolutionError(
			part.Role().FullPath(), treat, "", "unknown treat type")
	}
	if !narrowed.IsSubtypeOf(entity) {
		return nil, mapping.NewResolutionError(
			part.Role().FullPath(), treat, "",
			"treat type is not a subtype of "+entity.Name())
	}
	return narrowed, nil
}

// SubGraphs returns the child subgraphs in insertion order.
func (n *node) SubGraphs() []*Sub {
	out := make([]*Sub, len(n.subs))
	copy(out, n.subs)
	return out
}

// Lookup returns the subgraph for the composite (attr, treat) key,
// reporting whether it exists. Pass treat "" for the plain subgraph.
func (n *node) Lookup(attr, treat string) (*Sub, bool) {
	idx, ok := n.subIndex[subKey{attr: attr, treat: treat}]
	if !ok {
		return nil, false
	}
	return n.subs[idx], true
}

// Empty reports whether the node has no inclusions and no subgraphs.
func (n *node) Empty() bool {
	return len(n.attrs) == 0 && len(n.subs) == 0
}
