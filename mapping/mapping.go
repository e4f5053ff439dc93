// Package mapping defines the entity mapping model used by fetchgraph.
//
// A Model holds entity types; each entity type is a container of named
// parts (basic attributes, embedded groups, associations and collections).
// Parts are identified by a NavigableRole, the dotted fully-qualified name
// of their position within the model. The DotPath type resolves dotted
// paths such as "department.manager.name" against a container part.
package mapping

import "strings"

// Kind describes what a model part is.
type Kind uint8

const (
	// KindEntity is a top-level entity type.
	KindEntity Kind = iota
	// KindBasic is a scalar attribute.
	KindBasic
	// KindEmbedded is an inline group of attributes.
	KindEmbedded
	// KindAssociation is a to-one reference to another entity.
	KindAssociation
	// KindCollection is a to-many reference to another entity.
	KindCollection
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindEntity:
		return "entity"
	case KindBasic:
		return "basic"
	case KindEmbedded:
		return "embedded"
	case KindAssociation:
		return "association"
	case KindCollection:
		return "collection"
	default:
		return "unknown"
	}
}

// NavigableRole is the dotted, fully-qualified name identifying a part's
// position within the model, e.g. "Employee.address.city".
type NavigableRole string

// Append returns the role of a child part named name.
func (r NavigableRole) Append(name string) NavigableRole {
	if r == "" {
		return NavigableRole(name)
	}
	return NavigableRole(string(r) + "." + name)
}

// FullPath returns the role as a plain string.
func (r NavigableRole) FullPath() string {
	return string(r)
}

// Name returns the last segment of the role.
func (r NavigableRole) Name() string {
	s := string(r)
	if i := strings.LastIndexByte(s, '.'); i >= 0 {
		return s[i+1:]
	}
	return s
}

// ModelPart is a named member of the mapping model.
type ModelPart interface {
	// PartName returns the part name local to its container.
	PartName() string

	// Role returns the part's fully-qualified navigable role.
	Role() NavigableRole

	// Kind returns the part kind.
	Kind() Kind
}

// Queryable is a model part that contains further parts and can be
// navigated by name.
type Queryable interface {
	ModelPart

	// SubPart finds the named child part. The treat argument optionally
	// narrows the lookup to parts declared on a subtype of the container's
	// type; pass nil for no narrowing.
	SubPart(name string, treat *EntityType) (ModelPart, error)

	// VisitSubParts calls fn for every child part, including parts
	// declared on supertypes and, when treat is non-nil, on the treated
	// subtype.
	VisitSubParts(fn func(ModelPart), treat *EntityType)
}

// ResolvePath resolves a dotted path against a container part.
// It is shorthand for parsing the path and resolving it.
func ResolvePath(root Queryable, path string) (ModelPart, error) {
	p, err := ParseDotPath(path)
	if err != nil {
		return nil, err
	}
	return p.Resolve(root)
}
