package schema

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/go-openapi/inflect"
	"gopkg.in/yaml.v3"

	"github.com/syssam/fetchgraph/mapping"
)

// ErrInvalidSchema indicates a structurally invalid schema document.
var ErrInvalidSchema = errors.New("fetchgraph: invalid schema")

// File is the root of a schema document.
type File struct {
	Entities []*Entity `yaml:"entities"`
}

// Entity declares an entity type. An entity extending another entity
// becomes a subtype: parts declared on the supertype are visible on it,
// and its own parts are reachable from the supertype only through
// treat-narrowed lookups.
type Entity struct {
	Name     string      `yaml:"name"`
	Extends  string      `yaml:"extends,omitempty"`
	Fields   []string    `yaml:"fields,omitempty"`
	Embedded []*Embedded `yaml:"embedded,omitempty"`
	Edges    []*Edge     `yaml:"edges,omitempty"`
}

// Label returns the snake_case label derived from the entity name.
func (e *Entity) Label() string {
	return inflect.Underscore(e.Name)
}

// Embedded declares an inline attribute group. Groups nest.
type Embedded struct {
	Name     string      `yaml:"name"`
	Fields   []string    `yaml:"fields,omitempty"`
	Embedded []*Embedded `yaml:"embedded,omitempty"`
	Edges    []*Edge     `yaml:"edges,omitempty"`
}

// Edge declares a reference to another declared entity. A collection
// edge is to-many; otherwise the edge is a to-one association.
type Edge struct {
	Name       string `yaml:"name"`
	Type       string `yaml:"type"`
	Collection bool   `yaml:"collection,omitempty"`
}

// Parse decodes a schema document from r. Unknown document fields are
// rejected.
func Parse(r io.Reader) (*File, error) {
	f := &File{}
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(f); err != nil {
		return nil, fmt.Errorf("fetchgraph: decode schema: %w", err)
	}
	return f, nil
}

// ParseFile decodes a schema document from the file at path.
func ParseFile(path string) (*File, error) {
	fd, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("fetchgraph: open schema: %w", err)
	}
	defer fd.Close()
	return Parse(fd)
}

// Load parses the schema file at path and builds its mapping model.
func Load(path string) (*mapping.Model, error) {
	f, err := ParseFile(path)
	if err != nil {
		return nil, err
	}
	return f.Build()
}

// Build constructs a mapping model from the document. Entities are
// declared in document order, supertypes before their subtypes
// regardless of where they appear; extends-cycles, unknown supertypes
// and unknown edge targets are rejected.
func (f *File) Build() (*mapping.Model, error) {
	byName := make(map[string]*Entity, len(f.Entities))
	for _, e := range f.Entities {
		if e.Name == "" {
			return nil, fmt.Errorf("%w: entity without a name", ErrInvalidSchema)
		}
		if _, ok := byName[e.Name]; ok {
			return nil, fmt.Errorf("%w: entity %q declared twice", ErrInvalidSchema, e.Name)
		}
		byName[e.Name] = e
	}
	m := mapping.NewModel()
	types := make(map[string]*mapping.EntityType, len(f.Entities))
	for _, e := range f.Entities {
		if _, err := declare(m, e, byName, types, make(map[string]bool)); err != nil {
			return nil, err
		}
	}
	for _, e := range f.Entities {
		if err := buildParts(e.Name, types[e.Name], e.Fields, e.Embedded, e.Edges, types); err != nil {
			return nil, fmt.Errorf("schema %q: %w", e.Name, err)
		}
	}
	return m, nil
}

func declare(m *mapping.Model, e *Entity, byName map[string]*Entity, types map[string]*mapping.EntityType, path map[string]bool) (*mapping.EntityType, error) {
	if t, ok := types[e.Name]; ok {
		return t, nil
	}
	if path[e.Name] {
		return nil, fmt.Errorf("%w: entity %q extends itself", ErrInvalidSchema, e.Name)
	}
	path[e.Name] = true
	var (
		t   *mapping.EntityType
		err error
	)
	if e.Extends == "" {
		t, err = m.AddEntity(e.Name)
	} else {
		super, ok := byName[e.Extends]
		if !ok {
			return nil, fmt.Errorf("%w: entity %q extends unknown type %q", ErrInvalidSchema, e.Name, e.Extends)
		}
		var st *mapping.EntityType
		if st, err = declare(m, super, byName, types, path); err != nil {
			return nil, err
		}
		t, err = m.AddSubtype(e.Name, st)
	}
	if err != nil {
		return nil, err
	}
	types[e.Name] = t
	return t, nil
}

// partAdder is the part-declaration surface shared by entity types and
// embedded groups.
type partAdder interface {
	AddBasic(name string) (*mapping.Attribute, error)
	AddEmbedded(name string) (*mapping.Embedded, error)
	AddAssociation(name string, target *mapping.EntityType) (*mapping.Association, error)
	AddCollection(name string, target *mapping.EntityType) (*mapping.Collection, error)
}

func buildParts(owner string, dst partAdder, fields []string, groups []*Embedded, edges []*Edge, types map[string]*mapping.EntityType) error {
	for _, name := range fields {
		if _, err := dst.AddBasic(name); err != nil {
			return err
		}
	}
	for _, g := range groups {
		nested, err := dst.AddEmbedded(g.Name)
		if err != nil {
			return err
		}
		if err := buildParts(owner, nested, g.Fields, g.Embedded, g.Edges, types); err != nil {
			return err
		}
	}
	for _, ed := range edges {
		target, ok := types[ed.Type]
		if !ok {
			return fmt.Errorf("%w: edge %q references unknown type %q", ErrInvalidSchema, ed.Name, ed.Type)
		}
		var err error
		if ed.Collection {
			_, err = dst.AddCollection(ed.Name, target)
		} else {
			_, err = dst.AddAssociation(ed.Name, target)
		}
		if err != nil {
			return err
		}
	}
	return nil
}
