package mapping

// Model is a registry of entity types.
type Model struct {
	entities map[string]*EntityType
	order    []string
}

// NewModel creates an empty model.
func NewModel() *Model {
	return &Model{entities: make(map[string]*EntityType)}
}

// AddEntity adds a new top-level entity type to the model.
func (m *Model) AddEntity(name string) (*EntityType, error) {
	return m.addEntity(name, nil)
}

// AddSubtype adds an entity type extending super. Parts declared on super
// are visible on the subtype; parts declared on the subtype are only
// reachable through treat-narrowed lookups on the supertype.
func (m *Model) AddSubtype(name string, super *EntityType) (*EntityType, error) {
	if super == nil {
		return nil, NewDefinitionError(name, "", "nil supertype")
	}
	e, err := m.addEntity(name, super)
	if err != nil {
		return nil, err
	}
	super.subtypes = append(super.subtypes, e)
	return e, nil
}

func (m *Model) addEntity(name string, super *EntityType) (*EntityType, error) {
	if name == "" {
		return nil, NewDefinitionError(name, "", "empty entity name")
	}
	if _, ok := m.entities[name]; ok {
		return nil, NewDefinitionError(name, "", "entity already defined")
	}
	e := &EntityType{
		container: container{role: NavigableRole(name)},
		model:     m,
		name:      name,
		super:     super,
	}
	m.entities[name] = e
	m.order = append(m.order, name)
	return e, nil
}

// Entity returns the entity type with the given name.
func (m *Model) Entity(name string) (*EntityType, error) {
	e, ok := m.entities[name]
	if !ok {
		return nil, NewResolutionError(name, name, "", "unknown entity type")
	}
	return e, nil
}

// Lookup returns the entity type with the given name, reporting whether
// it exists.
func (m *Model) Lookup(name string) (*EntityType, bool) {
	e, ok := m.entities[name]
	return e, ok
}

// Entities returns all entity types in definition order.
func (m *Model) Entities() []*EntityType {
	out := make([]*EntityType, 0, len(m.order))
	for _, name := range m.order {
		out = append(out, m.entities[name])
	}
	return out
}

// container holds the named parts of an entity or embedded group.
type container struct {
	role  NavigableRole
	parts map[string]ModelPart
	order []string
}

func (c *container) addPart(owner string, name string, p ModelPart) error {
	if name == "" {
		return NewDefinitionError(owner, name, "empty part name")
	}
	if c.parts == nil {
		c.parts = make(map[string]ModelPart)
	}
	if _, ok := c.parts[name]; ok {
		return NewDefinitionError(owner, name, "part already defined")
	}
	c.parts[name] = p
	c.order = append(c.order, name)
	return nil
}

func (c *container) part(name string) (ModelPart, bool) {
	p, ok := c.parts[name]
	return p, ok
}

func (c *container) visit(fn func(ModelPart)) {
	for _, name := range c.order {
		fn(c.parts[name])
	}
}

// EntityType is a named entity in the model, optionally part of a
// supertype/subtype hierarchy.
type EntityType struct {
	container
	model    *Model
	name     string
	super    *EntityType
	subtypes []*EntityType
}

// Name returns the entity name.
func (e *EntityType) Name() string { return e.name }

// PartName implements ModelPart.
func (e *EntityType) PartName() string { return e.name }

// Role implements ModelPart.
func (e *EntityType) Role() NavigableRole { return e.role }

// Kind implements ModelPart.
func (e *EntityType) Kind() Kind { return KindEntity }

// Model returns the owning model.
func (e *EntityType) Model() *Model { return e.model }

// Supertype returns the direct supertype, or nil.
func (e *EntityType) Supertype() *EntityType { return e.super }

// Subtypes returns the direct subtypes in definition order.
func (e *EntityType) Subtypes() []*EntityType { return e.subtypes }

// IsSubtypeOf reports whether e is other or a (transitive) subtype of it.
func (e *EntityType) IsSubtypeOf(other *EntityType) bool {
	for t := e; t != nil; t = t.super {
		if t == other {
			return true
		}
	}
	return false
}

// AddBasic declares a scalar attribute on the entity.
func (e *EntityType) AddBasic(name string) (*Attribute, error) {
	a := &Attribute{name: name, role: e.role.Append(name)}
	if err := e.addPart(e.name, name, a); err != nil {
		return nil, err
	}
	return a, nil
}

// AddEmbedded declares an embedded attribute group on the entity.
func (e *EntityType) AddEmbedded(name string) (*Embedded, error) {
	g := &Embedded{container: container{role: e.role.Append(name)}, name: name, owner: e.name}
	if err := e.addPart(e.name, name, g); err != nil {
		return nil, err
	}
	return g, nil
}

// AddAssociation declares a to-one association to target.
func (e *EntityType) AddAssociation(name string, target *EntityType) (*Association, error) {
	if target == nil {
		return nil, NewDefinitionError(e.name, name, "nil association target")
	}
	a := &Association{name: name, role: e.role.Append(name), target: target}
	if err := e.addPart(e.name, name, a); err != nil {
		return nil, err
	}
	return a, nil
}

// AddCollection declares a to-many collection of target elements.
func (e *EntityType) AddCollection(name string, target *EntityType) (*Collection, error) {
	if target == nil {
		return nil, NewDefinitionError(e.name, name, "nil collection target")
	}
	c := &Collection{name: name, role: e.role.Append(name), target: target}
	if err := e.addPart(e.name, name, c); err != nil {
		return nil, err
	}
	return c, nil
}

// SubPart implements Queryable. The lookup checks the entity's own parts,
// then its supertypes. When treat names a subtype of e, parts declared on
// the treated subtype (and its supertypes up to e) are found as well.
func (e *EntityType) SubPart(name string, treat *EntityType) (ModelPart, error) {
	for t := e; t != nil; t = t.super {
		if p, ok := t.part(name); ok {
			return p, nil
		}
	}
	if treat != nil && treat != e && treat.IsSubtypeOf(e) {
		for t := treat; t != nil && t != e; t = t.super {
			if p, ok := t.part(name); ok {
				return p, nil
			}
		}
	}
	return nil, NewResolutionError(e.role.FullPath(), name, "", "no such part")
}

// VisitSubParts implements Queryable.
func (e *EntityType) VisitSubParts(fn func(ModelPart), treat *EntityType) {
	var supers []*EntityType
	for t := e; t != nil; t = t.super {
		supers = append(supers, t)
	}
	// Supertype parts first, matching declaration order top-down.
	for i := len(supers) - 1; i >= 0; i-- {
		supers[i].visit(fn)
	}
	if treat != nil && treat != e && treat.IsSubtypeOf(e) {
		var chain []*EntityType
		for t := treat; t != nil && t != e; t = t.super {
			chain = append(chain, t)
		}
		for i := len(chain) - 1; i >= 0; i-- {
			chain[i].visit(fn)
		}
	}
}

// Attribute is a scalar (basic) attribute.
type Attribute struct {
	name string
	role NavigableRole
}

// PartName implements ModelPart.
func (a *Attribute) PartName() string { return a.name }

// Role implements ModelPart.
func (a *Attribute) Role() NavigableRole { return a.role }

// Kind implements ModelPart.
func (a *Attribute) Kind() Kind { return KindBasic }

// Embedded is an inline group of attributes. It is its own container:
// sub-parts are declared directly on the group.
type Embedded struct {
	container
	name  string
	owner string
}

// PartName implements ModelPart.
func (g *Embedded) PartName() string { return g.name }

// Role implements ModelPart.
func (g *Embedded) Role() NavigableRole { return g.role }

// Kind implements ModelPart.
func (g *Embedded) Kind() Kind { return KindEmbedded }

// AddBasic declares a scalar attribute inside the group.
func (g *Embedded) AddBasic(name string) (*Attribute, error) {
	a := &Attribute{name: name, role: g.role.Append(name)}
	if err := g.addPart(g.owner, name, a); err != nil {
		return nil, err
	}
	return a, nil
}

// AddEmbedded declares a nested embedded group.
func (g *Embedded) AddEmbedded(name string) (*Embedded, error) {
	nested := &Embedded{container: container{role: g.role.Append(name)}, name: name, owner: g.owner}
	if err := g.addPart(g.owner, name, nested); err != nil {
		return nil, err
	}
	return nested, nil
}

// AddAssociation declares a to-one association inside the group.
func (g *Embedded) AddAssociation(name string, target *EntityType) (*Association, error) {
	if target == nil {
		return nil, NewDefinitionError(g.owner, name, "nil association target")
	}
	a := &Association{name: name, role: g.role.Append(name), target: target}
	if err := g.addPart(g.owner, name, a); err != nil {
		return nil, err
	}
	return a, nil
}

// AddCollection declares a to-many collection inside the group.
func (g *Embedded) AddCollection(name string, target *EntityType) (*Collection, error) {
	if target == nil {
		return nil, NewDefinitionError(g.owner, name, "nil collection target")
	}
	c := &Collection{name: name, role: g.role.Append(name), target: target}
	if err := g.addPart(g.owner, name, c); err != nil {
		return nil, err
	}
	return c, nil
}

// SubPart implements Queryable. Embedded groups have no subtype hierarchy,
// so the treat hint is ignored.
func (g *Embedded) SubPart(name string, _ *EntityType) (ModelPart, error) {
	if p, ok := g.part(name); ok {
		return p, nil
	}
	return nil, NewResolutionError(g.role.FullPath(), name, "", "no such part")
}

// VisitSubParts implements Queryable.
func (g *Embedded) VisitSubParts(fn func(ModelPart), _ *EntityType) {
	g.visit(fn)
}

// Association is a to-one reference to another entity. Navigation through
// the association resolves against the target entity type.
type Association struct {
	name   string
	role   NavigableRole
	target *EntityType
}

// PartName implements ModelPart.
func (a *Association) PartName() string { return a.name }

// Role implements ModelPart.
func (a *Association) Role() NavigableRole { return a.role }

// Kind implements ModelPart.
func (a *Association) Kind() Kind { return KindAssociation }

// Target returns the referenced entity type.
func (a *Association) Target() *EntityType { return a.target }

// SubPart implements Queryable by delegating to the target entity.
func (a *Association) SubPart(name string, treat *EntityType) (ModelPart, error) {
	return a.target.SubPart(name, treat)
}

// VisitSubParts implements Queryable by delegating to the target entity.
func (a *Association) VisitSubParts(fn func(ModelPart), treat *EntityType) {
	a.target.VisitSubParts(fn, treat)
}

// Collection is a to-many reference to another entity. Navigation through
// the collection resolves against the element entity type.
type Collection struct {
	name   string
	role   NavigableRole
	target *EntityType
}

// PartName implements ModelPart.
func (c *Collection) PartName() string { return c.name }

// Role implements ModelPart.
func (c *Collection) Role() NavigableRole { return c.role }

// Kind implements ModelPart.
func (c *Collection) Kind() Kind { return KindCollection }

// Target returns the element entity type.
func (c *Collection) Target() *EntityType { return c.target }

// SubPart implements Queryable by delegating to the element entity.
func (c *Collection) SubPart(name string, treat *EntityType) (ModelPart, error) {
	return c.target.SubPart(name, treat)
}

// VisitSubParts implements Queryable by delegating to the element entity.
func (c *Collection) VisitSubParts(fn func(ModelPart), treat *EntityType) {
	c.target.VisitSubParts(fn, treat)
}
