package graph_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/fetchgraph/graph"
	"github.com/syssam/fetchgraph/mapping"
)

// zooModel builds the model used across the graph tests:
//
//	Employee: username, password, address{city, street},
//	          department -> Department, pets -> [Animal]
//	Department: name, employees -> [Employee]
//	Animal: name; Dog extends Animal: breed; Cat extends Animal: indoor
func zooModel(t testing.TB) *mapping.Model {
	t.Helper()
	m := mapping.NewModel()

	emp, err := m.AddEntity("Employee")
	require.NoError(t, err)
	dept, err := m.AddEntity("Department")
	require.NoError(t, err)
	animal, err := m.AddEntity("Animal")
	require.NoError(t, err)
	dog, err := m.AddSubtype("Dog", animal)
	require.NoError(t, err)
	cat, err := m.AddSubtype("Cat", animal)
	require.NoError(t, err)

	_, err = emp.AddBasic("username")
	require.NoError(t, err)
	_, err = emp.AddBasic("password")
	require.NoError(t, err)
	addr, err := emp.AddEmbedded("address")
	require.NoError(t, err)
	_, err = addr.AddBasic("city")
	require.NoError(t, err)
	_, err = addr.AddBasic("street")
	require.NoError(t, err)
	_, err = emp.AddAssociation("department", dept)
	require.NoError(t, err)
	_, err = emp.AddCollection("pets", animal)
	require.NoError(t, err)

	_, err = dept.AddBasic("name")
	require.NoError(t, err)
	_, err = dept.AddCollection("employees", emp)
	require.NoError(t, err)

	_, err = animal.AddBasic("name")
	require.NoError(t, err)
	_, err = dog.AddBasic("breed")
	require.NoError(t, err)
	_, err = cat.AddBasic("indoor")
	require.NoError(t, err)

	return m
}

func entity(t testing.TB, m *mapping.Model, name string) *mapping.EntityType {
	t.Helper()
	e, err := m.Entity(name)
	require.NoError(t, err)
	return e
}

func TestAddAttribute(t *testing.T) {
	t.Parallel()

	m := zooModel(t)
	g := graph.NewRoot(entity(t, m, "Employee"))
	assert.True(t, g.Empty())

	require.NoError(t, g.AddAttribute("username"))
	require.NoError(t, g.AddAttributes("password", "department"))
	assert.Equal(t, []string{"username", "password", "department"}, g.Attributes())
	assert.True(t, g.HasAttribute("username"))
	assert.False(t, g.HasAttribute("salary"))
	assert.False(t, g.Empty())

	// Re-adding merges silently.
	require.NoError(t, g.AddAttribute("username"))
	assert.Equal(t, []string{"username", "password", "department"}, g.Attributes())

	// Unknown attributes are rejected.
	err := g.AddAttribute("salary")
	assert.ErrorIs(t, err, mapping.ErrUnresolvedPath)
}

func TestSubGraph(t *testing.T) {
	t.Parallel()

	m := zooModel(t)
	g := graph.NewRoot(entity(t, m, "Employee"))

	dept, err := g.SubGraph("department")
	require.NoError(t, err)
	assert.Equal(t, "department", dept.Attribute())
	assert.Equal(t, "", dept.Treat())
	require.NoError(t, dept.AddAttribute("name"))

	// Same attribute returns the same subgraph.
	again, err := g.SubGraph("department")
	require.NoError(t, err)
	assert.Same(t, dept, again)

	// Embedded attributes get subgraphs bound to the group itself.
	addr, err := g.SubGraph("address")
	require.NoError(t, err)
	require.NoError(t, addr.AddAttribute("city"))
	assert.Equal(t, mapping.KindEmbedded, addr.Type().Kind())

	// Basic attributes cannot have subgraphs.
	_, err = g.SubGraph("username")
	assert.ErrorIs(t, err, mapping.ErrUnresolvedPath)

	assert.Len(t, g.SubGraphs(), 2)
	got, ok := g.Lookup("department", "")
	assert.True(t, ok)
	assert.Same(t, dept, got)
}

func TestSubGraphTreat(t *testing.T) {
	t.Parallel()

	m := zooModel(t)
	g := graph.NewRoot(entity(t, m, "Employee"))

	// Narrowed subgraphs for distinct subtypes coexist under one attribute.
	dogs, err := g.SubGraphTreat("pets", "Dog")
	require.NoError(t, err)
	require.NoError(t, dogs.AddAttribute("breed"))
	cats, err := g.SubGraphTreat("pets", "Cat")
	require.NoError(t, err)
	require.NoError(t, cats.AddAttribute("indoor"))
	plain, err := g.SubGraph("pets")
	require.NoError(t, err)
	require.NoError(t, plain.AddAttribute("name"))

	assert.Len(t, g.SubGraphs(), 3)
	assert.NotSame(t, dogs, cats)
	assert.NotSame(t, dogs, plain)

	// The treated subgraph sees both subtype and supertype attributes.
	require.NoError(t, dogs.AddAttribute("name"))

	// The plain subgraph does not see subtype attributes.
	err = plain.AddAttribute("breed")
	assert.ErrorIs(t, err, mapping.ErrUnresolvedPath)

	// Treat types must be known subtypes of the attribute's type.
	_, err = g.SubGraphTreat("pets", "Tractor")
	assert.ErrorIs(t, err, mapping.ErrUnresolvedPath)
	_, err = g.SubGraphTreat("pets", "Employee")
	assert.ErrorIs(t, err, mapping.ErrUnresolvedPath)
	_, err = g.SubGraphTreat("address", "Dog")
	assert.ErrorIs(t, err, mapping.ErrUnresolvedPath)
}
