package graph_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/fetchgraph/graph"
)

func TestParseInto(t *testing.T) {
	t.Parallel()

	m := zooModel(t)

	t.Run("empty text leaves the graph unchanged", func(t *testing.T) {
		g := graph.NewRoot(entity(t, m, "Employee"))
		require.NoError(t, graph.ParseInto(g, ""))
		assert.True(t, g.Empty())
		require.NoError(t, graph.ParseInto(g, "   \t\n"))
		assert.True(t, g.Empty())
	})

	t.Run("lone identifier adds one basic inclusion", func(t *testing.T) {
		g := graph.NewRoot(entity(t, m, "Employee"))
		require.NoError(t, graph.ParseInto(g, "username"))
		assert.Equal(t, []string{"username"}, g.Attributes())
		assert.Empty(t, g.SubGraphs())
	})

	t.Run("nested attribute list", func(t *testing.T) {
		g := graph.NewRoot(entity(t, m, "Employee"))
		require.NoError(t, graph.ParseInto(g, "department(name, employees(username))"))
		dept, ok := g.Lookup("department", "")
		require.True(t, ok)
		assert.Equal(t, []string{"name"}, dept.Attributes())
		emps, ok := dept.Lookup("employees", "")
		require.True(t, ok)
		assert.Equal(t, []string{"username"}, emps.Attributes())
	})

	t.Run("whitespace is insignificant", func(t *testing.T) {
		g := graph.NewRoot(entity(t, m, "Employee"))
		require.NoError(t, graph.ParseInto(g, " username ,\n\taddress ( city , street ) "))
		assert.Equal(t, []string{"username"}, g.Attributes())
		addr, ok := g.Lookup("address", "")
		require.True(t, ok)
		assert.Equal(t, []string{"city", "street"}, addr.Attributes())
	})

	t.Run("treat narrowing", func(t *testing.T) {
		g := graph.NewRoot(entity(t, m, "Employee"))
		require.NoError(t, graph.ParseInto(g, "pets(name), pets:Dog(breed), pets:Cat(indoor)"))
		assert.Len(t, g.SubGraphs(), 3)

		dogs, ok := g.Lookup("pets", "Dog")
		require.True(t, ok)
		assert.Equal(t, "Dog", dogs.Treat())
		assert.Equal(t, []string{"breed"}, dogs.Attributes())

		cats, ok := g.Lookup("pets", "Cat")
		require.True(t, ok)
		assert.Equal(t, []string{"indoor"}, cats.Attributes())

		plain, ok := g.Lookup("pets", "")
		require.True(t, ok)
		assert.Equal(t, []string{"name"}, plain.Attributes())
	})

	t.Run("duplicate declarations merge", func(t *testing.T) {
		g := graph.NewRoot(entity(t, m, "Employee"))
		require.NoError(t, graph.ParseInto(g, "username, username, department(name), department(employees(username))"))
		assert.Equal(t, []string{"username"}, g.Attributes())
		assert.Len(t, g.SubGraphs(), 1)
		dept, _ := g.Lookup("department", "")
		assert.Equal(t, []string{"name"}, dept.Attributes())
		assert.Len(t, dept.SubGraphs(), 1)
	})

	t.Run("parsing into a subgraph", func(t *testing.T) {
		g := graph.NewRoot(entity(t, m, "Employee"))
		dept, err := g.SubGraph("department")
		require.NoError(t, err)
		require.NoError(t, graph.ParseInto(dept, "name, employees(username)"))
		assert.Equal(t, []string{"name"}, dept.Attributes())
	})
}

// Parsing the same text into a fresh graph twice must produce
// structurally identical trees, and parsing it twice into the same graph
// must be a no-op the second time.
func TestParseIdempotent(t *testing.T) {
	t.Parallel()

	m := zooModel(t)
	const text = "username, address(city), department(name, employees(username)), pets:Dog(breed, name)"

	a := graph.NewRoot(entity(t, m, "Employee"))
	require.NoError(t, graph.ParseInto(a, text))
	b := graph.NewRoot(entity(t, m, "Employee"))
	require.NoError(t, graph.ParseInto(b, text))
	assert.Equal(t, a.String(), b.String())

	require.NoError(t, graph.ParseInto(a, text))
	assert.Equal(t, b.String(), a.String())
}

func TestParseErrors(t *testing.T) {
	t.Parallel()

	m := zooModel(t)

	tests := []struct {
		name string
		text string
		pos  int
	}{
		{"unmatched open paren", "address(city", 12},
		{"unmatched close paren", "username)", 8},
		{"missing attribute name", "username,,password", 9},
		{"leading comma", ",username", 0},
		{"empty parens", "address()", 8},
		{"colon without type name", "pets:(breed)", 5},
		{"narrowing without parens", "pets:Dog", 0},
		{"unknown attribute", "salary", 0},
		{"unknown nested attribute", "address(zip)", 8},
		{"unknown treat type", "pets:Tractor(breed)", 0},
		{"treat with non-subtype", "pets:Employee(username)", 0},
		{"illegal character", "user-name", 4},
		{"digit-leading identifier", "1username", 0},
		{"trailing garbage", "username password", 9},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := graph.NewRoot(entity(t, m, "Employee"))
			err := graph.ParseInto(g, tt.text)
			require.Error(t, err)
			assert.ErrorIs(t, err, graph.ErrInvalidGraph)
			assert.True(t, graph.IsInvalidGraphError(err))

			var gerr *graph.InvalidGraphError
			require.ErrorAs(t, err, &gerr)
			assert.Equal(t, tt.pos, gerr.Pos, "error: %v", err)
		})
	}
}

// An error aborts the parse but keeps mutations committed before the
// error point.
func TestParsePartialMutation(t *testing.T) {
	t.Parallel()

	m := zooModel(t)
	g := graph.NewRoot(entity(t, m, "Employee"))

	err := graph.ParseInto(g, "username, address(city")
	require.Error(t, err)
	assert.ErrorIs(t, err, graph.ErrInvalidGraph)

	assert.Equal(t, []string{"username"}, g.Attributes())
	addr, ok := g.Lookup("address", "")
	require.True(t, ok)
	assert.Equal(t, []string{"city"}, addr.Attributes())
}
