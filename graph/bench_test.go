package graph_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/syssam/fetchgraph/graph"
	"github.com/syssam/fetchgraph/mapping"
)

func BenchmarkParseInto(b *testing.B) {
	m := zooModel(b)
	emp := entity(b, m, "Employee")
	text := "username, address(city, street), department(name, employees(username)), pets(name), pets:Dog(breed), pets:Cat(indoor)"

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		g := graph.NewRoot(emp)
		err := graph.ParseInto(g, text)
		require.NoError(b, err)
	}
}

func BenchmarkRootString(b *testing.B) {
	m := zooModel(b)
	emp := entity(b, m, "Employee")
	g := graph.NewRoot(emp)
	require.NoError(b, graph.ParseInto(g, "username, address(city), pets:Dog(breed)"))

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = g.String()
	}
}

func BenchmarkResolvePath(b *testing.B) {
	m := zooModel(b)
	emp := entity(b, m, "Employee")

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, err := mapping.ResolvePath(emp, "department.employees.address.city")
		require.NoError(b, err)
	}
}
