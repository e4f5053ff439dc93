package fetchgraph_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/fetchgraph"
	"github.com/syssam/fetchgraph/graph"
	"github.com/syssam/fetchgraph/mapping"
)

func TestIsInvalidGraph(t *testing.T) {
	t.Parallel()

	m := blogModel(t)
	user, err := m.Entity("User")
	require.NoError(t, err)

	_, err = fetchgraph.Parse(user, "name(")
	assert.True(t, fetchgraph.IsInvalidGraph(err))
	assert.ErrorIs(t, err, fetchgraph.ErrInvalidGraph)

	_, err = fetchgraph.Parse(user, "name")
	assert.NoError(t, err)
	assert.False(t, fetchgraph.IsInvalidGraph(err))
}

func TestIsUnresolvedPath(t *testing.T) {
	t.Parallel()

	m := blogModel(t)
	user, err := m.Entity("User")
	require.NoError(t, err)

	g := graph.NewRoot(user)
	err = g.AddAttribute("salary")
	assert.True(t, fetchgraph.IsUnresolvedPath(err))
	assert.ErrorIs(t, err, mapping.ErrUnresolvedPath)

	// Parse wraps model mismatches as invalid-graph errors, keeping the
	// resolution error in the chain.
	_, err = fetchgraph.Parse(user, "salary")
	assert.True(t, fetchgraph.IsInvalidGraph(err))
	assert.True(t, fetchgraph.IsUnresolvedPath(err))
}
