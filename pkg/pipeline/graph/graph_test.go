package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildDiamond(t *testing.T) *Graph {
	t.Helper()
	g := New()
	for _, n := range []string{"fetch_movies", "fetch_ratings", "merge", "load"} {
		require.NoError(t, g.AddTask(n))
	}
	require.NoError(t, g.AddEdge("fetch_movies", "merge"))
	require.NoError(t, g.AddEdge("fetch_ratings", "merge"))
	require.NoError(t, g.AddEdge("merge", "load"))
	return g
}

func TestGraph_AddTask_Duplicate(t *testing.T) {
	g := New()
	require.NoError(t, g.AddTask("a"))
	err := g.AddTask("a")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "already registered")
}

func TestGraph_AddEdge_UnknownTask(t *testing.T) {
	g := New()
	require.NoError(t, g.AddTask("a"))
	assert.Error(t, g.AddEdge("a", "b"))
	assert.Error(t, g.AddEdge("b", "a"))
}

func TestGraph_AddEdge_SelfDependency(t *testing.T) {
	g := New()
	require.NoError(t, g.AddTask("a"))
	assert.Error(t, g.AddEdge("a", "a"))
}

func TestGraph_AddEdge_Duplicate(t *testing.T) {
	g := New()
	require.NoError(t, g.AddTask("a"))
	require.NoError(t, g.AddTask("b"))
	require.NoError(t, g.AddEdge("a", "b"))
	assert.Error(t, g.AddEdge("a", "b"))
}

func TestGraph_Roots(t *testing.T) {
	g := buildDiamond(t)
	assert.Equal(t, []string{"fetch_movies", "fetch_ratings"}, g.Roots())
}

func TestGraph_Dependencies(t *testing.T) {
	g := buildDiamond(t)
	assert.Equal(t, []string{"fetch_movies", "fetch_ratings"}, g.Dependencies("merge"))
	assert.Empty(t, g.Dependencies("fetch_movies"))
}

func TestGraph_TransitiveDependents(t *testing.T) {
	g := buildDiamond(t)
	assert.Equal(t, []string{"load", "merge"}, g.TransitiveDependents("fetch_movies"))
	assert.Empty(t, g.TransitiveDependents("load"))
}

func TestGraph_Validate_Empty(t *testing.T) {
	assert.Error(t, New().Validate())
}

func TestGraph_Validate_Cycle(t *testing.T) {
	g := New()
	for _, n := range []string{"a", "b", "c"} {
		require.NoError(t, g.AddTask(n))
	}
	require.NoError(t, g.AddEdge("a", "b"))
	require.NoError(t, g.AddEdge("b", "c"))
	require.NoError(t, g.AddEdge("c", "a"))
	err := g.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cycle")
}

func TestGraph_TopologicalOrder(t *testing.T) {
	g := buildDiamond(t)
	order, err := g.TopologicalOrder()
	require.NoError(t, err)
	require.Len(t, order, 4)

	pos := make(map[string]int, len(order))
	for i, n := range order {
		pos[n] = i
	}
	assert.Less(t, pos["fetch_movies"], pos["merge"])
	assert.Less(t, pos["fetch_ratings"], pos["merge"])
	assert.Less(t, pos["merge"], pos["load"])
}
