package hypergraph_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/synforest/hypergraph"
	"github.com/katalvlaran/synforest/rule"
	"github.com/katalvlaran/synforest/symbol"
)

func leafRule(lhs string) *rule.Rule {
	return rule.Intern(&rule.Rule{LHS: symbol.Intern(lhs), RHS: []symbol.Symbol{symbol.Intern("a")}})
}

// buildChain builds a two-node chain: node0 holds a tail-less "[A]" edge,
// and node1 (the goal) holds a "[B]" edge whose only tail is node0.
func buildChain(t *testing.T) *hypergraph.Graph {
	t.Helper()
	g := hypergraph.New()
	n0 := g.AddNode()
	n1 := g.AddNode()

	e0 := g.AddEdge(hypergraph.NewEdge(leafRule("[A]"), nil))
	g.ConnectEdge(e0, n0)

	e1 := g.AddEdge(hypergraph.NewEdge(leafRule("[B]"), []hypergraph.NodeID{n0}))
	g.ConnectEdge(e1, n1)

	g.Goal = n1
	return g
}

func TestTopologicalSort_NilGraph(t *testing.T) {
	_, err := hypergraph.TopologicalSort(nil, nil)
	assert.ErrorIs(t, err, hypergraph.ErrNilGraph)
}

func TestTopologicalSort_InvalidGraphReturnsEmpty(t *testing.T) {
	g := hypergraph.New()
	sorted, err := hypergraph.TopologicalSort(g, nil)
	require.NoError(t, err)
	assert.False(t, sorted.IsValid())
}

func TestTopologicalSort_OrdersLeavesBeforeGoal(t *testing.T) {
	g := buildChain(t)
	sorted, err := hypergraph.TopologicalSort(g, nil)
	require.NoError(t, err)
	require.True(t, sorted.IsValid())

	for _, e := range sorted.Edges {
		for _, tail := range e.Tails {
			assert.Less(t, int(tail), int(e.Head))
		}
	}
	assert.Equal(t, sorted.Goal, hypergraph.NodeID(len(sorted.Nodes)-1))
}

func TestTopologicalSort_CycleDetected(t *testing.T) {
	g := hypergraph.New()
	n0 := g.AddNode()
	n1 := g.AddNode()

	e0 := g.AddEdge(hypergraph.NewEdge(leafRule("[A]"), []hypergraph.NodeID{n1}))
	g.ConnectEdge(e0, n0)
	e1 := g.AddEdge(hypergraph.NewEdge(leafRule("[B]"), []hypergraph.NodeID{n0}))
	g.ConnectEdge(e1, n1)

	g.Goal = n1

	_, err := hypergraph.TopologicalSort(g, nil)
	assert.ErrorIs(t, err, hypergraph.ErrCycleDetected)
}

func TestTopologicalSort_EdgeFilterCascades(t *testing.T) {
	g := buildChain(t)
	// Filter out the only edge at node0: node0 becomes empty, which must
	// cascade into filtering the edge at node1 that depends on it,
	// leaving an invalid (empty) result.
	filtered, err := hypergraph.TopologicalSort(g, func(e hypergraph.Edge) bool {
		return e.Rule.LHS.String() == "[A]"
	})
	require.NoError(t, err)
	assert.False(t, filtered.IsValid())
}

func TestTopologicalSort_PartialFilterKeepsRest(t *testing.T) {
	g := hypergraph.New()
	n0 := g.AddNode()
	n1 := g.AddNode()

	good := g.AddEdge(hypergraph.NewEdge(leafRule("[A]"), nil))
	g.ConnectEdge(good, n0)
	bad := g.AddEdge(hypergraph.NewEdge(leafRule("[A2]"), nil))
	g.ConnectEdge(bad, n0)

	top := g.AddEdge(hypergraph.NewEdge(leafRule("[B]"), []hypergraph.NodeID{n0}))
	g.ConnectEdge(top, n1)
	g.Goal = n1

	sorted, err := hypergraph.TopologicalSort(g, func(e hypergraph.Edge) bool {
		return e.Rule.LHS.String() == "[A2]"
	})
	require.NoError(t, err)
	require.True(t, sorted.IsValid())
	assert.Len(t, sorted.Nodes[0].Edges, 1)
}
