package kbest_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/synforest/hypergraph"
	"github.com/katalvlaran/synforest/kbest"
	"github.com/katalvlaran/synforest/rule"
	"github.com/katalvlaran/synforest/symbol"
)

// buildFanGraph returns a topologically-sorted hypergraph where a single
// goal node is reached by one edge per leaf in scores, each leaf edge's
// weight carried in its "score" attribute so it survives
// hypergraph.TopologicalSort's edge renumbering.
func buildFanGraph(t *testing.T, scores []float64) *hypergraph.Graph {
	t.Helper()
	g := hypergraph.New()
	leafRule := rule.Intern(&rule.Rule{LHS: symbol.Intern("[X]"), RHS: []symbol.Symbol{symbol.Intern("w")}})
	goalRule := rule.Intern(&rule.Rule{LHS: symbol.Goal, RHS: []symbol.Symbol{symbol.Intern("[X,1]")}})

	goal := g.AddNode()
	g.Goal = goal

	for _, s := range scores {
		leaf := g.AddNode()
		leafEid := g.AddEdge(hypergraph.NewEdge(leafRule, nil))
		g.ConnectEdge(leafEid, leaf)

		goalEdge := hypergraph.NewEdge(goalRule, []hypergraph.NodeID{leaf})
		goalEdge.Attributes["score"] = s
		goalEid := g.AddEdge(goalEdge)
		g.ConnectEdge(goalEid, goal)
	}

	sorted, err := hypergraph.TopologicalSort(g, nil)
	require.NoError(t, err)
	return sorted
}

func byScoreAttribute(e *hypergraph.Edge) float64 {
	if s, ok := e.Attributes["score"].(float64); ok {
		return s
	}
	return 1.0
}

// TestPruneKeepsTopK builds a 3-way fan-in goal with distinct scores and
// checks that pruning to k=2 keeps exactly the two strongest derivations.
func TestPruneKeepsTopK(t *testing.T) {
	g := buildFanGraph(t, []float64{0.5, 0.3, 0.1})

	out, err := kbest.Prune(g, byScoreAttribute, 2)
	require.NoError(t, err)
	require.True(t, out.IsValid())
	assert.Len(t, out.Nodes[out.Goal].Edges, 2, "keeps only the top 2 of 3 goal derivations")

	for _, eid := range out.Nodes[out.Goal].Edges {
		assert.NotEqual(t, 0.1, byScoreAttribute(&out.Edges[eid]), "the weakest derivation is pruned away")
	}
}

// buildDeepBranchingForest builds goal -> mid -> leaf -> botA, a 4-level
// chain where mid carries the 3 alternatives under test ({0.5, 0.3, 0.1})
// and leaf/botA each fan out over 5 equally-weighted alternatives
// (0.2 each, summing to 1.0). Two levels of real branching below mid mean
// a chosen derivation's single-path product score (which only ever
// multiplies through one alternative per level) underflows far below the
// per-edge posteriors (which sum the full subtree at each level): this is
// the shape that exposes comparing a derivation's product score against
// posteriors on the same scale.
func buildDeepBranchingForest(t *testing.T) *hypergraph.Graph {
	t.Helper()
	g := hypergraph.New()
	goal := g.AddNode()
	g.Goal = goal
	mid := g.AddNode()
	leaf := g.AddNode()
	botA := g.AddNode()

	botRule := rule.Intern(&rule.Rule{LHS: symbol.Intern("[A]"), RHS: []symbol.Symbol{symbol.Intern("w")}})
	for i := 0; i < 5; i++ {
		e := hypergraph.NewEdge(botRule, nil)
		e.Attributes["score"] = 0.2
		eid := g.AddEdge(e)
		g.ConnectEdge(eid, botA)
	}

	leafRule := rule.Intern(&rule.Rule{LHS: symbol.Intern("[B]"), RHS: []symbol.Symbol{symbol.Intern("[A,1]")}})
	for i := 0; i < 5; i++ {
		e := hypergraph.NewEdge(leafRule, []hypergraph.NodeID{botA})
		e.Attributes["score"] = 0.2
		eid := g.AddEdge(e)
		g.ConnectEdge(eid, leaf)
	}

	midRule := rule.Intern(&rule.Rule{LHS: symbol.Intern("[M]"), RHS: []symbol.Symbol{symbol.Intern("[B,1]")}})
	for _, m := range []float64{0.5, 0.3, 0.1} {
		e := hypergraph.NewEdge(midRule, []hypergraph.NodeID{leaf})
		e.Attributes["score"] = m
		eid := g.AddEdge(e)
		g.ConnectEdge(eid, mid)
	}

	goalRule := rule.Intern(&rule.Rule{LHS: symbol.Goal, RHS: []symbol.Symbol{symbol.Intern("[M,1]")}})
	goalEdge := hypergraph.NewEdge(goalRule, []hypergraph.NodeID{mid})
	goalEdge.Attributes["score"] = 1.0
	goalEid := g.AddEdge(goalEdge)
	g.ConnectEdge(goalEid, goal)

	sorted, err := hypergraph.TopologicalSort(g, nil)
	require.NoError(t, err)
	return sorted
}

// TestPruneBottleneckThresholdAcrossLevels guards against comparing the
// k-th derivation's product-of-edge-weights score against per-edge
// posteriors (a scale mismatch on any multi-level forest). On
// buildDeepBranchingForest, the top-2 derivations' product scores are
// both 0.02 -- far below every edge's posterior, including the
// weakest (0.1) mid alternative's -- so thresholding on a product score
// would retain every edge. Thresholding on the bottleneck (min-posterior)
// yield instead (0.18 for both top-2 derivations here) correctly prunes
// only the weakest mid alternative.
func TestPruneBottleneckThresholdAcrossLevels(t *testing.T) {
	g := buildDeepBranchingForest(t)

	out, err := kbest.Prune(g, byScoreAttribute, 2)
	require.NoError(t, err)
	require.True(t, out.IsValid())
	assert.Len(t, out.Edges, 13, "only the weakest (0.1) mid alternative is pruned from the 14-edge forest")

	for i := range out.Edges {
		assert.NotEqual(t, 0.1, byScoreAttribute(&out.Edges[i]), "the weakest mid alternative is pruned away")
	}
}

// TestPruneFallbackWhenTooFewDerivations is spec.md §8 scenario 5: a
// degenerate hypergraph with fewer derivations than k is returned
// unchanged rather than pruned into an empty or invalid graph.
func TestPruneFallbackWhenTooFewDerivations(t *testing.T) {
	g := buildFanGraph(t, []float64{0.9})
	out, err := kbest.Prune(g, byScoreAttribute, 5)
	require.NoError(t, err)
	assert.Same(t, g, out, "falls back to the input graph unchanged when fewer than k derivations exist")
}

func TestPruneRejectsNonPositiveK(t *testing.T) {
	g := buildFanGraph(t, []float64{0.9, 0.1})
	_, err := kbest.Prune(g, byScoreAttribute, 0)
	assert.ErrorIs(t, err, kbest.ErrInvalidK)
}
