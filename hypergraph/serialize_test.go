package hypergraph_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/synforest/hypergraph"
	"github.com/katalvlaran/synforest/rule"
	"github.com/katalvlaran/synforest/symbol"
)

// buildRoundTripGraph builds a 2-node graph with one tailless (leaf) edge
// carrying no features and one goal edge carrying a tail and a feature, the
// combination that exposed the missing trailing " ||| " sections in Format.
func buildRoundTripGraph(t *testing.T) *hypergraph.Graph {
	t.Helper()
	g := hypergraph.New()
	leaf := g.AddNode()
	goal := g.AddNode()
	g.Goal = goal

	leafRule := rule.Intern(&rule.Rule{LHS: symbol.Intern("[X]"), RHS: []symbol.Symbol{symbol.Intern("w")}})
	leafEdge := hypergraph.NewEdge(leafRule, nil)
	leafEid := g.AddEdge(leafEdge)
	g.ConnectEdge(leafEid, leaf)

	goalRule := rule.Intern(&rule.Rule{LHS: symbol.Goal, RHS: []symbol.Symbol{symbol.Intern("[X,1]")}})
	goalEdge := hypergraph.NewEdge(goalRule, []hypergraph.NodeID{leaf})
	goalEdge.Features.Add("weight", 0.5)
	goalEid := g.AddEdge(goalEdge)
	g.ConnectEdge(goalEid, goal)

	return g
}

func TestFormatParse_RoundTripsLeafAndFeaturelessEdges(t *testing.T) {
	g := buildRoundTripGraph(t)

	text := hypergraph.Format(g)
	back, err := hypergraph.Parse(text)
	require.NoError(t, err)

	require.True(t, back.IsValid())
	assert.Equal(t, g.Goal, back.Goal)
	require.Len(t, back.Edges, len(g.Edges))

	for i := range g.Edges {
		assert.Equal(t, g.Edges[i].Head, back.Edges[i].Head)
		assert.Equal(t, g.Edges[i].Tails, back.Edges[i].Tails)
		assert.Equal(t, g.Edges[i].Rule.LHS, back.Edges[i].Rule.LHS)
		assert.Equal(t, g.Edges[i].Rule.RHS, back.Edges[i].Rule.RHS)
		assert.Equal(t, g.Edges[i].Features, back.Edges[i].Features)
	}

	assert.Equal(t, text, hypergraph.Format(back), "formatting the parsed graph reproduces the same text")
}

func TestParse_RejectsMissingColonSeparator(t *testing.T) {
	text := "nodes 1 goal 0\nedge 0 ||| [X] ||| w ||| \n"
	_, err := hypergraph.Parse(text)
	assert.ErrorIs(t, err, hypergraph.ErrParseFormat)
}

func TestParse_RejectsWrongSectionCount(t *testing.T) {
	text := "nodes 1 goal 0\nedge 0 : ||| [X] ||| w\n"
	_, err := hypergraph.Parse(text)
	assert.ErrorIs(t, err, hypergraph.ErrParseFormat)
}
