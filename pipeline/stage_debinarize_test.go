package pipeline_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/synforest/hypergraph"
	"github.com/katalvlaran/synforest/pipeline"
	"github.com/katalvlaran/synforest/rule"
	"github.com/katalvlaran/synforest/symbol"
)

// glueChainGraph builds the phrase composer's binary glue shape for three
// leaves: glue(glue(leaf1, leaf2), leaf3), rooted at goal.
func glueChainGraph() (g *hypergraph.Graph, n1, n2, n3 hypergraph.NodeID, topEdge hypergraph.EdgeID) {
	g = hypergraph.New()
	n1, n2, n3 = g.AddNode(), g.AddNode(), g.AddNode()
	g1 := g.AddNode()
	goal := g.AddNode()
	g.Goal = goal

	leafRule := func(word string) *rule.Rule {
		return rule.Intern(&rule.Rule{LHS: symbol.Intern("[A]"), RHS: []symbol.Symbol{symbol.Intern(word)}})
	}
	for i, n := range []hypergraph.NodeID{n1, n2, n3} {
		e := hypergraph.NewEdge(leafRule([]string{"w1", "w2", "w3"}[i]), nil)
		eid := g.AddEdge(e)
		g.ConnectEdge(eid, n)
	}

	glueRule := rule.Intern(&rule.Rule{LHS: symbol.Intern("[X]"), RHS: []symbol.Symbol{symbol.Intern("[A,1]"), symbol.Intern("[A,2]")}})

	e1 := hypergraph.NewEdge(glueRule, []hypergraph.NodeID{n1, n2})
	e1id := g.AddEdge(e1)
	g.ConnectEdge(e1id, g1)

	e2 := hypergraph.NewEdge(glueRule, []hypergraph.NodeID{g1, n3})
	topEdge = g.AddEdge(e2)
	g.ConnectEdge(topEdge, goal)

	return g, n1, n2, n3, topEdge
}

func TestDebinarizeStage_FlattensGlueChain(t *testing.T) {
	g, n1, n2, n3, topEdge := glueChainGraph()
	data := pipeline.NewBundle("s1", nil, nil)
	data.Hypergraph = g

	stage := &pipeline.DebinarizeStage{}
	err := stage.Run(context.Background(), data)
	require.NoError(t, err)

	top := data.Hypergraph.Edges[topEdge]
	assert.Equal(t, []hypergraph.NodeID{n1, n2, n3}, top.Tails)
	assert.Len(t, top.Rule.RHS, 3)
}

func TestDebinarizeStage_RequiresHypergraph(t *testing.T) {
	stage := &pipeline.DebinarizeStage{}
	data := pipeline.NewBundle("s1", nil, nil)
	err := stage.Run(context.Background(), data)
	assert.ErrorIs(t, err, pipeline.ErrNoHypergraph)
}
