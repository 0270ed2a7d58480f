package pipeline_test

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/synforest/hypergraph"
	"github.com/katalvlaran/synforest/pipeline"
	"github.com/katalvlaran/synforest/rule"
	"github.com/katalvlaran/synforest/semiring"
	"github.com/katalvlaran/synforest/symbol"
)

func logWeight(e *hypergraph.Edge) semiring.Weight { return semiring.Weight(e.Features["score"]) }

// leafThenGoal builds "leaf -> A" (score log(0.4)) and "A -> goal" (score
// log(0.5)), in topological order, so potentials compose along one path.
func leafThenGoal() (*hypergraph.Graph, hypergraph.EdgeID, hypergraph.EdgeID) {
	g := hypergraph.New()
	a := g.AddNode()
	goal := g.AddNode()
	g.Goal = goal

	leafRule := rule.Intern(&rule.Rule{LHS: symbol.Intern("[X]"), RHS: []symbol.Symbol{symbol.Intern("w")}})
	leaf := hypergraph.NewEdge(leafRule, nil)
	leaf.Features["score"] = math.Log(0.4)
	leafID := g.AddEdge(leaf)
	g.ConnectEdge(leafID, a)

	goalRule := rule.Intern(&rule.Rule{LHS: symbol.Goal, RHS: []symbol.Symbol{symbol.Intern("[X,1]")}})
	top := hypergraph.NewEdge(goalRule, []hypergraph.NodeID{a})
	top.Features["score"] = math.Log(0.5)
	topID := g.AddEdge(top)
	g.ConnectEdge(topID, goal)

	return g, leafID, topID
}

func TestPushWeightsRootStage_ComputesRootPotential(t *testing.T) {
	g, leafID, topID := leafThenGoal()
	data := pipeline.NewBundle("s1", nil, nil)
	data.Hypergraph = g

	stage := &pipeline.PushWeightsRootStage{Semiring: semiring.LogProb{}, Weight: logWeight}
	err := stage.Run(context.Background(), data)
	require.NoError(t, err)

	leafPotential := data.Hypergraph.Edges[leafID].Attributes["pushed-potential"].(float64)
	rootPotential := data.Hypergraph.Edges[topID].Attributes["pushed-potential"].(float64)

	assert.InDelta(t, math.Log(0.4), leafPotential, 1e-9)
	assert.InDelta(t, math.Log(0.4)+math.Log(0.5), rootPotential, 1e-9)
}

func TestPushHeadStage_CombinesEdgeWithTailPotentials(t *testing.T) {
	g, leafID, topID := leafThenGoal()
	data := pipeline.NewBundle("s1", nil, nil)
	data.Hypergraph = g

	stage := &pipeline.PushHeadStage{Semiring: semiring.LogProb{}, Weight: logWeight}
	err := stage.Run(context.Background(), data)
	require.NoError(t, err)

	leafPushed := data.Hypergraph.Edges[leafID].Attributes["pushed-weight"].(float64)
	topPushed := data.Hypergraph.Edges[topID].Attributes["pushed-weight"].(float64)

	assert.InDelta(t, math.Log(0.4), leafPushed, 1e-9, "no-tail edge's pushed weight is its own weight")
	assert.InDelta(t, math.Log(0.5)+math.Log(0.4), topPushed, 1e-9)
}

func TestPushWeightsRootStage_RequiresHypergraph(t *testing.T) {
	stage := &pipeline.PushWeightsRootStage{Semiring: semiring.LogProb{}, Weight: logWeight}
	data := pipeline.NewBundle("s1", nil, nil)
	err := stage.Run(context.Background(), data)
	assert.ErrorIs(t, err, pipeline.ErrNoHypergraph)
}
