package pipeline_test

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/synforest/hypergraph"
	"github.com/katalvlaran/synforest/kbest"
	"github.com/katalvlaran/synforest/pipeline"
	"github.com/katalvlaran/synforest/rule"
	"github.com/katalvlaran/synforest/symbol"
)

func scoreByFeature(e *hypergraph.Edge) float64 { return math.Exp(e.Features["score"]) }

// threeWayGoal builds a single goal node reached by three alternative
// edges of distinct score, for exercising k-best pruning.
func threeWayGoal(scores []float64) *hypergraph.Graph {
	g := hypergraph.New()
	goal := g.AddNode()
	g.Goal = goal
	r := rule.Intern(&rule.Rule{LHS: symbol.Goal, RHS: []symbol.Symbol{symbol.Intern("w")}})
	for _, s := range scores {
		e := hypergraph.NewEdge(r, nil)
		e.Features["score"] = math.Log(s)
		eid := g.AddEdge(e)
		g.ConnectEdge(eid, goal)
	}
	return g
}

func TestPruneStage_KeepsTopK(t *testing.T) {
	data := pipeline.NewBundle("s1", nil, nil)
	data.Hypergraph = threeWayGoal([]float64{0.1, 0.9, 0.5})

	stage := &pipeline.PruneStage{Score: scoreByFeature, K: 2}
	err := stage.Run(context.Background(), data)
	require.NoError(t, err)
	assert.Len(t, data.Hypergraph.Edges, 2, "only the top 2 of 3 derivations survive")
}

func TestPruneStage_RequiresHypergraph(t *testing.T) {
	stage := &pipeline.PruneStage{Score: scoreByFeature, K: 1}
	data := pipeline.NewBundle("s1", nil, nil)
	err := stage.Run(context.Background(), data)
	assert.ErrorIs(t, err, pipeline.ErrNoHypergraph)
}

func TestPruneStage_InvalidKPropagatesError(t *testing.T) {
	data := pipeline.NewBundle("s1", nil, nil)
	data.Hypergraph = threeWayGoal([]float64{0.1, 0.9})

	stage := &pipeline.PruneStage{Score: scoreByFeature, K: 0}
	err := stage.Run(context.Background(), data)
	assert.ErrorIs(t, err, kbest.ErrInvalidK)
}
