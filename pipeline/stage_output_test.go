package pipeline_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/synforest/hypergraph"
	"github.com/katalvlaran/synforest/pipeline"
	"github.com/katalvlaran/synforest/rule"
	"github.com/katalvlaran/synforest/symbol"
)

func TestOutputStage_AppendsFormattedLine(t *testing.T) {
	g := hypergraph.New()
	goal := g.AddNode()
	g.Goal = goal
	r := rule.Intern(&rule.Rule{LHS: symbol.Goal, RHS: []symbol.Symbol{symbol.Intern("w")}})
	e := hypergraph.NewEdge(r, nil)
	eid := g.AddEdge(e)
	g.ConnectEdge(eid, goal)

	data := pipeline.NewBundle("sent-7", nil, nil)
	data.Hypergraph = g

	var lines []string
	stage := &pipeline.OutputStage{Lines: &lines}
	err := stage.Run(context.Background(), data)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.True(t, strings.HasPrefix(lines[0], "sent-7 ||| "))
	assert.True(t, strings.HasSuffix(lines[0], "|||"))
}

func TestOutputStage_NilLinesIsNoop(t *testing.T) {
	g := hypergraph.New()
	g.Goal = g.AddNode()
	data := pipeline.NewBundle("s1", nil, nil)
	data.Hypergraph = g

	stage := &pipeline.OutputStage{}
	err := stage.Run(context.Background(), data)
	assert.NoError(t, err)
}

func TestOutputStage_RequiresHypergraph(t *testing.T) {
	var lines []string
	stage := &pipeline.OutputStage{Lines: &lines}
	data := pipeline.NewBundle("s1", nil, nil)
	err := stage.Run(context.Background(), data)
	assert.ErrorIs(t, err, pipeline.ErrNoHypergraph)
}
