package stateless_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/synforest/feature"
	"github.com/katalvlaran/synforest/hypergraph"
	"github.com/katalvlaran/synforest/rescore/stateless"
	"github.com/katalvlaran/synforest/rule"
	"github.com/katalvlaran/synforest/symbol"
)

// wordCount is a minimal stateless feature counting target-side
// terminals under the plain name "word" (spec.md §8 scenario 1), distinct
// from feature.WordPenalty's negated "word-penalty" used elsewhere.
type wordCount struct{}

func (wordCount) Name() string      { return "word" }
func (wordCount) StateSize() int    { return 0 }
func (wordCount) IsStateless() bool { return true }

func (wordCount) Apply(_ []feature.State, edge *hypergraph.Edge, features hypergraph.FeatureVector, _ bool, _ feature.State) {
	count := 0
	for _, s := range edge.Rule.RHS {
		if !s.IsNonTerminal() {
			count++
		}
	}
	features.Add("word", float64(count))
}
func (w wordCount) ApplyCoarse(nodeStates []feature.State, edge *hypergraph.Edge, features hypergraph.FeatureVector, isFinal bool, out feature.State) {
	w.Apply(nodeStates, edge, features, isFinal, out)
}
func (wordCount) ApplyPredict(feature.State, []feature.State, *hypergraph.Edge, hypergraph.FeatureVector, bool) {
}
func (wordCount) ApplyScan(feature.State, []feature.State, *hypergraph.Edge, int, hypergraph.FeatureVector, bool) {
}
func (w wordCount) ApplyComplete(out feature.State, nodeStates []feature.State, edge *hypergraph.Edge, features hypergraph.FeatureVector, isFinal bool) {
	w.Apply(nodeStates, edge, features, isFinal, out)
}

// TestStatelessApply is spec.md §8 scenario 1: a single-edge hypergraph
// [S] -> a with goal 0 and a stateless model adding feature "word" with
// value 1.
func TestStatelessApply(t *testing.T) {
	g := hypergraph.New()
	goal := g.AddNode()
	g.Goal = goal

	r := rule.Intern(&rule.Rule{LHS: symbol.Intern("[S]"), RHS: []symbol.Symbol{symbol.Intern("a")}})
	e := hypergraph.NewEdge(r, nil)
	eid := g.AddEdge(e)
	g.ConnectEdge(eid, goal)

	model := feature.NewModel(wordCount{})
	require.True(t, model.IsStateless())
	require.Zero(t, model.StateSize())

	out, err := stateless.Apply(model, g)
	require.NoError(t, err)
	require.Len(t, out.Edges, 1)
	assert.Equal(t, out.Goal, out.Edges[0].Head)
	assert.InDelta(t, 1, out.Edges[0].Features["word"], 1e-9)
}

func TestStatelessRejectsStatefulModel(t *testing.T) {
	model := feature.NewModel(feature.NewNgramLM(3, feature.NewMapScorer(nil)))
	_, err := stateless.Apply(model, hypergraph.New())
	assert.ErrorIs(t, err, feature.ErrStatelessModelRequired)
}
