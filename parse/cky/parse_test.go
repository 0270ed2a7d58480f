package cky_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/synforest/hypergraph"
	"github.com/katalvlaran/synforest/lattice"
	"github.com/katalvlaran/synforest/parse/cky"
	"github.com/katalvlaran/synforest/symbol"
)

func smallGrammar() *cky.Table {
	tab := cky.NewTable(0)
	tab.AddRule([]symbol.Symbol{symbol.Intern("dog")}, &cky.Rule{LHS: symbol.Intern("[N]"), RHS: []symbol.Symbol{symbol.Intern("dog")}})
	tab.AddRule([]symbol.Symbol{symbol.Intern("barks")}, &cky.Rule{LHS: symbol.Intern("[V]"), RHS: []symbol.Symbol{symbol.Intern("barks")}})
	tab.AddRule([]symbol.Symbol{symbol.Intern("[N]")}, &cky.Rule{LHS: symbol.Intern("[NP]"), RHS: []symbol.Symbol{symbol.Intern("[N,1]")}})
	tab.AddRule([]symbol.Symbol{symbol.Intern("[V]")}, &cky.Rule{LHS: symbol.Intern("[VP]"), RHS: []symbol.Symbol{symbol.Intern("[V,1]")}})
	tab.AddRule([]symbol.Symbol{symbol.Intern("[NP]"), symbol.Intern("[VP]")},
		&cky.Rule{LHS: symbol.Intern("[S]"), RHS: []symbol.Symbol{symbol.Intern("[NP,1]"), symbol.Intern("[VP,2]")}})
	return tab
}

func TestParse_SimpleSentence(t *testing.T) {
	lat := lattice.FromSentence([]symbol.Symbol{symbol.Intern("dog"), symbol.Intern("barks")})
	g, err := cky.Parse(lat, []cky.Transducer{smallGrammar()}, cky.WithStartSymbol(symbol.Intern("[S]")))
	require.NoError(t, err)
	require.True(t, g.IsValid())

	goalEdges := g.Nodes[g.Goal].Edges
	require.Len(t, goalEdges, 1)
	assert.Equal(t, symbol.Goal, g.Edges[goalEdges[0]].Rule.LHS)
}

func TestParse_NoStartSymbolYieldsInvalidGraph(t *testing.T) {
	lat := lattice.FromSentence([]symbol.Symbol{symbol.Intern("dog")})
	g, err := cky.Parse(lat, []cky.Transducer{smallGrammar()}, cky.WithStartSymbol(symbol.Intern("[S]")))
	require.NoError(t, err)
	assert.False(t, g.IsValid(), "a lone noun never completes [S]")
}

func TestParse_MalformedLattice(t *testing.T) {
	lat := lattice.New(1)
	lat.Arcs[0] = []lattice.Arc{{Label: symbol.Intern("x"), Distance: 5}}
	_, err := cky.Parse(lat, nil)
	assert.ErrorIs(t, err, lattice.ErrMalformedLattice)
}

// cyclicGrammar has two unary rules that rewrite into each other
// ([A] -> [B], [B] -> [A]) without bound, exercising the
// maxNoProgressRounds safety cap (spec.md §9 open question 2): each
// round mints a fresh (lhs, level) key, so only the no-new-category
// heuristic -- not "closure is empty" -- can ever stop it.
func cyclicGrammar() *cky.Table {
	tab := cky.NewTable(0)
	tab.AddRule([]symbol.Symbol{symbol.Intern("x")}, &cky.Rule{LHS: symbol.Intern("[A]"), RHS: []symbol.Symbol{symbol.Intern("x")}})
	tab.AddRule([]symbol.Symbol{symbol.Intern("[A]")}, &cky.Rule{LHS: symbol.Intern("[B]"), RHS: []symbol.Symbol{symbol.Intern("[A,1]")}})
	tab.AddRule([]symbol.Symbol{symbol.Intern("[B]")}, &cky.Rule{LHS: symbol.Intern("[A]"), RHS: []symbol.Symbol{symbol.Intern("[B,1]")}})
	return tab
}

func TestParse_UnaryClosureCycleTerminates(t *testing.T) {
	lat := lattice.FromSentence([]symbol.Symbol{symbol.Intern("x")})
	done := make(chan struct{})
	var g *hypergraph.Graph
	var err error
	go func() {
		g, err = cky.Parse(lat, []cky.Transducer{cyclicGrammar()}, cky.WithStartSymbol(symbol.Intern("[A]")))
		close(done)
	}()

	select {
	case <-done:
		require.NoError(t, err)
		assert.True(t, g.IsValid(), "[A] is reached at level 0 directly from the terminal rule")
	case <-time.After(5 * time.Second):
		t.Fatal("Parse did not terminate: unary-closure no-progress cap did not trigger")
	}
}

func TestParse_RespectsMaxSpan(t *testing.T) {
	tab := cky.NewTable(1) // no span may exceed width 1
	tab.AddRule([]symbol.Symbol{symbol.Intern("a")}, &cky.Rule{LHS: symbol.Intern("[X]"), RHS: []symbol.Symbol{symbol.Intern("a")}})
	tab.AddRule([]symbol.Symbol{symbol.Intern("[X]"), symbol.Intern("[X]")},
		&cky.Rule{LHS: symbol.Intern("[S]"), RHS: []symbol.Symbol{symbol.Intern("[X,1]"), symbol.Intern("[X,2]")}})

	lat := lattice.FromSentence([]symbol.Symbol{symbol.Intern("a"), symbol.Intern("a")})
	g, err := cky.Parse(lat, []cky.Transducer{tab}, cky.WithStartSymbol(symbol.Intern("[S]")))
	require.NoError(t, err)
	assert.False(t, g.IsValid(), "the [S] span has width 2, exceeding the grammar's maxSpan of 1")
}
