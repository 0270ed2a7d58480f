package phrase_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/synforest/compose/phrase"
	"github.com/katalvlaran/synforest/hypergraph"
	"github.com/katalvlaran/synforest/lattice"
	"github.com/katalvlaran/synforest/symbol"
)

func monotoneTable() *phrase.Table {
	t := phrase.NewTable()
	t.AddRule([]symbol.Symbol{symbol.Intern("a")}, &phrase.RuleTarget{RHS: []symbol.Symbol{symbol.Intern("A")}})
	t.AddRule([]symbol.Symbol{symbol.Intern("b")}, &phrase.RuleTarget{RHS: []symbol.Symbol{symbol.Intern("B")}})
	t.AddRule([]symbol.Symbol{symbol.Intern("c")}, &phrase.RuleTarget{RHS: []symbol.Symbol{symbol.Intern("C")}})
	return t
}

func TestCompose_MonotoneThreeWords(t *testing.T) {
	lat := lattice.FromSentence([]symbol.Symbol{symbol.Intern("a"), symbol.Intern("b"), symbol.Intern("c")})
	g, err := phrase.Compose(lat, []phrase.Transducer{monotoneTable()}, phrase.WithMaxDistortion(0))
	require.NoError(t, err)
	require.True(t, g.IsValid())

	sorted, err := hypergraph.TopologicalSort(g, nil)
	require.NoError(t, err)
	assert.True(t, sorted.IsValid())
}

func TestCompose_DistortionZeroRejectsSwap(t *testing.T) {
	// The lattice reads "b a". With max_distortion=0 only the monotone
	// order (b, then a) may reach full coverage; the swapped order (a
	// first) must not add a second edge into the full-coverage node.
	tab := phrase.NewTable()
	tab.AddRule([]symbol.Symbol{symbol.Intern("a")}, &phrase.RuleTarget{RHS: []symbol.Symbol{symbol.Intern("A")}})
	tab.AddRule([]symbol.Symbol{symbol.Intern("b")}, &phrase.RuleTarget{RHS: []symbol.Symbol{symbol.Intern("B")}})

	lat := lattice.New(2)
	lat.Arcs[0] = []lattice.Arc{{Label: symbol.Intern("b"), Distance: 1}}
	lat.Arcs[1] = []lattice.Arc{{Label: symbol.Intern("a"), Distance: 1}}

	g, err := phrase.Compose(lat, []phrase.Transducer{tab}, phrase.WithMaxDistortion(0))
	require.NoError(t, err)
	require.True(t, g.IsValid(), "monotone b-then-a composition is still achievable without reordering")

	fullCov := g.Edges[g.Nodes[g.Goal].Edges[0]].Tails[0]
	assert.Len(t, g.Nodes[fullCov].Edges, 1, "only the monotone glue edge reaches full coverage")
}

func TestCompose_EmptyGrammarYieldsInvalidGraph(t *testing.T) {
	lat := lattice.FromSentence([]symbol.Symbol{symbol.Intern("z")})
	g, err := phrase.Compose(lat, []phrase.Transducer{phrase.NewTable()})
	require.NoError(t, err)
	assert.False(t, g.IsValid())
}

func TestCompose_MalformedLattice(t *testing.T) {
	lat := lattice.New(1)
	lat.Arcs[0] = []lattice.Arc{{Label: symbol.Intern("x"), Distance: 5}}
	_, err := phrase.Compose(lat, nil)
	assert.ErrorIs(t, err, lattice.ErrMalformedLattice)
}
