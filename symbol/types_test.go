package symbol_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/katalvlaran/synforest/symbol"
)

func TestIntern_SameTextSameID(t *testing.T) {
	a := symbol.Intern("hello")
	b := symbol.Intern("hello")
	assert.Equal(t, a, b)
}

func TestIntern_DistinctText(t *testing.T) {
	a := symbol.Intern("synforest-alpha")
	b := symbol.Intern("synforest-beta")
	assert.NotEqual(t, a, b)
}

func TestNonTerminal_Positional(t *testing.T) {
	s := symbol.Intern("[X]")
	assert.True(t, s.IsNonTerminal())
	assert.Equal(t, 0, s.NonTerminalIndex())
	assert.Equal(t, s, s.NonTerminal())
}

func TestNonTerminal_Indexed(t *testing.T) {
	s := symbol.Intern("[X,2]")
	assert.True(t, s.IsNonTerminal())
	assert.Equal(t, 2, s.NonTerminalIndex())
	assert.Equal(t, "[X]", s.NonTerminal().String())
}

func TestTerminal_IsNotNonTerminal(t *testing.T) {
	s := symbol.Intern("house")
	assert.False(t, s.IsNonTerminal())
	assert.Equal(t, 0, s.NonTerminalIndex())
}

func TestCoarse(t *testing.T) {
	s := symbol.Intern("[NP^S^VP,1]")
	assert.Equal(t, "[NP^S,1]", s.Coarse(1).String())
	assert.Equal(t, "[NP,1]", s.Coarse(2).String())
	assert.Equal(t, "[NP,1]", s.Coarse(99).String())
	assert.Equal(t, s, s.Coarse(0))
}

func TestPOSAndTerminal(t *testing.T) {
	s := symbol.Intern("run|VB")
	pos, ok := s.POS()
	assert.True(t, ok)
	assert.Equal(t, "VB", pos.String())
	assert.Equal(t, "run", s.Terminal().String())

	plain := symbol.Intern("run")
	_, ok = plain.POS()
	assert.False(t, ok)
	assert.Equal(t, plain, plain.Terminal())
}

func TestSentinelsAreDistinct(t *testing.T) {
	ids := []symbol.Symbol{symbol.Epsilon, symbol.BOS, symbol.EOS, symbol.None, symbol.Goal}
	seen := make(map[symbol.Symbol]bool)
	for _, id := range ids {
		assert.False(t, seen[id])
		seen[id] = true
	}
}
