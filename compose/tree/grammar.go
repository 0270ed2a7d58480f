package tree

import (
	"github.com/katalvlaran/synforest/hypergraph"
	"github.com/katalvlaran/synforest/rule"
	"github.com/katalvlaran/synforest/symbol"
)

// RulePair is a single tree-to-tree grammar entry: a source-side tree
// fragment matched against the input hypergraph, and the target-side
// fragment used to build the corresponding output. Source and Target
// share the same frontier count; a frontier variable's "[X,k]" index (if
// present) reorders which source binding a target position reuses.
type RulePair struct {
	Source     *rule.TreeRule
	Target     *rule.TreeRule
	Features   hypergraph.FeatureVector
	Attributes hypergraph.AttributeVector
}

// Grammar indexes RulePairs by their source root label for the bottom-up
// match at each input node (cicada/compose_tree.hpp's tree_grammar,
// simplified from a multi-transducer trie to a flat per-label rule list;
// see package doc).
type Grammar struct {
	byRoot map[symbol.Symbol][]*RulePair
}

// NewGrammar indexes pairs by Source.Label.
func NewGrammar(pairs ...*RulePair) *Grammar {
	g := &Grammar{byRoot: make(map[symbol.Symbol][]*RulePair)}
	for _, p := range pairs {
		g.byRoot[p.Source.Label] = append(g.byRoot[p.Source.Label], p)
	}
	return g
}

// Rules returns the rule pairs whose source fragment is rooted at root.
func (g *Grammar) Rules(root symbol.Symbol) []*RulePair {
	return g.byRoot[root]
}
