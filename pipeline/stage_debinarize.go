package pipeline

import (
	"context"
	"fmt"

	"github.com/katalvlaran/synforest/hypergraph"
	"github.com/katalvlaran/synforest/rule"
	"github.com/katalvlaran/synforest/symbol"
)

// DebinarizeStage collapses the phrase composer's binary glue chain
// ("[X] -> [X1] [X2]", spec.md §4.3) back into a single flat edge per
// maximal chain, recovering the original unsegmented phrase sequence for
// presentation (original_source/cicada's operation/debinarize.cpp).
//
// Only a chain link reached by exactly one incoming edge is inlined: a
// node reached by more than one edge represents a genuine ambiguity
// (several ways to reach that coverage), and collapsing it would
// silently discard all but one derivation.
type DebinarizeStage struct{}

func (s *DebinarizeStage) Name() string { return "debinarize" }

func (s *DebinarizeStage) Run(_ context.Context, data *Bundle) error {
	if data.Hypergraph == nil {
		return ErrNoHypergraph
	}
	g := data.Hypergraph
	incoming := countIncoming(g)

	for i := range g.Edges {
		e := &g.Edges[i]
		if !isGlueEdge(e) {
			continue
		}
		tails := flattenGlueChain(g, incoming, e.Tails)
		if len(tails) == len(e.Tails) {
			continue
		}
		e.Tails = tails
		e.Rule = flatGlueRule(e.Rule.LHS, len(tails))
	}
	return nil
}

// isGlueEdge reports whether e has the phrase composer's binary glue
// shape: two tails, an RHS of exactly two non-terminals, and no features.
// Its LHS category and its attributes are not checked.
func isGlueEdge(e *hypergraph.Edge) bool {
	return len(e.Tails) == 2 && len(e.Rule.RHS) == 2 &&
		e.Rule.RHS[0].IsNonTerminal() && e.Rule.RHS[1].IsNonTerminal() &&
		len(e.Features) == 0
}

// flattenGlueChain recursively inlines any tail whose node has exactly
// one incoming edge and that edge is itself a glue edge, returning the
// concatenated leaf tail list in left-to-right order.
func flattenGlueChain(g *hypergraph.Graph, incoming []int, tails []hypergraph.NodeID) []hypergraph.NodeID {
	var out []hypergraph.NodeID
	for _, t := range tails {
		if incoming[t] == 1 {
			edges := g.Nodes[t].Edges
			e := &g.Edges[edges[0]]
			if isGlueEdge(e) {
				out = append(out, flattenGlueChain(g, incoming, e.Tails)...)
				continue
			}
		}
		out = append(out, t)
	}
	return out
}

func countIncoming(g *hypergraph.Graph) []int {
	n := make([]int, len(g.Nodes))
	for i := range g.Nodes {
		n[i] = len(g.Nodes[i].Edges)
	}
	return n
}

// flatGlueRule builds the flat "[X] -> [X,1] [X,2] ... [X,n]" rule for a
// debinarized n-ary glue edge, reusing category from lhs.
func flatGlueRule(lhs symbol.Symbol, n int) *rule.Rule {
	category := stripBrackets(lhs)
	rhs := make([]symbol.Symbol, n)
	for i := 0; i < n; i++ {
		rhs[i] = symbol.Intern(fmt.Sprintf("[%s,%d]", category, i+1))
	}
	return rule.Intern(&rule.Rule{LHS: lhs, RHS: rhs})
}

func stripBrackets(s symbol.Symbol) string {
	text := s.String()
	if len(text) >= 2 && text[0] == '[' && text[len(text)-1] == ']' {
		return text[1 : len(text)-1]
	}
	return text
}
