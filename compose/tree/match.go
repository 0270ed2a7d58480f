package tree

import (
	"github.com/katalvlaran/synforest/hypergraph"
	"github.com/katalvlaran/synforest/rule"
)

// matchFragment enumerates every way frag matches the derivation rooted
// at node, returning one []NodeID per match: the input nodes bound to
// frag's frontier variables, in the same left-to-right order as
// frag.Frontier(). A frontier fragment always matches trivially, binding
// itself to node.
//
// Simplified from cicada/compose_tree.hpp's transducer-automaton walk
// (see package doc): a non-frontier fragment matches an edge when the
// edge's rule shares frag's label and non-terminal arity; terminal
// symbols in the fragment's RHS are not cross-checked against the edge's
// surface form.
func matchFragment(g *hypergraph.Graph, frag *rule.TreeRule, node hypergraph.NodeID) [][]hypergraph.NodeID {
	if frag.IsFrontier() {
		return [][]hypergraph.NodeID{{node}}
	}

	var out [][]hypergraph.NodeID
	for _, eid := range g.Nodes[node].Edges {
		e := &g.Edges[eid]
		if e.Rule.LHS != frag.Label || len(e.Tails) != len(frag.Antecedents) {
			continue
		}

		combos := [][]hypergraph.NodeID{{}}
		matched := true
		for i, ant := range frag.Antecedents {
			subs := matchFragment(g, ant, e.Tails[i])
			if len(subs) == 0 {
				matched = false
				break
			}
			var next [][]hypergraph.NodeID
			for _, c := range combos {
				for _, m := range subs {
					merged := make([]hypergraph.NodeID, 0, len(c)+len(m))
					merged = append(merged, c...)
					merged = append(merged, m...)
					next = append(next, merged)
				}
			}
			combos = next
		}
		if matched {
			out = append(out, combos...)
		}
	}
	return out
}
