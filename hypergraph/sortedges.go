package hypergraph

import "sort"

// SortEdges returns a copy of g's edge ids ordered deterministically by
// (Head, Rule LHS text, Tails...), independent of insertion order. Used by
// the orchestrator's output stage to produce a stable serialization
// regardless of which composer or rescorer order produced the edges,
// mirroring the role of the source's generic derivation-forest sort
// utilities (sort.hpp) without adopting its in-place node renumbering.
func SortEdges(g *Graph) []EdgeID {
	ids := make([]EdgeID, len(g.Edges))
	for i := range g.Edges {
		ids[i] = EdgeID(i)
	}
	sort.Slice(ids, func(i, j int) bool {
		a, b := &g.Edges[ids[i]], &g.Edges[ids[j]]
		if a.Head != b.Head {
			return a.Head < b.Head
		}
		al, bl := a.Rule.LHS.String(), b.Rule.LHS.String()
		if al != bl {
			return al < bl
		}
		n := len(a.Tails)
		if len(b.Tails) < n {
			n = len(b.Tails)
		}
		for k := 0; k < n; k++ {
			if a.Tails[k] != b.Tails[k] {
				return a.Tails[k] < b.Tails[k]
			}
		}
		return len(a.Tails) < len(b.Tails)
	})
	return ids
}
