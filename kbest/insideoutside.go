package kbest

import "github.com/katalvlaran/synforest/hypergraph"

// ScoreFunc maps an edge to its scalar weight, combined multiplicatively
// with its tails' weights. Callers typically pass a function applying
// weights.Vector.Exp to the edge's Features, so derivation weight is exp
// of the log-linear score (spec.md §6).
type ScoreFunc func(*hypergraph.Edge) float64

// InsideOutside computes, for every node, its inside weight (the total
// weight of all derivations rooted at it), and for every edge its
// posterior (the total weight of all derivations through it, divided
// across no normalization constant — callers compare posteriors to each
// other and to a k-best cutoff, where an unnormalized scale is
// equivalent). g must already be topologically sorted: every edge's tails
// must have a strictly smaller node id than its head.
func InsideOutside(g *hypergraph.Graph, score ScoreFunc) (inside, posterior []float64) {
	n := len(g.Nodes)
	inside = make([]float64, n)
	for v := 0; v < n; v++ {
		var sum float64
		for _, eid := range g.Nodes[v].Edges {
			e := &g.Edges[eid]
			w := score(e)
			for _, t := range e.Tails {
				w *= inside[t]
			}
			sum += w
		}
		inside[v] = sum
	}

	outside := make([]float64, n)
	if g.IsValid() {
		outside[g.Goal] = 1.0
	}
	for v := n - 1; v >= 0; v-- {
		for _, eid := range g.Nodes[v].Edges {
			e := &g.Edges[eid]
			base := outside[v] * score(e)
			for i, t := range e.Tails {
				contribution := base
				for k, other := range e.Tails {
					if k != i {
						contribution *= inside[other]
					}
				}
				outside[t] += contribution
			}
		}
	}

	posterior = make([]float64, len(g.Edges))
	for v := 0; v < n; v++ {
		for _, eid := range g.Nodes[v].Edges {
			e := &g.Edges[eid]
			w := outside[v] * score(e)
			for _, t := range e.Tails {
				w *= inside[t]
			}
			posterior[eid] = w
		}
	}
	return inside, posterior
}
