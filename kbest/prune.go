package kbest

import "github.com/katalvlaran/synforest/hypergraph"

// Prune removes every edge whose inside-outside posterior falls below
// the bottleneck threshold of the k best derivations, keeping every edge
// reachable from the goal whose posterior meets that threshold, whether
// or not it lies on one of the k best derivations (spec.md §4.7, §8
// "k-best pruning fallback"). g must already be topologically sorted.
//
// The threshold w* is computed the way cicada's prune_kbest.hpp does it
// (traversal, lines 59-67 and 105): each of the top-k derivations has its
// own bottleneck yield (the minimum per-edge posterior over every edge it
// uses, accumulated bottom-up via lazyBest), and w* is the minimum of
// that yield across the k derivations — not the k-th derivation's
// product-of-edge-weights score, which lives on an unrelated scale from
// the per-edge posteriors it would otherwise be compared against.
//
// Prune is self-healing: if g is invalid, has fewer than k derivations,
// or the pruned result would itself be invalid or edgeless, it returns g
// unchanged rather than an error, mirroring cicada's prune_kbest.hpp
// ("if (k != kbest_size) target = source").
func Prune(g *hypergraph.Graph, score ScoreFunc, k int) (*hypergraph.Graph, error) {
	if g == nil {
		return nil, hypergraph.ErrNilGraph
	}
	if k <= 0 {
		return nil, ErrInvalidK
	}
	if !g.IsValid() || len(g.Edges) == 0 {
		return g, nil
	}

	_, posterior := InsideOutside(g, score)

	states := lazyBest(g, score, posterior, k)
	goalD := states[g.Goal].D
	if len(goalD) < k {
		return g, nil
	}

	wstar := goalD[0].yield
	for _, d := range goalD[:k] {
		if d.yield < wstar {
			wstar = d.yield
		}
	}

	filter := func(e hypergraph.Edge) bool { return posterior[e.ID] < wstar }

	pruned, err := hypergraph.TopologicalSort(g, filter)
	if err != nil {
		return g, nil
	}
	if !pruned.IsValid() || len(pruned.Edges) == 0 {
		return g, nil
	}
	return pruned, nil
}
