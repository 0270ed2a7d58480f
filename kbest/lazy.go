package kbest

import (
	"fmt"

	"github.com/cnf/structhash"
	"github.com/emirpasic/gods/trees/binaryheap"

	"github.com/katalvlaran/synforest/hypergraph"
)

// item is one candidate derivation at a node: eid identifies the edge
// chosen, j the rank of the derivation taken at each tail, score the
// derivation's total multiplicative weight, and yield its bottleneck
// min-posterior (the minimum edge posterior over every edge the
// derivation uses, recursively through its tails' chosen
// sub-derivations). Grounded on the candidate type of rescore/cubegrow,
// stripped of feature state since k-best derivation ranking has no
// stateful model to apply. score drives derivation ranking (cicada's
// k-best order); yield is the separate bottleneck quantity
// prune_kbest.hpp's traversal accumulates via std::min to compare
// against posterior.
type item struct {
	eid   hypergraph.EdgeID
	j     []int
	score float64
	yield float64
}

func itemKey(eid hypergraph.EdgeID, j []int) string {
	h, err := structhash.Hash(struct {
		Edge hypergraph.EdgeID
		J    []int
	}{eid, j}, 1)
	if err != nil {
		panic(fmt.Sprintf("kbest: hashing candidate key: %v", err))
	}
	return h
}

// better orders items by descending score, so binaryheap (a min-heap)
// pops the highest-weight derivation first.
func better(a, b interface{}) int {
	x, y := a.(*item), b.(*item)
	switch {
	case x.score > y.score:
		return -1
	case x.score < y.score:
		return 1
	default:
		return 0
	}
}

// search is the per-node working set for lazy k-best enumeration: cand
// holds not-yet-admitted candidates, D the admitted derivations in
// descending score order, uniques guards duplicate (edge, j) insertion.
type search struct {
	cand    *binaryheap.Heap
	D       []*item
	uniques map[string]struct{}
	fired   bool
}

func newSearch() search {
	return search{cand: binaryheap.NewWith(better), uniques: make(map[string]struct{})}
}

// lazyBest computes, for every node, its top k derivation weights in
// descending order (states[v].D), using the standard lazy k-best
// expansion (Huang & Chiang 2005): each node is seeded with its own best
// edge per incoming hyper-edge, and admitting a candidate pushes its
// j-tuple successors so the next-best is always available on demand.
// Grounded on rescore/cubegrow's lazyJthBest/fire/pushSucc, simplified
// since derivation ranking carries no feature state to merge.
//
// posterior is the per-edge inside-outside posterior (InsideOutside's
// second return) over the same g/score; each item's yield is the
// bottleneck min of posterior[e] across every edge the derivation uses,
// mirroring prune_kbest.hpp's traversal accumulating yield = min(yield,
// posterior[edge]) bottom-up.
func lazyBest(g *hypergraph.Graph, score ScoreFunc, posterior []float64, k int) []search {
	states := make([]search, len(g.Nodes))
	for i := range states {
		states[i] = newSearch()
	}

	var ensure func(v hypergraph.NodeID, idx int)
	var fire func(v hypergraph.NodeID, eid hypergraph.EdgeID, j []int)

	fire = func(v hypergraph.NodeID, eid hypergraph.EdgeID, j []int) {
		st := &states[v]
		key := itemKey(eid, j)
		if _, ok := st.uniques[key]; ok {
			return
		}

		e := &g.Edges[eid]
		w := score(e)
		yield := posterior[e.ID]
		for i, t := range e.Tails {
			ensure(t, j[i])
			if len(states[t].D) <= j[i] {
				return
			}
			sub := states[t].D[j[i]]
			w *= sub.score
			if sub.yield < yield {
				yield = sub.yield
			}
		}

		st.uniques[key] = struct{}{}
		st.cand.Push(&item{eid: eid, j: append([]int(nil), j...), score: w, yield: yield})
	}

	ensure = func(v hypergraph.NodeID, idx int) {
		st := &states[v]
		if !st.fired {
			for _, eid := range g.Nodes[v].Edges {
				fire(v, eid, make([]int, len(g.Edges[eid].Tails)))
			}
			st.fired = true
		}

		for len(st.D) <= idx && len(st.D) < k && !st.cand.Empty() {
			top, _ := st.cand.Pop()
			best := top.(*item)
			st.D = append(st.D, best)

			for i := range best.j {
				next := append([]int(nil), best.j...)
				next[i]++
				fire(v, best.eid, next)
			}
		}
	}

	ensure(g.Goal, k-1)
	return states
}
