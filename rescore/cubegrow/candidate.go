package cubegrow

import (
	"github.com/cnf/structhash"

	"github.com/katalvlaran/synforest/feature"
	"github.com/katalvlaran/synforest/hypergraph"
)

// candidate is one partially-instantiated edge: the input edge paired
// with a j-tuple selecting which derivation of each tail to use. Per
// REDESIGN FLAGS item 2, candidates are owned by a plain slice-backed
// pool and referenced by pointer within a single node's search — there
// is no cross-node sharing, so a simple *candidate is enough; no
// separate handle indirection is needed in Go the way the source needs
// one to survive chunk_vector reallocation.
type candidate struct {
	inEdge  hypergraph.EdgeID
	outEdge hypergraph.Edge
	j       []int

	score float64
	state feature.State
}

// cardinality is the cube-growing tie-break key: the sum of a j-tuple's
// indices, which correlates with how deep (and therefore how
// expensive/loose) the candidate's upper bound is.
func cardinality(j []int) int {
	n := 0
	for _, x := range j {
		n += x
	}
	return n
}

// candidateKey hashes (edge id, j-tuple) into the uniques dedup key,
// mirroring gorgo/lr/earley.hash's anonymous-struct + structhash.Hash
// pattern for item-set keys.
func candidateKey(edge hypergraph.EdgeID, j []int) string {
	h, err := structhash.Hash(struct {
		Edge hypergraph.EdgeID
		J    []int
	}{Edge: edge, J: j}, 1)
	if err != nil {
		panic(err) // structhash only fails on unsupported field types
	}
	return h
}

// better implements the heap comparator for gods/trees/binaryheap: it
// returns a negative value when x should be popped before y, i.e. when x
// has strictly greater score, or equal score and a smaller (shallower)
// cardinality — the same ordering as the source's compare_heap_type.
func better(a, b interface{}) int {
	x, y := a.(*candidate), b.(*candidate)
	if x.score != y.score {
		if x.score > y.score {
			return -1
		}
		return 1
	}
	cx, cy := cardinality(x.j), cardinality(y.j)
	switch {
	case cx < cy:
		return -1
	case cx > cy:
		return 1
	default:
		return 0
	}
}
