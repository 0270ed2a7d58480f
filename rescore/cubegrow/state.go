package cubegrow

import (
	"github.com/emirpasic/gods/trees/binaryheap"

	"github.com/katalvlaran/synforest/hypergraph"
)

// nodeSearch is the per-input-node working set of spec.md §4.6: cand and
// buf are the priority heap and its secondary admission buffer, D is the
// list of admitted derivations, uniques guards against inserting the
// same (edge, j) into cand twice, and nodes maps a byte-equal feature
// state to the output node it was first merged into.
type nodeSearch struct {
	cand *binaryheap.Heap
	buf  *binaryheap.Heap

	D       []*candidate
	uniques map[string]struct{}
	nodes   map[string]hypergraph.NodeID

	fired bool
}

func newNodeSearch() nodeSearch {
	return nodeSearch{
		cand:    binaryheap.NewWith(better),
		buf:     binaryheap.NewWith(better),
		uniques: make(map[string]struct{}),
		nodes:   make(map[string]hypergraph.NodeID),
	}
}
