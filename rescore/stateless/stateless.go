package stateless

import (
	"github.com/katalvlaran/synforest/feature"
	"github.com/katalvlaran/synforest/hypergraph"
)

// Apply scores every edge of in against model, a stateless walk in
// topological order with no search machinery: each edge is visited once,
// its FeatureVector is populated via model.Apply, and the (empty) output
// state is immediately discarded. Returns feature.ErrStatelessModelRequired
// if model carries any function with non-zero state size.
func Apply(model *feature.Model, in *hypergraph.Graph) (*hypergraph.Graph, error) {
	if !model.IsStateless() {
		return nil, feature.ErrStatelessModelRequired
	}

	out, err := hypergraph.TopologicalSort(in, nil)
	if err != nil {
		return nil, err
	}

	for i := range out.Nodes {
		node := &out.Nodes[i]
		isGoal := node.ID == out.Goal
		for _, eid := range node.Edges {
			edge := &out.Edges[eid]
			tailStates := make([]feature.State, len(edge.Tails))
			state := model.Apply(tailStates, edge, edge.Features, isGoal)
			model.Dealloc(state)
		}
	}

	return out, nil
}
