package incremental

import (
	"github.com/katalvlaran/synforest/feature"
	"github.com/katalvlaran/synforest/hypergraph"
)

// ScoreFunc maps an edge's accumulated FeatureVector to a scalar score,
// combined multiplicatively with antecedent scores, exactly as in
// rescore/cubegrow.ScoreFunc.
type ScoreFunc func(hypergraph.FeatureVector) float64

// winner is the single best derivation retained at an input node.
type winner struct {
	state     feature.State
	score     float64
	outNodeID hypergraph.NodeID
}

// Apply rescoves in against model by keeping, at every node, only the
// single highest-scoring edge's state -- no search, no k-best list, just
// one incremental walk per edge. in must already be topologically
// sorted so every edge's tails have a smaller node id than its head.
func Apply(model *feature.Model, score ScoreFunc, in *hypergraph.Graph) (*hypergraph.Graph, error) {
	if !in.IsValid() {
		return hypergraph.New(), nil
	}

	out := hypergraph.New()
	winners := make([]*winner, len(in.Nodes))

	for i := range in.Nodes {
		v := hypergraph.NodeID(i)
		isGoal := v == in.Goal

		var best *winner
		var bestEdge hypergraph.Edge

		for _, eid := range in.Nodes[v].Edges {
			inEdge := &in.Edges[eid]

			outEdge := *inEdge
			outEdge.Tails = append([]hypergraph.NodeID(nil), inEdge.Tails...)
			outEdge.Features = make(hypergraph.FeatureVector, len(inEdge.Features))
			for k, val := range inEdge.Features {
				outEdge.Features[k] = val
			}

			tailStates := make([]feature.State, len(inEdge.Tails))
			sc := 1.0
			for k, t := range inEdge.Tails {
				w := winners[t]
				outEdge.Tails[k] = w.outNodeID
				tailStates[k] = w.state
				sc *= w.score
			}

			st := model.Arena().Alloc()
			model.ApplyPredict(st, tailStates, &outEdge, outEdge.Features, isGoal)
			for dot := range inEdge.Rule.RHS {
				model.ApplyScan(st, tailStates, &outEdge, dot, outEdge.Features, isGoal)
			}
			model.ApplyComplete(st, tailStates, &outEdge, outEdge.Features, isGoal)

			sc *= score(outEdge.Features)

			if best == nil || sc > best.score {
				if best != nil {
					model.Dealloc(best.state)
				}
				best = &winner{state: st, score: sc}
				bestEdge = outEdge
			} else {
				model.Dealloc(st)
			}
		}

		if best == nil {
			continue
		}
		best.outNodeID = out.AddNode()
		eid := out.AddEdge(bestEdge)
		out.ConnectEdge(eid, best.outNodeID)
		winners[v] = best
	}

	if winners[in.Goal] != nil {
		out.Goal = winners[in.Goal].outNodeID
	}

	return hypergraph.TopologicalSort(out, nil)
}
