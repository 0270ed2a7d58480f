package cubegrow

import (
	"math"

	"github.com/katalvlaran/synforest/feature"
	"github.com/katalvlaran/synforest/hypergraph"
	"github.com/katalvlaran/synforest/rescore/stateless"
)

// ScoreFunc maps an edge's accumulated FeatureVector to a scalar score
// combined multiplicatively with antecedent scores, e.g. exp of a
// log-linear weight dot product (weights.Vector.Exp).
type ScoreFunc func(hypergraph.FeatureVector) float64

// Rescorer applies model to a hypergraph via cube growing, enumerating
// at most CubeSizeMax derivations per node under score.
type Rescorer struct {
	model *feature.Model
	score ScoreFunc
	opts  *options
}

// New returns a Rescorer over model, scoring edges with score.
func New(model *feature.Model, score ScoreFunc, opts ...Option) *Rescorer {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	return &Rescorer{model: model, score: score, opts: o}
}

// Apply rescoves in into a fresh, topologically-sorted hypergraph. If
// model is entirely stateless, this delegates to rescore/stateless's
// fast path instead of running cube-growing search (spec.md §4.6,
// "Failure modes").
func (rc *Rescorer) Apply(in *hypergraph.Graph) (*hypergraph.Graph, error) {
	if rc.model.IsStateless() {
		return stateless.Apply(rc.model, in)
	}
	if !in.IsValid() {
		return hypergraph.New(), nil
	}

	r := &run{
		model:       rc.model,
		score:       rc.score,
		coarse:      rc.opts.coarseScore,
		cubeSizeMax: rc.opts.cubeSizeMax,
		in:          in,
		out:         hypergraph.New(),
		goalID:      in.Goal,
		states:      make([]nodeSearch, len(in.Nodes)),
	}
	for i := range r.states {
		r.states[i] = newNodeSearch()
	}

	for j := 0; j < r.cubeSizeMax; j++ {
		before := len(r.out.Edges)
		r.lazyJthBest(in.Goal, j)
		if len(r.out.Edges) == before {
			break
		}
	}

	for v := range r.states {
		r.enumItem(hypergraph.NodeID(v), math.Inf(-1))
	}

	return hypergraph.TopologicalSort(r.out, nil)
}
