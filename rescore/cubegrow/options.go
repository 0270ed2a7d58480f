package cubegrow

import "github.com/katalvlaran/synforest/hypergraph"

type options struct {
	cubeSizeMax int
	coarseScore func(*hypergraph.Edge) float64
}

// Option configures a Rescorer.
type Option func(*options)

// WithCubeSizeMax bounds the number of derivations enumerated per node
// (spec.md §4.6's cube_size_max). n must be positive.
func WithCubeSizeMax(n int) Option {
	if n <= 0 {
		panic("cubegrow: cube size max must be positive")
	}
	return func(o *options) { o.cubeSizeMax = n }
}

// WithCoarseRescoring enables the commented-out coarse-rescoring branch
// the source carries behind an #if 0 (spec.md §9 open question 1): before
// the full feature score is folded in, a candidate's antecedent-product
// score is divided by scoreEdge(edge), which must itself come from a
// preliminary one-best coarse pass over the input graph for the result to
// be an admissible bound. Off by default.
func WithCoarseRescoring(scoreEdge func(*hypergraph.Edge) float64) Option {
	return func(o *options) { o.coarseScore = scoreEdge }
}

func defaultOptions() *options {
	return &options{cubeSizeMax: 1}
}
