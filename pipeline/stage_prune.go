package pipeline

import (
	"context"

	"github.com/katalvlaran/synforest/kbest"
)

// PruneStage runs kbest.Prune over data.Hypergraph with the given K and
// scoring function, replacing data.Hypergraph with the pruned result
// (spec.md §4.7). Self-healing: on a degenerate input, Prune returns the
// input unchanged rather than an error (spec.md §7).
type PruneStage struct {
	Score kbest.ScoreFunc
	K     int
}

func (s *PruneStage) Name() string { return "prune" }

func (s *PruneStage) Run(_ context.Context, data *Bundle) error {
	if data.Hypergraph == nil {
		return ErrNoHypergraph
	}
	out, err := kbest.Prune(data.Hypergraph, s.Score, s.K)
	if err != nil {
		return err
	}
	data.Hypergraph = out
	return nil
}
