package pipeline

import (
	"context"

	"github.com/katalvlaran/synforest/feature"
	"github.com/katalvlaran/synforest/hypergraph"
	"github.com/katalvlaran/synforest/rescore/cubegrow"
	"github.com/katalvlaran/synforest/rescore/incremental"
	"github.com/katalvlaran/synforest/rescore/stateless"
)

// ApplyStrategy selects which rescoring strategy ApplyStage runs,
// mirroring the source's flag-selected dispatch among
// cube-grow/incremental/exact/stateless (spec.md §4.8).
type ApplyStrategy int

const (
	// StrategyAuto picks cube-grow for a stateful model and the
	// stateless fast path for a stateless one, spec.md's "apply
	// operation selects ... based on flags and the presence of state".
	StrategyAuto ApplyStrategy = iota
	StrategyCubeGrow
	StrategyIncremental
	StrategyStateless
)

// ApplyStage runs a feature.Model over data.Hypergraph via the selected
// rescoring Strategy, replacing data.Hypergraph with the rescored output
// (spec.md §4.6/§4.8).
type ApplyStage struct {
	Model    *feature.Model
	Score    cubegrow.ScoreFunc
	Strategy ApplyStrategy
	Opts     []cubegrow.Option
}

func (s *ApplyStage) Name() string { return "apply" }

func (s *ApplyStage) Run(_ context.Context, data *Bundle) error {
	if data.Hypergraph == nil {
		return ErrNoHypergraph
	}

	strategy := s.Strategy
	if strategy == StrategyAuto {
		if s.Model.IsStateless() {
			strategy = StrategyStateless
		} else {
			strategy = StrategyCubeGrow
		}
	}

	var out *hypergraph.Graph
	var err error

	switch strategy {
	case StrategyStateless:
		out, err = stateless.Apply(s.Model, data.Hypergraph)
	case StrategyIncremental:
		out, err = incremental.Apply(s.Model, toFeatureScore(s.Score), data.Hypergraph)
	case StrategyCubeGrow:
		out, err = cubegrow.New(s.Model, s.Score, s.Opts...).Apply(data.Hypergraph)
	default:
		return ErrUnknownStrategy
	}
	if err != nil {
		return err
	}

	data.Hypergraph = out
	return nil
}

func toFeatureScore(f cubegrow.ScoreFunc) incremental.ScoreFunc {
	return incremental.ScoreFunc(f)
}
