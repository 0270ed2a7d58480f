package pipeline

import (
	"context"

	"github.com/katalvlaran/synforest/compose/phrase"
	"github.com/katalvlaran/synforest/compose/tree"
)

// ComposePhraseStage runs compose/phrase.Compose over data.Lattice,
// replacing data.Hypergraph with the result (spec.md §4.3).
type ComposePhraseStage struct {
	Transducers []phrase.Transducer
	Opts        []phrase.Option
}

func (s *ComposePhraseStage) Name() string { return "compose-phrase" }

func (s *ComposePhraseStage) Run(_ context.Context, data *Bundle) error {
	g, err := phrase.Compose(data.Lattice, s.Transducers, s.Opts...)
	if err != nil {
		return err
	}
	data.Hypergraph = g
	return nil
}

// ComposeTreeStage runs compose/tree.Compose over data.Hypergraph (the
// source-side forest, typically produced by an upstream parse-cky or
// parse-tree stage), replacing it with the rescored tree-to-tree output
// (spec.md §4.4).
type ComposeTreeStage struct {
	Grammar *tree.Grammar
	Opts    []tree.Option
}

func (s *ComposeTreeStage) Name() string { return "compose-tree" }

func (s *ComposeTreeStage) Run(_ context.Context, data *Bundle) error {
	g, err := tree.Compose(data.Hypergraph, s.Grammar, s.Opts...)
	if err != nil {
		return err
	}
	data.Hypergraph = g
	return nil
}
