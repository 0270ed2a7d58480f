package pipeline

import (
	"context"

	"github.com/katalvlaran/synforest/parse/cky"
)

// ParseCKYStage runs parse/cky.Parse over data.Lattice, replacing
// data.Hypergraph with the resulting parse forest (spec.md §4.5).
type ParseCKYStage struct {
	Grammars []cky.Transducer
	Opts     []cky.Option
}

func (s *ParseCKYStage) Name() string { return "parse-cky" }

func (s *ParseCKYStage) Run(_ context.Context, data *Bundle) error {
	g, err := cky.Parse(data.Lattice, s.Grammars, s.Opts...)
	if err != nil {
		return err
	}
	data.Hypergraph = g
	return nil
}

// ParseTreeStage is parse-cky's tree-rule-biased counterpart named
// separately on the CLI surface (spec.md §6) but running the identical
// chart engine: cky.Transducer already interleaves tree and phrase
// rules in a single chart (spec.md §4.5), so this stage exists only to
// let a pipeline chain reference a differently-configured grammar set
// (typically one built from tree-rule fragments instead of phrase
// pairs) under its own stage name.
type ParseTreeStage struct {
	Grammars []cky.Transducer
	Opts     []cky.Option
}

func (s *ParseTreeStage) Name() string { return "parse-tree" }

func (s *ParseTreeStage) Run(_ context.Context, data *Bundle) error {
	g, err := cky.Parse(data.Lattice, s.Grammars, s.Opts...)
	if err != nil {
		return err
	}
	data.Hypergraph = g
	return nil
}
