package pipeline

import (
	"context"
	"fmt"

	"github.com/katalvlaran/synforest/hypergraph"
)

// OutputStage renders data.Hypergraph into the "id ||| <graph> |||"
// k-best textual line spec.md §6 defines and appends it to Lines,
// leaving data.Hypergraph unchanged. Collecting into Lines (rather than
// writing straight to an io.Writer) lets a pipeline run be replayed or
// inspected without re-running composition.
type OutputStage struct {
	Lines *[]string
}

func (s *OutputStage) Name() string { return "output" }

func (s *OutputStage) Run(_ context.Context, data *Bundle) error {
	if data.Hypergraph == nil {
		return ErrNoHypergraph
	}
	line := fmt.Sprintf("%s ||| %s |||", data.ID, hypergraph.Format(data.Hypergraph))
	if s.Lines != nil {
		*s.Lines = append(*s.Lines, line)
	}
	return nil
}
