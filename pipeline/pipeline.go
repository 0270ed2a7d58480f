package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/pterm/pterm"
)

// Stage is one named pipeline operation. Run mutates data in place
// (typically replacing data.Hypergraph with its stage's output) and
// returns an error only for a fatal failure; recoverable situations are
// not errors: an empty composition or parse yields an empty Hypergraph
// with no goal (IsValid is false), and pruning that would empty the graph
// keeps its input, matching the teacher's "no panics in algorithms"
// policy.
type Stage interface {
	Name() string
	Run(ctx context.Context, data *Bundle) error
}

// Pipeline runs a fixed chain of Stages over a Bundle, recording
// per-stage Statistics and, when WithDebug is set, mirroring them to
// pterm.Debug.
type Pipeline struct {
	stages []Stage
	opt    *options
}

// New returns a Pipeline that runs stages in order.
func New(stages []Stage, opts ...Option) *Pipeline {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	return &Pipeline{stages: stages, opt: o}
}

// Run executes every stage against data in order, stopping at the first
// error (wrapped with the failing stage's name) or at ctx cancellation.
//
// Wall-clock elapsed time is recorded identically into UserTime, CPUTime,
// and ThreadTime: the standard library has no portable, allocation-free
// way to read per-goroutine CPU or thread time, so all three fields
// degenerate to the same wall-clock duration here rather than adopting an
// OS-specific rusage binding for a single diagnostic field.
func (p *Pipeline) Run(ctx context.Context, data *Bundle) error {
	if data == nil {
		return ErrNilBundle
	}
	if data.Statistics == nil {
		data.Statistics = make(map[string]Statistics)
	}

	for _, s := range p.stages {
		if err := ctx.Err(); err != nil {
			return err
		}

		start := time.Now()
		runErr := s.Run(ctx, data)
		elapsed := time.Since(start)

		stats := Statistics{UserTime: elapsed, CPUTime: elapsed, ThreadTime: elapsed}
		if data.Hypergraph != nil {
			stats.Nodes = len(data.Hypergraph.Nodes)
			stats.Edges = len(data.Hypergraph.Edges)
		}
		stats.Count = data.Statistics[s.Name()].Count + 1
		data.Statistics[s.Name()] = stats

		if p.opt.debug {
			valid := data.Hypergraph != nil && data.Hypergraph.IsValid()
			pterm.Debug.Printfln("%s[%s]: nodes=%d edges=%d valid=%v elapsed=%s",
				s.Name(), data.ID, stats.Nodes, stats.Edges, valid, elapsed)
		}

		if runErr != nil {
			return fmt.Errorf("pipeline: stage %q: %w", s.Name(), runErr)
		}
	}
	return nil
}
