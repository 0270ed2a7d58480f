package pipeline

import (
	"time"

	"github.com/katalvlaran/synforest/hypergraph"
	"github.com/katalvlaran/synforest/lattice"
	"github.com/katalvlaran/synforest/weights"
)

// Bundle is the unit of data every stage consumes and produces (spec.md
// §9): a single sentence's id, its hypergraph (the current stage's
// input/output), the source lattice stages like compose-phrase and
// parse-cky read from, the loaded feature weights, and a running
// per-stage statistics log.
type Bundle struct {
	ID         string
	Hypergraph *hypergraph.Graph
	Lattice    *lattice.Lattice
	Weights    *weights.Vector
	Statistics map[string]Statistics
}

// NewBundle returns an empty Bundle for id, ready for the first stage in
// a chain (typically a compose-* stage, which reads Lattice and populates
// Hypergraph).
func NewBundle(id string, lat *lattice.Lattice, w *weights.Vector) *Bundle {
	return &Bundle{
		ID:         id,
		Lattice:    lat,
		Weights:    w,
		Statistics: make(map[string]Statistics),
	}
}

// Statistics records one stage invocation's resource usage and the shape
// of the hypergraph it left behind (spec.md §9).
type Statistics struct {
	Count      int
	Nodes      int
	Edges      int
	UserTime   time.Duration
	CPUTime    time.Duration
	ThreadTime time.Duration
}
