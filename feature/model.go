package feature

import "github.com/katalvlaran/synforest/hypergraph"

// Function is a single feature function's contract: given the states of
// an edge's tail nodes and the edge itself, score the edge (adding to
// features) and write this function's contribution to the combined
// state into out. ApplyCoarse is the same, but invoked during a
// coarse-to-fine pre-pass (see cubegrow.WithCoarseRescoring); most
// functions implement it identically to Apply. ApplyPredict/Scan/Complete
// split the same computation across the incremental left-to-right walk
// used by the non-cube-growing strategies.
//
// out is always exactly StateSize() bytes: Model slices the combined
// state buffer before calling in, so a Function never sees another
// function's bytes.
type Function interface {
	Name() string
	StateSize() int
	IsStateless() bool

	Apply(nodeStates []State, edge *hypergraph.Edge, features hypergraph.FeatureVector, isFinal bool, out State)
	ApplyCoarse(nodeStates []State, edge *hypergraph.Edge, features hypergraph.FeatureVector, isFinal bool, out State)
	ApplyPredict(out State, nodeStates []State, edge *hypergraph.Edge, features hypergraph.FeatureVector, isFinal bool)
	ApplyScan(out State, nodeStates []State, edge *hypergraph.Edge, dot int, features hypergraph.FeatureVector, isFinal bool)
	ApplyComplete(out State, nodeStates []State, edge *hypergraph.Edge, features hypergraph.FeatureVector, isFinal bool)
}

// Model composes a fixed stack of Functions into one aggregate scoring
// unit. Its combined state is the concatenation of each Function's own
// StateSize()-length sub-range, in stack order; a node's combined state
// is always allocated and owned through Model's Arena.
type Model struct {
	functions []Function
	offsets   []int
	size      int
	arena     *Arena
}

// NewModel builds the aggregate over fns, in the given order.
func NewModel(fns ...Function) *Model {
	m := &Model{functions: fns}
	for _, fn := range fns {
		m.offsets = append(m.offsets, m.size)
		m.size += fn.StateSize()
	}
	m.arena = NewArena(m.size)
	return m
}

// StateSize returns the combined state size across every function.
func (m *Model) StateSize() int { return m.size }

// IsStateless reports whether every function in the stack is stateless
// (StateSize 0). Rescoring strategies that require a non-trivial state
// space check this before committing to cube-growing search.
func (m *Model) IsStateless() bool {
	for _, fn := range m.functions {
		if !fn.IsStateless() {
			return false
		}
	}
	return true
}

// Arena exposes the model's state allocator.
func (m *Model) Arena() *Arena { return m.arena }

// Dealloc returns s to the model's arena.
func (m *Model) Dealloc(s State) { m.arena.Dealloc(s) }

// Clone returns an independently owned copy of s.
func (m *Model) Clone(s State) State { return m.arena.Clone(s) }

func (m *Model) sub(i int, s State) State {
	if s == nil {
		return nil
	}
	size := m.functions[i].StateSize()
	return s[m.offsets[i] : m.offsets[i]+size]
}

func (m *Model) subAll(i int, nodeStates []State) []State {
	out := make([]State, len(nodeStates))
	for j, ns := range nodeStates {
		out[j] = m.sub(i, ns)
	}
	return out
}

// Apply scores edge against its tails' combined nodeStates and returns
// the newly allocated combined output state. The caller owns the
// returned state: adopt it into the rescored node map or Dealloc it.
func (m *Model) Apply(nodeStates []State, edge *hypergraph.Edge, features hypergraph.FeatureVector, isFinal bool) State {
	out := m.arena.Alloc()
	for i, fn := range m.functions {
		fn.Apply(m.subAll(i, nodeStates), edge, features, isFinal, m.sub(i, out))
	}
	return out
}

// ApplyCoarse is Apply's coarse-pass counterpart, used to populate an
// admissible upper-bound score ahead of a full cube-growing run (see
// cubegrow.WithCoarseRescoring).
func (m *Model) ApplyCoarse(nodeStates []State, edge *hypergraph.Edge, features hypergraph.FeatureVector, isFinal bool) State {
	out := m.arena.Alloc()
	for i, fn := range m.functions {
		fn.ApplyCoarse(m.subAll(i, nodeStates), edge, features, isFinal, m.sub(i, out))
	}
	return out
}

// ApplyPredict begins the incremental (non-cube-growing) scoring of
// edge: it must be called once, before any ApplyScan, with out freshly
// allocated from m.Arena().
func (m *Model) ApplyPredict(out State, nodeStates []State, edge *hypergraph.Edge, features hypergraph.FeatureVector, isFinal bool) {
	for i, fn := range m.functions {
		fn.ApplyPredict(m.sub(i, out), m.subAll(i, nodeStates), edge, features, isFinal)
	}
}

// ApplyScan continues the incremental walk at RHS position dot.
func (m *Model) ApplyScan(out State, nodeStates []State, edge *hypergraph.Edge, dot int, features hypergraph.FeatureVector, isFinal bool) {
	for i, fn := range m.functions {
		fn.ApplyScan(m.sub(i, out), m.subAll(i, nodeStates), edge, dot, features, isFinal)
	}
}

// ApplyComplete finishes the incremental walk, finalizing out.
func (m *Model) ApplyComplete(out State, nodeStates []State, edge *hypergraph.Edge, features hypergraph.FeatureVector, isFinal bool) {
	for i, fn := range m.functions {
		fn.ApplyComplete(m.sub(i, out), m.subAll(i, nodeStates), edge, features, isFinal)
	}
}
