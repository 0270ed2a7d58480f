package hypergraph

import "errors"

// ErrCycleDetected is returned by TopologicalSort when a back-edge (a tail
// reachable from itself) is found while walking from Goal. Fatal for the
// operation that raised it (spec.md §7); other sentences in a batch
// continue.
var ErrCycleDetected = errors.New("hypergraph: cycle detected")

// ErrInvalidGraph indicates the graph has no usable Goal node.
var ErrInvalidGraph = errors.New("hypergraph: invalid graph (no goal)")

// ErrParseFormat is returned by Parse when the input does not match
// Format's line-oriented serialization (spec.md §6).
var ErrParseFormat = errors.New("hypergraph: malformed serialized graph")
