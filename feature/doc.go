// Package feature implements the stateful/stateless feature function
// stack rescoring walks: Function is the per-feature contract (apply,
// apply_coarse, the incremental predict/scan/complete triad, clone,
// state_size, is_stateless), and Model composes a slice of Functions
// into one aggregate with a single combined state blob per hypergraph
// node.
//
// State is a raw fixed-length byte slice. A Model's combined state is
// the concatenation of each Function's own sub-range; a Function only
// ever sees its own sub-slice, never another function's bytes. States
// are allocated from an Arena (a slab free-list keyed by the combined
// size) and must be either adopted into the rescored hypergraph's node
// map or explicitly deallocated — never both, never neither.
package feature
