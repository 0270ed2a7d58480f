// Package stateless implements the stateless-model fast path of spec.md
// §4.6: when every feature function in a Model carries zero state, scoring
// a hypergraph needs no search at all — a single topological walk applying
// each edge's feature contribution suffices, grounded on
// cicada/apply_state_less.hpp.
package stateless
