// Package lattice implements the word-lattice input representation
// consumed by the phrase composer and the CKY parser: a sequence of
// positions, each with a set of outgoing arcs labeled by a terminal (or
// EPSILON) and carrying a jump distance and a feature vector.
//
// A plain sentence is the degenerate lattice where every arc has
// distance 1 and there is exactly one arc per position. Coverage, the
// fixed-width bitset tracking which lattice positions a phrase
// derivation has consumed, lives alongside the Lattice type since the
// two are used together throughout composition.
package lattice
