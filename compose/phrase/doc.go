// Package phrase implements phrase-based composition of a word lattice
// against a phrase grammar into a hypergraph, following Huang & Chiang
// 2007's coverage-bitset search (spec §4.3, grounded on
// cicada/compose_phrase.hpp): a breadth-first walk over
// (coverage, span) states, gluing newly matched phrases onto the
// coverage reached so far, bounded by a distortion limit on how far
// ahead of the first uncovered position a new phrase may start.
package phrase
