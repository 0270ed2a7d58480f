// Package cky implements the chart parser of spec.md §4.5: a CKY parse
// over a word lattice against a synchronous grammar shared with
// compose/phrase's trie-Transducer shape, interleaved with a bounded
// unary closure (re-entry capped by consecutive-LHS level and, per
// spec.md §9 open question 2, a configurable no-progress round limit).
//
// Grounded on cicada/query_tree_cky.hpp; the chart-by-span / node-pool
// idiom is cross-checked against the lattice-CKY parser in
// other_examples (ling0322-pcfg's cyk.go).
package cky
