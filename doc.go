// Package synforest is a statistical machine translation decoder toolkit:
// it composes translation forests from input sentences or lattices using
// synchronous CFG and tree-to-tree grammars, applies stateful feature
// functions (notably n-gram language models) with cube-based search, and
// enumerates k-best derivations.
//
// The packages are organized bottom-up:
//
//	symbol/         — interned terminal/non-terminal tokens
//	rule/           — flat and tree-fragment rules, textual parsing
//	lattice/        — word lattices and the coverage bitset
//	weights/        — feature-weights file loading and scoring
//	semiring/       — LogProb, Tropical and Bottleneck semirings
//	hypergraph/     — the core DAG-of-hyperedges data model and topological sort
//	feature/        — stateful/stateless feature functions and their state arena
//	compose/phrase/ — lattice-to-hypergraph composition against a phrase grammar
//	compose/tree/   — forest-to-hypergraph composition against a tree-to-tree grammar
//	parse/cky/      — chart parsing over a lattice with a synchronous grammar
//	rescore/        — cube-growing, incremental and stateless rescoring strategies
//	kbest/          — inside-outside and k-best pruning
//	pipeline/       — the named-stage orchestrator tying everything together
//
// A single sentence's processing is single-threaded: one worker owns a
// feature.Model instance and its hypergraph buffers end to end. Distinct
// sentences may be rescored concurrently by separate workers without
// sharing mutable state, aside from the process-wide symbol/rule intern
// tables.
package synforest
