// Package weights loads the line-oriented feature-weights file described
// in spec.md §6 ("feature value" pairs, one per line) and applies it to a
// hypergraph's per-edge FeatureVector to produce a scalar edge score — the
// ScoreFunc every rescorer, pruner, and pipeline stage in this module
// takes as a parameter.
package weights
