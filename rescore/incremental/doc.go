// Package incremental implements the Viterbi (exact single-best)
// rescoring strategy spec.md §4.8 names as an alternative to cube
// growing: each node keeps exactly one winning state, produced by a
// left-to-right ApplyPredict/ApplyScan/ApplyComplete walk over the
// winning edge's RHS rather than cube-growing's lazy top-K search.
// Grounded on cicada/apply_incremental.hpp and the feature.Model
// alternative-applicator trio (feature/model.go), which this is the
// first caller of.
package incremental
