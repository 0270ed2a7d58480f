// Package kbest implements the k-best pruner of spec.md §4.7: an
// inside-outside pass computes each edge's posterior probability, the
// top-K derivations are enumerated under the bottleneck (min-posterior)
// semiring, and every edge whose posterior falls below the smallest
// bottleneck score among those K derivations is removed. Grounded on
// cicada/prune_kbest.hpp.
//
// If fewer than K derivations exist, or pruning would leave an invalid
// graph, Prune is self-healing: it returns the input unchanged rather
// than propagating an error (spec.md §7).
package kbest
