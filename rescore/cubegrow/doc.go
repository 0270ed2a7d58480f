// Package cubegrow implements forest rescoring by cube growing (spec.md
// §4.6), grounded on cicada/apply_cube_grow.hpp: Huang & Chiang's
// priority-driven lazy best-first expansion, bounded to at most
// CubeSizeMax derivations per node, deduplicating (edge, j-tuple)
// candidates and merging output nodes whose feature-model state is
// byte-equal under a tropical-max score.
//
// Stateless models take the rescore/stateless fast path instead — no
// search is needed when no feature function carries state.
package cubegrow
