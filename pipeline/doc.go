// Package pipeline is the operation orchestrator: a named chain of stages
// that each consume and produce a Bundle (spec.md §9), mirroring cicada's
// operation/operation.hpp dispatch and adapted to the teacher's functional
// options idiom. Stages cover composition (compose-phrase, compose-tree),
// parsing (parse-cky), feature rescoring (apply, dispatching among
// cube-grow/incremental/stateless), k-best pruning (prune), the
// hypergraph textual format (output), and the supplemented normalization
// stages debinarize/permute/push-weights-root/push-head.
//
// Per-stage timing and node/edge counts are recorded into the Bundle's
// Statistics and, when debug logging is enabled, mirrored to pterm's
// Debug printer the way npillmayer-gorgo/terex's REPL mirrors evaluation
// trace to pterm.Info/pterm.Error.
package pipeline
