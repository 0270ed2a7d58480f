package pipeline

import "errors"

// ErrNilBundle guards against a nil *Bundle argument, following the
// teacher's ErrGraphNil convention (dfs.ErrGraphNil).
var ErrNilBundle = errors.New("pipeline: bundle is nil")

// ErrUnknownStage is returned by BuildResourceFreeStage when a stage name
// does not match any stage it knows how to build. ParseChain itself does
// not check stage names.
var ErrUnknownStage = errors.New("pipeline: unknown stage")

// ErrChainParse wraps a malformed stage-chain string (spec.md §6's
// "stage,key=value+stage,key=value" CLI surface, reused here as the
// orchestrator's own stage-configuration grammar).
var ErrChainParse = errors.New("pipeline: chain parse error")

// ErrNoHypergraph is returned by a stage that requires data.Hypergraph
// to already be populated by an earlier stage (apply, prune, output,
// debinarize, permute, push-weights-root, push-head).
var ErrNoHypergraph = errors.New("pipeline: bundle has no hypergraph")

// ErrUnknownStrategy is returned by ApplyStage.Run for an ApplyStrategy
// value outside the known set.
var ErrUnknownStrategy = errors.New("pipeline: unknown apply strategy")
