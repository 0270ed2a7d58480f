package tree

import (
	"github.com/katalvlaran/synforest/compose/phrase"
	"github.com/katalvlaran/synforest/symbol"
)

type options struct {
	goalSymbol   symbol.Symbol
	yieldSource  bool
	frontierAttr bool
	fallback     phrase.Transducer
}

// Option configures Compose.
type Option func(*options)

// WithGoalSymbol overrides the designated goal non-terminal (default
// symbol.Goal, "[GOAL]").
func WithGoalSymbol(s symbol.Symbol) Option {
	return func(o *options) { o.goalSymbol = s }
}

// WithYieldSource builds the output from each matched rule's source side
// instead of its target side (useful for round-tripping/debugging a tree
// grammar against its own input).
func WithYieldSource(yield bool) Option {
	return func(o *options) { o.yieldSource = yield }
}

// WithFrontierAttribute records each matched rule's flattened source and
// target frontier as the "frontier-source"/"frontier-target" edge
// attributes.
func WithFrontierAttribute(enabled bool) Option {
	return func(o *options) { o.frontierAttr = enabled }
}

// WithPhraseFallback supplies a phrase-grammar transducer bridging input
// nodes the tree grammar left unmatched ("glue-tree" edges, spec.md §4.4
// and cicada/compose_tree.hpp's match_phrase).
func WithPhraseFallback(t phrase.Transducer) Option {
	return func(o *options) { o.fallback = t }
}

func defaultOptions() *options {
	return &options{goalSymbol: symbol.Goal}
}
