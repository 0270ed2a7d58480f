package phrase

import "github.com/katalvlaran/synforest/symbol"

type options struct {
	maxDistortion int
	xSymbol       symbol.Symbol
	goalSymbol    symbol.Symbol
}

// Option configures Compose.
type Option func(*options)

// WithMaxDistortion bounds how far ahead of the first uncovered position
// a new phrase may start (0 forces monotone composition).
func WithMaxDistortion(d int) Option {
	return func(o *options) { o.maxDistortion = d }
}

// WithNonTerminal overrides the glue non-terminal (default "[X]").
func WithNonTerminal(s symbol.Symbol) Option {
	return func(o *options) { o.xSymbol = s }
}

// WithGoalSymbol overrides the designated goal non-terminal (default
// symbol.Goal, "[GOAL]").
func WithGoalSymbol(s symbol.Symbol) Option {
	return func(o *options) { o.goalSymbol = s }
}

func defaultOptions() *options {
	return &options{
		maxDistortion: 0,
		xSymbol:       symbol.Intern("[X]"),
		goalSymbol:    symbol.Goal,
	}
}
