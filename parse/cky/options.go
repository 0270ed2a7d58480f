package cky

import "github.com/katalvlaran/synforest/symbol"

type options struct {
	goalSymbol          symbol.Symbol
	startSymbol         symbol.Symbol
	uniqueGoal          bool
	maxNoProgressRounds int
}

// Option configures Parse.
type Option func(*options)

// WithGoalSymbol overrides the designated wrapping goal non-terminal
// (default symbol.Goal, "[GOAL]") the parse attaches its final edge
// under.
func WithGoalSymbol(s symbol.Symbol) Option {
	return func(o *options) { o.goalSymbol = s }
}

// WithStartSymbol sets the grammar's start category (e.g. "[S]") that
// must span the whole lattice for a parse to succeed.
func WithStartSymbol(s symbol.Symbol) Option {
	return func(o *options) { o.startSymbol = s }
}

// WithUniqueGoal merges every unary-closure level's completion of the
// start category at a given span into one canonical node instead of one
// node per level, per spec.md §4.5's "Unique-goal policy".
func WithUniqueGoal(enabled bool) Option {
	return func(o *options) { o.uniqueGoal = enabled }
}

// WithMaxNoProgressRounds bounds how many consecutive unary-closure
// rounds may complete with no new passive before closure aborts for a
// span (spec.md §9 open question 2; the source's unexplained constant of
// 4 is kept as the default).
func WithMaxNoProgressRounds(n int) Option {
	if n <= 0 {
		panic("cky: max no-progress rounds must be positive")
	}
	return func(o *options) { o.maxNoProgressRounds = n }
}

func defaultOptions() *options {
	return &options{
		goalSymbol:          symbol.Goal,
		startSymbol:         symbol.Intern("[S]"),
		maxNoProgressRounds: 4,
	}
}
