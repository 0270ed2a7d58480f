package pipeline

type options struct {
	debug bool
}

// Option configures a Pipeline.
type Option func(*options)

// WithDebug enables per-stage pterm.Debug logging of timing and
// hypergraph shape, matching pterm.EnableDebugMessages()'s gating in
// npillmayer-gorgo/terex's REPL.
func WithDebug(enabled bool) Option {
	return func(o *options) { o.debug = enabled }
}

func defaultOptions() *options {
	return &options{}
}
