package feature

import "errors"

// ErrStatefulModelRequired is returned by a rescoring strategy that
// needs at least one stateful feature function when given a model whose
// every function is stateless.
var ErrStatefulModelRequired = errors.New("feature: stateful model required")

// ErrStatelessModelRequired is returned by the stateless-only rescoring
// fast path when given a model carrying stateful feature functions.
var ErrStatelessModelRequired = errors.New("feature: stateless model required")
