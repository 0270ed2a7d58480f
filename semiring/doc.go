// Package semiring defines the additive/multiplicative score algebra used
// by the weight-pushing pipeline stages. The rescorers and the k-best
// pruner compute their scores directly on float64 and do not use it. Per spec, only two families are needed: a log-probability
// semiring (derivation scoring under a linear feature model) and a
// tropical/bottleneck family (best-derivation and k-best search, where
// "addition" picks among alternatives rather than summing them).
//
// Every implementation satisfies Semiring: Zero, One, Add, Mul, and a total
// order (Less) for comparing weights. Weight is a plain float64; semirings differ only in which
// operation backs "+" and "*", exactly as in a textbook semiring — there is
// no separate numeric representation to convert between.
package semiring
