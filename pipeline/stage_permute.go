package pipeline

import (
	"context"
	"fmt"

	"github.com/katalvlaran/synforest/hypergraph"
	"github.com/katalvlaran/synforest/rule"
	"github.com/katalvlaran/synforest/symbol"
)

// PermuteStage applies one bounded tail transposition to every edge of
// data.Hypergraph with at least two non-terminal tails: the first
// adjacent pair of non-terminal RHS positions whose separation is
// within MaxSpan is swapped, generating a reordering variant of the
// forest for experimentation (original_source/cicada's
// operation/permute.cpp). An edge with no eligible pair, or MaxSpan < 1,
// is left unchanged.
type PermuteStage struct {
	MaxSpan int
}

func (s *PermuteStage) Name() string { return "permute" }

func (s *PermuteStage) Run(_ context.Context, data *Bundle) error {
	if data.Hypergraph == nil {
		return ErrNoHypergraph
	}
	if s.MaxSpan < 1 {
		return nil
	}
	for i := range data.Hypergraph.Edges {
		permuteEdge(&data.Hypergraph.Edges[i], s.MaxSpan)
	}
	return nil
}

// permuteEdge swaps the first adjacent pair of e's non-terminal RHS
// positions within maxSpan, rebuilding e.Rule (via rule.Intern, never
// mutated in place, since Rule is shared by pointer across edges,
// spec.md §3) and e.Tails to match.
func permuteEdge(e *hypergraph.Edge, maxSpan int) {
	ntPos := ntPositions(e.Rule.RHS)
	if len(ntPos) < 2 {
		return
	}

	for i := 0; i+1 < len(ntPos); i++ {
		a, b := ntPos[i], ntPos[i+1]
		if b-a > maxSpan {
			continue
		}

		newRHS := append([]symbol.Symbol(nil), e.Rule.RHS...)
		category := stripBrackets(e.Rule.RHS[a].NonTerminal())
		newRHS[a] = symbol.Intern(fmt.Sprintf("[%s,%d]", category, i+2))
		newRHS[b] = symbol.Intern(fmt.Sprintf("[%s,%d]", category, i+1))

		e.Tails[i], e.Tails[i+1] = e.Tails[i+1], e.Tails[i]
		e.Rule = rule.Intern(&rule.Rule{LHS: e.Rule.LHS, RHS: newRHS, Source: e.Rule.Source, Features: e.Rule.Features})
		return
	}
}

func ntPositions(rhs []symbol.Symbol) []int {
	var out []int
	for i, s := range rhs {
		if s.IsNonTerminal() {
			out = append(out, i)
		}
	}
	return out
}
