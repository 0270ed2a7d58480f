package pipeline

import (
	"context"

	"github.com/katalvlaran/synforest/hypergraph"
	"github.com/katalvlaran/synforest/semiring"
)

const (
	attrPushedPotential = "pushed-potential"
	attrPushedWeight    = "pushed-weight"
)

// WeightFunc extracts an edge's semiring weight for the push-* stages.
type WeightFunc func(*hypergraph.Edge) semiring.Weight

// PushWeightsRootStage computes each node's semiring potential (the
// Add-sum over its incoming edges of that edge's own weight Mul'd with
// its tails' potentials) and records it on every edge terminating there
// as the PushedPotential attribute, so the goal node ends up carrying
// the sentence's total derivation weight the way push_weights_root.cpp
// pushes probability mass toward the root (spec.md §4 supplemented
// features).
//
// Unlike the source, which mutates rule probabilities in place, this
// records the computed potential as a new attribute rather than
// rewriting Rule: rules are shared by pointer across edges (spec.md
// §3), so mutating one edge's rule in place would corrupt every other
// edge referencing the same *rule.Rule.
type PushWeightsRootStage struct {
	Semiring semiring.Semiring
	Weight   WeightFunc
}

func (s *PushWeightsRootStage) Name() string { return "push-weights-root" }

func (s *PushWeightsRootStage) Run(_ context.Context, data *Bundle) error {
	if data.Hypergraph == nil {
		return ErrNoHypergraph
	}
	potentials := insidePotentials(data.Hypergraph, s.Semiring, s.Weight)
	for i := range data.Hypergraph.Edges {
		e := &data.Hypergraph.Edges[i]
		e.Attributes[attrPushedPotential] = float64(potentials[e.Head])
	}
	return nil
}

// PushHeadStage is push_head.hpp's counterpart: it records, per edge,
// the edge's own weight combined with its tails' potentials (i.e. the
// weight mass an edge contributes to its head), letting a downstream
// consumer recover a locally-normalized per-edge score as
// PushedWeight(e) / Potential(e.Head).
type PushHeadStage struct {
	Semiring semiring.Semiring
	Weight   WeightFunc
}

func (s *PushHeadStage) Name() string { return "push-head" }

func (s *PushHeadStage) Run(_ context.Context, data *Bundle) error {
	if data.Hypergraph == nil {
		return ErrNoHypergraph
	}
	potentials := insidePotentials(data.Hypergraph, s.Semiring, s.Weight)
	for i := range data.Hypergraph.Edges {
		e := &data.Hypergraph.Edges[i]
		w := s.Weight(e)
		for _, t := range e.Tails {
			w = s.Semiring.Mul(w, potentials[t])
		}
		e.Attributes[attrPushedWeight] = float64(w)
	}
	return nil
}

// insidePotentials is the generic-semiring analogue of
// kbest.InsideOutside's inside pass: g must already be topologically
// sorted so every edge's tails have a strictly smaller node id than its
// head.
func insidePotentials(g *hypergraph.Graph, sr semiring.Semiring, weight WeightFunc) []semiring.Weight {
	n := len(g.Nodes)
	potentials := make([]semiring.Weight, n)
	for v := 0; v < n; v++ {
		sum := sr.Zero()
		for _, eid := range g.Nodes[v].Edges {
			e := &g.Edges[eid]
			w := weight(e)
			for _, t := range e.Tails {
				w = sr.Mul(w, potentials[t])
			}
			sum = sr.Add(sum, w)
		}
		potentials[v] = sum
	}
	return potentials
}
