package feature

import (
	"encoding/binary"

	"github.com/katalvlaran/synforest/hypergraph"
	"github.com/katalvlaran/synforest/symbol"
)

// Scorer is the pluggable n-gram probability backend NgramLM consults.
// Loading an actual language model from disk is out of scope for this
// module (spec collaborators); Scorer is the seam a caller wires a real
// backend through. context is oldest-word-first and never longer than
// order-1.
type Scorer interface {
	Score(context []symbol.Symbol, word symbol.Symbol) float64
	Final(context []symbol.Symbol) float64
}

// MapScorer is a Scorer backed by an explicit probability table, keyed
// by the context+word joined with single spaces. It backs off to shorter contexts
// one word at a time when a key is missing, charging Backoff per
// shortened level, and returns OOV when even the unigram is absent —
// shaped after kho-fslm's Model.NextI back-off loop, minus the
// finite-state bucket representation (this module does not load an
// on-disk model).
type MapScorer struct {
	Probs      map[string]float64
	Backoff    float64
	OOVPenalty float64
}

// NewMapScorer returns a MapScorer over probs with the conventional
// defaults: no backoff penalty, OOV scored at -100.
func NewMapScorer(probs map[string]float64) *MapScorer {
	return &MapScorer{Probs: probs, OOVPenalty: -100}
}

func (s *MapScorer) key(context []symbol.Symbol, word symbol.Symbol) string {
	key := ""
	for _, c := range context {
		key += c.String() + " "
	}
	return key + word.String()
}

// Score implements Scorer.
func (s *MapScorer) Score(context []symbol.Symbol, word symbol.Symbol) float64 {
	ctx := context
	for {
		if v, ok := s.Probs[s.key(ctx, word)]; ok {
			return v - float64(len(context)-len(ctx))*s.Backoff
		}
		if len(ctx) == 0 {
			return s.OOVPenalty
		}
		ctx = ctx[1:]
	}
}

// Final implements Scorer, scoring the end-of-sentence symbol.
func (s *MapScorer) Final(context []symbol.Symbol) float64 {
	return s.Score(context, symbol.EOS)
}

// NgramLM is a stateful feature function scoring an n-gram language
// model over the target yield, grounded on cicada/feature/ngram.hpp.
// Its state is the trailing Order-1 words of the node's yield,
// length-prefixed and packed as little-endian uint32 symbol ids.
//
// Scoring across a non-terminal substitution only consults the tail's
// stored trailing context, not its interior: n-grams spanning into a
// tail's own derivation were already charged when that tail's edges
// were scored, and this function does not re-derive or re-score them.
type NgramLM struct {
	Order  int
	Scorer Scorer
}

// NewNgramLM returns an n-gram feature of the given order (e.g. 3 for
// a trigram model) scored by scorer.
func NewNgramLM(order int, scorer Scorer) *NgramLM {
	return &NgramLM{Order: order, Scorer: scorer}
}

func (n *NgramLM) Name() string      { return "ngram" }
func (n *NgramLM) StateSize() int    { return 1 + 4*(n.Order-1) }
func (n *NgramLM) IsStateless() bool { return false }

func (n *NgramLM) contextWidth() int { return n.Order - 1 }

func (n *NgramLM) decodeContext(s State) []symbol.Symbol {
	if s == nil {
		return nil
	}
	count := int(s[0])
	out := make([]symbol.Symbol, count)
	for i := 0; i < count; i++ {
		out[i] = symbol.Symbol(binary.LittleEndian.Uint32(s[1+4*i:]))
	}
	return out
}

func (n *NgramLM) encodeContext(ctx []symbol.Symbol, out State) {
	k := n.contextWidth()
	if len(ctx) > k {
		ctx = ctx[len(ctx)-k:]
	}
	out[0] = byte(len(ctx))
	for i, s := range ctx {
		binary.LittleEndian.PutUint32(out[1+4*i:], uint32(s))
	}
}

func (n *NgramLM) push(ctx []symbol.Symbol, word symbol.Symbol) []symbol.Symbol {
	ctx = append(ctx, word)
	if k := n.contextWidth(); len(ctx) > k {
		ctx = ctx[len(ctx)-k:]
	}
	return ctx
}

// step walks edge's RHS left to right, scoring each terminal against
// the rolling context and folding in each non-terminal tail's trailing
// context word by word, returning the context after the full walk.
func (n *NgramLM) step(ctx []symbol.Symbol, nodeStates []State, edge *hypergraph.Edge, features hypergraph.FeatureVector) []symbol.Symbol {
	tailIdx := 0
	for _, sym := range edge.Rule.RHS {
		if sym.IsNonTerminal() {
			tailCtx := n.decodeContext(nodeStates[tailIdx])
			tailIdx++
			for _, w := range tailCtx {
				features.Add("ngram", n.Scorer.Score(ctx, w))
				ctx = n.push(ctx, w)
			}
			continue
		}
		features.Add("ngram", n.Scorer.Score(ctx, sym))
		ctx = n.push(ctx, sym)
	}
	return ctx
}

// Apply implements Function.
func (n *NgramLM) Apply(nodeStates []State, edge *hypergraph.Edge, features hypergraph.FeatureVector, isFinal bool, out State) {
	ctx := n.step(nil, nodeStates, edge, features)
	if isFinal {
		features.Add("ngram", n.Scorer.Final(ctx))
	}
	n.encodeContext(ctx, out)
}

// ApplyCoarse implements Function identically to Apply: a coarser
// n-gram order would require a distinct coarse Scorer, which is the
// caller's responsibility to wire through cubegrow.WithCoarseRescoring.
func (n *NgramLM) ApplyCoarse(nodeStates []State, edge *hypergraph.Edge, features hypergraph.FeatureVector, isFinal bool, out State) {
	n.Apply(nodeStates, edge, features, isFinal, out)
}

// ApplyPredict implements Function, seeding out with the empty context.
func (n *NgramLM) ApplyPredict(out State, _ []State, _ *hypergraph.Edge, _ hypergraph.FeatureVector, _ bool) {
	n.encodeContext(nil, out)
}

// ApplyScan implements Function, folding in the terminal or tail at RHS
// position dot into the context carried in out.
func (n *NgramLM) ApplyScan(out State, nodeStates []State, edge *hypergraph.Edge, dot int, features hypergraph.FeatureVector, _ bool) {
	ctx := n.decodeContext(out)
	sym := edge.Rule.RHS[dot]
	if sym.IsNonTerminal() {
		tailIdx := 0
		for i := 0; i < dot; i++ {
			if edge.Rule.RHS[i].IsNonTerminal() {
				tailIdx++
			}
		}
		tailCtx := n.decodeContext(nodeStates[tailIdx])
		for _, w := range tailCtx {
			features.Add("ngram", n.Scorer.Score(ctx, w))
			ctx = n.push(ctx, w)
		}
	} else {
		features.Add("ngram", n.Scorer.Score(ctx, sym))
		ctx = n.push(ctx, sym)
	}
	n.encodeContext(ctx, out)
}

// ApplyComplete implements Function, charging the end-of-sentence score
// when isFinal.
func (n *NgramLM) ApplyComplete(out State, _ []State, _ *hypergraph.Edge, features hypergraph.FeatureVector, isFinal bool) {
	if !isFinal {
		return
	}
	features.Add("ngram", n.Scorer.Final(n.decodeContext(out)))
}
