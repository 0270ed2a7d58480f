package feature

import (
	"strings"

	"github.com/katalvlaran/synforest/hypergraph"
)

// WordPenalty charges a constant per-terminal penalty, grounded on
// cicada/feature/word_penalty.hpp: one feature unit per target-side
// terminal in the edge's rule, negated so a positive weight shortens
// output.
type WordPenalty struct{}

func (WordPenalty) Name() string      { return "word-penalty" }
func (WordPenalty) StateSize() int    { return 0 }
func (WordPenalty) IsStateless() bool { return true }

func (WordPenalty) Apply(_ []State, edge *hypergraph.Edge, features hypergraph.FeatureVector, _ bool, _ State) {
	count := 0
	for _, s := range edge.Rule.RHS {
		if !s.IsNonTerminal() {
			count++
		}
	}
	features.Add("word-penalty", -float64(count))
}

func (w WordPenalty) ApplyCoarse(nodeStates []State, edge *hypergraph.Edge, features hypergraph.FeatureVector, isFinal bool, out State) {
	w.Apply(nodeStates, edge, features, isFinal, out)
}
func (WordPenalty) ApplyPredict(State, []State, *hypergraph.Edge, hypergraph.FeatureVector, bool) {}
func (w WordPenalty) ApplyScan(_ State, nodeStates []State, edge *hypergraph.Edge, _ int, features hypergraph.FeatureVector, isFinal bool) {
}
func (w WordPenalty) ApplyComplete(out State, nodeStates []State, edge *hypergraph.Edge, features hypergraph.FeatureVector, isFinal bool) {
	w.Apply(nodeStates, edge, features, isFinal, out)
}

// RuleCount charges one feature unit per rule application, grounded on
// cicada/feature/rule_arity.hpp's constant-contribution shape.
type RuleCount struct{}

func (RuleCount) Name() string      { return "rule-count" }
func (RuleCount) StateSize() int    { return 0 }
func (RuleCount) IsStateless() bool { return true }

func (RuleCount) Apply(_ []State, _ *hypergraph.Edge, features hypergraph.FeatureVector, _ bool, _ State) {
	features.Add("rule-count", 1)
}
func (r RuleCount) ApplyCoarse(nodeStates []State, edge *hypergraph.Edge, features hypergraph.FeatureVector, isFinal bool, out State) {
	r.Apply(nodeStates, edge, features, isFinal, out)
}
func (RuleCount) ApplyPredict(State, []State, *hypergraph.Edge, hypergraph.FeatureVector, bool) {}
func (RuleCount) ApplyScan(State, []State, *hypergraph.Edge, int, hypergraph.FeatureVector, bool) {}
func (r RuleCount) ApplyComplete(out State, nodeStates []State, edge *hypergraph.Edge, features hypergraph.FeatureVector, isFinal bool) {
	r.Apply(nodeStates, edge, features, isFinal, out)
}

// FrontierBigram scores adjacent-word bigrams within a tree rule's
// target frontier, grounded on cicada/feature/frontier_bigram.hpp. It
// reads the "frontier-target" attribute the tree composer attaches
// (spec §4.4) rather than re-deriving the frontier itself.
type FrontierBigram struct{}

func (FrontierBigram) Name() string      { return "frontier-bigram" }
func (FrontierBigram) StateSize() int    { return 0 }
func (FrontierBigram) IsStateless() bool { return true }

func (FrontierBigram) Apply(_ []State, edge *hypergraph.Edge, features hypergraph.FeatureVector, _ bool, _ State) {
	raw, ok := edge.Attributes["frontier-target"].(string)
	if !ok || raw == "" {
		return
	}
	words := strings.Fields(raw)
	for i := 0; i+1 < len(words); i++ {
		features.Add("fb:"+words[i]+"_"+words[i+1], 1)
	}
}
func (f FrontierBigram) ApplyCoarse(nodeStates []State, edge *hypergraph.Edge, features hypergraph.FeatureVector, isFinal bool, out State) {
	f.Apply(nodeStates, edge, features, isFinal, out)
}
func (FrontierBigram) ApplyPredict(State, []State, *hypergraph.Edge, hypergraph.FeatureVector, bool) {
}
func (FrontierBigram) ApplyScan(State, []State, *hypergraph.Edge, int, hypergraph.FeatureVector, bool) {
}
func (f FrontierBigram) ApplyComplete(out State, nodeStates []State, edge *hypergraph.Edge, features hypergraph.FeatureVector, isFinal bool) {
	f.Apply(nodeStates, edge, features, isFinal, out)
}
