package phrase

import "github.com/katalvlaran/synforest/symbol"

// Transducer is a phrase grammar's lookup interface: a trie over source
// symbol sequences, each node optionally terminating one or more rules.
// Grounded on cicada::Transducer's node/rules/next contract, trimmed to
// the methods the phrase composer actually drives.
type Transducer interface {
	Root() int
	Next(node int, word symbol.Symbol) (int, bool)
	Rules(node int) []*Rule
}

// Rule is a single phrase-table entry: a source symbol sequence mapped
// to a target rule with its own feature contribution. Source is kept
// alongside Target only to let callers build Transducers from data; the
// composer only ever reads Target.
type Rule struct {
	Source []symbol.Symbol
	Target *RuleTarget
}

// RuleTarget carries the target-side RHS and scalar feature
// contributions a matched phrase adds to the edge built from it.
type RuleTarget struct {
	RHS      []symbol.Symbol
	Features map[string]float64
}

// Table is an in-memory Transducer built by repeated AddRule calls: a
// straightforward trie, adequate for the grammars this module's tests
// and callers construct directly (on-disk phrase-table loading is out
// of scope, spec §1).
type Table struct {
	next  []map[symbol.Symbol]int
	rules [][]*Rule
}

// NewTable returns an empty phrase table with just its root node.
func NewTable() *Table {
	return &Table{
		next:  []map[symbol.Symbol]int{{}},
		rules: [][]*Rule{nil},
	}
}

func (t *Table) Root() int { return 0 }

func (t *Table) Next(node int, word symbol.Symbol) (int, bool) {
	n, ok := t.next[node][word]
	return n, ok
}

func (t *Table) Rules(node int) []*Rule { return t.rules[node] }

// AddRule inserts a source -> target mapping, creating trie nodes as
// needed and appending target to the rule list at the terminal node.
func (t *Table) AddRule(source []symbol.Symbol, target *RuleTarget) {
	node := 0
	for _, s := range source {
		next, ok := t.next[node][s]
		if !ok {
			next = len(t.next)
			t.next = append(t.next, map[symbol.Symbol]int{})
			t.rules = append(t.rules, nil)
			t.next[node][s] = next
		}
		node = next
	}
	t.rules[node] = append(t.rules[node], &Rule{Source: source, Target: target})
}
