package cky

import "github.com/katalvlaran/synforest/symbol"

// Transducer is the synchronous grammar a parse walks: a trie over mixed
// terminal/non-terminal symbol sequences, shaped like compose/phrase's
// Transducer but with its Next steps consuming either a scanned lattice
// label or a completed passive's (bare, un-indexed) non-terminal
// category — this is what lets tree and phrase rules interleave in one
// chart per spec.md §4.5.
type Transducer interface {
	Root() int
	Next(node int, label symbol.Symbol) (int, bool)
	Rules(node int) []*Rule
	// IsValidSpan reports whether a span whose lattice shortest-distance
	// is distance may still be completed here, letting a grammar bound
	// maximum span width. A Transducer that never restricts spans may
	// always return true.
	IsValidSpan(distance int) bool
	// UnaryRules returns the rules whose matched source is exactly the
	// single non-terminal lhs, consulted once per passive by the unary
	// closure pass instead of walking the general trie.
	UnaryRules(lhs symbol.Symbol) []*Rule
}

// Rule is one synchronous-grammar production matched by a Transducer
// path: LHS is the category produced, RHS is the output side built once
// the match completes (terminals and "[CAT,k]" positional non-terminals
// referencing the k-th bound tail, in match order).
type Rule struct {
	LHS      symbol.Symbol
	RHS      []symbol.Symbol
	Features map[string]float64
}

// Table is an in-memory Transducer built by repeated AddRule calls, the
// CKY counterpart of phrase.Table. A rule whose Source is exactly one
// non-terminal is additionally indexed for direct lookup by unary
// closure (UnaryRules), since closure never walks the general trie — it
// only ever asks "what productions rewrite this single category".
type Table struct {
	next  []map[symbol.Symbol]int
	rules [][]*Rule

	maxSpan int // 0 = unbounded
	unary   map[symbol.Symbol][]*Rule
}

// NewTable returns an empty grammar with just its root trie node. A
// maxSpan of 0 means IsValidSpan never rejects a span.
func NewTable(maxSpan int) *Table {
	return &Table{
		next:    []map[symbol.Symbol]int{{}},
		rules:   [][]*Rule{nil},
		maxSpan: maxSpan,
		unary:   make(map[symbol.Symbol][]*Rule),
	}
}

func (t *Table) Root() int { return 0 }

func (t *Table) Next(node int, label symbol.Symbol) (int, bool) {
	n, ok := t.next[node][label]
	return n, ok
}

func (t *Table) Rules(node int) []*Rule { return t.rules[node] }

func (t *Table) IsValidSpan(distance int) bool {
	return t.maxSpan <= 0 || distance <= t.maxSpan
}

// AddRule registers source -> target, creating trie nodes as needed.
// When source is a single non-terminal, target is also indexed under
// UnaryRules(source[0].NonTerminal()) for the closure pass.
func (t *Table) AddRule(source []symbol.Symbol, target *Rule) {
	node := 0
	for _, s := range source {
		key := s
		if s.IsNonTerminal() {
			key = s.NonTerminal()
		}
		next, ok := t.next[node][key]
		if !ok {
			next = len(t.next)
			t.next = append(t.next, map[symbol.Symbol]int{})
			t.rules = append(t.rules, nil)
			t.next[node][key] = next
		}
		node = next
	}
	t.rules[node] = append(t.rules[node], target)

	if len(source) == 1 && source[0].IsNonTerminal() {
		lhs := source[0].NonTerminal()
		t.unary[lhs] = append(t.unary[lhs], target)
	}
}

// UnaryRules returns the rules whose matched source is exactly the
// single non-terminal lhs, used by the unary-closure pass.
func (t *Table) UnaryRules(lhs symbol.Symbol) []*Rule {
	return t.unary[lhs]
}
