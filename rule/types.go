package rule

import (
	"strings"
	"sync"

	"github.com/katalvlaran/synforest/symbol"
)

// Rule is a synchronous or monolingual production (lhs, rhs). Source is
// nil for a single-side rule; when present, it holds the source-language
// RHS of a source-target pair and RHS holds the target side.
type Rule struct {
	LHS      symbol.Symbol
	RHS      []symbol.Symbol
	Source   []symbol.Symbol
	Features map[string]float64
}

// key returns the structural-equality key used for interning: rules with
// the same (lhs, source, rhs) text share one *Rule.
func (r *Rule) key() string {
	var b strings.Builder
	b.WriteString(r.LHS.String())
	b.WriteByte('|')
	for _, s := range r.Source {
		b.WriteString(s.String())
		b.WriteByte(' ')
	}
	b.WriteByte('|')
	for _, s := range r.RHS {
		b.WriteString(s.String())
		b.WriteByte(' ')
	}
	return b.String()
}

// Arity returns the number of non-terminals in RHS.
func (r *Rule) Arity() int {
	n := 0
	for _, s := range r.RHS {
		if s.IsNonTerminal() {
			n++
		}
	}
	return n
}

var (
	tableMu sync.RWMutex
	table   = make(map[string]*Rule)
)

// Intern returns the shared *Rule for r's structural key, registering r if
// this is the first rule seen with that (lhs, source, rhs) shape. Callers should
// treat the returned pointer, not r, as canonical.
func Intern(r *Rule) *Rule {
	key := r.key()

	tableMu.RLock()
	if existing, ok := table[key]; ok {
		tableMu.RUnlock()
		return existing
	}
	tableMu.RUnlock()

	tableMu.Lock()
	defer tableMu.Unlock()
	if existing, ok := table[key]; ok {
		return existing
	}
	table[key] = r
	return r
}

// TreeRule is the recursive tree-fragment form matched by the tree-to-tree
// composer. A TreeRule with no Antecedents is a frontier variable (it
// denotes a position to bind to an input-hypergraph node, not a fixed
// label to emit).
type TreeRule struct {
	Label       symbol.Symbol
	Antecedents []*TreeRule
}

// IsFrontier reports whether t is a leaf frontier variable.
func (t *TreeRule) IsFrontier() bool {
	return len(t.Antecedents) == 0
}

// SizeInternal counts the internal (non-frontier) nodes of t, used by the
// tree-to-tree composer to populate the "internal-node" edge attribute.
func (t *TreeRule) SizeInternal() int {
	if t.IsFrontier() {
		return 0
	}
	n := 1
	for _, a := range t.Antecedents {
		n += a.SizeInternal()
	}
	return n
}

// Frontier collects the ordered sequence of frontier (leaf) TreeRules
// under t, which the tree-to-tree composer binds to input-hypergraph node
// ids.
func (t *TreeRule) Frontier() []*TreeRule {
	if t.IsFrontier() {
		return []*TreeRule{t}
	}
	var out []*TreeRule
	for _, a := range t.Antecedents {
		out = append(out, a.Frontier()...)
	}
	return out
}

// String renders t in "label(child1 child2 ...)" form, or just the label
// text for a frontier variable.
func (t *TreeRule) String() string {
	if t.IsFrontier() {
		return t.Label.String()
	}
	parts := make([]string, len(t.Antecedents))
	for i, a := range t.Antecedents {
		parts[i] = a.String()
	}
	return t.Label.String() + "(" + strings.Join(parts, " ") + ")"
}
