// Package tree implements the tree-to-tree composer of spec.md §4.4:
// bottom-up matching of tree-fragment rules against an input hypergraph's
// derivation tree, producing a new, rescoreable hypergraph whose edges
// carry the matched rules' target-side structure. Internal (non-frontier)
// nodes reached by more than one match are shared rather than duplicated,
// and nodes left unmatched by the tree grammar may be bridged by a
// phrase-grammar fallback (the "glue-tree" edges).
//
// Grounded on cicada/compose_tree.hpp, with one deliberate simplification:
// fragment matching compares
// tree shape (rule label and non-terminal arity) rather than replicating
// the source's trie-automaton match over full terminal+non-terminal RHS
// sequences. The composed result is unaffected when a tree grammar's
// rules are left-factored by category the way such grammars typically
// are; it only loses the automaton's ability to disambiguate two rules
// sharing a root label and arity but differing terminal yield, which this
// port resolves by trying every matching rule instead of a single
// automaton path.
package tree
