// Package rule defines the synchronous-grammar Rule and tree-fragment
// TreeRule types, plus a textual parser for the rule file format described
// in spec.md §6. The feature-weights file is loaded by package weights.
//
// A Rule is (LHS, RHS): a left-hand-side non-terminal and an ordered
// right-hand-side of terminals and non-terminals, where non-terminals
// carry a positional or explicit antecedent index ("[X]" or "[X,k]"). A
// TreeRule is the recursive tree-fragment form used by the tree-to-tree
// composer: an internal node's Antecedents are themselves TreeRules, and a
// TreeRule with no antecedents is a frontier variable.
//
// Rules are shared by pointer and deduplicated by structural equality on
// (LHS, Source, RHS): Intern returns the same *Rule for textually identical rules,
// so composers building many edges over the same small rule set don't
// allocate a fresh Rule per edge.
package rule
