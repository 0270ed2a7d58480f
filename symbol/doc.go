// Package symbol defines the interned terminal/non-terminal token type
// shared by rules, hypergraphs, and the composers and parsers that build
// them.
//
// A Symbol is a small value type wrapping an interned string id, so
// equality and hashing are O(1) integer operations instead of string
// comparisons. Non-terminals carry an optional 1-based antecedent index
// (the "[X,k]" form); stripping it ("[X]") or stripping all bracket
// annotations down to a bare category ("coarse") are common operations
// during composition and pruning.
//
// Interning is process-wide and guarded by a single RWMutex, following the
// locking style of lvlath/core.Graph: a read path under RLock for the
// common case (symbol already known) and a write path under Lock only on
// first sight of a new string.
package symbol
