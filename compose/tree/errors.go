package tree

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/synforest/rule"
)

// ErrNonTerminalIndexOutOfRange is the sentinel wrapped by the error
// constructGraph produces when a tree rule's frontier variable carries an
// explicit "[X,k]" index beyond the number of frontier positions actually
// matched, replacing the source's runtime_error("non-terminal index
// exceeds frontier size") with a typed, inspectable sentinel (spec.md §9
// open question 3). Compose does not return it: applyRule drops the
// failing match and composition continues with the remaining rules.
var ErrNonTerminalIndexOutOfRange = errors.New("compose/tree: non-terminal index out of range")

// nonTerminalIndexError carries the offending index and rule alongside
// ErrNonTerminalIndexOutOfRange so callers can report which rule failed
// without string-parsing the error text.
type nonTerminalIndexError struct {
	index int
	size  int
	rule  *rule.TreeRule
}

func (e *nonTerminalIndexError) Error() string {
	return fmt.Sprintf("compose/tree: non-terminal index %d exceeds frontier size %d in rule %s",
		e.index, e.size, e.rule.String())
}

func (e *nonTerminalIndexError) Unwrap() error { return ErrNonTerminalIndexOutOfRange }
