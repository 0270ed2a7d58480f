package rule

import "errors"

// ErrRuleParse indicates a rule or feature-weight line did not match the
// textual grammar described in spec.md §6. It is fatal to the operation
// configuring the grammar (spec.md §7).
var ErrRuleParse = errors.New("rule: parse error")
