package kbest

import "errors"

// ErrInvalidK is returned by Prune when k is not positive.
var ErrInvalidK = errors.New("kbest: k must be positive")
