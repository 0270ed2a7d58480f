package cky

import "errors"

// ErrNilLattice guards against a nil *lattice.Lattice argument.
var ErrNilLattice = errors.New("cky: lattice is nil")
