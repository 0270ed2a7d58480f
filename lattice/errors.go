package lattice

import "errors"

// ErrMalformedLattice is returned when an arc's distance would carry a
// position past the end of the lattice.
var ErrMalformedLattice = errors.New("lattice: malformed lattice")
