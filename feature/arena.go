package feature

// State is an opaque, fixed-length byte blob summarizing the
// rescoring-relevant history at a hypergraph node (e.g. the trailing
// n-1 words of an n-gram context). Equality and hashing are always
// byte-wise over the blob's full length; a nil State denotes the empty
// (stateless) state.
type State []byte

// Arena is a slab allocator handing out fixed-size State buffers and
// recycling them through a free list, mirroring the source's
// StateAllocator: alloc/dealloc/clone over a single state_size, so no
// general-purpose allocator churn shows up in the rescorer's hot loop.
type Arena struct {
	size int
	free []State
}

// NewArena returns an Arena dispensing buffers of the given size.
func NewArena(size int) *Arena {
	return &Arena{size: size}
}

// Size returns the fixed buffer length this arena allocates.
func (a *Arena) Size() int {
	return a.size
}

// Alloc returns a zeroed State of this arena's size, reusing a freed
// buffer when one is available.
func (a *Arena) Alloc() State {
	if a.size == 0 {
		return nil
	}
	if n := len(a.free); n > 0 {
		s := a.free[n-1]
		a.free = a.free[:n-1]
		for i := range s {
			s[i] = 0
		}
		return s
	}
	return make(State, a.size)
}

// Dealloc returns s to the free list. s must have been obtained from
// this arena (or Clone'd from one obtained from it); double-dealloc of
// the same buffer is a fatal bug the caller must not commit (spec §5).
func (a *Arena) Dealloc(s State) {
	if s == nil {
		return
	}
	a.free = append(a.free, s)
}

// Clone returns a fresh, independently owned copy of s.
func (a *Arena) Clone(s State) State {
	if s == nil {
		return nil
	}
	out := a.Alloc()
	copy(out, s)
	return out
}
