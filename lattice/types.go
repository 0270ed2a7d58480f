package lattice

import (
	"github.com/katalvlaran/synforest/hypergraph"
	"github.com/katalvlaran/synforest/symbol"
)

// Arc is a single lattice transition: consume Label, advancing Distance
// positions, while contributing Features (e.g. an ASR/confusion-network
// posterior) to whatever edge is built from it.
type Arc struct {
	Label    symbol.Symbol
	Distance int
	Features hypergraph.FeatureVector
}

// Lattice is a sequence of positions, each holding the arcs leaving it.
// Arcs[i] holds every arc departing position i; an arc with Distance d
// arrives at position i+d. A plain sentence of n words is the lattice
// with n positions, one arc per position, each of Distance 1.
type Lattice struct {
	Arcs [][]Arc
}

// New returns an empty lattice of the given number of positions.
func New(positions int) *Lattice {
	return &Lattice{Arcs: make([][]Arc, positions)}
}

// FromSentence builds the degenerate lattice for a plain token sequence:
// one arc per position, each of distance 1 and no extra features.
func FromSentence(tokens []symbol.Symbol) *Lattice {
	l := New(len(tokens))
	for i, tok := range tokens {
		l.Arcs[i] = []Arc{{Label: tok, Distance: 1}}
	}
	return l
}

// Size returns the number of positions (not arcs) in the lattice.
func (l *Lattice) Size() int {
	if l == nil {
		return 0
	}
	return len(l.Arcs)
}

// Validate reports ErrMalformedLattice if any arc's distance would carry
// a position past the end of the lattice, or is non-positive.
func (l *Lattice) Validate() error {
	n := l.Size()
	for i, arcs := range l.Arcs {
		for _, a := range arcs {
			if a.Distance <= 0 || i+a.Distance > n {
				return ErrMalformedLattice
			}
		}
	}
	return nil
}

// ShortestDistance returns, for every position, the minimum number of
// arc hops from that position to the end of the lattice. It is the span
// distance oracle a grammar's span-validity predicate consults: since
// arcs only move forward, a single backward pass over positions
// suffices (utils::lattice_shortest_distance's dynamic-programming
// analogue).
func (l *Lattice) ShortestDistance() []int {
	n := l.Size()
	dist := make([]int, n+1)
	for i := range dist {
		dist[i] = -1
	}
	dist[n] = 0
	for i := n - 1; i >= 0; i-- {
		best := -1
		for _, a := range l.Arcs[i] {
			to := i + a.Distance
			if dist[to] < 0 {
				continue
			}
			hop := dist[to] + 1
			if best < 0 || hop < best {
				best = hop
			}
		}
		dist[i] = best
	}
	return dist
}

// EpsilonClosure returns, for every position, the set of positions
// reachable by following only EPSILON arcs (including the position
// itself). The phrase composer precomputes this once per lattice so
// that epsilon transitions can be consumed without growing the search
// frontier.
func (l *Lattice) EpsilonClosure() []map[int]bool {
	n := l.Size()
	closure := make([]map[int]bool, n)
	for i := 0; i < n; i++ {
		closure[i] = l.closureFrom(i)
	}
	return closure
}

func (l *Lattice) closureFrom(start int) map[int]bool {
	seen := map[int]bool{start: true}
	stack := []int{start}
	for len(stack) > 0 {
		pos := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if pos >= len(l.Arcs) {
			continue
		}
		for _, a := range l.Arcs[pos] {
			if a.Label != symbol.Epsilon {
				continue
			}
			to := pos + a.Distance
			if !seen[to] {
				seen[to] = true
				stack = append(stack, to)
			}
		}
	}
	return seen
}
