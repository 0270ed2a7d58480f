package phrase

import (
	"strconv"

	"github.com/katalvlaran/synforest/hypergraph"
	"github.com/katalvlaran/synforest/lattice"
	"github.com/katalvlaran/synforest/rule"
	"github.com/katalvlaran/synforest/symbol"
)

// phraseMatch is one completed phrase found while walking a Transducer
// from a starting lattice position: it ends at position j and offers
// the alternative target rules recorded at the trie node reached.
type phraseMatch struct {
	j     int
	rules []*Rule
}

// matchAt walks trans from every position in i's epsilon closure,
// following lattice arcs (including further epsilon arcs encountered
// mid-walk) and collecting every node with completed rules.
func matchAt(lat *lattice.Lattice, closure []map[int]bool, trans Transducer, i int) []phraseMatch {
	type frontier struct {
		pos  int
		node int
	}
	seen := map[frontier]bool{}
	var matches []phraseMatch
	var stack []frontier
	for p := range closure[i] {
		stack = append(stack, frontier{p, trans.Root()})
	}

	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if seen[f] {
			continue
		}
		seen[f] = true

		if rules := trans.Rules(f.node); len(rules) > 0 {
			matches = append(matches, phraseMatch{j: f.pos, rules: rules})
		}
		if f.pos >= len(lat.Arcs) {
			continue
		}

		for _, a := range lat.Arcs[f.pos] {
			if a.Label == symbol.Epsilon {
				stack = append(stack, frontier{f.pos + a.Distance, f.node})
				continue
			}
			next, ok := trans.Next(f.node, a.Label)
			if !ok {
				continue
			}
			stack = append(stack, frontier{f.pos + a.Distance, next})
		}
	}
	return matches
}

// distortionOK implements spec §4.3's distortion test: a phrase
// spanning [first, last) may extend cov iff no position in
// [first, last-1] is already covered, i.e. the count of covered
// positions up to first-1 equals the count up to last-1.
func distortionOK(cov lattice.Coverage, first, last int) bool {
	return cov.Rank(first-1, true) == cov.Rank(last-1, true)
}

func coverageOf(first, last int) lattice.Coverage {
	var c lattice.Coverage
	for p := first; p < last; p++ {
		c.Set(p)
	}
	return c
}

// withIndex returns the "[CAT,idx]" positional form of a "[CAT]"
// non-terminal symbol.
func withIndex(nt symbol.Symbol, idx int) symbol.Symbol {
	text := nt.String()
	inner := text[1 : len(text)-1]
	return symbol.Intern("[" + inner + "," + strconv.Itoa(idx) + "]")
}

func seedRule(x symbol.Symbol) *rule.Rule {
	return rule.Intern(&rule.Rule{LHS: x, RHS: []symbol.Symbol{withIndex(x, 1)}})
}

func glueRule(x symbol.Symbol) *rule.Rule {
	return rule.Intern(&rule.Rule{LHS: x, RHS: []symbol.Symbol{withIndex(x, 1), withIndex(x, 2)}})
}

func goalRule(goal, x symbol.Symbol) *rule.Rule {
	return rule.Intern(&rule.Rule{LHS: goal, RHS: []symbol.Symbol{withIndex(x, 1)}})
}

type builder struct {
	g           *hypergraph.Graph
	phraseNodes map[[2]int]hypergraph.NodeID
	coverNodes  map[lattice.Coverage]hypergraph.NodeID
}

// phraseNode returns (creating if absent) the node holding one edge per
// alternative target rule for the phrase spanning [i, j).
func (b *builder) phraseNode(i, j int, matches []*Rule) hypergraph.NodeID {
	key := [2]int{i, j}
	if id, ok := b.phraseNodes[key]; ok {
		return id
	}
	id := b.g.AddNode()
	for _, m := range matches {
		r := rule.Intern(&rule.Rule{LHS: symbol.Intern("[X]"), RHS: m.Target.RHS, Features: m.Target.Features})
		e := hypergraph.NewEdge(r, nil)
		for k, v := range m.Target.Features {
			e.Features.Add(k, v)
		}
		eid := b.g.AddEdge(e)
		b.g.ConnectEdge(eid, id)
	}
	b.phraseNodes[key] = id
	return id
}

// register returns the node for cov, creating it if this is the first
// time cov has been reached.
func (b *builder) register(cov lattice.Coverage) (id hypergraph.NodeID, isNew bool) {
	if id, ok := b.coverNodes[cov]; ok {
		return id, false
	}
	id = b.g.AddNode()
	b.coverNodes[cov] = id
	return id, true
}

// Compose builds a hypergraph by coverage-bitset search over lat against
// transducers, per spec §4.3. Returns an empty, invalid *Graph (no
// error) if no derivation covers the whole lattice.
func Compose(lat *lattice.Lattice, transducers []Transducer, opts ...Option) (*hypergraph.Graph, error) {
	if err := lat.Validate(); err != nil {
		return nil, err
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	n := lat.Size()
	closure := lat.EpsilonClosure()

	b := &builder{
		g:           hypergraph.New(),
		phraseNodes: map[[2]int]hypergraph.NodeID{},
		coverNodes:  map[lattice.Coverage]hypergraph.NodeID{},
	}

	var queue []lattice.Coverage

	seedLimit := o.maxDistortion + 1
	if seedLimit > n {
		seedLimit = n
	}
	for i := 0; i < seedLimit; i++ {
		for _, trans := range transducers {
			for _, m := range matchAt(lat, closure, trans, i) {
				cov := coverageOf(i, m.j)
				phraseID := b.phraseNode(i, m.j, m.rules)
				coverID, isNew := b.register(cov)
				e := hypergraph.NewEdge(seedRule(o.xSymbol), []hypergraph.NodeID{phraseID})
				eid := b.g.AddEdge(e)
				b.g.ConnectEdge(eid, coverID)
				if isNew {
					queue = append(queue, cov)
				}
			}
		}
	}

	for len(queue) > 0 {
		cov := queue[0]
		queue = queue[1:]
		coverID := b.coverNodes[cov]

		first := cov.FirstUncovered(n)
		if first == n {
			continue
		}
		limit := first + o.maxDistortion + 1
		if limit > n {
			limit = n
		}

		for i := first; i < limit; i++ {
			if cov.Test(i) {
				continue
			}
			for _, trans := range transducers {
				for _, m := range matchAt(lat, closure, trans, i) {
					if !distortionOK(cov, i, m.j) {
						continue
					}
					newCov := cov.Or(coverageOf(i, m.j))
					phraseID := b.phraseNode(i, m.j, m.rules)
					newID, isNew := b.register(newCov)
					e := hypergraph.NewEdge(glueRule(o.xSymbol), []hypergraph.NodeID{coverID, phraseID})
					eid := b.g.AddEdge(e)
					b.g.ConnectEdge(eid, newID)
					if isNew {
						queue = append(queue, newCov)
					}
				}
			}
		}
	}

	full := coverageOf(0, n)
	goalTail, ok := b.coverNodes[full]
	if !ok {
		return hypergraph.New(), nil
	}

	goalID := b.g.AddNode()
	e := hypergraph.NewEdge(goalRule(o.goalSymbol, o.xSymbol), []hypergraph.NodeID{goalTail})
	eid := b.g.AddEdge(e)
	b.g.ConnectEdge(eid, goalID)
	b.g.Goal = goalID

	return b.g, nil
}
