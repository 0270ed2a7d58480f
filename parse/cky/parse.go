package cky

import (
	"strconv"

	"github.com/katalvlaran/synforest/hypergraph"
	"github.com/katalvlaran/synforest/lattice"
	"github.com/katalvlaran/synforest/rule"
	"github.com/katalvlaran/synforest/symbol"
)

// Parse chart-parses lat against grammars, producing a hypergraph whose
// edges are the rule instantiations completed during the parse (spec.md
// §4.5). Returns an empty, invalid *Graph (no error) if the start symbol
// never spans the whole lattice.
func Parse(lat *lattice.Lattice, grammars []Transducer, opts ...Option) (*hypergraph.Graph, error) {
	if lat == nil {
		return nil, ErrNilLattice
	}
	if err := lat.Validate(); err != nil {
		return nil, err
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	n := lat.Size()
	dist := lat.ShortestDistance()

	chart := make([][]cell, n+1)
	for i := range chart {
		chart[i] = make([]cell, n+1)
		for j := range chart[i] {
			chart[i][j] = newCell()
		}
	}

	p := &parser{lat: lat, grammars: grammars, opt: o, chart: chart, dist: dist, g: hypergraph.New()}

	for length := 1; length <= n; length++ {
		for first := 0; first+length <= n; first++ {
			last := first + length
			p.extend(first, last)
			p.combine(first, last)
			p.complete(first, last)
			p.closeUnary(first, last)

			// Start matches whose first source symbol is a category
			// completed over this span, for longer spans to extend.
			c := &p.chart[first][last]
			for _, root := range p.rootActives() {
				for key, nodeID := range c.passives {
					if next, ok := p.grammars[root.trans].Next(root.node, key.lhs); ok {
						c.addActive(activeItem{trans: root.trans, node: next, tails: []hypergraph.NodeID{nodeID}})
					}
				}
			}
		}
	}

	return p.finish(n)
}

type parser struct {
	lat      *lattice.Lattice
	grammars []Transducer
	opt      *options
	chart    [][]cell
	dist     []int
	g        *hypergraph.Graph
}

// rootActives returns the implicit "just started matching" active item
// for every grammar, used when a span begins at the lattice position
// itself (no partial match to extend yet).
func (p *parser) rootActives() []activeItem {
	out := make([]activeItem, len(p.grammars))
	for i, tr := range p.grammars {
		out[i] = activeItem{trans: i, node: tr.Root()}
	}
	return out
}

func (p *parser) activesAt(first, mid int) []activeItem {
	if mid == first {
		return p.rootActives()
	}
	return p.chart[first][mid].actives
}

// extend is spec.md §4.5 step 1: scan every lattice arc that ends
// exactly at last, generalizing the source's "position last-1" example
// to arcs of any Distance so multi-hop (e.g. ASR phrase) arcs are
// handled the same way single-word arcs are.
func (p *parser) extend(first, last int) {
	cell := &p.chart[first][last]
	for start := first; start < last; start++ {
		for _, a := range p.lat.Arcs[start] {
			if start+a.Distance != last {
				continue
			}
			for _, active := range p.activesAt(first, start) {
				if a.Label == symbol.Epsilon {
					cell.addActive(activeItem{trans: active.trans, node: active.node, tails: active.tails})
					continue
				}
				next, ok := p.grammars[active.trans].Next(active.node, a.Label)
				if !ok {
					continue
				}
				cell.addActive(activeItem{trans: active.trans, node: next, tails: active.tails})
			}
		}
	}
}

// combine is step 2: for every split point, extend actives at
// (first, middle) with passives completed at (middle, last).
func (p *parser) combine(first, last int) {
	cell := &p.chart[first][last]
	for middle := first + 1; middle < last; middle++ {
		for _, active := range p.activesAt(first, middle) {
			for key, nodeID := range p.chart[middle][last].passives {
				next, ok := p.grammars[active.trans].Next(active.node, key.lhs)
				if !ok {
					continue
				}
				tails := append(append([]hypergraph.NodeID(nil), active.tails...), nodeID)
				cell.addActive(activeItem{trans: active.trans, node: next, tails: tails})
			}
		}
	}
}

// complete is step 3: every active item whose trie node carries
// completed rules yields a passive at level 0.
func (p *parser) complete(first, last int) {
	cell := &p.chart[first][last]
	for _, active := range cell.actives {
		tr := p.grammars[active.trans]
		if !tr.IsValidSpan(p.dist[first] - p.dist[last]) {
			continue
		}
		for _, r := range tr.Rules(active.node) {
			p.admit(cell, r, active.tails, passiveKey{lhs: r.LHS, level: 0})
		}
	}
}

// admit instantiates the output edge for rule r bound to tails and
// attaches it under the passive node for key, creating that node on
// first use. Returns the (possibly pre-existing) node id and whether
// this was the first edge recorded at key this span (used by closure's
// progress tracking).
func (p *parser) admit(c *cell, r *Rule, tails []hypergraph.NodeID, key passiveKey) (hypergraph.NodeID, bool) {
	if p.opt.uniqueGoal && key.lhs == p.opt.startSymbol {
		key.level = canonicalLevel
	}

	nodeID, existed := c.passives[key]
	if !existed {
		nodeID = p.g.AddNode()
		c.passives[key] = nodeID
		c.addedThisRound = append(c.addedThisRound, key)
	}

	out := rule.Intern(&rule.Rule{LHS: r.LHS, RHS: r.RHS})
	edge := hypergraph.NewEdge(out, tails)
	for k, v := range r.Features {
		edge.Features.Add(k, v)
	}
	eid := p.g.AddEdge(edge)
	p.g.ConnectEdge(eid, nodeID)

	return nodeID, !existed
}

// closeUnary is step 4: repeatedly rewrite newly-admitted passives
// through each grammar's unary rules, incrementing level each round,
// until no new passive emerges or maxNoProgressRounds consecutive
// rounds add no category this span hasn't already produced at some
// level (spec.md §9 open question 2).
func (p *parser) closeUnary(first, last int) {
	cell := &p.chart[first][last]
	frontier := cell.addedThisRound
	cell.addedThisRound = nil

	seenLHS := make(map[symbol.Symbol]bool)
	for key := range cell.passives {
		seenLHS[key.lhs] = true
	}

	noProgress := 0
	for len(frontier) > 0 && noProgress < p.opt.maxNoProgressRounds {
		var next []passiveKey
		newLHSThisRound := false

		for _, key := range frontier {
			if key.level == canonicalLevel {
				// A unique-goal passive's real level is unknown (collapsed);
				// closure cannot safely re-enter it without risking an
				// infinite loop, so it terminates the chain here.
				continue
			}
			nodeID := cell.passives[key]
			for _, tr := range p.grammars {
				for _, r := range tr.UnaryRules(key.lhs) {
					newKey := passiveKey{lhs: r.LHS, level: key.level + 1}
					if p.opt.uniqueGoal && r.LHS == p.opt.startSymbol {
						newKey.level = canonicalLevel
					}
					if _, exists := cell.passives[newKey]; exists {
						continue
					}
					_, _ = p.admit(cell, r, []hypergraph.NodeID{nodeID}, newKey)
					next = append(next, newKey)
					if !seenLHS[r.LHS] {
						seenLHS[r.LHS] = true
						newLHSThisRound = true
					}
				}
			}
		}

		if newLHSThisRound {
			noProgress = 0
		} else {
			noProgress++
		}
		frontier = next
	}
}

// finish attaches the goal edge over every start-symbol passive spanning
// the whole lattice, or returns an empty graph if none exists.
func (p *parser) finish(n int) (*hypergraph.Graph, error) {
	cell := &p.chart[0][n]
	var starts []hypergraph.NodeID
	for key, nodeID := range cell.passives {
		if key.lhs == p.opt.startSymbol {
			starts = append(starts, nodeID)
		}
	}
	if len(starts) == 0 {
		return hypergraph.New(), nil
	}

	goalID := p.g.AddNode()
	p.g.Goal = goalID
	goalRule := rule.Intern(&rule.Rule{
		LHS: p.opt.goalSymbol,
		RHS: []symbol.Symbol{withIndex(p.opt.startSymbol, 1)},
	})
	for _, s := range starts {
		eid := p.g.AddEdge(hypergraph.NewEdge(goalRule, []hypergraph.NodeID{s}))
		p.g.ConnectEdge(eid, goalID)
	}

	return hypergraph.TopologicalSort(p.g, nil)
}

func withIndex(nt symbol.Symbol, idx int) symbol.Symbol {
	text := nt.String()
	inner := text[1 : len(text)-1]
	return symbol.Intern("[" + inner + "," + strconv.Itoa(idx) + "]")
}
