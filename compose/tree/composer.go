package tree

import (
	"strings"

	"github.com/katalvlaran/synforest/compose/phrase"
	"github.com/katalvlaran/synforest/hypergraph"
	"github.com/katalvlaran/synforest/rule"
	"github.com/katalvlaran/synforest/symbol"
)

// composer holds one Compose call's mutable state, grounded on
// cicada/compose_tree.hpp's ComposeTree member fields.
type composer struct {
	in  *hypergraph.Graph
	g   *hypergraph.Graph
	opt *options

	nodeMap         []map[symbol.Symbol]hypergraph.NodeID
	nodeMapFallback []map[symbol.Symbol]hypergraph.NodeID
	nodeMapPhrase   []map[symbol.Symbol]hypergraph.NodeID

	internal  map[string]hypergraph.EdgeID
	connected map[hypergraph.NodeID]bool

	phraseYields [][]string // memoized terminal yields per input node, for the phrase fallback
}

// Compose matches grammar's tree fragments against in bottom-up and
// builds the corresponding output hypergraph (spec.md §4.4). An invalid
// input returns an empty, invalid *Graph with no error.
func Compose(in *hypergraph.Graph, grammar *Grammar, opts ...Option) (*hypergraph.Graph, error) {
	if in == nil {
		return nil, hypergraph.ErrNilGraph
	}
	if !in.IsValid() {
		return hypergraph.New(), nil
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	c := &composer{
		in:              in,
		g:               hypergraph.New(),
		opt:             o,
		nodeMap:         make([]map[symbol.Symbol]hypergraph.NodeID, len(in.Nodes)),
		nodeMapFallback: make([]map[symbol.Symbol]hypergraph.NodeID, len(in.Nodes)),
		nodeMapPhrase:   make([]map[symbol.Symbol]hypergraph.NodeID, len(in.Nodes)),
		internal:        make(map[string]hypergraph.EdgeID),
		connected:       make(map[hypergraph.NodeID]bool),
		phraseYields:    make([][]string, len(in.Nodes)),
	}

	for id := range in.Nodes {
		node := hypergraph.NodeID(id)
		c.matchTree(node, grammar)
		if o.fallback != nil {
			c.matchPhrase(node)
		}
	}

	if o.fallback != nil {
		c.glueFallbackPhrases()
	}

	goalNode, ok := c.nodeMap[in.Goal][o.goalSymbol.NonTerminal()]
	if !ok {
		return hypergraph.New(), nil
	}

	c.g.Goal = c.g.AddNode()
	goalRule := rule.Intern(&rule.Rule{LHS: o.goalSymbol, RHS: []symbol.Symbol{withIndex(o.goalSymbol, 1)}})
	edgeID := c.g.AddEdge(hypergraph.NewEdge(goalRule, []hypergraph.NodeID{goalNode}))
	c.g.ConnectEdge(edgeID, c.g.Goal)
	c.connected[goalNode] = true

	c.glueUnconnectedFallbacks(goalNode)

	return hypergraph.TopologicalSort(c.g, nil)
}

// bindNode returns (creating if absent) the output node for (inputNode,
// label), the node_map dedup of cicada/compose_tree.hpp.
func (c *composer) bindNode(inputNode hypergraph.NodeID, label symbol.Symbol) hypergraph.NodeID {
	m := c.nodeMap[inputNode]
	if m == nil {
		m = make(map[symbol.Symbol]hypergraph.NodeID)
		c.nodeMap[inputNode] = m
	}
	if id, ok := m[label]; ok {
		return id
	}
	id := c.g.AddNode()
	m[label] = id
	return id
}

func (c *composer) markFallback(inputNode hypergraph.NodeID, label symbol.Symbol, outNode hypergraph.NodeID) {
	m := c.nodeMapFallback[inputNode]
	if m == nil {
		m = make(map[symbol.Symbol]hypergraph.NodeID)
		c.nodeMapFallback[inputNode] = m
	}
	m[label] = outNode
}

// matchTree tries every grammar rule rooted at node's label and, for each
// successful fragment match, builds the corresponding output fragment.
func (c *composer) matchTree(node hypergraph.NodeID, grammar *Grammar) {
	if len(c.in.Nodes[node].Edges) == 0 {
		return
	}
	rootLabel := c.in.Edges[c.in.Nodes[node].Edges[0]].Rule.LHS

	for _, pair := range grammar.Rules(rootLabel) {
		bindings := matchFragment(c.in, pair.Source, node)
		for _, frontier := range bindings {
			c.applyRule(pair, node, frontier)
		}
	}
}

// applyRule builds the output fragment for one successful match of pair
// rooted at node, binding pair's frontier variables to frontier in order.
func (c *composer) applyRule(pair *RulePair, node hypergraph.NodeID, frontier []hypergraph.NodeID) {
	tr := pair.Source
	if !c.opt.yieldSource {
		tr = pair.Target
	}

	rootLabel := c.in.Edges[c.in.Nodes[node].Edges[0]].Rule.LHS
	outRoot := c.bindNode(node, tr.Label.NonTerminal())

	isFallback := false
	if v, ok := pair.Attributes[attrTreeFallback]; ok {
		isFallback, _ = v.(bool)
	}

	st := &buildState{frontier: frontier, terminals: make(map[string]hypergraph.EdgeID), isFallback: isFallback}
	edgeID, err := c.constructGraph(tr, outRoot, st)
	if err != nil {
		// A malformed grammar rule (bad frontier index) contributes no
		// derivation rather than aborting the whole composition.
		return
	}

	edge := &c.g.Edges[edgeID]
	for k, v := range pair.Features {
		edge.Features.Add(k, v)
	}
	for k, v := range pair.Attributes {
		edge.Attributes[k] = v
	}
	edge.Attributes[attrSourceRoot] = rootLabel.String()
	if n := tr.SizeInternal(); n > 0 {
		edge.Attributes[attrInternalNode] = n
	}

	if c.opt.frontierAttr {
		edge.Attributes[attrFrontierSource] = pair.Source.String()
		edge.Attributes[attrFrontierTarget] = pair.Target.String()
	}
}

// matchPhrase computes node's terminal-yield phrase set (combining its
// edges' RHS terminals with each non-terminal tail's own memoized
// yields) and matches each yield against the phrase fallback transducer,
// recording hits under nodeMapPhrase, mirroring match_phrase's glue-tree
// bridge for spans the tree grammar left unmatched.
func (c *composer) matchPhrase(node hypergraph.NodeID) {
	edges := c.in.Nodes[node].Edges
	if len(edges) == 0 {
		return
	}

	seen := map[string]bool{}
	var yields []string
	for _, eid := range edges {
		e := &c.in.Edges[eid]
		buffers := []string{""}
		tailIdx := 0
		for _, s := range e.Rule.RHS {
			if s.IsNonTerminal() {
				tail := e.Tails[tailIdx]
				tailIdx++
				subYields := c.phraseYields[tail]
				if len(subYields) == 0 {
					buffers = nil
					break
				}
				var next []string
				for _, b := range buffers {
					for _, y := range subYields {
						next = append(next, strings.TrimSpace(b+" "+y))
					}
				}
				buffers = next
			} else if s != symbol.Epsilon {
				for i := range buffers {
					buffers[i] = strings.TrimSpace(buffers[i] + " " + s.String())
				}
			}
		}
		for _, b := range buffers {
			if b != "" && !seen[b] {
				seen[b] = true
				yields = append(yields, b)
			}
		}
	}
	c.phraseYields[node] = yields

	rootLabel := c.in.Edges[edges[0]].Rule.LHS
	for _, y := range yields {
		words := strings.Fields(y)
		syms := make([]symbol.Symbol, len(words))
		for i, w := range words {
			syms[i] = symbol.Intern(w)
		}

		state := c.opt.fallback.Root()
		matched := true
		for _, s := range syms {
			next, ok := c.opt.fallback.Next(state, s)
			if !ok {
				matched = false
				break
			}
			state = next
		}
		if !matched {
			continue
		}

		for _, r := range c.opt.fallback.Rules(state) {
			out := rule.Intern(&rule.Rule{LHS: symbol.Intern("[X]"), RHS: r.Target.RHS})
			edge := hypergraph.NewEdge(out, nil)
			for k, v := range r.Target.Features {
				edge.Features.Add(k, v)
			}
			edge.Attributes[attrSourceRoot] = rootLabel.String()
			eid := c.g.AddEdge(edge)

			m := c.nodeMapPhrase[node]
			if m == nil {
				m = make(map[symbol.Symbol]hypergraph.NodeID)
				c.nodeMapPhrase[node] = m
			}
			outNode, ok := m[out.LHS]
			if !ok {
				outNode = c.g.AddNode()
				m[out.LHS] = outNode
			}
			c.g.ConnectEdge(eid, outNode)
		}
	}
}

// glueFallbackPhrases wires every phrase-matched node into the tree
// grammar's own node_map with a unary "glue-tree" edge, letting a
// phrase-covered span stand in for a tree-grammar category.
func (c *composer) glueFallbackPhrases() {
	for id := range c.in.Nodes {
		node := hypergraph.NodeID(id)
		phraseMap := c.nodeMapPhrase[node]
		treeMap := c.nodeMap[node]
		if len(phraseMap) == 0 || len(treeMap) == 0 {
			continue
		}
		rootLabel := c.in.Edges[c.in.Nodes[node].Edges[0]].Rule.LHS

		for treeLabel, treeNode := range treeMap {
			for _, phraseNode := range phraseMap {
				r := rule.Intern(&rule.Rule{LHS: treeLabel, RHS: []symbol.Symbol{withIndex(treeLabel, 1)}})
				edge := hypergraph.NewEdge(r, []hypergraph.NodeID{phraseNode})
				edge.Attributes[attrSourceRoot] = rootLabel.String()
				edge.Attributes[attrGlueTree] = true
				eid := c.g.AddEdge(edge)
				c.g.ConnectEdge(eid, treeNode)
			}
		}
	}
}

// glueUnconnectedFallbacks bridges any node_map_fallback entry reachable
// from the goal that never got connected by the ordinary tree match,
// mirroring compose_tree.hpp's final "patch work" pass: a fallback-tagged
// rule's output is allowed to stand in for an unreached category so the
// composition still reaches goal.
func (c *composer) glueUnconnectedFallbacks(goalNode hypergraph.NodeID) {
	if !c.connected[goalNode] {
		return
	}
	for id := range c.in.Nodes {
		node := hypergraph.NodeID(id)
		fallbackMap := c.nodeMapFallback[node]
		treeMap := c.nodeMap[node]
		if len(fallbackMap) == 0 || len(treeMap) == 0 {
			continue
		}
		rootLabel := c.in.Edges[c.in.Nodes[node].Edges[0]].Rule.LHS

		for label, fbNode := range fallbackMap {
			if !c.connected[fbNode] {
				continue
			}
			for otherLabel, otherNode := range treeMap {
				if c.connected[otherNode] || otherLabel == label {
					continue
				}
				r := rule.Intern(&rule.Rule{LHS: label, RHS: []symbol.Symbol{withIndex(otherLabel, 1)}})
				edge := hypergraph.NewEdge(r, []hypergraph.NodeID{otherNode})
				edge.Attributes[attrSourceRoot] = rootLabel.String()
				edge.Attributes[attrGlueTreeFallback] = true
				eid := c.g.AddEdge(edge)
				c.g.ConnectEdge(eid, fbNode)
			}
		}
	}
}
