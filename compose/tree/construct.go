package tree

import (
	"fmt"

	"github.com/cnf/structhash"

	"github.com/katalvlaran/synforest/hypergraph"
	"github.com/katalvlaran/synforest/rule"
	"github.com/katalvlaran/synforest/symbol"
)

const (
	attrInternalNode     = "internal-node"
	attrSourceRoot       = "source-root"
	attrTreeFallback     = "tree-fallback"
	attrGlueTree         = "glue-tree"
	attrGlueTreeFallback = "glue-tree-fallback"
	attrFrontierSource   = "frontier-source"
	attrFrontierTarget   = "frontier-target"
)

// withIndex returns the "[CAT,idx]" positional form of a non-terminal
// category symbol, matching compose/phrase's RHS convention.
func withIndex(category symbol.Symbol, idx int) symbol.Symbol {
	return symbol.Intern(fmt.Sprintf("[%s,%d]", stripBrackets(category), idx))
}

func stripBrackets(s symbol.Symbol) string {
	text := s.String()
	if len(text) >= 2 && text[0] == '[' && text[len(text)-1] == ']' {
		return text[1 : len(text)-1]
	}
	return text
}

// buildState carries the per-apply_rule-invocation bookkeeping
// construct_graph threads through its recursion: the non-terminal
// position counter, the terminal-sharing map (reset per call, a
// simplification of the source's global/local split), and whether this
// match came from a fallback-tagged rule.
type buildState struct {
	frontier   []hypergraph.NodeID
	ntPos      int
	relPos     int
	terminals  map[string]hypergraph.EdgeID
	isFallback bool
}

// constructGraph recursively builds the output fragment for tr. root, if
// not InvalidNode, is the already-allocated output node the resulting
// edge must attach to (the top-level call from applyRule); otherwise an
// internal node is shared via c.internal if one was already built with
// the same (tails, rhs, label) shape, and a tail-less terminal-position
// node via st.terminals, keyed by (relative position, rhs, label).
func (c *composer) constructGraph(tr *rule.TreeRule, root hypergraph.NodeID, st *buildState) (hypergraph.EdgeID, error) {
	var rhs []symbol.Symbol
	var tails []hypergraph.NodeID

	for _, ant := range tr.Antecedents {
		if ant.Label.IsNonTerminal() {
			if ant.IsFrontier() {
				idx := ant.Label.NonTerminalIndex()
				pos := idx - 1
				if idx <= 0 {
					pos = st.ntPos
					st.ntPos++
				}
				if pos < 0 || pos >= len(st.frontier) {
					return hypergraph.InvalidEdge, &nonTerminalIndexError{index: idx, size: len(st.frontier), rule: tr}
				}

				inputNode := st.frontier[pos]
				outNode := c.bindNode(inputNode, ant.Label.NonTerminal())
				if st.isFallback {
					c.markFallback(inputNode, ant.Label.NonTerminal(), outNode)
				}
				tails = append(tails, outNode)
			} else {
				childEdge, err := c.constructGraph(ant, hypergraph.InvalidNode, st)
				if err != nil {
					return hypergraph.InvalidEdge, err
				}
				tails = append(tails, c.g.Edges[childEdge].Head)
			}
			rhs = append(rhs, withIndex(ant.Label.NonTerminal(), len(tails)))
		} else {
			rhs = append(rhs, ant.Label)
		}
	}

	r := rule.Intern(&rule.Rule{LHS: tr.Label.NonTerminal(), RHS: rhs})

	if root != hypergraph.InvalidNode {
		edgeID := c.g.AddEdge(hypergraph.NewEdge(r, tails))
		c.g.ConnectEdge(edgeID, root)
		c.markConnected(tails)
		return edgeID, nil
	}

	if len(tails) > 0 {
		key := shareKey(tails, rhs, tr.Label)
		if edgeID, ok := c.internal[key]; ok {
			return edgeID, nil
		}
		edgeID := c.g.AddEdge(hypergraph.NewEdge(r, tails))
		newRoot := c.g.AddNode()
		c.g.ConnectEdge(edgeID, newRoot)
		c.internal[key] = edgeID
		c.markConnected(tails)
		return edgeID, nil
	}

	key := shareTerminalKey(st.relPos, rhs, tr.Label)
	st.relPos++
	if edgeID, ok := st.terminals[key]; ok {
		return edgeID, nil
	}
	edgeID := c.g.AddEdge(hypergraph.NewEdge(r, nil))
	newRoot := c.g.AddNode()
	c.g.ConnectEdge(edgeID, newRoot)
	st.terminals[key] = edgeID
	return edgeID, nil
}

func (c *composer) markConnected(tails []hypergraph.NodeID) {
	for _, t := range tails {
		c.connected[t] = true
	}
}

func shareKey(tails []hypergraph.NodeID, rhs []symbol.Symbol, label symbol.Symbol) string {
	h, err := structhash.Hash(struct {
		Tails []hypergraph.NodeID
		RHS   []symbol.Symbol
		Label symbol.Symbol
	}{tails, rhs, label}, 1)
	if err != nil {
		panic(fmt.Sprintf("compose/tree: hashing internal-node share key: %v", err))
	}
	return h
}

func shareTerminalKey(relPos int, rhs []symbol.Symbol, label symbol.Symbol) string {
	h, err := structhash.Hash(struct {
		RelPos int
		RHS    []symbol.Symbol
		Label  symbol.Symbol
	}{relPos, rhs, label}, 1)
	if err != nil {
		panic(fmt.Sprintf("compose/tree: hashing terminal share key: %v", err))
	}
	return h
}
