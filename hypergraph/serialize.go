package hypergraph

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/katalvlaran/synforest/rule"
	"github.com/katalvlaran/synforest/symbol"
)

// Format renders g in the line-oriented internal serialization spec.md
// §6 describes ("<graph> itself is the internal serialization,
// round-trippable by the parser"): a header line giving the node count
// and goal id, followed by one line per edge giving its head, tails,
// rule LHS/RHS and sparse features, edges listed via SortEdges for a
// deterministic byte-for-byte result independent of build order.
//
// Every edge line always has exactly four " ||| "-delimited sections
// (head+tails, LHS, RHS, features), even when tails or features is
// empty, so Parse can always split on the same literal separator instead
// of guessing field count from content.
func Format(g *Graph) string {
	var b strings.Builder
	fmt.Fprintf(&b, "nodes %d goal %d\n", len(g.Nodes), int(g.Goal))

	for _, eid := range SortEdges(g) {
		e := &g.Edges[eid]

		headTails := make([]string, 0, len(e.Tails)+2)
		headTails = append(headTails, strconv.Itoa(int(e.Head)), ":")
		for _, t := range e.Tails {
			headTails = append(headTails, strconv.Itoa(int(t)))
		}

		rhsTokens := make([]string, len(e.Rule.RHS))
		for i, s := range e.Rule.RHS {
			rhsTokens[i] = s.String()
		}

		names := make([]string, 0, len(e.Features))
		for name := range e.Features {
			names = append(names, name)
		}
		sort.Strings(names)
		featureTokens := make([]string, len(names))
		for i, name := range names {
			featureTokens[i] = name + "=" + strconv.FormatFloat(e.Features[name], 'g', -1, 64)
		}

		sections := []string{
			strings.Join(headTails, " "),
			e.Rule.LHS.String(),
			strings.Join(rhsTokens, " "),
			strings.Join(featureTokens, " "),
		}
		b.WriteString("edge ")
		b.WriteString(strings.Join(sections, " ||| "))
		b.WriteByte('\n')
	}
	return b.String()
}

// Parse reads back the format Format produces. It reconstructs nodes by
// id (any node ids left with no edges from the text, e.g. leaves
// implicit in the header count, are created empty) and reattaches every
// edge to its declared head.
func Parse(text string) (*Graph, error) {
	lines := strings.Split(strings.TrimRight(text, "\n"), "\n")
	if len(lines) == 0 || lines[0] == "" {
		return New(), nil
	}

	header := strings.Fields(lines[0])
	if len(header) != 4 || header[0] != "nodes" || header[2] != "goal" {
		return nil, ErrParseFormat
	}
	n, err := strconv.Atoi(header[1])
	if err != nil {
		return nil, ErrParseFormat
	}
	goal, err := strconv.Atoi(header[3])
	if err != nil {
		return nil, ErrParseFormat
	}

	g := New()
	g.Nodes = make([]Node, n)
	for i := range g.Nodes {
		g.Nodes[i].ID = NodeID(i)
	}
	g.Goal = NodeID(goal)

	for _, line := range lines[1:] {
		if line == "" {
			continue
		}
		if !strings.HasPrefix(line, "edge ") {
			return nil, ErrParseFormat
		}
		fields := strings.Split(line[len("edge "):], " ||| ")
		if len(fields) != 4 {
			return nil, ErrParseFormat
		}

		headFields := strings.Fields(fields[0])
		if len(headFields) < 2 || headFields[1] != ":" {
			return nil, ErrParseFormat
		}
		head, err := strconv.Atoi(headFields[0])
		if err != nil {
			return nil, ErrParseFormat
		}
		var tails []NodeID
		for _, tok := range headFields[2:] {
			t, err := strconv.Atoi(tok)
			if err != nil {
				return nil, ErrParseFormat
			}
			tails = append(tails, NodeID(t))
		}

		lhs := symbol.Intern(strings.TrimSpace(fields[1]))
		var rhs []symbol.Symbol
		for _, tok := range strings.Fields(fields[2]) {
			rhs = append(rhs, symbol.Intern(tok))
		}

		r := rule.Intern(&rule.Rule{LHS: lhs, RHS: rhs})
		e := NewEdge(r, tails)
		for _, tok := range strings.Fields(fields[3]) {
			kv := strings.SplitN(tok, "=", 2)
			if len(kv) != 2 {
				continue
			}
			val, err := strconv.ParseFloat(kv[1], 64)
			if err != nil {
				continue
			}
			e.Features.Add(kv[0], val)
		}

		eid := g.AddEdge(e)
		g.ConnectEdge(eid, NodeID(head))
	}

	return g, nil
}
