package hypergraph

import "errors"

// ErrNilGraph guards against a nil *Graph argument, following the
// teacher's ErrGraphNil convention (dfs.ErrGraphNil).
var ErrNilGraph = errors.New("hypergraph: graph is nil")

// color tracks DFS visitation state during TopologicalSort, matching the
// three-color scheme of dfs.TopologicalSort (White/Gray/Black) and of
// cicada's sort.hpp (white/gray/black).
type color uint8

const (
	white color = iota
	gray
	black
)

// EdgeFilter reports whether an edge should be treated as absent (dead)
// during a topological sort pass. A nil filter keeps every edge.
type EdgeFilter func(Edge) bool

// frame is one level of the explicit DFS stack: resuming node, and the
// (edge, tail) cursor within it to continue from. Mirrors
// cicada::TopologicallySort::dfs_type; kept iterative (not recursive) so a
// deep derivation forest cannot overflow the goroutine stack.
type frame struct {
	node    NodeID
	posEdge int
	posTail int
}

// TopologicalSort renumbers g bottom-up from Goal: node ids increase from
// leaves to Goal, Goal becomes the last node, edge ids are renumbered
// consistently, and any edge for which filter reports true is dropped as
// if it never existed. If any node is left with zero incoming edges after
// filtering, every edge that has it as a tail is filtered out in turn and
// the sort is re-run (cascaded pruning) until the result is stable.
//
// Returns ErrNilGraph for a nil graph, an empty *Graph for a graph with no
// Goal or whose Goal is left with no incoming edges, and ErrCycleDetected
// if Goal's subgraph contains a cycle.
func TopologicalSort(g *Graph, filter EdgeFilter) (*Graph, error) {
	if g == nil {
		return nil, ErrNilGraph
	}
	if filter == nil {
		filter = func(Edge) bool { return false }
	}
	return topoSortOnce(g, filter)
}

func topoSortOnce(g *Graph, filter EdgeFilter) (*Graph, error) {
	if !g.IsValid() {
		return New(), nil
	}

	relocNode := make([]int, len(g.Nodes))
	relocEdge := make([]int, len(g.Edges))
	for i := range relocNode {
		relocNode[i] = -1
	}
	for i := range relocEdge {
		relocEdge[i] = -1
	}
	colors := make([]color, len(g.Nodes))

	stack := []frame{{node: g.Goal}}
	nodeCount := 0
	edgeCount := 0

	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		nodeID := top.node
		posEdge := top.posEdge
		posTail := top.posTail
		currEdges := g.Nodes[nodeID].Edges

		for posEdge != len(currEdges) {
			edge := &g.Edges[currEdges[posEdge]]

			if posTail == len(edge.Tails) || filter(*edge) {
				posEdge++
				posTail = 0
				continue
			}

			tailNode := edge.Tails[posTail]
			switch colors[tailNode] {
			case white:
				posTail++
				stack = append(stack, frame{nodeID, posEdge, posTail})

				nodeID = tailNode
				currEdges = g.Nodes[nodeID].Edges
				colors[nodeID] = gray
				posEdge = 0
				posTail = 0
			case black:
				posTail++
			case gray:
				return nil, ErrCycleDetected
			}
		}

		for _, eid := range g.Nodes[nodeID].Edges {
			if !filter(g.Edges[eid]) {
				relocEdge[eid] = edgeCount
				edgeCount++
			}
		}
		colors[nodeID] = black
		relocNode[nodeID] = nodeCount
		nodeCount++
	}

	sorted := remap(g, relocNode, relocEdge, nodeCount, edgeCount)

	if empty := emptyNodes(sorted); len(empty) > 0 {
		if empty[sorted.Goal] {
			return New(), nil
		}
		return topoSortOnce(sorted, func(e Edge) bool {
			for _, t := range e.Tails {
				if empty[t] {
					return true
				}
			}
			return false
		})
	}

	return sorted, nil
}

// remap builds the renumbered graph from a completed DFS pass.
func remap(g *Graph, relocNode, relocEdge []int, nodeCount, edgeCount int) *Graph {
	sorted := New()
	sorted.Edges = make([]Edge, edgeCount)
	for i, r := range relocEdge {
		if r < 0 {
			continue
		}
		e := g.Edges[i]
		e.ID = EdgeID(r)
		e.Head = NodeID(relocNode[e.Head])
		tails := make([]NodeID, len(e.Tails))
		for k, t := range e.Tails {
			tails[k] = NodeID(relocNode[t])
		}
		e.Tails = tails
		sorted.Edges[r] = e
	}

	relocMapNode := make([]NodeID, nodeCount)
	for i, r := range relocNode {
		if r >= 0 {
			relocMapNode[r] = NodeID(i)
		}
	}

	sorted.Nodes = make([]Node, nodeCount)
	for i := 0; i < nodeCount; i++ {
		old := g.Nodes[relocMapNode[i]]
		n := Node{ID: NodeID(i)}
		for _, eid := range old.Edges {
			if relocEdge[eid] >= 0 {
				n.Edges = append(n.Edges, EdgeID(relocEdge[eid]))
			}
		}
		sorted.Nodes[i] = n
	}

	if nodeCount > 0 {
		sorted.Goal = NodeID(nodeCount - 1)
	}

	return sorted
}

// emptyNodes returns the set of nodes left with no incoming edges, which
// triggers the cascaded re-run.
func emptyNodes(g *Graph) map[NodeID]bool {
	var empty map[NodeID]bool
	for _, n := range g.Nodes {
		if len(n.Edges) == 0 {
			if empty == nil {
				empty = make(map[NodeID]bool)
			}
			empty[n.ID] = true
		}
	}
	return empty
}
