package hypergraph

import (
	"github.com/katalvlaran/synforest/rule"
	"github.com/katalvlaran/synforest/symbol"
)

// NodeID identifies a node within a single Hypergraph. InvalidNode marks an
// absent or not-yet-assigned node.
type NodeID int32

// InvalidNode is the sentinel "no node" value, analogous to
// hypergraph_type::invalid in the source.
const InvalidNode NodeID = -1

// EdgeID identifies an edge within a single Hypergraph.
type EdgeID int32

// InvalidEdge is the sentinel "no edge" value.
const InvalidEdge EdgeID = -1

// FeatureVector is a sparse map from feature name to accumulated value.
// Feature functions read and add to it during rescoring.
type FeatureVector map[string]float64

// Add accumulates delta into the named feature (feature scores compose by
// addition in the log-linear model).
func (f FeatureVector) Add(name string, delta float64) {
	f[name] += delta
}

// AttributeVector is a sparse map carrying non-scoring metadata edges pick
// up from composition (source-root, internal-node, glue-tree, ...).
type AttributeVector map[string]interface{}

// Node holds the set of edges terminating at it (its incoming hyper-edges).
type Node struct {
	ID    NodeID
	Edges []EdgeID
}

// Edge is a single hyper-edge: a Rule application with a Head node and an
// ordered list of Tail nodes aligned to the rule's non-terminal RHS
// positions.
type Edge struct {
	ID         EdgeID
	Head       NodeID
	Tails      []NodeID
	Rule       *rule.Rule
	Features   FeatureVector
	Attributes AttributeVector
}

// NewEdge constructs an edge with empty feature/attribute maps and no head
// assigned yet (Head is set by Graph.ConnectEdge or AddEdge).
func NewEdge(r *rule.Rule, tails []NodeID) Edge {
	return Edge{
		Head:       InvalidNode,
		Tails:      tails,
		Rule:       r,
		Features:   make(FeatureVector),
		Attributes: make(AttributeVector),
	}
}

// Graph is a hypergraph: a dense node/edge arena plus a distinguished Goal
// node. Graphs are built by a single composer call and then handed
// single-threaded through the rescore/prune/output pipeline (spec §5); no
// internal locking is needed.
type Graph struct {
	Nodes []Node
	Edges []Edge
	Goal  NodeID
}

// New returns an empty Graph with no Goal assigned.
func New() *Graph {
	return &Graph{Goal: InvalidNode}
}

// Clear resets g to the empty state, retaining backing array capacity.
func (g *Graph) Clear() {
	g.Nodes = g.Nodes[:0]
	g.Edges = g.Edges[:0]
	g.Goal = InvalidNode
}

// AddNode appends a new, edge-less node and returns its id.
func (g *Graph) AddNode() NodeID {
	id := NodeID(len(g.Nodes))
	g.Nodes = append(g.Nodes, Node{ID: id})
	return id
}

// AddEdge appends e, assigns it an id, and returns the stored edge's id.
// The caller must still call ConnectEdge to attach it to its head node's
// incoming-edge list (AddEdge alone does not mutate any Node).
func (g *Graph) AddEdge(e Edge) EdgeID {
	id := EdgeID(len(g.Edges))
	e.ID = id
	g.Edges = append(g.Edges, e)
	return id
}

// ConnectEdge attaches edgeID to head's incoming-edge list and sets the
// edge's Head field, maintaining the invariant that edges[j].head equals
// the id of the node whose Edges list contains j.
func (g *Graph) ConnectEdge(edgeID EdgeID, head NodeID) {
	g.Edges[edgeID].Head = head
	g.Nodes[head].Edges = append(g.Nodes[head].Edges, edgeID)
}

// IsValid reports whether g has a real Goal node. It does not check
// acyclicity; that is established by a successful TopologicalSort.
func (g *Graph) IsValid() bool {
	return g.Goal != InvalidNode && int(g.Goal) < len(g.Nodes)
}

// Swap exchanges the contents of g and other in place.
func (g *Graph) Swap(other *Graph) {
	*g, *other = *other, *g
}

// GoalSymbol returns the LHS symbol of the rule carried by the first edge
// incoming to the goal node, or symbol.Invalid if the goal has no edges.
func (g *Graph) GoalSymbol() symbol.Symbol {
	if !g.IsValid() {
		return symbol.Invalid
	}
	node := g.Nodes[g.Goal]
	if len(node.Edges) == 0 {
		return symbol.Invalid
	}
	return g.Edges[node.Edges[0]].Rule.LHS
}
