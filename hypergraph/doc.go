// Package hypergraph implements the core data model: nodes, edges, rules,
// goal, and the topological-sort/validity machinery every composer,
// rescorer, and pruner in this module builds on.
//
// A Hypergraph is a directed acyclic hypergraph: each Edge has one Head
// node and an ordered list of Tail nodes, and a Node records the ids of
// the edges that terminate at it (its incoming edges). A graph is valid
// iff Goal names a real node and the subgraph reachable from Goal is
// acyclic.
//
// Node and edge ids are dense integers assigned in construction order;
// TopologicalSort renumbers both so that for every edge, Head's id is
// greater than every Tail's id, and Goal becomes the last node — the
// invariant every downstream stage (rescoring, pruning, output) relies on.
package hypergraph
