package cky

import (
	"fmt"

	"github.com/katalvlaran/synforest/hypergraph"
	"github.com/katalvlaran/synforest/symbol"
)

// activeItem is a partial match in progress: node is the Transducer's
// trie position after consuming everything aligned to [first, last) so
// far (tracked implicitly by which cell holds the item), tails are the
// output nodes bound to each non-terminal consumed on the way, and
// trans identifies which grammar (by index into the Parse call's
// grammars slice) node belongs to.
type activeItem struct {
	trans int
	node  int
	tails []hypergraph.NodeID
}

// passiveKey identifies a completed category at a span: the category
// itself plus its unary-closure re-entry level (spec.md §4.5's "node
// keyed by (lhs, unary_level)").
type passiveKey struct {
	lhs   symbol.Symbol
	level int
}

// canonicalLevel is the shared level every unique-goal passive collapses
// onto, overriding whatever real closure level produced it.
const canonicalLevel = -1

// cell is one chart entry spanning [first, last).
type cell struct {
	actives    []activeItem
	activeSeen map[string]bool
	passives   map[passiveKey]hypergraph.NodeID
	// addedThisRound, once seeded by Complete and advanced by each
	// closure round, holds the (lhs, level) pairs admitted most recently
	// -- the frontier the next closure round expands from.
	addedThisRound []passiveKey
}

func newCell() cell {
	return cell{
		activeSeen: make(map[string]bool),
		passives:   make(map[passiveKey]hypergraph.NodeID),
	}
}

func activeKey(a activeItem) string {
	return fmt.Sprintf("%d:%d:%v", a.trans, a.node, a.tails)
}

func (c *cell) addActive(a activeItem) {
	k := activeKey(a)
	if c.activeSeen[k] {
		return
	}
	c.activeSeen[k] = true
	c.actives = append(c.actives, a)
}
