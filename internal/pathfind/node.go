package pathfind

import "github.com/udisondev/gridpath/internal/grid"

// node is the per-search state for one cell. Nodes live in an arena owned by
// a single search, so cells shared between searches are never written.
type node struct {
	cell     *grid.Cell
	gCost    float64 // cost from start along the best known path
	hCost    float64 // estimate to target
	cameFrom *node
	index    int // heap slot, -1 when not queued
	closed   bool
}

func (n *node) fCost() float64 {
	return n.gCost + n.hCost
}

// Less orders by fCost, then hCost, lower first.
func (n *node) Less(o *node) bool {
	f, of := n.fCost(), o.fCost()
	if f != of {
		return f < of
	}
	return n.hCost < o.hCost
}

func (n *node) HeapIndex() int     { return n.index }
func (n *node) SetHeapIndex(i int) { n.index = i }

// arena hands out nodes indexed by cell, creating them on first use.
type arena struct {
	nodes []node
}

func newArena(g *grid.Grid) *arena {
	return &arena{nodes: make([]node, g.Volume())}
}

func (a *arena) get(c *grid.Cell) *node {
	n := &a.nodes[c.Index()]
	if n.cell == nil {
		n.cell = c
		n.index = -1
	}
	return n
}
