package grid

import "sync/atomic"

// Cell is one addressable grid location.
// Position and index never change after the grid is built, walkability is
// read and written atomically so a grid can be shared by concurrent searches.
type Cell struct {
	pos      Coord
	index    int
	walkable atomic.Bool
}

// Pos returns the cell coordinate.
func (c *Cell) Pos() Coord {
	return c.pos
}

// Index returns the cell's position in the grid arena, in [0, Volume()).
func (c *Cell) Index() int {
	return c.index
}

// Walkable reports whether the cell can be entered.
func (c *Cell) Walkable() bool {
	return c.walkable.Load()
}

func (c *Cell) String() string {
	return c.pos.String()
}
