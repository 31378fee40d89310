// Package grid holds the voxel grid used by path search and resolves which
// cells are reachable from a cell in one step.
package grid

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidSize is returned when a grid dimension is not positive.
var ErrInvalidSize = errors.New("invalid grid size")

// Grid is a dense 3D array of cells addressed by integer coordinate.
// When MaxY is 1 the grid is planar and only XZ neighbors are considered.
type Grid struct {
	maxX, maxY, maxZ int
	vertical         bool
	cells            []Cell
}

// New builds a grid with every cell in [0,maxX)×[0,maxY)×[0,maxZ) walkable.
func New(maxX, maxY, maxZ int) (*Grid, error) {
	if maxX <= 0 || maxY <= 0 || maxZ <= 0 {
		return nil, fmt.Errorf("%w: %dx%dx%d", ErrInvalidSize, maxX, maxY, maxZ)
	}

	g := &Grid{
		maxX:     maxX,
		maxY:     maxY,
		maxZ:     maxZ,
		vertical: maxY > 1,
		cells:    make([]Cell, maxX*maxY*maxZ),
	}

	for x := range maxX {
		for y := range maxY {
			for z := range maxZ {
				i := g.index(x, y, z)
				c := &g.cells[i]
				c.pos = Coord{X: x, Y: y, Z: z}
				c.index = i
				c.walkable.Store(true)
			}
		}
	}
	return g, nil
}

// Size returns the grid bounds.
func (g *Grid) Size() (maxX, maxY, maxZ int) {
	return g.maxX, g.maxY, g.maxZ
}

// Vertical reports whether neighbor resolution searches along Y.
func (g *Grid) Vertical() bool {
	return g.vertical
}

// Volume returns the total number of cells.
func (g *Grid) Volume() int {
	return len(g.cells)
}

// InBounds reports whether (x, y, z) addresses a cell.
func (g *Grid) InBounds(x, y, z int) bool {
	return x >= 0 && x < g.maxX &&
		y >= 0 && y < g.maxY &&
		z >= 0 && z < g.maxZ
}

// Cell returns the cell at (x, y, z), or nil when out of bounds.
func (g *Grid) Cell(x, y, z int) *Cell {
	if !g.InBounds(x, y, z) {
		return nil
	}
	return &g.cells[g.index(x, y, z)]
}

// CellAt returns the cell at c, or nil when out of bounds.
func (g *Grid) CellAt(c Coord) *Cell {
	return g.Cell(c.X, c.Y, c.Z)
}

// CellNearest rounds a continuous position to the nearest cell.
func (g *Grid) CellNearest(x, y, z float64) *Cell {
	return g.Cell(int(math.Round(x)), int(math.Round(y)), int(math.Round(z)))
}

// CellByIndex returns the cell with arena index i, or nil when out of range.
func (g *Grid) CellByIndex(i int) *Cell {
	if i < 0 || i >= len(g.cells) {
		return nil
	}
	return &g.cells[i]
}

// SetWalkable marks the cell at (x, y, z). Returns false when out of bounds.
func (g *Grid) SetWalkable(x, y, z int, walkable bool) bool {
	c := g.Cell(x, y, z)
	if c == nil {
		return false
	}
	c.walkable.Store(walkable)
	return true
}

// Blocked returns the coordinates of all unwalkable cells in x, y, z order.
func (g *Grid) Blocked() []Coord {
	var blocked []Coord
	for i := range g.cells {
		if !g.cells[i].Walkable() {
			blocked = append(blocked, g.cells[i].pos)
		}
	}
	return blocked
}

func (g *Grid) index(x, y, z int) int {
	return (x*g.maxY+y)*g.maxZ + z
}

// walkableCell returns the cell at (x, y, z) only if it exists and is walkable.
func (g *Grid) walkableCell(x, y, z int) *Cell {
	c := g.Cell(x, y, z)
	if c == nil || !c.Walkable() {
		return nil
	}
	return c
}
