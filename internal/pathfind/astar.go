// Package pathfind runs A* searches over a grid.Grid.
//
// A search is synchronous and runs to completion. All scratch state lives in
// the search itself, so any number of searches may share one grid.
package pathfind

import (
	"errors"
	"fmt"

	"github.com/udisondev/gridpath/internal/grid"
	"github.com/udisondev/gridpath/internal/heap"
)

var (
	// ErrNoGrid is returned when a search is requested without a grid.
	ErrNoGrid = errors.New("no grid")
	// ErrOutOfBounds is returned when start or target lies outside the grid.
	ErrOutOfBounds = errors.New("coordinate out of bounds")
)

// Result is the outcome of a search.
// Path runs from start to target, both inclusive. It is nil when the target
// is unreachable and holds only the start when start equals target.
type Result struct {
	Path     []*grid.Cell
	Cost     float64
	Expanded int
	Found    bool
}

// FindPath returns the cheapest path from start to target, or nil when there
// is no grid, a coordinate is out of bounds, or the target is unreachable.
func FindPath(g *grid.Grid, start, target grid.Coord) []*grid.Cell {
	res, err := Search(g, start, target)
	if err != nil {
		return nil
	}
	return res.Path
}

// Search runs A* from start to target.
// An unreachable target is not an error: Found is false and Path is nil.
func Search(g *grid.Grid, start, target grid.Coord) (Result, error) {
	if g == nil {
		return Result{}, ErrNoGrid
	}
	startCell := g.CellAt(start)
	if startCell == nil {
		return Result{}, fmt.Errorf("start %v: %w", start, ErrOutOfBounds)
	}
	targetCell := g.CellAt(target)
	if targetCell == nil {
		return Result{}, fmt.Errorf("target %v: %w", target, ErrOutOfBounds)
	}

	nodes := newArena(g)
	open := heap.New[*node](g.Volume())

	first := nodes.get(startCell)
	first.hCost = float64(grid.Distance(start, target))
	if err := open.Insert(first); err != nil {
		return Result{}, fmt.Errorf("queueing start: %w", err)
	}

	neighbors := make([]*grid.Cell, 0, 26)
	expanded := 0

	for open.Count() > 0 {
		current, err := open.ExtractBest()
		if err != nil {
			return Result{}, fmt.Errorf("extracting best node: %w", err)
		}
		current.closed = true
		expanded++

		if current.cell == targetCell {
			return Result{
				Path:     retrace(current),
				Cost:     current.gCost,
				Expanded: expanded,
				Found:    true,
			}, nil
		}

		neighbors = g.AppendNeighbors(neighbors[:0], current.cell)
		for _, c := range neighbors {
			n := nodes.get(c)
			if n.closed {
				continue
			}

			cost := current.gCost + float64(grid.Distance(current.cell.Pos(), c.Pos()))
			queued := open.Contains(n)
			if queued && cost >= n.gCost {
				continue
			}

			n.gCost = cost
			n.hCost = float64(grid.Distance(c.Pos(), target))
			n.cameFrom = current

			if queued {
				open.UpdateItem(n)
				continue
			}
			if err := open.Insert(n); err != nil {
				return Result{}, fmt.Errorf("queueing %v: %w", c.Pos(), err)
			}
		}
	}

	return Result{Expanded: expanded}, nil
}

// retrace follows back-pointers from the target and returns the path in
// start to target order.
func retrace(target *node) []*grid.Cell {
	length := 0
	for n := target; n != nil; n = n.cameFrom {
		length++
	}

	path := make([]*grid.Cell, length)
	for n := target; n != nil; n = n.cameFrom {
		length--
		path[length] = n.cell
	}
	return path
}

// PathCost sums the step cost of consecutive cells in path.
func PathCost(path []*grid.Cell) int {
	total := 0
	for i := 1; i < len(path); i++ {
		total += grid.Distance(path[i-1].Pos(), path[i].Pos())
	}
	return total
}
