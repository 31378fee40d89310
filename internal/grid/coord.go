package grid

import "fmt"

// Step costs scaled to integers: diagonal ≈ 10·√2.
const (
	CostStraight = 10
	CostDiagonal = 14
)

// Coord is an integer grid position. Y is the vertical axis.
type Coord struct {
	X, Y, Z int
}

func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d,%d)", c.X, c.Y, c.Z)
}

// Add returns c shifted by (dx, dy, dz).
func (c Coord) Add(dx, dy, dz int) Coord {
	return Coord{X: c.X + dx, Y: c.Y + dy, Z: c.Z + dz}
}

// Distance returns the octile distance in the XZ plane plus straight
// vertical cost. It never overestimates the cost of a single step, so it
// serves both as the step cost and as the A* heuristic.
func Distance(a, b Coord) int {
	dx := abs(a.X - b.X)
	dy := abs(a.Y - b.Y)
	dz := abs(a.Z - b.Z)

	greater, lesser := dx, dz
	if dz > dx {
		greater, lesser = dz, dx
	}
	return CostDiagonal*lesser + CostStraight*(greater-lesser) + CostStraight*dy
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
