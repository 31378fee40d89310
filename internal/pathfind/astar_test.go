package pathfind

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/gridpath/internal/grid"
)

func newGrid(t *testing.T, x, y, z int, blocked ...grid.Coord) *grid.Grid {
	t.Helper()
	g, err := grid.New(x, y, z)
	require.NoError(t, err)
	for _, c := range blocked {
		require.True(t, g.SetWalkable(c.X, c.Y, c.Z, false))
	}
	return g
}

func coords(cells []*grid.Cell) []grid.Coord {
	out := make([]grid.Coord, len(cells))
	for i, c := range cells {
		out[i] = c.Pos()
	}
	return out
}

// requireValidPath checks endpoints and that every step is a resolvable neighbor.
func requireValidPath(t *testing.T, g *grid.Grid, path []*grid.Cell, start, target grid.Coord) {
	t.Helper()
	require.NotEmpty(t, path)
	require.Equal(t, start, path[0].Pos())
	require.Equal(t, target, path[len(path)-1].Pos())
	for i := 1; i < len(path); i++ {
		require.Contains(t, g.Neighbors(path[i-1]), path[i], "step %v->%v", path[i-1], path[i])
	}
}

// bruteForceCost relaxes every edge until nothing changes.
func bruteForceCost(g *grid.Grid, start, target grid.Coord) (int, bool) {
	dist := make([]int, g.Volume())
	for i := range dist {
		dist[i] = math.MaxInt
	}
	dist[g.CellAt(start).Index()] = 0

	for changed := true; changed; {
		changed = false
		for i := range g.Volume() {
			if dist[i] == math.MaxInt {
				continue
			}
			c := g.CellByIndex(i)
			for _, n := range g.Neighbors(c) {
				d := dist[i] + grid.Distance(c.Pos(), n.Pos())
				if d < dist[n.Index()] {
					dist[n.Index()] = d
					changed = true
				}
			}
		}
	}

	d := dist[g.CellAt(target).Index()]
	return d, d != math.MaxInt
}

func TestSearchStraightLine(t *testing.T) {
	g := newGrid(t, 5, 1, 1)

	res, err := Search(g, grid.Coord{}, grid.Coord{X: 4})
	require.NoError(t, err)
	require.True(t, res.Found)
	assert.Equal(t, []grid.Coord{{0, 0, 0}, {1, 0, 0}, {2, 0, 0}, {3, 0, 0}, {4, 0, 0}}, coords(res.Path))
	assert.Equal(t, 40.0, res.Cost)
	assert.Equal(t, 40, PathCost(res.Path))
}

func TestSearchDiagonal(t *testing.T) {
	g := newGrid(t, 4, 1, 4)

	res, err := Search(g, grid.Coord{}, grid.Coord{X: 3, Z: 3})
	require.NoError(t, err)
	require.True(t, res.Found)
	assert.Equal(t, []grid.Coord{{0, 0, 0}, {1, 0, 1}, {2, 0, 2}, {3, 0, 3}}, coords(res.Path))
	assert.Equal(t, 42.0, res.Cost)
}

func TestSearchIdentity(t *testing.T) {
	g := newGrid(t, 3, 3, 3)
	c := grid.Coord{X: 1, Y: 1, Z: 1}

	res, err := Search(g, c, c)
	require.NoError(t, err)
	require.True(t, res.Found)
	assert.Equal(t, []grid.Coord{c}, coords(res.Path))
	assert.Equal(t, 0.0, res.Cost)
	assert.Equal(t, 1, res.Expanded)
}

func TestSearchUnreachable(t *testing.T) {
	var ring []grid.Coord
	for x := 1; x <= 3; x++ {
		for z := 1; z <= 3; z++ {
			if x != 2 || z != 2 {
				ring = append(ring, grid.Coord{X: x, Z: z})
			}
		}
	}
	g := newGrid(t, 5, 1, 5, ring...)

	res, err := Search(g, grid.Coord{}, grid.Coord{X: 2, Z: 2})
	require.NoError(t, err)
	assert.False(t, res.Found)
	assert.Nil(t, res.Path)
	// every walkable cell outside the ring is expanded exactly once
	assert.Equal(t, 16, res.Expanded)

	assert.Nil(t, FindPath(g, grid.Coord{}, grid.Coord{X: 2, Z: 2}))
}

func TestSearchUnwalkableTarget(t *testing.T) {
	g := newGrid(t, 3, 1, 3, grid.Coord{X: 2, Z: 2})

	res, err := Search(g, grid.Coord{}, grid.Coord{X: 2, Z: 2})
	require.NoError(t, err)
	assert.False(t, res.Found)
}

func TestSearchErrors(t *testing.T) {
	_, err := Search(nil, grid.Coord{}, grid.Coord{})
	require.ErrorIs(t, err, ErrNoGrid)
	assert.Nil(t, FindPath(nil, grid.Coord{}, grid.Coord{}))

	g := newGrid(t, 2, 1, 2)
	_, err = Search(g, grid.Coord{X: -1}, grid.Coord{})
	require.ErrorIs(t, err, ErrOutOfBounds)
	_, err = Search(g, grid.Coord{}, grid.Coord{Z: 2})
	require.ErrorIs(t, err, ErrOutOfBounds)
	assert.Nil(t, FindPath(g, grid.Coord{}, grid.Coord{Z: 2}))
}

func TestSearchCornerCutting(t *testing.T) {
	g := newGrid(t, 3, 1, 3, grid.Coord{X: 1})

	res, err := Search(g, grid.Coord{}, grid.Coord{X: 2})
	require.NoError(t, err)
	require.True(t, res.Found)
	requireValidPath(t, g, res.Path, grid.Coord{}, grid.Coord{X: 2})
	assert.Equal(t, 40.0, res.Cost)

	for i := 1; i < len(res.Path); i++ {
		a, b := res.Path[i-1].Pos(), res.Path[i].Pos()
		dx, dz := b.X-a.X, b.Z-a.Z
		if dx != 0 && dz != 0 {
			assert.True(t, g.Cell(a.X+dx, a.Y, a.Z).Walkable(), "corner cut at %v->%v", a, b)
			assert.True(t, g.Cell(a.X, a.Y, a.Z+dz).Walkable(), "corner cut at %v->%v", a, b)
		}
	}
}

func TestSearchVertical(t *testing.T) {
	g := newGrid(t, 3, 3, 3)

	res, err := Search(g, grid.Coord{}, grid.Coord{X: 2, Y: 2, Z: 2})
	require.NoError(t, err)
	require.True(t, res.Found)
	requireValidPath(t, g, res.Path, grid.Coord{}, grid.Coord{X: 2, Y: 2, Z: 2})
	assert.Equal(t, 48.0, res.Cost)
}

func TestSearchOptimalAgainstBruteForce(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	shapes := [][3]int{{4, 1, 4}, {5, 1, 3}, {3, 3, 3}, {4, 2, 3}}

	for _, shape := range shapes {
		for range 40 {
			g := newGrid(t, shape[0], shape[1], shape[2])
			for i := range g.Volume() {
				if rng.IntN(100) < 30 {
					p := g.CellByIndex(i).Pos()
					g.SetWalkable(p.X, p.Y, p.Z, false)
				}
			}
			start := g.CellByIndex(rng.IntN(g.Volume())).Pos()
			target := g.CellByIndex(rng.IntN(g.Volume())).Pos()

			want, reachable := bruteForceCost(g, start, target)
			res, err := Search(g, start, target)
			require.NoError(t, err)
			require.Equal(t, reachable, res.Found, "reachability %v->%v on %v", start, target, shape)
			if !reachable {
				continue
			}
			requireValidPath(t, g, res.Path, start, target)
			require.Equal(t, want, PathCost(res.Path), "cost %v->%v on %v", start, target, shape)
			require.Equal(t, float64(want), res.Cost)
		}
	}
}

func TestSearchDeterministic(t *testing.T) {
	g := newGrid(t, 8, 1, 8,
		grid.Coord{X: 3, Z: 2}, grid.Coord{X: 3, Z: 3}, grid.Coord{X: 3, Z: 4}, grid.Coord{X: 5, Z: 5})
	start, target := grid.Coord{X: 0, Z: 3}, grid.Coord{X: 7, Z: 3}

	first, err := Search(g, start, target)
	require.NoError(t, err)
	require.True(t, first.Found)

	// unrelated searches on the same grid must not leak state
	_, err = Search(g, grid.Coord{X: 7, Z: 7}, grid.Coord{})
	require.NoError(t, err)

	for range 10 {
		again, err := Search(g, start, target)
		require.NoError(t, err)
		assert.Equal(t, coords(first.Path), coords(again.Path))
		assert.Equal(t, first.Expanded, again.Expanded)
	}
}

func TestFindPathReflectsWalkabilityChanges(t *testing.T) {
	g := newGrid(t, 3, 1, 1)

	require.Len(t, FindPath(g, grid.Coord{}, grid.Coord{X: 2}), 3)

	g.SetWalkable(1, 0, 0, false)
	assert.Nil(t, FindPath(g, grid.Coord{}, grid.Coord{X: 2}))

	g.SetWalkable(1, 0, 0, true)
	assert.Len(t, FindPath(g, grid.Coord{}, grid.Coord{X: 2}), 3)
}
