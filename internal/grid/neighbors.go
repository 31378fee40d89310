package grid

// Neighbors returns the cells reachable from c in one step.
func (g *Grid) Neighbors(c *Cell) []*Cell {
	return g.AppendNeighbors(make([]*Cell, 0, 26), c)
}

// AppendNeighbors appends the cells reachable from c in one step to dst.
// Offsets are visited in x, y, z order from -1 to 1, so the result is
// deterministic for a given grid state.
func (g *Grid) AppendNeighbors(dst []*Cell, c *Cell) []*Cell {
	base := len(dst)
	minY, maxY := 0, 0
	if g.vertical {
		minY, maxY = -1, 1
	}

	for dx := -1; dx <= 1; dx++ {
		for dy := minY; dy <= maxY; dy++ {
			for dz := -1; dz <= 1; dz++ {
				if dx == 0 && dy == 0 && dz == 0 {
					continue
				}
				n := g.resolve(c, c.pos.Add(dx, dy, dz))
				if n == nil || n == c || contains(dst[base:], n) {
					continue
				}
				dst = append(dst, n)
			}
		}
	}
	return dst
}

// resolve finds the walkable cell for a candidate position. On a vertical
// grid a blocked or missing candidate is retried one step down, then one
// step up, which lets a path climb or drop across a one-unit ledge.
func (g *Grid) resolve(cur *Cell, p Coord) *Cell {
	n := g.walkableCell(p.X, p.Y, p.Z)
	if n == nil && g.vertical {
		n = g.walkableCell(p.X, p.Y-1, p.Z)
		if n == nil {
			n = g.walkableCell(p.X, p.Y+1, p.Z)
		}
	}
	if n == nil || !g.validStep(cur, n) {
		return nil
	}
	return n
}

// validStep rejects steps that would cut past a blocked or missing cell.
// Offsets are measured from the current cell to the resolved cell.
func (g *Grid) validStep(cur, n *Cell) bool {
	c := cur.pos
	dx := n.pos.X - c.X
	dy := n.pos.Y - c.Y
	dz := n.pos.Z - c.Z
	diagonal := abs(dx) == 1 && abs(dz) == 1

	if diagonal {
		if g.walkableCell(c.X+dx, c.Y, c.Z) == nil || g.walkableCell(c.X, c.Y, c.Z+dz) == nil {
			return false
		}
	}

	if dy == 0 {
		return true
	}

	switch {
	case diagonal:
		// cell underneath the ascent
		return g.walkableCell(c.X+dx, c.Y, c.Z+dz) != nil
	case abs(dx) == 1 || abs(dz) == 1:
		return g.walkableCell(c.X+dx, c.Y, c.Z) != nil && g.walkableCell(c.X, c.Y, c.Z+dz) != nil
	}
	return true
}

func contains(cells []*Cell, c *Cell) bool {
	for _, x := range cells {
		if x == c {
			return true
		}
	}
	return false
}
