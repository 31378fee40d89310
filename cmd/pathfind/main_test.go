package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/gridpath/internal/config"
	"github.com/udisondev/gridpath/internal/grid"
	"github.com/udisondev/gridpath/internal/pathfind"
)

func TestFormatPath(t *testing.T) {
	g, err := grid.New(3, 1, 1)
	require.NoError(t, err)

	path := pathfind.FindPath(g, grid.Coord{}, grid.Coord{X: 2})
	assert.Equal(t, "(0,0,0) -> (1,0,0) -> (2,0,0)", formatPath(path))
	assert.Empty(t, formatPath(nil))
}

func TestLoadGridFromScene(t *testing.T) {
	cfg := config.DefaultPathfind()
	cfg.Unwalkable = []config.Point{{1, 1, 1}}

	g, err := loadGrid(t.Context(), cfg)
	require.NoError(t, err)
	assert.Equal(t, 27, g.Volume())
	assert.False(t, g.Cell(1, 1, 1).Walkable())
}
