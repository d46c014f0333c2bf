package algo_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/elektrokombinacija/mapf-grid-planner/internal/algo"
	"github.com/elektrokombinacija/mapf-grid-planner/internal/core"
)

func mustGrid(t *testing.T, height, width int) *core.Grid {
	t.Helper()
	grid, err := core.NewGrid(height, width, 1.0)
	require.NoError(t, err)
	return grid
}

func TestStaticAStar_StartEqualsGoal(t *testing.T) {
	grid := mustGrid(t, 5, 5)
	start := core.Cell{Row: 0, Col: 0}

	path := algo.StaticAStar(grid, start, start, algo.ManhattanHeuristic, true)
	require.Equal(t, core.Path{start}, path)
}

func TestStaticAStar_StraightLine(t *testing.T) {
	grid := mustGrid(t, 5, 5)

	path := algo.StaticAStar(grid, core.Cell{Row: 0, Col: 0}, core.Cell{Row: 0, Col: 2}, algo.ManhattanHeuristic, true)
	require.Equal(t, core.Path{
		{Row: 0, Col: 0}, {Row: 0, Col: 1}, {Row: 0, Col: 2},
	}, path)
}

func TestStaticAStar_OneTurn(t *testing.T) {
	grid := mustGrid(t, 5, 5)

	path := algo.StaticAStar(grid, core.Cell{Row: 0, Col: 0}, core.Cell{Row: 2, Col: 2}, algo.ManhattanHeuristic, true)
	require.Len(t, path, 5)
	require.Equal(t, core.Cell{Row: 0, Col: 0}, path[0])
	require.Equal(t, core.Cell{Row: 2, Col: 2}, path[len(path)-1])
	requireValidStaticPath(t, grid, path)
}

func TestStaticAStar_AvoidsObstacle(t *testing.T) {
	grid := mustGrid(t, 5, 5)
	grid.SetStatus(core.Cell{Row: 1, Col: 1}, core.PermanentObstacle)

	path := algo.StaticAStar(grid, core.Cell{Row: 0, Col: 0}, core.Cell{Row: 2, Col: 2}, algo.ManhattanHeuristic, true)
	require.Len(t, path, 5)
	for _, c := range path {
		require.NotEqual(t, core.Cell{Row: 1, Col: 1}, c)
	}
}

func TestStaticAStar_GoalOnObstacleIsUnreachable(t *testing.T) {
	grid := mustGrid(t, 5, 5)
	goal := core.Cell{Row: 2, Col: 2}
	grid.SetStatus(goal, core.PermanentObstacle)

	path := algo.StaticAStar(grid, core.Cell{Row: 0, Col: 0}, goal, algo.ManhattanHeuristic, true)
	require.Nil(t, path)
}

func TestStaticAStar_StartOnObstacleIsUnreachable(t *testing.T) {
	grid := mustGrid(t, 5, 5)
	start := core.Cell{Row: 0, Col: 0}
	grid.SetStatus(start, core.PermanentObstacle)

	path := algo.StaticAStar(grid, start, core.Cell{Row: 2, Col: 2}, algo.ManhattanHeuristic, true)
	require.Nil(t, path)
}

func TestStaticAStar_WalledOffGoalIsUnreachable(t *testing.T) {
	grid := mustGrid(t, 3, 3)
	goal := core.Cell{Row: 2, Col: 2}
	grid.SetStatus(core.Cell{Row: 1, Col: 2}, core.PermanentObstacle)
	grid.SetStatus(core.Cell{Row: 2, Col: 1}, core.PermanentObstacle)

	path := algo.StaticAStar(grid, core.Cell{Row: 0, Col: 0}, goal, algo.ManhattanHeuristic, true)
	require.Nil(t, path)
}

// requireValidStaticPath checks invariant (1) of the testable properties:
// consecutive cells differ by one axis-aligned step and all cells are free.
// The endpoints are checked by the caller.
func requireValidStaticPath(t *testing.T, grid *core.Grid, path core.Path) {
	t.Helper()
	for i, c := range path {
		require.True(t, grid.IsOpen(c), "cell %s must be free", c)
		if i > 0 {
			require.True(t, path[i-1].Adjacent(c), "cells %s -> %s must be a single axis-aligned step", path[i-1], c)
		}
	}
}
