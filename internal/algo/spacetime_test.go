package algo_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/elektrokombinacija/mapf-grid-planner/internal/algo"
	"github.com/elektrokombinacija/mapf-grid-planner/internal/core"
)

func TestSpaceTimeAStar_TimeMonotonicityAndMotionValidity(t *testing.T) {
	grid := mustGrid(t, 5, 5)
	reservations := algo.NewReservationTable()

	path := algo.SpaceTimeAStar(grid, reservations, 0, core.Cell{Row: 0, Col: 0}, core.Cell{Row: 2, Col: 2}, algo.ManhattanHeuristic, true, 50)
	require.NotEmpty(t, path)
	require.Equal(t, 0, path[0].T)

	for i := 1; i < len(path); i++ {
		require.Equal(t, path[i-1].T+1, path[i].T)
		prevCell, curCell := path[i-1].Cell(), path[i].Cell()
		isWait := prevCell == curCell
		require.True(t, isWait || prevCell.Adjacent(curCell), "step %d must be a wait or a single axis-aligned move", i)
	}
	require.Equal(t, core.Cell{Row: 2, Col: 2}, path[len(path)-1].Cell())
}

func TestSpaceTimeAStar_UnreachableGoalReturnsNil(t *testing.T) {
	grid := mustGrid(t, 5, 5)
	goal := core.Cell{Row: 2, Col: 2}
	grid.SetStatus(goal, core.PermanentObstacle)

	path := algo.SpaceTimeAStar(grid, algo.NewReservationTable(), 0, core.Cell{Row: 0, Col: 0}, goal, algo.ManhattanHeuristic, true, 50)
	require.Nil(t, path)
}

func TestSpaceTimeAStar_WaitsOutAnOccupiedCorridor(t *testing.T) {
	grid := mustGrid(t, 1, 5)
	reservations := algo.NewReservationTable()

	// Agent 1 occupies (0,1) at t=1 only, then moves on.
	reservations.Reserve(core.TimedCell{Row: 0, Col: 1, T: 1}, 1)

	path := algo.SpaceTimeAStar(grid, reservations, 0, core.Cell{Row: 0, Col: 0}, core.Cell{Row: 0, Col: 4}, algo.ManhattanHeuristic, true, 50)
	require.NotEmpty(t, path)

	for _, tc := range path {
		if tc.T == 1 {
			require.NotEqual(t, core.Cell{Row: 0, Col: 1}, tc.Cell(), "agent 0 must not collide with agent 1's reservation")
		}
	}
}

func TestSpaceTimeAStar_RejectsSwapCollision(t *testing.T) {
	grid := mustGrid(t, 1, 3)
	reservations := algo.NewReservationTable()

	// Another agent is moving (0,1) -> (0,0) across t=0 -> t=1.
	reservations.Reserve(core.TimedCell{Row: 0, Col: 1, T: 0}, 1)
	reservations.Reserve(core.TimedCell{Row: 0, Col: 0, T: 1}, 1)

	path := algo.SpaceTimeAStar(grid, reservations, 0, core.Cell{Row: 0, Col: 0}, core.Cell{Row: 0, Col: 1}, algo.ManhattanHeuristic, true, 10)
	// Moving straight into the swap is forbidden; the agent must wait or
	// detour, never reaching (0,1) at t=1 directly from (0,0) at t=0.
	require.False(t, len(path) >= 2 && path[1] == core.TimedCell{Row: 0, Col: 1, T: 1})
}
