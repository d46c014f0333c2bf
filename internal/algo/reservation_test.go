package algo_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/elektrokombinacija/mapf-grid-planner/internal/algo"
	"github.com/elektrokombinacija/mapf-grid-planner/internal/core"
)

func TestReservationTable_ReserveAndOwner(t *testing.T) {
	rt := algo.NewReservationTable()
	tc := core.TimedCell{Row: 1, Col: 1, T: 3}

	_, ok := rt.Owner(tc)
	require.False(t, ok)

	rt.Reserve(tc, 7)
	owner, ok := rt.Owner(tc)
	require.True(t, ok)
	require.Equal(t, core.AgentID(7), owner)
}

func TestReservationTable_CommitPath_ReservesThroughHorizonAndTrimsLastEntry(t *testing.T) {
	rt := algo.NewReservationTable()
	plan := core.TimedPath{
		{Row: 0, Col: 0, T: 0},
		{Row: 0, Col: 1, T: 1},
		{Row: 0, Col: 2, T: 2},
		{Row: 0, Col: 3, T: 3},
	}

	window := rt.CommitPath(1, plan, 2)
	require.Equal(t, core.TimedPath{
		{Row: 0, Col: 0, T: 0},
		{Row: 0, Col: 1, T: 1},
	}, window)

	for _, tc := range plan[:3] {
		owner, ok := rt.Owner(tc)
		require.True(t, ok)
		require.Equal(t, core.AgentID(1), owner)
	}
	_, ok := rt.Owner(plan[3])
	require.False(t, ok, "cells beyond the horizon must not be reserved")
}

func TestReservationTable_CommitPath_TailReservesRestingCellThroughHorizon(t *testing.T) {
	rt := algo.NewReservationTable()
	plan := core.TimedPath{
		{Row: 0, Col: 0, T: 0},
		{Row: 0, Col: 1, T: 1},
	}

	window := rt.CommitPath(2, plan, 5)
	require.Equal(t, core.TimedPath{{Row: 0, Col: 0, T: 0}}, window)

	for tTail := 2; tTail <= 5; tTail++ {
		owner, ok := rt.Owner(core.TimedCell{Row: 0, Col: 1, T: tTail})
		require.True(t, ok, "resting cell must stay reserved through the horizon at t=%d", tTail)
		require.Equal(t, core.AgentID(2), owner)
	}
}

func TestReservationTable_CommitPath_SingleCellWindowReturnsEmpty(t *testing.T) {
	rt := algo.NewReservationTable()
	plan := core.TimedPath{{Row: 0, Col: 0, T: 0}}

	window := rt.CommitPath(3, plan, 0)
	require.Empty(t, window)

	_, ok := rt.Owner(plan[0])
	require.True(t, ok)
}

func TestReservationTable_CommitPath_EmptyPlanIsNoop(t *testing.T) {
	rt := algo.NewReservationTable()
	require.Nil(t, rt.CommitPath(1, nil, 5))
}
