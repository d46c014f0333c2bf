package core_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/elektrokombinacija/mapf-grid-planner/internal/core"
)

func TestCell_Adjacent(t *testing.T) {
	center := core.Cell{Row: 2, Col: 2}

	require.True(t, center.Adjacent(core.Cell{Row: 3, Col: 2}))
	require.True(t, center.Adjacent(core.Cell{Row: 1, Col: 2}))
	require.True(t, center.Adjacent(core.Cell{Row: 2, Col: 3}))
	require.True(t, center.Adjacent(core.Cell{Row: 2, Col: 1}))

	require.False(t, center.Adjacent(center))
	require.False(t, center.Adjacent(core.Cell{Row: 3, Col: 3}), "diagonal is not 4-adjacent")
	require.False(t, center.Adjacent(core.Cell{Row: 4, Col: 2}))
}

func TestTimedCell_Cell(t *testing.T) {
	tc := core.TimedCell{Row: 1, Col: 2, T: 5}
	require.Equal(t, core.Cell{Row: 1, Col: 2}, tc.Cell())
}

func TestCellStatus_String(t *testing.T) {
	require.Equal(t, ".", core.Free.String())
	require.Equal(t, "#", core.PermanentObstacle.String())
	require.Equal(t, "+", core.TemporaryObstacle.String())
}
