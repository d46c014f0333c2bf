package scenario_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/elektrokombinacija/mapf-grid-planner/internal/core"
	"github.com/elektrokombinacija/mapf-grid-planner/internal/scenario"
)

func TestScenario_ToCore(t *testing.T) {
	s := &scenario.Scenario{
		Name: "basic",
		Seed: 1,
		Grid: scenario.GridSpec{
			Height: 2, Width: 3, CellSideM: 1.5,
			Rows: []string{"..#", "+.."},
		},
		Agents: []scenario.AgentSpec{
			{ID: 0, Start: scenario.CellCoord{Row: 0, Col: 0}, Goal: scenario.CellCoord{Row: 1, Col: 2}},
		},
	}

	grid, agents, err := s.ToCore()
	require.NoError(t, err)
	require.Equal(t, 2, grid.Height())
	require.Equal(t, 3, grid.Width())
	require.False(t, grid.IsOpen(core.Cell{Row: 0, Col: 2}))
	require.False(t, grid.IsOpen(core.Cell{Row: 1, Col: 0}))
	require.True(t, grid.IsOpen(core.Cell{Row: 1, Col: 1}))

	require.Len(t, agents, 1)
	require.Equal(t, core.Cell{Row: 0, Col: 0}, agents[0].Start)
	require.Equal(t, core.Cell{Row: 1, Col: 2}, agents[0].Goal)
}

func TestScenario_ToCore_RejectsBadSymbol(t *testing.T) {
	s := &scenario.Scenario{
		Grid: scenario.GridSpec{Height: 1, Width: 1, Rows: []string{"?"}},
	}
	_, _, err := s.ToCore()
	require.ErrorIs(t, err, scenario.ErrBadSymbol)
}

func TestScenario_ToCore_RejectsHeightMismatch(t *testing.T) {
	s := &scenario.Scenario{
		Grid: scenario.GridSpec{Height: 2, Width: 1, Rows: []string{"."}},
	}
	_, _, err := s.ToCore()
	require.Error(t, err)
}

func TestScenario_FromCoreRoundTrip(t *testing.T) {
	grid, err := core.NewGrid(2, 2, 2.5)
	require.NoError(t, err)
	grid.SetStatus(core.Cell{Row: 0, Col: 1}, core.PermanentObstacle)
	agents := []*core.Agent{
		core.NewAgent(3, core.Cell{Row: 0, Col: 0}, core.Cell{Row: 1, Col: 1}, 2, 2),
	}

	s := scenario.FromCore("roundtrip", 9, grid, agents)
	require.Equal(t, int64(9), s.Seed)
	require.NotEmpty(t, s.Generated)

	rebuiltGrid, rebuiltAgents, err := s.ToCore()
	require.NoError(t, err)
	require.Equal(t, grid.Height(), rebuiltGrid.Height())
	require.Equal(t, grid.Width(), rebuiltGrid.Width())
	require.Equal(t, grid.CellSideM(), rebuiltGrid.CellSideM())
	require.False(t, rebuiltGrid.IsOpen(core.Cell{Row: 0, Col: 1}))
	require.Len(t, rebuiltAgents, 1)
	require.Equal(t, core.AgentID(3), rebuiltAgents[0].ID)
	require.Equal(t, agents[0].Goal, rebuiltAgents[0].Goal)
}

func TestScenario_SaveAndLoad(t *testing.T) {
	grid, err := core.NewGrid(2, 2, 1.0)
	require.NoError(t, err)
	agents := []*core.Agent{core.NewAgent(0, core.Cell{Row: 0, Col: 0}, core.Cell{Row: 1, Col: 1}, 2, 2)}
	s := scenario.FromCore("save-load", 0, grid, agents)

	path := filepath.Join(t.TempDir(), "scenario.json")
	require.NoError(t, s.Save(path))

	loaded, err := scenario.Load(path)
	require.NoError(t, err)
	require.Equal(t, s.Name, loaded.Name)
	require.Equal(t, s.Grid, loaded.Grid)
	require.Equal(t, s.Agents, loaded.Agents)
}

func TestScenario_Load_MissingFile(t *testing.T) {
	_, err := scenario.Load(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
}
